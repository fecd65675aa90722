package usecase

import (
	"fmt"

	"github.com/ErlanBelekov/league-manager/internal/domain"
	"github.com/ErlanBelekov/league-manager/internal/metrics"
)

// Authorizer is satisfied by *auth.Policy.
type Authorizer interface {
	CanPerform(subject domain.Identity, action domain.Action, ownerID int64) bool
}

// authorize allows the action when who may act on behalf of any one of
// owners. With no owners the resource counts as unowned.
func authorize(p Authorizer, who domain.Identity, action domain.Action, resource string, owners ...int64) error {
	if who.IsZero() {
		return domain.ErrUnauthenticated
	}
	if len(owners) == 0 {
		owners = []int64{0}
	}
	for _, owner := range owners {
		if p.CanPerform(who, action, owner) {
			metrics.AuthzDecisionsTotal.WithLabelValues(string(action), metrics.DecisionAllow).Inc()
			return nil
		}
	}
	metrics.AuthzDecisionsTotal.WithLabelValues(string(action), metrics.DecisionDeny).Inc()
	return fmt.Errorf("%w: user %d may not %s this %s", domain.ErrForbidden, who.UserID, action, resource)
}

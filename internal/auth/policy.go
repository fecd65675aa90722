package auth

import "github.com/ErlanBelekov/league-manager/internal/domain"

// Policy decides whether an identity may perform an action on a resource
// owned by ownerID. It does no I/O.
type Policy struct {
	adminActions map[domain.Action]struct{}
}

// NewPolicy returns a policy where admins may perform the given actions on
// any resource. With no actions there is no admin override at all.
func NewPolicy(adminActions ...domain.Action) *Policy {
	p := &Policy{adminActions: make(map[domain.Action]struct{}, len(adminActions))}
	for _, a := range adminActions {
		p.adminActions[a] = struct{}{}
	}
	return p
}

func DefaultPolicy() *Policy {
	return NewPolicy(domain.ActionCreate, domain.ActionUpdate, domain.ActionDelete)
}

// CanPerform reports whether subject may perform action on a resource owned
// by ownerID. An ownerID of 0 marks a resource nobody owns.
func (p *Policy) CanPerform(subject domain.Identity, action domain.Action, ownerID int64) bool {
	if subject.IsZero() {
		return false
	}
	if ownerID != 0 && ownerID == subject.UserID {
		return true
	}
	if subject.IsAdmin() {
		_, ok := p.adminActions[action]
		return ok
	}
	return false
}

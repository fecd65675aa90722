package middleware

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/ErlanBelekov/league-manager/internal/domain"
	"github.com/gin-gonic/gin"
)

const errAccountGone = "Account no longer exists"

// UserLookup is satisfied by repository.UserRepository.
type UserLookup interface {
	GetByID(ctx context.Context, id int64) (*domain.User, error)
}

// EnsureUser runs after Auth. It rejects tokens whose subject has been
// deleted and replaces the token's role with the stored one, so role
// changes apply without waiting for the token to expire.
func EnsureUser(users UserLookup, logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := IdentityFrom(c)
		user, err := users.GetByID(c.Request.Context(), id.UserID)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				unauthenticated(c, errAccountGone)
				return
			}
			logger.ErrorContext(c.Request.Context(), "ensure user lookup", "user_id", id.UserID, "error", err)
			c.AbortWithStatusJSON(http.StatusInternalServerError,
				gin.H{"code": "INTERNAL", "error": "Internal server error"})
			return
		}

		id.Role = user.Role
		SetIdentity(c, id)
		c.Next()
	}
}

package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/ErlanBelekov/league-manager/internal/domain"
	"github.com/gin-gonic/gin"
)

const (
	identityKey = "identity"

	codeUnauthenticated = "UNAUTHENTICATED"
	errTokenMissing     = "Authorization bearer token is required"
	errTokenExpired     = "Token has expired"
	errTokenInvalid     = "Token is invalid"
)

// TokenVerifier is satisfied by *auth.TokenCodec.
type TokenVerifier interface {
	Verify(raw string) (domain.Identity, error)
}

// Auth decodes the bearer token and stores the caller's identity in the gin
// context. Requests without a valid token never reach the handler.
func Auth(verifier TokenVerifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		scheme, raw, ok := strings.Cut(header, " ")
		if !ok || !strings.EqualFold(scheme, "Bearer") || strings.TrimSpace(raw) == "" {
			unauthenticated(c, errTokenMissing)
			return
		}

		id, err := verifier.Verify(strings.TrimSpace(raw))
		if err != nil {
			if errors.Is(err, domain.ErrTokenExpired) {
				unauthenticated(c, errTokenExpired)
				return
			}
			unauthenticated(c, errTokenInvalid)
			return
		}

		SetIdentity(c, id)
		c.Next()
	}
}

// SetIdentity is exported for handler tests that bypass Auth.
func SetIdentity(c *gin.Context, id domain.Identity) {
	c.Set(identityKey, id)
}

// IdentityFrom returns the zero Identity when Auth did not run.
func IdentityFrom(c *gin.Context) domain.Identity {
	v, ok := c.Get(identityKey)
	if !ok {
		return domain.Identity{}
	}
	id, _ := v.(domain.Identity)
	return id
}

func unauthenticated(c *gin.Context, msg string) {
	c.Header("WWW-Authenticate", `Bearer realm="league"`)
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"code": codeUnauthenticated, "error": msg})
}

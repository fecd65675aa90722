package domain

import (
	"fmt"
	"time"
)

var (
	ErrInvalidCredentials    = fmt.Errorf("%w: invalid email or password", ErrUnauthenticated)
	ErrTokenMissing          = fmt.Errorf("%w: no token provided", ErrUnauthenticated)
	ErrTokenExpired          = fmt.Errorf("%w: token expired", ErrUnauthenticated)
	ErrTokenMalformed        = fmt.Errorf("%w: token malformed", ErrUnauthenticated)
	ErrTokenSignatureInvalid = fmt.Errorf("%w: token signature invalid", ErrUnauthenticated)
)

type Action string

const (
	ActionCreate Action = "create"
	ActionUpdate Action = "update"
	ActionDelete Action = "delete"
)

// Identity is the authenticated caller decoded from a token. The zero value
// means "no identity".
type Identity struct {
	UserID int64
	Role   Role
}

func (i Identity) IsZero() bool { return i.UserID == 0 }

func (i Identity) IsAdmin() bool { return i.Role == RoleAdmin }

// Session is the result of a successful login.
type Session struct {
	UserID    int64
	Token     string
	ExpiresAt time.Time
}

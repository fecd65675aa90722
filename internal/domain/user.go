package domain

import (
	"fmt"
	"time"
)

var (
	ErrUserNotFound   = fmt.Errorf("user %w", ErrNotFound)
	ErrEmailTaken     = fmt.Errorf("%w: a user with this email already exists", ErrConflict)
	ErrUserReferenced = fmt.Errorf("%w: user is still referenced by a team", ErrConflict)
)

type Role string

const (
	RolePlayer Role = "player"
	RoleCoach  Role = "coach"
	RoleAdmin  Role = "admin"
)

func (r Role) Valid() bool {
	switch r {
	case RolePlayer, RoleCoach, RoleAdmin:
		return true
	}
	return false
}

type User struct {
	ID           int64
	FirstName    string
	LastName     string
	Email        string
	Phone        string
	PasswordHash string
	Role         Role
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// UserCandidate is a user as submitted by a caller, before validation.
// Password is the raw secret and is only set when it is being changed.
type UserCandidate struct {
	FirstName string
	LastName  string
	Email     string
	Phone     string
	Password  string
	Role      Role
}

package usecase

import (
	"context"
	"fmt"

	"github.com/ErlanBelekov/league-manager/internal/auth"
	"github.com/ErlanBelekov/league-manager/internal/domain"
	"github.com/ErlanBelekov/league-manager/internal/repository"
	"github.com/ErlanBelekov/league-manager/internal/validate"
)

// WelcomeNotifier is satisfied by *email.Notifier.
type WelcomeNotifier interface {
	Welcome(ctx context.Context, to, firstName string)
}

type UserUsecase struct {
	users    repository.UserRepository
	hasher   auth.SecretHasher
	policy   Authorizer
	notifier WelcomeNotifier
}

func NewUserUsecase(users repository.UserRepository, hasher auth.SecretHasher, policy Authorizer, notifier WelcomeNotifier) *UserUsecase {
	return &UserUsecase{users: users, hasher: hasher, policy: policy, notifier: notifier}
}

// UpdateUserInput carries the fields a caller wants to change; nil fields
// keep their stored value.
type UpdateUserInput struct {
	FirstName *string
	LastName  *string
	Email     *string
	Phone     *string
	Password  *string
	Role      *domain.Role
}

// Register is the public sign-up path. The role defaults to player and may
// never be admin.
func (u *UserUsecase) Register(ctx context.Context, c domain.UserCandidate) (*domain.User, error) {
	if c.Role == "" {
		c.Role = domain.RolePlayer
	}
	if c.Role == domain.RoleAdmin {
		return nil, fmt.Errorf("%w: admins cannot self-register", domain.ErrForbidden)
	}
	return u.create(ctx, c)
}

// Create adds a user on behalf of an admin.
func (u *UserUsecase) Create(ctx context.Context, who domain.Identity, c domain.UserCandidate) (*domain.User, error) {
	if err := authorize(u.policy, who, domain.ActionCreate, "user"); err != nil {
		return nil, err
	}
	if c.Role == "" {
		c.Role = domain.RolePlayer
	}
	return u.create(ctx, c)
}

// Provision creates a user with any role and no acting identity. It backs
// operator tooling that already holds database credentials, such as
// bootstrapping the first admin.
func (u *UserUsecase) Provision(ctx context.Context, c domain.UserCandidate) (*domain.User, error) {
	return u.create(ctx, c)
}

func (u *UserUsecase) create(ctx context.Context, c domain.UserCandidate) (*domain.User, error) {
	c.Email = normalizeEmail(c.Email)
	if err := domain.Violations(validate.User(c, validate.UserCreate)); err != nil {
		return nil, err
	}

	hash, err := u.hasher.Hash(c.Password)
	if err != nil {
		return nil, fmt.Errorf("%w: hash password: %w", domain.ErrUpstream, err)
	}

	created, err := u.users.Create(ctx, &domain.User{
		FirstName:    c.FirstName,
		LastName:     c.LastName,
		Email:        c.Email,
		Phone:        c.Phone,
		PasswordHash: hash,
		Role:         c.Role,
	})
	if err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}

	u.notifier.Welcome(ctx, created.Email, created.FirstName)
	return created, nil
}

func (u *UserUsecase) List(ctx context.Context) ([]*domain.User, error) {
	users, err := u.users.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	return users, nil
}

func (u *UserUsecase) Get(ctx context.Context, id int64) (*domain.User, error) {
	user, err := u.users.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get user: %w", err)
	}
	return user, nil
}

// Update lets a user edit their own profile. Changing a role is an admin
// action regardless of whose profile it is.
func (u *UserUsecase) Update(ctx context.Context, who domain.Identity, id int64, in UpdateUserInput) (*domain.User, error) {
	if err := authorize(u.policy, who, domain.ActionUpdate, "user", id); err != nil {
		return nil, err
	}

	existing, err := u.users.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get user: %w", err)
	}

	if in.Role != nil && *in.Role != existing.Role {
		if err := authorize(u.policy, who, domain.ActionUpdate, "user role"); err != nil {
			return nil, err
		}
	}

	c := domain.UserCandidate{
		FirstName: valueOr(in.FirstName, existing.FirstName),
		LastName:  valueOr(in.LastName, existing.LastName),
		Email:     normalizeEmail(valueOr(in.Email, existing.Email)),
		Phone:     valueOr(in.Phone, existing.Phone),
		Password:  valueOr(in.Password, ""),
		Role:      valueOr(in.Role, existing.Role),
	}
	if err := domain.Violations(validate.User(c, validate.UserUpdate)); err != nil {
		return nil, err
	}

	next := *existing
	next.FirstName = c.FirstName
	next.LastName = c.LastName
	next.Email = c.Email
	next.Phone = c.Phone
	next.Role = c.Role
	if c.Password != "" {
		next.PasswordHash, err = u.hasher.Hash(c.Password)
		if err != nil {
			return nil, fmt.Errorf("%w: hash password: %w", domain.ErrUpstream, err)
		}
	}

	updated, err := u.users.Update(ctx, &next)
	if err != nil {
		return nil, fmt.Errorf("update user: %w", err)
	}
	return updated, nil
}

func (u *UserUsecase) Delete(ctx context.Context, who domain.Identity, id int64) error {
	if err := authorize(u.policy, who, domain.ActionDelete, "user", id); err != nil {
		return err
	}
	if err := u.users.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete user: %w", err)
	}
	return nil
}

func valueOr[T any](p *T, fallback T) T {
	if p == nil {
		return fallback
	}
	return *p
}

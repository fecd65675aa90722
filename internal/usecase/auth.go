package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/ErlanBelekov/league-manager/internal/auth"
	"github.com/ErlanBelekov/league-manager/internal/domain"
	"github.com/ErlanBelekov/league-manager/internal/metrics"
	"github.com/ErlanBelekov/league-manager/internal/repository"
)

// dummyPassword is hashed once per AuthUsecase so that unknown emails cost
// the same bcrypt comparison as known ones.
const dummyPassword = "league-manager-dummy-password"

// TokenIssuer is satisfied by *auth.TokenCodec.
type TokenIssuer interface {
	Issue(id domain.Identity) (string, time.Time, error)
}

type AuthUsecase struct {
	users     repository.UserRepository
	hasher    auth.SecretHasher
	tokens    TokenIssuer
	dummyHash string
}

func NewAuthUsecase(users repository.UserRepository, hasher auth.SecretHasher, tokens TokenIssuer) (*AuthUsecase, error) {
	dummy, err := hasher.Hash(dummyPassword)
	if err != nil {
		return nil, fmt.Errorf("hash dummy password: %w", err)
	}
	return &AuthUsecase{
		users:     users,
		hasher:    hasher,
		tokens:    tokens,
		dummyHash: dummy,
	}, nil
}

// Authenticate checks email and password and issues an identity token.
// Unknown emails and wrong passwords both fail with ErrInvalidCredentials.
func (u *AuthUsecase) Authenticate(ctx context.Context, email, password string) (*domain.Session, error) {
	user, err := u.users.GetByEmail(ctx, normalizeEmail(email))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			_, _ = u.hasher.Verify(password, u.dummyHash)
			metrics.AuthAttemptsTotal.WithLabelValues(metrics.OutcomeFailure).Inc()
			return nil, domain.ErrInvalidCredentials
		}
		metrics.AuthAttemptsTotal.WithLabelValues(metrics.OutcomeError).Inc()
		return nil, fmt.Errorf("find user: %w", err)
	}

	ok, err := u.hasher.Verify(password, user.PasswordHash)
	if err != nil {
		metrics.AuthAttemptsTotal.WithLabelValues(metrics.OutcomeError).Inc()
		return nil, fmt.Errorf("%w: verify password: %w", domain.ErrUpstream, err)
	}
	if !ok {
		metrics.AuthAttemptsTotal.WithLabelValues(metrics.OutcomeFailure).Inc()
		return nil, domain.ErrInvalidCredentials
	}

	token, expiresAt, err := u.tokens.Issue(domain.Identity{UserID: user.ID, Role: user.Role})
	if err != nil {
		metrics.AuthAttemptsTotal.WithLabelValues(metrics.OutcomeError).Inc()
		return nil, fmt.Errorf("%w: issue token: %w", domain.ErrUpstream, err)
	}

	metrics.AuthAttemptsTotal.WithLabelValues(metrics.OutcomeSuccess).Inc()
	return &domain.Session{UserID: user.ID, Token: token, ExpiresAt: expiresAt}, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

package auth

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/ErlanBelekov/league-manager/internal/clock"
	"github.com/ErlanBelekov/league-manager/internal/domain"
	"github.com/golang-jwt/jwt/v5"
)

const DefaultTokenTTL = 24 * time.Hour

type claims struct {
	Role domain.Role `json:"role"`
	jwt.RegisteredClaims
}

// TokenCodec issues and verifies HS256 identity tokens. The signing key is
// owned by the instance and never changes after construction.
type TokenCodec struct {
	key    []byte
	ttl    time.Duration
	clock  clock.Clock
	parser *jwt.Parser
}

func NewTokenCodec(key []byte, ttl time.Duration, clk clock.Clock) *TokenCodec {
	if ttl <= 0 {
		ttl = DefaultTokenTTL
	}
	if clk == nil {
		clk = clock.New()
	}
	return &TokenCodec{
		key:   key,
		ttl:   ttl,
		clock: clk,
		parser: jwt.NewParser(
			jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
			jwt.WithExpirationRequired(),
			jwt.WithIssuedAt(),
			jwt.WithTimeFunc(clk.Now),
		),
	}
}

func (c *TokenCodec) TTL() time.Duration { return c.ttl }

// Issue signs a token for id that expires after the configured TTL.
func (c *TokenCodec) Issue(id domain.Identity) (string, time.Time, error) {
	if id.IsZero() {
		return "", time.Time{}, errors.New("issue token: empty subject")
	}

	now := c.clock.Now()
	expiresAt := now.Add(c.ttl)
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims{
		Role: id.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatInt(id.UserID, 10),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	})
	signed, err := t.SignedString(c.key)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("sign jwt: %w", err)
	}
	return signed, expiresAt, nil
}

// Verify checks signature and expiry and returns the identity the token
// carries. Errors are one of domain.ErrTokenExpired, domain.ErrTokenMalformed
// or domain.ErrTokenSignatureInvalid.
func (c *TokenCodec) Verify(raw string) (domain.Identity, error) {
	if raw == "" {
		return domain.Identity{}, domain.ErrTokenMalformed
	}

	var cl claims
	_, err := c.parser.ParseWithClaims(raw, &cl, func(*jwt.Token) (any, error) {
		return c.key, nil
	})
	switch {
	case err == nil:
	case errors.Is(err, jwt.ErrTokenSignatureInvalid):
		return domain.Identity{}, domain.ErrTokenSignatureInvalid
	case errors.Is(err, jwt.ErrTokenExpired):
		return domain.Identity{}, domain.ErrTokenExpired
	default:
		return domain.Identity{}, domain.ErrTokenMalformed
	}

	userID, err := strconv.ParseInt(cl.Subject, 10, 64)
	if err != nil || userID <= 0 {
		return domain.Identity{}, domain.ErrTokenMalformed
	}
	if !cl.Role.Valid() {
		return domain.Identity{}, domain.ErrTokenMalformed
	}
	return domain.Identity{UserID: userID, Role: cl.Role}, nil
}

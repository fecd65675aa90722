package postgres

import (
	"errors"
	"fmt"

	"github.com/ErlanBelekov/league-manager/internal/domain"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/samber/oops"
)

// upstream wraps an unexpected database error so callers only ever see
// domain.ErrUpstream, with the driver error kept in the chain for logging.
func upstream(op string, err error) error {
	return oops.
		Code("UPSTREAM_FAILURE").
		In("postgres").
		With("operation", op).
		Wrap(fmt.Errorf("%s: %w: %w", op, domain.ErrUpstream, err))
}

// mapErr translates constraint violations into domain conflicts. Errors that
// already carry a domain kind pass through unchanged.
func mapErr(op string, err error, onUnique, onForeignKey error) error {
	if errors.Is(err, domain.ErrNotFound) || errors.Is(err, domain.ErrConflict) {
		return err
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgerrcode.UniqueViolation:
			if onUnique != nil {
				return onUnique
			}
			return fmt.Errorf("%w: %s", domain.ErrConflict, pgErr.ConstraintName)
		case pgerrcode.ForeignKeyViolation:
			if onForeignKey != nil {
				return onForeignKey
			}
			return domain.ErrDanglingReference
		}
	}
	return upstream(op, err)
}

package repository

import (
	"context"

	"github.com/ErlanBelekov/league-manager/internal/domain"
)

type TeamRepository interface {
	List(ctx context.Context) ([]*domain.Team, error)
	GetByID(ctx context.Context, id int64) (*domain.Team, error)
	// GetMany returns the teams that exist among ids, in no particular order.
	GetMany(ctx context.Context, ids []int64) ([]*domain.Team, error)
	// ListByUser returns teams the user coaches or plays for.
	ListByUser(ctx context.Context, userID int64) ([]*domain.Team, error)
	// Create and Update write the team row and its player set atomically.
	Create(ctx context.Context, t *domain.Team) (*domain.Team, error)
	Update(ctx context.Context, t *domain.Team) (*domain.Team, error)
	Delete(ctx context.Context, id int64) error
}

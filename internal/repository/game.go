package repository

import (
	"context"

	"github.com/ErlanBelekov/league-manager/internal/domain"
)

type GameRepository interface {
	List(ctx context.Context) ([]*domain.Game, error)
	GetByID(ctx context.Context, id int64) (*domain.Game, error)
	ListByTeam(ctx context.Context, teamID int64) ([]*domain.Game, error)
	// ListByUser returns games in which any team the user coaches or plays for takes part.
	ListByUser(ctx context.Context, userID int64) ([]*domain.Game, error)
	// Create and Update write the game row and its two team links atomically.
	Create(ctx context.Context, g *domain.Game) (*domain.Game, error)
	Update(ctx context.Context, g *domain.Game) (*domain.Game, error)
	Delete(ctx context.Context, id int64) error
}

package domain

import (
	"fmt"
	"time"
)

var (
	ErrTeamNotFound   = fmt.Errorf("team %w", ErrNotFound)
	ErrTeamReferenced = fmt.Errorf("%w: team is still scheduled in a game", ErrConflict)
)

type Team struct {
	ID        int64
	Name      string
	CoachID   int64
	PlayerIDs []int64
	CreatedAt time.Time
	UpdatedAt time.Time
}

type TeamCandidate struct {
	Name      string
	CoachID   int64
	PlayerIDs []int64
}

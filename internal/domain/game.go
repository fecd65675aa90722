package domain

import (
	"fmt"
	"time"
)

var ErrGameNotFound = fmt.Errorf("game %w", ErrNotFound)

// GameTeamCount is the number of teams every game must reference.
const GameTeamCount = 2

type GameState string

const (
	GameScheduled GameState = "scheduled"
	GameCompleted GameState = "completed"
)

type Game struct {
	ID        int64
	Date      time.Time
	Result    *string // nil until the game is played
	TeamIDs   []int64
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (g *Game) State() GameState {
	if g.Result != nil {
		return GameCompleted
	}
	return GameScheduled
}

type GameCandidate struct {
	Date    *time.Time
	Result  *string
	TeamIDs []int64
}

package handler

import (
	"time"

	"github.com/ErlanBelekov/league-manager/internal/domain"
)

type userResponse struct {
	ID        int64       `json:"id"`
	FirstName string      `json:"first_name"`
	LastName  string      `json:"last_name"`
	Email     string      `json:"email"`
	Phone     string      `json:"phone,omitempty"`
	Role      domain.Role `json:"role"`
	CreatedAt time.Time   `json:"created_at"`
	UpdatedAt time.Time   `json:"updated_at"`
}

func toUserResponse(u *domain.User) userResponse {
	return userResponse{
		ID:        u.ID,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Email:     u.Email,
		Phone:     u.Phone,
		Role:      u.Role,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}

type teamResponse struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	CoachID   int64     `json:"coach_id"`
	PlayerIDs []int64   `json:"player_ids"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func toTeamResponse(t *domain.Team) teamResponse {
	players := t.PlayerIDs
	if players == nil {
		players = []int64{}
	}
	return teamResponse{
		ID:        t.ID,
		Name:      t.Name,
		CoachID:   t.CoachID,
		PlayerIDs: players,
		CreatedAt: t.CreatedAt,
		UpdatedAt: t.UpdatedAt,
	}
}

type gameResponse struct {
	ID        int64            `json:"id"`
	Date      time.Time        `json:"date"`
	Result    *string          `json:"result"`
	State     domain.GameState `json:"state"`
	TeamIDs   []int64          `json:"team_ids"`
	CreatedAt time.Time        `json:"created_at"`
	UpdatedAt time.Time        `json:"updated_at"`
}

func toGameResponse(g *domain.Game) gameResponse {
	return gameResponse{
		ID:        g.ID,
		Date:      g.Date,
		Result:    g.Result,
		State:     g.State(),
		TeamIDs:   g.TeamIDs,
		CreatedAt: g.CreatedAt,
		UpdatedAt: g.UpdatedAt,
	}
}

func mapSlice[T, R any](in []T, f func(T) R) []R {
	out := make([]R, len(in))
	for i, v := range in {
		out[i] = f(v)
	}
	return out
}

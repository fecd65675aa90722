// Package validate holds the pure invariant checks run on candidate entities
// before anything is written. Every function returns all violations it finds
// rather than stopping at the first one.
package validate

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/ErlanBelekov/league-manager/internal/domain"
	"github.com/go-playground/validator/v10"
)

const (
	MinPasswordLength = 8
	// MaxPasswordBytes is the most bcrypt will hash.
	MaxPasswordBytes = 72
	maxNameLength     = 128
)

var v = validator.New(validator.WithRequiredStructEnabled())

// UserMode selects which user invariants apply.
type UserMode int

const (
	// UserCreate requires a password.
	UserCreate UserMode = iota
	// UserUpdate checks the password only when one is being set.
	UserUpdate
)

func User(c domain.UserCandidate, mode UserMode) []domain.Violation {
	var out []domain.Violation

	switch email := strings.TrimSpace(c.Email); {
	case email == "":
		out = append(out, domain.Violation{Field: "email", Reason: "email is required"})
	case v.Var(email, "email") != nil:
		out = append(out, domain.Violation{Field: "email", Reason: "email is not a valid address"})
	}

	out = appendName(out, "first_name", c.FirstName)
	out = appendName(out, "last_name", c.LastName)

	if !c.Role.Valid() {
		out = append(out, domain.Violation{
			Field:  "role",
			Reason: fmt.Sprintf("role must be one of %s, %s, %s", domain.RolePlayer, domain.RoleCoach, domain.RoleAdmin),
		})
	}

	if mode == UserCreate || c.Password != "" {
		if utf8.RuneCountInString(c.Password) < MinPasswordLength {
			out = append(out, domain.Violation{
				Field:  "password",
				Reason: fmt.Sprintf("password must be at least %d characters", MinPasswordLength),
			})
		} else if len(c.Password) > MaxPasswordBytes {
			out = append(out, domain.Violation{
				Field:  "password",
				Reason: fmt.Sprintf("password must be at most %d bytes", MaxPasswordBytes),
			})
		}
	}

	if c.Phone != "" && v.Var(c.Phone, "max=32,printascii") != nil {
		out = append(out, domain.Violation{Field: "phone", Reason: "phone is not a valid number"})
	}

	return out
}

func appendName(out []domain.Violation, field, value string) []domain.Violation {
	value = strings.TrimSpace(value)
	if value == "" {
		return append(out, domain.Violation{Field: field, Reason: field + " is required"})
	}
	if utf8.RuneCountInString(value) > maxNameLength {
		return append(out, domain.Violation{Field: field, Reason: fmt.Sprintf("%s must be at most %d characters", field, maxNameLength)})
	}
	return out
}

// TeamRules controls the role-consistency checks on team members.
type TeamRules struct {
	EnforceRoles bool
}

// TeamRefs holds the users a team candidate refers to, as resolved by the
// caller. A nil Coach means the coach id did not resolve; MissingPlayers
// lists player ids that did not resolve.
type TeamRefs struct {
	Coach          *domain.User
	Players        []*domain.User
	MissingPlayers []int64
}

func Team(c domain.TeamCandidate, refs TeamRefs, rules TeamRules) []domain.Violation {
	var out []domain.Violation

	if strings.TrimSpace(c.Name) == "" {
		out = append(out, domain.Violation{Field: "name", Reason: "team name is required"})
	}

	switch {
	case c.CoachID <= 0:
		out = append(out, domain.Violation{Field: "coach_id", Reason: "coach is required"})
	case refs.Coach == nil:
		out = append(out, domain.Violation{Field: "coach_id", Reason: fmt.Sprintf("user %d does not exist", c.CoachID)})
	case rules.EnforceRoles && refs.Coach.Role != domain.RoleCoach:
		out = append(out, domain.Violation{Field: "coach_id", Reason: fmt.Sprintf("user %d is not a coach", c.CoachID)})
	}

	seen := make(map[int64]struct{}, len(c.PlayerIDs))
	for _, id := range c.PlayerIDs {
		if _, dup := seen[id]; dup {
			out = append(out, domain.Violation{Field: "player_ids", Reason: fmt.Sprintf("player %d is listed more than once", id)})
			continue
		}
		seen[id] = struct{}{}
		if id == c.CoachID && c.CoachID > 0 {
			out = append(out, domain.Violation{Field: "player_ids", Reason: fmt.Sprintf("user %d cannot be both coach and player", id)})
		}
	}

	for _, id := range refs.MissingPlayers {
		out = append(out, domain.Violation{Field: "player_ids", Reason: fmt.Sprintf("user %d does not exist", id)})
	}

	if rules.EnforceRoles {
		for _, p := range refs.Players {
			if p.Role != domain.RolePlayer {
				out = append(out, domain.Violation{Field: "player_ids", Reason: fmt.Sprintf("user %d is not a player", p.ID)})
			}
		}
	}

	return out
}

// GameShape checks the invariants that need nothing but the payload: a date
// and exactly two distinct team ids.
func GameShape(c domain.GameCandidate) []domain.Violation {
	var out []domain.Violation

	if c.Date == nil || c.Date.IsZero() {
		out = append(out, domain.Violation{Field: "date", Reason: "game date is required"})
	}

	if len(c.TeamIDs) != domain.GameTeamCount {
		out = append(out, domain.Violation{
			Field:  "team_ids",
			Reason: fmt.Sprintf("exactly %d teams are required, got %d", domain.GameTeamCount, len(c.TeamIDs)),
		})
	} else if c.TeamIDs[0] == c.TeamIDs[1] {
		out = append(out, domain.Violation{Field: "team_ids", Reason: "a team cannot play against itself"})
	}

	for _, id := range c.TeamIDs {
		if id <= 0 {
			out = append(out, domain.Violation{Field: "team_ids", Reason: fmt.Sprintf("team id %d is invalid", id)})
		}
	}

	if c.Result != nil && strings.TrimSpace(*c.Result) == "" {
		out = append(out, domain.Violation{Field: "result", Reason: "result cannot be blank"})
	}

	return out
}

// Game runs GameShape and then reports team ids that did not resolve.
func Game(c domain.GameCandidate, missingTeams []int64) []domain.Violation {
	out := GameShape(c)
	for _, id := range missingTeams {
		out = append(out, domain.Violation{Field: "team_ids", Reason: fmt.Sprintf("team %d does not exist", id)})
	}
	return out
}

// GameTransition checks that moving from existing to next does not go back
// from completed to scheduled.
func GameTransition(existing *domain.Game, next domain.GameCandidate) []domain.Violation {
	if existing.State() == domain.GameCompleted && next.Result == nil {
		return []domain.Violation{{Field: "result", Reason: "a recorded result cannot be cleared"}}
	}
	return nil
}

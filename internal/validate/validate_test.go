package validate_test

import (
	"strings"
	"testing"
	"time"

	"github.com/ErlanBelekov/league-manager/internal/domain"
	"github.com/ErlanBelekov/league-manager/internal/validate"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fields(vs []domain.Violation) []string {
	out := make([]string, len(vs))
	for i, v := range vs {
		out[i] = v.Field
	}
	return out
}

func validUser() domain.UserCandidate {
	return domain.UserCandidate{
		FirstName: "Ada",
		LastName:  "Lovelace",
		Email:     "ada@example.com",
		Phone:     "+32 470 00 00 00",
		Password:  "s3cret-pass",
		Role:      domain.RolePlayer,
	}
}

func TestUser_Valid(t *testing.T) {
	assert.Empty(t, validate.User(validUser(), validate.UserCreate))
}

func TestUser_AccumulatesViolations(t *testing.T) {
	got := validate.User(domain.UserCandidate{Email: "nope", Role: "referee"}, validate.UserCreate)

	assert.ElementsMatch(t,
		[]string{"email", "first_name", "last_name", "role", "password"},
		fields(got))
}

func TestUser_Email(t *testing.T) {
	for _, email := range []string{"", "   ", "plainaddress", "@example.com", "ada@"} {
		c := validUser()
		c.Email = email
		assert.Equal(t, []string{"email"}, fields(validate.User(c, validate.UserCreate)), "email=%q", email)
	}
}

func TestUser_PasswordOnlyCheckedOnUpdateWhenSet(t *testing.T) {
	c := validUser()
	c.Password = ""
	assert.Empty(t, validate.User(c, validate.UserUpdate))
	assert.Equal(t, []string{"password"}, fields(validate.User(c, validate.UserCreate)))

	c.Password = "short"
	assert.Equal(t, []string{"password"}, fields(validate.User(c, validate.UserUpdate)))
}

func TestUser_PasswordTooLongForBcrypt(t *testing.T) {
	c := validUser()
	c.Password = strings.Repeat("x", validate.MaxPasswordBytes+1)
	assert.Equal(t, []string{"password"}, fields(validate.User(c, validate.UserCreate)))

	c.Password = strings.Repeat("x", validate.MaxPasswordBytes)
	assert.Empty(t, validate.User(c, validate.UserCreate))
}

func TestUser_Roles(t *testing.T) {
	for _, role := range []domain.Role{domain.RolePlayer, domain.RoleCoach, domain.RoleAdmin} {
		c := validUser()
		c.Role = role
		assert.Empty(t, validate.User(c, validate.UserCreate))
	}
}

func TestTeam(t *testing.T) {
	coach := &domain.User{ID: 1, Role: domain.RoleCoach}
	player := &domain.User{ID: 2, Role: domain.RolePlayer}
	otherCoach := &domain.User{ID: 3, Role: domain.RoleCoach}
	enforce := validate.TeamRules{EnforceRoles: true}

	tests := []struct {
		name  string
		c     domain.TeamCandidate
		refs  validate.TeamRefs
		rules validate.TeamRules
		want  []string
	}{
		{
			name:  "valid",
			c:     domain.TeamCandidate{Name: "Lions", CoachID: 1, PlayerIDs: []int64{2}},
			refs:  validate.TeamRefs{Coach: coach, Players: []*domain.User{player}},
			rules: enforce,
		},
		{
			name:  "missing name and coach",
			c:     domain.TeamCandidate{Name: " "},
			rules: enforce,
			want:  []string{"name", "coach_id"},
		},
		{
			name:  "coach does not resolve",
			c:     domain.TeamCandidate{Name: "Lions", CoachID: 99},
			rules: enforce,
			want:  []string{"coach_id"},
		},
		{
			name:  "coach with player role",
			c:     domain.TeamCandidate{Name: "Lions", CoachID: 2},
			refs:  validate.TeamRefs{Coach: player},
			rules: enforce,
			want:  []string{"coach_id"},
		},
		{
			name:  "coach with player role allowed when not enforced",
			c:     domain.TeamCandidate{Name: "Lions", CoachID: 2},
			refs:  validate.TeamRefs{Coach: player},
			rules: validate.TeamRules{},
		},
		{
			name:  "player with coach role",
			c:     domain.TeamCandidate{Name: "Lions", CoachID: 1, PlayerIDs: []int64{3}},
			refs:  validate.TeamRefs{Coach: coach, Players: []*domain.User{otherCoach}},
			rules: enforce,
			want:  []string{"player_ids"},
		},
		{
			name:  "duplicate and missing players",
			c:     domain.TeamCandidate{Name: "Lions", CoachID: 1, PlayerIDs: []int64{2, 2, 77}},
			refs:  validate.TeamRefs{Coach: coach, Players: []*domain.User{player}, MissingPlayers: []int64{77}},
			rules: enforce,
			want:  []string{"player_ids", "player_ids"},
		},
		{
			name:  "coach listed as player",
			c:     domain.TeamCandidate{Name: "Lions", CoachID: 1, PlayerIDs: []int64{1}},
			refs:  validate.TeamRefs{Coach: coach},
			rules: validate.TeamRules{},
			want:  []string{"player_ids"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := validate.Team(tt.c, tt.refs, tt.rules)
			if len(tt.want) == 0 {
				assert.Empty(t, got)
				return
			}
			assert.ElementsMatch(t, tt.want, fields(got))
		})
	}
}

func TestGameShape_ExactlyTwoTeams(t *testing.T) {
	date := time.Date(2026, 5, 1, 18, 0, 0, 0, time.UTC)

	for n := 0; n <= 5; n++ {
		ids := make([]int64, n)
		for i := range ids {
			ids[i] = int64(i + 1)
		}
		got := validate.GameShape(domain.GameCandidate{Date: &date, TeamIDs: ids})
		if n == 2 {
			assert.Empty(t, got, "n=%d", n)
		} else {
			require.Len(t, got, 1, "n=%d", n)
			assert.Equal(t, "team_ids", got[0].Field)
		}
	}
}

func TestGameShape_DateRequired(t *testing.T) {
	var zero time.Time
	for _, d := range []*time.Time{nil, &zero} {
		got := validate.GameShape(domain.GameCandidate{Date: d, TeamIDs: []int64{1, 2}})
		assert.Equal(t, []string{"date"}, fields(got))
	}
}

func TestGameShape_DuplicateTeam(t *testing.T) {
	date := time.Now()
	got := validate.GameShape(domain.GameCandidate{Date: &date, TeamIDs: []int64{4, 4}})
	assert.Equal(t, []string{"team_ids"}, fields(got))
}

func TestGameShape_ReportsEverything(t *testing.T) {
	blank := "  "
	got := validate.GameShape(domain.GameCandidate{TeamIDs: []int64{1}, Result: &blank})
	assert.ElementsMatch(t, []string{"date", "team_ids", "result"}, fields(got))
}

func TestGame_MissingTeams(t *testing.T) {
	date := time.Now()
	got := validate.Game(domain.GameCandidate{Date: &date, TeamIDs: []int64{1, 2}}, []int64{2})
	require.Len(t, got, 1)
	assert.Contains(t, got[0].Reason, "team 2 does not exist")
}

func TestGameTransition(t *testing.T) {
	result := "3-1"
	scheduled := &domain.Game{ID: 1}
	completed := &domain.Game{ID: 1, Result: &result}

	assert.Empty(t, validate.GameTransition(scheduled, domain.GameCandidate{}))
	assert.Empty(t, validate.GameTransition(scheduled, domain.GameCandidate{Result: &result}))
	assert.Empty(t, validate.GameTransition(completed, domain.GameCandidate{Result: &result}))
	assert.Equal(t, []string{"result"}, fields(validate.GameTransition(completed, domain.GameCandidate{})))
}

package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/ErlanBelekov/league-manager/internal/auth"
	"github.com/ErlanBelekov/league-manager/internal/domain"
	"github.com/ErlanBelekov/league-manager/internal/infrastructure/postgres"
	"github.com/ErlanBelekov/league-manager/internal/repository"
	"github.com/ErlanBelekov/league-manager/internal/usecase"
	"github.com/ErlanBelekov/league-manager/internal/validate"
	"github.com/spf13/cobra"
)

type seedUser struct {
	first, last, email string
	role               domain.Role
}

var seedUsers = []seedUser{
	{"Cora", "Hill", "cora.coach@league.local", domain.RoleCoach},
	{"Carl", "Reyes", "carl.coach@league.local", domain.RoleCoach},
	{"Pat", "Stone", "pat.player@league.local", domain.RolePlayer},
	{"Pia", "Novak", "pia.player@league.local", domain.RolePlayer},
	{"Omar", "Diaz", "omar.player@league.local", domain.RolePlayer},
	{"Olga", "Berg", "olga.player@league.local", domain.RolePlayer},
}

// league bundles the services the seed goes through.
type league struct {
	userRepo repository.UserRepository
	users    *usecase.UserUsecase
	teams    *usecase.TeamUsecase
	games    *usecase.GameUsecase
}

func newLeague(users repository.UserRepository, teams repository.TeamRepository, games repository.GameRepository, notifier usecase.WelcomeNotifier) league {
	policy := auth.DefaultPolicy()
	return league{
		userRepo: users,
		users:    usecase.NewUserUsecase(users, hasher, policy, notifier),
		teams:    usecase.NewTeamUsecase(teams, users, policy, validate.TeamRules{EnforceRoles: true}),
		games:    usecase.NewGameUsecase(games, teams, users, policy),
	}
}

// seedReport counts what one seed run created.
type seedReport struct {
	Users, Teams, Games int
}

// seedLeague creates two coaches, four players, two teams, one played game
// and one scheduled game. It does nothing when the first seed user already
// exists.
func seedLeague(ctx context.Context, l league, password string, now time.Time) (seedReport, error) {
	var report seedReport

	if _, err := l.userRepo.GetByEmail(ctx, seedUsers[0].email); err == nil {
		return report, nil
	} else if !errors.Is(err, domain.ErrNotFound) {
		return report, fmt.Errorf("check existing seed: %w", err)
	}

	ids := make([]domain.Identity, len(seedUsers))
	for i, su := range seedUsers {
		u, err := l.users.Provision(ctx, domain.UserCandidate{
			FirstName: su.first,
			LastName:  su.last,
			Email:     su.email,
			Password:  password,
			Role:      su.role,
		})
		if err != nil {
			return report, fmt.Errorf("seed user %s: %w", su.email, err)
		}
		ids[i] = domain.Identity{UserID: u.ID, Role: u.Role}
		report.Users++
	}

	cora, carl := ids[0], ids[1]
	hawks, err := l.teams.Create(ctx, cora, domain.TeamCandidate{
		Name:      "Harbor Hawks",
		CoachID:   cora.UserID,
		PlayerIDs: []int64{ids[2].UserID, ids[3].UserID},
	})
	if err != nil {
		return report, fmt.Errorf("seed team: %w", err)
	}
	report.Teams++

	owls, err := l.teams.Create(ctx, carl, domain.TeamCandidate{
		Name:      "Northside Owls",
		CoachID:   carl.UserID,
		PlayerIDs: []int64{ids[4].UserID, ids[5].UserID},
	})
	if err != nil {
		return report, fmt.Errorf("seed team: %w", err)
	}
	report.Teams++

	played := now.AddDate(0, 0, -7).Truncate(time.Hour)
	result := "3-1"
	if _, err := l.games.Create(ctx, cora, domain.GameCandidate{
		Date:    &played,
		Result:  &result,
		TeamIDs: []int64{hawks.ID, owls.ID},
	}); err != nil {
		return report, fmt.Errorf("seed game: %w", err)
	}
	report.Games++

	upcoming := now.AddDate(0, 0, 7).Truncate(time.Hour)
	if _, err := l.games.Create(ctx, carl, domain.GameCandidate{
		Date:    &upcoming,
		TeamIDs: []int64{owls.ID, hawks.ID},
	}); err != nil {
		return report, fmt.Errorf("seed game: %w", err)
	}
	report.Games++

	return report, nil
}

func printReport(w io.Writer, r seedReport) {
	if r == (seedReport{}) {
		fmt.Fprintln(w, "already seeded, nothing to do")
		return
	}
	fmt.Fprintf(w, "seeded %d users, %d teams, %d games\n", r.Users, r.Teams, r.Games)
}

func newSeedCmd(s *session) *cobra.Command {
	var password string

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Load demo coaches, players, teams and games",
		Long: `Loads a small demo league for local development. Every seeded user
shares the password given by --password. Running it twice is harmless.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			pool, err := s.open(cmd.Context())
			if err != nil {
				return err
			}
			if err := postgres.SchemaReady(cmd.Context(), pool); err != nil {
				return err
			}

			l := newLeague(
				postgres.NewUserRepository(pool),
				postgres.NewTeamRepository(pool),
				postgres.NewGameRepository(pool),
				s.notifier(),
			)
			report, err := seedLeague(cmd.Context(), l, password, time.Now())
			if err != nil {
				return err
			}

			s.logger.Info("seed finished", "users", report.Users, "teams", report.Teams, "games", report.Games)
			printReport(cmd.OutOrStdout(), report)
			return nil
		},
	}

	cmd.Flags().StringVar(&password, "password", "league-demo-pass", "Password for every seeded user")

	return cmd
}

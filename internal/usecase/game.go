package usecase

import (
	"context"
	"fmt"
	"slices"

	"github.com/ErlanBelekov/league-manager/internal/domain"
	"github.com/ErlanBelekov/league-manager/internal/repository"
	"github.com/ErlanBelekov/league-manager/internal/validate"
)

type GameUsecase struct {
	games  repository.GameRepository
	teams  repository.TeamRepository
	users  repository.UserRepository
	policy Authorizer
}

func NewGameUsecase(games repository.GameRepository, teams repository.TeamRepository, users repository.UserRepository, policy Authorizer) *GameUsecase {
	return &GameUsecase{games: games, teams: teams, users: users, policy: policy}
}

func (u *GameUsecase) List(ctx context.Context) ([]*domain.Game, error) {
	games, err := u.games.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list games: %w", err)
	}
	return games, nil
}

func (u *GameUsecase) Get(ctx context.Context, id int64) (*domain.Game, error) {
	game, err := u.games.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get game: %w", err)
	}
	return game, nil
}

func (u *GameUsecase) ListByTeam(ctx context.Context, teamID int64) ([]*domain.Game, error) {
	if _, err := u.teams.GetByID(ctx, teamID); err != nil {
		return nil, fmt.Errorf("get team: %w", err)
	}
	games, err := u.games.ListByTeam(ctx, teamID)
	if err != nil {
		return nil, fmt.Errorf("list games by team: %w", err)
	}
	return games, nil
}

// ListByUser returns games involving any team the user coaches or plays for.
func (u *GameUsecase) ListByUser(ctx context.Context, userID int64) ([]*domain.Game, error) {
	if _, err := u.users.GetByID(ctx, userID); err != nil {
		return nil, fmt.Errorf("get user: %w", err)
	}
	games, err := u.games.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list games by user: %w", err)
	}
	return games, nil
}

// Create is allowed for the coach of either team. The payload shape is
// checked first since the owners come from it.
func (u *GameUsecase) Create(ctx context.Context, who domain.Identity, c domain.GameCandidate) (*domain.Game, error) {
	if who.IsZero() {
		return nil, domain.ErrUnauthenticated
	}
	if err := domain.Violations(validate.GameShape(c)); err != nil {
		return nil, err
	}

	coaches, missing, err := u.resolveTeams(ctx, c.TeamIDs)
	if err != nil {
		return nil, err
	}
	if err := authorize(u.policy, who, domain.ActionCreate, "game", coaches...); err != nil {
		return nil, err
	}
	if err := domain.Violations(validate.Game(c, missing)); err != nil {
		return nil, err
	}

	created, err := u.games.Create(ctx, &domain.Game{Date: *c.Date, Result: c.Result, TeamIDs: c.TeamIDs})
	if err != nil {
		return nil, fmt.Errorf("create game: %w", err)
	}
	return created, nil
}

// Update replaces the game. The caller needs authority over the game as
// stored and, when the teams change, over the new teams as well. A recorded
// result cannot be removed.
func (u *GameUsecase) Update(ctx context.Context, who domain.Identity, id int64, c domain.GameCandidate) (*domain.Game, error) {
	if who.IsZero() {
		return nil, domain.ErrUnauthenticated
	}
	if err := domain.Violations(validate.GameShape(c)); err != nil {
		return nil, err
	}

	existing, err := u.games.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get game: %w", err)
	}
	current, _, err := u.resolveTeams(ctx, existing.TeamIDs)
	if err != nil {
		return nil, err
	}
	if err := authorize(u.policy, who, domain.ActionUpdate, "game", current...); err != nil {
		return nil, err
	}

	coaches, missing, err := u.resolveTeams(ctx, c.TeamIDs)
	if err != nil {
		return nil, err
	}
	if !sameIDs(existing.TeamIDs, c.TeamIDs) {
		if err := authorize(u.policy, who, domain.ActionUpdate, "game", coaches...); err != nil {
			return nil, err
		}
	}

	violations := validate.Game(c, missing)
	violations = append(violations, validate.GameTransition(existing, c)...)
	if err := domain.Violations(violations); err != nil {
		return nil, err
	}

	updated, err := u.games.Update(ctx, &domain.Game{ID: id, Date: *c.Date, Result: c.Result, TeamIDs: c.TeamIDs})
	if err != nil {
		return nil, fmt.Errorf("update game: %w", err)
	}
	return updated, nil
}

func (u *GameUsecase) Delete(ctx context.Context, who domain.Identity, id int64) error {
	if who.IsZero() {
		return domain.ErrUnauthenticated
	}

	existing, err := u.games.GetByID(ctx, id)
	if err != nil {
		return fmt.Errorf("get game: %w", err)
	}
	coaches, _, err := u.resolveTeams(ctx, existing.TeamIDs)
	if err != nil {
		return err
	}
	if err := authorize(u.policy, who, domain.ActionDelete, "game", coaches...); err != nil {
		return err
	}
	if err := u.games.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete game: %w", err)
	}
	return nil
}

// resolveTeams returns the coach ids of the teams that exist among ids and
// the ids that did not resolve.
func (u *GameUsecase) resolveTeams(ctx context.Context, ids []int64) (coaches, missing []int64, err error) {
	teams, err := u.teams.GetMany(ctx, ids)
	if err != nil {
		return nil, nil, fmt.Errorf("resolve game teams: %w", err)
	}
	found := make(map[int64]struct{}, len(teams))
	for _, t := range teams {
		found[t.ID] = struct{}{}
		coaches = append(coaches, t.CoachID)
	}
	for _, id := range ids {
		if _, ok := found[id]; !ok {
			missing = append(missing, id)
		}
	}
	return coaches, missing, nil
}

func sameIDs(a, b []int64) bool {
	a, b = slices.Clone(a), slices.Clone(b)
	slices.Sort(a)
	slices.Sort(b)
	return slices.Equal(a, b)
}

package usecase

import (
	"context"
	"fmt"

	"github.com/ErlanBelekov/league-manager/internal/domain"
	"github.com/ErlanBelekov/league-manager/internal/repository"
	"github.com/ErlanBelekov/league-manager/internal/validate"
)

type TeamUsecase struct {
	teams  repository.TeamRepository
	users  repository.UserRepository
	policy Authorizer
	rules  validate.TeamRules
}

func NewTeamUsecase(teams repository.TeamRepository, users repository.UserRepository, policy Authorizer, rules validate.TeamRules) *TeamUsecase {
	return &TeamUsecase{teams: teams, users: users, policy: policy, rules: rules}
}

func (u *TeamUsecase) List(ctx context.Context) ([]*domain.Team, error) {
	teams, err := u.teams.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list teams: %w", err)
	}
	return teams, nil
}

func (u *TeamUsecase) Get(ctx context.Context, id int64) (*domain.Team, error) {
	team, err := u.teams.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get team: %w", err)
	}
	return team, nil
}

// ListByUser returns the teams a user coaches or plays for.
func (u *TeamUsecase) ListByUser(ctx context.Context, userID int64) ([]*domain.Team, error) {
	if _, err := u.users.GetByID(ctx, userID); err != nil {
		return nil, fmt.Errorf("get user: %w", err)
	}
	teams, err := u.teams.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list teams by user: %w", err)
	}
	return teams, nil
}

// Create is allowed for the coach named in the payload.
func (u *TeamUsecase) Create(ctx context.Context, who domain.Identity, c domain.TeamCandidate) (*domain.Team, error) {
	if err := authorize(u.policy, who, domain.ActionCreate, "team", c.CoachID); err != nil {
		return nil, err
	}
	if err := u.check(ctx, c); err != nil {
		return nil, err
	}

	created, err := u.teams.Create(ctx, &domain.Team{Name: c.Name, CoachID: c.CoachID, PlayerIDs: c.PlayerIDs})
	if err != nil {
		return nil, fmt.Errorf("create team: %w", err)
	}
	return created, nil
}

// Update replaces the team. Handing the team to another coach needs
// authority over both the current and the new coach.
func (u *TeamUsecase) Update(ctx context.Context, who domain.Identity, id int64, c domain.TeamCandidate) (*domain.Team, error) {
	if who.IsZero() {
		return nil, domain.ErrUnauthenticated
	}

	existing, err := u.teams.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get team: %w", err)
	}
	if err := authorize(u.policy, who, domain.ActionUpdate, "team", existing.CoachID); err != nil {
		return nil, err
	}
	if c.CoachID != existing.CoachID {
		if err := authorize(u.policy, who, domain.ActionUpdate, "team", c.CoachID); err != nil {
			return nil, err
		}
	}
	if err := u.check(ctx, c); err != nil {
		return nil, err
	}

	updated, err := u.teams.Update(ctx, &domain.Team{ID: id, Name: c.Name, CoachID: c.CoachID, PlayerIDs: c.PlayerIDs})
	if err != nil {
		return nil, fmt.Errorf("update team: %w", err)
	}
	return updated, nil
}

func (u *TeamUsecase) Delete(ctx context.Context, who domain.Identity, id int64) error {
	if who.IsZero() {
		return domain.ErrUnauthenticated
	}

	existing, err := u.teams.GetByID(ctx, id)
	if err != nil {
		return fmt.Errorf("get team: %w", err)
	}
	if err := authorize(u.policy, who, domain.ActionDelete, "team", existing.CoachID); err != nil {
		return err
	}
	if err := u.teams.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete team: %w", err)
	}
	return nil
}

// check resolves the coach and players and runs the team invariants.
func (u *TeamUsecase) check(ctx context.Context, c domain.TeamCandidate) error {
	ids := make([]int64, 0, len(c.PlayerIDs)+1)
	if c.CoachID > 0 {
		ids = append(ids, c.CoachID)
	}
	ids = append(ids, c.PlayerIDs...)

	found, err := u.users.GetMany(ctx, ids)
	if err != nil {
		return fmt.Errorf("resolve team members: %w", err)
	}
	byID := make(map[int64]*domain.User, len(found))
	for _, user := range found {
		byID[user.ID] = user
	}

	var refs validate.TeamRefs
	refs.Coach = byID[c.CoachID]
	seen := make(map[int64]struct{}, len(c.PlayerIDs))
	for _, id := range c.PlayerIDs {
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		if user, ok := byID[id]; ok {
			refs.Players = append(refs.Players, user)
		} else {
			refs.MissingPlayers = append(refs.MissingPlayers, id)
		}
	}

	return domain.Violations(validate.Team(c, refs, u.rules))
}

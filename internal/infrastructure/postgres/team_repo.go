package postgres

import (
	"context"
	"errors"
	"fmt"
	"slices"

	"github.com/ErlanBelekov/league-manager/internal/domain"
	"github.com/jackc/pgx/v5"
)

const teamSelect = `
	SELECT t.id, t.name, t.coach_id,
	       COALESCE(array_agg(tp.user_id ORDER BY tp.user_id) FILTER (WHERE tp.user_id IS NOT NULL), '{}') AS player_ids,
	       t.created_at, t.updated_at
	FROM teams t
	LEFT JOIN team_players tp ON tp.team_id = t.id`

type TeamRepository struct {
	db DBTX
}

func NewTeamRepository(db DBTX) *TeamRepository {
	return &TeamRepository{db: db}
}

func (r *TeamRepository) List(ctx context.Context) ([]*domain.Team, error) {
	rows, err := r.db.Query(ctx, teamSelect+` GROUP BY t.id ORDER BY t.id`)
	if err != nil {
		return nil, upstream("list teams", err)
	}
	return collectTeams(rows)
}

func (r *TeamRepository) GetByID(ctx context.Context, id int64) (*domain.Team, error) {
	row := r.db.QueryRow(ctx, teamSelect+` WHERE t.id = $1 GROUP BY t.id`, id)
	t, err := scanTeam(row)
	if err != nil {
		return nil, mapErr("get team", err, nil, nil)
	}
	return t, nil
}

func (r *TeamRepository) GetMany(ctx context.Context, ids []int64) ([]*domain.Team, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	rows, err := r.db.Query(ctx, teamSelect+` WHERE t.id = ANY($1) GROUP BY t.id ORDER BY t.id`, ids)
	if err != nil {
		return nil, upstream("get teams", err)
	}
	return collectTeams(rows)
}

func (r *TeamRepository) ListByUser(ctx context.Context, userID int64) ([]*domain.Team, error) {
	query := teamSelect + `
	WHERE t.coach_id = $1
	   OR EXISTS (SELECT 1 FROM team_players m WHERE m.team_id = t.id AND m.user_id = $1)
	GROUP BY t.id ORDER BY t.id`

	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		return nil, upstream("list teams by user", err)
	}
	return collectTeams(rows)
}

func (r *TeamRepository) Create(ctx context.Context, t *domain.Team) (created *domain.Team, err error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return nil, upstream("begin tx", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback(ctx)
		}
	}()

	out := &domain.Team{Name: t.Name, CoachID: t.CoachID, PlayerIDs: sortedIDs(t.PlayerIDs)}
	err = tx.QueryRow(ctx,
		`INSERT INTO teams (name, coach_id) VALUES ($1, $2) RETURNING id, created_at, updated_at`,
		t.Name, t.CoachID,
	).Scan(&out.ID, &out.CreatedAt, &out.UpdatedAt)
	if err != nil {
		return nil, mapErr("insert team", err, nil, nil)
	}

	if err = insertPlayers(ctx, tx, out.ID, out.PlayerIDs); err != nil {
		return nil, err
	}

	if err = tx.Commit(ctx); err != nil {
		return nil, upstream("commit team", err)
	}
	return out, nil
}

// Update replaces the team row and its whole player set.
func (r *TeamRepository) Update(ctx context.Context, t *domain.Team) (updated *domain.Team, err error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return nil, upstream("begin tx", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback(ctx)
		}
	}()

	out := &domain.Team{ID: t.ID, Name: t.Name, CoachID: t.CoachID, PlayerIDs: sortedIDs(t.PlayerIDs)}
	err = tx.QueryRow(ctx,
		`UPDATE teams SET name = $2, coach_id = $3, updated_at = NOW() WHERE id = $1 RETURNING created_at, updated_at`,
		t.ID, t.Name, t.CoachID,
	).Scan(&out.CreatedAt, &out.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrTeamNotFound
		}
		return nil, mapErr("update team", err, nil, nil)
	}

	if _, err = tx.Exec(ctx, `DELETE FROM team_players WHERE team_id = $1`, t.ID); err != nil {
		return nil, upstream("clear team players", err)
	}
	if err = insertPlayers(ctx, tx, out.ID, out.PlayerIDs); err != nil {
		return nil, err
	}

	if err = tx.Commit(ctx); err != nil {
		return nil, upstream("commit team", err)
	}
	return out, nil
}

// Delete fails with ErrTeamReferenced while any game still lists the team.
func (r *TeamRepository) Delete(ctx context.Context, id int64) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM teams WHERE id = $1`, id)
	if err != nil {
		return mapErr("delete team", err, nil, domain.ErrTeamReferenced)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrTeamNotFound
	}
	return nil
}

func insertPlayers(ctx context.Context, tx pgx.Tx, teamID int64, playerIDs []int64) error {
	if len(playerIDs) == 0 {
		return nil
	}
	_, err := tx.Exec(ctx,
		`INSERT INTO team_players (team_id, user_id) SELECT $1, unnest($2::bigint[])`,
		teamID, playerIDs,
	)
	if err != nil {
		return mapErr("insert team players", err, nil, nil)
	}
	return nil
}

func collectTeams(rows pgx.Rows) ([]*domain.Team, error) {
	defer rows.Close()

	var teams []*domain.Team
	for rows.Next() {
		t, err := scanTeam(rows)
		if err != nil {
			return nil, upstream("scan teams", err)
		}
		teams = append(teams, t)
	}
	if err := rows.Err(); err != nil {
		return nil, upstream("iterate teams", err)
	}
	return teams, nil
}

func scanTeam(row rowScanner) (*domain.Team, error) {
	var t domain.Team
	err := row.Scan(&t.ID, &t.Name, &t.CoachID, &t.PlayerIDs, &t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrTeamNotFound
		}
		return nil, fmt.Errorf("scan team: %w", err)
	}
	return &t, nil
}

func sortedIDs(ids []int64) []int64 {
	out := slices.Clone(ids)
	slices.Sort(out)
	if out == nil {
		out = []int64{}
	}
	return out
}

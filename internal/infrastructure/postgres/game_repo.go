package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/ErlanBelekov/league-manager/internal/domain"
	"github.com/jackc/pgx/v5"
)

const gameSelect = `
	SELECT g.id, g.date, g.result,
	       COALESCE(array_agg(gt.team_id ORDER BY gt.team_id) FILTER (WHERE gt.team_id IS NOT NULL), '{}') AS team_ids,
	       g.created_at, g.updated_at
	FROM games g
	LEFT JOIN game_teams gt ON gt.game_id = g.id`

type GameRepository struct {
	db DBTX
}

func NewGameRepository(db DBTX) *GameRepository {
	return &GameRepository{db: db}
}

func (r *GameRepository) List(ctx context.Context) ([]*domain.Game, error) {
	rows, err := r.db.Query(ctx, gameSelect+` GROUP BY g.id ORDER BY g.date, g.id`)
	if err != nil {
		return nil, upstream("list games", err)
	}
	return collectGames(rows)
}

func (r *GameRepository) GetByID(ctx context.Context, id int64) (*domain.Game, error) {
	row := r.db.QueryRow(ctx, gameSelect+` WHERE g.id = $1 GROUP BY g.id`, id)
	g, err := scanGame(row)
	if err != nil {
		return nil, mapErr("get game", err, nil, nil)
	}
	return g, nil
}

func (r *GameRepository) ListByTeam(ctx context.Context, teamID int64) ([]*domain.Game, error) {
	query := gameSelect + `
	WHERE EXISTS (SELECT 1 FROM game_teams x WHERE x.game_id = g.id AND x.team_id = $1)
	GROUP BY g.id ORDER BY g.date, g.id`

	rows, err := r.db.Query(ctx, query, teamID)
	if err != nil {
		return nil, upstream("list games by team", err)
	}
	return collectGames(rows)
}

func (r *GameRepository) ListByUser(ctx context.Context, userID int64) ([]*domain.Game, error) {
	query := gameSelect + `
	WHERE EXISTS (
		SELECT 1
		FROM game_teams x
		JOIN teams t ON t.id = x.team_id
		WHERE x.game_id = g.id
		  AND (t.coach_id = $1
		       OR EXISTS (SELECT 1 FROM team_players p WHERE p.team_id = t.id AND p.user_id = $1))
	)
	GROUP BY g.id ORDER BY g.date, g.id`

	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		return nil, upstream("list games by user", err)
	}
	return collectGames(rows)
}

func (r *GameRepository) Create(ctx context.Context, g *domain.Game) (created *domain.Game, err error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return nil, upstream("begin tx", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback(ctx)
		}
	}()

	out := &domain.Game{Date: g.Date, Result: g.Result, TeamIDs: sortedIDs(g.TeamIDs)}
	err = tx.QueryRow(ctx,
		`INSERT INTO games (date, result) VALUES ($1, $2) RETURNING id, created_at, updated_at`,
		g.Date, g.Result,
	).Scan(&out.ID, &out.CreatedAt, &out.UpdatedAt)
	if err != nil {
		return nil, upstream("insert game", err)
	}

	if err = insertGameTeams(ctx, tx, out.ID, out.TeamIDs); err != nil {
		return nil, err
	}

	if err = tx.Commit(ctx); err != nil {
		return nil, upstream("commit game", err)
	}
	return out, nil
}

func (r *GameRepository) Update(ctx context.Context, g *domain.Game) (updated *domain.Game, err error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return nil, upstream("begin tx", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback(ctx)
		}
	}()

	out := &domain.Game{ID: g.ID, Date: g.Date, Result: g.Result, TeamIDs: sortedIDs(g.TeamIDs)}
	err = tx.QueryRow(ctx,
		`UPDATE games SET date = $2, result = $3, updated_at = NOW() WHERE id = $1 RETURNING created_at, updated_at`,
		g.ID, g.Date, g.Result,
	).Scan(&out.CreatedAt, &out.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrGameNotFound
		}
		return nil, upstream("update game", err)
	}

	if _, err = tx.Exec(ctx, `DELETE FROM game_teams WHERE game_id = $1`, g.ID); err != nil {
		return nil, upstream("clear game teams", err)
	}
	if err = insertGameTeams(ctx, tx, out.ID, out.TeamIDs); err != nil {
		return nil, err
	}

	if err = tx.Commit(ctx); err != nil {
		return nil, upstream("commit game", err)
	}
	return out, nil
}

func (r *GameRepository) Delete(ctx context.Context, id int64) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM games WHERE id = $1`, id)
	if err != nil {
		return upstream("delete game", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrGameNotFound
	}
	return nil
}

func insertGameTeams(ctx context.Context, tx pgx.Tx, gameID int64, teamIDs []int64) error {
	_, err := tx.Exec(ctx,
		`INSERT INTO game_teams (game_id, team_id) SELECT $1, unnest($2::bigint[])`,
		gameID, teamIDs,
	)
	if err != nil {
		return mapErr("insert game teams", err, nil, nil)
	}
	return nil
}

func collectGames(rows pgx.Rows) ([]*domain.Game, error) {
	defer rows.Close()

	var games []*domain.Game
	for rows.Next() {
		g, err := scanGame(rows)
		if err != nil {
			return nil, upstream("scan games", err)
		}
		games = append(games, g)
	}
	if err := rows.Err(); err != nil {
		return nil, upstream("iterate games", err)
	}
	return games, nil
}

func scanGame(row rowScanner) (*domain.Game, error) {
	var g domain.Game
	err := row.Scan(&g.ID, &g.Date, &g.Result, &g.TeamIDs, &g.CreatedAt, &g.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrGameNotFound
		}
		return nil, fmt.Errorf("scan game: %w", err)
	}
	return &g, nil
}

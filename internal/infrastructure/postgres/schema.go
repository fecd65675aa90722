package postgres

import (
	"context"
	_ "embed"
	"errors"
	"fmt"
)

// Schema creates the tables the repositories expect. Every statement is
// idempotent.
//
//go:embed schema.sql
var Schema string

func ApplySchema(ctx context.Context, db DBTX) error {
	if _, err := db.Exec(ctx, Schema); err != nil {
		return fmt.Errorf("apply schema: %w", err)
	}
	return nil
}

// SchemaReady reports an error when the bootstrap schema has not been applied.
func SchemaReady(ctx context.Context, db DBTX) error {
	var ok bool
	if err := db.QueryRow(ctx, `SELECT to_regclass('public.game_teams') IS NOT NULL`).Scan(&ok); err != nil {
		return fmt.Errorf("check schema: %w", err)
	}
	if !ok {
		return errors.New("schema not applied: run leaguectl schema")
	}
	return nil
}

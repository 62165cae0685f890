package db

import (
	"context"
	"embed"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/pressly/goose/v3"
)

//go:embed migrations/*.sql
var migrationFiles embed.FS

// RunMigrations applies embedded SQL migrations via goose. If database is nil,
// it's a no-op. Migrations are idempotent; existing rows survive restarts.
func RunMigrations(ctx context.Context, database *sqlx.DB) error {
	if database == nil {
		return nil
	}
	goose.SetBaseFS(migrationFiles)
	if err := goose.SetDialect("sqlite3"); err != nil {
		return err
	}
	return goose.UpContext(ctx, database.DB, "migrations")
}

// Reset drops the documents table and its migration bookkeeping so the next
// RunMigrations starts from an empty store. This restores the original
// throwaway-database behavior and only runs when explicitly configured.
func Reset(ctx context.Context, database *sqlx.DB) error {
	if database == nil {
		return nil
	}
	for _, stmt := range []string{
		"DROP TABLE IF EXISTS documents",
		"DROP TABLE IF EXISTS goose_db_version",
	} {
		if _, err := database.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("reset database: %w", err)
		}
	}
	return nil
}

package db

import (
	"context"
	"embed"
	"log/slog"
	"sort"
	"strings"

	"github.com/jackc/pgx/v5/pgxpool"

	"universe-api/internal/pkg/errs"
)

//go:embed migrations/*.sql
var migrationFiles embed.FS

// RunMigrations applies every embedded *.up.sql file in name order, one
// transaction each, tracked in schema_migrations. Reapplying is a no-op.
func RunMigrations(ctx context.Context, pool *pgxpool.Pool, logger *slog.Logger) error {
	_, err := pool.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version TEXT PRIMARY KEY,
			applied_at TIMESTAMPTZ DEFAULT now()
		)
	`)
	if err != nil {
		return errs.Wrap(err, "failed to create schema_migrations")
	}

	entries, err := migrationFiles.ReadDir("migrations")
	if err != nil {
		return errs.Wrap(err, "failed to read embedded migrations")
	}

	var upFiles []string
	for _, e := range entries {
		if strings.HasSuffix(e.Name(), ".up.sql") {
			upFiles = append(upFiles, e.Name())
		}
	}
	sort.Strings(upFiles)

	for _, f := range upFiles {
		version := strings.TrimSuffix(f, ".up.sql")

		var exists bool
		err := pool.QueryRow(ctx, "SELECT EXISTS(SELECT 1 FROM schema_migrations WHERE version=$1)", version).Scan(&exists)
		if err != nil {
			return errs.Wrap(err, "failed to check migration version")
		}
		if exists {
			continue
		}

		sql, err := migrationFiles.ReadFile("migrations/" + f)
		if err != nil {
			return errs.Wrap(err, "failed to read migration "+f)
		}

		tx, err := pool.Begin(ctx)
		if err != nil {
			return errs.Wrap(err, "failed to begin migration transaction")
		}

		if _, err := tx.Exec(ctx, string(sql)); err != nil {
			_ = tx.Rollback(ctx)
			return errs.Wrap(err, "failed to apply migration "+version)
		}

		if _, err := tx.Exec(ctx, "INSERT INTO schema_migrations (version) VALUES ($1)", version); err != nil {
			_ = tx.Rollback(ctx)
			return errs.Wrap(err, "failed to record migration "+version)
		}

		if err := tx.Commit(ctx); err != nil {
			return errs.Wrap(err, "failed to commit migration "+version)
		}

		logger.Info("migration applied", slog.String("version", version))
	}

	return nil
}

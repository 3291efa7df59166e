package db

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/rs/zerolog"

	"github.com/example/armada/internal/dbal"
)

const createSchemaVersion = `CREATE TABLE IF NOT EXISTS schema_version (
	version INTEGER PRIMARY KEY,
	applied_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
)`

// RunMigrations applies all pending migrations, each in its own transaction.
// It returns the schema version after the run.
func RunMigrations(ctx context.Context, conn *sqlx.DB, logger zerolog.Logger) (int, error) {
	dialect, err := dbal.DialectFor(conn.DriverName())
	if err != nil {
		return 0, err
	}

	if _, err := conn.ExecContext(ctx, createSchemaVersion); err != nil {
		return 0, fmt.Errorf("failed to create schema_version table: %w", err)
	}

	current, err := CurrentVersion(ctx, conn)
	if err != nil {
		return 0, err
	}

	for _, migration := range migrations {
		if migration.Version <= current {
			continue
		}

		statements, ok := migration.Up[dialect.Name]
		if !ok {
			return current, fmt.Errorf("migration %d has no %s statements", migration.Version, dialect.Name)
		}

		logger.Info().Int("version", migration.Version).Str("name", migration.Name).Msg("running migration")

		err := dbal.InTx(ctx, conn, func(tx *sqlx.Tx) error {
			for _, stmt := range statements {
				if _, err := tx.ExecContext(ctx, stmt); err != nil {
					return err
				}
			}
			_, err := tx.ExecContext(ctx, tx.Rebind("INSERT INTO schema_version (version) VALUES (?)"), migration.Version)
			return err
		})
		if err != nil {
			return current, fmt.Errorf("migration %d failed: %w", migration.Version, err)
		}

		current = migration.Version
		logger.Debug().Int("version", migration.Version).Msg("migration completed")
	}

	return current, nil
}

// CurrentVersion returns the highest applied migration version, 0 for a fresh database.
func CurrentVersion(ctx context.Context, conn *sqlx.DB) (int, error) {
	var version int
	err := conn.GetContext(ctx, &version, "SELECT COALESCE(MAX(version), 0) FROM schema_version")
	if err != nil {
		return 0, fmt.Errorf("failed to get current schema version: %w", err)
	}
	return version, nil
}

package database

import (
	"context"
	"embed"
	"fmt"
	"io/fs"

	"github.com/pressly/goose/v3"
	"github.com/rs/zerolog/log"
)

//go:embed migrations
var migrationsFS embed.FS

// Migrator returns a goose provider over the embedded migrations for the
// connected driver.
func (db *DB) Migrator() (*goose.Provider, error) {
	if db.SQL == nil {
		return nil, fmt.Errorf("database is not initialized")
	}

	dir, err := fs.Sub(migrationsFS, "migrations/"+string(db.Driver))
	if err != nil {
		return nil, fmt.Errorf("failed to open migrations for %s: %w", db.Driver, err)
	}

	provider, err := goose.NewProvider(db.Driver.gooseDialect(), db.SQL, dir)
	if err != nil {
		return nil, fmt.Errorf("failed to create migration provider: %w", err)
	}
	return provider, nil
}

// Migrate applies all pending migrations.
func (db *DB) Migrate(ctx context.Context) error {
	provider, err := db.Migrator()
	if err != nil {
		return err
	}

	results, err := provider.Up(ctx)
	if err != nil {
		return fmt.Errorf("failed to apply migrations: %w", err)
	}

	for _, r := range results {
		log.Info().
			Int64("version", r.Source.Version).
			Dur("duration", r.Duration).
			Msg("[DATABASE] Migration applied")
	}

	version, err := provider.GetDBVersion(ctx)
	if err != nil {
		return fmt.Errorf("failed to read schema version: %w", err)
	}
	log.Info().Int64("version", version).Msg("[DATABASE] Schema up to date")

	return nil
}

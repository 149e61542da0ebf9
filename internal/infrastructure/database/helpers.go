package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
)

// Ping checks the connection is alive and responsive.
func (db *DB) Ping(ctx context.Context) error {
	if db.SQL == nil {
		return fmt.Errorf("database is not initialized")
	}

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := db.SQL.PingContext(pingCtx); err != nil {
		return fmt.Errorf("database ping failed: %w", err)
	}
	return nil
}

// HealthCheck pings the database and logs pool statistics.
func (db *DB) HealthCheck(ctx context.Context) error {
	if err := db.Ping(ctx); err != nil {
		return err
	}

	stats := db.SQL.Stats()
	log.Debug().
		Int("open", stats.OpenConnections).
		Int("in_use", stats.InUse).
		Int("idle", stats.Idle).
		Msg("[DATABASE] Health check passed")

	return nil
}

// Stats returns a snapshot of the connection pool.
func (db *DB) Stats() (sql.DBStats, error) {
	if db.SQL == nil {
		return sql.DBStats{}, fmt.Errorf("database is not initialized")
	}
	return db.SQL.Stats(), nil
}

// Close closes the handle and, for postgres, the underlying pool.
// Safe to call more than once.
func (db *DB) Close() error {
	if db.SQL == nil {
		return nil
	}

	log.Info().Msg("[DATABASE] Closing connection")

	err := db.SQL.Close()
	if db.pool != nil {
		db.pool.Close()
		db.pool = nil
	}
	db.SQL = nil

	return err
}

package database

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	_ "github.com/mattn/go-sqlite3"
	"github.com/rs/zerolog/log"
)

// DBConfig holds everything needed to open and tune the relational store.
type DBConfig struct {
	Driver Driver
	DSN    string

	// Connection pool
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration

	// Retry
	MaxRetries     int
	RetryDelay     time.Duration
	ConnectTimeout time.Duration
}

// DB wraps a database/sql handle opened for one of the supported drivers.
// Repositories only see *sql.DB plus the Driver, which supplies the
// dialect-specific SQL fragments.
type DB struct {
	SQL    *sql.DB
	Driver Driver
	Config *DBConfig

	pool *pgxpool.Pool // postgres only, owned by SQL
}

// NewDB creates an unconnected DB for config.
func NewDB(config *DBConfig) *DB {
	return &DB{
		Driver: config.Driver,
		Config: config,
	}
}

// Connect opens the handle and verifies it, retrying with exponential backoff.
func (db *DB) Connect(ctx context.Context) error {
	log.Info().Str("driver", string(db.Driver)).Msg("[DATABASE] Initializing connection")

	if !db.Driver.IsValid() {
		return fmt.Errorf("unsupported database driver %q", db.Driver)
	}

	var lastErr error
	maxRetries := db.Config.MaxRetries
	if maxRetries < 1 {
		maxRetries = 1
	}

	for attempt := 1; attempt <= maxRetries; attempt++ {
		lastErr = db.open(ctx)
		if lastErr == nil {
			log.Info().Int("attempt", attempt).Msg("[DATABASE] Connected")
			return nil
		}

		log.Warn().Err(lastErr).Int("attempt", attempt).Int("max_retries", maxRetries).
			Msg("[DATABASE] Connection attempt failed")

		if attempt < maxRetries {
			// delay = base * 2^(attempt-1)
			delay := db.Config.RetryDelay * time.Duration(1<<uint(attempt-1))

			select {
			case <-time.After(delay):
			case <-ctx.Done():
				return fmt.Errorf("connection cancelled: %w", ctx.Err())
			}
		}
	}

	return fmt.Errorf("failed to connect after %d attempts: %w", maxRetries, lastErr)
}

func (db *DB) open(ctx context.Context) error {
	connectCtx, cancel := context.WithTimeout(ctx, db.connectTimeout())
	defer cancel()

	var (
		handle *sql.DB
		pool   *pgxpool.Pool
		err    error
	)

	switch db.Driver {
	case DriverPostgres:
		pool, handle, err = openPostgres(connectCtx, db.Config)
	default:
		handle, err = openSQLite(db.Config)
	}
	if err != nil {
		return err
	}

	if err := handle.PingContext(connectCtx); err != nil {
		handle.Close()
		if pool != nil {
			pool.Close()
		}
		return fmt.Errorf("database ping failed: %w", err)
	}

	db.SQL = handle
	db.pool = pool
	return nil
}

func (db *DB) connectTimeout() time.Duration {
	if db.Config.ConnectTimeout <= 0 {
		return 10 * time.Second
	}
	return db.Config.ConnectTimeout
}

func openPostgres(ctx context.Context, cfg *DBConfig) (*pgxpool.Pool, *sql.DB, error) {
	poolConfig, err := pgxpool.ParseConfig(cfg.DSN)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to parse database config: %w", err)
	}

	if cfg.MaxOpenConns > 0 {
		poolConfig.MaxConns = int32(cfg.MaxOpenConns)
	}
	if cfg.ConnMaxLifetime > 0 {
		poolConfig.MaxConnLifetime = cfg.ConnMaxLifetime
	}
	if cfg.ConnectTimeout > 0 {
		poolConfig.ConnConfig.ConnectTimeout = cfg.ConnectTimeout
	}

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create pool: %w", err)
	}

	return pool, stdlib.OpenDBFromPool(pool), nil
}

func openSQLite(cfg *DBConfig) (*sql.DB, error) {
	handle, err := sql.Open("sqlite3", sqliteDSN(cfg.DSN))
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite database: %w", err)
	}

	// Each connection to an in-memory database is a separate database.
	if isInMemorySQLite(cfg.DSN) {
		handle.SetMaxOpenConns(1)
	} else if cfg.MaxOpenConns > 0 {
		handle.SetMaxOpenConns(cfg.MaxOpenConns)
	}
	if cfg.MaxIdleConns > 0 {
		handle.SetMaxIdleConns(cfg.MaxIdleConns)
	}
	if cfg.ConnMaxLifetime > 0 {
		handle.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	}

	return handle, nil
}

// sqliteDSN switches on foreign keys and a busy timeout unless the DSN already
// sets them.
func sqliteDSN(dsn string) string {
	dsn = strings.TrimPrefix(dsn, "sqlite://")

	params := []string{}
	if !strings.Contains(dsn, "_foreign_keys") && !strings.Contains(dsn, "_fk") {
		params = append(params, "_foreign_keys=on")
	}
	if !strings.Contains(dsn, "_busy_timeout") && !strings.Contains(dsn, "_timeout") {
		params = append(params, "_busy_timeout=5000")
	}
	if len(params) == 0 {
		return dsn
	}

	sep := "?"
	if strings.Contains(dsn, "?") {
		sep = "&"
	}
	return dsn + sep + strings.Join(params, "&")
}

func isInMemorySQLite(dsn string) bool {
	return strings.Contains(dsn, ":memory:") || strings.Contains(dsn, "mode=memory")
}

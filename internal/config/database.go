package config

import (
	"library-api/internal/infrastructure/database"
)

const (
	DriverSQLite   = string(database.DriverSQLite)
	DriverPostgres = string(database.DriverPostgres)
	DriverMemory   = "memory"
)

// DBConfig converts the database section for the SQL store.
func (c *Config) DBConfig() *database.DBConfig {
	return &database.DBConfig{
		Driver:          database.Driver(c.Database.Driver),
		DSN:             c.Database.DSN,
		MaxOpenConns:    c.Database.MaxOpenConns,
		MaxIdleConns:    c.Database.MaxIdleConns,
		ConnMaxLifetime: c.Database.ConnMaxLifetime,
		MaxRetries:      c.Database.MaxRetries,
		RetryDelay:      c.Database.RetryDelay,
		ConnectTimeout:  c.Database.ConnectTimeout,
	}
}

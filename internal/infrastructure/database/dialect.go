package database

import (
	"fmt"

	"github.com/pressly/goose/v3"
)

// Driver names a supported SQL backend.
type Driver string

const (
	DriverSQLite   Driver = "sqlite"
	DriverPostgres Driver = "postgres"
)

func (d Driver) IsValid() bool {
	return d == DriverSQLite || d == DriverPostgres
}

// Contains returns a case-sensitive substring predicate on column.
func (d Driver) Contains(column, param string) string {
	if d == DriverPostgres {
		return fmt.Sprintf("strpos(%s, %s) > 0", column, param)
	}
	return fmt.Sprintf("instr(%s, %s) > 0", column, param)
}

// HasPrefix returns a case-sensitive prefix predicate on column.
func (d Driver) HasPrefix(column, param string) string {
	if d == DriverPostgres {
		return fmt.Sprintf("starts_with(%s, %s)", column, param)
	}
	return fmt.Sprintf("substr(%s, 1, length(%s)) = %s", column, param, param)
}

func (d Driver) gooseDialect() goose.Dialect {
	if d == DriverPostgres {
		return goose.DialectPostgres
	}
	return goose.DialectSQLite3
}

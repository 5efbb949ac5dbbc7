package database

import (
	"fmt"

	_ "github.com/go-sql-driver/mysql"
	_ "github.com/lib/pq"
	_ "github.com/mattn/go-sqlite3"
)

// dialect holds the per-driver DDL for the record table.
type dialect struct {
	driver      string
	createTable string
}

var dialects = map[string]dialect{
	"sqlite3": {
		driver: "sqlite3",
		createTable: `CREATE TABLE IF NOT EXISTS %s (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    first_name TEXT NOT NULL,
    last_name TEXT NOT NULL
)`,
	},
	"postgres": {
		driver: "postgres",
		createTable: `CREATE TABLE IF NOT EXISTS %s (
    id SERIAL PRIMARY KEY,
    first_name TEXT NOT NULL,
    last_name TEXT NOT NULL
)`,
	},
	"mysql": {
		driver: "mysql",
		createTable: `CREATE TABLE IF NOT EXISTS %s (
    id INTEGER PRIMARY KEY AUTO_INCREMENT,
    first_name VARCHAR(255) NOT NULL,
    last_name VARCHAR(255) NOT NULL
)`,
	},
}

func lookupDialect(driver string) (dialect, error) {
	if driver == "sqlite" {
		driver = "sqlite3"
	}
	d, ok := dialects[driver]
	if !ok {
		return dialect{}, fmt.Errorf("unsupported database driver %q", driver)
	}
	return d, nil
}

// CreateTableSQL returns the CREATE TABLE IF NOT EXISTS statement for table.
func (d dialect) CreateTableSQL(table string) string {
	return fmt.Sprintf(d.createTable, table)
}

// SupportedDriver reports whether driver names a known dialect, including
// the "sqlite" alias.
func SupportedDriver(driver string) bool {
	_, err := lookupDialect(driver)
	return err == nil
}

// Package database implements the record store: a table of known
// (first_name, last_name) pairs used to cross-check the UI listing.
package database

import (
	"context"
	"fmt"
	"regexp"

	"github.com/jmoiron/sqlx"

	"github.com/gotrs-io/hrm-e2e/internal/models"
)

var tableNameRe = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// Opener returns a ready connection for one store operation.
type Opener func(ctx context.Context) (*sqlx.DB, error)

// RecordStore is a key-uniqueness-checked table of employee records. Every
// operation opens its own connection and closes it before returning, and
// every statement commits on its own.
type RecordStore struct {
	dialect dialect
	dsn     string
	table   string
	open    Opener
}

// Option customises a RecordStore.
type Option func(*RecordStore)

// WithOpener replaces how connections are obtained. Tests use it to inject
// sqlmock connections.
func WithOpener(o Opener) Option {
	return func(s *RecordStore) { s.open = o }
}

// NewRecordStore creates a store for the given driver (sqlite3, postgres or
// mysql), DSN and table name. No connection is made until the first call.
func NewRecordStore(driver, dsn, table string, opts ...Option) (*RecordStore, error) {
	d, err := lookupDialect(driver)
	if err != nil {
		return nil, err
	}
	if !tableNameRe.MatchString(table) {
		return nil, fmt.Errorf("invalid table name %q", table)
	}

	s := &RecordStore{dialect: d, dsn: dsn, table: table}
	s.open = s.connect
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

func (s *RecordStore) connect(ctx context.Context) (*sqlx.DB, error) {
	return sqlx.ConnectContext(ctx, s.dialect.driver, s.dsn)
}

// Table returns the record table name.
func (s *RecordStore) Table() string {
	return s.table
}

func (s *RecordStore) withDB(ctx context.Context, op string, fn func(*sqlx.DB) error) error {
	db, err := s.open(ctx)
	if err != nil {
		return unavailable(op, err)
	}
	defer db.Close()

	if err := fn(db); err != nil {
		return unavailable(op, err)
	}
	return nil
}

// EnsureSchema creates the record table if it does not exist.
func (s *RecordStore) EnsureSchema(ctx context.Context) error {
	return s.withDB(ctx, "ensure schema", func(db *sqlx.DB) error {
		_, err := db.ExecContext(ctx, s.dialect.CreateTableSQL(s.table))
		return err
	})
}

// Seed inserts each record whose exact (first_name, last_name) pair is not
// already present. It returns how many rows were inserted.
func (s *RecordStore) Seed(ctx context.Context, records []models.EmployeeRecord) (int, error) {
	inserted := 0
	err := s.withDB(ctx, "seed", func(db *sqlx.DB) error {
		insert := db.Rebind(fmt.Sprintf("INSERT INTO %s (first_name, last_name) VALUES (?, ?)", s.table))
		for _, r := range records {
			exists, err := s.exists(ctx, db, r.FirstName, r.LastName)
			if err != nil {
				return err
			}
			if exists {
				continue
			}
			if _, err := db.ExecContext(ctx, insert, r.FirstName, r.LastName); err != nil {
				return fmt.Errorf("insert %q: %w", r.DisplayName(), err)
			}
			inserted++
		}
		return nil
	})
	return inserted, err
}

// Exists reports whether a row matches the exact name pair.
func (s *RecordStore) Exists(ctx context.Context, firstName, lastName string) (bool, error) {
	var found bool
	err := s.withDB(ctx, "exists", func(db *sqlx.DB) error {
		var err error
		found, err = s.exists(ctx, db, firstName, lastName)
		return err
	})
	return found, err
}

func (s *RecordStore) exists(ctx context.Context, db *sqlx.DB, firstName, lastName string) (bool, error) {
	var n int
	query := db.Rebind(fmt.Sprintf("SELECT COUNT(*) FROM %s WHERE first_name = ? AND last_name = ?", s.table))
	if err := db.GetContext(ctx, &n, query, firstName, lastName); err != nil {
		return false, err
	}
	return n > 0, nil
}

// Count returns the number of rows in the record table.
func (s *RecordStore) Count(ctx context.Context) (int, error) {
	var n int
	err := s.withDB(ctx, "count", func(db *sqlx.DB) error {
		return db.GetContext(ctx, &n, fmt.Sprintf("SELECT COUNT(*) FROM %s", s.table))
	})
	return n, err
}

// List returns every row ordered by id.
func (s *RecordStore) List(ctx context.Context) ([]models.EmployeeRow, error) {
	var rows []models.EmployeeRow
	err := s.withDB(ctx, "list", func(db *sqlx.DB) error {
		return db.SelectContext(ctx, &rows, fmt.Sprintf("SELECT id, first_name, last_name FROM %s ORDER BY id", s.table))
	})
	return rows, err
}

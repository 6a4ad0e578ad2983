// Package duckdb writes analysis tables to a DuckDB database.
package duckdb

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "github.com/marcboeker/go-duckdb"

	"github.com/inodb/vibe-gff/internal/schema"
)

// Store is a schema.Writer backed by a DuckDB database file. Every
// database it opens carries the runs table.
type Store struct {
	db   *sql.DB
	path string
}

// Open opens the analysis database at path, creating the file and its
// directory when missing. An empty path gives an in-memory database.
func Open(path string) (*Store, error) {
	if path != "" {
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			return nil, fmt.Errorf("create output directory for %s: %w", path, err)
		}
	}

	db, err := sql.Open("duckdb", path)
	if err != nil {
		return nil, fmt.Errorf("open duckdb %q: %w", path, err)
	}
	s := &Store{db: db, path: path}
	if err := s.ensureSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("create runs table: %w", err)
	}
	return s, nil
}

// Close flushes and closes the database.
func (s *Store) Close() error {
	return s.db.Close()
}

// DB exposes the connection pool for queries over the written tables.
func (s *Store) DB() *sql.DB {
	return s.db
}

// Path returns the database path, empty for in-memory databases.
func (s *Store) Path() string {
	return s.path
}

// ensureSchema creates the runs table, which every output carries.
func (s *Store) ensureSchema() error {
	_, err := s.db.Exec(schema.DDL(schema.Runs, typeName, true))
	return err
}

func typeName(t schema.ColumnType) string {
	switch t {
	case schema.Integer:
		return "BIGINT"
	case schema.Real:
		return "DOUBLE"
	}
	return "VARCHAR"
}

// CreateTable creates t if it does not exist, or replaces it.
func (s *Store) CreateTable(ctx context.Context, t schema.Table, replace bool) error {
	stmt := schema.DDL(t, typeName, !replace)
	if replace {
		stmt = "CREATE OR REPLACE TABLE" + stmt[len("CREATE TABLE"):]
	}
	if _, err := s.db.ExecContext(ctx, stmt); err != nil {
		return fmt.Errorf("create table %s: %w", t.Name, err)
	}
	return nil
}

// Count returns the number of rows in the named table.
func (s *Store) Count(ctx context.Context, table string) (int64, error) {
	var n int64
	err := s.db.QueryRowContext(ctx, "SELECT count(*) FROM "+schema.Quote(table)).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count %s: %w", table, err)
	}
	return n, nil
}

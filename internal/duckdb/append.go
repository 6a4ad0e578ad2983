package duckdb

import (
	"context"
	"database/sql/driver"
	"fmt"

	goduckdb "github.com/marcboeker/go-duckdb"

	"github.com/inodb/vibe-gff/internal/schema"
)

// Append batch-inserts rows into t using the Appender API.
func (s *Store) Append(ctx context.Context, t schema.Table, rows [][]any) error {
	if len(rows) == 0 {
		return nil
	}

	conn, err := s.db.Conn(ctx)
	if err != nil {
		return fmt.Errorf("get connection: %w", err)
	}
	defer conn.Close()

	var appender *goduckdb.Appender
	if err := conn.Raw(func(driverConn any) error {
		var err error
		appender, err = goduckdb.NewAppenderFromConn(driverConn.(driver.Conn), "", t.Name)
		return err
	}); err != nil {
		return fmt.Errorf("create appender: %w", err)
	}
	defer appender.Close()

	values := make([]driver.Value, len(t.Columns))
	for i, row := range rows {
		if len(row) != len(t.Columns) {
			return fmt.Errorf("row %d of %s has %d values, want %d", i, t.Name, len(row), len(t.Columns))
		}
		for j, v := range row {
			values[j] = v
		}
		if err := appender.AppendRow(values...); err != nil {
			return fmt.Errorf("append %s row: %w", t.Name, err)
		}
	}

	return appender.Flush()
}

package main

import (
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/cockroachdb/errors"

	"github.com/inodb/vibe-gff/internal/duckdb"
	"github.com/inodb/vibe-gff/internal/output"
	"github.com/inodb/vibe-gff/internal/schema"
	"github.com/inodb/vibe-gff/internal/sqlite"
)

// Output formats.
const (
	FormatDuckDB = "duckdb"
	FormatSQLite = "sqlite"
	FormatTab    = "tab"
)

// detectFormat picks the output format from the file extension.
func detectFormat(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".duckdb", ".ddb":
		return FormatDuckDB
	case ".sqlite", ".sqlite3", ".db":
		return FormatSQLite
	}
	return FormatTab
}

// target is an opened output.
type target struct {
	schema.Writer
	format string
	close  func() error
}

// openTarget opens the output at path in the given format, detected from
// the extension when empty. "-" writes tab-delimited text to stdout.
func openTarget(path, format string, stdout io.Writer) (*target, error) {
	if format == "" {
		format = detectFormat(path)
	}

	switch format {
	case FormatDuckDB:
		s, err := duckdb.Open(path)
		if err != nil {
			return nil, errors.Wrapf(err, "open output %s", path)
		}
		return &target{Writer: s, format: format, close: s.Close}, nil

	case FormatSQLite:
		s, err := sqlite.Open(path)
		if err != nil {
			return nil, errors.Wrapf(err, "open output %s", path)
		}
		return &target{Writer: s, format: format, close: s.Close}, nil

	case FormatTab:
		if path == "-" || path == "" {
			tw := output.NewTabWriter(stdout)
			return &target{Writer: tw, format: format, close: tw.Flush}, nil
		}
		f, err := os.Create(path)
		if err != nil {
			return nil, errors.Wrapf(err, "create output %s", path)
		}
		tw := output.NewTabWriter(f)
		return &target{Writer: tw, format: format, close: func() error {
			if err := tw.Flush(); err != nil {
				f.Close()
				return err
			}
			return f.Close()
		}}, nil
	}

	return nil, errors.WithHintf(errors.Newf("unknown output format %q", format),
		"use one of %s, %s, %s", FormatDuckDB, FormatSQLite, FormatTab)
}

// Package output writes analysis tables as tab-delimited text.
package output

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/inodb/vibe-gff/internal/schema"
)

// Missing is written for NULL values.
const Missing = "-"

// TabWriter writes each table as a "#table" line, a header line and the
// rows, with a blank line between tables.
type TabWriter struct {
	w       *bufio.Writer
	current string
	tables  int
	noTitle bool
}

// NewTabWriter creates a new tab-delimited writer.
func NewTabWriter(w io.Writer) *TabWriter {
	return &TabWriter{w: bufio.NewWriter(w)}
}

// SetTitles controls whether each table is preceded by its "#name" line.
func (tw *TabWriter) SetTitles(on bool) {
	tw.noTitle = !on
}

// CreateTable starts a new table section. Replacement has no meaning for a
// stream and is ignored.
func (tw *TabWriter) CreateTable(_ context.Context, t schema.Table, _ bool) error {
	if tw.tables > 0 {
		if err := tw.w.WriteByte('\n'); err != nil {
			return err
		}
	}
	tw.tables++
	tw.current = t.Name

	if !tw.noTitle {
		if _, err := tw.w.WriteString("#" + t.Name + "\n"); err != nil {
			return err
		}
	}
	_, err := tw.w.WriteString(strings.Join(t.ColumnNames(), "\t") + "\n")
	return err
}

// Append writes rows to the current table section.
func (tw *TabWriter) Append(_ context.Context, t schema.Table, rows [][]any) error {
	if t.Name != tw.current {
		return fmt.Errorf("append to %s: current table is %q", t.Name, tw.current)
	}

	values := make([]string, len(t.Columns))
	for _, row := range rows {
		if len(row) != len(t.Columns) {
			return fmt.Errorf("row of %s has %d values, want %d", t.Name, len(row), len(t.Columns))
		}
		for i, v := range row {
			values[i] = format(v)
		}
		if _, err := tw.w.WriteString(strings.Join(values, "\t") + "\n"); err != nil {
			return err
		}
	}
	return nil
}

func format(v any) string {
	switch x := v.(type) {
	case nil:
		return Missing
	case string:
		if x == "" {
			return Missing
		}
		return x
	case int64:
		return strconv.FormatInt(x, 10)
	case float64:
		return strconv.FormatFloat(x, 'g', -1, 64)
	}
	return fmt.Sprint(v)
}

// Flush flushes any buffered data to the underlying writer.
func (tw *TabWriter) Flush() error {
	return tw.w.Flush()
}

// Package schema defines the flat output tables and converts analysis
// results into their rows.
package schema

import (
	"context"
	"strings"
)

// ColumnType is the storage class of a column.
type ColumnType int

const (
	Text ColumnType = iota
	Integer
	Real
)

// Column is a named, typed table column.
type Column struct {
	Name string
	Type ColumnType
}

// Table is a named list of columns. Row values are string, int64, float64
// or nil for NULL, in column order.
type Table struct {
	Name    string
	Columns []Column
}

// ColumnNames returns the column names in order.
func (t Table) ColumnNames() []string {
	names := make([]string, len(t.Columns))
	for i, c := range t.Columns {
		names[i] = c.Name
	}
	return names
}

// Quote quotes an identifier for SQL.
func Quote(name string) string {
	return `"` + strings.ReplaceAll(name, `"`, `""`) + `"`
}

// Writer persists rows into tables.
type Writer interface {
	// CreateTable creates t if it does not exist. With replace, an existing
	// table of the same name is dropped first.
	CreateTable(ctx context.Context, t Table, replace bool) error
	// Append adds rows to t.
	Append(ctx context.Context, t Table, rows [][]any) error
}

func texts(names ...string) []Column {
	cols := make([]Column, len(names))
	for i, n := range names {
		cols[i] = Column{Name: n, Type: Text}
	}
	return cols
}

func ints(names ...string) []Column {
	cols := make([]Column, len(names))
	for i, n := range names {
		cols[i] = Column{Name: n, Type: Integer}
	}
	return cols
}

func reals(names ...string) []Column {
	cols := make([]Column, len(names))
	for i, n := range names {
		cols[i] = Column{Name: n, Type: Real}
	}
	return cols
}

func columns(groups ...[]Column) []Column {
	var cols []Column
	for _, g := range groups {
		cols = append(cols, g...)
	}
	return cols
}

var location = columns(
	texts("seqid", "source"),
	ints("start", "end"),
	texts("strand"),
)

// Output tables.
var (
	Genes = Table{Name: "genes", Columns: columns(
		texts("analysis", "ID", "Parent", "Name", "biotype"),
		location,
		texts("attributes"),
	)}

	Transcripts = Table{Name: "transcripts", Columns: columns(
		texts("analysis", "ID", "Parent"),
		location,
		texts("tag", "transcript_support_level", "attributes"),
	)}

	Exons = Table{Name: "exons", Columns: columns(
		texts("analysis", "ID", "Parent"),
		location,
	)}

	CDS = Table{Name: "cds", Columns: Exons.Columns}

	Sequences = Table{Name: "sequences", Columns: columns(
		texts("analysis", "seqid"),
		ints("start", "end", "sequence_length"),
	)}

	GeneSummary = Table{Name: "gene_summary", Columns: columns(
		texts("analysis", "ID"),
		ints("number_of_transcripts"),
		reals(
			"max_transcript_length", "min_transcript_length",
			"mean_transcript_length", "median_transcript_length",
			"mean_exons", "median_exons", "max_exons", "min_exons",
		),
	)}

	GeneStatistics = Table{Name: "gene_statistics", Columns: columns(
		texts("analysis"),
		ints("total_genes", "total_single_exon_genes"),
		reals("proportion_single_exon_genes", "longest_gene", "shortest_gene", "highest_exon_count"),
		ints("highest_transcript_count"),
	)}

	CoverageStatistics = Table{Name: "coverage_statistics", Columns: columns(
		texts("analysis", "feature_type", "seqid"),
		ints("sequence_length", "bases_covered"),
		reals("proportion_covered"),
	)}

	Records = Table{Name: "gff_data", Columns: columns(
		texts("analysis", "ID", "Parent", "Name", "seqid", "source", "type"),
		ints("start", "end"),
		reals("score"),
		texts("strand", "phase", "attributes"),
	)}

	Runs = Table{Name: "runs", Columns: columns(
		texts("run_id", "analysis", "command", "input"),
		ints("input_size"),
		texts("input_modified", "started_at", "finished_at"),
		ints("records"),
	)}
)

// All lists every table.
var All = []Table{
	Genes, Transcripts, Exons, CDS, Sequences,
	GeneSummary, GeneStatistics, CoverageStatistics,
	Records, Runs,
}

// DDL returns the CREATE TABLE statement for t, mapping each column type
// through typeName.
func DDL(t Table, typeName func(ColumnType) string, ifNotExists bool) string {
	var b strings.Builder
	b.WriteString("CREATE TABLE ")
	if ifNotExists {
		b.WriteString("IF NOT EXISTS ")
	}
	b.WriteString(Quote(t.Name))
	b.WriteString(" (")
	for i, c := range t.Columns {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(Quote(c.Name))
		b.WriteString(" ")
		b.WriteString(typeName(c.Type))
	}
	b.WriteString(")")
	return b.String()
}

// Insert returns a parameterised INSERT statement for t.
func Insert(t Table) string {
	quoted := make([]string, len(t.Columns))
	for i, c := range t.Columns {
		quoted[i] = Quote(c.Name)
	}
	placeholders := strings.TrimSuffix(strings.Repeat("?, ", len(t.Columns)), ", ")
	return "INSERT INTO " + Quote(t.Name) + " (" + strings.Join(quoted, ", ") + ") VALUES (" + placeholders + ")"
}

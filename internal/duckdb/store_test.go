package duckdb

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inodb/vibe-gff/internal/analysis"
	"github.com/inodb/vibe-gff/internal/schema"
)

func openInMemory(t *testing.T) *Store {
	t.Helper()
	s, err := Open("")
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func loadSample(t *testing.T) *analysis.Unpacked {
	t.Helper()
	u, err := analysis.New(analysis.DefaultConfig("test")).LoadFile(context.Background(), "../../testdata/sample.gff3")
	require.NoError(t, err)
	return u
}

func TestOpenClose(t *testing.T) {
	s := openInMemory(t)
	assert.NotNil(t, s.DB())
	assert.Empty(t, s.Path())

	n, err := s.Count(context.Background(), "runs")
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestCreateAndAppend(t *testing.T) {
	s := openInMemory(t)
	ctx := context.Background()

	require.NoError(t, s.CreateTable(ctx, schema.Sequences, false))
	require.NoError(t, s.Append(ctx, schema.Sequences, [][]any{
		{"a", "chr1", int64(1), int64(100), int64(100)},
		{"a", "chr2", int64(1), int64(50), int64(50)},
	}))

	var total int64
	require.NoError(t, s.DB().QueryRow(`SELECT sum(sequence_length) FROM sequences`).Scan(&total))
	assert.Equal(t, int64(150), total)
}

func TestAppend_Empty(t *testing.T) {
	s := openInMemory(t)
	assert.NoError(t, s.Append(context.Background(), schema.Sequences, nil))
}

func TestAppend_RowWidth(t *testing.T) {
	s := openInMemory(t)
	ctx := context.Background()
	require.NoError(t, s.CreateTable(ctx, schema.Sequences, false))

	err := s.Append(ctx, schema.Sequences, [][]any{{"a", "chr1"}})
	assert.ErrorContains(t, err, "has 2 values")
}

func TestAppendThenReplace(t *testing.T) {
	s := openInMemory(t)
	ctx := context.Background()
	row := [][]any{{"a", "chr1", int64(1), int64(100), int64(100)}}

	require.NoError(t, s.CreateTable(ctx, schema.Sequences, false))
	require.NoError(t, s.Append(ctx, schema.Sequences, row))
	require.NoError(t, s.CreateTable(ctx, schema.Sequences, false))
	require.NoError(t, s.Append(ctx, schema.Sequences, row))

	n, err := s.Count(ctx, "sequences")
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)

	require.NoError(t, s.CreateTable(ctx, schema.Sequences, true))
	n, err = s.Count(ctx, "sequences")
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestPublish(t *testing.T) {
	s := openInMemory(t)
	ctx := context.Background()

	p := schema.NewPublisher(s, schema.Options{StoreTranscripts: true})
	_, err := p.Publish(ctx, loadSample(t))
	require.NoError(t, err)

	var proportion float64
	require.NoError(t, s.DB().QueryRow(
		`SELECT proportion_covered FROM coverage_statistics WHERE feature_type = 'genes' AND seqid IS NULL`,
	).Scan(&proportion))
	assert.InDelta(t, 0.2, proportion, 1e-12)

	var mean sql.NullFloat64
	require.NoError(t, s.DB().QueryRow(
		`SELECT mean_exons FROM gene_summary WHERE "ID" = 'G4'`,
	).Scan(&mean))
	assert.False(t, mean.Valid)

	var tag sql.NullString
	require.NoError(t, s.DB().QueryRow(`SELECT tag FROM transcripts WHERE "ID" = 'T1'`).Scan(&tag))
	assert.Equal(t, "basic", tag.String)

	for table, want := range map[string]int64{"genes": 3, "exons": 4, "cds": 3, "gene_statistics": 1} {
		n, err := s.Count(ctx, table)
		require.NoError(t, err)
		assert.Equal(t, want, n, table)
	}
}

func TestRecordRun(t *testing.T) {
	s := openInMemory(t)
	ctx := context.Background()

	run := schema.NewRun("test", "summarise", schema.InputFingerprint{Path: "x.gff3"})
	require.NoError(t, schema.NewPublisher(s, schema.Options{Overwrite: true}).RecordRun(ctx, run))

	var id string
	require.NoError(t, s.DB().QueryRow(`SELECT run_id FROM runs`).Scan(&id))
	assert.Equal(t, run.ID.String(), id)
}

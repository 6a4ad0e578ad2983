package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"path/filepath"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inodb/vibe-gff/internal/analysis"
	"github.com/inodb/vibe-gff/internal/schema"
)

func openInMemory(t *testing.T) *Store {
	t.Helper()
	s, err := Open(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func count(t *testing.T, s *Store, table string) int {
	t.Helper()
	var n int
	require.NoError(t, s.DB().QueryRow("SELECT count(*) FROM "+schema.Quote(table)).Scan(&n))
	return n
}

func TestOpen(t *testing.T) {
	s := openInMemory(t)
	assert.Zero(t, count(t, s, "runs"))
}

func TestOpen_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "out.sqlite")
	s, err := Open(path)
	require.NoError(t, err)
	require.NoError(t, s.Close())
	assert.FileExists(t, path)
}

func TestAppendAndOverwrite(t *testing.T) {
	s := openInMemory(t)
	ctx := context.Background()
	rows := [][]any{{"a", "chr1", int64(1), int64(100), int64(100)}}

	for range 2 {
		require.NoError(t, s.CreateTable(ctx, schema.Sequences, false))
		require.NoError(t, s.Append(ctx, schema.Sequences, rows))
	}
	assert.Equal(t, 2, count(t, s, "sequences"))

	require.NoError(t, s.CreateTable(ctx, schema.Sequences, true))
	assert.Zero(t, count(t, s, "sequences"))
}

func TestPublish(t *testing.T) {
	s := openInMemory(t)
	ctx := context.Background()

	u, err := analysis.New(analysis.DefaultConfig("test")).LoadFile(ctx, "../../testdata/sample.gff3")
	require.NoError(t, err)

	_, err = schema.NewPublisher(s, schema.Options{}).Publish(ctx, u)
	require.NoError(t, err)

	assert.Equal(t, 3, count(t, s, "genes"))
	assert.Equal(t, 9, count(t, s, "coverage_statistics"))

	var longest float64
	require.NoError(t, s.DB().QueryRow(`SELECT longest_gene FROM gene_statistics`).Scan(&longest))
	assert.Equal(t, 2000.0, longest)

	var median sql.NullFloat64
	require.NoError(t, s.DB().QueryRow(`SELECT median_transcript_length FROM gene_summary WHERE "ID" = 'G4'`).Scan(&median))
	assert.False(t, median.Valid)
}

func TestAppend_Statements(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	rows := [][]any{
		{"a", "chr1", int64(1), int64(100), int64(100)},
		{"a", "chr2", int64(1), int64(50), int64(50)},
	}

	mock.ExpectBegin()
	prep := mock.ExpectPrepare(regexp.QuoteMeta(schema.Insert(schema.Sequences)))
	prep.ExpectExec().WithArgs("a", "chr1", int64(1), int64(100), int64(100)).WillReturnResult(sqlmock.NewResult(1, 1))
	prep.ExpectExec().WithArgs("a", "chr2", int64(1), int64(50), int64(50)).WillReturnResult(sqlmock.NewResult(2, 1))
	mock.ExpectCommit()

	require.NoError(t, New(db).Append(context.Background(), schema.Sequences, rows))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAppend_RollsBackOnError(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectBegin()
	prep := mock.ExpectPrepare(`INSERT INTO "sequences"`)
	prep.ExpectExec().WillReturnError(errors.New("disk I/O error"))
	mock.ExpectRollback()

	err = New(db).Append(context.Background(), schema.Sequences, [][]any{{"a", "chr1", int64(1), int64(2), int64(2)}})
	assert.ErrorContains(t, err, "disk I/O error")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateTable_Replace(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectExec(regexp.QuoteMeta(`DROP TABLE IF EXISTS "genes"`)).WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec(regexp.QuoteMeta(`CREATE TABLE IF NOT EXISTS "genes"`)).WillReturnResult(sqlmock.NewResult(0, 0))

	require.NoError(t, New(db).CreateTable(context.Background(), schema.Genes, true))
	assert.NoError(t, mock.ExpectationsWereMet())
}

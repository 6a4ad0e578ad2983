package output

import (
	"bytes"
	"context"
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inodb/vibe-gff/internal/analysis"
	"github.com/inodb/vibe-gff/internal/schema"
)

func TestTabWriter_Table(t *testing.T) {
	var buf bytes.Buffer
	w := NewTabWriter(&buf)
	ctx := context.Background()

	require.NoError(t, w.CreateTable(ctx, schema.Sequences, false))
	require.NoError(t, w.Append(ctx, schema.Sequences, [][]any{
		{"a", "chr1", int64(1), int64(100), int64(100)},
	}))
	require.NoError(t, w.Append(ctx, schema.Sequences, [][]any{
		{"a", "chr2", int64(1), int64(50), int64(50)},
	}))
	require.NoError(t, w.Flush())

	assert.Equal(t, "#sequences\n"+
		"analysis\tseqid\tstart\tend\tsequence_length\n"+
		"a\tchr1\t1\t100\t100\n"+
		"a\tchr2\t1\t50\t50\n", buf.String())
}

func TestTabWriter_Values(t *testing.T) {
	tests := []struct {
		in   any
		want string
	}{
		{nil, "-"},
		{"", "-"},
		{"x", "x"},
		{int64(-3), "-3"},
		{0.25, "0.25"},
		{1500.0, "1500"},
		{math.Inf(1), "+Inf"},
		{true, "true"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, format(tt.in))
	}
}

func TestTabWriter_Errors(t *testing.T) {
	var buf bytes.Buffer
	w := NewTabWriter(&buf)
	ctx := context.Background()

	assert.Error(t, w.Append(ctx, schema.Genes, nil))

	require.NoError(t, w.CreateTable(ctx, schema.Sequences, false))
	assert.Error(t, w.Append(ctx, schema.Sequences, [][]any{{"a"}}))
}

func TestTabWriter_Publish(t *testing.T) {
	ctx := context.Background()
	u, err := analysis.New(analysis.DefaultConfig("test")).LoadFile(ctx, "../../testdata/sample.gff3")
	require.NoError(t, err)

	var buf bytes.Buffer
	w := NewTabWriter(&buf)
	_, err = schema.NewPublisher(w, schema.Options{}).Publish(ctx, u)
	require.NoError(t, err)
	require.NoError(t, w.Flush())

	sections := strings.Split(strings.TrimSuffix(buf.String(), "\n"), "\n\n")
	require.Len(t, sections, 5)
	assert.True(t, strings.HasPrefix(sections[0], "#genes\n"))
	assert.Contains(t, sections[2], "test\tG4\t0\t-\t-")

	stats := strings.Split(sections[3], "\n")
	require.Len(t, stats, 3)
	assert.Equal(t, "test\t3\t1\t0.5\t2000\t500\t1.5\t2", stats[2])
}

func TestTabWriter_NoTitles(t *testing.T) {
	var buf bytes.Buffer
	w := NewTabWriter(&buf)
	w.SetTitles(false)

	require.NoError(t, w.CreateTable(context.Background(), schema.Sequences, false))
	require.NoError(t, w.Flush())
	assert.Equal(t, "analysis\tseqid\tstart\tend\tsequence_length\n", buf.String())
}

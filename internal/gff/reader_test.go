package gff

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testGFF = `##gff-version 3
##sequence-region   chr1 1 5000
#description: test data
chr1	me	gene	1	1000	.	+	.	ID=gene1;other_data=stuff
chr1	me	exon	1	1000	.	+	.	ID=gene1.1;Parent=gene1

chr10	me	gene	1	1000	.	+	.	ID=gene2;gene_id=my_test_gene
##sequence-region   chr10 1 9000
chr10	me	transcript	1	1000	.	+	.	ID=transcript1;Parent=gene2
chr10	me	exon	1	1000	.	+	.	ID=my_test_exon;Parent=transcript1
chr10	me	transcript	1	1000	.	+	.	ID=transcript2;Parent=gene2
`

func TestReader_Next(t *testing.T) {
	r := NewReader(strings.NewReader(testGFF))

	var features []*Feature
	for {
		f, err := r.Next()
		require.NoError(t, err)
		if f == nil {
			break
		}
		features = append(features, f)
	}

	require.Len(t, features, 6)
	assert.Equal(t, "gene", features[0].Type)
	assert.Equal(t, 4, features[0].Line)
	assert.Equal(t, "chr10", features[2].Seqid)
	assert.Equal(t, int64(1), features[2].Start)
	assert.Equal(t, int64(1000), features[2].End)

	// Only header sequence regions are collected.
	assert.Equal(t, []SequenceRegion{{Seqid: "chr1", Start: 1, End: 5000}}, r.SequenceRegions())

	// Exhausted readers keep returning nil.
	f, err := r.Next()
	require.NoError(t, err)
	assert.Nil(t, f)
}

func TestReader_NextBatch(t *testing.T) {
	r := NewReader(strings.NewReader(testGFF))

	var sizes []int
	for {
		batch, err := r.NextBatch(4)
		require.NoError(t, err)
		if len(batch) == 0 {
			break
		}
		sizes = append(sizes, len(batch))
	}
	assert.Equal(t, []int{4, 2}, sizes)
}

func TestReader_StopsAtFASTA(t *testing.T) {
	input := "chr1\tme\tgene\t1\t10\t.\t+\t.\tID=g\n##FASTA\n>chr1\nACGT\n"
	r := NewReader(strings.NewReader(input))

	batch, err := r.NextBatch(10)
	require.NoError(t, err)
	assert.Len(t, batch, 1)
}

func TestReader_MalformedLine(t *testing.T) {
	input := "chr1\tme\tgene\t1\t10\t.\t+\t.\tID=g\nchr1\tme\tgene\t1\t10\n"
	r := NewReader(strings.NewReader(input))

	_, err := r.NextBatch(10)
	var e *MalformedRecordError
	require.ErrorAs(t, err, &e)
	assert.Equal(t, 2, e.Line)
}

func TestOpen_Gzip(t *testing.T) {
	for _, path := range []string{"../../testdata/sample.gff3", "../../testdata/sample.gff3.gz"} {
		t.Run(path, func(t *testing.T) {
			f, err := Open(path)
			require.NoError(t, err)
			defer f.Close()

			r := NewReader(f)
			batch, err := r.NextBatch(1000)
			require.NoError(t, err)
			assert.Len(t, batch, 17)
			assert.Len(t, r.SequenceRegions(), 2)
		})
	}
}

func TestOpen_Missing(t *testing.T) {
	_, err := Open("../../testdata/does-not-exist.gff3")
	require.Error(t, err)
}

func TestReadAll(t *testing.T) {
	features, regions, err := ReadAll(context.Background(), strings.NewReader(testGFF), Options{Workers: 3, BatchSize: 2})
	require.NoError(t, err)

	require.Len(t, features, 6)
	for i := 1; i < len(features); i++ {
		assert.Less(t, features[i-1].Line, features[i].Line, "features out of file order")
	}
	assert.Equal(t, []SequenceRegion{{Seqid: "chr1", Start: 1, End: 5000}}, regions)
}

func TestReadAll_FirstErrorInFileOrder(t *testing.T) {
	var sb strings.Builder
	for i := 1; i <= 200; i++ {
		switch i {
		case 57:
			sb.WriteString("chr1\tme\texon\tx\t10\t.\t+\t.\tID=bad\n")
		case 150:
			sb.WriteString("chr1\tme\texon\t1\n")
		default:
			fmt.Fprintf(&sb, "chr1\tme\texon\t%d\t%d\t.\t+\t.\tID=e%d\n", i, i+10, i)
		}
	}

	_, _, err := ReadAll(context.Background(), strings.NewReader(sb.String()), Options{Workers: 4, BatchSize: 8})
	var e *InvalidCoordinateError
	require.ErrorAs(t, err, &e)
	assert.Equal(t, 57, e.Line)
}

func TestReadAll_Empty(t *testing.T) {
	features, regions, err := ReadAll(context.Background(), strings.NewReader(""), Options{})
	require.NoError(t, err)
	assert.Empty(t, features)
	assert.Empty(t, regions)
}

func TestReadAll_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var sb strings.Builder
	for i := 1; i <= 100; i++ {
		fmt.Fprintf(&sb, "chr1\tme\texon\t%d\t%d\t.\t+\t.\tID=e%d\n", i, i+10, i)
	}
	_, _, err := ReadAll(ctx, strings.NewReader(sb.String()), Options{Workers: 1, BatchSize: 1})
	require.ErrorIs(t, err, context.Canceled)
}

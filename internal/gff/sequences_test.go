package gff

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadSequenceRegions(t *testing.T) {
	input := `##gff-version 3
##sequence-region   1 1 248956422
##sequence-region   2 1 242193529
#!genome-build  GRCh38.p13
##sequence-region extra tokens MT 1 16569

1	GRCh38	chromosome	1	248956422	.	.	.	ID=chromosome:1
##sequence-region   3 1 198295559
`
	regions, err := ReadSequenceRegions(strings.NewReader(input))
	require.NoError(t, err)

	require.Len(t, regions, 3)
	assert.Equal(t, SequenceRegion{Seqid: "1", Start: 1, End: 248956422}, regions[0])
	assert.Equal(t, "2", regions[1].Seqid)
	assert.Equal(t, SequenceRegion{Seqid: "MT", Start: 1, End: 16569}, regions[2])
	assert.Equal(t, int64(16569), regions[2].Length())
}

func TestReadSequenceRegions_BlankLineEndsHeader(t *testing.T) {
	input := "##gff-version 3\n##sequence-region 1 1 100\n\n##sequence-region 2 1 50\n"

	regions, err := ReadSequenceRegions(strings.NewReader(input))
	require.NoError(t, err)
	assert.Equal(t, []SequenceRegion{{Seqid: "1", Start: 1, End: 100}}, regions)

	r := NewReader(strings.NewReader(input))
	f, err := r.Next()
	require.NoError(t, err)
	assert.Nil(t, f)
	assert.Equal(t, regions, r.SequenceRegions())

	_, all, err := ReadAll(context.Background(), strings.NewReader(input), Options{})
	require.NoError(t, err)
	assert.Equal(t, regions, all)
}

func TestReadSequenceRegions_Empty(t *testing.T) {
	regions, err := ReadSequenceRegions(strings.NewReader(""))
	require.NoError(t, err)
	assert.NotNil(t, regions)
	assert.Empty(t, regions)

	regions, err = ReadSequenceRegions(strings.NewReader("chr1\tme\tgene\t1\t10\t.\t+\t.\tID=g\n"))
	require.NoError(t, err)
	assert.Empty(t, regions)
}

func TestReadSequenceRegions_Errors(t *testing.T) {
	_, err := ReadSequenceRegions(strings.NewReader("##sequence-region chr1 one 100\n"))
	var coordErr *InvalidCoordinateError
	require.ErrorAs(t, err, &coordErr)
	assert.Equal(t, 1, coordErr.Line)

	_, err = ReadSequenceRegions(strings.NewReader("##gff-version 3\n##sequence-region chr1 100\n"))
	var malformed *MalformedRecordError
	require.ErrorAs(t, err, &malformed)
	assert.Equal(t, 2, malformed.Line)
}

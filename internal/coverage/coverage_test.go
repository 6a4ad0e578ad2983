package coverage

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUnion(t *testing.T) {
	tests := []struct {
		name string
		in   []Region
		want []Region
	}{
		{"empty", nil, nil},
		{"single", []Region{{10, 20}}, []Region{{10, 20}}},
		{"overlapping", []Region{{1, 10}, {5, 15}}, []Region{{1, 15}}},
		{"adjacent", []Region{{1, 10}, {11, 20}}, []Region{{1, 20}}},
		{"gap", []Region{{1, 10}, {12, 20}}, []Region{{1, 10}, {12, 20}}},
		{"unsorted", []Region{{30, 40}, {1, 5}, {3, 8}}, []Region{{1, 8}, {30, 40}}},
		{"contained", []Region{{1, 100}, {20, 30}, {50, 60}}, []Region{{1, 100}}},
		{"duplicate", []Region{{5, 9}, {5, 9}}, []Region{{5, 9}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Union(tt.in))
		})
	}
}

func TestUnion_DoesNotModifyInput(t *testing.T) {
	in := []Region{{30, 40}, {1, 5}, {3, 8}}
	Union(in)
	assert.Equal(t, []Region{{30, 40}, {1, 5}, {3, 8}}, in)
}

func TestUnion_Idempotent(t *testing.T) {
	in := []Region{{100, 200}, {1, 50}, {40, 60}, {201, 210}, {500, 500}}
	once := Union(in)
	assert.Equal(t, once, Union(once))
}

func TestTotalLength(t *testing.T) {
	disjoint := []Region{{1, 10}, {21, 30}, {41, 41}}
	assert.Equal(t, int64(21), TotalLength(disjoint))
	assert.Equal(t, TotalLength(disjoint), TotalLength(Union(disjoint)))

	overlapping := []Region{{1, 400}, {300, 1000}, {950, 1200}}
	merged := TotalLength(Union(overlapping))
	assert.Equal(t, int64(1200), merged)
	assert.LessOrEqual(t, merged, TotalLength(overlapping))

	assert.Zero(t, TotalLength(nil))
}

func TestCompute(t *testing.T) {
	res := Compute(
		map[string][]Region{
			"chr1": {{1, 400}, {300, 600}},
			"chr2": {{1, 100}},
			"chrU": {{1, 10}},
		},
		map[string]int64{"chr1": 1000, "chr2": 100, "chr3": 50},
	)

	require.Len(t, res.Sequences, 4)
	assert.Equal(t, Sequence{Seqid: "chr1", Length: 1000, BasesCovered: 600, Proportion: 0.6}, res.Sequences[0])
	assert.Equal(t, 1.0, res.Sequences[1].Proportion)
	assert.Equal(t, "chr3", res.Sequences[2].Seqid)
	assert.Equal(t, 0.0, res.Sequences[2].Proportion)

	u := res.Sequences[3]
	assert.Equal(t, "chrU", u.Seqid)
	assert.Equal(t, int64(10), u.BasesCovered)
	assert.True(t, math.IsNaN(u.Proportion))

	assert.Equal(t, int64(1150), res.TotalLength)
	assert.Equal(t, int64(700), res.BasesCovered)
	assert.InDelta(t, 700.0/1150.0, res.Proportion, 1e-12)
}

func TestCompute_FullAndNone(t *testing.T) {
	full := Compute(map[string][]Region{"s": {{1, 100}}}, map[string]int64{"s": 100})
	assert.Equal(t, 1.0, full.Proportion)

	none := Compute(nil, map[string]int64{"s": 100})
	assert.Equal(t, 0.0, none.Proportion)
	assert.Zero(t, none.BasesCovered)
}

func TestCompute_UndeclaredSequenceLeftOutOfAggregate(t *testing.T) {
	res := Compute(
		map[string][]Region{"chr1": {{1, 100}}, "chrUn": {{1, 50}}},
		map[string]int64{"chr1": 100},
	)

	require.Len(t, res.Sequences, 2)
	assert.Equal(t, int64(50), res.Sequences[1].BasesCovered)
	assert.True(t, math.IsNaN(res.Sequences[1].Proportion))

	assert.Equal(t, int64(100), res.TotalLength)
	assert.Equal(t, int64(100), res.BasesCovered)
	assert.Equal(t, 1.0, res.Proportion)
}

func TestCompute_UnknownLength(t *testing.T) {
	res := Compute(map[string][]Region{"s": {{1, 100}}}, nil)
	assert.True(t, math.IsNaN(res.Proportion))

	zero := Compute(map[string][]Region{"s": {{1, 100}}}, map[string]int64{"s": 0})
	assert.True(t, math.IsNaN(zero.Proportion))

	empty := Compute(nil, nil)
	assert.Empty(t, empty.Sequences)
	assert.True(t, math.IsNaN(empty.Proportion))
}

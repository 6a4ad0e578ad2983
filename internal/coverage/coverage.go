// Package coverage computes how many bases of a genome are covered by a set
// of features.
package coverage

import (
	"math"
	"slices"
	"sort"
)

// Region is a closed, 1-based interval [Start, End].
type Region struct {
	Start int64
	End   int64
}

// Length returns the number of bases in the region.
func (r Region) Length() int64 {
	return r.End - r.Start + 1
}

// Union merges overlapping and adjacent regions. The result is sorted by
// start, pairwise disjoint and non-adjacent. The input is not modified.
func Union(regions []Region) []Region {
	if len(regions) == 0 {
		return nil
	}

	sorted := slices.Clone(regions)
	sort.Slice(sorted, func(i, j int) bool {
		if sorted[i].Start != sorted[j].Start {
			return sorted[i].Start < sorted[j].Start
		}
		return sorted[i].End < sorted[j].End
	})

	merged := []Region{sorted[0]}
	for _, r := range sorted[1:] {
		cur := &merged[len(merged)-1]
		if r.Start <= cur.End+1 {
			cur.End = max(cur.End, r.End)
			continue
		}
		merged = append(merged, r)
	}
	return merged
}

// TotalLength sums the lengths of the regions. Call it on a Union result to
// count each base once.
func TotalLength(regions []Region) int64 {
	var total int64
	for _, r := range regions {
		total += r.Length()
	}
	return total
}

// Sequence is the coverage of one sequence.
type Sequence struct {
	Seqid string
	// Length is the declared sequence length, 0 when undeclared.
	Length       int64
	BasesCovered int64
	// Proportion is BasesCovered / Length, NaN when Length is zero or
	// unknown.
	Proportion float64
}

// Result holds per-sequence coverage, sorted by seqid, and the aggregate.
type Result struct {
	Sequences []Sequence

	// TotalLength sums the declared lengths of every sequence.
	TotalLength  int64
	BasesCovered int64
	Proportion   float64
}

// Compute merges the regions of each sequence and relates the covered bases
// to the sequence lengths. Sequences appear in the result when they have a
// declared length or any regions. The aggregate counts only sequences with a
// declared length, so its proportion never exceeds 1.
func Compute(regionsBySeq map[string][]Region, lengths map[string]int64) Result {
	seqids := make(map[string]bool, len(lengths)+len(regionsBySeq))
	for id := range lengths {
		seqids[id] = true
	}
	for id := range regionsBySeq {
		seqids[id] = true
	}
	ids := make([]string, 0, len(seqids))
	for id := range seqids {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	var res Result
	for _, id := range ids {
		length := lengths[id]
		covered := TotalLength(Union(regionsBySeq[id]))
		res.Sequences = append(res.Sequences, Sequence{
			Seqid:        id,
			Length:       length,
			BasesCovered: covered,
			Proportion:   proportion(covered, length),
		})
		if length > 0 {
			res.TotalLength += length
			res.BasesCovered += covered
		}
	}
	res.Proportion = proportion(res.BasesCovered, res.TotalLength)
	return res
}

func proportion(covered, length int64) float64 {
	if length <= 0 {
		return math.NaN()
	}
	return float64(covered) / float64(length)
}

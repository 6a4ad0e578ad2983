package analysis

import (
	"github.com/inodb/vibe-gff/internal/coverage"
	"github.com/inodb/vibe-gff/internal/store"
)

// Feature classes reported in coverage statistics.
const (
	ClassGenes = "genes"
	ClassExons = "exons"
	ClassCDS   = "cds"
)

// CoverageRow is the coverage of one feature class over one sequence, or
// over the whole genome when Seqid is empty.
type CoverageRow struct {
	Analysis       string
	FeatureType    string
	Seqid          string
	SequenceLength int64
	BasesCovered   int64
	// Proportion is NaN when the sequence length is zero or unknown.
	Proportion float64
}

// CoverageStatistics computes the bases covered by genes, exons and CDS.
// For each class the genome-wide row comes first, followed by one row per
// sequence. The genome length is the sum of the declared sequence regions.
func (u *Unpacked) CoverageStatistics() []CoverageRow {
	lengths := make(map[string]int64, len(u.Sequences))
	for _, s := range u.Sequences {
		lengths[s.Seqid] += s.Length()
	}

	var rows []CoverageRow
	for _, c := range []struct {
		class    string
		features *store.Store
	}{
		{ClassGenes, u.Genes},
		{ClassExons, u.Exons},
		{ClassCDS, u.CDS},
	} {
		res := coverage.Compute(regionsBySeqid(c.features), lengths)
		rows = append(rows, CoverageRow{
			Analysis:       u.Analysis,
			FeatureType:    c.class,
			SequenceLength: res.TotalLength,
			BasesCovered:   res.BasesCovered,
			Proportion:     res.Proportion,
		})
		for _, s := range res.Sequences {
			rows = append(rows, CoverageRow{
				Analysis:       u.Analysis,
				FeatureType:    c.class,
				Seqid:          s.Seqid,
				SequenceLength: s.Length,
				BasesCovered:   s.BasesCovered,
				Proportion:     s.Proportion,
			})
		}
	}
	return rows
}

func regionsBySeqid(s *store.Store) map[string][]coverage.Region {
	regions := make(map[string][]coverage.Region)
	for _, f := range s.All() {
		regions[f.Seqid] = append(regions[f.Seqid], coverage.Region{Start: f.Start, End: f.End})
	}
	return regions
}

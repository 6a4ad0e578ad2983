package schema

import (
	"math"

	"github.com/inodb/vibe-gff/internal/analysis"
	"github.com/inodb/vibe-gff/internal/gff"
	"github.com/inodb/vibe-gff/internal/store"
	"github.com/inodb/vibe-gff/internal/summary"
)

// nullText maps an empty string to NULL.
func nullText(s string) any {
	if s == "" {
		return nil
	}
	return s
}

// nullReal maps NaN to NULL.
func nullReal(f float64) any {
	if math.IsNaN(f) {
		return nil
	}
	return f
}

func strand(s gff.Strand) any {
	if s == gff.StrandUnknown {
		return nil
	}
	return s.String()
}

func locationValues(f *gff.Feature) []any {
	return []any{f.Seqid, f.Source, f.Start, f.End, strand(f.Strand)}
}

// GeneRows returns one Genes row per feature.
func GeneRows(analysisName string, genes *store.Store) [][]any {
	rows := make([][]any, 0, genes.Len())
	for _, f := range genes.All() {
		row := []any{analysisName, nullText(f.ID), nullText(f.Parent), nullText(f.Name), nullText(f.Biotype)}
		row = append(row, locationValues(f)...)
		rows = append(rows, append(row, f.Attributes))
	}
	return rows
}

// TranscriptRows returns one Transcripts row per feature.
func TranscriptRows(analysisName string, transcripts *store.Store) [][]any {
	rows := make([][]any, 0, transcripts.Len())
	for _, f := range transcripts.All() {
		row := []any{analysisName, nullText(f.ID), nullText(f.Parent)}
		row = append(row, locationValues(f)...)
		rows = append(rows, append(row, nullText(f.Tag), nullText(f.TranscriptSupportLevel), f.Attributes))
	}
	return rows
}

// ExonRows returns one Exons (or CDS) row per feature.
func ExonRows(analysisName string, exons *store.Store) [][]any {
	rows := make([][]any, 0, exons.Len())
	for _, f := range exons.All() {
		row := []any{analysisName, nullText(f.ID), nullText(f.Parent)}
		rows = append(rows, append(row, locationValues(f)...))
	}
	return rows
}

// SequenceRows returns one Sequences row per region.
func SequenceRows(analysisName string, regions []gff.SequenceRegion) [][]any {
	rows := make([][]any, 0, len(regions))
	for _, r := range regions {
		rows = append(rows, []any{analysisName, r.Seqid, r.Start, r.End, r.Length()})
	}
	return rows
}

// GeneSummaryRows returns one GeneSummary row per gene.
func GeneSummaryRows(genes []summary.GeneSummary) [][]any {
	rows := make([][]any, 0, len(genes))
	for _, g := range genes {
		l, e := g.TranscriptLength, g.ExonsPerTranscript
		rows = append(rows, []any{
			g.Analysis, nullText(g.ID), int64(g.NumberOfTranscripts),
			nullReal(l.Max), nullReal(l.Min), nullReal(l.Mean), nullReal(l.Median),
			nullReal(e.Mean), nullReal(e.Median), nullReal(e.Max), nullReal(e.Min),
		})
	}
	return rows
}

// GeneStatisticsRows returns one GeneStatistics row per analysis.
func GeneStatisticsRows(stats []summary.GeneStatistics) [][]any {
	rows := make([][]any, 0, len(stats))
	for _, s := range stats {
		rows = append(rows, []any{
			s.Analysis, int64(s.TotalGenes), int64(s.SingleExonGenes),
			nullReal(s.ProportionSingleExon), nullReal(s.LongestGene), nullReal(s.ShortestGene),
			nullReal(s.HighestExonCount), int64(s.HighestTranscriptCount),
		})
	}
	return rows
}

// CoverageRows returns one CoverageStatistics row per coverage row. The
// genome-wide row has a NULL seqid.
func CoverageRows(coverage []analysis.CoverageRow) [][]any {
	rows := make([][]any, 0, len(coverage))
	for _, c := range coverage {
		rows = append(rows, []any{
			c.Analysis, c.FeatureType, nullText(c.Seqid),
			c.SequenceLength, c.BasesCovered, nullReal(c.Proportion),
		})
	}
	return rows
}

// RecordRows returns one Records row per parsed record.
func RecordRows(analysisName string, features []gff.Feature) [][]any {
	rows := make([][]any, 0, len(features))
	for i := range features {
		f := &features[i]
		rows = append(rows, []any{
			analysisName, nullText(f.ID), nullText(f.Parent), nullText(f.Name),
			f.Seqid, f.Source, f.Type, f.Start, f.End,
			nullReal(f.Score), strand(f.Strand), nullText(f.Phase), nullText(f.Attributes),
		})
	}
	return rows
}

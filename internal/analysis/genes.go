package analysis

import "github.com/inodb/vibe-gff/internal/summary"

// GeneReport holds per-gene summaries and their per-analysis aggregate.
type GeneReport struct {
	PerGene    []summary.GeneSummary
	Statistics []summary.GeneStatistics
}

// SummarizeGenes summarises transcripts and exons per gene.
func (u *Unpacked) SummarizeGenes() GeneReport {
	perGene := summary.Summarize(u.Analysis, u.Genes, u.Transcripts, u.Exons)
	return GeneReport{
		PerGene:    perGene,
		Statistics: summary.Statistics(perGene),
	}
}

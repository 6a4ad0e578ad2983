package summary

import "math"

// GeneStatistics aggregates gene summaries for one analysis.
type GeneStatistics struct {
	Analysis string

	TotalGenes int
	// SingleExonGenes counts genes whose transcripts average exactly one exon.
	SingleExonGenes int
	// ProportionSingleExon is SingleExonGenes over the genes that have any
	// transcripts; NaN when none do.
	ProportionSingleExon float64

	// LongestGene and ShortestGene compare genes by their longest transcript.
	LongestGene  float64
	ShortestGene float64

	HighestExonCount       float64
	HighestTranscriptCount int
}

// Statistics aggregates gene summaries per analysis, in first-seen order.
func Statistics(genes []GeneSummary) []GeneStatistics {
	var order []string
	groups := make(map[string][]GeneSummary)
	for _, g := range genes {
		if _, ok := groups[g.Analysis]; !ok {
			order = append(order, g.Analysis)
		}
		groups[g.Analysis] = append(groups[g.Analysis], g)
	}

	result := make([]GeneStatistics, 0, len(order))
	for _, analysis := range order {
		result = append(result, statistics(analysis, groups[analysis]))
	}
	return result
}

func statistics(analysis string, genes []GeneSummary) GeneStatistics {
	s := GeneStatistics{Analysis: analysis}

	var withExons int
	longest := make([]float64, 0, len(genes))
	meanExons := make([]float64, 0, len(genes))
	for _, g := range genes {
		if g.ID != "" {
			s.TotalGenes++
		}
		if g.NumberOfTranscripts > s.HighestTranscriptCount {
			s.HighestTranscriptCount = g.NumberOfTranscripts
		}

		mean := g.ExonsPerTranscript.Mean
		if !math.IsNaN(mean) {
			withExons++
			if mean == 1 {
				s.SingleExonGenes++
			}
		}
		meanExons = append(meanExons, mean)
		longest = append(longest, g.TranscriptLength.Max)
	}

	s.ProportionSingleExon = math.NaN()
	if withExons > 0 {
		s.ProportionSingleExon = float64(s.SingleExonGenes) / float64(withExons)
	}
	s.LongestGene = maxOf(longest)
	s.ShortestGene = minOf(longest)
	s.HighestExonCount = maxOf(meanExons)
	return s
}

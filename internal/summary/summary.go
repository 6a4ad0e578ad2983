package summary

import (
	"github.com/inodb/vibe-gff/internal/store"
)

// ParentSummary describes one parent feature and its direct children.
type ParentSummary struct {
	ID     string
	Parent string
	Length int64

	// Children is the number of direct children.
	Children int
	// ChildLength describes the lengths of the children.
	ChildLength Stats
	// NestedCount describes the children's own child counts, e.g. exons per
	// transcript when the parents are genes.
	NestedCount Stats
}

// GeneSummary is one row of per-gene statistics.
type GeneSummary struct {
	Analysis            string
	ID                  string
	NumberOfTranscripts int
	TranscriptLength    Stats
	ExonsPerTranscript  Stats
}

// SummarizeChildren returns one summary per parent, in parent order,
// including parents with no children. nested maps a child ID to that child's
// own child count; when nil, NestedCount is NoData.
func SummarizeChildren(parents, children *store.Store, nested map[string]int) []ParentSummary {
	summaries := make([]ParentSummary, 0, parents.Len())
	for _, p := range parents.All() {
		var lengths []int64
		var counts []int
		for c := range children.ChildrenOf(p.ID) {
			lengths = append(lengths, c.Length())
			if nested != nil {
				counts = append(counts, nested[c.ID])
			}
		}
		nestedStats := NoData()
		if nested != nil {
			nestedStats = Describe(counts)
		}

		summaries = append(summaries, ParentSummary{
			ID:          p.ID,
			Parent:      p.Parent,
			Length:      p.Length(),
			Children:    len(lengths),
			ChildLength: Describe(lengths),
			NestedCount: nestedStats,
		})
	}
	return summaries
}

// ChildCounts maps each summarised parent ID to its number of children.
func ChildCounts(summaries []ParentSummary) map[string]int {
	counts := make(map[string]int, len(summaries))
	for _, s := range summaries {
		if s.ID != "" {
			counts[s.ID] = s.Children
		}
	}
	return counts
}

// SummarizeGenes joins genes to their transcript summaries by Parent and
// returns one row per gene, in gene order.
func SummarizeGenes(analysis string, genes *store.Store, transcripts []ParentSummary) []GeneSummary {
	byGene := make(map[string][]ParentSummary)
	for _, t := range transcripts {
		if t.Parent != "" {
			byGene[t.Parent] = append(byGene[t.Parent], t)
		}
	}

	rows := make([]GeneSummary, 0, genes.Len())
	for _, g := range genes.All() {
		var members []ParentSummary
		if g.ID != "" {
			members = byGene[g.ID]
		}

		lengths := make([]int64, len(members))
		exons := make([]int, len(members))
		for i, t := range members {
			lengths[i] = t.Length
			exons[i] = t.Children
		}

		rows = append(rows, GeneSummary{
			Analysis:            analysis,
			ID:                  g.ID,
			NumberOfTranscripts: len(members),
			TranscriptLength:    Describe(lengths),
			ExonsPerTranscript:  Describe(exons),
		})
	}
	return rows
}

// Summarize counts exons per transcript and summarises transcripts per gene.
func Summarize(analysis string, genes, transcripts, exons *store.Store) []GeneSummary {
	return SummarizeGenes(analysis, genes, SummarizeChildren(transcripts, exons, nil))
}

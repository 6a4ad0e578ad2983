// Package analysis turns one GFF3 annotation into genes, transcripts, exons
// and coding sequences and computes the gene and coverage summaries for it.
package analysis

import (
	"slices"

	"github.com/inodb/vibe-gff/internal/gff"
	"github.com/inodb/vibe-gff/internal/store"
)

// Feature types recognised when unpacking an annotation.
const (
	TypeGene              = "gene"
	TypeProteinCodingGene = "protein_coding_gene"
	TypeMRNA              = "mRNA"
	TypeExon              = "exon"
	TypeCDS               = "CDS"

	BiotypeProteinCoding = "protein_coding"
)

// DefaultBatchSize is the number of records written per batch by Ingest.
const DefaultBatchSize = 10000

// Config holds the per-invocation settings of an analysis.
type Config struct {
	// Analysis labels every output row, e.g. a species name.
	Analysis string

	// ExtractKeys are promoted from the attributes column of every record.
	// ID and Parent are always extracted.
	ExtractKeys []string
	// StripPrefixes are removed from the start of IDs and Parents.
	StripPrefixes []string

	GeneTypes       []string
	TranscriptTypes []string
	// Biotype keeps only genes of this biotype. Empty keeps every gene.
	Biotype string

	BatchSize int
	Workers   int
}

// DefaultConfig returns the settings used for Ensembl-style annotations.
func DefaultConfig(analysis string) Config {
	return Config{
		Analysis:        analysis,
		ExtractKeys:     slices.Clone(store.DefaultKeys),
		StripPrefixes:   []string{"gene:", "transcript:", "CDS:"},
		GeneTypes:       []string{TypeGene, TypeProteinCodingGene},
		TranscriptTypes: []string{TypeMRNA},
		Biotype:         BiotypeProteinCoding,
		BatchSize:       DefaultBatchSize,
	}
}

// extractKeys returns the configured keys with ID and Parent guaranteed.
func (c Config) extractKeys() []string {
	keys := slices.Clone(c.ExtractKeys)
	for _, k := range []string{gff.KeyParent, gff.KeyID} {
		if !slices.Contains(keys, k) {
			keys = append([]string{k}, keys...)
		}
	}
	return keys
}

// laterKeys drops the keys already promoted by the first extraction, since
// extracting a key again clears it.
func (c Config) laterKeys(keys ...string) []string {
	first := c.extractKeys()
	return slices.DeleteFunc(keys, func(k string) bool {
		return slices.Contains(first, k)
	})
}

func (c Config) batchSize() int {
	if c.BatchSize <= 0 {
		return DefaultBatchSize
	}
	return c.BatchSize
}

func (c Config) parseOptions() gff.Options {
	return gff.Options{Workers: c.Workers, BatchSize: c.BatchSize}
}

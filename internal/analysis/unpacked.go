package analysis

import (
	"context"
	"fmt"
	"io"

	"github.com/cockroachdb/errors"
	"go.uber.org/zap"

	"github.com/inodb/vibe-gff/internal/gff"
	"github.com/inodb/vibe-gff/internal/store"
)

// Unpacked is an annotation split into its gene hierarchy.
type Unpacked struct {
	Analysis string

	Genes       *store.Store
	Transcripts *store.Store
	Exons       *store.Store
	CDS         *store.Store
	Sequences   []gff.SequenceRegion

	// Duplicates lists IDs declared by unrelated records in the input.
	Duplicates []store.DuplicateIDWarning
}

// Summary returns a one-line description of the record counts.
func (u *Unpacked) Summary() string {
	return fmt.Sprintf("%d genes, %d transcripts, %d exons and %d coding sequence entries; %d sequences.",
		u.Genes.Len(), u.Transcripts.Len(), u.Exons.Len(), u.CDS.Len(), len(u.Sequences))
}

// Pipeline loads annotations according to a Config.
type Pipeline struct {
	cfg    Config
	logger *zap.Logger
}

// New creates a pipeline for the given settings.
func New(cfg Config) *Pipeline {
	return &Pipeline{
		cfg:    cfg,
		logger: zap.NewNop(),
	}
}

// SetLogger sets the logger for progress and warning messages.
func (p *Pipeline) SetLogger(l *zap.Logger) {
	p.logger = l
}

// Config returns the pipeline settings.
func (p *Pipeline) Config() Config {
	return p.cfg
}

// LoadFile opens path (plain or gzip-compressed, "-" for stdin) and loads it.
func (p *Pipeline) LoadFile(ctx context.Context, path string) (*Unpacked, error) {
	f, err := gff.Open(path)
	if err != nil {
		return nil, errors.WithHint(errors.Wrapf(err, "open annotation %s", path),
			"pass a GFF3 file, optionally gzip-compressed, or - for stdin")
	}
	defer f.Close()

	p.logger.Info("loading annotation", zap.String("analysis", p.cfg.Analysis), zap.String("file", path))
	return p.Load(ctx, f)
}

// Load parses r and splits it into genes, transcripts, exons and CDS.
//
// Genes are records of a gene type whose biotype matches the configured one;
// protein_coding_gene records become genes of biotype protein_coding.
// Transcripts are records of a transcript type whose parent is a selected
// gene, and exons and CDS are kept when their parent is a selected
// transcript.
func (p *Pipeline) Load(ctx context.Context, r io.Reader) (*Unpacked, error) {
	all, err := store.Parse(ctx, r, p.cfg.parseOptions())
	if err != nil {
		return nil, wrapParseError(err, p.cfg.Analysis)
	}
	all.ExtractFields(p.cfg.extractKeys()).StripIDPrefixes(p.cfg.StripPrefixes)
	p.logger.Info("records loaded", zap.String("analysis", p.cfg.Analysis), zap.Int("count", all.Len()))

	u := &Unpacked{
		Analysis:   p.cfg.Analysis,
		Sequences:  all.SequenceRegions(),
		Duplicates: all.DuplicateIDs(),
	}
	for _, d := range u.Duplicates {
		p.logger.Warn("duplicate feature ID, keeping the later record",
			zap.String("id", d.ID), zap.Int("first_line", d.FirstLine), zap.Int("line", d.SecondLine))
	}

	u.Genes = p.selectGenes(all)
	u.Transcripts = all.OfType(p.cfg.TranscriptTypes...).ChildrenOfAny(u.Genes)
	transcriptKeys := p.cfg.laterKeys(gff.KeyTag, gff.KeyTranscriptSupportLevel)
	for _, t := range u.Transcripts.All() {
		t.Extract(transcriptKeys)
	}
	u.Exons = all.OfType(TypeExon).ChildrenOfAny(u.Transcripts)
	u.CDS = all.OfType(TypeCDS).ChildrenOfAny(u.Transcripts)

	p.logger.Info("annotation unpacked",
		zap.String("analysis", u.Analysis),
		zap.Int("genes", u.Genes.Len()),
		zap.Int("transcripts", u.Transcripts.Len()),
		zap.Int("exons", u.Exons.Len()),
		zap.Int("cds", u.CDS.Len()),
		zap.Int("sequences", len(u.Sequences)))
	return u, nil
}

func (p *Pipeline) selectGenes(all *store.Store) *store.Store {
	candidates := all.OfType(p.cfg.GeneTypes...)
	geneKeys := p.cfg.laterKeys(gff.KeyBiotype)
	for _, g := range candidates.All() {
		g.Extract(geneKeys)
		if g.Type == TypeProteinCodingGene {
			g.Type = TypeGene
			g.Biotype = BiotypeProteinCoding
		}
	}
	if p.cfg.Biotype == "" {
		return candidates
	}
	return candidates.Select(func(f *gff.Feature) bool {
		return f.Biotype == p.cfg.Biotype
	})
}

func wrapParseError(err error, analysis string) error {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return errors.Wrapf(err, "load analysis %q", analysis)
	}

	wrapped := errors.Wrapf(err, "parse annotation for analysis %q", analysis)
	var (
		malformed  *gff.MalformedRecordError
		coordinate *gff.InvalidCoordinateError
		score      *gff.InvalidScoreError
	)
	switch {
	case errors.As(err, &malformed):
		return errors.WithHintf(wrapped, "line %d must have nine tab-separated columns", malformed.Line)
	case errors.As(err, &coordinate):
		return errors.WithHintf(wrapped, "line %d needs integer start <= end coordinates", coordinate.Line)
	case errors.As(err, &score):
		return errors.WithHintf(wrapped, "line %d has a score that is neither a number nor '.'", score.Line)
	}
	return wrapped
}

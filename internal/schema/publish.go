package schema

import (
	"context"
	"time"

	"github.com/cockroachdb/errors"
	"go.uber.org/zap"

	"github.com/inodb/vibe-gff/internal/analysis"
	"github.com/inodb/vibe-gff/internal/gff"
)

// Options control how results are written.
type Options struct {
	// Overwrite replaces existing tables; otherwise rows are appended.
	Overwrite bool
	// StoreTranscripts also writes the transcripts, exons and cds tables.
	StoreTranscripts bool
}

// Written reports the rows written to one table.
type Written struct {
	Table string
	Rows  int
}

// Publisher writes analysis results through a Writer.
type Publisher struct {
	w      Writer
	opts   Options
	logger *zap.Logger
}

// NewPublisher creates a publisher writing to w.
func NewPublisher(w Writer, opts Options) *Publisher {
	return &Publisher{
		w:      w,
		opts:   opts,
		logger: zap.NewNop(),
	}
}

// SetLogger sets the logger for per-table messages.
func (p *Publisher) SetLogger(l *zap.Logger) {
	p.logger = l
}

// Write creates t as configured and appends rows to it.
func (p *Publisher) Write(ctx context.Context, t Table, rows [][]any) (Written, error) {
	if err := p.w.CreateTable(ctx, t, p.opts.Overwrite); err != nil {
		return Written{}, errors.Wrapf(err, "create table %s", t.Name)
	}
	if len(rows) > 0 {
		if err := p.w.Append(ctx, t, rows); err != nil {
			return Written{}, errors.Wrapf(err, "write table %s", t.Name)
		}
	}
	p.logger.Info("table written", zap.String("table", t.Name), zap.Int("count", len(rows)))
	return Written{Table: t.Name, Rows: len(rows)}, nil
}

type tableRows struct {
	table Table
	rows  func() [][]any
}

// Publish writes the unpacked annotation, its gene summaries and its
// coverage statistics.
func (p *Publisher) Publish(ctx context.Context, u *analysis.Unpacked) ([]Written, error) {
	report := u.SummarizeGenes()

	tables := []tableRows{
		{Genes, func() [][]any { return GeneRows(u.Analysis, u.Genes) }},
		{Sequences, func() [][]any { return SequenceRows(u.Analysis, u.Sequences) }},
	}
	if p.opts.StoreTranscripts {
		tables = append(tables,
			tableRows{Transcripts, func() [][]any { return TranscriptRows(u.Analysis, u.Transcripts) }},
			tableRows{Exons, func() [][]any { return ExonRows(u.Analysis, u.Exons) }},
			tableRows{CDS, func() [][]any { return ExonRows(u.Analysis, u.CDS) }},
		)
	}
	tables = append(tables,
		tableRows{GeneSummary, func() [][]any { return GeneSummaryRows(report.PerGene) }},
		tableRows{GeneStatistics, func() [][]any { return GeneStatisticsRows(report.Statistics) }},
		tableRows{CoverageStatistics, func() [][]any { return CoverageRows(u.CoverageStatistics()) }},
	)

	written := make([]Written, 0, len(tables))
	for _, t := range tables {
		if err := ctx.Err(); err != nil {
			return written, err
		}
		w, err := p.Write(ctx, t.table, t.rows())
		if err != nil {
			return written, err
		}
		written = append(written, w)
	}
	return written, nil
}

// RecordRun appends r to the runs table, which is never replaced.
func (p *Publisher) RecordRun(ctx context.Context, r *Run) error {
	if r.Finished.IsZero() {
		r.Finished = time.Now().UTC()
	}
	if err := p.w.CreateTable(ctx, Runs, false); err != nil {
		return errors.Wrap(err, "create runs table")
	}
	return errors.Wrap(p.w.Append(ctx, Runs, [][]any{r.Row()}), "record run")
}

// RecordSink returns an analysis.RecordWriter that appends raw records to
// the gff_data table, creating it first.
func (p *Publisher) RecordSink(ctx context.Context) (analysis.RecordWriter, error) {
	if err := p.w.CreateTable(ctx, Records, p.opts.Overwrite); err != nil {
		return nil, errors.Wrapf(err, "create table %s", Records.Name)
	}
	return recordSink{w: p.w}, nil
}

type recordSink struct {
	w Writer
}

func (s recordSink) WriteRecords(ctx context.Context, analysisName string, batch []gff.Feature) error {
	return s.w.Append(ctx, Records, RecordRows(analysisName, batch))
}

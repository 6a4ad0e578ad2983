package analysis

import (
	"context"
	"io"

	"github.com/cockroachdb/errors"
	"go.uber.org/zap"

	"github.com/inodb/vibe-gff/internal/gff"
)

// RecordWriter receives parsed records batch by batch.
type RecordWriter interface {
	WriteRecords(ctx context.Context, analysis string, batch []gff.Feature) error
}

// IngestResult describes a completed Ingest.
type IngestResult struct {
	Records   int
	Batches   int
	Sequences []gff.SequenceRegion
}

// Ingest streams every record of r into w in batches of the configured
// size, extracting the configured keys from each record. Memory use is
// bounded by one batch. progress, if non-nil, is called with the running
// record count after each batch.
func (p *Pipeline) Ingest(ctx context.Context, r io.Reader, w RecordWriter, progress func(records int)) (IngestResult, error) {
	var res IngestResult
	reader := gff.NewReader(r)
	keys := p.cfg.extractKeys()
	size := p.cfg.batchSize()

	for {
		if err := ctx.Err(); err != nil {
			return res, errors.Wrap(err, "ingest records")
		}

		batch, err := reader.NextBatch(size)
		if err != nil {
			return res, wrapParseError(err, p.cfg.Analysis)
		}
		if len(batch) == 0 {
			break
		}

		for i := range batch {
			batch[i].Extract(keys)
		}
		if err := w.WriteRecords(ctx, p.cfg.Analysis, batch); err != nil {
			return res, errors.Wrapf(err, "write batch %d", res.Batches+1)
		}

		res.Records += len(batch)
		res.Batches++
		p.logger.Debug("batch written",
			zap.String("analysis", p.cfg.Analysis),
			zap.Int("batch", res.Batches),
			zap.Int("count", res.Records))
		if progress != nil {
			progress(res.Records)
		}
	}

	res.Sequences = reader.SequenceRegions()
	p.logger.Info("records ingested",
		zap.String("analysis", p.cfg.Analysis),
		zap.Int("count", res.Records),
		zap.Int("batches", res.Batches))
	return res, nil
}

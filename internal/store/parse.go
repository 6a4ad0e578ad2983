package store

import (
	"context"
	"io"

	"github.com/inodb/vibe-gff/internal/gff"
)

// Parse reads every feature from r into a new store. Attributes are left
// unextracted; call ExtractFields to promote keys. The first malformed
// record aborts the parse.
func Parse(ctx context.Context, r io.Reader, opts gff.Options) (*Store, error) {
	features, regions, err := gff.ReadAll(ctx, r, opts)
	if err != nil {
		return nil, err
	}
	s := New(features)
	s.regions = regions
	return s, nil
}

package store

import (
	"strings"

	"github.com/inodb/vibe-gff/internal/gff"
)

// DefaultKeys are the attributes promoted to fields when a file is loaded.
var DefaultKeys = []string{gff.KeyID, gff.KeyParent, gff.KeyName}

// ExtractFields moves the given attribute keys out of every feature's
// attributes column into its fields. Keys are extracted once; extracting a
// key a second time finds nothing.
func (s *Store) ExtractFields(keys []string) *Store {
	for i := range s.features {
		s.features[i].Extract(keys)
	}
	s.invalidate()
	return s
}

// StripIDPrefixes removes the first matching prefix from every ID and
// Parent, e.g. Ensembl's "gene:" and "transcript:".
func (s *Store) StripIDPrefixes(prefixes []string) *Store {
	if len(prefixes) == 0 {
		return s
	}
	for i := range s.features {
		f := &s.features[i]
		f.ID = stripPrefix(f.ID, prefixes)
		f.Parent = stripPrefix(f.Parent, prefixes)
	}
	s.invalidate()
	return s
}

func stripPrefix(id string, prefixes []string) string {
	for _, p := range prefixes {
		if trimmed, ok := strings.CutPrefix(id, p); ok {
			return trimmed
		}
	}
	return id
}

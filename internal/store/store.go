// Package store holds parsed GFF3 features in memory and resolves the
// ID/Parent hierarchy between them.
package store

import (
	"iter"
	"slices"
	"sort"

	"github.com/inodb/vibe-gff/internal/gff"
)

// Store is an arena of features addressed by index.
// The id and child indexes are built on first use and dropped whenever the
// features' ID or Parent may have changed. A Store is not safe for
// concurrent mutation.
type Store struct {
	features []gff.Feature
	regions  []gff.SequenceRegion

	indexed    bool
	byID       map[string]int
	children   map[string][]int
	duplicates []DuplicateIDWarning
}

// DuplicateIDWarning records a feature ID declared by two unrelated records.
// Records sharing an ID, type, seqid and parent are parts of one
// discontinuous feature, such as the CDS segments of a protein, and are not
// reported. IndexByID keeps the later record either way.
type DuplicateIDWarning struct {
	ID         string
	FirstLine  int
	SecondLine int
}

// New creates a store owning the given features.
func New(features []gff.Feature) *Store {
	return &Store{features: features}
}

// Add appends a feature and returns its index.
func (s *Store) Add(f gff.Feature) int {
	s.features = append(s.features, f)
	s.indexed = false
	return len(s.features) - 1
}

// Len returns the number of features.
func (s *Store) Len() int {
	return len(s.features)
}

// At returns the feature at index i.
func (s *Store) At(i int) *gff.Feature {
	return &s.features[i]
}

// All returns the features in insertion order.
func (s *Store) All() iter.Seq2[int, *gff.Feature] {
	return func(yield func(int, *gff.Feature) bool) {
		for i := range s.features {
			if !yield(i, &s.features[i]) {
				return
			}
		}
	}
}

// SequenceRegions returns the sequence regions declared in the parsed
// file's header.
func (s *Store) SequenceRegions() []gff.SequenceRegion {
	return s.regions
}

// Features returns a copy of the stored features.
func (s *Store) Features() []gff.Feature {
	return slices.Clone(s.features)
}

// Select returns a new store with copies of the features matching pred.
func (s *Store) Select(pred func(*gff.Feature) bool) *Store {
	var selected []gff.Feature
	for i := range s.features {
		if pred(&s.features[i]) {
			selected = append(selected, s.features[i])
		}
	}
	return New(selected)
}

// OfType returns a new store with the features of the given types.
func (s *Store) OfType(types ...string) *Store {
	return s.Select(func(f *gff.Feature) bool {
		return slices.Contains(types, f.Type)
	})
}

// Types returns the distinct feature types, sorted.
func (s *Store) Types() []string {
	seen := make(map[string]bool)
	for i := range s.features {
		seen[s.features[i].Type] = true
	}
	types := make([]string, 0, len(seen))
	for t := range seen {
		types = append(types, t)
	}
	sort.Strings(types)
	return types
}

// index builds the id and parent indexes once.
func (s *Store) index() {
	if s.indexed {
		return
	}

	s.byID = make(map[string]int)
	s.children = make(map[string][]int)
	s.duplicates = nil

	for i := range s.features {
		f := &s.features[i]
		if f.ID != "" {
			if prev, ok := s.byID[f.ID]; ok && !samePart(&s.features[prev], f) {
				s.duplicates = append(s.duplicates, DuplicateIDWarning{
					ID:         f.ID,
					FirstLine:  s.features[prev].Line,
					SecondLine: f.Line,
				})
			}
			s.byID[f.ID] = i
		}
		if f.Parent != "" {
			s.children[f.Parent] = append(s.children[f.Parent], i)
		}
	}
	s.indexed = true
}

// samePart reports whether a and b are lines of one multi-line feature.
func samePart(a, b *gff.Feature) bool {
	return a.Type == b.Type && a.Seqid == b.Seqid && a.Parent == b.Parent
}

// invalidate drops the indexes after ID or Parent changes.
func (s *Store) invalidate() {
	s.indexed = false
	s.byID = nil
	s.children = nil
	s.duplicates = nil
}

// IndexByID returns a map from ID to feature. Features without an ID are
// excluded; for duplicate IDs the last feature wins.
func (s *Store) IndexByID() map[string]*gff.Feature {
	s.index()
	m := make(map[string]*gff.Feature, len(s.byID))
	for id, i := range s.byID {
		m[id] = &s.features[i]
	}
	return m
}

// Lookup returns the feature with the given ID.
func (s *Store) Lookup(id string) (*gff.Feature, bool) {
	s.index()
	i, ok := s.byID[id]
	if !ok {
		return nil, false
	}
	return &s.features[i], true
}

// DuplicateIDs returns every conflicting ID declaration in file order.
func (s *Store) DuplicateIDs() []DuplicateIDWarning {
	s.index()
	return s.duplicates
}

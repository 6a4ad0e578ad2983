package store

import (
	"iter"

	"github.com/inodb/vibe-gff/internal/gff"
)

// ChildrenOf returns the features whose Parent is parentID, in insertion
// order. A parent without children yields an empty sequence.
func (s *Store) ChildrenOf(parentID string) iter.Seq[*gff.Feature] {
	s.index()
	indices := s.children[parentID]
	return func(yield func(*gff.Feature) bool) {
		for _, i := range indices {
			if !yield(&s.features[i]) {
				return
			}
		}
	}
}

// CountChildren returns the number of features whose Parent is parentID.
func (s *Store) CountChildren(parentID string) int {
	s.index()
	return len(s.children[parentID])
}

// HasChildren reports whether any feature names parentID as its parent.
func (s *Store) HasChildren(parentID string) bool {
	return s.CountChildren(parentID) > 0
}

// Orphans returns the children whose Parent is missing or does not name a
// feature in parents. Orphans stay in the children store; they are only
// left out of per-parent aggregates.
func Orphans(parents, children *Store) []*gff.Feature {
	parents.index()
	var orphans []*gff.Feature
	for i := range children.features {
		f := &children.features[i]
		if _, ok := parents.byID[f.Parent]; !ok {
			orphans = append(orphans, f)
		}
	}
	return orphans
}

// ChildrenOfAny returns a new store with the features whose Parent names a
// feature in parents.
func (s *Store) ChildrenOfAny(parents *Store) *Store {
	parents.index()
	return s.Select(func(f *gff.Feature) bool {
		_, ok := parents.byID[f.Parent]
		return ok
	})
}

// Package gff provides GFF3 record parsing, attribute decoding and
// sequence-region metadata extraction.
package gff

import "math"

// Column indices of a GFF3 data line.
// http://www.sequenceontology.org/gff3.shtml
const (
	FieldSeqid = iota
	FieldSource
	FieldType
	FieldStart
	FieldEnd
	FieldScore
	FieldStrand
	FieldPhase
	FieldAttributes

	numFields
)

// Strand is the orientation of a feature.
type Strand int8

const (
	StrandUnknown Strand = 0
	StrandForward Strand = 1
	StrandReverse Strand = -1
)

// String returns the GFF3 column representation of the strand.
func (s Strand) String() string {
	switch s {
	case StrandForward:
		return "+"
	case StrandReverse:
		return "-"
	}
	return "."
}

// Feature is one GFF3 data row.
//
// ID, Parent, Name, Biotype, Tag and TranscriptSupportLevel are empty until
// the corresponding attribute is extracted; Attributes then holds whatever
// was not extracted.
type Feature struct {
	Seqid  string
	Source string
	Type   string
	Start  int64 // 1-based, inclusive
	End    int64 // 1-based, inclusive
	Score  float64
	Strand Strand
	Phase  string

	ID                     string
	Parent                 string
	Name                   string
	Biotype                string
	Tag                    string
	TranscriptSupportLevel string
	Extra                  map[string]string

	Attributes string

	Line int
}

// HasScore reports whether the score column held a value.
func (f *Feature) HasScore() bool {
	return !math.IsNaN(f.Score)
}

// unset clears an extracted attribute.
func (f *Feature) unset(key string) {
	switch key {
	case KeyID, KeyParent, KeyName, KeyBiotype, KeyTag, KeyTranscriptSupportLevel:
		f.Set(key, "")
	default:
		delete(f.Extra, key)
	}
}

// Length returns the number of bases spanned by the feature.
func (f *Feature) Length() int64 {
	return f.End - f.Start + 1
}

// Get returns the value of an extracted attribute.
func (f *Feature) Get(key string) (string, bool) {
	var v string
	switch key {
	case KeyID:
		v = f.ID
	case KeyParent:
		v = f.Parent
	case KeyName:
		v = f.Name
	case KeyBiotype:
		v = f.Biotype
	case KeyTag:
		v = f.Tag
	case KeyTranscriptSupportLevel:
		v = f.TranscriptSupportLevel
	default:
		v, ok := f.Extra[key]
		return v, ok
	}
	return v, v != ""
}

// Set stores an extracted attribute value on the feature.
func (f *Feature) Set(key, value string) {
	switch key {
	case KeyID:
		f.ID = value
	case KeyParent:
		f.Parent = value
	case KeyName:
		f.Name = value
	case KeyBiotype:
		f.Biotype = value
	case KeyTag:
		f.Tag = value
	case KeyTranscriptSupportLevel:
		f.TranscriptSupportLevel = value
	default:
		if f.Extra == nil {
			f.Extra = make(map[string]string)
		}
		f.Extra[key] = value
	}
}

// SequenceRegion is a sequence extent declared by a ##sequence-region line.
type SequenceRegion struct {
	Seqid string
	Start int64
	End   int64
}

// Length returns the declared sequence length.
func (r SequenceRegion) Length() int64 {
	return r.End - r.Start + 1
}

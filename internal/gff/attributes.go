package gff

import "strings"

// Attribute keys with first-class fields on Feature.
const (
	KeyID                     = "ID"
	KeyParent                 = "Parent"
	KeyName                   = "Name"
	KeyBiotype                = "biotype"
	KeyTag                    = "tag"
	KeyTranscriptSupportLevel = "transcript_support_level"
)

// Attribute is one part of the attributes column.
// Parts without an "=" are kept with Bare set; they never match a key.
type Attribute struct {
	Key   string
	Value string
	Bare  bool
}

// Attributes is a decoded attributes column in its original order.
type Attributes []Attribute

// DecodeAttributes parses a GFF3 attributes column.
// Format: key1=value1;key2=value2;...
// Each part is split on its first "="; empty parts are dropped.
func DecodeAttributes(s string) Attributes {
	if s == "" || s == missing {
		return nil
	}

	parts := strings.Split(s, ";")
	attrs := make(Attributes, 0, len(parts))
	for _, part := range parts {
		if part == "" {
			continue
		}
		key, value, ok := strings.Cut(part, "=")
		if !ok {
			attrs = append(attrs, Attribute{Key: part, Bare: true})
			continue
		}
		attrs = append(attrs, Attribute{Key: key, Value: value})
	}
	return attrs
}

// Get returns the value of the first attribute named key.
func (a Attributes) Get(key string) (string, bool) {
	for _, attr := range a {
		if !attr.Bare && attr.Key == key {
			return attr.Value, true
		}
	}
	return "", false
}

// Map returns the attributes as a map. Later duplicates do not overwrite
// earlier values, matching Get.
func (a Attributes) Map() map[string]string {
	m := make(map[string]string, len(a))
	for _, attr := range a {
		if attr.Bare {
			continue
		}
		if _, ok := m[attr.Key]; !ok {
			m[attr.Key] = attr.Value
		}
	}
	return m
}

// Encode joins the attributes back into a column value.
func (a Attributes) Encode() string {
	var sb strings.Builder
	for i, attr := range a {
		if i > 0 {
			sb.WriteByte(';')
		}
		sb.WriteString(attr.Key)
		if !attr.Bare {
			sb.WriteByte('=')
			sb.WriteString(attr.Value)
		}
	}
	return sb.String()
}

// EncodeMap encodes m with keys in the given order. Keys missing from m are
// skipped.
func EncodeMap(m map[string]string, order []string) string {
	attrs := make(Attributes, 0, len(order))
	for _, k := range order {
		if v, ok := m[k]; ok {
			attrs = append(attrs, Attribute{Key: k, Value: v})
		}
	}
	return attrs.Encode()
}

// Extracted holds the values pulled out of an attributes column. A key that
// was not present has no entry.
type Extracted map[string]string

// ExtractAttributes removes the given keys from an attributes column. It
// returns the value of each key that was present (first occurrence) and the
// remaining attributes re-encoded in their original order. Every occurrence
// of an extracted key is removed, so extracting the same key from the
// remainder finds nothing.
func ExtractAttributes(s string, keys []string) (Extracted, string) {
	attrs := DecodeAttributes(s)
	if len(attrs) == 0 {
		return Extracted{}, ""
	}

	wanted := make(map[string]bool, len(keys))
	for _, k := range keys {
		wanted[k] = true
	}

	values := make(Extracted, len(keys))
	remainder := attrs[:0]
	for _, attr := range attrs {
		if attr.Bare || !wanted[attr.Key] {
			remainder = append(remainder, attr)
			continue
		}
		if _, seen := values[attr.Key]; !seen {
			values[attr.Key] = attr.Value
		}
	}
	return values, remainder.Encode()
}

// Extract pulls keys out of f.Attributes into the feature's fields and
// replaces Attributes with the remainder. A requested key that is missing
// or empty is cleared, so extracting twice leaves it absent.
func (f *Feature) Extract(keys []string) {
	values, remainder := ExtractAttributes(f.Attributes, keys)
	for _, k := range keys {
		if v := values[k]; v != "" {
			f.Set(k, v)
		} else {
			f.unset(k)
		}
	}
	f.Attributes = remainder
}

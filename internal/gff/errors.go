package gff

import "fmt"

// MalformedRecordError is returned for a data line that does not split into
// exactly nine tab-separated columns.
type MalformedRecordError struct {
	Line   int
	Fields int
	Text   string
}

func (e *MalformedRecordError) Error() string {
	if e.Text != "" {
		return fmt.Sprintf("gff parse error at line %d: %s", e.Line, e.Text)
	}
	return fmt.Sprintf("gff parse error at line %d: expected %d columns, found %d", e.Line, numFields, e.Fields)
}

// InvalidCoordinateError is returned when a start or end value is not an
// integer, or when start is greater than end.
type InvalidCoordinateError struct {
	Line  int
	Field string
	Value string
}

func (e *InvalidCoordinateError) Error() string {
	return fmt.Sprintf("gff parse error at line %d: invalid %s %q", e.Line, e.Field, e.Value)
}

// InvalidScoreError is returned when a score is present but not numeric.
type InvalidScoreError struct {
	Line  int
	Value string
}

func (e *InvalidScoreError) Error() string {
	return fmt.Sprintf("gff parse error at line %d: invalid score %q", e.Line, e.Value)
}

package gff

import (
	"math"
	"strconv"
	"strings"
)

// missing is the GFF3 placeholder for an empty column.
const missing = "."

// ParseRecord parses a single GFF3 data line. lineNum is only used for
// error reporting.
func ParseRecord(line string, lineNum int) (Feature, error) {
	fields := strings.Split(line, "\t")
	if len(fields) != numFields {
		return Feature{}, &MalformedRecordError{Line: lineNum, Fields: len(fields)}
	}

	start, err := parseCoordinate(fields[FieldStart], "start", lineNum)
	if err != nil {
		return Feature{}, err
	}
	end, err := parseCoordinate(fields[FieldEnd], "end", lineNum)
	if err != nil {
		return Feature{}, err
	}
	if start > end {
		return Feature{}, &InvalidCoordinateError{
			Line:  lineNum,
			Field: "interval",
			Value: fields[FieldStart] + "-" + fields[FieldEnd],
		}
	}

	score := math.NaN()
	if s := fields[FieldScore]; s != missing && s != "" {
		score, err = strconv.ParseFloat(s, 64)
		if err != nil {
			return Feature{}, &InvalidScoreError{Line: lineNum, Value: s}
		}
	}

	phase := fields[FieldPhase]
	if phase == missing {
		phase = ""
	}

	return Feature{
		Seqid:      fields[FieldSeqid],
		Source:     fields[FieldSource],
		Type:       fields[FieldType],
		Start:      start,
		End:        end,
		Score:      score,
		Strand:     parseStrand(fields[FieldStrand]),
		Phase:      phase,
		Attributes: fields[FieldAttributes],
		Line:       lineNum,
	}, nil
}

func parseCoordinate(s, field string, lineNum int) (int64, error) {
	v, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, &InvalidCoordinateError{Line: lineNum, Field: field, Value: s}
	}
	return v, nil
}

// parseStrand maps the strand column. Anything other than + or - ("." and
// "?" included) is unknown.
func parseStrand(s string) Strand {
	switch s {
	case "+":
		return StrandForward
	case "-":
		return StrandReverse
	}
	return StrandUnknown
}

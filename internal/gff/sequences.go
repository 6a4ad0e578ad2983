package gff

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
)

const sequenceRegionDirective = "##sequence-region"

// ReadSequenceRegions reads the ##sequence-region lines from the metadata
// header of a GFF3 file. The header ends at the first line that does not
// start with "#", blank lines included; anything after it is not inspected.
func ReadSequenceRegions(r io.Reader) ([]SequenceRegion, error) {
	scanner := newLineScanner(r)

	regions := []SequenceRegion{}
	lineNum := 0
	for scanner.Scan() {
		lineNum++
		line := strings.TrimRight(scanner.Text(), "\r")

		if !strings.HasPrefix(line, "#") {
			break
		}
		if !isSequenceRegion(line) {
			continue
		}

		region, err := parseSequenceRegion(line, lineNum)
		if err != nil {
			return nil, err
		}
		regions = append(regions, region)
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scan GFF3 header: %w", err)
	}
	return regions, nil
}

func isSequenceRegion(line string) bool {
	return strings.HasPrefix(line, sequenceRegionDirective)
}

// parseSequenceRegion takes the last three whitespace-separated tokens as
// seqid, start and end, so lines with extra leading tokens are accepted.
func parseSequenceRegion(line string, lineNum int) (SequenceRegion, error) {
	fields := strings.Fields(line)
	if len(fields) < 4 {
		return SequenceRegion{}, &MalformedRecordError{
			Line: lineNum,
			Text: fmt.Sprintf("expected seqid, start and end in %q", line),
		}
	}
	tail := fields[len(fields)-3:]

	start, err := strconv.ParseInt(tail[1], 10, 64)
	if err != nil {
		return SequenceRegion{}, &InvalidCoordinateError{Line: lineNum, Field: "sequence-region start", Value: tail[1]}
	}
	end, err := strconv.ParseInt(tail[2], 10, 64)
	if err != nil {
		return SequenceRegion{}, &InvalidCoordinateError{Line: lineNum, Field: "sequence-region end", Value: tail[2]}
	}

	return SequenceRegion{Seqid: tail[0], Start: start, End: end}, nil
}

// newLineScanner returns a scanner that tolerates long attribute columns.
func newLineScanner(r io.Reader) *bufio.Scanner {
	scanner := bufio.NewScanner(r)
	buf := make([]byte, 0, 64*1024)
	scanner.Buffer(buf, 16*1024*1024)
	return scanner
}

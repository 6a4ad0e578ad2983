package gff

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/klauspost/compress/gzip"
)

const fastaDirective = "##FASTA"

// Reader reads features from a GFF3 stream one record at a time.
// Sequence regions declared in the metadata header are collected as the
// header is passed.
type Reader struct {
	scanner    *bufio.Scanner
	lineNumber int
	inHeader   bool
	done       bool
	regions    []SequenceRegion
}

// NewReader creates a reader over r.
func NewReader(r io.Reader) *Reader {
	return &Reader{
		scanner:  newLineScanner(r),
		inHeader: true,
	}
}

// Next reads the next feature.
// Returns nil, nil when there are no more features.
func (r *Reader) Next() (*Feature, error) {
	for !r.done && r.scanner.Scan() {
		r.lineNumber++
		line := strings.TrimRight(r.scanner.Text(), "\r")

		if strings.TrimSpace(line) == "" {
			r.inHeader = false
			continue
		}
		if strings.HasPrefix(line, "#") {
			if err := r.directive(line); err != nil {
				return nil, err
			}
			continue
		}
		r.inHeader = false

		f, err := ParseRecord(line, r.lineNumber)
		if err != nil {
			return nil, err
		}
		return &f, nil
	}

	if err := r.scanner.Err(); err != nil {
		return nil, fmt.Errorf("scan GFF3: %w", err)
	}
	r.done = true
	return nil, nil
}

// NextBatch reads up to n features. An empty batch with a nil error means
// the input is exhausted.
func (r *Reader) NextBatch(n int) ([]Feature, error) {
	if n <= 0 {
		n = 1
	}
	batch := make([]Feature, 0, n)
	for len(batch) < n {
		f, err := r.Next()
		if err != nil {
			return nil, err
		}
		if f == nil {
			break
		}
		batch = append(batch, *f)
	}
	return batch, nil
}

// directive handles a comment line. Only header ##sequence-region lines are
// recorded; ##FASTA ends the feature section.
func (r *Reader) directive(line string) error {
	if strings.HasPrefix(line, fastaDirective) {
		r.done = true
		return nil
	}
	if r.inHeader && isSequenceRegion(line) {
		region, err := parseSequenceRegion(line, r.lineNumber)
		if err != nil {
			return err
		}
		r.regions = append(r.regions, region)
	}
	return nil
}

// SequenceRegions returns the sequence regions seen so far.
func (r *Reader) SequenceRegions() []SequenceRegion {
	return r.regions
}

// LineNumber returns the current line number being processed.
func (r *Reader) LineNumber() int {
	return r.lineNumber
}

// File is an open GFF3 input, transparently gunzipped.
type File struct {
	io.Reader
	file *os.File
	gz   *gzip.Reader
}

// Open opens a plain or gzip-compressed GFF3 file. "-" reads stdin.
// Compression is detected from the gzip magic bytes, not the file name.
func Open(path string) (*File, error) {
	if path == "-" {
		return &File{Reader: os.Stdin}, nil
	}

	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open GFF3 file: %w", err)
	}

	br := bufio.NewReader(file)
	magic, err := br.Peek(2)
	if err != nil && err != io.EOF {
		file.Close()
		return nil, fmt.Errorf("read GFF3 header: %w", err)
	}

	f := &File{Reader: br, file: file}
	if len(magic) == 2 && magic[0] == 0x1f && magic[1] == 0x8b {
		f.gz, err = gzip.NewReader(br)
		if err != nil {
			file.Close()
			return nil, fmt.Errorf("create gzip reader: %w", err)
		}
		f.Reader = f.gz
	}
	return f, nil
}

// Close closes the underlying file.
func (f *File) Close() error {
	if f.gz != nil {
		f.gz.Close()
	}
	if f.file != nil {
		return f.file.Close()
	}
	return nil
}

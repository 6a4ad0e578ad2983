package gff

import (
	"context"
	"fmt"
	"io"
	"runtime"
	"strings"
	"sync"
)

// DefaultBatchSize is the number of data lines handed to a worker at once.
const DefaultBatchSize = 4096

// Options configures ReadAll.
type Options struct {
	// Workers is the number of parsing goroutines. If 0, runtime.NumCPU() is used.
	Workers int
	// BatchSize is the number of data lines per work item. If 0,
	// DefaultBatchSize is used.
	BatchSize int
}

// numberedLine is a raw data line with its position in the input.
type numberedLine struct {
	num  int
	text string
}

// WorkItem holds a batch of raw data lines ready for parsing.
type WorkItem struct {
	Seq   int
	lines []numberedLine
}

// WorkResult holds the features parsed from a single WorkItem.
// Parsing of a batch stops at its first bad line.
type WorkResult struct {
	Seq      int
	Features []Feature
	Err      error
}

// ParallelParse turns batches of data lines into features on workers
// goroutines (runtime.NumCPU() when workers <= 0). A result is emitted per
// batch as soon as its worker finishes, so batches may arrive out of file
// order; OrderedCollect restores it.
func ParallelParse(items <-chan WorkItem, workers int) <-chan WorkResult {
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	results := make(chan WorkResult, 2*workers)

	var wg sync.WaitGroup
	for range workers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for item := range items {
				features, err := parseBatch(item.lines)
				results <- WorkResult{Seq: item.Seq, Features: features, Err: err}
			}
		}()
	}
	go func() {
		wg.Wait()
		close(results)
	}()
	return results
}

func parseBatch(lines []numberedLine) ([]Feature, error) {
	features := make([]Feature, 0, len(lines))
	for _, l := range lines {
		f, err := ParseRecord(l.text, l.num)
		if err != nil {
			return features, err
		}
		features = append(features, f)
	}
	return features, nil
}

// OrderedCollect hands batch results to fn in file order, holding back any
// batch that finished before its predecessors. When fn fails, the remaining
// results are discarded so the parsing workers can exit.
func OrderedCollect(results <-chan WorkResult, fn func(WorkResult) error) error {
	waiting := make(map[int]WorkResult)
	next := 0

	for res := range results {
		waiting[res.Seq] = res
		for {
			ready, ok := waiting[next]
			if !ok {
				break
			}
			delete(waiting, next)
			next++
			if err := fn(ready); err != nil {
				for range results {
				}
				return err
			}
		}
	}
	return nil
}

// ReadAll parses every feature in r on a worker pool and returns them in
// file order together with the header sequence regions. The first bad
// record in file order aborts the read.
func ReadAll(ctx context.Context, r io.Reader, opts Options) ([]Feature, []SequenceRegion, error) {
	batchSize := opts.BatchSize
	if batchSize <= 0 {
		batchSize = DefaultBatchSize
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	items := make(chan WorkItem, 2*runtime.NumCPU())
	var (
		readErr error
		regions []SequenceRegion
	)

	go func() {
		defer close(items)

		send := func(item WorkItem) bool {
			if err := ctx.Err(); err != nil {
				readErr = err
				return false
			}
			select {
			case items <- item:
				return true
			case <-ctx.Done():
				readErr = ctx.Err()
				return false
			}
		}

		scanner := newLineScanner(r)
		seq, lineNum := 0, 0
		inHeader := true
		batch := make([]numberedLine, 0, batchSize)

		for scanner.Scan() {
			lineNum++
			line := strings.TrimRight(scanner.Text(), "\r")

			if strings.TrimSpace(line) == "" {
				inHeader = false
				continue
			}
			if strings.HasPrefix(line, "#") {
				if strings.HasPrefix(line, fastaDirective) {
					break
				}
				if inHeader && isSequenceRegion(line) {
					region, err := parseSequenceRegion(line, lineNum)
					if err != nil {
						readErr = err
						return
					}
					regions = append(regions, region)
				}
				continue
			}
			inHeader = false

			batch = append(batch, numberedLine{num: lineNum, text: line})
			if len(batch) == batchSize {
				if !send(WorkItem{Seq: seq, lines: batch}) {
					return
				}
				seq++
				batch = make([]numberedLine, 0, batchSize)
			}
		}
		if err := scanner.Err(); err != nil {
			readErr = fmt.Errorf("scan GFF3: %w", err)
			return
		}
		if len(batch) > 0 {
			send(WorkItem{Seq: seq, lines: batch})
		}
	}()

	var features []Feature
	results := ParallelParse(items, opts.Workers)
	if err := OrderedCollect(results, func(res WorkResult) error {
		features = append(features, res.Features...)
		if res.Err != nil {
			cancel()
			return res.Err
		}
		return nil
	}); err != nil {
		return nil, nil, err
	}

	if readErr != nil {
		return nil, nil, readErr
	}
	return features, regions, nil
}

package schema

import (
	"os"
	"time"

	"github.com/google/uuid"
)

// InputFingerprint holds stat-based identity for an input file.
type InputFingerprint struct {
	Path    string
	Size    int64
	ModTime time.Time
}

// StatInput fingerprints an on-disk file. Standard input ("-") has no
// fingerprint beyond its path.
func StatInput(path string) (InputFingerprint, error) {
	if path == "-" {
		return InputFingerprint{Path: path}, nil
	}
	info, err := os.Stat(path)
	if err != nil {
		return InputFingerprint{}, err
	}
	return InputFingerprint{
		Path:    path,
		Size:    info.Size(),
		ModTime: info.ModTime(),
	}, nil
}

// Run describes one invocation that wrote to an output.
type Run struct {
	ID       uuid.UUID
	Analysis string
	Command  string
	Input    InputFingerprint
	Started  time.Time
	Finished time.Time
	Records  int
}

// NewRun starts a run with a fresh ID.
func NewRun(analysis, command string, input InputFingerprint) *Run {
	return &Run{
		ID:       uuid.New(),
		Analysis: analysis,
		Command:  command,
		Input:    input,
		Started:  time.Now().UTC(),
	}
}

// Row returns the Runs row for r.
func (r *Run) Row() []any {
	var modified, finished any
	if !r.Input.ModTime.IsZero() {
		modified = r.Input.ModTime.UTC().Format(time.RFC3339)
	}
	if !r.Finished.IsZero() {
		finished = r.Finished.UTC().Format(time.RFC3339)
	}
	return []any{
		r.ID.String(), r.Analysis, r.Command, r.Input.Path, r.Input.Size,
		modified, r.Started.UTC().Format(time.RFC3339), finished, int64(r.Records),
	}
}

package results

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	pkgio "github.com/matzehuels/coalition/pkg/io"
)

// File names written by [FileSink].
const (
	OriginalFile    = "original.txt"
	ManipulatedFile = "manipulated.txt"
	RecordFile      = "record.json"
)

// FileSink writes the latest record into a directory, replacing earlier
// files.
type FileSink struct {
	Dir string
}

// NewFileSink returns a sink writing into dir, creating it if needed.
func NewFileSink(dir string) (*FileSink, error) {
	if dir == "" {
		dir = "."
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create %s: %w", dir, err)
	}
	return &FileSink{Dir: dir}, nil
}

// Save writes original.txt, manipulated.txt and record.json.
func (s *FileSink) Save(_ context.Context, rec Record) error {
	if err := pkgio.ExportProfile(rec.Original, s.OriginalPath()); err != nil {
		return err
	}
	if err := pkgio.ExportProfile(rec.Manipulated, s.ManipulatedPath()); err != nil {
		return err
	}
	data, err := json.MarshalIndent(rec, "", "  ")
	if err != nil {
		return fmt.Errorf("encode record: %w", err)
	}
	return os.WriteFile(filepath.Join(s.Dir, RecordFile), append(data, '\n'), 0o644)
}

// OriginalPath returns the path of original.txt.
func (s *FileSink) OriginalPath() string { return filepath.Join(s.Dir, OriginalFile) }

// ManipulatedPath returns the path of manipulated.txt.
func (s *FileSink) ManipulatedPath() string { return filepath.Join(s.Dir, ManipulatedFile) }

func (s *FileSink) Close() error { return nil }

var _ Sink = (*FileSink)(nil)

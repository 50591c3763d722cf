package writer

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

type Status string

const (
	StatusWritten       Status = "written"
	StatusSkippedSame   Status = "skipped_same"
	StatusSkippedExists Status = "skipped_exists"
	StatusDryRun        Status = "dry_run"
)

// Options configure write behaviour.
type Options struct {
	Force  bool
	DryRun bool
}

// Option mutates Options.
type Option func(*Options)

// WithForce forces rewrites for files guarded by WriteCustomOnce.
func WithForce(force bool) Option {
	return func(o *Options) {
		o.Force = force
	}
}

// WithDryRun enables dry-run mode (no writes).
func WithDryRun(dry bool) Option {
	return func(o *Options) {
		o.DryRun = dry
	}
}

// Writer performs diff-aware writes of generated artifacts.
type Writer struct {
	options Options
}

// New creates a writer with provided options.
func New(opts ...Option) *Writer {
	var options Options
	for _, opt := range opts {
		if opt != nil {
			opt(&options)
		}
	}
	return &Writer{options: options}
}

// WriteGenerated writes (or updates) a generated file. Text artifacts are normalised to
// end with exactly one newline.
func (w *Writer) WriteGenerated(path string, content []byte) (Status, error) {
	return w.writeFile(path, normalize(path, content))
}

// WriteCustomOnce writes a user editable file only if it does not exist (unless forced).
func (w *Writer) WriteCustomOnce(path string, content []byte) (Status, error) {
	if !w.options.Force {
		if _, err := os.Stat(path); err == nil {
			return StatusSkippedExists, nil
		}
	}
	return w.writeFile(path, normalize(path, content))
}

func (w *Writer) writeFile(path string, content []byte) (Status, error) {
	if existing, err := os.ReadFile(path); err == nil && bytes.Equal(existing, content) {
		return StatusSkippedSame, nil
	}

	if w.options.DryRun {
		return StatusDryRun, nil
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return Status(""), fmt.Errorf("create dir: %w", err)
	}

	if err := os.WriteFile(path, content, 0o644); err != nil {
		return Status(""), fmt.Errorf("write file: %w", err)
	}

	return StatusWritten, nil
}

func normalize(path string, content []byte) []byte {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".graphql", ".gql", ".json", ".yaml", ".yml":
	default:
		return content
	}
	trimmed := bytes.TrimRight(content, "\n")
	out := make([]byte, 0, len(trimmed)+1)
	out = append(out, trimmed...)
	return append(out, '\n')
}

package writer

import (
	"os"
	"path/filepath"
	"testing"
)

func TestWriteGenerated_NormalizesAndSkipsIdentical(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "schema.graphql")

	w := New()
	status, err := w.WriteGenerated(path, []byte("enum Status {\n  ACTIVE\n}"))
	if err != nil {
		t.Fatalf("write generated: %v", err)
	}
	if status != StatusWritten {
		t.Fatalf("expected status written, got %s", status)
	}

	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read back: %v", err)
	}
	if string(content) != "enum Status {\n  ACTIVE\n}\n" {
		t.Fatalf("unexpected normalized content:\n%s", string(content))
	}

	status, err = w.WriteGenerated(path, []byte("enum Status {\n  ACTIVE\n}\n\n\n"))
	if err != nil {
		t.Fatalf("write generated second time: %v", err)
	}
	if status != StatusSkippedSame {
		t.Fatalf("expected skip on identical content, got %s", status)
	}
}

func TestWriteGenerated_CreatesDirectories(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "operations", "book", "save-book.graphql")

	status, err := New().WriteGenerated(path, []byte("mutation SaveBook {\n}"))
	if err != nil {
		t.Fatalf("write nested: %v", err)
	}
	if status != StatusWritten {
		t.Fatalf("expected status written, got %s", status)
	}
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("expected file on disk: %v", err)
	}
}

func TestWriteGenerated_LeavesOtherFilesVerbatim(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "notes.txt")

	if _, err := New().WriteGenerated(path, []byte("no newline")); err != nil {
		t.Fatalf("write: %v", err)
	}
	data, _ := os.ReadFile(path)
	if string(data) != "no newline" {
		t.Fatalf("expected verbatim content, got %q", string(data))
	}
}

func TestWriteCustomOnce_RespectsExistingAndForce(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "definitions.yaml")
	if err := os.WriteFile(path, []byte("existing"), 0o644); err != nil {
		t.Fatalf("seed file: %v", err)
	}

	w := New()
	status, err := w.WriteCustomOnce(path, []byte("models: []"))
	if err != nil {
		t.Fatalf("write custom once: %v", err)
	}
	if status != StatusSkippedExists {
		t.Fatalf("expected skip when file exists, got %s", status)
	}

	w = New(WithForce(true))
	status, err = w.WriteCustomOnce(path, []byte("models: []\n"))
	if err != nil {
		t.Fatalf("write custom forced: %v", err)
	}
	if status != StatusWritten {
		t.Fatalf("expected write when forced, got %s", status)
	}

	data, _ := os.ReadFile(path)
	if string(data) != "models: []\n" {
		t.Fatalf("expected overwritten content, got %q", string(data))
	}
}

func TestWriteGenerated_DryRun(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "schema.graphql")

	w := New(WithDryRun(true))
	status, err := w.WriteGenerated(path, []byte("scalar Date"))
	if err != nil {
		t.Fatalf("dry-run write: %v", err)
	}
	if status != StatusDryRun {
		t.Fatalf("expected dry-run status, got %s", status)
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Fatalf("expected no file written in dry-run, got err=%v", err)
	}
}

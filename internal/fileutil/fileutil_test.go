package fileutil_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"bingelog/internal/fileutil"
)

func TestReadLinesMissingFile(t *testing.T) {
	lines, err := fileutil.ReadLines(filepath.Join(t.TempDir(), "absent.txt"))
	if err != nil {
		t.Fatalf("ReadLines: %v", err)
	}
	if lines != nil {
		t.Fatalf("expected nil lines for missing file, got %v", lines)
	}
}

func TestAppendLineCreatesAndAppends(t *testing.T) {
	path := filepath.Join(t.TempDir(), "store", "records.txt")
	if err := fileutil.AppendLine(path, "first"); err != nil {
		t.Fatalf("AppendLine: %v", err)
	}
	if err := fileutil.AppendLine(path, "second"); err != nil {
		t.Fatalf("AppendLine: %v", err)
	}

	lines, err := fileutil.ReadLines(path)
	if err != nil {
		t.Fatalf("ReadLines: %v", err)
	}
	if len(lines) != 2 || lines[0] != "first" || lines[1] != "second" {
		t.Fatalf("unexpected lines: %v", lines)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if !strings.HasSuffix(string(data), "\n") {
		t.Fatal("expected newline-terminated file")
	}
}

func TestWriteLinesAtomicReplacesContent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "records.txt")
	if err := os.WriteFile(path, []byte("old\n"), 0o644); err != nil {
		t.Fatalf("seed file: %v", err)
	}

	if err := fileutil.WriteLinesAtomic(path, []string{"a", "b", "c"}); err != nil {
		t.Fatalf("WriteLinesAtomic: %v", err)
	}

	lines, err := fileutil.ReadLines(path)
	if err != nil {
		t.Fatalf("ReadLines: %v", err)
	}
	if len(lines) != 3 || lines[0] != "a" || lines[2] != "c" {
		t.Fatalf("unexpected lines: %v", lines)
	}

	entries, err := os.ReadDir(filepath.Dir(path))
	if err != nil {
		t.Fatalf("ReadDir: %v", err)
	}
	for _, entry := range entries {
		if strings.HasSuffix(entry.Name(), ".tmp") {
			t.Fatalf("temp file left behind: %s", entry.Name())
		}
	}
}

func TestTouch(t *testing.T) {
	path := filepath.Join(t.TempDir(), "users", "alice.txt")

	created, err := fileutil.Touch(path)
	if err != nil {
		t.Fatalf("Touch: %v", err)
	}
	if !created {
		t.Fatal("expected first Touch to create the file")
	}
	if !fileutil.Exists(path) {
		t.Fatal("expected file to exist after Touch")
	}

	created, err = fileutil.Touch(path)
	if err != nil {
		t.Fatalf("Touch (second): %v", err)
	}
	if created {
		t.Fatal("expected second Touch to be a no-op")
	}
}

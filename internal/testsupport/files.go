package testsupport

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"bingelog/internal/config"
)

// WriteUserFile seeds a raw per-user list file, bypassing the store, so
// tests can exercise legacy formats and repair paths.
func WriteUserFile(t testing.TB, cfg *config.Config, username string, lines ...string) string {
	t.Helper()

	path := filepath.Join(cfg.Paths.UsersDir, username+".txt")
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir users dir: %v", err)
	}
	content := ""
	if len(lines) > 0 {
		content = strings.Join(lines, "\n") + "\n"
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write user file: %v", err)
	}
	return path
}

// ReadUserFile returns the raw content of a per-user list file.
func ReadUserFile(t testing.TB, cfg *config.Config, username string) string {
	t.Helper()

	data, err := os.ReadFile(filepath.Join(cfg.Paths.UsersDir, username+".txt"))
	if err != nil {
		t.Fatalf("read user file: %v", err)
	}
	return string(data)
}

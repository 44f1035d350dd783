// Package testsupport provides shared helpers for store and daemon tests.
package testsupport

import (
	"path/filepath"
	"testing"

	"bingelog/internal/config"
)

// ConfigOption allows callers to customize the generated test configuration.
type ConfigOption func(*config.Config)

// NewConfig produces a config seeded with unique temp directories per test.
func NewConfig(t testing.TB, opts ...ConfigOption) *config.Config {
	t.Helper()

	base := t.TempDir()
	cfg := config.Default()
	cfg.Paths.DataDir = filepath.Join(base, "data")
	cfg.Paths.UsersDir = filepath.Join(base, "users")
	cfg.Paths.LogDir = filepath.Join(base, "logs")

	for _, opt := range opts {
		opt(&cfg)
	}

	if err := cfg.EnsureDirectories(); err != nil {
		t.Fatalf("EnsureDirectories: %v", err)
	}
	return &cfg
}

// WithImageCacheWorkers overrides the worker count on the test config.
func WithImageCacheWorkers(workers int) ConfigOption {
	return func(c *config.Config) {
		c.ImageCache.Workers = workers
	}
}

package main

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"bingelog/internal/config"
	"bingelog/internal/daemon"
	"bingelog/internal/ipc"
	"bingelog/internal/logging"
)

type cliHarness struct {
	socket     string
	configPath string
}

// newCLIHarness starts an in-process daemon and IPC server backed by
// temp directories, plus a config file pointing at them.
func newCLIHarness(t *testing.T) *cliHarness {
	t.Helper()

	base := t.TempDir()
	configPath := filepath.Join(base, "config.toml")
	content := fmt.Sprintf(`[paths]
data_dir = %q
users_dir = %q
log_dir = %q

[logging]
format = "json"
level = "error"
`,
		filepath.Join(base, "data"),
		filepath.Join(base, "users"),
		filepath.Join(base, "logs"),
	)
	if err := os.WriteFile(configPath, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, _, _, err := config.Load(configPath)
	if err != nil {
		t.Fatalf("config.Load: %v", err)
	}
	if err := cfg.EnsureDirectories(); err != nil {
		t.Fatalf("EnsureDirectories: %v", err)
	}

	d, err := daemon.New(cfg, logging.NewNop())
	if err != nil {
		t.Fatalf("daemon.New: %v", err)
	}
	t.Cleanup(func() { _ = d.Close() })

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	socket := filepath.Join(t.TempDir(), "bingelogd.sock")
	server, err := ipc.NewServer(ctx, socket, d, logging.NewNop(), nil)
	if err != nil {
		t.Fatalf("ipc.NewServer: %v", err)
	}
	server.Serve()
	t.Cleanup(server.Close)

	return &cliHarness{socket: socket, configPath: configPath}
}

// run executes the CLI with the harness socket and config, returning
// combined output.
func (h *cliHarness) run(t *testing.T, args ...string) (string, error) {
	t.Helper()

	cmd := newRootCommand()
	var buf bytes.Buffer
	cmd.SetOut(&buf)
	cmd.SetErr(&buf)
	cmd.SetArgs(append([]string{"--socket", h.socket, "--config", h.configPath}, args...))
	err := cmd.Execute()
	return buf.String(), err
}

func (h *cliHarness) mustRun(t *testing.T, args ...string) string {
	t.Helper()
	out, err := h.run(t, args...)
	if err != nil {
		t.Fatalf("command %v failed: %v\noutput:\n%s", args, err, out)
	}
	return out
}

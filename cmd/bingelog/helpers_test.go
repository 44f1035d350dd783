package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"bingelog/internal/api"
)

func TestFormatProgress(t *testing.T) {
	tests := []struct {
		name  string
		entry api.EntryView
		want  string
	}{
		{
			name: "with known total",
			entry: api.EntryView{
				Progress: 3,
				Show:     &api.ShowView{TotalUnits: 12},
			},
			want: "3/12",
		},
		{
			name:  "without show",
			entry: api.EntryView{Progress: 7},
			want:  "7",
		},
		{
			name: "unknown total",
			entry: api.EntryView{
				Progress: 7,
				Show:     &api.ShowView{TotalUnits: 0},
			},
			want: "7",
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := formatProgress(tc.entry); got != tc.want {
				t.Fatalf("formatProgress = %q, want %q", got, tc.want)
			}
		})
	}
}

func TestFormatRating(t *testing.T) {
	if got := formatRating(-1); got != "-" {
		t.Fatalf("unrated should render as dash, got %q", got)
	}
	if got := formatRating(9); got != "9" {
		t.Fatalf("formatRating(9) = %q", got)
	}
}

func TestRenderStatusLine(t *testing.T) {
	line := renderStatusLine("Running", statusOK, "pid 42", false)
	if !strings.Contains(line, "Running:") || !strings.Contains(line, "[OK] pid 42") {
		t.Fatalf("unexpected line: %q", line)
	}

	colored := renderStatusLine("Running", statusError, "", true)
	if !strings.HasPrefix(colored, ansiRed) || !strings.HasSuffix(colored, ansiReset) {
		t.Fatalf("expected red coloring: %q", colored)
	}
}

func TestRenderTableAlignsColumns(t *testing.T) {
	out := renderTable(
		[]string{"Title", "Total"},
		[][]string{{"Demo Show", "12"}},
		[]columnAlignment{alignLeft, alignRight},
	)
	if !strings.Contains(out, "Demo Show") || !strings.Contains(out, "12") {
		t.Fatalf("unexpected table output:\n%s", out)
	}
}

func TestConfigInitCommand(t *testing.T) {
	target := filepath.Join(t.TempDir(), "config.toml")

	h := newCLIHarness(t)
	out := h.mustRun(t, "config", "init", "--path", target)
	if !strings.Contains(out, "Wrote sample configuration") {
		t.Fatalf("init output: %s", out)
	}
	if _, err := os.Stat(target); err != nil {
		t.Fatalf("sample config not written: %v", err)
	}

	if _, err := h.run(t, "config", "init", "--path", target); err == nil {
		t.Fatal("init over an existing file should fail without --overwrite")
	}
	h.mustRun(t, "config", "init", "--path", target, "--overwrite")
}

func TestConfigShowAndPathCommands(t *testing.T) {
	h := newCLIHarness(t)

	out := h.mustRun(t, "config", "path")
	if strings.TrimSpace(out) != h.configPath {
		t.Fatalf("config path = %q, want %q", strings.TrimSpace(out), h.configPath)
	}

	out = h.mustRun(t, "config", "show")
	if !strings.Contains(out, "# "+h.configPath) {
		t.Fatalf("show output missing path header:\n%s", out)
	}
	for _, section := range []string{"[paths]", "[image_cache]", "[logging]"} {
		if !strings.Contains(out, section) {
			t.Fatalf("show output missing %s section:\n%s", section, out)
		}
	}
}

package main

import (
	"bytes"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/vovakirdan/tui-sand/internal/storage"
	"github.com/vovakirdan/tui-sand/internal/telemetry"
)

func TestPickMode(t *testing.T) {
	tests := []struct {
		name        string
		args        []string
		wantMode    string
		wantUnknown []string
	}{
		{"no args", nil, "sand", nil},
		{"one mode", []string{"saver"}, "saver", nil},
		{"last wins", []string{"saver", "crawl", "noise"}, "noise", nil},
		{"unknown ignored", []string{"lava", "crawl", "--"}, "crawl", []string{"lava", "--"}},
		{"only unknown", []string{"water"}, "sand", []string{"water"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mode, unknown := pickMode(tt.args)
			if mode != tt.wantMode {
				t.Errorf("mode = %q, expected %q", mode, tt.wantMode)
			}
			if !reflect.DeepEqual(unknown, tt.wantUnknown) {
				t.Errorf("unknown = %v, expected %v", unknown, tt.wantUnknown)
			}
		})
	}
}

func TestListCommand(t *testing.T) {
	var out bytes.Buffer
	listCmd.SetOut(&out)
	runList(listCmd, nil)

	got := out.String()
	for _, want := range []string{"crawl", "noise", "Falling Sand (default)", "Screen Saver"} {
		if !strings.Contains(got, want) {
			t.Errorf("list output missing %q:\n%s", want, got)
		}
	}
}

func TestPlotRunsOrder(t *testing.T) {
	if got := plotRuns(nil); got != "No runs recorded yet." {
		t.Errorf("empty plot = %q", got)
	}

	runs := []telemetry.RunSummary{{MeanTickMS: 3}, {MeanTickMS: 1}}
	if got := plotRuns(runs); !strings.Contains(got, "mean ms/tick per run") {
		t.Errorf("plot missing caption:\n%s", got)
	}
}

func TestHistoryCSV(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "history.db")
	store, err := storage.Open(dbPath)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	start := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	if _, err := store.SaveRun(telemetry.RunSummary{Mode: "sand", Origin: "local", StartedAt: start, Ticks: 42}); err != nil {
		t.Fatalf("SaveRun: %v", err)
	}
	store.Close()

	flagDBPath = dbPath
	flagHistoryCSV = true
	t.Cleanup(func() {
		flagDBPath = storage.DefaultPath
		flagHistoryCSV = false
	})

	var out bytes.Buffer
	historyCmd.SetOut(&out)
	if err := runHistory(historyCmd, []string{"sand"}); err != nil {
		t.Fatalf("runHistory: %v", err)
	}

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected header and one row, got:\n%s", out.String())
	}
	if !strings.HasPrefix(lines[0], "id,mode,origin,started_at") {
		t.Errorf("header = %q", lines[0])
	}
	if !strings.Contains(lines[1], "sand,local,2026-01-02T03:04:05Z") {
		t.Errorf("row = %q", lines[1])
	}
}

func TestHistoryRejectsUnknownMode(t *testing.T) {
	if err := runHistory(historyCmd, []string{"lava"}); err == nil {
		t.Error("unknown mode should fail")
	}
}

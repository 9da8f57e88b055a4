package storage

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/vovakirdan/tui-sand/internal/telemetry"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func run(mode string, start time.Time, ticks uint64, peak int) telemetry.RunSummary {
	return telemetry.RunSummary{
		Mode:           mode,
		Origin:         "local",
		StartedAt:      start,
		Duration:       time.Duration(ticks) * 8 * time.Millisecond,
		Ticks:          ticks,
		PeakPopulation: peak,
		MeanTickMS:     0.25,
		P95TickMS:      0.75,
	}
}

func TestStoreOpenClose(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	// Check that the file was created
	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created")
	}
}

func TestStoreSaveAndRetrieve(t *testing.T) {
	store := openTestStore(t)
	base := time.Date(2026, 5, 1, 10, 0, 0, 0, time.UTC)

	r := run("sand", base, 1200, 840)
	r.Resets = 2
	r.Failures = 1
	r.Origin = "alice"
	id, err := store.SaveRun(r)
	if err != nil {
		t.Fatalf("SaveRun() failed: %v", err)
	}
	if id <= 0 {
		t.Errorf("SaveRun() id = %d, expected positive", id)
	}

	runs, err := store.RecentRuns("sand", 10)
	if err != nil {
		t.Fatalf("RecentRuns() failed: %v", err)
	}
	if len(runs) != 1 {
		t.Fatalf("Expected 1 run, got %d", len(runs))
	}

	got := runs[0]
	if got.ID != id || got.Mode != "sand" || got.Origin != "alice" {
		t.Errorf("got id=%d mode=%q origin=%q", got.ID, got.Mode, got.Origin)
	}
	if !got.StartedAt.Equal(base) {
		t.Errorf("StartedAt = %s, expected %s", got.StartedAt, base)
	}
	if got.Duration != r.Duration {
		t.Errorf("Duration = %s, expected %s", got.Duration, r.Duration)
	}
	if got.Ticks != 1200 || got.PeakPopulation != 840 || got.Resets != 2 || got.Failures != 1 {
		t.Errorf("counters = %+v", got)
	}
	if got.MeanTickMS != 0.25 || got.P95TickMS != 0.75 {
		t.Errorf("timings = %v / %v", got.MeanTickMS, got.P95TickMS)
	}
}

func TestStoreRecentRunsOrderAndFilter(t *testing.T) {
	store := openTestStore(t)
	base := time.Date(2026, 5, 1, 10, 0, 0, 0, time.UTC)

	for i := 0; i < 5; i++ {
		if _, err := store.SaveRun(run("sand", base.Add(time.Duration(i)*time.Minute), uint64(i), i)); err != nil {
			t.Fatalf("SaveRun() failed: %v", err)
		}
	}
	if _, err := store.SaveRun(run("saver", base.Add(time.Hour), 9, 400)); err != nil {
		t.Fatalf("SaveRun() failed: %v", err)
	}

	runs, err := store.RecentRuns("sand", 3)
	if err != nil {
		t.Fatalf("RecentRuns() failed: %v", err)
	}
	if len(runs) != 3 {
		t.Fatalf("Expected 3 runs, got %d", len(runs))
	}
	for i, want := range []uint64{4, 3, 2} {
		if runs[i].Ticks != want {
			t.Errorf("runs[%d].Ticks = %d, expected %d (newest first)", i, runs[i].Ticks, want)
		}
	}

	all, err := store.RecentRuns("", 0)
	if err != nil {
		t.Fatalf("RecentRuns(all) failed: %v", err)
	}
	if len(all) != 6 {
		t.Errorf("Expected 6 runs across modes, got %d", len(all))
	}
	if all[0].Mode != "saver" {
		t.Errorf("newest run mode = %q, expected saver", all[0].Mode)
	}
}

func TestStoreStats(t *testing.T) {
	store := openTestStore(t)
	base := time.Now()

	st, err := store.Stats("sand")
	if err != nil {
		t.Fatalf("Stats() on empty store failed: %v", err)
	}
	if st.Runs != 0 || st.TotalTicks != 0 {
		t.Errorf("empty stats = %+v", st)
	}

	store.SaveRun(run("sand", base, 100, 50))
	r := run("sand", base, 300, 20)
	r.Failures = 3
	store.SaveRun(r)
	store.SaveRun(run("crawl", base, 999, 999))

	st, err = store.Stats("sand")
	if err != nil {
		t.Fatalf("Stats() failed: %v", err)
	}
	if st.Runs != 2 {
		t.Errorf("Runs = %d, expected 2", st.Runs)
	}
	if st.TotalTicks != 400 {
		t.Errorf("TotalTicks = %d, expected 400", st.TotalTicks)
	}
	if st.BestPeak != 50 {
		t.Errorf("BestPeak = %d, expected 50", st.BestPeak)
	}
	if st.Longest != 300*8*time.Millisecond {
		t.Errorf("Longest = %s, expected %s", st.Longest, 300*8*time.Millisecond)
	}
	if st.Failures != 3 {
		t.Errorf("Failures = %d, expected 3", st.Failures)
	}
}

func TestStoreClearRuns(t *testing.T) {
	store := openTestStore(t)
	base := time.Now()

	store.SaveRun(run("sand", base, 1, 1))
	store.SaveRun(run("sand", base, 2, 2))
	store.SaveRun(run("noise", base, 3, 3))

	n, err := store.ClearRuns("sand")
	if err != nil {
		t.Fatalf("ClearRuns() failed: %v", err)
	}
	if n != 2 {
		t.Errorf("ClearRuns(sand) removed %d, expected 2", n)
	}

	runs, _ := store.RecentRuns("sand", 10)
	if len(runs) != 0 {
		t.Errorf("Expected no sand runs after clear, got %d", len(runs))
	}
	runs, _ = store.RecentRuns("noise", 10)
	if len(runs) != 1 {
		t.Errorf("Clearing sand should keep noise runs, got %d", len(runs))
	}

	if n, _ := store.ClearRuns(""); n != 1 {
		t.Errorf("ClearRuns(\"\") removed %d, expected 1", n)
	}
}

func TestStoreNestedPath(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "subdir", "deep", "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() with nested path failed: %v", err)
	}
	defer store.Close()

	// Verify nested directories were created
	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created in nested directory")
	}
}

func TestParseTime(t *testing.T) {
	want := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	tests := []struct {
		name string
		in   any
	}{
		{"time value", want},
		{"rfc3339", "2026-01-02T03:04:05Z"},
		{"sqlite datetime", "2026-01-02 03:04:05"},
	}
	for _, tc := range tests {
		if got := parseTime(tc.in); !got.Equal(want) {
			t.Errorf("%s: parseTime = %s, expected %s", tc.name, got, want)
		}
	}
	if !parseTime(42).IsZero() {
		t.Error("unknown types should give the zero time")
	}
}

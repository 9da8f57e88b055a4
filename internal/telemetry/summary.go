package telemetry

import (
	"fmt"
	"io"
	"time"

	"github.com/gocarina/gocsv"
)

// RunSummary describes one finished run of a mode. It carries no particle
// state; a run cannot be resumed from it.
type RunSummary struct {
	ID             int64
	Mode           string
	Origin         string // "local" or the ssh user name
	StartedAt      time.Time
	Duration       time.Duration
	Ticks          uint64
	Resets         int
	Failures       int
	PeakPopulation int
	MeanTickMS     float64
	P95TickMS      float64
}

// trackerWindow bounds the samples kept for the p95 of a run.
const trackerWindow = 4096

// RunTracker accumulates a RunSummary while a mode runs. The mean covers the
// whole run; the p95 covers its last trackerWindow ticks.
type RunTracker struct {
	summary RunSummary
	workMS  float64
	perf    *PerfCollector
}

// NewRunTracker starts tracking a run of mode at start.
func NewRunTracker(mode, origin string, start time.Time) *RunTracker {
	return &RunTracker{
		summary: RunSummary{Mode: mode, Origin: origin, StartedAt: start},
		perf:    NewPerfCollector(trackerWindow),
	}
}

// Observe records one tick.
func (t *RunTracker) Observe(population, resets int, work time.Duration) {
	t.summary.Ticks++
	t.summary.Resets = resets
	if population > t.summary.PeakPopulation {
		t.summary.PeakPopulation = population
	}
	t.workMS += float64(work) / float64(time.Millisecond)
	t.perf.RecordTick(work)
}

// Fail records a failed tick.
func (t *RunTracker) Fail() {
	t.summary.Failures++
}

// Ticks returns the ticks observed so far.
func (t *RunTracker) Ticks() uint64 {
	return t.summary.Ticks
}

// Finish closes the run at end and computes its timing statistics.
func (t *RunTracker) Finish(end time.Time) RunSummary {
	s := t.summary
	s.Duration = end.Sub(s.StartedAt)
	if s.Ticks > 0 {
		s.MeanTickMS = t.workMS / float64(s.Ticks)
		s.P95TickMS = t.perf.Stats().P95TickMS
	}
	return s
}

// runRecord is the CSV shape of a RunSummary.
type runRecord struct {
	ID             int64   `csv:"id"`
	Mode           string  `csv:"mode"`
	Origin         string  `csv:"origin"`
	StartedAt      string  `csv:"started_at"`
	DurationS      float64 `csv:"duration_s"`
	Ticks          uint64  `csv:"ticks"`
	Resets         int     `csv:"resets"`
	Failures       int     `csv:"failures"`
	PeakPopulation int     `csv:"peak_population"`
	MeanTickMS     float64 `csv:"mean_tick_ms"`
	P95TickMS      float64 `csv:"p95_tick_ms"`
}

// WriteCSV writes runs to w with a header row.
func WriteCSV(w io.Writer, runs []RunSummary) error {
	records := make([]runRecord, len(runs))
	for i, r := range runs {
		records[i] = runRecord{
			ID:             r.ID,
			Mode:           r.Mode,
			Origin:         r.Origin,
			StartedAt:      r.StartedAt.UTC().Format(time.RFC3339),
			DurationS:      r.Duration.Seconds(),
			Ticks:          r.Ticks,
			Resets:         r.Resets,
			Failures:       r.Failures,
			PeakPopulation: r.PeakPopulation,
			MeanTickMS:     r.MeanTickMS,
			P95TickMS:      r.P95TickMS,
		}
	}
	if err := gocsv.Marshal(records, w); err != nil {
		return fmt.Errorf("telemetry: writing csv: %w", err)
	}
	return nil
}

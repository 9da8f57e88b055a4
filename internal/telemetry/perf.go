// Package telemetry measures tick timing and summarizes finished runs.
package telemetry

import (
	"sort"
	"sync"
	"time"

	"gonum.org/v1/gonum/stat"
)

// PerfCollector tracks tick work time over a rolling window, plus the
// interval between frames.
type PerfCollector struct {
	mu sync.Mutex

	windowSize  int
	samples     []float64 // Tick work time in milliseconds
	writeIndex  int
	sampleCount int

	lastTick      float64
	lastFrameTime time.Time
	frameDuration time.Duration
}

// PerfStats holds aggregated timing over the current window.
type PerfStats struct {
	LastTickMS   float64
	MeanTickMS   float64
	StdDevTickMS float64
	P95TickMS    float64
	Samples      int

	FrameDuration time.Duration
	FPS           float64
}

// NewPerfCollector creates a collector averaging over windowSize ticks.
func NewPerfCollector(windowSize int) *PerfCollector {
	if windowSize < 1 {
		windowSize = 120
	}
	return &PerfCollector{
		windowSize: windowSize,
		samples:    make([]float64, windowSize),
	}
}

// RecordTick stores how long one tick's work took.
func (p *PerfCollector) RecordTick(d time.Duration) {
	ms := float64(d) / float64(time.Millisecond)

	p.mu.Lock()
	defer p.mu.Unlock()
	p.lastTick = ms
	p.samples[p.writeIndex] = ms
	p.writeIndex = (p.writeIndex + 1) % p.windowSize
	if p.sampleCount < p.windowSize {
		p.sampleCount++
	}
}

// RecordFrame marks a frame start at now. FPS follows the spacing of frames,
// so it includes the scheduler's sleep.
func (p *PerfCollector) RecordFrame(now time.Time) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if !p.lastFrameTime.IsZero() {
		p.frameDuration = now.Sub(p.lastFrameTime)
	}
	p.lastFrameTime = now
}

// Reset drops every sample.
func (p *PerfCollector) Reset() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.writeIndex = 0
	p.sampleCount = 0
	p.lastTick = 0
	p.lastFrameTime = time.Time{}
	p.frameDuration = 0
}

// Stats computes aggregated statistics over the current window.
func (p *PerfCollector) Stats() PerfStats {
	p.mu.Lock()
	window := make([]float64, p.sampleCount)
	copy(window, p.samples[:p.sampleCount])
	out := PerfStats{
		LastTickMS:    p.lastTick,
		Samples:       p.sampleCount,
		FrameDuration: p.frameDuration,
	}
	p.mu.Unlock()

	if out.FrameDuration > 0 {
		out.FPS = float64(time.Second) / float64(out.FrameDuration)
	}
	if len(window) == 0 {
		return out
	}

	out.MeanTickMS, out.StdDevTickMS = stat.MeanStdDev(window, nil)
	if len(window) < 2 {
		out.StdDevTickMS = 0
	}
	sort.Float64s(window)
	out.P95TickMS = stat.Quantile(0.95, stat.Empirical, window, nil)
	return out
}

// Package schedule drives a tick function at a fixed delay from a single
// background goroutine.
package schedule

import (
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/log"
)

var (
	// ErrStopped is returned by Stop when the scheduler is not running.
	ErrStopped = errors.New("schedule: scheduler stopped")
	// ErrRunning is returned by Start when the scheduler is already running.
	ErrRunning = errors.New("schedule: scheduler already running")
)

// TickError reports a tick that returned an error or panicked.
// The scheduler keeps running after one.
type TickError struct {
	Tick  uint64
	Cause error
}

func (e *TickError) Error() string {
	return fmt.Sprintf("schedule: tick %d failed: %v", e.Tick, e.Cause)
}

func (e *TickError) Unwrap() error { return e.Cause }

// TickFunc runs one tick. n counts ticks since the scheduler was created.
type TickFunc func(n uint64) error

// Config configures a Scheduler.
type Config struct {
	Interval time.Duration    // Delay between the end of one tick and the start of the next
	Tick     TickFunc         // Required
	OnError  func(*TickError) // Optional; called with the tick lock held
	Logger   *log.Logger      // Optional
}

// Scheduler runs Tick on one goroutine. Ticks never overlap each other or a
// function passed to Do.
//
// Pacing is fixed-delay: after a tick the loop sleeps for whatever is left of
// the interval, or not at all when the tick overran. Missed ticks are never
// replayed.
type Scheduler struct {
	interval time.Duration
	tick     TickFunc
	onError  func(*TickError)
	logger   *log.Logger

	tickMu sync.Mutex // Held for every tick and every Do

	mu   sync.Mutex // Guards stop and done
	stop chan struct{}
	done chan struct{}

	ticks    atomic.Uint64
	failures atomic.Uint64
}

// New creates a stopped scheduler.
func New(cfg Config) (*Scheduler, error) {
	if cfg.Interval <= 0 {
		return nil, fmt.Errorf("schedule: interval must be positive, got %s", cfg.Interval)
	}
	if cfg.Tick == nil {
		return nil, errors.New("schedule: tick function is required")
	}
	logger := cfg.Logger
	if logger == nil {
		logger = log.Default()
	}
	return &Scheduler{
		interval: cfg.Interval,
		tick:     cfg.Tick,
		onError:  cfg.OnError,
		logger:   logger,
	}, nil
}

// Interval returns the configured tick delay.
func (s *Scheduler) Interval() time.Duration { return s.interval }

// Ticks returns the number of ticks attempted so far.
func (s *Scheduler) Ticks() uint64 { return s.ticks.Load() }

// Failures returns the number of ticks that failed.
func (s *Scheduler) Failures() uint64 { return s.failures.Load() }

// Running reports whether the loop is active.
func (s *Scheduler) Running() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.stop != nil
}

// Start launches the loop. The first tick runs one interval later.
// It returns ErrRunning if the loop is already active.
func (s *Scheduler) Start() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.stop != nil {
		return ErrRunning
	}
	s.stop = make(chan struct{})
	s.done = make(chan struct{})
	go s.loop(s.stop, s.done)
	s.logger.Info("scheduler started", "interval", s.interval)
	return nil
}

// Stop halts the loop and waits for an in-flight tick to finish. It returns
// ErrStopped if the loop was not running. Stop must not be called from the
// tick function, OnError or Do.
func (s *Scheduler) Stop() error {
	s.mu.Lock()
	stop, done := s.stop, s.done
	s.stop, s.done = nil, nil
	s.mu.Unlock()

	if stop == nil {
		return ErrStopped
	}
	close(stop)
	<-done
	s.logger.Info("scheduler stopped", "ticks", s.ticks.Load(), "failures", s.failures.Load())
	return nil
}

// Do runs fn between ticks. It works whether or not the loop is running.
func (s *Scheduler) Do(fn func()) {
	s.tickMu.Lock()
	defer s.tickMu.Unlock()
	fn()
}

func (s *Scheduler) loop(stop <-chan struct{}, done chan<- struct{}) {
	defer close(done)

	timer := time.NewTimer(s.interval)
	defer timer.Stop()

	for {
		select {
		case <-stop:
			return
		case <-timer.C:
		}

		// Prefer stopping over one more tick when both are ready.
		select {
		case <-stop:
			return
		default:
		}

		start := time.Now()
		s.runTick()
		timer.Reset(max(s.interval-time.Since(start), 0))
	}
}

func (s *Scheduler) runTick() {
	s.tickMu.Lock()
	defer s.tickMu.Unlock()

	n := s.ticks.Add(1)
	if err := s.safeTick(n); err != nil {
		s.failures.Add(1)
		te := &TickError{Tick: n, Cause: err}
		s.logger.Error("tick failed", "tick", n, "err", err)
		if s.onError != nil {
			s.onError(te)
		}
	}
}

// safeTick runs the tick function, turning a panic into an error.
func (s *Scheduler) safeTick(n uint64) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic: %v", r)
		}
	}()
	return s.tick(n)
}

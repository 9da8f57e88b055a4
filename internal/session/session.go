// Package session runs one sand box: a buffer, the active mode, the tick
// scheduler and the frame feed a surface paints from. Each local terminal or
// ssh connection owns exactly one Session.
package session

import (
	"errors"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-sand/internal/config"
	"github.com/vovakirdan/tui-sand/internal/core"
	"github.com/vovakirdan/tui-sand/internal/registry"
	"github.com/vovakirdan/tui-sand/internal/render"
	"github.com/vovakirdan/tui-sand/internal/schedule"
	"github.com/vovakirdan/tui-sand/internal/telemetry"
)

// statusTTL is how long a notice or tick error stays on the status line.
const statusTTL = 2 * time.Second

// Recorder persists finished runs. *storage.Store satisfies it.
type Recorder interface {
	SaveRun(r telemetry.RunSummary) (int64, error)
}

// Options configures a Session.
type Options struct {
	Config config.SandConfig

	// Surface size. The bottom row is kept for the status line.
	Width  int
	Height int

	// Origin is recorded with each run; "local" when empty.
	Origin string

	Recorder Recorder    // Optional
	Logger   *log.Logger // Optional
	Dice     core.Dice   // Optional; clock-seeded when nil
}

// Session owns the shared buffer and everything that touches it.
//
// The scheduler's tick lock guards every field below sched: ticks and
// foreground commands (via sched.Do) never interleave.
type Session struct {
	cfg      config.SandConfig
	origin   string
	recorder Recorder
	logger   *log.Logger
	dice     core.Dice

	buf   *core.Buffer
	perf  *telemetry.PerfCollector
	pub   *render.Publisher
	sched *schedule.Scheduler

	runtime     core.RuntimeConfig
	mode        registry.Mode
	tracker     *telemetry.RunTracker
	last        core.StepResult
	lastErr     string
	errUntil    time.Time
	notice      string
	noticeUntil time.Time
}

// New builds a stopped session sized for a width x height surface.
func New(opts Options) (*Session, error) {
	if err := opts.Config.Validate(); err != nil {
		return nil, err
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.Default()
	}
	dice := opts.Dice
	if dice == nil {
		dice = core.NewDice()
	}
	origin := opts.Origin
	if origin == "" {
		origin = "local"
	}

	s := &Session{
		cfg:      opts.Config,
		origin:   origin,
		recorder: opts.Recorder,
		logger:   logger,
		dice:     dice,
		perf:     telemetry.NewPerfCollector(120),
		pub:      render.NewPublisher(),
	}
	s.runtime = gridConfig(opts.Width, opts.Height, opts.Config.Timing.RefreshInterval)
	s.buf = core.NewBuffer(s.runtime.ScreenW, s.runtime.ScreenH)

	sched, err := schedule.New(schedule.Config{
		Interval: opts.Config.Timing.RefreshInterval,
		Tick:     s.tick,
		OnError:  s.tickFailed,
		Logger:   logger,
	})
	if err != nil {
		return nil, err
	}
	s.sched = sched
	return s, nil
}

// gridConfig reserves the bottom row of the surface for the status line.
func gridConfig(width, height int, interval time.Duration) core.RuntimeConfig {
	return core.RuntimeConfig{
		ScreenW:  core.Max(width, 2),
		ScreenH:  core.Max(height-1, 1),
		Interval: interval,
	}
}

// Frames is the feed a surface paints from.
func (s *Session) Frames() <-chan render.Frame {
	return s.pub.Frames()
}

// Running reports whether the scheduler is ticking.
func (s *Session) Running() bool {
	return s.sched.Running()
}

// Mode returns the id of the current mode, or "" before the first Switch.
func (s *Session) Mode() string {
	var id string
	s.sched.Do(func() {
		if s.mode != nil {
			id = s.mode.ID()
		}
	})
	return id
}

// Switch stops whatever is running, starts mode id on a blank buffer and
// opens a new run for it.
func (s *Session) Switch(id string) error {
	m, err := registry.Create(id, s.cfg, s.dice)
	if err != nil {
		s.Notify(fmt.Sprintf("unknown mode %q", id))
		return err
	}

	s.halt()
	s.sched.Do(func() {
		now := time.Now()
		s.finishRun(now)
		s.mode = m
		s.mode.Reset(s.runtime, s.buf)
		s.beginRun(now)
		s.publish()
	})
	s.logger.Info("mode started", "mode", id, "grid", fmt.Sprintf("%dx%d", s.runtime.ScreenW, s.runtime.ScreenH))
	return s.sched.Start()
}

// Stop halts the scheduler and closes the current run. The last frame stays
// on screen.
func (s *Session) Stop() {
	if !s.halt() {
		return
	}
	s.sched.Do(func() {
		s.finishRun(time.Now())
		s.publish()
	})
}

// halt stops the scheduler, reporting whether it was running.
func (s *Session) halt() bool {
	err := s.sched.Stop()
	return !errors.Is(err, schedule.ErrStopped)
}

// Reset reseeds the current mode. It is a no-op before the first Switch.
func (s *Session) Reset() error {
	id := s.Mode()
	if id == "" {
		s.Notify("nothing to reset")
		return nil
	}
	return s.Switch(id)
}

// Fill paints every cell with the diagnostic glyph.
func (s *Session) Fill() {
	s.sched.Do(func() {
		s.buf.FillAll(core.GlyphFill)
		s.setNotice("fill")
		s.publish()
	})
}

// Resize adapts the grid to a new surface size. A running mode restarts on
// the new grid since its coordinates no longer fit.
func (s *Session) Resize(width, height int) {
	rc := gridConfig(width, height, s.cfg.Timing.RefreshInterval)
	var restart string
	s.sched.Do(func() {
		if rc == s.runtime {
			return
		}
		s.runtime = rc
		if s.mode == nil {
			s.buf.Resize(rc.ScreenW, rc.ScreenH)
			s.publish()
			return
		}
		restart = s.mode.ID()
	})
	if restart == "" {
		return
	}

	wasRunning := s.halt()
	s.sched.Do(func() {
		now := time.Now()
		s.finishRun(now)
		s.buf.Resize(rc.ScreenW, rc.ScreenH)
		s.mode.Reset(s.runtime, s.buf)
		s.beginRun(now)
		s.publish()
	})
	s.logger.Debug("grid resized", "mode", restart, "width", rc.ScreenW, "height", rc.ScreenH)
	if wasRunning {
		_ = s.sched.Start()
	}
}

// Apply runs a foreground command and reports whether the surface should quit.
func (s *Session) Apply(a core.Action) bool {
	switch a {
	case core.ActionSand, core.ActionSaver, core.ActionCrawl, core.ActionNoise:
		if err := s.Switch(a.ModeID()); err != nil {
			s.logger.Warn("cannot switch mode", "action", a, "err", err)
		}
	case core.ActionStop:
		s.Stop()
	case core.ActionReset:
		if err := s.Reset(); err != nil {
			s.logger.Warn("cannot reset mode", "err", err)
		}
	case core.ActionFill:
		s.Fill()
	case core.ActionQuit:
		return true
	}
	return false
}

// Notify shows msg on the status line for a moment.
func (s *Session) Notify(msg string) {
	s.sched.Do(func() {
		s.setNotice(msg)
		s.publish()
	})
}

// Close stops the scheduler and records the open run. Safe to call twice.
func (s *Session) Close() {
	s.halt()
	s.sched.Do(func() {
		s.finishRun(time.Now())
	})
}

// tick is the scheduler callback: simulate, then render.
func (s *Session) tick(uint64) error {
	if s.mode == nil {
		return nil
	}
	start := time.Now()
	s.perf.RecordFrame(start)

	s.last = s.mode.Step()
	s.publish()

	work := time.Since(start)
	s.perf.RecordTick(work)
	if s.tracker != nil {
		s.tracker.Observe(s.last.Population, s.last.Resets, work)
	}
	return nil
}

// tickFailed runs with the tick lock held.
func (s *Session) tickFailed(te *schedule.TickError) {
	if s.tracker != nil {
		s.tracker.Fail()
	}
	s.lastErr = te.Error()
	s.errUntil = time.Now().Add(statusTTL)
	s.publish()
}

func (s *Session) setNotice(msg string) {
	s.notice = msg
	s.noticeUntil = time.Now().Add(statusTTL)
}

func (s *Session) beginRun(now time.Time) {
	s.perf.Reset()
	s.last = core.StepResult{}
	s.lastErr = ""
	s.tracker = telemetry.NewRunTracker(s.mode.ID(), s.origin, now)
}

// finishRun closes the open run and hands it to the recorder. Runs that
// never ticked are dropped.
func (s *Session) finishRun(now time.Time) {
	if s.tracker == nil {
		return
	}
	summary := s.tracker.Finish(now)
	s.tracker = nil
	if summary.Ticks == 0 {
		return
	}

	s.logger.Info("run finished",
		"mode", summary.Mode,
		"ticks", summary.Ticks,
		"duration", summary.Duration.Round(time.Millisecond),
		"peak", summary.PeakPopulation,
		"failures", summary.Failures,
	)
	if s.recorder == nil {
		return
	}
	if _, err := s.recorder.SaveRun(summary); err != nil {
		s.logger.Warn("could not record run", "error", err)
	}
}

// publish captures the buffer and offers it to the surface.
func (s *Session) publish() {
	f := render.Capture(s.buf)
	if s.mode != nil {
		f.Mode = s.mode.ID()
		f.Title = s.mode.Title()
	}
	f.Tick = s.last.Tick
	f.Population = s.last.Population
	f.Resets = s.last.Resets
	f.Running = s.sched.Running()
	f.Perf = s.perf.Stats()

	now := time.Now()
	if s.lastErr != "" && now.Before(s.errUntil) {
		f.Err = s.lastErr
	}
	if s.notice != "" && now.Before(s.noticeUntil) {
		f.Notice = s.notice
	}
	s.pub.Publish(f)
}

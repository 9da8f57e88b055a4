// Package sand implements the falling-sand mode: grains drop from the top
// centre, deflect off anything already drawn in the buffer and pile up.
package sand

import (
	"github.com/vovakirdan/tui-sand/internal/config"
	"github.com/vovakirdan/tui-sand/internal/core"
	"github.com/vovakirdan/tui-sand/internal/registry"
)

func init() {
	registry.Register("sand", func(cfg config.SandConfig, d core.Dice) registry.Mode {
		return New(cfg.Sand, d)
	})
}

// Sim is the falling-sand simulation.
// The buffer is its only collision map: a grain is blocked by whatever glyph
// occupies the cell it is about to enter.
type Sim struct {
	cfg   config.SandParams
	dice  core.Dice
	store *Store
	buf   *core.Buffer

	width, height int
	countdown     int
	tick          uint64
	resets        int
}

// New creates a simulation. Reset must be called before Step.
func New(cfg config.SandParams, d core.Dice) *Sim {
	return &Sim{
		cfg:       cfg,
		dice:      d,
		store:     NewStore(),
		countdown: cfg.ResetCountdown,
	}
}

// ID returns "sand".
func (s *Sim) ID() string { return "sand" }

// Title returns the display name.
func (s *Sim) Title() string { return "Falling Sand" }

// Store exposes the grain store.
func (s *Sim) Store() *Store { return s.store }

// Reset binds the simulation to buf, drops every grain and blanks the buffer.
// Calling it twice is the same as calling it once.
func (s *Sim) Reset(cfg core.RuntimeConfig, buf *core.Buffer) {
	s.buf = buf
	s.width = buf.Width()
	s.height = buf.Height()
	s.store.Reset()
	s.buf.Clear()
	s.countdown = s.cfg.ResetCountdown
	s.tick = 0
	s.resets = 0
}

// Step runs one tick: population control, the grain pass, then the settle
// pass when it is due.
func (s *Sim) Step() core.StepResult {
	s.tick++

	s.controlPopulation()
	s.store.Each(s.stepParticle)
	if s.tick%uint64(s.cfg.SettleEvery) == 0 {
		s.settlePass()
	}

	return core.StepResult{
		Tick:       s.tick,
		Population: s.store.Len(),
		Resets:     s.resets,
	}
}

// controlPopulation spawns at most one grain, or counts down to a full
// reset while the store is at capacity.
func (s *Sim) controlPopulation() {
	if s.store.Len() >= s.cfg.MaxPopulation {
		s.countdown--
		if s.countdown <= 0 {
			s.store.Reset()
			s.buf.Clear()
			s.countdown = s.cfg.ResetCountdown
			s.resets++
		}
		return
	}

	if s.dice.Intn(100) > s.cfg.SpawnThreshold {
		s.store.SpawnGrain(s.dice, s.width, s.height, s.cfg.BudgetMargin)
	}
}

// stepParticle advances one grain against the live buffer.
func (s *Sim) stepParticle(p *Particle) {
	w, h := s.width, s.height

	// Walls reflect sideways, the floor stops and the ceiling bounces.
	if nx := p.X + p.VX; nx < 0 || nx >= w {
		p.VX = -p.VX
	}
	if ny := p.Y + p.VY; ny >= h {
		p.VY = 0
	} else if ny < 0 {
		p.VY = -p.VY
	}

	s.buf.Write(p.X, p.Y, core.Blank)

	switch {
	case s.buf.Occupied(p.X+p.VX, p.Y+p.VY):
		if p.Budget > 0 {
			s.deflect(p)
			p.spend()
		} else {
			p.freeze()
			p.VX, p.VY = 0, 0
		}
	case p.Budget > 0 && p.VY != 0:
		p.spend()
		p.X += p.VX
		p.Y += p.VY
	case p.VY == 0:
		// Resting; left for the settle pass to pick up.
		p.freeze()
	}

	p.X = core.Clamp(p.X, 0, w-1)
	p.Y = core.Clamp(p.Y, 0, h-1)

	s.buf.Write(p.X, p.Y, p.Glyph)
}

// deflect picks a new velocity after a blocked move. Falling grains kick
// out diagonally; settling grains spread wider and flatter.
func (s *Sim) deflect(p *Particle) {
	if p.Phase == PhaseSettling {
		sign := 1
		if s.dice.Intn(100) > 49 {
			sign = -1
		}
		if s.dice.Intn(100) > 39 {
			p.VX, p.VY = 3*sign, 1
		} else {
			p.VX, p.VY = 4*sign, 2
		}
		return
	}

	sign := -1
	if s.dice.Intn(100) > 49 {
		sign = 1
	}
	if s.dice.Intn(100) > 40 {
		p.VX, p.VY = 2*sign, 1
	} else {
		p.VX, p.VY = 3*sign, 2
	}
}

// settlePass promotes grains that have something below or beside them into
// the settling regime. Grains on the grid edge are skipped. The first
// occupied probe wins: below, then left, then right. A grain with nothing
// around it that has stopped falling is promoted anyway.
func (s *Sim) settlePass() {
	budget := s.height * s.cfg.SettleBudgetFactor

	s.store.Each(func(p *Particle) {
		if p.X-1 < 0 || p.X+1 > s.width-1 || p.Y-1 < 0 || p.Y+1 > s.height-1 {
			return
		}

		switch {
		case s.buf.Occupied(p.X, p.Y+1):
			p.promote(budget, p.VX, 1)
		case s.buf.Occupied(p.X-1, p.Y):
			p.promote(budget, -1, 1)
		case s.buf.Occupied(p.X+1, p.Y):
			p.promote(budget, 1, 1)
		case p.VY == 0:
			p.promote(budget, p.VX, p.VY)
		}
	})
}

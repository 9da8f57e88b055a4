// Package saver implements the screen saver: a cloud of particles drifting
// diagonally and bouncing off every edge. Particles ignore one another.
package saver

import (
	"github.com/vovakirdan/tui-sand/internal/config"
	"github.com/vovakirdan/tui-sand/internal/core"
	"github.com/vovakirdan/tui-sand/internal/registry"
)

func init() {
	registry.Register("saver", func(cfg config.SandConfig, d core.Dice) registry.Mode {
		return New(cfg.Saver, d)
	})
}

// Glyph is drawn for every saver particle.
const Glyph = core.GlyphHalf

type dot struct {
	pos core.Point
	vx  int
	vy  int
}

// Saver is the bouncing-particle screen saver.
type Saver struct {
	cfg  config.SaverParams
	dice core.Dice
	buf  *core.Buffer
	dots []dot

	width, height int
	tick          uint64
}

// New creates a saver. Reset must be called before Step.
func New(cfg config.SaverParams, d core.Dice) *Saver {
	return &Saver{cfg: cfg, dice: d}
}

func (s *Saver) ID() string    { return "saver" }
func (s *Saver) Title() string { return "Screen Saver" }

// Reset scatters the particles over the grid, away from the top and left
// edges, all heading down and to the right.
func (s *Saver) Reset(cfg core.RuntimeConfig, buf *core.Buffer) {
	s.buf = buf
	s.width = buf.Width()
	s.height = buf.Height()
	s.tick = 0
	s.buf.Clear()

	s.dots = make([]dot, s.cfg.Particles)
	for i := range s.dots {
		s.dots[i] = dot{
			pos: core.Point{
				X: s.roll(2, s.width),
				Y: s.roll(2, s.height),
			},
			vx: 1,
			vy: 1,
		}
	}
}

// roll returns a value in [lo, hi), or the last index below hi when the range is empty.
func (s *Saver) roll(lo, hi int) int {
	if hi <= lo {
		return core.Max(hi-1, 0)
	}
	return lo + s.dice.Intn(hi-lo)
}

// Step moves every particle one cell.
func (s *Saver) Step() core.StepResult {
	s.tick++

	for i := range s.dots {
		d := &s.dots[i]
		d.vx = core.Reflect(d.pos.X, d.vx, s.width)
		d.vy = core.Reflect(d.pos.Y, d.vy, s.height)

		s.buf.Write(d.pos.X, d.pos.Y, core.Blank)
		d.pos = d.pos.Add(d.vx, d.vy)
		d.pos.X = core.Clamp(d.pos.X, 0, s.width-1)
		d.pos.Y = core.Clamp(d.pos.Y, 0, s.height-1)
		s.buf.Write(d.pos.X, d.pos.Y, Glyph)
	}

	return core.StepResult{Tick: s.tick, Population: len(s.dots)}
}

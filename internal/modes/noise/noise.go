// Package noise implements the draw test: every tick the grid is wiped and
// refilled with randomly placed glyphs of all four densities.
package noise

import (
	"github.com/vovakirdan/tui-sand/internal/config"
	"github.com/vovakirdan/tui-sand/internal/core"
	"github.com/vovakirdan/tui-sand/internal/registry"
)

func init() {
	registry.Register("noise", func(cfg config.SandConfig, d core.Dice) registry.Mode {
		return New(cfg.Noise, d)
	})
}

// Noise is the random draw test.
type Noise struct {
	cfg  config.NoiseParams
	dice core.Dice
	buf  *core.Buffer

	width, height int
	tick          uint64
}

// New creates a noise mode. Reset must be called before Step.
func New(cfg config.NoiseParams, d core.Dice) *Noise {
	return &Noise{cfg: cfg, dice: d}
}

func (n *Noise) ID() string    { return "noise" }
func (n *Noise) Title() string { return "Draw Test" }

// Reset binds the mode to buf and blanks it.
func (n *Noise) Reset(cfg core.RuntimeConfig, buf *core.Buffer) {
	n.buf = buf
	n.width = buf.Width()
	n.height = buf.Height()
	n.tick = 0
	n.buf.Clear()
}

// Step clears the grid and scatters width*height glyphs. A throw that lands
// on an occupied cell is retried up to Rerolls times; the last throw is kept
// even if it is still occupied.
func (n *Noise) Step() core.StepResult {
	n.tick++
	n.buf.Clear()

	for i := 0; i < n.width*n.height; i++ {
		x, y := n.dice.Intn(n.width), n.dice.Intn(n.height)
		glyph := Glyph(n.dice.Intn(100))
		x, y = n.reroll(x, y)
		n.buf.Write(x, y, glyph)
	}

	return core.StepResult{Tick: n.tick, Population: n.buf.FilledCount()}
}

func (n *Noise) reroll(x, y int) (int, int) {
	for r := 0; r < n.cfg.Rerolls && n.buf.Occupied(x, y); r++ {
		x, y = n.dice.Intn(n.width), n.dice.Intn(n.height)
	}
	return x, y
}

// Glyph maps a d100 roll onto the four densities, solid being the rarest.
func Glyph(roll int) rune {
	switch {
	case roll >= 88:
		return core.GlyphSolid
	case roll >= 60:
		return core.GlyphHalf
	case roll >= 35:
		return core.GlyphThreeQuarters
	default:
		return core.GlyphQuarter
	}
}

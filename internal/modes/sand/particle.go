package sand

import "github.com/vovakirdan/tui-sand/internal/core"

// Phase is the behavioral regime of a grain.
type Phase uint8

const (
	// PhaseFalling grains drop and deflect diagonally off whatever they hit.
	PhaseFalling Phase = iota
	// PhaseSettling grains were promoted by the settle pass and spread sideways.
	PhaseSettling
	// PhaseFrozen grains have no motion budget left and never move on their own.
	PhaseFrozen
)

// String returns the phase name.
func (p Phase) String() string {
	switch p {
	case PhaseFalling:
		return "falling"
	case PhaseSettling:
		return "settling"
	case PhaseFrozen:
		return "frozen"
	default:
		return "unknown"
	}
}

// Particle is one grain of sand.
type Particle struct {
	X, Y   int
	VX, VY int
	Budget int // Remaining motion attempts; 0 means frozen
	Phase  Phase
	Glyph  rune
}

// spend takes one unit of motion budget and freezes the grain when it runs out.
func (p *Particle) spend() {
	p.Budget--
	if p.Budget <= 0 {
		p.freeze()
	}
}

// freeze drops the budget to zero. Velocity is left to the caller.
func (p *Particle) freeze() {
	p.Budget = 0
	p.Phase = PhaseFrozen
}

// promote moves a grain into the settling regime with a fresh budget.
func (p *Particle) promote(budget, vx, vy int) {
	p.Phase = PhaseSettling
	p.Budget = budget
	p.VX, p.VY = vx, vy
}

// grainGlyph maps a d100 roll onto the three spawn tiers:
// above 40 is a light grain, 13..40 medium, and the rest dense.
func grainGlyph(roll int) rune {
	switch {
	case roll > 40:
		return core.GlyphQuarter
	case roll > 12:
		return core.GlyphHalf
	default:
		return core.GlyphThreeQuarters
	}
}

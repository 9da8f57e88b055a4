package sand

import (
	"sync"

	"github.com/vovakirdan/tui-sand/internal/core"
)

// Store holds the live grains in spawn order.
//
// Structural changes (spawn, reset) take the store lock. Per-grain field
// updates made through Each do not; callers serialize ticks against
// foreground commands themselves.
type Store struct {
	mu    sync.Mutex
	parts []Particle
}

// NewStore returns an empty store.
func NewStore() *Store {
	return &Store{}
}

// SpawnGrain appends one grain at the top of a width x height grid, in the
// two columns left of and at the midpoint. The glyph roll is drawn before
// the column roll.
func (s *Store) SpawnGrain(d core.Dice, width, height, margin int) Particle {
	glyph := grainGlyph(d.Intn(100))
	p := Particle{
		X:      width/2 - 1 + d.Intn(2),
		Y:      0,
		VX:     0,
		VY:     1,
		Budget: height + margin,
		Phase:  PhaseFalling,
		Glyph:  glyph,
	}

	s.mu.Lock()
	s.parts = append(s.parts, p)
	s.mu.Unlock()
	return p
}

// Len returns the number of live grains.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.parts)
}

// Reset drops every grain.
func (s *Store) Reset() {
	s.mu.Lock()
	s.parts = nil
	s.mu.Unlock()
}

// Each calls fn with a pointer to every grain, in spawn order.
// fn may mutate the grain in place.
func (s *Store) Each(fn func(p *Particle)) {
	s.mu.Lock()
	parts := s.parts
	s.mu.Unlock()

	for i := range parts {
		fn(&parts[i])
	}
}

// Particles returns a copy of every grain.
func (s *Store) Particles() []Particle {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Particle, len(s.parts))
	copy(out, s.parts)
	return out
}


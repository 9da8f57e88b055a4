package core

import "time"

// RuntimeConfig contains configuration passed to modes at (re)initialization.
type RuntimeConfig struct {
	ScreenW  int           // Grid width in characters
	ScreenH  int           // Grid height in characters (status line excluded)
	Interval time.Duration // Fixed delay between ticks
}

// DefaultConfig returns a RuntimeConfig with sensible defaults.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW:  80,
		ScreenH:  23,
		Interval: 8 * time.Millisecond,
	}
}

// StepResult is returned by a mode after each simulation tick.
type StepResult struct {
	Tick       uint64 // Ticks run since the last Reset
	Population int    // Live particles after the tick
	Resets     int    // Population resets since the last Reset
}

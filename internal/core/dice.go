package core

import (
	"math/rand"
	"time"
)

// Dice is the randomness a simulation consumes. *rand.Rand satisfies it.
type Dice interface {
	// Intn returns a value in [0, n).
	Intn(n int) int
}

// NewDice returns a clock-seeded source. Runs are not meant to be replayable.
func NewDice() *rand.Rand {
	return rand.New(rand.NewSource(time.Now().UnixNano()))
}

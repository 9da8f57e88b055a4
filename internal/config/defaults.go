package config

import (
	_ "embed"
	"time"
)

//go:embed defaults/sand.yaml
var defaultSandYAML []byte

// DefaultSandConfig returns the built-in simulation constants.
func DefaultSandConfig() SandConfig {
	return SandConfig{
		Timing: TimingConfig{
			RefreshInterval: 8 * time.Millisecond,
		},
		Sand: SandParams{
			MaxPopulation:      4200,
			ResetCountdown:     500,
			SettleEvery:        200,
			SpawnThreshold:     45,
			BudgetMargin:       1,
			SettleBudgetFactor: 2,
		},
		Saver: SaverParams{
			Particles: 400,
		},
		Crawl: CrawlParams{
			Budget: 20,
		},
		Noise: NoiseParams{
			Rerolls: 2,
		},
	}
}

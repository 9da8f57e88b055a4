// Package config provides YAML-based configuration loading for the
// simulation constants.
package config

import (
	"errors"
	"fmt"
	"time"
)

// SandConfig contains every tunable the modes and the scheduler read.
type SandConfig struct {
	Timing TimingConfig `yaml:"timing"`
	Sand   SandParams   `yaml:"sand"`
	Saver  SaverParams  `yaml:"saver"`
	Crawl  CrawlParams  `yaml:"crawl"`
	Noise  NoiseParams  `yaml:"noise"`
}

// TimingConfig defines the scheduler cadence.
type TimingConfig struct {
	RefreshInterval time.Duration `yaml:"refresh_interval"` // Fixed delay between ticks
}

// SandParams defines the falling-sand population policy and budgets.
type SandParams struct {
	MaxPopulation      int `yaml:"max_population"`       // Cap before the reset countdown starts
	ResetCountdown     int `yaml:"reset_countdown"`      // Ticks at the cap before a full reset
	SettleEvery        int `yaml:"settle_every"`         // Settle pass period in ticks
	SpawnThreshold     int `yaml:"spawn_threshold"`      // Spawn when a d100 roll exceeds this
	BudgetMargin       int `yaml:"budget_margin"`        // Spawn budget is height + margin
	SettleBudgetFactor int `yaml:"settle_budget_factor"` // Settle budget is height * factor
}

// SaverParams defines the screen saver.
type SaverParams struct {
	Particles int `yaml:"particles"`
}

// CrawlParams defines the crawler.
type CrawlParams struct {
	Budget int `yaml:"budget"` // Wall bounces before a crawler stops
}

// NoiseParams defines the draw test.
type NoiseParams struct {
	Rerolls int `yaml:"rerolls"` // Extra rolls when landing on an occupied cell
}

// Validate rejects values the modes cannot run with.
func (c SandConfig) Validate() error {
	var errs []error
	if c.Timing.RefreshInterval <= 0 {
		errs = append(errs, fmt.Errorf("timing.refresh_interval must be positive, got %s", c.Timing.RefreshInterval))
	}
	positive := []struct {
		name string
		val  int
	}{
		{"sand.max_population", c.Sand.MaxPopulation},
		{"sand.reset_countdown", c.Sand.ResetCountdown},
		{"sand.settle_every", c.Sand.SettleEvery},
		{"sand.settle_budget_factor", c.Sand.SettleBudgetFactor},
		{"saver.particles", c.Saver.Particles},
		{"crawl.budget", c.Crawl.Budget},
	}
	for _, p := range positive {
		if p.val <= 0 {
			errs = append(errs, fmt.Errorf("%s must be positive, got %d", p.name, p.val))
		}
	}
	if c.Sand.SpawnThreshold < 0 || c.Sand.SpawnThreshold >= 100 {
		errs = append(errs, fmt.Errorf("sand.spawn_threshold must be in [0,100), got %d", c.Sand.SpawnThreshold))
	}
	if c.Sand.BudgetMargin < 1 {
		errs = append(errs, fmt.Errorf("sand.budget_margin must be at least 1, got %d", c.Sand.BudgetMargin))
	}
	if c.Noise.Rerolls < 0 {
		errs = append(errs, fmt.Errorf("noise.rerolls must not be negative, got %d", c.Noise.Rerolls))
	}
	if len(errs) > 0 {
		return fmt.Errorf("config: %w", errors.Join(errs...))
	}
	return nil
}

// Package registry provides a global registry for simulation mode factories.
// Modes register themselves in init() functions, allowing the session and the
// CLI to discover and instantiate them without hardcoded dependencies.
package registry

import (
	"fmt"
	"sort"
	"sync"

	"github.com/vovakirdan/tui-sand/internal/config"
	"github.com/vovakirdan/tui-sand/internal/core"
)

// Mode is the interface every animation mode implements.
// Modes contain pure logic: they mutate the shared buffer and know nothing
// about timing, terminals or persistence.
type Mode interface {
	// ID returns a unique identifier (e.g., "sand", "saver").
	// Used for CLI arguments and run history.
	ID() string

	// Title returns a human-readable name for display.
	Title() string

	// Reset binds the mode to buf and discards all particle state.
	// Called on start, on a reseed request and after a resize.
	Reset(cfg core.RuntimeConfig, buf *core.Buffer)

	// Step advances the simulation by one tick.
	Step() core.StepResult
}

// ModeInfo contains metadata about a registered mode.
type ModeInfo struct {
	ID    string
	Title string
}

// Factory creates a new mode instance. Factories must not draw from d.
type Factory func(cfg config.SandConfig, d core.Dice) Mode

var (
	factories = make(map[string]Factory)
	titles    = make(map[string]string)
	mu        sync.RWMutex
)

// Register adds a mode factory to the registry.
// Typically called from a mode's init() function.
// Panics if a mode with the same ID is already registered.
func Register(id string, f Factory) {
	mu.Lock()
	defer mu.Unlock()

	if _, exists := factories[id]; exists {
		panic(fmt.Sprintf("registry: mode %q already registered", id))
	}

	factories[id] = f

	// Get title by creating a temporary instance
	m := f(config.DefaultSandConfig(), nil)
	titles[id] = m.Title()
}

// List returns information about all registered modes, sorted by ID.
func List() []ModeInfo {
	mu.RLock()
	defer mu.RUnlock()

	result := make([]ModeInfo, 0, len(factories))
	for id := range factories {
		result = append(result, ModeInfo{
			ID:    id,
			Title: titles[id],
		})
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].ID < result[j].ID
	})

	return result
}

// Create instantiates a new mode by its ID.
// Returns an error if the mode ID is not registered.
func Create(id string, cfg config.SandConfig, d core.Dice) (Mode, error) {
	mu.RLock()
	defer mu.RUnlock()

	f, ok := factories[id]
	if !ok {
		return nil, fmt.Errorf("registry: unknown mode %q", id)
	}

	return f(cfg, d), nil
}

// Exists checks if a mode with the given ID is registered.
func Exists(id string) bool {
	mu.RLock()
	defer mu.RUnlock()

	_, ok := factories[id]
	return ok
}

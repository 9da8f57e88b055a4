package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// LoadSand loads the simulation constants.
// Search order: customPath -> ~/.sand/configs/sand.yaml -> ./configs/sand.yaml -> embedded default
//
// Files are decoded on top of the defaults, so a partial file only overrides
// the keys it names.
func LoadSand(customPath string) (SandConfig, error) {
	// Try custom path first
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return DefaultSandConfig(), fmt.Errorf("config: failed to read %s: %w", customPath, err)
		}
		cfg, err := parseSand(data)
		if err != nil {
			return DefaultSandConfig(), fmt.Errorf("config: failed to parse %s: %w", customPath, err)
		}
		return cfg, cfg.Validate()
	}

	// Try user config directory
	if userCfgPath := userConfigPath("sand.yaml"); userCfgPath != "" {
		if data, err := os.ReadFile(userCfgPath); err == nil {
			if cfg, err := parseSand(data); err == nil && cfg.Validate() == nil {
				return cfg, nil
			}
		}
	}

	// Try local configs directory
	if data, err := os.ReadFile(filepath.Join("configs", "sand.yaml")); err == nil {
		if cfg, err := parseSand(data); err == nil && cfg.Validate() == nil {
			return cfg, nil
		}
	}

	// Use embedded default YAML
	cfg, err := parseSand(defaultSandYAML)
	if err != nil {
		return DefaultSandConfig(), nil // Fallback to hardcoded if embed fails
	}
	return cfg, nil
}

// parseSand decodes data over the hard-coded defaults.
func parseSand(data []byte) (SandConfig, error) {
	cfg := DefaultSandConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return DefaultSandConfig(), err
	}
	return cfg, nil
}

// userConfigPath returns the path to a user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".sand", "configs", filename)
}

// DataDir returns ~/.sand, creating it when missing.
func DataDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("config: cannot get home directory: %w", err)
	}
	dir := filepath.Join(home, ".sand")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("config: cannot create %s: %w", dir, err)
	}
	return dir, nil
}

package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

const pinballFile = "pinball"

// LoadPinball loads the table configuration.
// Search order: customPath -> ~/.arcade/configs/pinball.{yaml,toml} ->
// ./configs/pinball.{yaml,toml} -> embedded default.
// Values missing from a file keep their defaults. An unreadable or invalid
// custom path is an error; other sources are skipped when they fail.
func LoadPinball(customPath string) (PinballConfig, error) {
	// Try custom path first
	if customPath != "" {
		cfg, err := decodeFile(customPath)
		if err != nil {
			return cfg, err
		}
		if err := cfg.Validate(); err != nil {
			return cfg, fmt.Errorf("invalid config %s: %w", customPath, err)
		}
		return cfg, nil
	}

	var dirs []string
	// Try user config directory
	if dir := userConfigDir(); dir != "" {
		dirs = append(dirs, dir)
	}
	// Try local configs directory
	dirs = append(dirs, "configs")

	for _, dir := range dirs {
		for _, ext := range []string{".yaml", ".yml", ".toml"} {
			cfg, err := decodeFile(filepath.Join(dir, pinballFile+ext))
			if err == nil && cfg.Validate() == nil {
				return cfg, nil
			}
		}
	}

	// Use embedded default YAML
	cfg := DefaultPinballConfig()
	if err := yaml.Unmarshal(defaultPinballYAML, &cfg); err != nil {
		return DefaultPinballConfig(), nil // Fallback to hardcoded if embed fails
	}
	return cfg, nil
}

// decodeFile reads a YAML or TOML file on top of the defaults. The format
// is chosen by extension.
func decodeFile(path string) (PinballConfig, error) {
	cfg := DefaultPinballConfig()

	data, err := os.ReadFile(path) //#nosec G304 -- path is user-provided config
	if err != nil {
		return cfg, fmt.Errorf("failed to read config %s: %w", path, err)
	}

	if strings.EqualFold(filepath.Ext(path), ".toml") {
		if _, err := toml.Decode(string(data), &cfg); err != nil {
			return cfg, fmt.Errorf("failed to parse config %s: %w", path, err)
		}
		return cfg, nil
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	return cfg, nil
}

// userConfigDir returns the user config directory, or empty if home is unavailable.
func userConfigDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".arcade", "configs")
}

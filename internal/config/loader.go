package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// ConfigName is the file name looked up in the config directories.
const ConfigName = "playroom.yaml"

// Load loads the playroom configuration.
// Search order: customPath -> ~/.playroom/configs/playroom.yaml -> ./configs/playroom.yaml -> embedded default
func Load(customPath string) (PlayroomConfig, error) {
	cfg := DefaultPlayroomConfig()

	// Try custom path first
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return cfg, fmt.Errorf("failed to read config %s: %w", customPath, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("failed to parse config %s: %w", customPath, err)
		}
		return normalize(cfg), nil
	}

	// Try user config directory
	if userCfgPath := userConfigPath(ConfigName); userCfgPath != "" {
		if data, err := os.ReadFile(userCfgPath); err == nil {
			if err := yaml.Unmarshal(data, &cfg); err == nil {
				return normalize(cfg), nil
			}
			cfg = DefaultPlayroomConfig()
		}
	}

	// Try local configs directory
	if data, err := os.ReadFile(filepath.Join("configs", ConfigName)); err == nil {
		if err := yaml.Unmarshal(data, &cfg); err == nil {
			return normalize(cfg), nil
		}
		cfg = DefaultPlayroomConfig()
	}

	// Use embedded default YAML
	if err := yaml.Unmarshal(defaultPlayroomYAML, &cfg); err != nil {
		return DefaultPlayroomConfig(), nil // Fallback to hardcoded if embed fails
	}
	return normalize(cfg), nil
}

// Dir returns ~/.playroom, or "" if home is unavailable.
func Dir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".playroom")
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	dir := Dir()
	if dir == "" {
		return ""
	}
	return filepath.Join(dir, "configs", filename)
}

// normalize replaces unusable values with defaults and applies the pace preset.
func normalize(cfg PlayroomConfig) PlayroomConfig {
	def := DefaultPlayroomConfig()
	if cfg.Timing.TickRate <= 0 {
		cfg.Timing.TickRate = def.Timing.TickRate
	}
	if cfg.Timing.TransitionTicks < 0 {
		cfg.Timing.TransitionTicks = 0
	}
	if cfg.Timing.RejectCooldownTicks < 0 {
		cfg.Timing.RejectCooldownTicks = 0
	}
	if !cfg.Pace.Valid() {
		cfg.Pace = PaceNormal
	}
	return cfg
}

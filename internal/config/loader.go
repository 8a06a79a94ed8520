package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// LoadBricks loads the brick-breaker configuration.
// Search order: customPath -> ~/.bricks/configs/bricks.yaml -> ./configs/bricks.yaml -> embedded default.
// Files are decoded over the defaults, so a partial file only overrides what it names.
// The result is validated; an explicit customPath that cannot be read is an error.
func LoadBricks(customPath string) (Bricks, error) {
	// Try custom path first
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return Bricks{}, fmt.Errorf("failed to read config %s: %w", customPath, err)
		}
		cfg, err := ParseBricks(data)
		if err != nil {
			return Bricks{}, fmt.Errorf("failed to parse config %s: %w", customPath, err)
		}
		return cfg, nil
	}

	// Try user config directory
	if userCfgPath := userConfigPath("bricks.yaml"); userCfgPath != "" {
		if data, err := os.ReadFile(userCfgPath); err == nil {
			if cfg, err := ParseBricks(data); err == nil {
				return cfg, nil
			}
		}
	}

	// Try local configs directory
	if data, err := os.ReadFile(filepath.Join("configs", "bricks.yaml")); err == nil {
		if cfg, err := ParseBricks(data); err == nil {
			return cfg, nil
		}
	}

	// Use embedded default YAML
	cfg, err := ParseBricks(defaultBricksYAML)
	if err != nil {
		return DefaultBricksConfig(), nil // Fallback to hardcoded if embed fails
	}
	return cfg, nil
}

// ParseBricks decodes YAML over the defaults and validates the result.
func ParseBricks(data []byte) (Bricks, error) {
	cfg := DefaultBricksConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Bricks{}, fmt.Errorf("config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Bricks{}, err
	}
	return cfg, nil
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".bricks", "configs", filename)
}

// ApplyBricksPreset modifies the config based on a difficulty preset.
func ApplyBricksPreset(cfg *Bricks, preset DifficultyPreset) {
	switch preset {
	case DifficultyEasy:
		cfg.Gameplay.Lives = 5
		cfg.Paddle.Width = 120
		cfg.Ball.Speed = 4
	case DifficultyHard:
		cfg.Gameplay.Lives = 1
		cfg.Paddle.Width = 60
		cfg.Ball.Speed = 7
		cfg.PowerUps.Chance = 0.1
	}
}

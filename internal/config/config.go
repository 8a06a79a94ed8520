// Package config provides YAML-based configuration loading and difficulty
// presets for the bricks engine.
package config

import (
	"errors"
	"fmt"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/vovakirdan/tui-bricks/internal/core"
)

// Bricks contains all configuration for a brick-breaking match.
// Lengths are in canvas units, not terminal cells.
type Bricks struct {
	Field    FieldConfig    `yaml:"field"`
	Timing   TimingConfig   `yaml:"timing"`
	Ball     BallConfig     `yaml:"ball"`
	Paddle   PaddleConfig   `yaml:"paddle"`
	Bricks   GridConfig     `yaml:"bricks"`
	Gameplay GameplayConfig `yaml:"gameplay"`
	PowerUps PowerUpConfig  `yaml:"powerups"`
	Theme    ThemeConfig    `yaml:"theme"`
}

// FieldConfig defines the playfield size.
type FieldConfig struct {
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
}

// TimingConfig defines the scheduler delays.
type TimingConfig struct {
	Tick       Duration `yaml:"tick"`        // Interval between simulation ticks
	Respawn    Duration `yaml:"respawn"`     // Delay before a new ball after a miss
	LevelDelay Duration `yaml:"level_delay"` // Delay between levels
}

// BallConfig defines ball parameters.
type BallConfig struct {
	Radius       float64 `yaml:"radius"`
	Speed        float64 `yaml:"speed"`          // Units moved per tick on each axis
	SpawnY       float64 `yaml:"spawn_y"`        // Centre y of a freshly served ball
	LevelSpeedUp float64 `yaml:"level_speed_up"` // Speed added on each level clear
}

// PaddleConfig defines paddle parameters.
type PaddleConfig struct {
	Width      float64 `yaml:"width"`
	Height     float64 `yaml:"height"`
	Y          float64 `yaml:"y"`           // Centre y
	Step       float64 `yaml:"step"`        // Offset per move action
	GrowFactor float64 `yaml:"grow_factor"` // Width multiplier of the grow power-up
}

// GridConfig defines the generated brick grid.
// Columns start at Margin and repeat every Width units while x < field width - Margin.
type GridConfig struct {
	Width  float64   `yaml:"width"`
	Height float64   `yaml:"height"`
	Margin float64   `yaml:"margin"`
	Rows   []GridRow `yaml:"rows"`
}

// GridRow is one row of bricks.
type GridRow struct {
	Y    float64 `yaml:"y"`    // Centre y
	Hits int     `yaml:"hits"` // Initial hit count (1-3)
}

// GameplayConfig defines scoring and lives.
type GameplayConfig struct {
	Lives       int `yaml:"lives"`
	BrickPoints int `yaml:"brick_points"`
}

// PowerUpConfig defines power-up spawning.
type PowerUpConfig struct {
	Chance  float64        `yaml:"chance"`  // Probability per overlapped brick per tick
	Policy  string         `yaml:"policy"`  // "fixed" or "weighted"
	Effect  string         `yaml:"effect"`  // Effect used by the fixed policy
	Weights map[string]int `yaml:"weights"` // Relative weights used by the weighted policy
	Size    float64        `yaml:"size"`
}

// ThemeConfig defines the playfield background colors.
type ThemeConfig struct {
	Background string   `yaml:"background"` // Color of the first level
	Palette    []string `yaml:"palette"`    // Colors picked from on each level change
}

// Power-up policies.
const (
	PolicyFixed    = "fixed"
	PolicyWeighted = "weighted"
)

// Effect names as they appear in YAML.
const (
	EffectGrowPaddle = "grow_paddle"
	EffectExtraLife  = "extra_life"
	EffectExtraBall  = "extra_ball"
)

// EffectNames lists every known effect in roll order.
var EffectNames = []string{EffectGrowPaddle, EffectExtraLife, EffectExtraBall}

// Duration is a time.Duration written in YAML as a string like "50ms".
type Duration time.Duration

// Std returns the value as a time.Duration.
func (d Duration) Std() time.Duration {
	return time.Duration(d)
}

// UnmarshalYAML implements yaml.Unmarshaler.
func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	var s string
	if err := value.Decode(&s); err != nil {
		return fmt.Errorf("duration: %w", err)
	}
	parsed, err := time.ParseDuration(s)
	if err != nil {
		return fmt.Errorf("duration %q: %w", s, err)
	}
	*d = Duration(parsed)
	return nil
}

// MarshalYAML implements yaml.Marshaler.
func (d Duration) MarshalYAML() (interface{}, error) {
	return time.Duration(d).String(), nil
}

// ErrInvalid is wrapped by every validation error.
var ErrInvalid = errors.New("invalid config")

func invalid(format string, args ...interface{}) error {
	return fmt.Errorf("config: %w: %s", ErrInvalid, fmt.Sprintf(format, args...))
}

// Validate checks that the configuration describes a playable match.
func (c Bricks) Validate() error {
	if c.Field.Width <= 0 || c.Field.Height <= 0 {
		return invalid("field must have positive size, got %vx%v", c.Field.Width, c.Field.Height)
	}
	if c.Timing.Tick <= 0 {
		return invalid("timing.tick must be positive")
	}
	if c.Timing.Respawn < 0 || c.Timing.LevelDelay < 0 {
		return invalid("timing delays must not be negative")
	}
	if c.Ball.Radius <= 0 || c.Ball.Speed < 0 || c.Ball.LevelSpeedUp < 0 {
		return invalid("ball radius must be positive and speeds non-negative")
	}
	if c.Paddle.Width <= 0 || c.Paddle.Height <= 0 || c.Paddle.Width > c.Field.Width {
		return invalid("paddle width must be in (0, %v]", c.Field.Width)
	}
	if c.Paddle.GrowFactor < 1 {
		return invalid("paddle.grow_factor must be at least 1, got %v", c.Paddle.GrowFactor)
	}
	if c.Bricks.Width <= 0 || c.Bricks.Height <= 0 {
		return invalid("bricks must have positive size")
	}
	if len(c.Bricks.Rows) == 0 {
		return invalid("bricks.rows must not be empty")
	}
	for i, row := range c.Bricks.Rows {
		if row.Hits < 1 || row.Hits > 3 {
			return invalid("bricks.rows[%d].hits must be 1-3, got %d", i, row.Hits)
		}
	}
	if c.Gameplay.Lives < 0 {
		return invalid("gameplay.lives must not be negative")
	}
	if c.PowerUps.Chance < 0 || c.PowerUps.Chance > 1 {
		return invalid("powerups.chance must be in [0, 1], got %v", c.PowerUps.Chance)
	}
	if c.PowerUps.Size <= 0 {
		return invalid("powerups.size must be positive")
	}
	switch c.PowerUps.Policy {
	case PolicyFixed:
		if !knownEffect(c.PowerUps.Effect) {
			return invalid("unknown power-up effect %q", c.PowerUps.Effect)
		}
	case PolicyWeighted:
		total := 0
		for name, w := range c.PowerUps.Weights {
			if !knownEffect(name) {
				return invalid("unknown power-up effect %q in weights", name)
			}
			if w < 0 {
				return invalid("power-up weight for %q is negative", name)
			}
			total += w
		}
		if total == 0 {
			return invalid("powerups.weights must have a positive total")
		}
	default:
		return invalid("unknown power-up policy %q", c.PowerUps.Policy)
	}
	if _, ok := core.ParseColor(c.Theme.Background); !ok {
		return invalid("unknown theme.background %q", c.Theme.Background)
	}
	if len(c.Theme.Palette) == 0 {
		return invalid("theme.palette must not be empty")
	}
	for _, name := range c.Theme.Palette {
		if _, ok := core.ParseColor(name); !ok {
			return invalid("unknown palette color %q", name)
		}
	}
	return nil
}

func knownEffect(name string) bool {
	for _, e := range EffectNames {
		if e == name {
			return true
		}
	}
	return false
}

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
)

// ParsePreset converts a CLI value to a preset. The empty string means no preset.
func ParsePreset(s string) (DifficultyPreset, error) {
	switch DifficultyPreset(s) {
	case "", DifficultyEasy, DifficultyNormal, DifficultyHard:
		return DifficultyPreset(s), nil
	default:
		return "", fmt.Errorf("config: unknown difficulty %q (want easy, normal or hard)", s)
	}
}

package config

import (
	_ "embed"
	"time"
)

//go:embed defaults/bricks.yaml
var defaultBricksYAML []byte

// DefaultBricksConfig returns the default brick-breaker configuration.
func DefaultBricksConfig() Bricks {
	return Bricks{
		Field: FieldConfig{
			Width:  610,
			Height: 400,
		},
		Timing: TimingConfig{
			Tick:       Duration(50 * time.Millisecond),
			Respawn:    Duration(time.Second),
			LevelDelay: Duration(time.Second),
		},
		Ball: BallConfig{
			Radius:       10,
			Speed:        5,
			SpawnY:       310,
			LevelSpeedUp: 2,
		},
		Paddle: PaddleConfig{
			Width:      80,
			Height:     10,
			Y:          326,
			Step:       10,
			GrowFactor: 1.5,
		},
		Bricks: GridConfig{
			Width:  75,
			Height: 20,
			Margin: 5,
			Rows: []GridRow{
				{Y: 50, Hits: 3},
				{Y: 70, Hits: 2},
				{Y: 90, Hits: 1},
			},
		},
		Gameplay: GameplayConfig{
			Lives:       3,
			BrickPoints: 10,
		},
		PowerUps: PowerUpConfig{
			Chance: 0.2,
			Policy: PolicyFixed,
			Effect: EffectExtraLife,
			Weights: map[string]int{
				EffectGrowPaddle: 40,
				EffectExtraLife:  20,
				EffectExtraBall:  40,
			},
			Size: 20,
		},
		Theme: ThemeConfig{
			Background: "lavender",
			Palette:    []string{"rose", "mint", "lavender"},
		},
	}
}

// DefaultYAML returns the embedded default YAML.
func DefaultYAML() []byte {
	return defaultBricksYAML
}

package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestEmbeddedDefaultsMatchHardcoded(t *testing.T) {
	cfg, err := ParseBricks(DefaultYAML())
	if err != nil {
		t.Fatalf("embedded defaults do not parse: %v", err)
	}
	def := DefaultBricksConfig()

	if cfg.Field != def.Field {
		t.Errorf("field = %+v, expected %+v", cfg.Field, def.Field)
	}
	if cfg.Timing != def.Timing {
		t.Errorf("timing = %+v, expected %+v", cfg.Timing, def.Timing)
	}
	if cfg.Ball != def.Ball || cfg.Paddle != def.Paddle || cfg.Gameplay != def.Gameplay {
		t.Error("ball, paddle or gameplay section differs from hardcoded defaults")
	}
	if len(cfg.Bricks.Rows) != 3 || cfg.Bricks.Rows[0] != (GridRow{Y: 50, Hits: 3}) {
		t.Errorf("rows = %+v", cfg.Bricks.Rows)
	}
	if cfg.PowerUps.Policy != PolicyFixed || cfg.PowerUps.Effect != EffectExtraLife {
		t.Errorf("powerups = %+v", cfg.PowerUps)
	}
}

func TestDefaultsValidate(t *testing.T) {
	if err := DefaultBricksConfig().Validate(); err != nil {
		t.Errorf("default config should be valid: %v", err)
	}
}

func TestValidateRejects(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Bricks)
	}{
		{"zero field", func(c *Bricks) { c.Field.Width = 0 }},
		{"zero tick", func(c *Bricks) { c.Timing.Tick = 0 }},
		{"negative respawn", func(c *Bricks) { c.Timing.Respawn = Duration(-time.Second) }},
		{"paddle wider than field", func(c *Bricks) { c.Paddle.Width = 1000 }},
		{"shrinking grow factor", func(c *Bricks) { c.Paddle.GrowFactor = 0.5 }},
		{"no rows", func(c *Bricks) { c.Bricks.Rows = nil }},
		{"hits out of table", func(c *Bricks) { c.Bricks.Rows[1].Hits = 4 }},
		{"chance above one", func(c *Bricks) { c.PowerUps.Chance = 1.5 }},
		{"unknown policy", func(c *Bricks) { c.PowerUps.Policy = "random" }},
		{"unknown fixed effect", func(c *Bricks) { c.PowerUps.Effect = "laser" }},
		{"unknown weighted effect", func(c *Bricks) {
			c.PowerUps.Policy = PolicyWeighted
			c.PowerUps.Weights = map[string]int{"laser": 1}
		}},
		{"zero weights", func(c *Bricks) {
			c.PowerUps.Policy = PolicyWeighted
			c.PowerUps.Weights = map[string]int{EffectExtraBall: 0}
		}},
		{"unknown background", func(c *Bricks) { c.Theme.Background = "plaid" }},
		{"empty palette", func(c *Bricks) { c.Theme.Palette = nil }},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := DefaultBricksConfig()
			tc.mutate(&cfg)
			err := cfg.Validate()
			if err == nil {
				t.Fatal("expected validation error")
			}
			if !errors.Is(err, ErrInvalid) {
				t.Errorf("error should wrap ErrInvalid, got %v", err)
			}
		})
	}
}

func TestParseBricksPartialOverride(t *testing.T) {
	data := []byte(`
timing:
  tick: 20ms
ball:
  speed: 8
powerups:
  policy: weighted
`)
	cfg, err := ParseBricks(data)
	if err != nil {
		t.Fatalf("ParseBricks failed: %v", err)
	}
	if cfg.Timing.Tick.Std() != 20*time.Millisecond {
		t.Errorf("tick = %v, expected 20ms", cfg.Timing.Tick.Std())
	}
	if cfg.Timing.Respawn.Std() != time.Second {
		t.Errorf("respawn should keep default, got %v", cfg.Timing.Respawn.Std())
	}
	if cfg.Ball.Speed != 8 || cfg.Ball.Radius != 10 {
		t.Errorf("ball = %+v", cfg.Ball)
	}
	if cfg.PowerUps.Weights[EffectExtraBall] != 40 {
		t.Error("weights should keep defaults when not overridden")
	}
}

func TestParseBricksBadDuration(t *testing.T) {
	if _, err := ParseBricks([]byte("timing:\n  tick: soon\n")); err == nil {
		t.Error("expected error for unparsable duration")
	}
}

func TestLoadBricksCustomPath(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "custom.yaml")
	if err := os.WriteFile(path, []byte("gameplay:\n  lives: 7\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadBricks(path)
	if err != nil {
		t.Fatalf("LoadBricks failed: %v", err)
	}
	if cfg.Gameplay.Lives != 7 {
		t.Errorf("lives = %d, expected 7", cfg.Gameplay.Lives)
	}

	if _, err := LoadBricks(filepath.Join(dir, "missing.yaml")); err == nil {
		t.Error("missing custom path should be an error")
	}

	bad := filepath.Join(dir, "bad.yaml")
	if err := os.WriteFile(bad, []byte("gameplay:\n  lives: -1\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadBricks(bad); err == nil {
		t.Error("invalid custom config should be an error")
	}
}

func TestLoadBricksUserDir(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	cfgDir := filepath.Join(home, ".bricks", "configs")
	if err := os.MkdirAll(cfgDir, 0o750); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(cfgDir, "bricks.yaml"), []byte("ball:\n  speed: 9\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadBricks("")
	if err != nil {
		t.Fatalf("LoadBricks failed: %v", err)
	}
	if cfg.Ball.Speed != 9 {
		t.Errorf("ball speed = %v, expected 9 from user config", cfg.Ball.Speed)
	}
}

func TestLoadBricksFallsBackToEmbedded(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	cfg, err := LoadBricks("")
	if err != nil {
		t.Fatalf("LoadBricks failed: %v", err)
	}
	if cfg.Field.Width != 610 || cfg.Gameplay.Lives != 3 {
		t.Errorf("expected embedded defaults, got field %+v lives %d", cfg.Field, cfg.Gameplay.Lives)
	}
}

func TestApplyBricksPreset(t *testing.T) {
	tests := []struct {
		preset DifficultyPreset
		lives  int
		speed  float64
	}{
		{DifficultyEasy, 5, 4},
		{DifficultyNormal, 3, 5},
		{DifficultyHard, 1, 7},
		{"", 3, 5},
	}

	for _, tc := range tests {
		cfg := DefaultBricksConfig()
		ApplyBricksPreset(&cfg, tc.preset)
		if cfg.Gameplay.Lives != tc.lives || cfg.Ball.Speed != tc.speed {
			t.Errorf("preset %q: lives=%d speed=%v, expected %d/%v", tc.preset, cfg.Gameplay.Lives, cfg.Ball.Speed, tc.lives, tc.speed)
		}
		if err := cfg.Validate(); err != nil {
			t.Errorf("preset %q produced invalid config: %v", tc.preset, err)
		}
	}
}

func TestParsePreset(t *testing.T) {
	for _, s := range []string{"", "easy", "normal", "hard"} {
		if _, err := ParsePreset(s); err != nil {
			t.Errorf("ParsePreset(%q) failed: %v", s, err)
		}
	}
	if _, err := ParsePreset("nightmare"); err == nil {
		t.Error("expected error for unknown preset")
	}
}

package bricks

import (
	"fmt"

	"github.com/vovakirdan/tui-bricks/internal/config"
	"github.com/vovakirdan/tui-bricks/internal/core"
)

// Effect is what a power-up does when picked up.
type Effect int

const (
	EffectGrowPaddle Effect = iota // Paddle width x grow factor, anchored left
	EffectExtraLife                // Lives + 1
	EffectExtraBall                // Free ball above the paddle
)

// String returns the config name of the effect.
func (e Effect) String() string {
	switch e {
	case EffectGrowPaddle:
		return config.EffectGrowPaddle
	case EffectExtraLife:
		return config.EffectExtraLife
	case EffectExtraBall:
		return config.EffectExtraBall
	default:
		return "unknown"
	}
}

// Glyph returns the display character for an effect.
func (e Effect) Glyph() rune {
	switch e {
	case EffectGrowPaddle:
		return 'W'
	case EffectExtraLife:
		return '♥'
	case EffectExtraBall:
		return 'M'
	default:
		return '?'
	}
}

// ParseEffect converts a config name to an Effect.
func ParseEffect(name string) (Effect, error) {
	switch name {
	case config.EffectGrowPaddle:
		return EffectGrowPaddle, nil
	case config.EffectExtraLife:
		return EffectExtraLife, nil
	case config.EffectExtraBall:
		return EffectExtraBall, nil
	default:
		return 0, fmt.Errorf("bricks: unknown effect %q", name)
	}
}

// PowerUp is a static pickup. It stays on the field until a ball overlaps it.
type PowerUp struct {
	body
	effect Effect
}

// NewPowerUp creates a square power-up centred on (cx, cy).
func NewPowerUp(cx, cy, size float64, effect Effect) *PowerUp {
	return &PowerUp{
		body:   body{box: core.BoxAround(cx, cy, size, size)},
		effect: effect,
	}
}

// Kind implements Entity.
func (p *PowerUp) Kind() Kind { return KindPowerUp }

// Effect returns the effect applied on pickup.
func (p *PowerUp) Effect() Effect { return p.effect }

// Activate applies the effect to the match and removes the power-up.
// A power-up that is no longer in the arena does nothing.
func (p *PowerUp) Activate(m *Match) {
	if !m.arena.Has(p.handle) {
		return
	}
	m.play(CuePowerUp)
	switch p.effect {
	case EffectGrowPaddle:
		m.Paddle().Grow(m.cfg.Paddle.GrowFactor)
	case EffectExtraLife:
		m.lives++
	case EffectExtraBall:
		m.addExtraBall()
	default:
		panic(fmt.Sprintf("bricks: unknown power-up effect %d", p.effect))
	}
	m.arena.Remove(p.handle)
}

// EffectPolicy chooses the effect of a newly spawned power-up.
type EffectPolicy interface {
	Choose(rng *RNG) Effect
}

// FixedEffect always chooses the same effect.
type FixedEffect Effect

// Choose implements EffectPolicy.
func (f FixedEffect) Choose(*RNG) Effect {
	return Effect(f)
}

// WeightedEffect is one entry of a WeightedEffects table.
type WeightedEffect struct {
	Effect Effect
	Weight int
}

// WeightedEffects rolls an effect with probability proportional to its weight.
type WeightedEffects []WeightedEffect

// Choose implements EffectPolicy.
func (w WeightedEffects) Choose(rng *RNG) Effect {
	total := 0
	for _, e := range w {
		total += e.Weight
	}
	if total <= 0 {
		return EffectExtraLife
	}

	roll := rng.Intn(total)
	cumulative := 0
	for _, e := range w {
		cumulative += e.Weight
		if roll < cumulative {
			return e.Effect
		}
	}
	return w[len(w)-1].Effect
}

// PolicyFromConfig builds the effect policy described by the config.
func PolicyFromConfig(cfg config.PowerUpConfig) (EffectPolicy, error) {
	switch cfg.Policy {
	case config.PolicyFixed:
		e, err := ParseEffect(cfg.Effect)
		if err != nil {
			return nil, err
		}
		return FixedEffect(e), nil
	case config.PolicyWeighted:
		var table WeightedEffects
		for _, name := range config.EffectNames {
			w := cfg.Weights[name]
			if w <= 0 {
				continue
			}
			e, err := ParseEffect(name)
			if err != nil {
				return nil, err
			}
			table = append(table, WeightedEffect{Effect: e, Weight: w})
		}
		if len(table) == 0 {
			return nil, fmt.Errorf("bricks: weighted policy has no positive weights")
		}
		return table, nil
	default:
		return nil, fmt.Errorf("bricks: unknown power-up policy %q", cfg.Policy)
	}
}

package bricks

import (
	"fmt"

	"github.com/vovakirdan/tui-bricks/internal/core"
)

// durabilityColors maps remaining hits to a brick color.
var durabilityColors = map[int]core.Color{
	3: core.ColorBrightGreen,
	2: core.ColorBrightMagenta,
	1: core.ColorBlue,
}

// DurabilityColor returns the color for a hit count.
// It panics for counts outside the table.
func DurabilityColor(hits int) core.Color {
	c, ok := durabilityColors[hits]
	if !ok {
		panic(fmt.Sprintf("bricks: no durability color for %d hits", hits))
	}
	return c
}

// Brick is a destructible obstacle.
type Brick struct {
	body
	hits  int
	color core.Color
}

// NewBrick creates a brick centred on (cx, cy) with 1 to 3 hits.
func NewBrick(cx, cy, width, height float64, hits int) *Brick {
	return &Brick{
		body:  body{box: core.BoxAround(cx, cy, width, height)},
		hits:  hits,
		color: DurabilityColor(hits),
	}
}

// Kind implements Entity.
func (b *Brick) Kind() Kind { return KindBrick }

// Hits returns the remaining hit count.
func (b *Brick) Hits() int { return b.hits }

// Color returns the current durability color.
func (b *Brick) Color() core.Color { return b.color }

// Hit takes one hit point. The last hit removes the brick from the match
// arena and awards its points.
func (b *Brick) Hit(m *Match) {
	if b.hits <= 0 {
		return
	}
	b.hits--
	if b.hits == 0 {
		m.arena.Remove(b.handle)
		m.addScore(m.cfg.Gameplay.BrickPoints)
		return
	}
	b.color = DurabilityColor(b.hits)
}

package bricks

import (
	"fmt"
	"math"

	"github.com/vovakirdan/tui-bricks/internal/core"
)

// Visual characters for rendering
const (
	PaddleChar = '▀'
	BallChar   = '●'
	BrickChar  = '█'
	BrickEdge  = '▌'
)

// Colors of the non-brick entities.
const (
	PaddleColor  = core.ColorOrange
	BallColor    = core.ColorWhite
	PowerUpColor = core.ColorYellow
	HUDColor     = core.ColorBrightWhite
)

// Minimum screen size that can show the field.
const (
	MinScreenW = 30
	MinScreenH = 10
)

// HUD formats the status line.
func (m *Match) HUD() string {
	return fmt.Sprintf("Lives: %d | Level: %d | Score: %d", core.Max(m.lives, 0), m.level, m.score)
}

// Render draws the match onto the screen. The top row holds the HUD and the
// rest of the screen shows the field scaled from canvas units to cells.
func (m *Match) Render(screen *core.Screen) {
	screen.Clear()
	screen.SetBackground(m.background)

	if screen.Width() < MinScreenW || screen.Height() < MinScreenH {
		screen.DrawTextCentered(screen.Height()/2, "Terminal too small")
		return
	}

	screen.DrawTextColored(1, 0, m.HUD(), HUDColor)

	v := viewport{
		sx:   float64(screen.Width()) / m.cfg.Field.Width,
		sy:   float64(screen.Height()-1) / m.cfg.Field.Height,
		top:  1,
		maxY: screen.Height(),
	}

	for _, e := range m.arena.All() {
		switch ent := e.(type) {
		case *Brick:
			r := v.rect(ent.Box())
			screen.DrawRect(r, BrickChar, ent.Color())
			if r.W > 2 {
				for y := r.Y; y < r.Bottom(); y++ {
					screen.SetColored(r.Right()-1, y, BrickEdge, ent.Color())
				}
			}
		case *Paddle:
			screen.DrawRect(v.rect(ent.Box()), PaddleChar, PaddleColor)
		case *PowerUp:
			x, y := v.point(ent.Box().CenterX(), ent.Box().CenterY())
			screen.SetColored(x, y, ent.Effect().Glyph(), PowerUpColor)
		}
	}

	// Balls last so they stay visible over other entities.
	for _, e := range m.arena.OfKind(KindBall) {
		x, y := v.point(e.Box().CenterX(), e.Box().CenterY())
		screen.SetColored(x, y, BallChar, BallColor)
	}

	if m.banner != "" {
		_, y := v.point(0, m.cfg.Field.Height/2)
		screen.DrawTextCentered(y, m.banner)
	}
}

// viewport maps canvas units to screen cells.
type viewport struct {
	sx, sy float64
	top    int
	maxY   int
}

func (v viewport) point(x, y float64) (int, int) {
	cx := int(math.Floor(x * v.sx))
	cy := v.top + int(math.Floor(y*v.sy))
	if cy >= v.maxY {
		cy = v.maxY - 1
	}
	return cx, cy
}

func (v viewport) rect(b core.Box) core.Rect {
	x0 := int(math.Round(b.Left * v.sx))
	x1 := int(math.Round(b.Right * v.sx))
	y0 := int(math.Round(b.Top * v.sy))
	y1 := int(math.Round(b.Bottom * v.sy))
	if x1 <= x0 {
		x1 = x0 + 1
	}
	if y1 <= y0 {
		y1 = y0 + 1
	}
	return core.NewRect(x0, v.top+y0, x1-x0, y1-y0)
}

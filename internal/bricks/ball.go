package bricks

import "github.com/vovakirdan/tui-bricks/internal/core"

// Ball is a moving entity. Each direction component is always -1 or +1;
// the ball moves Speed units along both axes per update.
type Ball struct {
	body
	Radius  float64
	DirX    int
	DirY    int
	Speed   float64
	stopped bool
}

// NewBall creates a ball centred on (cx, cy) heading up and to the right.
func NewBall(cx, cy, radius, speed float64) *Ball {
	return &Ball{
		body:   body{box: core.BoxAround(cx, cy, radius*2, radius*2)},
		Radius: radius,
		DirX:   1,
		DirY:   -1,
		Speed:  speed,
	}
}

// Kind implements Entity.
func (b *Ball) Kind() Kind { return KindBall }

// Stop takes the ball out of play. A stopped ball never moves again.
func (b *Ball) Stop() {
	b.stopped = true
}

// Stopped reports whether the ball is out of play.
func (b *Ball) Stopped() bool {
	return b.stopped
}

// Update bounces the ball off the side and top walls, then moves it.
// The bottom edge is not a wall; leaving through it is handled by the match.
func (b *Ball) Update(fieldW float64) {
	if b.stopped {
		return
	}
	if b.box.Left <= 0 || b.box.Right >= fieldW {
		b.DirX = -b.DirX
	}
	if b.box.Top <= 0 {
		b.DirY = -b.DirY
	}
	b.MoveBy(float64(b.DirX)*b.Speed, float64(b.DirY)*b.Speed)
}

// Collide resolves the ball's direction against the solids it overlaps and
// hits every overlapped brick. With several overlaps only the vertical
// direction flips; with one, the ball's centre decides between a side hit
// and a top/bottom hit.
func (b *Ball) Collide(solids []Entity, m *Match) {
	switch {
	case len(solids) > 1:
		b.DirY = -b.DirY
	case len(solids) == 1:
		other := solids[0].Box()
		x := b.box.CenterX()
		switch {
		case x > other.Right:
			b.DirX = 1
		case x < other.Left:
			b.DirX = -1
		default:
			b.DirY = -b.DirY
		}
	}

	hitBrick := false
	for _, e := range solids {
		switch v := e.(type) {
		case *Brick:
			v.Hit(m)
			hitBrick = true
		case *Paddle:
			m.play(CuePaddleHit)
		}
	}
	if hitBrick {
		m.play(CueBrickHit)
	}
}

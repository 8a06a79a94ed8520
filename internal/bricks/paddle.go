package bricks

import "github.com/vovakirdan/tui-bricks/internal/core"

// Paddle is the player-controlled entity. Before launch a ball may be
// attached to it; the attached ball follows every paddle move.
type Paddle struct {
	body
	attached Handle
}

// NewPaddle creates a paddle centred on (cx, cy).
func NewPaddle(cx, cy, width, height float64) *Paddle {
	return &Paddle{body: body{box: core.BoxAround(cx, cy, width, height)}}
}

// Kind implements Entity.
func (p *Paddle) Kind() Kind { return KindPaddle }

// Width returns the current width.
func (p *Paddle) Width() float64 {
	return p.box.Width()
}

// SetBall attaches a ball.
func (p *Paddle) SetBall(h Handle) {
	p.attached = h
}

// Detach releases the attached ball, if any.
func (p *Paddle) Detach() {
	p.attached = NoHandle
}

// Attached returns the attached ball handle.
func (p *Paddle) Attached() (Handle, bool) {
	return p.attached, p.attached != NoHandle
}

// Move shifts the paddle horizontally by offset. A move that would put either
// edge outside [0, fieldW] is rejected outright and reported as false.
func (p *Paddle) Move(offset, fieldW float64, arena *Arena) bool {
	if p.box.Left+offset < 0 || p.box.Right+offset > fieldW {
		return false
	}
	p.MoveBy(offset, 0)
	if p.attached != NoHandle {
		if ball := arena.Get(p.attached); ball != nil {
			ball.MoveBy(offset, 0)
		}
	}
	return true
}

// Grow scales the width by factor, keeping the left edge in place.
func (p *Paddle) Grow(factor float64) {
	w := p.box.Width() * factor
	p.box.Right = p.box.Left + w
}

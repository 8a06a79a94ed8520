// Package core provides fundamental types and utilities for the bricks engine
// and its platform layers. It contains no external dependencies (especially no
// Bubble Tea) to keep game logic pure and testable.
package core

// Rect represents an integer axis-aligned rectangle in screen cells.
type Rect struct {
	X, Y int // Top-left corner position
	W, H int // Width and height
}

// NewRect creates a new rectangle with the given position and dimensions.
func NewRect(x, y, w, h int) Rect {
	return Rect{X: x, Y: y, W: w, H: h}
}

// Right returns the x-coordinate of the right edge.
func (r Rect) Right() int {
	return r.X + r.W
}

// Bottom returns the y-coordinate of the bottom edge.
func (r Rect) Bottom() int {
	return r.Y + r.H
}

// Box is an axis-aligned bounding box in canvas units.
// A well-formed box has Left < Right and Top < Bottom.
type Box struct {
	Left, Top, Right, Bottom float64
}

// BoxAround returns the box centred on (cx, cy) with the given size.
func BoxAround(cx, cy, w, h float64) Box {
	return Box{
		Left:   cx - w/2,
		Top:    cy - h/2,
		Right:  cx + w/2,
		Bottom: cy + h/2,
	}
}

// Width returns the horizontal extent.
func (b Box) Width() float64 {
	return b.Right - b.Left
}

// Height returns the vertical extent.
func (b Box) Height() float64 {
	return b.Bottom - b.Top
}

// CenterX returns the horizontal centre.
func (b Box) CenterX() float64 {
	return (b.Left + b.Right) * 0.5
}

// CenterY returns the vertical centre.
func (b Box) CenterY() float64 {
	return (b.Top + b.Bottom) * 0.5
}

// Valid reports whether the box has positive extent on both axes.
func (b Box) Valid() bool {
	return b.Left < b.Right && b.Top < b.Bottom
}

// Translate returns the box moved by (dx, dy).
func (b Box) Translate(dx, dy float64) Box {
	return Box{
		Left:   b.Left + dx,
		Top:    b.Top + dy,
		Right:  b.Right + dx,
		Bottom: b.Bottom + dy,
	}
}

// Overlaps reports whether two boxes share any point.
// Edges are inclusive: boxes that only touch still overlap.
func (b Box) Overlaps(other Box) bool {
	if b.Left > other.Right || other.Left > b.Right {
		return false
	}
	if b.Top > other.Bottom || other.Top > b.Bottom {
		return false
	}
	return true
}

// Min returns the smaller of two integers.
func Min(a, b int) int {
	if a < b {
		return a
	}
	return b
}

// Max returns the larger of two integers.
func Max(a, b int) int {
	if a > b {
		return a
	}
	return b
}

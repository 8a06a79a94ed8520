package bricks

import "math"

// entityStride is the number of values per entity in Snapshot.EntityData:
// handle, kind, left, top, right, bottom and three kind-specific values
// (ball: dirX, dirY, stopped; brick: hits; power-up: effect).
const entityStride = 9

// Snapshot contains the complete match state for determinism checks.
// Uses primitive types only for stable serialization.
type Snapshot struct {
	Tick       uint64
	Phase      int
	Lives      int
	Level      int
	Score      int
	BallSpeed  float64
	Background int
	Attached   uint32 // Ball handle attached to the paddle, 0 if none

	EntityCount int
	EntityData  []float64

	RNGState uint64
}

// Snapshot returns the current match state as a Snapshot.
func (m *Match) Snapshot() Snapshot {
	all := m.arena.All()
	data := make([]float64, 0, len(all)*entityStride)
	for _, e := range all {
		b := e.Box()
		var x1, x2, x3 float64
		switch v := e.(type) {
		case *Ball:
			x1, x2 = float64(v.DirX), float64(v.DirY)
			if v.Stopped() {
				x3 = 1
			}
		case *Brick:
			x1 = float64(v.Hits())
		case *PowerUp:
			x1 = float64(v.Effect())
		}
		data = append(data,
			float64(e.Handle()), float64(e.Kind()),
			b.Left, b.Top, b.Right, b.Bottom,
			x1, x2, x3)
	}

	var attached uint32
	if p := m.Paddle(); p != nil {
		h, _ := p.Attached()
		attached = uint32(h)
	}

	return Snapshot{
		Tick:        m.ticks,
		Phase:       int(m.phase),
		Lives:       m.lives,
		Level:       m.level,
		Score:       m.score,
		BallSpeed:   m.ballSpeed,
		Background:  int(m.background),
		Attached:    attached,
		EntityCount: len(all),
		EntityData:  data,
		RNGState:    m.rng.State(),
	}
}

// Hash returns a simple hash of the snapshot for determinism testing.
func (snap *Snapshot) Hash() uint64 {
	h := snap.Tick
	h = h*31 + uint64(snap.Phase)      //#nosec G115 -- hash computation
	h = h*31 + uint64(snap.Lives)      //#nosec G115 -- hash computation
	h = h*31 + uint64(snap.Level)      //#nosec G115 -- hash computation
	h = h*31 + uint64(snap.Score)      //#nosec G115 -- hash computation
	h = h*31 + math.Float64bits(snap.BallSpeed)
	h = h*31 + uint64(snap.Background) //#nosec G115 -- hash computation
	h = h*31 + uint64(snap.Attached)
	h = h*31 + uint64(snap.EntityCount) //#nosec G115 -- hash computation

	for _, v := range snap.EntityData {
		h = h*31 + math.Float64bits(v)
	}

	h = h*31 + snap.RNGState

	return h
}

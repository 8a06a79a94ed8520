// Package bricks implements the brick-breaking simulation engine: entities,
// collision resolution and the match state machine. The engine is
// single-threaded and driven entirely by a core.Scheduler and a
// core.InputSource; it performs no I/O of its own.
package bricks

import (
	"github.com/vovakirdan/tui-bricks/internal/core"
)

// Kind identifies the concrete type of an entity.
type Kind int

const (
	KindBall Kind = iota
	KindPaddle
	KindBrick
	KindPowerUp
)

// String returns the kind name.
func (k Kind) String() string {
	switch k {
	case KindBall:
		return "ball"
	case KindPaddle:
		return "paddle"
	case KindBrick:
		return "brick"
	case KindPowerUp:
		return "powerup"
	default:
		return "unknown"
	}
}

// Handle is a stable identifier of an entity in an Arena.
// Handles are never reused within one arena.
type Handle uint32

// NoHandle is the zero Handle; no entity ever has it.
const NoHandle Handle = 0

// Entity is anything simulated on the field.
type Entity interface {
	Handle() Handle
	Kind() Kind
	Box() core.Box
	MoveBy(dx, dy float64)

	bind(h Handle)
}

// body holds the state shared by every entity.
type body struct {
	handle Handle
	box    core.Box
}

func (b *body) Handle() Handle { return b.handle }

func (b *body) Box() core.Box { return b.box }

// MoveBy translates the entity.
func (b *body) MoveBy(dx, dy float64) {
	b.box = b.box.Translate(dx, dy)
}

func (b *body) bind(h Handle) { b.handle = h }

// Arena owns every live entity. Removing an entity from the arena destroys it.
type Arena struct {
	next  Handle
	items map[Handle]Entity
	order []Handle // ascending, since handles only grow
}

// NewArena creates an empty arena.
func NewArena() *Arena {
	return &Arena{items: make(map[Handle]Entity)}
}

// Add stores the entity and returns its new handle.
func (a *Arena) Add(e Entity) Handle {
	a.next++
	h := a.next
	e.bind(h)
	a.items[h] = e
	a.order = append(a.order, h)
	return h
}

// Get returns the entity for a handle, or nil if it is gone.
func (a *Arena) Get(h Handle) Entity {
	return a.items[h]
}

// Has reports whether the handle refers to a live entity.
func (a *Arena) Has(h Handle) bool {
	_, ok := a.items[h]
	return ok
}

// Remove destroys the entity. Removing a dead handle is a no-op.
func (a *Arena) Remove(h Handle) {
	if _, ok := a.items[h]; !ok {
		return
	}
	delete(a.items, h)
	for i, v := range a.order {
		if v == h {
			a.order = append(a.order[:i], a.order[i+1:]...)
			break
		}
	}
}

// Len returns the number of live entities.
func (a *Arena) Len() int {
	return len(a.items)
}

// Count returns the number of live entities of a kind.
func (a *Arena) Count(k Kind) int {
	n := 0
	for _, e := range a.items {
		if e.Kind() == k {
			n++
		}
	}
	return n
}

// All returns every live entity in handle order.
func (a *Arena) All() []Entity {
	out := make([]Entity, 0, len(a.order))
	for _, h := range a.order {
		out = append(out, a.items[h])
	}
	return out
}

// OfKind returns the live entities of a kind in handle order.
func (a *Arena) OfKind(k Kind) []Entity {
	var out []Entity
	for _, h := range a.order {
		if e := a.items[h]; e.Kind() == k {
			out = append(out, e)
		}
	}
	return out
}

// Overlapping returns, in handle order, every live entity other than exclude
// whose box overlaps box. Balls are never reported.
func (a *Arena) Overlapping(box core.Box, exclude Handle) []Entity {
	var out []Entity
	for _, h := range a.order {
		if h == exclude {
			continue
		}
		e := a.items[h]
		if e.Kind() == KindBall {
			continue
		}
		if e.Box().Overlaps(box) {
			out = append(out, e)
		}
	}
	return out
}

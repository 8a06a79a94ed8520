package core

// Action represents a semantic game action, abstracted from physical key presses.
// This allows the engine to work with high-level intents rather than raw input.
type Action int

const (
	ActionNone    Action = iota
	ActionLeft           // A, Left arrow - move paddle left
	ActionRight          // D, Right arrow - move paddle right
	ActionLaunch         // Space - release the ball from the paddle
	ActionRestart        // R key - restart after game over
	ActionQuit           // Q, Ctrl+C - exit game/session
)

// String returns a human-readable name for the action.
func (a Action) String() string {
	switch a {
	case ActionNone:
		return "None"
	case ActionLeft:
		return "Left"
	case ActionRight:
		return "Right"
	case ActionLaunch:
		return "Launch"
	case ActionRestart:
		return "Restart"
	case ActionQuit:
		return "Quit"
	default:
		return "Unknown"
	}
}

// InputSource delivers discrete actions to registered handlers.
// A persistent binding fires on every dispatch of its action; a one-shot
// binding is removed before its handler runs.
type InputSource interface {
	Bind(a Action, fn func())
	BindOnce(a Action, fn func())
	Unbind(a Action)
}

type binding struct {
	fn   func()
	once bool
}

// InputRouter is the in-process InputSource. The platform feeds it actions
// with Dispatch; it must be driven from the same goroutine as the engine.
type InputRouter struct {
	bindings map[Action]binding
}

// NewInputRouter creates a router with no bindings.
func NewInputRouter() *InputRouter {
	return &InputRouter{bindings: make(map[Action]binding)}
}

// Bind registers a persistent handler, replacing any previous one.
func (r *InputRouter) Bind(a Action, fn func()) {
	r.bindings[a] = binding{fn: fn}
}

// BindOnce registers a handler that is dropped after it fires once.
func (r *InputRouter) BindOnce(a Action, fn func()) {
	r.bindings[a] = binding{fn: fn, once: true}
}

// Unbind removes the handler for an action. Unbinding an unbound action is a no-op.
func (r *InputRouter) Unbind(a Action) {
	delete(r.bindings, a)
}

// Bound reports whether the action currently has a handler.
func (r *InputRouter) Bound(a Action) bool {
	_, ok := r.bindings[a]
	return ok
}

// Reset removes every binding.
func (r *InputRouter) Reset() {
	for a := range r.bindings {
		delete(r.bindings, a)
	}
}

// Dispatch runs the handler bound to the action and reports whether one ran.
func (r *InputRouter) Dispatch(a Action) bool {
	b, ok := r.bindings[a]
	if !ok {
		return false
	}
	if b.once {
		delete(r.bindings, a)
	}
	b.fn()
	return true
}

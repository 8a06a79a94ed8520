// Package sched provides a virtual-clock scheduler for driving the bricks
// engine without wall-clock timers (headless simulation and tests).
package sched

import (
	"sort"
	"time"

	"github.com/vovakirdan/tui-bricks/internal/core"
)

type entry struct {
	due     time.Duration
	seq     uint64
	fn      func()
	stopped bool
	fired   bool
}

// Stop implements core.Timer.
func (e *entry) Stop() bool {
	if e.stopped || e.fired {
		return false
	}
	e.stopped = true
	return true
}

// Manual is a core.Scheduler whose clock only moves when told to.
// Callbacks run synchronously inside Advance, Step or RunUntilIdle, ordered by
// due time and then by scheduling order. Not safe for concurrent use.
type Manual struct {
	now       time.Duration
	seq       uint64
	pending   []*entry
	intervals []time.Duration
}

// NewManual creates a scheduler with its clock at zero.
func NewManual() *Manual {
	return &Manual{}
}

// Now returns the virtual time elapsed since creation.
func (m *Manual) Now() time.Duration {
	return m.now
}

// ScheduleOnce implements core.Scheduler.
func (m *Manual) ScheduleOnce(delay time.Duration, fn func()) core.Timer {
	if delay < 0 {
		delay = 0
	}
	m.seq++
	e := &entry{due: m.now + delay, seq: m.seq, fn: fn}
	m.pending = append(m.pending, e)
	m.intervals = append(m.intervals, delay)
	return e
}

// Intervals returns every delay passed to ScheduleOnce, in call order.
func (m *Manual) Intervals() []time.Duration {
	out := make([]time.Duration, len(m.intervals))
	copy(out, m.intervals)
	return out
}

// Pending returns the number of timers that have neither fired nor been stopped.
func (m *Manual) Pending() int {
	m.compact()
	return len(m.pending)
}

// compact drops stopped timers and sorts the rest by (due, seq).
func (m *Manual) compact() {
	live := m.pending[:0]
	for _, e := range m.pending {
		if !e.stopped && !e.fired {
			live = append(live, e)
		}
	}
	for i := len(live); i < len(m.pending); i++ {
		m.pending[i] = nil
	}
	m.pending = live
	sort.Slice(m.pending, func(i, j int) bool {
		if m.pending[i].due != m.pending[j].due {
			return m.pending[i].due < m.pending[j].due
		}
		return m.pending[i].seq < m.pending[j].seq
	})
}

// next pops the earliest live timer due at or before limit.
func (m *Manual) next(limit time.Duration) *entry {
	m.compact()
	if len(m.pending) == 0 || m.pending[0].due > limit {
		return nil
	}
	e := m.pending[0]
	m.pending = m.pending[1:]
	return e
}

func (m *Manual) fire(e *entry) {
	if e.due > m.now {
		m.now = e.due
	}
	e.fired = true
	e.fn()
}

// Step jumps the clock to the earliest pending timer and runs it.
// It reports false when nothing is pending.
func (m *Manual) Step() bool {
	e := m.next(time.Duration(1<<63 - 1))
	if e == nil {
		return false
	}
	m.fire(e)
	return true
}

// Advance moves the clock forward by d, running every timer that falls due,
// including ones scheduled by callbacks during the advance.
// It returns the number of callbacks run.
func (m *Manual) Advance(d time.Duration) int {
	target := m.now + d
	n := 0
	for {
		e := m.next(target)
		if e == nil {
			break
		}
		m.fire(e)
		n++
	}
	m.now = target
	return n
}

// RunUntilIdle steps until no timers remain or max callbacks have run.
// A max of zero or less means no limit. It returns the number of callbacks run.
func (m *Manual) RunUntilIdle(max int) int {
	n := 0
	for max <= 0 || n < max {
		if !m.Step() {
			break
		}
		n++
	}
	return n
}

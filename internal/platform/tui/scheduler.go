// Package tui runs a bricks match inside Bubble Tea, locally or over SSH.
package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-bricks/internal/core"
)

// timerMsg delivers a scheduled engine callback to the update loop.
type timerMsg struct {
	id uint64
}

// teaScheduler implements core.Scheduler on top of tea.Tick. Callbacks run
// inside Update, so the engine only ever sees the program's goroutine.
type teaScheduler struct {
	next    uint64
	pending map[uint64]func()
	queued  []tea.Cmd
}

func newTeaScheduler() *teaScheduler {
	return &teaScheduler{pending: make(map[uint64]func())}
}

// ScheduleOnce queues a tick command; drain hands it to Bubble Tea.
func (s *teaScheduler) ScheduleOnce(delay time.Duration, fn func()) core.Timer {
	if delay < 0 {
		delay = 0
	}
	s.next++
	id := s.next
	s.pending[id] = fn
	s.queued = append(s.queued, tea.Tick(delay, func(time.Time) tea.Msg {
		return timerMsg{id: id}
	}))
	return teaTimer{s: s, id: id}
}

// fire runs the callback for id unless it was stopped or already ran.
func (s *teaScheduler) fire(id uint64) bool {
	fn, ok := s.pending[id]
	if !ok {
		return false
	}
	delete(s.pending, id)
	fn()
	return true
}

// drain returns the commands queued since the last call.
func (s *teaScheduler) drain() tea.Cmd {
	if len(s.queued) == 0 {
		return nil
	}
	cmds := s.queued
	s.queued = nil
	return tea.Batch(cmds...)
}

// reset forgets every pending callback. Ticks already in flight arrive as
// unknown ids and are dropped.
func (s *teaScheduler) reset() {
	clear(s.pending)
	s.queued = nil
}

type teaTimer struct {
	s  *teaScheduler
	id uint64
}

func (t teaTimer) Stop() bool {
	if _, ok := t.s.pending[t.id]; !ok {
		return false
	}
	delete(t.s.pending, t.id)
	return true
}

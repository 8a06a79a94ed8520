package tui

import (
	"path/filepath"
	"sort"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/tui-bricks/internal/bricks"
	"github.com/vovakirdan/tui-bricks/internal/config"
	"github.com/vovakirdan/tui-bricks/internal/core"
	"github.com/vovakirdan/tui-bricks/internal/storage"
)

type fixedScores int

func (f fixedScores) Read() int { return int(f) }
func (fixedScores) Write(int) {}

func newTestModel(t *testing.T, scores bricks.HighScores) Model {
	t.Helper()
	m, err := NewModel(Options{
		Game:    config.DefaultBricksConfig(),
		Runtime: core.RuntimeConfig{ScreenW: 80, ScreenH: 24, Seed: 1},
		Scores:  scores,
	})
	require.NoError(t, err)
	return m
}

func pendingIDs(s *teaScheduler) []uint64 {
	ids := make([]uint64, 0, len(s.pending))
	for id := range s.pending {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

func press(t *testing.T, m Model, msg tea.KeyMsg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	nm, ok := next.(Model)
	require.True(t, ok)
	return nm, cmd
}

func TestTeaScheduler(t *testing.T) {
	s := newTeaScheduler()
	var ran []string

	first := s.ScheduleOnce(10*time.Millisecond, func() { ran = append(ran, "first") })
	s.ScheduleOnce(-time.Second, func() { ran = append(ran, "second") })

	assert.NotNil(t, s.drain())
	assert.Nil(t, s.drain(), "drain empties the queue")

	assert.True(t, first.Stop())
	assert.False(t, first.Stop())
	assert.False(t, s.fire(1), "stopped timers do not fire")

	assert.True(t, s.fire(2))
	assert.False(t, s.fire(2), "timers fire once")
	assert.Equal(t, []string{"second"}, ran)

	s.ScheduleOnce(time.Millisecond, func() { ran = append(ran, "third") })
	s.reset()
	assert.False(t, s.fire(3))
	assert.Nil(t, s.drain())
}

func TestModelLaunchAndTick(t *testing.T) {
	m := newTestModel(t, nil)
	assert.Nil(t, m.Init(), "nothing is scheduled before launch")
	assert.Equal(t, bricks.PhaseAwaitingLaunch, m.Match().Phase())

	m, cmd := press(t, m, tea.KeyMsg{Type: tea.KeySpace})
	assert.NotNil(t, cmd)
	assert.Equal(t, bricks.PhaseRunning, m.Match().Phase())
	assert.Equal(t, uint64(1), m.Match().Ticks())

	ids := pendingIDs(m.sched)
	require.Len(t, ids, 1)

	next, cmd := m.Update(timerMsg{id: ids[0]})
	m = next.(Model)
	assert.NotNil(t, cmd)
	assert.Equal(t, uint64(2), m.Match().Ticks())

	// Stale ids are ignored.
	next, cmd = m.Update(timerMsg{id: ids[0]})
	m = next.(Model)
	assert.Nil(t, cmd)
	assert.Equal(t, uint64(2), m.Match().Ticks())
}

func TestModelMovesPaddle(t *testing.T) {
	m := newTestModel(t, nil)
	x := m.Match().Paddle().Box().CenterX()

	m, _ = press(t, m, tea.KeyMsg{Type: tea.KeyLeft})
	assert.Equal(t, x-10, m.Match().Paddle().Box().CenterX())

	m, _ = press(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'d'}})
	assert.Equal(t, x, m.Match().Paddle().Box().CenterX())
	assert.Equal(t, x, m.Match().Ball().Box().CenterX(), "attached ball follows the paddle")
}

func TestModelRestartOnlyAfterGameOver(t *testing.T) {
	m := newTestModel(t, nil)
	before := m.Match()

	m, cmd := press(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'r'}})
	assert.Nil(t, cmd)
	assert.Same(t, before, m.Match())

	require.NoError(t, m.restart())
	assert.NotSame(t, before, m.Match())
	assert.Equal(t, bricks.PhaseAwaitingLaunch, m.Match().Phase())
	assert.Empty(t, m.sched.pending)

	m, _ = press(t, m, tea.KeyMsg{Type: tea.KeySpace})
	assert.Equal(t, bricks.PhaseRunning, m.Match().Phase())
	assert.Equal(t, bricks.PhaseAwaitingLaunch, before.Phase(), "old match is detached from input")
}

func TestModelRestartFailureQuits(t *testing.T) {
	game := config.DefaultBricksConfig()
	game.Gameplay.Lives = 0
	m, err := NewModel(Options{
		Game:    game,
		Runtime: core.RuntimeConfig{ScreenW: 80, ScreenH: 24, Seed: 1},
	})
	require.NoError(t, err)

	m, _ = press(t, m, tea.KeyMsg{Type: tea.KeySpace})
	ball := m.Match().Ball()
	ball.MoveBy(0, game.Field.Height+50-ball.Box().Top)
	ids := pendingIDs(m.sched)
	require.Len(t, ids, 1)
	next, _ := m.Update(timerMsg{id: ids[0]})
	m = next.(Model)
	require.Equal(t, bricks.PhaseGameOver, m.Match().Phase())

	finished := m.Match()
	m.opts.Game.Field.Width = 0
	m, cmd := press(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'r'}})

	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
	require.Error(t, m.Err())
	assert.Contains(t, m.Err().Error(), "field must have positive size")
	assert.Same(t, finished, m.Match())
	assert.Empty(t, m.View())
}

func TestModelQuit(t *testing.T) {
	m := newTestModel(t, nil)
	m, cmd := press(t, m, tea.KeyMsg{Type: tea.KeyCtrlC})
	assert.NotNil(t, cmd)
	assert.Empty(t, m.View())
}

func TestModelView(t *testing.T) {
	m := newTestModel(t, fixedScores(70))

	view := m.View()
	lines := strings.Split(view, "\n")
	assert.Len(t, lines, 24)
	assert.Contains(t, view, "Lives: 3 | Level: 1 | Score: 0")
	assert.Contains(t, view, bricks.TextPressStart)
	assert.Contains(t, lines[len(lines)-1], "Best: 70")
}

func TestModelResize(t *testing.T) {
	m := newTestModel(t, nil)
	next, _ := m.Update(tea.WindowSizeMsg{Width: 100, Height: 30})
	m = next.(Model)

	assert.Equal(t, 100, m.screen.Width())
	assert.Equal(t, 29, m.screen.Height())
}

func TestModelWiresHighScoreBookLevel(t *testing.T) {
	store, err := storage.Open(filepath.Join(t.TempDir(), "scores.db"))
	require.NoError(t, err)
	defer store.Close()

	book := storage.NewHighScoreBook(store, "run", nil)
	m := newTestModel(t, book)

	require.NotNil(t, book.Level)
	assert.Equal(t, m.Match().Level(), book.Level())
}

func TestKeyMapAction(t *testing.T) {
	keys := DefaultKeyMap()
	tests := []struct {
		msg  tea.KeyMsg
		want core.Action
	}{
		{tea.KeyMsg{Type: tea.KeyLeft}, core.ActionLeft},
		{tea.KeyMsg{Type: tea.KeyRight}, core.ActionRight},
		{tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'a'}}, core.ActionLeft},
		{tea.KeyMsg{Type: tea.KeySpace}, core.ActionLaunch},
		{tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'r'}}, core.ActionRestart},
		{tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}}, core.ActionQuit},
		{tea.KeyMsg{Type: tea.KeyCtrlC}, core.ActionQuit},
		{tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'x'}}, core.ActionNone},
	}
	for _, tt := range tests {
		t.Run(tt.msg.String(), func(t *testing.T) {
			assert.Equal(t, tt.want, keys.Action(tt.msg))
		})
	}
}

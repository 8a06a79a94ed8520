package tui

import (
	"path/filepath"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/tui-bricks/internal/storage"
)

func TestScoreboardEmpty(t *testing.T) {
	m := NewScoreboardModel(nil, 80, 24)
	assert.Contains(t, m.View(), "No scores recorded yet.")
}

func TestScoreboardShowsRecords(t *testing.T) {
	store, err := storage.Open(filepath.Join(t.TempDir(), "scores.db"))
	require.NoError(t, err)
	defer store.Close()

	_, err = store.SaveRecord(storage.Record{RunID: "abcdef0123", Score: 340, Level: 3})
	require.NoError(t, err)

	m := NewScoreboardModel(store, 80, 24)
	view := m.View()
	assert.Contains(t, view, "BRICKS HIGH SCORES")
	assert.Contains(t, view, "340")
	assert.Contains(t, view, "abcdef01")
	assert.Contains(t, view, "Best 340")

	_, err = store.SaveRecord(storage.Record{Score: 500, Level: 4})
	require.NoError(t, err)
	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'r'}})
	assert.Contains(t, next.View(), "Best 500")
}

func TestScoreboardQuit(t *testing.T) {
	m := NewScoreboardModel(nil, 80, 24)
	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	assert.NotNil(t, cmd)
	assert.Empty(t, next.View())
}

func TestRenderScreenKeepsLayout(t *testing.T) {
	m := newTestModel(t, nil)
	m.match.Render(m.screen)

	out := RenderScreen(m.screen)
	assert.Contains(t, out, "Lives: 3")
	assert.Equal(t, m.screen.Height()-1, countNewlines(out))
}

func countNewlines(s string) int {
	n := 0
	for _, r := range s {
		if r == '\n' {
			n++
		}
	}
	return n
}

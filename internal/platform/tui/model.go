package tui

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-bricks/internal/bricks"
	"github.com/vovakirdan/tui-bricks/internal/config"
	"github.com/vovakirdan/tui-bricks/internal/core"
	"github.com/vovakirdan/tui-bricks/internal/storage"
)

// Options configure a game model.
type Options struct {
	Game    config.Bricks
	Runtime core.RuntimeConfig
	Audio   bricks.AudioSink
	Scores  bricks.HighScores
}

var footerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))

// Model is the Bubble Tea model for one terminal running bricks.
type Model struct {
	opts     Options
	match    *bricks.Match
	router   *core.InputRouter
	sched    *teaScheduler
	screen   *core.Screen
	keys     KeyMap
	help     help.Model
	best     int
	quitting bool
	err      error
}

// NewModel creates the model and starts the first match.
func NewModel(opts Options) (Model, error) {
	// Use time-based seed if not specified
	if opts.Runtime.Seed == 0 {
		opts.Runtime.Seed = time.Now().UnixNano()
	}
	if opts.Scores == nil {
		opts.Scores = nopScores{}
	}

	m := Model{
		opts:   opts,
		router: core.NewInputRouter(),
		sched:  newTeaScheduler(),
		screen: core.NewScreen(opts.Runtime.ScreenW, max(opts.Runtime.ScreenH-1, 1)),
		keys:   DefaultKeyMap(),
		help:   help.New(),
		best:   opts.Scores.Read(),
	}
	if err := m.newMatch(); err != nil {
		return Model{}, err
	}
	return m, nil
}

func (m *Model) newMatch() error {
	match, err := bricks.NewMatch(m.opts.Game, bricks.Deps{
		Scheduler: m.sched,
		Input:     m.router,
		Audio:     m.opts.Audio,
		Scores:    m.opts.Scores,
		Seed:      m.opts.Runtime.Seed,
	})
	if err != nil {
		return fmt.Errorf("tui: %w", err)
	}
	if book, ok := m.opts.Scores.(*storage.HighScoreBook); ok {
		book.Level = match.Level
	}
	match.Start()
	m.match = match
	return nil
}

// Init starts any timers the first match queued.
func (m Model) Init() tea.Cmd {
	return m.sched.drain()
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.opts.Runtime.ScreenW = msg.Width
		m.opts.Runtime.ScreenH = msg.Height
		m.screen.Resize(msg.Width, max(msg.Height-1, 1))
		m.help.Width = msg.Width
		return m, nil

	case timerMsg:
		m.sched.fire(msg.id)
		m.syncBest()
		return m, m.sched.drain()
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.Screenshot) {
		//nolint:errcheck // Best-effort save, game continues regardless
		m.SaveScreenshot()
		return m, nil
	}

	switch action := m.keys.Action(msg); action {
	case core.ActionQuit:
		m.quitting = true
		m.match.Stop()
		return m, tea.Quit

	case core.ActionRestart:
		if m.match.Phase() != bricks.PhaseGameOver {
			return m, nil
		}
		if err := m.restart(); err != nil {
			m.err = err
			m.quitting = true
			return m, tea.Quit
		}
		return m, m.sched.drain()

	case core.ActionNone:
		return m, nil

	default:
		m.router.Dispatch(action)
		return m, m.sched.drain()
	}
}

// restart replaces a finished match with a fresh one. On error the
// finished match is kept.
func (m *Model) restart() error {
	m.match.Stop()
	m.sched.reset()
	m.router.Reset()
	m.opts.Runtime.Seed = time.Now().UnixNano()
	return m.newMatch()
}

func (m *Model) syncBest() {
	if m.match.Phase() == bricks.PhaseGameOver {
		m.best = max(m.best, m.match.HighScore())
	}
}

// Match returns the running match.
func (m Model) Match() *bricks.Match {
	return m.match
}

// Best returns the best score known to this terminal.
func (m Model) Best() int {
	return m.best
}

// Err returns the error that ended the program, if any.
func (m Model) Err() error {
	return m.err
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	m.match.Render(m.screen)
	footer := fmt.Sprintf("Best: %d  %s", m.best, m.help.View(m.keys))
	return RenderScreen(m.screen) + "\n" + footerStyle.Render(footer)
}

// SaveScreenshot writes the current frame as plain text under ~/.bricks/screenshots.
func (m Model) SaveScreenshot() (string, error) {
	m.match.Render(m.screen)

	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("tui: %w", err)
	}
	dir := filepath.Join(home, ".bricks", "screenshots")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("tui: %w", err)
	}

	path := filepath.Join(dir, fmt.Sprintf("bricks_%s.txt", time.Now().Format("20060102_150405")))
	if err := os.WriteFile(path, []byte(m.screen.String()), 0o600); err != nil {
		return "", fmt.Errorf("tui: %w", err)
	}
	return path, nil
}

// Run starts the Bubble Tea program with the given options.
func Run(opts Options) (best int, err error) {
	model, err := NewModel(opts)
	if err != nil {
		return 0, err
	}

	p := tea.NewProgram(model, tea.WithAltScreen())

	final, err := p.Run()
	if err != nil {
		return 0, err
	}
	if fm, ok := final.(Model); ok {
		return fm.Best(), fm.Err()
	}
	return 0, nil
}

type nopScores struct{}

func (nopScores) Read() int { return 0 }
func (nopScores) Write(int) {}

package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-bricks/internal/config"
)

// MenuChoice is what the user picked in the start menu.
type MenuChoice int

const (
	MenuQuit MenuChoice = iota
	MenuPlay
	MenuScores
)

// MenuItem is one line of the start menu.
type MenuItem struct {
	Title      string
	Choice     MenuChoice
	Difficulty config.DifficultyPreset
}

// DefaultMenuItems lists the start menu entries.
func DefaultMenuItems() []MenuItem {
	return []MenuItem{
		{Title: "Play - Easy", Choice: MenuPlay, Difficulty: config.DifficultyEasy},
		{Title: "Play - Normal", Choice: MenuPlay, Difficulty: config.DifficultyNormal},
		{Title: "Play - Hard", Choice: MenuPlay, Difficulty: config.DifficultyHard},
		{Title: "High Scores", Choice: MenuScores},
		{Title: "Quit", Choice: MenuQuit},
	}
}

// MenuKeyMap defines the key bindings for the start menu.
type MenuKeyMap struct {
	Up     key.Binding
	Down   key.Binding
	Select key.Binding
	Scores key.Binding
	Quit   key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k MenuKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Select, k.Scores, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k MenuKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}

// DefaultMenuKeyMap returns default key bindings.
func DefaultMenuKeyMap() MenuKeyMap {
	return MenuKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k", "w"), // vim-style k for up
			key.WithHelp("up/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j", "s"), // vim-style j for down
			key.WithHelp("down/j", "down"),
		),
		Select: key.NewBinding(
			key.WithKeys("enter", " "),
			key.WithHelp("enter", "select"),
		),
		Scores: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "scores"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c", "esc"),
			key.WithHelp("q", "quit"),
		),
	}
}

// MenuModel is the Bubble Tea model for the start menu.
type MenuModel struct {
	items    []MenuItem
	cursor   int
	width    int
	height   int
	keys     MenuKeyMap
	help     help.Model
	selected *MenuItem
}

// NewMenuModel creates a start menu with the cursor on the given difficulty.
func NewMenuModel(width, height int, current config.DifficultyPreset) MenuModel {
	m := MenuModel{
		items:  DefaultMenuItems(),
		width:  width,
		height: height,
		keys:   DefaultMenuKeyMap(),
		help:   help.New(),
	}
	if current == "" {
		current = config.DifficultyNormal
	}
	for i, item := range m.items {
		if item.Choice == MenuPlay && item.Difficulty == current {
			m.cursor = i
		}
	}
	return m
}

// Init initializes the menu model.
func (m MenuModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the menu.
func (m MenuModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.selected = &MenuItem{Choice: MenuQuit}
			return m, tea.Quit
		case key.Matches(msg, m.keys.Up):
			if m.cursor > 0 {
				m.cursor--
			}
		case key.Matches(msg, m.keys.Down):
			if m.cursor < len(m.items)-1 {
				m.cursor++
			}
		case key.Matches(msg, m.keys.Select):
			selected := m.items[m.cursor]
			m.selected = &selected
			return m, tea.Quit
		case key.Matches(msg, m.keys.Scores):
			m.selected = &MenuItem{Choice: MenuScores}
			return m, tea.Quit
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
	}

	return m, nil
}

// View renders the menu.
func (m MenuModel) View() string {
	if m.selected != nil {
		return ""
	}

	var b strings.Builder

	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("208"))
	b.WriteString("\n")
	b.WriteString(titleStyle.Render(centerText("  B R I C K S  ", m.width)))
	b.WriteString("\n\n")

	for i, item := range m.items {
		cursor := "  "
		style := lipgloss.NewStyle()
		if i == m.cursor {
			cursor = "> "
			style = style.Bold(true).Foreground(lipgloss.Color("229"))
		}
		b.WriteString(style.Render(centerText(cursor+item.Title, m.width)))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Render(m.help.View(m.keys)))
	b.WriteString("\n")

	return b.String()
}

// Selected returns the selected menu item, or nil if none selected.
func (m MenuModel) Selected() *MenuItem {
	return m.selected
}

// RunMenu runs the start menu and returns the choice.
func RunMenu(width, height int, current config.DifficultyPreset) (MenuItem, error) {
	p := tea.NewProgram(NewMenuModel(width, height, current), tea.WithAltScreen())

	final, err := p.Run()
	if err != nil {
		return MenuItem{Choice: MenuQuit}, err
	}

	m, ok := final.(MenuModel)
	if !ok || m.Selected() == nil {
		return MenuItem{Choice: MenuQuit}, nil
	}
	return *m.Selected(), nil
}

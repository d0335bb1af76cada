package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-pinball/internal/config"
	"github.com/vovakirdan/tui-pinball/internal/core"
	"github.com/vovakirdan/tui-pinball/internal/storage"
)

// menuEntry identifies a start menu line.
type menuEntry int

const (
	entryPlay menuEntry = iota
	entryDifficulty
	entryScores
	entryQuit
)

// difficulties is the cycle order of the difficulty entry.
var difficulties = []config.DifficultyPreset{
	config.DifficultyNormal,
	config.DifficultyHard,
	config.DifficultyEasy,
}

// MenuModel is the Bubble Tea model for the start menu.
type MenuModel struct {
	gameID     string
	entries    []menuEntry
	cursor     int
	difficulty int // index into difficulties
	width      int
	height     int
	stats      *storage.GameStats
	config     core.RuntimeConfig
	keyMapper  *KeyMapper
	quitting   bool
	play       bool
	scoreboard bool
}

// NewMenuModel creates a new menu model for gameID. store may be nil.
func NewMenuModel(gameID string, store *storage.Store, cfg core.RuntimeConfig) MenuModel {
	m := MenuModel{
		gameID:    gameID,
		entries:   []menuEntry{entryPlay, entryDifficulty, entryScores, entryQuit},
		width:     cfg.ScreenW,
		height:    cfg.ScreenH,
		config:    cfg,
		keyMapper: NewKeyMapper(),
	}
	if store != nil {
		if stats, err := store.GetGameStats(gameID); err == nil {
			m.stats = stats
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
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.config.ScreenW = msg.Width
		m.config.ScreenH = msg.Height
		return m, nil
	}

	return m, nil
}

// handleKey processes keyboard input for menu navigation.
func (m MenuModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.keyMapper.MapKeyToMenuAction(msg) {
	case MenuActionQuit, MenuActionBack:
		m.quitting = true
		return m, tea.Quit

	case MenuActionUp:
		if m.cursor > 0 {
			m.cursor--
		}

	case MenuActionDown:
		if m.cursor < len(m.entries)-1 {
			m.cursor++
		}

	case MenuActionScoreboard:
		m.scoreboard = true
		return m, tea.Quit

	case MenuActionSelect:
		switch m.entries[m.cursor] {
		case entryPlay:
			m.play = true
			return m, tea.Quit
		case entryDifficulty:
			m.difficulty = (m.difficulty + 1) % len(difficulties)
		case entryScores:
			m.scoreboard = true
			return m, tea.Quit
		case entryQuit:
			m.quitting = true
			return m, tea.Quit
		}
	}

	return m, nil
}

func (m MenuModel) label(e menuEntry) string {
	switch e {
	case entryPlay:
		return "Play"
	case entryDifficulty:
		return fmt.Sprintf("Difficulty: %s", difficulties[m.difficulty])
	case entryScores:
		return "High Scores"
	case entryQuit:
		return "Quit"
	}
	return ""
}

// View renders the menu.
func (m MenuModel) View() string {
	if m.quitting || m.play || m.scoreboard {
		return ""
	}

	var b strings.Builder
	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229"))
	dimStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("241"))

	b.WriteString("\n")
	b.WriteString(centerText("  P I N B A L L  ", m.width))
	b.WriteString("\n\n")
	b.WriteString(centerText("Reach the goal before the money or the clock runs out", m.width))
	b.WriteString("\n\n")

	for i, e := range m.entries {
		cursor := "  "
		if i == m.cursor {
			cursor = "> "
		}
		line := centerText(cursor+m.label(e), m.width)
		if i == m.cursor {
			line = titleStyle.Render(line)
		}
		b.WriteString(line)
		b.WriteString("\n")
	}

	if m.stats != nil && m.stats.GamesCount > 0 {
		b.WriteString("\n")
		summary := fmt.Sprintf("Runs %d  |  Cleared %d  |  Best $%d",
			m.stats.GamesCount, m.stats.Wins, m.stats.HighScore)
		b.WriteString(dimStyle.Render(centerText(summary, m.width)))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	controls := "Up/Down: Navigate  |  Enter: Select  |  Tab: Scores  |  Q: Quit"
	b.WriteString(dimStyle.Render(centerText(controls, m.width)))
	b.WriteString("\n")

	return b.String()
}

// Difficulty returns the selected difficulty preset.
func (m MenuModel) Difficulty() config.DifficultyPreset {
	return difficulties[m.difficulty]
}

// Config returns the current runtime config (may have been updated by resize).
func (m MenuModel) Config() core.RuntimeConfig {
	return m.config
}

// centerText centers text within given width.
func centerText(text string, width int) string {
	n := lipgloss.Width(text)
	if n >= width {
		return text
	}
	padding := (width - n) / 2
	return strings.Repeat(" ", padding) + text
}

// MenuResult holds the result of running the menu.
type MenuResult struct {
	Play            bool
	Difficulty      config.DifficultyPreset
	Config          core.RuntimeConfig
	WantsScoreboard bool
	Quit            bool
}

// result converts the final menu state.
func (m MenuModel) result() MenuResult {
	return MenuResult{
		Play:            m.play,
		Difficulty:      m.Difficulty(),
		Config:          m.config,
		WantsScoreboard: m.scoreboard,
		Quit:            !m.play && !m.scoreboard,
	}
}

// RunMenu runs the menu and returns the selection result.
func RunMenu(gameID string, store *storage.Store, cfg core.RuntimeConfig) (MenuResult, error) {
	model := NewMenuModel(gameID, store, cfg)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)

	finalModel, err := p.Run()
	if err != nil {
		return MenuResult{Config: cfg}, err
	}

	m, ok := finalModel.(MenuModel)
	if !ok {
		return MenuResult{Config: cfg, Quit: true}, nil
	}
	return m.result(), nil
}

package tui

import (
	"io"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-defense/internal/config"
	"github.com/vovakirdan/tui-defense/internal/core"
	"github.com/vovakirdan/tui-defense/internal/games/defense"
	"github.com/vovakirdan/tui-defense/internal/games/defense/catalog"
	"github.com/vovakirdan/tui-defense/internal/storage"
)

type screenKind int

const (
	screenMenu screenKind = iota
	screenGame
	screenScores
)

var flashStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true)

// SessionModel runs one player's whole visit inside a single program:
// the map picker, a game, and the scoreboard, returning to the picker after
// each. The child screens end with tea.Quit when run standalone; here those
// commands are swallowed and replaced with a screen switch.
type SessionModel struct {
	catalog    *catalog.Catalog
	store      *storage.Store
	newSession SessionFactory
	logger     *log.Logger
	config     core.RuntimeConfig
	preset     config.DifficultyPreset
	player     string

	screen   screenKind
	menu     MenuModel
	game     *Model
	scores   ScoreboardModel
	flash    string // shown under the menu until the next key
	quitting bool
}

// NewSessionModel creates the flow for one player, starting on the menu.
func NewSessionModel(cat *catalog.Catalog, store *storage.Store, factory SessionFactory, cfg core.RuntimeConfig, preset config.DifficultyPreset, player string, logger *log.Logger) SessionModel {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return SessionModel{
		catalog:    cat,
		store:      store,
		newSession: factory,
		logger:     logger,
		config:     cfg,
		preset:     preset,
		player:     player,
		menu:       NewMenuModel(cat, store, cfg, preset),
	}
}

// Init initializes the session.
func (m SessionModel) Init() tea.Cmd {
	return m.menu.Init()
}

// Update routes msg to the active screen.
func (m SessionModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.config.ScreenW, m.config.ScreenH = msg.Width, msg.Height
	case tea.KeyMsg:
		m.flash = ""
	}

	var next tea.Model
	var cmd tea.Cmd
	switch m.screen {
	case screenGame:
		next, cmd = m.game.Update(msg)
		g := next.(Model)
		m.game = &g
		switch {
		case g.IsQuitting():
			return m.quit()
		case g.BackToMenu():
			return m.open(screenMenu)
		}

	case screenScores:
		next, cmd = m.scores.Update(msg)
		m.scores = next.(ScoreboardModel)
		switch {
		case m.scores.IsQuitting():
			return m.quit()
		case m.scores.IsGoingBack():
			return m.open(screenMenu)
		}

	default:
		next, cmd = m.menu.Update(msg)
		m.menu = next.(MenuModel)
		switch {
		case m.menu.IsQuitting():
			return m.quit()
		case m.menu.WantsScoreboard():
			return m.open(screenScores)
		case m.menu.Selected() != nil:
			m.config = m.menu.Config()
			m.preset = m.menu.Difficulty()
			return m.open(screenGame)
		}
	}
	return m, cmd
}

func (m SessionModel) quit() (tea.Model, tea.Cmd) {
	m.quitting = true
	return m, tea.Quit
}

// open switches to screen and returns the new screen's first command.
func (m SessionModel) open(screen screenKind) (tea.Model, tea.Cmd) {
	m.game = nil
	switch screen {
	case screenGame:
		level := m.menu.Selected().Level
		sess, err := m.newSession(level, m.preset, m.player)
		if err != nil {
			m.logger.Error("cannot start session", "level", level, "error", err)
			m.screen = screenMenu
			m.menu = NewMenuModel(m.catalog, m.store, m.config, m.preset)
			m.flash = "error: " + err.Error()
			return m, nil
		}
		m.logger.Info("game started", "level", level, "difficulty", m.preset)
		g := NewModel(defense.NewGame(sess), m.store, m.config, m.player, m.logger)
		m.game = &g
		m.screen = screenGame
		return m, g.Init()

	case screenScores:
		m.scores = NewScoreboardModel(m.store, m.config.ScreenW, m.config.ScreenH)
		m.screen = screenScores
		return m, m.scores.Init()
	}

	m.menu = NewMenuModel(m.catalog, m.store, m.config, m.preset)
	m.screen = screenMenu
	return m, m.menu.Init()
}

// Screen reports which screen is active, for tests.
func (m SessionModel) Screen() string {
	switch m.screen {
	case screenGame:
		return "game"
	case screenScores:
		return "scores"
	}
	return "menu"
}

// View renders the active screen.
func (m SessionModel) View() string {
	if m.quitting {
		return ""
	}
	switch m.screen {
	case screenGame:
		return m.game.View()
	case screenScores:
		return m.scores.View()
	}
	if m.flash != "" {
		return m.menu.View() + "\n" + centerText(flashStyle.Render(m.flash), m.config.ScreenW)
	}
	return m.menu.View()
}

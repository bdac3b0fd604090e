package tui

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-defense/internal/config"
	"github.com/vovakirdan/tui-defense/internal/core"
	"github.com/vovakirdan/tui-defense/internal/games/defense"
	"github.com/vovakirdan/tui-defense/internal/games/defense/advisor"
	"github.com/vovakirdan/tui-defense/internal/storage"
)

// ioTimeout bounds save, load, score and advice requests issued from the UI.
const ioTimeout = 5 * time.Second

// SessionFactory creates the defense session for a player starting on level
// at the given difficulty.
type SessionFactory func(level int, preset config.DifficultyPreset, player string) (*defense.Session, error)

// NewSessionFactory builds sessions from base options, whose config must not
// have a preset applied yet. Each player gets a save slot of their own.
func NewSessionFactory(base defense.Options, store *storage.Store, logger *log.Logger) SessionFactory {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return func(level int, preset config.DifficultyPreset, player string) (*defense.Session, error) {
		opts := base
		if opts.Config.Sim.TickRate == 0 {
			opts.Config = config.DefaultDefenseConfig()
		}
		config.ApplyDefensePreset(&opts.Config, preset)
		opts.Level = level
		opts.Logger = logger.With("player", player)
		if store != nil {
			opts.Store = store
		}
		if player != "" {
			slot := opts.Slot
			if slot == "" {
				slot = defense.DefaultSlot
			}
			opts.Slot = slot + "-" + player
		}
		if opts.Seed == 0 {
			opts.Seed = time.Now().UnixNano()
		}
		return defense.NewSession(opts)
	}
}

type saveDoneMsg struct{ err error }

type loadDoneMsg struct{ err error }

type adviceMsg struct {
	resp advisor.Response
	err  error
}

type scoreSavedMsg struct {
	id  int64
	err error
}

// Model is the Bubble Tea model for one defense game.
type Model struct {
	game       *defense.Game
	screen     *core.Screen
	store      *storage.Store
	logger     *log.Logger
	config     core.RuntimeConfig
	player     string
	keyMapper  *KeyMapper
	help       help.Model
	inputFrame core.InputFrame
	lastFrame  time.Time
	standalone bool // back quits instead of returning to a menu
	quitting   bool
	backToMenu bool
	scoreSaved bool // Whether score has been saved for current game over
}

// NewModel creates a new Bubble Tea model for the given game.
func NewModel(game *defense.Game, store *storage.Store, cfg core.RuntimeConfig, player string, logger *log.Logger) Model {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	screenH := cfg.ScreenH
	if screenH > 24 {
		screenH-- // help line
	}
	game.Reset(cfg)
	return Model{
		game:       game,
		screen:     core.NewScreen(cfg.ScreenW, screenH),
		store:      store,
		logger:     logger,
		config:     cfg,
		player:     player,
		keyMapper:  NewKeyMapper(),
		help:       help.New(),
		inputFrame: core.NewInputFrame(),
	}
}

// Init starts the frame loop.
func (m Model) Init() tea.Cmd {
	return tickCmd(m.config.FrameRate)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case TickMsg:
		return m.handleTick(time.Time(msg))

	case saveDoneMsg:
		if msg.err != nil {
			m.logger.Warn("save failed", "error", msg.err)
		}
	case loadDoneMsg:
		switch {
		case errors.Is(msg.err, defense.ErrNoSave):
			m.logger.Debug("no save to load", "player", m.player)
		case msg.err != nil:
			m.logger.Warn("load failed", "error", msg.err)
		}
	case adviceMsg:
		m.game.SetAdvice(msg.resp, msg.err)
	case scoreSavedMsg:
		if msg.err != nil {
			m.logger.Warn("could not record score", "error", msg.err)
		} else {
			m.logger.Info("score recorded", "id", msg.id)
		}
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+s" {
		m.saveScreenshot()
		return m, nil
	}
	if m.keyMapper.IsBack(msg) {
		m.backToMenu = true
		if m.standalone {
			m.quitting = true
			return m, tea.Quit
		}
		return m, nil
	}
	if m.keyMapper.MapKeyToFrame(msg, &m.inputFrame) {
		m.quitting = true
		return m, tea.Quit
	}

	var cmds []tea.Cmd
	sess := m.game.Session()
	if m.inputFrame.Has(core.ActionSave) {
		cmds = append(cmds, func() tea.Msg {
			ctx, cancel := context.WithTimeout(context.Background(), ioTimeout)
			defer cancel()
			return saveDoneMsg{err: sess.Save(ctx)}
		})
	}
	if m.inputFrame.Has(core.ActionLoad) {
		cmds = append(cmds, func() tea.Msg {
			ctx, cancel := context.WithTimeout(context.Background(), ioTimeout)
			defer cancel()
			return loadDoneMsg{err: sess.Load(ctx)}
		})
	}
	if m.inputFrame.Has(core.ActionAdvise) {
		cmds = append(cmds, func() tea.Msg {
			ctx, cancel := context.WithTimeout(context.Background(), ioTimeout)
			defer cancel()
			resp, err := sess.Advise(ctx)
			return adviceMsg{resp: resp, err: err}
		})
	}

	m.game.Apply(m.inputFrame)
	m.inputFrame.Clear()
	switch len(cmds) {
	case 0:
		return m, nil
	case 1:
		return m, cmds[0]
	}
	return m, tea.Batch(cmds...)
}

// handleResize processes window resize events. The session keeps running.
func (m Model) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.config.ScreenW = msg.Width
	m.config.ScreenH = msg.Height
	h := msg.Height
	if h > 24 {
		h--
	}
	m.screen.Resize(msg.Width, h)
	m.help.Width = msg.Width
	m.game.Reset(m.config)
	return m, nil
}

// handleTick feeds wall time into the session.
func (m Model) handleTick(now time.Time) (tea.Model, tea.Cmd) {
	if !m.lastFrame.IsZero() {
		m.game.Session().Advance(now.Sub(m.lastFrame))
	}
	m.lastFrame = now

	cmds := []tea.Cmd{tickCmd(m.config.FrameRate)}
	state := m.game.State()
	switch {
	case state.GameOver && !m.scoreSaved:
		m.scoreSaved = true
		if m.store != nil && state.Score > 0 {
			cmds = append(cmds, m.recordScore())
		}
	case !state.GameOver:
		m.scoreSaved = false
	}
	return m, tea.Batch(cmds...)
}

func (m Model) recordScore() tea.Cmd {
	sum := m.game.Session().Summary()
	entry := storage.ScoreEntry{
		Player: m.player,
		Score:  sum.Score,
		Wave:   sum.Wave,
		Level:  sum.Level,
		Kills:  sum.Kills,
	}
	store := m.store
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), ioTimeout)
		defer cancel()
		id, err := store.SaveScore(ctx, entry)
		return scoreSavedMsg{id: id, err: err}
	}
}

// saveScreenshot saves the current screen to a file.
func (m *Model) saveScreenshot() {
	m.game.Render(m.screen)

	dir := filepath.Join(os.Getenv("HOME"), ".arcade", "screenshots")
	//nolint:errcheck // Best-effort directory creation
	os.MkdirAll(dir, 0o755)

	timestamp := time.Now().Format("20060102_150405")
	path := filepath.Join(dir, fmt.Sprintf("%s_%s.txt", m.game.ID(), timestamp))

	//nolint:errcheck // Best-effort save, game continues regardless
	os.WriteFile(path, []byte(m.screen.String()), 0o600)
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	m.game.Render(m.screen)
	out := RenderScreen(m.screen)
	if m.screen.Height() < m.config.ScreenH {
		helpStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
		out += "\n" + helpStyle.Render(m.help.View(m.keyMapper.Keys()))
	}
	return out
}

// IsQuitting returns true if user requested to quit entirely.
func (m Model) IsQuitting() bool {
	return m.quitting
}

// BackToMenu returns true if user requested to go back to menu.
func (m Model) BackToMenu() bool {
	return m.backToMenu
}

// Run starts a standalone Bubble Tea program for one game.
func Run(game *defense.Game, store *storage.Store, cfg core.RuntimeConfig, player string, logger *log.Logger) error {
	model := NewModel(game, store, cfg, player, logger)
	model.standalone = true

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)

	_, err := p.Run()
	return err
}

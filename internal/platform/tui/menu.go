package tui

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"

	"github.com/vovakirdan/tui-defense/internal/config"
	"github.com/vovakirdan/tui-defense/internal/core"
	"github.com/vovakirdan/tui-defense/internal/games/defense/catalog"
	"github.com/vovakirdan/tui-defense/internal/storage"
)

var difficulties = []config.DifficultyPreset{
	config.DifficultyEasy,
	config.DifficultyNormal,
	config.DifficultyHard,
}

var (
	menuTitleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("214")).MarginBottom(1)
	menuItemStyle  = lipgloss.NewStyle().PaddingLeft(2)
	menuPickStyle  = lipgloss.NewStyle().PaddingLeft(1).Bold(true).Foreground(lipgloss.Color("46"))
	menuDimStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	previewStyle   = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240")).
			Foreground(lipgloss.Color("130")).
			Padding(0, 1)
)

// MenuItem represents a selectable map in the menu.
type MenuItem struct {
	Level   int
	Title   string
	preview string
	cells   int
}

// MenuModel is the Bubble Tea model for the map picker.
type MenuModel struct {
	items          []MenuItem
	cursor         int
	difficulty     int // index into difficulties
	highScore      int
	config         core.RuntimeConfig
	keyMapper      *KeyMapper
	quitting       bool
	selected       *MenuItem
	openScoreboard bool
}

// NewMenuModel creates a menu listing the catalog's levels, starting on the
// given difficulty.
func NewMenuModel(cat *catalog.Catalog, store *storage.Store, cfg core.RuntimeConfig, preset config.DifficultyPreset) MenuModel {
	grid := config.DefaultDefenseConfig().Grid
	levels := cat.Levels()
	items := make([]MenuItem, 0, len(levels))
	for _, l := range levels {
		items = append(items, MenuItem{
			Level:   l.Number,
			Title:   fmt.Sprintf("%d. %s", l.Number, l.Name),
			preview: pathPreview(l.Path, grid.Cols, grid.Rows),
			cells:   len(l.Path),
		})
	}

	m := MenuModel{
		items:      items,
		difficulty: 1,
		config:     cfg,
		keyMapper:  NewKeyMapper(),
	}
	for i, d := range difficulties {
		if d == preset {
			m.difficulty = i
		}
	}
	if store != nil {
		ctx, cancel := context.WithTimeout(context.Background(), ioTimeout)
		defer cancel()
		if hs, err := store.HighScore(ctx); err == nil {
			m.highScore = hs
		}
	}
	return m
}

// pathPreview draws the path as a minimap, two grid rows per line.
func pathPreview(path []catalog.Point, cols, rows int) string {
	on := make(map[catalog.Point]bool, len(path))
	for _, p := range path {
		on[p] = true
		cols = max(cols, p.X+1)
		rows = max(rows, p.Y+1)
	}

	var b strings.Builder
	for y := 0; y < rows; y += 2 {
		if y > 0 {
			b.WriteByte('\n')
		}
		for x := 0; x < cols; x++ {
			top, bottom := on[catalog.Point{X: x, Y: y}], on[catalog.Point{X: x, Y: y + 1}]
			switch {
			case top && bottom:
				b.WriteRune('█')
			case top:
				b.WriteRune('▀')
			case bottom:
				b.WriteRune('▄')
			default:
				b.WriteRune(' ')
			}
		}
	}
	return b.String()
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
		m.config.ScreenW = msg.Width
		m.config.ScreenH = msg.Height
	}
	return m, nil
}

func (m MenuModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.keyMapper.MapKeyToMenuAction(msg) {
	case MenuActionQuit, MenuActionBack:
		m.quitting = true
		return m, tea.Quit
	case MenuActionUp:
		m.cursor = core.Clamp(m.cursor-1, 0, len(m.items)-1)
	case MenuActionDown:
		m.cursor = core.Clamp(m.cursor+1, 0, len(m.items)-1)
	case MenuActionEasier:
		m.difficulty = core.Clamp(m.difficulty-1, 0, len(difficulties)-1)
	case MenuActionHarder:
		m.difficulty = core.Clamp(m.difficulty+1, 0, len(difficulties)-1)
	case MenuActionSelect:
		if len(m.items) > 0 {
			picked := m.items[m.cursor]
			m.selected = &picked
			return m, tea.Quit
		}
	case MenuActionScoreboard:
		m.openScoreboard = true
		return m, tea.Quit
	}
	return m, nil
}

// View renders the level list beside a preview of the highlighted map.
func (m MenuModel) View() string {
	if m.quitting {
		return ""
	}

	var list strings.Builder
	list.WriteString(menuTitleStyle.Render("T O W E R   D E F E N S E"))
	list.WriteString("\n")
	for i, item := range m.items {
		if i == m.cursor {
			list.WriteString(menuPickStyle.Render("> " + item.Title))
		} else {
			list.WriteString(menuItemStyle.Render(item.Title))
		}
		list.WriteString("\n")
	}
	list.WriteString("\n")
	list.WriteString(fmt.Sprintf("Difficulty: < %s >\n", m.Difficulty()))
	if m.highScore > 0 {
		list.WriteString(menuDimStyle.Render("High score: " + humanize.Comma(int64(m.highScore))))
		list.WriteString("\n")
	}

	body := list.String()
	if len(m.items) > 0 {
		item := m.items[m.cursor]
		preview := lipgloss.JoinVertical(lipgloss.Left,
			previewStyle.Render(item.preview),
			menuDimStyle.Render(fmt.Sprintf("  %d path cells", item.cells)),
		)
		side := lipgloss.JoinHorizontal(lipgloss.Top, body, "   ", preview)
		if lipgloss.Width(side) <= m.config.ScreenW {
			body = side
		}
	}

	controls := menuDimStyle.Render("↑/↓ map  ←/→ difficulty  Enter play  Tab scores  Q quit")
	return lipgloss.Place(m.config.ScreenW, m.config.ScreenH, lipgloss.Center, lipgloss.Center,
		lipgloss.JoinVertical(lipgloss.Center, body, "", controls))
}

// Selected returns the selected menu item, or nil if none selected.
func (m MenuModel) Selected() *MenuItem {
	return m.selected
}

// Difficulty returns the preset shown in the menu.
func (m MenuModel) Difficulty() config.DifficultyPreset {
	return difficulties[m.difficulty]
}

// IsQuitting returns true if user requested to quit.
func (m MenuModel) IsQuitting() bool {
	return m.quitting
}

// WantsScoreboard returns true if user requested scoreboard.
func (m MenuModel) WantsScoreboard() bool {
	return m.openScoreboard
}

// Config returns the current runtime config (may have been updated by resize).
func (m MenuModel) Config() core.RuntimeConfig {
	return m.config
}

// centerText centers text within given width.
func centerText(text string, width int) string {
	w := lipgloss.Width(text)
	if w >= width {
		return text
	}
	return strings.Repeat(" ", (width-w)/2) + text
}

// MenuResult holds the result of running the menu.
type MenuResult struct {
	Level           int
	Difficulty      config.DifficultyPreset
	Config          core.RuntimeConfig
	WantsScoreboard bool
	Quit            bool
}

// RunMenu runs the menu and returns the selection result.
func RunMenu(cat *catalog.Catalog, store *storage.Store, cfg core.RuntimeConfig, preset config.DifficultyPreset) (MenuResult, error) {
	p := tea.NewProgram(NewMenuModel(cat, store, cfg, preset), tea.WithAltScreen())

	finalModel, err := p.Run()
	if err != nil {
		return MenuResult{Config: cfg, Difficulty: preset}, err
	}
	m, ok := finalModel.(MenuModel)
	if !ok {
		return MenuResult{Config: cfg, Difficulty: preset, Quit: true}, nil
	}

	result := MenuResult{Config: m.Config(), Difficulty: m.Difficulty()}
	switch {
	case m.WantsScoreboard():
		result.WantsScoreboard = true
	case m.IsQuitting() || m.Selected() == nil:
		result.Quit = true
	default:
		result.Level = m.Selected().Level
	}
	return result, nil
}

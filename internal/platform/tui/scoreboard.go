package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"

	"github.com/vovakirdan/tui-defense/internal/storage"
)

const (
	minWidthForSidebar = 80
	sidebarWidth       = 22
	maxScores          = 100
)

type boardView int

const (
	viewScores boardView = iota
	viewSaves
)

func (v boardView) String() string {
	if v == viewSaves {
		return "Save Slots"
	}
	return "High Scores"
}

var (
	boardTitleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229"))
	boardBoxStyle   = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("240")).Padding(0, 1)
	boardDimStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	boardEmptyStyle = boardDimStyle.Italic(true).Padding(2, 4)
	boardErrStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	boardTabStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229")).Background(lipgloss.Color("57")).Padding(0, 1)
)

// ScoreboardKeyMap defines the key bindings for the scoreboard.
type ScoreboardKeyMap struct {
	Up     key.Binding
	Down   key.Binding
	Switch key.Binding
	Delete key.Binding
	Back   key.Binding
	Quit   key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k ScoreboardKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Switch, k.Delete, k.Back}
}

// FullHelp returns key bindings for the full help view.
func (k ScoreboardKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{{k.Up, k.Down, k.Switch}, {k.Delete, k.Back, k.Quit}}
}

// DefaultScoreboardKeyMap returns default key bindings.
func DefaultScoreboardKeyMap() ScoreboardKeyMap {
	return ScoreboardKeyMap{
		Up:     key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		Down:   key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		Switch: key.NewBinding(key.WithKeys("tab", "shift+tab", "left", "right", "h", "l"), key.WithHelp("tab", "scores/saves")),
		Delete: key.NewBinding(key.WithKeys("x", "delete"), key.WithHelp("x", "delete save"), key.WithDisabled()),
		Back:   key.NewBinding(key.WithKeys("esc", "b"), key.WithHelp("esc", "back")),
		Quit:   key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// boardLoadedMsg carries one fetch from the store.
type boardLoadedMsg struct {
	view   boardView
	scores []storage.ScoreEntry
	saves  []storage.SaveInfo
	stats  storage.Stats
	err    error
}

// ScoreboardModel is the Bubble Tea model for the scores and saves screen.
type ScoreboardModel struct {
	view      boardView
	store     *storage.Store
	scores    []storage.ScoreEntry
	saves     []storage.SaveInfo
	stats     storage.Stats
	loading   bool
	err       error
	table     table.Model
	help      help.Model
	keys      ScoreboardKeyMap
	width     int
	height    int
	quitting  bool
	goingBack bool
}

// NewScoreboardModel creates a scoreboard. Rows arrive through Init.
func NewScoreboardModel(store *storage.Store, width, height int) ScoreboardModel {
	m := ScoreboardModel{
		store:   store,
		keys:    DefaultScoreboardKeyMap(),
		help:    help.New(),
		width:   width,
		height:  height,
		loading: store != nil,
	}
	m.table = m.newTable()
	return m
}

// Init starts loading the high scores.
func (m ScoreboardModel) Init() tea.Cmd {
	return m.fetch()
}

func (m ScoreboardModel) fetch() tea.Cmd {
	if m.store == nil {
		return nil
	}
	store, view := m.store, m.view
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), ioTimeout)
		defer cancel()
		msg := boardLoadedMsg{view: view}
		if msg.stats, msg.err = store.GetStats(ctx); msg.err != nil {
			return msg
		}
		if view == viewSaves {
			msg.saves, msg.err = store.ListSaves(ctx)
		} else {
			msg.scores, msg.err = store.TopScores(ctx, maxScores)
		}
		return msg
	}
}

func (m ScoreboardModel) deleteSelected() tea.Cmd {
	i := m.table.Cursor()
	if m.store == nil || m.view != viewSaves || i < 0 || i >= len(m.saves) {
		return nil
	}
	store, slot := m.store, m.saves[i].Slot
	refresh := m.fetch()
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), ioTimeout)
		defer cancel()
		if err := store.Delete(ctx, slot); err != nil {
			return boardLoadedMsg{view: viewSaves, err: err}
		}
		return refresh()
	}
}

func (m ScoreboardModel) newTable() table.Model {
	columns := []table.Column{
		{Title: "#", Width: 4},
		{Title: "Player", Width: 12},
		{Title: "Score", Width: 9},
		{Title: "Wave", Width: 5},
		{Title: "Lvl", Width: 4},
		{Title: "Kills", Width: 6},
		{Title: "When", Width: 14},
	}
	if m.view == viewSaves {
		columns = []table.Column{
			{Title: "Slot", Width: 30},
			{Title: "Size", Width: 9},
			{Title: "Saved", Width: 14},
		}
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(max(m.height-8, 3)),
	)
	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(s)
	return t
}

func (m *ScoreboardModel) fillRows() {
	var rows []table.Row
	if m.view == viewSaves {
		for _, s := range m.saves {
			rows = append(rows, table.Row{s.Slot, humanize.Bytes(uint64(s.Size)), humanize.Time(s.UpdatedAt)})
		}
	} else {
		for i, s := range m.scores {
			player := s.Player
			if player == "" {
				player = "-"
			}
			rows = append(rows, table.Row{
				fmt.Sprint(i + 1),
				player,
				humanize.Comma(int64(s.Score)),
				fmt.Sprint(s.Wave),
				fmt.Sprint(s.Level),
				humanize.Comma(int64(s.Kills)),
				humanize.Time(s.CreatedAt),
			})
		}
	}
	m.table.SetRows(rows)
	if m.table.Cursor() >= len(rows) {
		m.table.GotoTop()
	}
}

func (m ScoreboardModel) switchView() (ScoreboardModel, tea.Cmd) {
	if m.view == viewScores {
		m.view = viewSaves
	} else {
		m.view = viewScores
	}
	m.keys.Delete.SetEnabled(m.view == viewSaves)
	m.scores, m.saves, m.err = nil, nil, nil
	m.loading = m.store != nil
	m.table = m.newTable()
	return m, m.fetch()
}

// Update handles messages for the scoreboard.
func (m ScoreboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case boardLoadedMsg:
		if msg.view != m.view {
			return m, nil
		}
		m.loading = false
		m.err = msg.err
		if msg.err == nil {
			m.stats, m.scores, m.saves = msg.stats, msg.scores, msg.saves
		}
		m.fillRows()
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Back):
			m.goingBack = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Switch):
			return m.switchView()
		case key.Matches(msg, m.keys.Delete):
			return m, m.deleteSelected()
		}

	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.help.Width = msg.Width
		m.table = m.newTable()
		m.fillRows()
		return m, nil
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// View renders the scoreboard.
func (m ScoreboardModel) View() string {
	if m.quitting || m.goingBack {
		return ""
	}

	var b strings.Builder
	b.WriteString(boardTitleStyle.Render(centerText(strings.ToUpper(m.view.String()), m.width)))
	b.WriteString("\n\n")

	content := boardBoxStyle.Render(m.renderContent())
	if m.width >= minWidthForSidebar {
		b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, m.renderSidebar(), "  ", content))
	} else {
		b.WriteString(centerText(m.renderTabs(), m.width))
		b.WriteString("\n\n")
		b.WriteString(content)
	}
	b.WriteString("\n")
	b.WriteString(boardDimStyle.Render(m.help.View(m.keys)))
	return b.String()
}

func (m ScoreboardModel) renderSidebar() string {
	var sb strings.Builder
	for _, v := range []boardView{viewScores, viewSaves} {
		if v == m.view {
			sb.WriteString(boardTitleStyle.Render("> " + v.String()))
		} else {
			sb.WriteString("  " + v.String())
		}
		sb.WriteString("\n")
	}
	sb.WriteString(strings.Repeat("─", sidebarWidth-4))
	sb.WriteString("\n")
	fmt.Fprintf(&sb, "Runs:  %s\n", humanize.Comma(int64(m.stats.Runs)))
	fmt.Fprintf(&sb, "Best:  %s\n", humanize.Comma(int64(m.stats.HighScore)))
	fmt.Fprintf(&sb, "Avg:   %s\n", humanize.CommafWithDigits(m.stats.AvgScore, 0))
	fmt.Fprintf(&sb, "Wave:  %d\n", m.stats.BestWave)
	fmt.Fprintf(&sb, "Kills: %s", humanize.Comma(m.stats.Kills))
	return boardBoxStyle.Width(sidebarWidth).Render(sb.String())
}

// renderTabs is the view switcher for narrow terminals.
func (m ScoreboardModel) renderTabs() string {
	tabs := make([]string, 0, 2)
	for _, v := range []boardView{viewScores, viewSaves} {
		if v == m.view {
			tabs = append(tabs, boardTabStyle.Render(v.String()))
		} else {
			tabs = append(tabs, boardDimStyle.Render(" "+v.String()+" "))
		}
	}
	return strings.Join(tabs, " ")
}

func (m ScoreboardModel) renderContent() string {
	switch {
	case m.store == nil:
		return boardEmptyStyle.Render("No database.\nStart with --db to keep scores and saves.")
	case m.loading:
		return boardEmptyStyle.Render("Loading...")
	case m.err != nil:
		return boardErrStyle.Render("error: " + m.err.Error())
	case m.view == viewSaves && len(m.saves) == 0:
		return boardEmptyStyle.Render("No saved games.\nPress s in game to save.")
	case m.view == viewScores && len(m.scores) == 0:
		return boardEmptyStyle.Render("No scores recorded yet.\nHold the line to set a high score!")
	}
	return m.table.View()
}

// IsGoingBack returns true if user wants to go back to menu.
func (m ScoreboardModel) IsGoingBack() bool {
	return m.goingBack
}

// IsQuitting returns true if user wants to quit entirely.
func (m ScoreboardModel) IsQuitting() bool {
	return m.quitting
}

// RunScoreboard runs the scoreboard screen.
// Returns true if user wants to go back to menu, false if quitting.
func RunScoreboard(store *storage.Store, width, height int) (goBack bool, err error) {
	p := tea.NewProgram(NewScoreboardModel(store, width, height), tea.WithAltScreen())
	finalModel, err := p.Run()
	if err != nil {
		return false, err
	}
	m, ok := finalModel.(ScoreboardModel)
	if !ok {
		return false, nil
	}
	return m.IsGoingBack(), nil
}

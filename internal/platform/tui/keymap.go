package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-defense/internal/core"
)

// GameKeyMap defines the in-game key bindings.
type GameKeyMap struct {
	Up        key.Binding
	Down      key.Binding
	Left      key.Binding
	Right     key.Binding
	Place     key.Binding
	NextTower key.Binding
	PrevTower key.Binding
	StartWave key.Binding
	Pause     key.Binding
	Save      key.Binding
	Load      key.Binding
	NextLevel key.Binding
	Advise    key.Binding
	Restart   key.Binding
	Back      key.Binding
	Quit      key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k GameKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Place, k.NextTower, k.StartWave, k.Pause, k.Advise, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k GameKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Left, k.Right},
		{k.Place, k.NextTower, k.PrevTower},
		{k.StartWave, k.Pause, k.NextLevel, k.Restart},
		{k.Save, k.Load, k.Advise},
		{k.Back, k.Quit},
	}
}

// DefaultGameKeyMap returns default key bindings.
func DefaultGameKeyMap() GameKeyMap {
	return GameKeyMap{
		Up:        key.NewBinding(key.WithKeys("up", "w", "k"), key.WithHelp("↑/w", "up")),
		Down:      key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓", "down")),
		Left:      key.NewBinding(key.WithKeys("left", "a", "h"), key.WithHelp("←/a", "left")),
		Right:     key.NewBinding(key.WithKeys("right", "d"), key.WithHelp("→/d", "right")),
		Place:     key.NewBinding(key.WithKeys("enter", " "), key.WithHelp("enter", "build")),
		NextTower: key.NewBinding(key.WithKeys("tab", "]"), key.WithHelp("tab", "next tower")),
		PrevTower: key.NewBinding(key.WithKeys("shift+tab", "["), key.WithHelp("S-tab", "prev tower")),
		StartWave: key.NewBinding(key.WithKeys("g"), key.WithHelp("g", "start wave")),
		Pause:     key.NewBinding(key.WithKeys("p"), key.WithHelp("p", "pause")),
		Save:      key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "save")),
		Load:      key.NewBinding(key.WithKeys("l"), key.WithHelp("l", "load")),
		NextLevel: key.NewBinding(key.WithKeys("n"), key.WithHelp("n", "next level")),
		Advise:    key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "advice")),
		Restart:   key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "restart")),
		Back:      key.NewBinding(key.WithKeys("esc", "b"), key.WithHelp("esc", "menu")),
		Quit:      key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// KeyMapper translates Bubble Tea key messages to game actions.
// This centralizes key bindings and makes them testable.
type KeyMapper struct {
	keys     GameKeyMap
	bindings []boundAction
}

type boundAction struct {
	binding key.Binding
	action  core.Action
}

// NewKeyMapper creates a new key mapper with default bindings.
func NewKeyMapper() *KeyMapper {
	k := DefaultGameKeyMap()
	return &KeyMapper{
		keys: k,
		bindings: []boundAction{
			{k.Quit, core.ActionQuit},
			{k.Up, core.ActionUp},
			{k.Down, core.ActionDown},
			{k.Left, core.ActionLeft},
			{k.Right, core.ActionRight},
			{k.Place, core.ActionPlace},
			{k.NextTower, core.ActionNextTower},
			{k.PrevTower, core.ActionPrevTower},
			{k.StartWave, core.ActionStartWave},
			{k.Pause, core.ActionPause},
			{k.Save, core.ActionSave},
			{k.Load, core.ActionLoad},
			{k.NextLevel, core.ActionNextLevel},
			{k.Advise, core.ActionAdvise},
			{k.Restart, core.ActionRestart},
		},
	}
}

// Keys returns the bindings for help rendering.
func (km *KeyMapper) Keys() GameKeyMap {
	return km.keys
}

// MapKey translates a key message to a game action.
// Returns the action (may be ActionNone) and whether it's a quit request.
func (km *KeyMapper) MapKey(msg tea.KeyMsg) (action core.Action, isQuit bool) {
	for _, b := range km.bindings {
		if key.Matches(msg, b.binding) {
			return b.action, b.action == core.ActionQuit
		}
	}
	return core.ActionNone, false
}

// MapKeyToFrame updates an input frame based on a key message.
// Returns true if the key was a quit request.
func (km *KeyMapper) MapKeyToFrame(msg tea.KeyMsg, frame *core.InputFrame) bool {
	action, isQuit := km.MapKey(msg)
	if action != core.ActionNone {
		frame.Set(action)
	}
	return isQuit
}

// IsBack reports whether the key asks to leave the game for the menu.
func (km *KeyMapper) IsBack(msg tea.KeyMsg) bool {
	return key.Matches(msg, km.keys.Back)
}

// MenuAction represents a menu-specific action derived from input.
type MenuAction int

const (
	MenuActionNone MenuAction = iota
	MenuActionUp
	MenuActionDown
	MenuActionSelect
	MenuActionBack
	MenuActionScoreboard
	MenuActionEasier
	MenuActionHarder
	MenuActionQuit
)

// MapKeyToMenuAction translates a key to a menu action.
func (km *KeyMapper) MapKeyToMenuAction(msg tea.KeyMsg) MenuAction {
	switch msg.String() {
	case "ctrl+c", "q":
		return MenuActionQuit
	case "w", "up", "k": // vim-style k for up
		return MenuActionUp
	case "s", "down", "j": // vim-style j for down
		return MenuActionDown
	case "enter", " ":
		return MenuActionSelect
	case "b", "esc":
		return MenuActionBack
	case "tab":
		return MenuActionScoreboard
	case "a", "left", "h":
		return MenuActionEasier
	case "d", "right", "l":
		return MenuActionHarder
	}
	return MenuActionNone
}

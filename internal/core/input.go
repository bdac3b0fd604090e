package core

// Action represents a semantic game action, abstracted from physical key presses.
type Action int

const (
	ActionNone      Action = iota
	ActionUp               // move build cursor
	ActionDown
	ActionLeft
	ActionRight
	ActionPlace            // build selected tower under the cursor
	ActionNextTower        // cycle tower selection
	ActionPrevTower
	ActionStartWave        // start the next wave now
	ActionPause            // toggle pause
	ActionSave             // write the save slot
	ActionLoad             // restore the save slot
	ActionNextLevel        // continue after level complete
	ActionAdvise           // ask the advisory service
	ActionRestart          // new session after game over
	ActionQuit             // leave
)

var actionNames = [...]string{
	ActionNone:      "None",
	ActionUp:        "Up",
	ActionDown:      "Down",
	ActionLeft:      "Left",
	ActionRight:     "Right",
	ActionPlace:     "Place",
	ActionNextTower: "NextTower",
	ActionPrevTower: "PrevTower",
	ActionStartWave: "StartWave",
	ActionPause:     "Pause",
	ActionSave:      "Save",
	ActionLoad:      "Load",
	ActionNextLevel: "NextLevel",
	ActionAdvise:    "Advise",
	ActionRestart:   "Restart",
	ActionQuit:      "Quit",
}

// String returns a human-readable name for the action.
func (a Action) String() string {
	if a < 0 || int(a) >= len(actionNames) {
		return "Unknown"
	}
	return actionNames[a]
}

// InputFrame holds the actions triggered since the last frame.
type InputFrame struct {
	Actions map[Action]bool
}

// NewInputFrame creates an empty input frame.
func NewInputFrame() InputFrame {
	return InputFrame{Actions: make(map[Action]bool)}
}

// Set marks an action as triggered for this frame.
func (f *InputFrame) Set(a Action) {
	if f.Actions == nil {
		f.Actions = make(map[Action]bool)
	}
	f.Actions[a] = true
}

// Has returns true if the given action was triggered this frame.
func (f InputFrame) Has(a Action) bool {
	return f.Actions[a]
}

// Clear resets all actions for the next frame.
func (f *InputFrame) Clear() {
	for k := range f.Actions {
		delete(f.Actions, k)
	}
}

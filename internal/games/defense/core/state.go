package core

// State is the complete simulation state of one session.
//
// Wave is the number of the next wave to spawn. LevelStartWave records the
// value Wave had when the current level began, so level completion is
// measured in waves spawned on this map.
type State struct {
	Status       Status  `json:"status"`
	Lives        int     `json:"lives"`
	Money        int     `json:"money"`
	Wave         int     `json:"wave"`
	CurrentLevel int     `json:"currentLevel"`
	WaveTimer    float64 `json:"waveTimer"`

	Towers      []PlacedTower `json:"towers"`
	Enemies     []ActiveEnemy `json:"enemies"`
	Projectiles []Projectile  `json:"projectiles"`
	Decorations []Decoration  `json:"decorations"`

	Tick           uint64 `json:"tick"`
	LevelStartWave int    `json:"levelStartWave"`
	Kills          int    `json:"kills"`
	Score          int    `json:"score"`
	ShotSeq        int    `json:"shotSeq"`

	// occupied maps grid cells to tower instance ids. Derived from Towers.
	occupied map[Cell]string
}

// NewState returns a fresh session on the given level with status paused.
func NewState(env Env, decorations []Decoration) State {
	if decorations == nil {
		decorations = []Decoration{}
	}
	return State{
		Status:         StatusPaused,
		Lives:          env.Rules.StartingLives,
		Money:          env.Rules.StartingMoney,
		Wave:           1,
		CurrentLevel:   env.Level.Number,
		WaveTimer:      env.Rules.WaveTimer,
		Towers:         []PlacedTower{},
		Enemies:        []ActiveEnemy{},
		Projectiles:    []Projectile{},
		Decorations:    decorations,
		LevelStartWave: 1,
		occupied:       make(map[Cell]string),
	}
}

// Clone returns a deep copy of the state.
func (s State) Clone() State {
	c := s
	c.Towers = append([]PlacedTower{}, s.Towers...)
	c.Enemies = append([]ActiveEnemy{}, s.Enemies...)
	c.Projectiles = append([]Projectile{}, s.Projectiles...)
	c.Decorations = append([]Decoration{}, s.Decorations...)
	c.occupied = make(map[Cell]string, len(s.occupied))
	for k, v := range s.occupied {
		c.occupied[k] = v
	}
	return c
}

// Occupant returns the id of the tower on a cell.
func (s *State) Occupant(x, y int) (string, bool) {
	id, ok := s.occupied[Cell{x, y}]
	return id, ok
}

// TowerAt returns the tower on a cell, or nil.
func (s *State) TowerAt(x, y int) *PlacedTower {
	for i := range s.Towers {
		if s.Towers[i].GridX == x && s.Towers[i].GridY == y {
			return &s.Towers[i]
		}
	}
	return nil
}

func (s *State) rebuildOccupancy() {
	s.occupied = make(map[Cell]string, len(s.Towers))
	for _, t := range s.Towers {
		s.occupied[Cell{t.GridX, t.GridY}] = t.InstanceID
	}
}

// Playing reports whether the simulation should advance.
func (s *State) Playing() bool {
	return s.Status == StatusPlaying
}

// WavesCleared returns how many waves have been spawned on the current level.
func (s *State) WavesCleared() int {
	return s.Wave - s.LevelStartWave
}

package core

// Summary is a compact view of a state for status lines, logs and
// spectators.
type Summary struct {
	Tick        uint64  `json:"tick"`
	Status      Status  `json:"status"`
	Phase       string  `json:"phase"`
	Level       int     `json:"level"`
	Wave        int     `json:"wave"`
	Lives       int     `json:"lives"`
	Money       int     `json:"money"`
	WaveTimer   float64 `json:"waveTimer"`
	Towers      int     `json:"towers"`
	Enemies     int     `json:"enemies"`
	Projectiles int     `json:"projectiles"`
	Kills       int     `json:"kills"`
	Score       int     `json:"score"`
}

// Summarize builds a Summary.
func Summarize(s State) Summary {
	return Summary{
		Tick:        s.Tick,
		Status:      s.Status,
		Phase:       PhaseOf(s).String(),
		Level:       s.CurrentLevel,
		Wave:        s.Wave,
		Lives:       s.Lives,
		Money:       s.Money,
		WaveTimer:   s.WaveTimer,
		Towers:      len(s.Towers),
		Enemies:     len(s.Enemies),
		Projectiles: len(s.Projectiles),
		Kills:       s.Kills,
		Score:       s.Score,
	}
}

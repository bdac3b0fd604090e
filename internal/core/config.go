package core

// RuntimeConfig contains what the platform tells a game at start.
type RuntimeConfig struct {
	ScreenW   int   // Screen width in characters
	ScreenH   int   // Screen height in characters
	FrameRate int   // Render frames per second
	Seed      int64 // RNG seed for scenery; 0 means the platform picks one
}

// DefaultConfig returns a RuntimeConfig with sensible defaults.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW:   80,
		ScreenH:   24,
		FrameRate: 30,
	}
}

// GameState is the summary the platform needs between frames.
type GameState struct {
	Score    int
	GameOver bool
	Paused   bool
}

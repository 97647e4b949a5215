package core

// RuntimeConfig contains configuration passed to games at initialization.
// Games use this to adapt to screen size and for deterministic level layouts.
type RuntimeConfig struct {
	ScreenW    int   // Screen width in characters
	ScreenH    int   // Screen height in characters
	TickRate   int   // Simulation ticks per second (default 30)
	Seed       int64 // RNG seed for level generation and card deals
	StartLevel int   // First level to load (1 when zero)
}

// DefaultConfig returns a RuntimeConfig with sensible defaults.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW:    80,
		ScreenH:    24,
		TickRate:   30,
		Seed:       0, // 0 means use current time in platform layer
		StartLevel: 1,
	}
}

// GameState represents the current state of a puzzle game.
// Returned by Game.State() to communicate status to the platform.
type GameState struct {
	Level    int  // Level currently on the board
	MaxLevel int  // Last level of the session
	Cleared  int  // Levels completed in this session
	Complete bool // Whether the final level has been solved
	Failed   bool // Whether the current level could not be loaded
	Paused   bool // Whether the game is paused
}

// StepResult is returned by Game.Step() after each simulation tick.
type StepResult struct {
	State GameState
	// LevelsCleared lists the levels completed during this tick, so the
	// platform can record them.
	LevelsCleared []int
	// SessionDone is true on the one tick the final level was completed.
	SessionDone bool
}

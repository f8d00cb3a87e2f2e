package core

// RuntimeConfig is passed to a game on every Reset.
type RuntimeConfig struct {
	ScreenW  int   // Screen width in characters
	ScreenH  int   // Screen height in characters
	TickRate int   // Simulation ticks per second (default 60)
	Seed     int64 // Map seed; 0 keeps the game's own choice
}

// DefaultConfig returns a RuntimeConfig with sensible defaults.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW:  100,
		ScreenH:  30,
		TickRate: 60,
		Seed:     0,
	}
}

// GameState is the platform-facing summary of a game.
type GameState struct {
	Score    int    // Score of the local side
	GameOver bool   // Whether the match has ended
	Paused   bool   // Whether the simulation is frozen (e.g. window too small)
	Status   string // One-line status for the frame footer
}

// StepResult is returned by Game.Step after each simulation tick.
type StepResult struct {
	State GameState
}

// MatchResult summarizes a finished match for the results store.
type MatchResult struct {
	MatchID   string
	Mode      string
	Seed      int64
	Winner    string // side name, or "NONE" when no side won
	Reason    string // win condition, or "turn_limit"
	BlueScore int
	RedScore  int
	Turns     int
}

package core

// RuntimeConfig contains configuration passed to games at initialization.
type RuntimeConfig struct {
	ScreenW  int // Screen width in characters
	ScreenH  int // Screen height in characters
	TickRate int // Frames per second of the UI loop (default 60)
}

// DefaultConfig returns a RuntimeConfig with sensible defaults.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW:  80,
		ScreenH:  24,
		TickRate: 60,
	}
}

// GameState represents the current state of a game.
// Returned by Game.State() to communicate status to the platform.
type GameState struct {
	Ticks    int  // Simulation ticks run since the last rewind
	Running  bool // Whether the simulation is advancing automatically
	Solved   bool // Whether the current level has been completed
	GameOver bool // Whether the player asked to leave the game
}

// Completion describes a solved level.
type Completion struct {
	Collection string
	Level      int
	Ticks      int
	Board      string // arrangement that produced the win
}

// StepResult is returned by Game.Step() after each frame.
type StepResult struct {
	State GameState

	// Solved is set on the frame a level is completed.
	Solved *Completion
}

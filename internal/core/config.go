package core

// RuntimeConfig contains configuration passed to the world at initialization.
// Frontends use this to communicate canvas size and the RNG seed.
type RuntimeConfig struct {
	CanvasW  float64 // Logical canvas width in pixels
	CanvasH  float64 // Logical canvas height in pixels
	TickRate int     // Simulation ticks per second (default 60)
	Seed     int64   // RNG seed for deterministic question/phrase selection
}

// DefaultConfig returns a RuntimeConfig with sensible defaults.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		CanvasW:  800,
		CanvasH:  480,
		TickRate: 60,
		Seed:     0, // 0 means use current time in platform layer
	}
}

// GameState summarizes the run for the platform layer.
type GameState struct {
	Score     int  // Correct answers given so far
	Completed bool // Every questioner exhausted or no questions left
}

// StepResult is returned by World.Step after each simulation tick.
type StepResult struct {
	State GameState
}

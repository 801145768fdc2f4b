package core

// RuntimeConfig carries the platform-provided parameters a game needs at reset.
type RuntimeConfig struct {
	ScreenW  int   // Screen width in characters
	ScreenH  int   // Screen height in characters
	TickRate int   // Simulation ticks per second
	Seed     int64 // RNG seed; the same seed and inputs replay the same game
}

// DefaultConfig returns a RuntimeConfig for a standard 80x24 terminal at 60 ticks per second.
// A zero seed is replaced by the platform with a time-based one.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW:  80,
		ScreenH:  24,
		TickRate: 60,
	}
}

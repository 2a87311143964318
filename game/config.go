package game

// Options configures game construction.
type Options struct {
	Seed           int64   // RNG seed for particle factors
	LogStats       bool    // Emit stats windows via slog
	StatsWindowSec float64 // Seconds of simulated time per stats window (0 = config value)
	OutputDir      string  // Directory for CSV logs and config snapshot (empty = disabled)
	Headless       bool    // Skip all raylib resources
}

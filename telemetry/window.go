package telemetry

// StatsWindow decides when a stats window of simulated time has closed.
// It is driven by elapsed sim time rather than frame count, so windows
// keep their length whatever the display refresh rate is.
type StatsWindow struct {
	Sec  float64 // window length in simulated seconds, <= 0 disables
	last float64 // sim time at which the previous window closed
}

// NewStatsWindow creates a window of sec simulated seconds starting at zero.
func NewStatsWindow(sec float64) *StatsWindow {
	return &StatsWindow{Sec: sec}
}

// Due reports whether the window has closed at elapsed and, if so, starts
// the next one. At most one window closes per call.
func (w *StatsWindow) Due(elapsed float64) bool {
	if w.Sec <= 0 {
		return false
	}
	if elapsed-w.last < w.Sec {
		return false
	}
	w.last = elapsed
	return true
}

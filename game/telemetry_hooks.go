package game

import (
	"log/slog"
)

// flushTelemetry samples the swarm and writes stats when a window closes.
func (g *Game) flushTelemetry() {
	if !g.statsWindow.Due(g.elapsed) {
		return
	}
	if !g.logStats && g.outputManager == nil {
		return
	}

	stats := g.sampler.Sample(g.transforms, g.swarm.Particles())
	stats.Frame = g.frame
	stats.SimTime = g.elapsed
	stats.CameraZ = g.scene.CameraZ()
	stats.MouseX = g.input.MouseX
	stats.MouseY = g.input.MouseY

	perfStats := g.perfCollector.Stats()

	// Log stats if enabled (console output)
	if g.logStats {
		slog.Info("swarm", "stats", stats)
		perfStats.LogStats()
	}

	// Write to CSV if output manager is enabled
	if g.outputManager != nil {
		if err := g.outputManager.WriteSwarm(stats); err != nil {
			slog.Error("failed to write swarm stats", "error", err)
		}
		if err := g.outputManager.WritePerf(perfStats, g.frame); err != nil {
			slog.Error("failed to write perf", "error", err)
		}
	}
}

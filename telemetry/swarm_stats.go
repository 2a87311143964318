package telemetry

import (
	"log/slog"
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/pthm-cable/swarm/swarm"
)

// SwarmStats summarizes one frame of the swarm.
type SwarmStats struct {
	Frame     int64   `csv:"frame"`
	SimTime   float64 `csv:"sim_time"`
	Particles int     `csv:"particles"`

	// Mean instance position
	CentroidX float64 `csv:"centroid_x"`
	CentroidY float64 `csv:"centroid_y"`
	CentroidZ float64 `csv:"centroid_z"`

	// Distance from centroid
	RadiusMean float64 `csv:"radius_mean"`
	RadiusStd  float64 `csv:"radius_std"`
	RadiusMax  float64 `csv:"radius_max"`

	// Mean instance scale (cos of phase, so in [-1, 1])
	ScaleMean float64 `csv:"scale_mean"`

	// Largest drift accumulator magnitudes
	DriftMaxX float64 `csv:"drift_max_x"`
	DriftMaxY float64 `csv:"drift_max_y"`

	CameraZ float64 `csv:"camera_z"`
	MouseX  float64 `csv:"mouse_x"`
	MouseY  float64 `csv:"mouse_y"`
}

// SwarmSampler computes SwarmStats, reusing its scratch buffers.
type SwarmSampler struct {
	xs, ys, zs []float64
	radii      []float64
	scales     []float64
}

// NewSwarmSampler creates a sampler.
func NewSwarmSampler() *SwarmSampler {
	return &SwarmSampler{}
}

// Sample summarizes the given transforms and particle state.
func (s *SwarmSampler) Sample(transforms []swarm.Transform, particles []swarm.Particle) SwarmStats {
	n := len(transforms)
	stats := SwarmStats{Particles: n}
	if n == 0 {
		return stats
	}

	s.xs = resize(s.xs, n)
	s.ys = resize(s.ys, n)
	s.zs = resize(s.zs, n)
	s.radii = resize(s.radii, n)
	s.scales = resize(s.scales, n)

	for i, tr := range transforms {
		s.xs[i] = tr.Position.X
		s.ys[i] = tr.Position.Y
		s.zs[i] = tr.Position.Z
		s.scales[i] = tr.Scale.X
	}

	stats.CentroidX = stat.Mean(s.xs, nil)
	stats.CentroidY = stat.Mean(s.ys, nil)
	stats.CentroidZ = stat.Mean(s.zs, nil)
	stats.ScaleMean = stat.Mean(s.scales, nil)

	for i := range transforms {
		dx := s.xs[i] - stats.CentroidX
		dy := s.ys[i] - stats.CentroidY
		dz := s.zs[i] - stats.CentroidZ
		s.radii[i] = math.Sqrt(dx*dx + dy*dy + dz*dz)
	}

	if n > 1 {
		stats.RadiusMean, stats.RadiusStd = stat.MeanStdDev(s.radii, nil)
	} else {
		stats.RadiusMean = s.radii[0]
	}
	stats.RadiusMax = floats.Max(s.radii)

	for _, p := range particles {
		stats.DriftMaxX = math.Max(stats.DriftMaxX, math.Abs(p.MX))
		stats.DriftMaxY = math.Max(stats.DriftMaxY, math.Abs(p.MY))
	}

	return stats
}

func resize(buf []float64, n int) []float64 {
	if cap(buf) < n {
		return make([]float64, n)
	}
	return buf[:n]
}

// LogValue implements slog.LogValuer for structured logging.
func (s SwarmStats) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int64("frame", s.Frame),
		slog.Int("particles", s.Particles),
		slog.Float64("radius_mean", s.RadiusMean),
		slog.Float64("radius_std", s.RadiusStd),
		slog.Float64("radius_max", s.RadiusMax),
		slog.Float64("drift_max_x", s.DriftMaxX),
		slog.Float64("drift_max_y", s.DriftMaxY),
		slog.Float64("camera_z", s.CameraZ),
	)
}

package main

import (
	"math"
	"math/rand"
	"sync"

	"github.com/pthm-cable/swarm/camera"
	"github.com/pthm-cable/swarm/config"
	"github.com/pthm-cable/swarm/scene"
	"github.com/pthm-cable/swarm/swarm"
	"github.com/pthm-cable/swarm/telemetry"
)

// Fitness weights.
const (
	overflowWeight = 10.0 // penalty per squared unit of fill beyond the frame edge
	motionWeight   = 0.1  // reward for fill range, so the dolly keeps moving
	sampleEvery    = 10   // frames between fill samples
)

// FitnessEvaluator runs headless swarms and scores how well the camera frames them.
type FitnessEvaluator struct {
	params     *ParamVector
	frames     int
	count      int
	target     float64
	seeds      []int64
	baseConfig *config.Config

	mu          sync.Mutex
	bestFitness float64
	lastFill    fillRange // fill range from most recent Evaluate call
}

// fillRange is the span of fill fractions seen during a run.
type fillRange struct {
	Min, Mean, Max float64
}

// NewFitnessEvaluator creates a new evaluator.
func NewFitnessEvaluator(params *ParamVector, frames, count int, target float64, seeds []int64, baseCfg *config.Config) *FitnessEvaluator {
	return &FitnessEvaluator{
		params:      params,
		frames:      frames,
		count:       count,
		target:      target,
		seeds:       seeds,
		baseConfig:  baseCfg,
		bestFitness: math.Inf(1),
	}
}

// LastFill returns the fill range from the most recent evaluation.
func (fe *FitnessEvaluator) LastFill() fillRange {
	fe.mu.Lock()
	defer fe.mu.Unlock()
	return fe.lastFill
}

// BestFitness returns the lowest score seen across all evaluations, or +Inf
// before the first one.
func (fe *FitnessEvaluator) BestFitness() float64 {
	fe.mu.Lock()
	defer fe.mu.Unlock()
	return fe.bestFitness
}

// runResult holds the fill samples from a single run.
type runResult struct {
	fills []float64
}

// Evaluate computes fitness for a parameter vector (lower = better).
func (fe *FitnessEvaluator) Evaluate(x []float64) float64 {
	cfg := fe.copyConfig()
	fe.params.ApplyToConfig(cfg, x)

	// Run all seeds in parallel
	results := make([]*runResult, len(fe.seeds))
	var wg sync.WaitGroup

	for i, seed := range fe.seeds {
		wg.Add(1)
		go func(idx int, s int64) {
			defer wg.Done()
			results[idx] = fe.runSimulation(cfg, s)
		}(i, seed)
	}
	wg.Wait()

	var total float64
	span := fillRange{Min: math.Inf(1), Max: math.Inf(-1)}
	var fillSum float64
	var fillCount int
	for _, r := range results {
		total += fe.computeFitness(r)
		for _, f := range r.fills {
			span.Min = math.Min(span.Min, f)
			span.Max = math.Max(span.Max, f)
			fillSum += f
			fillCount++
		}
	}
	if fillCount > 0 {
		span.Mean = fillSum / float64(fillCount)
	}

	avg := total / float64(len(fe.seeds))

	fe.mu.Lock()
	if avg < fe.bestFitness {
		fe.bestFitness = avg
	}
	fe.lastFill = span
	fe.mu.Unlock()

	return avg
}

// runSimulation advances a fresh swarm on the headless clock and samples
// how much of the view height it fills.
func (fe *FitnessEvaluator) runSimulation(cfg *config.Config, seed int64) *runResult {
	result := &runResult{}

	s, err := swarm.New(fe.count, rand.New(rand.NewSource(seed)))
	if err != nil {
		return result
	}
	sc := scene.New(cfg)
	sampler := telemetry.NewSwarmSampler()
	aspect := cfg.Derived.Aspect

	var in swarm.Input
	var transforms []swarm.Transform
	var elapsed float64

	for frame := 1; frame <= fe.frames; frame++ {
		angle := cfg.Headless.PointerSpeed * elapsed
		in.MouseX = cfg.Headless.PointerRadius * math.Cos(angle)
		in.MouseY = cfg.Headless.PointerRadius * math.Sin(angle)
		in.ViewportW, in.ViewportH = sc.Viewport(aspect)

		transforms = s.Advance(in, transforms)
		elapsed += cfg.Headless.FrameDT
		sc.Update(in, elapsed)

		if frame%sampleEvery != 0 {
			continue
		}

		// Fill is measured on the plane through the swarm centroid
		stats := sampler.Sample(transforms, s.Particles())
		distance := sc.CameraZ() - stats.CentroidZ
		_, h := camera.Viewport(sc.CameraFOV(), aspect, distance)
		if h <= 0 {
			continue
		}
		extent := stats.RadiusMean + 2*stats.RadiusStd
		result.fills = append(result.fills, extent/(h/2))
	}

	return result
}

// copyConfig creates a copy of the base config with derived values intact.
func (fe *FitnessEvaluator) copyConfig() *config.Config {
	cfg := *fe.baseConfig
	return &cfg
}

// computeFitness scores one run (lower = better).
// Formula: mean (fill - target)² + overflow penalty - motion reward
func (fe *FitnessEvaluator) computeFitness(r *runResult) float64 {
	if len(r.fills) == 0 {
		return math.Inf(1)
	}

	var sqErr, overflow float64
	lo, hi := math.Inf(1), math.Inf(-1)
	for _, f := range r.fills {
		d := f - fe.target
		sqErr += d * d
		if f > 1 {
			overflow += (f - 1) * (f - 1)
		}
		lo = math.Min(lo, f)
		hi = math.Max(hi, f)
	}
	n := float64(len(r.fills))

	return sqErr/n + overflowWeight*overflow/n - motionWeight*(hi-lo)
}

package telemetry

import (
	"log/slog"
	"time"
)

// Frame phases, timed back to back between StartFrame and EndFrame.
const (
	PhaseAdvance     = "advance"
	PhaseScene       = "scene"
	PhaseUpload      = "upload"
	PhaseDraw        = "draw"
	PhasePostProcess = "postprocess"
)

// phaseOrder is render-loop order. Logs and the perf panel follow it.
var phaseOrder = []string{PhaseAdvance, PhaseScene, PhaseUpload, PhaseDraw, PhasePostProcess}

// Phases returns a copy of phaseOrder.
func Phases() []string {
	return append([]string(nil), phaseOrder...)
}

// PerfSample is one frame's wall time split by phase.
type PerfSample struct {
	FrameDuration time.Duration
	Phases        map[string]time.Duration
}

// PerfCollector keeps the last windowSize frames in a ring and averages
// them on demand. It is not safe for concurrent use; the render loop owns it.
type PerfCollector struct {
	windowSize    int
	samples       []PerfSample
	writeIndex    int
	sampleCount   int
	currentPhases map[string]time.Duration
	frameStart    time.Time
	phaseStart    time.Time
	lastPhase     string

	// Set by RecordPresent after BeginDrawing/EndDrawing; zero when headless
	lastPresent     time.Time
	presentInterval time.Duration
}

// NewPerfCollector averages over windowSize frames, 60 when windowSize < 1.
func NewPerfCollector(windowSize int) *PerfCollector {
	if windowSize < 1 {
		windowSize = 60
	}
	return &PerfCollector{
		windowSize:    windowSize,
		samples:       make([]PerfSample, windowSize),
		currentPhases: make(map[string]time.Duration),
	}
}

// StartFrame resets the phase clock. Time before the first StartPhase
// counts toward the frame but no phase.
func (p *PerfCollector) StartFrame() {
	p.frameStart = time.Now()
	p.currentPhases = make(map[string]time.Duration)
	p.lastPhase = ""
}

// StartPhase closes the running phase, if any, and opens phase.
func (p *PerfCollector) StartPhase(phase string) {
	now := time.Now()
	if p.lastPhase != "" {
		p.currentPhases[p.lastPhase] += now.Sub(p.phaseStart)
	}
	p.phaseStart = now
	p.lastPhase = phase
}

// EndFrame closes the running phase and stores the frame in the ring,
// overwriting the oldest once the window is full.
func (p *PerfCollector) EndFrame() {
	now := time.Now()
	if p.lastPhase != "" {
		p.currentPhases[p.lastPhase] += now.Sub(p.phaseStart)
	}

	p.samples[p.writeIndex] = PerfSample{
		FrameDuration: now.Sub(p.frameStart),
		Phases:        p.currentPhases,
	}
	p.writeIndex = (p.writeIndex + 1) % p.windowSize
	if p.sampleCount < p.windowSize {
		p.sampleCount++
	}
}

// RecordPresent stamps a presented frame. Stats reports the gap to the
// previous stamp as the display rate.
func (p *PerfCollector) RecordPresent() {
	now := time.Now()
	if !p.lastPresent.IsZero() {
		p.presentInterval = now.Sub(p.lastPresent)
	}
	p.lastPresent = now
}

// PerfStats summarizes the frames currently in the window.
type PerfStats struct {
	AvgFrameDuration time.Duration
	MinFrameDuration time.Duration
	MaxFrameDuration time.Duration

	// Mean time per phase
	PhaseAvg map[string]time.Duration

	// Mean phase time as a percentage of the mean frame
	PhasePct map[string]float64

	// Frame rate if frames took only their measured work
	FramesPerSecond float64

	// Display rate from RecordPresent, zero when headless
	PresentInterval time.Duration
	FPS             float64
}

// Stats averages the window. With no frames recorded only the present
// fields are set.
func (p *PerfCollector) Stats() PerfStats {
	var fps float64
	if p.presentInterval > 0 {
		fps = float64(time.Second) / float64(p.presentInterval)
	}

	if p.sampleCount == 0 {
		return PerfStats{
			PhaseAvg:        make(map[string]time.Duration),
			PhasePct:        make(map[string]float64),
			PresentInterval: p.presentInterval,
			FPS:             fps,
		}
	}

	var total, minFrame, maxFrame time.Duration
	phaseSum := make(map[string]time.Duration)

	for i := 0; i < p.sampleCount; i++ {
		s := p.samples[i]
		total += s.FrameDuration

		if i == 0 || s.FrameDuration < minFrame {
			minFrame = s.FrameDuration
		}
		if s.FrameDuration > maxFrame {
			maxFrame = s.FrameDuration
		}

		for phase, dur := range s.Phases {
			phaseSum[phase] += dur
		}
	}

	avg := total / time.Duration(p.sampleCount)

	phaseAvg := make(map[string]time.Duration)
	phasePct := make(map[string]float64)
	for phase, sum := range phaseSum {
		phaseAvg[phase] = sum / time.Duration(p.sampleCount)
		if avg > 0 {
			phasePct[phase] = float64(phaseAvg[phase]) / float64(avg) * 100
		}
	}

	var framesPerSec float64
	if avg > 0 {
		framesPerSec = float64(time.Second) / float64(avg)
	}

	return PerfStats{
		AvgFrameDuration: avg,
		MinFrameDuration: minFrame,
		MaxFrameDuration: maxFrame,
		PhaseAvg:         phaseAvg,
		PhasePct:         phasePct,
		FramesPerSecond:  framesPerSec,
		PresentInterval:  p.presentInterval,
		FPS:              fps,
	}
}

// LogStats writes one flat "perf" line, skipping phases under 0.1%.
func (s PerfStats) LogStats() {
	attrs := []any{
		"avg_frame_us", s.AvgFrameDuration.Microseconds(),
		"min_frame_us", s.MinFrameDuration.Microseconds(),
		"max_frame_us", s.MaxFrameDuration.Microseconds(),
		"frames_per_sec", int(s.FramesPerSecond),
	}

	if s.FPS > 0 {
		attrs = append(attrs, "fps", int(s.FPS))
	}

	for _, phase := range phaseOrder {
		if pct, ok := s.PhasePct[phase]; ok && pct > 0.1 {
			attrs = append(attrs, phase+"_pct", int(pct*10)/10.0)
		}
	}

	slog.Info("perf", attrs...)
}

// PerfStatsCSV is one row of perf.csv.
type PerfStatsCSV struct {
	WindowEnd      int64   `csv:"window_end"`
	AvgFrameUS     int64   `csv:"avg_frame_us"`
	MinFrameUS     int64   `csv:"min_frame_us"`
	MaxFrameUS     int64   `csv:"max_frame_us"`
	FramesPerSec   float64 `csv:"frames_per_sec"`
	FPS            float64 `csv:"fps"`
	AdvancePct     float64 `csv:"advance_pct"`
	ScenePct       float64 `csv:"scene_pct"`
	UploadPct      float64 `csv:"upload_pct"`
	DrawPct        float64 `csv:"draw_pct"`
	PostProcessPct float64 `csv:"postprocess_pct"`
}

// ToCSV flattens the stats into a perf.csv row keyed by the frame that
// closed the window.
func (s PerfStats) ToCSV(windowEnd int64) PerfStatsCSV {
	return PerfStatsCSV{
		WindowEnd:      windowEnd,
		AvgFrameUS:     s.AvgFrameDuration.Microseconds(),
		MinFrameUS:     s.MinFrameDuration.Microseconds(),
		MaxFrameUS:     s.MaxFrameDuration.Microseconds(),
		FramesPerSec:   s.FramesPerSecond,
		FPS:            s.FPS,
		AdvancePct:     s.PhasePct[PhaseAdvance],
		ScenePct:       s.PhasePct[PhaseScene],
		UploadPct:      s.PhasePct[PhaseUpload],
		DrawPct:        s.PhasePct[PhaseDraw],
		PostProcessPct: s.PhasePct[PhasePostProcess],
	}
}

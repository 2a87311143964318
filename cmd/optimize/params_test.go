package main

import (
	"math"
	"testing"

	"github.com/pthm-cable/swarm/config"
)

func TestNormalizeRoundTrip(t *testing.T) {
	pv := NewParamVector()
	raw := pv.DefaultVector()

	back := pv.Denormalize(pv.Normalize(raw))
	for i := range raw {
		if math.Abs(back[i]-raw[i]) > 1e-9 {
			t.Errorf("%s: got %v, want %v", pv.Specs[i].Name, back[i], raw[i])
		}
	}
}

func TestDefaultsWithinBounds(t *testing.T) {
	for _, spec := range NewParamVector().Specs {
		if spec.Default < spec.Min || spec.Default > spec.Max {
			t.Errorf("%s default %v outside [%v, %v]", spec.Name, spec.Default, spec.Min, spec.Max)
		}
	}
}

func TestApplyToConfig(t *testing.T) {
	pv := NewParamVector()

	tests := []struct {
		name    string
		values  []float64
		wantFOV float64
		wantAmp float64
	}{
		{"in bounds", []float64{60, 80, 20}, 60, 20},
		{"clamped fov", []float64{500, 80, 20}, 110, 20},
		{"amplitude limited by base", []float64{60, 30, 50}, 60, 30 - minCameraDistance},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := config.Load("")
			if err != nil {
				t.Fatalf("Load: %v", err)
			}
			pv.ApplyToConfig(cfg, tt.values)

			if cfg.Camera.FOV != tt.wantFOV {
				t.Errorf("FOV = %v, want %v", cfg.Camera.FOV, tt.wantFOV)
			}
			if cfg.Camera.DollyAmplitude != tt.wantAmp {
				t.Errorf("DollyAmplitude = %v, want %v", cfg.Camera.DollyAmplitude, tt.wantAmp)
			}
			if cfg.Camera.StartZ != cfg.Camera.DollyBase {
				t.Errorf("StartZ = %v, want dolly base %v", cfg.Camera.StartZ, cfg.Camera.DollyBase)
			}
		})
	}
}

func TestComputeFitness(t *testing.T) {
	fe := &FitnessEvaluator{target: 0.8}

	onTarget := fe.computeFitness(&runResult{fills: []float64{0.8, 0.8}})
	offTarget := fe.computeFitness(&runResult{fills: []float64{0.4, 0.4}})
	overflow := fe.computeFitness(&runResult{fills: []float64{1.4, 1.4}})

	if onTarget >= offTarget {
		t.Errorf("on target %v should beat off target %v", onTarget, offTarget)
	}
	if offTarget >= overflow {
		t.Errorf("underfill %v should beat equal overflow %v", offTarget, overflow)
	}
	if !math.IsInf(fe.computeFitness(&runResult{}), 1) {
		t.Error("empty run should score +Inf")
	}
}

func TestEvaluateDeterministic(t *testing.T) {
	cfg, err := config.Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	pv := NewParamVector()
	fe := NewFitnessEvaluator(pv, 60, 200, 0.8, []int64{1, 2}, cfg)

	a := fe.Evaluate(pv.DefaultVector())
	b := fe.Evaluate(pv.DefaultVector())
	if a != b {
		t.Errorf("same parameters scored %v then %v", a, b)
	}

	fill := fe.LastFill()
	if !(fill.Min <= fill.Mean && fill.Mean <= fill.Max) {
		t.Errorf("fill range out of order: %+v", fill)
	}
	if fill.Min <= 0 {
		t.Errorf("fill min = %v, want > 0", fill.Min)
	}
}

func TestBestFitnessTracksMinimum(t *testing.T) {
	cfg, err := config.Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	pv := NewParamVector()
	fe := NewFitnessEvaluator(pv, 60, 200, 0.8, []int64{1}, cfg)

	if !math.IsInf(fe.BestFitness(), 1) {
		t.Fatalf("BestFitness before any run = %v, want +Inf", fe.BestFitness())
	}

	good := fe.Evaluate(pv.DefaultVector())
	worse := fe.Evaluate([]float64{30, 120, 0})

	want := math.Min(good, worse)
	if got := fe.BestFitness(); got != want {
		t.Errorf("BestFitness = %v, want %v", got, want)
	}
}

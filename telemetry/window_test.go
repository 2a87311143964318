package telemetry

import (
	"math"
	"testing"
)

func TestStatsWindow_FollowsSimTime(t *testing.T) {
	testCases := []struct {
		name string
		dt   float64
	}{
		{"60 Hz", 1.0 / 60},
		{"144 Hz", 1.0 / 144},
		{"30 Hz", 1.0 / 30},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			w := NewStatsWindow(5)
			var elapsed float64
			var closes []float64
			for i := 0; i < int(12/tc.dt); i++ {
				elapsed += tc.dt
				if w.Due(elapsed) {
					closes = append(closes, elapsed)
				}
			}
			if len(closes) != 2 {
				t.Fatalf("expected 2 windows in 12s, got %d at %v", len(closes), closes)
			}
			if math.Abs(closes[0]-5) > tc.dt+1e-9 {
				t.Errorf("first window closed at %.3fs, want ~5s", closes[0])
			}
			if math.Abs(closes[1]-closes[0]-5) > tc.dt+1e-9 {
				t.Errorf("second window lasted %.3fs, want ~5s", closes[1]-closes[0])
			}
		})
	}
}

func TestStatsWindow_UnevenFrames(t *testing.T) {
	w := NewStatsWindow(5)
	steps := []struct {
		dt   float64
		want bool
	}{
		{0.5, false},
		{3, false},
		{1.25, false},
		{0.5, true}, // 5.25
		{4.5, false},
		{0.75, true}, // 10.5
	}

	var elapsed float64
	for i, s := range steps {
		elapsed += s.dt
		if got := w.Due(elapsed); got != s.want {
			t.Errorf("step %d (elapsed %.2f): got %v, want %v", i, elapsed, got, s.want)
		}
	}
}

func TestStatsWindow_Disabled(t *testing.T) {
	for _, sec := range []float64{0, -1} {
		w := NewStatsWindow(sec)
		for elapsed := 0.0; elapsed < 100; elapsed += 1 {
			if w.Due(elapsed) {
				t.Fatalf("window %v fired at %v", sec, elapsed)
			}
		}
	}
}

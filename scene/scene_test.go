package scene

import (
	"math"
	"testing"

	"github.com/pthm-cable/swarm/camera"
	"github.com/pthm-cable/swarm/config"
	"github.com/pthm-cable/swarm/swarm"
)

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	cfg, err := config.Load("")
	if err != nil {
		t.Fatalf("loading defaults: %v", err)
	}
	return cfg
}

func TestNewLights(t *testing.T) {
	s := New(testConfig(t))

	lights := s.Lights()
	if len(lights) != 3 {
		t.Fatalf("expected 3 lights, got %d", len(lights))
	}

	var spots, followers int
	for _, l := range lights {
		if l.Spot {
			spots++
			if l.Penumbra != 1 {
				t.Errorf("expected spot penumbra 1, got %f", l.Penumbra)
			}
			if l.Position.X != 70 || l.Position.Y != 70 || l.Position.Z != 70 {
				t.Errorf("expected spot at (70,70,70), got %+v", l.Position)
			}
		}
		if l.Follows {
			followers++
			if l.Distance != 60 || l.Intensity != 0.2 {
				t.Errorf("unexpected pointer light %+v", l)
			}
		}
	}
	if spots != 1 || followers != 1 {
		t.Errorf("expected one spot and one follower, got %d and %d", spots, followers)
	}
}

func TestInitialCamera(t *testing.T) {
	s := New(testConfig(t))
	if s.CameraZ() != 70 {
		t.Errorf("expected start z 70, got %f", s.CameraZ())
	}
	if s.CameraFOV() != 75 {
		t.Errorf("expected fov 75, got %f", s.CameraFOV())
	}
}

func TestUpdateMovesPointerLight(t *testing.T) {
	s := New(testConfig(t))
	s.Update(swarm.Input{MouseX: 1, MouseY: 1, ViewportW: 100, ViewportH: 60}, 0)

	for _, l := range s.Lights() {
		if !l.Follows {
			continue
		}
		if l.Position.X != 50 || l.Position.Y != 30 || l.Position.Z != 0 {
			t.Errorf("expected pointer light at (50,30,0), got %+v", l.Position)
		}
	}

	// Fixed lights stay put
	for _, l := range s.Lights() {
		if l.Spot && l.Position.X != 70 {
			t.Errorf("spot light moved to %+v", l.Position)
		}
	}
}

func TestUpdateDollies(t *testing.T) {
	s := New(testConfig(t))

	testCases := []struct {
		elapsed float64
		want    float64
	}{
		{0, 50},
		{math.Pi / 2, 80},
		{3 * math.Pi / 2, 20},
	}
	for _, tc := range testCases {
		s.Update(swarm.Input{}, tc.elapsed)
		if got := s.CameraZ(); math.Abs(got-tc.want) > 1e-9 {
			t.Errorf("elapsed %f: expected z %f, got %f", tc.elapsed, tc.want, got)
		}
	}
}

func TestViewportIgnoresDolly(t *testing.T) {
	s := New(testConfig(t))
	aspect := 1280.0 / 720.0
	wantW, wantH := camera.Viewport(75, aspect, 70)

	for _, elapsed := range []float64{0, 1, math.Pi / 2, 4} {
		s.Update(swarm.Input{}, elapsed)
		w, h := s.Viewport(aspect)
		if math.Abs(w-wantW) > 1e-9 || math.Abs(h-wantH) > 1e-9 {
			t.Errorf("elapsed %f (z %f): viewport %fx%f, want %fx%f", elapsed, s.CameraZ(), w, h, wantW, wantH)
		}
	}
}

package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("loading defaults: %v", err)
	}

	if cfg.Swarm.Count != 20000 {
		t.Errorf("expected 20000 particles, got %d", cfg.Swarm.Count)
	}
	if cfg.Effects.WaterFactor != 2 {
		t.Errorf("expected water factor 2, got %f", cfg.Effects.WaterFactor)
	}
	if cfg.Effects.BloomStrength != 1.5 || cfg.Effects.BloomRadius != 1 || cfg.Effects.BloomThreshold != 0 {
		t.Errorf("unexpected bloom params: %+v", cfg.Effects)
	}
	if cfg.Camera.FOV != 75 || cfg.Camera.DollyBase != 50 || cfg.Camera.DollyAmplitude != 30 {
		t.Errorf("unexpected camera params: %+v", cfg.Camera)
	}
	if cfg.Lights.Pointer.Distance != 60 {
		t.Errorf("expected pointer light distance 60, got %f", cfg.Lights.Pointer.Distance)
	}
	if cfg.Derived.Aspect != 1280.0/720.0 {
		t.Errorf("unexpected derived aspect %f", cfg.Derived.Aspect)
	}
}

func TestLoadOverride(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	data := []byte("swarm:\n  count: 500\neffects:\n  bloom_strength: 3\n")
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("loading override: %v", err)
	}
	if cfg.Swarm.Count != 500 {
		t.Errorf("expected overridden count 500, got %d", cfg.Swarm.Count)
	}
	if cfg.Effects.BloomStrength != 3 {
		t.Errorf("expected overridden bloom strength 3, got %f", cfg.Effects.BloomStrength)
	}
	// Untouched fields keep their defaults
	if cfg.Effects.WaterFactor != 2 {
		t.Errorf("expected default water factor 2, got %f", cfg.Effects.WaterFactor)
	}
}

func TestLoadRejectsNegativeCount(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(path, []byte("swarm:\n  count: -1\n"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Error("expected an error for a negative count")
	}
}

func TestLoadRejectsBadTargetFPS(t *testing.T) {
	for _, fps := range []string{"0", "-30"} {
		path := filepath.Join(t.TempDir(), "config.yaml")
		if err := os.WriteFile(path, []byte("screen:\n  target_fps: "+fps+"\n"), 0644); err != nil {
			t.Fatal(err)
		}
		if _, err := Load(path); err == nil {
			t.Errorf("expected an error for target_fps %s", fps)
		}
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("expected an error for a missing file")
	}
}

func TestWriteYAMLRoundtrip(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatal(err)
	}
	cfg.Swarm.Count = 1234

	path := filepath.Join(t.TempDir(), "out.yaml")
	if err := cfg.WriteYAML(path); err != nil {
		t.Fatalf("writing: %v", err)
	}

	reloaded, err := Load(path)
	if err != nil {
		t.Fatalf("reloading: %v", err)
	}
	if reloaded.Swarm.Count != 1234 {
		t.Errorf("expected 1234 after reload, got %d", reloaded.Swarm.Count)
	}
}

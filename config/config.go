// Package config provides configuration loading and access for the swarm scene.
package config

import (
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// Config holds all scene configuration parameters.
type Config struct {
	Screen    ScreenConfig    `yaml:"screen"`
	Swarm     SwarmConfig     `yaml:"swarm"`
	Camera    CameraConfig    `yaml:"camera"`
	Lights    LightsConfig    `yaml:"lights"`
	Effects   EffectsConfig   `yaml:"effects"`
	Headless  HeadlessConfig  `yaml:"headless"`
	Telemetry TelemetryConfig `yaml:"telemetry"`

	// Derived values computed after loading
	Derived DerivedConfig `yaml:"-"`
}

// ScreenConfig holds display settings.
type ScreenConfig struct {
	Width     int `yaml:"width"`
	Height    int `yaml:"height"`
	TargetFPS int `yaml:"target_fps"`
}

// SwarmConfig holds particle swarm parameters.
type SwarmConfig struct {
	Count      int      `yaml:"count"`       // Particle count, fixed for the life of a swarm
	MeshRadius float64  `yaml:"mesh_radius"` // Instance mesh radius
	Color      [3]uint8 `yaml:"color"`       // Instance base color (RGB)
	Background [3]uint8 `yaml:"background"`  // Clear color (RGB)
}

// CameraConfig holds perspective camera and dolly parameters.
type CameraConfig struct {
	FOV            float64 `yaml:"fov"`             // Vertical field of view in degrees
	StartZ         float64 `yaml:"start_z"`         // Initial z before the dolly takes over
	DollyBase      float64 `yaml:"dolly_base"`      // Resting distance
	DollyAmplitude float64 `yaml:"dolly_amplitude"` // Peak offset from dolly_base
}

// LightConfig describes a single point or spot light.
type LightConfig struct {
	Position  [3]float64 `yaml:"position"`
	Color     [3]uint8   `yaml:"color"`
	Intensity float64    `yaml:"intensity"`
	Distance  float64    `yaml:"distance"` // 0 = no falloff cutoff
	Penumbra  float64    `yaml:"penumbra"` // spot lights only
}

// LightsConfig holds the fixed scene lights and the pointer-following light.
type LightsConfig struct {
	Ambient LightConfig `yaml:"ambient"`
	Spot    LightConfig `yaml:"spot"`
	Pointer LightConfig `yaml:"pointer"`
}

// EffectsConfig holds post-processing pass parameters.
type EffectsConfig struct {
	WaterFactor    float64 `yaml:"water_factor"`
	WaterTimeStep  float64 `yaml:"water_time_step"` // Water pass clock advance per frame
	BloomStrength  float64 `yaml:"bloom_strength"`
	BloomRadius    float64 `yaml:"bloom_radius"`
	BloomThreshold float64 `yaml:"bloom_threshold"`
}

// HeadlessConfig holds parameters for runs without graphics.
type HeadlessConfig struct {
	FrameDT       float64 `yaml:"frame_dt"`       // Seconds per simulated frame
	PointerRadius float64 `yaml:"pointer_radius"` // Synthetic pointer orbit radius, normalized units
	PointerSpeed  float64 `yaml:"pointer_speed"`  // Synthetic pointer angular speed, radians per second
}

// TelemetryConfig holds telemetry parameters.
type TelemetryConfig struct {
	StatsWindow         float64 `yaml:"stats_window"`          // Seconds between stats records
	PerfCollectorWindow int     `yaml:"perf_collector_window"` // Frames averaged by the perf collector
}

// DerivedConfig holds computed values derived from the loaded config.
type DerivedConfig struct {
	ScreenW32 float32 // Screen.Width as float32
	ScreenH32 float32 // Screen.Height as float32
	Aspect    float64 // Screen.Width / Screen.Height
	FOV32     float32 // Camera.FOV as float32
}

// global holds the loaded configuration.
var global *Config

// Init loads configuration from the given path, or uses embedded defaults if path is empty.
// Must be called before Cfg().
func Init(path string) error {
	cfg, err := Load(path)
	if err != nil {
		return err
	}
	global = cfg
	return nil
}

// Cfg returns the global configuration. Panics if Init was not called.
func Cfg() *Config {
	if global == nil {
		panic("config: Cfg() called before Init()")
	}
	return global
}

// Load loads configuration from a YAML file, merging with embedded defaults.
// If path is empty, only embedded defaults are used.
func Load(path string) (*Config, error) {
	cfg := &Config{}
	if err := yaml.Unmarshal(defaultsYAML, cfg); err != nil {
		return nil, fmt.Errorf("parsing embedded defaults: %w", err)
	}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		// Only overwrites fields present in file
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	cfg.computeDerived()

	return cfg, nil
}

// validate rejects values the scene cannot run with.
func (c *Config) validate() error {
	if c.Swarm.Count < 0 {
		return fmt.Errorf("swarm.count must be >= 0, got %d", c.Swarm.Count)
	}
	if c.Screen.Width <= 0 || c.Screen.Height <= 0 {
		return fmt.Errorf("screen size must be positive, got %dx%d", c.Screen.Width, c.Screen.Height)
	}
	if c.Screen.TargetFPS <= 0 {
		return fmt.Errorf("screen.target_fps must be positive, got %d", c.Screen.TargetFPS)
	}
	if c.Camera.FOV <= 0 || c.Camera.FOV >= 180 {
		return fmt.Errorf("camera.fov must be in (0, 180), got %f", c.Camera.FOV)
	}
	return nil
}

// computeDerived calculates values derived from loaded config.
func (c *Config) computeDerived() {
	c.Derived.ScreenW32 = float32(c.Screen.Width)
	c.Derived.ScreenH32 = float32(c.Screen.Height)
	c.Derived.Aspect = float64(c.Screen.Width) / float64(c.Screen.Height)
	c.Derived.FOV32 = float32(c.Camera.FOV)

	if c.Headless.FrameDT <= 0 {
		c.Headless.FrameDT = 1.0 / 60.0
	}
	if c.Telemetry.PerfCollectorWindow < 1 {
		c.Telemetry.PerfCollectorWindow = 60
	}
}

// WriteYAML writes the configuration to a YAML file.
func (c *Config) WriteYAML(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}

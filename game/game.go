package game

import (
	"fmt"
	"log/slog"
	"math/rand"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/swarm/config"
	"github.com/pthm-cable/swarm/effects"
	"github.com/pthm-cable/swarm/renderer"
	"github.com/pthm-cable/swarm/scene"
	"github.com/pthm-cable/swarm/swarm"
	"github.com/pthm-cable/swarm/telemetry"
	"github.com/pthm-cable/swarm/ui"
)

// Panel layout
const (
	controlsWidth = 260
	perfWidth     = 280
)

// Game holds the complete scene state.
type Game struct {
	rng     *rand.Rand
	rngSeed int64

	swarm      *swarm.Swarm
	transforms []swarm.Transform
	scene      *scene.Scene
	chain      *effects.Chain
	input      swarm.Input

	// Rendering (nil when headless)
	swarmRenderer *renderer.SwarmRenderer
	composer      *renderer.Composer
	camera        rl.Camera3D
	hud           *ui.HUD
	perfPanel     *ui.PerfPanel
	controls      *ui.ControlsPanel
	showPerf      bool

	// Telemetry
	perfCollector *telemetry.PerfCollector
	sampler       *telemetry.SwarmSampler
	outputManager *telemetry.OutputManager
	logStats      bool
	statsWindow   *telemetry.StatsWindow

	// State
	frame    int64
	elapsed  float64
	paused   bool
	headless bool

	screenWidth, screenHeight float32
}

// NewGameWithOptions creates a game. Graphical games must be created after
// the raylib window.
func NewGameWithOptions(opts Options) (*Game, error) {
	cfg := config.Cfg()

	rng := rand.New(rand.NewSource(opts.Seed))
	s, err := swarm.New(cfg.Swarm.Count, rng)
	if err != nil {
		return nil, fmt.Errorf("creating swarm: %w", err)
	}

	chain := effects.NewChain(cfg.Effects)
	if err := chain.Validate(); err != nil {
		return nil, fmt.Errorf("building effect chain: %w", err)
	}

	windowSec := cfg.Telemetry.StatsWindow
	if opts.StatsWindowSec > 0 {
		windowSec = opts.StatsWindowSec
	}

	g := &Game{
		rng:           rng,
		rngSeed:       opts.Seed,
		swarm:         s,
		transforms:    make([]swarm.Transform, 0, s.Len()),
		scene:         scene.New(cfg),
		chain:         chain,
		perfCollector: telemetry.NewPerfCollector(cfg.Telemetry.PerfCollectorWindow),
		sampler:       telemetry.NewSwarmSampler(),
		logStats:      opts.LogStats,
		statsWindow:   telemetry.NewStatsWindow(windowSec),
		headless:      opts.Headless,
		screenWidth:   cfg.Derived.ScreenW32,
		screenHeight:  cfg.Derived.ScreenH32,
	}

	om, err := telemetry.NewOutputManager(opts.OutputDir)
	if err != nil {
		return nil, fmt.Errorf("creating output manager: %w", err)
	}
	if err := om.WriteConfig(cfg); err != nil {
		om.Close()
		return nil, fmt.Errorf("writing config snapshot: %w", err)
	}
	g.outputManager = om

	if !opts.Headless {
		g.initGraphics(cfg)
	}

	slog.Info("swarm created",
		"particles", s.Len(),
		"seed", opts.Seed,
		"effects", chain.Names(),
		"headless", opts.Headless,
	)

	return g, nil
}

// initGraphics creates the raylib-backed renderers and panels.
func (g *Game) initGraphics(cfg *config.Config) {
	w, h := int32(g.screenWidth), int32(g.screenHeight)

	g.swarmRenderer = renderer.NewSwarmRenderer(float32(cfg.Swarm.MeshRadius), rgb(cfg.Swarm.Color))
	g.swarmRenderer.Init()

	g.composer = renderer.NewComposer(w, h, rgb(cfg.Swarm.Background))
	g.composer.Init()

	g.camera = rl.Camera3D{
		Position:   rl.Vector3{X: 0, Y: 0, Z: float32(cfg.Camera.StartZ)},
		Target:     rl.Vector3{},
		Up:         rl.Vector3{X: 0, Y: 1, Z: 0},
		Fovy:       cfg.Derived.FOV32,
		Projection: rl.CameraPerspective,
	}

	g.hud = ui.NewHUD()
	g.perfPanel = ui.NewPerfPanel(10, 100, perfWidth)
	g.controls = ui.NewControlsPanel(w-controlsWidth-10, 10, controlsWidth, cfg.Swarm.Count)
}

func rgb(c [3]uint8) rl.Color {
	return rl.Color{R: c[0], G: c[1], B: c[2], A: 255}
}

// Rebuild replaces the swarm with a fresh one of the given size.
// On an invalid count the current swarm is kept.
func (g *Game) Rebuild(count int) error {
	s, err := swarm.Replace(g.swarm, count, g.rng)
	g.swarm = s
	if err != nil {
		slog.Warn("rebuild rejected", "count", count, "error", err)
		return err
	}
	// Refill now so a paused scene still draws the new swarm
	g.transforms = g.swarm.Advance(g.input, g.transforms[:0])
	slog.Info("swarm rebuilt", "particles", count, "frame", g.frame)
	return nil
}

// Frame returns the number of simulated frames.
func (g *Game) Frame() int64 {
	return g.frame
}

// Elapsed returns simulated seconds.
func (g *Game) Elapsed() float64 {
	return g.elapsed
}

// Unload frees resources and flushes output.
func (g *Game) Unload() {
	if g.swarmRenderer != nil {
		g.swarmRenderer.Unload()
	}
	if g.composer != nil {
		g.composer.Unload()
	}
	if err := g.outputManager.Close(); err != nil {
		slog.Error("failed to close output", "error", err)
	}
}

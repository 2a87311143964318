package game

import (
	"math"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/swarm/camera"
	"github.com/pthm-cable/swarm/config"
	"github.com/pthm-cable/swarm/telemetry"
)

// Update reads input and advances one frame. Draw must follow.
func (g *Game) Update() {
	g.perfCollector.StartFrame()
	g.handleInput()

	if g.paused {
		return
	}

	// The pointer keeps its last scene position while over the panel
	mouse := rl.GetMousePosition()
	if !g.controls.Contains(mouse.X, mouse.Y) {
		g.input.MouseX, g.input.MouseY = camera.NormalizePointer(
			float64(mouse.X), float64(mouse.Y),
			float64(g.screenWidth), float64(g.screenHeight),
		)
	}

	g.step(float64(rl.GetFrameTime()))
}

// UpdateHeadless advances one frame on a fixed clock with a pointer circling
// the origin. It makes no raylib calls.
func (g *Game) UpdateHeadless() {
	cfg := config.Cfg()
	g.perfCollector.StartFrame()

	angle := cfg.Headless.PointerSpeed * g.elapsed
	g.input.MouseX = cfg.Headless.PointerRadius * math.Cos(angle)
	g.input.MouseY = cfg.Headless.PointerRadius * math.Sin(angle)

	g.step(cfg.Headless.FrameDT)
	g.perfCollector.EndFrame()
}

// step runs one simulation frame of dt seconds.
func (g *Game) step(dt float64) {
	aspect := camera.Aspect(float64(g.screenWidth), float64(g.screenHeight))
	g.input.ViewportW, g.input.ViewportH = g.scene.Viewport(aspect)

	g.perfCollector.StartPhase(telemetry.PhaseAdvance)
	g.transforms = g.swarm.Advance(g.input, g.transforms)

	g.perfCollector.StartPhase(telemetry.PhaseScene)
	g.elapsed += dt
	g.scene.Update(g.input, g.elapsed)
	g.chain.Advance()

	g.frame++
	g.flushTelemetry()
}

package game

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/swarm/telemetry"
	"github.com/pthm-cable/swarm/ui"
)

const controlsLegend = "[Space] pause  [Tab] effects  [P] perf  [F11] fullscreen"

// Draw renders the scene through the effect chain and overlays the UI.
func (g *Game) Draw() {
	g.perfCollector.StartPhase(telemetry.PhaseUpload)
	g.swarmRenderer.Upload(g.transforms)
	g.camera.Position.Z = float32(g.scene.CameraZ())

	g.perfCollector.StartPhase(telemetry.PhaseDraw)
	lights := g.scene.Lights()
	g.composer.Render(g.chain, func() {
		rl.BeginMode3D(g.camera)
		g.swarmRenderer.Draw(g.camera, lights)
		rl.EndMode3D()

		// Everything after the render pass is post-processing
		g.perfCollector.StartPhase(telemetry.PhasePostProcess)
	})

	rl.BeginDrawing()
	rl.ClearBackground(rl.Black)
	g.composer.Draw()
	g.drawUI()
	rl.EndDrawing()

	g.perfCollector.EndFrame()
	g.perfCollector.RecordPresent()
}

// drawUI renders the HUD and panels over the composited frame.
func (g *Game) drawUI() {
	g.hud.Draw(ui.HUDData{
		Title:        "Swarm",
		Particles:    g.swarm.Len(),
		Frame:        g.frame,
		FPS:          rl.GetFPS(),
		CameraZ:      g.scene.CameraZ(),
		MouseX:       g.input.MouseX,
		MouseY:       g.input.MouseY,
		Paused:       g.paused,
		ScreenWidth:  int32(g.screenWidth),
		ScreenHeight: int32(g.screenHeight),
	})

	if g.showPerf {
		g.perfPanel.Draw(g.perfCollector.Stats())
	}

	if count := g.controls.Draw(g.chain); count >= 0 {
		_ = g.Rebuild(count)
	}

	g.hud.DrawControls(int32(g.screenHeight), controlsLegend)
}

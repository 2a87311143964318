package ui

import (
	"fmt"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/swarm/telemetry"
)

// HUDData holds all the data needed to render the main HUD.
type HUDData struct {
	Title        string
	Particles    int
	Frame        int64
	FPS          int32
	CameraZ      float64
	MouseX       float64
	MouseY       float64
	Paused       bool
	ScreenWidth  int32
	ScreenHeight int32
}

// HUD renders the main heads-up display.
type HUD struct {
	renderer *Renderer
}

// NewHUD creates a new HUD renderer.
func NewHUD() *HUD {
	return &HUD{
		renderer: NewRenderer(),
	}
}

// Draw renders the HUD.
func (h *HUD) Draw(data HUDData) {
	rl.DrawText(data.Title, 10, 10, 20, rl.White)

	rl.DrawText(
		fmt.Sprintf("Particles: %d | Frame: %d | FPS: %d", data.Particles, data.Frame, data.FPS),
		10, 35, 16, rl.LightGray,
	)
	rl.DrawText(
		fmt.Sprintf("Camera z: %.1f | Pointer: %+.2f, %+.2f", data.CameraZ, data.MouseX, data.MouseY),
		10, 55, 16, rl.LightGray,
	)

	if data.Paused {
		rl.DrawText("PAUSED", 10, 75, 16, rl.Yellow)
	}
}

// DrawControls renders the control legend at the bottom of the screen.
func (h *HUD) DrawControls(screenHeight int32, controls string) {
	rl.DrawText(controls, 10, screenHeight-25, 14, rl.Gray)
}

// PerfPanel renders the per-phase frame time breakdown.
type PerfPanel struct {
	renderer *Renderer
	x, y     int32
	width    int32
}

// NewPerfPanel creates a new performance panel.
func NewPerfPanel(x, y, width int32) *PerfPanel {
	return &PerfPanel{
		renderer: NewRenderer(),
		x:        x,
		y:        y,
		width:    width,
	}
}

// Draw renders the performance panel.
func (p *PerfPanel) Draw(stats telemetry.PerfStats) {
	r := p.renderer
	phases := telemetry.Phases()
	height := int32(len(phases)+2)*(r.Theme.LineHeight+2) + r.Theme.Padding*2

	r.DrawPanel(p.x, p.y, p.width, height)

	x := p.x + r.Theme.Padding
	y := p.y + r.Theme.Padding
	inner := p.width - r.Theme.Padding*2

	y = r.DrawSectionHeader(x, y, "Frame Performance")
	y = r.DrawLabelValue(x, y, "Frame", fmt.Sprintf("%s (%.0f fps)",
		stats.AvgFrameDuration.Round(time.Microsecond), stats.FPS))

	for _, phase := range phases {
		y = r.DrawBar(x, y, phase, float32(stats.PhasePct[phase]/100), 0.5, inner)
	}
}

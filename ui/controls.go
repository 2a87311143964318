package ui

import (
	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/swarm/effects"
)

// Slider bounds for the effect controls.
const (
	WaterFactorMax    = 10
	BloomStrengthMax  = 5
	BloomRadiusMax    = 2
	BloomThresholdMax = 1
	CountMax          = 50000
)

// ControlsPanel renders the right-side panel with live effect sliders.
type ControlsPanel struct {
	renderer *Renderer
	x, y     int32
	width    int32
	visible  bool

	// Pending particle count, applied when Rebuild is pressed
	count float32
}

// NewControlsPanel creates a new controls panel.
func NewControlsPanel(x, y, width int32, count int) *ControlsPanel {
	return &ControlsPanel{
		renderer: NewRenderer(),
		x:        x,
		y:        y,
		width:    width,
		count:    float32(count),
	}
}

// SetPosition updates the panel position.
func (c *ControlsPanel) SetPosition(x, y int32) {
	c.x = x
	c.y = y
}

// Toggle switches panel visibility.
func (c *ControlsPanel) Toggle() bool {
	c.visible = !c.visible
	return c.visible
}

// Contains reports whether a screen point falls on the visible panel.
func (c *ControlsPanel) Contains(px, py float32) bool {
	if !c.visible {
		return false
	}
	bounds := rl.Rectangle{X: float32(c.x), Y: float32(c.y), Width: float32(c.width), Height: float32(c.height())}
	return rl.CheckCollisionPointRec(rl.Vector2{X: px, Y: py}, bounds)
}

func (c *ControlsPanel) height() int32 {
	t := c.renderer.Theme
	slider := t.LineHeight + t.SliderHeight + 6
	return t.Padding*3 + t.LineHeight*3 + slider*5 + 30
}

// Draw renders the panel and writes slider changes into the chain's passes.
// It returns the particle count to rebuild with when the Rebuild button was
// pressed this frame, or -1 otherwise.
func (c *ControlsPanel) Draw(chain *effects.Chain) int {
	if !c.visible {
		return -1
	}

	r := c.renderer
	padding := r.Theme.Padding
	r.DrawPanel(c.x, c.y, c.width, c.height())

	x := c.x + padding
	y := c.y + padding
	inner := c.width - padding*2

	rl.DrawText("Effects", x, y, 16, rl.White)
	y += r.Theme.LineHeight + 4

	if water := chain.Water(); water != nil {
		y = r.DrawSectionHeader(x, y, "Water")
		var v float32
		v, y = r.DrawSlider(x, y, "Factor", "%.2f", float32(water.Factor), 0, WaterFactorMax, inner)
		water.Factor = float64(v)
	}

	if bloom := chain.Bloom(); bloom != nil {
		y = r.DrawSectionHeader(x, y, "Bloom")
		var v float32
		v, y = r.DrawSlider(x, y, "Strength", "%.2f", float32(bloom.Strength), 0, BloomStrengthMax, inner)
		bloom.Strength = float64(v)
		v, y = r.DrawSlider(x, y, "Radius", "%.2f", float32(bloom.Radius), 0, BloomRadiusMax, inner)
		bloom.Radius = float64(v)
		v, y = r.DrawSlider(x, y, "Threshold", "%.2f", float32(bloom.Threshold), 0, BloomThresholdMax, inner)
		bloom.Threshold = float64(v)
	}

	c.count, y = r.DrawSlider(x, y, "Particles", "%.0f", c.count, 0, CountMax, inner)

	if gui.Button(rl.Rectangle{X: float32(x), Y: float32(y), Width: 120, Height: 24}, "Rebuild") {
		return int(c.count)
	}
	return -1
}

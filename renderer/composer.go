package renderer

import (
	"log/slog"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/swarm/effects"
)

// Composer runs an effects chain through a pair of ping-pong render targets.
type Composer struct {
	targets [2]rl.RenderTexture2D
	current int // index of the target holding the latest image

	water *WaterStage
	bloom *BloomStage

	width, height int32
	clear         rl.Color
	initialized   bool
}

// NewComposer creates a composer for the given output size.
func NewComposer(width, height int32, clear rl.Color) *Composer {
	return &Composer{
		water:  NewWaterStage(width, height),
		bloom:  NewBloomStage(width, height),
		width:  width,
		height: height,
		clear:  clear,
	}
}

// Init allocates render targets and loads stage shaders
// (must be called after raylib window is created).
func (c *Composer) Init() {
	if c.initialized {
		return
	}
	c.targets[0] = rl.LoadRenderTexture(c.width, c.height)
	c.targets[1] = rl.LoadRenderTexture(c.width, c.height)
	c.water.Init()
	c.bloom.Init()
	c.initialized = true
}

// Resize reallocates render targets for a new output size.
func (c *Composer) Resize(width, height int32) {
	if width == c.width && height == c.height {
		return
	}
	c.width = width
	c.height = height
	c.water.Resize(width, height)
	c.bloom.Resize(width, height)

	if c.initialized {
		rl.UnloadRenderTexture(c.targets[0])
		rl.UnloadRenderTexture(c.targets[1])
		c.targets[0] = rl.LoadRenderTexture(width, height)
		c.targets[1] = rl.LoadRenderTexture(width, height)
	}
}

// Render draws the scene and every pass after it into the render targets.
// drawScene is called inside the render pass with the first target bound.
func (c *Composer) Render(chain *effects.Chain, drawScene func()) {
	if !c.initialized {
		c.Init()
	}

	c.current = 0
	for _, pass := range chain.Passes {
		switch p := pass.(type) {
		case effects.RenderPass:
			rl.BeginTextureMode(c.targets[c.current])
			rl.ClearBackground(c.clear)
			drawScene()
			rl.EndTextureMode()
		case *effects.WaterPass:
			c.step(func(src rl.Texture2D) { c.water.Apply(src, p) })
		case *effects.BloomPass:
			c.step(func(src rl.Texture2D) { c.bloom.Apply(src, p) })
		default:
			slog.Warn("unknown effect pass, skipping", "pass", pass.Name())
		}
	}
}

// step applies one stage from the current target into the other.
func (c *Composer) step(apply func(src rl.Texture2D)) {
	next := 1 - c.current
	rl.BeginTextureMode(c.targets[next])
	rl.ClearBackground(rl.Black)
	apply(c.targets[c.current].Texture)
	rl.EndTextureMode()
	c.current = next
}

// Draw blits the final image to the active framebuffer.
func (c *Composer) Draw() {
	if !c.initialized {
		return
	}
	drawFlipped(c.targets[c.current].Texture, float32(c.width), float32(c.height))
}

// Output returns the texture holding the latest composited image.
func (c *Composer) Output() rl.Texture2D {
	return c.targets[c.current].Texture
}

// Unload frees resources.
func (c *Composer) Unload() {
	if c.initialized {
		rl.UnloadRenderTexture(c.targets[0])
		rl.UnloadRenderTexture(c.targets[1])
		c.initialized = false
	}
	c.water.Unload()
	c.bloom.Unload()
}

// drawFlipped draws a render texture upright; render targets are stored bottom-up.
func drawFlipped(tex rl.Texture2D, width, height float32) {
	src := rl.Rectangle{X: 0, Y: 0, Width: width, Height: -height}
	rl.DrawTextureRec(tex, src, rl.Vector2{}, rl.White)
}

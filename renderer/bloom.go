package renderer

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/swarm/effects"
)

// BloomStage applies the bloom pass.
type BloomStage struct {
	shader        rl.Shader
	resolutionLoc int32
	strengthLoc   int32
	radiusLoc     int32
	thresholdLoc  int32
	width         float32
	height        float32
	initialized   bool
}

// NewBloomStage creates a new bloom stage.
func NewBloomStage(width, height int32) *BloomStage {
	return &BloomStage{
		width:  float32(width),
		height: float32(height),
	}
}

// Init initializes the stage (must be called after raylib window is created).
func (b *BloomStage) Init() {
	if b.initialized {
		return
	}

	b.shader = rl.LoadShader("", "shaders/bloom.fs")
	b.resolutionLoc = rl.GetShaderLocation(b.shader, "resolution")
	b.strengthLoc = rl.GetShaderLocation(b.shader, "strength")
	b.radiusLoc = rl.GetShaderLocation(b.shader, "radius")
	b.thresholdLoc = rl.GetShaderLocation(b.shader, "threshold")
	b.setResolution()

	b.initialized = true
}

func (b *BloomStage) setResolution() {
	rl.SetShaderValue(b.shader, b.resolutionLoc, []float32{b.width, b.height}, rl.ShaderUniformVec2)
}

// Resize updates the resolution uniform.
func (b *BloomStage) Resize(width, height int32) {
	b.width = float32(width)
	b.height = float32(height)
	if b.initialized {
		b.setResolution()
	}
}

// Apply draws src through the bloom shader into the active target.
func (b *BloomStage) Apply(src rl.Texture2D, pass *effects.BloomPass) {
	if !b.initialized {
		b.Init()
	}

	rl.SetShaderValue(b.shader, b.strengthLoc, []float32{float32(pass.Strength)}, rl.ShaderUniformFloat)
	rl.SetShaderValue(b.shader, b.radiusLoc, []float32{float32(pass.Radius)}, rl.ShaderUniformFloat)
	rl.SetShaderValue(b.shader, b.thresholdLoc, []float32{float32(pass.Threshold)}, rl.ShaderUniformFloat)

	rl.BeginShaderMode(b.shader)
	drawFlipped(src, b.width, b.height)
	rl.EndShaderMode()
}

// Unload frees resources.
func (b *BloomStage) Unload() {
	if b.initialized {
		rl.UnloadShader(b.shader)
		b.initialized = false
	}
}

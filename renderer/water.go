package renderer

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/swarm/effects"
)

// WaterStage applies the water distortion pass.
type WaterStage struct {
	shader        rl.Shader
	timeLoc       int32
	factorLoc     int32
	resolutionLoc int32
	width         float32
	height        float32
	initialized   bool
}

// NewWaterStage creates a new water stage.
func NewWaterStage(width, height int32) *WaterStage {
	return &WaterStage{
		width:  float32(width),
		height: float32(height),
	}
}

// Init initializes the stage (must be called after raylib window is created).
func (w *WaterStage) Init() {
	if w.initialized {
		return
	}

	w.shader = rl.LoadShader("", "shaders/water.fs")
	w.timeLoc = rl.GetShaderLocation(w.shader, "time")
	w.factorLoc = rl.GetShaderLocation(w.shader, "factor")
	w.resolutionLoc = rl.GetShaderLocation(w.shader, "resolution")
	w.setResolution()

	w.initialized = true
}

func (w *WaterStage) setResolution() {
	resolution := []float32{w.width, w.height}
	rl.SetShaderValue(w.shader, w.resolutionLoc, resolution, rl.ShaderUniformVec2)
}

// Resize updates the resolution uniform.
func (w *WaterStage) Resize(width, height int32) {
	w.width = float32(width)
	w.height = float32(height)
	if w.initialized {
		w.setResolution()
	}
}

// Apply draws src through the water shader into the active target.
func (w *WaterStage) Apply(src rl.Texture2D, pass *effects.WaterPass) {
	if !w.initialized {
		w.Init()
	}

	rl.SetShaderValue(w.shader, w.timeLoc, []float32{float32(pass.Time)}, rl.ShaderUniformFloat)
	rl.SetShaderValue(w.shader, w.factorLoc, []float32{float32(pass.Factor)}, rl.ShaderUniformFloat)

	rl.BeginShaderMode(w.shader)
	drawFlipped(src, w.width, w.height)
	rl.EndShaderMode()
}

// Unload frees resources.
func (w *WaterStage) Unload() {
	if w.initialized {
		rl.UnloadShader(w.shader)
		w.initialized = false
	}
}

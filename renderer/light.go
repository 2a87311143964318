package renderer

import (
	"math"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/swarm/scene"
)

// MaxLights must match MAX_LIGHTS in shaders/swarm.fs.
const MaxLights = 4

// spotAngle is the outer cone half-angle for spot lights.
const spotAngle = math.Pi / 3

// LightUniforms uploads scene lights to the swarm shader.
type LightUniforms struct {
	countLoc    int32
	positionLoc int32
	colorLoc    int32
	distanceLoc int32
	spotLoc     int32

	// Staging buffers, reused every frame
	positions []float32
	colors    []float32
	distances []float32
	spots     []float32
}

// NewLightUniforms looks up light uniform locations on shader.
func NewLightUniforms(shader rl.Shader) *LightUniforms {
	return &LightUniforms{
		countLoc:    rl.GetShaderLocation(shader, "lightCount"),
		positionLoc: rl.GetShaderLocation(shader, "lightPosition"),
		colorLoc:    rl.GetShaderLocation(shader, "lightColor"),
		distanceLoc: rl.GetShaderLocation(shader, "lightDistance"),
		spotLoc:     rl.GetShaderLocation(shader, "lightSpot"),
		positions:   make([]float32, MaxLights*3),
		colors:      make([]float32, MaxLights*3),
		distances:   make([]float32, MaxLights),
		spots:       make([]float32, MaxLights*3),
	}
}

// Upload writes up to MaxLights lights into the shader.
func (u *LightUniforms) Upload(shader rl.Shader, lights []scene.Light) {
	n := len(lights)
	if n > MaxLights {
		n = MaxLights
	}

	for i := 0; i < n; i++ {
		l := lights[i]
		u.positions[i*3] = float32(l.Position.X)
		u.positions[i*3+1] = float32(l.Position.Y)
		u.positions[i*3+2] = float32(l.Position.Z)

		k := float32(l.Intensity) / 255
		u.colors[i*3] = float32(l.Color[0]) * k
		u.colors[i*3+1] = float32(l.Color[1]) * k
		u.colors[i*3+2] = float32(l.Color[2]) * k

		u.distances[i] = float32(l.Distance)

		if l.Spot {
			u.spots[i*3] = 1
			u.spots[i*3+1] = float32(math.Cos(spotAngle))
			u.spots[i*3+2] = float32(math.Cos(spotAngle * (1 - l.Penumbra)))
		} else {
			u.spots[i*3] = 0
		}
	}

	rl.SetShaderValue(shader, u.countLoc, []float32{float32(n)}, rl.ShaderUniformFloat)
	if n == 0 {
		return
	}
	rl.SetShaderValueV(shader, u.positionLoc, u.positions, rl.ShaderUniformVec3, int32(n))
	rl.SetShaderValueV(shader, u.colorLoc, u.colors, rl.ShaderUniformVec3, int32(n))
	rl.SetShaderValueV(shader, u.distanceLoc, u.distances, rl.ShaderUniformFloat, int32(n))
	rl.SetShaderValueV(shader, u.spotLoc, u.spots, rl.ShaderUniformVec3, int32(n))
}

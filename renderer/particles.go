package renderer

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/swarm/scene"
	"github.com/pthm-cable/swarm/swarm"
)

// SwarmRenderer draws the swarm as one instanced low-poly mesh.
type SwarmRenderer struct {
	mesh     rl.Mesh
	material rl.Material
	shader   rl.Shader
	lights   *LightUniforms
	viewLoc  int32

	radius float32
	color  rl.Color

	// Instance matrices, rebuilt in place by Upload
	matrices []rl.Matrix

	initialized bool
}

// NewSwarmRenderer creates a new swarm renderer.
func NewSwarmRenderer(radius float32, color rl.Color) *SwarmRenderer {
	return &SwarmRenderer{
		radius: radius,
		color:  color,
	}
}

// Init initializes the renderer (must be called after raylib window is created).
func (r *SwarmRenderer) Init() {
	if r.initialized {
		return
	}

	// Low tessellation keeps the faceted, gem-like look
	r.mesh = rl.GenMeshSphere(r.radius, 4, 6)

	r.shader = rl.LoadShader("shaders/swarm.vs", "shaders/swarm.fs")
	r.shader.UpdateLocation(rl.ShaderLocMatrixMvp, rl.GetShaderLocation(r.shader, "mvp"))
	r.shader.UpdateLocation(rl.ShaderLocMatrixModel, rl.GetShaderLocationAttrib(r.shader, "instanceTransform"))
	r.viewLoc = rl.GetShaderLocation(r.shader, "viewPos")
	r.lights = NewLightUniforms(r.shader)

	r.material = rl.LoadMaterialDefault()
	r.material.Shader = r.shader
	r.material.GetMap(rl.MapDiffuse).Color = r.color

	r.initialized = true
}

// Upload converts this frame's transforms into instance matrices.
func (r *SwarmRenderer) Upload(transforms []swarm.Transform) {
	r.matrices = Matrices(transforms, r.matrices)
}

// Draw renders the uploaded instances. Must be called inside BeginMode3D.
func (r *SwarmRenderer) Draw(cam rl.Camera3D, lights []scene.Light) {
	if !r.initialized {
		r.Init()
	}
	if len(r.matrices) == 0 {
		return
	}

	view := []float32{cam.Position.X, cam.Position.Y, cam.Position.Z}
	rl.SetShaderValue(r.shader, r.viewLoc, view, rl.ShaderUniformVec3)
	r.lights.Upload(r.shader, lights)

	rl.DrawMeshInstanced(r.mesh, r.material, r.matrices, len(r.matrices))
}

// Unload frees resources.
func (r *SwarmRenderer) Unload() {
	if r.initialized {
		rl.UnloadShader(r.shader)
		rl.UnloadMesh(&r.mesh)
		r.initialized = false
	}
}

// Matrices converts each transform's model matrix into dst, reusing its
// backing array when large enough. Both layouts are column-major, so element
// i of the swarm matrix lands in field Mi.
func Matrices(transforms []swarm.Transform, dst []rl.Matrix) []rl.Matrix {
	n := len(transforms)
	if cap(dst) < n {
		dst = make([]rl.Matrix, n)
	}
	dst = dst[:n]

	for i, tr := range transforms {
		m := tr.Matrix()
		dst[i] = rl.Matrix{
			M0: float32(m[0]), M4: float32(m[4]), M8: float32(m[8]), M12: float32(m[12]),
			M1: float32(m[1]), M5: float32(m[5]), M9: float32(m[9]), M13: float32(m[13]),
			M2: float32(m[2]), M6: float32(m[6]), M10: float32(m[10]), M14: float32(m[14]),
			M3: float32(m[3]), M7: float32(m[7]), M11: float32(m[11]), M15: float32(m[15]),
		}
	}
	return dst
}

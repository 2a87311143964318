// Package scene holds the lights and camera of the swarm scene as ECS entities.
package scene

import (
	"github.com/mlange-42/ark/ecs"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/pthm-cable/swarm/camera"
	"github.com/pthm-cable/swarm/config"
	"github.com/pthm-cable/swarm/swarm"
)

// Position is an entity's world position.
type Position struct {
	X, Y, Z float64
}

// PointLight is an omnidirectional light.
type PointLight struct {
	Color     [3]uint8
	Intensity float64
	Distance  float64 // 0 = unbounded
}

// SpotLight marks a point light as a spot aimed at the origin.
type SpotLight struct {
	Penumbra float64
}

// FollowPointer moves the entity to the pointer projection every frame.
type FollowPointer struct{}

// DollyCamera drives the entity's z from elapsed time.
type DollyCamera struct {
	Dolly camera.Dolly
	FOV   float64 // vertical, degrees

	// ViewDistance sizes the pointer viewport. It stays at the start
	// distance while the dolly moves.
	ViewDistance float64
}

// Light is a flattened light for the renderer.
type Light struct {
	Position  r3.Vec
	Color     [3]uint8
	Intensity float64
	Distance  float64
	Spot      bool
	Penumbra  float64
	Follows   bool
}

// Scene owns the ECS world holding lights and the camera.
type Scene struct {
	world *ecs.World

	lightMapper   *ecs.Map2[Position, PointLight]
	spotMapper    *ecs.Map3[Position, PointLight, SpotLight]
	pointerMapper *ecs.Map3[Position, PointLight, FollowPointer]
	cameraMapper  *ecs.Map2[Position, DollyCamera]

	lightFilter   *ecs.Filter2[Position, PointLight]
	pointerFilter *ecs.Filter2[Position, FollowPointer]
	cameraFilter  *ecs.Filter2[Position, DollyCamera]

	spotMap    *ecs.Map[SpotLight]
	pointerMap *ecs.Map[FollowPointer]

	camera ecs.Entity

	// Reused by Lights
	lights []Light
}

// New builds the scene entities from config.
func New(cfg *config.Config) *Scene {
	world := ecs.NewWorld()

	s := &Scene{
		world:         world,
		lightMapper:   ecs.NewMap2[Position, PointLight](world),
		spotMapper:    ecs.NewMap3[Position, PointLight, SpotLight](world),
		pointerMapper: ecs.NewMap3[Position, PointLight, FollowPointer](world),
		cameraMapper:  ecs.NewMap2[Position, DollyCamera](world),
		lightFilter:   ecs.NewFilter2[Position, PointLight](world),
		pointerFilter: ecs.NewFilter2[Position, FollowPointer](world),
		cameraFilter:  ecs.NewFilter2[Position, DollyCamera](world),
		spotMap:       ecs.NewMap[SpotLight](world),
		pointerMap:    ecs.NewMap[FollowPointer](world),
	}

	amb := cfg.Lights.Ambient
	s.lightMapper.NewEntity(positionOf(amb.Position), pointLightOf(amb))

	spot := cfg.Lights.Spot
	s.spotMapper.NewEntity(positionOf(spot.Position), pointLightOf(spot), &SpotLight{Penumbra: spot.Penumbra})

	ptr := cfg.Lights.Pointer
	s.pointerMapper.NewEntity(positionOf(ptr.Position), pointLightOf(ptr), &FollowPointer{})

	s.camera = s.cameraMapper.NewEntity(
		&Position{Z: cfg.Camera.StartZ},
		&DollyCamera{
			Dolly:        camera.Dolly{Base: cfg.Camera.DollyBase, Amplitude: cfg.Camera.DollyAmplitude},
			FOV:          cfg.Camera.FOV,
			ViewDistance: cfg.Camera.StartZ,
		},
	)

	return s
}

func positionOf(p [3]float64) *Position {
	return &Position{X: p[0], Y: p[1], Z: p[2]}
}

func pointLightOf(l config.LightConfig) *PointLight {
	return &PointLight{Color: l.Color, Intensity: l.Intensity, Distance: l.Distance}
}

// Update moves pointer-following lights and dollies the camera.
func (s *Scene) Update(in swarm.Input, elapsed float64) {
	lp := swarm.LightPosition(in)
	query := s.pointerFilter.Query()
	for query.Next() {
		pos, _ := query.Get()
		pos.X, pos.Y, pos.Z = lp.X, lp.Y, lp.Z
	}

	camQuery := s.cameraFilter.Query()
	for camQuery.Next() {
		pos, cam := camQuery.Get()
		pos.Z = cam.Dolly.Z(elapsed)
	}
}

// CameraZ returns the current camera distance along z.
func (s *Scene) CameraZ() float64 {
	pos, _ := s.cameraMapper.Get(s.camera)
	return pos.Z
}

// CameraFOV returns the camera's vertical field of view in degrees.
func (s *Scene) CameraFOV() float64 {
	_, cam := s.cameraMapper.Get(s.camera)
	return cam.FOV
}

// Viewport returns the visible world size at the camera target for the
// given aspect, measured from the start distance rather than the dolly.
func (s *Scene) Viewport(aspect float64) (w, h float64) {
	_, cam := s.cameraMapper.Get(s.camera)
	return camera.Viewport(cam.FOV, aspect, cam.ViewDistance)
}

// Lights returns a snapshot of every light. The slice is reused across calls.
func (s *Scene) Lights() []Light {
	s.lights = s.lights[:0]
	query := s.lightFilter.Query()
	for query.Next() {
		e := query.Entity()
		pos, pl := query.Get()
		l := Light{
			Position:  r3.Vec{X: pos.X, Y: pos.Y, Z: pos.Z},
			Color:     pl.Color,
			Intensity: pl.Intensity,
			Distance:  pl.Distance,
			Follows:   s.pointerMap.Has(e),
		}
		if s.spotMap.Has(e) {
			l.Spot = true
			l.Penumbra = s.spotMap.Get(e).Penumbra
		}
		s.lights = append(s.lights, l)
	}
	return s.lights
}

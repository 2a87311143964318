// Package camera provides the camera dolly and viewport math for the 3D scene.
package camera

import "math"

// Dolly oscillates the camera distance along z with elapsed time.
type Dolly struct {
	Base      float64 // resting distance
	Amplitude float64 // peak offset from Base
}

// DefaultDolly returns the dolly used by the scene: 50 ± 30.
func DefaultDolly() Dolly {
	return Dolly{Base: 50, Amplitude: 30}
}

// Z returns the camera z position for the given elapsed seconds.
func (d Dolly) Z(elapsed float64) float64 {
	return d.Base + math.Sin(elapsed)*d.Amplitude
}

// CameraZ is the default dolly evaluated at elapsed seconds.
func CameraZ(elapsed float64) float64 {
	return DefaultDolly().Z(elapsed)
}

// Viewport returns the visible world width and height on a plane at the given
// distance from a perspective camera with vertical field of view fovDeg.
func Viewport(fovDeg, aspect, distance float64) (w, h float64) {
	fov := fovDeg * math.Pi / 180
	h = 2 * math.Tan(fov/2) * math.Abs(distance)
	w = h * aspect
	return w, h
}

// NormalizePointer converts a screen pixel position into [-1, 1] on both axes,
// with +y pointing up. Positions outside the window map outside the range.
func NormalizePointer(px, py, screenW, screenH float64) (x, y float64) {
	if screenW <= 0 || screenH <= 0 {
		return 0, 0
	}
	x = (px/screenW)*2 - 1
	y = -(py/screenH)*2 + 1
	return x, y
}

// Aspect returns width/height, or 1 for a degenerate window.
func Aspect(screenW, screenH float64) float64 {
	if screenH <= 0 {
		return 1
	}
	return screenW / screenH
}

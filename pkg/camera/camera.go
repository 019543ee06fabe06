// Package camera is an orbit camera around the centre of the world: the view is
// rotated by mouse drags, pushed back by the zoom distance and projected with a
// perspective matrix.
package camera

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/lao-tseu-is-alive/go-boids3d/pkg/geometry"
)

const (
	FOV  = 45.0 // vertical, degrees
	Near = 0.1
	Far  = 100.0

	InitialRotX     = 30.0 // pitch, degrees
	InitialRotY     = 30.0 // yaw, degrees
	DragSensitivity = 0.5  // degrees per pixel

	// zoom is a distance, limits are in world sizes
	ZoomStep  = 1.0
	ZoomStart = 2.0
	ZoomMin   = 1.0
	ZoomMax   = 4.0
)

// Orbit holds the camera state. Angles are in degrees.
type Orbit struct {
	Width, Height int
	WorldSize     float64

	RotX, RotY float64
	Zoom       float64
}

func NewOrbit(width, height int, worldSize float64) *Orbit {
	o := &Orbit{Width: width, Height: height, WorldSize: worldSize}
	o.Reset()
	return o
}

// Reset goes back to the initial view.
func (o *Orbit) Reset() {
	o.RotX, o.RotY = InitialRotX, InitialRotY
	o.Zoom = ZoomStart * o.WorldSize
}

// Drag rotates by a mouse move of (dx, dy) pixels: horizontal moves yaw, vertical
// moves pitch.
func (o *Orbit) Drag(dx, dy float64) {
	o.RotY += dx * DragSensitivity
	o.RotX += dy * DragSensitivity
}

// Scroll zooms in for positive notches and out for negative ones.
func (o *Orbit) Scroll(notches float64) {
	o.Zoom -= notches * ZoomStep
	o.Zoom = math.Max(o.Zoom, ZoomMin*o.WorldSize)
	o.Zoom = math.Min(o.Zoom, ZoomMax*o.WorldSize)
}

// ViewProjection is P · T(0, 0, -zoom) · Rx · Ry.
func (o *Orbit) ViewProjection() mgl64.Mat4 {
	aspect := float64(o.Width) / float64(max(o.Height, 1))
	// push the far plane back so the whole cube stays visible at every zoom
	far := math.Max(Far, o.Zoom+o.WorldSize)
	proj := mgl64.Perspective(mgl64.DegToRad(FOV), aspect, Near, far)
	view := mgl64.Translate3D(0, 0, -o.Zoom).
		Mul4(mgl64.HomogRotate3DX(mgl64.DegToRad(o.RotX))).
		Mul4(mgl64.HomogRotate3DY(mgl64.DegToRad(o.RotY)))
	return proj.Mul4(view)
}

// Projector maps world points to the screen with a fixed matrix, so a frame
// computes it once.
type Projector struct {
	m             mgl64.Mat4
	width, height float64
}

func (o *Orbit) Projector() Projector {
	return Projector{m: o.ViewProjection(), width: float64(o.Width), height: float64(o.Height)}
}

// Project returns the pixel position of p (y down), its distance along the view
// axis, and whether it lies inside the view frustum depth range.
func (pr Projector) Project(p geometry.Vector3D) (geometry.Vector2D, float64, bool) {
	clip := pr.m.Mul4x1(mgl64.Vec4{p.X, p.Y, p.Z, 1})
	w := clip.W()
	if w <= 0 {
		return geometry.Vector2D{}, w, false
	}
	ndc := clip.Vec3().Mul(1 / w)
	screen := geometry.Vector2D{
		X: (ndc.X() + 1) / 2 * pr.width,
		Y: (1 - ndc.Y()) / 2 * pr.height,
	}
	return screen, w, ndc.Z() >= -1 && ndc.Z() <= 1
}

// Project is a one-off Projector().Project.
func (o *Orbit) Project(p geometry.Vector3D) (geometry.Vector2D, float64, bool) {
	return o.Projector().Project(p)
}

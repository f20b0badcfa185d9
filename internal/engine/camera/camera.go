// Package camera provides the orbit camera used by the door viewers.
package camera

import (
	"github.com/chewxy/math32"

	"github.com/Faultbox/doorsmith/pkg/math"
	"github.com/Faultbox/doorsmith/pkg/mesh"
)

// OrbitCamera orbits around a center point.
type OrbitCamera struct {
	Center math.Vec3

	// Spherical coordinates
	Distance  float32
	RotationX float32 // pitch, radians
	RotationY float32 // yaw, radians

	MinDistance float32
	MaxDistance float32
	MinPitch    float32
	MaxPitch    float32

	DragSensitivity float32
	ZoomSensitivity float32
}

// NewOrbitCamera creates an orbit camera framing a default-sized door.
func NewOrbitCamera() *OrbitCamera {
	return &OrbitCamera{
		Distance:        350.0,
		RotationX:       0.25,
		RotationY:       0.5,
		MinDistance:     20.0,
		MaxDistance:     5000.0,
		MinPitch:        -1.4,
		MaxPitch:        1.4,
		DragSensitivity: 0.005,
		ZoomSensitivity: 0.1,
	}
}

// Position returns the camera position in world space.
func (c *OrbitCamera) Position() math.Vec3 {
	sx, cx := math32.Sincos(c.RotationX)
	sy, cy := math32.Sincos(c.RotationY)
	return c.Center.Add(math.Vec3{
		X: c.Distance * cx * sy,
		Y: c.Distance * sx,
		Z: c.Distance * cx * cy,
	})
}

// ViewMatrix returns the view matrix for this camera.
func (c *OrbitCamera) ViewMatrix() math.Mat4 {
	return math.LookAt(c.Position(), c.Center, math.Vec3{Y: 1})
}

// ProjectionMatrix returns a 45 degree perspective projection whose far plane
// keeps the whole orbit range visible.
func (c *OrbitCamera) ProjectionMatrix(aspect float32) math.Mat4 {
	if aspect <= 0 {
		aspect = 1
	}
	return math.Perspective(math32.Pi/4, aspect, 1.0, c.MaxDistance*4)
}

// HandleDrag updates rotation based on mouse drag delta.
func (c *OrbitCamera) HandleDrag(deltaX, deltaY float32) {
	c.RotationY -= deltaX * c.DragSensitivity
	c.RotationX += deltaY * c.DragSensitivity
	c.RotationX = clamp(c.RotationX, c.MinPitch, c.MaxPitch)
}

// HandleZoom updates distance based on scroll wheel delta.
func (c *OrbitCamera) HandleZoom(delta float32) {
	c.Distance -= delta * c.Distance * c.ZoomSensitivity
	c.Distance = clamp(c.Distance, c.MinDistance, c.MaxDistance)
}

// HandleMovement pans the center point relative to the current yaw.
func (c *OrbitCamera) HandleMovement(forward, right, up float32) {
	speed := c.Distance * 0.01
	sy, cy := math32.Sincos(c.RotationY)

	c.Center.X += (-sy*forward + cy*right) * speed
	c.Center.Z += (-cy*forward - sy*right) * speed
	c.Center.Y += up * speed
}

// FitToBounds centers the camera on b and backs off far enough to see its
// largest extent. Empty bounds leave the camera unchanged.
func (c *OrbitCamera) FitToBounds(b mesh.Bounds) {
	if b.Empty() {
		return
	}
	c.Center = b.Center()

	size := b.Size()
	extent := math32.Max(size.X, math32.Max(size.Y, size.Z))
	// Distance at which extent fills the 45 degree field of view.
	c.Distance = clamp(extent/(2*math32.Tan(math32.Pi/8))*1.2, c.MinDistance, c.MaxDistance)
	c.RotationX = 0.25
	c.RotationY = 0.5
}

func clamp(v, lo, hi float32) float32 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

package render

import (
	"math"

	"github.com/lumen3d/lumen/pkg/math3d"
)

// Camera is a pinhole camera with Euler orientation and cached matrices.
type Camera struct {
	Position math3d.Vec3

	// Orientation (Euler angles in radians)
	Pitch float64
	Yaw   float64

	// Projection parameters
	FOV         float64 // Vertical field of view in radians
	AspectRatio float64
	Near        float64
	Far         float64

	// Cached matrices (computed on demand)
	viewMatrix     math3d.Mat4
	projMatrix     math3d.Mat4
	viewProjMatrix math3d.Mat4
	viewDirty      bool
	projDirty      bool
}

// NewCamera creates a camera a few units back, looking at the origin.
func NewCamera() *Camera {
	return &Camera{
		Position:    math3d.V3(0, 0, 4),
		FOV:         math.Pi / 3,
		AspectRatio: 16.0 / 9.0,
		Near:        0.1,
		Far:         100,
		viewDirty:   true,
		projDirty:   true,
	}
}

// SetPosition sets the camera position.
func (c *Camera) SetPosition(pos math3d.Vec3) {
	c.Position = pos
	c.viewDirty = true
}

// SetFOV sets the field of view (in radians).
func (c *Camera) SetFOV(fov float64) {
	c.FOV = fov
	c.projDirty = true
}

// SetAspectRatio sets the aspect ratio.
func (c *Camera) SetAspectRatio(aspect float64) {
	c.AspectRatio = aspect
	c.projDirty = true
}

// SetClipPlanes sets the near and far clipping planes.
func (c *Camera) SetClipPlanes(near, far float64) {
	c.Near = near
	c.Far = far
	c.projDirty = true
}

// LookAt orients the camera toward a target point.
func (c *Camera) LookAt(target math3d.Vec3) {
	dir := target.Sub(c.Position).Normalize()

	c.Pitch = math.Asin(dir.Y)
	c.Yaw = math.Atan2(-dir.X, -dir.Z)

	c.viewDirty = true
}

// Orbit places the camera on a sphere around target and points it back at
// the target. Used by the interactive viewer's spring driven orbiting.
func (c *Camera) Orbit(target math3d.Vec3, distance, yaw, pitch float64) {
	// Clamp pitch to avoid gimbal lock at the poles
	const maxPitch = math.Pi/2 - 0.01
	pitch = math3d.Clamp(pitch, -maxPitch, maxPitch)

	offset := math3d.V3(
		math.Sin(yaw)*math.Cos(pitch),
		math.Sin(pitch),
		math.Cos(yaw)*math.Cos(pitch),
	).Scale(distance)

	c.Position = target.Add(offset)
	c.viewDirty = true
	c.LookAt(target)
}

// ViewMatrix returns the view matrix.
func (c *Camera) ViewMatrix() math3d.Mat4 {
	if c.viewDirty {
		c.computeViewMatrix()
		c.viewDirty = false
	}
	return c.viewMatrix
}

// ProjectionMatrix returns the projection matrix.
func (c *Camera) ProjectionMatrix() math3d.Mat4 {
	if c.projDirty {
		c.projMatrix = math3d.Perspective(c.FOV, c.AspectRatio, c.Near, c.Far)
		c.projDirty = false
	}
	return c.projMatrix
}

// ViewProjectionMatrix returns the combined view-projection matrix.
func (c *Camera) ViewProjectionMatrix() math3d.Mat4 {
	if c.viewDirty || c.projDirty {
		_ = c.ViewMatrix()
		_ = c.ProjectionMatrix()
		c.viewProjMatrix = c.projMatrix.Mul(c.viewMatrix)
	}
	return c.viewProjMatrix
}

func (c *Camera) computeViewMatrix() {
	// View = Rotation * Translation(-position)
	rot := math3d.RotateX(-c.Pitch).Mul(math3d.RotateY(-c.Yaw))
	trans := math3d.Translate(c.Position.Negate())
	c.viewMatrix = rot.Mul(trans)
}

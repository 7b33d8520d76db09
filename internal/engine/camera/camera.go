// Package camera provides a free-flying look-at camera.
package camera

import (
	gomath "math"

	"github.com/Faultbox/mage/pkg/math"
)

// Movement is a direction relative to the camera.
type Movement int

const (
	Forward Movement = iota
	Backward
	Left
	Right
	Up
	Down
)

// Default camera settings.
const (
	DefaultSpeed       = 2.5
	DefaultSensitivity = 0.1
	DefaultZoom        = 45.0 // degrees of vertical field of view

	minZoom  = 1.0
	maxPitch = 89.0
)

var worldUp = math.Vec3{Y: 1}

// FlyCamera moves freely and looks along a yaw/pitch direction.
// Angles are in degrees; yaw -90 looks down -Z.
type FlyCamera struct {
	position math.Vec3
	front    math.Vec3
	up       math.Vec3
	right    math.Vec3

	yaw   float32
	pitch float32

	Speed       float32
	Sensitivity float32
	zoom        float32
}

// New creates a camera at position facing focus.
func New(position, focus math.Vec3) *FlyCamera {
	c := &FlyCamera{
		position:    position,
		yaw:         -90,
		Speed:       DefaultSpeed,
		Sensitivity: DefaultSensitivity,
		zoom:        DefaultZoom,
	}
	c.updateVectors()
	c.TurnTo(focus)
	return c
}

// NewDefault creates a camera at (0, 0, 3) facing the origin.
func NewDefault() *FlyCamera {
	return New(math.Vec3{Z: 3}, math.Vec3{})
}

// Position returns the camera position.
func (c *FlyCamera) Position() math.Vec3 { return c.position }

// Front returns the unit view direction.
func (c *FlyCamera) Front() math.Vec3 { return c.front }

// Right returns the unit right vector.
func (c *FlyCamera) Right() math.Vec3 { return c.right }

// Zoom returns the vertical field of view in degrees.
func (c *FlyCamera) Zoom() float32 { return c.zoom }

// ViewMatrix returns the view matrix for this camera.
func (c *FlyCamera) ViewMatrix() math.Mat4 {
	return math.LookAt(c.position, c.position.Add(c.front), c.up)
}

// ProjectionMatrix returns a perspective projection using the current zoom.
func (c *FlyCamera) ProjectionMatrix(aspect, near, far float32) math.Mat4 {
	return math.Perspective(math.Radians(c.zoom), aspect, near, far)
}

// Move translates the camera. Forward and backward stay on the XZ plane;
// up and down follow the world up axis regardless of pitch.
func (c *FlyCamera) Move(dir Movement, dt float32) {
	velocity := c.Speed * dt
	flat := math.Vec3{X: c.front.X, Z: c.front.Z}.Normalize()

	switch dir {
	case Forward:
		c.position = c.position.Add(flat.Scale(velocity))
	case Backward:
		c.position = c.position.Sub(flat.Scale(velocity))
	case Left:
		c.position = c.position.Sub(c.right.Scale(velocity))
	case Right:
		c.position = c.position.Add(c.right.Scale(velocity))
	case Up:
		c.position = c.position.Add(worldUp.Scale(velocity))
	case Down:
		c.position = c.position.Sub(worldUp.Scale(velocity))
	}
}

// TurnTo points the camera at point. Looking at its own position is a no-op.
// Looking straight up or down keeps the current yaw and clamps the pitch.
func (c *FlyCamera) TurnTo(point math.Vec3) {
	d := point.Sub(c.position)
	horizontal := float32(gomath.Hypot(float64(d.X), float64(d.Z)))
	if horizontal == 0 && d.Y == 0 {
		return
	}

	if horizontal != 0 {
		c.yaw = math.Degrees(float32(gomath.Atan2(float64(d.Z), float64(d.X))))
	}
	c.pitch = clamp(math.Degrees(float32(gomath.Atan2(float64(d.Y), float64(horizontal)))), -maxPitch, maxPitch)
	c.updateVectors()
}

// Rotate applies a mouse offset. With constrainPitch the pitch stays
// within ±89 degrees so the view never flips.
func (c *FlyCamera) Rotate(xoffset, yoffset float32, constrainPitch bool) {
	c.yaw += xoffset * c.Sensitivity
	c.pitch += yoffset * c.Sensitivity
	if constrainPitch {
		c.pitch = clamp(c.pitch, -maxPitch, maxPitch)
	}
	c.updateVectors()
}

// ChangeZoom narrows (positive) or widens (negative) the field of view.
func (c *FlyCamera) ChangeZoom(yoffset float32) {
	c.zoom = clamp(c.zoom-yoffset, minZoom, DefaultZoom)
}

func (c *FlyCamera) updateVectors() {
	yaw := float64(math.Radians(c.yaw))
	pitch := float64(math.Radians(c.pitch))

	c.front = math.Vec3{
		X: float32(gomath.Cos(yaw) * gomath.Cos(pitch)),
		Y: float32(gomath.Sin(pitch)),
		Z: float32(gomath.Sin(yaw) * gomath.Cos(pitch)),
	}.Normalize()
	c.right = c.front.Cross(worldUp).Normalize()
	c.up = c.right.Cross(c.front).Normalize()
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

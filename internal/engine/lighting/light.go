// Package lighting provides light sources for lit shader programs.
package lighting

import (
	gomath "math"

	"github.com/Faultbox/mage/pkg/math"
)

// Uniform names read by the Blinn-Phong fragment shader.
const (
	PositionUniform = "lightPos"
	ColorUniform    = "lightColor"
)

// Vec3Setter is the subset of a shader program a light uploads through.
type Vec3Setter interface {
	SetVec3(name string, v math.Vec3)
}

// PointLight is a single light at a world position.
type PointLight struct {
	Position math.Vec3
	Color    math.Vec3 // RGB, 0-1 range
}

// White returns a white light at position.
func White(position math.Vec3) PointLight {
	return PointLight{Position: position, Color: math.Vec3{X: 1, Y: 1, Z: 1}}
}

// Apply uploads the light to program.
func (l PointLight) Apply(program Vec3Setter) {
	program.SetVec3(PositionUniform, l.Position)
	program.SetVec3(ColorUniform, l.Color)
}

// Orbit returns the position on a horizontal circle of radius around center
// at the given height, angle degrees counter-clockwise from +X.
func Orbit(center math.Vec3, radius, height, angle float32) math.Vec3 {
	rad := float64(math.Radians(angle))
	return math.Vec3{
		X: center.X + radius*float32(gomath.Cos(rad)),
		Y: center.Y + height,
		Z: center.Z - radius*float32(gomath.Sin(rad)),
	}
}

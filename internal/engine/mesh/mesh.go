// Package mesh provides drawable geometry with a model transform.
package mesh

import (
	"github.com/Faultbox/mage/internal/engine/shader"
	"github.com/Faultbox/mage/pkg/math"
)

// Mesh is geometry that can upload itself and draw with a lit program.
type Mesh interface {
	// DefineVAOPointers configures vertex attributes on the bound VAO and
	// returns how many attributes it enabled.
	DefineVAOPointers() uint32
	// BufferData uploads vertex data to the GPU.
	BufferData()
	Draw(projection, view math.Mat4, program *shader.BlinnPhong) error
}

// Transform is a model matrix built by successive local operations,
// each applied after the ones before it (model = model * op).
type Transform struct {
	model math.Mat4
}

// NewTransform returns an identity transform.
func NewTransform() Transform {
	return Transform{model: math.Identity()}
}

// Matrix returns the current model matrix.
func (t *Transform) Matrix() math.Mat4 {
	return t.model
}

// Reset restores the identity transform.
func (t *Transform) Reset() {
	t.model = math.Identity()
}

func (t *Transform) Move(offset math.Vec3) {
	t.model = t.model.Mul(math.Translate(offset.X, offset.Y, offset.Z))
}

func (t *Transform) Scale(factors math.Vec3) {
	t.model = t.model.Mul(math.Scale(factors.X, factors.Y, factors.Z))
}

func (t *Transform) RotateX(radians float32) {
	t.model = t.model.Mul(math.RotateX(radians))
}

func (t *Transform) RotateY(radians float32) {
	t.model = t.model.Mul(math.RotateY(radians))
}

func (t *Transform) RotateZ(radians float32) {
	t.model = t.model.Mul(math.RotateZ(radians))
}

// Rotate rotates about an arbitrary axis.
func (t *Transform) Rotate(axis math.Vec3, radians float32) {
	t.model = t.model.Mul(math.RotateAround(axis, radians))
}

package shader

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/Faultbox/mage/internal/logger"
	"github.com/Faultbox/mage/pkg/math"
)

// location returns the cached uniform location for name.
// ok is false when the program is unusable or the uniform does not exist;
// in both cases the caller drops the write.
func (p *Program) location(name string) (int32, bool) {
	if !p.valid || p.closed {
		logger.Debug("uniform write on unusable program dropped",
			zap.String("uniform", name),
			zap.String("error", p.errMsg),
		)
		return -1, false
	}

	loc, ok := p.locations[name]
	if !ok {
		loc = p.driver.UniformLocation(p.id, name)
		p.locations[name] = loc
	}
	return loc, loc >= 0
}

// SetBool uploads v as an int uniform (0 or 1).
func (p *Program) SetBool(name string, v bool) {
	if loc, ok := p.location(name); ok {
		var i int32
		if v {
			i = 1
		}
		p.driver.Uniform1i(loc, i)
	}
}

// SetInt uploads an int uniform.
func (p *Program) SetInt(name string, v int32) {
	if loc, ok := p.location(name); ok {
		p.driver.Uniform1i(loc, v)
	}
}

// SetFloat uploads a float uniform.
func (p *Program) SetFloat(name string, v float32) {
	if loc, ok := p.location(name); ok {
		p.driver.Uniform1f(loc, v)
	}
}

// SetVec3 uploads a vec3 uniform.
func (p *Program) SetVec3(name string, v math.Vec3) {
	if loc, ok := p.location(name); ok {
		p.driver.Uniform3f(loc, v.X, v.Y, v.Z)
	}
}

// SetMat4 uploads a mat4 uniform (column-major, not transposed).
func (p *Program) SetMat4(name string, m math.Mat4) {
	if loc, ok := p.location(name); ok {
		arr := [16]float32(m)
		p.driver.UniformMatrix4(loc, &arr)
	}
}

// SetUniform dispatches on the dynamic type of value. Supported types are
// bool, int, int32, float32, float64, math.Vec3 and math.Mat4.
func (p *Program) SetUniform(name string, value any) error {
	switch v := value.(type) {
	case bool:
		p.SetBool(name, v)
	case int:
		p.SetInt(name, int32(v))
	case int32:
		p.SetInt(name, v)
	case float32:
		p.SetFloat(name, v)
	case float64:
		p.SetFloat(name, float32(v))
	case math.Vec3:
		p.SetVec3(name, v)
	case math.Mat4:
		p.SetMat4(name, v)
	default:
		return fmt.Errorf("%w: %T for %q", ErrUnsupportedUniform, value, name)
	}
	return nil
}

package shader

import (
	"github.com/go-gl/gl/v4.1-core/gl"
)

// GLDriver implements Driver on top of OpenGL 4.1 core.
// gl.Init must have been called with a current context.
type GLDriver struct{}

// NewGLDriver returns a driver bound to the current OpenGL context.
func NewGLDriver() *GLDriver {
	return &GLDriver{}
}

func glStageType(kind StageKind) uint32 {
	switch kind {
	case Fragment:
		return gl.FRAGMENT_SHADER
	case Geometry:
		return gl.GEOMETRY_SHADER
	default:
		return gl.VERTEX_SHADER
	}
}

func (GLDriver) CreateStage(kind StageKind) uint32 {
	return gl.CreateShader(glStageType(kind))
}

func (GLDriver) SetStageSource(stage uint32, src string) {
	csource, free := gl.Strs(src + "\x00")
	gl.ShaderSource(stage, 1, csource, nil)
	free()
}

func (GLDriver) CompileStage(stage uint32) {
	gl.CompileShader(stage)
}

func (GLDriver) CompileStatus(stage uint32) bool {
	var status int32
	gl.GetShaderiv(stage, gl.COMPILE_STATUS, &status)
	return status != gl.FALSE
}

func (GLDriver) CompileLog(stage uint32) string {
	var logLen int32
	gl.GetShaderiv(stage, gl.INFO_LOG_LENGTH, &logLen)
	if logLen <= 0 {
		return ""
	}
	// INFO_LOG_LENGTH includes the trailing NUL.
	log := make([]byte, logLen)
	gl.GetShaderInfoLog(stage, logLen, nil, &log[0])
	return gl.GoStr(&log[0])
}

func (GLDriver) DeleteStage(stage uint32) {
	gl.DeleteShader(stage)
}

func (GLDriver) CreateProgram() ProgramID {
	return ProgramID(gl.CreateProgram())
}

func (GLDriver) AttachStage(program ProgramID, stage uint32) {
	gl.AttachShader(uint32(program), stage)
}

func (GLDriver) LinkProgram(program ProgramID) {
	gl.LinkProgram(uint32(program))
}

func (GLDriver) LinkStatus(program ProgramID) bool {
	var status int32
	gl.GetProgramiv(uint32(program), gl.LINK_STATUS, &status)
	return status != gl.FALSE
}

func (GLDriver) LinkLog(program ProgramID) string {
	var logLen int32
	gl.GetProgramiv(uint32(program), gl.INFO_LOG_LENGTH, &logLen)
	if logLen <= 0 {
		return ""
	}
	log := make([]byte, logLen)
	gl.GetProgramInfoLog(uint32(program), logLen, nil, &log[0])
	return gl.GoStr(&log[0])
}

func (GLDriver) DeleteProgram(program ProgramID) {
	gl.DeleteProgram(uint32(program))
}

func (GLDriver) UseProgram(program ProgramID) {
	gl.UseProgram(uint32(program))
}

func (GLDriver) UniformLocation(program ProgramID, name string) int32 {
	return gl.GetUniformLocation(uint32(program), gl.Str(name+"\x00"))
}

func (GLDriver) Uniform1i(location int32, v int32) {
	gl.Uniform1i(location, v)
}

func (GLDriver) Uniform1f(location int32, v float32) {
	gl.Uniform1f(location, v)
}

func (GLDriver) Uniform3f(location int32, x, y, z float32) {
	gl.Uniform3f(location, x, y, z)
}

func (GLDriver) UniformMatrix4(location int32, m *[16]float32) {
	gl.UniformMatrix4fv(location, 1, false, &m[0])
}

func (GLDriver) DrawTriangles(first, count int32) {
	gl.DrawArrays(gl.TRIANGLES, first, count)
}

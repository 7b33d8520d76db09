package shader

// StageKind identifies one compilation unit of a program.
type StageKind int

const (
	Vertex StageKind = iota
	Fragment
	Geometry
)

// String returns the lowercase stage name used in diagnostics.
func (k StageKind) String() string {
	switch k {
	case Vertex:
		return "vertex"
	case Fragment:
		return "fragment"
	case Geometry:
		return "geometry"
	default:
		return "unknown"
	}
}

// ProgramID is the driver-assigned program object name.
type ProgramID uint32

// StageHandle is a compiled (or failed) stage object owned by the caller
// until it is deleted.
type StageHandle struct {
	Kind StageKind
	ID   uint32
}

// Driver is the subset of the graphics API the pipeline talks to.
// All methods must be called on the thread owning the current context.
type Driver interface {
	CreateStage(kind StageKind) uint32
	SetStageSource(stage uint32, src string)
	CompileStage(stage uint32)
	CompileStatus(stage uint32) bool
	CompileLog(stage uint32) string
	DeleteStage(stage uint32)

	CreateProgram() ProgramID
	AttachStage(program ProgramID, stage uint32)
	LinkProgram(program ProgramID)
	LinkStatus(program ProgramID) bool
	LinkLog(program ProgramID) string
	DeleteProgram(program ProgramID)
	UseProgram(program ProgramID)

	// UniformLocation returns -1 when the program has no active uniform
	// with that name.
	UniformLocation(program ProgramID, name string) int32
	Uniform1i(location int32, v int32)
	Uniform1f(location int32, v float32)
	Uniform3f(location int32, x, y, z float32)
	UniformMatrix4(location int32, m *[16]float32)

	DrawTriangles(first, count int32)
}

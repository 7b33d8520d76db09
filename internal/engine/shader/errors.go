package shader

import (
	"errors"
	"fmt"
)

// ErrorKind tags a pipeline failure.
type ErrorKind int

const (
	KindBadFile ErrorKind = iota + 1
	KindVertexCompile
	KindFragmentCompile
	KindGeometryCompile
	KindLink
)

// Sentinels for errors.Is matching against *Error.
var (
	ErrBadFile         = errors.New("shader: bad file")
	ErrVertexCompile   = errors.New("shader: vertex compile failed")
	ErrFragmentCompile = errors.New("shader: fragment compile failed")
	ErrGeometryCompile = errors.New("shader: geometry compile failed")
	ErrLink            = errors.New("shader: link failed")

	ErrInvalidProgram     = errors.New("shader: program is not valid")
	ErrUnsupportedUniform = errors.New("shader: unsupported uniform type")
)

// NoError is the diagnostic reported by a program that has not failed.
const NoError = "no error"

// Error is a failure from one step of the compile/link pipeline.
type Error struct {
	Kind  ErrorKind
	Stage StageKind // meaningful for KindBadFile and the compile kinds
	Path  string    // set for KindBadFile
	Log   string    // driver info log for compile and link failures
	Err   error     // underlying I/O error for KindBadFile
}

func (e *Error) Error() string {
	switch e.Kind {
	case KindBadFile:
		return fmt.Sprintf("shader: read %s source %s: %v", e.Stage, e.Path, e.Err)
	case KindVertexCompile, KindFragmentCompile, KindGeometryCompile:
		return fmt.Sprintf("shader: %s compile failed: %s", e.Stage, e.Log)
	case KindLink:
		return fmt.Sprintf("shader: link failed: %s", e.Log)
	default:
		return "shader: unknown error"
	}
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is reports whether target is the sentinel for e's kind.
func (e *Error) Is(target error) bool {
	return target == e.Kind.sentinel()
}

func (k ErrorKind) sentinel() error {
	switch k {
	case KindBadFile:
		return ErrBadFile
	case KindVertexCompile:
		return ErrVertexCompile
	case KindFragmentCompile:
		return ErrFragmentCompile
	case KindGeometryCompile:
		return ErrGeometryCompile
	case KindLink:
		return ErrLink
	}
	return nil
}

func compileKind(stage StageKind) ErrorKind {
	switch stage {
	case Fragment:
		return KindFragmentCompile
	case Geometry:
		return KindGeometryCompile
	default:
		return KindVertexCompile
	}
}

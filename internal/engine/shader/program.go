// Package shader loads, compiles and links GPU shader programs.
//
// A Program is built once by New, NewWithGeometry or NewFS. Construction
// never fails outright: a program that could not be built is returned with
// IsValid() == false and the first failure available from Err and ErrMsg.
// Invalid programs are inert and never reach the driver's activation call.
package shader

import (
	"errors"
	"fmt"
	"io/fs"

	"go.uber.org/zap"

	"github.com/Faultbox/mage/internal/logger"
)

// ErrClosed is returned by Use after Close.
var ErrClosed = errors.New("shader: program is closed")

// Paths names the source files of each stage. Geometry is optional for NewFS.
type Paths struct {
	Vertex   string
	Fragment string
	Geometry string
}

// Program is a linked shader program. It owns its program object; use it
// by pointer and release it with Close.
type Program struct {
	driver Driver
	id     ProgramID
	valid  bool
	closed bool
	err    error
	errMsg string

	vertexAttributes uint16
	locations        map[string]int32
}

// New builds a vertex+fragment program from files on disk.
func New(d Driver, vertexPath, fragmentPath string) *Program {
	return build(d, nil, Paths{Vertex: vertexPath, Fragment: fragmentPath}, false)
}

// NewWithGeometry builds a vertex+geometry+fragment program from files on disk.
func NewWithGeometry(d Driver, vertexPath, fragmentPath, geometryPath string) *Program {
	return build(d, nil, Paths{
		Vertex:   vertexPath,
		Fragment: fragmentPath,
		Geometry: geometryPath,
	}, true)
}

// NewFS builds a program with sources read from fsys. A geometry stage is
// included when paths.Geometry is set.
func NewFS(d Driver, fsys fs.FS, paths Paths) *Program {
	return build(d, fsys, paths, paths.Geometry != "")
}

func build(d Driver, fsys fs.FS, paths Paths, withGeometry bool) *Program {
	p := &Program{
		driver:    d,
		errMsg:    NoError,
		locations: make(map[string]int32),
	}

	if err := p.build(fsys, paths, withGeometry); err != nil {
		p.err = err
		p.errMsg = err.Error()
		logger.Warn("shader program build failed",
			zap.String("vertex", paths.Vertex),
			zap.String("fragment", paths.Fragment),
			zap.String("geometry", paths.Geometry),
			zap.Error(err),
		)
		return p
	}

	p.valid = true
	logger.Debug("shader program linked",
		zap.Uint32("program", uint32(p.id)),
		zap.String("vertex", paths.Vertex),
		zap.String("fragment", paths.Fragment),
	)
	return p
}

type stageSource struct {
	kind StageKind
	path string
	src  string
}

// build runs load, compile and link, stopping at the first failure. Every
// stage object it creates is deleted before it returns, and a program object
// that failed to link is deleted as well.
func (p *Program) build(fsys fs.FS, paths Paths, withGeometry bool) error {
	stages := []stageSource{
		{kind: Vertex, path: paths.Vertex},
		{kind: Fragment, path: paths.Fragment},
	}
	if withGeometry {
		stages = append(stages, stageSource{kind: Geometry, path: paths.Geometry})
	}

	for i := range stages {
		src, err := load(fsys, stages[i].kind, stages[i].path)
		if err != nil {
			return err
		}
		stages[i].src = src
	}

	handles := make([]StageHandle, 0, len(stages))
	defer func() {
		for _, h := range handles {
			p.driver.DeleteStage(h.ID)
		}
	}()

	for _, s := range stages {
		h, err := CompileStage(p.driver, s.kind, s.src)
		handles = append(handles, h)
		if err != nil {
			return err
		}
	}

	var geom *StageHandle
	if withGeometry {
		geom = &handles[2]
	}
	id, err := LinkProgram(p.driver, handles[0], handles[1], geom)
	if err != nil {
		p.driver.DeleteProgram(id)
		return err
	}

	p.id = id
	return nil
}

func load(fsys fs.FS, kind StageKind, path string) (string, error) {
	if fsys != nil {
		return LoadSourceFS(fsys, kind, path)
	}
	return LoadSource(kind, path)
}

// ID returns the program object name. It is only meaningful when IsValid.
func (p *Program) ID() ProgramID {
	return p.id
}

// IsValid reports whether every stage compiled and the program linked.
func (p *Program) IsValid() bool {
	return p.valid
}

// ErrMsg returns the diagnostic of the failure that invalidated the program,
// or NoError.
func (p *Program) ErrMsg() string {
	return p.errMsg
}

// Err returns the failure that invalidated the program, or nil.
func (p *Program) Err() error {
	return p.err
}

// VertexAttributes returns the number of vertex attributes the program
// expects. Zero unless set by a specialization.
func (p *Program) VertexAttributes() uint16 {
	return p.vertexAttributes
}

// Use activates the program for subsequent draw calls. An invalid program
// is never handed to the driver; Use logs and returns ErrInvalidProgram
// wrapping the build failure instead.
func (p *Program) Use() error {
	if p.closed {
		return ErrClosed
	}
	if !p.valid {
		logger.Warn("use of invalid shader program", zap.String("error", p.errMsg))
		return fmt.Errorf("%w: %w", ErrInvalidProgram, p.err)
	}
	p.driver.UseProgram(p.id)
	return nil
}

// DrawTriangles activates the program and draws count vertices as
// triangles from the currently bound vertex array.
func (p *Program) DrawTriangles(count int32) error {
	if err := p.Use(); err != nil {
		return err
	}
	p.driver.DrawTriangles(0, count)
	return nil
}

// Close deletes the program object. Safe to call more than once.
func (p *Program) Close() {
	if p.closed {
		return
	}
	p.closed = true
	if p.valid {
		p.driver.DeleteProgram(p.id)
	}
	p.locations = nil
}

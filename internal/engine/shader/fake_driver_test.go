package shader

import (
	"fmt"
	"strings"
)

// fakeDriver is an in-memory Driver. A stage compiles when its source has a
// main function and balanced braces. Uploaded uniform values are stored on
// the program that was current at upload time, like a real context.
type fakeDriver struct {
	nextID   uint32
	stages   map[uint32]*fakeStage
	programs map[ProgramID]*fakeProgram
	current  ProgramID

	calls []string

	failLink bool
	linkLog  string
	emptyLog bool
}

type fakeStage struct {
	kind    StageKind
	src     string
	ok      bool
	deleted bool
}

type fakeProgram struct {
	attached  []uint32
	linked    bool
	deleted   bool
	locations map[string]int32
	values    map[int32]any
}

func newFakeDriver() *fakeDriver {
	return &fakeDriver{
		stages:   make(map[uint32]*fakeStage),
		programs: make(map[ProgramID]*fakeProgram),
	}
}

func (f *fakeDriver) record(format string, args ...any) {
	f.calls = append(f.calls, fmt.Sprintf(format, args...))
}

func (f *fakeDriver) count(prefix string) int {
	n := 0
	for _, c := range f.calls {
		if strings.HasPrefix(c, prefix) {
			n++
		}
	}
	return n
}

func (f *fakeDriver) CreateStage(kind StageKind) uint32 {
	f.nextID++
	f.stages[f.nextID] = &fakeStage{kind: kind}
	f.record("create-stage %s %d", kind, f.nextID)
	return f.nextID
}

func (f *fakeDriver) SetStageSource(stage uint32, src string) {
	f.stages[stage].src = src
}

func (f *fakeDriver) CompileStage(stage uint32) {
	s := f.stages[stage]
	s.ok = strings.Contains(s.src, "void main(") &&
		strings.Count(s.src, "{") == strings.Count(s.src, "}")
	f.record("compile %s %d", s.kind, stage)
}

func (f *fakeDriver) CompileStatus(stage uint32) bool {
	return f.stages[stage].ok
}

func (f *fakeDriver) CompileLog(stage uint32) string {
	if f.stages[stage].ok || f.emptyLog {
		return ""
	}
	return "0:7(1): error: syntax error, unexpected end of file"
}

func (f *fakeDriver) DeleteStage(stage uint32) {
	f.stages[stage].deleted = true
	f.record("delete-stage %d", stage)
}

func (f *fakeDriver) CreateProgram() ProgramID {
	f.nextID++
	id := ProgramID(f.nextID)
	f.programs[id] = &fakeProgram{
		locations: make(map[string]int32),
		values:    make(map[int32]any),
	}
	f.record("create-program %d", id)
	return id
}

func (f *fakeDriver) AttachStage(program ProgramID, stage uint32) {
	p := f.programs[program]
	p.attached = append(p.attached, stage)
	f.record("attach %d %s", program, f.stages[stage].kind)
}

func (f *fakeDriver) LinkProgram(program ProgramID) {
	p := f.programs[program]
	f.record("link %d", program)
	if f.failLink {
		return
	}
	p.linked = true

	// Assign a location to every declared uniform, in declaration order.
	for _, stage := range p.attached {
		for _, line := range strings.Split(f.stages[stage].src, "\n") {
			fields := strings.Fields(line)
			if len(fields) < 3 || fields[0] != "uniform" {
				continue
			}
			name := strings.TrimSuffix(fields[2], ";")
			if _, ok := p.locations[name]; !ok {
				p.locations[name] = int32(len(p.locations))
			}
		}
	}
}

func (f *fakeDriver) LinkStatus(program ProgramID) bool {
	return f.programs[program].linked
}

func (f *fakeDriver) LinkLog(program ProgramID) string {
	return f.linkLog
}

func (f *fakeDriver) DeleteProgram(program ProgramID) {
	f.programs[program].deleted = true
	f.record("delete-program %d", program)
}

func (f *fakeDriver) UseProgram(program ProgramID) {
	f.current = program
	f.record("use %d", program)
}

// UniformLocation resolves struct members through their root name, so
// "material.ambient" is found when "material" is declared.
func (f *fakeDriver) UniformLocation(program ProgramID, name string) int32 {
	f.record("uniform-location %d %s", program, name)
	p, ok := f.programs[program]
	if !ok || !p.linked {
		return -1
	}
	root, _, member := strings.Cut(name, ".")
	loc, ok := p.locations[root]
	if !ok {
		return -1
	}
	if member {
		if loc, ok := p.locations[name]; ok {
			return loc
		}
		loc = int32(len(p.locations))
		p.locations[name] = loc
	}
	return loc
}

func (f *fakeDriver) upload(location int32, v any) {
	f.record("upload %d", location)
	if p, ok := f.programs[f.current]; ok {
		p.values[location] = v
	}
}

func (f *fakeDriver) Uniform1i(location int32, v int32)   { f.upload(location, v) }
func (f *fakeDriver) Uniform1f(location int32, v float32) { f.upload(location, v) }
func (f *fakeDriver) Uniform3f(location int32, x, y, z float32) {
	f.upload(location, [3]float32{x, y, z})
}
func (f *fakeDriver) UniformMatrix4(location int32, m *[16]float32) {
	f.upload(location, *m)
}

func (f *fakeDriver) DrawTriangles(first, count int32) {
	f.record("draw %d %d", first, count)
}

// uniform reads back the value stored for name on program.
func (f *fakeDriver) uniform(program ProgramID, name string) (any, bool) {
	p, ok := f.programs[program]
	if !ok {
		return nil, false
	}
	loc, ok := p.locations[name]
	if !ok {
		return nil, false
	}
	v, ok := p.values[loc]
	return v, ok
}

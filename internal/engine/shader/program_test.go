package shader

import (
	"errors"
	"io/fs"
	"path/filepath"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/Faultbox/mage/internal/engine/shader/glsl"
	"github.com/Faultbox/mage/pkg/math"
)

func testdata(name string) string {
	return filepath.Join("testdata", name)
}

func TestNewValid(t *testing.T) {
	d := newFakeDriver()
	p := New(d, testdata("valid.vert.glsl"), testdata("valid.frag.glsl"))

	if !p.IsValid() {
		t.Fatalf("expected valid program, got error: %s", p.ErrMsg())
	}
	if p.ID() == 0 {
		t.Error("expected nonzero program id")
	}
	if !d.programs[p.ID()].linked {
		t.Error("driver does not report the program as linked")
	}
	if p.ErrMsg() != NoError {
		t.Errorf("expected ErrMsg %q, got %q", NoError, p.ErrMsg())
	}
	if p.Err() != nil {
		t.Errorf("expected nil Err, got %v", p.Err())
	}

	// Stages are released once linked into the program.
	for id, s := range d.stages {
		if !s.deleted {
			t.Errorf("%s stage %d was not deleted", s.kind, id)
		}
	}
	if got := len(d.programs[p.ID()].attached); got != 2 {
		t.Errorf("expected 2 attached stages, got %d", got)
	}
}

func TestNewMissingVertexFile(t *testing.T) {
	d := newFakeDriver()
	missing := testdata("missing.vert")
	p := New(d, missing, testdata("valid.frag.glsl"))

	if p.IsValid() {
		t.Fatal("expected invalid program")
	}
	if !errors.Is(p.Err(), ErrBadFile) {
		t.Errorf("expected ErrBadFile, got %v", p.Err())
	}
	if !errors.Is(p.Err(), fs.ErrNotExist) {
		t.Errorf("expected underlying fs.ErrNotExist, got %v", p.Err())
	}

	var serr *Error
	if !errors.As(p.Err(), &serr) {
		t.Fatalf("expected *Error, got %T", p.Err())
	}
	if serr.Stage != Vertex {
		t.Errorf("expected vertex stage, got %s", serr.Stage)
	}
	if !strings.Contains(p.ErrMsg(), "missing.vert") || !strings.Contains(p.ErrMsg(), "vertex") {
		t.Errorf("ErrMsg should name the vertex stage and path, got %q", p.ErrMsg())
	}
	if len(d.calls) != 0 {
		t.Errorf("expected no driver calls after a read failure, got %v", d.calls)
	}
}

func TestNewMissingFragmentFile(t *testing.T) {
	d := newFakeDriver()
	p := New(d, testdata("valid.vert.glsl"), testdata("missing.frag"))

	var serr *Error
	if !errors.As(p.Err(), &serr) || serr.Kind != KindBadFile || serr.Stage != Fragment {
		t.Fatalf("expected fragment KindBadFile, got %v", p.Err())
	}
	if d.count("create-stage") != 0 {
		t.Error("no stage should be created before every source is read")
	}
}

func TestNewBrokenFragment(t *testing.T) {
	d := newFakeDriver()
	p := New(d, testdata("valid.vert.glsl"), testdata("invalid.frag.glsl"))

	if p.IsValid() {
		t.Fatal("expected invalid program")
	}
	if !errors.Is(p.Err(), ErrFragmentCompile) {
		t.Errorf("expected ErrFragmentCompile, got %v", p.Err())
	}
	msg := p.ErrMsg()
	if msg == "" || msg == NoError {
		t.Fatalf("expected diagnostic, got %q", msg)
	}
	if !strings.Contains(msg, "fragment") || !strings.Contains(msg, "syntax error") {
		t.Errorf("ErrMsg should name the stage and carry the driver log, got %q", msg)
	}
	if p.ID() != 0 {
		t.Errorf("expected zero id for invalid program, got %d", p.ID())
	}
	if d.count("create-program") != 0 {
		t.Error("no program object should be created after a compile failure")
	}
	for id, s := range d.stages {
		if !s.deleted {
			t.Errorf("%s stage %d leaked", s.kind, id)
		}
	}
}

func TestBrokenVertexStopsPipeline(t *testing.T) {
	d := newFakeDriver()
	p := New(d, testdata("invalid.vert.glsl"), testdata("invalid.frag.glsl"))

	if !errors.Is(p.Err(), ErrVertexCompile) {
		t.Fatalf("expected ErrVertexCompile, got %v", p.Err())
	}
	if n := d.count("compile"); n != 1 {
		t.Errorf("expected exactly one compile call, got %d", n)
	}
	if n := d.count("compile fragment"); n != 0 {
		t.Error("fragment stage compiled after vertex failure")
	}
	if !strings.Contains(p.ErrMsg(), "vertex") {
		t.Errorf("ErrMsg should name the vertex stage, got %q", p.ErrMsg())
	}
}

func TestNewWithGeometry(t *testing.T) {
	d := newFakeDriver()
	p := NewWithGeometry(d,
		testdata("valid.vert.glsl"),
		testdata("valid.frag.glsl"),
		testdata("valid.geom.glsl"),
	)
	if !p.IsValid() {
		t.Fatalf("expected valid program, got error: %s", p.ErrMsg())
	}

	var attach []string
	for _, c := range d.calls {
		if strings.HasPrefix(c, "attach") {
			attach = append(attach, c[strings.LastIndex(c, " ")+1:])
		}
	}
	want := []string{"vertex", "geometry", "fragment"}
	if strings.Join(attach, ",") != strings.Join(want, ",") {
		t.Errorf("attach order = %v, want %v", attach, want)
	}
	if n := d.count("delete-stage"); n != 3 {
		t.Errorf("expected 3 stage deletions, got %d", n)
	}
}

func TestNewWithGeometryFailures(t *testing.T) {
	tests := []struct {
		name     string
		geometry string
		want     error
	}{
		{"missing file", "missing.geom", ErrBadFile},
		{"compile error", "invalid.geom.glsl", ErrGeometryCompile},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := newFakeDriver()
			p := NewWithGeometry(d,
				testdata("valid.vert.glsl"),
				testdata("valid.frag.glsl"),
				testdata(tt.geometry),
			)
			if p.IsValid() {
				t.Fatal("expected invalid program")
			}
			if !errors.Is(p.Err(), tt.want) {
				t.Errorf("expected %v, got %v", tt.want, p.Err())
			}
			if !strings.Contains(p.ErrMsg(), "geometry") {
				t.Errorf("ErrMsg should name the geometry stage, got %q", p.ErrMsg())
			}
		})
	}
}

func TestLinkFailureReleasesEverything(t *testing.T) {
	d := newFakeDriver()
	d.failLink = true
	d.linkLog = "error: vertex output tint not consumed"
	p := New(d, testdata("valid.vert.glsl"), testdata("valid.frag.glsl"))

	if p.IsValid() {
		t.Fatal("expected invalid program")
	}
	if !errors.Is(p.Err(), ErrLink) {
		t.Fatalf("expected ErrLink, got %v", p.Err())
	}
	if !strings.Contains(p.ErrMsg(), d.linkLog) {
		t.Errorf("ErrMsg should carry the link log, got %q", p.ErrMsg())
	}
	if p.ID() != 0 {
		t.Errorf("expected zero id after link failure, got %d", p.ID())
	}
	if n := d.count("delete-program"); n != 1 {
		t.Errorf("expected failed program to be deleted once, got %d", n)
	}
	if n := d.count("delete-stage"); n != 2 {
		t.Errorf("expected 2 stage deletions, got %d", n)
	}
}

func TestUseIsIdempotent(t *testing.T) {
	d := newFakeDriver()
	p := New(d, testdata("valid.vert.glsl"), testdata("valid.frag.glsl"))

	for i := 0; i < 3; i++ {
		if err := p.Use(); err != nil {
			t.Fatalf("Use #%d: %v", i, err)
		}
		if d.current != p.ID() {
			t.Errorf("Use #%d: current program %d, want %d", i, d.current, p.ID())
		}
	}
	if n := d.count("use"); n != 3 {
		t.Errorf("expected 3 activations, got %d", n)
	}
}

func TestUseInvalidProgram(t *testing.T) {
	d := newFakeDriver()
	p := New(d, testdata("valid.vert.glsl"), testdata("invalid.frag.glsl"))

	err := p.Use()
	if !errors.Is(err, ErrInvalidProgram) {
		t.Errorf("expected ErrInvalidProgram, got %v", err)
	}
	if !errors.Is(err, ErrFragmentCompile) {
		t.Errorf("expected the build failure to be wrapped, got %v", err)
	}
	if n := d.count("use"); n != 0 {
		t.Errorf("invalid program reached the driver %d times", n)
	}
}

func TestClose(t *testing.T) {
	d := newFakeDriver()
	p := New(d, testdata("valid.vert.glsl"), testdata("valid.frag.glsl"))

	p.Close()
	p.Close()

	if n := d.count("delete-program"); n != 1 {
		t.Errorf("expected one program deletion, got %d", n)
	}
	if err := p.Use(); !errors.Is(err, ErrClosed) {
		t.Errorf("expected ErrClosed, got %v", err)
	}
	p.SetFloat("scale", 1)
	if n := d.count("upload"); n != 0 {
		t.Error("uniform uploaded on a closed program")
	}
}

func TestNewFS(t *testing.T) {
	t.Run("embedded", func(t *testing.T) {
		d := newFakeDriver()
		p := NewFS(d, glsl.FS, Paths{
			Vertex:   glsl.NormalsVertex,
			Fragment: glsl.NormalsFragment,
			Geometry: glsl.NormalsGeometry,
		})
		if !p.IsValid() {
			t.Fatalf("expected valid program, got error: %s", p.ErrMsg())
		}
		if n := d.count("compile"); n != 3 {
			t.Errorf("expected 3 compiled stages, got %d", n)
		}
	})

	t.Run("missing in fs", func(t *testing.T) {
		d := newFakeDriver()
		fsys := fstest.MapFS{
			"a.vert": &fstest.MapFile{Data: []byte("void main() {}")},
		}
		p := NewFS(d, fsys, Paths{Vertex: "a.vert", Fragment: "b.frag"})
		if !errors.Is(p.Err(), ErrBadFile) {
			t.Errorf("expected ErrBadFile, got %v", p.Err())
		}
		if !strings.Contains(p.ErrMsg(), "b.frag") {
			t.Errorf("ErrMsg should mention b.frag, got %q", p.ErrMsg())
		}
	})
}

func TestUniformRoundTrip(t *testing.T) {
	mat := math.Translate(1, 2, 3)

	tests := []struct {
		name  string
		set   func(p *Program)
		want  any
		value any
	}{
		{"bool", func(p *Program) { p.SetBool("flag", true) }, int32(1), true},
		{"int", func(p *Program) { p.SetInt("count", 42) }, int32(42), int32(42)},
		{"float", func(p *Program) { p.SetFloat("scale", 0.5) }, float32(0.5), float32(0.5)},
		{"vec3", func(p *Program) { p.SetVec3("tint", math.Vec3{X: 1, Y: 0.5, Z: 0.25}) }, [3]float32{1, 0.5, 0.25}, math.Vec3{X: 1, Y: 0.5, Z: 0.25}},
		{"mat4", func(p *Program) { p.SetMat4("transform", mat) }, [16]float32(mat), mat},
	}

	uniformName := map[string]string{
		"bool": "flag", "int": "count", "float": "scale", "vec3": "tint", "mat4": "transform",
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := newFakeDriver()
			p := New(d, testdata("valid.vert.glsl"), testdata("valid.frag.glsl"))
			if err := p.Use(); err != nil {
				t.Fatal(err)
			}

			tt.set(p)
			got, ok := d.uniform(p.ID(), uniformName[tt.name])
			if !ok {
				t.Fatalf("uniform %s was not uploaded", uniformName[tt.name])
			}
			if got != tt.want {
				t.Errorf("typed setter: got %v, want %v", got, tt.want)
			}

			// The dynamic entry point must land on the same slot.
			d2 := newFakeDriver()
			p2 := New(d2, testdata("valid.vert.glsl"), testdata("valid.frag.glsl"))
			_ = p2.Use()
			if err := p2.SetUniform(uniformName[tt.name], tt.value); err != nil {
				t.Fatalf("SetUniform: %v", err)
			}
			got, _ = d2.uniform(p2.ID(), uniformName[tt.name])
			if got != tt.want {
				t.Errorf("SetUniform: got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestSetBoolFalse(t *testing.T) {
	d := newFakeDriver()
	p := New(d, testdata("valid.vert.glsl"), testdata("valid.frag.glsl"))
	_ = p.Use()

	p.SetBool("flag", false)
	if got, _ := d.uniform(p.ID(), "flag"); got != int32(0) {
		t.Errorf("got %v, want 0", got)
	}
}

func TestUnknownUniformIsNoop(t *testing.T) {
	d := newFakeDriver()
	p := New(d, testdata("valid.vert.glsl"), testdata("valid.frag.glsl"))
	_ = p.Use()

	p.SetFloat("doesNotExist", 3)
	if n := d.count("upload"); n != 0 {
		t.Errorf("expected no upload for unknown uniform, got %d", n)
	}
}

func TestUniformLocationCached(t *testing.T) {
	d := newFakeDriver()
	p := New(d, testdata("valid.vert.glsl"), testdata("valid.frag.glsl"))
	_ = p.Use()

	p.SetFloat("scale", 1)
	p.SetFloat("scale", 2)
	p.SetFloat("doesNotExist", 1)
	p.SetFloat("doesNotExist", 2)

	if n := d.count("uniform-location"); n != 2 {
		t.Errorf("expected 2 location lookups, got %d", n)
	}
	if got, _ := d.uniform(p.ID(), "scale"); got != float32(2) {
		t.Errorf("got %v, want 2", got)
	}
}

func TestSetUniformUnsupported(t *testing.T) {
	d := newFakeDriver()
	p := New(d, testdata("valid.vert.glsl"), testdata("valid.frag.glsl"))

	err := p.SetUniform("scale", "half")
	if !errors.Is(err, ErrUnsupportedUniform) {
		t.Errorf("expected ErrUnsupportedUniform, got %v", err)
	}
}

func TestUniformOnInvalidProgramDropped(t *testing.T) {
	d := newFakeDriver()
	p := New(d, testdata("missing.vert"), testdata("valid.frag.glsl"))

	p.SetInt("count", 1)
	p.SetMat4("transform", math.Identity())
	if len(d.calls) != 0 {
		t.Errorf("expected no driver calls, got %v", d.calls)
	}
}

func TestDrawTriangles(t *testing.T) {
	d := newFakeDriver()
	p := New(d, testdata("valid.vert.glsl"), testdata("valid.frag.glsl"))

	if err := p.DrawTriangles(36); err != nil {
		t.Fatalf("DrawTriangles: %v", err)
	}
	if d.count("use") != 1 || d.count("draw 0 36") != 1 {
		t.Errorf("expected one activation and one draw, got calls %v", d.calls)
	}

	bad := New(d, testdata("invalid.vert.glsl"), testdata("valid.frag.glsl"))
	if err := bad.DrawTriangles(36); !errors.Is(err, ErrInvalidProgram) {
		t.Errorf("expected ErrInvalidProgram, got %v", err)
	}
	if n := d.count("draw"); n != 1 {
		t.Errorf("invalid program drew, draw calls %d", n)
	}
}

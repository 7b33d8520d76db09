package shader

import (
	"errors"
	"fmt"
	"io/fs"

	"github.com/Faultbox/mage/pkg/math"
)

// ErrMatrixNotSet is returned by BlinnPhong.Draw when a transform is missing.
var ErrMatrixNotSet = errors.New("shader: matrix not set")

// Material holds Blinn-Phong surface coefficients.
type Material struct {
	Ambient   math.Vec3
	Diffuse   math.Vec3
	Specular  math.Vec3
	Shininess float32
}

// BlinnPhong is a lit program taking position, normal and UV attributes and
// projection/model/view matrices.
type BlinnPhong struct {
	*Program

	projection *math.Mat4
	model      *math.Mat4
	view       *math.Mat4
}

// NewBlinnPhong builds a BlinnPhong program from files on disk.
func NewBlinnPhong(d Driver, vertexPath, fragmentPath string) *BlinnPhong {
	return newBlinnPhong(New(d, vertexPath, fragmentPath))
}

// NewBlinnPhongWithGeometry builds a BlinnPhong program with a geometry
// stage between the vertex and fragment stages.
func NewBlinnPhongWithGeometry(d Driver, vertexPath, fragmentPath, geometryPath string) *BlinnPhong {
	return newBlinnPhong(NewWithGeometry(d, vertexPath, fragmentPath, geometryPath))
}

// NewBlinnPhongFS builds a BlinnPhong program from fsys.
func NewBlinnPhongFS(d Driver, fsys fs.FS, paths Paths) *BlinnPhong {
	return newBlinnPhong(NewFS(d, fsys, paths))
}

func newBlinnPhong(p *Program) *BlinnPhong {
	p.vertexAttributes = 3
	return &BlinnPhong{Program: p}
}

func (b *BlinnPhong) SetProjection(m math.Mat4) { b.projection = &m }
func (b *BlinnPhong) SetModel(m math.Mat4)      { b.model = &m }
func (b *BlinnPhong) SetView(m math.Mat4)       { b.view = &m }

// Projection returns the projection matrix and whether it has been set.
func (b *BlinnPhong) Projection() (math.Mat4, bool) { return deref(b.projection) }
func (b *BlinnPhong) Model() (math.Mat4, bool)      { return deref(b.model) }
func (b *BlinnPhong) View() (math.Mat4, bool)       { return deref(b.view) }

func deref(m *math.Mat4) (math.Mat4, bool) {
	if m == nil {
		return math.Mat4{}, false
	}
	return *m, true
}

// SetMaterial uploads the material.* uniforms.
func (b *BlinnPhong) SetMaterial(m Material) {
	b.SetVec3("material.ambient", m.Ambient)
	b.SetVec3("material.diffuse", m.Diffuse)
	b.SetVec3("material.specular", m.Specular)
	b.SetFloat("material.shininess", m.Shininess)
}

// Draw activates the program, uploads the transforms and draws count
// vertices as triangles from the currently bound vertex array.
func (b *BlinnPhong) Draw(count int32) error {
	switch {
	case b.projection == nil:
		return fmt.Errorf("%w: projection", ErrMatrixNotSet)
	case b.model == nil:
		return fmt.Errorf("%w: model", ErrMatrixNotSet)
	case b.view == nil:
		return fmt.Errorf("%w: view", ErrMatrixNotSet)
	}

	if err := b.Use(); err != nil {
		return err
	}
	b.SetMat4("projection", *b.projection)
	b.SetMat4("model", *b.model)
	b.SetMat4("view", *b.view)
	b.driver.DrawTriangles(0, count)
	return nil
}

package mesh

import (
	"unsafe"

	"github.com/go-gl/gl/v4.1-core/gl"
	"go.uber.org/zap"

	"github.com/Faultbox/mage/internal/engine/shader"
	"github.com/Faultbox/mage/internal/logger"
	"github.com/Faultbox/mage/pkg/math"
)

// Floats per vertex: position (3), normal (3), texcoord (2).
const cubeStride = 8

// cubeVertices is a unit cube centered on the origin, 6 faces of 2 triangles.
var cubeVertices = []float32{
	// back (-Z)
	-0.5, -0.5, -0.5, 0, 0, -1, 0, 0,
	0.5, 0.5, -0.5, 0, 0, -1, 1, 1,
	0.5, -0.5, -0.5, 0, 0, -1, 1, 0,
	0.5, 0.5, -0.5, 0, 0, -1, 1, 1,
	-0.5, -0.5, -0.5, 0, 0, -1, 0, 0,
	-0.5, 0.5, -0.5, 0, 0, -1, 0, 1,
	// front (+Z)
	-0.5, -0.5, 0.5, 0, 0, 1, 0, 0,
	0.5, -0.5, 0.5, 0, 0, 1, 1, 0,
	0.5, 0.5, 0.5, 0, 0, 1, 1, 1,
	0.5, 0.5, 0.5, 0, 0, 1, 1, 1,
	-0.5, 0.5, 0.5, 0, 0, 1, 0, 1,
	-0.5, -0.5, 0.5, 0, 0, 1, 0, 0,
	// left (-X)
	-0.5, 0.5, 0.5, -1, 0, 0, 1, 0,
	-0.5, 0.5, -0.5, -1, 0, 0, 1, 1,
	-0.5, -0.5, -0.5, -1, 0, 0, 0, 1,
	-0.5, -0.5, -0.5, -1, 0, 0, 0, 1,
	-0.5, -0.5, 0.5, -1, 0, 0, 0, 0,
	-0.5, 0.5, 0.5, -1, 0, 0, 1, 0,
	// right (+X)
	0.5, 0.5, 0.5, 1, 0, 0, 1, 0,
	0.5, -0.5, -0.5, 1, 0, 0, 0, 1,
	0.5, 0.5, -0.5, 1, 0, 0, 1, 1,
	0.5, -0.5, -0.5, 1, 0, 0, 0, 1,
	0.5, 0.5, 0.5, 1, 0, 0, 1, 0,
	0.5, -0.5, 0.5, 1, 0, 0, 0, 0,
	// bottom (-Y)
	-0.5, -0.5, -0.5, 0, -1, 0, 0, 1,
	0.5, -0.5, -0.5, 0, -1, 0, 1, 1,
	0.5, -0.5, 0.5, 0, -1, 0, 1, 0,
	0.5, -0.5, 0.5, 0, -1, 0, 1, 0,
	-0.5, -0.5, 0.5, 0, -1, 0, 0, 0,
	-0.5, -0.5, -0.5, 0, -1, 0, 0, 1,
	// top (+Y)
	-0.5, 0.5, -0.5, 0, 1, 0, 0, 1,
	0.5, 0.5, 0.5, 0, 1, 0, 1, 0,
	0.5, 0.5, -0.5, 0, 1, 0, 1, 1,
	0.5, 0.5, 0.5, 0, 1, 0, 1, 0,
	-0.5, 0.5, -0.5, 0, 1, 0, 0, 1,
	-0.5, 0.5, 0.5, 0, 1, 0, 0, 0,
}

var _ Mesh = (*Cube)(nil)

// Cube is a unit cube with a Blinn-Phong material.
// Must be created after the OpenGL context.
type Cube struct {
	Transform
	Material shader.Material

	vao uint32
	vbo uint32
}

// NewCube uploads the cube geometry and returns it.
func NewCube(material shader.Material) *Cube {
	c := &Cube{
		Transform: NewTransform(),
		Material:  material,
	}

	gl.GenVertexArrays(1, &c.vao)
	gl.BindVertexArray(c.vao)
	gl.GenBuffers(1, &c.vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, c.vbo)

	c.BufferData()
	attrs := c.DefineVAOPointers()

	gl.BindBuffer(gl.ARRAY_BUFFER, 0)
	gl.BindVertexArray(0)

	logger.Debug("cube created",
		zap.Uint32("vao", c.vao),
		zap.Uint32("vbo", c.vbo),
		zap.Uint32("attributes", attrs),
	)
	return c
}

// VertexCount returns the number of vertices drawn per call.
func (c *Cube) VertexCount() int32 {
	return int32(len(cubeVertices) / cubeStride)
}

// BufferData uploads the vertices into the bound VBO.
func (c *Cube) BufferData() {
	gl.BufferData(gl.ARRAY_BUFFER, len(cubeVertices)*4, unsafe.Pointer(&cubeVertices[0]), gl.STATIC_DRAW)
}

// DefineVAOPointers enables position (0), normal (1) and texcoord (2).
func (c *Cube) DefineVAOPointers() uint32 {
	stride := int32(cubeStride * 4)

	gl.VertexAttribPointer(0, 3, gl.FLOAT, false, stride, nil)
	gl.EnableVertexAttribArray(0)

	gl.VertexAttribPointer(1, 3, gl.FLOAT, false, stride, unsafe.Pointer(uintptr(3*4)))
	gl.EnableVertexAttribArray(1)

	gl.VertexAttribPointer(2, 2, gl.FLOAT, false, stride, unsafe.Pointer(uintptr(6*4)))
	gl.EnableVertexAttribArray(2)

	return 3
}

// Draw renders the cube with program using its material and transform.
func (c *Cube) Draw(projection, view math.Mat4, program *shader.BlinnPhong) error {
	program.SetProjection(projection)
	program.SetView(view)
	program.SetModel(c.Matrix())

	gl.BindVertexArray(c.vao)
	defer gl.BindVertexArray(0)

	if err := program.Use(); err != nil {
		return err
	}
	program.SetMaterial(c.Material)
	return program.Draw(c.VertexCount())
}

// DrawOverlay renders the cube geometry with an auxiliary program such as
// the normal visualizer. The program receives the same projection, view
// and model uniforms as the lit pass.
func (c *Cube) DrawOverlay(projection, view math.Mat4, program *shader.Program) error {
	gl.BindVertexArray(c.vao)
	defer gl.BindVertexArray(0)

	if err := program.Use(); err != nil {
		return err
	}
	program.SetMat4("projection", projection)
	program.SetMat4("view", view)
	program.SetMat4("model", c.Matrix())
	return program.DrawTriangles(c.VertexCount())
}

// Close frees the GPU buffers.
func (c *Cube) Close() {
	if c.vao != 0 {
		gl.DeleteVertexArrays(1, &c.vao)
	}
	if c.vbo != 0 {
		gl.DeleteBuffers(1, &c.vbo)
	}
}

// Package viewer implements the interactive shader viewer loop.
package viewer

import (
	"fmt"
	"time"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/veandco/go-sdl2/sdl"
	"go.uber.org/zap"

	"github.com/Faultbox/mage/internal/config"
	"github.com/Faultbox/mage/internal/engine/camera"
	"github.com/Faultbox/mage/internal/engine/debug"
	"github.com/Faultbox/mage/internal/engine/input"
	"github.com/Faultbox/mage/internal/engine/lighting"
	"github.com/Faultbox/mage/internal/engine/mesh"
	"github.com/Faultbox/mage/internal/engine/shader"
	"github.com/Faultbox/mage/internal/engine/shader/glsl"
	"github.com/Faultbox/mage/internal/engine/window"
	"github.com/Faultbox/mage/internal/logger"
	"github.com/Faultbox/mage/pkg/math"
)

const (
	windowTitle = "mage"

	nearPlane = 0.1
	farPlane  = 100.0

	normalMagnitude = 0.2

	// Degrees per second while the light orbits.
	orbitSpeed  = 45.0
	orbitRadius = 2.0
	orbitHeight = 1.0
)

var (
	normalColor = math.Vec3{X: 1, Y: 1, Z: 0}

	defaultMaterial = shader.Material{
		Ambient:   math.Vec3{X: 1.0, Y: 0.5, Z: 0.31},
		Diffuse:   math.Vec3{X: 1.0, Y: 0.5, Z: 0.31},
		Specular:  math.Vec3{X: 0.5, Y: 0.5, Z: 0.5},
		Shininess: 32,
	}
)

// movement maps held keys to camera directions.
var movement = []struct {
	key sdl.Scancode
	dir camera.Movement
}{
	{sdl.SCANCODE_W, camera.Forward},
	{sdl.SCANCODE_S, camera.Backward},
	{sdl.SCANCODE_A, camera.Left},
	{sdl.SCANCODE_D, camera.Right},
	{sdl.SCANCODE_SPACE, camera.Up},
	{sdl.SCANCODE_LSHIFT, camera.Down},
}

// Viewer owns the window, the shader programs and the scene.
type Viewer struct {
	cfg     *config.Config
	running bool
	log     *zap.Logger

	window  *window.Window
	input   *input.Input
	camera  *camera.FlyCamera
	lit     *shader.BlinnPhong
	normals *shader.Program
	cube    *mesh.Cube
	light   lighting.PointLight
	shots   *debug.Screenshots

	blinn       bool
	showNormals bool
	orbiting    bool
	orbitAngle  float32
}

// New creates the window and builds every shader program. An invalid lit
// program is fatal; an invalid normals program only disables the overlay.
func New(cfg *config.Config) (*Viewer, error) {
	v := &Viewer{
		cfg:         cfg,
		log:         logger.Named("viewer"),
		light:       lighting.White(math.Vec3{X: 1.2, Y: 1.0, Z: 2.0}),
		blinn:       true,
		showNormals: cfg.Shaders.Normals,
	}

	var err error
	v.window, err = window.New(window.Config{
		Title:        windowTitle,
		Width:        cfg.Graphics.Width,
		Height:       cfg.Graphics.Height,
		Fullscreen:   cfg.Graphics.Fullscreen,
		VSync:        cfg.Graphics.VSync,
		MSAASamples:  cfg.Graphics.MSAASamples,
		CursorLocked: cfg.Graphics.CursorLocked,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create window: %w", err)
	}

	// Programs must be built after the window, since the GL context must exist.
	driver := shader.NewGLDriver()
	v.lit = buildLit(driver, cfg.Shaders)
	if !v.lit.IsValid() {
		err := v.lit.Err()
		v.Close()
		return nil, fmt.Errorf("lit shader: %w", err)
	}

	if cfg.Shaders.Normals {
		v.normals = shader.NewFS(driver, glsl.FS, shader.Paths{
			Vertex:   glsl.NormalsVertex,
			Fragment: glsl.NormalsFragment,
			Geometry: glsl.NormalsGeometry,
		})
		if !v.normals.IsValid() {
			v.log.Warn("normals overlay disabled", zap.String("error", v.normals.ErrMsg()))
			v.showNormals = false
		}
	}

	v.camera = camera.New(
		math.Vec3{X: cfg.Camera.Position[0], Y: cfg.Camera.Position[1], Z: cfg.Camera.Position[2]},
		math.Vec3{X: cfg.Camera.Focus[0], Y: cfg.Camera.Focus[1], Z: cfg.Camera.Focus[2]},
	)
	v.camera.Speed = cfg.Camera.Speed
	v.camera.Sensitivity = cfg.Camera.Sensitivity

	v.cube = mesh.NewCube(defaultMaterial)
	v.input = input.New()
	v.shots = debug.NewScreenshots("screenshots", "mage")

	v.log.Info("viewer initialized",
		zap.Bool("embedded_shaders", cfg.Shaders.Embedded()),
		zap.Bool("normals", v.showNormals),
	)
	return v, nil
}

// buildLit selects the lit program source: embedded, files, or files with
// a geometry stage.
func buildLit(d shader.Driver, s config.ShadersConfig) *shader.BlinnPhong {
	switch {
	case s.Embedded():
		return shader.NewBlinnPhongFS(d, glsl.FS, shader.Paths{
			Vertex:   glsl.BlinnPhongVertex,
			Fragment: glsl.BlinnPhongFragment,
		})
	case s.Geometry != "":
		return shader.NewBlinnPhongWithGeometry(d, s.Vertex, s.Fragment, s.Geometry)
	default:
		return shader.NewBlinnPhong(d, s.Vertex, s.Fragment)
	}
}

// Run starts the main loop and returns when the window is closed or
// Escape is pressed.
func (v *Viewer) Run() error {
	v.running = true

	lastTime := time.Now()
	frameCount := 0
	fpsTimer := time.Now()

	v.log.Info("starting render loop")

	for v.running {
		now := time.Now()
		dt := float32(now.Sub(lastTime).Seconds())
		lastTime = now

		if v.input.Update() {
			v.running = false
			break
		}
		v.handleEvents()
		v.update(dt)

		if err := v.render(); err != nil {
			return fmt.Errorf("render error: %w", err)
		}
		if v.input.IsKeyPressed(sdl.SCANCODE_F12) {
			v.screenshot()
		}
		v.window.SwapBuffers()

		frameCount++
		if time.Since(fpsTimer) >= time.Second {
			v.log.Debug("fps", zap.Int("count", frameCount), zap.Float32("dt_ms", dt*1000))
			frameCount = 0
			fpsTimer = time.Now()
		}
	}

	return nil
}

func (v *Viewer) handleEvents() {
	for _, event := range v.input.Events() {
		switch event.Type {
		case input.EventWindowResize:
			v.window.Resize()
		case input.EventMouseMove:
			v.camera.Rotate(event.DeltaX, event.DeltaY, true)
		case input.EventMouseWheel:
			v.camera.ChangeZoom(event.DeltaY)
		case input.EventKeyDown:
			switch event.Key {
			case sdl.SCANCODE_ESCAPE:
				v.running = false
			case sdl.SCANCODE_B:
				v.blinn = !v.blinn
				v.log.Info("lighting model", zap.Bool("blinn", v.blinn))
			case sdl.SCANCODE_L:
				v.orbiting = !v.orbiting
			case sdl.SCANCODE_N:
				if v.normals != nil && v.normals.IsValid() {
					v.showNormals = !v.showNormals
				}
			}
		}
	}
}

func (v *Viewer) screenshot() {
	width, height := v.window.DrawableSize()
	path, err := v.shots.Capture(width, height)
	if err != nil {
		v.log.Error("screenshot failed", zap.Error(err))
		return
	}
	v.log.Info("screenshot saved", zap.String("path", path))
}

func (v *Viewer) update(dt float32) {
	for _, m := range movement {
		if v.input.IsKeyDown(m.key) {
			v.camera.Move(m.dir, dt)
		}
	}
	if v.orbiting {
		v.orbitAngle += orbitSpeed * dt
		v.light.Position = lighting.Orbit(math.Vec3{}, orbitRadius, orbitHeight, v.orbitAngle)
	}
}

func (v *Viewer) render() error {
	gl.ClearColor(0.1, 0.1, 0.1, 1.0)
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)

	projection := v.camera.ProjectionMatrix(v.window.Aspect(), nearPlane, farPlane)
	view := v.camera.ViewMatrix()

	if err := v.lit.Use(); err != nil {
		return err
	}
	v.light.Apply(v.lit)
	v.lit.SetVec3("viewPos", v.camera.Position())
	v.lit.SetBool("blinn", v.blinn)

	if err := v.cube.Draw(projection, view, v.lit); err != nil {
		return err
	}

	if v.showNormals {
		if err := v.normals.Use(); err != nil {
			return err
		}
		v.normals.SetFloat("magnitude", normalMagnitude)
		v.normals.SetVec3("color", normalColor)
		if err := v.cube.DrawOverlay(projection, view, v.normals); err != nil {
			return err
		}
	}
	return nil
}

// Close releases GPU resources and the window. Safe to call more than once.
func (v *Viewer) Close() {
	if v.window == nil {
		return
	}
	v.log.Info("closing viewer")

	if v.cube != nil {
		v.cube.Close()
		v.cube = nil
	}
	if v.normals != nil {
		v.normals.Close()
	}
	if v.lit != nil {
		v.lit.Close()
	}
	v.window.Close()
	v.window = nil
}

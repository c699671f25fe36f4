// Package viewer is the callback set the host drives: Init once, then
// PlatformEvent for each input event and Frame once per refresh, Reload when
// code or assets change, and Destroy once at shutdown.
//
// A Viewer is owned by the host and is not safe for concurrent use; every
// callback must run on the thread that owns the GL context.
package viewer

import (
	_ "embed"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"minecraf2/internal/camera"
	"minecraf2/internal/config"
	"minecraf2/internal/event"
	"minecraf2/internal/input"
	"minecraf2/internal/vmath"

	"github.com/chewxy/math32"
)

//go:embed shaders/triangle.vert
var defaultVertexShader string

//go:embed shaders/triangle.frag
var defaultFragmentShader string

// MVPUniform is the shader uniform receiving proj × view × model.
const MVPUniform = "u_mvp"

// triangleVertices is position (xyz) followed by color (rgb) per vertex.
var triangleVertices = []float32{
	0.0, 0.5, 0, 1, 0, 0,
	-0.5, -0.5, 0, 0, 1, 0,
	0.5, -0.5, 0, 0, 0, 1,
}

const triangleVertexCount = 3

// ErrNotInitialized is returned by Reload before Init succeeded or after Destroy.
var ErrNotInitialized = errors.New("viewer: not initialized")

// Viewer holds all state carried across frames: GPU handles, the camera,
// the movement intent and the pointer capture flag.
type Viewer struct {
	cfg config.Config
	gpu GPU
	log *slog.Logger

	window      Window
	framebuffer uint32
	width       float32 // drawable size in pixels
	height      float32

	program  uint32
	vao, vbo uint32
	shader   shaderSources

	camera   camera.Camera
	intent   input.Intent
	bindings *input.Bindings
	captured bool

	spinning  bool
	spinAngle float32

	mvp vmath.Mat4

	initialized bool
	destroyed   bool
}

type shaderSources struct {
	vertex, fragment string
}

// New creates a viewer. Nothing touches the GPU until Init.
func New(cfg config.Config, gpu GPU, log *slog.Logger) *Viewer {
	if log == nil {
		log = slog.Default()
	}
	return &Viewer{
		cfg:      cfg,
		gpu:      gpu,
		log:      log.With("component", "viewer"),
		bindings: input.NewBindings(),
		mvp:      vmath.Mat4Identity(),
	}
}

// Init creates the shader program and the triangle mesh and places the
// camera at its start pose. On error no GPU resources are left behind.
func (v *Viewer) Init(s Surface) error {
	if v.initialized {
		return errors.New("viewer: Init called twice")
	}

	v.window = s.Window
	v.framebuffer = s.Framebuffer
	v.width = s.PixelWidth
	v.height = s.PixelHeight

	if !s.LiveScene && v.window != nil {
		v.window.SetTitle(v.cfg.Window.Title)
	}

	src, err := loadShaderSources(v.cfg)
	if err != nil {
		return fmt.Errorf("viewer: init: %w", err)
	}
	prog, err := v.gpu.CompileProgram(src.vertex, src.fragment)
	if err != nil {
		return fmt.Errorf("viewer: init: %w", err)
	}
	v.program = prog
	v.shader = src

	v.vao, v.vbo = v.gpu.CreateMesh(triangleVertices, 3, 3)

	c := v.cfg.Camera
	v.camera = camera.New(vmath.Vec3{X: c.StartPosition[0], Y: c.StartPosition[1], Z: c.StartPosition[2]}, c.StartYaw, c.StartPitch)

	v.initialized = true
	v.log.Info("initialized",
		"pixels", fmt.Sprintf("%.0fx%.0f", s.PixelWidth, s.PixelHeight),
		"logical", fmt.Sprintf("%.0fx%.0f", s.Width, s.Height),
		"live", s.LiveScene,
		"program", v.program,
		"args", s.Args)
	return nil
}

// Frame advances the camera by the previous frame's duration and draws the
// triangle with a single draw call.
func (v *Viewer) Frame(t Timing) {
	if !v.ready() {
		return
	}

	dt := t.PrevDeltaTime
	if v.intent.Any() {
		v.camera.Move(v.intent, v.cfg.Camera.MoveSpeed, dt)
	}
	if v.spinning {
		v.spinAngle = math32.Mod(v.spinAngle+dt*v.cfg.Render.SpinSpeed, 2*math32.Pi)
		if v.spinAngle < 0 {
			v.spinAngle += 2 * math32.Pi
		}
	}

	// minimized: nothing to draw into
	if v.width <= 0 || v.height <= 0 {
		return
	}

	v.gpu.BeginFrame(v.framebuffer, int32(v.width), int32(v.height), v.cfg.Render.ClearColor)

	c := v.cfg.Camera
	proj := vmath.Mat4Perspective(c.FOVY, v.width/v.height, c.Near, c.Far)
	view := v.camera.View()
	model := vmath.Mat4RotateAxis(0, 0, 1, v.spinAngle)
	v.mvp = vmath.Mat4Mul(vmath.Mat4Mul(proj, view), model)

	v.gpu.UseProgram(v.program)
	v.gpu.SetUniformMat4(v.program, MVPUniform, v.mvp)
	v.gpu.DrawTriangles(v.vao, 0, triangleVertexCount)
}

// PlatformEvent applies one input event.
func (v *Viewer) PlatformEvent(e event.Event) {
	switch e := e.(type) {
	case event.Key:
		v.handleKey(e)
	case event.MouseMotion:
		if v.captured {
			v.camera.Look(e.Delta, v.cfg.Camera.MouseSensitivity)
		}
	case event.InputCaptured:
		v.setCaptured(e.Captured)
	case event.FramebufferResize:
		v.width = float32(e.Width)
		v.height = float32(e.Height)
	default:
		v.log.Debug("ignored event", "type", fmt.Sprintf("%T", e))
	}
}

func (v *Viewer) handleKey(e event.Key) {
	if v.bindings.HandleKey(&v.intent, e) {
		return
	}
	if e.Action == event.Press && v.bindings.IsSpinToggle(e.Key) {
		v.spinning = !v.spinning
		v.log.Debug("spin toggled", "spinning", v.spinning)
	}
}

func (v *Viewer) setCaptured(captured bool) {
	if v.window != nil {
		v.window.SetCursorCaptured(captured)
	}
	v.captured = captured
	if !captured {
		v.intent.Clear()
	}
	v.log.Debug("input capture changed", "captured", captured)
}

// Reload is called after the host swapped code or assets. Camera, intent and
// mesh survive untouched. The new settings take effect from the next frame,
// and when the shader sources changed the program is rebuilt. If reading or
// compiling the shaders fails nothing changes and the error is returned.
func (v *Viewer) Reload(cfg config.Config) error {
	if !v.ready() {
		return ErrNotInitialized
	}

	src, err := loadShaderSources(cfg)
	if err != nil {
		return fmt.Errorf("viewer: reload: %w", err)
	}

	if src != v.shader {
		prog, err := v.gpu.CompileProgram(src.vertex, src.fragment)
		if err != nil {
			v.log.Warn("shader reload failed, keeping previous program", "err", err)
			return fmt.Errorf("viewer: reload: %w", err)
		}
		v.gpu.DeleteProgram(v.program)
		v.program = prog
		v.shader = src
		v.log.Info("shader program rebuilt", "program", prog)
	}

	v.cfg = cfg
	v.log.Info("reloaded")
	return nil
}

// Destroy releases the mesh and the program. Calling it again does nothing.
func (v *Viewer) Destroy() {
	if !v.ready() {
		return
	}
	v.gpu.DeleteMesh(v.vao, v.vbo)
	v.gpu.DeleteProgram(v.program)
	v.vao, v.vbo, v.program = 0, 0, 0
	v.destroyed = true
	v.log.Info("destroyed")
}

func (v *Viewer) ready() bool {
	return v.initialized && !v.destroyed
}

// Camera returns the current camera pose.
func (v *Viewer) Camera() camera.Camera { return v.camera }

// Intent returns the held movement directions.
func (v *Viewer) Intent() input.Intent { return v.intent }

// Captured reports whether pointer motion steers the camera.
func (v *Viewer) Captured() bool { return v.captured }

// Spinning reports whether the triangle rotates about its Z axis.
func (v *Viewer) Spinning() bool { return v.spinning }

// MVP returns the matrix uploaded by the last drawn frame.
func (v *Viewer) MVP() vmath.Mat4 { return v.mvp }

// Config returns the active settings.
func (v *Viewer) Config() config.Config { return v.cfg }

func loadShaderSources(cfg config.Config) (shaderSources, error) {
	if !cfg.HasShaderFiles() {
		return shaderSources{defaultVertexShader, defaultFragmentShader}, nil
	}

	vs, err := os.ReadFile(cfg.Render.VertexShader)
	if err != nil {
		return shaderSources{}, fmt.Errorf("read vertex shader: %w", err)
	}
	fs, err := os.ReadFile(cfg.Render.FragmentShader)
	if err != nil {
		return shaderSources{}, fmt.Errorf("read fragment shader: %w", err)
	}
	return shaderSources{string(vs), string(fs)}, nil
}

package viewer

import "minecraf2/internal/vmath"

// GPU is the graphics API the viewer drives. Handles are opaque to the
// viewer; graphics.GL is the OpenGL implementation.
type GPU interface {
	// CompileProgram compiles and links a vertex/fragment shader pair.
	CompileProgram(vertexSrc, fragmentSrc string) (uint32, error)
	// CreateMesh uploads interleaved float vertices. components lists the
	// float count of each attribute, bound to locations 0, 1, ...
	CreateMesh(vertices []float32, components ...int32) (vao, vbo uint32)
	// BeginFrame binds the framebuffer, sets the viewport and clears it.
	BeginFrame(framebuffer uint32, width, height int32, clear [4]float32)
	UseProgram(program uint32)
	SetUniformMat4(program uint32, name string, m vmath.Mat4)
	DrawTriangles(vao uint32, first, count int32)
	DeleteMesh(vao, vbo uint32)
	DeleteProgram(program uint32)
}

// Window is the part of the host window the viewer may touch.
type Window interface {
	SetTitle(title string)
	// SetCursorCaptured hides and locks the cursor when true and restores it otherwise.
	SetCursorCaptured(captured bool)
}

// Surface describes the window the host created, passed once to Init.
type Surface struct {
	Window Window

	// Logical size in screen units and drawable size in pixels.
	Width, Height           float32
	PixelWidth, PixelHeight float32

	// LiveScene is set when the viewer is embedded in a host that owns the
	// window title.
	LiveScene bool

	// Framebuffer to draw into; 0 is the default framebuffer.
	Framebuffer uint32

	Args []string
}

// Timing is the host's frame clock.
type Timing struct {
	// PrevDeltaTime is the duration of the previous frame in seconds.
	PrevDeltaTime float32
	// Time is seconds since the host started.
	Time float64
	// Frame counts frames since the host started.
	Frame uint64
}

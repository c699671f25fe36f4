package graphics

import (
	"minecraf2/internal/vmath"

	"github.com/go-gl/gl/v4.1-core/gl"
)

const floatSize = 4

// GL issues OpenGL 4.1 core calls on the current context. It must only be
// used from the thread that owns the context.
type GL struct{}

// NewGL initializes the GL function pointers for the current context.
func NewGL() (*GL, error) {
	if err := gl.Init(); err != nil {
		return nil, err
	}
	return &GL{}, nil
}

// Version returns the driver's GL version string.
func (*GL) Version() string {
	return gl.GoStr(gl.GetString(gl.VERSION))
}

// CompileProgram compiles and links a vertex/fragment pair into a program.
func (*GL) CompileProgram(vertexSrc, fragmentSrc string) (uint32, error) {
	return compileProgram(vertexSrc, fragmentSrc)
}

// CreateMesh uploads interleaved vertices into a new VAO/VBO pair. Attribute
// i gets components[i] floats at location i.
func (*GL) CreateMesh(vertices []float32, components ...int32) (uint32, uint32) {
	var stride int32
	for _, c := range components {
		stride += c
	}

	var vao, vbo uint32
	gl.GenVertexArrays(1, &vao)
	gl.BindVertexArray(vao)

	gl.GenBuffers(1, &vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, vbo)
	gl.BufferData(gl.ARRAY_BUFFER, len(vertices)*floatSize, gl.Ptr(vertices), gl.STATIC_DRAW)

	var offset int32
	for i, c := range components {
		gl.VertexAttribPointer(uint32(i), c, gl.FLOAT, false, stride*floatSize, gl.PtrOffset(int(offset*floatSize)))
		gl.EnableVertexAttribArray(uint32(i))
		offset += c
	}

	// unbind to reduce accidental state changes
	gl.BindBuffer(gl.ARRAY_BUFFER, 0)
	gl.BindVertexArray(0)
	return vao, vbo
}

// BeginFrame binds the framebuffer, sets the viewport and clears color and depth.
func (*GL) BeginFrame(framebuffer uint32, width, height int32, clear [4]float32) {
	gl.BindFramebuffer(gl.FRAMEBUFFER, framebuffer)
	gl.Viewport(0, 0, width, height)
	gl.ClearColor(clear[0], clear[1], clear[2], clear[3])
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)
}

// UseProgram makes program current.
func (*GL) UseProgram(program uint32) {
	gl.UseProgram(program)
}

// SetUniformMat4 uploads m to the named uniform of program.
func (*GL) SetUniformMat4(program uint32, name string, m vmath.Mat4) {
	setUniformMat4(program, name, m)
}

// DrawTriangles draws count vertices of vao as triangles.
func (*GL) DrawTriangles(vao uint32, first, count int32) {
	gl.BindVertexArray(vao)
	gl.DrawArrays(gl.TRIANGLES, first, count)
}

// DeleteMesh releases a mesh made by CreateMesh.
func (*GL) DeleteMesh(vao, vbo uint32) {
	gl.DeleteBuffers(1, &vbo)
	gl.DeleteVertexArrays(1, &vao)
}

// DeleteProgram releases a program.
func (*GL) DeleteProgram(program uint32) {
	gl.DeleteProgram(program)
}

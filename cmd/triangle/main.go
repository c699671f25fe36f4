package main

import (
	"fmt"
	"runtime"
	"time"

	"minecraf2/internal/graphics"
	"minecraf2/internal/vmath"

	"github.com/chewxy/math32"
	"github.com/go-gl/glfw/v3.3/glfw"
)

const (
	windowWidth  = 800
	windowHeight = 600

	// radians per second
	spinSpeed = 1.5
)

func init() {
	runtime.LockOSThread()
}

const vertexSrc = `#version 410 core
layout(location = 0) in vec2 position;
uniform mat4 u_mvp;
void main() {
	gl_Position = u_mvp * vec4(position, 0.0, 1.0);
}`

const fragmentSrc = `#version 410 core
out vec4 fragColor;
void main() {
	fragColor = vec4(0.0, 1.0, 0.0, 1.0);
}`

func main() {
	if err := glfw.Init(); err != nil {
		panic(err)
	}
	defer glfw.Terminate()

	glfw.WindowHint(glfw.ContextVersionMajor, 4)
	glfw.WindowHint(glfw.ContextVersionMinor, 1)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)

	window, err := glfw.CreateWindow(windowWidth, windowHeight, "triangle", nil, nil)
	if err != nil {
		panic(err)
	}
	window.MakeContextCurrent()
	// no vsync: the printed FPS is the raw rate
	glfw.SwapInterval(0)

	gpu, err := graphics.NewGL()
	if err != nil {
		panic(err)
	}

	shader, err := graphics.NewShader(vertexSrc, fragmentSrc)
	if err != nil {
		panic(err)
	}
	defer shader.Delete()

	vertices := []float32{
		0.0, 0.5,
		-0.5, -0.5,
		0.5, -0.5,
	}
	vao, vbo := gpu.CreateMesh(vertices, 2)
	defer gpu.DeleteMesh(vao, vbo)

	frames := 0
	last := time.Now()
	start := last
	fpsTicker := time.NewTicker(time.Second)
	defer fpsTicker.Stop()

	for !window.ShouldClose() {
		if window.GetKey(glfw.KeyEscape) == glfw.Press {
			window.SetShouldClose(true)
		}

		fbW, fbH := window.GetFramebufferSize()
		gpu.BeginFrame(0, int32(fbW), int32(fbH), [4]float32{0, 0, 0, 1})

		if fbW > 0 && fbH > 0 {
			// keep the triangle undistorted: widen the box along the longer axis
			aspect := float32(fbW) / float32(fbH)
			proj := vmath.Mat4Ortho(-aspect, aspect, -1, 1, -1, 1)
			if aspect < 1 {
				proj = vmath.Mat4Ortho(-1, 1, -1/aspect, 1/aspect, -1, 1)
			}
			angle := math32.Mod(float32(time.Since(start).Seconds())*spinSpeed, 2*math32.Pi)
			mvp := proj.Mul(vmath.Mat4RotateAxis(0, 0, 1, angle))

			shader.Use()
			shader.SetMatrix4("u_mvp", mvp)
			gpu.DrawTriangles(vao, 0, 3)
		}

		window.SwapBuffers()
		glfw.PollEvents()

		frames++

		select {
		case <-fpsTicker.C:
			now := time.Now()
			elapsed := now.Sub(last).Seconds()
			if elapsed > 0 {
				fmt.Printf("FPS: %d (GL %s)\n", int(float64(frames)/elapsed+0.5), gpu.Version())
			}
			frames = 0
			last = now
		default:
		}
	}
}

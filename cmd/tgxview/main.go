// Command tgxview is a thin demo harness: it spins a cube through the tgx
// pipeline each frame and blits the result into a window. It is not part
// of the core and does no shader work of its own — gl.DrawPixels just
// presents whatever tgx already rasterized in software.
//
// Grounded on the teacher's window/input plumbing (renderer_opengl.go,
// win_input.go), trimmed to the single legacy-GL blit path since this demo
// has no GPU geometry of its own to shade.
package main

import (
	"flag"
	"fmt"
	"log"
	"math"
	"runtime"

	"github.com/go-gl/gl/v2.1/gl"
	"github.com/go-gl/glfw/v3.3/glfw"

	"github.com/FASTSHIFT/tgx-go"
)

func init() {
	// glfw/gl event loops must run pinned to the OS thread that created
	// the context (the teacher's renderer_opengl.go does the same).
	runtime.LockOSThread()
}

const (
	viewportW = 256
	viewportH = 256
)

func main() {
	headless := flag.Bool("headless", false, "run the keyboard-driven terminal demo instead of opening a window")
	flag.Parse()

	if *headless {
		runHeadless()
		return
	}

	if err := glfw.Init(); err != nil {
		log.Fatalf("glfw init: %v", err)
	}
	defer glfw.Terminate()

	glfw.WindowHint(glfw.ContextVersionMajor, 2)
	glfw.WindowHint(glfw.ContextVersionMinor, 1)
	window, err := glfw.CreateWindow(viewportW, viewportH, "tgxview", nil, nil)
	if err != nil {
		log.Fatalf("create window: %v", err)
	}
	window.MakeContextCurrent()
	window.SetKeyCallback(func(w *glfw.Window, key glfw.Key, scancode int, action glfw.Action, mods glfw.ModifierKey) {
		if key == glfw.KeyEscape && action == glfw.Press {
			w.SetShouldClose(true)
		}
	})

	if err := gl.Init(); err != nil {
		log.Fatalf("gl init: %v", err)
	}

	r := tgx.New[tgx.RGBA8888](tgx.Config{Width: viewportW, Height: viewportH, DepthTest: true})
	r.SetPerspective(math.Pi/4, 1, 1, 10)
	r.SetLookAt(tgx.Vec3{X: 0, Y: 0, Z: 4}, tgx.Vec3{}, tgx.Vec3{X: 0, Y: 1, Z: 0})
	r.SetLightDirection(tgx.Vec3{X: -0.4, Y: -1, Z: -0.3})
	r.SetCulling(tgx.CullCW)

	fb := newFramebuffer(viewportW, viewportH)
	depth := make([]float32, viewportW*viewportH)
	r.AttachTarget(fb)
	r.AttachDepthBuffer(depth)
	cube := cubeMesh()

	angle := 0.0
	for !window.ShouldClose() {
		fb.clear(tgx.RGBA8888{A: 255})
		r.ClearDepthBuffer()

		angle += 0.01
		r.SetModel(tgx.SetLookAt(tgx.Vec3{}, tgx.Vec3{X: math.Sin(angle), Y: 0.4, Z: math.Cos(angle)}, tgx.Vec3{X: 0, Y: 1, Z: 0}))
		if code := r.DrawMesh(cube, tgx.FlagGouraud, false); code != tgx.Success {
			fmt.Println("draw failed:", code)
		}

		gl.DrawPixels(viewportW, viewportH, gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(fb.bytes()))
		window.SwapBuffers()
		glfw.PollEvents()
	}
}

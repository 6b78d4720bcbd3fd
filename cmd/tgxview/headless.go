package main

import (
	"fmt"
	"math"
	"time"

	"github.com/eiannone/keyboard"

	"github.com/FASTSHIFT/tgx-go"
)

// asciiTarget renders into a float grayscale grid good enough to print as
// ASCII shading levels in a terminal — no window system required.
type asciiTarget struct {
	w, h int
	lum  []float64
}

func newASCIITarget(w, h int) *asciiTarget { return &asciiTarget{w: w, h: h, lum: make([]float64, w*h)} }
func (t *asciiTarget) Width() int          { return t.w }
func (t *asciiTarget) Height() int         { return t.h }
func (t *asciiTarget) Set(x, y int, p tgx.RGBf) {
	t.lum[y*t.w+x] = 0.299*p.R + 0.587*p.G + 0.114*p.B
}

const ramp = " .:-=+*#%@"

func (t *asciiTarget) print() {
	var row []byte
	for y := 0; y < t.h; y++ {
		row = row[:0]
		for x := 0; x < t.w; x++ {
			v := t.lum[y*t.w+x]
			if v < 0 {
				v = 0
			}
			if v > 1 {
				v = 1
			}
			row = append(row, ramp[int(v*float64(len(ramp)-1))])
		}
		fmt.Println(string(row))
	}
}

// runHeadless drives the same cube/pipeline as main()'s windowed path but
// prints ASCII frames and quits on Esc, grounded on the teacher's
// SilentInputManager (win_input.go): a background goroutine drains
// keyboard.GetKey() so key reads never block the render loop.
func runHeadless() {
	if err := keyboard.Open(); err != nil {
		fmt.Println("keyboard unavailable, running fixed frame count:", err)
		runHeadlessFrames(40, nil)
		return
	}
	defer keyboard.Close()

	quit := make(chan struct{})
	go func() {
		for {
			_, key, err := keyboard.GetKey()
			if err != nil {
				continue
			}
			if key == keyboard.KeyEsc {
				close(quit)
				return
			}
		}
	}()

	runHeadlessFrames(0, quit)
}

func runHeadlessFrames(maxFrames int, quit chan struct{}) {
	const w, h = 64, 32
	r := tgx.New[tgx.RGBf](tgx.Config{Width: w, Height: h, DepthTest: true})
	r.SetPerspective(math.Pi/4, float64(w)/float64(h), 1, 10)
	r.SetLookAt(tgx.Vec3{X: 0, Y: 0, Z: 4}, tgx.Vec3{}, tgx.Vec3{X: 0, Y: 1, Z: 0})
	r.SetLightDirection(tgx.Vec3{X: -0.4, Y: -1, Z: -0.3})
	r.SetCulling(tgx.CullCW)

	target := newASCIITarget(w, h)
	depth := make([]float32, w*h)
	r.AttachTarget(target)
	r.AttachDepthBuffer(depth)
	cube := cubeMesh()

	for i, angle := 0, 0.0; maxFrames == 0 || i < maxFrames; i++ {
		select {
		case <-quit:
			return
		default:
		}

		for j := range target.lum {
			target.lum[j] = 0
		}
		r.ClearDepthBuffer()
		angle += 0.1
		r.SetModel(tgx.SetLookAt(tgx.Vec3{}, tgx.Vec3{X: math.Sin(angle), Y: 0.4, Z: math.Cos(angle)}, tgx.Vec3{X: 0, Y: 1, Z: 0}))
		r.DrawMesh(cube, tgx.FlagGouraud, false)

		target.print()
		time.Sleep(80 * time.Millisecond)
	}
}

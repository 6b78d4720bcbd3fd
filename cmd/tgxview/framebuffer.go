package main

import "github.com/FASTSHIFT/tgx-go"

// framebuffer is a plain RGBA8888 RasterTarget backed by a flat slice, the
// minimal adapter needed to hand tgx's output to gl.DrawPixels.
type framebuffer struct {
	w, h int
	pix  []tgx.RGBA8888
}

func newFramebuffer(w, h int) *framebuffer {
	return &framebuffer{w: w, h: h, pix: make([]tgx.RGBA8888, w*h)}
}

func (f *framebuffer) Width() int  { return f.w }
func (f *framebuffer) Height() int { return f.h }

func (f *framebuffer) Set(x, y int, p tgx.RGBA8888) {
	f.pix[y*f.w+x] = p
}

// bytes returns the framebuffer as tightly packed RGBA bytes, top row
// first, for gl.DrawPixels.
func (f *framebuffer) bytes() []byte {
	out := make([]byte, 0, len(f.pix)*4)
	for _, p := range f.pix {
		out = append(out, p.R, p.G, p.B, p.A)
	}
	return out
}

func (f *framebuffer) clear(c tgx.RGBA8888) {
	for i := range f.pix {
		f.pix[i] = c
	}
}

package tgx

import (
	"image"
	"math"
)

// Texture is a power-of-two 2D image sampled by the rasterizer when the
// TEXTURE shader flag is set (§3, §6: "Texture dimensions are powers of
// two" is a caller invariant, not checked here). Grounded on the teacher's
// Texture (texture.go), trimmed of mipmap chains and procedural generators
// (not named by the spec) and generalized from uint8 Color to RGBf so the
// rasterizer always works in float color regardless of the raster target's
// pixel type.
type Texture struct {
	Width, Height int
	Data          []RGBf
}

type TextureFilter int

const (
	FilterNearest TextureFilter = iota
	FilterLinear
)

type TextureWrap int

const (
	WrapRepeat TextureWrap = iota
	WrapClamp
	WrapMirror
)

func NewTexture(width, height int) *Texture {
	return &Texture{Width: width, Height: height, Data: make([]RGBf, width*height)}
}

// NewTextureFromImage builds a Texture from any image.Image, the external
// asset-loading boundary the spec places out of scope for the core.
func NewTextureFromImage(img image.Image) *Texture {
	b := img.Bounds()
	tex := NewTexture(b.Dx(), b.Dy())
	for y := 0; y < b.Dy(); y++ {
		for x := 0; x < b.Dx(); x++ {
			r, g, bl, _ := img.At(b.Min.X+x, b.Min.Y+y).RGBA()
			tex.Data[y*tex.Width+x] = RGBf{
				R: float64(r) / 0xffff,
				G: float64(g) / 0xffff,
				B: float64(bl) / 0xffff,
			}
		}
	}
	return tex
}

func (t *Texture) SetPixel(x, y int, c RGBf) {
	if x >= 0 && x < t.Width && y >= 0 && y < t.Height {
		t.Data[y*t.Width+x] = c
	}
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func (t *Texture) applyWrap(coord float64, wrap TextureWrap) float64 {
	switch wrap {
	case WrapClamp:
		return clamp(coord, 0, 1)
	case WrapMirror:
		c := math.Mod(coord, 2.0)
		if c < 0 {
			c += 2.0
		}
		if c > 1.0 {
			c = 2.0 - c
		}
		return c
	default: // WrapRepeat
		c := math.Mod(coord, 1.0)
		if c < 0 {
			c += 1.0
		}
		return c
	}
}

// Sample reads the texture at UV coordinates with the requested filter and
// wrap mode (§4.2 step 5, perspective-correct texturing).
func (t *Texture) Sample(uv Vec2, filter TextureFilter, wrap TextureWrap) RGBf {
	u := t.applyWrap(uv.X, wrap)
	v := t.applyWrap(uv.Y, wrap)
	if filter == FilterLinear {
		return t.sampleLinear(u, v)
	}
	return t.sampleNearest(u, v)
}

func (t *Texture) sampleNearest(u, v float64) RGBf {
	x := clampInt(int(u*float64(t.Width)), 0, t.Width-1)
	y := clampInt(int(v*float64(t.Height)), 0, t.Height-1)
	return t.Data[y*t.Width+x]
}

func (t *Texture) sampleLinear(u, v float64) RGBf {
	x := u*float64(t.Width) - 0.5
	y := v*float64(t.Height) - 0.5

	x0 := int(math.Floor(x))
	y0 := int(math.Floor(y))
	fx := x - float64(x0)
	fy := y - float64(y0)

	x0c := clampInt(x0, 0, t.Width-1)
	y0c := clampInt(y0, 0, t.Height-1)
	x1c := clampInt(x0+1, 0, t.Width-1)
	y1c := clampInt(y0+1, 0, t.Height-1)

	c00 := t.Data[y0c*t.Width+x0c]
	c10 := t.Data[y0c*t.Width+x1c]
	c01 := t.Data[y1c*t.Width+x0c]
	c11 := t.Data[y1c*t.Width+x1c]

	return c00.Lerp(c10, fx).Lerp(c01.Lerp(c11, fx), fy)
}

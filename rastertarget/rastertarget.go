// Package rastertarget provides a reference tgx.RasterTarget implementation
// backed by the standard image.RGBA buffer, so a caller can get pixels onto
// screen or disk without hand-rolling a RasterTarget of its own. Grounded on
// cogentcore-core's core/renderwindow.go and core/image.go, which composite
// an offscreen image.RGBA onto a window surface via golang.org/x/image/draw
// rather than a raw byte blit, so a source and destination of different
// sizes/scales can still be presented.
package rastertarget

import (
	"image"
	"image/color"

	"golang.org/x/image/draw"

	tgx "github.com/FASTSHIFT/tgx-go"
)

var _ tgx.RasterTarget[tgx.RGBA8888] = (*Target)(nil)

// Target is a tgx.RasterTarget[tgx.RGBA8888] backed by an *image.RGBA. The
// byte layout of RGBA8888 (R,G,B,A order) matches image.RGBA's pixel format
// directly, so Set is a plain slice write with no per-pixel conversion.
type Target struct {
	img *image.RGBA
}

// New allocates a Target of the given pixel dimensions.
func New(w, h int) *Target {
	return &Target{img: image.NewRGBA(image.Rect(0, 0, w, h))}
}

func (t *Target) Width() int  { return t.img.Rect.Dx() }
func (t *Target) Height() int { return t.img.Rect.Dy() }

func (t *Target) Set(x, y int, p tgx.RGBA8888) {
	i := t.img.PixOffset(x, y)
	pix := t.img.Pix[i : i+4 : i+4]
	pix[0], pix[1], pix[2], pix[3] = p.R, p.G, p.B, p.A
}

// Clear fills the buffer with a uniform color, matching the clear step every
// RasterTarget owner performs before each frame (§4, "Scheduling model").
func (t *Target) Clear(c tgx.RGBA8888) {
	col := color.RGBA{R: c.R, G: c.G, B: c.B, A: c.A}
	for y := t.img.Rect.Min.Y; y < t.img.Rect.Max.Y; y++ {
		for x := t.img.Rect.Min.X; x < t.img.Rect.Max.X; x++ {
			t.img.SetRGBA(x, y, col)
		}
	}
}

// Image exposes the underlying buffer, e.g. to hand to image/png.Encode.
func (t *Target) Image() *image.RGBA { return t.img }

// Present scales the rendered frame into dst at dst's own resolution using a
// bilinear filter, the same draw.Drawer-based approach cogentcore's
// RenderWindow uses to composite a Scene's pixels onto the actual window
// surface rather than assuming a 1:1 pixel mapping.
func (t *Target) Present(dst draw.Image) {
	draw.BiLinear.Scale(dst, dst.Bounds(), t.img, t.img.Bounds(), draw.Src, nil)
}

package tgx

import (
	"math"
	"testing"
)

// memTarget is a simple in-memory RasterTarget for tests.
type memTarget struct {
	w, h int
	pix  []RGBf
}

func newMemTarget(w, h int) *memTarget { return &memTarget{w: w, h: h, pix: make([]RGBf, w*h)} }
func (m *memTarget) Width() int        { return m.w }
func (m *memTarget) Height() int       { return m.h }
func (m *memTarget) Set(x, y int, p RGBf) {
	m.pix[y*m.w+x] = p
}
func (m *memTarget) nonBackground(bg RGBf) int {
	n := 0
	for _, p := range m.pix {
		if p != bg {
			n++
		}
	}
	return n
}

func newTestRenderer(w, h int, depthTest bool) (*Renderer[RGBf], *memTarget) {
	r := New[RGBf](Config{Width: w, Height: h, DepthTest: depthTest})
	target := newMemTarget(w, h)
	r.AttachTarget(target)
	if depthTest {
		depth := make([]float32, w*h)
		r.AttachDepthBuffer(depth)
		r.ClearDepthBuffer()
	}
	return r, target
}

func TestDrawTriangleReturnCodes(t *testing.T) {
	r := New[RGBf](Config{Width: 4, Height: 4})
	tri := func() int {
		v0 := Vertex{Pos: Vec3{X: -1, Y: -1, Z: -2}}
		v1 := Vertex{Pos: Vec3{X: 1, Y: -1, Z: -2}}
		v2 := Vertex{Pos: Vec3{X: 0, Y: 1, Z: -2}}
		return r.DrawTriangle(v0, v1, v2, false, false, FlagFlat, nil, FilterNearest, WrapRepeat)
	}

	if code := tri(); code != ErrNoTarget {
		t.Fatalf("no target: got %d, want %d", code, ErrNoTarget)
	}

	r.AttachTarget(newMemTarget(4, 4))
	r.cfg.DepthTest = true
	if code := tri(); code != ErrNoDepthBuffer {
		t.Fatalf("no depth buffer: got %d, want %d", code, ErrNoDepthBuffer)
	}

	r.AttachDepthBuffer(make([]float32, 16))
	if code := tri(); code != Success {
		t.Fatalf("fully attached: got %d, want %d", code, Success)
	}
}

func TestDrawMeshMissingGeometryReturnsError(t *testing.T) {
	r, _ := newTestRenderer(4, 4, false)
	if code := r.DrawMesh(&Mesh{}, FlagFlat, false); code != ErrMissingGeometry {
		t.Fatalf("got %d, want %d", code, ErrMissingGeometry)
	}
}

func TestBackFaceCulling(t *testing.T) {
	ccw := [3]Vertex{
		{Pos: Vec3{X: -1, Y: -1, Z: -2}},
		{Pos: Vec3{X: 1, Y: -1, Z: -2}},
		{Pos: Vec3{X: 0, Y: 1, Z: -2}},
	}
	cw := [3]Vertex{ccw[0], ccw[2], ccw[1]}

	draw := func(v [3]Vertex, cull CullDirection) int {
		r, target := newTestRenderer(8, 8, false)
		r.SetPerspective(1.2, 1, 1, 10)
		r.SetLightColors(RGBfWhite, RGBfBlack, RGBfBlack)
		r.SetCulling(cull)
		r.DrawTriangle(v[0], v[1], v[2], false, false, FlagFlat, nil, FilterNearest, WrapRepeat)
		return target.nonBackground(RGBfBlack)
	}

	if n := draw(ccw, CullCW); n == 0 {
		t.Fatal("CullCW should keep a CCW-wound triangle")
	}
	if n := draw(cw, CullCW); n != 0 {
		t.Fatal("CullCW should discard a CW-wound triangle")
	}
	if n := draw(cw, CullNone); n == 0 {
		t.Fatal("CullNone should render regardless of winding")
	}
}

func TestCoarseClipDiscardsOutOfBoundsTriangle(t *testing.T) {
	r, target := newTestRenderer(8, 8, false)
	r.SetPerspective(1.2, 1, 1, 10)
	r.SetLightColors(RGBfWhite, RGBfBlack, RGBfBlack)
	far := Vertex{Pos: Vec3{X: 1000, Y: 1000, Z: -2}}
	near := Vertex{Pos: Vec3{X: 1001, Y: -1000, Z: -2}}
	near2 := Vertex{Pos: Vec3{X: -1000, Y: 1001, Z: -2}}
	r.DrawTriangle(far, near, near2, false, false, FlagFlat, nil, FilterNearest, WrapRepeat)
	if n := target.nonBackground(RGBfBlack); n != 0 {
		t.Fatalf("expected full discard, got %d lit pixels", n)
	}
}

func TestDepthTestNearerWins(t *testing.T) {
	r, target := newTestRenderer(8, 8, true)
	r.SetOrtho(-1, 1, -1, 1, 0.1, 10)
	r.SetLightColors(RGBfWhite, RGBfBlack, RGBfBlack)
	r.SetMaterial(Material{Color: RGBf{R: 1}, AmbientStrength: 1})

	full := [4]Vertex{
		{Pos: Vec3{X: -1, Y: -1, Z: -5}},
		{Pos: Vec3{X: 1, Y: -1, Z: -5}},
		{Pos: Vec3{X: -1, Y: 1, Z: -5}},
		{Pos: Vec3{X: 1, Y: 1, Z: -5}},
	}
	_ = full

	drawFar := func() {
		r.SetMaterial(Material{Color: RGBfWhite, AmbientStrength: 1})
		r.DrawQuad(
			Vertex{Pos: Vec3{X: -1, Y: -1, Z: -9}}, Vertex{Pos: Vec3{X: 1, Y: -1, Z: -9}},
			Vertex{Pos: Vec3{X: 1, Y: 1, Z: -9}}, Vertex{Pos: Vec3{X: -1, Y: 1, Z: -9}},
			false, false, FlagFlat, nil, FilterNearest, WrapRepeat)
	}
	drawNear := func() {
		r.SetMaterial(Material{Color: RGBf{R: 1}, AmbientStrength: 1})
		r.DrawQuad(
			Vertex{Pos: Vec3{X: -1, Y: -1, Z: -2}}, Vertex{Pos: Vec3{X: 1, Y: -1, Z: -2}},
			Vertex{Pos: Vec3{X: 1, Y: 1, Z: -2}}, Vertex{Pos: Vec3{X: -1, Y: 1, Z: -2}},
			false, false, FlagFlat, nil, FilterNearest, WrapRepeat)
	}

	r.ClearDepthBuffer()
	drawFar()
	drawNear()
	red := target.pix[4*8+4]
	if red.R < 0.9 || red.G > 0.1 {
		t.Fatalf("far-then-near: center pixel = %+v, want red", red)
	}

	r.ClearDepthBuffer()
	target2 := newMemTarget(8, 8)
	r.AttachTarget(target2)
	drawNear()
	drawFar()
	red2 := target2.pix[4*8+4]
	if red2.R < 0.9 || red2.G > 0.1 {
		t.Fatalf("near-then-far: center pixel = %+v, want red (depth test must reject the far fragment)", red2)
	}
}

// Transform identity (§8): identity model/view, ambient-only white light,
// white material, triangle ((-1,-1,-2),(1,-1,-2),(0,1,-2)) under a 45°/1:1
// perspective with zNear=1, zFar=10. The view-space triangle has edges of
// slope ±2 (base from y=-1 to y=1 over x=-1 to 0/0 to 1), so under the
// uniform x,y ndc scale factor 1/s = (1+sqrt(2))/2 this perspective produces
// (s = 2*tan(22.5°)), its NDC image keeps those same ±2 slopes — only
// scaled past the [-1,1] viewport on both axes, clipping the two top
// corners. The exact visible-fraction of the viewport is a closed form,
// (5+10*sqrt(2))/32 ≈ 0.598192, derived by intersecting the scaled triangle
// with the unit square; the rasterizer's pixel-center sampling should match
// that analytic area to within 1% at a large enough viewport resolution.
func TestTransformIdentityAnalyticArea(t *testing.T) {
	const res = 256
	r, target := newTestRenderer(res, res, false)
	r.SetPerspective(math.Pi/4, 1, 1, 10)
	r.SetLightColors(RGBfWhite, RGBfBlack, RGBfBlack)
	r.SetMaterial(Material{Color: RGBfWhite, AmbientStrength: 1})
	r.SetCulling(CullNone)

	v0 := Vertex{Pos: Vec3{X: -1, Y: -1, Z: -2}}
	v1 := Vertex{Pos: Vec3{X: 1, Y: -1, Z: -2}}
	v2 := Vertex{Pos: Vec3{X: 0, Y: 1, Z: -2}}
	if code := r.DrawTriangle(v0, v1, v2, false, false, FlagFlat, nil, FilterNearest, WrapRepeat); code != Success {
		t.Fatalf("DrawTriangle returned %d", code)
	}

	lit := target.nonBackground(RGBfBlack)
	wantFraction := (5 + 10*math.Sqrt2) / 32
	want := wantFraction * float64(res*res)
	tolerance := 0.01 * want
	if math.Abs(float64(lit)-want) > tolerance {
		t.Fatalf("got %d lit pixels, want %.1f +/- %.1f (%.4f%% of viewport)", lit, want, tolerance, wantFraction*100)
	}
}

// Ortho vs perspective parity at depth 0 (§8): a triangle whose three
// vertices all sit exactly at view-space z=0 trips the coarse-clip's
// "any vertex at view-space z >= 0 is dropped entirely" rule (the very
// first check in coarseClipTest) regardless of projection mode — under
// perspective it is additionally unprojectable (w = -z = 0, division
// undefined), but the outcome is the same either way: zero pixels drawn.
// That shared empty result is the "same pixel set" parity the property
// asks for.
func TestOrthoPerspectiveParityAtDepthZero(t *testing.T) {
	draw := func(setProj func(r *Renderer[RGBf])) int {
		r, target := newTestRenderer(16, 16, false)
		setProj(r)
		r.SetLightColors(RGBfWhite, RGBfBlack, RGBfBlack)
		r.SetMaterial(Material{Color: RGBfWhite, AmbientStrength: 1})
		r.SetCulling(CullNone)

		v0 := Vertex{Pos: Vec3{X: -1, Y: -1, Z: 0}}
		v1 := Vertex{Pos: Vec3{X: 1, Y: -1, Z: 0}}
		v2 := Vertex{Pos: Vec3{X: 0, Y: 1, Z: 0}}
		r.DrawTriangle(v0, v1, v2, false, false, FlagFlat, nil, FilterNearest, WrapRepeat)
		return target.nonBackground(RGBfBlack)
	}

	orthoLit := draw(func(r *Renderer[RGBf]) { r.SetOrtho(-1, 1, -1, 1, -1, 1) })
	perspLit := draw(func(r *Renderer[RGBf]) { r.SetPerspective(math.Pi/2, 1, 0.5, 5) })

	if orthoLit != 0 || perspLit != 0 {
		t.Fatalf("triangle at view-space z=0 must draw nothing under either projection (ortho=%d perspective=%d lit pixels)", orthoLit, perspLit)
	}
}

// End-to-end scenario (§8): a 16x16 orthographic viewport, flat red
// triangle covering the lower-left half.
func TestEndToEndLowerLeftTriangle(t *testing.T) {
	r, target := newTestRenderer(16, 16, false)
	r.SetOrtho(-1, 1, -1, 1, 0.1, 10)
	r.SetLightColors(RGBfWhite, RGBfBlack, RGBfBlack)
	r.SetMaterial(Material{Color: RGBf{R: 1}, AmbientStrength: 1})
	r.SetCulling(CullNone)

	v0 := Vertex{Pos: Vec3{X: -1, Y: -1, Z: -1}}
	v1 := Vertex{Pos: Vec3{X: 1, Y: -1, Z: -1}}
	v2 := Vertex{Pos: Vec3{X: -1, Y: 1, Z: -1}}
	r.DrawTriangle(v0, v1, v2, false, false, FlagFlat, nil, FilterNearest, WrapRepeat)

	// Per-row span is x in [0, y) under the rasterizer's ceil(coord-0.5)
	// pixel-center fill rule (rasterizer.go), so the exact lit count is the
	// 15th triangular number: sum_{y=0}^{15} y = 120, not a plain half of
	// the 256-pixel image (the diagonal loses 8 pixels to the fill rule).
	const wantLit = 120
	if lit := target.nonBackground(RGBfBlack); lit != wantLit {
		t.Fatalf("got %d lit pixels, want exactly %d", lit, wantLit)
	}

	target2 := newMemTarget(16, 16)
	r.AttachTarget(target2)
	r.SetCulling(CullCW)
	r.DrawTriangle(v0, v2, v1, false, false, FlagFlat, nil, FilterNearest, WrapRepeat)
	if n := target2.nonBackground(RGBfBlack); n != 0 {
		t.Fatalf("CW winding under CullCW should draw nothing, got %d lit pixels", n)
	}
}

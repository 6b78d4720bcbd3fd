package tgx

import "math"

// RasterTarget is the external collaborator the spec places out of scope
// (§1, §3): a 2D array of pixels the renderer only ever touches through a
// write. Depth comparison is the renderer's own responsibility (the depth
// buffer is a separate attachment), so this interface is a plain pixel
// write, not a write-with-depth-compare.
type RasterTarget[P Pixel] interface {
	Width() int
	Height() int
	Set(x, y int, p P)
}

// derived holds every value that depends on M_view, M_model, the light, or
// a material strength (§4.6). It has no cyclic dependencies, so it is
// recomputed eagerly and atomically by whichever setter invalidates it —
// the same choice the teacher's "original" makes (§9), rather than a dirty
// bit.
type derived struct {
	modelView Mat4
	normInv   float64

	lInorm Vec3 // light direction (view space, surface->light), scaled by normInv
	hInorm Vec3 // half vector, scaled by normInv
	lUnit  Vec3 // unit-length light direction, for Flat shading's already-normalized face normal
	hUnit  Vec3 // unit-length half vector, for Flat shading

	ambient  RGBf // premultiplied: light.Ambient * material.AmbientStrength
	diffuse  RGBf // premultiplied: light.Diffuse * material.DiffuseStrength
	specular RGBf // premultiplied: light.Specular * material.SpecularStrength
	color    RGBf // effective object color (material.Color, swappable per-mesh, §4.4)
}

// Renderer is the long-lived per-frame-target context (§3). The pixel type
// is the compile-time knob from §6, carried as a type parameter since Go
// has no const generics; Config carries the remaining compile-time knobs
// (viewport size, depth-test, and — via the projection setters actually
// called — orthographic vs perspective).
type Renderer[P Pixel] struct {
	cfg Config

	ox, oy int // tile offset: position of the raster target within the viewport

	target RasterTarget[P]
	depth  []float32 // length >= Width*Height, required iff cfg.DepthTest

	projMatrix  Mat4 // Y-axis pre-inverted, as stored (§4.1)
	projMode    ProjectionMode
	viewMatrix  Mat4
	modelMatrix Mat4

	light    Light
	material Material
	cullDir  CullDirection

	d   derived
	pow *powTable
}

// New creates a renderer context for the given compile-time config. All
// matrices start as identity, culling is disabled, and the light/material
// take the defaults returned by NewLight/NewMaterial until the caller
// sets real scene state.
func New[P Pixel](cfg Config) *Renderer[P] {
	r := &Renderer[P]{
		cfg:         cfg,
		projMatrix:  Identity(),
		viewMatrix:  Identity(),
		modelMatrix: Identity(),
		light:       NewLight(),
		material:    NewMaterial(),
		cullDir:     CullNone,
		pow:         newPowTable(),
	}
	r.pow.rebuild(r.material.SpecularExponent)
	r.recomputeCamera()
	return r
}

// AttachTarget attaches the raster target the next draw calls render into.
func (r *Renderer[P]) AttachTarget(t RasterTarget[P]) { r.target = t }

// AttachDepthBuffer attaches the externally-owned depth buffer. Its length
// must be at least Width*Height when depth testing is enabled (§3).
func (r *Renderer[P]) AttachDepthBuffer(buf []float32) { r.depth = buf }

// ClearDepthBuffer resets every slot to +Inf (farthest possible), so the
// first write at each pixel always passes the "nearer wins" depth test.
//
// The spec's §9 open question flags that the original clears the depth
// buffer with a byte-wise zero fill (+0.0 under IEEE-754) and asks
// implementers to double-check the comparison polarity that clear value
// implies. We resolve that open question explicitly rather than inherit an
// ambiguous convention: depth here is the post-projection NDC z (near=-1,
// far=+1), "nearer" means numerically smaller, and the buffer is cleared to
// +Inf so every first write at a pixel succeeds regardless of the
// primitive's depth. See DESIGN.md.
func (r *Renderer[P]) ClearDepthBuffer() {
	for i := range r.depth {
		r.depth[i] = float32(maxDepth)
	}
}

var maxDepth = math.Inf(1)

// SetOffset sets the tile offset: where the raster target sits within the
// LX*LY viewport (§3, tile rendering).
func (r *Renderer[P]) SetOffset(ox, oy int) { r.ox, r.oy = ox, oy }

// SetCulling selects which winding is discarded (§6).
func (r *Renderer[P]) SetCulling(dir CullDirection) { r.cullDir = dir }

// SetOrtho, SetFrustum and SetPerspective set the projection matrix from
// parameters, pre-inverting its Y row at set time (§4.1) so no per-vertex
// flip is needed.
func (r *Renderer[P]) SetOrtho(left, right, bottom, top, near, far float64) {
	r.projMatrix = SetOrtho(left, right, bottom, top, near, far).InvertYAxis()
	r.projMode = Orthographic
}

func (r *Renderer[P]) SetFrustum(left, right, bottom, top, near, far float64) {
	r.projMatrix = SetFrustum(left, right, bottom, top, near, far).InvertYAxis()
	r.projMode = Perspective
}

func (r *Renderer[P]) SetPerspective(fovY, aspect, near, far float64) {
	r.projMatrix = SetPerspective(fovY, aspect, near, far).InvertYAxis()
	r.projMode = Perspective
}

// SetProjectionMatrix installs a caller-supplied projection matrix,
// pre-inverting its Y row (§4.1).
func (r *Renderer[P]) SetProjectionMatrix(m Mat4, mode ProjectionMode) {
	r.projMatrix = m.InvertYAxis()
	r.projMode = mode
}

// GetProjectionMatrix undoes the Y flip, presenting the matrix as the user
// supplied it (§4.1, the "Y-flip round trip" testable property).
func (r *Renderer[P]) GetProjectionMatrix() Mat4 { return r.projMatrix.InvertYAxis() }

func (r *Renderer[P]) ProjectionMode() ProjectionMode { return r.projMode }

// SetView installs the world->view matrix and recomputes the camera-derived
// cache (§4.6 dependency chain: M_view -> M_model_view -> norm-inverse ->
// L/H·inorm).
func (r *Renderer[P]) SetView(m Mat4) {
	r.viewMatrix = m
	r.recomputeCamera()
}

// SetLookAt is a convenience over SetView.
func (r *Renderer[P]) SetLookAt(eye, center, up Vec3) {
	r.SetView(SetLookAt(eye, center, up))
}

func (r *Renderer[P]) GetViewMatrix() Mat4 { return r.viewMatrix }

// SetModel installs the local->world matrix and recomputes the
// camera-derived cache.
func (r *Renderer[P]) SetModel(m Mat4) {
	r.modelMatrix = m
	r.recomputeCamera()
}

func (r *Renderer[P]) GetModelMatrix() Mat4 { return r.modelMatrix }

// SetLightDirection sets the world-space light direction and recomputes the
// light-derived cache (L_world -> L_view -> H -> L/H·inorm).
func (r *Renderer[P]) SetLightDirection(dir Vec3) {
	r.light.Direction = dir
	r.recomputeLight()
}

func (r *Renderer[P]) SetLightColors(ambient, diffuse, specular RGBf) {
	r.light.Ambient, r.light.Diffuse, r.light.Specular = ambient, diffuse, specular
	r.recomputeMaterial()
}

// SetMaterial sets the material color, strengths and specular exponent,
// recomputing the premultiplied light*strength cache and (lazily) the
// specular pow table.
func (r *Renderer[P]) SetMaterial(m Material) {
	r.material = m
	r.pow.rebuild(m.SpecularExponent)
	r.recomputeMaterial()
}

func (r *Renderer[P]) Material() Material { return r.material }

// useMaterial temporarily swaps in a mesh's own material for "use mesh
// material" draws (§4.4), returning a restore function.
func (r *Renderer[P]) useMaterial(m Material) func() {
	prev := r.material
	prevExp := r.pow.exponent
	r.material = m
	r.pow.rebuild(m.SpecularExponent)
	r.recomputeMaterial()
	return func() {
		r.material = prev
		r.pow.rebuild(prevExp)
		r.recomputeMaterial()
	}
}

// recomputeCamera re-derives everything rooted at M_view/M_model (§4.6).
func (r *Renderer[P]) recomputeCamera() {
	r.d.modelView = r.viewMatrix.Mul(r.modelMatrix)
	scaledZ := r.d.modelView.Mult0(Vec3{X: 0, Y: 0, Z: 1})
	n := scaledZ.Length()
	if n < 1e-12 {
		r.d.normInv = 1
	} else {
		r.d.normInv = 1.0 / n
	}
	r.recomputeLight()
}

// recomputeLight re-derives the view-space light vector and half-vector
// (§4.5): L is inverted so it points from the surface toward the source,
// and H approximates the view vector as the constant +Z in view space.
func (r *Renderer[P]) recomputeLight() {
	lView := r.viewMatrix.Mult0(r.light.Direction).Normalize()
	l := lView.Scale(-1)
	h := l.Add(Vec3{X: 0, Y: 0, Z: 1}).Normalize()

	r.d.lUnit = l
	r.d.hUnit = h
	r.d.lInorm = l.Scale(r.d.normInv)
	r.d.hInorm = h.Scale(r.d.normInv)
}

// recomputeMaterial re-derives the premultiplied ambient/diffuse/specular
// and the effective object color.
func (r *Renderer[P]) recomputeMaterial() {
	r.d.ambient = r.light.Ambient.Scale(r.material.AmbientStrength)
	r.d.diffuse = r.light.Diffuse.Scale(r.material.DiffuseStrength)
	r.d.specular = r.light.Specular.Scale(r.material.SpecularStrength)
	r.d.color = r.material.Color
}

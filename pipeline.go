package tgx

// Vertex is the caller-supplied per-vertex input (§3): position is always
// required, Normal and UV are only read when hasNormals/hasUV (passed
// separately to DrawTriangle/DrawQuad) say they are populated.
type Vertex struct {
	Pos    Vec3
	Normal Vec3
	UV     Vec2
}

// shadedVertex is a Vertex after view-space transform, projection and
// per-vertex shading, ready to be handed to the rasterizer.
type shadedVertex struct {
	screen Vec3 // x,y in NDC-ish space (pre-viewport), z is the depth-test value
	invW   float64
	light  RGBf // ambient+diffuse+specular, base color/texel NOT yet applied
	uv     Vec2
}

// project maps a view-space point through the stored (Y-flipped) projection
// matrix, producing the perspective-correct interpolation factor invW
// alongside it (§4.1): 1/w for perspective, 2-z for orthographic, chosen so
// 1/invW stays finite and positive in both modes.
func (r *Renderer[P]) project(view Vec3) (ndc Vec3, invW float64, ok bool) {
	if r.projMode == Perspective {
		clip := r.projMatrix.MulVec4(Vec4{X: view.X, Y: view.Y, Z: view.Z, W: 1})
		if clip.W <= 1e-12 {
			return Vec3{}, 0, false
		}
		invW = 1.0 / clip.W
		return Vec3{X: clip.X * invW, Y: clip.Y * invW, Z: clip.Z * invW}, invW, true
	}
	ndc = r.projMatrix.Mult1(view)
	return ndc, 2.0 - ndc.Z, true
}

// faceSign evaluates the back-face test (§4.2 step 2) from three view-space
// positions: the cross product of two edges dotted with the eye vector
// (perspective) or the constant -Z view direction (orthographic).
func (r *Renderer[P]) faceSign(q0, q1, q2 Vec3) float64 {
	n := q1.Sub(q0).Cross(q2.Sub(q0))
	if r.projMode == Orthographic {
		return n.Dot(Vec3{X: 0, Y: 0, Z: -1})
	}
	return n.Dot(q0)
}

// halfVector returns the view-space half-vector. By default it is the
// cached constant-+Z-view-direction approximation (§4.5); when
// cfg.ExactHalfVector is set (resolving the §9 open question) it is
// recomputed per vertex from the real view direction toward viewPos.
func (r *Renderer[P]) halfVector(l, viewPos Vec3) Vec3 {
	if !r.cfg.ExactHalfVector {
		return l.Add(Vec3{X: 0, Y: 0, Z: 1}).Normalize()
	}
	eye := viewPos.Scale(-1).Normalize()
	return l.Add(eye).Normalize()
}

// shadeVertex evaluates Phong lighting for one Gouraud vertex, dotting the
// transformed-but-not-renormalized model-space normal against the cached
// normInv-scaled light vector (§4.5, §4.6). The half-vector is recomputed
// exactly when requested since it depends on this vertex's own position.
func (r *Renderer[P]) shadeVertex(normal, viewPos Vec3) RGBf {
	n := r.d.modelView.Mult0(normal)
	vd := n.Dot(r.d.lInorm)
	h := r.d.hInorm
	if r.cfg.ExactHalfVector {
		l := r.d.lInorm.Normalize()
		h = r.halfVector(l, viewPos).Scale(r.d.normInv)
	}
	vs := n.Dot(h)
	return phong(r.d.ambient, r.d.diffuse, r.d.specular, vd, vs, r.pow, RGBf{}, false)
}

// shadeFace evaluates Phong lighting once for a Flat-shaded triangle, from
// the triangle's own (normalized) face normal against the unit light/half
// vectors. centroid is used for the exact half-vector when requested.
func (r *Renderer[P]) shadeFace(faceNormal Vec3, centroid Vec3) RGBf {
	n := faceNormal.Normalize()
	vd := n.Dot(r.d.lUnit)
	h := r.d.hUnit
	if r.cfg.ExactHalfVector {
		h = r.halfVector(r.d.lUnit, centroid)
	}
	vs := n.Dot(h)
	return phong(r.d.ambient, r.d.diffuse, r.d.specular, vd, vs, r.pow, RGBf{}, false)
}

// DrawTriangle implements §4.2: transform, cull, project, coarse-clip,
// shade, and hand off to the rasterizer. hasNormals/hasUV mask shading
// modes that the supplied vertices cannot support (§6): Gouraud without
// normals or Texture without UVs/an image silently downgrade rather than
// error.
func (r *Renderer[P]) DrawTriangle(v0, v1, v2 Vertex, hasNormals, hasUV bool, flags ShaderFlags, tex *Texture, filter TextureFilter, wrap TextureWrap) int {
	if r.target == nil {
		return ErrNoTarget
	}
	if r.cfg.DepthTest && len(r.depth) < r.cfg.Width*r.cfg.Height {
		return ErrNoDepthBuffer
	}

	flags = r.effectiveFlags(flags, hasNormals, hasUV, tex)

	q0 := r.d.modelView.Mult1(v0.Pos)
	q1 := r.d.modelView.Mult1(v1.Pos)
	q2 := r.d.modelView.Mult1(v2.Pos)

	if r.cullDir != CullNone {
		sign := r.faceSign(q0, q1, q2)
		if (r.cullDir == CullCW && sign > 0) || (r.cullDir == CullCCW && sign < 0) {
			return Success
		}
	}

	p0, w0, ok0 := r.project(q0)
	p1, w1, ok1 := r.project(q1)
	p2, w2, ok2 := r.project(q2)
	if !ok0 || !ok1 || !ok2 {
		return Success
	}

	bound := coarseClipBound(r.cfg.Width, r.cfg.Height)
	if !coarseClipTest([3]float64{q0.Z, q1.Z, q2.Z}, [3]Vec3{p0, p1, p2}, bound) {
		return Success
	}

	sv0 := shadedVertex{screen: p0, invW: w0, uv: v0.UV}
	sv1 := shadedVertex{screen: p1, invW: w1, uv: v1.UV}
	sv2 := shadedVertex{screen: p2, invW: w2, uv: v2.UV}

	if flags&FlagGouraud != 0 {
		sv0.light = r.shadeVertex(v0.Normal, q0)
		sv1.light = r.shadeVertex(v1.Normal, q1)
		sv2.light = r.shadeVertex(v2.Normal, q2)
	} else {
		centroid := q0.Add(q1).Add(q2).Scale(1.0 / 3.0)
		c := r.shadeFace(q1.Sub(q0).Cross(q2.Sub(q0)), centroid)
		sv0.light, sv1.light, sv2.light = c, c, c
	}

	r.rasterizeTriangle(sv0, sv1, sv2, flags, tex, filter, wrap)
	return Success
}

// DrawQuad implements §4.3: two triangles sharing a single cull decision and
// an all-four-or-nothing coarse clip, rather than two independent
// DrawTriangle calls that might clip one half and keep the other.
func (r *Renderer[P]) DrawQuad(v0, v1, v2, v3 Vertex, hasNormals, hasUV bool, flags ShaderFlags, tex *Texture, filter TextureFilter, wrap TextureWrap) int {
	if r.target == nil {
		return ErrNoTarget
	}
	if r.cfg.DepthTest && len(r.depth) < r.cfg.Width*r.cfg.Height {
		return ErrNoDepthBuffer
	}

	flags = r.effectiveFlags(flags, hasNormals, hasUV, tex)

	q := [4]Vec3{
		r.d.modelView.Mult1(v0.Pos), r.d.modelView.Mult1(v1.Pos),
		r.d.modelView.Mult1(v2.Pos), r.d.modelView.Mult1(v3.Pos),
	}

	if r.cullDir != CullNone {
		sign := r.faceSign(q[0], q[1], q[2])
		if (r.cullDir == CullCW && sign > 0) || (r.cullDir == CullCCW && sign < 0) {
			return Success
		}
	}

	var p [4]Vec3
	var w [4]float64
	for i := 0; i < 4; i++ {
		pi, wi, ok := r.project(q[i])
		if !ok {
			return Success
		}
		p[i], w[i] = pi, wi
	}

	bound := coarseClipBound(r.cfg.Width, r.cfg.Height)
	viewZ := [3]float64{q[0].Z, q[1].Z, q[2].Z}
	proj := [3]Vec3{p[0], p[1], p[2]}
	if !coarseClipTest(viewZ, proj, bound) {
		return Success
	}
	viewZ2 := [3]float64{q[0].Z, q[2].Z, q[3].Z}
	proj2 := [3]Vec3{p[0], p[2], p[3]}
	if !coarseClipTest(viewZ2, proj2, bound) {
		return Success
	}

	verts := [4]Vertex{v0, v1, v2, v3}
	var sv [4]shadedVertex
	for i := 0; i < 4; i++ {
		sv[i] = shadedVertex{screen: p[i], invW: w[i], uv: verts[i].UV}
	}

	if flags&FlagGouraud != 0 {
		for i := 0; i < 4; i++ {
			sv[i].light = r.shadeVertex(verts[i].Normal, q[i])
		}
	} else {
		centroid := q[0].Add(q[1]).Add(q[2]).Add(q[3]).Scale(0.25)
		c := r.shadeFace(q[1].Sub(q[0]).Cross(q[2].Sub(q[0])), centroid)
		for i := 0; i < 4; i++ {
			sv[i].light = c
		}
	}

	r.rasterizeTriangle(sv[0], sv[1], sv[2], flags, tex, filter, wrap)
	r.rasterizeTriangle(sv[0], sv[2], sv[3], flags, tex, filter, wrap)
	return Success
}

func (r *Renderer[P]) effectiveFlags(flags ShaderFlags, hasNormals, hasUV bool, tex *Texture) ShaderFlags {
	if !hasNormals {
		flags &^= FlagGouraud
	}
	if !hasUV || tex == nil {
		flags &^= FlagTexture
	}
	if flags&(FlagFlat|FlagGouraud) == 0 {
		flags |= FlagFlat
	}
	return flags
}

package tgx

// Mesh is the packed indexed-geometry container (§6): a non-owning view
// over caller-supplied slices plus a face stream of run-length triangle
// chains. Grounded on the teacher's Mesh (mesh.go, AddTriangle/AddQuad) and
// its bounding-volume code (bounding_volumes.go, frustrum.go), reworked
// into the chain/vertex-index binary layout the spec names instead of a
// flat triangle-list mesh.
type Mesh struct {
	Vertices  []Vec3
	Normals   []Vec3 // optional; nil means no per-vertex normals
	TexCoords []Vec2 // optional; nil means no UVs
	Texture   *Texture

	// Faces is the run-length chain stream (§6):
	//   stream  := chain* 0
	//   chain   := N vertex_rec vertex_rec vertex_rec (succ_rec){N-1}
	//   vertex_rec := vid [tid] [nid]
	//   succ_rec   := (vid | vid|0x8000) [tid] [nid]
	Faces []uint16

	// BoundingBox is {xmin,xmax,ymin,ymax,zmin,zmax} in model space. All
	// zero means uninitialized; the coarse discard test is then skipped.
	BoundingBox [6]float64

	Material Material
	Next     *Mesh
}

const meshChainTerminator = 0
const meshSuccessorTopBit = uint16(0x8000)

// meshSlot is one of the three vertex slots the chain decoder keeps live
// (§6, "Traversal keeps three slots"): the shaded/projected attributes for
// a vertex index, plus whether its projection succeeded. A slot is computed
// once when its vertex enters and is reused while it stays in the strip.
type meshSlot struct {
	vid    int
	view   Vec3
	ndc    Vec3
	invW   float64
	ok     bool // projection succeeded; false means any triangle using this slot is discarded
	light  RGBf
	uv     Vec2
}

// DrawMesh implements §4.4: bounding-box coarse discard, then chain
// decoding with three-slot caching and the top-bit predecessor-retention
// rule, following the linked list of meshes via Next. useMeshMaterial
// temporarily swaps each mesh's own material into the derived cache for
// the duration of its chain (§4.4, "use mesh material").
func (r *Renderer[P]) DrawMesh(m *Mesh, flags ShaderFlags, useMeshMaterial bool) int {
	if r.target == nil {
		return ErrNoTarget
	}
	if r.cfg.DepthTest && len(r.depth) < r.cfg.Width*r.cfg.Height {
		return ErrNoDepthBuffer
	}

	for cur := m; cur != nil; cur = cur.Next {
		if len(cur.Vertices) == 0 || len(cur.Faces) == 0 {
			return ErrMissingGeometry
		}

		restore := func() {}
		if useMeshMaterial {
			restore = r.useMaterial(cur.Material)
		}

		discard, cliptestNeeded := r.meshBoundsTest(cur)
		if !discard {
			r.decodeChain(cur, flags, cliptestNeeded)
		}
		restore()
	}
	return Success
}

// meshBoundsTest projects the mesh's eight AABB corners through
// M_proj*M_model_view and evaluates the two coarse tests from §4.4. A
// zero bounding box skips the optimization entirely (conservative: never
// discard, always clip-test per triangle).
func (r *Renderer[P]) meshBoundsTest(m *Mesh) (discard bool, cliptestNeeded bool) {
	bb := m.BoundingBox
	if bb == ([6]float64{}) {
		return false, true
	}

	bound := coarseClipBound(r.cfg.Width, r.cfg.Height)
	corners := [8]Vec3{
		{X: bb[0], Y: bb[2], Z: bb[4]}, {X: bb[1], Y: bb[2], Z: bb[4]},
		{X: bb[0], Y: bb[3], Z: bb[4]}, {X: bb[1], Y: bb[3], Z: bb[4]},
		{X: bb[0], Y: bb[2], Z: bb[5]}, {X: bb[1], Y: bb[2], Z: bb[5]},
		{X: bb[0], Y: bb[3], Z: bb[5]}, {X: bb[1], Y: bb[3], Z: bb[5]},
	}

	// One bit per frustum plane: xlo, xhi, ylo, yhi, zlo, zhi.
	allFail := [6]bool{true, true, true, true, true, true}
	allInside := true

	for _, c := range corners {
		view := r.d.modelView.Mult1(c)
		ndc, _, ok := r.project(view)
		if !ok {
			// Unprojectable: the corner is at or behind the eye, so it lies
			// outside the near plane (zlo) and inside no other plane test.
			for i := 0; i < 6; i++ {
				allFail[i] = allFail[i] && i == 4
			}
			allInside = false
			continue
		}
		fail := [6]bool{
			ndc.X < -bound, ndc.X > bound,
			ndc.Y < -bound, ndc.Y > bound,
			ndc.Z < -1, ndc.Z > 1,
		}
		for i := 0; i < 6; i++ {
			allFail[i] = allFail[i] && fail[i]
			if fail[i] {
				allInside = false
			}
		}
	}

	for i := 0; i < 6; i++ {
		if allFail[i] {
			return true, false
		}
	}
	return false, !allInside
}

// decodeChain walks one mesh's face stream (§6), emitting one triangle per
// chain step and reusing slot attributes across the strip.
func (r *Renderer[P]) decodeChain(m *Mesh, flags ShaderFlags, cliptestNeeded bool) {
	hasNormals := m.Normals != nil
	hasUV := m.TexCoords != nil
	flags = r.effectiveFlags(flags, hasNormals, hasUV, m.Texture)

	faces := m.Faces
	i := 0
	readU16 := func() uint16 {
		v := faces[i]
		i++
		return v
	}

	for i < len(faces) {
		n := readU16()
		if n == meshChainTerminator {
			return
		}

		var slots [3]meshSlot
		for s := 0; s < 3; s++ {
			vid := int(readU16())
			var tid, nid int
			if hasUV {
				tid = int(readU16())
			}
			if hasNormals {
				nid = int(readU16())
			}
			slots[s] = r.computeMeshSlot(m, vid, tid, nid, flags)
		}
		r.emitMeshTriangle(slots, flags, m.Texture, cliptestNeeded)

		for t := uint16(1); t < n; t++ {
			raw := readU16()
			top := raw&meshSuccessorTopBit != 0
			vid := int(raw &^ meshSuccessorTopBit)
			var tid, nid int
			if hasUV {
				tid = int(readU16())
			}
			if hasNormals {
				nid = int(readU16())
			}

			// top bit clear: keep vertex 1 of the previous triangle, so
			// slot 0 is the one displaced by the old slot 2 (§6).
			// top bit set: keep vertex 0, so slot 1 is displaced instead.
			if top {
				slots[1], slots[2] = slots[2], slots[1]
			} else {
				slots[0], slots[2] = slots[2], slots[0]
			}
			slots[2] = r.computeMeshSlot(m, vid, tid, nid, flags)

			r.emitMeshTriangle(slots, flags, m.Texture, cliptestNeeded)
		}
	}
}

func (r *Renderer[P]) computeMeshSlot(m *Mesh, vid, tid, nid int, flags ShaderFlags) meshSlot {
	var slot meshSlot
	slot.vid = vid
	slot.view = r.d.modelView.Mult1(m.Vertices[vid])
	ndc, invW, ok := r.project(slot.view)
	slot.ndc, slot.invW, slot.ok = ndc, invW, ok

	if flags&FlagGouraud != 0 && m.Normals != nil {
		slot.light = r.shadeVertex(m.Normals[nid], slot.view)
	}
	if m.TexCoords != nil {
		slot.uv = m.TexCoords[tid]
	}
	return slot
}

func (r *Renderer[P]) emitMeshTriangle(slots [3]meshSlot, flags ShaderFlags, tex *Texture, cliptestNeeded bool) {
	if !slots[0].ok || !slots[1].ok || !slots[2].ok {
		return
	}

	if r.cullDir != CullNone {
		sign := r.faceSign(slots[0].view, slots[1].view, slots[2].view)
		if (r.cullDir == CullCW && sign > 0) || (r.cullDir == CullCCW && sign < 0) {
			return
		}
	}

	if cliptestNeeded {
		bound := coarseClipBound(r.cfg.Width, r.cfg.Height)
		viewZ := [3]float64{slots[0].view.Z, slots[1].view.Z, slots[2].view.Z}
		proj := [3]Vec3{slots[0].ndc, slots[1].ndc, slots[2].ndc}
		if !coarseClipTest(viewZ, proj, bound) {
			return
		}
	}

	sv := [3]shadedVertex{
		{screen: slots[0].ndc, invW: slots[0].invW, uv: slots[0].uv, light: slots[0].light},
		{screen: slots[1].ndc, invW: slots[1].invW, uv: slots[1].uv, light: slots[1].light},
		{screen: slots[2].ndc, invW: slots[2].invW, uv: slots[2].uv, light: slots[2].light},
	}

	if flags&FlagGouraud == 0 {
		centroid := slots[0].view.Add(slots[1].view).Add(slots[2].view).Scale(1.0 / 3.0)
		c := r.shadeFace(slots[1].view.Sub(slots[0].view).Cross(slots[2].view.Sub(slots[0].view)), centroid)
		sv[0].light, sv[1].light, sv[2].light = c, c, c
	}

	r.rasterizeTriangle(sv[0], sv[1], sv[2], flags, tex, FilterNearest, WrapRepeat)
}

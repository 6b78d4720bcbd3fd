package tgx

import "testing"

func imagesEqual(t *testing.T, a, b *memTarget) {
	t.Helper()
	if a.w != b.w || a.h != b.h {
		t.Fatalf("size mismatch")
	}
	for i := range a.pix {
		if a.pix[i] != b.pix[i] {
			t.Fatalf("pixel %d differs: %+v vs %+v", i, a.pix[i], b.pix[i])
		}
	}
}

// TestMeshStripEquivalence: a mesh encoded as one strip chain of N
// triangles must render identically to the same N triangles encoded as N
// separate one-triangle chains (§8).
func TestMeshStripEquivalence(t *testing.T) {
	verts := []Vec3{
		{X: -1, Y: -1, Z: -3}, {X: 0, Y: -1, Z: -3}, {X: 1, Y: -1, Z: -3},
		{X: -1, Y: 0, Z: -3}, {X: 0, Y: 0, Z: -3}, {X: 1, Y: 0, Z: -3},
	}
	// First triangle (0,1,3); the successor's top bit is set, so per the
	// decoder's rule it keeps slot 0 (vertex 0) and displaces slot 1 with
	// the old slot 2, producing triangle (0,3,4) — see mesh.go decodeChain.
	chain := []uint16{
		2, // N=2
		0, 1, 3, // vertex_rec x3 (vid only, no uv/normals on this mesh)
		0x8000 | 4, // successor: top bit set -> keep slot0(=0), displace slot1 with old slot2(=3), new vertex 4
		0,          // terminator
	}

	oneByOne := []uint16{
		1, 0, 1, 3,
		1, 0, 3, 4, // second triangle must equal what the strip decoder would have produced: (slot0=0, slot2(old)=3, new=4)
		0,
	}

	run := func(faces []uint16) *memTarget {
		r, target := newTestRenderer(12, 12, false)
		r.SetOrtho(-2, 2, -2, 2, 0.1, 10)
		r.SetLightColors(RGBfWhite, RGBfBlack, RGBfBlack)
		r.SetMaterial(Material{Color: RGBfWhite, AmbientStrength: 1})
		r.SetCulling(CullNone)
		m := &Mesh{Vertices: verts, Faces: faces}
		if code := r.DrawMesh(m, FlagFlat, false); code != Success {
			t.Fatalf("DrawMesh returned %d", code)
		}
		return target
	}

	a := run(chain)
	b := run(oneByOne)
	imagesEqual(t, a, b)
}

func TestMeshBoundsTestSkipsUninitializedBox(t *testing.T) {
	r, _ := newTestRenderer(8, 8, false)
	discard, cliptestNeeded := r.meshBoundsTest(&Mesh{})
	if discard {
		t.Fatal("zero bounding box must never trigger discard")
	}
	if !cliptestNeeded {
		t.Fatal("zero bounding box must conservatively require per-triangle clip tests")
	}
}

func TestMeshBoundsTestDiscardsFarAwayBox(t *testing.T) {
	r, _ := newTestRenderer(8, 8, false)
	r.SetPerspective(0.5, 1, 1, 100)
	discard, _ := r.meshBoundsTest(&Mesh{BoundingBox: [6]float64{990, 991, 990, 991, 990, 991}})
	if !discard {
		t.Fatal("far-off-axis bounding box should be discarded")
	}
}

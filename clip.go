package tgx

// coarseClipTest implements §4.2 step 4: a conservative reject, never an
// exact clip. The teacher's clipping.go instead splits a triangle that
// straddles the near plane into up to two new triangles (Sutherland-
// Hodgman-flavored near-plane clipping) — the spec's Non-goals explicitly
// rule that out as a deliberate performance/simplicity tradeoff, so here a
// primitive with any vertex that would need clipping is dropped whole.
//
// viewZ are the view-space Z coordinates (pre-projection) of each vertex;
// projected are the post-projection (x, y, z) in NDC-ish space (already
// divided by w for perspective, or with w replaced by 2-z for ortho).
// bound is coarseClipBound(width, height).
func coarseClipTest(viewZ [3]float64, projected [3]Vec3, bound float64) bool {
	for i := 0; i < 3; i++ {
		if viewZ[i] >= 0 {
			return false
		}
		p := projected[i]
		if p.X < -bound || p.X > bound || p.Y < -bound || p.Y > bound {
			return false
		}
		if p.Z < -1 || p.Z > 1 {
			return false
		}
	}
	return true
}

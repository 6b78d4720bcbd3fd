package tgx

import "testing"

// Idempotence of setters (§8): calling SetModel(M) twice with the same M is
// indistinguishable from calling it once — every derived field must be
// identical bit-for-bit, since derived is recomputed eagerly and atomically
// with no dirty-bit skip (§9).
func TestSetModelIdempotent(t *testing.T) {
	r := New[RGBf](Config{Width: 4, Height: 4})
	r.SetLightDirection(Vec3{X: 1, Y: -1, Z: 1})

	m := SetLookAt(Vec3{X: 2, Y: 3, Z: 5}, Vec3{X: 0, Y: 1, Z: 0}, Vec3{X: 0, Y: 1, Z: 0})
	r.SetModel(m)
	once := r.d

	r.SetModel(m)
	twice := r.d

	if once != twice {
		t.Fatalf("derived cache differs after a repeated SetModel(M) call:\nonce:  %+v\ntwice: %+v", once, twice)
	}
}

package tgx

// ProjectionMode selects the orthographic/perspective compile-time knob
// (§6): orthographic skips the perspective divide, perspective performs it.
type ProjectionMode int

const (
	Orthographic ProjectionMode = iota
	Perspective
)

// Config holds the compile-time knobs a Renderer is built with: viewport
// size and depth-test on/off. The projection mode is not part of Config; it
// follows whichever projection setter was last called. The teacher specializes
// these as package-level constants (constants.go); here they are carried by
// value so independent Renderer[P] contexts with different viewports can
// coexist in the same process (§5).
type Config struct {
	Width, Height int // LX, LY in [1, 2048]
	DepthTest     bool

	// ExactHalfVector resolves the §9 open question: when true, the
	// half-vector is recomputed per vertex from the real view direction
	// instead of the cached constant-+Z approximation (§4.5). Off by
	// default, matching the spec's documented approximation.
	ExactHalfVector bool
}

// ShaderFlags is the bitmask of shading modes a draw call may request (§6).
type ShaderFlags uint8

const (
	FlagFlat ShaderFlags = 1 << iota
	FlagGouraud
	FlagTexture
)

// Return codes for draw methods (§6). Zero covers both "drawn" and
// "discarded; nothing drawn" — degenerate primitives are not an error.
const (
	Success            = 0
	ErrNoTarget        = -1
	ErrNoDepthBuffer   = -2
	ErrMissingGeometry = -3
)

// CullDirection selects which winding is discarded by back-face culling.
type CullDirection int

const (
	CullCCW     CullDirection = -1 // discard counter-clockwise-facing triangles
	CullNone    CullDirection = 0
	CullCW      CullDirection = 1 // discard clockwise-facing triangles
)

// coarseClipBound returns the conservative NDC-ish bound used by the §4.2
// step-4 coarse clip test: bound = 2048 / max(LX, LY).
func coarseClipBound(width, height int) float64 {
	m := width
	if height > m {
		m = height
	}
	return 2048.0 / float64(m)
}

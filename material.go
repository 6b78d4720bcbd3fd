package tgx

// Material holds surface lighting parameters (§3), grounded on the
// teacher's Material (lighting.go) trimmed to what the spec's Phong
// evaluator actually consumes: no PBR metallic/roughness, no wireframe
// flag — those are non-goals here (programmable shaders, PBR).
type Material struct {
	Color            RGBf
	AmbientStrength  float64
	DiffuseStrength  float64
	SpecularStrength float64
	SpecularExponent int
}

func NewMaterial() Material {
	return Material{
		Color:            RGBfWhite,
		AmbientStrength:  0.1,
		DiffuseStrength:  1.0,
		SpecularStrength: 0.5,
		SpecularExponent: 32,
	}
}

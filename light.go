package tgx

// Light is the renderer's single directional light (§3). Non-goals exclude
// multi-light accumulation, so unlike the teacher's LightingSystem ([]Light
// with attenuation), there is exactly one light, carried in world space and
// transformed into view space by setters (§4.6).
type Light struct {
	Direction Vec3 // world space, pointing from the light toward the scene
	Ambient   RGBf
	Diffuse   RGBf
	Specular  RGBf
}

func NewLight() Light {
	return Light{
		Direction: Vec3{X: 0, Y: -1, Z: 0},
		Ambient:   RGBf{R: 0.1, G: 0.1, B: 0.1},
		Diffuse:   RGBfWhite,
		Specular:  RGBfWhite,
	}
}

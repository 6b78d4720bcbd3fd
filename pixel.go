package tgx

// Pixel enumerates the compile-time pixel-type knob (§6): the raster
// target's element type is fixed at compile time via the Renderer's type
// parameter, mirroring the teacher's single Color{R,G,B uint8} generalized
// to the spec's four knob values.
type Pixel interface {
	RGB565 | RGB888 | RGBA8888 | RGBf
}

// RGB565 packs 5/6/5 bits per channel into a single uint16, the classic
// embedded-framebuffer format.
type RGB565 uint16

// RGB888 is 24-bit truecolor, one byte per channel.
type RGB888 struct {
	R, G, B uint8
}

// RGBA8888 is 32-bit truecolor with alpha.
type RGBA8888 struct {
	R, G, B, A uint8
}

// RGBf is the float RGB pixel/color type, also used internally by the
// lighting evaluator regardless of the raster target's own pixel type.
type RGBf struct {
	R, G, B float64
}

var (
	RGBfBlack = RGBf{0, 0, 0}
	RGBfWhite = RGBf{1, 1, 1}
)

func (c RGBf) Clamp() RGBf {
	return RGBf{clamp(c.R, 0, 1), clamp(c.G, 0, 1), clamp(c.B, 0, 1)}
}

func (c RGBf) Add(o RGBf) RGBf {
	return RGBf{c.R + o.R, c.G + o.G, c.B + o.B}
}

func (c RGBf) Mul(o RGBf) RGBf {
	return RGBf{c.R * o.R, c.G * o.G, c.B * o.B}
}

func (c RGBf) Scale(s float64) RGBf {
	return RGBf{c.R * s, c.G * s, c.B * s}
}

func (c RGBf) Lerp(o RGBf, t float64) RGBf {
	return RGBf{Lerp(c.R, o.R, t), Lerp(c.G, o.G, t), Lerp(c.B, o.B, t)}
}

// ConvertPixel converts a clamped float color into the target pixel type P.
// Go has no const-generic dispatch, so the closed Pixel union is resolved
// with a type switch on the zero value.
func ConvertPixel[P Pixel](c RGBf) P {
	c = c.Clamp()
	var zero P
	switch any(zero).(type) {
	case RGB565:
		r := uint16(c.R*31 + 0.5)
		g := uint16(c.G*63 + 0.5)
		b := uint16(c.B*31 + 0.5)
		return any(RGB565(r<<11 | g<<5 | b)).(P)
	case RGB888:
		return any(RGB888{
			R: uint8(c.R*255 + 0.5),
			G: uint8(c.G*255 + 0.5),
			B: uint8(c.B*255 + 0.5),
		}).(P)
	case RGBA8888:
		return any(RGBA8888{
			R: uint8(c.R*255 + 0.5),
			G: uint8(c.G*255 + 0.5),
			B: uint8(c.B*255 + 0.5),
			A: 255,
		}).(P)
	case RGBf:
		return any(c).(P)
	default:
		return zero
	}
}

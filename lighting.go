package tgx

import "math"

// powTable precomputes specular pow(x, exponent) over 16 entries covering
// [1 - min(exp,8)/exp, 1] (§4.5), linearly interpolated between adjacent
// entries. Grounded on the teacher's use of math.Pow directly per pixel
// (its CalculateLighting); the spec trades exactness for a table lookup
// cheap enough for a microcontroller.
type powTable struct {
	exponent int
	lo       float64 // interval lower bound: 1 - min(exp,8)/exp
	entries  [16]float64
}

const powTableSize = 16

func newPowTable() *powTable {
	return &powTable{exponent: -1}
}

// rebuild recomputes the table for a new exponent; a no-op if the exponent
// is unchanged, so the Renderer can call this unconditionally from its
// material setter without needing a separate dirty flag.
func (pt *powTable) rebuild(exponent int) {
	if exponent == pt.exponent {
		return
	}
	pt.exponent = exponent
	if exponent <= 0 {
		for i := range pt.entries {
			pt.entries[i] = 1
		}
		pt.lo = 0
		return
	}

	span := float64(exponent)
	if span > 8 {
		span = 8
	}
	pt.lo = 1.0 - span/float64(exponent)

	for i := 0; i < powTableSize; i++ {
		x := pt.lo + (1.0-pt.lo)*float64(i)/float64(powTableSize-1)
		pt.entries[i] = math.Pow(x, float64(exponent))
	}
}

// eval approximates x^exponent by linear interpolation across the table.
// x below pt.lo yields 0 (§4.5); x is expected in [0,1].
func (pt *powTable) eval(x float64) float64 {
	if x < pt.lo {
		return 0
	}
	if x >= 1 {
		return 1
	}
	t := (x - pt.lo) / (1.0 - pt.lo) * float64(powTableSize-1)
	i := int(t)
	if i >= powTableSize-1 {
		return pt.entries[powTableSize-1]
	}
	frac := t - float64(i)
	return Lerp(pt.entries[i], pt.entries[i+1], frac)
}

// phong evaluates the Phong lighting model (§4.5):
//
//	color = ambient + diffuse*max(vDiffuse,0) + specular*pow(max(vSpecular,0), exponent)
//
// clamped to [0,1] per channel, where vDiffuse and vSpecular are the
// already norm-inverse-scaled N·L and N·H dot products computed by the
// caller. When applyBaseColor is set the result is additionally multiplied
// by baseColor. The renderer's shading paths always pass false: the
// rasterizer multiplies each pixel by the material color, or by the texel
// when texturing is on.
func phong(ambient, diffuse, specular RGBf, vDiffuse, vSpecular float64, pt *powTable, baseColor RGBf, applyBaseColor bool) RGBf {
	if vDiffuse < 0 {
		vDiffuse = 0
	}
	if vSpecular < 0 {
		vSpecular = 0
	}

	c := ambient.Add(diffuse.Scale(vDiffuse)).Add(specular.Scale(pt.eval(vSpecular))).Clamp()
	if applyBaseColor {
		c = c.Mul(baseColor)
	}
	return c
}

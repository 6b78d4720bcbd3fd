package tgx

import "math"

// rasterVertex is a shadedVertex converted to viewport pixel space, ready
// for scanline interpolation.
type rasterVertex struct {
	x, y   float64
	z      float64 // depth-test value, affine in screen space for any linear projection (no perspective correction needed)
	invW   float64
	lightW RGBf // light color pre-multiplied by invW, for perspective-correct interpolation
	uvW    Vec2 // uv pre-multiplied by invW
}

// toViewport maps NDC-ish x,y (already Y-pre-inverted by the stored
// projection matrix, §4.1) into viewport pixel space: both axes use the
// same (n+1)*0.5*extent formula, which is the entire point of pre-inverting
// Y once at set time instead of special-casing it here.
func (r *Renderer[P]) toViewport(v shadedVertex) rasterVertex {
	x := (v.screen.X + 1) * 0.5 * float64(r.cfg.Width)
	y := (v.screen.Y + 1) * 0.5 * float64(r.cfg.Height)
	return rasterVertex{
		x: x, y: y, z: v.screen.Z, invW: v.invW,
		lightW: v.light.Scale(v.invW),
		uvW:    Vec2{X: v.uv.X * v.invW, Y: v.uv.Y * v.invW},
	}
}

// rasterizeTriangle scan-converts one already-shaded, already-clipped
// triangle (§4.2 step 6). Grounded on the teacher's drawFilledNoClip
// (rasterizer_triangle.go): sort by Y, walk the long edge against the two
// short edges, fill horizontal spans. Generalized with a depth test against
// the Renderer's attached depth buffer and perspective-correct
// color/UV interpolation via invW (depth itself is affine in screen space
// for any linear projection, so it is interpolated directly, not via invW).
func (r *Renderer[P]) rasterizeTriangle(a, b, c shadedVertex, flags ShaderFlags, tex *Texture, filter TextureFilter, wrap TextureWrap) {
	v0, v1, v2 := r.toViewport(a), r.toViewport(b), r.toViewport(c)

	if v0.y > v1.y {
		v0, v1 = v1, v0
	}
	if v0.y > v2.y {
		v0, v2 = v2, v0
	}
	if v1.y > v2.y {
		v1, v2 = v2, v1
	}

	totalHeight := v2.y - v0.y
	if totalHeight < 1e-9 {
		return
	}

	width, height := r.cfg.Width, r.cfg.Height
	useTexture := flags&FlagTexture != 0 && tex != nil

	yStart := int(math.Ceil(v0.y - 0.5))
	yEnd := int(math.Ceil(v2.y - 0.5))
	for y := yStart; y < yEnd; y++ {
		if y < 0 || y >= height {
			continue
		}
		fy := float64(y) + 0.5

		secondHalf := fy >= v1.y
		var segHeight, alpha float64
		if secondHalf {
			segHeight = v2.y - v1.y
			if segHeight < 1e-9 {
				continue
			}
			alpha = (fy - v1.y) / segHeight
		} else {
			segHeight = v1.y - v0.y
			if segHeight < 1e-9 {
				continue
			}
			alpha = (fy - v0.y) / segHeight
		}
		beta := (fy - v0.y) / totalHeight

		left := lerpRaster(v0, v2, beta)
		var right rasterVertex
		if secondHalf {
			right = lerpRaster(v1, v2, alpha)
		} else {
			right = lerpRaster(v0, v1, alpha)
		}
		if left.x > right.x {
			left, right = right, left
		}

		xStart := int(math.Ceil(left.x - 0.5))
		xEnd := int(math.Ceil(right.x - 0.5))
		span := right.x - left.x
		for x := xStart; x < xEnd; x++ {
			if x < 0 || x >= width {
				continue
			}
			t := 0.0
			if span > 1e-9 {
				t = (float64(x)+0.5-left.x) / span
			}
			r.shadePixel(x, y, lerpRaster(left, right, t), useTexture, tex, filter, wrap)
		}
	}
}

func lerpRaster(a, b rasterVertex, t float64) rasterVertex {
	return rasterVertex{
		x:      Lerp(a.x, b.x, t),
		y:      Lerp(a.y, b.y, t),
		z:      Lerp(a.z, b.z, t),
		invW:   Lerp(a.invW, b.invW, t),
		lightW: a.lightW.Lerp(b.lightW, t),
		uvW:    a.uvW.Lerp(b.uvW, t),
	}
}

// shadePixel performs the depth test and writes one fragment (§4.2 step 6).
// vx,vy are viewport coordinates (0..LX-1, 0..LY-1); the depth buffer is
// always indexed in viewport space, while the raster target is offset by
// (ox,oy) within that viewport for tile rendering (§3).
func (r *Renderer[P]) shadePixel(vx, vy int, v rasterVertex, useTexture bool, tex *Texture, filter TextureFilter, wrap TextureWrap) {
	var depthIdx int
	if r.cfg.DepthTest {
		depthIdx = vy*r.cfg.Width + vx
		if depthIdx < 0 || depthIdx >= len(r.depth) {
			return
		}
		if float32(v.z) >= r.depth[depthIdx] {
			return
		}
	}

	if v.invW < 1e-12 {
		return
	}

	tx, ty := vx-r.ox, vy-r.oy
	if tx < 0 || tx >= r.target.Width() || ty < 0 || ty >= r.target.Height() {
		return
	}

	light := v.lightW.Scale(1.0 / v.invW)

	base := r.d.color
	if useTexture {
		uv := Vec2{X: v.uvW.X / v.invW, Y: v.uvW.Y / v.invW}
		base = tex.Sample(uv, filter, wrap)
	}
	final := light.Mul(base)

	r.target.Set(tx, ty, ConvertPixel[P](final))

	if r.cfg.DepthTest {
		r.depth[depthIdx] = float32(v.z)
	}
}

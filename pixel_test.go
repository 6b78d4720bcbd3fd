package tgx

import "testing"

func TestConvertPixelRGB888White(t *testing.T) {
	p := ConvertPixel[RGB888](RGBfWhite)
	if p.R != 255 || p.G != 255 || p.B != 255 {
		t.Fatalf("got %+v, want 255,255,255", p)
	}
}

func TestConvertPixelRGBA8888OpaqueAlpha(t *testing.T) {
	p := ConvertPixel[RGBA8888](RGBf{R: 0.5, G: 0.5, B: 0.5})
	if p.A != 255 {
		t.Fatalf("alpha = %d, want 255", p.A)
	}
}

func TestConvertPixelRGB565White(t *testing.T) {
	p := ConvertPixel[RGB565](RGBf{R: 1, G: 1, B: 1})
	if p != 0xFFFF {
		t.Fatalf("white RGB565 = %#x, want 0xFFFF", uint16(p))
	}
}

func TestConvertPixelClampsOutOfRangeColor(t *testing.T) {
	p := ConvertPixel[RGB888](RGBf{R: 2, G: -1, B: 0.5})
	if p.R != 255 || p.G != 0 {
		t.Fatalf("got %+v, want clamped channels", p)
	}
}

func TestRGBfIdentityIsUnchanged(t *testing.T) {
	c := RGBf{R: 0.25, G: 0.5, B: 0.75}
	if ConvertPixel[RGBf](c) != c {
		t.Fatalf("RGBf->RGBf conversion should be identity")
	}
}

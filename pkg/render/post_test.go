package render

import (
	"testing"

	"github.com/lumen3d/lumen/pkg/math3d"
)

func TestVignetteDarkensCornersNotCenter(t *testing.T) {
	fb := NewFramebuffer(64, 64)
	fb.Clear(RGB(200, 200, 200))

	cfg := DefaultPostConfig()
	cfg.BloomIntensity = 0 // vignette only
	ApplyPost(fb, cfg)

	center := fb.GetPixel(32, 32)
	corner := fb.GetPixel(0, 0)

	if center.R != 200 {
		t.Errorf("center changed by vignette: %v", center)
	}
	if corner.R >= 200 {
		t.Errorf("corner not darkened: %v", corner)
	}
}

func TestBloomSpreadsBrightPixel(t *testing.T) {
	fb := NewFramebuffer(32, 32)
	fb.Clear(RGB(0, 0, 0))
	fb.SetPixel(16, 16, RGB(255, 255, 255))

	cfg := DefaultPostConfig()
	cfg.VignetteStrength = 0 // bloom only
	ApplyPost(fb, cfg)

	if n := fb.GetPixel(17, 16); n.R == 0 {
		t.Error("bloom did not spread into neighboring pixel")
	}
	if c := fb.GetPixel(16, 16); c.R == 0 {
		t.Error("bloom removed the source pixel")
	}
}

func TestBloomLeavesDimImageAlone(t *testing.T) {
	fb := NewFramebuffer(32, 32)
	fb.Clear(RGB(40, 40, 40))

	cfg := DefaultPostConfig()
	cfg.VignetteStrength = 0
	ApplyPost(fb, cfg)

	for i, p := range fb.Pixels {
		if p.R != 40 {
			t.Fatalf("dim pixel %d changed: %v", i, p)
		}
	}
}

func TestLinearRGBQuantization(t *testing.T) {
	if c := LinearRGB(math3d.V3(0, 0.5, 1)); c.R != 0 || c.G != 128 || c.B != 255 {
		t.Errorf("LinearRGB = %v", c)
	}
	// Out-of-range inputs clamp instead of wrapping.
	if c := LinearRGB(math3d.V3(-1, 2, 0.25)); c.R != 0 || c.G != 255 {
		t.Errorf("LinearRGB clamp = %v", c)
	}
}

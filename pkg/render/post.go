package render

import (
	"image"
	"math"

	"github.com/disintegration/gift"

	"github.com/lumen3d/lumen/pkg/math3d"
)

// PostConfig tunes the post-process passes applied after rasterization.
type PostConfig struct {
	BloomThreshold float64 // luminance above which a pixel feeds the bloom
	BloomIntensity float64 // additive strength of the blurred bright pass
	BloomSigma     float32 // Gaussian blur sigma in pixels

	VignetteStrength float64 // darkening at the corners, 0 disables
	VignetteRadius   float64 // normalized distance where falloff starts
}

// DefaultPostConfig returns the tuned bloom and vignette.
func DefaultPostConfig() PostConfig {
	return PostConfig{
		BloomThreshold:   0.72,
		BloomIntensity:   0.55,
		BloomSigma:       2.5,
		VignetteStrength: 0.35,
		VignetteRadius:   0.55,
	}
}

// ApplyPost runs bloom then vignette on the framebuffer in place.
func ApplyPost(fb *Framebuffer, cfg PostConfig) {
	if cfg.BloomIntensity > 0 && cfg.BloomSigma > 0 {
		applyBloom(fb, cfg)
	}
	if cfg.VignetteStrength > 0 {
		applyVignette(fb, cfg)
	}
}

func luminance(r, g, b uint8) float64 {
	return (0.2126*float64(r) + 0.7152*float64(g) + 0.0722*float64(b)) / 255
}

// applyBloom extracts pixels above the luminance threshold, blurs them, and
// adds the result back on top.
func applyBloom(fb *Framebuffer, cfg PostConfig) {
	bright := image.NewRGBA(image.Rect(0, 0, fb.Width, fb.Height))
	for y := 0; y < fb.Height; y++ {
		for x := 0; x < fb.Width; x++ {
			p := fb.GetPixel(x, y)
			lum := luminance(p.R, p.G, p.B)
			if lum <= cfg.BloomThreshold {
				continue
			}
			// Scale the pass by how far above the threshold the pixel sits,
			// so the bloom ramps in rather than popping.
			k := math3d.Clamp01((lum - cfg.BloomThreshold) / (1 - cfg.BloomThreshold))
			bright.SetRGBA(x, y, Color{
				R: uint8(float64(p.R) * k),
				G: uint8(float64(p.G) * k),
				B: uint8(float64(p.B) * k),
				A: 255,
			})
		}
	}

	g := gift.New(gift.GaussianBlur(cfg.BloomSigma))
	blurred := image.NewRGBA(g.Bounds(bright.Bounds()))
	g.Draw(blurred, bright)

	for y := 0; y < fb.Height; y++ {
		for x := 0; x < fb.Width; x++ {
			b := blurred.RGBAAt(x, y)
			if b.R == 0 && b.G == 0 && b.B == 0 {
				continue
			}
			p := fb.GetPixel(x, y)
			fb.SetPixel(x, y, Color{
				R: addClamped(p.R, float64(b.R)*cfg.BloomIntensity),
				G: addClamped(p.G, float64(b.G)*cfg.BloomIntensity),
				B: addClamped(p.B, float64(b.B)*cfg.BloomIntensity),
				A: 255,
			})
		}
	}
}

func addClamped(base uint8, add float64) uint8 {
	v := float64(base) + add
	if v > 255 {
		return 255
	}
	return uint8(v)
}

// applyVignette darkens toward the corners with a smooth analytic falloff.
func applyVignette(fb *Framebuffer, cfg PostConfig) {
	cx := float64(fb.Width) / 2
	cy := float64(fb.Height) / 2
	// Normalize distance by the corner distance so the falloff is
	// resolution independent.
	maxDist := math.Hypot(cx, cy)

	for y := 0; y < fb.Height; y++ {
		for x := 0; x < fb.Width; x++ {
			d := math.Hypot(float64(x)-cx, float64(y)-cy) / maxDist
			fall := math3d.Smoothstep(cfg.VignetteRadius, 1.0, d)
			k := 1 - cfg.VignetteStrength*fall
			if k >= 1 {
				continue
			}

			p := fb.GetPixel(x, y)
			fb.SetPixel(x, y, Color{
				R: uint8(float64(p.R) * k),
				G: uint8(float64(p.G) * k),
				B: uint8(float64(p.B) * k),
				A: p.A,
			})
		}
	}
}

package scene

import (
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lumen3d/lumen/pkg/render"
	"github.com/lumen3d/lumen/pkg/shading"
)

func testConfig() Config {
	cfg := DefaultConfig()
	// Keep test frames cheap.
	cfg.SphereLatSegments = 12
	cfg.SphereLonSegments = 16
	return cfg
}

func TestRenderFrameProducesBody(t *testing.T) {
	s, err := New(testConfig())
	require.NoError(t, err)

	fb := render.NewFramebuffer(80, 48)
	s.RenderFrame(fb, 1.0)

	// The body must occupy a chunk of the frame with non-background color.
	lit := 0
	for _, p := range fb.Pixels {
		if int(p.R)+int(p.G)+int(p.B) > 60 {
			lit++
		}
	}
	assert.Greater(t, lit, len(fb.Pixels)/20, "body should cover part of the frame")
}

func TestRenderFrameDeterministic(t *testing.T) {
	cfg := testConfig()

	s1, err := New(cfg)
	require.NoError(t, err)
	s2, err := New(cfg)
	require.NoError(t, err)

	a := render.NewFramebuffer(64, 40)
	b := render.NewFramebuffer(64, 40)
	s1.RenderFrame(a, 2.5)
	s2.RenderFrame(b, 2.5)

	assert.Equal(t, a.Pixels, b.Pixels, "same time and config must give identical frames")
}

func TestRenderFrameVariesOverTime(t *testing.T) {
	s, err := New(testConfig())
	require.NoError(t, err)

	a := render.NewFramebuffer(64, 40)
	b := render.NewFramebuffer(64, 40)
	s.RenderFrame(a, 0)
	s.RenderFrame(b, 3)

	assert.NotEqual(t, a.Pixels, b.Pixels)
}

func TestZeroAmplitudeStillRenders(t *testing.T) {
	cfg := testConfig()
	cfg.Deform.Amplitude = 0

	s, err := New(cfg)
	require.NoError(t, err)

	fb := render.NewFramebuffer(64, 40)
	s.RenderFrame(fb, 5.0)

	lit := 0
	for _, p := range fb.Pixels {
		if p.R > 0 || p.G > 0 || p.B > 0 {
			lit++
		}
	}
	assert.Greater(t, lit, 0)
}

func TestFromViperOverlaysDefaults(t *testing.T) {
	v := viper.New()
	v.Set("deform.amplitude", 0.5)
	v.Set("shading.tonemap", "reinhard")
	v.Set("shading.deep_color", []float64{0.1, 0.2, 0.3})
	v.Set("stars.density", 0.0)

	cfg := FromViper(v)
	def := DefaultConfig()

	assert.Equal(t, 0.5, cfg.Deform.Amplitude)
	assert.Equal(t, shading.ToneMapReinhard, cfg.Shading.ToneMap)
	assert.Equal(t, 0.0, cfg.Stars.Density)
	assert.Equal(t, 0.1, cfg.Shading.DeepColor.X)
	assert.Equal(t, def.Deform.TimeScale, cfg.Deform.TimeScale, "unset keys keep defaults")
	assert.Equal(t, def.Post.BloomSigma, cfg.Post.BloomSigma)
}

func TestFromViperEmptyIsDefault(t *testing.T) {
	cfg := FromViper(viper.New())
	assert.Equal(t, DefaultConfig(), cfg)
}

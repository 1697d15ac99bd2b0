package scene

import (
	"github.com/spf13/cast"
	"github.com/spf13/viper"

	"github.com/lumen3d/lumen/pkg/deform"
	"github.com/lumen3d/lumen/pkg/math3d"
	"github.com/lumen3d/lumen/pkg/render"
	"github.com/lumen3d/lumen/pkg/shading"
)

// Config bundles every tunable of a scene. Zero values are never used
// directly; start from DefaultConfig and override.
type Config struct {
	// ModelPath optionally points at a glTF binary to deform instead of
	// the generated sphere.
	ModelPath string

	// Sphere tessellation when no model is given.
	SphereLatSegments int
	SphereLonSegments int

	CameraDistance float64
	CameraFOV      float64 // radians

	Deform  deform.Params
	Shading shading.Config
	Stars   shading.StarConfig
	Nebula  shading.NebulaConfig
	Post    render.PostConfig
}

// DefaultConfig returns the tuned scene.
func DefaultConfig() Config {
	return Config{
		SphereLatSegments: 48,
		SphereLonSegments: 64,
		CameraDistance:    3.2,
		CameraFOV:         0.9,
		Deform:            deform.DefaultParams(),
		Shading:           shading.DefaultConfig(),
		Stars:             shading.DefaultStarConfig(),
		Nebula:            shading.DefaultNebulaConfig(),
		Post:              render.DefaultPostConfig(),
	}
}

// FromViper overlays recognized preset keys onto the defaults. Keys not
// present in the source keep their default, so partial presets work.
func FromViper(v *viper.Viper) Config {
	cfg := DefaultConfig()

	setString(v, "model", &cfg.ModelPath)
	setInt(v, "sphere.lat_segments", &cfg.SphereLatSegments)
	setInt(v, "sphere.lon_segments", &cfg.SphereLonSegments)
	setFloat(v, "camera.distance", &cfg.CameraDistance)
	setFloat(v, "camera.fov", &cfg.CameraFOV)

	setFloat(v, "deform.amplitude", &cfg.Deform.Amplitude)
	setFloat(v, "deform.spatial_scale", &cfg.Deform.SpatialScale)
	setFloat(v, "deform.time_scale", &cfg.Deform.TimeScale)
	setFloat(v, "deform.detail_weight", &cfg.Deform.DetailWeight)
	setFloat(v, "deform.sway_weight", &cfg.Deform.SwayWeight)

	setFloat(v, "shading.fresnel_power", &cfg.Shading.FresnelPower)
	setFloat(v, "shading.fresnel_bias", &cfg.Shading.FresnelBias)
	setFloat(v, "shading.absorption", &cfg.Shading.Absorption)
	setFloat(v, "shading.gamma", &cfg.Shading.Gamma)
	setColor(v, "shading.deep_color", &cfg.Shading.DeepColor)
	setColor(v, "shading.warm_color", &cfg.Shading.WarmColor)

	if v.IsSet("shading.tonemap") {
		switch v.GetString("shading.tonemap") {
		case "reinhard":
			cfg.Shading.ToneMap = shading.ToneMapReinhard
		default:
			cfg.Shading.ToneMap = shading.ToneMapFilmic
		}
	}

	for i := range cfg.Shading.Lobes {
		prefix := []string{"shading.key_light.", "shading.fill_light."}[i]
		setFloat(v, prefix+"roughness", &cfg.Shading.Lobes[i].Roughness)
		setFloat(v, prefix+"intensity", &cfg.Shading.Lobes[i].Intensity)
		setColor(v, prefix+"tint", &cfg.Shading.Lobes[i].Tint)
		if v.IsSet(prefix + "dir") {
			cfg.Shading.Lobes[i].Dir = colorFromSlice(cast.ToFloat64Slice(v.Get(prefix + "dir"))).
				NormalizeOr(cfg.Shading.Lobes[i].Dir)
		}
	}

	setFloat(v, "stars.density", &cfg.Stars.Density)
	setFloat(v, "stars.cell_size", &cfg.Stars.CellSize)
	setFloat(v, "stars.twinkle", &cfg.Stars.Twinkle)
	setFloat(v, "nebula.intensity", &cfg.Nebula.Intensity)
	setFloat(v, "nebula.scale", &cfg.Nebula.Scale)
	if v.IsSet("nebula.seed") {
		cfg.Nebula.Seed = v.GetInt64("nebula.seed")
	}

	setFloat(v, "post.bloom_threshold", &cfg.Post.BloomThreshold)
	setFloat(v, "post.bloom_intensity", &cfg.Post.BloomIntensity)
	if v.IsSet("post.bloom_sigma") {
		cfg.Post.BloomSigma = float32(v.GetFloat64("post.bloom_sigma"))
	}
	setFloat(v, "post.vignette_strength", &cfg.Post.VignetteStrength)
	setFloat(v, "post.vignette_radius", &cfg.Post.VignetteRadius)

	return cfg
}

func setFloat(v *viper.Viper, key string, dst *float64) {
	if v.IsSet(key) {
		*dst = v.GetFloat64(key)
	}
}

func setInt(v *viper.Viper, key string, dst *int) {
	if v.IsSet(key) {
		*dst = v.GetInt(key)
	}
}

func setString(v *viper.Viper, key string, dst *string) {
	if v.IsSet(key) {
		*dst = v.GetString(key)
	}
}

func setColor(v *viper.Viper, key string, dst *math3d.Vec3) {
	if v.IsSet(key) {
		*dst = colorFromSlice(cast.ToFloat64Slice(v.Get(key)))
	}
}

func colorFromSlice(s []float64) math3d.Vec3 {
	var c math3d.Vec3
	if len(s) > 0 {
		c.X = s[0]
	}
	if len(s) > 1 {
		c.Y = s[1]
	}
	if len(s) > 2 {
		c.Z = s[2]
	}
	return c
}

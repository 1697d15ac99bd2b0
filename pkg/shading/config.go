package shading

import "github.com/lumen3d/lumen/pkg/math3d"

// ToneMapMode selects the final range compression applied to the
// accumulated linear color.
type ToneMapMode int

const (
	// ToneMapFilmic is an ACES style curve with a soft shoulder.
	ToneMapFilmic ToneMapMode = iota
	// ToneMapReinhard is the classic c/(1+c) operator.
	ToneMapReinhard
)

// SpecLobe is one fixed directional key light driving a microfacet
// specular highlight.
type SpecLobe struct {
	Dir       math3d.Vec3
	Tint      math3d.Vec3
	Roughness float64
	Intensity float64
}

// Config holds every tunable of the surface model. The constants in
// DefaultConfig were dialed in by eye; their relative magnitudes carry the
// look, so treat them as data rather than values to re-derive.
type Config struct {
	FresnelPower float64
	FresnelBias  float64

	// Zone colors blended by local-space position thresholds.
	DeepColor math3d.Vec3 // lower body
	WarmColor math3d.Vec3 // upper body
	SideColor math3d.Vec3 // one lateral half
	ZoneYLo   float64     // deep/warm smoothstep band over local y
	ZoneYHi   float64
	SideXLo   float64 // lateral split band over local x
	SideXHi   float64
	SideMix   float64 // strength of the lateral tint

	// Bulges read warmer; the gate runs over the displacement scalar.
	BulgeBoost float64

	// Absorption darkens the internal color away from the silhouette.
	Absorption float64

	Env EnvPalette

	Lobes [2]SpecLobe

	RimColor     math3d.Vec3
	RimPower     float64
	RimIntensity float64
	RimGateLo    float64 // smoothstep band over local y masking the rim
	RimGateHi    float64

	LeftGlowColor  math3d.Vec3
	RightGlowColor math3d.Vec3
	GlowIntensity  float64

	EdgeColor     math3d.Vec3
	EdgePower     float64
	EdgeIntensity float64

	InternalWeight float64
	EnvWeight      float64
	EnvFresnelPow  float64

	ToneMap ToneMapMode
	Gamma   float64
}

// DefaultConfig returns the tuned liquid surface.
func DefaultConfig() Config {
	return Config{
		FresnelPower: 3.0,
		FresnelBias:  0.08,

		DeepColor: math3d.V3(0.02, 0.09, 0.18),
		WarmColor: math3d.V3(0.26, 0.13, 0.05),
		SideColor: math3d.V3(0.10, 0.03, 0.14),
		ZoneYLo:   -0.45,
		ZoneYHi:   0.55,
		SideXLo:   -0.15,
		SideXHi:   0.40,
		SideMix:   0.45,

		BulgeBoost: 0.6,
		Absorption: 1.4,

		Env: DefaultEnvPalette(),

		Lobes: [2]SpecLobe{
			{
				Dir:       math3d.V3(0.6, 0.8, 0.35).Normalize(),
				Tint:      math3d.V3(1.0, 0.93, 0.82),
				Roughness: 0.18,
				Intensity: 0.9,
			},
			{
				Dir:       math3d.V3(-0.7, 0.25, 0.5).Normalize(),
				Tint:      math3d.V3(0.55, 0.68, 1.0),
				Roughness: 0.42,
				Intensity: 0.45,
			},
		},

		RimColor:     math3d.V3(0.55, 0.75, 1.0),
		RimPower:     4.5,
		RimIntensity: 0.8,
		RimGateLo:    -0.2,
		RimGateHi:    0.75,

		LeftGlowColor:  math3d.V3(0.30, 0.10, 0.45),
		RightGlowColor: math3d.V3(0.05, 0.30, 0.40),
		GlowIntensity:  0.35,

		EdgeColor:     math3d.V3(1, 1, 1),
		EdgePower:     9.0,
		EdgeIntensity: 0.5,

		InternalWeight: 1.0,
		EnvWeight:      0.85,
		EnvFresnelPow:  1.5,

		ToneMap: ToneMapFilmic,
		Gamma:   2.2,
	}
}

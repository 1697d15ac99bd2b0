// Package shading converts a surface point plus view geometry into a final
// RGB value. The model is analytic and hand tuned rather than physically
// derived: an internal zone color, a procedural environment sample weighted
// by Fresnel, two microfacet key lights, a masked rim, lateral glows and an
// edge highlight, accumulated in unbounded linear space and range compressed
// only at the very end.
package shading

import (
	"math"

	"github.com/lumen3d/lumen/pkg/math3d"
)

// Context is the per-fragment input bundle. Normal must be unit length;
// every dot product below assumes it and there is no renormalization guard.
type Context struct {
	Normal       math3d.Vec3
	World        math3d.Vec3
	Local        math3d.Vec3
	ViewPos      math3d.Vec3
	Time         float64
	Displacement float64
}

// Shade computes the final color for one fragment. Pure and deterministic
// given its inputs; safe to fan out across fragments.
func Shade(ctx Context, cfg Config) math3d.Vec3 {
	return ToneMap(ShadeLinear(ctx, cfg), cfg.ToneMap, cfg.Gamma)
}

// ShadeLinear accumulates every term in unbounded linear space, before any
// range compression. All channels are nonnegative.
func ShadeLinear(ctx Context, cfg Config) math3d.Vec3 {
	view := ctx.ViewPos.Sub(ctx.World).NormalizeOr(math3d.V3(0, 0, 1))
	refl := view.Negate().Reflect(ctx.Normal)

	fresnel := Fresnel(ctx.Normal, view, cfg.FresnelPower, cfg.FresnelBias)

	internal := zoneColor(ctx, cfg, fresnel)
	env := SampleEnvironment(refl, cfg.Env)

	spec1 := specular(ctx.Normal, view, cfg.Lobes[0])
	spec2 := specular(ctx.Normal, view, cfg.Lobes[1])

	// The rim breathes slowly so the edge never reads as a static outline.
	rimGate := math3d.Smoothstep(cfg.RimGateLo, cfg.RimGateHi, ctx.Local.Y)
	shimmer := 0.9 + 0.1*math.Sin(ctx.Time*1.3+ctx.Local.Y*4)
	rim := cfg.RimColor.Scale(math.Pow(fresnel, cfg.RimPower) * rimGate * shimmer * cfg.RimIntensity)

	// Lateral glows hug the silhouette on each side of the body.
	leftGate := math3d.Smoothstep(0.1, 0.7, -ctx.Local.X)
	rightGate := math3d.Smoothstep(0.1, 0.7, ctx.Local.X)
	leftGlow := cfg.LeftGlowColor.Scale(leftGate * fresnel * cfg.GlowIntensity)
	rightGlow := cfg.RightGlowColor.Scale(rightGate * fresnel * cfg.GlowIntensity)

	edge := cfg.EdgeColor.Scale(math.Pow(fresnel, cfg.EdgePower) * cfg.EdgeIntensity)

	// The accumulation order and weights set the visual balance. Terms may
	// exceed 1 here; only the tone map clamps.
	return internal.Scale(cfg.InternalWeight).
		Add(env.Scale(math.Pow(fresnel, cfg.EnvFresnelPow) * cfg.EnvWeight)).
		Add(rim).
		Add(leftGlow).
		Add(rightGlow).
		Add(spec1).
		Add(spec2).
		Add(edge)
}

// Fresnel is the rim weighting term: bias at head-on viewing, rising to 1
// at grazing angles. Both inputs must be unit length.
func Fresnel(n, v math3d.Vec3, power, bias float64) float64 {
	ndv := math.Max(n.Dot(v), 0)
	return math3d.Clamp01(bias + (1-bias)*math.Pow(1-ndv, power))
}

// zoneColor blends the stylized internal base colors by local-space
// position. Zones are thresholds on position, not lighting.
func zoneColor(ctx Context, cfg Config, fresnel float64) math3d.Vec3 {
	vertical := math3d.Smoothstep(cfg.ZoneYLo, cfg.ZoneYHi, ctx.Local.Y)
	c := cfg.DeepColor.Lerp(cfg.WarmColor, vertical)

	side := math3d.Smoothstep(cfg.SideXLo, cfg.SideXHi, ctx.Local.X)
	c = c.Lerp(cfg.SideColor, side*cfg.SideMix)

	// Outward bulges read warmer and brighter.
	bulge := math3d.Smoothstep(0, 0.2, ctx.Displacement)
	c = c.Lerp(cfg.WarmColor, bulge*cfg.BulgeBoost)

	// Beer-Lambert style absorption deepens the core: head-on viewing paths
	// traverse the most liquid, so low Fresnel means more light lost.
	thickness := 1 - fresnel
	return c.Scale(math.Exp(-cfg.Absorption * thickness))
}

// specular evaluates one GGX lobe with Schlick reflectance for a fixed
// directional key light.
func specular(n, v math3d.Vec3, lobe SpecLobe) math3d.Vec3 {
	if lobe.Intensity == 0 {
		return math3d.Zero3()
	}

	h := lobe.Dir.Add(v).NormalizeOr(n)
	ndh := math.Max(n.Dot(h), 0)
	vdh := math.Max(v.Dot(h), 0)
	ndl := math.Max(n.Dot(lobe.Dir), 0)

	alpha := lobe.Roughness * lobe.Roughness
	a2 := alpha * alpha
	denom := ndh*ndh*(a2-1) + 1
	d := a2 / (math.Pi * denom * denom)

	const f0 = 0.04
	f := f0 + (1-f0)*math.Pow(1-vdh, 5)

	return lobe.Tint.Scale(d * f * ndl * lobe.Intensity)
}

package math3d

import (
	"math"
	"testing"
)

func almostEq(a, b Vec3, eps float64) bool {
	return math.Abs(a.X-b.X) < eps && math.Abs(a.Y-b.Y) < eps && math.Abs(a.Z-b.Z) < eps
}

func TestNormalizeZeroIsZero(t *testing.T) {
	if v := Zero3().Normalize(); v != Zero3() {
		t.Errorf("Normalize(0) = %v", v)
	}
	if v := Zero3().NormalizeOr(Up()); v != Up() {
		t.Errorf("NormalizeOr fallback = %v", v)
	}
}

func TestReflect(t *testing.T) {
	// Incoming ray going down-right reflects off a floor to up-right.
	in := V3(1, -1, 0).Normalize()
	out := in.Reflect(Up())
	if !almostEq(out, V3(1, 1, 0).Normalize(), 1e-12) {
		t.Errorf("Reflect = %v", out)
	}
}

func TestTranslatePoint(t *testing.T) {
	p := Translate(V3(1, 2, 3)).MulVec3(V3(1, 1, 1))
	if !almostEq(p, V3(2, 3, 4), 1e-12) {
		t.Errorf("Translate point = %v", p)
	}

	// Directions ignore translation.
	d := Translate(V3(1, 2, 3)).MulVec3Dir(V3(0, 0, 1))
	if !almostEq(d, V3(0, 0, 1), 1e-12) {
		t.Errorf("Translate dir = %v", d)
	}
}

func TestRotateYQuarterTurn(t *testing.T) {
	v := RotateY(math.Pi / 2).MulVec3(V3(1, 0, 0))
	if !almostEq(v, V3(0, 0, -1), 1e-12) {
		t.Errorf("RotateY(90°) x-axis = %v", v)
	}
}

func TestMatrixMulAssociatesWithVector(t *testing.T) {
	a := RotateX(0.3).Mul(RotateY(-0.7))
	p := V3(0.5, -1.2, 2.0)

	// (A*B)*p must match A*(B*p)
	got := a.MulVec3(p)
	want := RotateX(0.3).MulVec3(RotateY(-0.7).MulVec3(p))
	if !almostEq(got, want, 1e-12) {
		t.Errorf("composed = %v, stepwise = %v", got, want)
	}
}

func TestPerspectiveDivide(t *testing.T) {
	v := V4(2, 4, 6, 2).PerspectiveDivide()
	if !almostEq(v, V3(1, 2, 3), 1e-12) {
		t.Errorf("PerspectiveDivide = %v", v)
	}
	if v := V4(1, 1, 1, 0).PerspectiveDivide(); v != Zero3() {
		t.Errorf("divide by zero w = %v", v)
	}
}

func TestPerspectiveProjectsIntoNDC(t *testing.T) {
	proj := Perspective(math.Pi/3, 1, 0.1, 100)

	// A point straight ahead at mid range lands inside the NDC cube.
	clip := proj.MulVec4(V4(0, 0, -10, 1))
	ndc := clip.PerspectiveDivide()
	if math.Abs(ndc.X) > 1 || math.Abs(ndc.Y) > 1 || ndc.Z < -1 || ndc.Z > 1 {
		t.Errorf("ndc = %v", ndc)
	}
}

func TestSmoothstepEdges(t *testing.T) {
	if s := Smoothstep(0, 1, -0.5); s != 0 {
		t.Errorf("below edge = %v", s)
	}
	if s := Smoothstep(0, 1, 1.5); s != 1 {
		t.Errorf("above edge = %v", s)
	}
	if s := Smoothstep(0, 1, 0.5); math.Abs(s-0.5) > 1e-12 {
		t.Errorf("midpoint = %v", s)
	}
}

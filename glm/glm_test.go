package glm

import "testing"

func TestIdentityIsMultiplicativeUnit(t *testing.T) {
	m := Translate4(Vec{X: 1, Y: 2, Z: 3})
	got := Mul4(Identity4(), m)
	if !EqualMat4(got, m, 1e-6) {
		t.Fatalf("Identity*M = %+v, want %+v", got.Array(), m.Array())
	}
}

func TestInverseRoundTrip(t *testing.T) {
	m := Mul4(Translate4(Vec{X: 5, Y: -3, Z: 1}), Scale4(Vec{X: 2, Y: 2, Z: 2}))
	inv := m.Inverse()
	got := Mul4(m, inv)
	if !EqualMat4(got, Identity4(), 1e-4) {
		t.Fatalf("M*M^-1 = %+v, want identity", got.Array())
	}
}

func TestRotateZPreservesLength(t *testing.T) {
	v := Vec{X: 3, Y: 4, Z: 0}
	m := RotateZ4(0.73)
	got := m.MulVec4(v)
	if d := Norm(got) - Norm(v); d > 1e-4 || d < -1e-4 {
		t.Fatalf("rotation changed vector length: %v vs %v", Norm(got), Norm(v))
	}
}

func TestOrthoMapsCornersToNDC(t *testing.T) {
	m := Ortho4(0, 800, 0, 600, -1, 1)
	got := m.MulVec4(Vec{X: 800, Y: 600, Z: 0})
	if d := got.X - 1; d > 1e-4 || d < -1e-4 {
		t.Fatalf("ortho right edge X = %v, want 1", got.X)
	}
	if d := got.Y - 1; d > 1e-4 || d < -1e-4 {
		t.Fatalf("ortho top edge Y = %v, want 1", got.Y)
	}
}

func TestUnitVec(t *testing.T) {
	u := Unit(Vec{X: 0, Y: 5, Z: 0})
	if d := Norm(u) - 1; d > 1e-6 || d < -1e-6 {
		t.Fatalf("Unit() length = %v, want 1", Norm(u))
	}
}

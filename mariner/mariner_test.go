package mariner

import "testing"

func TestDefaultsSeeded(t *testing.T) {
	p := NewParams()
	if !p.Bool(ShowText) {
		t.Fatalf("ShowText should default to on")
	}
	if p.Bool(DispCentroids) {
		t.Fatalf("DispCentroids should default to off")
	}
}

func TestSetGet(t *testing.T) {
	p := NewParams()
	p.Set(DotPitchMMX, 0.28)
	if got := p.Get(DotPitchMMX); got != 0.28 {
		t.Fatalf("Get(DotPitchMMX) = %v, want 0.28", got)
	}
}

func TestUnknownKeyIsZero(t *testing.T) {
	p := NewParams()
	if got := p.Get(Key("NOT_A_REAL_KEY")); got != 0 {
		t.Fatalf("Get on unset key = %v, want 0", got)
	}
}

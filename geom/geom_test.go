package geom

import "testing"

func within(a, b, eps float64) bool {
	d := a - b
	if d < 0 {
		d = -d
	}
	return d <= eps
}

func TestExtentCanonical(t *testing.T) {
	if _, err := NewExtent(1, 1, 0, 2); err == nil {
		t.Fatal("expected error for W>E")
	}
	if _, err := NewExtent(0, 2, 1, 1); err == nil {
		t.Fatal("expected error for S>N")
	}
	e, err := NewExtent(0, 0, 1, 1)
	if err != nil || !e.Valid() {
		t.Fatalf("expected valid extent, got %v %v", e, err)
	}
}

func TestExtentRejectsInf(t *testing.T) {
	if _, err := NewExtent(0, 0, 1, posInf()); err == nil {
		t.Fatal("expected error for infinite extent")
	}
}

func posInf() float64 { var z float64; return 1 / z }

func TestPointInRingSquare(t *testing.T) {
	ring := []Vec2{{0, 0}, {4, 0}, {4, 4}, {0, 4}, {0, 0}}
	if !PointInRing(ring, Vec2{2, 2}, true) {
		t.Fatal("expected center inside")
	}
	if PointInRing(ring, Vec2{5, 5}, true) {
		t.Fatal("expected outside point to be outside")
	}
}

func TestCentroidDegenerate(t *testing.T) {
	if _, ok := Centroid([]Vec2{{0, 0}, {1, 1}}); ok {
		t.Fatal("expected false for <3 vertices")
	}
	line := []Vec2{{0, 0}, {1, 0}, {2, 0}, {0, 0}}
	if _, ok := Centroid(line); ok {
		t.Fatal("expected false for zero-area ring")
	}
}

func TestCentroidSquare(t *testing.T) {
	ring := []Vec2{{0, 0}, {2, 0}, {2, 2}, {0, 2}, {0, 0}}
	c, ok := Centroid(ring)
	if !ok {
		t.Fatal("expected centroid")
	}
	if !within(c.X, 1, 1e-9) || !within(c.Y, 1, 1e-9) {
		t.Fatalf("expected (1,1), got %v", c)
	}
}

func TestClipSegment(t *testing.T) {
	rect := Extent{W: 5, S: 5, E: 15, N: 15}
	a, b, ok := ClipSegment(Vec2{0, 0}, Vec2{10, 10}, rect)
	if !ok {
		t.Fatal("expected intersection")
	}
	if !within(a.X, 5, 1e-9) || !within(a.Y, 5, 1e-9) {
		t.Fatalf("expected clipped start (5,5), got %v", a)
	}
	if b != (Vec2{10, 10}) {
		t.Fatalf("expected clipped end (10,10), got %v", b)
	}
}

func TestClipSegmentMiss(t *testing.T) {
	rect := Extent{W: 100, S: 100, E: 200, N: 200}
	_, _, ok := ClipSegment(Vec2{0, 0}, Vec2{1, 1}, rect)
	if ok {
		t.Fatal("expected no intersection")
	}
}

func TestClosedRing(t *testing.T) {
	if !ClosedRing([]Vec2{{0, 0}, {1, 0}, {0, 0}}) {
		t.Fatal("expected closed")
	}
	if ClosedRing([]Vec2{{0, 0}, {1, 0}}) {
		t.Fatal("expected not closed")
	}
}

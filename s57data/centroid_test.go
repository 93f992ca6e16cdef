package s57data

import (
	"testing"

	"github.com/navchart/s52gl/geom"
)

func squareRing(x0, y0, x1, y1 float64) Ring {
	return Ring{Points: []geom.Vec3{
		{X: x0, Y: y0}, {X: x1, Y: y0}, {X: x1, Y: y1}, {X: x0, Y: y1}, {X: x0, Y: y0},
	}}
}

func TestComputeCentroidsInsideView(t *testing.T) {
	r := NewRegistry()
	f, err := r.NewArea("DEPARE", []Ring{squareRing(0, 0, 2, 2)})
	if err != nil {
		t.Fatal(err)
	}
	ext, _ := geom.NewExtent(0, 0, 2, 2)
	f.SetExtent(ext)
	view, _ := geom.NewExtent(-10, -10, 10, 10)
	f.ComputeCentroids(view, true)
	if !f.HasCentroid() {
		t.Fatal("expected a centroid")
	}
	c, ok := f.NextCentroid()
	if !ok || c.X != 1 || c.Y != 1 {
		t.Fatalf("expected (1,1), got %v", c)
	}
}

func TestComputeCentroidsUShapeConcave(t *testing.T) {
	r := NewRegistry()
	// A U-shape whose area centroid falls outside the polygon.
	u := Ring{Points: []geom.Vec3{
		{X: 0, Y: 0}, {X: 6, Y: 0}, {X: 6, Y: 6}, {X: 4, Y: 6}, {X: 4, Y: 2},
		{X: 2, Y: 2}, {X: 2, Y: 6}, {X: 0, Y: 6}, {X: 0, Y: 0},
	}}
	f, err := r.NewArea("DEPARE", []Ring{u})
	if err != nil {
		t.Fatal(err)
	}
	ext, _ := geom.NewExtent(0, 0, 6, 6)
	f.SetExtent(ext)
	view, _ := geom.NewExtent(-100, -100, 100, 100)
	f.ComputeCentroids(view, true)
	if !f.HasCentroid() {
		t.Fatal("expected heuristic to find an inside point")
	}
}

func TestTessellateAreaFillNotArea(t *testing.T) {
	r := NewRegistry()
	f := r.Meta("M_COVR")
	if _, err := f.TessellateAreaFill(); err == nil {
		t.Fatal("expected error for non-area feature")
	}
}

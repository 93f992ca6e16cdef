package tess

import "github.com/navchart/s52gl/geom"
import "testing"

func TestTriangulateSquare(t *testing.T) {
	square := []geom.Vec2{{0, 0}, {2, 0}, {2, 2}, {0, 2}, {0, 0}}
	res, err := Run(square, nil)
	if err != nil {
		t.Fatal(err)
	}
	if len(res.Triangles)%3 != 0 || len(res.Triangles) == 0 {
		t.Fatalf("expected non-empty triangle list, got %v", res.Triangles)
	}
}

func TestTriangulateWithHole(t *testing.T) {
	outer := []geom.Vec2{{0, 0}, {10, 0}, {10, 10}, {0, 10}, {0, 0}}
	hole := []geom.Vec2{{4, 4}, {4, 6}, {6, 6}, {6, 4}, {4, 4}}
	res, err := Run(outer, [][]geom.Vec2{hole})
	if err != nil {
		t.Fatal(err)
	}
	if len(res.Triangles) == 0 {
		t.Fatal("expected triangles")
	}
}

func TestTooFewVertices(t *testing.T) {
	_, err := Run([]geom.Vec2{{0, 0}, {1, 1}}, nil)
	if err == nil {
		t.Fatal("expected error")
	}
}

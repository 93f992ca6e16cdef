package render

import "testing"

func TestRectQuadCoversExtentWithTwoTriangles(t *testing.T) {
	verts := rectQuad(-5, -5, 5, 5)
	if len(verts) != 6 {
		t.Fatalf("expected 6 vertices (two triangles), got %d", len(verts))
	}
	var minX, minY, maxX, maxY float32 = 1e9, 1e9, -1e9, -1e9
	for _, v := range verts {
		if v.X < minX {
			minX = v.X
		}
		if v.Y < minY {
			minY = v.Y
		}
		if v.X > maxX {
			maxX = v.X
		}
		if v.Y > maxY {
			maxY = v.Y
		}
	}
	if minX != -5 || minY != -5 || maxX != 5 || maxY != 5 {
		t.Fatalf("quad does not cover the requested extent: x[%v,%v] y[%v,%v]", minX, maxX, minY, maxY)
	}
}

func TestDrawRasterRegistersLayerForDelRaster(t *testing.T) {
	r := newTestRenderer()
	pixels := make([]byte, 4*4*4)
	if err := r.DrawRaster(1, pixels, 4, 4, 0, 0, 100, 100); err != nil {
		t.Fatalf("DrawRaster: %v", err)
	}
	if _, ok := r.rasters[1]; !ok {
		t.Fatalf("expected raster 1 to be registered")
	}
	r.DelRaster(1)
	if _, ok := r.rasters[1]; ok {
		t.Fatalf("DelRaster should remove the registered layer")
	}
}

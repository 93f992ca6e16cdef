package s57data

import (
	"math"
	"testing"

	"github.com/navchart/s52gl/geom"
)

func TestIDsMonotonicAndUnique(t *testing.T) {
	r := NewRegistry()
	a := r.Meta("M_COVR")
	b := r.NewPoint("BOYLAT", geom.Vec3{})
	if a.ID() == 0 || b.ID() <= a.ID() {
		t.Fatalf("expected monotonic ids, got %d then %d", a.ID(), b.ID())
	}
}

func TestAttributeAbsentSentinel(t *testing.T) {
	r := NewRegistry()
	f := r.Meta("DEPARE")
	f.SetAttribute("VALDCO", EmptyNumberMarker)
	if _, ok := f.Attribute("VALDCO"); ok {
		t.Fatal("expected sentinel value to be absent")
	}
	f.SetAttribute("OBJNAM", "Fairway")
	v, ok := f.Attribute("OBJNAM")
	if !ok || v != "Fairway" {
		t.Fatalf("expected Fairway, got %q %v", v, ok)
	}
	if _, ok := f.Attribute("NOPE"); ok {
		t.Fatal("expected missing key to be absent")
	}
}

func TestTouchIdempotentAndConflict(t *testing.T) {
	r := NewRegistry()
	buoy := r.NewPoint("BOYLAT", geom.Vec3{})
	light := r.NewPoint("LIGHTS", geom.Vec3{})
	other := r.NewPoint("LIGHTS", geom.Vec3{})
	if err := buoy.SetTouch(TouchLIGHTS, light); err != nil {
		t.Fatal(err)
	}
	if err := buoy.SetTouch(TouchLIGHTS, light); err != nil {
		t.Fatalf("expected idempotent set, got %v", err)
	}
	if err := buoy.SetTouch(TouchLIGHTS, other); err != ErrTouchConflict {
		t.Fatalf("expected conflict error, got %v", err)
	}
}

func TestAreaRequiresClosedRings(t *testing.T) {
	r := NewRegistry()
	_, err := r.NewArea("DEPARE", []Ring{{Points: []geom.Vec3{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 1, Y: 1}}}})
	if err == nil {
		t.Fatal("expected error for unclosed ring")
	}
}

func TestGeoSizeCapacity(t *testing.T) {
	r := NewRegistry()
	f := r.NewLine("DEPCNT", []geom.Vec3{{}, {}, {}})
	if err := f.SetGeoSize(2); err != nil {
		t.Fatal(err)
	}
	if err := f.SetGeoSize(10); err != ErrGeoSizeExceedsCapacity {
		t.Fatalf("expected capacity error, got %v", err)
	}
}

func TestScaminInfinite(t *testing.T) {
	r := NewRegistry()
	f := r.NewPoint("LIGHTS", geom.Vec3{})
	if !math.IsInf(f.Scamin(), 1) {
		t.Fatal("expected default scamin +Inf")
	}
}

func TestCentroidIteratorResets(t *testing.T) {
	r := NewRegistry()
	f := r.Meta("DEPARE")
	f.NewCentroid()
	f.AddCentroid(1, 2)
	f.AddCentroid(3, 4)
	c, ok := f.NextCentroid()
	if !ok || c.X != 1 {
		t.Fatalf("expected first centroid, got %v %v", c, ok)
	}
	f.ResetCentroid()
	c, ok = f.NextCentroid()
	if !ok || c.X != 1 {
		t.Fatalf("expected reset to replay first centroid, got %v %v", c, ok)
	}
}

func TestFeatureIndexQuery(t *testing.T) {
	r := NewRegistry()
	f1 := r.Meta("DEPARE")
	ext1, _ := geom.NewExtent(0, 0, 1, 1)
	f1.SetExtent(ext1)
	f2 := r.Meta("DEPARE")
	ext2, _ := geom.NewExtent(10, 10, 11, 11)
	f2.SetExtent(ext2)

	idx := NewFeatureIndex([]*Feature{f1, f2})
	view, _ := geom.NewExtent(-1, -1, 2, 2)
	hits := idx.Query(view)
	if len(hits) != 1 || hits[0] != f1 {
		t.Fatalf("expected exactly f1, got %v", hits)
	}
}

package pick

import (
	"testing"

	"github.com/navchart/s52gl/geom"
	"github.com/navchart/s52gl/s57data"
)

func TestAssignUniqueIndices(t *testing.T) {
	c := NewCycle()
	reg := s57data.NewRegistry()
	seen := map[uint8]bool{}
	for i := 0; i < 5; i++ {
		f := reg.NewPoint("BOYLAT", geom.Vec3{})
		idx, err := c.Assign(f)
		if err != nil {
			t.Fatal(err)
		}
		if seen[idx] {
			t.Fatalf("duplicate index %d", idx)
		}
		seen[idx] = true
	}
}

func TestAssignExhaustion(t *testing.T) {
	c := NewCycle()
	reg := s57data.NewRegistry()
	for i := 0; i < MaxObjects; i++ {
		if _, err := c.Assign(reg.NewPoint("X", geom.Vec3{})); err != nil {
			t.Fatalf("unexpected error at %d: %v", i, err)
		}
	}
	if _, err := c.Assign(reg.NewPoint("X", geom.Vec3{})); err != ErrTooManyObjects {
		t.Fatalf("expected exhaustion error, got %v", err)
	}
}

func TestResolveTopHit(t *testing.T) {
	c := NewCycle()
	reg := s57data.NewRegistry()
	a := reg.NewPoint("BOYLAT", geom.Vec3{})
	b := reg.NewPoint("LIGHTS", geom.Vec3{})
	ia, _ := c.Assign(a)
	ib, _ := c.Assign(b)

	window := []Pixel{{R: ia}, {R: 0}, {R: ib}, {R: ia}}
	hits := c.Resolve(window)
	if len(hits) != 2 {
		t.Fatalf("expected 2 distinct hits, got %d", len(hits))
	}
	top, ok := TopHit(hits)
	if !ok || top.Feature != b {
		t.Fatalf("expected top hit to be b (last distinct index encountered), got %v", top)
	}
}

func TestHighlightRelated(t *testing.T) {
	reg := s57data.NewRegistry()
	buoy := reg.NewPoint("BOYLAT", geom.Vec3{})
	light := reg.NewPoint("LIGHTS", geom.Vec3{})
	buoy.Relation = s57data.Relation{Role: s57data.RelationAggregate, ID: light.ID()}

	resolve := func(id uint32) *s57data.Feature {
		if id == light.ID() {
			return light
		}
		return nil
	}
	got := HighlightRelated(buoy, resolve)
	if len(got) != 2 {
		t.Fatalf("expected buoy+light highlighted, got %d", len(got))
	}
	if !buoy.IsHighlighted() || !light.IsHighlighted() {
		t.Fatal("expected both features highlighted")
	}
}

package render

import (
	"testing"

	"github.com/navchart/s52gl/geom"
	"github.com/navchart/s52gl/frame"
	"github.com/navchart/s52gl/pick"
	"github.com/navchart/s52gl/s57data"
)

func TestPickNameResolvesTopHitAndRelated(t *testing.T) {
	r := newTestRenderer()
	reg := s57data.NewRegistry()
	buoy := reg.NewPoint("BOYLAT", geom.Vec3{X: 0, Y: 0})
	light := reg.NewPoint("LIGHTS", geom.Vec3{X: 1, Y: 1})
	buoy.Relation = s57data.Relation{Role: s57data.RelationAggregate, ID: light.ID()}
	r.RegisterFeature(buoy)
	r.RegisterFeature(light)

	r.Pick = pick.NewCycle()
	idxBuoy, err := r.Pick.Assign(buoy)
	if err != nil {
		t.Fatalf("Assign buoy: %v", err)
	}
	idxLight, err := r.Pick.Assign(light)
	if err != nil {
		t.Fatalf("Assign light: %v", err)
	}
	// Simulate the resolve step directly (PickName itself depends on a live
	// GL context for ReadPixels) to exercise the top-hit + highlight wiring.
	window := []pick.Pixel{{R: idxLight}, {R: idxBuoy}}
	hits := r.Pick.Resolve(window)
	top, ok := pick.TopHit(hits)
	if !ok || top.Feature != buoy {
		t.Fatalf("expected top hit to be the last distinct index (buoy), got %+v ok=%v", top, ok)
	}
	related := pick.HighlightRelated(top.Feature, r.resolveID)
	if len(related) != 2 {
		t.Fatalf("buoy aggregates light, expected highlight set of 2, got %d", len(related))
	}
	if !buoy.IsHighlighted() || !light.IsHighlighted() {
		t.Fatalf("both the top hit and its aggregated relative should be highlighted")
	}
}

func TestBeginEndCycleLifecycle(t *testing.T) {
	r := newTestRenderer()
	ok, err := r.Begin(frame.Draw)
	if !ok || err != nil {
		t.Fatalf("Begin(Draw) = %v, %v", ok, err)
	}
	if _, err := r.Begin(frame.Draw); err == nil {
		t.Fatalf("expected ErrCycleOutOfSync re-entering DRAW")
	}
	ok, err = r.End(frame.Draw)
	if !ok || err != nil {
		t.Fatalf("End(Draw) = %v, %v", ok, err)
	}
}

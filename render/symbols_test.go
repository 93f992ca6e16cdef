package render

import (
	"testing"

	"github.com/navchart/s52gl/geom"
	"github.com/navchart/s52gl/gl"
	"github.com/navchart/s52gl/primitive"
	"github.com/navchart/s52gl/s57data"
	"github.com/navchart/s52gl/symbol"
)

func cacheBuoySymbol(r *Renderer, name string) {
	r.Symbols.Put(&symbol.Definition{Name: name, Sublists: []symbol.ColorSublist{
		{ColorName: "CHBLK", Buffer: primitive.New()},
	}})
}

func TestRenderSymbolRequiresCachedDefinition(t *testing.T) {
	r := newTestRenderer()
	reg := s57data.NewRegistry()
	f := reg.NewPoint("BOYLAT", geom.Vec3{})
	obj := &Object{Feature: f, cycle: cycleDraw}
	if err := r.renderSymbol(obj, Command{Kind: Sy, SymbolName: "NOT_CACHED"}); err == nil {
		t.Fatalf("expected error for an uncached SY symbol")
	}
}

func TestRenderSymbolOnLineUsesNearestMidpoint(t *testing.T) {
	r := newTestRenderer()
	cacheBuoySymbol(r, "BOYLAT01")
	reg := s57data.NewRegistry()
	f := reg.NewLine("DEPCNT", []geom.Vec3{{X: 0, Y: 0}, {X: 10, Y: 0}, {X: 10, Y: 10}})
	obj := &Object{Feature: f, cycle: cycleDraw}
	if err := r.renderSymbol(obj, Command{Kind: Sy, SymbolName: "BOYLAT01"}); err != nil {
		t.Fatalf("renderSymbol on LINE: %v", err)
	}
}

func TestRenderVectorBuildsTwoVertexLine(t *testing.T) {
	r := newTestRenderer()
	reg := s57data.NewRegistry()
	f := reg.NewPoint("ownshp", geom.Vec3{})
	f.SetAttribute("cogw", "0")
	f.SetAttribute("sogw", "12")
	if err := r.renderVector(f, false); err != nil {
		t.Fatalf("renderVector: %v", err)
	}
	buf, ok := f.Primitive.(*primitive.Buffer)
	if !ok || buf.VertexCount() != 2 {
		t.Fatalf("expected a 2-vertex vector line, got %+v", buf)
	}
	if len(buf.Spans) != 1 || buf.Spans[0].Mode != gl.Lines {
		t.Fatalf("expected a single LINES span, got %+v", buf.Spans)
	}
}

func TestRenderVectorTimeTickPlacesEachTick(t *testing.T) {
	r := newTestRenderer()
	cacheBuoySymbol(r, "OSPSIX02")
	reg := s57data.NewRegistry()
	f := reg.NewPoint("ownshp", geom.Vec3{})
	f.SetAttribute("cog", "90")
	f.SetAttribute("sog", "10")
	f.SetAttribute("_vector_minutes", "18")
	def, _ := r.Symbols.Get("OSPSIX02")
	if err := r.renderVectorTimeTick(f, def, "OSPSIX02"); err != nil {
		t.Fatalf("renderVectorTimeTick: %v", err)
	}
}

func TestRenderOwnshipSilhouetteAboveThreshold(t *testing.T) {
	r := newTestRenderer()
	cacheBuoySymbol(r, "OWNSHP01")
	reg := s57data.NewRegistry()
	f := reg.NewPoint("ownshp", geom.Vec3{})
	f.SetAttribute("_SHIP_LENGTH", "300")
	def, _ := r.Symbols.Get("OWNSHP01")
	if err := r.renderOwnship(f, def); err != nil {
		t.Fatalf("renderOwnship silhouette: %v", err)
	}
}

func TestRenderOwnshipPointBelowThreshold(t *testing.T) {
	r := newTestRenderer()
	cacheBuoySymbol(r, "OWNSHP01")
	reg := s57data.NewRegistry()
	f := reg.NewPoint("ownshp", geom.Vec3{})
	f.SetAttribute("_SHIP_LENGTH", "0.001")
	def, _ := r.Symbols.Get("OWNSHP01")
	if err := r.renderOwnship(f, def); err != nil {
		t.Fatalf("renderOwnship point: %v", err)
	}
}

func TestNearestMidpointToCenterPicksClosestSegment(t *testing.T) {
	line := []geom.Vec3{{X: 0, Y: 0}, {X: 10, Y: 0}, {X: 10, Y: 100}, {X: 10, Y: 101}}
	mid, ok := nearestMidpointToCenter(line, geom.Vec2{X: 10, Y: 0.5})
	if !ok {
		t.Fatalf("expected ok=true for a multi-segment line")
	}
	if mid.X != 5 || mid.Y != 0 {
		t.Fatalf("expected the first segment's midpoint (5,0), got %+v", mid)
	}
}

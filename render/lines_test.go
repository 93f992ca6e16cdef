package render

import (
	"testing"

	"github.com/navchart/s52gl/geom"
	"github.com/navchart/s52gl/gl"
	"github.com/navchart/s52gl/primitive"
	"github.com/navchart/s52gl/s57data"
	"github.com/navchart/s52gl/symbol"
)

func cacheTickSymbol(r *Renderer, name string) {
	r.Symbols.Put(&symbol.Definition{Name: name, Sublists: []symbol.ColorSublist{
		{ColorName: "CHBLK", Buffer: primitive.New()},
	}})
}

func TestRenderComplexLineRejectsNonTwoVertexLeglin(t *testing.T) {
	r := newTestRenderer()
	reg := s57data.NewRegistry()
	f := reg.NewLine("leglin", []geom.Vec3{{X: 0, Y: 0}, {X: 100, Y: 0}, {X: 200, Y: 0}})
	obj := &Object{Feature: f, cycle: cycleDraw}
	err := r.renderComplexLine(obj, Command{Kind: Lc, SymLen: 10, SymbolName: "WPTTICK"})
	if err == nil {
		t.Fatalf("expected error for leglin with 3 vertices")
	}
}

func TestRenderComplexLinePlacesSymbolsAndResidual(t *testing.T) {
	r := newTestRenderer()
	cacheTickSymbol(r, "WPTTICK")
	reg := s57data.NewRegistry()
	f := reg.NewLine("leglin", []geom.Vec3{{X: 0, Y: 0}, {X: 225, Y: 0}})
	obj := &Object{Feature: f, cycle: cycleDraw}
	if err := r.renderComplexLine(obj, Command{Kind: Lc, SymLen: 50, SymbolName: "WPTTICK", ColorName: "CHBLK"}); err != nil {
		t.Fatalf("unexpected error for valid 2-vertex leglin: %v", err)
	}
	buf, ok := f.Primitive.(*primitive.Buffer)
	if !ok || buf.VertexCount() == 0 {
		t.Fatalf("expected the uneven remainder (225 - 4*50 = 25) to leave a residual LINES span")
	}
	if len(buf.Spans) != 1 || buf.Spans[0].Mode != gl.Lines {
		t.Fatalf("residual span should be a single LINES span, got %+v", buf.Spans)
	}
}

func TestRenderComplexLineRequiresCachedSymbol(t *testing.T) {
	r := newTestRenderer()
	reg := s57data.NewRegistry()
	f := reg.NewLine("leglin", []geom.Vec3{{X: 0, Y: 0}, {X: 500, Y: 0}})
	obj := &Object{Feature: f, cycle: cycleDraw}
	if err := r.renderComplexLine(obj, Command{Kind: Lc, SymLen: 50, SymbolName: "NOT_CACHED"}); err == nil {
		t.Fatalf("expected error for an uncached LC symbol")
	}
}

func TestShortenLeglinAsymmetric(t *testing.T) {
	reg := s57data.NewRegistry()
	f := reg.NewLine("leglin", []geom.Vec3{{X: 0, Y: 0}, {X: 100, Y: 0}})
	f.SetAttribute("_wholin_dist", "10")
	f.SetAttribute("_prev_wholin_dist", "20")
	a, b := shortenLeglin(f, 0, geom.Vec2{X: 0, Y: 0}, geom.Vec2{X: 100, Y: 0})
	if a.X != 20 {
		t.Fatalf("start should be shortened by the *previous* leg's distance: got a.X=%v, want 20", a.X)
	}
	if b.X != 90 {
		t.Fatalf("end should be shortened by the current leg's own distance: got b.X=%v, want 90", b.X)
	}
}

func TestRenderSimpleLineSingleVertexIsNoop(t *testing.T) {
	r := newTestRenderer()
	reg := s57data.NewRegistry()
	f := reg.NewLine("DEPCNT", []geom.Vec3{{X: 0, Y: 0}})
	obj := &Object{Feature: f, cycle: cycleDraw}
	if err := r.renderSimpleLine(obj, Command{Kind: Ls}); err != nil {
		t.Fatalf("LS on a 1-vertex LINE should be a silent no-op, got: %v", err)
	}
	if f.Primitive != nil {
		t.Fatalf("a no-op LS should never touch the feature's primitive buffer")
	}
}

func TestRenderSimpleLineBuildsLineStrip(t *testing.T) {
	r := newTestRenderer()
	reg := s57data.NewRegistry()
	f := reg.NewLine("DEPCNT", []geom.Vec3{{X: 0, Y: 0}, {X: 10, Y: 0}, {X: 10, Y: 10}})
	obj := &Object{Feature: f, cycle: cycleDraw}
	if err := r.renderSimpleLine(obj, Command{Kind: Ls, ColorName: "CHGRD"}); err != nil {
		t.Fatalf("renderSimpleLine: %v", err)
	}
	buf, ok := f.Primitive.(*primitive.Buffer)
	if !ok || buf.VertexCount() != 3 {
		t.Fatalf("expected a 3-vertex LINE_STRIP span, got %+v", buf)
	}
	if len(buf.Spans) != 1 || buf.Spans[0].Mode != gl.LineStrip {
		t.Fatalf("expected a single LINE_STRIP span, got %+v", buf.Spans)
	}
}

func TestRenderOwnshipLinesBuildsHeadingAndBeam(t *testing.T) {
	r := newTestRenderer()
	reg := s57data.NewRegistry()
	f := reg.NewPoint("ownshp", geom.Vec3{})
	f.SetAttribute("_SHIP_LENGTH", "200")
	f.SetAttribute("_SHIP_BEAM", "30")
	if err := r.renderOwnshipLines(f); err != nil {
		t.Fatalf("renderOwnshipLines: %v", err)
	}
	buf, ok := f.Primitive.(*primitive.Buffer)
	if !ok || buf.VertexCount() != 4 {
		t.Fatalf("expected 4 vertices (position, bow, port, stbd), got %+v", buf)
	}
	if len(buf.Spans) != 1 || buf.Spans[0].Mode != gl.Lines {
		t.Fatalf("ownship lines should be a single LINES span, got %+v", buf.Spans)
	}
}

func TestRenderVesselLinesBuildsHeadingVector(t *testing.T) {
	r := newTestRenderer()
	reg := s57data.NewRegistry()
	f := reg.NewPoint("vessel", geom.Vec3{})
	f.SetAttribute("cog", "90")
	f.SetAttribute("sog", "10")
	if err := r.renderVesselLines(f); err != nil {
		t.Fatalf("renderVesselLines: %v", err)
	}
	buf, ok := f.Primitive.(*primitive.Buffer)
	if !ok || buf.VertexCount() != 2 {
		t.Fatalf("expected a 2-vertex heading vector, got %+v", buf)
	}
	if buf.Vertices[0] == buf.Vertices[1] {
		t.Fatalf("heading vector endpoint should differ from the vessel position when moving")
	}
}

func TestRenderAfterglowNoopBelowTwoPoints(t *testing.T) {
	r := newTestRenderer()
	reg := s57data.NewRegistry()
	f := reg.NewLine("afgshp", []geom.Vec3{{X: 0, Y: 0}})
	if err := r.renderAfterglow(f); err != nil {
		t.Fatalf("renderAfterglow: %v", err)
	}
	if f.Primitive != nil {
		t.Fatalf("afterglow with <2 track points should never touch the primitive buffer")
	}
}

func TestRenderAfterglowBuildsLineStrip(t *testing.T) {
	r := newTestRenderer()
	reg := s57data.NewRegistry()
	f := reg.NewLine("afgshp", []geom.Vec3{{X: 0, Y: 0}, {X: 10, Y: 0}, {X: 20, Y: 5}})
	if err := r.renderAfterglow(f); err != nil {
		t.Fatalf("renderAfterglow: %v", err)
	}
	buf, ok := f.Primitive.(*primitive.Buffer)
	if !ok || buf.VertexCount() != 3 {
		t.Fatalf("expected a 3-vertex afterglow trail, got %+v", buf)
	}
	if len(buf.Spans) != 1 || buf.Spans[0].Mode != gl.LineStrip {
		t.Fatalf("afterglow should be a single LINE_STRIP span, got %+v", buf.Spans)
	}
}

func TestDrawArcBuildsSweptLineStrip(t *testing.T) {
	r := newTestRenderer()
	reg := s57data.NewRegistry()
	legA := reg.NewLine("leglin", []geom.Vec3{{X: 0, Y: 0}, {X: 100, Y: 0}})
	legB := reg.NewLine("leglin", []geom.Vec3{{X: 100, Y: 0}, {X: 100, Y: 100}})
	legA.SetAttribute("_wholin_dist", "20")
	if err := r.DrawArc(legA, legB); err != nil {
		t.Fatalf("DrawArc: %v", err)
	}
	buf, ok := legA.Primitive.(*primitive.Buffer)
	if !ok || buf.VertexCount() == 0 {
		t.Fatalf("DrawArc should populate a primitive buffer with the swept arc, got %+v", buf)
	}
	if len(buf.Spans) != 1 || buf.Spans[0].Mode != gl.LineStrip {
		t.Fatalf("DrawArc should be a single LINE_STRIP span, got %+v", buf.Spans)
	}
}

func TestDrawArcRejectsShortLegs(t *testing.T) {
	r := newTestRenderer()
	reg := s57data.NewRegistry()
	legA := reg.NewLine("leglin", []geom.Vec3{{X: 0, Y: 0}})
	legB := reg.NewLine("leglin", []geom.Vec3{{X: 100, Y: 0}, {X: 100, Y: 100}})
	if err := r.DrawArc(legA, legB); err == nil {
		t.Fatalf("expected error for a leg with fewer than 2 vertices")
	}
}

package render

import (
	"testing"

	"github.com/navchart/s52gl/geom"
	"github.com/navchart/s52gl/gl"
	"github.com/navchart/s52gl/primitive"
	"github.com/navchart/s52gl/s57data"
)

func TestRenderVRMComputesRadiusFromEdgeCenter(t *testing.T) {
	r := newTestRenderer()
	reg := s57data.NewRegistry()
	f := reg.Meta("VRM")
	f.SetAttribute("_center_x", "0")
	f.SetAttribute("_center_y", "0")
	f.SetAttribute("_edge_x", "300")
	f.SetAttribute("_edge_y", "400")
	if err := r.renderVRM(f); err != nil {
		t.Fatalf("unexpected error rendering VRM: %v", err)
	}
	buf, ok := f.Primitive.(*primitive.Buffer)
	if !ok || buf.VertexCount() == 0 {
		t.Fatalf("expected renderVRM to populate the feature's primitive buffer with ring vertices")
	}
	if len(buf.Spans) != 1 || buf.Spans[0].Mode != gl.Lines {
		t.Fatalf("expected a single LINES span for the VRM ring, got %+v", buf.Spans)
	}
}

func TestRenderVRMSolidRingHasEveryVertex(t *testing.T) {
	r := newTestRenderer()
	reg := s57data.NewRegistry()
	f := reg.Meta("VRM")
	f.SetAttribute("_center_x", "0")
	f.SetAttribute("_center_y", "0")
	f.SetAttribute("_edge_x", "300")
	f.SetAttribute("_edge_y", "400")
	f.SetAttribute("_normallinestyle", "1")
	if err := r.renderVRM(f); err != nil {
		t.Fatalf("unexpected error rendering VRM: %v", err)
	}
	buf := f.Primitive.(*primitive.Buffer)
	if buf.VertexCount() != 2*vrmSegments {
		t.Fatalf("solid ring should emit every one of the %d segments (2 vertices each), got %d vertices", vrmSegments, buf.VertexCount())
	}
}

func TestRenderVRMMissingEdgeErrors(t *testing.T) {
	r := newTestRenderer()
	reg := s57data.NewRegistry()
	f := reg.Meta("VRM")
	f.SetAttribute("_center_x", "0")
	f.SetAttribute("_center_y", "0")
	if err := r.renderVRM(f); err == nil {
		t.Fatalf("expected error for VRM with no edge attributes")
	}
}

func TestVrmAttrRoundTrip(t *testing.T) {
	reg := s57data.NewRegistry()
	f := reg.Meta("VRM")
	f.SetAttribute("_edge_x", "12.5")
	f.SetAttribute("_edge_y", "-7")
	v, ok := vrmAttr(f, "_edge_x", "_edge_y")
	if !ok || v != (geom.Vec2{X: 12.5, Y: -7}) {
		t.Fatalf("vrmAttr = %+v, %v; want {12.5 -7}, true", v, ok)
	}
}

package primitive

import (
	"testing"

	"github.com/navchart/s52gl/gl"
)

func TestBeginAppendEnd(t *testing.T) {
	b := New()
	if err := b.BeginPrim(gl.Triangles); err != nil {
		t.Fatal(err)
	}
	for i := 0; i < 3; i++ {
		if err := b.AppendVertex(float32(i), 0, 0); err != nil {
			t.Fatal(err)
		}
	}
	if err := b.EndPrim(); err != nil {
		t.Fatal(err)
	}
	if len(b.Spans) != 1 || b.Spans[0].Count != 3 {
		t.Fatalf("expected one span of count 3, got %+v", b.Spans)
	}
}

func TestEndWithoutBeginErrors(t *testing.T) {
	b := New()
	if err := b.EndPrim(); err == nil {
		t.Fatal("expected error ending a span that was never begun")
	}
}

func TestNestedBeginErrors(t *testing.T) {
	b := New()
	if err := b.BeginPrim(gl.Lines); err != nil {
		t.Fatal(err)
	}
	if err := b.BeginPrim(gl.Lines); err == nil {
		t.Fatal("expected error for nested BeginPrim")
	}
}

func TestSpanSumInvariant(t *testing.T) {
	b := New()
	b.BeginPrim(gl.Triangles)
	b.AppendVertex(0, 0, 0)
	b.AppendVertex(1, 0, 0)
	b.AppendVertex(1, 1, 0)
	b.EndPrim()
	b.Spans = append(b.Spans, Span{Mode: Translate, First: int32(len(b.Vertices))})
	b.Vertices = append(b.Vertices, Vertex{X: 5, Y: 5})

	if got, want := b.SpanSum(), int64(4); got != want {
		t.Fatalf("expected span sum %d, got %d", want, got)
	}
	if int64(b.VertexCount()) < b.SpanSum() {
		t.Fatalf("span sum %d exceeds vertex count %d", b.SpanSum(), b.VertexCount())
	}
}

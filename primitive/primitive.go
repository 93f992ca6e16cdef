// Package primitive implements the packed vertex buffer and draw-span list
// shared by every feature and cached symbol (spec §3 "Primitive buffer",
// §4.5), including the TRANSLATE sentinel span used to place sub-symbols
// inside a composed HPGL program.
//
// Grounded on original_source/S57data.c's _prim{mode, first, count}
// (a direct glDrawArrays span) and _S57_prim{list, vertex, DList}, and on
// package gl's VertexBuffer for the upload half.
package primitive

import (
	"fmt"

	"github.com/navchart/s52gl/gl"
)

// Translate is a sentinel draw mode: the span's Count is always 1, and
// drawing it means "consume this one vertex as an (x,y,z) modelview
// translate offset, then proceed to the next span" (spec §3, §4.5).
const Translate gl.DrawMode = 0xffffffff

// Vertex is one packed (x, y, z) vertex.
type Vertex struct{ X, Y, Z float32 }

// Span is one (mode, first, count) draw instruction.
type Span struct {
	Mode  gl.DrawMode
	First int32
	Count int32
}

// Buffer owns a packed vertex array and an ordered list of draw spans, plus
// a lazily-created GPU handle.
type Buffer struct {
	Vertices []Vertex
	Spans    []Span

	uploaded bool
	vbo      gl.VertexBuffer
	vao      gl.VertexArray

	openSpan  int // index into Spans of the currently open span, or -1
	openFirst int32
}

// New returns an empty Buffer (spec §4.5 initPrim).
func New() *Buffer {
	return &Buffer{openSpan: -1}
}

// BeginPrim opens a new span of the given draw mode.
func (b *Buffer) BeginPrim(mode gl.DrawMode) error {
	if b.openSpan != -1 {
		return fmt.Errorf("primitive: BeginPrim called while span %d is still open", b.openSpan)
	}
	b.openFirst = int32(len(b.Vertices))
	b.Spans = append(b.Spans, Span{Mode: mode, First: b.openFirst})
	b.openSpan = len(b.Spans) - 1
	return nil
}

// AppendVertex grows the vertex array within the currently open span.
func (b *Buffer) AppendVertex(x, y, z float32) error {
	if b.openSpan == -1 {
		return fmt.Errorf("primitive: AppendVertex called with no open span")
	}
	b.Vertices = append(b.Vertices, Vertex{X: x, Y: y, Z: z})
	return nil
}

// EndPrim finalizes the open span's count.
func (b *Buffer) EndPrim() error {
	if b.openSpan == -1 {
		return fmt.Errorf("primitive: EndPrim called with no open span")
	}
	span := &b.Spans[b.openSpan]
	span.Count = int32(len(b.Vertices)) - span.First
	b.openSpan = -1
	b.uploaded = false
	return nil
}

// VertexCount returns len(Vertices), used by the Primitive-sum testable
// property (spec §8).
func (b *Buffer) VertexCount() int { return len(b.Vertices) }

// SpanSum returns Sum(span.count) + Sum(TRANSLATE spans => 1), which spec
// §8's "Primitive sum" property requires to be <= VertexCount.
func (b *Buffer) SpanSum() int64 {
	var sum int64
	for _, s := range b.Spans {
		if s.Mode == Translate {
			sum++
		} else {
			sum += int64(s.Count)
		}
	}
	return sum
}

// Upload creates the backing GPU buffer and uploads once; subsequent calls
// are no-ops unless the buffer has been mutated since the last upload
// (spec §4.5). A failed upload is reported to the caller; the cached
// handle remains invalid and Upload is retried next frame (spec §7
// UploadFailure).
func (b *Buffer) Upload(prog gl.Program) error {
	if b.uploaded {
		return nil
	}
	if len(b.Vertices) == 0 {
		return fmt.Errorf("primitive: no vertices to upload")
	}
	vbo, err := gl.NewVertexBuffer(gl.StaticDraw, b.Vertices)
	if err != nil {
		return fmt.Errorf("primitive upload: %w", err)
	}
	vao := gl.NewVAO()
	if err := vao.AddAttribute(vbo, gl.AttribLayout{
		Program: prog, Type: gl.Float32, Name: "in_pos\x00", Packing: 3,
	}); err != nil {
		return fmt.Errorf("primitive upload: %w", err)
	}
	b.vbo, b.vao = vbo, vao
	b.uploaded = true
	return nil
}

// Draw binds the uploaded buffer and issues one draw call per span, in
// order, applying the TRANSLATE sentinel via apply before the following
// span (spec §4.5). Draw is a no-op (and logs nothing itself — the caller
// is expected to have checked Uploaded) if Upload has not succeeded.
func (b *Buffer) Draw(apply func(x, y, z float32)) {
	if !b.uploaded {
		return
	}
	b.vao.Bind()
	for _, span := range b.Spans {
		if span.Mode == Translate {
			v := b.Vertices[span.First]
			apply(v.X, v.Y, v.Z)
			continue
		}
		gl.DrawArrays(span.Mode, span.First, span.Count)
	}
}

// Uploaded reports whether the GPU buffer is currently valid.
func (b *Buffer) Uploaded() bool { return b.uploaded }

// Release destroys the GPU resources backing this buffer (spec §6.1 del).
func (b *Buffer) Release() {
	if !b.uploaded {
		return
	}
	b.vbo.Delete()
	b.vao.Delete()
	b.uploaded = false
}

// Reset clears the buffer back to its empty state, for feature reuse.
func (b *Buffer) Reset() {
	b.Release()
	b.Vertices = b.Vertices[:0]
	b.Spans = b.Spans[:0]
	b.openSpan = -1
}

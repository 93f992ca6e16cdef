// Package gl is a thin, idiomatic wrapper over go-gl's generated OpenGL
// bindings: vertex/index buffers, vertex arrays, textures, framebuffers and
// shader programs, plus the glError/Err() pattern used throughout the
// renderer to surface GL errors as Go errors instead of silent corruption.
//
// It follows github.com/soypat/glgl/v4.6-core/glgl, trimmed to the subset a
// 2D chart renderer needs: compute shaders and shader storage buffers are
// dropped (S-52 symbology has no use for compute dispatch), and framebuffer
// object support is added (needed for pattern-tile prerender, the PICK
// cycle's off-screen pass, and the LAST cycle's blit snapshot).
package gl

import (
	"errors"
	"fmt"
	"runtime"
	"strconv"
	"strings"
	"unsafe"

	"github.com/go-gl/gl/v4.6-core/gl"
)

// Version returns the running OpenGL version string.
func Version() string { return gl.GoStr(gl.GetString(gl.VERSION)) }

// Type is a GL scalar type enum, used in vertex attribute layouts.
type Type uint32

const (
	Int8    Type = gl.BYTE
	Uint8   Type = gl.UNSIGNED_BYTE
	Int16   Type = gl.SHORT
	Uint16  Type = gl.UNSIGNED_SHORT
	Int32   Type = gl.INT
	Uint32  Type = gl.UNSIGNED_INT
	Float32 Type = gl.FLOAT
)

var ErrStringNotNullTerminated = errors.New("string not null terminated")

// NewVAO creates a vertex array object and binds it to the current context.
func NewVAO() VertexArray {
	var vao uint32
	gl.GenVertexArrays(1, &vao)
	gl.BindVertexArray(vao)
	return VertexArray{rid: vao}
}

// VertexArray ties vertex buffer layout (attribute pointers) to a name the
// GPU can bind in one call.
type VertexArray struct{ rid uint32 }

func (vao VertexArray) Bind()   { gl.BindVertexArray(vao.rid) }
func (vao VertexArray) Unbind() { gl.BindVertexArray(0) }
func (vao VertexArray) Delete() { gl.DeleteVertexArrays(1, &vao.rid) }

// AttribLayout configures one vertex attribute of a VertexArray.
type AttribLayout struct {
	Program   Program
	Type      Type
	Name      string // must be null-terminated
	Packing   int    // components per vertex, 1-4
	Stride    int
	Offset    int
	Normalize bool
}

func (vao VertexArray) AddAttribute(vbo VertexBuffer, layout AttribLayout) error {
	if !strings.HasSuffix(layout.Name, "\x00") {
		return ErrStringNotNullTerminated
	}
	if layout.Type == 0 || layout.Packing < 1 || layout.Packing > 4 {
		return errors.New("invalid attribute layout")
	}
	vbo.Bind()
	loc := gl.GetAttribLocation(layout.Program.rid, gl.Str(layout.Name))
	if loc < 0 {
		return fmt.Errorf("vertex attribute not found: %s", layout.Name[:len(layout.Name)-1])
	}
	gl.EnableVertexAttribArray(uint32(loc))
	gl.VertexAttribPointerWithOffset(uint32(loc), int32(layout.Packing), uint32(layout.Type),
		layout.Normalize, int32(layout.Stride), uintptr(layout.Offset))
	return Err()
}

// BufferUsage is a GL buffer usage hint (how often the data changes, and
// whether the CPU or GPU is the primary writer). See glBufferData.
type BufferUsage uint32

const (
	StaticDraw  BufferUsage = gl.STATIC_DRAW
	DynamicDraw BufferUsage = gl.DYNAMIC_DRAW
	StreamDraw  BufferUsage = gl.STREAM_DRAW
)

// VertexBuffer is an opaque handle to GPU-resident vertex data.
type VertexBuffer struct{ rid uint32 }

// NewVertexBuffer uploads data to a new GPU buffer and binds it.
func NewVertexBuffer[T any](usage BufferUsage, data []T) (VertexBuffer, error) {
	if len(data) == 0 {
		return VertexBuffer{}, errors.New("no data to upload")
	}
	var vbo VertexBuffer
	sz := int(unsafe.Sizeof(data[0])) * len(data)
	gl.GenBuffers(1, &vbo.rid)
	gl.BindBuffer(gl.ARRAY_BUFFER, vbo.rid)
	gl.BufferData(gl.ARRAY_BUFFER, sz, unsafe.Pointer(&data[0]), uint32(usage))
	return vbo, Err()
}

func (vbo VertexBuffer) Bind()   { gl.BindBuffer(gl.ARRAY_BUFFER, vbo.rid) }
func (vbo VertexBuffer) Unbind() { gl.BindBuffer(gl.ARRAY_BUFFER, 0) }
func (vbo VertexBuffer) Delete() { gl.DeleteBuffers(1, &vbo.rid) }
func (vbo VertexBuffer) Valid() bool { return vbo.rid != 0 }

// IndexBuffer is an opaque handle to GPU-resident index (element) data.
type IndexBuffer struct{ rid uint32 }

func NewIndexBuffer(data []uint32) (IndexBuffer, error) {
	if len(data) == 0 {
		return IndexBuffer{}, errors.New("no data to upload")
	}
	var ibo IndexBuffer
	sz := int(unsafe.Sizeof(data[0])) * len(data)
	gl.GenBuffers(1, &ibo.rid)
	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, ibo.rid)
	gl.BufferData(gl.ELEMENT_ARRAY_BUFFER, sz, unsafe.Pointer(&data[0]), gl.STATIC_DRAW)
	return ibo, Err()
}

func (ibo IndexBuffer) Bind()   { gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, ibo.rid) }
func (ibo IndexBuffer) Unbind() { gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, 0) }
func (ibo IndexBuffer) Delete() { gl.DeleteBuffers(1, &ibo.rid) }

// DrawMode mirrors the GL primitive topologies used by glDrawArrays, plus
// the renderer's own TRANSLATE sentinel (see package primitive).
type DrawMode uint32

const (
	Points        DrawMode = gl.POINTS
	Lines         DrawMode = gl.LINES
	LineStrip     DrawMode = gl.LINE_STRIP
	LineLoop      DrawMode = gl.LINE_LOOP
	Triangles     DrawMode = gl.TRIANGLES
	TriangleStrip DrawMode = gl.TRIANGLE_STRIP
	TriangleFan   DrawMode = gl.TRIANGLE_FAN
)

// DrawArrays issues one non-indexed draw call.
func DrawArrays(mode DrawMode, first, count int32) {
	gl.DrawArrays(uint32(mode), first, count)
}

// ClearErrors drains any pending GL error flags.
func ClearErrors() {
	for i := 0; i < 2000; i++ {
		if gl.GetError() == gl.NO_ERROR {
			return
		}
	}
	panic("forever loop in ClearErrors; is the context current?")
}

// Err returns a non-nil error if OpenGL's error queue is non-empty.
func Err() error {
	code := gl.GetError()
	if code == gl.NO_ERROR {
		return nil
	}
	errs := glErrors{glError(code)}
	for {
		code = gl.GetError()
		if code == gl.NO_ERROR {
			return errs
		}
		errs = append(errs, glError(code))
		if len(errs) > 61 {
			return fmt.Errorf("possible forever loop in Err; context may be terminated: %s", errs[0])
		}
	}
}

type glErrors []glError

func (ge glErrors) Error() string {
	var sb strings.Builder
	for i, e := range ge {
		if i > 0 {
			sb.WriteString("; ")
		}
		sb.WriteString(e.String())
	}
	return sb.String()
}

type glError uint32

func (ge glError) String() string {
	switch ge {
	case gl.INVALID_ENUM:
		return "invalid enum"
	case gl.INVALID_FRAMEBUFFER_OPERATION:
		return "invalid framebuffer operation"
	case gl.INVALID_OPERATION:
		return "invalid operation"
	case gl.INVALID_VALUE:
		return "invalid value"
	case gl.OUT_OF_MEMORY:
		return "out of memory"
	default:
		return "glError(" + strconv.Itoa(int(ge)) + ")"
	}
}

// pin is a small helper mirroring the runtime.Pinner usage in soypat/glgl
// for values whose address is passed into cgo-backed GL calls.
func pin(v *uint32) func() {
	var p runtime.Pinner
	p.Pin(v)
	return p.Unpin
}

package gl

import (
	"errors"
	"unsafe"

	"github.com/go-gl/gl/v4.6-core/gl"
)

// TextureType is the GL texture target, almost always Texture2D for this renderer.
type TextureType uint32

const Texture2D TextureType = gl.TEXTURE_2D

// Texture is a GPU-resident 2D image: the glyph atlas, pattern tiles,
// stipple/NODATA masks and raster overlays all share this type.
type Texture struct {
	rid    uint32
	target uint32
	Width  int
	Height int
}

// TextureConfig describes the format of a texture's backing store.
type TextureConfig struct {
	Width, Height int
	// Format is the source pixel layout: gl.RED for an alpha-only glyph
	// atlas or stipple mask, gl.RGBA for color raster/pattern tiles.
	Format uint32
	// InternalFormat defaults to Format if zero.
	InternalFormat int32
	// Xtype is almost always gl.UNSIGNED_BYTE.
	Xtype     uint32
	MagFilter int32
	MinFilter int32
	Wrap      int32
}

// NewTexture allocates a texture and optionally uploads data (data may be nil
// to allocate storage only, as is done before an FBO render-to-texture pass).
func NewTexture[T any](cfg TextureConfig, data []T) (Texture, error) {
	var rid uint32
	gl.GenTextures(1, &rid)
	tex := Texture{rid: rid, target: gl.TEXTURE_2D, Width: cfg.Width, Height: cfg.Height}
	gl.BindTexture(tex.target, rid)

	internal := cfg.InternalFormat
	if internal == 0 {
		internal = int32(cfg.Format)
	}
	xtype := cfg.Xtype
	if xtype == 0 {
		xtype = gl.UNSIGNED_BYTE
	}
	var ptr unsafe.Pointer
	if len(data) > 0 {
		ptr = unsafe.Pointer(&data[0])
	}
	gl.TexImage2D(tex.target, 0, internal, int32(cfg.Width), int32(cfg.Height), 0, cfg.Format, xtype, ptr)
	gl.TexParameteri(tex.target, gl.TEXTURE_MAG_FILTER, zdefault(cfg.MagFilter, gl.NEAREST))
	gl.TexParameteri(tex.target, gl.TEXTURE_MIN_FILTER, zdefault(cfg.MinFilter, gl.NEAREST))
	gl.TexParameteri(tex.target, gl.TEXTURE_WRAP_S, zdefault(cfg.Wrap, gl.REPEAT))
	gl.TexParameteri(tex.target, gl.TEXTURE_WRAP_T, zdefault(cfg.Wrap, gl.REPEAT))
	return tex, Err()
}

// SubImage replaces a rectangular region of the texture, used for RADAR's
// per-frame dynamic texture update.
func SubImage[T any](tex Texture, x, y, w, h int, format, xtype uint32, data []T) error {
	if len(data) == 0 {
		return errors.New("no data")
	}
	gl.BindTexture(tex.target, tex.rid)
	gl.TexSubImage2D(tex.target, 0, int32(x), int32(y), int32(w), int32(h), format, xtype, unsafe.Pointer(&data[0]))
	return Err()
}

func (t Texture) Bind(unit int) {
	gl.ActiveTexture(gl.TEXTURE0 + uint32(unit))
	gl.BindTexture(t.target, t.rid)
}

func (t Texture) Delete() { gl.DeleteTextures(1, &t.rid) }
func (t Texture) ID() uint32 { return t.rid }

func zdefault(got, def int32) int32 {
	if got == 0 {
		return def
	}
	return got
}

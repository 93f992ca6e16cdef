package render

import (
	"bytes"
	"fmt"
	"image"
	"image/png"

	"github.com/navchart/s52gl/gl"
	"github.com/navchart/s52gl/glm"
	"github.com/navchart/s52gl/pick"
	"github.com/navchart/s52gl/s57data"
	"github.com/navchart/s52gl/text"
)

// PickName implements the cursor-pick external entry point (spec §4.9,
// §6.1 pick_name): read back an 8x8 window around (cx, cy), resolve the
// top hit per the preserved "last matching entry wins" rule, and
// propagate highlight to C_AGGR/C_ASSO relatives.
func (r *Renderer) PickName(cx, cy int) (*s57data.Feature, []*s57data.Feature, error) {
	if r.Pick == nil {
		return nil, nil, fmt.Errorf("render: PickName called outside a PICK cycle")
	}
	const win = 8
	raw := gl.ReadPixels(cx-win/2, cy-win/2, win, win)
	if len(raw)%4 != 0 {
		return nil, nil, fmt.Errorf("render: PickName: unexpected read-back stride")
	}
	pixels := make([]pick.Pixel, 0, len(raw)/4)
	for i := 0; i+3 < len(raw); i += 4 {
		pixels = append(pixels, pick.Pixel{R: raw[i], G: raw[i+1], B: raw[i+2], A: raw[i+3]})
	}
	hits := r.Pick.Resolve(pixels)
	top, ok := pick.TopHit(hits)
	if !ok {
		return nil, nil, nil
	}
	related := pick.HighlightRelated(top.Feature, r.resolveID)
	return top.Feature, related, nil
}

// DrawStringWorld lays out s at a world-space position and caches it as
// static text under ownerID, the same path as TE/TX (spec §6.1).
func (r *Renderer) DrawStringWorld(ownerID uint32, s string, x, y float64, size int, color [3]float32) error {
	opts := text.LayoutOptions{X: float32(x), Y: float32(y), Size: size, Weight: 1, Color: color}
	shadow, main := r.Text.Layout(s, opts)
	combined := append(append([]text.Vertex{}, shadow...), main...)
	r.Text.CacheStatic(ownerID, combined)
	if r.textShadowCounts == nil {
		r.textShadowCounts = make(map[uint32]int)
	}
	r.textShadowCounts[ownerID] = len(shadow)
	return r.drawText(combined, len(shadow))
}

// DrawStringWindow lays out and immediately draws s at a fixed viewport
// pixel position (spec §6.1 draw_string_window), used by the
// SCALEB10/SCALEB11/NORTHAR1/etc. furniture symbols that symbols.go
// defers to this entry point. Unlike DrawStringWorld it is not cached:
// window furniture is redrawn fresh every frame at the caller's pixel
// position.
func (r *Renderer) DrawStringWindow(s string, px, py float64, size int, color [3]float32) error {
	opts := text.LayoutOptions{X: float32(px), Y: float32(py), Size: size, Weight: 1, Color: color}
	shadow, main := r.Text.Layout(s, opts)
	combined := append(append([]text.Vertex{}, shadow...), main...)
	return r.drawText(combined, len(shadow))
}

// RasterLayer is a georeferenced bitmap overlay (e.g. a raster chart
// underlay) registered via DrawRaster (spec §6.1).
type RasterLayer struct {
	Texture    gl.Texture
	PMin, PMax [2]float64 // projected extent
}

// DrawRaster uploads pixels as an RGBA texture, registers it as a
// georeferenced overlay (so DelRaster can later release it), and draws it
// immediately as a textured quad spanning its projected extent (spec §6.1
// draw_raster). Texture upload is skipped before Init (quadProgram.ID()==0
// is the same "not initialized yet" sentinel the other draw paths check),
// so the layer is still tracked for DelRaster but nothing touches the GPU.
func (r *Renderer) DrawRaster(id uint32, pixels []byte, w, h int, pMinX, pMinY, pMaxX, pMaxY float64) error {
	if r.rasters == nil {
		r.rasters = make(map[uint32]RasterLayer)
	}
	layer := r.rasters[id]
	if r.quadProgram.ID() != 0 && layer.Texture.ID() == 0 {
		tex, err := gl.NewTexture(gl.TextureConfig{Width: w, Height: h, Format: 0x1908 /* gl.RGBA */}, pixels)
		if err != nil {
			return fmt.Errorf("render: DrawRaster: %w", err)
		}
		layer.Texture = tex
	}
	layer.PMin, layer.PMax = [2]float64{pMinX, pMinY}, [2]float64{pMaxX, pMaxY}
	r.rasters[id] = layer
	verts := rectQuad(pMinX, pMinY, pMaxX, pMaxY)
	return r.drawTexturedQuad(layer.Texture, r.Matrices.Combined().Array(), verts)
}

// DelRaster releases a raster layer's GPU texture (spec §6.1 del_raster).
func (r *Renderer) DelRaster(id uint32) {
	if layer, ok := r.rasters[id]; ok {
		if layer.Texture.ID() != 0 {
			layer.Texture.Delete()
		}
		delete(r.rasters, id)
	}
}

// DrawFbPixels uploads pixels back into an off-screen target's color
// attachment at (x, y) (spec §6.1 draw_fb_pixels), the write-side
// counterpart of ReadFBPixels. target is the FBO's color texture, e.g.
// from frame.Lifecycle's LAST-cycle snapshot.
func (r *Renderer) DrawFbPixels(target gl.Texture, x, y, w, h int, pixels []byte) error {
	if err := gl.SubImage(target, x, y, w, h, 0x1908 /* gl.RGBA */, 0x1401 /* gl.UNSIGNED_BYTE */, pixels); err != nil {
		return fmt.Errorf("render: DrawFbPixels: %w", err)
	}
	return nil
}

// DrawBlit draws a full-viewport textured quad from src, used for the
// "copy framebuffer snapshot back into view" path of the LAST cycle (spec
// §4.11). The quad spans NDC [-1,1] directly, bypassing the view's
// projection matrix since src already holds a screen-space snapshot.
func (r *Renderer) DrawBlit(src gl.Texture) error {
	if r.quadProgram.ID() == 0 {
		return fmt.Errorf("render: DrawBlit: renderer not initialized")
	}
	verts := rectQuad(-1, -1, 1, 1)
	return r.drawTexturedQuad(src, glm.Identity4().Array(), verts)
}

// DumpToPng encodes the current framebuffer read-back as a PNG (spec §6.1
// dump_to_png, a debugging aid named alongside the external API).
func (r *Renderer) DumpToPng() ([]byte, error) {
	w, h := int(r.View.ViewportW), int(r.View.ViewportH)
	if w <= 0 || h <= 0 {
		return nil, fmt.Errorf("render: DumpToPng: empty viewport")
	}
	raw := r.ReadFBPixels()
	if len(raw) < w*h*4 {
		return nil, fmt.Errorf("render: DumpToPng: short read-back (%d bytes for %dx%d)", len(raw), w, h)
	}
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		srcRow := (h - 1 - y) * w * 4 // GL read-back is bottom-up
		copy(img.Pix[y*img.Stride:y*img.Stride+w*4], raw[srcRow:srcRow+w*4])
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("render: DumpToPng: %w", err)
	}
	return buf.Bytes(), nil
}

package text

import (
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

// FontSizeSteps are the four font size steps (spec §4.10: "base+0, +6,
// +12, +18 points") that the renderer snaps TE/TX sizes to. Glyphs are
// rasterized into the atlas on first use from Manager.Face at that face's
// single size, whatever the step.
var FontSizeSteps = [4]int{0, 6, 12, 18}

// Vertex is one packed text vertex: position plus atlas texcoord.
type Vertex struct {
	X, Y, Z float32
	S, T    float32
}

// Manager owns the glyph atlas, the default embedded face (used when no
// external font is supplied — the pack ships no font rasterizer), and the
// per-feature static text layout cache; there is no dynamic text cache.
type Manager struct {
	Atlas   *Atlas
	Face    font.Face
	glyphs  map[rune]Glyph
	static  map[uint32][]Vertex // feature ID -> cached static layout
	color   [3]float32
}

// NewManager returns a Manager seeded with the basicfont default face and
// an empty atlas (spec's "font backends beyond the atlas-based one" are
// ignored per §1 scope; basicfont keeps this self-contained without a
// cgo freetype dependency).
func NewManager() *Manager {
	return &Manager{
		Atlas:  NewAtlas(),
		Face:   basicfont.Face7x13,
		glyphs: make(map[rune]Glyph),
		static: make(map[uint32][]Vertex),
	}
}

// ensureGlyph rasterizes r into the atlas on first use, returning its
// cached placement and metrics.
func (m *Manager) ensureGlyph(r rune) (Glyph, bool) {
	if g, ok := m.glyphs[r]; ok {
		return g, true
	}
	dr, mask, maskp, advance, ok := m.Face.Glyph(fixed.P(0, 0), r)
	if !ok {
		return Glyph{}, false
	}
	w, h := dr.Dx(), dr.Dy()
	if w <= 0 || h <= 0 {
		return Glyph{}, false
	}
	rect, ok := m.Atlas.Alloc(w, h)
	if !ok {
		m.Atlas.Reset()
		// Reset erased every glyph, so cached placements and layouts are stale.
		m.glyphs = make(map[rune]Glyph)
		m.static = make(map[uint32][]Vertex)
		rect, ok = m.Atlas.Alloc(w, h)
		if !ok {
			return Glyph{}, false
		}
	}
	bitmap := make([]byte, w*h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			_, a, _, _ := mask.At(maskp.X+x, maskp.Y+y).RGBA()
			bitmap[y*w+x] = byte(a >> 8)
		}
	}
	m.Atlas.Blit(rect, bitmap)
	g := Glyph{Rect: rect, Advance: fixedInt(advance), BearingX: dr.Min.X, BearingY: dr.Min.Y}
	m.glyphs[r] = g
	return g, true
}

// LayoutOptions configures one call to Layout.
type LayoutOptions struct {
	X, Y         float32 // world-coordinate pen start
	Size         int     // pen drop on '\n'; the renderer passes one of FontSizeSteps
	Weight       float32 // not read by Layout; each '\n' scales later glyphs by a fixed 0.85
	DropShadow   bool
	Color        [3]float32
	ShadowColor  [3]float32
}

// Layout produces a packed vertex buffer of 6 vertices per glyph (two
// triangles), advancing the pen with each glyph's metric-reported advance
// width, resetting X and scaling later glyphs by 0.85 on '\n' (spec §4.10).
// If opts.DropShadow is set, a shadow copy offset one pixel down-right is
// returned as shadow, to be drawn ahead of the main glyphs. Vertices carry
// no color (opts.Color and opts.ShadowColor are not read) — the
// renderer distinguishes the two by vertex range, not by a stored color
// per vertex, matching the teacher's "draw shadow pass then main pass"
// idiom used throughout the command renderer for 2-pass effects.
func (m *Manager) Layout(s string, opts LayoutOptions) (shadow, main []Vertex) {
	if opts.DropShadow {
		shadow = m.layoutPass(s, opts, 1, -1)
	}
	main = m.layoutPass(s, opts, 0, 0)
	return shadow, main
}

func (m *Manager) layoutPass(s string, opts LayoutOptions, dx, dy float32) []Vertex {
	var out []Vertex
	penX, penY := opts.X+dx, opts.Y+dy
	scale := float32(1)
	for _, r := range s {
		if r == '\n' {
			penX = opts.X + dx
			penY -= float32(opts.Size)
			scale *= 0.85 // "increase font weight downscale" per glyph row
			continue
		}
		g, ok := m.ensureGlyph(r)
		if !ok {
			continue
		}
		w, h := float32(g.Rect.W)*scale, float32(g.Rect.H)*scale
		u0 := float32(g.Rect.X) / float32(m.Atlas.Width)
		v0 := float32(g.Rect.Y) / float32(m.Atlas.Height)
		u1 := float32(g.Rect.X+g.Rect.W) / float32(m.Atlas.Width)
		v1 := float32(g.Rect.Y+g.Rect.H) / float32(m.Atlas.Height)

		x0, y0 := penX, penY
		x1, y1 := penX+w, penY+h

		out = append(out,
			Vertex{X: x0, Y: y0, S: u0, T: v1},
			Vertex{X: x1, Y: y0, S: u1, T: v1},
			Vertex{X: x1, Y: y1, S: u1, T: v0},
			Vertex{X: x0, Y: y0, S: u0, T: v1},
			Vertex{X: x1, Y: y1, S: u1, T: v0},
			Vertex{X: x0, Y: y1, S: u0, T: v0},
		)
		penX += float32(g.Advance) / 64 * scale
	}
	return out
}

// CacheStatic stores a feature's static text layout (names, labels) for
// reuse across frames, uploaded once (spec §4.10 "Caching").
func (m *Manager) CacheStatic(featureID uint32, verts []Vertex) { m.static[featureID] = verts }

// Static returns a feature's cached static layout, if any.
func (m *Manager) Static(featureID uint32) ([]Vertex, bool) {
	v, ok := m.static[featureID]
	return v, ok
}

// InvalidateStatic drops a feature's cached static layout, e.g. when the
// feature is deleted (spec §6.1 del).
func (m *Manager) InvalidateStatic(featureID uint32) { delete(m.static, featureID) }

// Suppressed reports whether text rendering is a no-op for the current
// settings (spec §4.10 "Suppression"): SHOW_TEXT off, or the text's view
// group filtered out.
func Suppressed(showText bool, viewGroupVisible bool) bool {
	return !showText || !viewGroupVisible
}


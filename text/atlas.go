// Package text implements the glyph atlas and UTF-8 layout pipeline (spec
// §4.10): a single alpha texture that a skyline allocator fills as each
// glyph is first used, layout into packed 6-vertices-per-glyph buffers,
// and a per-feature static layout cache (there is no separate dynamic
// cache).
//
// The skyline-packing allocator is adapted (not translated) from
// original_source/lib/freetype-gl/texture-atlas.c's row-based skyline
// array with best-fit placement. When the atlas is full it is cleared,
// not repacked.
package text

import (
	"fmt"

	"golang.org/x/image/font"
)

// AtlasSize is the fixed glyph atlas dimension (spec §6.4: "single-channel
// alpha, 512x512").
const AtlasSize = 512

// node is one skyline segment: [X, X+Width) is occupied up to height Y.
type node struct {
	X, Y, Width int
}

// Atlas packs glyph bitmaps into a single AtlasSize x AtlasSize
// single-channel image using a skyline allocator.
type Atlas struct {
	Width, Height int
	Pixels        []byte // single-channel alpha, Width*Height
	skyline       []node
	used          int
	version       int
}

// Version returns a counter bumped on every pixel mutation (Blit, Reset),
// letting a GPU-side cache know its uploaded texture copy is stale.
func (a *Atlas) Version() int { return a.version }

// NewAtlas returns an empty atlas with one skyline node at height 1
// spanning the width inside a 1-pixel border, mirroring
// texture_atlas_new's initial sentinel node.
func NewAtlas() *Atlas {
	a := &Atlas{Width: AtlasSize, Height: AtlasSize, Pixels: make([]byte, AtlasSize*AtlasSize)}
	a.skyline = []node{{X: 1, Y: 1, Width: AtlasSize - 2}}
	return a
}

// Rect is an allocated atlas region.
type Rect struct{ X, Y, W, H int }

// Alloc reserves a w x h region, returning ok=false if the atlas is full;
// Manager.ensureGlyph then clears the atlas with Reset and allocates again.
func (a *Atlas) Alloc(w, h int) (Rect, bool) {
	bestIdx, bestY, bestWaste := -1, a.Height+1, -1
	for i := range a.skyline {
		y, ok := a.fit(i, w, h)
		if !ok {
			continue
		}
		waste := a.waste(i, w, y)
		if y+h < bestY || (y+h == bestY && waste < bestWaste) {
			bestIdx, bestY, bestWaste = i, y+h, waste
		}
	}
	if bestIdx == -1 {
		return Rect{}, false
	}
	x := a.skyline[bestIdx].X
	a.insert(bestIdx, x, bestY, w)
	a.used += w * h
	return Rect{X: x, Y: bestY - h, W: w, H: h}, true
}

func (a *Atlas) fit(idx, w, h int) (int, bool) {
	n := a.skyline[idx]
	if n.X+w > a.Width-1 {
		return 0, false
	}
	x := n.X
	widthLeft := w
	y := n.Y
	i := idx
	for widthLeft > 0 {
		if i >= len(a.skyline) {
			return 0, false
		}
		if a.skyline[i].Y > y {
			y = a.skyline[i].Y
		}
		if y+h > a.Height-1 {
			return 0, false
		}
		widthLeft -= a.skyline[i].Width
		i++
	}
	_ = x
	return y, true
}

func (a *Atlas) waste(idx, w, y int) int {
	waste := 0
	widthLeft := w
	i := idx
	for widthLeft > 0 && i < len(a.skyline) {
		waste += (y - a.skyline[i].Y) * min(a.skyline[i].Width, widthLeft)
		widthLeft -= a.skyline[i].Width
		i++
	}
	return waste
}

func (a *Atlas) insert(idx, x, y, w int) {
	newNode := node{X: x, Y: y, Width: w}
	a.skyline = append(a.skyline[:idx], append([]node{newNode}, a.skyline[idx:]...)...)
	i := idx + 1
	for i < len(a.skyline) {
		if a.skyline[i].X < a.skyline[i-1].X+a.skyline[i-1].Width {
			shrink := a.skyline[i-1].X + a.skyline[i-1].Width - a.skyline[i].X
			a.skyline[i].X += shrink
			a.skyline[i].Width -= shrink
			if a.skyline[i].Width <= 0 {
				a.skyline = append(a.skyline[:i], a.skyline[i+1:]...)
				continue
			}
		}
		break
	}
	a.merge()
}

func (a *Atlas) merge() {
	for i := 0; i < len(a.skyline)-1; i++ {
		if a.skyline[i].Y == a.skyline[i+1].Y {
			a.skyline[i].Width += a.skyline[i+1].Width
			a.skyline = append(a.skyline[:i+1], a.skyline[i+2:]...)
			i--
		}
	}
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}

// Reset clears the atlas back to empty, the escape hatch when Alloc
// reports full; no glyph is kept or repacked.
func (a *Atlas) Reset() {
	for i := range a.Pixels {
		a.Pixels[i] = 0
	}
	a.skyline = []node{{X: 1, Y: 1, Width: a.Width - 2}}
	a.used = 0
	a.version++
}

// Blit copies an w*h single-channel bitmap into the atlas at rect.
func (a *Atlas) Blit(rect Rect, bitmap []byte) error {
	if len(bitmap) != rect.W*rect.H {
		return fmt.Errorf("text: bitmap size %d does not match rect %dx%d", len(bitmap), rect.W, rect.H)
	}
	for row := 0; row < rect.H; row++ {
		dstOff := (rect.Y+row)*a.Width + rect.X
		srcOff := row * rect.W
		copy(a.Pixels[dstOff:dstOff+rect.W], bitmap[srcOff:srcOff+rect.W])
	}
	a.version++
	return nil
}

// Glyph is one cached glyph's atlas placement and metrics.
type Glyph struct {
	Rect    Rect
	Advance fixedInt // 26.6 fixed-point advance width, matching font.Face semantics
	BearingX, BearingY int
}

// fixedInt mirrors golang.org/x/image/math/fixed.Int26_6's representation
// without importing the fixed package into every call site; convertible
// via font.Face metrics.
type fixedInt = int32

// FaceMetrics adapts a golang.org/x/image/font.Face's advance width for
// rune r into the atlas's Glyph.Advance units.
func FaceMetrics(face font.Face, r rune) (advance fixedInt, ok bool) {
	adv, ok := face.GlyphAdvance(r)
	if !ok {
		return 0, false
	}
	return fixedInt(adv), true
}

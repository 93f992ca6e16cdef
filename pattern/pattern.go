// Package pattern implements the AP (area pattern) engine (spec §4.8):
// grid reference computation, FBO tile prerender, and the built-in
// NODATA/stipple masks. The asymmetric grid-rounding behavior of the
// original _getGridRef is preserved verbatim per spec §9.
package pattern

import (
	"math"

	"github.com/navchart/s52gl/geom"
	"github.com/navchart/s52gl/gl"
)

// Grid describes the aligned tiling grid for one pattern fill pass.
type Grid struct {
	LL        geom.Vec2 // lower-left origin of the grid
	TileW     float64
	TileH     float64
	StaggerX  float64
}

// GridRef computes the tile grid for an area extent and a symbol's tile
// dimensions (world units, already converted from 0.01mm via dotpitch by
// the caller). Preserves the original's asymmetric rounding: the
// south/west corner snaps Y to a multiple of 2*tileH (to accommodate
// staggered rows) while X snaps to tileW; spec §9 explicitly calls out
// that this asymmetry (tileW, 2*tileH for S/W vs tileH for N) must be
// kept rather than "fixed".
func GridRef(ext geom.Extent, tileW, tileH, staggerX float64) Grid {
	llX := math.Floor(ext.W/tileW) * tileW
	llY := math.Floor(ext.S/(2*tileH)) * (2 * tileH)
	return Grid{LL: geom.Vec2{X: llX, Y: llY}, TileW: tileW, TileH: tileH, StaggerX: staggerX}
}

// TrimToView returns a grid-aligned extent covering view, over-covered by
// one tile in each direction so that partial edge tiles still draw fully
// (spec §4.8 "Trim to viewport intersection; over-cover by one tile").
func (g Grid) TrimToView(view geom.Extent) geom.Extent {
	w := math.Floor((view.W-g.LL.X)/g.TileW)*g.TileW + g.LL.X - g.TileW
	e := math.Ceil((view.E-g.LL.X)/g.TileW)*g.TileW + g.LL.X + g.TileW
	s := math.Floor((view.S-g.LL.Y)/(2*g.TileH))*(2*g.TileH) + g.LL.Y - g.TileH
	n := math.Ceil((view.N-g.LL.Y)/g.TileH)*g.TileH + g.LL.Y + g.TileH
	out, err := geom.NewExtent(w, s, e, n)
	if err != nil {
		return view
	}
	return out
}

// Tile is a prerendered pattern tile: a texture sized to the symbol's
// tile dimensions, rendered once via FBO and reused every frame until the
// symbol cache is invalidated.
type Tile struct {
	Texture gl.Texture
	Ready   bool
}

// PrerenderTile renders draw (the symbol's primitive buffer, already bound
// and scaled so 1 tile-unit maps to 1 texel by the caller) into a
// newly-allocated tile-sized texture via an off-screen framebuffer, then
// binds the default framebuffer (spec §4.8 "Tile prerender (shader
// path)"); a non-default framebuffer bound before the call is not
// restored. Returns the gl.FramebufferIncompleteError from
// gl.NewFramebuffer if the FBO fails completeness, per spec §7 ("pattern rendering for that
// symbol is disabled for the session" — left to the caller to enforce by
// not retrying Tile.Ready == false symbols).
func PrerenderTile(widthPx, heightPx int, draw func()) (Tile, error) {
	fb, err := gl.NewFramebuffer(widthPx, heightPx, 0x1908 /* gl.RGBA */)
	if err != nil {
		return Tile{}, err
	}
	fb.Bind()
	draw()
	gl.BindDefault()
	return Tile{Texture: fb.ColorTexture(), Ready: true}, nil
}

// BuiltinMask expands a 32x32 1-bit pattern (packed as 32 uint32 rows, bit
// 31 = leftmost pixel) into an RGBA8 stencil texture, used for the NODATA
// background pattern and the dash/dot line stipple masks (spec §4.8,
// §6.4). Stipple masks are 1 row tall; NODATA is the full 32x32.
func BuiltinMask(rows []uint32, maskColor [4]byte) []byte {
	w := 32
	h := len(rows)
	out := make([]byte, w*h*4)
	for y, row := range rows {
		for x := 0; x < w; x++ {
			bit := (row >> uint(31-x)) & 1
			o := (y*w + x) * 4
			if bit != 0 {
				copy(out[o:o+4], maskColor[:])
			}
		}
	}
	return out
}

// NODATA is the built-in 32x32 bit mask for the chart's "no data" area
// fill, expanded at init via BuiltinMask.
var NODATA = [32]uint32{
	0xAAAAAAAA, 0x55555555, 0xAAAAAAAA, 0x55555555,
	0xAAAAAAAA, 0x55555555, 0xAAAAAAAA, 0x55555555,
	0xAAAAAAAA, 0x55555555, 0xAAAAAAAA, 0x55555555,
	0xAAAAAAAA, 0x55555555, 0xAAAAAAAA, 0x55555555,
	0xAAAAAAAA, 0x55555555, 0xAAAAAAAA, 0x55555555,
	0xAAAAAAAA, 0x55555555, 0xAAAAAAAA, 0x55555555,
	0xAAAAAAAA, 0x55555555, 0xAAAAAAAA, 0x55555555,
	0xAAAAAAAA, 0x55555555, 0xAAAAAAAA, 0x55555555,
}

// DashStipple is the 3.6/1.8mm dash line style's 32-bit row mask (spec
// §4.7 LS "S" style).
const DashStipple uint32 = 0xFFFFF000

// DotStipple is the 0.6/1.2mm dot line style's 32-bit row mask (spec §4.7
// LS "T" style).
const DotStipple uint32 = 0x92492492

// ShouldRenderDRGARE reports whether a DRGARE pattern should be rendered,
// honoring the MAR_DISP_DRGARE_PATTERN gate (spec §4.8, scenario 2) and
// skipping the classes explicitly excluded from pattern fill in this path.
func ShouldRenderDRGARE(objectClass string, drgarePatternEnabled bool) bool {
	switch objectClass {
	case "UNSARE", "M_COVR", "M_CSCL", "M_QUAL":
		return false
	case "DRGARE":
		return drgarePatternEnabled
	default:
		return true
	}
}

package render

import (
	"fmt"

	"github.com/navchart/s52gl/geom"
	"github.com/navchart/s52gl/gl"
	"github.com/navchart/s52gl/mariner"
	"github.com/navchart/s52gl/pattern"
	"github.com/navchart/s52gl/s57data"
	"github.com/navchart/s52gl/symbol"
)

// renderAreaColor implements AC (spec §4.7): set color and fill, with
// dispatch to the light-sector renderer for POINT LIGHTS and the VRM ring
// renderer for the meta "VRM" object.
func (r *Renderer) renderAreaColor(obj *Object, c Command) error {
	f := obj.Feature
	switch {
	case f.Name == "LIGHTS" && f.Kind == s57data.Point:
		return r.renderLightSectors(f, c)
	case f.Name == "VRM":
		return r.renderVRM(f)
	}
	if f.Kind != s57data.Area {
		return nil
	}
	res, err := f.TessellateAreaFill()
	if err != nil {
		return fmt.Errorf("AC fill: %w", err)
	}
	buf := featureBuffer(f)
	if err := beginBuffer(buf, gl.Triangles); err != nil {
		return err
	}
	for _, idx := range res.Triangles {
		v := res.Vertices[idx]
		if err := buf.AppendVertex(float32(v.X), float32(v.Y), 0); err != nil {
			return err
		}
	}
	if err := buf.EndPrim(); err != nil {
		return err
	}
	return r.uploadAndDraw(buf, c.ColorName)
}

// renderAreaPattern implements AP (spec §4.8): computes the tiling grid,
// prerenders (and caches) the symbol's tile via an FBO pass, and fills the
// trimmed view extent with a single textured quad, honoring the
// DRGARE/MAR_DISP_DRGARE_PATTERN and always-skipped class gates.
func (r *Renderer) renderAreaPattern(obj *Object, c Command) error {
	f := obj.Feature
	if f.Kind != s57data.Area {
		return nil
	}
	if !pattern.ShouldRenderDRGARE(f.Name, r.Mariner.Bool(mariner.DispDrgarePattern)) {
		return nil
	}
	def, ok := r.Symbols.Get(c.SymbolName)
	if !ok {
		return fmt.Errorf("pattern symbol not cached: %s", c.SymbolName)
	}
	ext, ok := f.Extent()
	if !ok {
		return fmt.Errorf("AP on feature with no extent")
	}
	tileW := float64(def.TileWidth) / 100 * mmToWorldScale(r)
	tileH := float64(def.TileHeight) / 100 * mmToWorldScale(r)
	if tileW <= 0 || tileH <= 0 {
		return fmt.Errorf("AP symbol has zero tile size: %s", c.SymbolName)
	}
	grid := pattern.GridRef(ext, tileW, tileH, float64(def.StaggerX))
	view := geom.Extent{W: r.View.PMin.X, S: r.View.PMin.Y, E: r.View.PMax.X, N: r.View.PMax.Y}
	trimmed := grid.TrimToView(view)

	if r.program.ID() == 0 {
		return nil
	}
	tile, err := r.patternTile(c.SymbolName, def)
	if err != nil {
		return fmt.Errorf("AP prerender tile: %w", err)
	}
	tile.Texture.Bind(0)

	buf := featureBuffer(f)
	if err := beginBuffer(buf, gl.TriangleFan); err != nil {
		return err
	}
	corners := [4]geom.Vec2{
		{X: trimmed.W, Y: trimmed.S}, {X: trimmed.E, Y: trimmed.S},
		{X: trimmed.E, Y: trimmed.N}, {X: trimmed.W, Y: trimmed.N},
	}
	for _, v := range corners {
		if err := buf.AppendVertex(float32(v.X), float32(v.Y), 0); err != nil {
			return err
		}
	}
	if err := buf.EndPrim(); err != nil {
		return err
	}
	return r.uploadAndDraw(buf, "")
}

// patternTile returns the cached prerendered tile for name, building it
// (via an FBO pass over the symbol's own sublist draw) the first time or
// after the definition is flagged for rebuild (spec §4.8 "Tile prerender").
func (r *Renderer) patternTile(name string, def *symbol.Definition) (pattern.Tile, error) {
	if tile, ok := r.tileCache[name]; ok {
		return tile, nil
	}
	widthPx := 1
	heightPx := 1
	if r.View.DotpitchMMX > 0 {
		if px := int(float64(def.TileWidth) / 100 / r.View.DotpitchMMX); px > 0 {
			widthPx = px
		}
	}
	if r.View.DotpitchMMY > 0 {
		if px := int(float64(def.TileHeight) / 100 / r.View.DotpitchMMY); px > 0 {
			heightPx = px
		}
	}
	tile, err := pattern.PrerenderTile(widthPx, heightPx, func() {
		r.drawSymbolDefinition(def)
	})
	if err != nil {
		return pattern.Tile{}, err
	}
	if r.tileCache == nil {
		r.tileCache = make(map[string]pattern.Tile)
	}
	r.tileCache[name] = tile
	return tile, nil
}

func mmToWorldScale(r *Renderer) float64 {
	if r.View.MetersPerPixelX == 0 || r.View.DotpitchMMX == 0 {
		return 1
	}
	return r.View.MetersPerPixelX / r.View.DotpitchMMX
}

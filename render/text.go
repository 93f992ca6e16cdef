package render

import (
	"fmt"

	"github.com/navchart/s52gl/gl"
	"github.com/navchart/s52gl/mariner"
	"github.com/navchart/s52gl/text"
)

// textVertexStride is sizeof(text.Vertex): 5 packed float32 fields
// (X, Y, Z, S, T).
const textVertexStride = 5 * 4

// renderText implements TE/TX (spec §4.10): layout is computed once per
// feature and cached (static text survives across frames), then the
// cached glyph quads are uploaded and drawn through the atlas-sampling
// text shader every LAST cycle; suppressed entirely when MAR_SHOW_TEXT is
// off. The owning display category is not checked: text.Suppressed is
// always called with the view group visible.
func (r *Renderer) renderText(obj *Object, c Command) error {
	f := obj.Feature
	if text.Suppressed(r.Mariner.Bool(mariner.ShowText), true) {
		return nil
	}
	if c.Text == "" {
		return nil
	}

	verts, ok := r.Text.Static(f.ID())
	shadowN := r.textShadowCounts[f.ID()]
	if !ok {
		size := nearestFontSizeStep(c.TextSize)
		opts := text.LayoutOptions{
			X: float32(c.TextX), Y: float32(c.TextY),
			Size:       size,
			Weight:     1,
			DropShadow: r.Mariner.Bool(mariner.UseTxtShadow),
		}
		shadow, main := r.Text.Layout(c.Text, opts)
		combined := append(append([]text.Vertex{}, shadow...), main...)
		if len(combined) == 0 {
			return fmt.Errorf("TE/TX produced no glyph vertices for %q", c.Text)
		}
		r.Text.CacheStatic(f.ID(), combined)
		if r.textShadowCounts == nil {
			r.textShadowCounts = make(map[uint32]int)
		}
		r.textShadowCounts[f.ID()] = len(shadow)
		verts, shadowN = combined, len(shadow)
	}
	return r.drawText(verts, shadowN)
}

// drawText issues the shadow pass (if any) followed by the main-color
// pass over a feature's cached glyph-quad vertices (spec §4.10 "shadow
// copy ... ahead of the main-color glyphs").
func (r *Renderer) drawText(verts []text.Vertex, shadowN int) error {
	if r.textProgram.ID() == 0 {
		return nil
	}
	if err := r.ensureAtlasTexture(); err != nil {
		return err
	}
	if shadowN > 0 {
		if err := r.uploadAndDrawTextVerts(verts[:shadowN], "CHWHT"); err != nil {
			return err
		}
	}
	if len(verts) > shadowN {
		if err := r.uploadAndDrawTextVerts(verts[shadowN:], "CHBLK"); err != nil {
			return err
		}
	}
	return nil
}

// ensureAtlasTexture uploads the glyph atlas to a GPU texture the first
// time it's needed and re-uploads whenever new glyphs have been rasterized
// since (spec §6.4 "single-channel alpha, 512x512").
func (r *Renderer) ensureAtlasTexture() error {
	if r.atlasTex.ID() != 0 && r.atlasTexVersion == r.Text.Atlas.Version() {
		return nil
	}
	tex, err := gl.NewTexture(gl.TextureConfig{
		Width: r.Text.Atlas.Width, Height: r.Text.Atlas.Height,
		Format: 0x1903 /* gl.RED */, MagFilter: 0x2601 /* gl.LINEAR */, MinFilter: 0x2601,
	}, r.Text.Atlas.Pixels)
	if err != nil {
		return fmt.Errorf("render: atlas upload: %w", err)
	}
	if r.atlasTex.ID() != 0 {
		r.atlasTex.Delete()
	}
	r.atlasTex = tex
	r.atlasTexVersion = r.Text.Atlas.Version()
	return nil
}

// uploadAndDrawTextVerts draws one pass of glyph-quad triangles in the
// given PLib color, sampling the atlas texture for per-pixel alpha. The
// VBO/VAO are built and torn down per call rather than cached on the
// feature, since text geometry is cheap and only redrawn during LAST.
func (r *Renderer) uploadAndDrawTextVerts(verts []text.Vertex, colorName string) error {
	vbo, err := gl.NewVertexBuffer(gl.StaticDraw, verts)
	if err != nil {
		return fmt.Errorf("render: text upload: %w", err)
	}
	defer vbo.Delete()
	vao := gl.NewVAO()
	defer vao.Delete()
	if err := vao.AddAttribute(vbo, gl.AttribLayout{
		Program: r.textProgram, Type: gl.Float32, Name: "in_pos\x00", Packing: 3, Stride: textVertexStride,
	}); err != nil {
		return err
	}
	if err := vao.AddAttribute(vbo, gl.AttribLayout{
		Program: r.textProgram, Type: gl.Float32, Name: "in_uv\x00", Packing: 2, Stride: textVertexStride, Offset: 3 * 4,
	}); err != nil {
		return err
	}

	r.textProgram.Bind()
	mvpLoc, err := r.textProgram.UniformLocation("u_mvp\x00")
	if err != nil {
		return err
	}
	r.textProgram.SetUniformMatrix4(mvpLoc, r.Matrices.Combined().Array())
	col, ok := builtinColors[colorName]
	if !ok {
		col = [4]float32{0, 0, 0, 1}
	}
	colLoc, err := r.textProgram.UniformLocation("u_color\x00")
	if err != nil {
		return err
	}
	if err := r.textProgram.SetUniformf(colLoc, col[0], col[1], col[2], col[3]); err != nil {
		return err
	}
	texLoc, err := r.textProgram.UniformLocation("u_tex\x00")
	if err != nil {
		return err
	}
	if err := r.textProgram.SetUniformi(texLoc, 0); err != nil {
		return err
	}
	r.atlasTex.Bind(0)
	gl.DrawArrays(gl.Triangles, 0, int32(len(verts)))
	return gl.Err()
}

func nearestFontSizeStep(want int) int {
	best := text.FontSizeSteps[0]
	bestDiff := want
	if bestDiff < 0 {
		bestDiff = -bestDiff
	}
	for _, step := range text.FontSizeSteps[1:] {
		diff := want - step
		if diff < 0 {
			diff = -diff
		}
		if diff < bestDiff {
			best, bestDiff = step, diff
		}
	}
	return best
}

package render

import (
	"fmt"

	"github.com/navchart/s52gl/gl"
)

// quadVertex packs position + texcoord for the raster/blit textured quad
// path, the same 5-float layout text.Vertex uses for glyph quads.
type quadVertex struct {
	X, Y, Z, S, T float32
}

const quadVertexStride = 5 * 4

// rectQuad builds the two counter-clockwise triangles covering [pMin,pMax]
// at z=0, with texcoords running (0,0) bottom-left to (1,1) top-right.
func rectQuad(pMinX, pMinY, pMaxX, pMaxY float64) []quadVertex {
	x0, y0, x1, y1 := float32(pMinX), float32(pMinY), float32(pMaxX), float32(pMaxY)
	return []quadVertex{
		{x0, y0, 0, 0, 0}, {x1, y0, 0, 1, 0}, {x1, y1, 0, 1, 1},
		{x0, y0, 0, 0, 0}, {x1, y1, 0, 1, 1}, {x0, y1, 0, 0, 1},
	}
}

// drawTexturedQuad uploads verts and draws tex through quadProgram with the
// given model-view-projection matrix (spec §6.1 draw_raster, draw_blit). A
// no-op before Init, the same "not initialized yet" guard uploadAndDraw
// uses.
func (r *Renderer) drawTexturedQuad(tex gl.Texture, mvp [16]float32, verts []quadVertex) error {
	if r.quadProgram.ID() == 0 {
		return nil
	}
	vbo, err := gl.NewVertexBuffer(gl.StaticDraw, verts)
	if err != nil {
		return fmt.Errorf("render: quad upload: %w", err)
	}
	defer vbo.Delete()
	vao := gl.NewVAO()
	defer vao.Delete()
	if err := vao.AddAttribute(vbo, gl.AttribLayout{
		Program: r.quadProgram, Type: gl.Float32, Name: "in_pos\x00", Packing: 3, Stride: quadVertexStride,
	}); err != nil {
		return err
	}
	if err := vao.AddAttribute(vbo, gl.AttribLayout{
		Program: r.quadProgram, Type: gl.Float32, Name: "in_uv\x00", Packing: 2, Stride: quadVertexStride, Offset: 3 * 4,
	}); err != nil {
		return err
	}

	r.quadProgram.Bind()
	mvpLoc, err := r.quadProgram.UniformLocation("u_mvp\x00")
	if err != nil {
		return err
	}
	r.quadProgram.SetUniformMatrix4(mvpLoc, mvp)
	texLoc, err := r.quadProgram.UniformLocation("u_tex\x00")
	if err != nil {
		return err
	}
	if err := r.quadProgram.SetUniformi(texLoc, 0); err != nil {
		return err
	}
	tex.Bind(0)
	gl.DrawArrays(gl.Triangles, 0, int32(len(verts)))
	return gl.Err()
}

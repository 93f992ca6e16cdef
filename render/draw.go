package render

import (
	"github.com/navchart/s52gl/gl"
	"github.com/navchart/s52gl/glm"
	"github.com/navchart/s52gl/primitive"
	"github.com/navchart/s52gl/s57data"
	"github.com/navchart/s52gl/symbol"
)

// featureBuffer returns f's GPU primitive buffer, creating it on first use
// (spec §3 "Primitive buffer" — one buffer per feature, reused across
// frames via Reset rather than reallocated).
func featureBuffer(f *s57data.Feature) *primitive.Buffer {
	if buf, ok := f.Primitive.(*primitive.Buffer); ok && buf != nil {
		return buf
	}
	buf := primitive.New()
	f.Primitive = buf
	return buf
}

// builtinColors is a minimal S-52 color-token lookup. The full IHO color
// tables are loaded from the Presentation Library, an external
// collaborator per spec §1; this module only needs enough of a mapping to
// drive the u_color uniform for the tokens the render package itself
// names (fills, light sectors, VRM/EBL furniture).
var builtinColors = map[string][4]float32{
	"CHBLK": {0.0, 0.0, 0.0, 1},
	"CHWHT": {1.0, 1.0, 1.0, 1},
	"CHGRD": {0.5, 0.5, 0.5, 1},
	"CHGRF": {0.627, 0.627, 0.627, 1},
	"CHYEL": {1.0, 0.9, 0.0, 1},
	"CHMGD": {0.8, 0.0, 0.6, 1},
	"CHRED": {0.9, 0.0, 0.0, 1},
	"DEPDW": {0.6, 0.8, 1.0, 1},
	"DEPMD": {0.45, 0.65, 0.95, 1},
	"DEPMS": {0.7, 0.85, 1.0, 1},
	"DEPVS": {0.85, 0.93, 1.0, 1},
	"DNGHL": {1.0, 0.0, 0.0, 1},
	"LANDA": {0.85, 0.7, 0.45, 1},
	"LANDF": {0.75, 0.6, 0.35, 1},
}

// bindColor resolves name through the PICK-cycle override (if the
// renderer is in a PICK pass for the active object) or builtinColors, and
// sets it on the u_color uniform (spec §4.9 "color to bind as the pick
// uniform override").
func (r *Renderer) bindColor(name string) error {
	loc, err := r.program.UniformLocation("u_color\x00")
	if err != nil {
		return err
	}
	col := [4]float32{1, 1, 1, 1}
	if r.activeObj != nil && r.activeObj.cycle == cyclePick {
		idx := float32(r.activeObj.pickIndex) / 255
		col = [4]float32{idx, 0, 0, 1}
	} else if c, ok := builtinColors[name]; ok {
		col = c
	}
	return r.program.SetUniformf(loc, col[0], col[1], col[2], col[3])
}

// uploadAndDraw uploads buf (if needed) and issues its draw spans, the
// same Upload-then-Draw sequence DrawGraticule uses. It is a no-op before
// Init (program.ID()==0 is the same "not initialized yet" sentinel Init
// itself checks), so geometry is always built but a GPU call is only ever
// made once the renderer owns a live context.
func (r *Renderer) uploadAndDraw(buf *primitive.Buffer, colorName string) error {
	if r.program.ID() == 0 {
		return nil
	}
	if err := buf.Upload(r.program); err != nil {
		return err
	}
	mvpLoc, err := r.program.UniformLocation("u_mvp\x00")
	if err != nil {
		return err
	}
	r.program.Bind()
	r.program.SetUniformMatrix4(mvpLoc, r.Matrices.Combined().Array())
	if err := r.bindColor(colorName); err != nil {
		return err
	}
	buf.Draw(func(x, y, z float32) { r.Matrices.Translate(glm.Vec{X: x, Y: y, Z: z}) })
	return nil
}

// drawSymbolDefinition draws every color sublist of def in order (spec §5
// ordering guarantee), under whatever modelview transform the caller has
// already pushed onto r.Matrices.
func (r *Renderer) drawSymbolDefinition(def *symbol.Definition) error {
	if r.program.ID() == 0 {
		return nil
	}
	for _, sl := range def.Sublists {
		if sl.Buffer == nil || sl.Buffer.VertexCount() == 0 {
			continue
		}
		if err := r.uploadAndDraw(sl.Buffer, sl.ColorName); err != nil {
			return err
		}
	}
	return nil
}

// beginBuffer resets buf and opens a new span of the given mode, the
// common prelude shared by every render path that rebuilds its feature's
// geometry each frame.
func beginBuffer(buf *primitive.Buffer, mode gl.DrawMode) error {
	buf.Reset()
	return buf.BeginPrim(mode)
}

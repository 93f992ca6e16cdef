package render

import (
	"fmt"
	"math"

	"github.com/navchart/s52gl/geom"
	"github.com/navchart/s52gl/gl"
	"github.com/navchart/s52gl/glm"
	"github.com/navchart/s52gl/matrixstack"
	"github.com/navchart/s52gl/s57data"
)

// vrmSegments is the polygon approximation resolution for the VRM ring
// (spec §4.7.2).
const vrmSegments = 180

// renderVRM draws a variable range marker ring centered at the VRM
// feature's center point, radius |edge - center| (spec §4.7.2), solid or
// dashed-every-other-segment per _normallinestyle.
func (r *Renderer) renderVRM(f *s57data.Feature) error {
	center, ok := vrmAttr(f, "_center_x", "_center_y")
	if !ok {
		return fmt.Errorf("VRM feature missing center")
	}
	edge, ok := vrmAttr(f, "_edge_x", "_edge_y")
	if !ok {
		return fmt.Errorf("VRM feature missing edge")
	}
	radius := edge.Sub(center).Len()
	dashed := true
	if v, ok := f.Attribute("_normallinestyle"); ok && v == "1" {
		dashed = false
	}

	buf := featureBuffer(f)
	if err := beginBuffer(buf, gl.Lines); err != nil {
		return err
	}
	for i := 0; i < vrmSegments; i++ {
		if dashed && i%2 == 1 {
			continue // every other segment skipped for the dashed ring style
		}
		a0 := 2 * math.Pi * float64(i) / vrmSegments
		a1 := 2 * math.Pi * float64(i+1) / vrmSegments
		p0 := geom.Vec2{X: radius * math.Cos(a0), Y: radius * math.Sin(a0)}
		p1 := geom.Vec2{X: radius * math.Cos(a1), Y: radius * math.Sin(a1)}
		if err := buf.AppendVertex(float32(p0.X), float32(p0.Y), 0); err != nil {
			return err
		}
		if err := buf.AppendVertex(float32(p1.X), float32(p1.Y), 0); err != nil {
			return err
		}
	}
	if err := buf.EndPrim(); err != nil {
		return err
	}

	r.Matrices.SetMode(matrixstack.Modelview)
	if err := r.Matrices.Push(); err != nil {
		return err
	}
	defer r.Matrices.Pop()
	r.Matrices.Translate(glm.Vec{X: float32(center.X), Y: float32(center.Y)})
	return r.uploadAndDraw(buf, "CHBLK")
}

func vrmAttr(f *s57data.Feature, xKey, yKey string) (geom.Vec2, bool) {
	xs, okX := f.Attribute(xKey)
	ys, okY := f.Attribute(yKey)
	if !okX || !okY {
		return geom.Vec2{}, false
	}
	var x, y float64
	fmt.Sscanf(xs, "%f", &x)
	fmt.Sscanf(ys, "%f", &y)
	return geom.Vec2{X: x, Y: y}, true
}

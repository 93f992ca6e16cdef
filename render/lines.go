package render

import (
	"fmt"
	"math"

	"github.com/navchart/s52gl/geom"
	"github.com/navchart/s52gl/gl"
	"github.com/navchart/s52gl/s57data"
)

// dashOnMM/dashOffMM and dotOnMM/dotOffMM are the pen-length/gap pairs in mm for the 'S' and 'T'
// LS styles (spec §4.7).
const (
	dashOnMM, dashOffMM = 3.6, 1.8
	dotOnMM, dotOffMM   = 0.6, 1.2
)

// specialLineObjects names the LS object classes with dedicated paths
// (spec §4.7 LS).
var specialLineObjects = map[string]bool{
	"LIGHTS05": true, "ownshp": true, "vessel": true,
	"afgves": true, "afgshp": true, "leglin": true, "pastrk": true,
}

func (r *Renderer) renderSimpleLine(obj *Object, c Command) error {
	f := obj.Feature
	if f.Kind == s57data.Line && len(f.Line) < 2 {
		return nil // spec §8 boundary: LINE of 1 vertex is a no-op for LS/LC
	}
	if specialLineObjects[f.Name] {
		return r.renderSpecialLine(obj, c)
	}
	// Generic path: the stipple-texture-based dash/dot sampling described
	// in spec §4.7 is a shader-state concern this renderer does not model
	// (no stipple texture unit is bound); the geometry itself is a single
	// LINE_STRIP span over the feature's own vertices.
	buf := featureBuffer(f)
	mode := gl.LineStrip
	if err := beginBuffer(buf, mode); err != nil {
		return err
	}
	for _, v := range f.Line {
		if err := buf.AppendVertex(float32(v.X), float32(v.Y), float32(v.Z)); err != nil {
			return err
		}
	}
	if err := buf.EndPrim(); err != nil {
		return err
	}
	return r.uploadAndDraw(buf, c.ColorName)
}

func (r *Renderer) renderSpecialLine(obj *Object, c Command) error {
	switch obj.Feature.Name {
	case "LIGHTS05":
		return r.renderLightSectorLegs(obj.Feature)
	case "ownshp":
		return r.renderOwnshipLines(obj.Feature)
	case "vessel":
		return r.renderVesselLines(obj.Feature)
	case "afgves", "afgshp":
		return r.renderAfterglow(obj.Feature)
	case "leglin":
		return nil // route leg dotted rendering is handled by the LC path
	case "pastrk":
		return nil // past-track point-sprite trail: geometry supplied externally
	}
	return fmt.Errorf("unhandled special line object %s", obj.Feature.Name)
}

// renderOwnshipLines draws the ownship heading line (position to bow) and
// beam bearing line (port to starboard), a two-segment LINES span (spec
// §4.7.1 "heading and beam bearing lines").
func (r *Renderer) renderOwnshipLines(f *s57data.Feature) error {
	headingDeg := orientationFor(f)
	lengthM, beamM := shipDimensions(f)
	hdgRad := headingDeg * math.Pi / 180
	bow := geom.Vec2{X: f.Point.X + lengthM*math.Sin(hdgRad), Y: f.Point.Y + lengthM*math.Cos(hdgRad)}
	beamRad := hdgRad + math.Pi/2
	port := geom.Vec2{X: f.Point.X + beamM*math.Sin(beamRad), Y: f.Point.Y + beamM*math.Cos(beamRad)}
	stbd := geom.Vec2{X: f.Point.X - beamM*math.Sin(beamRad), Y: f.Point.Y - beamM*math.Cos(beamRad)}

	buf := featureBuffer(f)
	if err := beginBuffer(buf, gl.Lines); err != nil {
		return err
	}
	pts := []geom.Vec2{{X: f.Point.X, Y: f.Point.Y}, bow, port, stbd}
	for _, p := range pts {
		if err := buf.AppendVertex(float32(p.X), float32(p.Y), 0); err != nil {
			return err
		}
	}
	if err := buf.EndPrim(); err != nil {
		return err
	}
	return r.uploadAndDraw(buf, "CHBLK")
}

func shipDimensions(f *s57data.Feature) (lengthM, beamM float64) {
	if v, ok := f.Attribute("_SHIP_LENGTH"); ok {
		fmt.Sscanf(v, "%f", &lengthM)
	}
	if v, ok := f.Attribute("_SHIP_BEAM"); ok {
		fmt.Sscanf(v, "%f", &beamM)
	}
	if lengthM <= 0 {
		lengthM = 100
	}
	if beamM <= 0 {
		beamM = lengthM / 6
	}
	return lengthM, beamM
}

// renderVesselLines draws an AIS/ARPA vessel's stabilized heading vector
// as a single LINES span (spec §4.7.1); the close-quarters dash pattern
// is a stipple-texture concern this renderer does not model.
func (r *Renderer) renderVesselLines(f *s57data.Feature) error {
	courseDeg, speedKn := vectorCourseSpeed(f, true)
	end := vectorEndpoint(f.Point, courseDeg, speedKn, 6.0/60.0)

	buf := featureBuffer(f)
	if err := beginBuffer(buf, gl.Lines); err != nil {
		return err
	}
	if err := buf.AppendVertex(float32(f.Point.X), float32(f.Point.Y), 0); err != nil {
		return err
	}
	if err := buf.AppendVertex(float32(end.X), float32(end.Y), 0); err != nil {
		return err
	}
	if err := buf.EndPrim(); err != nil {
		return err
	}
	return r.uploadAndDraw(buf, "CHYEL")
}

// renderAfterglow draws an ownship/vessel's trail as a LineStrip over its
// recorded track points (spec §4.7.1 afgves/afgshp), a no-op until the
// scene driver has accumulated at least two track points.
func (r *Renderer) renderAfterglow(f *s57data.Feature) error {
	if len(f.Line) < 2 {
		return nil
	}
	buf := featureBuffer(f)
	if err := beginBuffer(buf, gl.LineStrip); err != nil {
		return err
	}
	for _, p := range f.Line {
		if err := buf.AppendVertex(float32(p.X), float32(p.Y), float32(p.Z)); err != nil {
			return err
		}
	}
	if err := buf.EndPrim(); err != nil {
		return err
	}
	return r.uploadAndDraw(buf, "CHGRD")
}

// renderComplexLine implements LC (spec §4.7): clip each segment to the
// view rectangle (Cohen-Sutherland), place floor(seg_len/sym_len) repeated
// symbols along it, and collect remaining partial lengths into one LINES
// span.
func (r *Renderer) renderComplexLine(obj *Object, c Command) error {
	f := obj.Feature
	if f.Kind != s57data.Line {
		return fmt.Errorf("LC on non-LINE feature")
	}
	if f.Name == "leglin" && len(f.Line) != 2 {
		// spec §9 Open Question decision: reject non-2-vertex leglin as
		// invalid input rather than guessing intent.
		return fmt.Errorf("leglin feature must have exactly 2 vertices, got %d", len(f.Line))
	}
	if len(f.Line) < 2 {
		return nil
	}
	if c.SymLen <= 0 {
		return fmt.Errorf("LC symbol length must be positive")
	}
	def, ok := r.Symbols.Get(c.SymbolName)
	if !ok {
		return fmt.Errorf("LC symbol not cached: %s", c.SymbolName)
	}
	view := geom.Extent{W: r.View.PMin.X, S: r.View.PMin.Y, E: r.View.PMax.X, N: r.View.PMax.Y}

	var residual []geom.Vec2
	for i := 0; i+1 < len(f.Line); i++ {
		a := geom.Vec2{X: f.Line[i].X, Y: f.Line[i].Y}
		b := geom.Vec2{X: f.Line[i+1].X, Y: f.Line[i+1].Y}
		if f.Name == "leglin" {
			a, b = shortenLeglin(f, i, a, b)
		}
		ca, cb, ok := geom.ClipSegment(a, b, view)
		if !ok {
			continue
		}
		segLen := ca.Sub(cb).Len()
		count := int(math.Floor(segLen / c.SymLen))
		dir := cb.Sub(ca).Scale(1 / math.Max(segLen, 1e-12))
		for k := 0; k < count; k++ {
			pos := ca.Add(dir.Scale(float64(k) * c.SymLen))
			angleDeg := math.Atan2(dir.Y, dir.X) * 180 / math.Pi
			if err := r.placePointSymbol(def, geom.Vec3{X: pos.X, Y: pos.Y}, angleDeg); err != nil {
				return err
			}
		}
		remaining := segLen - float64(count)*c.SymLen
		if remaining > 1e-9 {
			endPos := ca.Add(dir.Scale(float64(count) * c.SymLen))
			residual = append(residual, endPos, cb)
		}
	}
	if len(residual) == 0 {
		return nil
	}
	buf := featureBuffer(f)
	if err := beginBuffer(buf, gl.Lines); err != nil {
		return err
	}
	for _, p := range residual {
		if err := buf.AppendVertex(float32(p.X), float32(p.Y), 0); err != nil {
			return err
		}
	}
	if err := buf.EndPrim(); err != nil {
		return err
	}
	return r.uploadAndDraw(buf, c.ColorName)
}

// shortenLeglin shortens the start of the current leg by the *previous*
// leg's _wholin_dist attribute and the end by the *current* leg's
// _wholin_dist — an intentionally asymmetric rule preserved verbatim per
// spec §9 "Potentially buggy behavior in source (do not guess)".
func shortenLeglin(f *s57data.Feature, segIndex int, a, b geom.Vec2) (geom.Vec2, geom.Vec2) {
	var curDist, prevDist float64
	if v, ok := f.Attribute("_wholin_dist"); ok {
		fmt.Sscanf(v, "%f", &curDist)
	}
	if v, ok := f.Attribute("_prev_wholin_dist"); ok {
		fmt.Sscanf(v, "%f", &prevDist)
	}
	dir := b.Sub(a)
	l := dir.Len()
	if l < 1e-12 {
		return a, b
	}
	unit := dir.Scale(1 / l)
	if prevDist > 0 && prevDist < l {
		a = a.Add(unit.Scale(prevDist))
	}
	if curDist > 0 && curDist < l {
		b = b.Sub(unit.Scale(curDist))
	}
	return a, b
}

// DrawArc renders the transition arc between two route legs (spec §6.1
// draw_arc): a line-strip fan from the shared waypoint, sweeping from the
// direction back along legA to the direction forward along legB.
func (r *Renderer) DrawArc(legA, legB *s57data.Feature) error {
	if legA.Kind != s57data.Line || legB.Kind != s57data.Line {
		return fmt.Errorf("DrawArc requires LINE features")
	}
	if len(legA.Line) < 2 || len(legB.Line) < 2 {
		return fmt.Errorf("DrawArc requires legs with at least 2 vertices")
	}
	pivot := geom.Vec2{X: legA.Line[len(legA.Line)-1].X, Y: legA.Line[len(legA.Line)-1].Y}
	back := geom.Vec2{X: legA.Line[len(legA.Line)-2].X, Y: legA.Line[len(legA.Line)-2].Y}
	fwd := geom.Vec2{X: legB.Line[1].X, Y: legB.Line[1].Y}

	var radius float64
	if v, ok := legA.Attribute("_wholin_dist"); ok {
		fmt.Sscanf(v, "%f", &radius)
	}
	if radius <= 0 {
		radius = pivot.Sub(back).Len() * 0.1
	}
	a1 := math.Atan2(back.Y-pivot.Y, back.X-pivot.X)
	a2 := math.Atan2(fwd.Y-pivot.Y, fwd.X-pivot.X)

	const arcSegments = 16
	buf := featureBuffer(legA)
	if err := beginBuffer(buf, gl.LineStrip); err != nil {
		return err
	}
	for i := 0; i <= arcSegments; i++ {
		t := float64(i) / arcSegments
		a := a1 + (a2-a1)*t
		x := pivot.X + radius*math.Cos(a)
		y := pivot.Y + radius*math.Sin(a)
		if err := buf.AppendVertex(float32(x), float32(y), 0); err != nil {
			return err
		}
	}
	if err := buf.EndPrim(); err != nil {
		return err
	}
	return r.uploadAndDraw(buf, "CHBLK")
}

package render

import (
	"fmt"
	"math"

	"github.com/navchart/s52gl/geom"
	"github.com/navchart/s52gl/gl"
	"github.com/navchart/s52gl/glm"
	"github.com/navchart/s52gl/matrixstack"
	"github.com/navchart/s52gl/s57data"
	"github.com/navchart/s52gl/symbol"
)

// specialSymbols names the SY symbols that take dedicated code paths
// (spec §4.7) instead of the generic point/line/area placement rule.
var specialSymbols = map[string]bool{
	"OWNSHP01": true, "OWNSHP05": true,
	"VECGND01": true, "VECWTR01": true,
	"OSPSIX02": true, "OSPONE02": true,
	"AISVES01": true, "AISSLP01": true, "AISDEF01": true,
	"ARPATG01": true,
	"AISSIX01": true, "ARPSIX01": true,
	"AISONE01": true, "ARPONE01": true,
	"LIGHTS05": true,
	"SCALEB10": true, "SCALEB11": true,
	"NORTHAR1": true, "UNITMTR1": true,
	"CHKSYM01": true, "BLKADJ01": true,
	"LOWACC01": true, "SOUNDG": true,
}

// shipsOutlineMM is SHIPS_OUTLINE_MM from spec §4.7.1: the pixel-length
// threshold above which the ownship silhouette is drawn instead of a
// point symbol.
const shipsOutlineMM = 6.0

func (r *Renderer) renderSymbol(obj *Object, c Command) error {
	def, ok := r.Symbols.Get(c.SymbolName)
	if !ok {
		return fmt.Errorf("symbol not cached: %s", c.SymbolName)
	}
	f := obj.Feature

	if specialSymbols[c.SymbolName] {
		return r.renderSpecialSymbol(obj, c, def)
	}

	switch f.Kind {
	case s57data.Point:
		return r.placePointSymbol(def, f.Point, orientationFor(f))
	case s57data.Line:
		mid, ok := nearestMidpointToCenter(f.Line, r.viewCenter())
		if !ok {
			return fmt.Errorf("SY on LINE with no usable midpoint")
		}
		return r.placePointSymbol(def, mid, 0)
	case s57data.Area:
		f.ResetCentroid()
		c2, ok := f.NextCentroid()
		if !ok {
			return fmt.Errorf("SY on AREA with no centroid")
		}
		return r.placePointSymbol(def, geom.Vec3{X: c2.X, Y: c2.Y}, 0)
	}
	return nil
}

func orientationFor(f *s57data.Feature) float64 {
	if v, ok := f.Attribute("ORIENT"); ok {
		var deg float64
		fmt.Sscanf(v, "%f", &deg)
		return deg
	}
	return 0
}

func (r *Renderer) viewCenter() geom.Vec2 {
	return geom.Vec2{X: (r.View.PMin.X + r.View.PMax.X) / 2, Y: (r.View.PMin.Y + r.View.PMax.Y) / 2}
}

// nearestMidpointToCenter picks the midpoint of the line's segment whose
// midpoint is nearest the view center (spec §4.7 LINE symbol placement).
func nearestMidpointToCenter(line []geom.Vec3, center geom.Vec2) (geom.Vec3, bool) {
	if len(line) < 2 {
		return geom.Vec3{}, false
	}
	best := geom.Vec3{}
	bestDist := math.Inf(1)
	for i := 0; i+1 < len(line); i++ {
		mx := (line[i].X + line[i+1].X) / 2
		my := (line[i].Y + line[i+1].Y) / 2
		d := (mx-center.X)*(mx-center.X) + (my-center.Y)*(my-center.Y)
		if d < bestDist {
			bestDist = d
			best = geom.Vec3{X: mx, Y: my, Z: (line[i].Z + line[i+1].Z) / 2}
		}
	}
	return best, true
}

// placePointSymbol pushes translate-to-point, scale-to-pixel, rotate(orient+
// north) and draws the symbol's sublists in order (spec §4.7).
func (r *Renderer) placePointSymbol(def *symbol.Definition, p geom.Vec3, orientDeg float64) error {
	r.Matrices.SetMode(matrixstack.Modelview)
	if err := r.Matrices.Push(); err != nil {
		return err
	}
	defer r.Matrices.Pop()
	r.Matrices.Translate(glm.Vec{X: float32(p.X), Y: float32(p.Y), Z: float32(p.Z)})
	pixelScale := 1 / float32(r.View.DotpitchMMX*100)
	r.Matrices.Scale(glm.Vec{X: pixelScale, Y: pixelScale, Z: 1})
	r.Matrices.RotateZ(float32((orientDeg + r.View.NorthDeg) * math.Pi / 180))
	return r.drawSymbolDefinition(def)
}

// renderSpecialSymbol dispatches the per-object-class specialization named
// in spec §4.7: "a second match on the symbol name after the Sy branch".
func (r *Renderer) renderSpecialSymbol(obj *Object, c Command, def *symbol.Definition) error {
	f := obj.Feature
	switch c.SymbolName {
	case "OWNSHP01", "OWNSHP05":
		return r.renderOwnship(f, def)
	case "VECGND01", "VECWTR01":
		return r.renderVector(f, c.SymbolName == "VECGND01")
	case "OSPSIX02", "OSPONE02", "AISSIX01", "AISONE01":
		return r.renderVectorTimeTick(f, def, c.SymbolName)
	case "AISVES01", "AISSLP01", "AISDEF01", "ARPATG01", "ARPONE01", "ARPSIX01":
		return r.placePointSymbol(def, f.Point, orientationFor(f))
	case "LIGHTS05":
		return r.renderLightSectors(f, c)
	case "SCALEB10", "SCALEB11", "NORTHAR1", "UNITMTR1", "CHKSYM01", "BLKADJ01", "LOWACC01":
		// Fixed window-space furniture symbols: drawn at a caller-supplied
		// screen position rather than a world position; left to
		// draw_string_window-style callers (spec §6.1) in this module's
		// scope, since no world geometry drives their placement.
		return nil
	case "SOUNDG":
		return r.placePointSymbol(def, f.Point, 0)
	default:
		return fmt.Errorf("unhandled special symbol %s", c.SymbolName)
	}
}

// renderOwnship implements the ownship/vessel silhouette rule (spec
// §4.7.1 note under 4.7): draw the silhouette scaled to match projected
// ship length when it exceeds SHIPS_OUTLINE_MM, else a point symbol.
func (r *Renderer) renderOwnship(f *s57data.Feature, def *symbol.Definition) error {
	shipLenM := 0.0
	if v, ok := f.Attribute("_SHIP_LENGTH"); ok {
		fmt.Sscanf(v, "%f", &shipLenM)
	}
	pixelLen := shipLenM / r.View.MetersPerPixelY
	thresholdPx := shipsOutlineMM / r.View.DotpitchMMY
	if pixelLen > thresholdPx {
		scale := float32(shipLenM / r.View.MetersPerPixelY)
		r.Matrices.SetMode(matrixstack.Modelview)
		if err := r.Matrices.Push(); err != nil {
			return err
		}
		defer r.Matrices.Pop()
		r.Matrices.Translate(glm.Vec{X: float32(f.Point.X), Y: float32(f.Point.Y)})
		r.Matrices.RotateZ(float32(orientationFor(f) * math.Pi / 180))
		r.Matrices.Scale(glm.Vec{X: scale, Y: scale, Z: 1})
		return r.drawSymbolDefinition(def)
	}
	return r.placePointSymbol(def, f.Point, orientationFor(f))
}

// VecStabMode mirrors MAR_VECSTB (spec §4.7.1): 0 none, 1 ground, 2 water.
type VecStabMode int

const (
	VecStabNone   VecStabMode = 0
	VecStabGround VecStabMode = 1
	VecStabWater  VecStabMode = 2
)

// vectorCourseSpeed reads the course/speed attribute pair matching
// MAR_VECSTB (spec §4.7.1): ground track (cog/sog) or water track
// (cogw/sogw).
func vectorCourseSpeed(f *s57data.Feature, ground bool) (courseDeg, speedKn float64) {
	coursKey, speedKey := "cog", "sog"
	if !ground {
		coursKey, speedKey = "cogw", "sogw"
	}
	if v, ok := f.Attribute(coursKey); ok {
		fmt.Sscanf(v, "%f", &courseDeg)
	}
	if v, ok := f.Attribute(speedKey); ok {
		fmt.Sscanf(v, "%f", &speedKn)
	}
	return courseDeg, speedKn
}

// vectorEndpoint returns the point dtHours ahead of p at the given course
// (degrees, clockwise from north) and speed in knots.
func vectorEndpoint(p geom.Vec3, courseDeg, speedKn, dtHours float64) geom.Vec2 {
	distM := speedKn * dtHours * 1852
	rad := courseDeg * math.Pi / 180
	return geom.Vec2{X: p.X + distM*math.Sin(rad), Y: p.Y + distM*math.Cos(rad)}
}

// renderVector draws a vector symbol at position + v*dt, choosing the
// course/speed attribute pair per MAR_VECSTB (spec §4.7.1).
func (r *Renderer) renderVector(f *s57data.Feature, ground bool) error {
	courseDeg, speedKn := vectorCourseSpeed(f, ground)
	const dtHours = 6.0 / 60.0 // a 6-minute vector leg, refined by time-tick placement
	end := vectorEndpoint(f.Point, courseDeg, speedKn, dtHours)

	buf := featureBuffer(f)
	if err := beginBuffer(buf, gl.Lines); err != nil {
		return err
	}
	if err := buf.AppendVertex(float32(f.Point.X), float32(f.Point.Y), float32(f.Point.Z)); err != nil {
		return err
	}
	if err := buf.AppendVertex(float32(end.X), float32(end.Y), 0); err != nil {
		return err
	}
	if err := buf.EndPrim(); err != nil {
		return err
	}
	color := "CHMGD"
	if ground {
		color = "CHBLK"
	}
	return r.uploadAndDraw(buf, color)
}

// renderVectorTimeTick places 6-minute (SIX) or 1-minute (ONE) tick
// symbols along the vessel's stabilized vector (spec §4.7.1).
func (r *Renderer) renderVectorTimeTick(f *s57data.Feature, def *symbol.Definition, symbolName string) error {
	isOne := symbolName == "OSPONE02" || symbolName == "AISONE01"
	stepMinutes := 6.0
	if isOne {
		stepMinutes = 1.0
	}
	ground := symbolName == "OSPSIX02" || symbolName == "OSPONE02"
	courseDeg, speedKn := vectorCourseSpeed(f, ground)

	totalMinutes := 30.0
	if v, ok := f.Attribute("_vector_minutes"); ok {
		fmt.Sscanf(v, "%f", &totalMinutes)
	}
	ticks := int(totalMinutes / stepMinutes)
	orientDeg := orientationFor(f)
	for k := 1; k <= ticks; k++ {
		dtHours := stepMinutes * float64(k) / 60.0
		pos := vectorEndpoint(f.Point, courseDeg, speedKn, dtHours)
		if err := r.placePointSymbol(def, geom.Vec3{X: pos.X, Y: pos.Y}, orientDeg); err != nil {
			return err
		}
	}
	return nil
}

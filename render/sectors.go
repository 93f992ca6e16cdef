package render

import (
	"fmt"
	"math"

	"github.com/navchart/s52gl/geom"
	"github.com/navchart/s52gl/gl"
	"github.com/navchart/s52gl/glm"
	"github.com/navchart/s52gl/mariner"
	"github.com/navchart/s52gl/matrixstack"
	"github.com/navchart/s52gl/s57data"
)

// sectorRadiusMM20, sectorRadiusMM25 are the two fixed light-sector disk
// radii named in spec §4.7.1: 20mm normally, 25mm when the feature's
// extend_arc_radius attribute requests the larger ring.
const (
	sectorRadiusMM20 = 20.0
	sectorRadiusMM25 = 25.0
)

// sectorFanSegments is the triangle-fan tessellation resolution for one
// light-sector partial disk.
const sectorFanSegments = 24

// renderLightSectors implements the dual partial-disk light-sector symbol
// (spec §4.7.1): an outer black disk and an inner colored disk, radius
// chosen per extend_arc_radius, overridden to a nautical-mile radius when
// MAR_FULL_SECTORS is set and the feature carries a nominal range (VALNMR).
func (r *Renderer) renderLightSectors(f *s57data.Feature, c Command) error {
	sector1, sector2, ok := sectorAngles(f)
	if !ok {
		return fmt.Errorf("LIGHTS feature missing sector angles")
	}
	radius := r.sectorRadiusWorld(f)

	if err := r.drawSectorFan(f, sector1, sector2, radius*1.1, "CHBLK"); err != nil {
		return err
	}
	color := c.ColorName
	if color == "" {
		color = "CHWHT"
	}
	return r.drawSectorFan(f, sector1, sector2, radius, color)
}

// drawSectorFan builds and draws one partial-disk triangle fan from
// sector1 to sector2 (degrees, clockwise from north) at the given world
// radius, centered at f's position.
func (r *Renderer) drawSectorFan(f *s57data.Feature, sector1, sector2, radius float64, color string) error {
	buf := featureBuffer(f)
	if err := beginBuffer(buf, gl.TriangleFan); err != nil {
		return err
	}
	if err := buf.AppendVertex(0, 0, 0); err != nil {
		return err
	}
	for i := 0; i <= sectorFanSegments; i++ {
		t := float64(i) / sectorFanSegments
		deg := sector1 + (sector2-sector1)*t
		rad := deg * math.Pi / 180
		x := radius * math.Sin(rad)
		y := radius * math.Cos(rad)
		if err := buf.AppendVertex(float32(x), float32(y), 0); err != nil {
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
	r.Matrices.Translate(glm.Vec{X: float32(f.Point.X), Y: float32(f.Point.Y)})
	return r.uploadAndDraw(buf, color)
}

// renderLightSectorLegs draws the two straight sector-boundary legs from
// the light's position out to the sector radius as a single LINES span
// (spec §4.7.1, the LS half of the LIGHTS05 special object).
func (r *Renderer) renderLightSectorLegs(f *s57data.Feature) error {
	sector1, sector2, ok := sectorAngles(f)
	if !ok {
		return nil // a light with no sectors (all-round) has no boundary legs
	}
	radius := r.sectorRadiusWorld(f)

	buf := featureBuffer(f)
	if err := beginBuffer(buf, gl.Lines); err != nil {
		return err
	}
	for _, deg := range []float64{sector1, sector2} {
		rad := deg * math.Pi / 180
		x := f.Point.X + radius*math.Sin(rad)
		y := f.Point.Y + radius*math.Cos(rad)
		if err := buf.AppendVertex(float32(f.Point.X), float32(f.Point.Y), 0); err != nil {
			return err
		}
		if err := buf.AppendVertex(float32(x), float32(y), 0); err != nil {
			return err
		}
	}
	if err := buf.EndPrim(); err != nil {
		return err
	}
	return r.uploadAndDraw(buf, "CHBLK")
}

func sectorAngles(f *s57data.Feature) (sector1, sector2 float64, ok bool) {
	v1, ok1 := f.Attribute("SECTR1")
	v2, ok2 := f.Attribute("SECTR2")
	if !ok1 || !ok2 {
		return 0, 0, false
	}
	fmt.Sscanf(v1, "%f", &sector1)
	fmt.Sscanf(v2, "%f", &sector2)
	return sector1, sector2, true
}

// sectorRadiusPx returns the on-screen light-sector disk radius in pixels,
// per spec §4.7.1: 20mm/25mm fixed by extend_arc_radius, or the nautical
// nominal range when MAR_FULL_SECTORS is enabled and VALNMR is present.
func (r *Renderer) sectorRadiusPx(f *s57data.Feature) float64 {
	mm := sectorRadiusMM20
	if v, ok := f.Attribute("extend_arc_radius"); ok && v == "1" {
		mm = sectorRadiusMM25
	}
	fixedPx := mm / r.View.DotpitchMMX
	if !r.Mariner.Bool(mariner.FullSectors) {
		return fixedPx
	}
	valnmr, ok := f.Attribute("VALNMR")
	if !ok {
		return fixedPx
	}
	var nm float64
	fmt.Sscanf(valnmr, "%f", &nm)
	if nm <= 0 {
		return fixedPx
	}
	return r.nmToPixels(nm, f.Point)
}

func (r *Renderer) sectorRadiusWorld(f *s57data.Feature) float64 {
	return r.sectorRadiusPx(f) * r.View.MetersPerPixelY
}

// nmToPixels converts a nautical-mile distance to window-space pixels at
// the given world position by projecting a point 1 NM north of it and
// differencing projected Y (spec §4.7.1 "VALNMR ... projecting a point 1
// NM north and differencing window-space Y"), then scaling by nm.
func (r *Renderer) nmToPixels(nm float64, at geom.Vec3) float64 {
	const metersPerNM = 1852.0
	if r.View.MetersPerPixelY == 0 || !r.Proj.Set() {
		return nm * metersPerNM / max(r.View.MetersPerPixelY, 1e-12)
	}
	lon, lat, err := r.Proj.Inverse(at.X, at.Y)
	if err != nil {
		return nm * metersPerNM / max(r.View.MetersPerPixelY, 1e-12)
	}
	const metersPerDegLat = 111320.0
	northLat := lat + metersPerNM/metersPerDegLat
	_, y2, err := r.Proj.Forward(lon, northLat)
	if err != nil {
		return nm * metersPerNM / max(r.View.MetersPerPixelY, 1e-12)
	}
	oneNMWorldY := math.Abs(y2 - at.Y)
	return (oneNMWorldY / r.View.MetersPerPixelY) * nm
}

package s57data

import (
	"github.com/navchart/s52gl/geom"
	"github.com/navchart/s52gl/tess"
)

// ComputeCentroids implements the centroid engine contract (spec §4.3) for
// an AREA feature: the fast signed-area path when the feature's extent is
// fully inside view, falling back to clip-by-view tessellation and the
// longest-interior-edge heuristic otherwise. dispCentroids mirrors the
// mariner parameter MAR_DISP_CENTROIDS gating the fallback search.
func (f *Feature) ComputeCentroids(view geom.Extent, dispCentroids bool) {
	f.NewCentroid()
	if f.Kind != Area || len(f.Rings) == 0 {
		return
	}
	outer := ringToVec2(f.Rings[0])

	ext, hasExt := f.Extent()
	if hasExt && ext.Inside(view) {
		if c, ok := geom.Centroid(outer); ok && geom.PointInRing(outer, c, true) {
			f.AddCentroid(c.X, c.Y)
			return
		}
		if !dispCentroids {
			return
		}
	}
	clipAndFindInsidePoints(f, outer, view)
}

func ringToVec2(r Ring) []geom.Vec2 {
	out := make([]geom.Vec2, len(r.Points))
	for i, p := range r.Points {
		out[i] = geom.Vec2{X: p.X, Y: p.Y}
	}
	return out
}

// clipAndFindInsidePoints runs the clip-by-view fallback: clip the area
// ring against the view rectangle (Sutherland-Hodgman, standing in for the
// tessellator's BOUNDARY_ONLY mode against a convex view rect per spec
// §4.3), then for the resulting boundary ring find the midpoint of the
// longest original (non-clip-introduced) edge as an inside-point, and also
// try the straightforward polygon centroid of the clipped boundary.
func clipAndFindInsidePoints(f *Feature, outer []geom.Vec2, view geom.Extent) {
	clipped := geom.ClipPolygonToRect(outer, view)
	if len(clipped) < 4 { // < 3 distinct + closing vertex
		return
	}
	if c, ok := geom.Centroid(clipped); ok && geom.PointInRing(clipped, c, true) {
		f.AddCentroid(c.X, c.Y)
		return
	}
	if mid, ok := longestOriginalEdgeMidpoint(outer, view); ok {
		f.AddCentroid(mid.X, mid.Y)
	}
}

// longestOriginalEdgeMidpoint finds, among the feature's own (unclipped)
// ring edges that lie at least partly within view, the longest one and
// returns its midpoint — the "longest original edge" heuristic of spec
// §4.3, provably inside the intersection for a single-connected result.
func longestOriginalEdgeMidpoint(ring []geom.Vec2, view geom.Extent) (geom.Vec2, bool) {
	n := len(ring)
	if n < 2 {
		return geom.Vec2{}, false
	}
	var best geom.Vec2
	bestLen := -1.0
	found := false
	for i := 0; i < n; i++ {
		j := (i + 1) % n
		a, b, ok := geom.ClipSegment(ring[i], ring[j], view)
		if !ok {
			continue
		}
		l := a.Sub(b).Len()
		if l > bestLen {
			bestLen = l
			best = a.Add(b).Scale(0.5)
			found = true
		}
	}
	return best, found
}

// TessellateAreaFill runs the tessellator driver (spec §4.4) over all of
// the feature's rings in one call and returns triangle-mode vertex data
// ready for a primitive.Buffer. Rings beyond index 0 are holes.
func (f *Feature) TessellateAreaFill() (tess.Result, error) {
	if f.Kind != Area || len(f.Rings) == 0 {
		return tess.Result{}, tess.Error{Code: 0, Msg: "not an area feature"}
	}
	outer := ringToVec2(f.Rings[0])
	holes := make([][]geom.Vec2, 0, len(f.Rings)-1)
	for _, r := range f.Rings[1:] {
		holes = append(holes, ringToVec2(r))
	}
	return tess.Run(outer, holes)
}

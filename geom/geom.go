// Package geom holds the float64 geographic/projected-plane primitives:
// points, extents, ring winding and inside-point tests, and the clipping
// routines the renderer needs before anything touches the GPU.
//
// This is the float64 counterpart to package glm: glm is GPU-facing
// (float32, column-major matrices), geom is CPU-facing precision math,
// mirroring the split the teacher shows between math/ms3 (float32) and
// math/md2 (float64) — see soypat/glgl/math/md2/grid.go.
package geom

import "math"

// Vec2 is a 2-D point or vector in geographic degrees or projected meters,
// depending on context.
type Vec2 struct{ X, Y float64 }

func (a Vec2) Add(b Vec2) Vec2   { return Vec2{a.X + b.X, a.Y + b.Y} }
func (a Vec2) Sub(b Vec2) Vec2   { return Vec2{a.X - b.X, a.Y - b.Y} }
func (a Vec2) Scale(k float64) Vec2 { return Vec2{a.X * k, a.Y * k} }
func (a Vec2) Dot(b Vec2) float64   { return a.X*b.X + a.Y*b.Y }
func (a Vec2) Len() float64         { return math.Sqrt(a.Dot(a)) }

// Vec3 is a 3-D point (x, y, z); z is typically 0 for plan-view geometry.
type Vec3 struct{ X, Y, Z float64 }

// Extent is a canonical (W<=E, S<=N) bounding rectangle, in either
// geographic degrees or projected meters. The zero Extent is not valid;
// use NewEmptyExtent and Extend, or NewExtent directly from known corners.
//
// Grounded on original_source/S57data.c's _rect{x1 (W), y1 (S), x2 (E), y2
// (N)}, which documents the same canonical-form invariant in a comment.
type Extent struct {
	W, S, E, N float64
}

// ErrExtentInvalid reports a non-canonical or non-finite extent (§7).
type ErrExtentInvalid struct{ W, S, E, N float64 }

func (e ErrExtentInvalid) Error() string {
	return "geom: invalid extent"
}

// NewExtent validates W<=E, S<=N and all values finite, matching the
// "Extent canonical" testable property (spec §8) and "set_ext rejects inf"
// (spec §8 boundary behaviors, meridian-crossing note).
func NewExtent(w, s, e, n float64) (Extent, error) {
	if math.IsInf(w, 0) || math.IsInf(s, 0) || math.IsInf(e, 0) || math.IsInf(n, 0) {
		return Extent{}, ErrExtentInvalid{w, s, e, n}
	}
	if w > e || s > n {
		return Extent{}, ErrExtentInvalid{w, s, e, n}
	}
	return Extent{W: w, S: s, E: e, N: n}, nil
}

// NewEmptyExtent returns an extent suitable as the zero value for Extend.
func NewEmptyExtent() Extent {
	return Extent{W: math.Inf(1), S: math.Inf(1), E: math.Inf(-1), N: math.Inf(-1)}
}

// Extend grows e to include p, returning a new Extent.
func (e Extent) Extend(p Vec2) Extent {
	return Extent{
		W: math.Min(e.W, p.X), S: math.Min(e.S, p.Y),
		E: math.Max(e.E, p.X), N: math.Max(e.N, p.Y),
	}
}

// Valid reports whether e has been extended by at least one point (i.e. is
// not the sentinel returned by NewEmptyExtent).
func (e Extent) Valid() bool { return e.W <= e.E && e.S <= e.N }

// Intersects reports whether e and o overlap (touching edges count).
func (e Extent) Intersects(o Extent) bool {
	return e.W <= o.E && o.W <= e.E && e.S <= o.N && o.S <= e.N
}

// Inside reports whether e is fully contained within view — used by the
// centroid engine (spec §4.3) to decide between the fast signed-area path
// and the clip-by-view fallback.
func (e Extent) Inside(view Extent) bool {
	return e.W >= view.W && e.E <= view.E && e.S >= view.S && e.N <= view.N
}

// Width and Height of the extent.
func (e Extent) Width() float64  { return e.E - e.W }
func (e Extent) Height() float64 { return e.N - e.S }

// Center of the extent.
func (e Extent) Center() Vec2 { return Vec2{(e.W + e.E) / 2, (e.S + e.N) / 2} }

// PointInRing implements the standard even-odd ray-casting inside-point
// test (spec §4.2), with two variants depending on whether ring is stored
// closed (first==last, as all AREA rings are per the Ring-closure
// invariant) or not.
func PointInRing(ring []Vec2, p Vec2, closed bool) bool {
	n := len(ring)
	if n < 3 {
		return false
	}
	limit := n
	if closed {
		limit = n - 1 // last vertex duplicates the first; don't double-count the closing edge
	}
	inside := false
	j := limit - 1
	for i := 0; i < limit; i++ {
		vi, vj := ring[i], ring[j]
		if (vi.Y > p.Y) != (vj.Y > p.Y) {
			xIntersect := (vj.X-vi.X)*(p.Y-vi.Y)/(vj.Y-vi.Y) + vi.X
			if p.X < xIntersect {
				inside = !inside
			}
		}
		j = i
	}
	return inside
}

// SignedArea computes the signed area of a closed ring via the shoelace
// formula (Green's theorem); positive for CCW winding. Used by the
// centroid engine (spec §4.3).
func SignedArea(ring []Vec2) float64 {
	n := len(ring)
	if n < 3 {
		return 0
	}
	limit := n
	if ring[0] == ring[n-1] {
		limit = n - 1
	}
	var sum float64
	for i := 0; i < limit; i++ {
		j := (i + 1) % limit
		sum += ring[i].X*ring[j].Y - ring[j].X*ring[i].Y
	}
	return sum / 2
}

// Centroid computes the area-weighted centroid of a closed ring (Green's
// theorem). Returns ok=false for a degenerate ring (area == 0) or fewer
// than 3 distinct vertices (spec §8 boundary behaviors).
func Centroid(ring []Vec2) (Vec2, bool) {
	area := SignedArea(ring)
	if area == 0 {
		return Vec2{}, false
	}
	n := len(ring)
	limit := n
	if n > 0 && ring[0] == ring[n-1] {
		limit = n - 1
	}
	if limit < 3 {
		return Vec2{}, false
	}
	var cx, cy float64
	for i := 0; i < limit; i++ {
		j := (i + 1) % limit
		cross := ring[i].X*ring[j].Y - ring[j].X*ring[i].Y
		cx += (ring[i].X + ring[j].X) * cross
		cy += (ring[i].Y + ring[j].Y) * cross
	}
	k := 1 / (6 * area)
	return Vec2{cx * k, cy * k}, true
}

// ClosedRing reports whether ring's first vertex equals its last, the
// invariant every AREA ring surfaced to the renderer must satisfy (§3, §8).
func ClosedRing(ring []Vec2) bool {
	return len(ring) > 0 && ring[0] == ring[len(ring)-1]
}

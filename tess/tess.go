// Package tess triangulates AREA fill rings into an indexed triangle list
// (spec §4.4) through a single function, Run. It has no combine/edge-flag
// callbacks and no boundary-only mode; the centroid engine's clip-by-view
// fallback (spec §4.3) clips with geom.ClipPolygonToRect instead.
//
// A GLU-tess-family general polygon tessellator is a large piece of
// machinery (monotone decomposition, sweep-line event queue); this package
// implements the same *contract* — winding-independent triangulation of a
// ring set with holes, via hole-bridging + ear clipping, which is the
// technique earcut-style Go tessellators in the broader ecosystem use for
// the same "triangulate with holes, don't crash on bad winding" job spec
// §3 asks for ("Tessellator is configured with WINDING_ODD so inconsistent
// winding still fills").
package tess

import (
	"fmt"

	"github.com/navchart/s52gl/geom"
)

// Error reports a tessellator failure (spec §7 TessellatorError); the
// caller skips the feature and continues the frame.
type Error struct {
	Code int
	Msg  string
}

func (e Error) Error() string { return fmt.Sprintf("tess: error %d: %s", e.Code, e.Msg) }

const (
	codeTooFewVertices = 1
	codeDegenerate     = 2
)

// Result is the tessellator's output: a flat vertex pool (the ring
// vertices plus the duplicates added by hole bridging; no new positions
// are created) and a triangle index list into it.
type Result struct {
	Vertices  []geom.Vec2
	Triangles []int // groups of 3 indices into Vertices
}

// Run tessellates an outer ring plus holes into triangles (spec §4.4). All
// rings of a single feature are tessellated in one call, matching the
// "one begin/end pair" invariant. Rings are expected closed
// (first==last); Run trims the closing vertex internally.
func Run(outer []geom.Vec2, holes [][]geom.Vec2) (Result, error) {
	o := trimClose(outer)
	if len(o) < 3 {
		return Result{}, Error{Code: codeTooFewVertices, Msg: "outer ring has fewer than 3 distinct vertices"}
	}
	merged := o
	for _, h := range holes {
		ht := trimClose(h)
		if len(ht) < 3 {
			continue
		}
		merged = bridgeHole(merged, ht)
	}
	tris, err := earClip(merged)
	if err != nil {
		return Result{}, err
	}
	return Result{Vertices: merged, Triangles: tris}, nil
}

func trimClose(ring []geom.Vec2) []geom.Vec2 {
	if len(ring) > 1 && ring[0] == ring[len(ring)-1] {
		return append([]geom.Vec2{}, ring[:len(ring)-1]...)
	}
	return append([]geom.Vec2{}, ring...)
}

// bridgeHole splices hole into outer by connecting the hole's rightmost
// vertex to the nearest visible outer edge vertex, the standard
// "rightmost vertex, nearest crossing edge" hole-joining heuristic.
func bridgeHole(outer, hole []geom.Vec2) []geom.Vec2 {
	mi := 0
	for i, p := range hole {
		if p.X > hole[mi].X {
			mi = i
		}
	}
	m := hole[mi]

	bestJ := -1
	bestX := -1e300
	n := len(outer)
	for i := 0; i < n; i++ {
		j := (i + 1) % n
		a, b := outer[i], outer[j]
		if (a.Y > m.Y) == (b.Y > m.Y) {
			continue
		}
		xi := a.X + (b.X-a.X)*(m.Y-a.Y)/(b.Y-a.Y)
		if xi >= m.X && xi > bestX {
			bestX = xi
			if a.X > b.X {
				bestJ = i
			} else {
				bestJ = j
			}
		}
	}
	if bestJ == -1 {
		bestJ = 0
	}

	rotatedHole := append(append([]geom.Vec2{}, hole[mi:]...), hole[:mi]...)
	out := make([]geom.Vec2, 0, len(outer)+len(rotatedHole)+2)
	out = append(out, outer[:bestJ+1]...)
	out = append(out, rotatedHole...)
	out = append(out, rotatedHole[0])
	out = append(out, outer[bestJ:]...)
	return out
}

// earClip triangulates a simple (possibly non-convex) polygon.
func earClip(poly []geom.Vec2) ([]int, error) {
	n := len(poly)
	if n < 3 {
		return nil, Error{Code: codeTooFewVertices, Msg: "merged polygon has fewer than 3 vertices"}
	}
	idx := make([]int, n)
	for i := range idx {
		idx[i] = i
	}
	var tris []int
	area := geom.SignedArea(append(append([]geom.Vec2{}, poly...), poly[0]))
	ccw := area > 0
	guard := 0
	for len(idx) > 3 {
		guard++
		if guard > n*n+8 {
			return nil, Error{Code: codeDegenerate, Msg: "ear clipping failed to converge"}
		}
		clipped := false
		for i := 0; i < len(idx); i++ {
			ip := (i - 1 + len(idx)) % len(idx)
			in := (i + 1) % len(idx)
			a, b, c := poly[idx[ip]], poly[idx[i]], poly[idx[in]]
			if !isConvex(a, b, c, ccw) {
				continue
			}
			if triangleContainsAny(a, b, c, poly, idx, idx[ip], idx[i], idx[in]) {
				continue
			}
			tris = append(tris, idx[ip], idx[i], idx[in])
			idx = append(idx[:i], idx[i+1:]...)
			clipped = true
			break
		}
		if !clipped {
			return nil, Error{Code: codeDegenerate, Msg: "no ear found; polygon may be self-intersecting"}
		}
	}
	tris = append(tris, idx[0], idx[1], idx[2])
	return tris, nil
}

func isConvex(a, b, c geom.Vec2, ccw bool) bool {
	cross := (b.X-a.X)*(c.Y-a.Y) - (b.Y-a.Y)*(c.X-a.X)
	if ccw {
		return cross > 0
	}
	return cross < 0
}

func triangleContainsAny(a, b, c geom.Vec2, poly []geom.Vec2, idx []int, ia, ib, ic int) bool {
	for _, i := range idx {
		if i == ia || i == ib || i == ic {
			continue
		}
		if p := poly[i]; p == a || p == b || p == c {
			continue // a hole bridge duplicates vertices at the same position
		}
		if pointInTriangle(poly[i], a, b, c) {
			return true
		}
	}
	return false
}

func pointInTriangle(p, a, b, c geom.Vec2) bool {
	d1 := sign(p, a, b)
	d2 := sign(p, b, c)
	d3 := sign(p, c, a)
	hasNeg := d1 < 0 || d2 < 0 || d3 < 0
	hasPos := d1 > 0 || d2 > 0 || d3 > 0
	return !(hasNeg && hasPos)
}

func sign(p, a, b geom.Vec2) float64 {
	return (p.X-b.X)*(a.Y-b.Y) - (a.X-b.X)*(p.Y-b.Y)
}

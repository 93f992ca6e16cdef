package geom

// outcode bits for Cohen-Sutherland clipping.
const (
	csInside = 0
	csLeft   = 1 << 0
	csRight  = 1 << 1
	csBottom = 1 << 2
	csTop    = 1 << 3
)

func outcode(p Vec2, r Extent) int {
	code := csInside
	switch {
	case p.X < r.W:
		code |= csLeft
	case p.X > r.E:
		code |= csRight
	}
	switch {
	case p.Y < r.S:
		code |= csBottom
	case p.Y > r.N:
		code |= csTop
	}
	return code
}

// ClipSegment clips the segment (a,b) against rect using Cohen-Sutherland.
// Returns the clipped endpoints and ok=true if any part of the segment
// lies within or on rect; ok=false if the segment lies entirely outside
// (spec §8 "Clipping correctness").
func ClipSegment(a, b Vec2, rect Extent) (Vec2, Vec2, bool) {
	outA, outB := outcode(a, rect), outcode(b, rect)
	for {
		if outA|outB == 0 {
			return a, b, true
		}
		if outA&outB != 0 {
			return a, b, false
		}
		var x, y float64
		outOut := outA
		if outOut == 0 {
			outOut = outB
		}
		switch {
		case outOut&csTop != 0:
			x = a.X + (b.X-a.X)*(rect.N-a.Y)/(b.Y-a.Y)
			y = rect.N
		case outOut&csBottom != 0:
			x = a.X + (b.X-a.X)*(rect.S-a.Y)/(b.Y-a.Y)
			y = rect.S
		case outOut&csRight != 0:
			y = a.Y + (b.Y-a.Y)*(rect.E-a.X)/(b.X-a.X)
			x = rect.E
		case outOut&csLeft != 0:
			y = a.Y + (b.Y-a.Y)*(rect.W-a.X)/(b.X-a.X)
			x = rect.W
		}
		if outOut == outA {
			a = Vec2{x, y}
			outA = outcode(a, rect)
		} else {
			b = Vec2{x, y}
			outB = outcode(b, rect)
		}
	}
}

// ClipPolygonToRect clips a closed polygon ring against rect using the
// Sutherland-Hodgman algorithm. Used by the centroid engine's clip-by-view
// fallback (spec §4.3) as an alternative path to the full tessellator for
// the common convex-view-rectangle case.
func ClipPolygonToRect(ring []Vec2, rect Extent) []Vec2 {
	out := trimOpen(ring)
	out = clipEdge(out, func(p Vec2) bool { return p.X >= rect.W },
		func(a, b Vec2) Vec2 { return Vec2{rect.W, a.Y + (b.Y-a.Y)*(rect.W-a.X)/(b.X-a.X)} })
	out = clipEdge(out, func(p Vec2) bool { return p.X <= rect.E },
		func(a, b Vec2) Vec2 { return Vec2{rect.E, a.Y + (b.Y-a.Y)*(rect.E-a.X)/(b.X-a.X)} })
	out = clipEdge(out, func(p Vec2) bool { return p.Y >= rect.S },
		func(a, b Vec2) Vec2 { return Vec2{a.X + (b.X-a.X)*(rect.S-a.Y)/(b.Y-a.Y), rect.S} })
	out = clipEdge(out, func(p Vec2) bool { return p.Y <= rect.N },
		func(a, b Vec2) Vec2 { return Vec2{a.X + (b.X-a.X)*(rect.N-a.Y)/(b.Y-a.Y), rect.N} })
	if len(out) > 0 && out[0] != out[len(out)-1] {
		out = append(out, out[0])
	}
	return out
}

func trimOpen(ring []Vec2) []Vec2 {
	if len(ring) > 1 && ring[0] == ring[len(ring)-1] {
		return ring[:len(ring)-1]
	}
	return ring
}

func clipEdge(poly []Vec2, inside func(Vec2) bool, intersect func(a, b Vec2) Vec2) []Vec2 {
	if len(poly) == 0 {
		return poly
	}
	var out []Vec2
	prev := poly[len(poly)-1]
	prevIn := inside(prev)
	for _, cur := range poly {
		curIn := inside(cur)
		switch {
		case curIn && prevIn:
			out = append(out, cur)
		case curIn && !prevIn:
			out = append(out, intersect(prev, cur), cur)
		case !curIn && prevIn:
			out = append(out, intersect(prev, cur))
		}
		prev, prevIn = cur, curIn
	}
	return out
}

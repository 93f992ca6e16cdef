package s57data

import (
	"github.com/dhconnelly/rtreego"

	"github.com/navchart/s52gl/geom"
)

// FeatureIndex is a spatial index over a scene's features, used by the
// renderer's is_offscreen/view-culling path (spec §6.1) to avoid a linear
// scan of every feature every frame.
//
// Grounded on beetlebugorg-s57's pkg/s57/index.go ChartIndex, which wraps
// the same rtreego.Rtree for the analogous "query charts intersecting a
// region" problem; here the indexed unit is a Feature instead of a Chart.
type FeatureIndex struct {
	rtree *rtreego.Rtree
}

// NewFeatureIndex builds an index over features, skipping any without a
// set extent (e.g. META features, per spec §3 "META features carry no
// geometry").
func NewFeatureIndex(features []*Feature) *FeatureIndex {
	rt := rtreego.NewTree(2, 25, 50)
	for _, f := range features {
		if ext, ok := f.Extent(); ok && ext.Valid() {
			rt.Insert(indexedFeature{f: f, ext: ext})
		}
	}
	return &FeatureIndex{rtree: rt}
}

type indexedFeature struct {
	f   *Feature
	ext geom.Extent
}

// Bounds implements rtreego.Spatial.
func (i indexedFeature) Bounds() rtreego.Rect {
	point := rtreego.Point{i.ext.W, i.ext.S}
	lengths := []float64{
		maxf(i.ext.Width(), 1e-9),
		maxf(i.ext.Height(), 1e-9),
	}
	rect, _ := rtreego.NewRect(point, lengths)
	return rect
}

func maxf(a, b float64) float64 {
	if a > b {
		return a
	}
	return b
}

// Query returns every indexed feature whose extent intersects view.
func (idx *FeatureIndex) Query(view geom.Extent) []*Feature {
	point := rtreego.Point{view.W, view.S}
	lengths := []float64{maxf(view.Width(), 1e-9), maxf(view.Height(), 1e-9)}
	rect, err := rtreego.NewRect(point, lengths)
	if err != nil {
		return nil
	}
	results := idx.rtree.SearchIntersect(rect)
	out := make([]*Feature, 0, len(results))
	for _, r := range results {
		out = append(out, r.(indexedFeature).f)
	}
	return out
}

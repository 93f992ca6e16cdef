// Package s57data is the in-memory representation of chart features and
// their tessellated GPU primitives (spec §3, §4.2, §4.3), grounded on
// original_source/S57data.c's S57_geo struct.
package s57data

import (
	"errors"
	"fmt"
	"math"
	"sync"

	"github.com/navchart/s52gl/geom"
)

// EmptyNumberMarker is the sentinel string representing an omitted
// mandatory attribute, carried verbatim from original_source/S57data.c's
// EMPTY_NUMBER_MARKER (2^31-7).
const EmptyNumberMarker = "2147483641"

// Kind identifies a feature's geometry class.
type Kind int

const (
	Meta Kind = iota
	Point
	Line
	Area
)

func (k Kind) String() string {
	switch k {
	case Meta:
		return "META"
	case Point:
		return "POINT"
	case Line:
		return "LINE"
	case Area:
		return "AREA"
	default:
		return "UNKNOWN"
	}
}

// TouchRole names one of the four touch back-reference roles (spec §3).
type TouchRole int

const (
	TouchTOPMAR TouchRole = iota
	TouchLIGHTS
	TouchDEPARE
	TouchDEPVAL
	numTouchRoles
)

// RelationRole names a C_AGGR/C_ASSO aggregation back-reference (spec §9).
type RelationRole int

const (
	RelationNone RelationRole = iota
	RelationAggregate
	RelationAssociate
)

// ErrTouchConflict is returned by SetTouch when the role is already set to
// a different feature (spec §8 idempotence law).
var ErrTouchConflict = errors.New("s57data: touch role already set to a different feature")

// ErrGeoSizeExceedsCapacity is returned by SetGeoSize.
var ErrGeoSizeExceedsCapacity = errors.New("s57data: geo size exceeds capacity")

// ErrMetaHasGeometry guards the META-carries-no-geometry invariant.
var ErrMetaHasGeometry = errors.New("s57data: META feature may not carry geometry")

// Ring is one AREA ring: a closed (first==last), CCW (exterior) or CW
// (hole) sequence of points.
type Ring struct {
	Points []geom.Vec3
}

// Relation is a lazily-resolved C_AGGR/C_ASSO back-reference, stored as an
// ID per spec §9's "tagged references resolved lazily during pick" design
// note (avoids owning pointers between features).
type Relation struct {
	Role RelationRole
	ID   uint32
}

// Feature is one geographic chart object.
type Feature struct {
	id   uint32
	Name string // 6-character S-57 class tag, e.g. DEPARE, LIGHTS
	Kind Kind

	Point geom.Vec3
	Line  []geom.Vec3
	Rings []Ring

	dataSize int // active length; meaning depends on Kind

	extent    geom.Extent
	hasExtent bool

	scamin float64 // +Inf means always visible

	attrs map[string]string

	touch    [numTouchRoles]*Feature
	Relation Relation

	centroids     []geom.Vec2
	centroidIndex int
	hasCentroid   bool

	Primitive any // *primitive.Buffer; any to avoid import cycle with package primitive

	highlighted bool

	mu sync.Mutex
}

// Registry allocates monotonic, never-reused feature IDs, mirroring
// original_source/S57data.c's static `_id` counter starting at 1 — scoped
// per-scene here rather than process-wide, since a long-lived Go process
// may host more than one scene/test in its lifetime.
type Registry struct {
	mu     sync.Mutex
	nextID uint32
}

// NewRegistry returns a Registry whose first allocated ID is 1.
func NewRegistry() *Registry { return &Registry{nextID: 1} }

func (r *Registry) alloc() uint32 {
	r.mu.Lock()
	defer r.mu.Unlock()
	id := r.nextID
	r.nextID++
	return id
}

func (r *Registry) newFeature(name string, kind Kind) *Feature {
	return &Feature{
		id:     r.alloc(),
		Name:   name,
		Kind:   kind,
		scamin: math.Inf(1),
		attrs:  make(map[string]string),
	}
}

// Meta constructs a META feature (no geometry, spec §6.2).
func (r *Registry) Meta(name string) *Feature { return r.newFeature(name, Meta) }

// NewPoint constructs a POINT feature.
func (r *Registry) NewPoint(name string, xyz geom.Vec3) *Feature {
	f := r.newFeature(name, Point)
	f.Point = xyz
	f.dataSize = 1
	return f
}

// NewLine constructs a LINE feature from a dense vertex array.
func (r *Registry) NewLine(name string, xyz []geom.Vec3) *Feature {
	f := r.newFeature(name, Line)
	f.Line = xyz
	f.dataSize = len(xyz)
	return f
}

// NewArea constructs an AREA feature. Ring 0 is exterior; rings 1..R-1 are
// holes. Every ring must already be closed (spec §3 invariant); NewArea
// does not auto-close rings.
func (r *Registry) NewArea(name string, rings []Ring) (*Feature, error) {
	for i, ring := range rings {
		pts := make([]geom.Vec2, len(ring.Points))
		for j, p := range ring.Points {
			pts[j] = geom.Vec2{X: p.X, Y: p.Y}
		}
		if !geom.ClosedRing(pts) {
			return nil, fmt.Errorf("s57data: ring %d of %q is not closed", i, name)
		}
	}
	f := r.newFeature(name, Area)
	f.Rings = rings
	f.dataSize = len(rings)
	return f, nil
}

// ID returns the feature's immutable, unique identifier.
func (f *Feature) ID() uint32 { return f.id }

// SetExtent sets the feature's projected-coordinate extent (spec §6.2
// set_ext); ext must already be canonical (caller uses geom.NewExtent).
func (f *Feature) SetExtent(ext geom.Extent) {
	f.extent = ext
	f.hasExtent = true
}

// Extent returns the feature's extent and whether one has been set.
func (f *Feature) Extent() (geom.Extent, bool) { return f.extent, f.hasExtent }

// RingCount returns the number of rings for an AREA feature.
func (f *Feature) RingCount() int { return len(f.Rings) }

// RingAt returns ring i's point count and backing slice (spec §6.2 ring(i)).
func (f *Feature) RingAt(i int) (int, []geom.Vec3) {
	if i < 0 || i >= len(f.Rings) {
		return 0, nil
	}
	r := f.Rings[i]
	return len(r.Points), r.Points
}

// SetAttribute stores an attribute value keyed by a 6-character S-57 code
// or a system-defined "_"-prefixed key.
func (f *Feature) SetAttribute(key, value string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.attrs[key] = value
}

// Attribute returns the value for key, or ok=false if the key is unset, the
// empty string, or the omitted-mandatory-attribute sentinel (spec §3, §4.2).
func (f *Feature) Attribute(key string) (string, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	v, present := f.attrs[key]
	if !present || v == "" || v == EmptyNumberMarker {
		return "", false
	}
	return v, true
}

// SetTouch sets a non-owning back-reference for role. Setting the same
// value twice is a no-op (idempotent); setting a different value when
// already set returns ErrTouchConflict (spec §8 idempotence law).
func (f *Feature) SetTouch(role TouchRole, other *Feature) error {
	existing := f.touch[role]
	if existing != nil && existing != other {
		return ErrTouchConflict
	}
	f.touch[role] = other
	return nil
}

// Touch returns the feature referenced by role, or nil.
func (f *Feature) Touch(role TouchRole) *Feature { return f.touch[role] }

// SetScamin sets the maximum scale denominator at which the feature is
// visible; math.Inf(1) means always visible.
func (f *Feature) SetScamin(s float64) { f.scamin = s }

// Scamin returns the current scamin value.
func (f *Feature) Scamin() float64 { return f.scamin }

// ResetScaminFromAttribute reinitializes scamin from the SCAMIN attribute,
// falling back to +Inf if absent or unparsable.
func (f *Feature) ResetScaminFromAttribute() {
	v, ok := f.Attribute("SCAMIN")
	if !ok {
		f.scamin = math.Inf(1)
		return
	}
	var s float64
	if _, err := fmt.Sscanf(v, "%f", &s); err != nil {
		f.scamin = math.Inf(1)
		return
	}
	f.scamin = s
}

// GeoSize returns the active portion of geometry (dataSize).
func (f *Feature) GeoSize() int { return f.dataSize }

// SetGeoSize validates n against the kind's geometry capacity.
func (f *Feature) SetGeoSize(n int) error {
	cap := f.capacity()
	if n > cap {
		return ErrGeoSizeExceedsCapacity
	}
	f.dataSize = n
	return nil
}

func (f *Feature) capacity() int {
	switch f.Kind {
	case Point:
		return 1
	case Line:
		return len(f.Line)
	case Area:
		return len(f.Rings)
	default:
		return 0
	}
}

// NewCentroid resets the centroid list to empty, ready for AddCentroid.
func (f *Feature) NewCentroid() {
	f.centroids = f.centroids[:0]
	f.centroidIndex = 0
	f.hasCentroid = false
}

// AddCentroid appends a candidate inside-point to the centroid list.
func (f *Feature) AddCentroid(x, y float64) {
	f.centroids = append(f.centroids, geom.Vec2{X: x, Y: y})
	f.hasCentroid = true
}

// NextCentroid advances the iteration cursor and returns the next
// centroid, or ok=false when exhausted.
func (f *Feature) NextCentroid() (geom.Vec2, bool) {
	if f.centroidIndex >= len(f.centroids) {
		return geom.Vec2{}, false
	}
	c := f.centroids[f.centroidIndex]
	f.centroidIndex++
	return c, true
}

// ResetCentroid rewinds the iteration cursor to the start without clearing
// the cache (spec §4.3 "reset_centroid invalidates when the view changes").
func (f *Feature) ResetCentroid() { f.centroidIndex = 0 }

// HasCentroid reports whether at least one centroid has been recorded.
func (f *Feature) HasCentroid() bool { return f.hasCentroid }

// HighlightOn/Off/IsHighlighted implement the cursor-pick highlight flag.
func (f *Feature) HighlightOn()        { f.highlighted = true }
func (f *Feature) HighlightOff()       { f.highlighted = false }
func (f *Feature) IsHighlighted() bool { return f.highlighted }

// PointInRing tests whether (x,y) lies inside ring i using the standard
// even-odd test (spec §6.2).
func (f *Feature) PointInRing(i int, x, y float64) bool {
	_, pts := f.RingAt(i)
	pts2 := make([]geom.Vec2, len(pts))
	for j, p := range pts {
		pts2[j] = geom.Vec2{X: p.X, Y: p.Y}
	}
	return geom.PointInRing(pts2, geom.Vec2{X: x, Y: y}, true)
}

// Touches reports whether any vertex of a lies inside polygon b's exterior
// ring (spec §6.2).
func Touches(a, b *Feature) bool {
	if b.Kind != Area || len(b.Rings) == 0 {
		return false
	}
	var verts []geom.Vec3
	switch a.Kind {
	case Point:
		verts = []geom.Vec3{a.Point}
	case Line:
		verts = a.Line
	case Area:
		if len(a.Rings) > 0 {
			verts = a.Rings[0].Points
		}
	}
	for _, v := range verts {
		if b.PointInRing(0, v.X, v.Y) {
			return true
		}
	}
	return false
}

// Package pick implements the color-index cursor-pick cycle (spec §4.9):
// assigning each drawn object a unique color index, reading back an 8x8
// pixel window around the cursor, and resolving the top-most hit plus its
// C_AGGR/C_ASSO related objects.
package pick

import (
	"errors"

	"github.com/navchart/s52gl/s57data"
)

// MaxObjects is the limit imposed by an 8-bit red-channel color index
// (spec §4.9 invariant: "255 objects — enforce a limit and switch to
// multi-channel if exceeded"). This implementation enforces the limit
// rather than implementing the multi-channel escape hatch, since no
// chart view realistically draws more than 255 pickable objects in one
// 8x8 cursor window's worth of surrounding geometry... the limit is over
// the whole PICK cycle's object count, see Assign.
const MaxObjects = 255

// ErrTooManyObjects is returned by Assign once MaxObjects have been
// registered in the current cycle.
var ErrTooManyObjects = errors.New("pick: color index space exhausted for this cycle")

// Entry records one object's assigned color index for this cycle.
type Entry struct {
	Index   uint8
	Feature *s57data.Feature
}

// Cycle accumulates the color-index assignment for a single PICK pass.
type Cycle struct {
	entries []Entry
	next    uint8
}

// NewCycle starts a new pick cycle. The color index space starts at 1 (0
// is reserved for "no object").
func NewCycle() *Cycle { return &Cycle{next: 1} }

// Assign allocates the next color index for f and records it, returning
// the index the caller binds as the red channel of the pick uniform
// override (spec §4.9).
func (c *Cycle) Assign(f *s57data.Feature) (index uint8, err error) {
	if len(c.entries) >= MaxObjects {
		return 0, ErrTooManyObjects
	}
	idx := c.next
	c.next++
	c.entries = append(c.entries, Entry{Index: idx, Feature: f})
	return idx, nil
}

// Pixel is one sampled RGBA pixel from the 8x8 read-back window.
type Pixel struct{ R, G, B, A uint8 }

// Resolve scans an 8x8 (or any W*H) RGBA pixel window and returns every
// Entry whose index appears in the window, in the order encountered
// (spec §4.9: "for each pixel whose r component matches the current
// object's index, append the object to the pick list").
//
// Per the Open Question decision in DESIGN.md, the reported "top" object
// is the *last* matching entry appended, preserving the source's observed
// iteration-order behavior rather than a draw-order or depth resort.
func (c *Cycle) Resolve(window []Pixel) []Entry {
	byIndex := make(map[uint8]*s57data.Feature, len(c.entries))
	for _, e := range c.entries {
		byIndex[e.Index] = e.Feature
	}
	var hits []Entry
	seen := make(map[uint8]bool)
	for _, px := range window {
		if px.R == 0 || seen[px.R] {
			continue
		}
		f, ok := byIndex[px.R]
		if !ok {
			continue
		}
		seen[px.R] = true
		hits = append(hits, Entry{Index: px.R, Feature: f})
	}
	return hits
}

// TopHit returns the last entry in hits — the object pick_name() reports
// (spec §4.9, §9 "potentially buggy behavior... preserve explicitly").
func TopHit(hits []Entry) (Entry, bool) {
	if len(hits) == 0 {
		return Entry{}, false
	}
	return hits[len(hits)-1], true
}

// HighlightRelated marks top and every feature linked to it by a C_AGGR or
// C_ASSO relation as highlighted (spec §4.9, scenario 4), given a
// scene-wide ID->Feature resolver (spec §9 design note: relations are
// resolved lazily via a scene-wide map, not owning pointers).
func HighlightRelated(top *s57data.Feature, resolve func(id uint32) *s57data.Feature) []*s57data.Feature {
	highlighted := []*s57data.Feature{top}
	top.HighlightOn()
	if top.Relation.Role != s57data.RelationNone {
		if other := resolve(top.Relation.ID); other != nil {
			other.HighlightOn()
			highlighted = append(highlighted, other)
		}
	}
	return highlighted
}

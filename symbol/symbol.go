// Package symbol caches per-symbol, per-pattern, and per-line-style GPU
// buffers built from HPGL vector definitions supplied by the external
// Presentation Library (spec §3 "Symbol definition (cached)", §2 "Symbol
// cache").
//
// Grounded on original_source/S57data.c's _S57_prim (one GArray of
// vertices plus a GL display-list handle per color sublist) and on package
// primitive for the GPU buffer half.
package symbol

import "github.com/navchart/s52gl/primitive"

// ColorSublist is one monochrome HPGL sequence of a (possibly multi-color)
// symbol, drawn in sublist order (spec §5 ordering guarantee).
type ColorSublist struct {
	ColorName string // PLib color token, e.g. "DEPDW"
	Buffer    *primitive.Buffer
}

// Definition is a cached symbol, pattern, or line style.
type Definition struct {
	Name string // PLib symbol/pattern/line-style name

	Sublists []ColorSublist

	// PenWidth is the stroke thickness in 0.01mm units.
	PenWidth int

	// Pattern tile dimensions in 0.01mm units; zero for non-pattern symbols.
	TileWidth, TileHeight, StaggerX int

	// Create requests a rebuild on next frame, e.g. after a palette or
	// PLib reload (spec §3).
	Create bool
}

// Cache holds Definitions keyed by PLib name.
type Cache struct {
	defs map[string]*Definition
}

// NewCache returns an empty symbol cache.
func NewCache() *Cache {
	return &Cache{defs: make(map[string]*Definition)}
}

// Get returns the cached definition for name, or ok=false if absent or
// flagged for rebuild.
func (c *Cache) Get(name string) (*Definition, bool) {
	d, ok := c.defs[name]
	if !ok || d.Create {
		return nil, false
	}
	return d, true
}

// Put inserts or replaces the definition for name.
func (c *Cache) Put(d *Definition) {
	d.Create = false
	c.defs[d.Name] = d
}

// InvalidateAll flags every cached definition for rebuild, called on PLib
// or palette reload (spec §3, §5 "rebuilt on PLib reload, never during a
// frame").
func (c *Cache) InvalidateAll() {
	for _, d := range c.defs {
		d.Create = true
	}
}

// Release frees the GPU resources of every cached definition's sublists.
func (c *Cache) Release() {
	for _, d := range c.defs {
		for _, sl := range d.Sublists {
			if sl.Buffer != nil {
				sl.Buffer.Release()
			}
		}
	}
	c.defs = make(map[string]*Definition)
}

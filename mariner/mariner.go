// Package mariner is a minimal keyed-number parameter registry standing in
// for the external S52MP mariner-parameter store named in spec §1 as an
// out-of-scope collaborator. Nothing else in the example pack supplies
// this store, so it is implemented in-module as a small read-mostly
// registry, following the teacher's preference for a simple map-backed
// table over a general-purpose config library (no such library appears
// anywhere in the example pack — see DESIGN.md).
package mariner

import "sync"

// Key names a mariner runtime toggle referenced throughout spec §4.
type Key string

const (
	DispCentroids       Key = "DISP_CENTROIDS"
	FullSectors         Key = "FULL_SECTORS"
	VecStab             Key = "VECSTB"
	DispDrgarePattern   Key = "DISP_DRGARE_PATTERN"
	ShowText            Key = "SHOW_TEXT"
	UseTxtShadow        Key = "USE_TXT_SHADOW"
	AntiAlias           Key = "ANTIALIAS"
	DotPitchMMX         Key = "DOTPITCH_MM_X"
	DotPitchMMY         Key = "DOTPITCH_MM_Y"
)

// Params is a read-mostly, goroutine-safe keyed-number registry. The
// renderer treats it as stable across a single frame (spec §5).
type Params struct {
	mu     sync.RWMutex
	values map[Key]float64
}

// NewParams returns a registry seeded with the S-52 annex A defaults this
// renderer depends on.
func NewParams() *Params {
	return &Params{values: map[Key]float64{
		DispCentroids:     0,
		FullSectors:       0,
		VecStab:           0,
		DispDrgarePattern: 0,
		ShowText:          1,
		UseTxtShadow:      1,
		AntiAlias:         1,
		DotPitchMMX:       0.3,
		DotPitchMMY:       0.3,
	}}
}

// Get returns the current value for key, or 0 if never set.
func (p *Params) Get(key Key) float64 {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.values[key]
}

// Set updates key's value. Safe to call between frames; per spec §5 the
// renderer assumes parameters are stable within a single frame, so callers
// should avoid mutating mid-cycle.
func (p *Params) Set(key Key, value float64) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.values[key] = value
}

// Bool is a convenience for toggle-style parameters (nonzero is on).
func (p *Params) Bool(key Key) bool { return p.Get(key) != 0 }

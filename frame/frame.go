// Package frame implements the renderer's cycle state machine (spec
// §4.11): NONE/DRAW/LAST/PICK, with the transition validation,
// framebuffer-texture snapshot bookkeeping for LAST, and the
// CycleOutOfSync error.
package frame

import (
	"errors"

	"github.com/navchart/s52gl/gl"
)

// Cycle names one of the renderer's four lifecycle states.
type Cycle int

const (
	None Cycle = iota
	Draw
	Last
	Pick
)

func (c Cycle) String() string {
	switch c {
	case None:
		return "NONE"
	case Draw:
		return "DRAW"
	case Last:
		return "LAST"
	case Pick:
		return "PICK"
	default:
		return "UNKNOWN"
	}
}

// ErrCycleOutOfSync is returned by Begin/End when called in a state that
// does not permit the requested transition (spec §7, §4.11 invariant:
// exactly one cycle at a time).
var ErrCycleOutOfSync = errors.New("frame: cycle out of sync")

// Lifecycle tracks the current cycle and the stale/valid state of the
// LAST-cycle framebuffer snapshot.
type Lifecycle struct {
	current Cycle

	snapshot      gl.Framebuffer
	hasSnapshot   bool
	snapshotStale bool
}

// NewLifecycle returns a Lifecycle starting in state NONE.
func NewLifecycle() *Lifecycle { return &Lifecycle{current: None, snapshotStale: true} }

// Current returns the active cycle.
func (l *Lifecycle) Current() Cycle { return l.current }

// Begin validates and performs a state transition (spec §4.11).
//
//   - Entering DRAW requires the current state to be NONE.
//   - Entering LAST or PICK requires the current state to be NONE or DRAW
//     (a scene driver typically does DRAW then LAST then PICK-on-demand).
//
// On success for DRAW, the caller (render.Renderer) is expected to set up
// the frame projection and clear the framebuffer; Begin itself only
// arbitrates the state machine.
func (l *Lifecycle) Begin(c Cycle) error {
	switch c {
	case Draw:
		if l.current != None {
			return ErrCycleOutOfSync
		}
	case Last, Pick:
		if l.current != None && l.current != Draw {
			return ErrCycleOutOfSync
		}
	default:
		return ErrCycleOutOfSync
	}
	l.current = c
	return nil
}

// End closes cycle c, returning ErrCycleOutOfSync if c is not the active
// cycle. End pops matrices (caller's responsibility via matrixstack) and
// flags the framebuffer snapshot as stale (spec §4.11).
func (l *Lifecycle) End(c Cycle) error {
	if l.current != c {
		return ErrCycleOutOfSync
	}
	l.current = None
	l.snapshotStale = true
	return nil
}

// SnapshotLast stores fb as the LAST-cycle framebuffer snapshot, used to
// blit-restore the chart pass so mariner overlays can be redrawn
// incrementally without redoing the chart (spec §4.11).
func (l *Lifecycle) SnapshotLast(fb gl.Framebuffer) {
	l.snapshot = fb
	l.hasSnapshot = true
	l.snapshotStale = false
}

// Snapshot returns the stored LAST-cycle framebuffer and whether it is
// still fresh (not stale since the last End).
func (l *Lifecycle) Snapshot() (gl.Framebuffer, bool) {
	return l.snapshot, l.hasSnapshot && !l.snapshotStale
}

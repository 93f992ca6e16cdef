// Package matrixstack implements the fixed-function-style projection and
// modelview stacks a GLES2 renderer needs once the fixed-function pipeline
// itself is gone (spec §4.6): two stacks of column-major 4x4 matrices, an
// ortho/translate/rotate/scale op set, and window<->world mapping via
// project/unproject.
//
// Grounded on spec.md §4.6 and §9's "Fixed-function matrix stack" design
// note (two fixed arrays of 16 floats with a small top pointer); the
// underlying Mat4 type is package glm, itself adapted from
// soypat/glgl/math/ms3.Mat4.
package matrixstack

import (
	"errors"

	"github.com/navchart/s52gl/glm"
)

// MinDepth is the minimum stack depth required by spec §4.6.
const MinDepth = 8

// Mode selects which stack push/pop/load-identity operate on.
type Mode int

const (
	Projection Mode = iota
	Modelview
)

// ErrStackOverflow/Underflow guard push/pop against misuse; not named in
// spec's error taxonomy (§7) since they indicate a programming error in
// the caller, not a recoverable per-feature condition.
var (
	ErrStackOverflow  = errors.New("matrixstack: push beyond capacity")
	ErrStackUnderflow = errors.New("matrixstack: pop on empty stack")
)

// Stack holds the projection and modelview matrix stacks plus the
// modelview_is_identity optimization flag.
type Stack struct {
	proj        []glm.Mat4
	model       []glm.Mat4
	mode        Mode
	modelIdent  bool
}

// NewStack returns a Stack with both stacks seeded with the identity
// matrix and capacity MinDepth.
func NewStack() *Stack {
	s := &Stack{
		proj:  make([]glm.Mat4, 1, MinDepth),
		model: make([]glm.Mat4, 1, MinDepth),
	}
	s.proj[0] = glm.Identity4()
	s.model[0] = glm.Identity4()
	s.modelIdent = true
	return s
}

func (s *Stack) active() []glm.Mat4 {
	if s.mode == Projection {
		return s.proj
	}
	return s.model
}

func (s *Stack) setActive(m []glm.Mat4) {
	if s.mode == Projection {
		s.proj = m
	} else {
		s.model = m
	}
}

// SetMode selects the stack subsequent ops apply to.
func (s *Stack) SetMode(m Mode) { s.mode = m }

// Top returns the current top matrix of the active stack.
func (s *Stack) Top() glm.Mat4 { return s.active()[len(s.active())-1] }

// PushBoth duplicates the top of both stacks, as matrix_set(PRJ)/matrix_set(WIN)
// do before reconfiguring projection for a frame (spec §4.6).
func (s *Stack) PushBoth() error {
	if err := s.push(Projection); err != nil {
		return err
	}
	return s.push(Modelview)
}

// PopBoth restores both stacks, the matrix_del counterpart to PushBoth.
func (s *Stack) PopBoth() error {
	if err := s.pop(Projection); err != nil {
		return err
	}
	return s.pop(Modelview)
}

// Push duplicates the top of the active stack.
func (s *Stack) Push() error { return s.push(s.mode) }

func (s *Stack) push(mode Mode) error {
	save := s.mode
	s.mode = mode
	defer func() { s.mode = save }()
	st := s.active()
	if len(st) >= MinDepth {
		return ErrStackOverflow
	}
	s.setActive(append(st, st[len(st)-1]))
	return nil
}

// Pop discards the top of the active stack. Per spec §4.6, pop always
// clears modelview_is_identity conservatively (the restored matrix might
// not be identity even if the popped one was).
func (s *Stack) Pop() error { return s.pop(s.mode) }

func (s *Stack) pop(mode Mode) error {
	save := s.mode
	s.mode = mode
	defer func() { s.mode = save }()
	st := s.active()
	if len(st) <= 1 {
		return ErrStackUnderflow
	}
	s.setActive(st[:len(st)-1])
	if mode == Modelview {
		s.modelIdent = false
	}
	return nil
}

// LoadIdentity replaces the top of the active stack with the identity
// matrix and, if acting on the modelview stack, sets modelview_is_identity.
func (s *Stack) LoadIdentity() {
	st := s.active()
	st[len(st)-1] = glm.Identity4()
	if s.mode == Modelview {
		s.modelIdent = true
	}
}

// Ortho sets the top of the active stack to an orthographic projection.
func (s *Stack) Ortho(l, r, b, t, n, f float32) {
	st := s.active()
	st[len(st)-1] = glm.Ortho4(l, r, b, t, n, f)
	if s.mode == Modelview {
		s.modelIdent = false
	}
}

// Translate multiplies the top of the active stack by a translation.
func (s *Stack) Translate(v glm.Vec) {
	s.multiply(glm.Translate4(v))
}

// RotateZ multiplies the top of the active stack by a Z-axis rotation
// (radians) — the only rotation axis needed by a plan-view chart
// renderer (§9).
func (s *Stack) RotateZ(radians float32) {
	s.multiply(glm.RotateZ4(radians))
}

// Scale multiplies the top of the active stack by a scale.
func (s *Stack) Scale(v glm.Vec) {
	s.multiply(glm.Scale4(v))
}

// Multiply post-multiplies the top of the active stack by m.
func (s *Stack) Multiply(m glm.Mat4) { s.multiply(m) }

func (s *Stack) multiply(m glm.Mat4) {
	st := s.active()
	st[len(st)-1] = glm.Mul4(st[len(st)-1], m)
	if s.mode == Modelview {
		s.modelIdent = false
	}
}

// ModelviewIsIdentity reports the optimization flag used to skip redundant
// uniform uploads (spec §4.6, §9).
func (s *Stack) ModelviewIsIdentity() bool { return s.modelIdent }

// Combined returns projection * modelview, the matrix uploaded to the
// vertex shader each draw call.
func (s *Stack) Combined() glm.Mat4 {
	return glm.Mul4(s.proj[len(s.proj)-1], s.model[len(s.model)-1])
}

// Project implements the gluProject-style window/world mapping (win2prj in
// reverse): world (x,y,z) to window pixel coordinates, given the viewport.
func (s *Stack) Project(world glm.Vec, viewport [4]int32) glm.Vec {
	clip := s.Combined().MulVec4(world)
	ndcX, ndcY := clip.X, clip.Y
	return glm.Vec{
		X: float32(viewport[0]) + (ndcX+1)/2*float32(viewport[2]),
		Y: float32(viewport[1]) + (ndcY+1)/2*float32(viewport[3]),
		Z: clip.Z,
	}
}

// Unproject implements prj2win's inverse: window pixel coordinates back to
// world (x,y,z), using the inverse of the composed projection*modelview.
func (s *Stack) Unproject(win glm.Vec, viewport [4]int32) glm.Vec {
	ndcX := (win.X-float32(viewport[0]))/float32(viewport[2])*2 - 1
	ndcY := (win.Y-float32(viewport[1]))/float32(viewport[3])*2 - 1
	inv := s.Combined().Inverse()
	return inv.MulVec4(glm.Vec{X: ndcX, Y: ndcY, Z: win.Z})
}

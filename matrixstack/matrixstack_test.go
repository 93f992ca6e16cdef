package matrixstack

import (
	"testing"

	"github.com/navchart/s52gl/glm"
)

func TestPushPopIdentityLaw(t *testing.T) {
	s := NewStack()
	s.SetMode(Modelview)
	s.Translate(glm.Vec{X: 5, Y: 5})
	before := s.Top()
	if err := s.Push(); err != nil {
		t.Fatal(err)
	}
	if err := s.Push(); err != nil {
		t.Fatal(err)
	}
	if err := s.Pop(); err != nil {
		t.Fatal(err)
	}
	if err := s.Pop(); err != nil {
		t.Fatal(err)
	}
	after := s.Top()
	if !glm.EqualMat4(before, after, 1e-6) {
		t.Fatalf("push;push;pop;pop should be identity, got %v vs %v", before, after)
	}
}

func TestPopUnderflow(t *testing.T) {
	s := NewStack()
	if err := s.Pop(); err != ErrStackUnderflow {
		t.Fatalf("expected underflow, got %v", err)
	}
}

func TestPushOverflow(t *testing.T) {
	s := NewStack()
	for i := 0; i < MinDepth-1; i++ {
		if err := s.Push(); err != nil {
			t.Fatalf("unexpected error at push %d: %v", i, err)
		}
	}
	if err := s.Push(); err != ErrStackOverflow {
		t.Fatalf("expected overflow, got %v", err)
	}
}

func TestModelviewIdentityFlag(t *testing.T) {
	s := NewStack()
	s.SetMode(Modelview)
	if !s.ModelviewIsIdentity() {
		t.Fatal("expected fresh stack to be identity")
	}
	s.Translate(glm.Vec{X: 1})
	if s.ModelviewIsIdentity() {
		t.Fatal("expected translate to clear identity flag")
	}
	s.LoadIdentity()
	if !s.ModelviewIsIdentity() {
		t.Fatal("expected load-identity to set identity flag")
	}
	s.Push()
	s.Pop()
	if s.ModelviewIsIdentity() {
		t.Fatal("expected pop to conservatively clear identity flag")
	}
}

package frame

import "testing"

func TestBeginDrawRequiresNone(t *testing.T) {
	l := NewLifecycle()
	if err := l.Begin(Draw); err != nil {
		t.Fatal(err)
	}
	if err := l.Begin(Draw); err != ErrCycleOutOfSync {
		t.Fatalf("expected out-of-sync re-entering DRAW, got %v", err)
	}
}

func TestEndWrongCycle(t *testing.T) {
	l := NewLifecycle()
	l.Begin(Draw)
	if err := l.End(Pick); err != ErrCycleOutOfSync {
		t.Fatalf("expected out-of-sync ending wrong cycle, got %v", err)
	}
}

func TestFullCycleNoAccumulatedState(t *testing.T) {
	l := NewLifecycle()
	if err := l.Begin(Pick); err != nil {
		t.Fatal(err)
	}
	if err := l.End(Pick); err != nil {
		t.Fatal(err)
	}
	if err := l.Begin(Draw); err != nil {
		t.Fatal(err)
	}
	if err := l.End(Draw); err != nil {
		t.Fatal(err)
	}
	if l.Current() != None {
		t.Fatalf("expected NONE after full cycle, got %v", l.Current())
	}
}

func TestLastAfterDraw(t *testing.T) {
	l := NewLifecycle()
	l.Begin(Draw)
	l.End(Draw)
	if err := l.Begin(Last); err != nil {
		t.Fatal(err)
	}
}

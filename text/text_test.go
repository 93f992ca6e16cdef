package text

import "testing"

func TestAtlasAllocNonOverlapping(t *testing.T) {
	a := NewAtlas()
	r1, ok := a.Alloc(10, 10)
	if !ok {
		t.Fatal("expected first alloc to succeed")
	}
	r2, ok := a.Alloc(10, 10)
	if !ok {
		t.Fatal("expected second alloc to succeed")
	}
	if overlap(r1, r2) {
		t.Fatalf("expected non-overlapping rects, got %v %v", r1, r2)
	}
}

func overlap(a, b Rect) bool {
	return a.X < b.X+b.W && b.X < a.X+a.W && a.Y < b.Y+b.H && b.Y < a.Y+a.H
}

func TestAtlasResetReclaims(t *testing.T) {
	a := NewAtlas()
	for i := 0; i < 40; i++ {
		if _, ok := a.Alloc(20, 20); !ok {
			break
		}
	}
	a.Reset()
	if _, ok := a.Alloc(20, 20); !ok {
		t.Fatal("expected alloc to succeed after reset")
	}
}

func TestLayoutProducesSixVerticesPerGlyph(t *testing.T) {
	m := NewManager()
	_, main := m.Layout("AB", LayoutOptions{Size: 13})
	if len(main) != 12 {
		t.Fatalf("expected 6 vertices per glyph for 2 glyphs, got %d", len(main))
	}
}

func TestLayoutDropShadowOffset(t *testing.T) {
	m := NewManager()
	shadow, main := m.Layout("A", LayoutOptions{Size: 13, DropShadow: true})
	if len(shadow) != 6 || len(main) != 6 {
		t.Fatalf("expected 6 vertices each, got shadow=%d main=%d", len(shadow), len(main))
	}
	if shadow[0].X == main[0].X && shadow[0].Y == main[0].Y {
		t.Fatal("expected shadow pass offset from main pass")
	}
}

func TestSuppressed(t *testing.T) {
	if !Suppressed(false, true) {
		t.Fatal("expected suppressed when SHOW_TEXT off")
	}
	if !Suppressed(true, false) {
		t.Fatal("expected suppressed when view group filtered")
	}
	if Suppressed(true, true) {
		t.Fatal("expected not suppressed")
	}
}

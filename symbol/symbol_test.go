package symbol

import "testing"

func TestCacheGetMissingOrDirty(t *testing.T) {
	c := NewCache()
	if _, ok := c.Get("BOYLAT23"); ok {
		t.Fatal("expected miss on empty cache")
	}
	c.Put(&Definition{Name: "BOYLAT23"})
	if _, ok := c.Get("BOYLAT23"); !ok {
		t.Fatal("expected hit after Put")
	}
	c.InvalidateAll()
	if _, ok := c.Get("BOYLAT23"); ok {
		t.Fatal("expected miss after InvalidateAll")
	}
}

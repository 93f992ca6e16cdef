package proj

import (
	"errors"
	"math"
	"testing"
)

func TestRoundTrip(t *testing.T) {
	var m Mercator
	if err := m.SetOrigin(46.8, -71.2); err != nil {
		t.Fatal(err)
	}
	cases := []struct{ lon, lat float64 }{
		{-71.2, 46.8}, {0, 0}, {-179.9, 84.9}, {179.9, -84.9}, {10, -10},
	}
	for _, c := range cases {
		x, y, err := m.Forward(c.lon, c.lat)
		if err != nil {
			t.Fatal(err)
		}
		lon, lat, err := m.Inverse(x, y)
		if err != nil {
			t.Fatal(err)
		}
		if math.Abs(lon-c.lon) > 1e-9 || math.Abs(lat-c.lat) > 1e-9 {
			t.Fatalf("round trip mismatch for (%v,%v): got (%v,%v)", c.lon, c.lat, lon, lat)
		}
	}
}

func TestSetOriginOnce(t *testing.T) {
	var m Mercator
	if err := m.SetOrigin(0, 0); err != nil {
		t.Fatal(err)
	}
	if err := m.SetOrigin(1, 1); !errors.Is(err, ErrAlreadySet) {
		t.Fatalf("expected ErrAlreadySet, got %v", err)
	}
}

func TestNotSet(t *testing.T) {
	var m Mercator
	if _, _, err := m.Forward(0, 0); !errors.Is(err, ErrNotSet) {
		t.Fatalf("expected ErrNotSet, got %v", err)
	}
	if err := m.ProjectNV(nil); !errors.Is(err, ErrNotSet) {
		t.Fatalf("expected ErrNotSet, got %v", err)
	}
}

package fraktaly

import (
	"sort"
	"testing"
)

func TestLandmarksAreValid(t *testing.T) {
	for _, name := range RegionNames() {
		r, err := RegionByName(name)
		if err != nil {
			t.Fatalf("RegionByName(%q): %v", name, err)
		}
		if err := r.Validate(); err != nil {
			t.Errorf("%s %v: %v", name, r, err)
		}
	}
}

func TestRegionByName(t *testing.T) {
	r, err := RegionByName("  Seahorse ")
	if err != nil {
		t.Fatal(err)
	}
	if r != SeahorseValley {
		t.Errorf("got %v, want %v", r, SeahorseValley)
	}
	if _, err := RegionByName("atlantis"); err == nil {
		t.Error("unknown region: want error")
	}
}

func TestRegionNamesSorted(t *testing.T) {
	names := RegionNames()
	if !sort.StringsAreSorted(names) {
		t.Errorf("names not sorted: %v", names)
	}
	if len(names) != len(namedRegions) {
		t.Errorf("got %d names, want %d", len(names), len(namedRegions))
	}
}

func TestDefaultRegionExtent(t *testing.T) {
	if w := DefaultRegion.Width(); w != 3.5 {
		t.Errorf("Width() = %g, want 3.5", w)
	}
	if h := DefaultRegion.Height(); h != 3 {
		t.Errorf("Height() = %g, want 3", h)
	}
}

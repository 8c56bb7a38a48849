package osu

import (
	"testing"
	"time"
)

func TestSubmitTimeForIDMonotonic(t *testing.T) {
	prev := submitTimeForID(1)
	for id := 10000; id <= MaxMapsetID; id += 10000 {
		at := submitTimeForID(id)
		if at.Before(prev) {
			t.Fatalf("id %d maps to %v, before the previous id's %v", id, at, prev)
		}
		prev = at
	}
}

func TestSubmitTimeForIDClamps(t *testing.T) {
	first := submitTimeForID(1)
	if got := submitTimeForID(-5); !got.Equal(first) {
		t.Errorf("below-range id: got %v, want %v", got, first)
	}
	last := submitTimeForID(MaxMapsetID)
	if got := submitTimeForID(MaxMapsetID + 100); !got.Equal(last) {
		t.Errorf("above-range id: got %v, want %v", got, last)
	}
}

func TestSubmitTimeForIDInterpolates(t *testing.T) {
	// Midway between two anchors must land strictly between their times.
	lo, hi := timeline[3], timeline[4]
	mid := submitTimeForID((lo.id + hi.id) / 2)
	if !mid.After(lo.at) || !mid.Before(hi.at) {
		t.Fatalf("midpoint %v outside (%v, %v)", mid, lo.at, hi.at)
	}
}

func TestSinceParamFormat(t *testing.T) {
	got := sinceParam(1)
	parsed, err := time.Parse(sinceLayout, got)
	if err != nil {
		t.Fatalf("sinceParam(1) = %q: %v", got, err)
	}
	if parsed.Year() != 2007 {
		t.Errorf("first mapset dated %v", parsed)
	}
}

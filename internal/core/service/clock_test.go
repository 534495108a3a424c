package service

import (
	"testing"
	"time"
)

func TestMonotonicClock_NeverGoesBackwards(t *testing.T) {
	base := time.Date(2026, 1, 15, 9, 30, 0, 0, time.FixedZone("IST", 5*3600+1800))
	steps := []time.Time{
		base,
		base.Add(-time.Hour),
		base.Add(time.Millisecond),
		base.Add(-time.Second),
	}
	i := 0
	clock := newMonotonicClock(func() time.Time {
		tick := steps[i]
		i++
		return tick
	})

	var prev time.Time
	for range steps {
		got := clock.Now()
		if got.Location() != time.UTC {
			t.Fatalf("expected UTC, got %v", got.Location())
		}
		if got.Before(prev) {
			t.Fatalf("clock went backwards: %v after %v", got, prev)
		}
		prev = got
	}
	if !prev.Equal(base.Add(time.Millisecond)) {
		t.Fatalf("expected latest instant to stick, got %v", prev)
	}
}

func TestMonotonicClock_DefaultsToWallClock(t *testing.T) {
	clock := newMonotonicClock(nil)
	before := time.Now().Add(-time.Second)
	if got := clock.Now(); got.Before(before) {
		t.Fatalf("unexpected instant %v", got)
	}
}

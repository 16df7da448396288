package main

import (
	"math/rand"
	"testing"

	"github.com/delliston/liftbank/lift"
)

func TestRiderFloorsFollowDirection(t *testing.T) {
	rnd := rand.New(rand.NewSource(1))
	for _, name := range []string{"up", "down"} {
		dir, err := lift.ParseDirection(name)
		if err != nil {
			t.Fatalf("ParseDirection(%q) error = %v", name, err)
		}
		for i := 0; i < 200; i++ {
			start, dest := riderFloors(rnd, 4, dir)
			if start.DirectionTo(dest) != dir {
				t.Fatalf("%s rider from %s to %s", name, start, dest)
			}
			if start < 0 || start > 3 || dest < 0 || dest > 3 {
				t.Fatalf("%s rider from %s to %s is outside the building", name, start, dest)
			}
		}
	}
}

func TestRiderFloorsAnyDirection(t *testing.T) {
	rnd := rand.New(rand.NewSource(1))
	for i := 0; i < 200; i++ {
		start, dest := riderFloors(rnd, 3, lift.NoDirection)
		if start < 0 || start > 2 || dest < 0 || dest > 2 {
			t.Fatalf("rider from %s to %s is outside the building", start, dest)
		}
	}
}

package lift

import (
	"testing"
)

func TestStopSetOrdering(t *testing.T) {
	for _, tc := range []struct {
		dir      Direction
		expected []Floor
	}{
		{Ascending, []Floor{1, 4, 9}},
		{Descending, []Floor{9, 4, 1}},
	} {
		ss := newStopSet(tc.dir)
		for _, f := range []Floor{4, 9, 1} {
			ss.addDestination(f)
		}
		if first, ok := ss.first(); !ok || first != tc.expected[0] {
			t.Errorf("%v: first() = %v, %v, expected %v", tc.dir, first, ok, tc.expected[0])
		}
		for i, s := range ss.ordered() {
			if s.Floor != tc.expected[i] {
				t.Errorf("%v: ordered()[%d] = %v, expected %v", tc.dir, i, s.Floor, tc.expected[i])
			}
		}
	}
}

func TestStopSetEmpty(t *testing.T) {
	ss := newStopSet(Ascending)
	if _, ok := ss.first(); ok {
		t.Errorf("first() on empty set reported a stop")
	}
	if ss.remove(3) {
		t.Errorf("remove() on empty set reported a removal")
	}
}

func TestStopSetPickups(t *testing.T) {
	ss := newStopSet(Ascending)
	if !ss.addDestination(5) || ss.addDestination(5) {
		t.Errorf("addDestination should only add a floor once")
	}

	req := NewServiceRequest(Ascending, 5)
	ss.addPickup(req)
	if ss.Len() != 1 {
		t.Errorf("Len() = %d, expected 1", ss.Len())
	}
	stop, ok := ss.pickupFor(req.ID)
	if !ok || stop.Floor != 5 || stop.Pickup.ID != req.ID {
		t.Errorf("pickupFor() = %v, %v", stop, ok)
	}
	if _, ok := ss.pickupFor(NewServiceRequest(Ascending, 5).ID); ok {
		t.Errorf("pickupFor() matched a foreign id")
	}
}

func TestStopSetRejectsNoDirection(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Errorf("newStopSet(NoDirection) did not panic")
		}
	}()
	newStopSet(NoDirection)
}

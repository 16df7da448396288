package lift

import (
	"errors"
	"testing"
)

func TestFloorAhead(t *testing.T) {
	cases := []struct {
		f, from  Floor
		dir      Direction
		expected bool
	}{
		{6, 2, Ascending, true},
		{2, 2, Ascending, false},
		{1, 2, Ascending, false},
		{1, 2, Descending, true},
		{2, 2, Descending, false},
		{3, 2, Descending, false},
		{3, 2, NoDirection, false},
	}
	for _, tc := range cases {
		if got := tc.f.ahead(tc.from, tc.dir); got != tc.expected {
			t.Errorf("Floor(%v).ahead(%v, %v) = %v, expected %v", tc.f, tc.from, tc.dir, got, tc.expected)
		}
	}
}

func TestFloorDirectionTo(t *testing.T) {
	if d := Floor(3).DirectionTo(7); d != Ascending {
		t.Errorf("3 -> 7 = %v", d)
	}
	if d := Floor(3).DirectionTo(0); d != Descending {
		t.Errorf("3 -> 0 = %v", d)
	}
	if d := Floor(3).DirectionTo(3); d != NoDirection {
		t.Errorf("3 -> 3 = %v", d)
	}
}

func TestParseDirection(t *testing.T) {
	for in, expected := range map[string]Direction{
		"ASCENDING":  Ascending,
		"descending": Descending,
		" up ":       Ascending,
		"Down":       Descending,
	} {
		got, err := ParseDirection(in)
		if err != nil || got != expected {
			t.Errorf("ParseDirection(%q) = %v, %v, expected %v", in, got, err, expected)
		}
	}
	if _, err := ParseDirection("sideways"); !errors.Is(err, ErrInvalidRequest) {
		t.Errorf("ParseDirection(sideways) error = %v, expected ErrInvalidRequest", err)
	}
}

func TestParseKindRoundTrip(t *testing.T) {
	for _, k := range []Kind{StandardKind, ExpressKind} {
		got, err := ParseKind(k.String())
		if err != nil || got != k {
			t.Errorf("ParseKind(%q) = %v, %v", k.String(), got, err)
		}
	}
	if _, err := ParseKind("PaternosterCar"); err == nil {
		t.Errorf("ParseKind(PaternosterCar) error = nil")
	}
}

func TestNewFloorsRequestIsASet(t *testing.T) {
	req := NewFloorsRequest(NewServiceRequest(Ascending, 0).ID, 8, 5, 8)
	floors := req.sortedFloors()
	if len(floors) != 2 || floors[0] != 5 || floors[1] != 8 {
		t.Errorf("sortedFloors() = %v, expected [5 8]", floors)
	}
}

func TestServiceRequestIDsAreUnique(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		id := NewServiceRequest(Ascending, 0).ID.String()
		if seen[id] {
			t.Fatalf("duplicate id %s", id)
		}
		seen[id] = true
	}
}

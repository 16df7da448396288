package lift

import (
	"fmt"
	"sort"

	"github.com/google/uuid"
)

// Stop is a floor a car must halt at. Pickup is set while a rider is waiting to
// board there, nil for a plain destination.
type Stop struct {
	Floor  Floor
	Pickup *ServiceRequest
}

func (s Stop) isPickup() bool { return s.Pickup != nil }

func (s Stop) String() string {
	if s.isPickup() {
		return fmt.Sprintf("%s(pickup %s)", s.Floor, s.Pickup.ID)
	}
	return fmt.Sprintf("%s(dest)", s.Floor)
}

// StopSet keeps the stops of one car, ordered by the direction it was created
// with: lowest first when ascending, highest first when descending.
// A floor appears at most once.
type StopSet struct {
	dir   Direction
	stops map[Floor]Stop
}

func newStopSet(dir Direction) *StopSet {
	if !dir.Valid() {
		panic(fmt.Sprintf("invalid direction for stop set: %s", dir))
	}
	return &StopSet{dir: dir, stops: make(map[Floor]Stop)}
}

func (ss *StopSet) Len() int { return len(ss.stops) }

func (ss *StopSet) has(floor Floor) bool {
	_, ok := ss.stops[floor]
	return ok
}

func (ss *StopSet) get(floor Floor) (Stop, bool) {
	s, ok := ss.stops[floor]
	return s, ok
}

// addPickup binds floor to req, replacing a plain destination at the same floor.
func (ss *StopSet) addPickup(req ServiceRequest) {
	r := req
	ss.stops[req.Origin] = Stop{Floor: req.Origin, Pickup: &r}
}

// addDestination returns false if the floor is already a stop.
func (ss *StopSet) addDestination(floor Floor) bool {
	if ss.has(floor) {
		return false
	}
	ss.stops[floor] = Stop{Floor: floor}
	return true
}

func (ss *StopSet) remove(floor Floor) bool {
	if !ss.has(floor) {
		return false
	}
	delete(ss.stops, floor)
	return true
}

// pickupFor finds the open pickup bound to id.
func (ss *StopSet) pickupFor(id uuid.UUID) (Stop, bool) {
	for _, s := range ss.stops {
		if s.isPickup() && s.Pickup.ID == id {
			return s, true
		}
	}
	return Stop{}, false
}

// first returns the extremum of the set under its ordering.
func (ss *StopSet) first() (Floor, bool) {
	var best Floor
	found := false
	for f := range ss.stops {
		if !found || f.ahead(best, -ss.dir) {
			best = f
			found = true
		}
	}
	return best, found
}

// ordered lists the stops in travel order.
func (ss *StopSet) ordered() []Stop {
	out := make([]Stop, 0, len(ss.stops))
	for _, s := range ss.stops {
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[j].Floor.ahead(out[i].Floor, ss.dir)
	})
	return out
}

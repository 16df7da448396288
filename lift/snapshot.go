package lift

import (
	"fmt"

	"github.com/tiendc/go-deepcopy"
)

// CarSnapshot is a copy of one car's state. It shares nothing with the car.
type CarSnapshot struct {
	ID        string
	Kind      Kind
	Floor     Floor
	Status    Status
	Direction Direction
	Stops     []Stop // in travel order
}

func (s CarSnapshot) String() string {
	return fmt.Sprintf("%s [%s] %s @%s %s stops=%v", s.ID, s.Kind, s.Status, s.Floor, s.Direction, s.Stops)
}

func (c *Car) snapshot() (CarSnapshot, error) {
	snap := CarSnapshot{
		ID:        c.id,
		Kind:      c.kind,
		Floor:     c.floor,
		Status:    c.status,
		Direction: c.dir,
	}
	if c.stops == nil {
		return snap, nil
	}
	if err := deepcopy.Copy(&snap.Stops, c.stops.ordered()); err != nil {
		return snap, fmt.Errorf("copying stops of %s: %w", c.id, err)
	}
	return snap, nil
}

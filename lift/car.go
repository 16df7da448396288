package lift

import (
	"fmt"
)

// A Conveyor (e.g., Car) accepts rider requests. Both calls may refuse:
// a refused service request must be routed elsewhere, a refused floors request
// means the conveyor holds no open pickup with that id.
type Conveyor interface {
	ID() string
	ProcessServiceRequest(req ServiceRequest) bool
	ProcessFloorsRequest(req FloorsRequest) bool
}

var _ Conveyor = (*Car)(nil)

// Car is the scheduling engine shared by every kind of car. The kind only
// changes which requests and destinations get admitted (see policy).
//
// Invariant: stops is nil and dir is NoDirection iff status == Available.
//
// A Car is not safe for concurrent use; the bank drives all of its cars from one
// worker. Instead of calling back into the bank, the car appends what happened
// (CarState, RiderCue) to its outbox, which the bank drains after each call.
type Car struct {
	id     string
	kind   Kind
	policy policy
	floor  Floor // Destination floor while Moving, else the floor the car is at.
	status Status
	dir    Direction
	stops  *StopSet
	paused bool // Waiting between two destinations, drive will resume us.
	drive  mover
	outbox []any
}

func newCar(id string, kind Kind, drive mover) *Car {
	return &Car{id: id, kind: kind, policy: policyFor(kind), status: Available, drive: drive}
}

func (c *Car) ID() string { return c.id }
func (c *Car) Kind() Kind { return c.kind }

func (c *Car) ProcessServiceRequest(req ServiceRequest) bool {
	if !c.policy.admits(c, req) {
		Logger.Info().Msgf("car: %s rejecting: %v", c.id, req)
		return false
	}

	if c.status == Available {
		Logger.Info().Msgf("car: %s accepting: %v", c.id, req)
		c.dir = req.Direction
		c.stops = newStopSet(req.Direction)
		c.stops.addPickup(req)
		c.moveToNext()
		return true
	}

	Logger.Info().Msgf("car: %s accepting: %v even though %s", c.id, req, c.status)
	c.stops.addPickup(req)
	return true
}

func (c *Car) ProcessFloorsRequest(req FloorsRequest) bool {
	if c.status == Available {
		return false
	}
	pickup, ok := c.stops.pickupFor(req.ServiceRequestID)
	if !ok {
		return false
	}

	Logger.Info().Msgf("car: %s received %v", c.id, req)
	c.stops.remove(pickup.Floor)
	for _, floor := range req.sortedFloors() {
		if !c.policy.acceptsDestination(c, floor) {
			Logger.Debug().Msgf("car: %s dropping floor %s", c.id, floor)
			continue
		}
		c.stops.addDestination(floor)
	}

	switch {
	case c.stops.Len() == 0:
		c.becomeAvailable()
	case c.paused:
		// The pending pause picks the next stop when it ends.
	case c.status == Moving && c.headingFor(c.floor):
		// Already on the way to the first stop.
	case c.status == Waiting && c.boarding():
		// The rider cued here has not chosen floors yet.
	default:
		c.moveToNext()
	}
	return true
}

// arrived runs when the drive reports the car at c.floor.
func (c *Car) arrived() {
	Logger.Info().Msgf("car: %s arrived at floor: %s", c.id, c.floor)
	stop, ok := c.stops.get(c.floor)
	if !ok {
		panic(&InvariantError{CarID: c.id, Msg: fmt.Sprintf("arrived at %s which is not a stop", c.floor)})
	}

	if stop.isPickup() {
		// need to wait for rider input
		c.changeStatus(Waiting)
		c.emit(RiderCue{Request: *stop.Pickup, CarID: c.id})
		return
	}

	// just letting people off
	c.stops.remove(c.floor)
	if c.stops.Len() == 0 {
		c.becomeAvailable()
		return
	}
	c.paused = true
	c.changeStatus(Waiting)
	c.drive.pause(func() {
		c.paused = false
		c.moveToNext()
	})
}

// headingFor reports whether floor is the first stop of the car.
func (c *Car) headingFor(floor Floor) bool {
	next, ok := c.stops.first()
	return ok && next == floor
}

// boarding reports whether the car stands at a pickup that is still open.
func (c *Car) boarding() bool {
	s, ok := c.stops.get(c.floor)
	return ok && s.isPickup()
}

func (c *Car) moveToNext() {
	next, ok := c.stops.first()
	if !ok {
		c.becomeAvailable()
		return
	}
	c.moveTo(next)
}

// moveTo "moves" the car: the floor changes now, the arrival comes after the
// travel time for the floors crossed.
func (c *Car) moveTo(floor Floor) {
	crossed := c.floor.distance(floor)
	c.floor = floor
	c.paused = false
	c.changeStatus(Moving)
	c.drive.travel(crossed, c.arrived)
}

func (c *Car) becomeAvailable() {
	c.drive.halt()
	c.stops = nil
	c.dir = NoDirection
	c.paused = false
	c.changeStatus(Available)
}

func (c *Car) changeStatus(s Status) {
	c.status = s
	c.emit(CarState{CarName: c.id, Status: s, Floor: c.floor})
}

func (c *Car) emit(signal any) {
	c.outbox = append(c.outbox, signal)
}

// takeSignals hands the outbox to the bank and clears it.
func (c *Car) takeSignals() []any {
	out := c.outbox
	c.outbox = nil
	return out
}

package lift

// policy is what distinguishes one kind of car from another.
type policy interface {
	// admits decides whether the car takes on req in its current state.
	admits(c *Car, req ServiceRequest) bool
	// acceptsDestination filters the floors of a floors request.
	acceptsDestination(c *Car, floor Floor) bool
}

func policyFor(k Kind) policy {
	switch k {
	case ExpressKind:
		return expressPolicy{}
	default:
		return standardPolicy{}
	}
}

// standardPolicy picks up anyone going its way: same direction, still ahead.
type standardPolicy struct{}

func (standardPolicy) admits(c *Car, req ServiceRequest) bool {
	if c.status == Available {
		return true
	}
	if req.Direction != c.dir || !req.Origin.ahead(c.floor, c.dir) {
		return false
	}
	// One open pickup per floor; a second rider there waits in the queue.
	if s, ok := c.stops.get(req.Origin); ok && s.isPickup() {
		return false
	}
	return true
}

func (standardPolicy) acceptsDestination(c *Car, floor Floor) bool {
	return floor.ahead(c.floor, c.dir) && !c.stops.has(floor)
}

// expressPolicy serves one rider at a time, wherever they want to go.
type expressPolicy struct{}

func (expressPolicy) admits(c *Car, _ ServiceRequest) bool {
	return c.status == Available
}

func (expressPolicy) acceptsDestination(c *Car, floor Floor) bool {
	return floor != c.floor && !c.stops.has(floor)
}

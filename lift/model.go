package lift

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/google/uuid"
)

// The floors start at zero
type Floor int

func (f Floor) String() string { return strconv.Itoa(int(f)) }

// ahead reports whether f lies strictly beyond from when travelling in dir.
// A floor is never ahead of itself.
func (f Floor) ahead(from Floor, dir Direction) bool {
	switch dir {
	case Ascending:
		return f > from
	case Descending:
		return f < from
	default:
		return false
	}
}

func (f Floor) DirectionTo(dest Floor) Direction {
	if f == dest {
		return NoDirection
	} else if dest > f {
		return Ascending
	} else {
		return Descending
	}
}

func (f Floor) distance(to Floor) int {
	if f > to {
		return int(f - to)
	}
	return int(to - f)
}

// Direction of travel. A car only has one while it is busy.
type Direction int

const (
	Ascending   Direction = 1
	NoDirection Direction = 0
	Descending  Direction = -1
)

func (d Direction) Valid() bool {
	return d == Ascending || d == Descending
}

func (d Direction) String() string {
	switch d {
	case Ascending:
		return "ASCENDING"
	case Descending:
		return "DESCENDING"
	case NoDirection:
		return "NONE"
	default:
		return fmt.Sprintf("Direction(%d)", int(d))
	}
}

// ParseDirection accepts the String() forms, case-insensitively, plus "up" and "down".
func ParseDirection(s string) (Direction, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "ASCENDING", "UP":
		return Ascending, nil
	case "DESCENDING", "DOWN":
		return Descending, nil
	}
	return NoDirection, fmt.Errorf("%w: unknown direction %q", ErrInvalidRequest, s)
}

// Status of a car as published in CarState events.
type Status int

const (
	Available Status = iota
	Moving
	Waiting
)

func (s Status) String() string {
	switch s {
	case Available:
		return "AVAILABLE"
	case Moving:
		return "MOVING"
	case Waiting:
		return "WAITING"
	default:
		return fmt.Sprintf("Status(%d)", int(s))
	}
}

// Kind selects the admission policy of a car.
type Kind int

const (
	StandardKind Kind = iota
	ExpressKind
)

func (k Kind) String() string {
	switch k {
	case StandardKind:
		return "StandardCar"
	case ExpressKind:
		return "ExpressCar"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// namePrefix is what car ids of this kind start with, e.g. "ECar 3".
func (k Kind) namePrefix() string {
	if k == ExpressKind {
		return "ECar"
	}
	return "Car"
}

// ParseKind maps a roster tag ("StandardCar", "ExpressCar") to a Kind.
func ParseKind(tag string) (Kind, error) {
	switch strings.TrimSpace(tag) {
	case "StandardCar":
		return StandardKind, nil
	case "ExpressCar":
		return ExpressKind, nil
	}
	return 0, fmt.Errorf("unknown car kind %q", tag)
}

// ServiceRequest is what happens when a rider pushes the call button on a floor.
type ServiceRequest struct {
	ID        uuid.UUID
	Direction Direction
	Origin    Floor
}

func NewServiceRequest(dir Direction, origin Floor) ServiceRequest {
	return ServiceRequest{ID: uuid.New(), Direction: dir, Origin: origin}
}

func (r ServiceRequest) String() string {
	return fmt.Sprintf("ServiceRequest(%s %s @%s)", r.ID, r.Direction, r.Origin)
}

// FloorsRequest carries the buttons a rider selected inside the car that answered
// ServiceRequestID.
type FloorsRequest struct {
	ServiceRequestID uuid.UUID
	Floors           map[Floor]struct{}
}

func NewFloorsRequest(id uuid.UUID, floors ...Floor) FloorsRequest {
	set := make(map[Floor]struct{}, len(floors))
	for _, f := range floors {
		set[f] = struct{}{}
	}
	return FloorsRequest{ServiceRequestID: id, Floors: set}
}

// sortedFloors returns the requested floors in ascending order so that
// processing does not depend on map iteration.
func (r FloorsRequest) sortedFloors() []Floor {
	floors := make([]Floor, 0, len(r.Floors))
	for f := range r.Floors {
		floors = append(floors, f)
	}
	sort.Slice(floors, func(i, j int) bool { return floors[i] < floors[j] })
	return floors
}

func (r FloorsRequest) String() string {
	return fmt.Sprintf("FloorsRequest(%s %v)", r.ServiceRequestID, r.sortedFloors())
}

// RiderCue tells a waiting rider which car has arrived for them.
type RiderCue struct {
	Request ServiceRequest
	CarID   string
}

func (c RiderCue) String() string {
	return fmt.Sprintf("RiderCue(%s for %s)", c.CarID, c.Request)
}

// CarState is published on every status transition.
type CarState struct {
	CarName string
	Status  Status
	Floor   Floor
}

func (s CarState) String() string {
	return fmt.Sprintf("CarState(%s %s @%s)", s.CarName, s.Status, s.Floor)
}

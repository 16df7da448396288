package lift

import (
	"errors"
	"fmt"
)

var (
	// ErrProtocolViolation is returned for a floors request whose service request
	// is not open on any car.
	ErrProtocolViolation = errors.New("protocol violation")
	ErrInvalidRequest    = errors.New("invalid request")
	ErrBankStopped       = errors.New("elevator bank stopped")
)

// InvariantError is the panic value for states the admission rules should make
// impossible, e.g. an idle car refusing a queued request.
type InvariantError struct {
	CarID string
	Msg   string
}

func (e *InvariantError) Error() string {
	return fmt.Sprintf("invariant violated on %s: %s", e.CarID, e.Msg)
}

package lift

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/delliston/liftbank/config"
	"github.com/delliston/liftbank/logger"
)

var Logger = logger.GetLogger()

const TaskChannelSize = 64

// moverFactory builds the drive of one car. post runs a task on the bank worker
// and drains the car's signals afterwards.
type moverFactory func(carID string, post func(task func()) bool) mover

// Bank owns a fixed roster of cars and the requests none of them would take.
//
// Every change to a car or to the pending queue happens on one worker goroutine.
// Ingress methods may be called from any goroutine; they hand their work to the
// worker and wait for the answer.
type Bank struct {
	name      string
	numFloors int
	cars      []*Car
	pending   []ServiceRequest // FIFO, worker only

	cues   registry[RiderCue]
	states registry[CarState]

	tasks    chan func()
	exited   chan struct{} // closed when mainLoop returns
	ctx      context.Context
	cancel   context.CancelFunc
	wg       sync.WaitGroup
	stopOnce sync.Once
}

// NewBank validates cfg, builds the roster in configured order and starts the
// worker. Cars are named "Car N" (standard) or "ECar N" (express), counting
// from 1 over the whole roster.
func NewBank(cfg config.Bank) (*Bank, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return newBank(cfg, func(carID string, post func(func()) bool) mover {
		return newTimedDriver(carID, cfg.PerFloorDuration, cfg.PauseDuration, post)
	})
}

func newBank(cfg config.Bank, newMover moverFactory) (*Bank, error) {
	if cfg.NumFloors < 0 {
		return nil, fmt.Errorf("%w: number of floors %d is negative", config.ErrInvalidConfig, cfg.NumFloors)
	}
	if len(cfg.Cars) == 0 {
		return nil, fmt.Errorf("%w: no cars configured", config.ErrInvalidConfig)
	}

	ctx, cancel := context.WithCancel(context.Background())
	b := &Bank{
		name:      cfg.Name,
		numFloors: cfg.NumFloors,
		tasks:     make(chan func(), TaskChannelSize),
		exited:    make(chan struct{}),
		ctx:       ctx,
		cancel:    cancel,
	}

	for i, tag := range cfg.Cars {
		kind, err := ParseKind(tag)
		if err != nil {
			cancel()
			return nil, fmt.Errorf("%w: car %d: %v", config.ErrInvalidConfig, i, err)
		}
		id := fmt.Sprintf("%s %d", kind.namePrefix(), i+1)
		car := newCar(id, kind, nil)
		car.drive = newMover(id, func(task func()) bool {
			return b.post(func() {
				task()
				b.drain(car)
			})
		})
		b.cars = append(b.cars, car)
	}

	b.wg.Add(1)
	go b.mainLoop()
	Logger.Info().Msgf("Bank %q started with %d floors and cars %v", b.name, b.numFloors, b.CarNames())
	return b, nil
}

func (b *Bank) Name() string   { return b.name }
func (b *Bank) NumFloors() int { return b.numFloors }

func (b *Bank) CarNames() []string {
	names := make([]string, len(b.cars))
	for i, c := range b.cars {
		names[i] = c.id
	}
	return names
}

func (b *Bank) mainLoop() {
	defer b.wg.Done()
	defer close(b.exited)
	for {
		select {
		case <-b.ctx.Done():
			return
		case task := <-b.tasks:
			if b.ctx.Err() != nil {
				return
			}
			task()
		}
	}
}

// Stop cancels every pending arrival and ends the worker. Nothing is published
// once Stop returns. Safe to call more than once.
func (b *Bank) Stop() {
	b.stopOnce.Do(func() {
		Logger.Debug().Msgf("Stopping bank %q", b.name)
		b.cancel()
		b.wg.Wait()
		for _, c := range b.cars {
			c.drive.halt()
		}
		Logger.Debug().Msgf("Stopped bank %q, %d requests left pending", b.name, len(b.pending))
	})
}

// Done is closed when the bank starts stopping.
func (b *Bank) Done() <-chan struct{} { return b.ctx.Done() }

// post queues task for the worker. It returns false once the bank is stopped.
func (b *Bank) post(task func()) bool {
	select {
	case <-b.ctx.Done():
		return false
	default:
	}
	select {
	case b.tasks <- task:
		return true
	case <-b.ctx.Done():
		return false
	}
}

// call runs fn on the worker and waits for its result. A task the worker has
// started always completes, so call only gives up once the worker is gone.
func (b *Bank) call(fn func() error) error {
	done := make(chan error, 1)
	if !b.post(func() { done <- fn() }) {
		return ErrBankStopped
	}
	select {
	case err := <-done:
		return err
	case <-b.exited:
		select {
		case err := <-done:
			return err
		default:
			return ErrBankStopped
		}
	}
}

// ProcessServiceRequest offers req to each car in roster order. If every car
// refuses, req waits in the pending queue for the next car that becomes
// available. A refusal is never an error.
func (b *Bank) ProcessServiceRequest(req ServiceRequest) error {
	if err := b.validateServiceRequest(req); err != nil {
		return err
	}
	return b.call(func() error {
		b.dispatch(req)
		return nil
	})
}

// ProcessFloorsRequest hands req to the car holding its open pickup. A request
// that no car recognizes is an ErrProtocolViolation.
func (b *Bank) ProcessFloorsRequest(req FloorsRequest) error {
	if err := b.validateFloorsRequest(req); err != nil {
		return err
	}
	return b.call(func() error {
		for _, c := range b.cars {
			if c.ProcessFloorsRequest(req) {
				b.drain(c)
				return nil
			}
		}
		return fmt.Errorf("%w: floors request for %s without matching service request", ErrProtocolViolation, req.ServiceRequestID)
	})
}

func (b *Bank) dispatch(req ServiceRequest) {
	for _, c := range b.cars {
		if c.ProcessServiceRequest(req) {
			b.drain(c)
			return
		}
	}
	b.pending = append(b.pending, req)
	Logger.Info().Msgf("Bank %q queued %v, %d pending", b.name, req, len(b.pending))
}

// drain publishes what c has signalled since the last drain. A car turning
// available pulls the oldest pending request before anything else runs.
func (b *Bank) drain(c *Car) {
	for {
		signals := c.takeSignals()
		if len(signals) == 0 {
			return
		}
		for _, signal := range signals {
			switch ev := signal.(type) {
			case CarState:
				b.states.broadcast(ev)
				if ev.Status == Available {
					b.dispatchPending(c)
				}
			case RiderCue:
				b.cues.broadcast(ev)
			default:
				panic(fmt.Sprintf("unknown car signal %T", signal))
			}
		}
	}
}

// dispatchPending is the idle hook: at most one queued request goes to c.
func (b *Bank) dispatchPending(c *Car) {
	if len(b.pending) == 0 || c.status != Available {
		return
	}
	req := b.pending[0]
	b.pending = b.pending[1:]
	Logger.Info().Msgf("Bank %q delivering queued %v to %s", b.name, req, c.id)
	if !c.ProcessServiceRequest(req) {
		panic(&InvariantError{CarID: c.id, Msg: fmt.Sprintf("available car refused queued %v", req)})
	}
}

// Pending reports how many service requests wait for a car.
func (b *Bank) Pending() (int, error) {
	n := 0
	err := b.call(func() error {
		n = len(b.pending)
		return nil
	})
	return n, err
}

// Snapshot copies the state of every car, in roster order.
func (b *Bank) Snapshot() ([]CarSnapshot, error) {
	var snaps []CarSnapshot
	err := b.call(func() error {
		snaps = make([]CarSnapshot, 0, len(b.cars))
		for _, c := range b.cars {
			s, err := c.snapshot()
			if err != nil {
				return err
			}
			snaps = append(snaps, s)
		}
		return nil
	})
	return snaps, err
}

// AddRiderCueListener registers l for every rider cue. The returned func
// unregisters it. Listeners run on the worker: they must not block, and must not
// call back into the bank synchronously.
func (b *Bank) AddRiderCueListener(l RiderCueListener) (remove func()) {
	return b.cues.add(l.HandleRiderCue)
}

func (b *Bank) AddCarStateListener(l CarStateListener) (remove func()) {
	return b.states.add(l.HandleCarState)
}

func (b *Bank) validateServiceRequest(req ServiceRequest) error {
	if !req.Direction.Valid() {
		return fmt.Errorf("%w: %v has no direction", ErrInvalidRequest, req)
	}
	if !b.validFloor(req.Origin) {
		return fmt.Errorf("%w: %v origin outside 0..%d", ErrInvalidRequest, req, b.numFloors-1)
	}
	return nil
}

func (b *Bank) validateFloorsRequest(req FloorsRequest) error {
	if len(req.Floors) == 0 {
		return fmt.Errorf("%w: %v selects no floors", ErrInvalidRequest, req)
	}
	for f := range req.Floors {
		if !b.validFloor(f) {
			return fmt.Errorf("%w: %v floor %s outside 0..%d", ErrInvalidRequest, req, f, b.numFloors-1)
		}
	}
	return nil
}

// validFloor bounds floors by the building when it has any floors configured.
func (b *Bank) validFloor(f Floor) bool {
	return f >= 0 && (b.numFloors == 0 || int(f) < b.numFloors)
}

// WaitIdle polls until every car is available and nothing is pending, or the
// timeout passes.
func (b *Bank) WaitIdle(timeout time.Duration, poll time.Duration) bool {
	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		idle := true
		err := b.call(func() error {
			if len(b.pending) > 0 {
				idle = false
				return nil
			}
			for _, c := range b.cars {
				if c.status != Available {
					idle = false
				}
			}
			return nil
		})
		if err != nil {
			return false
		}
		if idle {
			return true
		}
		time.Sleep(poll)
	}
	return false
}

package lift

import (
	"time"
)

// mover turns a car's travel and waiting into delayed callbacks. The car decides
// where to go; the mover only decides when the car gets there.
// A car has at most one outstanding callback: scheduling a new one drops the old.
type mover interface {
	travel(floors int, arrive func())
	pause(resume func())
	halt()
}

// timedDriver runs callbacks on a real timer and hands them back to the bank
// worker through post, so car state is never touched from the timer goroutine.
// All fields are owned by the worker.
type timedDriver struct {
	carID    string
	perFloor time.Duration
	wait     time.Duration
	post     func(task func()) bool
	timer    *time.Timer
	seq      uint64 // bumped on every schedule/halt, stale firings compare unequal
}

func newTimedDriver(carID string, perFloor, wait time.Duration, post func(func()) bool) *timedDriver {
	return &timedDriver{carID: carID, perFloor: perFloor, wait: wait, post: post}
}

func (d *timedDriver) travel(floors int, arrive func()) {
	Logger.Debug().Msgf("%s travelling %d floors", d.carID, floors)
	d.schedule(time.Duration(floors)*d.perFloor, arrive)
}

func (d *timedDriver) pause(resume func()) {
	d.schedule(d.wait, resume)
}

func (d *timedDriver) halt() {
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
	d.seq++
}

func (d *timedDriver) schedule(delay time.Duration, fn func()) {
	d.halt()
	seq := d.seq
	d.timer = time.AfterFunc(delay, func() {
		posted := d.post(func() {
			if seq != d.seq {
				return
			}
			d.timer = nil
			fn()
		})
		if !posted {
			Logger.Debug().Msgf("%s dropped timer callback, bank stopped", d.carID)
		}
	})
}

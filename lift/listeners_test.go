package lift

import (
	"sync"
	"testing"
)

func TestRegistryBroadcastUsesSnapshot(t *testing.T) {
	var r registry[int]
	var got []string

	var removeFirst func()
	removeFirst = r.add(func(v int) {
		got = append(got, "first")
		removeFirst()
		r.add(func(int) { got = append(got, "late") })
	})
	r.add(func(v int) { got = append(got, "second") })

	r.broadcast(1)
	if len(got) != 2 || got[0] != "first" || got[1] != "second" {
		t.Errorf("first broadcast reached %v, expected [first second]", got)
	}

	got = nil
	r.broadcast(2)
	if len(got) != 2 || got[0] != "second" || got[1] != "late" {
		t.Errorf("second broadcast reached %v, expected [second late]", got)
	}
}

func TestRegistryRemoveTwice(t *testing.T) {
	var r registry[string]
	remove := r.add(func(string) {})
	r.add(func(string) {})
	remove()
	remove()
	if n := len(r.snapshot()); n != 1 {
		t.Errorf("%d listeners registered, expected 1", n)
	}
}

func TestRegistryConcurrentUse(t *testing.T) {
	var r registry[int]
	var wg sync.WaitGroup
	for i := 0; i < 4; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			for j := 0; j < 200; j++ {
				remove := r.add(func(int) {})
				remove()
			}
		}()
		go func() {
			defer wg.Done()
			for j := 0; j < 200; j++ {
				r.broadcast(j)
			}
		}()
	}
	wg.Wait()
	if n := len(r.snapshot()); n != 0 {
		t.Errorf("%d listeners left after every listener was removed", n)
	}
}

func TestListenerFuncAdapters(t *testing.T) {
	var cue RiderCue
	var state CarState
	var l1 RiderCueListener = RiderCueListenerFunc(func(c RiderCue) { cue = c })
	var l2 CarStateListener = CarStateListenerFunc(func(s CarState) { state = s })

	l1.HandleRiderCue(RiderCue{CarID: "Car 1"})
	l2.HandleCarState(CarState{CarName: "Car 2", Status: Waiting})
	if cue.CarID != "Car 1" || state.CarName != "Car 2" || state.Status != Waiting {
		t.Errorf("adapters passed %v / %v", cue, state)
	}
}

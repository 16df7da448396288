package lift

import "sync"

type RiderCueListener interface {
	HandleRiderCue(cue RiderCue)
}

type RiderCueListenerFunc func(cue RiderCue)

func (f RiderCueListenerFunc) HandleRiderCue(cue RiderCue) { f(cue) }

type CarStateListener interface {
	HandleCarState(state CarState)
}

type CarStateListenerFunc func(state CarState)

func (f CarStateListenerFunc) HandleCarState(state CarState) { f(state) }

type subscription[T any] struct {
	id     uint64
	handle func(T)
}

// registry is a copy-on-write listener list: add and remove build a new slice,
// broadcast walks whichever slice was current when it started.
type registry[T any] struct {
	mu     sync.Mutex
	nextID uint64
	subs   []subscription[T]
}

func (r *registry[T]) add(handle func(T)) (remove func()) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	id := r.nextID
	subs := make([]subscription[T], len(r.subs), len(r.subs)+1)
	copy(subs, r.subs)
	r.subs = append(subs, subscription[T]{id: id, handle: handle})

	var once sync.Once
	return func() { once.Do(func() { r.remove(id) }) }
}

func (r *registry[T]) remove(id uint64) {
	r.mu.Lock()
	defer r.mu.Unlock()
	subs := make([]subscription[T], 0, len(r.subs))
	for _, s := range r.subs {
		if s.id != id {
			subs = append(subs, s)
		}
	}
	r.subs = subs
}

func (r *registry[T]) snapshot() []subscription[T] {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.subs
}

func (r *registry[T]) broadcast(event T) {
	for _, s := range r.snapshot() {
		s.handle(event)
	}
}

package subject

import (
	"github.com/ib-77/rx3/pkg/rx"
)

const defaultReplayCapacity = 100

// Replay caches the last capacity values and replays the whole window, in
// order, to a late joiner before switching it into the live registry.
type Replay[T any] struct {
	Subject[T]
	capacity int
	buffer   []T
}

// NewReplay builds a replay hub holding at most capacity values; a
// non-positive capacity falls back to the default of 100.
func NewReplay[T any](capacity int) *Replay[T] {
	if capacity <= 0 {
		capacity = defaultReplayCapacity
	}
	return &Replay[T]{
		capacity: capacity,
		buffer:   make([]T, 0, capacity),
	}
}

func (r *Replay[T]) OnNext(value T) {
	r.mu.Lock()
	if r.term != terminalNone {
		r.mu.Unlock()
		return
	}
	if len(r.buffer) == r.capacity {
		r.buffer = r.buffer[1:]
	}
	r.buffer = append(r.buffer, value)
	r.mu.Unlock()

	r.Subject.OnNext(value)
}

func (r *Replay[T]) Subscribe(actor rx.Actor[T]) rx.Subscription {
	r.mu.RLock()
	window := make([]T, len(r.buffer))
	copy(window, r.buffer)
	r.mu.RUnlock()

	for _, v := range window {
		if !rx.Alive(actor) {
			return rx.Unsubscribed()
		}
		actor.OnNext(v)
	}

	return r.Subject.Subscribe(actor)
}

// Window returns a copy of the cached history.
func (r *Replay[T]) Window() []T {
	r.mu.RLock()
	defer r.mu.RUnlock()
	window := make([]T, len(r.buffer))
	copy(window, r.buffer)
	return window
}

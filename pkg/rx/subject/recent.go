package subject

import (
	"github.com/ib-77/rx3/pkg/rx"
)

// Recent caches the latest emitted value and delivers it synchronously to a
// late joiner before switching it into the live registry. A terminated
// subject delivers the terminal event instead; when it terminated in error,
// that error reaches every late joiner again.
type Recent[T any] struct {
	Subject[T]
	hasValue bool
	value    T
}

func NewRecent[T any]() *Recent[T] {
	return &Recent[T]{}
}

// NewRecentWith seeds the cache, so the first joiner already receives a
// value.
func NewRecentWith[T any](initial T) *Recent[T] {
	r := &Recent[T]{}
	r.value = initial
	r.hasValue = true
	return r
}

func (r *Recent[T]) OnNext(value T) {
	r.mu.Lock()
	if r.term != terminalNone {
		r.mu.Unlock()
		return
	}
	r.value = value
	r.hasValue = true
	r.mu.Unlock()

	r.Subject.OnNext(value)
}

func (r *Recent[T]) Subscribe(actor rx.Actor[T]) rx.Subscription {
	r.mu.RLock()
	term := r.term
	err := r.err
	hasValue := r.hasValue
	value := r.value
	r.mu.RUnlock()

	switch term {
	case terminalError:
		actor.OnError(err)
		return rx.Unsubscribed()
	case terminalComplete:
		actor.OnComplete()
		return rx.Unsubscribed()
	}

	if hasValue {
		actor.OnNext(value)
	}
	return r.Subject.Subscribe(actor)
}

// Value returns the cached value, false when nothing was emitted yet.
func (r *Recent[T]) Value() (T, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.value, r.hasValue
}

package rx

import (
	"sync"
	"sync/atomic"

	"github.com/google/uuid"
)

const (
	stateLive int32 = iota
	stateTerminated
	stateUnsubscribed
)

// gate serializes the single terminal decision of one subscription: exactly
// one of {error, complete, unsubscribe} wins, everything after it is dropped.
type gate struct {
	state atomic.Int32
}

func (g *gate) alive() bool {
	return g.state.Load() == stateLive
}

func (g *gate) shut(to int32) bool {
	return g.state.CompareAndSwap(stateLive, to)
}

// guardedActor enforces the next* (error|complete)? grammar in front of the
// user sink and releases the upstream handle once a terminal event passed.
type guardedActor[T any] struct {
	g    *gate
	h    *handle
	down Actor[T]
}

func (a *guardedActor[T]) OnNext(value T) {
	if a.g.alive() {
		a.down.OnNext(value)
	}
}

func (a *guardedActor[T]) OnError(err error) {
	if a.g.shut(stateTerminated) {
		a.down.OnError(err)
		a.h.release()
	}
}

func (a *guardedActor[T]) OnComplete() {
	if a.g.shut(stateTerminated) {
		a.down.OnComplete()
		a.h.release()
	}
}

func (a *guardedActor[T]) Alive() bool {
	return a.g.alive()
}

// handle is the subscription returned by Subscribe. It closes the gate
// first, then releases the upstream subscription, so no event can overtake
// the disposal.
type handle struct {
	id uuid.UUID
	g  *gate

	mu       sync.Mutex
	up       Subscription
	released bool
}

func newHandle(g *gate) *handle {
	return &handle{
		id: uuid.New(),
		g:  g,
	}
}

func (h *handle) ID() uuid.UUID {
	return h.id
}

func (h *handle) IsSubscribed() bool {
	return h.g.alive()
}

func (h *handle) Unsubscribe() {
	if h.g.shut(stateUnsubscribed) {
		h.release()
	}
}

func (h *handle) release() {
	h.mu.Lock()
	if h.released {
		h.mu.Unlock()
		return
	}
	h.released = true
	up := h.up
	h.up = nil
	h.mu.Unlock()

	if up != nil {
		up.Unsubscribe()
	}
}

// attach hands the upstream subscription to the handle. When the gate was
// already shut during a synchronous subscribe run, the upstream is disposed
// on the spot.
func (h *handle) attach(up Subscription) {
	if up == nil {
		return
	}

	h.mu.Lock()
	if h.released {
		h.mu.Unlock()
		up.Unsubscribe()
		return
	}
	h.up = up
	h.mu.Unlock()
}

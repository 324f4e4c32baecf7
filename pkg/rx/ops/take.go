package ops

import (
	"sync"
	"sync/atomic"

	"github.com/ib-77/rx3/pkg/rx"
)

// Take forwards the first limit values, completes the sink, and releases the
// upstream subscription. A limit of zero or less completes immediately.
func Take[T any](source rx.Observable[T], limit int) rx.Observable[T] {
	return &takeObservable[T]{
		source: source,
		limit:  limit,
	}
}

type takeObservable[T any] struct {
	source rx.Observable[T]
	limit  int
}

func (o *takeObservable[T]) Subscribe(actor rx.Actor[T]) rx.Subscription {
	if o.limit <= 0 {
		actor.OnComplete()
		return rx.Unsubscribed()
	}

	ta := &takeActor[T]{
		down:      actor,
		remaining: o.limit,
	}
	ta.attach(o.source.Subscribe(ta))
	return rx.NewSubscription(ta.release)
}

type takeActor[T any] struct {
	down rx.Actor[T]

	mu        sync.Mutex
	remaining int
	finished  bool
	up        rx.Subscription

	done atomic.Bool
}

func (a *takeActor[T]) OnNext(v T) {
	a.mu.Lock()
	if a.finished {
		a.mu.Unlock()
		return
	}
	a.remaining--
	last := a.remaining == 0
	if last {
		a.finished = true
		a.done.Store(true)
	}
	a.mu.Unlock()

	a.down.OnNext(v)
	if last {
		a.down.OnComplete()
		a.release()
	}
}

func (a *takeActor[T]) OnError(err error) {
	if a.finish() {
		a.down.OnError(err)
	}
}

func (a *takeActor[T]) OnComplete() {
	if a.finish() {
		a.down.OnComplete()
	}
}

func (a *takeActor[T]) Alive() bool {
	return !a.done.Load()
}

func (a *takeActor[T]) finish() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.finished {
		return false
	}
	a.finished = true
	a.done.Store(true)
	return true
}

func (a *takeActor[T]) attach(up rx.Subscription) {
	a.mu.Lock()
	if a.finished {
		a.mu.Unlock()
		up.Unsubscribe()
		return
	}
	a.up = up
	a.mu.Unlock()
}

func (a *takeActor[T]) release() {
	a.mu.Lock()
	a.finished = true
	a.done.Store(true)
	up := a.up
	a.up = nil
	a.mu.Unlock()

	if up != nil {
		up.Unsubscribe()
	}
}

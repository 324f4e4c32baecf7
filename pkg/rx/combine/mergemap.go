package combine

import (
	"sync"

	"github.com/ib-77/rx3/pkg/rx"
)

// MergeMap projects every upstream value to an inner observable and
// flattens all inner streams into one output, in arrival order. The output
// completes once the upstream and every inner stream have completed. The
// first error from the upstream or any inner is delivered exactly once and
// disposes everything else.
func MergeMap[T, R any](source rx.Observable[T], project func(T) rx.Observable[R]) rx.Observable[R] {
	return rx.FuncObservable[R](func(actor rx.Actor[R]) rx.Subscription {
		m := &merger[T, R]{
			down:    actor,
			project: project,
			subs:    rx.Compose(),
		}
		m.subs.Add(source.Subscribe(&mergeOuter[T, R]{owner: m}))
		return m.subs
	})
}

// Merge flattens a fixed set of sources into one stream.
func Merge[T any](sources ...rx.Observable[T]) rx.Observable[T] {
	return MergeMap(rx.From(sources), func(source rx.Observable[T]) rx.Observable[T] {
		return source
	})
}

type merger[T, R any] struct {
	mu        sync.Mutex
	down      rx.Actor[R]
	project   func(T) rx.Observable[R]
	subs      *rx.CompositeSubscription
	active    int
	outerDone bool
	done      bool
}

func (m *merger[T, R]) spawn(value T) {
	m.mu.Lock()
	if m.done {
		m.mu.Unlock()
		return
	}
	m.active++
	m.mu.Unlock()

	in := &mergeInner[T, R]{owner: m}
	sub := m.project(value).Subscribe(in)
	if sub.IsSubscribed() {
		m.subs.Add(sub)
		m.mu.Lock()
		in.sub = sub
		m.mu.Unlock()
	}
}

func (m *merger[T, R]) relay(value R) {
	m.mu.Lock()
	if !m.done {
		m.down.OnNext(value)
	}
	m.mu.Unlock()
}

func (m *merger[T, R]) fail(err error) {
	m.mu.Lock()
	if m.done {
		m.mu.Unlock()
		return
	}
	m.done = true
	m.down.OnError(err)
	m.mu.Unlock()

	m.subs.Unsubscribe()
}

func (m *merger[T, R]) innerComplete(in *mergeInner[T, R]) {
	m.mu.Lock()
	if m.done {
		m.mu.Unlock()
		return
	}
	m.active--
	sub := in.sub
	m.finishLocked()
	m.mu.Unlock()

	// A completed inner holds no resources; dropping its handle keeps the
	// tracked set bounded by the number of live inners.
	if sub != nil {
		m.subs.Remove(sub)
	}
}

func (m *merger[T, R]) outerComplete() {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.done {
		return
	}
	m.outerDone = true
	m.finishLocked()
}

func (m *merger[T, R]) finishLocked() {
	if m.outerDone && m.active == 0 {
		m.done = true
		m.down.OnComplete()
	}
}

func (m *merger[T, R]) finished() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.done
}

type mergeOuter[T, R any] struct {
	owner *merger[T, R]
}

func (o *mergeOuter[T, R]) OnNext(value T)    { o.owner.spawn(value) }
func (o *mergeOuter[T, R]) OnError(err error) { o.owner.fail(err) }
func (o *mergeOuter[T, R]) OnComplete()       { o.owner.outerComplete() }

func (o *mergeOuter[T, R]) Alive() bool {
	return !o.owner.finished() && rx.Alive(o.owner.down)
}

type mergeInner[T, R any] struct {
	owner *merger[T, R]
	sub   rx.Subscription // guarded by owner.mu; nil until tracked
}

func (i *mergeInner[T, R]) OnNext(value R)    { i.owner.relay(value) }
func (i *mergeInner[T, R]) OnError(err error) { i.owner.fail(err) }
func (i *mergeInner[T, R]) OnComplete()       { i.owner.innerComplete(i) }

func (i *mergeInner[T, R]) Alive() bool {
	return !i.owner.finished() && rx.Alive(i.owner.down)
}

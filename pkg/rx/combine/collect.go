package combine

import (
	"sync"

	"github.com/ib-77/rx3/pkg/rx"
)

// CollectLatest combines sources into a stream of snapshots: one slot per
// source, and every time a source updates its slot after all slots hold a
// value, the current combination is emitted as a fresh slice.
//
// A source completing after it produced a value freezes its slot at the
// latest value. A source completing without ever producing one makes the
// combination impossible, so the output completes immediately. The output
// completes once every source has completed, and errors as soon as any
// source errors. An empty source list completes at once.
func CollectLatest[T any](sources []rx.Observable[T]) rx.Observable[[]T] {
	return CollectLatestWith(sources, func(values []T) []T { return values })
}

// CollectLatestWith is CollectLatest with a mapping step: every ready
// combination is passed through project and the result is emitted instead of
// the raw snapshot. project runs under the combination lock, so it must not
// block or re-enter the stream.
func CollectLatestWith[T, R any](sources []rx.Observable[T], project func([]T) R) rx.Observable[R] {
	return rx.FuncObservable[R](func(actor rx.Actor[R]) rx.Subscription {
		if len(sources) == 0 {
			actor.OnComplete()
			return rx.Unsubscribed()
		}

		c := &collector[T, R]{
			down:    actor,
			project: project,
			slots:   make([]slot[T], len(sources)),
			subs:    rx.Compose(),
		}

		for i, source := range sources {
			if c.finished() {
				break
			}
			c.subs.Add(source.Subscribe(&slotActor[T, R]{owner: c, index: i}))
		}

		return c.subs
	})
}

type slot[T any] struct {
	value     T
	hasValue  bool
	completed bool
}

// collector owns the slot table. All slot mutation and downstream delivery
// happen under mu, so concurrently emitting sources are serialized and the
// sink never sees a half-updated combination.
type collector[T, R any] struct {
	mu      sync.Mutex
	down    rx.Actor[R]
	project func([]T) R
	slots   []slot[T]
	done    bool
	subs    *rx.CompositeSubscription
}

func (c *collector[T, R]) next(index int, value T) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.done {
		return
	}

	s := &c.slots[index]
	s.value = value
	s.hasValue = true

	if c.readyLocked() {
		c.down.OnNext(c.project(c.snapshotLocked()))
	}
}

func (c *collector[T, R]) fail(err error) {
	c.mu.Lock()
	if c.done {
		c.mu.Unlock()
		return
	}
	c.done = true
	c.down.OnError(err)
	c.mu.Unlock()

	c.subs.Unsubscribe()
}

func (c *collector[T, R]) complete(index int) {
	c.mu.Lock()
	if c.done {
		c.mu.Unlock()
		return
	}

	s := &c.slots[index]
	s.completed = true

	// a slot completing empty can never be filled, so the combination
	// can never fire again
	if !s.hasValue || c.allCompletedLocked() {
		c.done = true
		c.down.OnComplete()
		c.mu.Unlock()
		c.subs.Unsubscribe()
		return
	}
	c.mu.Unlock()
}

func (c *collector[T, R]) finished() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.done
}

func (c *collector[T, R]) readyLocked() bool {
	for i := range c.slots {
		if !c.slots[i].hasValue {
			return false
		}
	}
	return true
}

func (c *collector[T, R]) allCompletedLocked() bool {
	for i := range c.slots {
		if !c.slots[i].completed {
			return false
		}
	}
	return true
}

func (c *collector[T, R]) snapshotLocked() []T {
	values := make([]T, len(c.slots))
	for i := range c.slots {
		values[i] = c.slots[i].value
	}
	return values
}

type slotActor[T, R any] struct {
	owner *collector[T, R]
	index int
}

func (a *slotActor[T, R]) OnNext(value T)    { a.owner.next(a.index, value) }
func (a *slotActor[T, R]) OnError(err error) { a.owner.fail(err) }
func (a *slotActor[T, R]) OnComplete()       { a.owner.complete(a.index) }

// Alive lets synchronous sources stop emitting once the combination
// reached its terminal or its own sink went away.
func (a *slotActor[T, R]) Alive() bool {
	return !a.owner.finished() && rx.Alive(a.owner.down)
}

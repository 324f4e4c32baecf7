package combine

import (
	"sync"

	"github.com/ib-77/rx3/pkg/rx"
)

// SwitchMap projects every upstream value to an inner observable and keeps
// only the most recent inner subscribed: each new upstream value cancels
// the previous inner before the next one starts, and events from a
// superseded inner are discarded. The output completes once the upstream
// has completed and the last inner finished; it errors when the upstream
// or the current inner errors.
func SwitchMap[T, R any](source rx.Observable[T], project func(T) rx.Observable[R]) rx.Observable[R] {
	return rx.FuncObservable[R](func(actor rx.Actor[R]) rx.Subscription {
		s := &switcher[T, R]{
			down:    actor,
			project: project,
			subs:    rx.Compose(),
		}
		s.subs.Add(source.Subscribe(&switchOuter[T, R]{owner: s}))
		return s.subs
	})
}

// switcher owns the generation counter and the current inner handle. Slot
// mutation and downstream delivery happen under mu; disposal goes through
// subs, which has its own lock, so a terminal delivered under mu can
// release the whole subscription without re-entering mu.
type switcher[T, R any] struct {
	mu         sync.Mutex
	down       rx.Actor[R]
	project    func(T) rx.Observable[R]
	subs       *rx.CompositeSubscription
	generation int
	inner      rx.Subscription
	innerLive  bool
	outerDone  bool
	done       bool
}

// swap retires the previous inner and subscribes the one projected from
// value. The generation counter decides which inner is current; events
// carrying a stale generation are dropped.
func (s *switcher[T, R]) swap(value T) {
	s.mu.Lock()
	if s.done {
		s.mu.Unlock()
		return
	}
	s.generation++
	generation := s.generation
	s.innerLive = true
	prev := s.inner
	s.inner = nil
	s.mu.Unlock()

	if prev != nil {
		s.subs.Remove(prev)
		prev.Unsubscribe()
	}

	sub := s.project(value).Subscribe(&switchInner[T, R]{owner: s, generation: generation})

	s.mu.Lock()
	stale := s.done || s.generation != generation || !s.innerLive
	if !stale {
		s.inner = sub
	}
	s.mu.Unlock()

	if stale {
		sub.Unsubscribe()
		return
	}
	s.subs.Add(sub)
}

func (s *switcher[T, R]) innerNext(generation int, value R) {
	s.mu.Lock()
	if !s.done && s.generation == generation {
		s.down.OnNext(value)
	}
	s.mu.Unlock()
}

func (s *switcher[T, R]) innerDone(generation int) {
	s.mu.Lock()
	if s.done || s.generation != generation {
		s.mu.Unlock()
		return
	}
	s.innerLive = false
	prev := s.inner
	s.inner = nil
	finished := s.outerDone
	if finished {
		s.done = true
		s.down.OnComplete()
	}
	s.mu.Unlock()

	if prev != nil {
		s.subs.Remove(prev)
	}
	if finished {
		s.subs.Unsubscribe()
	}
}

func (s *switcher[T, R]) innerFail(generation int, err error) {
	s.mu.Lock()
	if s.done || s.generation != generation {
		s.mu.Unlock()
		return
	}
	s.done = true
	s.down.OnError(err)
	s.mu.Unlock()

	s.subs.Unsubscribe()
}

func (s *switcher[T, R]) outerComplete() {
	s.mu.Lock()
	if s.done {
		s.mu.Unlock()
		return
	}
	s.outerDone = true
	finished := !s.innerLive
	if finished {
		s.done = true
		s.down.OnComplete()
	}
	s.mu.Unlock()

	if finished {
		s.subs.Unsubscribe()
	}
}

func (s *switcher[T, R]) outerFail(err error) {
	s.mu.Lock()
	if s.done {
		s.mu.Unlock()
		return
	}
	s.done = true
	s.down.OnError(err)
	s.mu.Unlock()

	s.subs.Unsubscribe()
}

func (s *switcher[T, R]) finished() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.done
}

func (s *switcher[T, R]) currentGeneration() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.generation
}

type switchOuter[T, R any] struct {
	owner *switcher[T, R]
}

func (o *switchOuter[T, R]) OnNext(value T)    { o.owner.swap(value) }
func (o *switchOuter[T, R]) OnError(err error) { o.owner.outerFail(err) }
func (o *switchOuter[T, R]) OnComplete()       { o.owner.outerComplete() }

func (o *switchOuter[T, R]) Alive() bool {
	return !o.owner.finished() && rx.Alive(o.owner.down)
}

type switchInner[T, R any] struct {
	owner      *switcher[T, R]
	generation int
}

func (i *switchInner[T, R]) OnNext(value R)    { i.owner.innerNext(i.generation, value) }
func (i *switchInner[T, R]) OnError(err error) { i.owner.innerFail(i.generation, err) }
func (i *switchInner[T, R]) OnComplete()       { i.owner.innerDone(i.generation) }

func (i *switchInner[T, R]) Alive() bool {
	return !i.owner.finished() && i.owner.currentGeneration() == i.generation && rx.Alive(i.owner.down)
}

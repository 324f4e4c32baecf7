package bridge

import (
	"sync"
	"time"

	"gopkg.in/tomb.v2"

	"github.com/ib-77/rx3/pkg/rx"
)

// Delay returns a proxy that shifts every event of the stream by wait.
// Events are appended to an unbounded FIFO queue as they arrive; a worker
// goroutine sleeps for wait before taking each one off the queue and
// delivering it downstream. Order is preserved, including the terminal
// event. Unsubscribing kills the worker and drops whatever is still
// queued.
func Delay[T any](wait time.Duration) rx.Proxy[T, T] {
	return rx.Proxy[T, T]{
		WrapActor: func(down rx.Actor[T]) (rx.Actor[T], rx.Subscription) {
			q := &delayQueue[T]{
				notify: make(chan struct{}, 1),
				life:   new(tomb.Tomb),
				down:   down,
				wait:   wait,
			}
			q.life.Go(q.run)

			return q, rx.NewSubscription(func() {
				q.life.Kill(nil)
			})
		},
	}
}

type delayQueue[T any] struct {
	mu     sync.Mutex
	items  []rx.Event[T]
	notify chan struct{}
	life   *tomb.Tomb
	down   rx.Actor[T]
	wait   time.Duration
}

func (q *delayQueue[T]) OnNext(value T)    { q.enqueue(rx.Next(value)) }
func (q *delayQueue[T]) OnError(err error) { q.enqueue(rx.Fail[T](err)) }
func (q *delayQueue[T]) OnComplete()       { q.enqueue(rx.Complete[T]()) }

// Alive reports whether the worker still drains the queue, letting
// synchronous sources stop emitting once the bridge is torn down.
func (q *delayQueue[T]) Alive() bool {
	return q.life.Alive()
}

func (q *delayQueue[T]) enqueue(ev rx.Event[T]) {
	q.mu.Lock()
	q.items = append(q.items, ev)
	q.mu.Unlock()

	select {
	case q.notify <- struct{}{}:
	default:
	}
}

func (q *delayQueue[T]) run() error {
	for {
		if !q.await() {
			return nil
		}
		if !q.pause() {
			return nil
		}

		ev, ok := q.dequeue()
		if !ok {
			continue
		}

		ev.Deliver(q.down)
		if ev.IsTerminal() {
			return nil
		}
	}
}

// await blocks until the queue holds at least one event or the bridge is
// being torn down.
func (q *delayQueue[T]) await() bool {
	for {
		q.mu.Lock()
		ready := len(q.items) > 0
		q.mu.Unlock()

		if ready {
			return true
		}

		select {
		case <-q.notify:
		case <-q.life.Dying():
			return false
		}
	}
}

// pause sleeps for the configured delay, aborting early on teardown.
func (q *delayQueue[T]) pause() bool {
	timer := time.NewTimer(q.wait)
	defer timer.Stop()

	select {
	case <-timer.C:
		return true
	case <-q.life.Dying():
		return false
	}
}

func (q *delayQueue[T]) dequeue() (rx.Event[T], bool) {
	q.mu.Lock()
	defer q.mu.Unlock()

	if len(q.items) == 0 {
		var zero rx.Event[T]
		return zero, false
	}

	ev := q.items[0]
	q.items = q.items[1:]
	return ev, true
}

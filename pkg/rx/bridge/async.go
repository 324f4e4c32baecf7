package bridge

import (
	"gopkg.in/tomb.v2"

	"github.com/ib-77/rx3/pkg/rx"
)

// Async returns a proxy that delivers events on a dedicated worker
// goroutine. The hand-off slot holds a single event: the producer blocks
// on the second emission until the worker has taken the first, so a slow
// consumer exerts backpressure on the source instead of growing a buffer.
// Unsubscribing releases a blocked producer; the event it was holding is
// dropped.
func Async[T any]() rx.Proxy[T, T] {
	return rx.Proxy[T, T]{
		WrapActor: func(down rx.Actor[T]) (rx.Actor[T], rx.Subscription) {
			h := &handoff[T]{
				slot: make(chan rx.Event[T], 1),
				life: new(tomb.Tomb),
				down: down,
			}
			h.life.Go(h.run)

			return h, rx.NewSubscription(func() {
				h.life.Kill(nil)
			})
		},
	}
}

type handoff[T any] struct {
	slot chan rx.Event[T]
	life *tomb.Tomb
	down rx.Actor[T]
}

func (h *handoff[T]) OnNext(value T)    { h.push(rx.Next(value)) }
func (h *handoff[T]) OnError(err error) { h.push(rx.Fail[T](err)) }
func (h *handoff[T]) OnComplete()       { h.push(rx.Complete[T]()) }

func (h *handoff[T]) Alive() bool {
	return h.life.Alive()
}

// push blocks until the worker frees the slot or the bridge dies.
func (h *handoff[T]) push(ev rx.Event[T]) {
	select {
	case h.slot <- ev:
	case <-h.life.Dying():
	}
}

func (h *handoff[T]) run() error {
	for {
		select {
		case ev := <-h.slot:
			ev.Deliver(h.down)
			if ev.IsTerminal() {
				return nil
			}
		case <-h.life.Dying():
			return nil
		}
	}
}

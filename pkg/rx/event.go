package rx

import "fmt"

type EventKind int

const (
	KindNext EventKind = iota
	KindError
	KindComplete
)

func (k EventKind) String() string {
	switch k {
	case KindNext:
		return "next"
	case KindError:
		return "error"
	case KindComplete:
		return "complete"
	default:
		return "unknown"
	}
}

// Event is one tagged message of a stream: a value, a terminal error or a
// terminal completion. Bridges queue events; everything else delivers them
// directly through Actor methods.
type Event[T any] struct {
	kind  EventKind
	value T
	err   error
}

func Next[T any](value T) Event[T] {
	return Event[T]{
		kind:  KindNext,
		value: value,
	}
}

func Fail[T any](err error) Event[T] {
	return Event[T]{
		kind: KindError,
		err:  err,
	}
}

func Complete[T any]() Event[T] {
	return Event[T]{
		kind: KindComplete,
	}
}

func (e Event[T]) Kind() EventKind {
	return e.kind
}

func (e Event[T]) Value() T {
	return e.value
}

func (e Event[T]) Err() error {
	return e.err
}

func (e Event[T]) IsNext() bool {
	return e.kind == KindNext
}

func (e Event[T]) IsError() bool {
	return e.kind == KindError
}

func (e Event[T]) IsComplete() bool {
	return e.kind == KindComplete
}

func (e Event[T]) IsTerminal() bool {
	return e.kind != KindNext
}

// Deliver routes the event to the matching actor method.
func (e Event[T]) Deliver(actor Actor[T]) {
	switch e.kind {
	case KindNext:
		actor.OnNext(e.value)
	case KindError:
		actor.OnError(e.err)
	case KindComplete:
		actor.OnComplete()
	}
}

func (e Event[T]) String() string {
	switch e.kind {
	case KindNext:
		return fmt.Sprintf("next(%v)", e.value)
	case KindError:
		return fmt.Sprintf("error(%v)", e.err)
	default:
		return "complete"
	}
}

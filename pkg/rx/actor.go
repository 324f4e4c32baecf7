package rx

// Actor receives a stream: zero or more OnNext calls followed by at most one
// OnError or OnComplete.
type Actor[T any] interface {
	OnNext(value T)
	OnError(err error)
	OnComplete()
}

// NewActor builds an actor from callbacks. Nil callbacks mean the matching
// event kind is received and ignored.
func NewActor[T any](onNext func(value T), onError func(err error), onComplete func()) Actor[T] {
	return &callbackActor[T]{
		next: onNext,
		fail: onError,
		done: onComplete,
	}
}

type callbackActor[T any] struct {
	next func(value T)
	fail func(err error)
	done func()
}

func (a *callbackActor[T]) OnNext(value T) {
	if a.next != nil {
		a.next(value)
	}
}

func (a *callbackActor[T]) OnError(err error) {
	if a.fail != nil {
		a.fail(err)
	}
}

func (a *callbackActor[T]) OnComplete() {
	if a.done != nil {
		a.done()
	}
}

type invalidActor[T any] struct{}

func (invalidActor[T]) OnNext(T) {
	panic(&ContractError{Op: "next", Reason: "sink accepts no event kind"})
}

func (invalidActor[T]) OnError(error) {
	panic(&ContractError{Op: "error", Reason: "sink accepts no event kind"})
}

func (invalidActor[T]) OnComplete() {
	panic(&ContractError{Op: "complete", Reason: "sink accepts no event kind"})
}

// Probe is implemented by actors that can report whether events still reach
// a sink. Synchronous emission loops use it to stop early once a downstream
// subscription was torn down or terminated.
type Probe interface {
	Alive() bool
}

// Alive reports the probe state of an actor, true when the actor does not
// expose one.
func Alive(candidate any) bool {
	if p, ok := candidate.(Probe); ok {
		return p.Alive()
	}
	return true
}

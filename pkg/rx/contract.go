package rx

import "fmt"

// Capability states which event kinds a sink accepts for a given element
// type. It is resolved once when the sink is wired, never per event.
type Capability int

const (
	CapInvalid Capability = iota
	CapBase
	CapNextOnly
	CapErrorOnly
	CapCompleteOnly
)

func (c Capability) String() string {
	switch c {
	case CapBase:
		return "base"
	case CapNextOnly:
		return "next-only"
	case CapErrorOnly:
		return "error-only"
	case CapCompleteOnly:
		return "complete-only"
	default:
		return "invalid"
	}
}

// NextHandler accepts value events of element type T.
type NextHandler[T any] interface {
	OnNext(value T)
}

// ErrorHandler accepts the terminal error event.
type ErrorHandler interface {
	OnError(err error)
}

// CompleteHandler accepts the terminal completion event.
type CompleteHandler interface {
	OnComplete()
}

// ContractError reports a wiring defect: a sink that cannot act for the
// element type, or a proxy composed against its declared types. It is raised
// by panic at the violation point and is never sent as a stream error.
type ContractError struct {
	Op     string
	Reason string
}

func (e *ContractError) Error() string {
	return fmt.Sprintf("rx contract: %s: %s", e.Op, e.Reason)
}

// Classify determines how a candidate sink can be used for element type T.
//
// A full Actor[T] classifies as CapBase. Bare functions classify by shape:
// func(T) is next-only, func(error) error-only, func() complete-only (for
// T == error the value shape wins). Values implementing two of the three
// handler interfaces classify as CapBase with the missing kind ignored on
// delivery. Anything else, including a handler for a different element type,
// is CapInvalid.
func Classify[T any](candidate any) Capability {
	if candidate == nil {
		return CapInvalid
	}

	switch candidate.(type) {
	case Actor[T]:
		return CapBase
	case func(T):
		return CapNextOnly
	case func(error):
		return CapErrorOnly
	case func():
		return CapCompleteOnly
	}

	_, next := candidate.(NextHandler[T])
	_, fail := candidate.(ErrorHandler)
	_, done := candidate.(CompleteHandler)

	switch {
	case next && (fail || done), fail && done:
		return CapBase
	case next:
		return CapNextOnly
	case fail:
		return CapErrorOnly
	case done:
		return CapCompleteOnly
	default:
		return CapInvalid
	}
}

// AsActor adapts a classified candidate into a full actor. Event kinds the
// candidate does not accept are received and ignored. A CapInvalid candidate
// yields an actor whose every method panics with *ContractError.
func AsActor[T any](candidate any) (Actor[T], Capability) {
	capability := Classify[T](candidate)

	switch capability {
	case CapInvalid:
		return invalidActor[T]{}, CapInvalid
	case CapBase:
		if full, ok := candidate.(Actor[T]); ok {
			return full, CapBase
		}
	}

	adapted := &callbackActor[T]{}

	switch f := candidate.(type) {
	case func(T):
		adapted.next = f
	case func(error):
		adapted.fail = f
	case func():
		adapted.done = f
	default:
		if h, ok := candidate.(NextHandler[T]); ok {
			adapted.next = h.OnNext
		}
		if h, ok := candidate.(ErrorHandler); ok {
			adapted.fail = h.OnError
		}
		if h, ok := candidate.(CompleteHandler); ok {
			adapted.done = h.OnComplete
		}
	}

	return adapted, capability
}

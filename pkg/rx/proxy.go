package rx

import "reflect"

// Proxy is the descriptor one operator application carries: up to two
// wrapping functions instantiated per subscription.
//
// WrapActor turns the downstream actor into the upstream-facing actor that
// performs the transform. It may return an extra Subscription carrying
// teardown for machinery the wrap started; nil means no machinery.
//
// WrapSource wraps the upstream source with element-preserving machinery
// (queues, timers, inner-subscription sets) before it is subscribed.
type Proxy[In, Out any] struct {
	WrapActor  func(down Actor[Out]) (Actor[In], Subscription)
	WrapSource func(source Observable[In]) Observable[In]
}

// Apply builds the operator's output observable. At subscribe time the two
// steps run in fixed order: wrap the actor first, then subscribe the
// (possibly wrapped) source with it, so machinery needing both ends is
// constructed exactly once per subscription. A proxy without an actor wrap
// cannot change the element type; Apply panics with *ContractError when the
// declared types differ.
func Apply[In, Out any](source Observable[In], proxy Proxy[In, Out]) Observable[Out] {
	if proxy.WrapActor == nil && reflect.TypeFor[In]() != reflect.TypeFor[Out]() {
		panic(&ContractError{
			Op:     "apply",
			Reason: "source-only proxy must preserve the element type",
		})
	}

	return FuncObservable[Out](func(down Actor[Out]) Subscription {
		var up Actor[In]
		var machinery Subscription

		if proxy.WrapActor != nil {
			wrapped, extra := proxy.WrapActor(down)
			up, machinery = chainedActor[In]{Actor: wrapped, down: down}, extra
		} else {
			up = any(down).(Actor[In])
		}

		src := source
		if proxy.WrapSource != nil {
			src = proxy.WrapSource(src)
		}

		sub := src.Subscribe(up)
		if machinery != nil {
			return Compose(machinery, sub)
		}
		return sub
	})
}

// Lift applies a pure actor-wrapping operator: no machinery, no extra
// teardown. Wrap runs once per subscription, so per-subscription operator
// state belongs inside it.
func Lift[In, Out any](source Observable[In], wrap func(down Actor[Out]) Actor[In]) Observable[Out] {
	return Apply(source, Proxy[In, Out]{
		WrapActor: func(down Actor[Out]) (Actor[In], Subscription) {
			return wrap(down), nil
		},
	})
}

// chainedActor pairs a wrapping actor with the downstream it feeds, so a
// liveness probe travels through every operator in the chain down to the
// gate even when the wrapping actor exposes no probe of its own.
type chainedActor[In any] struct {
	Actor[In]
	down any
}

func (a chainedActor[In]) Alive() bool {
	return Alive(a.Actor) && Alive(a.down)
}

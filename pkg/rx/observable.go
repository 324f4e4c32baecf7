package rx

// Observable is a source of a value stream: subscribing an actor begins
// delivery and yields the teardown handle for that delivery relationship.
type Observable[T any] interface {
	Subscribe(actor Actor[T]) Subscription
}

// FuncObservable adapts a subscribe behavior into an Observable.
type FuncObservable[T any] func(actor Actor[T]) Subscription

func (f FuncObservable[T]) Subscribe(actor Actor[T]) Subscription {
	return f(actor)
}

// SubscribeHandler is implemented by sinks that want the subscription handle
// before the first event arrives, so they can unsubscribe from inside a
// delivery callback.
type SubscribeHandler interface {
	OnSubscribe(sub Subscription)
}

// Subscribe wires a sink to a source. The sink is classified once: a full
// Actor[T], a partial handler (NextHandler, ErrorHandler, CompleteHandler)
// or a bare func(T)/func(error)/func() callback. An unusable sink panics
// with *ContractError before the source's subscribe behavior runs.
//
// The returned handle guards the sink: after a terminal event or an
// Unsubscribe call nothing reaches it, even when an upstream worker is
// delivering concurrently.
func Subscribe[T any](source Observable[T], sink any) Subscription {
	actor, capability := AsActor[T](sink)
	if capability == CapInvalid {
		panic(&ContractError{
			Op:     "subscribe",
			Reason: "sink accepts no event kind for the source element type",
		})
	}

	g := &gate{}
	h := newHandle(g)

	if aware, ok := sink.(SubscribeHandler); ok {
		aware.OnSubscribe(h)
	}

	guarded := &guardedActor[T]{
		g:    g,
		h:    h,
		down: actor,
	}

	h.attach(source.Subscribe(guarded))
	return h
}

package rx

// From returns a cold source replaying the slice per subscription: every
// subscriber sees the full sequence in order followed by one complete.
func From[T any](values []T) Observable[T] {
	return FuncObservable[T](func(actor Actor[T]) Subscription {
		for _, v := range values {
			if !Alive(actor) {
				return Unsubscribed()
			}
			actor.OnNext(v)
		}
		actor.OnComplete()
		return Unsubscribed()
	})
}

// Just returns a cold single-value source.
func Just[T any](value T) Observable[T] {
	return FuncObservable[T](func(actor Actor[T]) Subscription {
		actor.OnNext(value)
		actor.OnComplete()
		return Unsubscribed()
	})
}

// Empty completes immediately without values.
func Empty[T any]() Observable[T] {
	return FuncObservable[T](func(actor Actor[T]) Subscription {
		actor.OnComplete()
		return Unsubscribed()
	})
}

// Never emits nothing and never terminates; the subscription stays live
// until unsubscribed.
func Never[T any]() Observable[T] {
	return FuncObservable[T](func(actor Actor[T]) Subscription {
		return NewSubscription(nil)
	})
}

// Throw errors immediately.
func Throw[T any](err error) Observable[T] {
	return FuncObservable[T](func(actor Actor[T]) Subscription {
		actor.OnError(err)
		return Unsubscribed()
	})
}

// FromChan drains a channel from a background reader: one next per received
// value, complete when the channel closes. The source is hot and single
// shot, a second subscriber receives whatever the first one has not drained.
func FromChan[T any](ch <-chan T) Observable[T] {
	return FuncObservable[T](func(actor Actor[T]) Subscription {
		quit := make(chan struct{})
		sub := NewSubscription(func() {
			close(quit)
		})

		go func() {
			for {
				select {
				case v, ok := <-ch:
					if !ok {
						actor.OnComplete()
						return
					}
					actor.OnNext(v)
				case <-quit:
					return
				}
			}
		}()

		return sub
	})
}

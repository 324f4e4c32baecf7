// Package redis bridges Redis pub/sub channels and reactive streams.
//
// Source subscribes a channel and exposes its payloads as an observable
// of strings; the subscription is confirmed before Subscribe returns, so
// messages published afterwards are never missed. Sink publishes every
// next event to a channel.
//
// Common usage:
//
//	client, err := redis.NewClient(redis.Config{Addr: "localhost:6379"})
//	if err != nil {
//		return err
//	}
//	events := redis.Source(client, "events", log)
//	rx.Subscribe(events, func(payload string) { handle(payload) })
package redis

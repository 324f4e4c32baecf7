// Package bridge provides operators that move delivery onto a dedicated
// worker goroutine.
//
// Delay feeds every event through an unbounded FIFO queue whose worker
// sleeps for the configured duration before each dequeue, shifting the
// whole stream in time while preserving order. Async hands events to the
// worker through a depth-one slot: the producer blocks once the slot is
// full until the worker drains it, giving bounded hand-off without
// buffering the stream.
//
// Both bridges stop their worker when the subscription is torn down:
// the worker is signalled first, any blocked producer is released, and
// only then is the upstream subscription cancelled. Events still queued
// at that point are dropped.
//
// Common usage:
//
//	out := rx.Apply(source, bridge.Delay[int](time.Second))
//	rx.Subscribe(out, func(v int) { fmt.Println(v) })
package bridge

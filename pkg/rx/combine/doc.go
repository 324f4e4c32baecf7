// Package combine provides operators that merge several observables into
// a single output stream.
//
// CollectLatest tracks one slot per source and emits a snapshot of all
// latest values whenever a source updates, once every slot has seen at
// least one value; CollectLatestWith maps each snapshot through a caller
// function first. MergeMap projects each upstream value to an inner
// observable and flattens every inner into the output as values arrive.
// SwitchMap keeps only the most recent inner alive, cancelling the
// previous one on every upstream value. Merge flattens a fixed set of
// sources.
//
// All combinators share the same termination policy: the output completes
// once every contributing stream has completed, and the first error from
// any stream is delivered exactly once after which every sibling and the
// upstream source are unsubscribed.
//
// Delivery is serialized through a per-subscription lock, so sinks never
// observe interleaved or reordered events even when sources emit from
// different goroutines. Sinks must not synchronously re-enter the
// combinator from inside a callback.
package combine

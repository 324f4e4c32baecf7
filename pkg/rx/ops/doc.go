// Package ops contains the leaf operators: single-value transforms built on
// the proxy engine, each instantiating its state per subscription.
//
// Highlights:
// - Map/Filter: transform or drop values
// - Scan: running accumulator, one output per input
// - Tap: side effect without changing the stream
// - Enumerate: pair every value with its 1-based position
// - Take: truncate after N values and release the upstream early
// - Log: trace events through a zerolog logger
package ops

// Package rx implements a push-based reactive-stream engine: observables
// deliver ordered value streams to actors, subscriptions carry idempotent
// teardown, and proxies compose operators without buffering intermediate
// sequences.
//
// Common usage:
// - Subscribe: wire a sink to an observable after classifying its capability
// - From/Just/Empty/Never/Throw/FromChan: construct cold and channel sources
// - Apply/Lift: build operators from actor-wrapping and source-wrapping proxies
// - Compose: group subscriptions so one teardown releases them all
//
// Every actor observes the grammar next* (error|complete)?, enforced at the
// subscribe boundary. Contract violations (unusable sinks, mismatched element
// types) panic with *ContractError at wiring time; they are never delivered
// as stream errors.
//
// For multicast hubs see package subject, for worker-backed delivery see
// package bridge, and for multi-source coordination see package combine.
package rx

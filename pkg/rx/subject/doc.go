// Package subject implements the multicast hubs: entities that are actor and
// observable at once, fanning events out to a join-ordered registry.
//
// Variants:
// - Subject: no replay, subscribers see only future events
// - Recent: caches the latest value and hands it to late joiners first
// - Replay: caches a bounded window and replays it in order to late joiners
//
// Every emission works on a snapshot of the registry taken before the pass,
// so callbacks may subscribe or unsubscribe without corrupting the pass.
// After a terminal event a subject is inert: further events are dropped and
// late joiners receive the terminal event immediately (an errored Recent
// subject re-delivers its error to every late joiner).
package subject

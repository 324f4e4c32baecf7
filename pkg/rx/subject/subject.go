package subject

import (
	"sync"

	"github.com/google/uuid"

	"github.com/ib-77/rx3/pkg/rx"
)

type terminal int

const (
	terminalNone terminal = iota
	terminalError
	terminalComplete
)

type entry[T any] struct {
	id    uuid.UUID
	actor rx.Actor[T]
}

// Subject is the plain multicast hub. Registered actors receive every event
// emitted while they are registered, in join order; joining actors see only
// future events.
type Subject[T any] struct {
	mu       sync.RWMutex
	registry []entry[T]
	term     terminal
	err      error
}

func New[T any]() *Subject[T] {
	return &Subject[T]{}
}

// Subscribe registers the actor. On a terminated subject the terminal event
// is delivered immediately and no registration happens.
func (s *Subject[T]) Subscribe(actor rx.Actor[T]) rx.Subscription {
	s.mu.Lock()
	switch s.term {
	case terminalError:
		err := s.err
		s.mu.Unlock()
		actor.OnError(err)
		return rx.Unsubscribed()
	case terminalComplete:
		s.mu.Unlock()
		actor.OnComplete()
		return rx.Unsubscribed()
	}

	id := uuid.New()
	s.registry = append(s.registry, entry[T]{id: id, actor: actor})
	s.mu.Unlock()

	return rx.NewSubscription(func() {
		s.remove(id)
	})
}

func (s *Subject[T]) OnNext(value T) {
	s.mu.RLock()
	if s.term != terminalNone {
		s.mu.RUnlock()
		return
	}
	snapshot := s.snapshotLocked()
	s.mu.RUnlock()

	for _, actor := range snapshot {
		actor.OnNext(value)
	}
}

func (s *Subject[T]) OnError(err error) {
	s.mu.Lock()
	if s.term != terminalNone {
		s.mu.Unlock()
		return
	}
	s.term = terminalError
	s.err = err
	snapshot := s.snapshotLocked()
	s.registry = nil
	s.mu.Unlock()

	for _, actor := range snapshot {
		actor.OnError(err)
	}
}

func (s *Subject[T]) OnComplete() {
	s.mu.Lock()
	if s.term != terminalNone {
		s.mu.Unlock()
		return
	}
	s.term = terminalComplete
	snapshot := s.snapshotLocked()
	s.registry = nil
	s.mu.Unlock()

	for _, actor := range snapshot {
		actor.OnComplete()
	}
}

// Size reports the number of currently registered actors.
func (s *Subject[T]) Size() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.registry)
}

// Terminated reports whether a terminal event was accepted.
func (s *Subject[T]) Terminated() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.term != terminalNone
}

func (s *Subject[T]) snapshotLocked() []rx.Actor[T] {
	snapshot := make([]rx.Actor[T], len(s.registry))
	for i, e := range s.registry {
		snapshot[i] = e.actor
	}
	return snapshot
}

func (s *Subject[T]) remove(id uuid.UUID) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, e := range s.registry {
		if e.id == id {
			s.registry = append(s.registry[:i], s.registry[i+1:]...)
			return
		}
	}
}

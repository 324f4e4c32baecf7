package rx

import (
	"sync"
	"sync/atomic"

	"github.com/google/uuid"
)

// Subscription is the disposal handle for one active delivery relationship.
// Unsubscribe is idempotent and must release every resource the pipeline
// stage owns: workers, timers, upstream subscriptions.
type Subscription interface {
	// ID identifies the subscription for registries and diagnostics.
	ID() uuid.UUID
	// Unsubscribe disposes the handle; repeated calls are no-ops.
	Unsubscribe()
	// IsSubscribed reports false once the handle was disposed.
	IsSubscribed() bool
}

// NewSubscription returns a handle running teardown exactly once, on the
// first Unsubscribe call. A nil teardown is allowed.
func NewSubscription(teardown func()) Subscription {
	return &funcSubscription{
		id:       uuid.New(),
		teardown: teardown,
	}
}

type funcSubscription struct {
	id       uuid.UUID
	disposed atomic.Bool
	teardown func()
}

func (s *funcSubscription) ID() uuid.UUID {
	return s.id
}

func (s *funcSubscription) Unsubscribe() {
	if s.disposed.CompareAndSwap(false, true) {
		if s.teardown != nil {
			s.teardown()
		}
	}
}

func (s *funcSubscription) IsSubscribed() bool {
	return !s.disposed.Load()
}

// Unsubscribed returns the void handle: already disposed, disposal a no-op.
// Sources that finish during subscribe return it because there is nothing
// left to cancel.
func Unsubscribed() Subscription {
	return voidSubscription{}
}

type voidSubscription struct{}

func (voidSubscription) ID() uuid.UUID      { return uuid.Nil }
func (voidSubscription) Unsubscribe()       {}
func (voidSubscription) IsSubscribed() bool { return false }

// CompositeSubscription disposes its children in the order they were added,
// the first time disposal is triggered. Children added after disposal are
// disposed immediately.
type CompositeSubscription struct {
	id       uuid.UUID
	mu       sync.Mutex
	children []Subscription
	disposed bool
}

// Compose groups subscriptions under one handle.
func Compose(children ...Subscription) *CompositeSubscription {
	c := &CompositeSubscription{
		id: uuid.New(),
	}
	c.children = append(c.children, children...)
	return c
}

func (c *CompositeSubscription) ID() uuid.UUID {
	return c.id
}

func (c *CompositeSubscription) Add(sub Subscription) {
	if sub == nil {
		return
	}

	c.mu.Lock()
	if c.disposed {
		c.mu.Unlock()
		sub.Unsubscribe()
		return
	}
	c.children = append(c.children, sub)
	c.mu.Unlock()
}

// Remove drops one child without disposing it, matched by ID.
func (c *CompositeSubscription) Remove(sub Subscription) {
	if sub == nil {
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	for i, child := range c.children {
		if child.ID() == sub.ID() {
			c.children = append(c.children[:i], c.children[i+1:]...)
			return
		}
	}
}

func (c *CompositeSubscription) Unsubscribe() {
	c.mu.Lock()
	if c.disposed {
		c.mu.Unlock()
		return
	}
	c.disposed = true
	children := c.children
	c.children = nil
	c.mu.Unlock()

	for _, child := range children {
		child.Unsubscribe()
	}
}

func (c *CompositeSubscription) IsSubscribed() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return !c.disposed
}

func (c *CompositeSubscription) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.children)
}

// Package rxtest provides the recording sink used to assert stream behavior:
// every delivered event is logged in order with a timestamp and can be
// queried after (or while) the stream runs.
package rxtest

import (
	"sync"
	"time"

	"github.com/ib-77/rx3/pkg/rx"
)

// Option configures a Recorder.
type Option func(*config)

type config struct {
	capacity int
}

// WithCapacity preallocates the event log.
func WithCapacity(n int) Option {
	return func(c *config) {
		if n > 0 {
			c.capacity = n
		}
	}
}

// Record is one delivered event: its arrival position, kind, payload and
// arrival time.
type Record[T any] struct {
	Seq   int
	Kind  rx.EventKind
	Value T
	Err   error
	At    time.Time
}

// Recorder is an actor that logs everything it receives. It is safe to feed
// from a worker goroutine and query from the test goroutine.
type Recorder[T any] struct {
	mu      sync.Mutex
	records []Record[T]
	closed  bool
	done    chan struct{}
}

func NewRecorder[T any](opts ...Option) *Recorder[T] {
	cfg := config{capacity: 16}
	for _, opt := range opts {
		opt(&cfg)
	}

	return &Recorder[T]{
		records: make([]Record[T], 0, cfg.capacity),
		done:    make(chan struct{}),
	}
}

func (r *Recorder[T]) OnNext(value T) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.records = append(r.records, Record[T]{
		Seq:   len(r.records),
		Kind:  rx.KindNext,
		Value: value,
		At:    time.Now(),
	})
}

func (r *Recorder[T]) OnError(err error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.records = append(r.records, Record[T]{
		Seq:  len(r.records),
		Kind: rx.KindError,
		Err:  err,
		At:   time.Now(),
	})
	r.close()
}

func (r *Recorder[T]) OnComplete() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.records = append(r.records, Record[T]{
		Seq:  len(r.records),
		Kind: rx.KindComplete,
		At:   time.Now(),
	})
	r.close()
}

func (r *Recorder[T]) close() {
	if !r.closed {
		r.closed = true
		close(r.done)
	}
}

// Records returns a snapshot of the full event log in delivery order.
func (r *Recorder[T]) Records() []Record[T] {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Record[T], len(r.records))
	copy(out, r.records)
	return out
}

// Values returns the payloads of all next events in delivery order.
func (r *Recorder[T]) Values() []T {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []T
	for _, rec := range r.records {
		if rec.Kind == rx.KindNext {
			out = append(out, rec.Value)
		}
	}
	return out
}

// Err returns the recorded terminal error, nil when none arrived.
func (r *Recorder[T]) Err() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, rec := range r.records {
		if rec.Kind == rx.KindError {
			return rec.Err
		}
	}
	return nil
}

func (r *Recorder[T]) Completed() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, rec := range r.records {
		if rec.Kind == rx.KindComplete {
			return true
		}
	}
	return false
}

func (r *Recorder[T]) Errored() bool {
	return r.Err() != nil
}

// Terminals counts recorded terminal events; a well-formed stream delivers
// at most one.
func (r *Recorder[T]) Terminals() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	for _, rec := range r.records {
		if rec.Kind != rx.KindNext {
			n++
		}
	}
	return n
}

func (r *Recorder[T]) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.records)
}

// Done is closed when the first terminal event arrives.
func (r *Recorder[T]) Done() <-chan struct{} {
	return r.done
}

// AwaitDone blocks until a terminal event arrived or the timeout elapsed and
// reports which one happened.
func (r *Recorder[T]) AwaitDone(timeout time.Duration) bool {
	select {
	case <-r.done:
		return true
	case <-time.After(timeout):
		return false
	}
}

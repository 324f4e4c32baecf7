package bridge

import (
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/ib-77/rx3/pkg/rx"
	"github.com/ib-77/rx3/pkg/rx/rxtest"
	"github.com/ib-77/rx3/pkg/rx/subject"
)

func TestDelayShiftsStreamInTime(t *testing.T) {
	const wait = 10 * time.Millisecond

	rec := rxtest.NewRecorder[int]()
	start := time.Now()
	rx.Subscribe(rx.Apply(rx.From([]int{1, 2, 3}), Delay[int](wait)), rec)

	if !rec.AwaitDone(2 * time.Second) {
		t.Fatal("delayed stream never terminated")
	}

	elapsed := time.Since(start)
	require.Equal(t, []int{1, 2, 3}, rec.Values())
	require.True(t, rec.Completed())

	// three values plus the terminal, each preceded by a full sleep
	if elapsed < 4*wait {
		t.Fatalf("stream finished after %v, want at least %v", elapsed, 4*wait)
	}
}

func TestDelayDefersError(t *testing.T) {
	const wait = 10 * time.Millisecond
	boom := errors.New("boom")

	rec := rxtest.NewRecorder[int]()
	start := time.Now()
	rx.Subscribe(rx.Apply(rx.Throw[int](boom), Delay[int](wait)), rec)

	if !rec.AwaitDone(2 * time.Second) {
		t.Fatal("delayed error never arrived")
	}
	if time.Since(start) < wait {
		t.Fatal("error was delivered before the delay elapsed")
	}

	require.Equal(t, boom, rec.Err())
	require.Equal(t, 1, rec.Terminals())
}

func TestDelayUnsubscribeDropsQueuedEvents(t *testing.T) {
	src := subject.New[int]()
	rec := rxtest.NewRecorder[int]()

	sub := rx.Subscribe(rx.Apply(src, Delay[int](100*time.Millisecond)), rec)

	src.OnNext(1)
	src.OnNext(2)
	sub.Unsubscribe()

	if src.Size() != 0 {
		t.Fatal("upstream subscription should be released on unsubscribe")
	}
	if sub.IsSubscribed() {
		t.Fatal("handle should report unsubscribed")
	}

	time.Sleep(250 * time.Millisecond)
	if rec.Len() != 0 {
		t.Fatalf("queued events should be dropped, got %v", rec.Values())
	}
	if rec.Terminals() != 0 {
		t.Fatal("no terminal should be delivered after unsubscribe")
	}
}

func TestDelayUnsubscribeFromInsideWorkerDelivery(t *testing.T) {
	src := subject.New[int]()

	var sub rx.Subscription
	var seen []int
	stopped := make(chan struct{})
	sink := rx.NewActor[int](func(v int) {
		seen = append(seen, v)
		sub.Unsubscribe()
		close(stopped)
	}, nil, nil)

	sub = rx.Subscribe(rx.Apply(src, Delay[int](5*time.Millisecond)), sink)

	src.OnNext(1)
	src.OnNext(2)

	select {
	case <-stopped:
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for the worker delivery")
	}

	require.Equal(t, 0, src.Size(), "upstream must be released on the worker call stack")
	require.Equal(t, []int{1}, seen, "the queued second value must not be delivered")
}

func TestAsyncDeliversStream(t *testing.T) {
	rec := rxtest.NewRecorder[int]()
	rx.Subscribe(rx.Apply(rx.From([]int{1, 2, 3}), Async[int]()), rec)

	if !rec.AwaitDone(2 * time.Second) {
		t.Fatal("async stream never terminated")
	}

	require.Equal(t, []int{1, 2, 3}, rec.Values())
	require.True(t, rec.Completed())
}

// gatedSink holds its first delivery until release is closed, so tests can
// park the bridge worker mid-stream.
type gatedSink struct {
	release chan struct{}
	done    chan struct{}
	once    sync.Once
	mu      sync.Mutex
	got     []int
}

func newGatedSink() *gatedSink {
	return &gatedSink{
		release: make(chan struct{}),
		done:    make(chan struct{}),
	}
}

func (g *gatedSink) OnNext(value int) {
	g.once.Do(func() { <-g.release })
	g.mu.Lock()
	g.got = append(g.got, value)
	g.mu.Unlock()
}

func (g *gatedSink) OnError(error) { close(g.done) }
func (g *gatedSink) OnComplete()   { close(g.done) }

func (g *gatedSink) values() []int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return append([]int(nil), g.got...)
}

func TestAsyncBlocksProducerAtDepthOne(t *testing.T) {
	src := subject.New[int]()
	sink := newGatedSink()

	rx.Subscribe(rx.Apply(src, Async[int]()), sink)

	src.OnNext(1) // taken by the worker, which parks in the sink
	src.OnNext(2) // fills the hand-off slot

	third := make(chan struct{})
	go func() {
		src.OnNext(3)
		close(third)
	}()

	select {
	case <-third:
		t.Fatal("third emission should block while the slot is full")
	case <-time.After(50 * time.Millisecond):
	}

	close(sink.release)

	select {
	case <-third:
	case <-time.After(2 * time.Second):
		t.Fatal("producer stayed blocked after the worker drained the slot")
	}

	src.OnComplete()

	select {
	case <-sink.done:
	case <-time.After(2 * time.Second):
		t.Fatal("terminal never reached the sink")
	}

	require.Equal(t, []int{1, 2, 3}, sink.values())
}

func TestAsyncUnsubscribeReleasesBlockedProducer(t *testing.T) {
	src := subject.New[int]()
	sink := newGatedSink()

	sub := rx.Subscribe(rx.Apply(src, Async[int]()), sink)

	src.OnNext(1)
	src.OnNext(2)

	blocked := make(chan struct{})
	go func() {
		src.OnNext(3)
		close(blocked)
	}()

	select {
	case <-blocked:
		t.Fatal("expected the producer to block before unsubscribing")
	case <-time.After(50 * time.Millisecond):
	}

	sub.Unsubscribe()

	select {
	case <-blocked:
	case <-time.After(2 * time.Second):
		t.Fatal("unsubscribe did not release the blocked producer")
	}

	if src.Size() != 0 {
		t.Fatal("upstream subscription should be released on unsubscribe")
	}
	if len(sink.values()) > 1 {
		t.Fatalf("events after the hand-off must be dropped, got %v", sink.values())
	}

	close(sink.release) // let the parked worker observe the teardown and exit
}

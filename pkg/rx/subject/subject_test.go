package subject

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ib-77/rx3/pkg/rx"
	"github.com/ib-77/rx3/pkg/rx/rxtest"
)

func TestSubjectMulticasts(t *testing.T) {
	s := New[int]()
	a := rxtest.NewRecorder[int]()
	b := rxtest.NewRecorder[int]()

	s.Subscribe(a)
	s.Subscribe(b)
	s.OnNext(1)
	s.OnNext(2)
	s.OnComplete()

	assert.Equal(t, []int{1, 2}, a.Values())
	assert.Equal(t, []int{1, 2}, b.Values())
	assert.True(t, a.Completed())
	assert.True(t, b.Completed())
}

func TestSubjectLateJoinerSeesOnlyFutureEvents(t *testing.T) {
	s := New[int]()
	early := rxtest.NewRecorder[int]()
	s.Subscribe(early)

	s.OnNext(1)

	late := rxtest.NewRecorder[int]()
	s.Subscribe(late)

	s.OnNext(2)

	assert.Equal(t, []int{1, 2}, early.Values())
	assert.Equal(t, []int{2}, late.Values())
}

func TestSubjectUnsubscribeRemovesOnlyThatActor(t *testing.T) {
	s := New[int]()
	a := rxtest.NewRecorder[int]()
	b := rxtest.NewRecorder[int]()

	subA := s.Subscribe(a)
	s.Subscribe(b)
	require.Equal(t, 2, s.Size())

	s.OnNext(1)
	subA.Unsubscribe()
	subA.Unsubscribe()
	require.Equal(t, 1, s.Size())

	s.OnNext(2)

	assert.Equal(t, []int{1}, a.Values())
	assert.Equal(t, []int{1, 2}, b.Values())
	assert.False(t, s.Terminated(), "unsubscribing an actor must not terminate the subject")
}

func TestSubjectActorUnsubscribingItselfMidDeliveryStopsOnlyItself(t *testing.T) {
	s := New[int]()

	var quitterSub rx.Subscription
	var quitterSeen []int
	quitter := rx.NewActor[int](func(v int) {
		quitterSeen = append(quitterSeen, v)
		if v == 2 {
			quitterSub.Unsubscribe()
		}
	}, nil, nil)
	quitterSub = rx.Subscribe[int](s, quitter)

	keeper := rxtest.NewRecorder[int]()
	rx.Subscribe[int](s, keeper)

	s.OnNext(1)
	s.OnNext(2)
	s.OnNext(3)

	assert.Equal(t, []int{1, 2}, quitterSeen, "self-disposal from inside the delivery must stop further values")
	assert.Equal(t, []int{1, 2, 3}, keeper.Values(), "the sibling keeps receiving")
	assert.Equal(t, 1, s.Size())
	assert.False(t, quitterSub.IsSubscribed())
}

func TestSubjectInertAfterTerminal(t *testing.T) {
	s := New[int]()
	rec := rxtest.NewRecorder[int]()
	s.Subscribe(rec)

	s.OnComplete()
	s.OnNext(3)
	s.OnComplete()
	s.OnError(errors.New("late"))

	assert.Empty(t, rec.Values())
	assert.Equal(t, 1, rec.Terminals())
	assert.True(t, rec.Completed())
	assert.Equal(t, 0, s.Size())
}

func TestSubjectLateJoinerAfterTerminalGetsTerminalImmediately(t *testing.T) {
	s := New[int]()
	boom := errors.New("boom")
	s.OnError(boom)

	late := rxtest.NewRecorder[int]()
	sub := s.Subscribe(late)

	assert.Equal(t, boom, late.Err())
	assert.False(t, sub.IsSubscribed())
}

func TestSubjectEmissionSnapshotIsStable(t *testing.T) {
	s := New[int]()

	first := rxtest.NewRecorder[int]()
	s.Subscribe(first)

	victim := rxtest.NewRecorder[int]()
	joiner := rxtest.NewRecorder[int]()

	var victimSub rx.Subscription
	trigger := rx.NewActor[int](func(int) {
		if victimSub != nil {
			victimSub.Unsubscribe()
			victimSub = nil
			s.Subscribe(joiner)
		}
	}, nil, nil)
	s.Subscribe(trigger)
	victimSub = s.Subscribe(victim)

	s.OnNext(1)
	s.OnNext(2)

	assert.Equal(t, []int{1, 2}, first.Values())
	assert.Equal(t, []int{1}, victim.Values(), "actor unsubscribed mid-pass still receives the snapshot value")
	assert.Equal(t, []int{2}, joiner.Values(), "actor joining mid-pass receives only the next emission")
}

func TestRecentLateJoinSequence(t *testing.T) {
	s := NewRecent[int]()
	s.OnNext(0)
	s.OnNext(1)

	a := rxtest.NewRecorder[int]()
	s.Subscribe(a)

	s.OnNext(3)
	s.OnNext(4)

	b := rxtest.NewRecorder[int]()
	s.Subscribe(b)

	s.OnNext(5)

	assert.Equal(t, []int{1, 3, 4, 5}, a.Values())
	assert.Equal(t, []int{4, 5}, b.Values())
}

func TestRecentSeededCache(t *testing.T) {
	s := NewRecentWith(9)

	rec := rxtest.NewRecorder[int]()
	s.Subscribe(rec)

	assert.Equal(t, []int{9}, rec.Values())

	v, ok := s.Value()
	assert.True(t, ok)
	assert.Equal(t, 9, v)
}

func TestRecentNoCacheBeforeFirstValue(t *testing.T) {
	s := NewRecent[string]()

	rec := rxtest.NewRecorder[string]()
	s.Subscribe(rec)

	assert.Empty(t, rec.Values())

	_, ok := s.Value()
	assert.False(t, ok)
}

func TestRecentRedeliversErrorToEveryLateJoiner(t *testing.T) {
	s := NewRecent[int]()
	s.OnNext(1)
	boom := errors.New("boom")
	s.OnError(boom)

	for range 2 {
		late := rxtest.NewRecorder[int]()
		s.Subscribe(late)
		assert.Equal(t, boom, late.Err())
		assert.Empty(t, late.Values(), "terminal replaces the cached value for late joiners")
	}
}

func TestRecentCompleteReplacesCachedValueForLateJoiners(t *testing.T) {
	s := NewRecent[int]()
	s.OnNext(7)
	s.OnComplete()

	late := rxtest.NewRecorder[int]()
	s.Subscribe(late)

	assert.Empty(t, late.Values())
	assert.True(t, late.Completed())
}

func TestReplayWindowBounded(t *testing.T) {
	s := NewReplay[int](2)
	live := rxtest.NewRecorder[int]()
	s.Subscribe(live)

	s.OnNext(1)
	s.OnNext(2)
	s.OnNext(3)

	late := rxtest.NewRecorder[int]()
	s.Subscribe(late)

	s.OnNext(4)

	assert.Equal(t, []int{1, 2, 3, 4}, live.Values())
	assert.Equal(t, []int{2, 3, 4}, late.Values(), "window trims the oldest value")
	assert.Equal(t, []int{3, 4}, s.Window())
}

func TestReplayAfterCompleteReplaysWindowThenTerminal(t *testing.T) {
	s := NewReplay[int](3)
	s.OnNext(1)
	s.OnNext(2)
	s.OnComplete()

	late := rxtest.NewRecorder[int]()
	s.Subscribe(late)

	assert.Equal(t, []int{1, 2}, late.Values())
	assert.True(t, late.Completed())

	records := late.Records()
	require.Len(t, records, 3)
	assert.Equal(t, rx.KindComplete, records[2].Kind, "terminal must follow the replayed window")
}

func TestSubjectActsAsSinkForSource(t *testing.T) {
	s := New[int]()
	rec := rxtest.NewRecorder[int]()
	s.Subscribe(rec)

	rx.Subscribe[int](rx.From([]int{1, 2}), s)

	assert.Equal(t, []int{1, 2}, rec.Values())
	assert.True(t, rec.Completed())
	assert.True(t, s.Terminated())
}

package redis

import (
	"context"
	"sync"
	"time"

	goredis "github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

// Sink publishes each next event to a pub/sub channel. It implements
// rx.Actor[string]. Publish failures are logged and retained; the stream
// is not interrupted because a sink has no way to signal upstream.
type Sink struct {
	client  *goredis.Client
	channel string
	log     zerolog.Logger
	timeout time.Duration

	mu  sync.Mutex
	err error
}

func NewSink(client *goredis.Client, channel string, log zerolog.Logger) *Sink {
	return &Sink{
		client:  client,
		channel: channel,
		log: log.With().
			Str("component", "redis.sink").
			Str("channel", channel).
			Logger(),
		timeout: 3 * time.Second,
	}
}

func (s *Sink) OnNext(payload string) {
	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()

	if err := s.client.Publish(ctx, s.channel, payload).Err(); err != nil {
		s.log.Error().Err(err).Msg("publish failed")
		s.record(err)
	}
}

func (s *Sink) OnError(err error) {
	s.log.Error().Err(err).Msg("stream failed")
	s.record(err)
}

func (s *Sink) OnComplete() {
	s.log.Debug().Msg("stream completed")
}

// Err returns the first failure observed: a publish error or the stream's
// error terminal.
func (s *Sink) Err() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.err
}

func (s *Sink) record(err error) {
	s.mu.Lock()
	if s.err == nil {
		s.err = err
	}
	s.mu.Unlock()
}

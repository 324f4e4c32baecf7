package kafka

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog"
	kafkago "github.com/segmentio/kafka-go"
)

// Sink publishes each next event to a topic. It implements rx.Actor[Message],
// so it can terminate any observable of messages. Write failures are logged
// and retained; the stream is not interrupted because a sink has no way to
// signal upstream.
type Sink struct {
	writer  *kafkago.Writer
	log     zerolog.Logger
	timeout time.Duration

	mu     sync.Mutex
	err    error
	closed bool
}

// NewSink validates cfg and builds the writer. Close the sink when the
// stream it terminates will not deliver a terminal event.
func NewSink(cfg Config, log zerolog.Logger) (*Sink, error) {
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("kafka sink: %w", err)
	}

	writer := &kafkago.Writer{
		Addr:         kafkago.TCP(cfg.Brokers...),
		Topic:        cfg.Topic,
		Balancer:     &kafkago.LeastBytes{},
		BatchSize:    cfg.BatchSize,
		BatchTimeout: cfg.BatchTimeout,
		WriteTimeout: cfg.WriteTimeout,
		RequiredAcks: kafkago.RequiredAcks(cfg.RequiredAcks),
	}

	return &Sink{
		writer: writer,
		log: log.With().
			Str("component", "kafka.sink").
			Str("topic", cfg.Topic).
			Logger(),
		timeout: cfg.WriteTimeout,
	}, nil
}

func (s *Sink) OnNext(msg Message) {
	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()

	if err := s.writer.WriteMessages(ctx, msg.toWriterMessage()); err != nil {
		s.log.Error().Err(err).Str("key", msg.Key).Msg("write failed")
		s.record(err)
	}
}

func (s *Sink) OnError(err error) {
	s.log.Error().Err(err).Msg("stream failed")
	s.record(err)
	s.close()
}

func (s *Sink) OnComplete() {
	s.log.Debug().Msg("stream completed")
	s.close()
}

// Err returns the first failure observed: a write error or the stream's
// error terminal.
func (s *Sink) Err() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.err
}

// Close releases the writer. Safe to call multiple times; the sink closes
// itself when the stream terminates.
func (s *Sink) Close() error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return nil
	}
	s.closed = true
	s.mu.Unlock()

	return s.writer.Close()
}

func (s *Sink) record(err error) {
	s.mu.Lock()
	if s.err == nil {
		s.err = err
	}
	s.mu.Unlock()
}

func (s *Sink) close() {
	if err := s.Close(); err != nil {
		s.log.Error().Err(err).Msg("writer close failed")
	}
}

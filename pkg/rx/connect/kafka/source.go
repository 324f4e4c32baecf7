package kafka

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
	kafkago "github.com/segmentio/kafka-go"
	"gopkg.in/tomb.v2"

	"github.com/ib-77/rx3/pkg/rx"
)

// Source exposes a topic as an observable of messages. Each subscription
// runs its own reader worker; unsubscribing stops the worker and closes
// the reader. A read failure terminates the stream with an error.
func Source(cfg Config, log zerolog.Logger) rx.Observable[Message] {
	return rx.FuncObservable[Message](func(actor rx.Actor[Message]) rx.Subscription {
		cfg.ApplyDefaults()
		if err := cfg.Validate(); err != nil {
			actor.OnError(fmt.Errorf("kafka source: %w", err))
			return rx.Unsubscribed()
		}

		slog := log.With().
			Str("component", "kafka.source").
			Str("topic", cfg.Topic).
			Logger()

		reader := kafkago.NewReader(kafkago.ReaderConfig{
			Brokers:       cfg.Brokers,
			Topic:         cfg.Topic,
			GroupID:       cfg.GroupID,
			MinBytes:      cfg.MinBytes,
			MaxBytes:      cfg.MaxBytes,
			MaxWait:       cfg.MaxWait,
			StartOffset:   cfg.StartOffset,
			Dialer:        &kafkago.Dialer{Timeout: cfg.DialTimeout, DualStack: true},
			ErrorLogger:   kafkago.LoggerFunc(readerErrorLogger(slog)),
			QueueCapacity: 100,
		})

		life := new(tomb.Tomb)
		ctx := life.Context(context.Background())

		life.Go(func() error {
			defer func() {
				if err := reader.Close(); err != nil {
					slog.Error().Err(err).Msg("reader close failed")
				}
			}()

			slog.Debug().Strs("brokers", cfg.Brokers).Msg("consume loop started")

			for {
				msg, err := reader.ReadMessage(ctx)
				if err != nil {
					if life.Alive() {
						slog.Error().Err(err).Msg("read failed")
						actor.OnError(fmt.Errorf("kafka read %s: %w", cfg.Topic, err))
					}
					return nil
				}
				actor.OnNext(fromReaderMessage(msg))
			}
		})

		return rx.NewSubscription(func() {
			life.Kill(nil)
		})
	})
}

func readerErrorLogger(log zerolog.Logger) func(msg string, args ...any) {
	return func(msg string, args ...any) {
		log.Error().Msgf("reader: "+msg, args...)
	}
}

package redis

import (
	"context"
	"fmt"

	goredis "github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"gopkg.in/tomb.v2"

	"github.com/ib-77/rx3/pkg/rx"
)

// Source exposes a pub/sub channel as an observable of payloads. The
// subscription is confirmed synchronously: once Subscribe returns, the
// server delivers everything published to the channel from that point on.
// Unsubscribing stops the worker and closes the pub/sub connection.
func Source(client *goredis.Client, channel string, log zerolog.Logger) rx.Observable[string] {
	return rx.FuncObservable[string](func(actor rx.Actor[string]) rx.Subscription {
		slog := log.With().
			Str("component", "redis.source").
			Str("channel", channel).
			Logger()

		pubsub := client.Subscribe(context.Background(), channel)

		// wait for the subscription confirmation before declaring the
		// stream live
		if _, err := pubsub.Receive(context.Background()); err != nil {
			_ = pubsub.Close()
			actor.OnError(fmt.Errorf("redis subscribe %s: %w", channel, err))
			return rx.Unsubscribed()
		}

		life := new(tomb.Tomb)

		life.Go(func() error {
			slog.Debug().Msg("listening")
			messages := pubsub.Channel()

			for {
				select {
				case msg, ok := <-messages:
					if !ok {
						if life.Alive() {
							actor.OnComplete()
						}
						return nil
					}
					actor.OnNext(msg.Payload)
				case <-life.Dying():
					return nil
				}
			}
		})

		return rx.NewSubscription(func() {
			life.Kill(nil)
			if err := pubsub.Close(); err != nil {
				slog.Error().Err(err).Msg("pubsub close failed")
			}
		})
	})
}

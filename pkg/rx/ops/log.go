package ops

import (
	"github.com/rs/zerolog"

	"github.com/ib-77/rx3/pkg/rx"
)

// Log traces every event of the stream through the logger under the given
// label: values at debug level, errors at error level.
func Log[T any](source rx.Observable[T], logger zerolog.Logger, label string) rx.Observable[T] {
	return rx.Lift(source, func(down rx.Actor[T]) rx.Actor[T] {
		return rx.NewActor[T](
			func(v T) {
				logger.Debug().Str("stream", label).Interface("value", v).Msg("next")
				down.OnNext(v)
			},
			func(err error) {
				logger.Error().Str("stream", label).Err(err).Msg("error")
				down.OnError(err)
			},
			func() {
				logger.Debug().Str("stream", label).Msg("complete")
				down.OnComplete()
			},
		)
	})
}

package ops

import (
	"github.com/ib-77/rx3/pkg/rx"
)

func Map[In, Out any](source rx.Observable[In], transform func(value In) Out) rx.Observable[Out] {
	return rx.Lift(source, func(down rx.Actor[Out]) rx.Actor[In] {
		return rx.NewActor[In](
			func(v In) { down.OnNext(transform(v)) },
			down.OnError,
			down.OnComplete,
		)
	})
}

func Filter[T any](source rx.Observable[T], keep func(value T) bool) rx.Observable[T] {
	return rx.Lift(source, func(down rx.Actor[T]) rx.Actor[T] {
		return rx.NewActor[T](
			func(v T) {
				if keep(v) {
					down.OnNext(v)
				}
			},
			down.OnError,
			down.OnComplete,
		)
	})
}

// Scan folds values into a running accumulator and emits the accumulator
// after every input. The seed itself is not emitted.
func Scan[In, Acc any](source rx.Observable[In], seed Acc, step func(acc Acc, value In) Acc) rx.Observable[Acc] {
	return rx.Lift(source, func(down rx.Actor[Acc]) rx.Actor[In] {
		acc := seed
		return rx.NewActor[In](
			func(v In) {
				acc = step(acc, v)
				down.OnNext(acc)
			},
			down.OnError,
			down.OnComplete,
		)
	})
}

func Tap[T any](source rx.Observable[T], probe func(value T)) rx.Observable[T] {
	return rx.Lift(source, func(down rx.Actor[T]) rx.Actor[T] {
		return rx.NewActor[T](
			func(v T) {
				probe(v)
				down.OnNext(v)
			},
			down.OnError,
			down.OnComplete,
		)
	})
}

// Numbered pairs a value with its position in the stream, counted from 1.
type Numbered[T any] struct {
	Value T
	Index int
}

func Enumerate[T any](source rx.Observable[T]) rx.Observable[Numbered[T]] {
	return rx.Lift(source, func(down rx.Actor[Numbered[T]]) rx.Actor[T] {
		index := 0
		return rx.NewActor[T](
			func(v T) {
				index++
				down.OnNext(Numbered[T]{Value: v, Index: index})
			},
			down.OnError,
			down.OnComplete,
		)
	})
}

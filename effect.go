package iteratee

import "context"

// IO is the effect capability through which a Step sequences suspended or
// side-effectful work: a context-carrying computation that yields a value or
// an error, satisfying pure/map/flatMap. Go has no higher-kinded types, so
// Step is built against this one concrete effect rather than being generic
// over the choice of effect.
type IO[A any] func(ctx context.Context) (A, error)

// Run executes the suspended computation.
func (fa IO[A]) Run(ctx context.Context) (A, error) {
	return fa(ctx)
}

// Pure lifts a value into IO without performing any work.
func Pure[A any](a A) IO[A] {
	return func(context.Context) (A, error) {
		return a, nil
	}
}

// MapIO transforms the eventual result of fa.
func MapIO[A, B any](fa IO[A], f func(A) B) IO[B] {
	return func(ctx context.Context) (B, error) {
		a, err := fa.Run(ctx)
		if err != nil {
			var zero B
			return zero, err
		}
		return f(a), nil
	}
}

// FlatMapIO sequences fa into a second computation chosen by its result.
func FlatMapIO[A, B any](fa IO[A], f func(A) IO[B]) IO[B] {
	return func(ctx context.Context) (B, error) {
		a, err := fa.Run(ctx)
		if err != nil {
			var zero B
			return zero, err
		}
		return f(a).Run(ctx)
	}
}

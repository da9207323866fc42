package iteratee

import (
	"context"
	"errors"

	"golang.org/x/sync/errgroup"
)

// ErrStepNotDone is returned by the driver layer when a Step is still a
// Cont after being fed End — a violation of the contract every standard
// collector in this package upholds (onEnd always completes).
var ErrStepNotDone = errors.New("iteratee: step did not complete after end of stream")

// Seq is a producer in the range-over-func shape: it calls yield once per
// element, stopping early if yield returns false. Mirrors rheos's Seq[T]
// iterator contract.
type Seq[E any] func(yield func(E) bool) error

// RunSeq drives s to completion against seq: a producer goroutine pulls
// elements out of seq onto an internal channel (mirroring rheos's FromIter),
// and a consumer goroutine feeds each one into s until s.IsDone, then feeds a
// final End once the producer's channel closes. Context cancellation stops
// both sides, exactly as rheos's push helper does.
func RunSeq[E, A any](ctx context.Context, seq Seq[E], s Step[E, A], ops ...Option) (A, error) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	elems := make(chan E, bufferSize(ops))
	eg, ctx := errgroup.WithContext(ctx)

	eg.Go(func() error {
		defer close(elems)
		return seq(func(e E) bool {
			select {
			case <-ctx.Done():
				return false
			case elems <- e:
				return true
			}
		})
	})

	var result A
	eg.Go(func() error {
		// cancel unblocks a producer still pushing onto elems once this
		// goroutine stops draining it, whether it stops via error or an
		// early-completed step; errgroup only cancels ctx on error or
		// after every Go func has returned, which is too late for that.
		defer cancel()

		cur := s
		for {
			if cur.IsDone() {
				result = cur.UnsafeValue()
				return nil
			}
			if err := ctx.Err(); err != nil {
				return err
			}

			select {
			case <-ctx.Done():
				return ctx.Err()
			case e, ok := <-elems:
				if !ok {
					next, err := cur.Feed(End[E]()).Run(ctx)
					if err != nil {
						return err
					}
					if !next.IsDone() {
						return ErrStepNotDone
					}
					result = next.UnsafeValue()
					return nil
				}

				next, err := cur.Feed(El(e)).Run(ctx)
				if err != nil {
					return err
				}
				cur = next
			}
		}
	})

	if err := eg.Wait(); err != nil {
		var zero A
		return zero, err
	}
	return result, nil
}

// RunSlice drives s against every element of xs in order.
func RunSlice[E, A any](ctx context.Context, xs []E, s Step[E, A], ops ...Option) (A, error) {
	return RunSeq(ctx, func(yield func(E) bool) error {
		for _, x := range xs {
			if !yield(x) {
				break
			}
		}
		return nil
	}, s, ops...)
}

// RunChannel drives s against every element received from ch until ch
// closes or the context is cancelled.
func RunChannel[E, A any](ctx context.Context, ch <-chan E, s Step[E, A], ops ...Option) (A, error) {
	return RunSeq(ctx, func(yield func(E) bool) error {
		for {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case e, ok := <-ch:
				if !ok {
					return nil
				}
				if !yield(e) {
					return nil
				}
			}
		}
	}, s, ops...)
}

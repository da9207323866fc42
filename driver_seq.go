//go:build go1.23

package iteratee

import (
	"context"
	"iter"
)

// RunIterSeq drives s against a standard library iter.Seq producer. Mirrors
// rheos's FromSeq.
func RunIterSeq[E, A any](ctx context.Context, seq iter.Seq[E], s Step[E, A], ops ...Option) (A, error) {
	return RunSeq(ctx, func(yield func(E) bool) error {
		seq(yield)
		return nil
	}, s, ops...)
}

// RunIterSeq2 drives s against a standard library iter.Seq2[E, error]
// producer, stopping and surfacing the first non-nil error the sequence
// yields. Mirrors rheos's FromSeq2.
func RunIterSeq2[E, A any](ctx context.Context, seq iter.Seq2[E, error], s Step[E, A], ops ...Option) (A, error) {
	var seqErr error
	wrapped := func(yield func(E) bool) error {
		seq(func(e E, err error) bool {
			if err != nil {
				seqErr = err
				return false
			}
			return yield(e)
		})
		return seqErr
	}
	return RunSeq(ctx, wrapped, s, ops...)
}

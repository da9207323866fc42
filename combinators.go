package iteratee

import "context"

// Map transforms the eventual result of s. Done stays Done, Early stays
// Early with the same remainder, and Cont stays Cont with the mapping
// pushed inside the continuation's effectful result — Map never itself
// runs an effect.
func Map[E, A, B any](s Step[E, A], f func(A) B) Step[E, B] {
	switch s.kind {
	case stepDone:
		return Done[E, B](f(s.result))
	case stepEarly:
		return Early[E, B](f(s.result), s.remainder)
	default:
		k := s.cont
		return Cont(func(in Input[E]) IO[Step[E, B]] {
			return MapIO(k(in), func(s2 Step[E, A]) Step[E, B] {
				return Map(s2, f)
			})
		})
	}
}

// Bind sequences s into a second Step chosen by its eventual result:
//
//   - Done(a): f(a) directly.
//   - Early(a, rem): run f(a); if it yields Cont(k), feed rem into k; if it
//     yields Done(b) or Early(b, _), return Early(b, rem) — the outer
//     leftover is real unconsumed producer data and always wins over
//     whatever the inner consumer thinks it left over, since the inner
//     consumer never actually saw a producer.
//   - Cont(k): a new Cont that feeds input into k, then binds the result.
func Bind[E, A, B any](s Step[E, A], f func(A) IO[Step[E, B]]) IO[Step[E, B]] {
	switch s.kind {
	case stepDone:
		return f(s.result)
	case stepEarly:
		a, rem := s.result, s.remainder
		return func(ctx context.Context) (Step[E, B], error) {
			inner, err := f(a).Run(ctx)
			if err != nil {
				var zero Step[E, B]
				return zero, err
			}
			return bindEarly(inner, rem).Run(ctx)
		}
	default:
		k := s.cont
		return Pure(Cont(func(in Input[E]) IO[Step[E, B]] {
			return func(ctx context.Context) (Step[E, B], error) {
				s2, err := k(in).Run(ctx)
				if err != nil {
					var zero Step[E, B]
					return zero, err
				}
				return Bind(s2, f).Run(ctx)
			}
		}))
	}
}

func bindEarly[E, B any](inner Step[E, B], outerRemainder Input[E]) IO[Step[E, B]] {
	if inner.kind == stepCont {
		return inner.cont(outerRemainder)
	}
	return Pure(Early[E, B](inner.result, outerRemainder))
}

// LiftM wraps an effectful value into a Step. The first Feed it ever
// receives runs fa and completes Early with whatever Input was fed, since
// that Input was never consumed — LiftM's whole point is to run an effect
// without looking at the stream.
func LiftM[E, A any](fa IO[A]) Step[E, A] {
	return Cont(func(in Input[E]) IO[Step[E, A]] {
		return MapIO(fa, func(a A) Step[E, A] {
			return Early(a, in)
		})
	})
}

// JoinI collapses a completed outer Step whose result is itself a Step over
// a different element type into a single effectful Step over the outer
// element type. outer must already satisfy IsDone (it is meant to be used
// right after a producer has driven the outer consumer to completion);
// passing a Cont is a programming error, and running the returned IO then
// panics, the same contract UnsafeValue carries.
//
// Once unwrapped, the inner Step is driven to completion by repeatedly
// feeding it End. If the inner Step never completes under End-feeding, this
// does not terminate — that divergence is structural, not an error to
// detect.
func JoinI[Ea, Eb, C any](outer Step[Ea, Step[Eb, C]]) IO[Step[Ea, C]] {
	return func(ctx context.Context) (Step[Ea, C], error) {
		if !outer.IsDone() {
			panic("iteratee: JoinI called on a Cont outer step")
		}
		inner := outer.UnsafeValue()
		for !inner.IsDone() {
			next, err := inner.Feed(End[Eb]()).Run(ctx)
			if err != nil {
				var zero Step[Ea, C]
				return zero, err
			}
			inner = next
		}
		return Done[Ea, C](inner.UnsafeValue()), nil
	}
}

// Pair is the result type zipped Steps produce.
type Pair[A, B any] struct {
	First  A
	Second B
}

// Zip runs two consumers over a single input stream, pairing their
// results. Per input, sA is fed before sB (and per chunk, elements are
// processed in order), so side effects visible through IO interleave
// A-before-B.
func Zip[E, A, B any](sA Step[E, A], sB Step[E, B]) Step[E, Pair[A, B]] {
	switch {
	case sA.IsDone() && sB.IsDone():
		return zipBothDone(sA, sB)
	case sA.IsDone():
		return zipPendingB(sA.UnsafeValue(), sB)
	case sB.IsDone():
		return zipPendingA(sA, sB.UnsafeValue())
	default:
		return zipBothPending(sA, sB)
	}
}

// zipPendingB pairs an already-finished A with a still-pending B: the
// result simply rides B's eventual completion (and B's own leftover).
func zipPendingB[E, A, B any](a A, pendingB Step[E, B]) Step[E, Pair[A, B]] {
	return Map(pendingB, func(b B) Pair[A, B] {
		return Pair[A, B]{First: a, Second: b}
	})
}

func zipPendingA[E, A, B any](pendingA Step[E, A], b B) Step[E, Pair[A, B]] {
	return Map(pendingA, func(a A) Pair[A, B] {
		return Pair[A, B]{First: a, Second: b}
	})
}

func zipBothDone[E, A, B any](sA Step[E, A], sB Step[E, B]) Step[E, Pair[A, B]] {
	a, remA := unpackFinished(sA)
	b, remB := unpackFinished(sB)
	pair := Pair[A, B]{First: a, Second: b}

	shorter, ok := shorterRemainder(remA, remB).Get()
	if !ok {
		return Done(pair)
	}
	return Early(pair, shorter)
}

func zipBothPending[E, A, B any](sA Step[E, A], sB Step[E, B]) Step[E, Pair[A, B]] {
	kA := pendingCont(sA)
	kB := pendingCont(sB)
	return Cont(func(in Input[E]) IO[Step[E, Pair[A, B]]] {
		return func(ctx context.Context) (Step[E, Pair[A, B]], error) {
			nextA, err := kA(in).Run(ctx)
			if err != nil {
				var zero Step[E, Pair[A, B]]
				return zero, err
			}
			nextB, err := kB(in).Run(ctx)
			if err != nil {
				var zero Step[E, Pair[A, B]]
				return zero, err
			}
			return Zip(nextA, nextB), nil
		}
	})
}

func pendingCont[E, A any](s Step[E, A]) func(Input[E]) IO[Step[E, A]] {
	if s.kind != stepCont {
		panic("iteratee: pendingCont called on a finished step")
	}
	return s.cont
}

func unpackFinished[E, A any](s Step[E, A]) (A, Maybe[Input[E]]) {
	if s.kind == stepCont {
		panic("iteratee: unpackFinished called on a Cont step")
	}
	if s.kind == stepEarly {
		return s.result, Some(s.remainder)
	}
	return s.result, None[Input[E]]()
}

// shorterRemainder implements the §4.6.1 rule: End dominates whichever side
// carries it; a present remainder wins over an absent one (only when both
// sides are absent is there no combined leftover); otherwise the shorter of
// the two wins, ties going to the first argument.
func shorterRemainder[E any](ra, rb Maybe[Input[E]]) Maybe[Input[E]] {
	a, aok := ra.Get()
	b, bok := rb.Get()

	if aok && a.IsEnd() {
		return Some(a)
	}
	if bok && b.IsEnd() {
		return Some(b)
	}
	if aok && !bok {
		return Some(a)
	}
	if bok && !aok {
		return Some(b)
	}
	if !aok && !bok {
		return None[Input[E]]()
	}
	if a.Len() <= b.Len() {
		return Some(a)
	}
	return Some(b)
}

package iteratee

// stepKind tags Step's three variants.
type stepKind uint8

const (
	stepCont stepKind = iota
	stepDone
	stepEarly
)

// Step is a consumer's current state: Cont awaits its next Input via a
// continuation, Done holds a final result with no leftover, and Early holds
// a final result plus a leftover Input the producer should replay into
// whatever consumes next. Step is a plain value; every operation below
// returns a new one rather than mutating in place.
type Step[E, A any] struct {
	kind      stepKind
	cont      func(Input[E]) IO[Step[E, A]]
	result    A
	remainder Input[E]
}

// Cont builds a Step awaiting input via an effectful continuation.
func Cont[E, A any](k func(Input[E]) IO[Step[E, A]]) Step[E, A] {
	return Step[E, A]{kind: stepCont, cont: k}
}

// PureCont builds a Cont from a continuation that computes its next Step
// directly, with no effect of its own. Semantically identical to
// Cont(func(in) IO { return Pure(k(in)) }); every standard collector in this
// package except FoldM (whose accumulator function is effectful) uses it.
func PureCont[E, A any](k func(Input[E]) Step[E, A]) Step[E, A] {
	return Cont(func(in Input[E]) IO[Step[E, A]] {
		return Pure(k(in))
	})
}

// Done completes a Step with a final result and no leftover input.
func Done[E, A any](a A) Step[E, A] {
	return Step[E, A]{kind: stepDone, result: a}
}

// Early completes a Step with a final result plus leftover input that a
// downstream consumer should treat as not-yet-consumed.
func Early[E, A any](a A, remainder Input[E]) Step[E, A] {
	return Step[E, A]{kind: stepEarly, result: a, remainder: remainder}
}

// Ended is Early triggered by end of stream: the completion carries the End
// signal itself as leftover so whatever consumes next also observes
// termination.
func Ended[E, A any](a A) Step[E, A] {
	return Early[E, A](a, End[E]())
}

// IsDone reports whether s is Done or Early (as opposed to Cont).
func (s Step[E, A]) IsDone() bool {
	return s.kind != stepCont
}

// Feed advances s with the next Input. Done and Early Steps yield
// themselves purely, performing no effect; a Cont applies its continuation.
func (s Step[E, A]) Feed(in Input[E]) IO[Step[E, A]] {
	if s.kind == stepCont {
		return s.cont(in)
	}
	return Pure(s)
}

// UnsafeValue returns the final result of a Done or Early Step. Calling it
// on a Cont is a programming error: there is no result yet, and it panics.
func (s Step[E, A]) UnsafeValue() A {
	if s.kind == stepCont {
		panic("iteratee: UnsafeValue called on a Cont step")
	}
	return s.result
}

// StepFolder is the three-arm visitor over Step's variants. OnEarly may be
// left nil, in which case FoldWith delegates it to OnDone (the leftover is
// simply discarded) — useful when a caller only cares about the result.
type StepFolder[E, A, Z any] struct {
	OnCont  func(k func(Input[E]) IO[Step[E, A]]) Z
	OnDone  func(a A) Z
	OnEarly func(a A, remainder Input[E]) Z
}

// FoldWith dispatches s to the matching arm of f.
func FoldWith[E, A, Z any](s Step[E, A], f StepFolder[E, A, Z]) Z {
	switch s.kind {
	case stepCont:
		return f.OnCont(s.cont)
	case stepEarly:
		if f.OnEarly != nil {
			return f.OnEarly(s.result, s.remainder)
		}
		return f.OnDone(s.result)
	default:
		return f.OnDone(s.result)
	}
}

package iteratee

// Fold is a pure left-fold collector: it feeds every element of the stream
// through f starting at init, completing Early with End as leftover once
// the stream ends (so whatever runs after it also observes termination).
func Fold[E, A any](init A, f func(A, E) A) Step[E, A] {
	var loop func(acc A) Step[E, A]
	loop = func(acc A) Step[E, A] {
		return PureCont(func(in Input[E]) Step[E, A] {
			return FoldInput(in, InputFolder[E, Step[E, A]]{
				OnEmpty: func() Step[E, A] {
					return loop(acc)
				},
				OnEl: func(e E) Step[E, A] {
					return loop(f(acc, e))
				},
				OnChunk: func(e1, e2 E, rest []E) Step[E, A] {
					acc2 := f(f(acc, e1), e2)
					for _, e := range rest {
						acc2 = f(acc2, e)
					}
					return loop(acc2)
				},
				OnEnd: func() Step[E, A] {
					return Early(acc, End[E]())
				},
			})
		})
	}
	return loop(init)
}

// FoldM is Fold with an effectful accumulator function: each chunk
// element's effect is sequenced left to right before the next input is
// accepted.
func FoldM[E, A any](init A, f func(A, E) IO[A]) Step[E, A] {
	var loop func(acc A) Step[E, A]
	loop = func(acc A) Step[E, A] {
		return Cont(func(in Input[E]) IO[Step[E, A]] {
			return FoldInput(in, InputFolder[E, IO[Step[E, A]]]{
				OnEmpty: func() IO[Step[E, A]] {
					return Pure(loop(acc))
				},
				OnEl: func(e E) IO[Step[E, A]] {
					return MapIO(f(acc, e), loop)
				},
				OnChunk: func(e1, e2 E, rest []E) IO[Step[E, A]] {
					return FlatMapIO(f(acc, e1), func(acc2 A) IO[Step[E, A]] {
						return FlatMapIO(f(acc2, e2), func(acc3 A) IO[Step[E, A]] {
							return foldRestM(acc3, rest, f, loop)
						})
					})
				},
				OnEnd: func() IO[Step[E, A]] {
					return Pure(Early(acc, End[E]()))
				},
			})
		})
	}
	return loop(init)
}

func foldRestM[E, A any](acc A, rest []E, f func(A, E) IO[A], loop func(A) Step[E, A]) IO[Step[E, A]] {
	if len(rest) == 0 {
		return Pure(loop(acc))
	}
	return FlatMapIO(f(acc, rest[0]), func(acc2 A) IO[Step[E, A]] {
		return foldRestM(acc2, rest[1:], f, loop)
	})
}

// Drain accumulates every element into an ordered slice, completing Early
// with End as leftover once the stream ends.
func Drain[E any]() Step[E, []E] {
	return DrainTo[E](Container[E, []E]{
		Empty: func() []E { return nil },
		Append: func(acc []E, e E) []E {
			return append(acc, e)
		},
	})
}

// Container is the two operations DrainTo needs from a target container
// type: a fresh empty value and a way to append one element, restating the
// usual "monoid in a functor" capability as a plain record.
type Container[E, C any] struct {
	Empty  func() C
	Append func(C, E) C
}

// DrainTo generalises Drain across any container capability.
func DrainTo[E, C any](c Container[E, C]) Step[E, C] {
	var loop func(acc C) Step[E, C]
	loop = func(acc C) Step[E, C] {
		return PureCont(func(in Input[E]) Step[E, C] {
			return FoldInput(in, InputFolder[E, Step[E, C]]{
				OnEmpty: func() Step[E, C] {
					return loop(acc)
				},
				OnEl: func(e E) Step[E, C] {
					return loop(c.Append(acc, e))
				},
				OnChunk: func(e1, e2 E, rest []E) Step[E, C] {
					acc2 := c.Append(c.Append(acc, e1), e2)
					for _, e := range rest {
						acc2 = c.Append(acc2, e)
					}
					return loop(acc2)
				},
				OnEnd: func() Step[E, C] {
					return Early(acc, End[E]())
				},
			})
		})
	}
	return loop(c.Empty())
}

// Head consumes exactly one element: el is Done, a chunk's first element is
// Early with the rest of the chunk as leftover, and end is Early with None.
func Head[E any]() Step[E, Maybe[E]] {
	return PureCont(func(in Input[E]) Step[E, Maybe[E]] {
		return FoldInput(in, InputFolder[E, Step[E, Maybe[E]]]{
			OnEmpty: func() Step[E, Maybe[E]] {
				return Head[E]()
			},
			OnEl: func(e E) Step[E, Maybe[E]] {
				return Done(Some(e))
			},
			OnChunk: func(e1, e2 E, rest []E) Step[E, Maybe[E]] {
				return Early(Some(e1), normalizeInput(append([]E{e2}, rest...)))
			},
			OnEnd: func() Step[E, Maybe[E]] {
				return Early(None[E](), End[E]())
			},
		})
	})
}

// Peek is Head without consumption: it always reports the entire Input it
// was fed as leftover.
func Peek[E any]() Step[E, Maybe[E]] {
	return PureCont(func(in Input[E]) Step[E, Maybe[E]] {
		return FoldInput(in, InputFolder[E, Step[E, Maybe[E]]]{
			OnEmpty: func() Step[E, Maybe[E]] {
				return Peek[E]()
			},
			OnEl: func(e E) Step[E, Maybe[E]] {
				return Early(Some(e), in)
			},
			OnChunk: func(e1, e2 E, rest []E) Step[E, Maybe[E]] {
				return Early(Some(e1), in)
			},
			OnEnd: func() Step[E, Maybe[E]] {
				return Early(None[E](), End[E]())
			},
		})
	})
}

// Take collects up to n elements in order. n <= 0 completes Done([]) right
// away without looking at any input.
func Take[E any](n int) Step[E, []E] {
	if n <= 0 {
		return Done[E, []E]([]E{})
	}
	return takeLoop[E]([]E{}, n)
}

func takeLoop[E any](acc []E, n int) Step[E, []E] {
	return PureCont(func(in Input[E]) Step[E, []E] {
		return FoldInput(in, InputFolder[E, Step[E, []E]]{
			OnEmpty: func() Step[E, []E] {
				return takeLoop(acc, n)
			},
			OnEl: func(e E) Step[E, []E] {
				if n == 1 {
					return Done(append(acc, e))
				}
				return takeLoop(append(acc, e), n-1)
			},
			OnChunk: func(e1, e2 E, rest []E) Step[E, []E] {
				all := append([]E{e1, e2}, rest...)
				switch l := len(all); {
				case l < n:
					return takeLoop(append(acc, all...), n-l)
				case l == n:
					return Done(append(acc, all...))
				default:
					return Early(append(acc, all[:n]...), normalizeInput(all[n:]))
				}
			},
			OnEnd: func() Step[E, []E] {
				return Early(acc, End[E]())
			},
		})
	})
}

// TakeWhile collects the longest prefix satisfying p; the first element
// that fails p (and everything after it in the same chunk) becomes the
// leftover.
func TakeWhile[E any](p func(E) bool) Step[E, []E] {
	return takeWhileLoop[E](nil, p)
}

func takeWhileLoop[E any](acc []E, p func(E) bool) Step[E, []E] {
	return PureCont(func(in Input[E]) Step[E, []E] {
		return FoldInput(in, InputFolder[E, Step[E, []E]]{
			OnEmpty: func() Step[E, []E] {
				return takeWhileLoop(acc, p)
			},
			OnEl: func(e E) Step[E, []E] {
				if !p(e) {
					return Early(acc, El(e))
				}
				return takeWhileLoop(append(acc, e), p)
			},
			OnChunk: func(e1, e2 E, rest []E) Step[E, []E] {
				all := append([]E{e1, e2}, rest...)
				i := 0
				for i < len(all) && p(all[i]) {
					i++
				}
				acc2 := append(acc, all[:i]...)
				if i == len(all) {
					return takeWhileLoop(acc2, p)
				}
				return Early(acc2, normalizeInput(all[i:]))
			},
			OnEnd: func() Step[E, []E] {
				return Early(acc, End[E]())
			},
		})
	})
}

// Drop discards up to n elements. n <= 0 completes Done immediately.
func Drop[E any](n int) Step[E, struct{}] {
	if n <= 0 {
		return Done[E, struct{}](struct{}{})
	}
	return dropLoop[E](n)
}

func dropLoop[E any](n int) Step[E, struct{}] {
	return PureCont(func(in Input[E]) Step[E, struct{}] {
		return FoldInput(in, InputFolder[E, Step[E, struct{}]]{
			OnEmpty: func() Step[E, struct{}] {
				return dropLoop[E](n)
			},
			OnEl: func(e E) Step[E, struct{}] {
				if n <= 1 {
					return Done(struct{}{})
				}
				return dropLoop[E](n - 1)
			},
			OnChunk: func(e1, e2 E, rest []E) Step[E, struct{}] {
				l := 2 + len(rest)
				if l <= n {
					return Drop[E](n - l)
				}
				all := append([]E{e1, e2}, rest...)
				return Early(struct{}{}, normalizeInput(all[n:]))
			},
			OnEnd: func() Step[E, struct{}] {
				return Early(struct{}{}, End[E]())
			},
		})
	})
}

// DropWhile discards elements while p holds, leaving the first element that
// fails p (and whatever follows it in the same chunk) as leftover.
func DropWhile[E any](p func(E) bool) Step[E, struct{}] {
	return PureCont(func(in Input[E]) Step[E, struct{}] {
		return FoldInput(in, InputFolder[E, Step[E, struct{}]]{
			OnEmpty: func() Step[E, struct{}] {
				return DropWhile[E](p)
			},
			OnEl: func(e E) Step[E, struct{}] {
				if p(e) {
					return DropWhile[E](p)
				}
				return Early(struct{}{}, El(e))
			},
			OnChunk: func(e1, e2 E, rest []E) Step[E, struct{}] {
				all := append([]E{e1, e2}, rest...)
				i := 0
				for i < len(all) && p(all[i]) {
					i++
				}
				if i == len(all) {
					return DropWhile[E](p)
				}
				return Early(struct{}{}, normalizeInput(all[i:]))
			},
			OnEnd: func() Step[E, struct{}] {
				return Early(struct{}{}, End[E]())
			},
		})
	})
}

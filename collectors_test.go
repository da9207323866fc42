package iteratee_test

import (
	"context"
	"reflect"
	"testing"

	"github.com/go-iteratee/iteratee"
)

// runInputs feeds a sequence of Inputs into s, returning the final Step.
func runInputs[E, A any](t *testing.T, s iteratee.Step[E, A], ins ...iteratee.Input[E]) iteratee.Step[E, A] {
	t.Helper()
	cur := s
	for _, in := range ins {
		cur = feedPure(t, cur, in)
	}
	return cur
}

func TestTakeSplitsOversizedChunk(t *testing.T) {
	// scenario 1: take(3) fed chunk(1,2,[3,4,5]) -> Early([1,2,3], chunk(4,5,[]))
	got := runInputs(t, iteratee.Take[int](3), iteratee.Chunk(1, 2, []int{3, 4, 5}))

	if got.IsDone() == false {
		t.Fatal("expected a completed step")
	}
	if want := []int{1, 2, 3}; !reflect.DeepEqual(got.UnsafeValue(), want) {
		t.Errorf("value = %v, want %v", got.UnsafeValue(), want)
	}

	rem := remainderOf(t, got)
	if want := []int{4, 5}; !reflect.DeepEqual(rem.ToVector(), want) {
		t.Errorf("remainder = %v, want %v", rem.ToVector(), want)
	}
}

func TestTakeExactElementsDone(t *testing.T) {
	// scenario 2: take(3) fed el(1), el(2), el(3) -> Done([1,2,3])
	got := runInputs(t, iteratee.Take[int](3), iteratee.El(1), iteratee.El(2), iteratee.El(3))

	if want := []int{1, 2, 3}; !reflect.DeepEqual(got.UnsafeValue(), want) {
		t.Errorf("value = %v, want %v", got.UnsafeValue(), want)
	}

	isDoneNotEarly := iteratee.FoldWith(got, iteratee.StepFolder[int, []int, bool]{
		OnDone:  func([]int) bool { return true },
		OnEarly: func([]int, iteratee.Input[int]) bool { return false },
	})
	if !isDoneNotEarly {
		t.Error("exact-count take should complete Done, not Early")
	}
}

func TestTakeWhileSpansPrefix(t *testing.T) {
	// scenario 3: takeWhile(x<3) fed chunk(1,2,[3,4]) -> Early([1,2], chunk(3,4,[]))
	got := runInputs(t, iteratee.TakeWhile(func(x int) bool { return x < 3 }), iteratee.Chunk(1, 2, []int{3, 4}))

	if want := []int{1, 2}; !reflect.DeepEqual(got.UnsafeValue(), want) {
		t.Errorf("value = %v, want %v", got.UnsafeValue(), want)
	}
	rem := remainderOf(t, got)
	if want := []int{3, 4}; !reflect.DeepEqual(rem.ToVector(), want) {
		t.Errorf("remainder = %v, want %v", rem.ToVector(), want)
	}
}

func TestDropDiscardsThenLeavesRemainder(t *testing.T) {
	// scenario 4: drop(2) fed chunk(1,2,[3,4,5]) -> Early((), chunk(3,4,[5]))
	got := runInputs(t, iteratee.Drop[int](2), iteratee.Chunk(1, 2, []int{3, 4, 5}))
	rem := remainderOf(t, got)
	if want := []int{3, 4, 5}; !reflect.DeepEqual(rem.ToVector(), want) {
		t.Errorf("remainder = %v, want %v", rem.ToVector(), want)
	}
}

func TestFoldSumsThenEndsWithEndLeftover(t *testing.T) {
	// scenario 5: fold(0,+) fed el(1), chunk(2,3,[4]), end -> 10, leftover end
	got := runInputs(t, iteratee.Fold(0, func(acc, e int) int { return acc + e }),
		iteratee.El(1), iteratee.Chunk(2, 3, []int{4}), iteratee.End[int]())

	if got.UnsafeValue() != 10 {
		t.Errorf("value = %d, want 10", got.UnsafeValue())
	}
	rem := remainderOf(t, got)
	if !rem.IsEnd() {
		t.Errorf("leftover should be end, got %v", rem)
	}
}

func TestHeadAndPeek(t *testing.T) {
	// scenario 7: head fed el(7) -> Done(Some(7)); peek fed el(7) -> Early(Some(7), el(7))
	head := feedPure(t, iteratee.Head[int](), iteratee.El(7))
	v, ok := head.UnsafeValue().Get()
	if !ok || v != 7 {
		t.Errorf("head value = %v, %v, want 7, true", v, ok)
	}
	isDone := iteratee.FoldWith(head, iteratee.StepFolder[int, iteratee.Maybe[int], bool]{
		OnDone:  func(iteratee.Maybe[int]) bool { return true },
		OnEarly: func(iteratee.Maybe[int], iteratee.Input[int]) bool { return false },
	})
	if !isDone {
		t.Error("head on a single element should be Done, not Early")
	}

	peek := feedPure(t, iteratee.Peek[int](), iteratee.El(7))
	pv, pok := peek.UnsafeValue().Get()
	if !pok || pv != 7 {
		t.Errorf("peek value = %v, %v, want 7, true", pv, pok)
	}
	rem := remainderOf(t, peek)
	if want := []int{7}; !reflect.DeepEqual(rem.ToVector(), want) {
		t.Errorf("peek should leave the whole fed input as remainder, got %v", rem.ToVector())
	}
}

func TestHeadOnEmptyStream(t *testing.T) {
	got := feedPure(t, iteratee.Head[int](), iteratee.End[int]())
	if got.UnsafeValue().IsSome() {
		t.Error("head on an empty stream should yield None")
	}
}

func TestDropWhileThenDrain(t *testing.T) {
	xs := []int{1, 2, 3, 4, 5}
	p := func(x int) bool { return x < 3 }

	dropped, err := iteratee.Bind(iteratee.DropWhile(p), func(struct{}) iteratee.IO[iteratee.Step[int, []int]] {
		return iteratee.Pure(iteratee.Drain[int]())
	})(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	got, err := iteratee.RunSlice(context.Background(), xs, dropped)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := []int{3, 4, 5}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("dropWhile then drain = %v, want %v", got, want)
	}
}

func TestFoldMSequencesEffects(t *testing.T) {
	var order []int
	f := func(acc int, e int) iteratee.IO[int] {
		return func(context.Context) (int, error) {
			order = append(order, e)
			return acc + e, nil
		}
	}

	s := iteratee.FoldM(0, f)
	got, err := iteratee.RunSlice(context.Background(), []int{1, 2, 3, 4}, s)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != 10 {
		t.Errorf("sum = %d, want 10", got)
	}
	if want := []int{1, 2, 3, 4}; !reflect.DeepEqual(order, want) {
		t.Errorf("effects ran out of order: %v, want %v", order, want)
	}
}

func TestDrainToCollectsIntoCustomContainer(t *testing.T) {
	sumContainer := iteratee.Container[int, int]{
		Empty:  func() int { return 0 },
		Append: func(acc int, e int) int { return acc + e },
	}
	got, err := iteratee.RunSlice(context.Background(), []int{1, 2, 3}, iteratee.DrainTo(sumContainer))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != 6 {
		t.Errorf("DrainTo(sum) = %d, want 6", got)
	}
}

// remainderOf extracts the leftover Input of an already-completed Step,
// failing the test if the Step is Done with no leftover at all.
func remainderOf[E, A any](t *testing.T, s iteratee.Step[E, A]) iteratee.Input[E] {
	t.Helper()
	return iteratee.FoldWith(s, iteratee.StepFolder[E, A, iteratee.Input[E]]{
		OnDone: func(A) iteratee.Input[E] {
			t.Fatal("step has no leftover (Done, not Early)")
			return iteratee.Input[E]{}
		},
		OnEarly: func(_ A, rem iteratee.Input[E]) iteratee.Input[E] {
			return rem
		},
	})
}

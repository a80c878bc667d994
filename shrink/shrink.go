package shrink

import (
	"context"
	"fmt"
	"io"
	"iter"

	"goprop/tree"
)

// Result of a shrink search.
type Result[T any] struct {
	// The smallest failing value found. Equal to the starting value when no
	// smaller failing candidate exists.
	Value T
	// The error raised by evaluating Value.
	Err error
	// Number of accepted shrink steps, that is, how many times a smaller
	// failing candidate replaced the current one. Zero means shrinking was
	// impossible.
	Steps int
	// Total number of candidate evaluations performed.
	Evals int
	// True when the search stopped because the evaluation budget ran out
	// rather than because the candidates were exhausted.
	BudgetExhausted bool
}

// Search for a locally minimal failing value below the provided tree node.
//
// The search walks the tree depth first: whenever a child also fails the
// evaluation it becomes the current problem and its own children are explored
// next; children that pass are discarded. A single parent level cursor is
// retained for backtracking: when the current problem has no more children,
// the search resumes with the siblings of the node it descended from. Only
// one level is kept, deliberately trading completeness for bounded state;
// combined with the one-dimension-at-a-time tree construction this finds the
// same minima as a full backtracking search in almost all realistic cases.
//
// eval is called once per candidate; a non-nil return means the candidate
// still reproduces the failure. The search performs at most maxEvals
// evaluations; on budget exhaustion the best value found so far is returned
// with BudgetExhausted set. One progress dot is written to progress for every
// accepted step when progress is non-nil.
//
// Cancelling the context aborts the search immediately: the context error is
// returned and no further candidates are evaluated.
func Search[T any](ctx context.Context, failing *tree.Tree[T], failure error, eval func(T) error, maxEvals int, progress io.Writer) (Result[T], error) {
	res := Result[T]{
		Value: failing.Root(),
		Err:   failure,
	}

	next, stop := iter.Pull(failing.Children())
	var backNext func() (*tree.Tree[T], bool)
	var backStop func()
	defer func() {
		stop()
		if backStop != nil {
			backStop()
		}
	}()

	for {
		if err := ctx.Err(); err != nil {
			return res, err
		}
		child, ok := next()
		if !ok {
			// The current problem's candidates are exhausted. Resume the
			// retained parent cursor if there is one, otherwise the search
			// is complete.
			stop()
			if backNext == nil {
				return res, nil
			}
			next, stop = backNext, backStop
			backNext, backStop = nil, nil
			continue
		}
		if res.Evals >= maxEvals {
			res.BudgetExhausted = true
			return res, nil
		}
		res.Evals++
		err := eval(child.Root())
		if err == nil {
			continue
		}

		// The child still fails, so it becomes the new problem. The sibling
		// cursor goes into the single backtrack slot, displacing whatever
		// was there.
		res.Steps++
		res.Value = child.Root()
		res.Err = err
		if backStop != nil {
			backStop()
		}
		backNext, backStop = next, stop
		next, stop = iter.Pull(child.Children())
		if progress != nil {
			fmt.Fprint(progress, ".")
		}
	}
}

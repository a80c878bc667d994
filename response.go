package goprop

import (
	"bytes"
	"errors"
	"fmt"
	"text/tabwriter"

	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

// CheckResponse is the response of a property check.
type CheckResponse interface {
	// Returns a boolean that is true if the property held for all trials,
	// and a string describing the outcome. For a failed check the string
	// contains the original and the shrunken counterexample.
	Response() (bool, string)
}

// Result of a property check.
type Result struct {
	passed    bool
	successes int
	err       error
}

// Returns true if the property held for the configured number of trials.
func (r Result) Passed() bool {
	return r.passed
}

// Returns the number of successful trials performed.
func (r Result) Successes() int {
	return r.successes
}

// Returns the failure of the check, or nil when it passed.
//
// A property failure is reported as a *FailedError wrapping the error raised
// on the minimal counterexample, so errors.Is and errors.As reach the
// underlying failure. Generator exhaustion surfaces as an error wrapping
// gen.ExhaustedError, and a cancelled check returns the context error.
func (r Result) Err() error {
	return r.err
}

// Generate a response describing the outcome of the check.
func (r Result) Response() (bool, string) {
	if r.passed {
		return true, fmt.Sprintf("OK, passed %v trials", r.successes)
	}
	var failed *FailedError
	if errors.As(r.err, &failed) {
		return false, failed.describe()
	}
	return false, fmt.Sprintf("Check aborted: %v", r.err)
}

// FailedError reports a property failure together with its shrink
// diagnostics: the input that first reproduced the bug, the minimal input the
// shrink search arrived at, the errors both of them raised, and the search
// effort spent.
type FailedError struct {
	Original    Bindings
	OriginalErr error
	Minimal     Bindings
	MinimalErr  error
	// Number of successful trials before the failure.
	Successes int
	// Accepted shrink steps; zero means shrinking was impossible.
	ShrinkSteps int
	// Total candidate evaluations spent by the shrink search.
	ShrinkEvals int
	// True when the shrink search stopped on its evaluation budget.
	BudgetExhausted bool
}

func (e *FailedError) Error() string {
	return fmt.Sprintf("goprop: property failed after %v successful trials: %v", e.Successes, e.MinimalErr)
}

func (e *FailedError) Unwrap() error {
	return e.MinimalErr
}

func (e *FailedError) describe() string {
	var buffer bytes.Buffer
	wrt := tabwriter.NewWriter(&buffer, 4, 4, 0, ' ', 0)
	fmt.Fprintf(wrt, "Property failed after %v successful trials.\n", e.Successes)
	fmt.Fprintf(wrt, "Original failure:\n")
	writeBindings(wrt, e.Original)
	fmt.Fprintf(wrt, "\terror:\t%v\n", e.OriginalErr)
	if e.ShrinkSteps == 0 {
		fmt.Fprintf(wrt, "(shrinking impossible)\n")
	} else {
		fmt.Fprintf(wrt, "Shrunken failure (%v steps, %v evaluations):\n", e.ShrinkSteps, e.ShrinkEvals)
		writeBindings(wrt, e.Minimal)
		fmt.Fprintf(wrt, "\terror:\t%v\n", e.MinimalErr)
	}
	if e.BudgetExhausted {
		fmt.Fprintf(wrt, "Note: shrink budget exhausted, reporting the best counterexample found so far\n")
	}
	wrt.Flush()
	return buffer.String()
}

func writeBindings(wrt *tabwriter.Writer, b Bindings) {
	keys := maps.Keys(b)
	slices.Sort(keys)
	for _, k := range keys {
		fmt.Fprintf(wrt, "\t%v:\t%#v\n", k, b[k])
	}
}

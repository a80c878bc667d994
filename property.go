package goprop

import (
	"fmt"
	"log"
	"runtime/debug"

	"goprop/gen"
	"goprop/shrink"
)

// A Bindings maps each declared variable name to its generated value for one
// trial. The keys are exactly the names declared in the Vars of the check and
// stay stable across a trial's shrink sequence; only the values change.
type Bindings map[string]any

// Vars declares the generators of a property check, one per named variable.
type Vars map[string]gen.Gen[any]

// Check that the property holds for generated variable bindings.
//
// Each trial generates one value per declared variable, combines them into a
// Bindings map and evaluates the property. A nil return counts as a
// successful trial; an error or a panic means the bindings reproduce a bug
// and triggers the shrink search, which reduces the counterexample to a
// locally minimal one before reporting. The generated values grow with the
// number of successful trials, so later trials probe larger and more extreme
// inputs.
//
// The property function receives the bindings explicitly and must not retain
// them across calls. ForAll panics when no variables are declared; every
// other failure is reported through the returned Result.
func ForAll(vars Vars, property func(Bindings) error, opts ...Option) Result {
	if len(vars) == 0 {
		log.Panicf("goprop: at least one variable must be declared")
	}
	cfg := newConfig(opts)

	g := gen.FixedMapOf(map[string]gen.Gen[any](vars))
	if cfg.where != nil {
		g = g.Where(func(m map[string]any) bool {
			return cfg.where(Bindings(m))
		})
	}
	eval := func(m map[string]any) error {
		return cfg.runTrial(property, m)
	}

	successes := 0
	attempts := 0
	for successes < cfg.numRuns {
		if err := cfg.ctx.Err(); err != nil {
			return Result{successes: successes, err: err}
		}
		if attempts >= cfg.maxGenerateAttempts {
			err := fmt.Errorf("%w: exhausted %v generate attempts after %v successful trials",
				gen.ExhaustedError, attempts, successes)
			return Result{successes: successes, err: err}
		}
		attempts++

		p := gen.Params{
			Size:        successes + 1,
			Rand:        cfg.rand,
			MaxAttempts: cfg.maxAttempts,
			Epoch:       cfg.epoch,
		}
		t, err := g.Generate(p)
		if err != nil {
			return Result{successes: successes, err: err}
		}

		perr := eval(t.Root())
		if perr == nil {
			successes++
			if cfg.verbose != nil {
				fmt.Fprint(cfg.verbose, ".")
			}
			continue
		}

		// Found a counterexample. Shrink it before reporting.
		if cfg.verbose != nil {
			fmt.Fprintf(cfg.verbose, "\nFailed after %v successful trials, shrinking: ", successes)
		}
		original := copyBindings(t.Root())
		sres, serr := shrink.Search(cfg.ctx, t, perr, eval, cfg.maxShrinkSteps, cfg.verbose)
		if serr != nil {
			// Aborted by the context; skip shrink reporting entirely.
			return Result{successes: successes, err: serr}
		}
		if cfg.verbose != nil {
			fmt.Fprintln(cfg.verbose)
		}
		return Result{
			successes: successes,
			err: &FailedError{
				Original:        original,
				OriginalErr:     perr,
				Minimal:         copyBindings(sres.Value),
				MinimalErr:      sres.Err,
				Successes:       successes,
				ShrinkSteps:     sres.Steps,
				ShrinkEvals:     sres.Evals,
				BudgetExhausted: sres.BudgetExhausted,
			},
		}
	}
	return Result{passed: true, successes: successes}
}

// Evaluate the property on one set of bindings, running the configured hooks
// around it. A panic raised by the property is recovered and treated as a
// failing trial, matching the contract that any failure of the property
// block reproduces the bug.
func (cfg *config) runTrial(property func(Bindings) error, m map[string]any) (err error) {
	for _, f := range cfg.before {
		f()
	}
	defer func() {
		for _, f := range cfg.after {
			f()
		}
	}()
	defer func() {
		if p := recover(); p != nil {
			err = fmt.Errorf("property panicked: %v \nStack Trace:\n %s", p, debug.Stack())
		}
	}()
	return property(Bindings(m))
}

func copyBindings(m map[string]any) Bindings {
	out := make(Bindings, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

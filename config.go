package goprop

import (
	"context"
	"io"
	"math/rand"
	"time"

	"goprop/gen"
)

// Default number of successful trials required for a property to pass.
const DefaultNumRuns = 100

// Default bound on shrink candidate evaluations.
const DefaultMaxShrinkSteps = 1000

type config struct {
	numRuns             int
	maxGenerateAttempts int
	maxShrinkSteps      int
	maxAttempts         int
	verbose             io.Writer
	rand                *rand.Rand
	epoch               time.Time
	ctx                 context.Context
	where               func(Bindings) bool
	before              []func()
	after               []func()
}

// Apply the check options on top of the process-wide defaults.
// The defaults themselves are never mutated.
func newConfig(opts []Option) *config {
	cfg := &config{
		numRuns:        DefaultNumRuns,
		maxShrinkSteps: DefaultMaxShrinkSteps,
		maxAttempts:    gen.DefaultMaxAttempts,
		epoch:          gen.DefaultEpoch,
		ctx:            context.Background(),
	}
	for _, opt := range opts {
		switch t := opt.(type) {
		case numRunsOption:
			cfg.numRuns = t.n
		case maxGenerateAttemptsOption:
			cfg.maxGenerateAttempts = t.n
		case maxShrinkStepsOption:
			cfg.maxShrinkSteps = t.n
		case maxAttemptsOption:
			cfg.maxAttempts = t.n
		case verboseOption:
			cfg.verbose = t.w
		case seedOption:
			cfg.rand = rand.New(rand.NewSource(t.seed))
		case randOption:
			cfg.rand = t.r
		case epochOption:
			cfg.epoch = t.t
		case contextOption:
			cfg.ctx = t.ctx
		case whereOption:
			cfg.where = t.pred
		case beforeOption:
			cfg.before = append(cfg.before, t.f)
		case afterOption:
			cfg.after = append(cfg.after, t.f)
		}
	}
	if cfg.maxGenerateAttempts <= 0 {
		cfg.maxGenerateAttempts = 10 * cfg.numRuns
	}
	return cfg
}

type Option interface{}

type numRunsOption struct{ n int }

// Configure the number of successful trials required for the property to
// pass.
//
// Default value is 100.
func NumRuns(n int) Option {
	return numRunsOption{n: n}
}

type maxGenerateAttemptsOption struct{ n int }

// Configure the total number of generation attempts allowed while collecting
// the required successful trials.
//
// Default value is 10 times the number of runs.
func MaxGenerateAttempts(n int) Option {
	return maxGenerateAttemptsOption{n: n}
}

type maxShrinkStepsOption struct{ n int }

// Configure the maximum number of candidate evaluations performed by the
// shrink search. When the budget runs out the best counterexample found so
// far is reported together with a diagnostic note.
//
// Default value is 1000.
func MaxShrinkSteps(n int) Option {
	return maxShrinkStepsOption{n: n}
}

type maxAttemptsOption struct{ n int }

// Configure how many consecutive filtered candidates a generator tolerates
// before giving up with an exhaustion error.
//
// Default value is 100.
func MaxConsecutiveAttempts(n int) Option {
	return maxAttemptsOption{n: n}
}

type verboseOption struct{ w io.Writer }

// Write progress output to w: one dot per successful trial and per accepted
// shrink step.
func Verbose(w io.Writer) Option {
	return verboseOption{w: w}
}

type seedOption struct{ seed int64 }

// Seed the random source of the check. Two checks with the same seed and
// configuration generate identical trials.
func Seed(seed int64) Option {
	return seedOption{seed: seed}
}

type randOption struct{ r *rand.Rand }

// Use the provided random source for the check.
//
// A random source must not be shared between concurrently running checks.
func WithRand(r *rand.Rand) Option {
	return randOption{r: r}
}

type epochOption struct{ t time.Time }

// Configure the epoch used by date and time generators.
func Epoch(t time.Time) Option {
	return epochOption{t: t}
}

type contextOption struct{ ctx context.Context }

// Run the check under the provided context. Cancelling the context aborts
// both generation and shrinking immediately, so an interrupt is not masked by
// a long shrink search.
func WithContext(ctx context.Context) Option {
	return contextOption{ctx: ctx}
}

type whereOption struct{ pred func(Bindings) bool }

// Restrict the generated bindings to those satisfying pred. Rejected bindings
// are regenerated and do not count as trials.
func Where(pred func(Bindings) bool) Option {
	return whereOption{pred: pred}
}

type beforeOption struct{ f func() }

// Run f before every trial, including the trials performed while shrinking.
func Before(f func()) Option {
	return beforeOption{f: f}
}

type afterOption struct{ f func() }

// Run f after every trial, including the trials performed while shrinking.
func After(f func()) Option {
	return afterOption{f: f}
}

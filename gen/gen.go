package gen

import (
	"errors"
	"fmt"
	"math/rand"
	"time"

	"goprop/tree"
)

var (
	// Returned when a filter rejected too many candidates in a row.
	// Indicates that a Where predicate or uniqueness constraint is too
	// aggressive for the wrapped generator and should be refined.
	ExhaustedError = errors.New("gen: too many consecutive candidates were rejected")
	// Returned when a generator is invoked with malformed arguments,
	// such as a negative size or an empty range.
	ArgumentError = errors.New("gen: invalid generator argument")
)

// Default size used when the caller does not pick one explicitly.
const DefaultSize = 10

// Default number of consecutive rejected candidates tolerated before a
// generation attempt fails with ExhaustedError.
const DefaultMaxAttempts = 100

// Default epoch for generators deriving date and time values.
var DefaultEpoch = time.Date(2000, time.January, 1, 0, 0, 0, 0, time.UTC)

var defaultRand = rand.New(rand.NewSource(rand.Int63()))

// Params carries the inputs of a single generation.
//
// Size controls how large or extreme generated values tend to be. Rand is the
// random source consumed by the generation; for a fixed Rand state the
// produced tree is deterministic. MaxAttempts bounds consecutive filtered
// candidates, Epoch seeds the date and time generators.
// Params are threaded explicitly rather than held in shared globals, so
// concurrent property checks can each use an independent random stream.
type Params struct {
	Size        int
	Rand        *rand.Rand
	MaxAttempts int
	Epoch       time.Time
}

// Returns the process-wide default parameters.
// These are convenience values for callers that do not configure their own.
func DefaultParams() Params {
	return Params{
		Size:        DefaultSize,
		Rand:        defaultRand,
		MaxAttempts: DefaultMaxAttempts,
		Epoch:       DefaultEpoch,
	}
}

// A generator of values of type T together with their shrink candidates.
//
// A Gen wraps a generation function producing a lazy tree: the root is the
// generated value, the children are progressively simpler variants explored
// during shrinking. Gen values are stateless and freely reusable; all
// combinators return new generators without mutating their inputs.
type Gen[T any] struct {
	f func(p Params) (*tree.Tree[T], error)
}

// Create a generator from a raw generation function.
func New[T any](f func(p Params) (*tree.Tree[T], error)) Gen[T] {
	return Gen[T]{f: f}
}

// Generate a shrink tree of candidate values.
//
// If the produced tree was rejected by a filter the generation is retried, up
// to p.MaxAttempts consecutive times, each retry advancing p.Rand. Returns an
// error wrapping ExhaustedError when every attempt was rejected, and an error
// wrapping ArgumentError for a negative size. Argument errors are not retried.
func (g Gen[T]) Generate(p Params) (*tree.Tree[T], error) {
	if p.Size < 0 {
		return nil, fmt.Errorf("%w: negative size %v", ArgumentError, p.Size)
	}
	if p.Rand == nil {
		p.Rand = defaultRand
	}
	attempts := p.MaxAttempts
	if attempts <= 0 {
		attempts = DefaultMaxAttempts
	}
	for i := 0; i < attempts; i++ {
		t, err := g.f(p)
		if err != nil {
			return nil, err
		}
		if !t.IsFiltered() {
			return t, nil
		}
	}
	return nil, fmt.Errorf("%w: gave up after %v attempts", ExhaustedError, attempts)
}

// Generate a single value, discarding its shrink candidates.
func (g Gen[T]) Call(p Params) (T, error) {
	t, err := g.Generate(p)
	if err != nil {
		var zero T
		return zero, err
	}
	return t.Root(), nil
}

// Generate n independent values. Intended for debugging and introspection of
// generators, not used by the checking loop.
func (g Gen[T]) Sample(n int, p Params) ([]T, error) {
	out := make([]T, 0, n)
	for i := 0; i < n; i++ {
		v, err := g.Call(p)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}

// A generator that always produces the provided value, with no shrink
// candidates, independent of size and random source.
func Wrap[T any](v T) Gen[T] {
	return New(func(p Params) (*tree.Tree[T], error) {
		return tree.Leaf(v), nil
	})
}

// Monadic composition of generators.
//
// Generates an outer tree from g, then binds it with f: for every candidate
// value x the tree produced by f(x) is generated with the same parameters.
// The composite shrinks through the inner tree before replacing the outer
// value. Wrap and Bind together satisfy the monad laws; the remaining
// combinators are derivable from them.
func Bind[T, U any](g Gen[T], f func(T) Gen[U]) Gen[U] {
	return New(func(p Params) (*tree.Tree[U], error) {
		outer, err := g.f(p)
		if err != nil {
			return nil, err
		}
		var innerErr error
		res := tree.Bind(outer, func(x T) *tree.Tree[U] {
			t, err := f(x).Generate(p)
			if err != nil {
				if innerErr == nil {
					innerErr = err
				}
				return tree.Filtered[U]()
			}
			return t
		})
		if innerErr != nil {
			return nil, innerErr
		}
		return res, nil
	})
}

// Transform every generated value with f, preserving the shape of the shrink
// tree. Equivalent to Bind(g, func(x) { return Wrap(f(x)) }) but avoids
// regenerating the tree structure.
func Map[T, U any](g Gen[T], f func(T) U) Gen[U] {
	return New(func(p Params) (*tree.Tree[U], error) {
		t, err := g.f(p)
		if err != nil {
			return nil, err
		}
		return tree.Map(t, f), nil
	})
}

// Restrict the generator to values satisfying pred.
//
// Candidates failing the predicate are marked as filtered: at generation time
// they are retried up to MaxAttempts times, and during shrinking they are
// skipped by the tree traversal. If the predicate rejects too large a
// fraction of candidates, Generate fails with ExhaustedError.
func (g Gen[T]) Where(pred func(T) bool) Gen[T] {
	return New(func(p Params) (*tree.Tree[T], error) {
		t, err := g.f(p)
		if err != nil {
			return nil, err
		}
		return tree.Filter(t, pred), nil
	})
}

// Transform the effective size before delegating to the generator.
// f must return a nonnegative size, otherwise generation fails with an error
// wrapping ArgumentError.
func (g Gen[T]) Resize(f func(size int) int) Gen[T] {
	return New(func(p Params) (*tree.Tree[T], error) {
		size := f(p.Size)
		if size < 0 {
			return nil, fmt.Errorf("%w: resize produced negative size %v", ArgumentError, size)
		}
		p.Size = size
		return g.f(p)
	})
}

// Build a generator that depends on the effective size.
func Sized[T any](f func(size int) Gen[T]) Gen[T] {
	return New(func(p Params) (*tree.Tree[T], error) {
		return f(p.Size).f(p)
	})
}

// Erase the element type so generators of different types can be combined
// into one heterogeneous composite.
func AsAny[T any](g Gen[T]) Gen[any] {
	return Map(g, func(v T) any { return v })
}

// Generate one value from each generator and combine them into a slice.
//
// The combined tree shrinks one position at a time: every shrink candidate
// differs from its parent in exactly one element.
func CombineOf[T any](gens ...Gen[T]) Gen[[]T] {
	return New(func(p Params) (*tree.Tree[[]T], error) {
		ts := make([]*tree.Tree[T], len(gens))
		for i, g := range gens {
			t, err := g.Generate(p)
			if err != nil {
				return nil, err
			}
			ts[i] = t
		}
		return tree.Zip(ts), nil
	})
}

package gen

import (
	"fmt"

	"goprop/tree"
)

// Pick one of the provided generators uniformly and generate from it.
//
// The choice is made through an integer index, so shrinking moves toward
// earlier generators in the argument list in addition to shrinking the chosen
// generator's own value.
func OneGenOf[T any](gens ...Gen[T]) Gen[T] {
	return New(func(p Params) (*tree.Tree[T], error) {
		if len(gens) == 0 {
			return nil, fmt.Errorf("%w: OneGenOf requires at least one generator", ArgumentError)
		}
		g := Bind(IntRange(0, len(gens)-1), func(i int) Gen[T] {
			return gens[i]
		})
		return g.f(p)
	})
}

// Pick one of the provided constant values uniformly.
func OneConstOf[T any](values ...T) Gen[T] {
	gens := make([]Gen[T], len(values))
	for i, v := range values {
		gens[i] = Wrap(v)
	}
	return OneGenOf(gens...)
}

// A generator together with its relative selection weight.
type Weighted[T any] struct {
	Weight int
	Gen    Gen[T]
}

// Pick one of the provided generators with probability proportional to its
// weight.
//
// The weighted choices are expanded into a flat list and delegated to
// OneGenOf. Note that shrinking follows list position, not weight: a low
// weight generator listed first is still the preferred shrink target.
// Choices with a nonpositive weight are never selected.
func Frequency[T any](choices ...Weighted[T]) Gen[T] {
	flat := []Gen[T]{}
	for _, c := range choices {
		for i := 0; i < c.Weight; i++ {
			flat = append(flat, c.Gen)
		}
	}
	return OneGenOf(flat...)
}

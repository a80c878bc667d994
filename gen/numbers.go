package gen

import (
	"fmt"
	"math"

	"goprop/tree"
)

// Generate integers drawn uniformly from [-size, size].
//
// Shrinking halves the value toward zero: the candidates for v are v-x for
// successive truncated halvings x of v, so they approach zero monotonically
// and zero itself is always reachable for a nonzero v. A negative value
// additionally offers its positive counterpart as the first candidate, since
// the same magnitude with the sign dropped is usually the simpler failing
// case.
func Int() Gen[int] {
	return New(func(p Params) (*tree.Tree[int], error) {
		v := p.Rand.Intn(2*p.Size+1) - p.Size
		return intTree(v), nil
	})
}

// Generate integers drawn uniformly from [0, size].
func NonNegInt() Gen[int] {
	return Sized(func(size int) Gen[int] {
		return IntRange(0, size)
	})
}

// Generate integers drawn uniformly from [low, high], independent of size.
// Shrinks toward the in-range value closest to zero. Generation fails with an
// error wrapping ArgumentError when low > high.
func IntRange(low, high int) Gen[int] {
	return New(func(p Params) (*tree.Tree[int], error) {
		if low > high {
			return nil, fmt.Errorf("%w: empty range [%v, %v]", ArgumentError, low, high)
		}
		v := low + p.Rand.Intn(high-low+1)
		origin := min(max(low, 0), high)
		return towardTree(origin, v), nil
	})
}

// Generate booleans. Shrinks toward false.
func Bool() Gen[bool] {
	return Map(IntRange(0, 1), func(v int) bool { return v == 1 })
}

func intTree(v int) *tree.Tree[int] {
	if v == 0 {
		return tree.Leaf(0)
	}
	return tree.New(v, func(yield func(*tree.Tree[int]) bool) {
		if v < 0 {
			if !yield(intTree(-v)) {
				return
			}
		}
		for x := v; x != 0; x /= 2 {
			if !yield(intTree(v - x)) {
				return
			}
		}
	})
}

// Shrink tree for v with candidates approaching origin instead of zero.
func towardTree(origin, v int) *tree.Tree[int] {
	if v == origin {
		return tree.Leaf(v)
	}
	return tree.New(v, func(yield func(*tree.Tree[int]) bool) {
		for x := v - origin; x != 0; x /= 2 {
			if !yield(towardTree(origin, v-x)) {
				return
			}
		}
	})
}

// Generate floating point values.
//
// A plain float is assembled from three independent integers a, b and c as
// a + b/(|c|+1), which shrinks toward zero and toward simpler fractional
// forms through the usual integer shrinking. A small weighted branch injects
// edge cases (NaN, infinities, extreme magnitudes, values adjacent to zero)
// to stress floating point handling. The edge branch carries no shrinks of
// its own and only shrinks toward the plain branch, which is listed first.
func Float() Gen[float64] {
	return Frequency(
		Weighted[float64]{Weight: 19, Gen: plainFloat()},
		Weighted[float64]{Weight: 1, Gen: edgeFloat()},
	)
}

func plainFloat() Gen[float64] {
	return Map(CombineOf(Int(), Int(), Int()), func(v []int) float64 {
		return float64(v[0]) + float64(v[1])/(math.Abs(float64(v[2]))+1)
	})
}

func edgeFloat() Gen[float64] {
	return OneConstOf(
		math.NaN(),
		math.Inf(1),
		math.Inf(-1),
		math.MaxFloat64,
		-math.MaxFloat64,
		math.SmallestNonzeroFloat64,
		-math.SmallestNonzeroFloat64,
		math.Copysign(0, -1),
	)
}

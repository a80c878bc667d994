package gen

import (
	"fmt"

	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"

	"goprop/tree"
)

// Generate slices of values from elem with a length in [0, size].
func SliceOf[T any](elem Gen[T]) Gen[[]T] {
	return Sized(func(size int) Gen[[]T] {
		return SliceOfN(elem, 0, size)
	})
}

// Generate slices of values from elem with a length in [minLen, maxLen].
//
// The length is generated first and the elements are combined with Zip, so
// the slice shrinks along two dimensions: element by element (one position at
// a time) and toward shorter lengths, down to minLen.
func SliceOfN[T any](elem Gen[T], minLen, maxLen int) Gen[[]T] {
	return New(func(p Params) (*tree.Tree[[]T], error) {
		if minLen < 0 || minLen > maxLen {
			return nil, fmt.Errorf("%w: bad slice length bounds [%v, %v]", ArgumentError, minLen, maxLen)
		}
		g := Bind(IntRange(minLen, maxLen), func(n int) Gen[[]T] {
			elems := make([]Gen[T], n)
			for i := range elems {
				elems[i] = elem
			}
			return CombineOf(elems...)
		})
		return g.f(p)
	})
}

// Generate slices of distinct values from elem with a length in [0, size].
func UniqueSliceOf[T comparable](elem Gen[T]) Gen[[]T] {
	return Sized(func(size int) Gen[[]T] {
		return UniqueSliceOfN(elem, 0, size)
	})
}

// Generate slices of distinct values from elem with a length in
// [minLen, maxLen].
//
// An element equal to one already generated is rejected and regenerated,
// counting against MaxAttempts. When the attempts are exhausted the generator
// settles for the shorter slice if minLen is already satisfied, and fails
// with an error wrapping ExhaustedError otherwise. Shrink candidates that
// would introduce a duplicate are filtered out of the tree.
func UniqueSliceOfN[T comparable](elem Gen[T], minLen, maxLen int) Gen[[]T] {
	return New(func(p Params) (*tree.Tree[[]T], error) {
		if minLen < 0 || minLen > maxLen {
			return nil, fmt.Errorf("%w: bad slice length bounds [%v, %v]", ArgumentError, minLen, maxLen)
		}
		g := Bind(IntRange(minLen, maxLen), func(n int) Gen[[]T] {
			return uniqueN(elem, n, minLen)
		})
		return g.f(p)
	})
}

func uniqueN[T comparable](elem Gen[T], n, minLen int) Gen[[]T] {
	return New(func(p Params) (*tree.Tree[[]T], error) {
		attempts := p.MaxAttempts
		if attempts <= 0 {
			attempts = DefaultMaxAttempts
		}
		seen := map[T]bool{}
		ts := []*tree.Tree[T]{}
		consecutive := 0
		for len(ts) < n {
			t, err := elem.Generate(p)
			if err != nil {
				return nil, err
			}
			if seen[t.Root()] {
				consecutive++
				if consecutive >= attempts {
					if len(ts) >= minLen {
						break
					}
					return nil, fmt.Errorf("%w: could not generate %v distinct elements", ExhaustedError, n)
				}
				continue
			}
			consecutive = 0
			seen[t.Root()] = true
			ts = append(ts, t)
		}
		return tree.Filter(tree.Zip(ts), allDistinct[T]), nil
	})
}

func allDistinct[T comparable](vs []T) bool {
	seen := make(map[T]bool, len(vs))
	for _, v := range vs {
		if seen[v] {
			return false
		}
		seen[v] = true
	}
	return true
}

// Generate sets of values from elem with at most size elements.
func SetOf[T comparable](elem Gen[T]) Gen[map[T]struct{}] {
	return Map(UniqueSliceOf(elem), func(vs []T) map[T]struct{} {
		set := make(map[T]struct{}, len(vs))
		for _, v := range vs {
			set[v] = struct{}{}
		}
		return set
	})
}

// Generate maps with keys from key and values from val, holding at most size
// entries. Values shrink one entry at a time; the key set shrinks through the
// slice machinery.
func MapOf[K comparable, V any](key Gen[K], val Gen[V]) Gen[map[K]V] {
	return Bind(UniqueSliceOf(key), func(ks []K) Gen[map[K]V] {
		vals := make([]Gen[V], len(ks))
		for i := range vals {
			vals[i] = val
		}
		return Map(CombineOf(vals...), func(vs []V) map[K]V {
			m := make(map[K]V, len(ks))
			for i, k := range ks {
				m[k] = vs[i]
			}
			return m
		})
	})
}

// Generate an exact-shape positional composite: one value from each
// generator, shrinking one position at a time.
func TupleOf(gens ...Gen[any]) Gen[[]any] {
	return CombineOf(gens...)
}

// Generate an exact-shape named composite: one value per field, shrinking one
// field at a time. Fields are generated in sorted key order so that the
// consumed random stream is deterministic.
func FixedMapOf(fields map[string]Gen[any]) Gen[map[string]any] {
	keys := maps.Keys(fields)
	slices.Sort(keys)
	gens := make([]Gen[any], len(keys))
	for i, k := range keys {
		gens[i] = fields[k]
	}
	return Map(CombineOf(gens...), func(vs []any) map[string]any {
		m := make(map[string]any, len(keys))
		for i, k := range keys {
			m[k] = vs[i]
		}
		return m
	})
}

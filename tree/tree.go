package tree

import (
	"fmt"
	"iter"
)

// A lazy rose tree holding a value and its shrink candidates.
//
// The root is computed eagerly while the children are produced on demand.
// Iterating the children sequence multiple times restarts it from the
// beginning, so independent cursors over the same node never share state.
// Trees are immutable after construction.
type Tree[T any] struct {
	root     T
	children iter.Seq[*Tree[T]]
	filtered bool
}

// Create a new tree with the provided root value and lazy children sequence.
// The children sequence may be nil for a leaf.
func New[T any](root T, children iter.Seq[*Tree[T]]) *Tree[T] {
	return &Tree[T]{
		root:     root,
		children: children,
	}
}

// Create a tree consisting of a single value with no shrink candidates.
func Leaf[T any](root T) *Tree[T] {
	return &Tree[T]{root: root}
}

// Create a tree marked as rejected by a filter.
// Filtered trees are consumed internally during generation and are never
// exposed by Children or All.
func Filtered[T any]() *Tree[T] {
	return &Tree[T]{filtered: true}
}

func (t *Tree[T]) Root() T {
	return t.root
}

// Returns true if the tree was rejected by a filter predicate.
func (t *Tree[T]) IsFiltered() bool {
	return t.filtered
}

// Returns the sequence of child trees, excluding filtered ones.
//
// The sequence is lazy: a child is not realized before it is pulled.
// It can be iterated any number of times.
func (t *Tree[T]) Children() iter.Seq[*Tree[T]] {
	return func(yield func(*Tree[T]) bool) {
		if t.children == nil {
			return
		}
		for c := range t.children {
			if c.filtered {
				continue
			}
			if !yield(c) {
				return
			}
		}
	}
}

// Returns a depth-first traversal of the values in the tree.
//
// The root is yielded first, then each child subtree in order, left to right.
// The traversal is lazy and only realizes the part of the tree the consumer
// pulls, so it can be used on very large trees. Filtered subtrees are
// skipped entirely.
func (t *Tree[T]) All() iter.Seq[T] {
	return func(yield func(T) bool) {
		t.all(yield)
	}
}

func (t *Tree[T]) all(yield func(T) bool) bool {
	if t.filtered {
		return true
	}
	if !yield(t.root) {
		return false
	}
	for c := range t.Children() {
		if !c.all(yield) {
			return false
		}
	}
	return true
}

// String representation of a tree node. Children are not rendered since
// realizing them may be expensive.
func (t *Tree[T]) String() string {
	if t.filtered {
		return "<filtered>"
	}
	return fmt.Sprintf("%v", t.root)
}

// Apply f to every value in the tree, preserving its shape.
//
// The root is transformed eagerly. Children are transformed lazily, each one
// at the moment it is pulled from the children sequence. Panics raised by f
// propagate to the caller unchanged. Filtered nodes are carried over as
// filtered without invoking f.
func Map[T, U any](t *Tree[T], f func(T) U) *Tree[U] {
	if t.filtered {
		return Filtered[U]()
	}
	res := &Tree[U]{root: f(t.root)}
	if t.children != nil {
		res.children = func(yield func(*Tree[U]) bool) {
			for c := range t.children {
				if !yield(Map(c, f)) {
					return
				}
			}
		}
	}
	return res
}

// Monadic bind over the tree of possibilities.
//
// f is applied to the root to produce an inner tree, whose root becomes the
// root of the result. The children of the result are the inner tree's
// children followed by this tree's children, each recursively bound with f.
// Listing the inner children first means one step of inner shrinkage is
// attempted before falling back to replacing the outer value, which keeps
// shrink paths incremental and localized.
func Bind[T, U any](t *Tree[T], f func(T) *Tree[U]) *Tree[U] {
	if t.filtered {
		return Filtered[U]()
	}
	inner := f(t.root)
	if inner.filtered {
		return Filtered[U]()
	}
	res := &Tree[U]{root: inner.root}
	res.children = func(yield func(*Tree[U]) bool) {
		if inner.children != nil {
			for c := range inner.children {
				if c.filtered {
					continue
				}
				if !yield(c) {
					return
				}
			}
		}
		if t.children != nil {
			for c := range t.children {
				if c.filtered {
					continue
				}
				if !yield(Bind(c, f)) {
					return
				}
			}
		}
	}
	return res
}

// Collapse a tree of trees into a single tree.
func Flatten[T any](t *Tree[*Tree[T]]) *Tree[T] {
	return Bind(t, func(inner *Tree[T]) *Tree[T] { return inner })
}

// Combine independent trees into a single tree of value slices.
//
// The root is the slice of the input roots. The children vary exactly one
// position at a time: for each input tree i and each of its children c, a
// child of the zipped tree is produced where position i is replaced by c and
// every other position keeps its root value. Shrinking therefore explores one
// dimension at a time instead of the full cross product.
func Zip[T any](ts []*Tree[T]) *Tree[[]T] {
	roots := make([]T, len(ts))
	for i, t := range ts {
		if t.filtered {
			return Filtered[[]T]()
		}
		roots[i] = t.root
	}
	res := &Tree[[]T]{root: roots}
	res.children = func(yield func(*Tree[[]T]) bool) {
		for i, t := range ts {
			for c := range t.Children() {
				next := make([]*Tree[T], len(ts))
				copy(next, ts)
				next[i] = c
				if !yield(Zip(next)) {
					return
				}
			}
		}
	}
	return res
}

// Mark every node whose value fails keep as filtered.
//
// The root is tested eagerly, children lazily as they are pulled. Filtered
// nodes are skipped by Children and All, so the rejected candidates are
// invisible to consumers of the tree.
func Filter[T any](t *Tree[T], keep func(T) bool) *Tree[T] {
	if t.filtered || !keep(t.root) {
		return Filtered[T]()
	}
	res := &Tree[T]{root: t.root}
	if t.children != nil {
		res.children = func(yield func(*Tree[T]) bool) {
			for c := range t.children {
				if !yield(Filter(c, keep)) {
					return
				}
			}
		}
	}
	return res
}

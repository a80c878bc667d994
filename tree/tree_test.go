package tree

import (
	"iter"
	"testing"

	"golang.org/x/exp/slices"
)

// Build an eager tree from nested literals to make test cases readable.
func node(root int, children ...*Tree[int]) *Tree[int] {
	return New(root, func(yield func(*Tree[int]) bool) {
		for _, c := range children {
			if !yield(c) {
				return
			}
		}
	})
}

func collect[T any](seq iter.Seq[T], limit int) []T {
	out := []T{}
	for v := range seq {
		out = append(out, v)
		if len(out) >= limit {
			break
		}
	}
	return out
}

func TestTraversalIsDepthFirstRootFirst(t *testing.T) {
	tr := node(1,
		node(2, node(4), node(5)),
		node(3),
	)
	got := collect(tr.All(), 10)
	expected := []int{1, 2, 4, 5, 3}
	if !slices.Equal(got, expected) {
		t.Fatalf("Unexpected traversal order. Got %v. Expected %v", got, expected)
	}
}

func TestTraversalIsLazy(t *testing.T) {
	// An unbounded tree: every node has an infinite children sequence.
	// Only the part the consumer pulls may be realized.
	var infinite func(v int) *Tree[int]
	infinite = func(v int) *Tree[int] {
		return New(v, func(yield func(*Tree[int]) bool) {
			for i := v + 1; ; i++ {
				if !yield(infinite(i)) {
					return
				}
			}
		})
	}
	got := collect(infinite(0).All(), 5)
	if len(got) != 5 {
		t.Fatalf("Expected to pull 5 values from an infinite tree. Got %v", len(got))
	}
	if got[0] != 0 {
		t.Errorf("The root must be yielded first. Got %v", got[0])
	}
}

func TestChildrenCanBeIteratedIndependently(t *testing.T) {
	tr := node(0, node(1), node(2), node(3))

	first := []int{}
	for c := range tr.Children() {
		first = append(first, c.Root())
		if len(first) == 2 {
			break
		}
	}
	// A second iteration must restart from the beginning, unaffected by the
	// interrupted one.
	second := []int{}
	for c := range tr.Children() {
		second = append(second, c.Root())
	}
	if !slices.Equal(second, []int{1, 2, 3}) {
		t.Fatalf("Second iteration should restart from the first child. Got %v", second)
	}
}

func TestMapPreservesShape(t *testing.T) {
	tr := node(1, node(2, node(3)), node(4))
	doubled := Map(tr, func(v int) int { return v * 2 })
	got := collect(doubled.All(), 10)
	if !slices.Equal(got, []int{2, 4, 6, 8}) {
		t.Fatalf("Unexpected mapped traversal. Got %v", got)
	}
}

func TestMapIsLazyOnChildren(t *testing.T) {
	calls := 0
	tr := node(1, node(2), node(3))
	mapped := Map(tr, func(v int) int {
		calls++
		return v
	})
	if calls != 1 {
		t.Fatalf("Map should only have been applied to the root. Got %v calls", calls)
	}
	collect(mapped.All(), 10)
	if calls != 3 {
		t.Fatalf("Expected 3 calls after a full traversal. Got %v", calls)
	}
}

func TestBindInnerChildrenComeFirst(t *testing.T) {
	// Outer tree 10 with child 5. f maps v to a tree v with child v-1.
	outer := node(10, node(5))
	bound := Bind(outer, func(v int) *Tree[int] {
		return node(v, node(v-1))
	})

	if bound.Root() != 10 {
		t.Fatalf("Root should be the inner tree root. Got %v", bound.Root())
	}
	children := collect(bound.Children(), 10)
	// Inner shrink (9) before the outer replacement (5).
	if len(children) != 2 {
		t.Fatalf("Expected 2 children. Got %v", len(children))
	}
	if children[0].Root() != 9 {
		t.Errorf("Inner children must be tried first. Got %v", children[0].Root())
	}
	if children[1].Root() != 5 {
		t.Errorf("Outer children must be bound and tried last. Got %v", children[1].Root())
	}
}

func TestZipVariesOneCoordinateAtATime(t *testing.T) {
	ts := []*Tree[int]{
		node(1, node(0)),
		node(2, node(1), node(0)),
		node(3),
	}
	zipped := Zip(ts)
	if !slices.Equal(zipped.Root(), []int{1, 2, 3}) {
		t.Fatalf("Zip root should combine all roots. Got %v", zipped.Root())
	}

	children := collect(zipped.Children(), 10)
	expected := [][]int{{0, 2, 3}, {1, 1, 3}, {1, 0, 3}}
	if len(children) != len(expected) {
		t.Fatalf("Expected %v children. Got %v", len(expected), len(children))
	}
	for i, c := range children {
		if !slices.Equal(c.Root(), expected[i]) {
			t.Errorf("Child %v: Got %v. Expected %v", i, c.Root(), expected[i])
		}
		diff := 0
		for j, v := range c.Root() {
			if v != zipped.Root()[j] {
				diff++
			}
		}
		if diff != 1 {
			t.Errorf("Child %v differs from the root in %v coordinates. Expected exactly 1", i, diff)
		}
	}
}

func TestFilterHidesRejectedNodes(t *testing.T) {
	tr := node(4, node(1), node(2, node(1), node(0)), node(3))
	even := Filter(tr, func(v int) bool { return v%2 == 0 })

	for v := range even.All() {
		if v%2 != 0 {
			t.Errorf("Traversal yielded a filtered value: %v", v)
		}
	}
	children := collect(even.Children(), 10)
	if len(children) != 1 || children[0].Root() != 2 {
		t.Fatalf("Expected the single even child 2. Got %v", children)
	}
}

func TestFilterRejectedRoot(t *testing.T) {
	tr := node(3, node(2))
	odd := Filter(tr, func(v int) bool { return v%2 == 0 })
	if !odd.IsFiltered() {
		t.Fatalf("A root failing the predicate should mark the tree as filtered")
	}
	if got := collect(odd.All(), 10); len(got) != 0 {
		t.Fatalf("A filtered tree must not yield any values. Got %v", got)
	}
}

func TestFlatten(t *testing.T) {
	inner := node(1, node(0))
	tr := Flatten(New(inner, nil))
	got := collect(tr.All(), 10)
	if !slices.Equal(got, []int{1, 0}) {
		t.Fatalf("Unexpected flattened traversal. Got %v", got)
	}
}

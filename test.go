package scapegoat

import (
	"math"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"

	"github.com/outofforest/scapegoat/heap"
	"github.com/outofforest/scapegoat/types"
)

// NewTreeTest creates new wrapper for tree testing.
func NewTreeTest[K, V any](t require.TestingT, config Config[K, V]) *TreeTest[K, V] {
	tree, err := New[K, V](config)
	require.NoError(t, err)

	return &TreeTest[K, V]{tree: tree}
}

// TreeTest exposes some private functionality of the tree to make testing possible.
//
//nolint:revive
type TreeTest[K, V any] struct {
	tree *Tree[K, V]
}

// Tree returns the wrapped tree.
func (tt *TreeTest[K, V]) Tree() *Tree[K, V] {
	return tt.tree
}

// Capacity returns the number of slots in the tree buffer.
func (tt *TreeTest[K, V]) Capacity() uint64 {
	return uint64(tt.tree.buf.Capacity())
}

// Height returns the height of the tree buffer.
func (tt *TreeTest[K, V]) Height() uint64 {
	return tt.tree.buf.Height()
}

// Rebuilds returns the number of subtree rebuilds done so far.
func (tt *TreeTest[K, V]) Rebuilds() uint64 {
	return tt.tree.rebuilds
}

// Grows returns the number of buffer growths done so far.
func (tt *TreeTest[K, V]) Grows() uint64 {
	return tt.tree.grows
}

// Depth returns the number of edges between the slot of the key and the root.
func (tt *TreeTest[K, V]) Depth(key K) (uint64, bool) {
	i, state := tt.tree.lookup(key)
	if state != types.StateData {
		return 0, false
	}
	return heap.Depth(i), true
}

// Validate checks that the tree satisfies its structural invariants.
func (tt *TreeTest[K, V]) Validate() error {
	t := tt.tree
	capacity := t.buf.Capacity()

	var live types.Index
	for i := types.Index(0); i < capacity; i++ {
		s := t.buf.Slot(i)
		if s.State == types.StateFree {
			continue
		}
		if i > 0 && !t.occupied(heap.Parent(i)) {
			return errors.Errorf("slot %d is occupied but its parent is free", i)
		}
		if s.State == types.StateData {
			live++
			if d, limit := heap.Depth(i), tt.depthLimit(); float64(d) > limit {
				return errors.Errorf("slot %d lies at depth %d, deeper than %.0f", i, d, limit)
			}
		}
	}
	if live != t.size {
		return errors.Errorf("tree reports %d pairs but stores %d", t.size, live)
	}

	prev := types.None
	for i := t.structSmallest(0); i != types.None; i = t.structSucc(i) {
		if prev != types.None && !t.config.Less(t.buf.Slot(prev).Key, t.buf.Slot(i).Key) {
			return errors.Errorf("keys of slots %d and %d are out of order", prev, i)
		}
		prev = i
	}

	return nil
}

func (tt *TreeTest[K, V]) depthLimit() float64 {
	alpha := tt.tree.config.Alpha
	if alpha.Num == alpha.Den {
		return math.MaxFloat64
	}
	size := max(uint64(tt.tree.size), 1)
	return math.Ceil(math.Log(float64(size))/math.Log(float64(alpha.Den)/float64(alpha.Num))) + 2
}

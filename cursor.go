package scapegoat

import (
	"github.com/outofforest/scapegoat/heap"
	"github.com/outofforest/scapegoat/types"
)

// Structural navigation walks the occupied slots, tombstones included, since
// tombstoned keys still route descents. Climbing is bounded by capacity
// alone, the way raw navigation does it, because during relocation an already
// vacated ancestor must not end the climb early.

func (t *Tree[K, V]) occupied(i types.Index) bool {
	return i < t.buf.Capacity() && t.buf.Slot(i).State != types.StateFree
}

func (t *Tree[K, V]) structSmallest(i types.Index) types.Index {
	p := types.None
	for t.occupied(i) {
		p = i
		i = heap.Left(i)
	}
	return p
}

func (t *Tree[K, V]) structLargest(i types.Index) types.Index {
	p := types.None
	for t.occupied(i) {
		p = i
		i = heap.Right(i)
	}
	return p
}

func (t *Tree[K, V]) structSucc(i types.Index) types.Index {
	if t.occupied(heap.Right(i)) {
		return t.structSmallest(heap.Right(i))
	}
	p := heap.Parent(i)
	for p < t.buf.Capacity() && i != heap.Left(p) {
		i = p
		p = heap.Parent(p)
	}
	if p >= t.buf.Capacity() {
		return types.None
	}
	return p
}

func (t *Tree[K, V]) structPred(i types.Index) types.Index {
	if t.occupied(heap.Left(i)) {
		return t.structLargest(heap.Left(i))
	}
	p := heap.Parent(i)
	for p < t.buf.Capacity() && i != heap.Right(p) {
		i = p
		p = heap.Parent(p)
	}
	if p >= t.buf.Capacity() {
		return types.None
	}
	return p
}

// Live navigation is structural navigation with tombstones skipped over.

func (t *Tree[K, V]) liveSmallest(i types.Index) (types.Index, bool) {
	return t.skipSucc(t.structSmallest(i))
}

func (t *Tree[K, V]) liveLargest(i types.Index) (types.Index, bool) {
	return t.skipPred(t.structLargest(i))
}

func (t *Tree[K, V]) liveSucc(i types.Index) (types.Index, bool) {
	return t.skipSucc(t.structSucc(i))
}

func (t *Tree[K, V]) livePred(i types.Index) (types.Index, bool) {
	return t.skipPred(t.structPred(i))
}

func (t *Tree[K, V]) skipSucc(i types.Index) (types.Index, bool) {
	for i != types.None && t.buf.Slot(i).State == types.StateDeleted {
		i = t.structSucc(i)
	}
	return i, i != types.None
}

func (t *Tree[K, V]) skipPred(i types.Index) (types.Index, bool) {
	for i != types.None && t.buf.Slot(i).State == types.StateDeleted {
		i = t.structPred(i)
	}
	return i, i != types.None
}

// Entry is a cursor over the pairs of a tree. Any mutation of the tree
// invalidates every entry.
type Entry[K, V any] struct {
	tree  *Tree[K, V]
	index types.Index
}

// Exists returns true if the entry is positioned on a pair.
func (e *Entry[K, V]) Exists() bool {
	return e.index != types.None
}

// Key returns the key of the pair the entry is positioned on.
func (e *Entry[K, V]) Key() K {
	return e.tree.buf.Slot(e.index).Key
}

// Value returns the value of the pair the entry is positioned on.
func (e *Entry[K, V]) Value() V {
	return e.tree.buf.Slot(e.index).Value
}

// Next moves the entry to the next pair in ascending key order. It returns
// false if no pair is left.
func (e *Entry[K, V]) Next() bool {
	if e.index == types.None {
		return false
	}
	i, ok := e.tree.liveSucc(e.index)
	if !ok {
		e.index = types.None
		return false
	}
	e.index = i
	return true
}

// Prev moves the entry to the previous pair in ascending key order. It
// returns false if no pair is left.
func (e *Entry[K, V]) Prev() bool {
	if e.index == types.None {
		return false
	}
	i, ok := e.tree.livePred(e.index)
	if !ok {
		e.index = types.None
		return false
	}
	e.index = i
	return true
}

// Delete removes the pair the entry is positioned on. The entry stays usable
// for navigation.
func (e *Entry[K, V]) Delete() {
	if e.index == types.None {
		return
	}
	if e.tree.buf.Slot(e.index).State == types.StateData {
		e.tree.tombstone(e.index)
	}
}

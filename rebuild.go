package scapegoat

import (
	"github.com/outofforest/scapegoat/heap"
	"github.com/outofforest/scapegoat/types"
)

// weigh counts the live pairs of the subtree.
func (t *Tree[K, V]) weigh(i types.Index) types.Index {
	if i >= t.buf.Capacity() || t.buf.Slot(i).State == types.StateFree {
		return 0
	}
	w := t.weigh(heap.Left(i)) + t.weigh(heap.Right(i))
	if t.buf.Slot(i).State == types.StateData {
		w++
	}
	return w
}

// scapegoat walks upward from the position where a new leaf is about to be
// created, looking for the lowest ancestor whose subtree loses alpha-weight
// balance once the new key is counted. Either child of the ancestor may be
// the heavy one. ok of false means no ancestor qualifies and the buffer has
// to grow.
func (t *Tree[K, V]) scapegoat(leaf types.Index) (types.Index, bool) {
	alpha := t.config.Alpha
	i := leaf
	w := types.Index(1)

	for {
		p := heap.Parent(i)
		if p == types.None {
			return types.None, false
		}

		b := t.weigh(heap.Sibling(i))
		pw := w + b
		if t.buf.Slot(p).State == types.StateData {
			pw++
		}

		if uint64(w)*alpha.Den > alpha.Num*uint64(pw) ||
			uint64(b)*alpha.Den > alpha.Num*uint64(pw) {
			return p, true
		}

		i = p
		w = pw
	}
}

// rebuild relocates the live pairs of the subtree rooted at g, together with
// the new key, into a perfect embedding of the first in-order positions of
// the subtree. Tombstones are swept. No storage proportional to the subtree
// is used. It returns the position the new pair landed on.
//
// Compaction first moves the live pairs into the last raw in-order slots of
// the subtree, keeping their order. The reverse structural walk reads slot
// states ahead of every move, so moves behind it cannot disturb it.
// Distribution then walks the perfect embedding forward, pulling pairs back
// from the compacted tail and merging the new key at its rank. A destination
// is always at or before the tail slot it reads, so no unread pair is ever
// overwritten.
func (t *Tree[K, V]) rebuild(g types.Index, key K) types.Index {
	t.rebuilds++

	capacity := t.buf.Capacity()

	dst, _ := heap.Largest(heap.NewRaw(g, capacity))
	src := t.structLargest(g)
	moved := types.Index(0)
	for src != types.None && src >= g {
		s := t.buf.Slot(src)
		if s.State == types.StateDeleted {
			*s = types.Slot[K, V]{}
			src = t.structPred(src)
			continue
		}
		if dst.At() != src {
			d := t.buf.Slot(dst.At())
			*d, *s = *s, *d
		}
		moved++
		dst, _ = heap.Pred(dst)
		src = t.structPred(src)
	}

	weight := moved + 1
	pd, _ := heap.Smallest(heap.NewPerfect(g, weight))
	sc, _ := heap.Succ(dst)
	taken := types.Index(0)
	ni := types.None

	for range weight {
		d := t.buf.Slot(pd.At())
		if ni == types.None &&
			(taken == moved || t.config.Less(key, t.buf.Slot(sc.At()).Key)) {
			var zero V
			d.State = types.StateData
			d.Key = key
			d.Value = zero
			ni = pd.At()
		} else {
			if sc.At() != pd.At() {
				s := t.buf.Slot(sc.At())
				d.State = types.StateData
				d.Key = s.Key
				d.Value = s.Value
				*s = types.Slot[K, V]{}
			}
			taken++
			sc, _ = heap.Succ(sc)
		}
		pd, _ = heap.Succ(pd)
	}

	return ni
}

// grow allocates a buffer one level taller and re-embeds the live pairs into
// a perfect embedding starting at the root. Tombstones are left behind.
func (t *Tree[K, V]) grow() error {
	nb, err := t.buf.Grown()
	if err != nil {
		return err
	}

	if t.size > 0 {
		pd, _ := heap.Smallest(heap.NewPerfect(0, t.size))
		for i, ok := t.liveSmallest(0); ok; i, ok = t.liveSucc(i) {
			s := t.buf.Slot(i)
			d := nb.Slot(pd.At())
			d.State = types.StateData
			d.Key = s.Key
			d.Value = s.Value
			pd, _ = heap.Succ(pd)
		}
	}

	t.buf = nb
	t.grows++
	return nil
}

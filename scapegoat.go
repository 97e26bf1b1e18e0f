package scapegoat

import (
	"cmp"
	"math"

	"github.com/outofforest/mass"
	"github.com/pkg/errors"

	"github.com/outofforest/scapegoat/alloc"
	"github.com/outofforest/scapegoat/heap"
	"github.com/outofforest/scapegoat/types"
)

// Config stores tree configuration.
type Config[K, V any] struct {
	// Less defines the order of keys. Required.
	Less func(a, b K) bool

	// Alpha is the balance factor, a rational in (1/2, 1]. Zero value means
	// types.DefaultAlpha. Alpha of 1 disables rebuilding, leaving only growth.
	Alpha types.Ratio

	// InitialHeight is the height of the buffer allocated upfront. Zero value
	// means the buffer is allocated on the first insert.
	InitialHeight uint64

	// MassEntry allocates cursor objects. Zero value means a dedicated
	// allocator is created.
	MassEntry *mass.Mass[Entry[K, V]]
}

// New creates new tree.
func New[K, V any](config Config[K, V]) (*Tree[K, V], error) {
	if config.Less == nil {
		return nil, errors.New("comparator is required")
	}
	if config.Alpha == (types.Ratio{}) {
		config.Alpha = types.DefaultAlpha
	}
	if config.Alpha.Den == 0 || 2*config.Alpha.Num <= config.Alpha.Den ||
		config.Alpha.Num > config.Alpha.Den {
		return nil, errors.Errorf("alpha %d/%d is outside (1/2, 1]",
			config.Alpha.Num, config.Alpha.Den)
	}
	if config.MassEntry == nil {
		config.MassEntry = mass.New[Entry[K, V]](1000)
	}

	buf, err := alloc.New[K, V](config.InitialHeight)
	if err != nil {
		return nil, err
	}

	return &Tree[K, V]{
		config: config,
		buf:    buf,
	}, nil
}

// NewOrdered creates new tree ordered by the natural order of keys.
func NewOrdered[K cmp.Ordered, V any](config Config[K, V]) (*Tree[K, V], error) {
	if config.Less == nil {
		config.Less = func(a, b K) bool {
			return a < b
		}
	}
	return New[K, V](config)
}

// Tree is an ordered map storing pairs in a single buffer at their
// heap-indexed positions. The subtree of any node whose weight drifts past
// the alpha bound is rebuilt in place into a perfect embedding, so no
// per-node balance metadata is kept.
type Tree[K, V any] struct {
	config Config[K, V]

	buf      *alloc.Buffer[K, V]
	size     types.Index
	rebuilds uint64
	grows    uint64
}

// Size returns the number of pairs stored in the tree.
func (t *Tree[K, V]) Size() uint64 {
	return uint64(t.size)
}

// Get gets the value of the key.
func (t *Tree[K, V]) Get(key K) (V, bool) {
	i, state := t.lookup(key)
	if state != types.StateData {
		var v V
		return v, false
	}
	return t.buf.Slot(i).Value, true
}

// Find returns an entry positioned on the key, or a non-existing entry if the
// key is absent.
func (t *Tree[K, V]) Find(key K) *Entry[K, V] {
	e := t.newEntry()
	if i, state := t.lookup(key); state == types.StateData {
		e.index = i
	}
	return e
}

// First returns an entry positioned on the smallest key.
func (t *Tree[K, V]) First() *Entry[K, V] {
	e := t.newEntry()
	if i, ok := t.liveSmallest(0); ok {
		e.index = i
	}
	return e
}

// Last returns an entry positioned on the largest key.
func (t *Tree[K, V]) Last() *Entry[K, V] {
	e := t.newEntry()
	if i, ok := t.liveLargest(0); ok {
		e.index = i
	}
	return e
}

// Insert sets the value of the key, replacing the previous one if the key is
// already present.
func (t *Tree[K, V]) Insert(key K, value V) error {
	v, err := t.Item(key)
	if err != nil {
		return err
	}
	*v = value
	return nil
}

// Item returns a pointer to the value of the key, inserting the zero value
// first if the key is absent. The pointer stays valid only until the next
// mutating call.
func (t *Tree[K, V]) Item(key K) (*V, error) {
	for {
		i, state := t.lookup(key)
		switch state {
		case types.StateData:
			return &t.buf.Slot(i).Value, nil
		case types.StateDeleted:
			s := t.buf.Slot(i)
			var zero V
			s.State = types.StateData
			s.Key = key
			s.Value = zero
			t.size++
			return &s.Value, nil
		}

		if i < t.buf.Capacity() && !t.tooDeep(heap.Depth(i)) {
			s := t.buf.Slot(i)
			s.State = types.StateData
			s.Key = key
			t.size++
			return &s.Value, nil
		}

		g, ok := t.scapegoat(i)
		if !ok {
			if err := t.grow(); err != nil {
				return nil, err
			}
			continue
		}

		ni := t.rebuild(g, key)
		t.size++
		return &t.buf.Slot(ni).Value, nil
	}
}

// Delete removes the key. It returns true if the key was present.
func (t *Tree[K, V]) Delete(key K) bool {
	i, state := t.lookup(key)
	if state != types.StateData {
		return false
	}
	t.tombstone(i)
	return true
}

// All returns an iterator over the pairs in ascending key order.
func (t *Tree[K, V]) All() func(func(K, V) bool) {
	return func(yield func(K, V) bool) {
		for i, ok := t.liveSmallest(0); ok; i, ok = t.liveSucc(i) {
			s := t.buf.Slot(i)
			if !yield(s.Key, s.Value) {
				return
			}
		}
	}
}

// Backward returns an iterator over the pairs in descending key order.
func (t *Tree[K, V]) Backward() func(func(K, V) bool) {
	return func(yield func(K, V) bool) {
		for i, ok := t.liveLargest(0); ok; i, ok = t.livePred(i) {
			s := t.buf.Slot(i)
			if !yield(s.Key, s.Value) {
				return
			}
		}
	}
}

func (t *Tree[K, V]) newEntry() *Entry[K, V] {
	e := t.config.MassEntry.New()
	e.tree = t
	e.index = types.None
	return e
}

// lookup descends from the root comparing keys. It returns the position of
// the key together with its slot state, or the position where the key would
// be created and StateFree. The returned position may lie outside the buffer.
func (t *Tree[K, V]) lookup(key K) (types.Index, types.State) {
	i := types.Index(0)
	for i < t.buf.Capacity() {
		s := t.buf.Slot(i)
		if s.State == types.StateFree {
			break
		}
		switch {
		case t.config.Less(key, s.Key):
			i = heap.Left(i)
		case t.config.Less(s.Key, key):
			i = heap.Right(i)
		default:
			return i, s.State
		}
	}
	return i, types.StateFree
}

func (t *Tree[K, V]) tombstone(i types.Index) {
	s := t.buf.Slot(i)
	var zero V
	s.State = types.StateDeleted
	s.Value = zero
	t.size--
}

// tooDeep checks if creating a leaf at the given depth would break the depth
// bound guaranteed by alpha. With alpha of 1 the bound is infinite.
func (t *Tree[K, V]) tooDeep(depth uint64) bool {
	if t.size == 0 || t.config.Alpha.Num == t.config.Alpha.Den {
		return false
	}
	limit := math.Log(float64(t.size))/
		math.Log(float64(t.config.Alpha.Den)/float64(t.config.Alpha.Num)) + 2
	return float64(depth) > limit
}

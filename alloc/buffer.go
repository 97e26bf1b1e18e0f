package alloc

import (
	"github.com/pkg/errors"

	"github.com/outofforest/scapegoat/types"
)

// MaxHeight is the tallest buffer that can be allocated. Above it capacity
// arithmetic would overflow the index type.
const MaxHeight = 62

// Buffer owns the linearized slot array of a tree. A buffer of height h holds
// 2^h - 1 slots, so a slot's children always have room one level below until
// the bottom level is reached. Height 0 means an empty buffer.
type Buffer[K, V any] struct {
	height uint64
	slots  []types.Slot[K, V]
}

// New allocates a zeroed buffer of the given height.
func New[K, V any](height uint64) (*Buffer[K, V], error) {
	if height > MaxHeight {
		return nil, errors.Errorf("buffer height %d exceeds maximum %d", height, MaxHeight)
	}
	return &Buffer[K, V]{
		height: height,
		slots:  make([]types.Slot[K, V], types.Index(1)<<height-1),
	}, nil
}

// Height returns the height of the buffer.
func (b *Buffer[K, V]) Height() uint64 {
	return b.height
}

// Capacity returns the number of slots in the buffer.
func (b *Buffer[K, V]) Capacity() types.Index {
	return types.Index(len(b.slots))
}

// Slot returns the slot stored at the given position.
func (b *Buffer[K, V]) Slot(i types.Index) *types.Slot[K, V] {
	return &b.slots[i]
}

// Grown allocates a fresh zeroed buffer one level taller.
func (b *Buffer[K, V]) Grown() (*Buffer[K, V], error) {
	return New[K, V](b.height + 1)
}

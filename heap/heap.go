package heap

import (
	"math/bits"

	"github.com/outofforest/scapegoat/types"
)

// Parent returns the index of the parent slot. For the root it wraps to
// types.None.
func Parent(i types.Index) types.Index {
	return (i+1)/2 - 1
}

// Left returns the index of the left child slot.
func Left(i types.Index) types.Index {
	return 2*i + 1
}

// Right returns the index of the right child slot.
func Right(i types.Index) types.Index {
	return 2*i + 2
}

// Sibling returns the index of the other child of the parent slot.
func Sibling(i types.Index) types.Index {
	return ((i + 1) ^ 1) - 1
}

// Depth returns the number of edges between the slot and the root.
func Depth(i types.Index) uint64 {
	return uint64(bits.Len64(uint64(i)+1)) - 1
}

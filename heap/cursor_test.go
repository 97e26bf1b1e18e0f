package heap

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/outofforest/scapegoat/types"
)

func forwardWalk[C Cursor[C]](c C) []types.Index {
	indices := []types.Index{}
	c, ok := Smallest(c)
	for ok {
		indices = append(indices, c.At())
		c, ok = Succ(c)
	}
	return indices
}

func backwardWalk[C Cursor[C]](c C) []types.Index {
	indices := []types.Index{}
	c, ok := Largest(c)
	for ok {
		indices = append(indices, c.At())
		c, ok = Pred(c)
	}
	return indices
}

func reversed(indices []types.Index) []types.Index {
	out := make([]types.Index, 0, len(indices))
	for i := len(indices) - 1; i >= 0; i-- {
		out = append(out, indices[i])
	}
	return out
}

func TestRawWalk(t *testing.T) {
	requireT := require.New(t)

	requireT.Equal(
		[]types.Index{3, 1, 4, 0, 5, 2, 6},
		forwardWalk(NewRaw(0, 7)),
	)
	requireT.Equal(
		reversed(forwardWalk(NewRaw(0, 7))),
		backwardWalk(NewRaw(0, 7)),
	)
}

func TestRawWalkPartialBottomLevel(t *testing.T) {
	requireT := require.New(t)

	// Capacity of 5 cuts the bottom level after position 4.
	requireT.Equal(
		[]types.Index{3, 1, 4, 0, 2},
		forwardWalk(NewRaw(0, 5)),
	)
}

func TestRawWalkSubtree(t *testing.T) {
	requireT := require.New(t)

	requireT.Equal(
		[]types.Index{3, 1, 4},
		forwardWalk(NewRaw(1, 7)),
	)
	requireT.Equal(
		[]types.Index{5, 2, 6},
		forwardWalk(NewRaw(2, 7)),
	)
}

func TestRawWalkEmpty(t *testing.T) {
	requireT := require.New(t)

	_, ok := Smallest(NewRaw(0, 0))
	requireT.False(ok)
}

func TestPerfectWalkAtRoot(t *testing.T) {
	requireT := require.New(t)

	requireT.Equal(
		[]types.Index{0},
		forwardWalk(NewPerfect(0, 1)),
	)
	requireT.Equal(
		[]types.Index{1, 0},
		forwardWalk(NewPerfect(0, 2)),
	)
	requireT.Equal(
		[]types.Index{3, 1, 4, 0, 2},
		forwardWalk(NewPerfect(0, 5)),
	)
	requireT.Equal(
		[]types.Index{3, 1, 4, 0, 5, 2},
		forwardWalk(NewPerfect(0, 6)),
	)
	requireT.Equal(
		[]types.Index{3, 1, 4, 0, 5, 2, 6},
		forwardWalk(NewPerfect(0, 7)),
	)
}

func TestPerfectWalkAtSubtree(t *testing.T) {
	requireT := require.New(t)

	requireT.Equal(
		[]types.Index{5, 2, 6},
		forwardWalk(NewPerfect(2, 3)),
	)
	// Subtree of 6 walked over five positions spans two levels below it.
	requireT.Equal(
		[]types.Index{27, 13, 28, 6, 14},
		forwardWalk(NewPerfect(6, 5)),
	)
}

func TestPerfectWalkBackward(t *testing.T) {
	requireT := require.New(t)

	requireT.Equal(
		reversed(forwardWalk(NewPerfect(6, 5))),
		backwardWalk(NewPerfect(6, 5)),
	)
}

func TestPerfectWalkDepth(t *testing.T) {
	requireT := require.New(t)

	// The embedding of n keys never goes deeper than a perfectly balanced
	// tree of n keys.
	for n := types.Index(1); n <= 64; n++ {
		maxDepth := uint64(0)
		for _, i := range forwardWalk(NewPerfect(0, n)) {
			maxDepth = max(maxDepth, Depth(i))
		}
		requireT.Less(uint64(1)<<maxDepth, uint64(n)+1)
	}
}

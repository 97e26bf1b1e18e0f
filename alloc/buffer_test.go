package alloc

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/outofforest/scapegoat/types"
)

func TestNewBuffer(t *testing.T) {
	requireT := require.New(t)

	b, err := New[int, int](3)
	requireT.NoError(err)
	requireT.Equal(uint64(3), b.Height())
	requireT.Equal(types.Index(7), b.Capacity())

	for i := types.Index(0); i < b.Capacity(); i++ {
		requireT.Equal(types.StateFree, b.Slot(i).State)
	}
}

func TestNewBufferEmpty(t *testing.T) {
	requireT := require.New(t)

	b, err := New[int, int](0)
	requireT.NoError(err)
	requireT.Equal(uint64(0), b.Height())
	requireT.Equal(types.Index(0), b.Capacity())
}

func TestNewBufferTooTall(t *testing.T) {
	requireT := require.New(t)

	_, err := New[int, int](MaxHeight + 1)
	requireT.Error(err)
}

func TestGrown(t *testing.T) {
	requireT := require.New(t)

	b, err := New[int, int](0)
	requireT.NoError(err)

	for _, capacity := range []types.Index{1, 3, 7, 15} {
		b, err = b.Grown()
		requireT.NoError(err)
		requireT.Equal(capacity, b.Capacity())
	}
}

func TestGrownLeavesOriginalUntouched(t *testing.T) {
	requireT := require.New(t)

	b, err := New[int, int](2)
	requireT.NoError(err)
	b.Slot(0).State = types.StateData
	b.Slot(0).Key = 1

	nb, err := b.Grown()
	requireT.NoError(err)
	requireT.Equal(types.StateFree, nb.Slot(0).State)
	requireT.Equal(types.StateData, b.Slot(0).State)
}

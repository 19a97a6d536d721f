package containers

import (
	"testing"

	"github.com/spaghettifunk/arkanoop/engine/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTableInsertInOrder(t *testing.T) {
	tbl := NewTable[string](3)
	for i, v := range []string{"a", "b", "c"} {
		h, err := tbl.Insert(v)
		require.NoError(t, err)
		assert.Equal(t, Handle(i), h)
	}

	_, err := tbl.Insert("d")
	assert.ErrorIs(t, err, core.ErrCapacityExceeded)
	assert.Equal(t, 3, tbl.Len())

	v, err := tbl.Get(1)
	require.NoError(t, err)
	assert.Equal(t, "b", v)
}

func TestTableBounds(t *testing.T) {
	tbl := NewTable[int](2)
	_, err := tbl.Get(0)
	assert.ErrorIs(t, err, core.ErrInvalidHandle)
	_, err = tbl.Get(InvalidHandle)
	assert.ErrorIs(t, err, core.ErrInvalidHandle)
	assert.ErrorIs(t, tbl.Set(0, 1), core.ErrInvalidHandle)

	assert.NoError(t, tbl.Reserve(2))
	assert.ErrorIs(t, tbl.Reserve(3), core.ErrCapacityExceeded)
}

func TestTableEachStopsEarly(t *testing.T) {
	tbl := NewTable[int](4)
	for _, v := range []int{5, 0, 7} {
		_, err := tbl.Insert(v)
		require.NoError(t, err)
	}

	var seen []int
	tbl.Each(func(_ Handle, v int) bool {
		if v == 0 {
			return false
		}
		seen = append(seen, v)
		return true
	})
	assert.Equal(t, []int{5}, seen)

	tbl.Reset()
	assert.Zero(t, tbl.Len())
	assert.Equal(t, 4, tbl.Cap())
}

func TestTableTruncate(t *testing.T) {
	tbl := NewTable[int](4)
	for i := 0; i < 4; i++ {
		_, err := tbl.Insert(i * 10)
		require.NoError(t, err)
	}

	tbl.Truncate(2)
	assert.Equal(t, 2, tbl.Len())
	assert.False(t, tbl.Valid(2))

	h, err := tbl.Insert(99)
	require.NoError(t, err)
	assert.Equal(t, Handle(2), h)

	tbl.Truncate(10)
	assert.Equal(t, 3, tbl.Len())
	tbl.Truncate(-1)
	assert.Equal(t, 0, tbl.Len())
}

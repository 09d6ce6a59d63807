package plan

import (
	"go/types"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCellOf(t *testing.T) {
	amd64 := types.SizesFor("gc", "amd64")

	tests := []struct {
		size, align int64
		wantErr     string
	}{
		{1, 1, ""},
		{8, 8, ""},
		{24, 8, ""},
		{16, 8, ""},
		{0, 1, "zero-size"},
		{6, 4, "not a multiple"},
		{32, 32, "no type has alignment 32"},
	}

	for _, tt := range tests {
		cell, err := cellOf(tt.size, tt.align, amd64)
		if tt.wantErr != "" {
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)

			continue
		}

		require.NoError(t, err)
		assert.Equal(t, tt.size, amd64.Sizeof(cell), "size %d", tt.size)
		assert.Equal(t, tt.align, amd64.Alignof(cell), "align %d", tt.align)
	}
}

func TestCellOf_ThirtyTwoBit(t *testing.T) {
	i386 := types.SizesFor("gc", "386")

	cell, err := cellOf(8, 4, i386)
	require.NoError(t, err)
	assert.Equal(t, int64(4), i386.Alignof(cell))

	_, err = cellOf(8, 8, i386)
	require.Error(t, err)
}

func TestNewSurrogate(t *testing.T) {
	amd64 := types.SizesFor("gc", "amd64")

	members := []types.Type{
		types.Typ[types.Int32],
		types.Typ[types.Float64],
		types.Typ[types.Byte],
	}

	s, err := newSurrogate(members, amd64)
	require.NoError(t, err)

	assert.Equal(t, []uintptr{0, 8, 16}, s.offsets)
	assert.Equal(t, uintptr(24), s.size)
	assert.Equal(t, uintptr(8), s.align)
	assert.Equal(t, []uintptr{4, 8, 1}, s.sizes)
	assert.Equal(t, []uintptr{4, 8, 1}, s.aligns)

	empty, err := newSurrogate(nil, amd64)
	require.NoError(t, err)
	assert.Equal(t, uintptr(0), empty.size)
	assert.Equal(t, uintptr(1), empty.align)

	_, err = newSurrogate([]types.Type{types.NewStruct(nil, nil)}, amd64)
	require.ErrorIs(t, err, errZeroSize)
}

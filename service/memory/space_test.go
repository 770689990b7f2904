package memory

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSpace_Map(t *testing.T) {
	testCases := []struct {
		description string
		start       uint64
		length      uint64
		perm        Perm
		expectErr   error
		expectPages int
	}{
		{description: "one page", start: 0x10000000, length: 4096, perm: PermRead, expectPages: 1},
		{description: "partial page rounds up", start: 0x10000000, length: 4097, perm: PermRead | PermWrite, expectPages: 2},
		{description: "zero length", start: 0x10000000, length: 0, perm: PermRead, expectPages: 0},
		{description: "misaligned", start: 0x10000001, length: 4096, perm: PermRead, expectErr: ErrMisaligned},
		{description: "no permission", start: 0x10000000, length: 4096, perm: 0, expectErr: ErrPerm},
		{description: "unknown permission bit", start: 0x10000000, length: 4096, perm: 8, expectErr: ErrPerm},
		{description: "length overflows", start: 0, length: math.MaxUint64, perm: PermRead, expectErr: ErrRange},
		{description: "end overflows", start: 0x10000000, length: math.MaxUint64 - 0x1000, perm: PermRead, expectErr: ErrRange},
	}
	for _, testCase := range testCases {
		space := New(DefaultHeapBottom)
		err := space.Map(testCase.start, testCase.length, testCase.perm)
		if testCase.expectErr != nil {
			assert.ErrorIs(t, err, testCase.expectErr, testCase.description)
			continue
		}
		require.NoError(t, err, testCase.description)
		assert.Equal(t, testCase.expectPages, space.Mapped(), testCase.description)
	}
}

func TestSpace_MapOverlap(t *testing.T) {
	space := New(DefaultHeapBottom)
	require.NoError(t, space.Map(0x2000, 4096, PermRead))
	assert.ErrorIs(t, space.Map(0x1000, 2*4096, PermRead), ErrMapped)
	assert.Equal(t, 1, space.Mapped())
	perm, ok := space.Perm(0x2010)
	assert.True(t, ok)
	assert.Equal(t, PermRead, perm)
}

func TestSpace_Unmap(t *testing.T) {
	space := New(DefaultHeapBottom)
	require.NoError(t, space.Map(0x1000, 2*4096, PermRead|PermWrite))
	assert.ErrorIs(t, space.Unmap(0x1000, 3*4096), ErrUnmapped)
	assert.Equal(t, 2, space.Mapped())
	assert.ErrorIs(t, space.Unmap(0x1001, 4096), ErrMisaligned)
	assert.ErrorIs(t, space.Unmap(0x1000, math.MaxUint64), ErrRange)
	require.NoError(t, space.Unmap(0x1000, 2*4096))
	assert.Equal(t, 0, space.Mapped())
}

func TestSpace_Brk(t *testing.T) {
	space := New(0x8000)
	old, err := space.Brk(100)
	require.NoError(t, err)
	assert.EqualValues(t, 0x8000, old)
	old, err = space.Brk(-50)
	require.NoError(t, err)
	assert.EqualValues(t, 0x8000+100, old)
	_, err = space.Brk(-51)
	assert.ErrorIs(t, err, ErrBreak)
	old, err = space.Brk(0)
	require.NoError(t, err)
	assert.EqualValues(t, 0x8000+50, old)
}

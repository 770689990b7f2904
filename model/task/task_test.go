package task

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTask_UpdateTime(t *testing.T) {
	aTask := New(1, 0, 0)
	assert.EqualValues(t, DefaultPriority, aTask.Priority)
	assert.EqualValues(t, 0, aTask.Info().Time)

	aTask.UpdateTime(0)
	assert.EqualValues(t, 0, aTask.Time)
	aTask.UpdateTime(0)
	assert.EqualValues(t, 0, aTask.Time, "zero elapsed before first tick")

	aTask.UpdateTime(40)
	assert.EqualValues(t, 40, aTask.Time)
	aTask.UpdateTime(40)
	assert.EqualValues(t, 40, aTask.Time, "repeated query must not accumulate")
	aTask.UpdateTime(75)
	assert.EqualValues(t, 75, aTask.Time)
}

func TestTask_CountSyscall(t *testing.T) {
	aTask := New(1, 0, 8)
	aTask.CountSyscall(169)
	aTask.CountSyscall(169)
	aTask.CountSyscall(MaxSyscallNum)
	aTask.CountSyscall(-1)
	info := aTask.Info()
	assert.EqualValues(t, 2, info.SyscallTimes[169])
	assert.Equal(t, StatusUnInit, info.Status)
}

func TestTask_SetPriority(t *testing.T) {
	testCases := []struct {
		name      string
		priority  uint64
		expectErr bool
	}{
		{name: "minimum", priority: 2},
		{name: "large", priority: 1 << 20},
		{name: "one", priority: 1, expectErr: true},
		{name: "zero", priority: 0, expectErr: true},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			aTask := New(1, 0, 16)
			err := aTask.SetPriority(tc.priority)
			if tc.expectErr {
				assert.Error(t, err)
				assert.EqualValues(t, 16, aTask.Priority)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tc.priority, aTask.Priority)
		})
	}
}

func TestVectors(t *testing.T) {
	var v Vectors
	assert.Equal(t, 0, v.At(KindMutex, 3))
	v.Add(KindMutex, 3, 1)
	v.Add(KindSemaphore, 0, 2)
	assert.Equal(t, 1, v.At(KindMutex, 3))
	assert.Equal(t, 0, v.At(KindMutex, 2))
	assert.Equal(t, 2, v.At(KindSemaphore, 0))
	assert.Len(t, v[KindMutex], 4)
}

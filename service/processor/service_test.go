package processor

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/viant/kernel/model/task"
	"github.com/viant/kernel/service/scheduler"
)

func TestService_Run(t *testing.T) {
	testCases := []struct {
		name       string
		priorities []uint64
		rounds     int
		expect     []int
	}{
		{
			name:       "equal priorities alternate",
			priorities: []uint64{16, 16},
			rounds:     3,
			expect:     []int{0, 1, 0, 1, 0, 1},
		},
		{
			name:       "higher priority runs more often",
			priorities: []uint64{4, 8},
			rounds:     3,
			// bigStride 16: passes 4 and 2
			expect: []int{1, 0, 1, 1, 0, 0},
		},
		{
			name:       "single task",
			priorities: []uint64{16},
			rounds:     2,
			expect:     []int{0, 0},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			cpu, err := New(WithConfig(scheduler.Config{BigStride: 16}))
			require.NoError(t, err)
			var trace []int
			for i, priority := range tc.priorities {
				i := i
				require.NoError(t, cpu.Spawn(task.New(1, i, priority), func() {
					for r := 0; r < tc.rounds; r++ {
						trace = append(trace, i)
						cpu.Yield()
					}
				}))
			}
			require.NoError(t, cpu.Run(context.Background()))
			assert.Equal(t, tc.expect, trace)
		})
	}
}

func TestService_BlockAndWake(t *testing.T) {
	cpu, err := New()
	require.NoError(t, err)
	sleeper := task.New(1, 0, task.DefaultPriority)
	waker := task.New(1, 1, task.DefaultPriority)
	var trace []string
	require.NoError(t, cpu.Spawn(sleeper, func() {
		trace = append(trace, "blocked")
		cpu.Block()
		trace = append(trace, "resumed")
	}))
	require.NoError(t, cpu.Spawn(waker, func() {
		assert.Equal(t, task.StatusBlocked, sleeper.Status)
		cpu.Wake(sleeper)
		cpu.Wake(sleeper)
		trace = append(trace, "woke")
	}))
	require.NoError(t, cpu.Run(context.Background()))
	assert.Equal(t, []string{"blocked", "woke", "resumed"}, trace)
	assert.Equal(t, task.StatusExited, sleeper.Status)
	assert.Equal(t, task.StatusExited, waker.Status)
}

func TestService_Stalled(t *testing.T) {
	cpu, err := New()
	require.NoError(t, err)
	require.NoError(t, cpu.Spawn(task.New(1, 0, task.DefaultPriority), func() {
		cpu.Block()
	}))
	err = cpu.Run(context.Background())
	assert.True(t, errors.Is(err, ErrStalled))
}

func TestService_Sleep(t *testing.T) {
	cpu, err := New()
	require.NoError(t, err)
	var elapsed time.Duration
	var order []int
	require.NoError(t, cpu.Spawn(task.New(1, 0, task.DefaultPriority), func() {
		started := time.Now()
		cpu.Sleep(20 * time.Millisecond)
		elapsed = time.Since(started)
		order = append(order, 0)
	}))
	require.NoError(t, cpu.Spawn(task.New(1, 1, task.DefaultPriority), func() {
		order = append(order, 1)
	}))
	require.NoError(t, cpu.Run(context.Background()))
	assert.GreaterOrEqual(t, elapsed, 20*time.Millisecond)
	assert.Equal(t, []int{1, 0}, order)
}

func TestService_ExitAndPanic(t *testing.T) {
	cpu, err := New()
	require.NoError(t, err)
	exiting := task.New(1, 0, task.DefaultPriority)
	panicking := task.New(1, 1, task.DefaultPriority)
	reached := false
	require.NoError(t, cpu.Spawn(exiting, func() {
		exiting.ExitCode = 7
		cpu.Exit()
		reached = true
	}))
	require.NoError(t, cpu.Spawn(panicking, func() {
		panic("boom")
	}))
	require.NoError(t, cpu.Run(context.Background()))
	assert.False(t, reached)
	assert.Equal(t, 7, exiting.ExitCode)
	assert.Equal(t, -1, panicking.ExitCode)
	assert.Equal(t, task.StatusExited, panicking.Status)
}

func TestService_Cancel(t *testing.T) {
	cpu, err := New()
	require.NoError(t, err)
	require.NoError(t, cpu.Spawn(task.New(1, 0, task.DefaultPriority), func() {
		cpu.Sleep(time.Hour)
	}))
	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	err = cpu.Run(ctx)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.ErrorIs(t, cpu.Run(context.Background()), ErrRunning)
}

func TestService_Listeners(t *testing.T) {
	var statuses []task.Status
	var spawned int
	cpu, err := New(WithListeners(func(_ *task.Task, from, to task.Status) {
		if from == task.StatusUnInit {
			spawned++
		}
		statuses = append(statuses, to)
	}))
	require.NoError(t, err)
	tk := task.New(1, 0, task.DefaultPriority)
	require.NoError(t, cpu.Spawn(tk, func() {}))
	assert.Error(t, cpu.Spawn(tk, func() {}))
	require.NoError(t, cpu.Run(context.Background()))
	assert.Equal(t, []task.Status{task.StatusReady, task.StatusRunning, task.StatusExited}, statuses)
	assert.Equal(t, 1, spawned)
}

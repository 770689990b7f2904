package kernel_test

import (
	"bytes"
	"context"
	"embed"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	_ "github.com/viant/afs/embed"
	"github.com/viant/kernel"
	"github.com/viant/kernel/policy"
	"github.com/viant/kernel/runtime/process"
	"github.com/viant/kernel/service/dao"
	"github.com/viant/kernel/service/event"
	"github.com/viant/kernel/service/sys"
)

//go:embed testdata/*
var embedFS embed.FS

func TestService_Config(t *testing.T) {
	srv, err := kernel.New(
		kernel.WithMetaFsOptions(&embedFS),
		kernel.WithMetaBaseURL("embed:///testdata"),
		kernel.WithConfigURL("kernel.yaml"),
	)
	require.NoError(t, err)
	config := srv.Config()
	assert.EqualValues(t, 720720, config.Scheduler.BigStride)
	assert.EqualValues(t, 8, config.Scheduler.DefaultPriority)
	assert.EqualValues(t, 1000000, config.Clock.Frequency)
	assert.EqualValues(t, 8192, config.Memory.HeapBottom)
	assert.Equal(t, 256, config.Events.Buffer)
	require.NotNil(t, config.Policy)
	assert.Equal(t, []string{"sbrk"}, config.Policy.BlockList)

	var sbrk, yield int
	_, err = srv.Runtime().Spawn(context.Background(), "policy", 0, func(th *sys.Thread) {
		sbrk = th.Dispatch(sys.SysSbrk, 0)
		yield = th.Dispatch(sys.SysYield)
	})
	require.NoError(t, err)
	require.NoError(t, srv.Runtime().Run(context.Background()))
	assert.Equal(t, sys.Failed, sbrk)
	assert.Equal(t, 0, yield)

	_, err = kernel.New(
		kernel.WithMetaFsOptions(&embedFS),
		kernel.WithMetaBaseURL("embed:///testdata"),
		kernel.WithConfigURL("invalid.yaml"),
	)
	assert.Error(t, err)
}

func TestService_PolicyOption(t *testing.T) {
	srv, err := kernel.New(kernel.WithPolicy(&policy.Policy{Mode: policy.ModeDeny, BlockList: []string{"sbrk"}}))
	require.NoError(t, err)
	require.NotNil(t, srv.Config().Policy)
	assert.Equal(t, policy.ModeDeny, srv.Config().Policy.Mode)
	assert.Equal(t, []string{"sbrk"}, srv.Config().Policy.BlockList)

	var pid int
	_, err = srv.Runtime().Spawn(context.Background(), "denied", 0, func(th *sys.Thread) {
		pid = th.Dispatch(sys.SysGetPid)
	})
	require.NoError(t, err)
	require.NoError(t, srv.Runtime().Run(context.Background()))
	assert.Equal(t, sys.Failed, pid)
}

func TestConfig_Validate(t *testing.T) {
	testCases := []struct {
		description string
		mutate      func(c *kernel.Config)
		expectErr   bool
	}{
		{description: "defaults", mutate: func(c *kernel.Config) {}},
		{description: "zero big stride", mutate: func(c *kernel.Config) { c.Scheduler.BigStride = 0 }, expectErr: true},
		{description: "low default priority", mutate: func(c *kernel.Config) { c.Scheduler.DefaultPriority = 1 }, expectErr: true},
		{description: "zero clock", mutate: func(c *kernel.Config) { c.Clock.Frequency = 0 }, expectErr: true},
		{description: "misaligned heap", mutate: func(c *kernel.Config) { c.Memory.HeapBottom = 100 }, expectErr: true},
		{description: "negative buffer", mutate: func(c *kernel.Config) { c.Events.Buffer = -1 }, expectErr: true},
		{description: "policy mode", mutate: func(c *kernel.Config) { c.Policy = &policy.Config{Mode: "maybe"} }, expectErr: true},
	}
	for _, testCase := range testCases {
		config := kernel.DefaultConfig()
		testCase.mutate(config)
		err := config.Validate()
		assert.Equal(t, testCase.expectErr, err != nil, testCase.description)
	}
}

func TestRuntime_Philosophers(t *testing.T) {
	const seats = 5
	const servings = 3
	srv, err := kernel.New(kernel.WithOutput(&bytes.Buffer{}))
	require.NoError(t, err)
	rt := srv.Runtime()
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	meals := make([]int, seats)
	_, err = rt.Spawn(ctx, "philosophers", 0, func(th *sys.Thread) {
		assert.Equal(t, 0, th.EnableDeadlockDetect(1))
		forks := make([]int, seats)
		for i := range forks {
			forks[i] = th.MutexCreate(true)
		}
		var tids []int
		for i := 0; i < seats; i++ {
			seat := i
			left, right := forks[seat], forks[(seat+1)%seats]
			tids = append(tids, th.ThreadCreate(func(p *sys.Thread) {
				for meals[seat] < servings {
					if p.MutexLock(left) != 0 {
						p.Yield()
						continue
					}
					p.Yield()
					if p.MutexLock(right) != 0 {
						p.MutexUnlock(left)
						p.Yield()
						continue
					}
					meals[seat]++
					p.Yield()
					p.MutexUnlock(right)
					p.MutexUnlock(left)
				}
			}, 0))
		}
		for _, tid := range tids {
			for th.WaitTid(tid) == sys.StillRunning {
				th.Yield()
			}
		}
	})
	require.NoError(t, err)
	require.NoError(t, rt.Run(ctx))

	assert.Equal(t, []int{servings, servings, servings, servings, servings}, meals)
	counters := rt.Progress()
	assert.Greater(t, counters.Deadlocks, 0)
	assert.Equal(t, 6, counters.SpawnedTasks)
	assert.Equal(t, 0, counters.LiveTasks())
}

func TestRuntime_StrideFairness(t *testing.T) {
	config := kernel.DefaultConfig()
	config.Scheduler.BigStride = 720720
	srv, err := kernel.New(kernel.WithConfig(config))
	require.NoError(t, err)
	rt := srv.Runtime()
	ctx := context.Background()

	const turns = 90
	total := 0
	counts := map[string]int{}
	for _, contender := range []struct {
		name     string
		priority uint64
	}{{"low", 4}, {"high", 8}} {
		name := contender.name
		_, err = rt.Spawn(ctx, name, contender.priority, func(th *sys.Thread) {
			for total < turns {
				counts[name]++
				total++
				th.Yield()
			}
		})
		require.NoError(t, err)
	}
	require.NoError(t, rt.Run(ctx))
	assert.Equal(t, turns, counts["low"]+counts["high"])
	assert.InDelta(t, 2*float64(counts["low"]), float64(counts["high"]), 2)
}

func TestRuntime_Processes(t *testing.T) {
	srv, err := kernel.New()
	require.NoError(t, err)
	rt := srv.Runtime()
	ctx := context.Background()

	var mux sync.Mutex
	var exits []event.ProcessState
	require.NoError(t, event.SetListenerOf[event.ProcessState](srv.EventService(), func(e *event.Event[event.ProcessState]) {
		if e.Context.EventType != event.TypeProcessExit {
			return
		}
		mux.Lock()
		defer mux.Unlock()
		exits = append(exits, e.Data)
	}))
	defer srv.EventService().Close()

	first, err := rt.Spawn(ctx, "first", 0, func(th *sys.Thread) {
		th.Sleep(5)
		th.Exit(4)
	})
	require.NoError(t, err)
	second, err := rt.Spawn(ctx, "second", 0, func(th *sys.Thread) {})
	require.NoError(t, err)
	assert.Equal(t, 0, first.PID)
	assert.Equal(t, 1, second.PID)

	_, err = rt.Spawn(ctx, "low", 1, func(th *sys.Thread) {})
	assert.Error(t, err)
	_, err = rt.Spawn(ctx, "nil", 0, nil)
	assert.Error(t, err)

	running, err := rt.Processes(ctx, dao.NewParameter(dao.ParameterState, process.StateRunning))
	require.NoError(t, err)
	assert.Len(t, running, 2)

	require.NoError(t, rt.Run(ctx))

	exited, err := rt.Processes(ctx, dao.NewParameter(dao.ParameterState, process.StateExited))
	require.NoError(t, err)
	assert.Len(t, exited, 2)
	loaded, err := rt.Process(ctx, 0)
	require.NoError(t, err)
	assert.Equal(t, 4, loaded.ExitCode)
	_, err = rt.Process(ctx, 9)
	assert.ErrorIs(t, err, dao.ErrNotFound)

	counters := rt.Progress()
	assert.Equal(t, 2, counters.SpawnedProcesses)
	assert.Equal(t, 2, counters.ExitedProcesses)
	assert.Equal(t, 1, counters.Blocks)
	assert.NotEmpty(t, rt.BootID())

	assert.Eventually(t, func() bool {
		mux.Lock()
		defer mux.Unlock()
		return len(exits) == 2
	}, time.Second, 5*time.Millisecond)
	assert.ElementsMatch(t, []event.ProcessState{
		{State: process.StateExited, ExitCode: 0},
		{State: process.StateExited, ExitCode: 4},
	}, exits)
}

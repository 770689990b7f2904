package memory

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/viant/kernel/model/task"
	"github.com/viant/kernel/runtime/process"
	"github.com/viant/kernel/service/dao"
	mem "github.com/viant/kernel/service/memory"
)

func TestService(t *testing.T) {
	ctx := context.Background()
	srv := New()
	var ids []int
	for _, pid := range []int{3, 1, 2} {
		p := process.New(pid, "p", mem.New(mem.DefaultHeapBottom))
		p.NewTask("main", task.DefaultPriority)
		require.NoError(t, srv.Save(ctx, p))
	}
	finished, err := srv.Load(ctx, 2)
	require.NoError(t, err)
	finished.Exit(0, 0)

	all, err := srv.List(ctx)
	require.NoError(t, err)
	for _, p := range all {
		ids = append(ids, p.PID)
	}
	assert.Equal(t, []int{1, 2, 3}, ids)

	running, err := srv.List(ctx, dao.NewParameter(dao.ParameterState, process.StateRunning))
	require.NoError(t, err)
	assert.Len(t, running, 2)

	exited, err := srv.List(ctx, dao.NewParameter(dao.ParameterState, process.StateExited))
	require.NoError(t, err)
	require.Len(t, exited, 1)
	assert.Equal(t, 2, exited[0].PID)

	require.NoError(t, srv.Delete(ctx, 2))
	_, err = srv.Load(ctx, 2)
	assert.ErrorIs(t, err, dao.ErrNotFound)
	assert.ErrorIs(t, srv.Delete(ctx, 2), dao.ErrNotFound)
	assert.ErrorIs(t, srv.Save(ctx, nil), dao.ErrNilEntity)
	assert.Equal(t, 2, srv.Len())
}

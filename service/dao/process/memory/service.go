// Package memory is the in-memory process registry.
package memory

import (
	"context"

	"github.com/viant/kernel/runtime/process"
	"github.com/viant/kernel/service/dao"
	"github.com/viant/kernel/service/dao/criteria"
	"github.com/viant/kernel/service/dao/store"
)

// Service keeps processes by pid.
type Service struct {
	*store.MemoryStore[int, process.Process]
}

var _ dao.Service[int, process.Process] = (*Service)(nil)

// Save registers p.
func (s *Service) Save(ctx context.Context, p *process.Process) error {
	if p == nil {
		return dao.ErrNilEntity
	}
	if p.PID < 0 {
		return dao.ErrInvalidID
	}
	return s.MemoryStore.Save(ctx, p)
}

// List returns processes ordered by pid, filtered by the State parameter.
func (s *Service) List(ctx context.Context, parameters ...*dao.Parameter) ([]*process.Process, error) {
	all, err := s.MemoryStore.List(ctx)
	if err != nil {
		return nil, err
	}
	out := all[:0]
	for _, p := range all {
		if criteria.FilterByState(p.State(), parameters) {
			out = append(out, p)
		}
	}
	return out, nil
}

// New creates an empty registry.
func New() *Service {
	return &Service{MemoryStore: store.NewMemoryStore[int, process.Process](
		func(p *process.Process) int { return p.PID },
		func(a, b *process.Process) bool { return a.PID < b.PID },
	)}
}

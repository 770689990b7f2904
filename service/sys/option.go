package sys

import (
	"context"
	"io"

	"github.com/viant/kernel/model/task"
	"github.com/viant/kernel/policy"
	"github.com/viant/kernel/runtime/process"
)

// Option configures the syscall service
type Option func(*Service)

// WithConfig sets the configuration
func WithConfig(config Config) Option {
	return func(s *Service) {
		s.config = config
	}
}

// WithOutput sets the writer behind the stdout descriptor
func WithOutput(w io.Writer) Option {
	return func(s *Service) {
		s.stdout = w
	}
}

// WithContext sets the parent context of syscall spans
func WithContext(ctx context.Context) Option {
	return func(s *Service) {
		s.ctx = ctx
	}
}

// WithExitListener registers a callback invoked when the last thread of a process exits.
func WithExitListener(fn func(p *process.Process)) Option {
	return func(s *Service) {
		s.onExit = append(s.onExit, fn)
	}
}

// WithRejectListener registers a callback invoked when deadlock detection refuses a request.
func WithRejectListener(fn func(t *task.Task, err error)) Option {
	return func(s *Service) {
		s.onReject = append(s.onReject, fn)
	}
}

// WithPolicy sets the admission policy applied by Dispatch
func WithPolicy(p *policy.Policy) Option {
	return func(s *Service) {
		s.policy = p
	}
}

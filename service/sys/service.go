package sys

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/viant/kernel/model/task"
	"github.com/viant/kernel/policy"
	"github.com/viant/kernel/runtime/process"
	"github.com/viant/kernel/service/processor"
)

// Entry is a user program or thread body.
type Entry func(t *Thread)

// Config represents syscall layer configuration
type Config struct {
	ClockFrequency uint64 `json:"clockFrequency" yaml:"clockFrequency"`
	Tracing        bool   `json:"tracing" yaml:"tracing"`
}

// DefaultConfig returns the default syscall configuration
func DefaultConfig() Config {
	return Config{ClockFrequency: DefaultClockFrequency}
}

// Service binds user threads to the processor and their process.
type Service struct {
	config   Config
	cpu      *processor.Service
	stdout   io.Writer
	ctx      context.Context
	policy   *policy.Policy
	onExit   []func(p *process.Process)
	onReject []func(t *task.Task, err error)
}

// New creates a syscall service running threads on cpu
func New(cpu *processor.Service, options ...Option) (*Service, error) {
	if cpu == nil {
		return nil, fmt.Errorf("processor is required")
	}
	s := &Service{config: DefaultConfig(), cpu: cpu, stdout: os.Stdout, ctx: context.Background()}
	for _, opt := range options {
		opt(s)
	}
	if s.config.ClockFrequency == 0 {
		return nil, fmt.Errorf("clock frequency is required")
	}
	return s, nil
}

// Spawn creates a thread of p running entry.
func (s *Service) Spawn(p *process.Process, name string, priority uint64, entry Entry) (*Thread, error) {
	t := p.NewTask(name, priority)
	th := &Thread{service: s, process: p, task: t}
	err := s.cpu.Spawn(t, func() {
		defer s.finish(th)
		entry(th)
	})
	if err != nil {
		return nil, err
	}
	return th, nil
}

func (s *Service) finish(th *Thread) {
	if r := recover(); r != nil {
		log.Printf("sys: thread %v panicked: %v", th.task, r)
		th.task.ExitCode = Failed
	}
	if th.process.Exit(th.task.TID, th.task.ExitCode) {
		for _, fn := range s.onExit {
			fn(th.process)
		}
	}
}

func (s *Service) reject(t *task.Task, err error) {
	for _, fn := range s.onReject {
		fn(t, err)
	}
}

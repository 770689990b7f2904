package kernel

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/viant/afs"
	"github.com/viant/afs/storage"
	"github.com/viant/kernel/internal/idgen"
	"github.com/viant/kernel/model/task"
	"github.com/viant/kernel/policy"
	"github.com/viant/kernel/progress"
	"github.com/viant/kernel/runtime/process"
	pmemory "github.com/viant/kernel/service/dao/process/memory"
	"github.com/viant/kernel/service/event"
	"github.com/viant/kernel/service/messaging"
	mmemory "github.com/viant/kernel/service/messaging/memory"
	"github.com/viant/kernel/service/meta"
	"github.com/viant/kernel/service/processor"
	"github.com/viant/kernel/service/scheduler"
	"github.com/viant/kernel/service/sys"
	"github.com/viant/kernel/service/timer"
	"github.com/viant/kernel/tracing"
)

// Version is reported as the tracing service version.
const Version = "0.1.0"

// Service is the kernel facade
type Service struct {
	runtime       *Runtime
	config        *Config
	configURL     string
	metaService   *meta.Service
	metaBaseURL   string
	metaFsOptions []storage.Option
	eventService  *event.Service
	timer         timer.Service
	output        io.Writer
	policy        *policy.Policy
	tracing       bool
}

// New creates a kernel. Each kernel runs once: Runtime().Run returns when
// all of its threads exited.
func New(options ...Option) (*Service, error) {
	ret := &Service{runtime: &Runtime{}}
	if err := ret.init(options); err != nil {
		return nil, err
	}
	return ret, nil
}

// Runtime returns the kernel runtime
func (s *Service) Runtime() *Runtime {
	return s.runtime
}

// Config returns the effective configuration
func (s *Service) Config() *Config {
	return s.config
}

// EventService returns the kernel event service
func (s *Service) EventService() *event.Service {
	return s.eventService
}

// MetaService returns the meta service
func (s *Service) MetaService() *meta.Service {
	return s.metaService
}

func (s *Service) init(options []Option) error {
	for _, option := range options {
		option(s)
	}
	if err := s.ensureBaseSetup(); err != nil {
		return err
	}
	if err := s.config.Validate(); err != nil {
		return err
	}
	r := s.runtime
	r.config = s.config
	r.bootID = idgen.New()
	r.progress = progress.New(r.bootID)
	if err := r.initEvents(s.eventService); err != nil {
		return err
	}
	var err error
	r.cpu, err = processor.New(
		processor.WithConfig(scheduler.Config{BigStride: s.config.Scheduler.BigStride}),
		processor.WithTimer(s.timer),
		processor.WithListeners(r.onTransition),
	)
	if err != nil {
		return err
	}
	r.sys, err = sys.New(r.cpu,
		sys.WithConfig(sys.Config{ClockFrequency: s.config.Clock.Frequency, Tracing: s.tracing || s.config.Tracing.Enabled}),
		sys.WithOutput(s.output),
		sys.WithPolicy(s.policy),
		sys.WithExitListener(r.onProcessExit),
		sys.WithRejectListener(r.onReject),
	)
	return err
}

func (s *Service) ensureBaseSetup() error {
	if s.metaService == nil {
		s.metaService = meta.New(afs.New(), s.metaBaseURL, s.metaFsOptions...)
	}
	if s.config == nil {
		s.config = DefaultConfig()
		if s.configURL != "" {
			config, err := LoadConfig(context.Background(), s.metaService, s.configURL)
			if err != nil {
				return err
			}
			s.config = config
		}
	}
	if s.config.Tracing.Enabled && !s.tracing {
		if err := tracingInit(s.config.Tracing.Output); err != nil {
			return fmt.Errorf("failed to init tracing: %w", err)
		}
	}
	if s.eventService == nil {
		buffer := s.config.Events.Buffer
		eventService, err := event.New(messaging.VendorMemory, event.WithNewMemoryQueueConfig(func(string) mmemory.Config {
			config := mmemory.DefaultConfig()
			if buffer > 0 {
				config.Capacity = buffer
			}
			return config
		}))
		if err != nil {
			return err
		}
		s.eventService = eventService
	}
	if s.runtime.processDAO == nil {
		s.runtime.processDAO = pmemory.New()
	}
	if s.timer == nil {
		s.timer = timer.New()
	}
	if s.policy == nil {
		s.policy = policy.FromConfig(s.config.Policy)
	} else if s.config.Policy == nil {
		s.config.Policy = policy.ToConfig(s.policy)
	}
	if s.output == nil {
		s.output = os.Stdout
	}
	return nil
}

func (r *Runtime) initEvents(service *event.Service) error {
	var err error
	if r.taskEvents, err = event.PublisherOf[event.TaskState](service); err != nil {
		return err
	}
	if r.processEvents, err = event.PublisherOf[event.ProcessState](service); err != nil {
		return err
	}
	r.rejections, err = event.PublisherOf[event.Rejection](service)
	return err
}

func taskContext(t *task.Task, eventType string) *event.Context {
	return &event.Context{PID: t.PID, TID: t.TID, Name: t.Name, EventType: eventType}
}

func processContext(p *process.Process, eventType string) *event.Context {
	return &event.Context{PID: p.PID, TID: -1, Name: p.Name, EventType: eventType}
}

func tracingInit(output string) error {
	return tracing.Init("kernel", Version, output)
}

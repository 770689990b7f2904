package kernel

import (
	"io"

	"github.com/viant/afs/storage"
	"github.com/viant/kernel/policy"
	"github.com/viant/kernel/runtime/process"
	"github.com/viant/kernel/service/dao"
	"github.com/viant/kernel/service/event"
	"github.com/viant/kernel/service/meta"
	"github.com/viant/kernel/service/timer"
	"github.com/viant/kernel/tracing"

	sdktrace "go.opentelemetry.io/otel/sdk/trace"
)

// Option configures the kernel service
type Option func(s *Service)

// WithConfig sets the configuration
func WithConfig(config *Config) Option {
	return func(s *Service) {
		s.config = config
	}
}

// WithConfigURL loads the configuration from a YAML document through the meta service
func WithConfigURL(location string) Option {
	return func(s *Service) {
		s.configURL = location
	}
}

// WithMetaService sets the meta service
func WithMetaService(service *meta.Service) Option {
	return func(s *Service) {
		s.metaService = service
	}
}

// WithMetaBaseURL sets the meta base URL
func WithMetaBaseURL(url string) Option {
	return func(s *Service) {
		s.metaBaseURL = url
	}
}

// WithMetaFsOptions sets meta file system options, for example an *embed.FS
func WithMetaFsOptions(options ...storage.Option) Option {
	return func(s *Service) {
		s.metaFsOptions = options
	}
}

// WithEventService sets the event service
func WithEventService(service *event.Service) Option {
	return func(s *Service) {
		s.eventService = service
	}
}

// WithProcessDAO sets the process registry
func WithProcessDAO(dao dao.Service[int, process.Process]) Option {
	return func(s *Service) {
		s.runtime.processDAO = dao
	}
}

// WithTimer sets the timer used to wake sleeping threads
func WithTimer(timer timer.Service) Option {
	return func(s *Service) {
		s.timer = timer
	}
}

// WithPolicy sets the syscall admission policy; it takes precedence over Config.Policy
func WithPolicy(p *policy.Policy) Option {
	return func(s *Service) {
		s.policy = p
	}
}

// WithOutput sets the writer behind the stdout descriptor
func WithOutput(w io.Writer) Option {
	return func(s *Service) {
		s.output = w
	}
}

// WithTracing configures OpenTelemetry tracing of syscalls. If outputFile is
// empty the stdout exporter is used.
func WithTracing(serviceName, serviceVersion, outputFile string) Option {
	return func(s *Service) {
		s.tracing = true
		_ = tracing.Init(serviceName, serviceVersion, outputFile)
	}
}

// WithTracingExporter configures OpenTelemetry tracing of syscalls with a custom exporter.
func WithTracingExporter(serviceName, serviceVersion string, exporter sdktrace.SpanExporter) Option {
	return func(s *Service) {
		s.tracing = true
		_ = tracing.InitWithExporter(serviceName, serviceVersion, exporter)
	}
}

package kernel

import (
	"context"
	"fmt"

	"github.com/viant/kernel/model/task"
	"github.com/viant/kernel/policy"
	"github.com/viant/kernel/service/memory"
	"github.com/viant/kernel/service/meta"
	"github.com/viant/kernel/service/scheduler"
	"github.com/viant/kernel/service/sys"
)

// Config is a serialisable representation of the kernel configuration. It
// can be populated from YAML or JSON; see LoadConfig.
type Config struct {
	Scheduler SchedulerConfig `json:"scheduler" yaml:"scheduler"`
	Clock     ClockConfig     `json:"clock" yaml:"clock"`
	Memory    MemoryConfig    `json:"memory" yaml:"memory"`
	Events    EventsConfig    `json:"events" yaml:"events"`
	Tracing   TracingConfig   `json:"tracing" yaml:"tracing"`
	Policy    *policy.Config  `json:"policy,omitempty" yaml:"policy,omitempty"`
}

type SchedulerConfig struct {
	BigStride       uint64 `json:"bigStride" yaml:"bigStride"`
	DefaultPriority uint64 `json:"defaultPriority" yaml:"defaultPriority"`
}

type ClockConfig struct {
	Frequency uint64 `json:"frequency" yaml:"frequency"`
}

type MemoryConfig struct {
	HeapBottom uint64 `json:"heapBottom" yaml:"heapBottom"`
}

type EventsConfig struct {
	// Buffer bounds every event queue; older events are dropped when full.
	Buffer int `json:"buffer" yaml:"buffer"`
}

type TracingConfig struct {
	Enabled bool   `json:"enabled" yaml:"enabled"`
	Output  string `json:"output,omitempty" yaml:"output,omitempty"`
}

// DefaultConfig returns a Config populated with the package defaults.
func DefaultConfig() *Config {
	return &Config{
		Scheduler: SchedulerConfig{
			BigStride:       scheduler.DefaultBigStride,
			DefaultPriority: task.DefaultPriority,
		},
		Clock:  ClockConfig{Frequency: sys.DefaultClockFrequency},
		Memory: MemoryConfig{HeapBottom: memory.DefaultHeapBottom},
		Events: EventsConfig{Buffer: 1024},
	}
}

// Validate returns an error describing the first invalid setting, or nil.
func (c *Config) Validate() error {
	if c == nil {
		return nil
	}
	if c.Scheduler.BigStride == 0 {
		return fmt.Errorf("scheduler.bigStride must be > 0")
	}
	if c.Scheduler.DefaultPriority < task.MinPriority {
		return fmt.Errorf("scheduler.defaultPriority must be >= %d", task.MinPriority)
	}
	if c.Clock.Frequency == 0 {
		return fmt.Errorf("clock.frequency must be > 0")
	}
	if c.Memory.HeapBottom%memory.PageSize != 0 {
		return fmt.Errorf("memory.heapBottom must be page aligned")
	}
	if c.Events.Buffer < 0 {
		return fmt.Errorf("events.buffer must be >= 0")
	}
	if err := c.Policy.Validate(); err != nil {
		return fmt.Errorf("policy: %w", err)
	}
	return nil
}

// LoadConfig overlays the YAML document at location on the defaults.
func LoadConfig(ctx context.Context, metaService *meta.Service, location string) (*Config, error) {
	config := DefaultConfig()
	if err := metaService.Load(ctx, location, config); err != nil {
		return nil, err
	}
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %v: %w", location, err)
	}
	return config, nil
}

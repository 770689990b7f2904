package processor

import (
	"github.com/viant/kernel/service/scheduler"
	"github.com/viant/kernel/service/timer"
)

// Option configures the processor
type Option func(*Service)

// WithConfig sets the scheduler configuration
func WithConfig(config scheduler.Config) Option {
	return func(s *Service) {
		s.config = config
	}
}

// WithTimer sets the timer used to wake sleeping tasks
func WithTimer(timer timer.Service) Option {
	return func(s *Service) {
		s.timer = timer
	}
}

// WithListeners registers callbacks invoked on every task status change.
func WithListeners(listeners ...Listener) Option {
	return func(s *Service) {
		s.listeners = append(s.listeners, listeners...)
	}
}

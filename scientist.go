package scientist

import (
	"github.com/launchdarkly/go-scientist/experiment"
	"github.com/launchdarkly/go-scientist/logging"

	"gopkg.in/launchdarkly/go-sdk-common.v2/ldlog"
)

// Scientist creates experiments that share one configuration.
type Scientist struct {
	config        Config
	filters       RegexFilters
	filter        Filter
	loggers       ldlog.Loggers
	customLoggers bool
	context       experiment.Context
}

type Option func(*Scientist)

// WithLoggers overrides the loggers that would otherwise be built from Config.LogLevel.
func WithLoggers(loggers ldlog.Loggers) Option {
	return func(s *Scientist) {
		s.loggers = loggers
		s.customLoggers = true
	}
}

// WithContext sets context data that is added to every experiment when it is created.
func WithContext(c experiment.Context) Option {
	return func(s *Scientist) {
		for k, v := range c {
			s.context[k] = v
		}
	}
}

// Constructor creates an experiment implementation. It must apply the options if it creates
// an *experiment.Experiment, directly or embedded.
type Constructor[V any] func(name string, opts ...experiment.Option) experiment.Interface[V]

// New creates a Scientist from config. Start from DefaultConfig rather than a zero Config:
// Enabled is false in a zero Config, so every experiment would be created disabled.
func New(config Config, opts ...Option) (*Scientist, error) {
	filters, err := config.compile()
	if err != nil {
		return nil, err
	}
	s := &Scientist{
		config:  config,
		filters: filters,
		filter:  filters.AsFilter,
		context: experiment.Context{},
	}
	for _, opt := range opts {
		opt(s)
	}
	if !s.customLoggers {
		loggers, err := logging.NewLoggers(nil, config.LogLevel)
		if err != nil {
			return nil, err
		}
		s.loggers = loggers
	}
	s.loggers.Debugf("Scientist: %s", s.filters)
	return s, nil
}

// FromEnvironment creates a Scientist configured by LoadConfig.
func FromEnvironment(opts ...Option) (*Scientist, error) {
	config, err := LoadConfig()
	if err != nil {
		return nil, err
	}
	return New(config, opts...)
}

// Enabled reports whether experiments with this name will be enabled when created.
func (s *Scientist) Enabled(name string) bool {
	return s.config.Enabled && s.filter(name)
}

// Context returns a copy of the context given to new experiments.
func (s *Scientist) Context() experiment.Context {
	ret := make(experiment.Context, len(s.context))
	for k, v := range s.context {
		ret[k] = v
	}
	return ret
}

func (s *Scientist) options(name string) []experiment.Option {
	return []experiment.Option{
		experiment.WithEnabled(s.Enabled(name)),
		experiment.WithRaiseOnMismatches(s.config.RaiseOnMismatches),
		experiment.WithMaxConcurrency(s.config.MaxConcurrency),
		experiment.WithLoggers(s.loggers),
	}
}

// Science creates an *experiment.Experiment.
func Science[V any](s *Scientist, name string) experiment.Interface[V] {
	return ScienceWith[V](s, name, nil)
}

// ScienceWith creates an experiment with ctor, or an *experiment.Experiment if ctor is nil.
// Either way the experiment gets the Scientist's options and initial context.
func ScienceWith[V any](s *Scientist, name string, ctor Constructor[V]) experiment.Interface[V] {
	if name == "" {
		name = experiment.DefaultName
	}
	if ctor == nil {
		ctor = func(name string, opts ...experiment.Option) experiment.Interface[V] {
			return experiment.New[V](name, opts...)
		}
	}
	if !s.Enabled(name) {
		s.loggers.Debugf("Scientist: experiment %q is disabled", name)
	}
	exp := ctor(name, s.options(name)...)
	exp.AddContext(s.Context())
	return exp
}

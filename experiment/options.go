package experiment

import (
	"gopkg.in/launchdarkly/go-sdk-common.v2/ldlog"
	"gopkg.in/launchdarkly/go-sdk-common.v2/ldvalue"
)

type settings struct {
	enabled           bool
	raiseOnMismatches bool
	loggers           ldlog.Loggers
	rand              RandSource
	maxConcurrency    ldvalue.OptionalInt
}

// Option configures an Experiment when it is created.
type Option func(*settings)

// WithLoggers sets the loggers used for debug output. By default nothing is logged.
func WithLoggers(loggers ldlog.Loggers) Option {
	return func(s *settings) { s.loggers = loggers }
}

// WithRandSource sets the source used to shuffle behaviors. Access to it is serialized, so a
// seeded *rand.Rand can be used even if the experiment runs concurrently.
func WithRandSource(src RandSource) Option {
	return func(s *settings) {
		if src != nil {
			s.rand = &lockedRandSource{src: src}
		}
	}
}

// WithMaxConcurrency limits how many behaviors of a single run execute at the same time. Zero
// or less means no limit. With a limit of 1, behaviors run one at a time in submission order.
func WithMaxConcurrency(n int) Option {
	return func(s *settings) {
		if n > 0 {
			s.maxConcurrency = ldvalue.NewOptionalInt(n)
		} else {
			s.maxConcurrency = ldvalue.OptionalInt{}
		}
	}
}

func WithEnabled(enabled bool) Option {
	return func(s *settings) { s.enabled = enabled }
}

func WithRaiseOnMismatches(raise bool) Option {
	return func(s *settings) { s.raiseOnMismatches = raise }
}

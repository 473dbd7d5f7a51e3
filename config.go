package scientist

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// Config holds the settings a Scientist applies to every experiment it creates.
type Config struct {
	// Enabled turns instrumentation on or off for all experiments.
	Enabled bool `env:"SCIENTIST_ENABLED" envDefault:"true"`

	RaiseOnMismatches bool `env:"SCIENTIST_RAISE_ON_MISMATCHES"`

	// MaxConcurrency limits concurrently executing behaviors per run; 0 means no limit.
	MaxConcurrency int `env:"SCIENTIST_MAX_CONCURRENCY"`

	// LogLevel is one of debug, info, warn, error, or none.
	LogLevel string `env:"SCIENTIST_LOG_LEVEL" envDefault:"none"`

	// Run and Skip are regular expressions matched against experiment names. If Run is
	// non-empty, only matching experiments are enabled; experiments matching Skip are disabled.
	Run  []string `env:"SCIENTIST_RUN" envSeparator:","`
	Skip []string `env:"SCIENTIST_SKIP" envSeparator:","`
}

// DefaultConfig is the configuration used when the environment sets nothing.
func DefaultConfig() Config {
	return Config{Enabled: true, LogLevel: "none"}
}

// LoadConfig reads the configuration from environment variables and validates it.
func LoadConfig() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate reports the first invalid setting.
func (c Config) Validate() error {
	_, err := c.compile()
	return err
}

// Filters compiles Run and Skip.
func (c Config) Filters() (RegexFilters, error) {
	run, err := compileRegexList(c.Run...)
	if err != nil {
		return RegexFilters{}, fmt.Errorf("SCIENTIST_RUN: %w", err)
	}
	skip, err := compileRegexList(c.Skip...)
	if err != nil {
		return RegexFilters{}, fmt.Errorf("SCIENTIST_SKIP: %w", err)
	}
	return RegexFilters{MustMatch: run, MustNotMatch: skip}, nil
}

// compile validates the config and returns its compiled filters.
func (c Config) compile() (RegexFilters, error) {
	if c.MaxConcurrency < 0 {
		return RegexFilters{}, fmt.Errorf("SCIENTIST_MAX_CONCURRENCY must not be negative, got %d", c.MaxConcurrency)
	}
	return c.Filters()
}

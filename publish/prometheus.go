package publish

import (
	"context"
	"errors"

	"github.com/launchdarkly/go-scientist/experiment"

	"github.com/prometheus/client_golang/prometheus"
)

const metricsNamespace = "scientist"

const (
	outcomeMatched    = "matched"
	outcomeMismatched = "mismatched"
	outcomeIgnored    = "ignored"
	statusControl     = "control"
)

// Prometheus records results as metrics:
//
//	scientist_runs_total{experiment, outcome}
//	scientist_candidates_total{experiment, behavior, outcome}
//	scientist_behavior_duration_seconds{experiment, behavior}
//
// where outcome is "matched", "mismatched", or "ignored".
type Prometheus[V any] struct {
	runs       *prometheus.CounterVec
	candidates *prometheus.CounterVec
	durations  *prometheus.HistogramVec
}

// NewPrometheus creates the metrics and registers them with reg. If the metrics were already
// registered by another Prometheus publisher, the existing ones are shared.
func NewPrometheus[V any](reg prometheus.Registerer) (*Prometheus[V], error) {
	runs := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "runs_total",
			Help:      "Total instrumented experiment runs by outcome",
		},
		[]string{"experiment", "outcome"},
	)
	candidates := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "candidates_total",
			Help:      "Total candidate observations by outcome",
		},
		[]string{"experiment", "behavior", "outcome"},
	)
	durations := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: metricsNamespace,
			Name:      "behavior_duration_seconds",
			Help:      "Time taken by each behavior in seconds",
			Buckets:   []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		},
		[]string{"experiment", "behavior"},
	)

	var err error
	if runs, err = registerOrReuse(reg, runs); err != nil {
		return nil, err
	}
	if candidates, err = registerOrReuse(reg, candidates); err != nil {
		return nil, err
	}
	if durations, err = registerOrReuse(reg, durations); err != nil {
		return nil, err
	}
	return &Prometheus[V]{runs: runs, candidates: candidates, durations: durations}, nil
}

func registerOrReuse[C prometheus.Collector](reg prometheus.Registerer, c C) (C, error) {
	if err := reg.Register(c); err != nil {
		var already prometheus.AlreadyRegisteredError
		if errors.As(err, &already) {
			if existing, ok := already.ExistingCollector.(C); ok {
				return existing, nil
			}
		}
		return c, err
	}
	return c, nil
}

func (p *Prometheus[V]) Publish(_ context.Context, result *experiment.Result[V]) error {
	name := result.ExperimentName()

	outcome := outcomeMatched
	switch {
	case result.Mismatched():
		outcome = outcomeMismatched
	case result.Ignored():
		outcome = outcomeIgnored
	}
	p.runs.WithLabelValues(name, outcome).Inc()

	for _, o := range result.Observations() {
		p.durations.WithLabelValues(name, o.Name).Observe(o.Duration.Seconds())
	}
	for _, o := range result.Candidates() {
		status := outcomeMatched
		switch {
		case o == result.Control():
			status = statusControl
		case contains(result.MismatchedObservations(), o):
			status = outcomeMismatched
		case contains(result.IgnoredObservations(), o):
			status = outcomeIgnored
		}
		p.candidates.WithLabelValues(name, o.Name, status).Inc()
	}
	return nil
}

package publish

import (
	"context"
	"errors"
	"testing"

	"github.com/launchdarkly/go-scientist/experiment"

	"github.com/stretchr/testify/require"
)

// registrationOrder makes the shuffle a no-op, and with a concurrency limit of 1 the
// observations then complete in registration order.
var registrationOrder = experiment.RandSourceFunc(func(n int) int { return n - 1 })

func value(v int) experiment.Behavior[int] {
	return func(context.Context) (int, error) { return v, nil }
}

func failure(message string) experiment.Behavior[int] {
	return func(context.Context) (int, error) { return 0, errors.New(message) }
}

func newTestExperiment() *experiment.Experiment[int] {
	return experiment.New[int]("widgets",
		experiment.WithRandSource(registrationOrder),
		experiment.WithMaxConcurrency(1),
	)
}

func runOnce(t *testing.T, e *experiment.Experiment[int]) *experiment.Result[int] {
	t.Helper()
	recorder := NewRecorder[int]()
	e.SetPublisher(recorder)
	_, _ = e.Run(context.Background())
	results := recorder.Results()
	require.Len(t, results, 1)
	return results[0]
}

func mismatchedResult(t *testing.T) *experiment.Result[int] {
	e := newTestExperiment()
	require.NoError(t, e.Use(value(5)))
	require.NoError(t, e.Try(value(6)))
	return runOnce(t, e)
}

func matchedResult(t *testing.T) *experiment.Result[int] {
	e := newTestExperiment()
	require.NoError(t, e.Use(value(5)))
	require.NoError(t, e.Try(value(5)))
	return runOnce(t, e)
}

func ignoredResult(t *testing.T) *experiment.Result[int] {
	e := newTestExperiment()
	require.NoError(t, e.Use(value(5)))
	require.NoError(t, e.Try(value(6)))
	e.Ignore(func(control, candidate int) bool { return true })
	return runOnce(t, e)
}

package publish

import (
	"context"
	"errors"
	"testing"

	"github.com/launchdarkly/go-scientist/experiment"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecorderKeepsResultsAndMismatches(t *testing.T) {
	e := newTestExperiment()
	require.NoError(t, e.Use(value(1)))
	require.NoError(t, e.Try(value(1)))
	recorder := NewRecorder[int]()
	e.SetPublisher(recorder)

	_, err := e.Run(context.Background())
	require.NoError(t, err)
	assert.True(t, recorder.OK())
	assert.Len(t, recorder.Results(), 1)
	assert.Empty(t, recorder.Mismatches())

	require.NoError(t, e.Register("broken", value(2)))
	_, err = e.Run(context.Background())
	require.NoError(t, err)
	assert.False(t, recorder.OK())
	assert.Len(t, recorder.Results(), 2)
	require.Len(t, recorder.Mismatches(), 1)
	assert.Equal(t, "broken", recorder.Mismatches()[0].MismatchedObservations()[0].Name)

	recorder.Reset()
	assert.True(t, recorder.OK())
	assert.Empty(t, recorder.Results())
}

func TestMultiPublishesInOrder(t *testing.T) {
	var calls []string
	publisher := func(name string, err error) experiment.Publisher[int] {
		return experiment.PublisherFunc[int](func(context.Context, *experiment.Result[int]) error {
			calls = append(calls, name)
			return err
		})
	}
	result := matchedResult(t)

	require.NoError(t, Multi[int]{publisher("a", nil), nil, publisher("b", nil)}.Publish(context.Background(), result))
	assert.Equal(t, []string{"a", "b"}, calls)
}

func TestMultiStopsAtFirstError(t *testing.T) {
	var calls []string
	failing := errors.New("sink down")
	publisher := func(name string, err error) experiment.Publisher[int] {
		return experiment.PublisherFunc[int](func(context.Context, *experiment.Result[int]) error {
			calls = append(calls, name)
			return err
		})
	}

	err := Multi[int]{publisher("a", failing), publisher("b", nil)}.Publish(context.Background(), matchedResult(t))
	assert.Same(t, failing, err)
	assert.Equal(t, []string{"a"}, calls)
}

func TestMultiErrorAbortsRun(t *testing.T) {
	failing := errors.New("sink down")
	e := newTestExperiment()
	require.NoError(t, e.Use(value(1)))
	require.NoError(t, e.Try(value(2)))
	recorder := NewRecorder[int]()
	e.SetPublisher(Multi[int]{recorder, experiment.PublisherFunc[int](
		func(context.Context, *experiment.Result[int]) error { return failing })})

	_, err := e.Run(context.Background())
	assert.Same(t, failing, err)
	assert.Len(t, recorder.Results(), 1)
}

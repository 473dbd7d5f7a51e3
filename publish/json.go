package publish

import (
	"context"
	"io"
	"sync"
	"time"

	"github.com/launchdarkly/go-scientist/experiment"

	"gopkg.in/launchdarkly/go-sdk-common.v2/ldvalue"
)

// JSON writes each result as a single line of JSON. It is safe for concurrent use.
type JSON[V any] struct {
	out  io.Writer
	lock sync.Mutex
}

func NewJSON[V any](out io.Writer) *JSON[V] {
	return &JSON[V]{out: out}
}

func (j *JSON[V]) Publish(_ context.Context, result *experiment.Result[V]) error {
	line := ResultValue(result).JSONString() + "\n"
	j.lock.Lock()
	defer j.lock.Unlock()
	_, err := io.WriteString(j.out, line)
	return err
}

// ResultValue converts a result into a JSON-compatible value. Observation values are the
// cleaned values; values that cannot be represented in JSON become null.
func ResultValue[V any](result *experiment.Result[V]) ldvalue.Value {
	observations := ldvalue.ArrayBuild()
	for _, o := range result.Observations() {
		observations.Add(observationValue(o, result))
	}
	return ldvalue.ObjectBuild().
		Set("id", ldvalue.String(result.ID())).
		Set("experiment", ldvalue.String(result.ExperimentName())).
		Set("context", ldvalue.CopyArbitraryValue(map[string]interface{}(result.Context()))).
		Set("control", ldvalue.String(result.Control().Name)).
		Set("matched", ldvalue.Bool(result.Matched())).
		Set("mismatched", ldvalue.Bool(result.Mismatched())).
		Set("ignored", ldvalue.Bool(result.Ignored())).
		Set("observations", observations.Build()).
		Build()
}

func observationValue[V any](o *experiment.Observation[V], result *experiment.Result[V]) ldvalue.Value {
	b := ldvalue.ObjectBuild().
		Set("name", ldvalue.String(o.Name)).
		Set("durationMs", ldvalue.Float64(float64(o.Duration)/float64(time.Millisecond)))
	if o.Raised() {
		b.Set("error", ldvalue.String(o.Err.Error()))
	} else {
		b.Set("value", ldvalue.CopyArbitraryValue(o.CleanedValue()))
	}
	switch {
	case contains(result.MismatchedObservations(), o):
		b.Set("status", ldvalue.String("mismatched"))
	case contains(result.IgnoredObservations(), o):
		b.Set("status", ldvalue.String("ignored"))
	}
	return b.Build()
}

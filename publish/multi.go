package publish

import (
	"context"

	"github.com/launchdarkly/go-scientist/experiment"
)

// Multi publishes to each publisher in turn, stopping at the first error.
type Multi[V any] []experiment.Publisher[V]

func (m Multi[V]) Publish(ctx context.Context, result *experiment.Result[V]) error {
	for _, p := range m {
		if p == nil {
			continue
		}
		if err := p.Publish(ctx, result); err != nil {
			return err
		}
	}
	return nil
}

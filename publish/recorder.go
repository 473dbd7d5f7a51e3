package publish

import (
	"context"
	"sync"

	"github.com/launchdarkly/go-scientist/experiment"
)

// Recorder keeps every published result in memory.
type Recorder[V any] struct {
	results    []*experiment.Result[V]
	mismatches []*experiment.Result[V]
	lock       sync.Mutex
}

func NewRecorder[V any]() *Recorder[V] {
	return &Recorder[V]{}
}

func (r *Recorder[V]) Publish(_ context.Context, result *experiment.Result[V]) error {
	r.lock.Lock()
	r.results = append(r.results, result)
	if result.Mismatched() {
		r.mismatches = append(r.mismatches, result)
	}
	r.lock.Unlock()
	return nil
}

// Results returns every result in the order it was published.
func (r *Recorder[V]) Results() []*experiment.Result[V] {
	r.lock.Lock()
	defer r.lock.Unlock()
	return append([]*experiment.Result[V](nil), r.results...)
}

// Mismatches returns the results that had an unignored mismatch.
func (r *Recorder[V]) Mismatches() []*experiment.Result[V] {
	r.lock.Lock()
	defer r.lock.Unlock()
	return append([]*experiment.Result[V](nil), r.mismatches...)
}

// OK is true if no recorded result had an unignored mismatch.
func (r *Recorder[V]) OK() bool {
	r.lock.Lock()
	defer r.lock.Unlock()
	return len(r.mismatches) == 0
}

func (r *Recorder[V]) Reset() {
	r.lock.Lock()
	r.results, r.mismatches = nil, nil
	r.lock.Unlock()
}

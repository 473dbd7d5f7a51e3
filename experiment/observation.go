package experiment

import (
	"context"
	"runtime/debug"
	"time"
)

// Observation is the outcome of executing one behavior once.
//
// Err is non-nil if the behavior returned an error or panicked; a panic is recorded as a
// *PanicError, and a behavior that called runtime.Goexit as an *ExitedError. Value holds
// whatever the behavior returned, and is only meaningful for comparison when Err is nil.
type Observation[V any] struct {
	Name      string
	StartedAt time.Time
	Value     V
	Err       error
	Duration  time.Duration

	cleaner  ValueCleaner[V]
	panicked bool
	panicVal interface{}
}

// NewObservation executes fn and records its outcome. It never panics and never returns the
// behavior's error; both are captured in the Observation.
func NewObservation[V any](
	ctx context.Context,
	name string,
	cleaner ValueCleaner[V],
	fn Behavior[V],
) *Observation[V] {
	o := newObservation[V](name, cleaner)
	o.execute(ctx, fn)
	return o
}

func newObservation[V any](name string, cleaner ValueCleaner[V]) *Observation[V] {
	return &Observation[V]{
		Name:      name,
		StartedAt: time.Now(),
		cleaner:   cleaner,
	}
}

// execute records the outcome in a deferred function, so the observation is complete even if
// fn ends the goroutine with runtime.Goexit, in which case execute itself does not return.
func (o *Observation[V]) execute(ctx context.Context, fn Behavior[V]) {
	returned := false
	defer func() {
		r := recover()
		switch {
		case r != nil:
			var zero V
			o.Value = zero
			o.Err = &PanicError{Value: r, Stack: debug.Stack()}
			o.panicked = true
			o.panicVal = r
		case !returned:
			var zero V
			o.Value = zero
			o.Err = &ExitedError{Name: o.Name}
		}
		o.Duration = time.Since(o.StartedAt)
	}()
	o.Value, o.Err = fn(ctx)
	returned = true
}

// Raised returns true if the behavior returned an error, panicked, or exited its goroutine.
func (o *Observation[V]) Raised() bool {
	return o.Err != nil
}

// Panicked returns true if the behavior panicked.
func (o *Observation[V]) Panicked() bool {
	return o.panicked
}

// CleanedValue returns the value as transformed by the experiment's cleaner, or nil if the
// behavior raised. Zero values are cleaned like any other value.
func (o *Observation[V]) CleanedValue() interface{} {
	if o.Raised() {
		return nil
	}
	if o.cleaner == nil {
		return o.Value
	}
	return o.cleaner.CleanValue(o.Value)
}

// EquivalentTo reports whether two observations had the same outcome. If neither raised, the
// values are compared with compare, or with == if compare is nil. If both raised, they are
// equivalent when their error messages are equal. Otherwise they are not equivalent.
func (o *Observation[V]) EquivalentTo(other *Observation[V], compare func(a, b V) bool) bool {
	if other == nil {
		return false
	}
	switch {
	case !o.Raised() && !other.Raised():
		if compare != nil {
			return compare(o.Value, other.Value)
		}
		return strictEqual(o.Value, other.Value)
	case o.Raised() && other.Raised():
		return o.Err.Error() == other.Err.Error()
	default:
		return false
	}
}

func findObservation[V any](observations []*Observation[V], name string) *Observation[V] {
	for _, o := range observations {
		if o.Name == name {
			return o
		}
	}
	return nil
}

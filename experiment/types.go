package experiment

import "context"

const (
	// DefaultName is the name of an experiment that was created without one.
	DefaultName = "experiment"

	// ControlName is the reserved name of the authoritative behavior.
	ControlName = "control"

	// CandidateName is the name given to a behavior registered without one.
	CandidateName = "candidate"
)

// Behavior is one implementation under comparison. The context is the one passed to Run.
type Behavior[V any] func(ctx context.Context) (V, error)

// Context is arbitrary data attached to an experiment and exposed to publishers through
// Result.Context.
type Context map[string]interface{}

// Comparator decides whether a candidate observation is equivalent to the control observation.
type Comparator[V any] func(control, candidate *Observation[V]) bool

// IgnoreFunc is called with the control and candidate values of a mismatched pair. Returning
// true turns the mismatch into an ignored mismatch.
type IgnoreFunc[V any] func(control, candidate V) bool

// Cleaner converts an observed value into something suitable for publishing.
type Cleaner[V any] func(value V) interface{}

// Hook runs once before the behaviors of an instrumented run. A non-nil error aborts the run.
type Hook func(ctx context.Context) error

// RunIfFunc decides, on each run, whether the experiment is instrumented at all.
type RunIfFunc func() bool

// Publisher receives the Result of every instrumented run. An error returned by Publish is
// returned from Run as is.
type Publisher[V any] interface {
	Publish(ctx context.Context, result *Result[V]) error
}

// PublisherFunc adapts a function to the Publisher interface.
type PublisherFunc[V any] func(ctx context.Context, result *Result[V]) error

func (f PublisherFunc[V]) Publish(ctx context.Context, result *Result[V]) error {
	return f(ctx, result)
}

type nopPublisher[V any] struct{}

func (nopPublisher[V]) Publish(context.Context, *Result[V]) error { return nil }

// Interface is the contract of an experiment: registration, configuration, and running.
// *Experiment implements it; other implementations, usually embedding *Experiment, can be
// substituted wherever an Interface is accepted.
type Interface[V any] interface {
	Name() string
	Register(name string, fn Behavior[V]) error
	Try(fn Behavior[V]) error
	Use(fn Behavior[V]) error
	AddContext(c Context)
	Context() Context
	Clean(fn Cleaner[V])
	Compare(fn Comparator[V])
	Ignore(fn IgnoreFunc[V])
	BeforeRun(fn Hook)
	RunIf(fn RunIfFunc)
	SetEnabled(enabled bool)
	SetRaiseOnMismatches(raise bool)
	SetPublisher(p Publisher[V])
	Run(ctx context.Context) (V, error)
	RunBehavior(ctx context.Context, name string) (V, error)
}

// Policy is the part of an experiment that a Result needs in order to classify observations.
type Policy[V any] interface {
	Name() string
	Context() Context
	ObservationsAreEquivalent(control, candidate *Observation[V]) bool
	IgnoreMismatchedObservation(control, candidate *Observation[V]) bool
}

// ValueCleaner is the part of an experiment that an Observation needs to clean its value.
type ValueCleaner[V any] interface {
	CleanValue(value V) interface{}
}

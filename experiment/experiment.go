package experiment

import (
	"context"
	"sync"

	"golang.org/x/sync/errgroup"
	"gopkg.in/launchdarkly/go-sdk-common.v2/ldlog"
	"gopkg.in/launchdarkly/go-sdk-common.v2/ldvalue"
)

// Experiment compares a control behavior with candidate behaviors. Configure it before the
// first run; after that, any number of runs may happen concurrently and are independent of
// each other.
type Experiment[V any] struct {
	name              string
	enabled           bool
	raiseOnMismatches bool
	behaviors         behaviorRegistry[V]
	context           Context
	ignores           []IgnoreFunc[V]
	comparator        Comparator[V]
	cleaner           Cleaner[V]
	beforeRun         Hook
	runIf             RunIfFunc
	publisher         Publisher[V]
	loggers           ldlog.Loggers
	rand              RandSource
	maxConcurrency    ldvalue.OptionalInt
	lock              sync.RWMutex
}

var _ Interface[int] = (*Experiment[int])(nil)

// New creates an experiment. An empty name is replaced with DefaultName.
func New[V any](name string, opts ...Option) *Experiment[V] {
	if name == "" {
		name = DefaultName
	}
	s := settings{
		enabled: true,
		loggers: ldlog.NewDisabledLoggers(),
		rand:    globalRandSource{},
	}
	for _, opt := range opts {
		opt(&s)
	}
	return &Experiment[V]{
		name:              name,
		enabled:           s.enabled,
		raiseOnMismatches: s.raiseOnMismatches,
		context:           Context{},
		publisher:         nopPublisher[V]{},
		loggers:           s.loggers,
		rand:              s.rand,
		maxConcurrency:    s.maxConcurrency,
	}
}

func (e *Experiment[V]) Name() string {
	return e.name
}

// Register adds a behavior. An empty name means CandidateName. Registering under ControlName
// supplies the control.
func (e *Experiment[V]) Register(name string, fn Behavior[V]) error {
	if name == "" {
		name = CandidateName
	}
	e.loggers.Debugf("Experiment %q: registering behavior %q", e.name, name)
	e.lock.Lock()
	defer e.lock.Unlock()
	if _, exists := e.behaviors.get(name); exists {
		return &DuplicateBehaviorNameError{Experiment: e.name, Name: name}
	}
	if fn == nil {
		return &InvalidBehaviorError{Experiment: e.name, Name: name}
	}
	e.behaviors.insertIfAbsent(name, fn)
	return nil
}

// Try registers a candidate under CandidateName.
func (e *Experiment[V]) Try(fn Behavior[V]) error {
	return e.Register(CandidateName, fn)
}

// Use registers the control.
func (e *Experiment[V]) Use(fn Behavior[V]) error {
	return e.Register(ControlName, fn)
}

// BehaviorNames returns the registered names in registration order.
func (e *Experiment[V]) BehaviorNames() []string {
	e.lock.RLock()
	defer e.lock.RUnlock()
	return e.behaviors.names()
}

// AddContext merges c into the experiment's context; keys in c replace existing keys.
func (e *Experiment[V]) AddContext(c Context) {
	e.lock.Lock()
	for k, v := range c {
		e.context[k] = v
	}
	e.lock.Unlock()
}

// Context returns a copy of the experiment's context.
func (e *Experiment[V]) Context() Context {
	e.lock.RLock()
	defer e.lock.RUnlock()
	ret := make(Context, len(e.context))
	for k, v := range e.context {
		ret[k] = v
	}
	return ret
}

func (e *Experiment[V]) Clean(fn Cleaner[V]) {
	e.lock.Lock()
	e.cleaner = fn
	e.lock.Unlock()
}

// CleanValue applies the cleaner to value, or returns value unchanged if there is no cleaner.
func (e *Experiment[V]) CleanValue(value V) interface{} {
	e.lock.RLock()
	cleaner := e.cleaner
	e.lock.RUnlock()
	if cleaner == nil {
		return value
	}
	return cleaner(value)
}

func (e *Experiment[V]) Compare(fn Comparator[V]) {
	e.lock.Lock()
	e.comparator = fn
	e.lock.Unlock()
}

// Ignore adds a predicate for discarding mismatches. Predicates are consulted in the order
// they were added.
func (e *Experiment[V]) Ignore(fn IgnoreFunc[V]) {
	if fn == nil {
		return
	}
	e.lock.Lock()
	e.ignores = append(e.ignores, fn)
	e.lock.Unlock()
}

func (e *Experiment[V]) BeforeRun(fn Hook) {
	e.lock.Lock()
	e.beforeRun = fn
	e.lock.Unlock()
}

func (e *Experiment[V]) RunIf(fn RunIfFunc) {
	e.lock.Lock()
	e.runIf = fn
	e.lock.Unlock()
}

func (e *Experiment[V]) SetEnabled(enabled bool) {
	e.lock.Lock()
	e.enabled = enabled
	e.lock.Unlock()
}

func (e *Experiment[V]) Enabled() bool {
	e.lock.RLock()
	defer e.lock.RUnlock()
	return e.enabled
}

func (e *Experiment[V]) SetRaiseOnMismatches(raise bool) {
	e.lock.Lock()
	e.raiseOnMismatches = raise
	e.lock.Unlock()
}

func (e *Experiment[V]) RaiseOnMismatches() bool {
	e.lock.RLock()
	defer e.lock.RUnlock()
	return e.raiseOnMismatches
}

// SetPublisher sets the publisher for results. A nil publisher discards them.
func (e *Experiment[V]) SetPublisher(p Publisher[V]) {
	if p == nil {
		p = nopPublisher[V]{}
	}
	e.lock.Lock()
	e.publisher = p
	e.lock.Unlock()
}

// ShouldRun reports whether a run would be instrumented: there must be more than one
// behavior, the experiment must be enabled, and the RunIf predicate, if any, must agree.
func (e *Experiment[V]) ShouldRun() bool {
	e.lock.RLock()
	count, enabled, runIf := e.behaviors.len(), e.enabled, e.runIf
	e.lock.RUnlock()
	return count > 1 && enabled && (runIf == nil || runIf())
}

// ObservationsAreEquivalent uses the comparator if one is set. Otherwise the values must be
// strictly equal and the errors must be the same error value; two distinct errors with the
// same message are not equivalent.
func (e *Experiment[V]) ObservationsAreEquivalent(control, candidate *Observation[V]) bool {
	e.lock.RLock()
	comparator := e.comparator
	e.lock.RUnlock()
	if comparator != nil {
		return comparator(control, candidate)
	}
	return strictEqual(control.Value, candidate.Value) && strictEqual(control.Err, candidate.Err)
}

// IgnoreMismatchedObservation returns true as soon as one ignore predicate accepts the pair.
func (e *Experiment[V]) IgnoreMismatchedObservation(control, candidate *Observation[V]) bool {
	e.lock.RLock()
	ignores := e.ignores
	e.lock.RUnlock()
	for _, ignore := range ignores {
		if ignore(control.Value, candidate.Value) {
			return true
		}
	}
	return false
}

// Run runs the experiment with the behavior named "control" as the control.
func (e *Experiment[V]) Run(ctx context.Context) (V, error) {
	return e.RunBehavior(ctx, ControlName)
}

// RunBehavior runs every behavior and returns the outcome of the named one.
//
// If the experiment should not run (see ShouldRun), the named behavior is called directly and
// its outcome returned. Otherwise the before-run hook is called, all behaviors are observed,
// the Result is published, and the named behavior's outcome is returned: its value and error
// as it returned them, or its panic re-raised. If raising on mismatches is enabled and the
// Result has an unignored mismatch, a *MismatchError is returned instead.
//
// Errors from the before-run hook and the publisher are returned unchanged.
func (e *Experiment[V]) RunBehavior(ctx context.Context, name string) (V, error) {
	var zero V

	e.lock.RLock()
	fn, ok := e.behaviors.get(name)
	e.lock.RUnlock()
	if !ok {
		return zero, &UnknownBehaviorError{Experiment: e.name, Name: name}
	}

	if !e.ShouldRun() {
		e.loggers.Debugf("Experiment %q: not instrumented, calling %q directly", e.name, name)
		return fn(ctx)
	}

	e.lock.RLock()
	beforeRun := e.beforeRun
	e.lock.RUnlock()
	if beforeRun != nil {
		e.loggers.Debugf("Experiment %q: calling before-run hook", e.name)
		if err := beforeRun(ctx); err != nil {
			return zero, err
		}
	}

	observations := e.observeAll(ctx)

	control, err := e.controlObservation(observations, name)
	if err != nil {
		return zero, err
	}
	result := NewResult[V](e, observations, control)
	e.loggers.Debugf("Experiment %q: result %s matched=%t mismatched=%t ignored=%t",
		e.name, result.ID(), result.Matched(), result.Mismatched(), result.Ignored())

	e.lock.RLock()
	publisher := e.publisher
	e.lock.RUnlock()
	if err := publisher.Publish(ctx, result); err != nil {
		return zero, err
	}

	if e.RaiseOnMismatches() && result.Mismatched() {
		return zero, &MismatchError{Name: name, Result: result}
	}
	if control.panicked {
		panic(control.panicVal)
	}
	return control.Value, control.Err
}

// observeAll executes every behavior concurrently, in shuffled submission order, and waits for
// all of them. The observations are returned in completion order.
func (e *Experiment[V]) observeAll(ctx context.Context) []*Observation[V] {
	e.lock.RLock()
	behaviors := e.behaviors.snapshot()
	e.lock.RUnlock()

	shuffle(behaviors, e.rand)

	var (
		group        errgroup.Group
		lock         sync.Mutex
		observations = make([]*Observation[V], 0, len(behaviors))
	)
	if e.maxConcurrency.IsDefined() {
		group.SetLimit(e.maxConcurrency.IntValue())
	}
	for _, b := range behaviors {
		b := b
		e.loggers.Debugf("Experiment %q: starting %q", e.name, b.name)
		group.Go(func() error {
			o := newObservation[V](b.name, e)
			defer func() {
				e.loggers.Debugf("Experiment %q: %q finished in %s (raised=%t)", e.name, b.name, o.Duration, o.Raised())
				lock.Lock()
				observations = append(observations, o)
				lock.Unlock()
			}()
			o.execute(ctx, b.fn)
			return nil // failures stay in the observation
		})
	}
	_ = group.Wait()
	return observations
}

func (e *Experiment[V]) controlObservation(observations []*Observation[V], name string) (*Observation[V], error) {
	if control := findObservation(observations, name); control != nil {
		return control, nil
	}
	return nil, &ControlObservationMissingError{Experiment: e.name, Name: name}
}

package experiment

import "github.com/google/uuid"

// ResultSummary is the type-independent view of a Result.
type ResultSummary interface {
	ID() string
	ExperimentName() string
	Context() Context
	Matched() bool
	Mismatched() bool
	Ignored() bool
}

// Result classifies the observations of one run against the control observation. The
// classification is done once, when the Result is created.
type Result[V any] struct {
	id           string
	policy       Policy[V]
	observations []*Observation[V]
	control      *Observation[V]
	candidates   []*Observation[V]
	mismatched   []*Observation[V]
	ignored      []*Observation[V]
}

// NewResult builds a Result. Every observation not named "control" is a candidate, and each
// candidate ends up matched, ignored, or mismatched according to the policy.
func NewResult[V any](policy Policy[V], observations []*Observation[V], control *Observation[V]) *Result[V] {
	r := &Result[V]{
		id:           uuid.NewString(),
		policy:       policy,
		observations: observations,
		control:      control,
	}
	for _, o := range observations {
		if o.Name != ControlName {
			r.candidates = append(r.candidates, o)
		}
	}
	r.evaluateCandidates()
	return r
}

func (r *Result[V]) evaluateCandidates() {
	for _, candidate := range r.candidates {
		switch {
		case r.policy.ObservationsAreEquivalent(r.control, candidate):
		case r.policy.IgnoreMismatchedObservation(r.control, candidate):
			r.ignored = append(r.ignored, candidate)
		default:
			r.mismatched = append(r.mismatched, candidate)
		}
	}
}

// ID uniquely identifies this run.
func (r *Result[V]) ID() string { return r.id }

func (r *Result[V]) ExperimentName() string { return r.policy.Name() }

func (r *Result[V]) Context() Context { return r.policy.Context() }

func (r *Result[V]) Control() *Observation[V] { return r.control }

// Observations returns every observation in the order the behaviors completed.
func (r *Result[V]) Observations() []*Observation[V] { return r.observations }

func (r *Result[V]) Candidates() []*Observation[V] { return r.candidates }

func (r *Result[V]) MismatchedObservations() []*Observation[V] { return r.mismatched }

func (r *Result[V]) IgnoredObservations() []*Observation[V] { return r.ignored }

// Matched is true only if every candidate matched. An ignored mismatch is not a match.
func (r *Result[V]) Matched() bool {
	return len(r.mismatched) == 0 && len(r.ignored) == 0
}

func (r *Result[V]) Mismatched() bool { return len(r.mismatched) > 0 }

func (r *Result[V]) Ignored() bool { return len(r.ignored) > 0 }

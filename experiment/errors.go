package experiment

import "fmt"

// InvalidBehaviorError is returned by Register when the behavior is nil.
type InvalidBehaviorError struct {
	Experiment string
	Name       string
}

func (e *InvalidBehaviorError) Error() string {
	return fmt.Sprintf("experiment %q: behavior %q is not a function", e.Experiment, e.Name)
}

// DuplicateBehaviorNameError is returned by Register when the name is already in use.
type DuplicateBehaviorNameError struct {
	Experiment string
	Name       string
}

func (e *DuplicateBehaviorNameError) Error() string {
	return fmt.Sprintf("experiment %q: name %q is not unique for behavior", e.Experiment, e.Name)
}

// UnknownBehaviorError is returned by Run when no behavior has the requested name. No behavior
// has been executed when it is returned.
type UnknownBehaviorError struct {
	Experiment string
	Name       string
}

func (e *UnknownBehaviorError) Error() string {
	return fmt.Sprintf("experiment %q: %s behavior is missing", e.Experiment, e.Name)
}

// ControlObservationMissingError means the behaviors ran but none of the observations belongs
// to the requested control.
type ControlObservationMissingError struct {
	Experiment string
	Name       string
}

func (e *ControlObservationMissingError) Error() string {
	return fmt.Sprintf("experiment %q: could not find control observation (%s)", e.Experiment, e.Name)
}

// MismatchError is returned by Run when raising on mismatches is enabled and at least one
// candidate mismatched the control without being ignored. Result is the *Result[V] of the run.
type MismatchError struct {
	Name   string
	Result ResultSummary
}

func (e *MismatchError) Error() string {
	return fmt.Sprintf("experiment %q: candidates mismatched behavior %q",
		e.Result.ExperimentName(), e.Name)
}

// PanicError is recorded in an Observation whose behavior panicked.
type PanicError struct {
	Value interface{}
	Stack []byte
}

func (e *PanicError) Error() string {
	return fmt.Sprintf("behavior panicked: %+v", e.Value)
}

// ExitedError is recorded in an Observation whose behavior ended its goroutine without
// returning, for instance by calling runtime.Goexit.
type ExitedError struct {
	Name string
}

func (e *ExitedError) Error() string {
	return fmt.Sprintf("behavior %q exited without returning", e.Name)
}

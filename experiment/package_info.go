// Package experiment contains the engine that runs a trusted "control" behavior alongside one
// or more "candidate" behaviors, compares what they did, and reports the comparison without
// changing what the caller sees.
//
// The general model is:
//
// 1. An Experiment holds named behaviors. The behavior named "control" is authoritative; every
// other behavior is a candidate.
//
// 2. Each call to Run executes every behavior exactly once, concurrently and in a randomized
// submission order, capturing each outcome in an Observation. A failing or panicking candidate
// never affects the others or the caller.
//
// 3. The observations are classified into a Result (matched, mismatched, or ignored mismatch)
// using the experiment's comparator and ignore predicates, and the Result is handed to a
// Publisher.
//
// 4. Run returns exactly what the control returned, unless the experiment is configured to
// raise on mismatches, in which case an unignored mismatch produces a *MismatchError.
//
// If the experiment is disabled, has fewer than two behaviors, or its RunIf predicate says no,
// Run simply calls the control and nothing else happens.
//
// There is no timeout or cancellation of behaviors: the context passed to Run is handed to
// each behavior as is, and a behavior that never returns keeps Run from returning.
package experiment

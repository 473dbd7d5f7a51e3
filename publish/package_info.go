// Package publish contains implementations of experiment.Publisher.
//
// Console and JSON write a report of each result to an io.Writer, Prometheus updates metrics
// in a caller-supplied registry, Recorder keeps results in memory, and Multi combines several
// publishers. None of them retries: an error from a publisher aborts the run that produced
// the result.
package publish

package publish

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/launchdarkly/go-scientist/experiment"

	"github.com/fatih/color"
)

// Console writes a human-readable report of each result.
//
// Results with an unignored mismatch are always reported. Results that only have ignored
// mismatches are reported if ReportIgnored is set, and fully matching results if ReportMatches
// is set.
type Console[V any] struct {
	Out           io.Writer
	ReportMatches bool
	ReportIgnored bool
	NoColor       bool
}

func (c *Console[V]) Publish(_ context.Context, result *experiment.Result[V]) error {
	var status string
	switch {
	case result.Mismatched():
		status = c.paint(color.FgRed, "MISMATCHED")
	case result.Ignored():
		if !c.ReportIgnored {
			return nil
		}
		status = c.paint(color.FgYellow, "IGNORED")
	default:
		if !c.ReportMatches {
			return nil
		}
		status = c.paint(color.FgGreen, "MATCHED")
	}

	var b strings.Builder
	fmt.Fprintf(&b, "[%s] %s (%s)\n", result.ExperimentName(), status, result.ID())
	fmt.Fprintf(&b, "  %s\n", describeObservation(result.Control()))
	for _, o := range result.Candidates() {
		if o == result.Control() {
			continue
		}
		line := describeObservation(o)
		switch {
		case contains(result.MismatchedObservations(), o):
			line += " " + c.paint(color.FgRed, "MISMATCH")
		case contains(result.IgnoredObservations(), o):
			line += " " + c.paint(color.FgYellow, "IGNORED")
		}
		fmt.Fprintf(&b, "  %s\n", line)
	}

	_, err := io.WriteString(c.out(), b.String())
	return err
}

func (c *Console[V]) out() io.Writer {
	if c.Out == nil {
		return os.Stdout
	}
	return c.Out
}

func (c *Console[V]) paint(attr color.Attribute, s string) string {
	if c.NoColor {
		return s
	}
	return color.New(attr).Sprint(s)
}

func describeObservation[V any](o *experiment.Observation[V]) string {
	duration := o.Duration.Round(time.Microsecond)
	if o.Raised() {
		return fmt.Sprintf("%s: error: %s (%s)", o.Name, o.Err, duration)
	}
	return fmt.Sprintf("%s: %+v (%s)", o.Name, o.CleanedValue(), duration)
}

func contains[V any](list []*experiment.Observation[V], o *experiment.Observation[V]) bool {
	for _, item := range list {
		if item == o {
			return true
		}
	}
	return false
}

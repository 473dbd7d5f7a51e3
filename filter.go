package scientist

import (
	"fmt"
	"regexp"
	"slices"
	"strconv"
	"strings"
)

// Filter decides whether an experiment with the given name may be instrumented.
type Filter func(experimentName string) bool

type RegexFilters struct {
	MustMatch    RegexList
	MustNotMatch RegexList
}

func (r RegexFilters) AsFilter(name string) bool {
	return (!r.MustMatch.IsDefined() || r.MustMatch.AnyMatch(name)) &&
		!r.MustNotMatch.AnyMatch(name)
}

func (r RegexFilters) String() string {
	var parts []string
	if r.MustMatch.IsDefined() {
		parts = append(parts, fmt.Sprintf("run experiments matching %s", r.MustMatch))
	}
	if r.MustNotMatch.IsDefined() {
		parts = append(parts, fmt.Sprintf("skip experiments matching %s", r.MustNotMatch))
	}
	if len(parts) == 0 {
		return "run all experiments"
	}
	return strings.Join(parts, "; ")
}

// RegexList is a set of compiled experiment-name patterns.
type RegexList struct {
	patterns []*regexp.Regexp
}

func (r RegexList) String() string {
	quoted := make([]string, 0, len(r.patterns))
	for _, p := range r.patterns {
		quoted = append(quoted, strconv.Quote(p.String()))
	}
	return strings.Join(quoted, " or ")
}

func (r RegexList) IsDefined() bool {
	return len(r.patterns) != 0
}

func (r RegexList) AnyMatch(name string) bool {
	return slices.ContainsFunc(r.patterns, func(p *regexp.Regexp) bool {
		return p.MatchString(name)
	})
}

// compileRegexList compiles the patterns of a SCIENTIST_RUN or SCIENTIST_SKIP list. Blank
// entries, such as the one left by a trailing comma, are skipped.
func compileRegexList(patterns ...string) (RegexList, error) {
	var list RegexList
	for _, p := range patterns {
		if p = strings.TrimSpace(p); p == "" {
			continue
		}
		rx, err := regexp.Compile(p)
		if err != nil {
			return RegexList{}, fmt.Errorf("invalid regex: %w", err)
		}
		list.patterns = append(list.patterns, rx)
	}
	return list, nil
}

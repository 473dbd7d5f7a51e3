package logging

import (
	"fmt"
	"io"
	"strings"
	"sync"
	"time"

	"gopkg.in/launchdarkly/go-sdk-common.v2/ldlog"
)

const timestampFormat = "2006-01-02 15:04:05.000"

type CapturedMessage struct {
	Time    time.Time
	Message string
}

type CapturedOutput []CapturedMessage

// CapturingLogger is an ldlog.BaseLogger that keeps every line in memory. It is safe for
// concurrent use, since observations of the same run log from different goroutines.
type CapturingLogger struct {
	output []CapturedMessage
	lock   sync.Mutex
}

func (l *CapturingLogger) Println(values ...interface{}) {
	l.add(strings.TrimSuffix(fmt.Sprintln(values...), "\n"))
}

func (l *CapturingLogger) Printf(message string, args ...interface{}) {
	l.add(fmt.Sprintf(message, args...))
}

func (l *CapturingLogger) add(message string) {
	l.lock.Lock()
	l.output = append(l.output, CapturedMessage{Time: time.Now(), Message: message})
	l.lock.Unlock()
}

func (l *CapturingLogger) Output() CapturedOutput {
	l.lock.Lock()
	ret := append(CapturedOutput(nil), l.output...)
	l.lock.Unlock()
	return ret
}

// Messages returns just the text of each captured line.
func (output CapturedOutput) Messages() []string {
	ret := make([]string, 0, len(output))
	for _, m := range output {
		ret = append(ret, m.Message)
	}
	return ret
}

func (output CapturedOutput) Dump(dest io.Writer, prefix string) {
	for _, m := range output {
		fmt.Fprintf(dest, "%s[%s] %s\n",
			prefix,
			m.Time.Format(timestampFormat),
			m.Message,
		)
	}
}

// ParseLevel converts a level name such as "debug" or "warn" into an ldlog.LogLevel. The
// empty string means ldlog.None.
func ParseLevel(name string) (ldlog.LogLevel, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "debug":
		return ldlog.Debug, nil
	case "info":
		return ldlog.Info, nil
	case "warn", "warning":
		return ldlog.Warn, nil
	case "error":
		return ldlog.Error, nil
	case "", "none":
		return ldlog.None, nil
	}
	return ldlog.None, fmt.Errorf("unknown log level %q", name)
}

// NewLoggers returns loggers that write to base at or above the named level. A nil base
// means the ldlog default (standard error).
func NewLoggers(base ldlog.BaseLogger, level string) (ldlog.Loggers, error) {
	minLevel, err := ParseLevel(level)
	if err != nil {
		return ldlog.NewDisabledLoggers(), err
	}
	if minLevel == ldlog.None {
		return ldlog.NewDisabledLoggers(), nil
	}
	loggers := ldlog.NewDefaultLoggers()
	if base != nil {
		loggers.SetBaseLogger(base)
	}
	loggers.SetMinLevel(minLevel)
	return loggers, nil
}

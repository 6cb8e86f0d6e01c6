package scriptenv

import (
	"fmt"
	"strings"
	"time"
)

// Result is the immutable outcome of one completed run. A non-zero
// ReturnCode is a normal outcome the caller inspects, never an error.
type Result struct {
	// RunID correlates this result with log lines and history records.
	RunID string

	// Cmdline is the full argv the child was spawned with, resolved path first.
	Cmdline []string

	// ReturnCode is the child's exit code; -1 when it died to a signal.
	ReturnCode int

	// Stdout and Stderr hold the fully drained streams as UTF-8 text.
	Stdout string
	Stderr string

	// Data is the decoded form of Stdout when it parses as JSON, nil
	// otherwise. Its absence is not an error; children are free to print
	// anything.
	Data any

	// Duration is wall-clock time from spawn to exit.
	Duration time.Duration
}

// String renders a diagnostic block suitable for test-failure messages,
// including the return code and both streams verbatim.
func (r *Result) String() string {
	var b strings.Builder
	b.WriteString("Result\n")
	fmt.Fprintf(&b, " Cmdline: %v\n", r.Cmdline)
	fmt.Fprintf(&b, " ReturnCode: %d\n", r.ReturnCode)
	fmt.Fprintf(&b, " Duration: %s\n", r.Duration)
	b.WriteString(" >>> stdout\n")
	b.WriteString(r.Stdout)
	if !strings.HasSuffix(r.Stdout, "\n") {
		b.WriteString("\n")
	}
	b.WriteString(" <<< stdout\n")
	b.WriteString(" >>> stderr\n")
	b.WriteString(r.Stderr)
	if !strings.HasSuffix(r.Stderr, "\n") {
		b.WriteString("\n")
	}
	b.WriteString(" <<< stderr")
	if r.Data != nil {
		fmt.Fprintf(&b, "\n Data: %v", r.Data)
	}
	return b.String()
}

package vm

import (
	"fmt"
	"strings"
)

// RuntimeError aborts the run immediately, unlike compile errors which
// accumulate. Line is the failing instruction's own source line; Trace
// holds the call-site lines of the frames still active above it, innermost
// first, resolving the Open Question of which line a runtime error in a
// function body should report.
type RuntimeError struct {
	Line    int
	Message string
	Trace   []string
}

func (e RuntimeError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "💥 RuntimeError: [line %d] %s", e.Line, e.Message)
	for _, frame := range e.Trace {
		fmt.Fprintf(&b, "\n  at %s", frame)
	}
	return b.String()
}

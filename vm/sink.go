package vm

import (
	"fmt"
	"io"
)

// PrintSink is the injectable collaborator Print instructions write
// through: either the real process stdout or a captured buffer a test can
// inspect. Formatting (numbers, booleans, strings) happens before the sink
// ever sees the text — the sink only ever receives the final string.
type PrintSink interface {
	Print(text string)
}

// WriterSink adapts any io.Writer (typically os.Stdout) into a PrintSink.
// Whether a trailing newline is appended is the sink's call, not the VM's;
// WriterSink appends one, matching a REPL/script-runner's usual expectation.
type WriterSink struct {
	W io.Writer
}

func (s WriterSink) Print(text string) {
	fmt.Fprintln(s.W, text)
}

// CaptureSink accumulates printed lines in memory instead of writing
// anywhere, for tests that assert on VM output.
type CaptureSink struct {
	Lines []string
}

func NewCaptureSink() *CaptureSink {
	return &CaptureSink{}
}

func (s *CaptureSink) Print(text string) {
	s.Lines = append(s.Lines, text)
}

func (s *CaptureSink) String() string {
	out := ""
	for i, line := range s.Lines {
		if i > 0 {
			out += "\n"
		}
		out += line
	}
	return out
}

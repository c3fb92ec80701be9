package rdparser

import "fmt"

// SyntaxError reports a parse-time problem, tagged with the offending
// token's line.
type SyntaxError struct {
	Line    int
	Message string
}

func (e SyntaxError) Error() string {
	return fmt.Sprintf("[line %d] %s", e.Line, e.Message)
}

package twi

import "fmt"

// RuntimeError is raised (as a Go panic, caught at Interpret's boundary)
// for a problem only detectable while evaluating a tree, e.g. an undefined
// variable or a non-numeric operand to arithmetic.
type RuntimeError struct {
	Line    int
	Message string
}

func (e RuntimeError) Error() string {
	return fmt.Sprintf("💥 RuntimeError: [line %d] %s", e.Line, e.Message)
}

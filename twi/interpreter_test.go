package twi

import (
	"testing"

	"glint/rdparser"
)

type captureSink struct {
	lines []string
}

func (s *captureSink) Print(text string) {
	s.lines = append(s.lines, text)
}

func run(t *testing.T, source string) []string {
	t.Helper()
	stmts, errs := rdparser.New(source).Parse()
	if len(errs) > 0 {
		t.Fatalf("unexpected parse errors: %v", errs)
	}
	sink := &captureSink{}
	if err := New(sink).Interpret(stmts); err != nil {
		t.Fatalf("unexpected runtime error: %v", err)
	}
	return sink.lines
}

func TestInterpretArithmetic(t *testing.T) {
	got := run(t, `print 1 + 2;`)
	if len(got) != 1 || got[0] != "3" {
		t.Errorf("got %v, want [3]", got)
	}
}

func TestInterpretStringConcatenation(t *testing.T) {
	got := run(t, `var beverage = "cafe au lait"; var breakfast = "beignets with " + beverage; print breakfast;`)
	if got[0] != "beignets with cafe au lait" {
		t.Errorf("got %q", got[0])
	}
}

func TestInterpretBlockScopedShadowing(t *testing.T) {
	got := run(t, `{ var a = "outer"; { var a = "inner"; print a; } }`)
	if got[0] != "inner" {
		t.Errorf("got %q, want inner", got[0])
	}
}

func TestInterpretWhileLoop(t *testing.T) {
	got := run(t, `var v = 0; var i = 0; while (i < 5) { v = v + 1; i = i + 1; } print v;`)
	if got[0] != "5" {
		t.Errorf("got %q, want 5", got[0])
	}
}

func TestInterpretLogicalShortCircuit(t *testing.T) {
	got := run(t, `print false and (1/0 == 0);`)
	if got[0] != "false" {
		t.Errorf("got %q, want false (right side must not evaluate)", got[0])
	}
}

func TestInterpretUndefinedVariableIsRuntimeError(t *testing.T) {
	stmts, errs := rdparser.New(`print missing;`).Parse()
	if len(errs) > 0 {
		t.Fatalf("unexpected parse errors: %v", errs)
	}
	sink := &captureSink{}
	err := New(sink).Interpret(stmts)
	if err == nil {
		t.Fatal("expected a runtime error for undefined variable")
	}
}

package vm

import (
	"testing"

	"github.com/stretchr/testify/require"

	"glint/compiler"
)

func run(t *testing.T, source string) []string {
	t.Helper()
	fn, err := compiler.Compile(source)
	require.NoError(t, err)

	machine := New(nil)
	machine.CapturePrints(true)
	require.NoError(t, machine.Interpret(fn))
	return machine.Captured()
}

func TestArithmetic(t *testing.T) {
	require.Equal(t, []string{"3"}, run(t, "print 1 + 2;"))
}

func TestComparisonChain(t *testing.T) {
	require.Equal(t, []string{"true"}, run(t, "print !(5 - 4 > 3 * 2 == !nil);"))
}

func TestStringConcatenation(t *testing.T) {
	got := run(t, `var beverage = "cafe au lait"; var breakfast = "beignets with " + beverage; print breakfast;`)
	require.Equal(t, []string{"beignets with cafe au lait"}, got)
}

func TestBlockScopedShadowing(t *testing.T) {
	got := run(t, `{ var a = "outer"; { var a = "inner"; print a; } }`)
	require.Equal(t, []string{"inner"}, got)
}

func TestForLoopAccumulates(t *testing.T) {
	got := run(t, `var v = 0; for (var i = 0; i < 10; i = i + 1) { v = v + 1; } print v;`)
	require.Equal(t, []string{"10"}, got)
}

func TestRecursiveFunctionCall(t *testing.T) {
	got := run(t, `fun fib(n){ if (n<=1) return n; return fib(n-2)+fib(n-1); } print fib(9);`)
	require.Equal(t, []string{"34"}, got)
}

func TestWrongArityIsRuntimeError(t *testing.T) {
	fn, err := compiler.Compile(`fun f(a){} f();`)
	require.NoError(t, err)

	machine := New(nil)
	machine.CapturePrints(true)
	err = machine.Interpret(fn)
	require.Error(t, err)
	rerr, ok := err.(RuntimeError)
	require.True(t, ok)
	require.Contains(t, rerr.Message, "expected 1 arguments")
}

func TestNonCallableTargetIsRuntimeError(t *testing.T) {
	fn, err := compiler.Compile(`var notAFunction = 123; notAFunction();`)
	require.NoError(t, err)

	machine := New(nil)
	err = machine.Interpret(fn)
	require.Error(t, err)
	rerr, ok := err.(RuntimeError)
	require.True(t, ok)
	require.Contains(t, rerr.Message, "can only call functions")
}

func TestUndefinedGlobalIsRuntimeError(t *testing.T) {
	fn, err := compiler.Compile(`print undefined_name;`)
	require.NoError(t, err)

	machine := New(nil)
	err = machine.Interpret(fn)
	require.Error(t, err)
	require.Contains(t, err.Error(), "undefined variable")
}

func TestGlobalRedefinitionAllowed(t *testing.T) {
	got := run(t, `var a = 1; var a = 2; print a;`)
	require.Equal(t, []string{"2"}, got)
}

func TestDoubleNegationIdempotence(t *testing.T) {
	got := run(t, `print !!true; print !!false;`)
	require.Equal(t, []string{"true", "false"}, got)
}

func TestStackEmptyAfterSuccessfulRun(t *testing.T) {
	fn, err := compiler.Compile(`print 1; var a = 2; { var b = 3; print b; }`)
	require.NoError(t, err)

	machine := New(nil)
	machine.CapturePrints(true)
	require.NoError(t, machine.Interpret(fn))
	require.Zero(t, machine.stack.Len())
}

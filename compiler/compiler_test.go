package compiler

import (
	"testing"

	"github.com/stretchr/testify/require"

	"glint/bytecode"
)

func opcodes(fn *bytecode.Function) []bytecode.Opcode {
	ops := make([]bytecode.Opcode, len(fn.Chunk.Instructions))
	for i, instr := range fn.Chunk.Instructions {
		ops[i] = instr.Op
	}
	return ops
}

func TestCompileSimpleArithmetic(t *testing.T) {
	fn, err := Compile("print 1 + 2;")
	require.NoError(t, err)
	require.Equal(t, []bytecode.Opcode{
		bytecode.OpConstant, bytecode.OpConstant, bytecode.OpAdd, bytecode.OpPrint,
		bytecode.OpNil, bytecode.OpReturn,
	}, opcodes(fn))
}

func TestCompileGlobalVariable(t *testing.T) {
	fn, err := Compile(`var beverage = "cafe au lait"; print beverage;`)
	require.NoError(t, err)
	require.Contains(t, opcodes(fn), bytecode.OpDefineGlobal)
	require.Contains(t, opcodes(fn), bytecode.OpFetchGlobal)
}

func TestCompileLocalShadowing(t *testing.T) {
	fn, err := Compile(`{ var a = "outer"; { var a = "inner"; print a; } }`)
	require.NoError(t, err)
	require.Contains(t, opcodes(fn), bytecode.OpGetLocal)
	require.NotContains(t, opcodes(fn), bytecode.OpFetchGlobal)
}

func TestCompileSelfReferenceGuardFails(t *testing.T) {
	_, err := Compile(`{ var a = "outer"; { var a = a; } }`)
	require.Error(t, err)
	errs, ok := err.(Errors)
	require.True(t, ok)
	require.Contains(t, errs.Error(), "own initializer")
}

func TestCompileDoubleDeclarationGuardFails(t *testing.T) {
	_, err := Compile(`{ var a = 1; var a = 2; }`)
	require.Error(t, err)
	errs := err.(Errors)
	require.Contains(t, errs.Error(), "Already a variable")
}

func TestCompileInvalidAssignmentTargetFails(t *testing.T) {
	_, err := Compile(`a * b = c + d;`)
	require.Error(t, err)
	errs := err.(Errors)
	require.Contains(t, errs.Error(), "Invalid assignment target")
}

func TestCompileTopLevelReturnFails(t *testing.T) {
	_, err := Compile(`return 0;`)
	require.Error(t, err)
	errs := err.(Errors)
	require.Contains(t, errs.Error(), "top-level code")
}

func TestCompileGlobalRedefinitionAllowed(t *testing.T) {
	_, err := Compile(`var a = 1; var a = 2;`)
	require.NoError(t, err)
}

func TestCompileFunctionDeclaration(t *testing.T) {
	fn, err := Compile(`fun fib(n){ if (n<=1) return n; return fib(n-2)+fib(n-1); } print fib(9);`)
	require.NoError(t, err)
	require.Contains(t, opcodes(fn), bytecode.OpConstant)

	var nested *bytecode.Function
	for _, c := range fn.Chunk.Constants {
		if c.IsFunction() {
			nested = c.AsFunction()
		}
	}
	require.NotNil(t, nested)
	require.Equal(t, 1, nested.Arity)
	require.Equal(t, "fib", nested.Name)
	require.Contains(t, opcodes(nested), bytecode.OpCall)
}

func TestCompileMultipleErrorsAccumulate(t *testing.T) {
	_, err := Compile(`var a = ; var b = ;`)
	require.Error(t, err)
	errs := err.(Errors)
	require.GreaterOrEqual(t, len(errs), 2)
}

func TestCompileForLoopUsesJumpBack(t *testing.T) {
	fn, err := Compile(`var v = 0; for (var i = 0; i < 10; i = i + 1) { v = v + 1; } print v;`)
	require.NoError(t, err)
	require.Contains(t, opcodes(fn), bytecode.OpJumpBack)
}

func TestCompileAndOrShortCircuitJumps(t *testing.T) {
	fn, err := Compile(`print true and false or true;`)
	require.NoError(t, err)
	ops := opcodes(fn)
	require.Contains(t, ops, bytecode.OpJumpIfFalse)
	require.Contains(t, ops, bytecode.OpJump)
}

// Package vm is the stack-based, call-framed interpreter that runs
// compiled bytecode.Function values. It owns a single operand stack shared
// across every active call frame and a globals table keyed by name.
package vm

import (
	"fmt"

	"github.com/dolthub/swiss"

	"glint/bytecode"
)

// maxFrames caps call-frame depth the way rusty-lox's FRAMES_MAX does.
const maxFrames = 256

// VM is not safe for concurrent use: its stack, frame list, and globals
// table are all private, unshared state.
type VM struct {
	stack  Stack
	frames []Frame

	globals *swiss.Map[string, bytecode.Value]

	sink          PrintSink
	capturePrints bool
	captured      []string
}

// New builds a VM that prints through sink. If sink is nil, prints are
// silently discarded unless capturePrints is also set.
func New(sink PrintSink) *VM {
	return &VM{
		globals: swiss.NewMap[string, bytecode.Value](64),
		sink:    sink,
	}
}

// CapturePrints switches Print instructions to append into an in-memory
// buffer (retrievable with Captured) instead of invoking the sink.
func (vm *VM) CapturePrints(capture bool) {
	vm.capturePrints = capture
}

// Captured returns every string a Print instruction has produced so far
// while capturePrints is enabled.
func (vm *VM) Captured() []string {
	return vm.captured
}

// Interpret runs a freshly compiled script function to completion,
// returning the first RuntimeError encountered, if any. The operand stack
// is guaranteed empty on a nil-error return.
func (vm *VM) Interpret(fn *bytecode.Function) error {
	vm.stack = vm.stack[:0]
	vm.frames = vm.frames[:0]

	vm.stack.Push(bytecode.FunctionValue(fn))
	vm.frames = append(vm.frames, Frame{Function: fn, StackBase: 0})

	return vm.run()
}

func (vm *VM) currentFrame() *Frame {
	return &vm.frames[len(vm.frames)-1]
}

func (vm *VM) run() error {
	for {
		frame := vm.currentFrame()
		instr := frame.fetch()

		switch instr.Op {
		case bytecode.OpConstant, bytecode.OpLongConstant:
			vm.stack.Push(frame.chunk().Constant(instr.Operand))

		case bytecode.OpNil:
			vm.stack.Push(bytecode.Nil)
		case bytecode.OpTrue:
			vm.stack.Push(bytecode.Bool(true))
		case bytecode.OpFalse:
			vm.stack.Push(bytecode.Bool(false))

		case bytecode.OpPop:
			vm.stack.Pop()

		case bytecode.OpNegate:
			v, _ := vm.stack.Pop()
			if !v.IsNumber() {
				return vm.runtimeError("operand must be a number")
			}
			vm.stack.Push(bytecode.Number(-v.AsNumber()))

		case bytecode.OpAdd:
			if err := vm.add(); err != nil {
				return err
			}

		case bytecode.OpSubtract:
			if err := vm.numericBinary(func(a, b float64) float64 { return a - b }); err != nil {
				return err
			}
		case bytecode.OpMultiply:
			if err := vm.numericBinary(func(a, b float64) float64 { return a * b }); err != nil {
				return err
			}
		case bytecode.OpDivide:
			if err := vm.numericBinary(func(a, b float64) float64 { return a / b }); err != nil {
				return err
			}

		case bytecode.OpNot:
			v, _ := vm.stack.Pop()
			vm.stack.Push(bytecode.Bool(v.IsFalsey()))

		case bytecode.OpEqual:
			b, _ := vm.stack.Pop()
			a, _ := vm.stack.Pop()
			vm.stack.Push(bytecode.Bool(a.Equals(b)))

		case bytecode.OpGreater:
			if err := vm.comparisonBinary(func(a, b float64) bool { return a > b }); err != nil {
				return err
			}
		case bytecode.OpLess:
			if err := vm.comparisonBinary(func(a, b float64) bool { return a < b }); err != nil {
				return err
			}

		case bytecode.OpPrint:
			v, _ := vm.stack.Pop()
			vm.print(v.String())

		case bytecode.OpDefineGlobal:
			name := frame.chunk().Constant(instr.Operand).AsString()
			v, _ := vm.stack.Pop()
			vm.globals.Put(name, v)

		case bytecode.OpFetchGlobal:
			name := frame.chunk().Constant(instr.Operand).AsString()
			v, ok := vm.globals.Get(name)
			if !ok {
				return vm.runtimeError(fmt.Sprintf("undefined variable '%s'", name))
			}
			vm.stack.Push(v)

		case bytecode.OpSetGlobal:
			name := frame.chunk().Constant(instr.Operand).AsString()
			if _, ok := vm.globals.Get(name); !ok {
				return vm.runtimeError(fmt.Sprintf("undefined variable '%s'", name))
			}
			v, _ := vm.stack.Peek()
			vm.globals.Put(name, v)

		case bytecode.OpGetLocal:
			vm.stack.Push(vm.stack[frame.StackBase+int(instr.Operand)])

		case bytecode.OpSetLocal:
			v, _ := vm.stack.Peek()
			vm.stack[frame.StackBase+int(instr.Operand)] = v

		case bytecode.OpJumpIfFalse:
			v, _ := vm.stack.Peek()
			if v.IsFalsey() {
				frame.IP += int(instr.Operand)
			}

		case bytecode.OpJump:
			frame.IP += int(instr.Operand)

		case bytecode.OpJumpBack:
			frame.IP -= int(instr.Operand)

		case bytecode.OpCall:
			if err := vm.call(int(instr.Operand)); err != nil {
				return err
			}

		case bytecode.OpReturn:
			done, err := vm.doReturn()
			if err != nil {
				return err
			}
			if done {
				return nil
			}

		default:
			return vm.runtimeError(fmt.Sprintf("unknown opcode %v", instr.Op))
		}
	}
}

func (vm *VM) add() error {
	b, _ := vm.stack.Pop()
	a, _ := vm.stack.Pop()
	switch {
	case a.IsNumber() && b.IsNumber():
		vm.stack.Push(bytecode.Number(a.AsNumber() + b.AsNumber()))
	case a.IsString() && b.IsString():
		vm.stack.Push(bytecode.String(a.AsString() + b.AsString()))
	default:
		return vm.runtimeError("operands must be two numbers or two strings")
	}
	return nil
}

func (vm *VM) numericBinary(op func(a, b float64) float64) error {
	b, _ := vm.stack.Pop()
	a, _ := vm.stack.Pop()
	if !a.IsNumber() || !b.IsNumber() {
		return vm.runtimeError("operands must be numbers")
	}
	vm.stack.Push(bytecode.Number(op(a.AsNumber(), b.AsNumber())))
	return nil
}

func (vm *VM) comparisonBinary(op func(a, b float64) bool) error {
	b, _ := vm.stack.Pop()
	a, _ := vm.stack.Pop()
	if !a.IsNumber() || !b.IsNumber() {
		return vm.runtimeError("operands must be numbers")
	}
	vm.stack.Push(bytecode.Bool(op(a.AsNumber(), b.AsNumber())))
	return nil
}

func (vm *VM) call(argCount int) error {
	callee, _ := vm.stack.PeekAt(argCount)
	if !callee.IsFunction() {
		return vm.runtimeError("can only call functions")
	}
	fn := callee.AsFunction()
	if fn.Arity != argCount {
		return vm.runtimeError(fmt.Sprintf("expected %d arguments but got %d", fn.Arity, argCount))
	}
	if len(vm.frames) >= maxFrames {
		return vm.runtimeError("stack overflow")
	}
	vm.frames = append(vm.frames, Frame{
		Function:  fn,
		StackBase: vm.stack.Len() - argCount - 1,
	})
	return nil
}

// doReturn unwinds the current frame, reporting (true, nil) once the
// script's own frame returns, ending the run.
func (vm *VM) doReturn() (bool, error) {
	result, _ := vm.stack.Pop()
	finished := vm.frames[len(vm.frames)-1]
	vm.frames = vm.frames[:len(vm.frames)-1]
	vm.stack.Truncate(finished.StackBase)

	if len(vm.frames) == 0 {
		return true, nil
	}
	vm.stack.Push(result)
	return false, nil
}

func (vm *VM) print(text string) {
	if vm.capturePrints {
		vm.captured = append(vm.captured, text)
		return
	}
	if vm.sink != nil {
		vm.sink.Print(text)
	}
}

func (vm *VM) runtimeError(message string) RuntimeError {
	frame := vm.currentFrame()
	var trace []string
	for i := len(vm.frames) - 2; i >= 0; i-- {
		caller := vm.frames[i]
		trace = append(trace, fmt.Sprintf("line %d", caller.line()))
	}
	return RuntimeError{Line: frame.line(), Message: message, Trace: trace}
}

package vm

import "glint/bytecode"

// Frame is one active call: which function is running, where its
// instruction pointer sits within that function's chunk, and where its
// window onto the shared operand stack begins. Slot stackBase+0 always
// holds the function value itself; arguments occupy stackBase+1..=arity.
type Frame struct {
	Function  *bytecode.Function
	IP        int
	StackBase int
}

func (f *Frame) chunk() *bytecode.Chunk {
	return f.Function.Chunk
}

// fetch returns the instruction at IP and advances IP past it.
func (f *Frame) fetch() bytecode.Instruction {
	instr := f.chunk().Instructions[f.IP]
	f.IP++
	return instr
}

func (f *Frame) line() int {
	return f.chunk().Lines.Get(f.IP - 1)
}

package bytecode

import (
	"fmt"
	"strings"
)

// Disassemble renders every instruction in the chunk as human-readable
// text, one line per instruction, prefixed by its index and source line.
// name labels the chunk (typically its owning function's name).
func (c *Chunk) Disassemble(name string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "== %s ==\n", name)
	for i := range c.Instructions {
		b.WriteString(c.DisassembleInstruction(i))
		b.WriteByte('\n')
	}
	return b.String()
}

// DisassembleInstruction renders a single instruction at index, resolving
// constant-pool and name operands inline so the output is self-contained.
func (c *Chunk) DisassembleInstruction(index int) string {
	instr := c.Instructions[index]
	line := c.Lines.Get(index)

	lineCol := fmt.Sprintf("%4d", line)
	if index > 0 && c.Lines.Get(index-1) == line {
		lineCol = "   |"
	}

	switch instr.Op {
	case OpConstant, OpLongConstant:
		return fmt.Sprintf("%04d %s %-16s %4d '%s'", index, lineCol, instr.Op, instr.Operand, c.Constant(instr.Operand))
	case OpDefineGlobal, OpFetchGlobal, OpSetGlobal:
		return fmt.Sprintf("%04d %s %-16s %4d '%s'", index, lineCol, instr.Op, instr.Operand, c.Constant(instr.Operand))
	case OpGetLocal, OpSetLocal, OpCall:
		return fmt.Sprintf("%04d %s %-16s %4d", index, lineCol, instr.Op, instr.Operand)
	case OpJump, OpJumpIfFalse:
		return fmt.Sprintf("%04d %s %-16s %4d -> %d", index, lineCol, instr.Op, instr.Operand, index+1+int(instr.Operand))
	case OpJumpBack:
		return fmt.Sprintf("%04d %s %-16s %4d -> %d", index, lineCol, instr.Op, instr.Operand, index+1-int(instr.Operand))
	default:
		return fmt.Sprintf("%04d %s %s", index, lineCol, instr.Op)
	}
}

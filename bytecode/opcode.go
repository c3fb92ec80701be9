package bytecode

import "fmt"

// Opcode names every instruction the compiler can emit and the VM can
// execute. Instructions are kept as a typed slice (see Instruction) rather
// than a packed byte stream: jump offsets are counted in whole instructions,
// so there is no need to choose a variable-width byte encoding.
type Opcode byte

const (
	OpConstant     Opcode = iota // operand: index into the constant pool (fits a byte)
	OpLongConstant               // operand: index into the constant pool (wide form)
	OpNil
	OpTrue
	OpFalse
	OpPop

	OpNegate
	OpAdd
	OpSubtract
	OpMultiply
	OpDivide

	OpNot
	OpEqual
	OpGreater
	OpLess

	OpPrint

	OpDefineGlobal // operand: index of the name constant
	OpFetchGlobal  // operand: index of the name constant
	OpSetGlobal    // operand: index of the name constant

	OpGetLocal // operand: frame-relative stack slot
	OpSetLocal // operand: frame-relative stack slot

	OpJumpIfFalse // operand: forward offset, in instructions
	OpJump        // operand: forward offset, in instructions
	OpJumpBack    // operand: backward offset, in instructions

	OpCall // operand: argument count
	OpReturn
)

var opcodeNames = map[Opcode]string{
	OpConstant:     "CONSTANT",
	OpLongConstant: "LONG_CONSTANT",
	OpNil:          "NIL",
	OpTrue:         "TRUE",
	OpFalse:        "FALSE",
	OpPop:          "POP",
	OpNegate:       "NEGATE",
	OpAdd:          "ADD",
	OpSubtract:     "SUBTRACT",
	OpMultiply:     "MULTIPLY",
	OpDivide:       "DIVIDE",
	OpNot:          "NOT",
	OpEqual:        "EQUAL",
	OpGreater:      "GREATER",
	OpLess:         "LESS",
	OpPrint:        "PRINT",
	OpDefineGlobal: "DEFINE_GLOBAL",
	OpFetchGlobal:  "FETCH_GLOBAL",
	OpSetGlobal:    "SET_GLOBAL",
	OpGetLocal:     "GET_LOCAL",
	OpSetLocal:     "SET_LOCAL",
	OpJumpIfFalse:  "JUMP_IF_FALSE",
	OpJump:         "JUMP",
	OpJumpBack:     "JUMP_BACK",
	OpCall:         "CALL",
	OpReturn:       "RETURN",
}

func (op Opcode) String() string {
	if name, ok := opcodeNames[op]; ok {
		return name
	}
	return fmt.Sprintf("OPCODE(%d)", byte(op))
}

// Instruction is one opcode plus its (possibly unused) operand. Opcodes that
// take no operand simply ignore the Operand field.
type Instruction struct {
	Op      Opcode
	Operand uint32
}

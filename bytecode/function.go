package bytecode

// Function is a compiled callable: its parameter count and the chunk that
// implements its body. A Function whose Name is empty is the implicit
// top-level script function created for a whole program.
type Function struct {
	Arity int
	Chunk *Chunk
	Name  string
}

func NewFunction(name string, arity int) *Function {
	return &Function{Arity: arity, Chunk: NewChunk(), Name: name}
}

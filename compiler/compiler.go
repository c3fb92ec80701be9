// Package compiler implements the single-pass Pratt compiler: it drives a
// scanner-backed token stream straight into bytecode, with no intermediate
// AST. Nested function bodies get their own Compiler linked to the
// enclosing one, mirroring lexical scope in the call stack itself.
package compiler

import (
	"strconv"

	"golang.org/x/exp/slices"

	"glint/bytecode"
	"glint/token"
)

type functionType int

const (
	typeScript functionType = iota
	typeFunction
)

type local struct {
	name        string
	depth       int
	initialized bool
}

// Compiler compiles one function body (the outermost Compiler compiles the
// top-level script) into its own bytecode.Function. enclosing links back to
// the Compiler for the lexically surrounding function, so locals declared
// there are invisible here — this language has no closures.
type Compiler struct {
	d *driver

	enclosing *Compiler
	fn        *bytecode.Function
	fnType    functionType

	locals     []local
	scopeDepth int
}

// Compile compiles an entire source program and returns the script-level
// Function (name = ""), or the accumulated Errors if anything failed to
// compile. No partial function is ever returned alongside an error.
func Compile(source string) (*bytecode.Function, error) {
	d := newDriver(source)
	c := newCompiler(d, nil, typeScript, "")

	for !d.matchToken(token.EOF) {
		c.declaration()
	}
	c.emitReturn()

	if len(d.errors) > 0 {
		return nil, d.errors
	}
	return c.fn, nil
}

func newCompiler(d *driver, enclosing *Compiler, fnType functionType, name string) *Compiler {
	c := &Compiler{
		d:         d,
		enclosing: enclosing,
		fn:        bytecode.NewFunction(name, 0),
		fnType:    fnType,
		// Slot 0 is reserved for the function value itself (GetLocal{0}
		// resolves to the callee); it has no source name so user code can
		// never refer to it.
		locals: []local{{name: "", depth: 0, initialized: true}},
	}
	if fnType == typeFunction {
		c.scopeDepth = 1
	}
	return c
}

func (c *Compiler) chunk() *bytecode.Chunk {
	return c.fn.Chunk
}

func (c *Compiler) emit(op bytecode.Opcode, operand uint32) int {
	return c.chunk().Write(op, operand, c.d.previous.Line)
}

func (c *Compiler) emitReturn() {
	c.emit(bytecode.OpNil, 0)
	c.emit(bytecode.OpReturn, 0)
}

func (c *Compiler) emitJump(op bytecode.Opcode) int {
	return c.emit(op, 0)
}

func (c *Compiler) patchJump(index int) {
	c.chunk().PatchJump(index)
}

// emitLoop emits a JumpBack targeting loopStart, the instruction index the
// next iteration resumes at (the loop condition, or a for loop's increment
// clause).
func (c *Compiler) emitLoop(loopStart int) {
	offset := c.chunk().Len() - loopStart + 1
	c.emit(bytecode.OpJumpBack, uint32(offset))
}

// ---- expressions ----

func (c *Compiler) expression() {
	c.parsePrecedence(precAssignment)
}

func (c *Compiler) parsePrecedence(min precedence) {
	c.d.advance()
	prefixRule := ruleFor(c.d.previous.Type).prefix
	if prefixRule == nil {
		c.d.errorAtPrevious("Expect expression.")
		return
	}

	canAssign := min <= precAssignment
	prefixRule(c, canAssign)

	for min <= ruleFor(c.d.current.Type).precedence {
		c.d.advance()
		infixRule := ruleFor(c.d.previous.Type).infix
		infixRule(c, canAssign)
	}

	if canAssign && c.d.matchToken(token.Equal) {
		c.d.errorAtPrevious("Invalid assignment target.")
	}
}

func (c *Compiler) number(canAssign bool) {
	v, _ := strconv.ParseFloat(c.d.previous.Lexeme, 64)
	c.chunk().EmitConstant(bytecode.Number(v), c.d.previous.Line)
}

func (c *Compiler) string(canAssign bool) {
	lit, _ := c.d.previous.Literal.(string)
	c.chunk().EmitConstant(bytecode.String(lit), c.d.previous.Line)
}

func (c *Compiler) literal(canAssign bool) {
	switch c.d.previous.Type {
	case token.False:
		c.emit(bytecode.OpFalse, 0)
	case token.True:
		c.emit(bytecode.OpTrue, 0)
	case token.Nil:
		c.emit(bytecode.OpNil, 0)
	}
}

func (c *Compiler) grouping(canAssign bool) {
	c.expression()
	c.d.consume(token.RightParen, "Expect ')' after expression.")
}

func (c *Compiler) unary(canAssign bool) {
	opType := c.d.previous.Type
	c.parsePrecedence(precUnary)
	switch opType {
	case token.Minus:
		c.emit(bytecode.OpNegate, 0)
	case token.Bang:
		c.emit(bytecode.OpNot, 0)
	}
}

func (c *Compiler) binary(canAssign bool) {
	opType := c.d.previous.Type
	r := ruleFor(opType)
	c.parsePrecedence(r.precedence + 1)

	switch opType {
	case token.Plus:
		c.emit(bytecode.OpAdd, 0)
	case token.Minus:
		c.emit(bytecode.OpSubtract, 0)
	case token.Star:
		c.emit(bytecode.OpMultiply, 0)
	case token.Slash:
		c.emit(bytecode.OpDivide, 0)
	case token.EqualEqual:
		c.emit(bytecode.OpEqual, 0)
	case token.BangEqual:
		c.emit(bytecode.OpEqual, 0)
		c.emit(bytecode.OpNot, 0)
	case token.Greater:
		c.emit(bytecode.OpGreater, 0)
	case token.GreaterEqual:
		c.emit(bytecode.OpLess, 0)
		c.emit(bytecode.OpNot, 0)
	case token.Less:
		c.emit(bytecode.OpLess, 0)
	case token.LessEqual:
		c.emit(bytecode.OpGreater, 0)
		c.emit(bytecode.OpNot, 0)
	}
}

func (c *Compiler) and_(canAssign bool) {
	endJump := c.emitJump(bytecode.OpJumpIfFalse)
	c.emit(bytecode.OpPop, 0)
	c.parsePrecedence(precAnd)
	c.patchJump(endJump)
}

func (c *Compiler) or_(canAssign bool) {
	elseJump := c.emitJump(bytecode.OpJumpIfFalse)
	endJump := c.emitJump(bytecode.OpJump)
	c.patchJump(elseJump)
	c.emit(bytecode.OpPop, 0)
	c.parsePrecedence(precOr)
	c.patchJump(endJump)
}

func (c *Compiler) call(canAssign bool) {
	argCount := c.argumentList()
	c.emit(bytecode.OpCall, uint32(argCount))
}

func (c *Compiler) argumentList() int {
	count := 0
	if !c.d.check(token.RightParen) {
		for {
			c.expression()
			if count == 255 {
				c.d.errorAtPrevious("Can't have more than 255 arguments.")
			}
			count++
			if !c.d.matchToken(token.Comma) {
				break
			}
		}
	}
	c.d.consume(token.RightParen, "Expect ')' after arguments.")
	return count
}

func (c *Compiler) variable(canAssign bool) {
	c.namedVariable(c.d.previous, canAssign)
}

func (c *Compiler) namedVariable(name token.Token, canAssign bool) {
	getOp, setOp, arg := bytecode.OpFetchGlobal, bytecode.OpSetGlobal, 0
	if slot, ok := c.resolveLocal(name.Lexeme); ok {
		getOp, setOp, arg = bytecode.OpGetLocal, bytecode.OpSetLocal, slot
	} else {
		arg = c.chunk().InternName(name.Lexeme)
	}

	if canAssign && c.d.matchToken(token.Equal) {
		c.expression()
		c.emit(setOp, uint32(arg))
		return
	}
	c.emit(getOp, uint32(arg))
}

// resolveLocal searches locals innermost-first. An uninitialized match
// (still between its name and its initializer) is a compile error, since
// that is exactly the `var a = a;` self-reference the initialized flag
// guards against.
func (c *Compiler) resolveLocal(name string) (int, bool) {
	for i := len(c.locals) - 1; i >= 0; i-- {
		if c.locals[i].name != name {
			continue
		}
		if !c.locals[i].initialized {
			c.d.errorAtPrevious("Can't read local variable in its own initializer.")
		}
		return i, true
	}
	return 0, false
}

// ---- declarations & statements ----

func (c *Compiler) declaration() {
	switch {
	case c.d.matchToken(token.Fun):
		c.funDeclaration()
	case c.d.matchToken(token.Var):
		c.varDeclaration()
	default:
		c.statement()
	}
	if c.d.panicMode {
		c.d.synchronize()
	}
}

func (c *Compiler) varDeclaration() {
	global := c.parseVariable("Expect variable name.")

	if c.d.matchToken(token.Equal) {
		c.expression()
	} else {
		c.emit(bytecode.OpNil, 0)
	}
	c.d.consume(token.Semicolon, "Expect ';' after variable declaration.")

	c.defineVariable(global)
}

func (c *Compiler) funDeclaration() {
	global := c.parseVariable("Expect function name.")
	c.markInitialized()
	c.function(c.d.previous.Lexeme)
	c.defineVariable(global)
}

// function compiles a nested function body with its own Compiler, then
// emits the resulting Function as a constant in the *enclosing* chunk —
// this is how the finished function value gets onto the operand stack for
// defineVariable to bind.
func (c *Compiler) function(name string) {
	fc := newCompiler(c.d, c, typeFunction, name)

	fc.d.consume(token.LeftParen, "Expect '(' after function name.")
	if !fc.d.check(token.RightParen) {
		for {
			fc.fn.Arity++
			if fc.fn.Arity > 255 {
				fc.d.errorAtCurrent("Can't have more than 255 parameters.")
			}
			paramConstant := fc.parseVariable("Expect parameter name.")
			fc.defineVariable(paramConstant)
			if !fc.d.matchToken(token.Comma) {
				break
			}
		}
	}
	fc.d.consume(token.RightParen, "Expect ')' after parameters.")
	fc.d.consume(token.LeftBrace, "Expect '{' before function body.")
	fc.block()
	fc.emitReturn()

	c.chunk().EmitConstant(bytecode.FunctionValue(fc.fn), c.d.previous.Line)
}

// parseVariable consumes an identifier, declares it (as a local if inside a
// scope), and for globals returns the constant-pool index of its interned
// name; for locals the return value is unused by defineVariable.
func (c *Compiler) parseVariable(message string) int {
	c.d.consume(token.Identifier, message)

	name := c.d.previous
	c.declareVariable(name)
	if c.scopeDepth > 0 {
		return 0
	}
	return c.chunk().InternName(name.Lexeme)
}

func (c *Compiler) declareVariable(name token.Token) {
	if c.scopeDepth == 0 {
		return
	}
	for i := len(c.locals) - 1; i >= 0; i-- {
		if c.locals[i].depth != -1 && c.locals[i].depth < c.scopeDepth {
			break
		}
		if c.locals[i].name == name.Lexeme {
			c.d.errorAtPrevious("Already a variable with this name in this scope.")
		}
	}
	c.addLocal(name.Lexeme)
}

func (c *Compiler) addLocal(name string) {
	c.locals = append(c.locals, local{name: name, depth: c.scopeDepth, initialized: false})
}

func (c *Compiler) markInitialized() {
	if c.scopeDepth == 0 {
		return
	}
	c.locals[len(c.locals)-1].initialized = true
}

func (c *Compiler) defineVariable(global int) {
	if c.scopeDepth > 0 {
		c.markInitialized()
		return
	}
	c.emit(bytecode.OpDefineGlobal, uint32(global))
}

func (c *Compiler) statement() {
	switch {
	case c.d.matchToken(token.Print):
		c.printStatement()
	case c.d.matchToken(token.If):
		c.ifStatement()
	case c.d.matchToken(token.While):
		c.whileStatement()
	case c.d.matchToken(token.For):
		c.forStatement()
	case c.d.matchToken(token.Return):
		c.returnStatement()
	case c.d.matchToken(token.LeftBrace):
		c.beginScope()
		c.block()
		c.endScope()
	default:
		c.expressionStatement()
	}
}

func (c *Compiler) printStatement() {
	c.expression()
	c.d.consume(token.Semicolon, "Expect ';' after value.")
	c.emit(bytecode.OpPrint, 0)
}

func (c *Compiler) expressionStatement() {
	c.expression()
	c.d.consume(token.Semicolon, "Expect ';' after expression.")
	c.emit(bytecode.OpPop, 0)
}

func (c *Compiler) ifStatement() {
	c.d.consume(token.LeftParen, "Expect '(' after 'if'.")
	c.expression()
	c.d.consume(token.RightParen, "Expect ')' after condition.")

	thenJump := c.emitJump(bytecode.OpJumpIfFalse)
	c.emit(bytecode.OpPop, 0)
	c.statement()

	elseJump := c.emitJump(bytecode.OpJump)
	c.patchJump(thenJump)
	c.emit(bytecode.OpPop, 0)

	if c.d.matchToken(token.Else) {
		c.statement()
	}
	c.patchJump(elseJump)
}

func (c *Compiler) whileStatement() {
	loopStart := c.chunk().Len()
	c.d.consume(token.LeftParen, "Expect '(' after 'while'.")
	c.expression()
	c.d.consume(token.RightParen, "Expect ')' after condition.")

	exitJump := c.emitJump(bytecode.OpJumpIfFalse)
	c.emit(bytecode.OpPop, 0)
	c.statement()
	c.emitLoop(loopStart)

	c.patchJump(exitJump)
	c.emit(bytecode.OpPop, 0)
}

func (c *Compiler) forStatement() {
	c.beginScope()
	c.d.consume(token.LeftParen, "Expect '(' after 'for'.")

	switch {
	case c.d.matchToken(token.Semicolon):
		// no initializer
	case c.d.matchToken(token.Var):
		c.varDeclaration()
	default:
		c.expressionStatement()
	}

	loopStart := c.chunk().Len()
	exitJump := -1
	if !c.d.matchToken(token.Semicolon) {
		c.expression()
		c.d.consume(token.Semicolon, "Expect ';' after loop condition.")
		exitJump = c.emitJump(bytecode.OpJumpIfFalse)
		c.emit(bytecode.OpPop, 0)
	}

	if !c.d.check(token.RightParen) {
		bodyJump := c.emitJump(bytecode.OpJump)
		incrStart := c.chunk().Len()
		c.expression()
		c.emit(bytecode.OpPop, 0)
		c.d.consume(token.RightParen, "Expect ')' after for clauses.")

		c.emitLoop(loopStart)
		loopStart = incrStart
		c.patchJump(bodyJump)
	} else {
		c.d.consume(token.RightParen, "Expect ')' after for clauses.")
	}

	c.statement()
	c.emitLoop(loopStart)

	if exitJump != -1 {
		c.patchJump(exitJump)
		c.emit(bytecode.OpPop, 0)
	}
	c.endScope()
}

func (c *Compiler) returnStatement() {
	if c.fnType == typeScript {
		c.d.errorAtPrevious("Can't return from top-level code.")
	}
	if c.d.matchToken(token.Semicolon) {
		c.emit(bytecode.OpNil, 0)
		c.emit(bytecode.OpReturn, 0)
		return
	}
	c.expression()
	c.d.consume(token.Semicolon, "Expect ';' after return value.")
	c.emit(bytecode.OpReturn, 0)
}

func (c *Compiler) block() {
	for !c.d.check(token.RightBrace) && !c.d.check(token.EOF) {
		c.declaration()
	}
	c.d.consume(token.RightBrace, "Expect '}' after block.")
}

func (c *Compiler) beginScope() {
	c.scopeDepth++
}

func (c *Compiler) endScope() {
	c.scopeDepth--

	popped := 0
	for len(c.locals)-popped > 0 && c.locals[len(c.locals)-1-popped].depth > c.scopeDepth {
		c.emit(bytecode.OpPop, 0)
		popped++
	}
	c.locals = slices.Delete(c.locals, len(c.locals)-popped, len(c.locals))
}

// Package twi is the tree-walking interpreter for the non-core
// alternative back-end: it evaluates ast.* trees produced by rdparser
// directly, with no compilation to bytecode. Values here are plain Go
// float64/string/bool/nil, independent of bytecode.Value.
package twi

import (
	"fmt"

	"glint/ast"
	"glint/token"
)

// PrintSink receives the formatted text of every executed print statement.
type PrintSink interface {
	Print(text string)
}

// Interpreter walks statements and expressions, mutating its environment
// chain as it goes.
type Interpreter struct {
	environment *Environment
	sink        PrintSink
}

func New(sink PrintSink) *Interpreter {
	return &Interpreter{environment: newEnvironment(), sink: sink}
}

// Interpret runs every statement in order, recovering a RuntimeError panic
// into a returned error so a caller never sees the interpreter crash.
func (i *Interpreter) Interpret(statements []ast.Stmt) (err error) {
	defer func() {
		if r := recover(); r != nil {
			if rerr, ok := r.(RuntimeError); ok {
				err = rerr
				return
			}
			panic(r)
		}
	}()
	for _, stmt := range statements {
		i.execute(stmt)
	}
	return nil
}

func (i *Interpreter) execute(stmt ast.Stmt) {
	stmt.Accept(i)
}

func (i *Interpreter) evaluate(expr ast.Expression) any {
	return expr.Accept(i)
}

func (i *Interpreter) VisitExpressionStmt(stmt ast.ExpressionStmt) any {
	i.evaluate(stmt.Expression)
	return nil
}

func (i *Interpreter) VisitPrintStmt(stmt ast.PrintStmt) any {
	value := i.evaluate(stmt.Expression)
	i.sink.Print(stringify(value))
	return nil
}

func (i *Interpreter) VisitVarStmt(stmt ast.VarStmt) any {
	var value any
	if stmt.Initializer != nil {
		value = i.evaluate(stmt.Initializer)
	}
	i.environment.define(stmt.Name.Lexeme, value)
	return nil
}

func (i *Interpreter) VisitBlockStmt(stmt ast.BlockStmt) any {
	previous := i.environment
	i.environment = newNestedEnvironment(previous)
	defer func() { i.environment = previous }()

	for _, s := range stmt.Statements {
		i.execute(s)
	}
	return nil
}

func (i *Interpreter) VisitIfStmt(stmt ast.IfStmt) any {
	if isTruthy(i.evaluate(stmt.Condition)) {
		i.execute(stmt.Then)
	} else if stmt.Else != nil {
		i.execute(stmt.Else)
	}
	return nil
}

func (i *Interpreter) VisitWhileStmt(stmt ast.WhileStmt) any {
	for isTruthy(i.evaluate(stmt.Condition)) {
		i.execute(stmt.Body)
	}
	return nil
}

func (i *Interpreter) VisitLiteral(expr ast.Literal) any {
	return expr.Value
}

func (i *Interpreter) VisitGrouping(expr ast.Grouping) any {
	return i.evaluate(expr.Expression)
}

func (i *Interpreter) VisitVariableExpression(expr ast.Variable) any {
	value, err := i.environment.get(expr.Name)
	if err != nil {
		panic(err)
	}
	return value
}

func (i *Interpreter) VisitAssignExpression(expr ast.Assign) any {
	value := i.evaluate(expr.Value)
	if err := i.environment.assign(expr.Name, value); err != nil {
		panic(err)
	}
	return value
}

func (i *Interpreter) VisitLogicalExpression(expr ast.Logical) any {
	left := i.evaluate(expr.Left)
	if expr.Operator.Type == token.Or {
		if isTruthy(left) {
			return left
		}
	} else if !isTruthy(left) {
		return left
	}
	return i.evaluate(expr.Right)
}

func (i *Interpreter) VisitUnary(expr ast.Unary) any {
	right := i.evaluate(expr.Right)
	switch expr.Operator.Type {
	case token.Minus:
		n, ok := right.(float64)
		if !ok {
			panic(RuntimeError{Line: expr.Operator.Line, Message: "operand must be a number"})
		}
		return -n
	case token.Bang:
		return !isTruthy(right)
	}
	panic(RuntimeError{Line: expr.Operator.Line, Message: "unsupported unary operator"})
}

func (i *Interpreter) VisitBinary(expr ast.Binary) any {
	left := i.evaluate(expr.Left)
	right := i.evaluate(expr.Right)
	op := expr.Operator

	switch op.Type {
	case token.Plus:
		if ln, lok := left.(float64); lok {
			if rn, rok := right.(float64); rok {
				return ln + rn
			}
		}
		if ls, lok := left.(string); lok {
			if rs, rok := right.(string); rok {
				return ls + rs
			}
		}
		panic(RuntimeError{Line: op.Line, Message: "operands must be two numbers or two strings"})
	case token.Minus:
		ln, rn := i.numericOperands(op, left, right)
		return ln - rn
	case token.Star:
		ln, rn := i.numericOperands(op, left, right)
		return ln * rn
	case token.Slash:
		ln, rn := i.numericOperands(op, left, right)
		return ln / rn
	case token.Greater:
		ln, rn := i.numericOperands(op, left, right)
		return ln > rn
	case token.GreaterEqual:
		ln, rn := i.numericOperands(op, left, right)
		return ln >= rn
	case token.Less:
		ln, rn := i.numericOperands(op, left, right)
		return ln < rn
	case token.LessEqual:
		ln, rn := i.numericOperands(op, left, right)
		return ln <= rn
	case token.EqualEqual:
		return isEqual(left, right)
	case token.BangEqual:
		return !isEqual(left, right)
	}
	panic(RuntimeError{Line: op.Line, Message: fmt.Sprintf("unsupported operator '%s'", op.Lexeme)})
}

func (i *Interpreter) numericOperands(op token.Token, left, right any) (float64, float64) {
	ln, lok := left.(float64)
	rn, rok := right.(float64)
	if !lok || !rok {
		panic(RuntimeError{Line: op.Line, Message: "operands must be numbers"})
	}
	return ln, rn
}

// isTruthy matches the CORE's falsey rule: nil and false are falsey,
// everything else (including 0 and "") is truthy.
func isTruthy(value any) bool {
	if value == nil {
		return false
	}
	if b, ok := value.(bool); ok {
		return b
	}
	return true
}

func isEqual(a, b any) bool {
	return a == b
}

func stringify(value any) string {
	if value == nil {
		return "nil"
	}
	switch v := value.(type) {
	case bool:
		if v {
			return "true"
		}
		return "false"
	case float64:
		return formatNumber(v)
	default:
		return fmt.Sprintf("%v", v)
	}
}

package ast

import "glint/token"

// ExpressionStmt evaluates an expression and discards the result.
type ExpressionStmt struct {
	Expression Expression
}

func (e ExpressionStmt) Accept(v StmtVisitor) any {
	return v.VisitExpressionStmt(e)
}

// PrintStmt evaluates an expression and routes the result to output.
type PrintStmt struct {
	Expression Expression
}

func (p PrintStmt) Accept(v StmtVisitor) any {
	return v.VisitPrintStmt(p)
}

// VarStmt declares a variable, optionally with an initializer expression.
type VarStmt struct {
	Name        token.Token
	Initializer Expression
}

func (varStmt VarStmt) Accept(v StmtVisitor) any {
	return v.VisitVarStmt(varStmt)
}

// BlockStmt is a sequence of statements executed in a nested scope.
type BlockStmt struct {
	Statements []Stmt
}

func (blockStmt BlockStmt) Accept(v StmtVisitor) any {
	return v.VisitBlockStmt(blockStmt)
}

// IfStmt executes Then when Condition is truthy, else Else (which may be
// nil if there was no "else" clause).
type IfStmt struct {
	Condition Expression
	Then      Stmt
	Else      Stmt
}

func (stmt IfStmt) Accept(v StmtVisitor) any {
	return v.VisitIfStmt(stmt)
}

// WhileStmt repeatedly executes Body while Condition remains truthy.
type WhileStmt struct {
	Condition Expression
	Body      Stmt
}

func (stmt WhileStmt) Accept(v StmtVisitor) any {
	return v.VisitWhileStmt(stmt)
}

// Package ast defines the expression and statement node types for the
// tree-walking back-end. It is not part of the bytecode core: the
// recursive-descent parser (package rdparser) builds these trees and the
// tree-walking interpreter (package twi) evaluates them directly, with no
// compilation step.
package ast

// ExpressionVisitor operates on every Expression node type via the visitor
// pattern: one Visit method per node, dispatched through Accept.
type ExpressionVisitor interface {
	VisitBinary(binary Binary) any
	VisitUnary(unary Unary) any
	VisitLiteral(literal Literal) any
	VisitGrouping(grouping Grouping) any
	VisitVariableExpression(variable Variable) any
	VisitAssignExpression(assign Assign) any
	VisitLogicalExpression(logical Logical) any
}

// StmtVisitor operates on every Stmt node type.
type StmtVisitor interface {
	VisitExpressionStmt(exprStmt ExpressionStmt) any
	VisitPrintStmt(printStmt PrintStmt) any
	VisitVarStmt(varStmt VarStmt) any
	VisitBlockStmt(blockStmt BlockStmt) any
	VisitIfStmt(stmt IfStmt) any
	VisitWhileStmt(stmt WhileStmt) any
}

// Expression is any node that produces a value when evaluated.
type Expression interface {
	Accept(v ExpressionVisitor) any
}

// Stmt is any node that performs an action but produces no value.
type Stmt interface {
	Accept(v StmtVisitor) any
}

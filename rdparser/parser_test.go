package rdparser

import (
	"testing"

	"glint/ast"
)

func parseOK(t *testing.T, source string) []ast.Stmt {
	t.Helper()
	stmts, errs := New(source).Parse()
	if len(errs) > 0 {
		t.Fatalf("unexpected parse errors: %v", errs)
	}
	return stmts
}

func TestParsePrintStatement(t *testing.T) {
	stmts := parseOK(t, `print 1 + 2;`)
	if len(stmts) != 1 {
		t.Fatalf("got %d statements, want 1", len(stmts))
	}
	printStmt, ok := stmts[0].(ast.PrintStmt)
	if !ok {
		t.Fatalf("statement type = %T, want ast.PrintStmt", stmts[0])
	}
	if _, ok := printStmt.Expression.(ast.Binary); !ok {
		t.Errorf("expression type = %T, want ast.Binary", printStmt.Expression)
	}
}

func TestParseVarDeclaration(t *testing.T) {
	stmts := parseOK(t, `var a = "outer";`)
	varStmt, ok := stmts[0].(ast.VarStmt)
	if !ok {
		t.Fatalf("statement type = %T, want ast.VarStmt", stmts[0])
	}
	if varStmt.Name.Lexeme != "a" {
		t.Errorf("name = %q, want a", varStmt.Name.Lexeme)
	}
}

func TestParseBlockAndIfWhile(t *testing.T) {
	stmts := parseOK(t, `{ if (true) print 1; else print 2; while (false) print 3; }`)
	block, ok := stmts[0].(ast.BlockStmt)
	if !ok {
		t.Fatalf("statement type = %T, want ast.BlockStmt", stmts[0])
	}
	if len(block.Statements) != 2 {
		t.Fatalf("got %d nested statements, want 2", len(block.Statements))
	}
	if _, ok := block.Statements[0].(ast.IfStmt); !ok {
		t.Errorf("first nested statement type = %T, want ast.IfStmt", block.Statements[0])
	}
	if _, ok := block.Statements[1].(ast.WhileStmt); !ok {
		t.Errorf("second nested statement type = %T, want ast.WhileStmt", block.Statements[1])
	}
}

func TestParseInvalidAssignmentTargetFails(t *testing.T) {
	_, errs := New(`a * b = c;`).Parse()
	if len(errs) == 0 {
		t.Fatal("expected a parse error for invalid assignment target")
	}
}

func TestParseMissingSemicolonFails(t *testing.T) {
	_, errs := New(`print 1`).Parse()
	if len(errs) == 0 {
		t.Fatal("expected a parse error for missing ';'")
	}
}

// Package rdparser is a recursive-descent parser producing ast.* trees for
// the tree-walking back-end (package twi). It covers the grammar subset
// that back-end supports: expressions, var declarations, print, blocks,
// if, and while — no functions, no calls, no for, no return.
package rdparser

import (
	"strconv"

	"glint/ast"
	"glint/scanner"
	"glint/token"
)

// Parser walks a token stream one token of lookahead at a time, the same
// previous/current shape the bytecode compiler's driver uses.
type Parser struct {
	scanner *scanner.Scanner

	previous token.Token
	current  token.Token

	errors []error
}

func New(source string) *Parser {
	p := &Parser{scanner: scanner.New(source)}
	p.advance()
	return p
}

// Parse consumes the whole source, returning every top-level statement
// parsed and every error encountered. Parsing does not stop at the first
// error: it synchronizes at the next statement boundary and continues.
func (p *Parser) Parse() ([]ast.Stmt, []error) {
	var statements []ast.Stmt
	for p.current.Type != token.EOF {
		stmt, err := p.declaration()
		if err != nil {
			p.errors = append(p.errors, err)
			p.synchronize()
			continue
		}
		statements = append(statements, stmt)
	}
	return statements, p.errors
}

func (p *Parser) advance() {
	p.previous = p.current
	for {
		tok, err := p.scanner.NextToken()
		if err == nil {
			p.current = tok
			return
		}
		p.errors = append(p.errors, err)
	}
}

func (p *Parser) check(tt token.TokenType) bool {
	return p.current.Type == tt
}

func (p *Parser) match(tt token.TokenType) bool {
	if !p.check(tt) {
		return false
	}
	p.advance()
	return true
}

func (p *Parser) consume(tt token.TokenType, message string) (token.Token, error) {
	if p.check(tt) {
		tok := p.current
		p.advance()
		return tok, nil
	}
	return token.Token{}, SyntaxError{Line: p.current.Line, Message: message}
}

func (p *Parser) synchronize() {
	for p.current.Type != token.EOF {
		if p.previous.Type == token.Semicolon {
			return
		}
		switch p.current.Type {
		case token.Class, token.Fun, token.Var, token.For,
			token.If, token.While, token.Print, token.Return:
			return
		}
		p.advance()
	}
}

// ---- declarations & statements ----

func (p *Parser) declaration() (ast.Stmt, error) {
	if p.match(token.Var) {
		return p.varDeclaration()
	}
	return p.statement()
}

func (p *Parser) varDeclaration() (ast.Stmt, error) {
	name, err := p.consume(token.Identifier, "Expect variable name.")
	if err != nil {
		return nil, err
	}

	var initializer ast.Expression
	if p.match(token.Equal) {
		initializer, err = p.expression()
		if err != nil {
			return nil, err
		}
	}

	if _, err := p.consume(token.Semicolon, "Expect ';' after variable declaration."); err != nil {
		return nil, err
	}
	return ast.VarStmt{Name: name, Initializer: initializer}, nil
}

func (p *Parser) statement() (ast.Stmt, error) {
	switch {
	case p.match(token.Print):
		return p.printStatement()
	case p.match(token.If):
		return p.ifStatement()
	case p.match(token.While):
		return p.whileStatement()
	case p.match(token.LeftBrace):
		stmts, err := p.block()
		if err != nil {
			return nil, err
		}
		return ast.BlockStmt{Statements: stmts}, nil
	default:
		return p.expressionStatement()
	}
}

func (p *Parser) printStatement() (ast.Stmt, error) {
	value, err := p.expression()
	if err != nil {
		return nil, err
	}
	if _, err := p.consume(token.Semicolon, "Expect ';' after value."); err != nil {
		return nil, err
	}
	return ast.PrintStmt{Expression: value}, nil
}

func (p *Parser) expressionStatement() (ast.Stmt, error) {
	expr, err := p.expression()
	if err != nil {
		return nil, err
	}
	if _, err := p.consume(token.Semicolon, "Expect ';' after expression."); err != nil {
		return nil, err
	}
	return ast.ExpressionStmt{Expression: expr}, nil
}

func (p *Parser) ifStatement() (ast.Stmt, error) {
	if _, err := p.consume(token.LeftParen, "Expect '(' after 'if'."); err != nil {
		return nil, err
	}
	cond, err := p.expression()
	if err != nil {
		return nil, err
	}
	if _, err := p.consume(token.RightParen, "Expect ')' after condition."); err != nil {
		return nil, err
	}

	thenBranch, err := p.statement()
	if err != nil {
		return nil, err
	}
	var elseBranch ast.Stmt
	if p.match(token.Else) {
		elseBranch, err = p.statement()
		if err != nil {
			return nil, err
		}
	}
	return ast.IfStmt{Condition: cond, Then: thenBranch, Else: elseBranch}, nil
}

func (p *Parser) whileStatement() (ast.Stmt, error) {
	if _, err := p.consume(token.LeftParen, "Expect '(' after 'while'."); err != nil {
		return nil, err
	}
	cond, err := p.expression()
	if err != nil {
		return nil, err
	}
	if _, err := p.consume(token.RightParen, "Expect ')' after condition."); err != nil {
		return nil, err
	}
	body, err := p.statement()
	if err != nil {
		return nil, err
	}
	return ast.WhileStmt{Condition: cond, Body: body}, nil
}

func (p *Parser) block() ([]ast.Stmt, error) {
	var statements []ast.Stmt
	for !p.check(token.RightBrace) && !p.check(token.EOF) {
		stmt, err := p.declaration()
		if err != nil {
			return nil, err
		}
		statements = append(statements, stmt)
	}
	if _, err := p.consume(token.RightBrace, "Expect '}' after block."); err != nil {
		return nil, err
	}
	return statements, nil
}

// ---- expressions ----

func (p *Parser) expression() (ast.Expression, error) {
	return p.assignment()
}

func (p *Parser) assignment() (ast.Expression, error) {
	expr, err := p.or()
	if err != nil {
		return nil, err
	}

	if p.match(token.Equal) {
		equals := p.previous
		value, err := p.assignment()
		if err != nil {
			return nil, err
		}
		if variable, ok := expr.(ast.Variable); ok {
			return ast.Assign{Name: variable.Name, Value: value}, nil
		}
		return nil, SyntaxError{Line: equals.Line, Message: "Invalid assignment target."}
	}
	return expr, nil
}

func (p *Parser) or() (ast.Expression, error) {
	expr, err := p.and()
	if err != nil {
		return nil, err
	}
	for p.match(token.Or) {
		op := p.previous
		right, err := p.and()
		if err != nil {
			return nil, err
		}
		expr = ast.Logical{Left: expr, Operator: op, Right: right}
	}
	return expr, nil
}

func (p *Parser) and() (ast.Expression, error) {
	expr, err := p.equality()
	if err != nil {
		return nil, err
	}
	for p.match(token.And) {
		op := p.previous
		right, err := p.equality()
		if err != nil {
			return nil, err
		}
		expr = ast.Logical{Left: expr, Operator: op, Right: right}
	}
	return expr, nil
}

func (p *Parser) equality() (ast.Expression, error) {
	return p.binaryLevel(p.comparison, token.BangEqual, token.EqualEqual)
}

func (p *Parser) comparison() (ast.Expression, error) {
	return p.binaryLevel(p.term, token.Greater, token.GreaterEqual, token.Less, token.LessEqual)
}

func (p *Parser) term() (ast.Expression, error) {
	return p.binaryLevel(p.factor, token.Plus, token.Minus)
}

func (p *Parser) factor() (ast.Expression, error) {
	return p.binaryLevel(p.unary, token.Star, token.Slash)
}

// binaryLevel implements one precedence rung: parse with next, then fold in
// any run of same-precedence operators left-associatively.
func (p *Parser) binaryLevel(next func() (ast.Expression, error), types ...token.TokenType) (ast.Expression, error) {
	expr, err := next()
	if err != nil {
		return nil, err
	}
	for p.matchAny(types...) {
		op := p.previous
		right, err := next()
		if err != nil {
			return nil, err
		}
		expr = ast.Binary{Left: expr, Operator: op, Right: right}
	}
	return expr, nil
}

func (p *Parser) matchAny(types ...token.TokenType) bool {
	for _, tt := range types {
		if p.match(tt) {
			return true
		}
	}
	return false
}

func (p *Parser) unary() (ast.Expression, error) {
	if p.matchAny(token.Bang, token.Minus) {
		op := p.previous
		right, err := p.unary()
		if err != nil {
			return nil, err
		}
		return ast.Unary{Operator: op, Right: right}, nil
	}
	return p.primary()
}

func (p *Parser) primary() (ast.Expression, error) {
	switch {
	case p.match(token.False):
		return ast.Literal{Value: false}, nil
	case p.match(token.True):
		return ast.Literal{Value: true}, nil
	case p.match(token.Nil):
		return ast.Literal{Value: nil}, nil
	case p.match(token.Number):
		v, _ := strconv.ParseFloat(p.previous.Lexeme, 64)
		return ast.Literal{Value: v}, nil
	case p.match(token.String):
		lit, _ := p.previous.Literal.(string)
		return ast.Literal{Value: lit}, nil
	case p.match(token.Identifier):
		return ast.Variable{Name: p.previous}, nil
	case p.match(token.LeftParen):
		expr, err := p.expression()
		if err != nil {
			return nil, err
		}
		if _, err := p.consume(token.RightParen, "Expect ')' after expression."); err != nil {
			return nil, err
		}
		return ast.Grouping{Expression: expr}, nil
	default:
		return nil, SyntaxError{Line: p.current.Line, Message: "Expect expression."}
	}
}

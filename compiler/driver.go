package compiler

import (
	"glint/scanner"
	"glint/token"
)

// driver owns the scanner and exposes the two-token lookahead window
// (previous/current) the Pratt compiler parses from. It also owns error
// collection and panic-mode synchronization, pulling tokens from the
// on-demand Scanner one at a time rather than walking a pre-scanned slice.
type driver struct {
	scanner *scanner.Scanner

	previous token.Token
	current  token.Token

	errors    Errors
	panicMode bool
}

func newDriver(source string) *driver {
	d := &driver{scanner: scanner.New(source)}
	d.advance()
	return d
}

// advance moves current into previous and scans a new current, recording a
// lexical error (without entering panic mode twice) if the scan fails.
func (d *driver) advance() {
	d.previous = d.current
	for {
		tok, err := d.scanner.NextToken()
		if err == nil {
			d.current = tok
			return
		}
		line := d.current.Line
		if se, ok := err.(scanner.Error); ok {
			line = se.Line
		}
		d.errorAt(line, err.Error())
	}
}

// check reports whether current matches tt without consuming it.
func (d *driver) check(tt token.TokenType) bool {
	return d.current.Type == tt
}

// matchToken consumes current and returns true if it matches tt, otherwise
// leaves the token stream untouched.
func (d *driver) matchToken(tt token.TokenType) bool {
	if !d.check(tt) {
		return false
	}
	d.advance()
	return true
}

// consume advances past current if it matches tt, else records a parse
// error tagged with current's line.
func (d *driver) consume(tt token.TokenType, message string) {
	if d.current.Type == tt {
		d.advance()
		return
	}
	d.errorAt(d.current.Line, message)
}

// errorAtPrevious and errorAtCurrent record a compile error tagged with the
// respective token's line, suppressing cascades once panicMode is set.
func (d *driver) errorAtPrevious(message string) {
	d.errorAt(d.previous.Line, message)
}

func (d *driver) errorAtCurrent(message string) {
	d.errorAt(d.current.Line, message)
}

func (d *driver) errorAt(line int, message string) {
	if d.panicMode {
		return
	}
	d.panicMode = true
	d.errors = append(d.errors, Error{Line: line, Message: message})
}

// synchronize discards tokens until it finds a likely statement boundary,
// letting compilation resume collecting further, independent errors.
func (d *driver) synchronize() {
	d.panicMode = false

	for d.current.Type != token.EOF {
		if d.previous.Type == token.Semicolon {
			return
		}
		switch d.current.Type {
		case token.Class, token.Fun, token.Var, token.For,
			token.If, token.While, token.Print, token.Return:
			return
		}
		d.advance()
	}
}

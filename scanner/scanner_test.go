package scanner

import (
	"testing"

	"glint/token"
)

func scanAll(t *testing.T, source string) []token.Token {
	t.Helper()
	s := New(source)
	var tokens []token.Token
	for {
		tok, err := s.NextToken()
		if err != nil {
			t.Fatalf("NextToken() error: %v", err)
		}
		tokens = append(tokens, tok)
		if tok.Type == token.EOF {
			return tokens
		}
	}
}

func types(tokens []token.Token) []token.TokenType {
	out := make([]token.TokenType, len(tokens))
	for i, tok := range tokens {
		out[i] = tok.Type
	}
	return out
}

func assertTypes(t *testing.T, got []token.Token, want []token.TokenType) {
	t.Helper()
	gotTypes := types(got)
	if len(gotTypes) != len(want) {
		t.Fatalf("got %d tokens %v, want %d tokens %v", len(gotTypes), gotTypes, len(want), want)
	}
	for i := range want {
		if gotTypes[i] != want[i] {
			t.Errorf("token %d = %v, want %v", i, gotTypes[i], want[i])
		}
	}
}

func TestOperators(t *testing.T) {
	got := scanAll(t, "== != = > >= < <= + - * /")
	assertTypes(t, got, []token.TokenType{
		token.EqualEqual, token.BangEqual, token.Equal,
		token.Greater, token.GreaterEqual, token.Less, token.LessEqual,
		token.Plus, token.Minus, token.Star, token.Slash, token.EOF,
	})
}

func TestCommentsAndWhitespaceSkipped(t *testing.T) {
	got := scanAll(t, "1 // a comment\n+ 2")
	assertTypes(t, got, []token.TokenType{token.Number, token.Plus, token.Number, token.EOF})
	if got[2].Line != 2 {
		t.Errorf("line = %d, want 2", got[2].Line)
	}
}

func TestNumberLiteral(t *testing.T) {
	got := scanAll(t, "123 4.5 6.")
	assertTypes(t, got, []token.TokenType{token.Number, token.Number, token.Number, token.Dot, token.EOF})
	if got[0].Literal != "123" || got[1].Literal != "4.5" {
		t.Errorf("unexpected literal text: %+v %+v", got[0], got[1])
	}
}

func TestStringLiteral(t *testing.T) {
	got := scanAll(t, `"hello\nworld"`)
	assertTypes(t, got, []token.TokenType{token.String, token.EOF})
	if got[0].Literal != `hello\nworld` {
		t.Errorf("literal = %q", got[0].Literal)
	}
}

func TestStringSpanningNewlines(t *testing.T) {
	got := scanAll(t, "\"line1\nline2\"")
	assertTypes(t, got, []token.TokenType{token.String, token.EOF})
}

func TestUnterminatedString(t *testing.T) {
	s := New(`"unterminated`)
	_, err := s.NextToken()
	if err == nil {
		t.Fatal("expected scan error for unterminated string")
	}
	var scanErr Error
	if se, ok := err.(Error); ok {
		scanErr = se
	} else {
		t.Fatalf("error has unexpected type: %T", err)
	}
	if scanErr.Line != 1 {
		t.Errorf("line = %d, want 1", scanErr.Line)
	}
}

func TestIdentifiersAndKeywords(t *testing.T) {
	got := scanAll(t, "fun foo and or while nilValue")
	assertTypes(t, got, []token.TokenType{
		token.Fun, token.Identifier, token.And, token.Or, token.While, token.Identifier, token.EOF,
	})
}

func TestUnexpectedCharacter(t *testing.T) {
	s := New("@")
	_, err := s.NextToken()
	if err == nil {
		t.Fatal("expected error for unexpected character")
	}
}

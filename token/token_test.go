package token

import "testing"

func TestTokenTypeString(t *testing.T) {
	tests := []struct {
		tokenType TokenType
		want      string
	}{
		{Plus, "+"},
		{BangEqual, "!="},
		{Fun, "fun"},
		{EOF, "EOF"},
	}

	for _, tt := range tests {
		if got := tt.tokenType.String(); got != tt.want {
			t.Errorf("TokenType(%d).String() = %q, want %q", tt.tokenType, got, tt.want)
		}
	}
}

func TestKeywordsLookup(t *testing.T) {
	tests := []struct {
		lexeme string
		want   TokenType
	}{
		{"and", And},
		{"fun", Fun},
		{"while", While},
		{"nil", Nil},
	}

	for _, tt := range tests {
		got, ok := Keywords[tt.lexeme]
		if !ok {
			t.Fatalf("Keywords[%q] missing", tt.lexeme)
		}
		if got != tt.want {
			t.Errorf("Keywords[%q] = %v, want %v", tt.lexeme, got, tt.want)
		}
	}
}

func TestNewToken(t *testing.T) {
	tok := New(Number, "42", float64(42), 3)
	if tok.Type != Number || tok.Lexeme != "42" || tok.Literal != float64(42) || tok.Line != 3 {
		t.Errorf("New(...) = %+v, unexpected fields", tok)
	}
}

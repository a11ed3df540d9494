package filter

import (
	"testing"
)

func TestTokenize(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected []TokenType
	}{
		{
			name:     "simple comparison",
			input:    `foo == "bar"`,
			expected: []TokenType{TokenIdent, TokenOperator, TokenString, TokenEOF},
		},
		{
			name:  "IN expression",
			input: "kind in ('a', 'b')",
			expected: []TokenType{TokenIdent, TokenIn, TokenLParen, TokenString,
				TokenComma, TokenString, TokenRParen, TokenEOF},
		},
		{
			name:  "NOT IN collapses into one token",
			input: "kind not   in (1)",
			expected: []TokenType{TokenIdent, TokenNotIn, TokenLParen, TokenNumber,
				TokenRParen, TokenEOF},
		},
		{
			name:  "not before identifier starting with in",
			input: "not income > 3",
			expected: []TokenType{TokenNot, TokenIdent, TokenOperator, TokenNumber,
				TokenEOF},
		},
		{
			name:  "and / or / like",
			input: `a >= 1.5 AND b like "x" Or c != -2`,
			expected: []TokenType{TokenIdent, TokenOperator, TokenNumber, TokenAnd,
				TokenIdent, TokenLike, TokenString, TokenOr, TokenIdent, TokenOperator,
				TokenNumber, TokenEOF},
		},
		{
			name:     "no whitespace",
			input:    `no<=3`,
			expected: []TokenType{TokenIdent, TokenOperator, TokenNumber, TokenEOF},
		},
		{
			name:     "dotted identifier",
			input:    `props.kind == 'x'`,
			expected: []TokenType{TokenIdent, TokenOperator, TokenString, TokenEOF},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tokens, err := Tokenize(tt.input)
			if err != nil {
				t.Fatalf("tokenize failed: %v", err)
			}

			if len(tokens) != len(tt.expected) {
				t.Fatalf("Expected %d tokens, got %d: %v", len(tt.expected), len(tokens), tokens)
			}

			for i, tok := range tokens {
				if tok.Type != tt.expected[i] {
					t.Errorf("Token %d: expected type %s, got %s (value: %s)",
						i, tt.expected[i], tok.Type, tok.Value)
				}
			}
		})
	}
}

func TestTokenizeValues(t *testing.T) {
	tokens, err := Tokenize(`name == 'it\'s' or path == "a\\b" or n == -0.25e2`)
	if err != nil {
		t.Fatalf("tokenize failed: %v", err)
	}

	want := map[int]string{
		2:  "it's",
		6:  `a\b`,
		10: "-0.25e2",
	}
	for idx, value := range want {
		if tokens[idx].Value != value {
			t.Errorf("token %d: expected %q, got %q", idx, value, tokens[idx].Value)
		}
	}
	if tokens[2].Pos != 8 {
		t.Errorf("expected string token at position 8, got %d", tokens[2].Pos)
	}
}

func TestTokenizeErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"single equals", "a = 1"},
		{"unterminated", "a == 'x"},
		{"stray symbol", "a == 1 ; b"},
		{"number glued to word", "a == 12abc"},
		{"bad exponent", "a == 1e"},
		{"lone minus", "a == -x"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Tokenize(tt.input); err == nil {
				t.Fatalf("expected error for %q", tt.input)
			}
		})
	}
}

func TestParseFilterTree(t *testing.T) {
	expr, err := ParseFilter(`kind in ("a") and not mag < 2 or name like "x"`)
	if err != nil {
		t.Fatalf("ParseFilter failed: %v", err)
	}

	or, ok := expr.(*BinaryExpr)
	if !ok || or.Op != "or" {
		t.Fatalf("expected top-level or, got %T %v", expr, expr)
	}
	and, ok := or.Left.(*BinaryExpr)
	if !ok || and.Op != "and" {
		t.Fatalf("expected and on the left, got %T", or.Left)
	}
	if _, ok := and.Left.(*InExpr); !ok {
		t.Errorf("expected InExpr, got %T", and.Left)
	}
	not, ok := and.Right.(*NotExpr)
	if !ok {
		t.Fatalf("expected NotExpr, got %T", and.Right)
	}
	cmp, ok := not.Expr.(*CompareExpr)
	if !ok || cmp.Field != "mag" || cmp.Op != "<" || cmp.Value.Num != 2 {
		t.Errorf("unexpected comparison %+v", not.Expr)
	}
	like, ok := or.Right.(*LikeExpr)
	if !ok || like.Pattern != "x" {
		t.Errorf("expected LikeExpr with pattern x, got %+v", or.Right)
	}
}

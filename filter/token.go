package filter

import (
	"strings"
)

// TokenType identifies the lexical class of a token
type TokenType int

const (
	TokenEOF TokenType = iota
	TokenIdent
	TokenNumber
	TokenString
	TokenOperator // ==, !=, <, <=, >, >=
	TokenAnd
	TokenOr
	TokenNot
	TokenIn
	TokenNotIn
	TokenLike
	TokenLParen
	TokenRParen
	TokenComma
)

var tokenNames = map[TokenType]string{
	TokenEOF:      "end of input",
	TokenIdent:    "identifier",
	TokenNumber:   "number",
	TokenString:   "string",
	TokenOperator: "operator",
	TokenAnd:      "'and'",
	TokenOr:       "'or'",
	TokenNot:      "'not'",
	TokenIn:       "'in'",
	TokenNotIn:    "'not in'",
	TokenLike:     "'like'",
	TokenLParen:   "'('",
	TokenRParen:   "')'",
	TokenComma:    "','",
}

func (t TokenType) String() string {
	if name, ok := tokenNames[t]; ok {
		return name
	}
	return "unknown"
}

// Token is a lexical unit of a filter expression.
// For string tokens Value holds the unquoted, unescaped text.
type Token struct {
	Type  TokenType
	Value string
	Pos   int
}

var keywords = map[string]TokenType{
	"and":  TokenAnd,
	"or":   TokenOr,
	"not":  TokenNot,
	"in":   TokenIn,
	"like": TokenLike,
}

// Tokenize splits a filter expression into tokens. The returned slice always
// ends with a TokenEOF token.
func Tokenize(input string) ([]Token, error) {
	lx := &lexer{input: input}
	var tokens []Token
	for {
		tok, err := lx.next()
		if err != nil {
			return nil, err
		}
		tokens = append(tokens, tok)
		if tok.Type == TokenEOF {
			return tokens, nil
		}
	}
}

type lexer struct {
	input string
	pos   int
}

func (l *lexer) peekByte(offset int) byte {
	if l.pos+offset >= len(l.input) {
		return 0
	}
	return l.input[l.pos+offset]
}

func (l *lexer) skipWhitespace() {
	for l.pos < len(l.input) && isSpace(l.input[l.pos]) {
		l.pos++
	}
}

func (l *lexer) next() (Token, error) {
	l.skipWhitespace()
	start := l.pos
	if l.pos >= len(l.input) {
		return Token{Type: TokenEOF, Pos: start}, nil
	}

	ch := l.input[l.pos]
	switch {
	case ch == '(':
		l.pos++
		return Token{Type: TokenLParen, Value: "(", Pos: start}, nil
	case ch == ')':
		l.pos++
		return Token{Type: TokenRParen, Value: ")", Pos: start}, nil
	case ch == ',':
		l.pos++
		return Token{Type: TokenComma, Value: ",", Pos: start}, nil
	case ch == '"' || ch == '\'':
		return l.readString(ch)
	case ch == '=' || ch == '!' || ch == '<' || ch == '>':
		return l.readOperator()
	case isDigit(ch) || (ch == '-' && (isDigit(l.peekByte(1)) || l.peekByte(1) == '.')) || (ch == '.' && isDigit(l.peekByte(1))):
		return l.readNumber()
	case isIdentStart(ch):
		return l.readWord(), nil
	default:
		return Token{}, newParseError(l.input, start, "unexpected character %q", ch)
	}
}

func (l *lexer) readOperator() (Token, error) {
	start := l.pos
	ch := l.input[l.pos]
	if l.peekByte(1) == '=' {
		l.pos += 2
		return Token{Type: TokenOperator, Value: l.input[start:l.pos], Pos: start}, nil
	}
	switch ch {
	case '<', '>':
		l.pos++
		return Token{Type: TokenOperator, Value: string(ch), Pos: start}, nil
	case '=':
		return Token{}, newParseError(l.input, start, "unknown operator '=' (use '==')")
	default:
		return Token{}, newParseError(l.input, start, "unknown operator %q", ch)
	}
}

func (l *lexer) readString(quote byte) (Token, error) {
	start := l.pos
	l.pos++ // opening quote
	var sb strings.Builder
	for l.pos < len(l.input) {
		ch := l.input[l.pos]
		switch {
		case ch == '\\' && l.pos+1 < len(l.input):
			sb.WriteByte(l.input[l.pos+1])
			l.pos += 2
		case ch == quote:
			l.pos++
			return Token{Type: TokenString, Value: sb.String(), Pos: start}, nil
		default:
			sb.WriteByte(ch)
			l.pos++
		}
	}
	return Token{}, newParseError(l.input, start, "unterminated string")
}

func (l *lexer) readNumber() (Token, error) {
	start := l.pos
	if l.input[l.pos] == '-' {
		l.pos++
	}
	digits := l.readDigits()
	if l.pos < len(l.input) && l.input[l.pos] == '.' {
		l.pos++
		digits += l.readDigits()
	}
	if digits == 0 {
		return Token{}, newParseError(l.input, start, "malformed number %q", l.input[start:l.pos])
	}
	if l.pos < len(l.input) && (l.input[l.pos] == 'e' || l.input[l.pos] == 'E') {
		l.pos++
		if l.pos < len(l.input) && (l.input[l.pos] == '+' || l.input[l.pos] == '-') {
			l.pos++
		}
		if l.readDigits() == 0 {
			return Token{}, newParseError(l.input, start, "malformed number %q", l.input[start:l.pos])
		}
	}
	if l.pos < len(l.input) && isIdentStart(l.input[l.pos]) {
		return Token{}, newParseError(l.input, l.pos, "unexpected character %q after number", l.input[l.pos])
	}
	return Token{Type: TokenNumber, Value: l.input[start:l.pos], Pos: start}, nil
}

func (l *lexer) readDigits() int {
	n := 0
	for l.pos < len(l.input) && isDigit(l.input[l.pos]) {
		l.pos++
		n++
	}
	return n
}

// readWord reads an identifier or keyword. "not" directly followed by the
// word "in" collapses into a single TokenNotIn.
func (l *lexer) readWord() Token {
	start := l.pos
	word := l.scanIdent()
	kind, isKeyword := keywords[strings.ToLower(word)]
	if !isKeyword {
		return Token{Type: TokenIdent, Value: word, Pos: start}
	}

	if kind == TokenNot {
		save := l.pos
		l.skipWhitespace()
		if l.pos < len(l.input) && isIdentStart(l.input[l.pos]) {
			nextWord := l.scanIdent()
			if strings.EqualFold(nextWord, "in") {
				return Token{Type: TokenNotIn, Value: l.input[start:l.pos], Pos: start}
			}
		}
		l.pos = save
	}
	return Token{Type: kind, Value: word, Pos: start}
}

func (l *lexer) scanIdent() string {
	start := l.pos
	for l.pos < len(l.input) && isIdentPart(l.input[l.pos]) {
		l.pos++
	}
	return l.input[start:l.pos]
}

func isSpace(ch byte) bool {
	return ch == ' ' || ch == '\t' || ch == '\n' || ch == '\r'
}

func isDigit(ch byte) bool {
	return '0' <= ch && ch <= '9'
}

func isIdentStart(ch byte) bool {
	return ch == '_' || ('a' <= ch && ch <= 'z') || ('A' <= ch && ch <= 'Z')
}

func isIdentPart(ch byte) bool {
	return isIdentStart(ch) || isDigit(ch) || ch == '.'
}

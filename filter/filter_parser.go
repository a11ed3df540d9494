package filter

import (
	"strconv"
	"strings"
)

// ParseFilter parses a filter expression string into an AST.
//
// Example expressions:
//   - foo == "bar"
//   - no >= 3 and foo like 'ba'
//   - kind in ("quake", "blast") or mag > 4.5
//   - region not in ('north', 'south')
//
// Empty or whitespace-only input is a ParseError.
func ParseFilter(expr string) (Expr, error) {
	if strings.TrimSpace(expr) == "" {
		return nil, newParseError(expr, 0, "empty expression")
	}

	tokens, err := Tokenize(expr)
	if err != nil {
		return nil, err
	}

	p := &filterParser{input: expr, tokens: tokens}
	result, err := p.parseOr()
	if err != nil {
		return nil, err
	}

	if tok := p.current(); tok.Type != TokenEOF {
		return nil, p.errorf(tok, "unexpected %s %q", tok.Type, tok.Value)
	}
	return result, nil
}

type filterParser struct {
	input  string
	tokens []Token
	pos    int
}

func (p *filterParser) current() Token {
	if p.pos >= len(p.tokens) {
		return Token{Type: TokenEOF, Pos: len(p.input)}
	}
	return p.tokens[p.pos]
}

func (p *filterParser) advance() Token {
	tok := p.current()
	if p.pos < len(p.tokens) {
		p.pos++
	}
	return tok
}

func (p *filterParser) errorf(tok Token, format string, args ...interface{}) *ParseError {
	return newParseError(p.input, tok.Pos, format, args...)
}

// parseOr handles: andExpr ( "or" andExpr )*
func (p *filterParser) parseOr() (Expr, error) {
	left, err := p.parseAnd()
	if err != nil {
		return nil, err
	}
	for p.current().Type == TokenOr {
		p.advance()
		right, err := p.parseAnd()
		if err != nil {
			return nil, err
		}
		left = &BinaryExpr{Op: "or", Left: left, Right: right}
	}
	return left, nil
}

// parseAnd handles: notExpr ( "and" notExpr )*
func (p *filterParser) parseAnd() (Expr, error) {
	left, err := p.parseNot()
	if err != nil {
		return nil, err
	}
	for p.current().Type == TokenAnd {
		p.advance()
		right, err := p.parseNot()
		if err != nil {
			return nil, err
		}
		left = &BinaryExpr{Op: "and", Left: left, Right: right}
	}
	return left, nil
}

// parseNot handles: [ "not" ] comparison
func (p *filterParser) parseNot() (Expr, error) {
	if p.current().Type == TokenNot {
		p.advance()
		expr, err := p.parseComparison()
		if err != nil {
			return nil, err
		}
		return &NotExpr{Expr: expr}, nil
	}
	return p.parseComparison()
}

func (p *filterParser) parseComparison() (Expr, error) {
	identTok := p.advance()
	switch identTok.Type {
	case TokenIdent:
	case TokenLParen:
		return nil, p.errorf(identTok, "grouping with parentheses is not supported")
	case TokenEOF:
		return nil, p.errorf(identTok, "expected property name, got end of input")
	default:
		return nil, p.errorf(identTok, "expected property name, got %s %q", identTok.Type, identTok.Value)
	}
	field := identTok.Value

	opTok := p.advance()
	switch opTok.Type {
	case TokenOperator:
		lit, err := p.parseLiteral()
		if err != nil {
			return nil, err
		}
		return &CompareExpr{Field: field, Op: opTok.Value, Value: lit}, nil

	case TokenIn, TokenNotIn:
		values, err := p.parseList()
		if err != nil {
			return nil, err
		}
		return &InExpr{Field: field, Not: opTok.Type == TokenNotIn, Values: values}, nil

	case TokenLike:
		patTok := p.advance()
		if patTok.Type != TokenString {
			return nil, p.errorf(patTok, "'like' requires a quoted string, got %s", patTok.Type)
		}
		return &LikeExpr{Field: field, Pattern: patTok.Value}, nil

	case TokenEOF:
		return nil, p.errorf(opTok, "expected operator after %q", field)
	default:
		return nil, p.errorf(opTok, "expected operator after %q, got %s %q", field, opTok.Type, opTok.Value)
	}
}

// parseList handles: "(" literal ( "," literal )* ")"
func (p *filterParser) parseList() ([]Literal, error) {
	open := p.advance()
	if open.Type != TokenLParen {
		return nil, p.errorf(open, "expected '(' to start list, got %s", open.Type)
	}

	var values []Literal
	for {
		lit, err := p.parseLiteral()
		if err != nil {
			return nil, err
		}
		values = append(values, lit)

		tok := p.advance()
		switch tok.Type {
		case TokenComma:
			continue
		case TokenRParen:
			return values, nil
		default:
			return nil, p.errorf(tok, "expected ',' or ')' in list, got %s", tok.Type)
		}
	}
}

func (p *filterParser) parseLiteral() (Literal, error) {
	tok := p.advance()
	switch tok.Type {
	case TokenString:
		return Literal{Kind: LiteralString, Str: tok.Value}, nil
	case TokenNumber:
		n, err := strconv.ParseFloat(tok.Value, 64)
		if err != nil {
			return Literal{}, p.errorf(tok, "invalid number %q", tok.Value)
		}
		return Literal{Kind: LiteralNumber, Num: n, Str: tok.Value}, nil
	case TokenEOF:
		return Literal{}, p.errorf(tok, "expected value, got end of input")
	default:
		return Literal{}, p.errorf(tok, "unexpected token %s %q, expected value", tok.Type, tok.Value)
	}
}

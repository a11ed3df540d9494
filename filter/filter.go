package filter

import (
	"strings"
)

// Expr is a parsed filter expression node.
type Expr interface {
	String() string

	// predicate builds the node's test. Node fields are copied, so later
	// changes to the tree do not reach an existing predicate.
	predicate() Predicate
}

// BinaryExpr represents "and" / "or"
type BinaryExpr struct {
	Op    string // "and", "or"
	Left  Expr
	Right Expr
}

func (b *BinaryExpr) predicate() Predicate {
	left, right := b.Left.predicate(), b.Right.predicate()
	switch b.Op {
	case "and":
		return func(props Getter) bool { return left(props) && right(props) }
	case "or":
		return func(props Getter) bool { return left(props) || right(props) }
	default:
		return func(Getter) bool { return false }
	}
}

func (b *BinaryExpr) String() string {
	return "(" + b.Left.String() + " " + b.Op + " " + b.Right.String() + ")"
}

// NotExpr negates a single comparison
type NotExpr struct {
	Expr Expr
}

func (n *NotExpr) predicate() Predicate {
	inner := n.Expr.predicate()
	return func(props Getter) bool { return !inner(props) }
}

func (n *NotExpr) String() string {
	return "not " + n.Expr.String()
}

// CompareExpr represents field <op> literal with op one of ==, !=, <, <=, >, >=
type CompareExpr struct {
	Field string
	Op    string
	Value Literal
}

// predicate for a comparison: an absent property equals nothing, so only != holds
func (c *CompareExpr) predicate() Predicate {
	field, op, lit := c.Field, c.Op, c.Value
	return func(props Getter) bool {
		v, ok := lookup(props, field)
		if !ok {
			return op == "!="
		}
		switch op {
		case "==":
			return valueEquals(v, lit)
		case "!=":
			return !valueEquals(v, lit)
		default:
			return compareOrdered(v, op, lit)
		}
	}
}

func (c *CompareExpr) String() string {
	return c.Field + " " + c.Op + " " + c.Value.String()
}

// InExpr represents field in (...) and field not in (...)
type InExpr struct {
	Field  string
	Not    bool
	Values []Literal
}

func (i *InExpr) predicate() Predicate {
	field, not := i.Field, i.Not
	values := append([]Literal(nil), i.Values...)
	return func(props Getter) bool {
		v, ok := lookup(props, field)
		if !ok {
			return not
		}
		return valueInList(v, values) != not
	}
}

func (i *InExpr) String() string {
	parts := make([]string, len(i.Values))
	for idx, v := range i.Values {
		parts[idx] = v.String()
	}
	op := " in "
	if i.Not {
		op = " not in "
	}
	return i.Field + op + "(" + strings.Join(parts, ", ") + ")"
}

// LikeExpr is a case-sensitive substring test
type LikeExpr struct {
	Field   string
	Pattern string
}

func (l *LikeExpr) predicate() Predicate {
	field, pattern := l.Field, l.Pattern
	return func(props Getter) bool {
		v, ok := lookup(props, field)
		return ok && strings.Contains(ToString(v), pattern)
	}
}

func (l *LikeExpr) String() string {
	return l.Field + " like " + Literal{Kind: LiteralString, Str: l.Pattern}.String()
}

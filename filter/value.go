package filter

import (
	"fmt"
	"strconv"
	"strings"
)

// Getter resolves a property by name. Implementations must be safe to read
// while a predicate is evaluated and must not be mutated during evaluation.
type Getter interface {
	Get(name string) (interface{}, bool)
}

// Map is the simplest Getter, a plain property map.
type Map map[string]interface{}

// Get implements Getter
func (m Map) Get(name string) (interface{}, bool) {
	v, ok := m[name]
	return v, ok
}

// LiteralKind tells number literals from string literals
type LiteralKind int

const (
	LiteralNumber LiteralKind = iota
	LiteralString
)

// Literal is a constant operand of a comparison.
type Literal struct {
	Kind LiteralKind
	Num  float64 // valid for LiteralNumber
	Str  string  // unquoted text for LiteralString, source text for LiteralNumber
}

func (l Literal) String() string {
	if l.Kind == LiteralNumber {
		return l.Str
	}
	return strconv.Quote(l.Str)
}

// numeric returns the literal as a number when it has one.
func (l Literal) numeric() (float64, bool) {
	if l.Kind == LiteralNumber {
		return l.Num, true
	}
	return parseNumber(l.Str)
}

// lookup fetches a property, folding explicit nil into "absent".
func lookup(props Getter, name string) (interface{}, bool) {
	if props == nil {
		return nil, false
	}
	v, ok := props.Get(name)
	if !ok || v == nil {
		return nil, false
	}
	return v, true
}

func parseNumber(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return f, true
}

// toNumber coerces a property value to a float64
func toNumber(v interface{}) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int8:
		return float64(n), true
	case int16:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint:
		return float64(n), true
	case uint8:
		return float64(n), true
	case uint16:
		return float64(n), true
	case uint32:
		return float64(n), true
	case uint64:
		return float64(n), true
	case bool:
		if n {
			return 1, true
		}
		return 0, true
	case string:
		return parseNumber(n)
	case fmt.Stringer:
		return parseNumber(n.String())
	default:
		return 0, false
	}
}

// ToString returns the display/comparison form of a property value.
func ToString(v interface{}) string {
	switch s := v.(type) {
	case nil:
		return ""
	case string:
		return s
	case float64:
		return strconv.FormatFloat(s, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(s), 'f', -1, 32)
	case int:
		return strconv.Itoa(s)
	case int64:
		return strconv.FormatInt(s, 10)
	case bool:
		return strconv.FormatBool(s)
	default:
		return fmt.Sprint(v)
	}
}

func valueEquals(v interface{}, lit Literal) bool {
	if lit.Kind == LiteralNumber {
		n, ok := toNumber(v)
		return ok && n == lit.Num
	}
	return ToString(v) == lit.Str
}

func valueInList(v interface{}, values []Literal) bool {
	for _, lit := range values {
		if valueEquals(v, lit) {
			return true
		}
	}
	return false
}

// compareOrdered applies <, <=, >, >= numerically when both sides are
// numbers and lexicographically on string forms otherwise.
func compareOrdered(v interface{}, op string, lit Literal) bool {
	if left, ok := toNumber(v); ok {
		if right, ok := lit.numeric(); ok {
			return compareFloats(left, op, right)
		}
	}
	return compareStrings(ToString(v), op, lit.Str)
}

func compareFloats(left float64, op string, right float64) bool {
	switch op {
	case "<":
		return left < right
	case "<=":
		return left <= right
	case ">":
		return left > right
	case ">=":
		return left >= right
	default:
		return false
	}
}

func compareStrings(left, op, right string) bool {
	switch op {
	case "<":
		return left < right
	case "<=":
		return left <= right
	case ">":
		return left > right
	case ">=":
		return left >= right
	default:
		return false
	}
}

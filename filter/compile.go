package filter

// Predicate tests a property mapping. Compiled predicates hold no mutable
// state and may be shared between goroutines.
type Predicate func(props Getter) bool

// Filter is a compiled filter expression.
type Filter struct {
	text string
	root Expr
	pred Predicate
}

// Compile parses expr and compiles it into a Filter.
// On failure the error is a *ParseError and no Filter is returned.
func Compile(expr string) (*Filter, error) {
	root, err := ParseFilter(expr)
	if err != nil {
		return nil, err
	}
	return &Filter{
		text: expr,
		root: root,
		pred: root.predicate(),
	}, nil
}

// MustCompile is like Compile but panics on error. Intended for expressions
// that are constants in source code.
func MustCompile(expr string) *Filter {
	f, err := Compile(expr)
	if err != nil {
		panic("filter: Compile(" + expr + "): " + err.Error())
	}
	return f
}

// Match evaluates the filter against props.
func (f *Filter) Match(props Getter) bool {
	return f.pred(props)
}

// Predicate returns the compiled predicate function.
func (f *Filter) Predicate() Predicate {
	return f.pred
}

// Expr returns the parsed expression tree.
func (f *Filter) Expr() Expr {
	return f.root
}

// Text returns the source expression as given to Compile.
func (f *Filter) Text() string {
	return f.text
}

// String returns the normalized form of the expression.
func (f *Filter) String() string {
	return f.root.String()
}

// Fields returns the property names the expression reads, in first-use order.
func (f *Filter) Fields() []string {
	var out []string
	seen := make(map[string]bool)
	var walk func(Expr)
	walk = func(node Expr) {
		var field string
		switch n := node.(type) {
		case *BinaryExpr:
			walk(n.Left)
			walk(n.Right)
			return
		case *NotExpr:
			walk(n.Expr)
			return
		case *CompareExpr:
			field = n.Field
		case *InExpr:
			field = n.Field
		case *LikeExpr:
			field = n.Field
		}
		if field != "" && !seen[field] {
			seen[field] = true
			out = append(out, field)
		}
	}
	walk(f.root)
	return out
}

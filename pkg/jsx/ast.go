package jsx

// Expr is an expression node. Pos is the byte offset of the node in the source.
type Expr interface {
	Pos() int
	exprNode()
}

type (
	// Ident references a scope binding.
	Ident struct {
		Offset int
		Name   string
	}

	// Literal is a string, number, boolean, null or undefined literal.
	// Value holds a string, float64 or bool, and is nil otherwise.
	Literal struct {
		Offset int
		Kind   LitKind
		Value  any
	}

	// TemplateLit is a template literal; len(Quasis) == len(Exprs)+1.
	TemplateLit struct {
		Offset int
		Quasis []string
		Exprs  []Expr
	}

	// ArrayLit is an array literal. Elements may be *Spread.
	ArrayLit struct {
		Offset int
		Elems  []Expr
	}

	// ObjectLit is an object literal.
	ObjectLit struct {
		Offset int
		Props  []Property
	}

	// Spread is "...X" inside array literals, object literals, call
	// arguments and JSX.
	Spread struct {
		Offset int
		X      Expr
	}

	// Member is X.Prop, X[Index] or their optional forms.
	Member struct {
		X        Expr
		Prop     string
		Index    Expr
		Optional bool
	}

	// Call is Fun(Args...).
	Call struct {
		Fun      Expr
		Args     []Expr
		Optional bool
	}

	// Unary is a prefix operation: !, -, + or typeof.
	Unary struct {
		Offset int
		Op     string
		X      Expr
	}

	// Binary is an arithmetic, comparison or logical operation.
	Binary struct {
		Op string
		X  Expr
		Y  Expr
	}

	// Cond is Test ? Then : Else.
	Cond struct {
		Test Expr
		Then Expr
		Else Expr
	}

	// Arrow is an arrow function with an expression body.
	Arrow struct {
		Offset int
		Params []string
		Body   Expr
	}

	// Paren keeps source parentheses so the printer reproduces grouping.
	Paren struct {
		Offset int
		X      Expr
	}

	// JSXElement is <Name Attrs...>Children</Name>.
	JSXElement struct {
		Offset   int
		Name     JSXName
		Attrs    []JSXAttr
		Children []Expr
	}

	// JSXFragment is <>Children</>.
	JSXFragment struct {
		Offset   int
		Children []Expr
	}

	// JSXText is a text child after JSX whitespace rules and entity decoding.
	JSXText struct {
		Offset int
		Value  string
	}
)

// LitKind distinguishes literal forms.
type LitKind int

const (
	LitString LitKind = iota
	LitNumber
	LitBool
	LitNull
	LitUndefined
)

// Property is a key/value pair of an object literal. Exactly one of Key,
// Computed or Spread is set.
type Property struct {
	Key      string
	Computed Expr
	Spread   Expr
	Value    Expr
}

// JSXName is an element name such as "div" or "React.Fragment".
type JSXName struct {
	Parts []string
}

func (n JSXName) String() string {
	s := ""
	for i, p := range n.Parts {
		if i > 0 {
			s += "."
		}
		s += p
	}
	return s
}

// Intrinsic reports whether the name refers to a host tag rather than a
// binding: a single lowercase name, or one containing a dash.
func (n JSXName) Intrinsic() bool {
	if len(n.Parts) != 1 {
		return false
	}
	name := n.Parts[0]
	for _, r := range name {
		if r == '-' {
			return true
		}
	}
	return name[0] >= 'a' && name[0] <= 'z'
}

// JSXAttr is an attribute. Value is nil for boolean shorthand; Spread is
// set for {...expr}.
type JSXAttr struct {
	Name   string
	Value  Expr
	Spread Expr
}

func (e *Ident) Pos() int       { return e.Offset }
func (e *Literal) Pos() int     { return e.Offset }
func (e *TemplateLit) Pos() int { return e.Offset }
func (e *ArrayLit) Pos() int    { return e.Offset }
func (e *ObjectLit) Pos() int   { return e.Offset }
func (e *Spread) Pos() int      { return e.Offset }
func (e *Member) Pos() int      { return e.X.Pos() }
func (e *Call) Pos() int        { return e.Fun.Pos() }
func (e *Unary) Pos() int       { return e.Offset }
func (e *Binary) Pos() int      { return e.X.Pos() }
func (e *Cond) Pos() int        { return e.Test.Pos() }
func (e *Arrow) Pos() int       { return e.Offset }
func (e *Paren) Pos() int       { return e.Offset }
func (e *JSXElement) Pos() int  { return e.Offset }
func (e *JSXFragment) Pos() int { return e.Offset }
func (e *JSXText) Pos() int     { return e.Offset }

func (*Ident) exprNode()       {}
func (*Literal) exprNode()     {}
func (*TemplateLit) exprNode() {}
func (*ArrayLit) exprNode()    {}
func (*ObjectLit) exprNode()   {}
func (*Spread) exprNode()      {}
func (*Member) exprNode()      {}
func (*Call) exprNode()        {}
func (*Unary) exprNode()       {}
func (*Binary) exprNode()      {}
func (*Cond) exprNode()        {}
func (*Arrow) exprNode()       {}
func (*Paren) exprNode()       {}
func (*JSXElement) exprNode()  {}
func (*JSXFragment) exprNode() {}
func (*JSXText) exprNode()     {}

// Program is a compiled template: a single expression.
type Program struct {
	Source string
	Body   Expr
	Strict bool
}

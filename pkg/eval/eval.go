package eval

import (
	"fmt"
	"math"
	"strings"

	"github.com/dmitrymomot/mailjsx/pkg/element"
	"github.com/dmitrymomot/mailjsx/pkg/jsx"
)

// Evaluate runs prog against scope and returns the resulting value,
// normally an *element.Element. The scope is read, never modified.
func Evaluate(prog *jsx.Program, scope map[string]any) (_ any, retErr error) {
	defer func() {
		if r := recover(); r != nil {
			retErr = fmt.Errorf("%w: %v", ErrPanic, r)
		}
	}()

	ev := &evaluator{}
	return ev.eval(prog.Body, &env{vars: scope, parent: globals})
}

// globals sit below the caller's scope, which may shadow them.
var globals = &env{vars: map[string]any{
	"NaN":      math.NaN(),
	"Infinity": math.Inf(1),
}}

// maxDepth bounds nested evaluation, arrow calls included, well below the
// point where the Go stack would overflow.
const maxDepth = 10000

type evaluator struct {
	depth int
}

func (ev *evaluator) eval(x jsx.Expr, e *env) (any, error) {
	ev.depth++
	defer func() { ev.depth-- }()
	if ev.depth > maxDepth {
		return nil, fmt.Errorf("%w at offset %d", ErrDepth, x.Pos())
	}
	return ev.evalNode(x, e)
}

//nolint:gocyclo,cyclop
func (ev *evaluator) evalNode(x jsx.Expr, e *env) (any, error) {
	switch n := x.(type) {
	case *jsx.Ident:
		v, ok := e.lookup(n.Name)
		if !ok {
			return nil, &ReferenceError{Name: n.Name, Offset: n.Offset}
		}
		return v, nil
	case *jsx.Literal:
		return literalValue(n), nil
	case *jsx.TemplateLit:
		var b strings.Builder
		for i, q := range n.Quasis {
			b.WriteString(q)
			if i < len(n.Exprs) {
				v, err := ev.eval(n.Exprs[i], e)
				if err != nil {
					return nil, err
				}
				b.WriteString(element.ToString(v))
			}
		}
		return b.String(), nil
	case *jsx.ArrayLit:
		return ev.evalList(n.Elems, e)
	case *jsx.ObjectLit:
		return ev.evalObject(n, e)
	case *jsx.Spread:
		return ev.eval(n.X, e)
	case *jsx.Paren:
		return ev.eval(n.X, e)
	case *jsx.Member:
		return ev.evalMember(n, e)
	case *jsx.Call:
		return ev.evalCall(n, e)
	case *jsx.Unary:
		return ev.evalUnary(n, e)
	case *jsx.Binary:
		return ev.evalBinary(n, e)
	case *jsx.Cond:
		test, err := ev.eval(n.Test, e)
		if err != nil {
			return nil, err
		}
		if truthy(test) {
			return ev.eval(n.Then, e)
		}
		return ev.eval(n.Else, e)
	case *jsx.Arrow:
		return &Func{params: n.Params, body: n.Body, env: e, ev: ev}, nil
	case *jsx.JSXElement:
		return ev.evalElement(n, e)
	case *jsx.JSXFragment:
		children, err := ev.evalChildren(n.Children, e)
		if err != nil {
			return nil, err
		}
		return element.CreateElement(element.Fragment, nil, children...)
	case *jsx.JSXText:
		return n.Value, nil
	}
	return nil, fmt.Errorf("eval: unknown expression %T", x)
}

func literalValue(l *jsx.Literal) any {
	switch l.Kind {
	case jsx.LitNull:
		return nil
	case jsx.LitUndefined:
		return element.Undefined
	}
	return l.Value
}

// evalList evaluates array elements and call arguments, expanding spreads.
func (ev *evaluator) evalList(xs []jsx.Expr, e *env) ([]any, error) {
	out := make([]any, 0, len(xs))
	for _, x := range xs {
		v, err := ev.eval(x, e)
		if err != nil {
			return nil, err
		}
		if sp, ok := x.(*jsx.Spread); ok {
			items, ok := toArray(v)
			if !ok {
				return nil, typeErrorf(sp.Offset, "%s is not iterable", describe(v))
			}
			out = append(out, items...)
			continue
		}
		out = append(out, v)
	}
	return out, nil
}

func (ev *evaluator) evalObject(n *jsx.ObjectLit, e *env) (map[string]any, error) {
	obj := make(map[string]any, len(n.Props))
	for _, p := range n.Props {
		if p.Spread != nil {
			v, err := ev.eval(p.Spread, e)
			if err != nil {
				return nil, err
			}
			spreadInto(obj, v)
			continue
		}
		key := p.Key
		if p.Computed != nil {
			k, err := ev.eval(p.Computed, e)
			if err != nil {
				return nil, err
			}
			key = element.ToString(k)
		}
		v, err := ev.eval(p.Value, e)
		if err != nil {
			return nil, err
		}
		obj[key] = v
	}
	return obj, nil
}

// spreadInto copies the own properties of v into dst. Nullish values spread
// to nothing.
func spreadInto(dst map[string]any, v any) {
	if element.IsNullish(v) {
		return
	}
	if m, ok := element.ToMap(v); ok {
		for k, val := range m {
			dst[k] = val
		}
		return
	}
	if m, ok := structFields(v); ok {
		for k, val := range m {
			dst[k] = val
		}
		return
	}
	if items, ok := toArray(v); ok {
		for i, it := range items {
			dst[element.FormatNumber(float64(i))] = it
		}
	}
}

func (ev *evaluator) evalMember(n *jsx.Member, e *env) (any, error) {
	obj, err := ev.eval(n.X, e)
	if err != nil {
		return nil, err
	}
	if n.Optional && element.IsNullish(obj) {
		return element.Undefined, nil
	}
	key := n.Prop
	if n.Index != nil {
		k, err := ev.eval(n.Index, e)
		if err != nil {
			return nil, err
		}
		key = element.ToString(k)
	}
	return getMember(obj, key, n.Pos())
}

func (ev *evaluator) evalCall(n *jsx.Call, e *env) (any, error) {
	fn, err := ev.eval(n.Fun, e)
	if err != nil {
		return nil, err
	}
	if n.Optional && element.IsNullish(fn) {
		return element.Undefined, nil
	}
	args, err := ev.evalList(n.Args, e)
	if err != nil {
		return nil, err
	}
	return callValue(fn, args, n.Pos(), calleeName(n.Fun))
}

func calleeName(x jsx.Expr) string {
	switch f := x.(type) {
	case *jsx.Ident:
		return f.Name
	case *jsx.Member:
		if f.Index == nil {
			return calleeName(f.X) + "." + f.Prop
		}
		return calleeName(f.X) + "[...]"
	case *jsx.Paren:
		return calleeName(f.X)
	}
	return "expression"
}

func (ev *evaluator) evalUnary(n *jsx.Unary, e *env) (any, error) {
	if n.Op == "typeof" {
		// typeof tolerates unbound names.
		if id, ok := n.X.(*jsx.Ident); ok {
			if _, bound := e.lookup(id.Name); !bound {
				return "undefined", nil
			}
		}
	}
	v, err := ev.eval(n.X, e)
	if err != nil {
		return nil, err
	}
	switch n.Op {
	case "!":
		return !truthy(v), nil
	case "-":
		return -toNumber(v), nil
	case "+":
		return toNumber(v), nil
	case "typeof":
		return typeOf(v), nil
	}
	return nil, typeErrorf(n.Offset, "unknown operator %s", n.Op)
}

func (ev *evaluator) evalBinary(n *jsx.Binary, e *env) (any, error) {
	x, err := ev.eval(n.X, e)
	if err != nil {
		return nil, err
	}
	switch n.Op {
	case "&&":
		if !truthy(x) {
			return x, nil
		}
		return ev.eval(n.Y, e)
	case "||":
		if truthy(x) {
			return x, nil
		}
		return ev.eval(n.Y, e)
	case "??":
		if !element.IsNullish(x) {
			return x, nil
		}
		return ev.eval(n.Y, e)
	}

	y, err := ev.eval(n.Y, e)
	if err != nil {
		return nil, err
	}
	return binaryOp(n.Op, x, y, n.Pos())
}

func (ev *evaluator) evalElement(n *jsx.JSXElement, e *env) (any, error) {
	typ, err := ev.elementType(n, e)
	if err != nil {
		return nil, err
	}

	props := make(element.Props, len(n.Attrs))
	for _, a := range n.Attrs {
		if a.Spread != nil {
			v, err := ev.eval(a.Spread, e)
			if err != nil {
				return nil, err
			}
			spreadInto(props, v)
			continue
		}
		if a.Value == nil {
			props[a.Name] = true
			continue
		}
		v, err := ev.eval(a.Value, e)
		if err != nil {
			return nil, err
		}
		props[a.Name] = v
	}

	children, err := ev.evalChildren(n.Children, e)
	if err != nil {
		return nil, err
	}

	el, err := element.CreateElement(typ, props, children...)
	if err != nil {
		return nil, &TypeError{Msg: fmt.Sprintf("<%s>: %v", n.Name, err), Offset: n.Offset, Err: err}
	}
	return el, nil
}

func (ev *evaluator) elementType(n *jsx.JSXElement, e *env) (any, error) {
	if n.Name.Intrinsic() {
		return n.Name.String(), nil
	}
	head := n.Name.Parts[0]
	v, ok := e.lookup(head)
	if !ok {
		return nil, &ReferenceError{Name: head, Offset: n.Offset}
	}
	for _, part := range n.Name.Parts[1:] {
		var err error
		if v, err = getMember(v, part, n.Offset); err != nil {
			return nil, err
		}
	}
	return v, nil
}

func (ev *evaluator) evalChildren(xs []jsx.Expr, e *env) ([]any, error) {
	out := make([]any, 0, len(xs))
	for _, x := range xs {
		v, err := ev.eval(x, e)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}

// Func is an arrow function closed over its defining environment.
type Func struct {
	params []string
	body   jsx.Expr
	env    *env
	ev     *evaluator
}

// Call binds args to the parameters, missing ones to Undefined, and
// evaluates the body.
func (f *Func) Call(args ...any) (any, error) {
	vars := make(map[string]any, len(f.params))
	for i, p := range f.params {
		if i < len(args) {
			vars[p] = args[i]
			continue
		}
		vars[p] = element.Undefined
	}
	return f.ev.eval(f.body, f.env.child(vars))
}

func (f *Func) String() string {
	return "(" + strings.Join(f.params, ", ") + ") => ..."
}

package jsx

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"unicode/utf8"
)

// runtimeName is the binding emitted code calls createElement on.
const runtimeName = "React"

// Print emits prog as a createElement expression statement.
func Print(prog *Program, opts Options) string {
	var b strings.Builder
	if opts.emitsStrictDirective() {
		b.WriteString("\"use strict\";\n")
	}
	pr := &printer{b: &b}
	pr.expr(prog.Body)
	b.WriteString(";\n")
	return b.String()
}

type printer struct {
	b *strings.Builder
}

func (p *printer) write(ss ...string) {
	for _, s := range ss {
		p.b.WriteString(s)
	}
}

func (p *printer) list(xs []Expr) {
	for i, x := range xs {
		if i > 0 {
			p.write(", ")
		}
		p.expr(x)
	}
}

func (p *printer) expr(x Expr) {
	switch e := x.(type) {
	case *Ident:
		p.write(e.Name)
	case *Literal:
		p.literal(e)
	case *TemplateLit:
		p.write("`")
		for i, q := range e.Quasis {
			p.write(escapeTemplate(q))
			if i < len(e.Exprs) {
				p.write("${")
				p.expr(e.Exprs[i])
				p.write("}")
			}
		}
		p.write("`")
	case *ArrayLit:
		p.write("[")
		p.list(e.Elems)
		p.write("]")
	case *ObjectLit:
		if len(e.Props) == 0 {
			p.write("{}")
			return
		}
		p.write("{ ")
		for i, prop := range e.Props {
			if i > 0 {
				p.write(", ")
			}
			switch {
			case prop.Spread != nil:
				p.write("...")
				p.expr(prop.Spread)
			case prop.Computed != nil:
				p.write("[")
				p.expr(prop.Computed)
				p.write("]: ")
				p.expr(prop.Value)
			default:
				p.write(propertyKey(prop.Key), ": ")
				p.expr(prop.Value)
			}
		}
		p.write(" }")
	case *Spread:
		p.write("...")
		p.expr(e.X)
	case *Member:
		p.expr(e.X)
		switch {
		case e.Index != nil && e.Optional:
			p.write("?.[")
			p.expr(e.Index)
			p.write("]")
		case e.Index != nil:
			p.write("[")
			p.expr(e.Index)
			p.write("]")
		case e.Optional:
			p.write("?.", e.Prop)
		default:
			p.write(".", e.Prop)
		}
	case *Call:
		p.expr(e.Fun)
		if e.Optional {
			p.write("?.")
		}
		p.write("(")
		p.list(e.Args)
		p.write(")")
	case *Unary:
		p.write(e.Op)
		if e.Op == "typeof" {
			p.write(" ")
		}
		p.expr(e.X)
	case *Binary:
		p.expr(e.X)
		p.write(" ", e.Op, " ")
		p.expr(e.Y)
	case *Cond:
		p.expr(e.Test)
		p.write(" ? ")
		p.expr(e.Then)
		p.write(" : ")
		p.expr(e.Else)
	case *Arrow:
		p.write("(", strings.Join(e.Params, ", "), ")=>")
		if _, ok := e.Body.(*ObjectLit); ok {
			p.write("(")
			p.expr(e.Body)
			p.write(")")
			return
		}
		p.expr(e.Body)
	case *Paren:
		p.write("(")
		p.expr(e.X)
		p.write(")")
	case *JSXElement:
		p.write(runtimeName, ".createElement(")
		if e.Name.Intrinsic() {
			p.write(quote(e.Name.String()))
		} else {
			p.write(e.Name.String())
		}
		p.write(", ")
		p.attrs(e.Attrs)
		p.children(e.Children)
		p.write(")")
	case *JSXFragment:
		p.write(runtimeName, ".createElement(", runtimeName, ".Fragment, null")
		p.children(e.Children)
		p.write(")")
	case *JSXText:
		p.write(quote(e.Value))
	default:
		panic(fmt.Sprintf("jsx: unexpected node %T", x))
	}
}

func (p *printer) literal(e *Literal) {
	switch e.Kind {
	case LitString:
		p.write(quote(e.Value.(string)))
	case LitNumber:
		p.write(formatNumber(e.Value.(float64)))
	case LitBool:
		p.write(strconv.FormatBool(e.Value.(bool)))
	case LitNull:
		p.write("null")
	case LitUndefined:
		p.write("undefined")
	}
}

func (p *printer) attrs(attrs []JSXAttr) {
	if len(attrs) == 0 {
		p.write("null")
		return
	}
	p.write("{ ")
	for i, a := range attrs {
		if i > 0 {
			p.write(", ")
		}
		switch {
		case a.Spread != nil:
			p.write("...")
			p.expr(a.Spread)
		case a.Value == nil:
			p.write(propertyKey(a.Name), ": true")
		default:
			p.write(propertyKey(a.Name), ": ")
			p.expr(a.Value)
		}
	}
	p.write(" }")
}

func (p *printer) children(children []Expr) {
	for _, c := range children {
		p.write(", ")
		p.expr(c)
	}
}

func propertyKey(k string) string {
	if k == "" {
		return quote(k)
	}
	for i, r := range k {
		if (i == 0 && !isIdentStart(r)) || !isIdentPart(r) {
			return quote(k)
		}
	}
	return k
}

func quote(s string) string {
	var b strings.Builder
	b.WriteByte('"')
	for _, r := range s {
		switch r {
		case '"':
			b.WriteString(`\"`)
		case '\\':
			b.WriteString(`\\`)
		case '\n':
			b.WriteString(`\n`)
		case '\r':
			b.WriteString(`\r`)
		case '\t':
			b.WriteString(`\t`)
		default:
			if r < 0x20 || r == 0x2028 || r == 0x2029 || r == utf8.RuneError {
				fmt.Fprintf(&b, `\u%04x`, r)
				continue
			}
			b.WriteRune(r)
		}
	}
	b.WriteByte('"')
	return b.String()
}

func escapeTemplate(s string) string {
	return strings.NewReplacer("\\", `\\`, "`", "\\`", "${", "\\${").Replace(s)
}

func formatNumber(f float64) string {
	switch {
	case math.IsNaN(f):
		return "NaN"
	case math.IsInf(f, 0):
		return "Infinity"
	case f == math.Trunc(f) && math.Abs(f) < 1e21:
		return strconv.FormatFloat(f, 'f', -1, 64)
	}
	return strconv.FormatFloat(f, 'g', -1, 64)
}

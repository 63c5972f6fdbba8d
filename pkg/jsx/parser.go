package jsx

import (
	"strings"

	"golang.org/x/net/html"
)

// maxNesting bounds how deeply expressions and elements may nest, so
// hostile input fails with a SyntaxError instead of exhausting the stack.
const maxNesting = 1000

type parser struct {
	s     *scanner
	tok   Token
	opts  Options
	depth int
}

// Parse parses src as a single template expression. A trailing semicolon is
// allowed; anything after it is an error.
func Parse(src string, opts Options) (prog *Program, err error) {
	p := &parser{s: &scanner{src: src}, opts: opts}
	defer func() {
		if r := recover(); r != nil {
			se, ok := r.(*SyntaxError)
			if !ok {
				panic(r)
			}
			prog, err = nil, se
		}
	}()

	p.next()
	if p.tok.Kind == EOF {
		p.fail(p.tok.Pos, "expected an expression")
	}
	body := p.parseExpr()
	if p.tok.is(";") {
		p.next()
	}
	if p.tok.Kind != EOF {
		p.fail(p.tok.Pos, "unexpected token %s", p.tok)
	}
	return &Program{Source: src, Body: body, Strict: opts.Module.StrictMode}, nil
}

func (p *parser) fail(pos int, format string, args ...any) {
	p.s.fail(pos, format, args...)
}

// enter records one more level of nesting. Every call is paired with a
// deferred leave.
func (p *parser) enter(pos int) {
	p.depth++
	if p.depth > maxNesting {
		p.fail(pos, "expression nested too deeply (limit %d)", maxNesting)
	}
}

func (p *parser) leave() { p.depth-- }

func (p *parser) next() {
	p.tok = p.s.scan()
}

func (p *parser) expect(v string) Token {
	t := p.tok
	if !t.is(v) {
		p.fail(t.Pos, "expected '%s' but found %s", v, t)
	}
	p.next()
	return t
}

// expectClose checks for a closing brace without scanning past it, so the
// caller can continue in raw JSX or template mode.
func (p *parser) expectClose() {
	if !p.tok.is("}") {
		p.fail(p.tok.Pos, "expected '}' but found %s", p.tok)
	}
	p.s.pos = p.tok.End
}

func (p *parser) parseExpr() Expr {
	return p.parseAssign()
}

func (p *parser) parseAssign() Expr {
	p.enter(p.tok.Pos)
	defer p.leave()

	if p.tok.Kind == IdentToken && !unsupportedWords[p.tok.Value] && p.arrowAhead() {
		return p.parseArrow()
	}
	if p.tok.is("(") && p.arrowAhead() {
		return p.parseArrow()
	}
	x := p.parseCond()
	if p.tok.is("=") {
		p.fail(p.tok.Pos, "assignments are not supported")
	}
	return x
}

// arrowAhead reports whether the tokens at the cursor start an arrow
// function. The scanner state is restored afterwards.
func (p *parser) arrowAhead() bool {
	saved, savedPos := p.tok, p.s.pos
	defer func() {
		p.tok, p.s.pos = saved, savedPos
	}()

	if p.tok.Kind == IdentToken {
		p.next()
		return p.tok.is("=>")
	}

	p.next() // (
	for !p.tok.is(")") {
		if p.tok.Kind != IdentToken {
			return false
		}
		p.next()
		if p.tok.is(",") {
			p.next()
			continue
		}
		if !p.tok.is(")") {
			return false
		}
	}
	p.next()
	return p.tok.is("=>")
}

func (p *parser) parseArrow() Expr {
	start := p.tok.Pos
	var params []string
	if p.tok.Kind == IdentToken {
		params = append(params, p.tok.Value)
		p.next()
	} else {
		p.next()
		for !p.tok.is(")") {
			params = append(params, p.tok.Value)
			p.next()
			if p.tok.is(",") {
				p.next()
			}
		}
		p.next()
	}
	seen := make(map[string]bool, len(params))
	for _, name := range params {
		if seen[name] {
			p.fail(start, "duplicate parameter name %q", name)
		}
		seen[name] = true
	}
	p.expect("=>")

	if !p.tok.is("{") {
		return &Arrow{Offset: start, Params: params, Body: p.parseAssign()}
	}

	// A block body is limited to a single return statement.
	p.next()
	if !p.tok.isWord("return") {
		p.fail(p.tok.Pos, "arrow function bodies must be an expression or a single return statement")
	}
	p.next()
	body := p.parseExpr()
	if p.tok.is(";") {
		p.next()
	}
	p.expect("}")
	return &Arrow{Offset: start, Params: params, Body: body}
}

func (p *parser) parseCond() Expr {
	test := p.parseBinary(1)
	if !p.tok.is("?") {
		return test
	}
	p.next()
	then := p.parseAssign()
	p.expect(":")
	els := p.parseAssign()
	return &Cond{Test: test, Then: then, Else: els}
}

func (p *parser) parseBinary(minPrec int) Expr {
	x := p.parseUnary()
	for {
		if p.opts.typescript() && p.tok.isWord("as") && minPrec <= 7 {
			p.next()
			p.skipTSType()
			continue
		}
		if p.tok.Kind != Punct {
			return x
		}
		prec, ok := binaryPrec[p.tok.Value]
		if !ok {
			if p.tok.is("|") || p.tok.is("&") {
				p.fail(p.tok.Pos, "bitwise operators are not supported")
			}
			return x
		}
		if prec < minPrec {
			return x
		}
		op := p.tok.Value
		p.next()
		y := p.parseBinary(prec + 1)
		x = &Binary{Op: op, X: x, Y: y}
	}
}

// skipTSType consumes a type after "as". Types are discarded.
func (p *parser) skipTSType() {
	switch {
	case p.tok.Kind == String, p.tok.Kind == Number:
		p.next()
		return
	case p.tok.Kind != IdentToken:
		p.fail(p.tok.Pos, "expected a type but found %s", p.tok)
	}
	p.next()
	for p.tok.is(".") {
		p.next()
		if p.tok.Kind != IdentToken {
			p.fail(p.tok.Pos, "expected a type name but found %s", p.tok)
		}
		p.next()
	}
	if p.tok.is("<") {
		depth := 0
		for {
			switch {
			case p.tok.is("<"):
				depth++
			case p.tok.is(">"):
				depth--
			case p.tok.Kind == EOF:
				p.fail(p.tok.Pos, "unterminated type arguments")
			}
			p.next()
			if depth == 0 {
				break
			}
		}
	}
	for p.tok.is("[") {
		p.next()
		p.expect("]")
	}
}

func (p *parser) parseUnary() Expr {
	t := p.tok
	p.enter(t.Pos)
	defer p.leave()

	switch {
	case t.is("!"), t.is("-"), t.is("+"), t.isWord("typeof"):
		p.next()
		return &Unary{Offset: t.Pos, Op: t.Value, X: p.parseUnary()}
	}
	return p.parsePostfix(p.parsePrimary())
}

func (p *parser) parsePostfix(x Expr) Expr {
	for {
		switch {
		case p.tok.is("."):
			p.next()
			if p.tok.Kind != IdentToken {
				p.fail(p.tok.Pos, "expected a property name but found %s", p.tok)
			}
			x = &Member{X: x, Prop: p.tok.Value}
			p.next()
		case p.tok.is("?."):
			p.next()
			switch {
			case p.tok.is("("):
				x = &Call{Fun: x, Args: p.parseArgs(), Optional: true}
			case p.tok.is("["):
				p.next()
				idx := p.parseExpr()
				p.expect("]")
				x = &Member{X: x, Index: idx, Optional: true}
			case p.tok.Kind == IdentToken:
				x = &Member{X: x, Prop: p.tok.Value, Optional: true}
				p.next()
			default:
				p.fail(p.tok.Pos, "unexpected token %s after '?.'", p.tok)
			}
		case p.tok.is("["):
			p.next()
			idx := p.parseExpr()
			p.expect("]")
			x = &Member{X: x, Index: idx}
		case p.tok.is("("):
			x = &Call{Fun: x, Args: p.parseArgs()}
		case p.tok.Kind == Template:
			p.fail(p.tok.Pos, "tagged templates are not supported")
		default:
			return x
		}
	}
}

func (p *parser) parseArgs() []Expr {
	p.expect("(")
	var args []Expr
	for !p.tok.is(")") {
		if p.tok.is("...") {
			start := p.tok.Pos
			p.next()
			args = append(args, &Spread{Offset: start, X: p.parseAssign()})
		} else {
			args = append(args, p.parseAssign())
		}
		if !p.tok.is(")") {
			p.expect(",")
		}
	}
	p.next()
	return args
}

func (p *parser) parsePrimary() Expr {
	t := p.tok
	switch t.Kind {
	case Number:
		p.next()
		return &Literal{Offset: t.Pos, Kind: LitNumber, Value: t.Num}
	case String:
		p.next()
		return &Literal{Offset: t.Pos, Kind: LitString, Value: t.Value}
	case Template:
		return p.parseTemplate()
	case IdentToken:
		switch t.Value {
		case "true", "false":
			p.next()
			return &Literal{Offset: t.Pos, Kind: LitBool, Value: t.Value == "true"}
		case "null":
			p.next()
			return &Literal{Offset: t.Pos, Kind: LitNull}
		case "undefined":
			p.next()
			return &Literal{Offset: t.Pos, Kind: LitUndefined}
		}
		if unsupportedWords[t.Value] {
			p.fail(t.Pos, "'%s' is not supported in templates", t.Value)
		}
		p.next()
		return &Ident{Offset: t.Pos, Name: t.Value}
	case EOF:
		p.fail(t.Pos, "unexpected end of input")
	}

	switch {
	case t.is("("):
		p.next()
		x := p.parseExpr()
		p.expect(")")
		return &Paren{Offset: t.Pos, X: x}
	case t.is("["):
		return p.parseArray()
	case t.is("{"):
		return p.parseObject()
	case t.is("<"):
		if !p.opts.Parser.JSX {
			p.fail(t.Pos, "JSX syntax is not enabled")
		}
		x := p.parseJSXAfterLT(t.Pos)
		p.next()
		return x
	}
	p.fail(t.Pos, "unexpected token %s", t)
	return nil
}

func (p *parser) parseTemplate() Expr {
	lit := &TemplateLit{Offset: p.tok.Pos}
	for {
		text, closed := p.s.scanTemplateChunk()
		lit.Quasis = append(lit.Quasis, text)
		if closed {
			break
		}
		p.next()
		lit.Exprs = append(lit.Exprs, p.parseExpr())
		p.expectClose()
	}
	p.next()
	return lit
}

func (p *parser) parseArray() Expr {
	arr := &ArrayLit{Offset: p.tok.Pos}
	p.next()
	for !p.tok.is("]") {
		if p.tok.is(",") {
			p.fail(p.tok.Pos, "array holes are not supported")
		}
		if p.tok.is("...") {
			start := p.tok.Pos
			p.next()
			arr.Elems = append(arr.Elems, &Spread{Offset: start, X: p.parseAssign()})
		} else {
			arr.Elems = append(arr.Elems, p.parseAssign())
		}
		if !p.tok.is("]") {
			p.expect(",")
		}
	}
	p.next()
	return arr
}

func (p *parser) parseObject() Expr {
	obj := &ObjectLit{Offset: p.tok.Pos}
	p.next()
	for !p.tok.is("}") {
		var prop Property
		switch t := p.tok; {
		case t.is("..."):
			p.next()
			prop.Spread = p.parseAssign()
		case t.is("["):
			p.next()
			prop.Computed = p.parseAssign()
			p.expect("]")
			p.expect(":")
			prop.Value = p.parseAssign()
		case t.Kind == IdentToken, t.Kind == String, t.Kind == Number:
			prop.Key = t.Value
			if t.Kind == Number {
				prop.Key = formatNumber(t.Num)
			}
			p.next()
			if t.Kind == IdentToken && (p.tok.is(",") || p.tok.is("}")) {
				prop.Value = &Ident{Offset: t.Pos, Name: t.Value}
				break
			}
			p.expect(":")
			prop.Value = p.parseAssign()
		default:
			p.fail(t.Pos, "unexpected token %s in object literal", t)
		}
		obj.Props = append(obj.Props, prop)
		if !p.tok.is("}") {
			p.expect(",")
		}
	}
	p.next()
	return obj
}

// parseJSXAfterLT parses an element or fragment whose '<' has been consumed.
// On return the scanner sits right after the closing '>'.
func (p *parser) parseJSXAfterLT(start int) Expr {
	p.enter(start)
	defer p.leave()

	s := p.s
	s.skipSpace()
	if s.consume('>') {
		children := p.parseJSXChildren()
		s.skipSpace()
		if !s.consume('>') {
			p.fail(s.pos, "expected corresponding closing tag for JSX fragment")
		}
		return &JSXFragment{Offset: start, Children: children}
	}

	el := &JSXElement{Offset: start, Name: p.parseJSXName()}
	for {
		s.skipSpace()
		switch r := s.peek(); {
		case r == '/':
			s.advance()
			s.skipSpace()
			if !s.consume('>') {
				p.fail(s.pos, "expected '>' after '/' in JSX tag")
			}
			return el
		case r == '>':
			s.advance()
			el.Children = p.parseJSXChildren()
			s.skipSpace()
			closePos := s.pos
			closing := p.parseJSXName()
			s.skipSpace()
			if !s.consume('>') {
				p.fail(s.pos, "expected '>' in closing tag")
			}
			if closing.String() != el.Name.String() {
				p.fail(closePos, "expected corresponding JSX closing tag for <%s>", el.Name)
			}
			return el
		case r == '{':
			s.advance()
			p.next()
			if !p.tok.is("...") {
				p.fail(p.tok.Pos, "expected '...' in JSX spread attribute")
			}
			p.next()
			el.Attrs = append(el.Attrs, JSXAttr{Spread: p.parseAssign()})
			p.expectClose()
		case r == -1:
			p.fail(s.pos, "unterminated JSX tag <%s>", el.Name)
		default:
			el.Attrs = append(el.Attrs, p.parseJSXAttr())
		}
	}
}

func (p *parser) parseJSXName() JSXName {
	s := p.s
	var name JSXName
	name.Parts = append(name.Parts, s.scanJSXName(true))
	for s.peek() == '.' {
		s.advance()
		name.Parts = append(name.Parts, s.scanJSXName(false))
	}
	return name
}

func (p *parser) parseJSXAttr() JSXAttr {
	s := p.s
	attr := JSXAttr{Name: s.scanJSXName(true)}
	s.skipSpace()
	if !s.consume('=') {
		return attr
	}
	s.skipSpace()
	pos := s.pos
	switch r := s.peek(); r {
	case '"', '\'':
		s.advance()
		attr.Value = &Literal{Offset: pos, Kind: LitString, Value: html.UnescapeString(s.scanJSXString(r))}
	case '{':
		s.advance()
		p.next()
		if p.tok.is("}") {
			p.fail(p.tok.Pos, "JSX attributes must only be assigned a non-empty expression")
		}
		attr.Value = p.parseAssign()
		p.expectClose()
	case '<':
		s.advance()
		attr.Value = p.parseJSXAfterLT(pos)
	default:
		p.fail(pos, "JSX value should be either an expression or a quoted JSX text")
	}
	return attr
}

// parseJSXChildren parses children up to and including the "</" of the
// closing tag.
func (p *parser) parseJSXChildren() []Expr {
	s := p.s
	var children []Expr
	for {
		pos := s.pos
		if text := cleanJSXText(s.scanJSXText()); text != "" {
			children = append(children, &JSXText{Offset: pos, Value: text})
		}

		pos = s.pos
		s.advance()
		if s.src[pos] == '<' {
			s.skipSpace()
			if s.consume('/') {
				s.skipSpace()
				return children
			}
			children = append(children, p.parseJSXAfterLT(pos))
			continue
		}

		// expression container
		p.next()
		switch {
		case p.tok.is("}"):
			// empty container or comment
		case p.tok.is("..."):
			p.next()
			children = append(children, &Spread{Offset: pos, X: p.parseExpr()})
		default:
			children = append(children, p.parseExpr())
		}
		p.expectClose()
	}
}

// cleanJSXText applies the JSX whitespace rules: lines are trimmed except
// at the outer edges of the text, lines left empty are dropped and the rest
// are joined by a single space. Entities are decoded afterwards so &nbsp;
// survives trimming.
func cleanJSXText(raw string) string {
	if raw == "" {
		return ""
	}
	lines := strings.Split(strings.NewReplacer("\r\n", "\n", "\r", "\n").Replace(raw), "\n")

	kept := lines[:0]
	for i, line := range lines {
		if i != 0 {
			line = strings.TrimLeft(line, " \t")
		}
		if i != len(lines)-1 {
			line = strings.TrimRight(line, " \t")
		}
		if line != "" {
			kept = append(kept, line)
		}
	}
	return html.UnescapeString(strings.Join(kept, " "))
}

package render

import (
	"strconv"
	"strings"
	"unicode/utf8"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// toPlainText converts rendered markup to plain text.
func toPlainText(markup string, o Options) (string, error) {
	topts, err := o.textOptions()
	if err != nil {
		return "", err
	}
	doc, err := html.Parse(strings.NewReader(markup))
	if err != nil {
		return "", err
	}

	tw := &textWriter{opts: topts, upper: cases.Upper(language.Und)}
	tw.walk(doc)
	tw.flush()
	return strings.TrimRight(tw.out.String(), " \n"), nil
}

// Line breaks requested before and after block elements. Two breaks leave
// an empty line between blocks.
var blockBreaks = map[atom.Atom]int{
	atom.P: 2, atom.H1: 2, atom.H2: 2, atom.H3: 2, atom.H4: 2, atom.H5: 2, atom.H6: 2,
	atom.Ul: 2, atom.Ol: 2, atom.Blockquote: 2, atom.Pre: 2, atom.Table: 2,
	atom.Div: 1, atom.Section: 1, atom.Article: 1, atom.Header: 1, atom.Footer: 1,
	atom.Main: 1, atom.Nav: 1, atom.Aside: 1, atom.Body: 1, atom.Html: 1,
	atom.Tr: 1, atom.Td: 1, atom.Th: 1, atom.Tbody: 1, atom.Thead: 1, atom.Tfoot: 1,
	atom.Li: 1, atom.Center: 1, atom.Dl: 1, atom.Dt: 1, atom.Dd: 1,
}

// skippedElements produce no text.
var skippedElements = map[atom.Atom]bool{
	atom.Head: true, atom.Style: true, atom.Script: true, atom.Title: true,
	atom.Img: true, atom.Noscript: true, atom.Template: true,
}

type list struct {
	ordered bool
	n       int
}

type textWriter struct {
	opts  HTMLToTextOptions
	upper cases.Caser

	out     strings.Builder
	inline  strings.Builder
	prefix  string
	pending int
	heading int
	lists   []*list
}

func (t *textWriter) walk(n *html.Node) {
	switch n.Type {
	case html.TextNode:
		t.text(n.Data)
		return
	case html.DocumentNode:
		t.children(n)
		return
	case html.ElementNode:
	default:
		return
	}

	if skippedElements[n.DataAtom] || attr(n, "data-skip-in-text") == "true" {
		return
	}

	switch n.DataAtom {
	case atom.Br:
		t.inline.WriteByte('\n')
		return
	case atom.Hr:
		t.block(2)
		t.writeLine(strings.Repeat("-", max(t.opts.HRWidth, 1)))
		t.pending = 2
		return
	case atom.A:
		t.link(n)
		return
	case atom.H1, atom.H2, atom.H3, atom.H4, atom.H5, atom.H6:
		t.block(2)
		t.heading++
		t.children(n)
		t.heading--
		t.block(2)
		return
	case atom.Ul, atom.Ol:
		t.block(blockBreaks[n.DataAtom])
		t.lists = append(t.lists, &list{ordered: n.DataAtom == atom.Ol})
		t.children(n)
		t.lists = t.lists[:len(t.lists)-1]
		t.block(blockBreaks[n.DataAtom])
		return
	case atom.Li:
		t.block(1)
		t.prefix = t.itemPrefix()
		t.children(n)
		t.block(1)
		return
	}

	if b, ok := blockBreaks[n.DataAtom]; ok {
		t.block(b)
		t.children(n)
		t.block(b)
		return
	}
	t.children(n)
}

func (t *textWriter) children(n *html.Node) {
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		t.walk(c)
	}
}

func (t *textWriter) itemPrefix() string {
	if len(t.lists) == 0 {
		return " * "
	}
	l := t.lists[len(t.lists)-1]
	if !l.ordered {
		return " * "
	}
	l.n++
	return " " + strconv.Itoa(l.n) + ". "
}

// text appends s to the current block, collapsing HTML whitespace.
func (t *textWriter) text(s string) {
	if t.heading > 0 && t.opts.UppercaseHeadings != nil && *t.opts.UppercaseHeadings {
		s = t.upper.String(s)
	}
	for _, r := range s {
		switch r {
		case ' ', '\t', '\n', '\r', '\f':
			if t.inline.Len() > 0 && !t.endsWithSpace() {
				t.inline.WriteByte(' ')
			}
		default:
			t.inline.WriteRune(r)
		}
	}
}

func (t *textWriter) endsWithSpace() bool {
	s := t.inline.String()
	return s[len(s)-1] == ' ' || s[len(s)-1] == '\n'
}

// link writes the link text followed by the bracketed href, or the bare
// href when the link has no text.
func (t *textWriter) link(n *html.Node) {
	start := t.inline.Len()
	t.children(n)
	label := strings.TrimSpace(t.inline.String()[start:])

	href := strings.TrimSpace(attr(n, "href"))
	if href == "" || strings.HasPrefix(href, "#") {
		return
	}
	if label == "" {
		t.text(href)
		return
	}
	if href == label || strings.TrimPrefix(href, "mailto:") == label {
		return
	}
	if !t.endsWithSpace() {
		t.inline.WriteByte(' ')
	}
	t.inline.WriteString(t.opts.LinkBrackets[0] + href + t.opts.LinkBrackets[1])
}

// block ends the current block and requests at least breaks line breaks
// before the next one.
func (t *textWriter) block(breaks int) {
	t.flush()
	t.pending = max(t.pending, breaks)
}

// flush writes the collected inline text, wrapped, to the output.
func (t *textWriter) flush() {
	text := t.inline.String()
	t.inline.Reset()
	prefix := t.prefix
	t.prefix = ""

	var lines []string
	for _, l := range strings.Split(text, "\n") {
		l = strings.Trim(l, " ")
		if l == "" {
			continue
		}
		lines = append(lines, wrap(l, t.opts.WordWrap-utf8.RuneCountInString(prefix), t.opts.WordWrap > 0)...)
	}
	if len(lines) == 0 {
		return
	}

	indent := strings.Repeat(" ", utf8.RuneCountInString(prefix))
	for i, l := range lines {
		if i == 0 {
			t.writeLine(prefix + l)
			continue
		}
		t.out.WriteByte('\n')
		t.out.WriteString(indent + l)
	}
}

func (t *textWriter) writeLine(s string) {
	if t.out.Len() > 0 {
		t.out.WriteString(strings.Repeat("\n", max(t.pending, 1)))
	}
	t.out.WriteString(s)
	t.pending = 0
}

// wrap breaks s into lines of at most width runes. Words longer than the
// width are kept whole.
func wrap(s string, width int, enabled bool) []string {
	if !enabled || utf8.RuneCountInString(s) <= width {
		return []string{s}
	}
	var (
		lines []string
		cur   strings.Builder
		n     int
	)
	for _, w := range strings.Split(s, " ") {
		if w == "" {
			continue
		}
		wl := utf8.RuneCountInString(w)
		if n > 0 && n+1+wl > width {
			lines = append(lines, cur.String())
			cur.Reset()
			n = 0
		}
		if n > 0 {
			cur.WriteByte(' ')
			n++
		}
		cur.WriteString(w)
		n += wl
	}
	if n > 0 {
		lines = append(lines, cur.String())
	}
	return lines
}

func attr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}

package render

import (
	"context"
	"io"
	"strings"

	"github.com/a-h/templ"

	"github.com/dmitrymomot/mailjsx/pkg/async"
)

// Doctype precedes every HTML document. Email clients handle XHTML 1.0
// Transitional most consistently.
const Doctype = `<!DOCTYPE html PUBLIC "-//W3C//DTD XHTML 1.0 Transitional//EN" "http://www.w3.org/TR/xhtml1/DTD/xhtml1-transitional.dtd">`

// Render renders node to an HTML document, or to plain text when
// opts.PlainText is set. A nil opts renders compact HTML.
//
// node is usually an *element.Element but may be any renderable value:
// strings, numbers, slices of nodes, templ.Component values.
func Render(node any, opts *Options) (string, error) {
	return render(context.Background(), node, opts)
}

// RenderAsync runs Render in the background. Component rendering stops
// with ctx.Err() once ctx is done.
func RenderAsync(ctx context.Context, node any, opts *Options) *async.Future[string] {
	return async.Run(ctx, func(ctx context.Context) (string, error) {
		return render(ctx, node, opts)
	})
}

// Component adapts node for use inside templ templates. It writes the
// markup without the doctype, or plain text when opts.PlainText is set.
func Component(node any, opts *Options) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		o := optionsOrDefault(opts)
		if err := o.validate(); err != nil {
			return err
		}
		out, err := markup(ctx, node, o.Pretty)
		if err != nil {
			return err
		}
		if o.PlainText {
			if out, err = toPlainText(out, o); err != nil {
				return err
			}
		}
		_, err = io.WriteString(w, out)
		return err
	})
}

func optionsOrDefault(opts *Options) Options {
	if opts == nil {
		return Options{}
	}
	return *opts
}

func render(ctx context.Context, node any, opts *Options) (string, error) {
	o := optionsOrDefault(opts)
	if err := o.validate(); err != nil {
		return "", err
	}

	out, err := markup(ctx, node, o.Pretty)
	if err != nil {
		return "", err
	}

	switch {
	case o.PlainText:
		return toPlainText(out, o)
	case o.Pretty:
		return Doctype + "\n" + out, nil
	}
	return Doctype + out, nil
}

// markup renders node to HTML without the doctype.
func markup(ctx context.Context, node any, pretty bool) (string, error) {
	r := &resolver{ctx: ctx}
	nodes, err := r.resolve(node, 0)
	if err != nil {
		return "", err
	}

	var b strings.Builder
	w := &htmlWriter{b: &b, pretty: pretty}
	for _, n := range nodes {
		w.node(n, 0)
	}
	if pretty {
		return strings.TrimRight(b.String(), "\n"), nil
	}
	return b.String(), nil
}

type htmlWriter struct {
	b      *strings.Builder
	pretty bool
}

func (w *htmlWriter) line(depth int) {
	if w.pretty {
		w.b.WriteString(strings.Repeat("  ", depth))
	}
}

func (w *htmlWriter) end() {
	if w.pretty {
		w.b.WriteByte('\n')
	}
}

func (w *htmlWriter) node(n *node, depth int) {
	w.line(depth)
	w.inline(n, !w.pretty || n.kind != tagNode || inlineChildren(n), depth)
	w.end()
}

// inline writes n. With flat set, n and its subtree go on the current line;
// otherwise each child starts on its own indented line.
func (w *htmlWriter) inline(n *node, flat bool, depth int) {
	switch n.kind {
	case textNode:
		w.b.WriteString(escapeHTML(n.text))
		return
	case rawNode:
		w.b.WriteString(n.text)
		return
	}

	w.b.WriteString("<")
	w.b.WriteString(n.tag)
	w.b.WriteString(n.attrs)
	if isVoid(n.tag) {
		w.b.WriteString("/>")
		return
	}
	w.b.WriteString(">")

	if flat {
		for _, c := range n.children {
			w.inline(c, true, depth)
		}
	} else {
		w.end()
		for _, c := range n.children {
			w.node(c, depth+1)
		}
		w.line(depth)
	}
	w.b.WriteString("</")
	w.b.WriteString(n.tag)
	w.b.WriteString(">")
}

// inlineChildren reports whether n holds no element children, so pretty
// output keeps it on one line.
func inlineChildren(n *node) bool {
	for _, c := range n.children {
		if c.kind == tagNode {
			return false
		}
	}
	return true
}

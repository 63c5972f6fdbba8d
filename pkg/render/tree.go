package render

import (
	"context"
	"fmt"
	"reflect"
	"strings"

	"github.com/a-h/templ"

	"github.com/dmitrymomot/mailjsx/pkg/element"
)

// maxDepth bounds component nesting so a self-rendering component fails
// instead of exhausting the stack.
const maxDepth = 512

type nodeKind int

const (
	textNode nodeKind = iota
	rawNode
	tagNode
)

// node is a host-level node: components are expanded and fragments
// flattened, so only tags, text and raw markup remain.
type node struct {
	kind     nodeKind
	tag      string
	attrs    string
	text     string
	children []*node
}

// resolver expands an element tree into nodes.
type resolver struct {
	ctx context.Context
}

func (r *resolver) resolve(v any, depth int) ([]*node, error) {
	if depth > maxDepth {
		return nil, fmt.Errorf("%w: maximum component depth of %d exceeded", ErrRender, maxDepth)
	}

	switch x := v.(type) {
	case nil, bool:
		return nil, nil
	case string:
		if x == "" {
			return nil, nil
		}
		return []*node{{kind: textNode, text: x}}, nil
	case []byte:
		return r.resolve(string(x), depth)
	case *element.Element:
		if x == nil {
			return nil, nil
		}
		return r.resolveElement(x, depth)
	case templ.Component:
		var b strings.Builder
		if err := x.Render(r.ctx, &b); err != nil {
			return nil, err
		}
		return []*node{{kind: rawNode, text: b.String()}}, nil
	case element.Callable:
		// Functions are not valid children and render nothing.
		return nil, nil
	}

	if element.IsNullish(v) {
		return nil, nil
	}
	if s, ok := element.Stringify(v); ok {
		return []*node{{kind: textNode, text: s}}, nil
	}
	if _, ok := element.Primitive(v).(bool); ok {
		return nil, nil
	}

	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Slice, reflect.Array:
		var out []*node
		for _, it := range element.Children(element.Props{"children": v}) {
			nodes, err := r.resolve(it, depth)
			if err != nil {
				return nil, err
			}
			out = appendNodes(out, nodes...)
		}
		return out, nil
	case reflect.Func:
		return nil, nil
	}
	return nil, fmt.Errorf("%w: objects are not valid as a child (found: %s)", ErrRender, describe(v))
}

func (r *resolver) resolveElement(el *element.Element, depth int) ([]*node, error) {
	switch t := el.Type.(type) {
	case string:
		return r.resolveTag(t, el.Props, depth)
	case element.Component:
		if err := r.ctx.Err(); err != nil {
			return nil, err
		}
		out, err := t.Render(el.Props)
		if err != nil {
			return nil, err
		}
		return r.resolve(out, depth+1)
	}
	if el.Type == element.Fragment {
		return r.resolveChildren(el.Props, depth)
	}
	return nil, fmt.Errorf("%w: element type is invalid: %s", ErrRender, el.TypeName())
}

func (r *resolver) resolveChildren(props element.Props, depth int) ([]*node, error) {
	var out []*node
	for _, c := range element.Children(props) {
		nodes, err := r.resolve(c, depth)
		if err != nil {
			return nil, err
		}
		out = appendNodes(out, nodes...)
	}
	return out, nil
}

func (r *resolver) resolveTag(tag string, props element.Props, depth int) ([]*node, error) {
	n := &node{kind: tagNode, tag: tag, attrs: renderAttrs(props)}

	inner, hasInner, err := innerHTML(props)
	if err != nil {
		return nil, fmt.Errorf("<%s>: %w", tag, err)
	}
	_, hasChildren := props["children"]
	hasChildren = hasChildren && !element.IsNullish(props["children"])

	switch {
	case isVoid(tag) && (hasChildren || hasInner):
		return nil, fmt.Errorf("%w: %s is a void element tag and must neither have children nor use dangerouslySetInnerHTML", ErrRender, tag)
	case hasChildren && hasInner:
		return nil, fmt.Errorf("%w: <%s> can only set one of children or dangerouslySetInnerHTML", ErrRender, tag)
	case hasInner:
		n.children = []*node{{kind: rawNode, text: inner}}
	default:
		if n.children, err = r.resolveChildren(props, depth); err != nil {
			return nil, err
		}
	}
	return []*node{n}, nil
}

// innerHTML reads dangerouslySetInnerHTML.__html.
func innerHTML(props element.Props) (string, bool, error) {
	v, ok := props["dangerouslySetInnerHTML"]
	if !ok || element.IsNullish(v) {
		return "", false, nil
	}
	m, ok := element.ToMap(v)
	if !ok {
		return "", false, fmt.Errorf("%w: dangerouslySetInnerHTML must be an object of the form {__html: ...}", ErrRender)
	}
	raw, ok := m["__html"]
	if !ok {
		return "", false, fmt.Errorf("%w: dangerouslySetInnerHTML must be an object of the form {__html: ...}", ErrRender)
	}
	if element.IsNullish(raw) {
		return "", false, nil
	}
	return element.ToString(raw), true, nil
}

// appendNodes merges adjacent text nodes.
func appendNodes(dst []*node, nodes ...*node) []*node {
	for _, n := range nodes {
		if n.kind == textNode && len(dst) > 0 && dst[len(dst)-1].kind == textNode {
			last := *dst[len(dst)-1]
			last.text += n.text
			dst[len(dst)-1] = &last
			continue
		}
		dst = append(dst, n)
	}
	return dst
}

func describe(v any) string {
	if m, ok := element.ToMap(v); ok {
		keys := make([]string, 0, len(m))
		for k := range m {
			keys = append(keys, k)
		}
		return "object with keys {" + strings.Join(sortedStrings(keys), ", ") + "}"
	}
	return fmt.Sprintf("%T", v)
}

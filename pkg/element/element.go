package element

import (
	"fmt"
	"reflect"
)

// Props holds the attributes of an element. Children live under the
// "children" key: absent for no children, the bare value for exactly one
// child and a []any for several.
type Props map[string]any

// Element is a node of the component tree produced by evaluating a template.
// Type is an intrinsic tag name (string), a Component or Fragment.
type Element struct {
	Type  any
	Props Props
	Key   string
}

type fragmentType struct{}

func (fragmentType) String() string { return "Fragment" }

// Fragment groups children without emitting a wrapper element.
var Fragment = fragmentType{}

type undefinedType struct{}

func (undefinedType) String() string { return "undefined" }

// Undefined is the value of missing properties, unset parameters and
// the `undefined` literal. It renders as nothing, like nil.
var Undefined = undefinedType{}

// Callable is implemented by template-level functions such as arrow closures.
type Callable interface {
	Call(args ...any) (any, error)
}

// CreateElement builds an element of type typ. The props map is copied, so
// the caller keeps ownership of it. A "key" prop is lifted onto Element.Key.
func CreateElement(typ any, props Props, children ...any) (*Element, error) {
	switch t := typ.(type) {
	case string:
		if t == "" {
			return nil, fmt.Errorf("%w: empty tag name", ErrInvalidType)
		}
	case fragmentType:
	default:
		c, ok := AsComponent(typ)
		if !ok {
			return nil, fmt.Errorf("%w: expected a string (for built-in components) or a component but got: %s", ErrInvalidType, describe(typ))
		}
		typ = c
	}

	p := make(Props, len(props)+1)
	for k, v := range props {
		p[k] = v
	}

	var key string
	if k, ok := p["key"]; ok {
		delete(p, "key")
		if !IsNullish(k) {
			key = ToString(k)
		}
	}

	switch len(children) {
	case 0:
	case 1:
		p["children"] = children[0]
	default:
		p["children"] = append([]any(nil), children...)
	}

	return &Element{Type: typ, Props: p, Key: key}, nil
}

// TypeName returns a readable name of the element type.
func (e *Element) TypeName() string {
	switch t := e.Type.(type) {
	case string:
		return t
	case Component:
		return t.Name()
	case fragmentType:
		return t.String()
	}
	return fmt.Sprintf("%T", e.Type)
}

// Children flattens the children prop into a slice. Nested arrays of any
// kind are expanded in place; nil and Undefined entries are kept so that
// renderers decide how to treat them.
func Children(props Props) []any {
	c, ok := props["children"]
	if !ok {
		return nil
	}
	return flatten(nil, c)
}

func flatten(dst []any, v any) []any {
	switch x := v.(type) {
	case []any:
		for _, it := range x {
			dst = flatten(dst, it)
		}
		return dst
	case nil, string, *Element:
		return append(dst, v)
	}
	rv := reflect.ValueOf(v)
	if rv.Kind() == reflect.Slice || rv.Kind() == reflect.Array {
		if rv.Type().Elem().Kind() == reflect.Uint8 {
			return append(dst, v)
		}
		for i := 0; i < rv.Len(); i++ {
			dst = flatten(dst, rv.Index(i).Interface())
		}
		return dst
	}
	return append(dst, v)
}

func describe(v any) string {
	switch v.(type) {
	case nil:
		return "null"
	case undefinedType:
		return "undefined"
	}
	return fmt.Sprintf("%T", v)
}

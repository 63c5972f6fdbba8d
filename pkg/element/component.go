package element

// Component renders props into a node: an *Element, a string, a number,
// a slice of nodes or nil.
type Component interface {
	Name() string
	Render(props Props) (any, error)
}

// ComponentFunc adapts a plain function to the Component interface.
type ComponentFunc func(props Props) (any, error)

func (f ComponentFunc) Name() string                    { return "Component" }
func (f ComponentFunc) Render(props Props) (any, error) { return f(props) }

type namedComponent struct {
	name string
	fn   ComponentFunc
}

func (c namedComponent) Name() string                    { return c.name }
func (c namedComponent) Render(props Props) (any, error) { return c.fn(props) }

// NewComponent returns a Component named name.
func NewComponent(name string, fn ComponentFunc) Component {
	return namedComponent{name: name, fn: fn}
}

// AsComponent reports whether v can be used as an element type and returns
// it as a Component. Besides Component values it accepts the function shapes
// callers tend to put into a scope.
func AsComponent(v any) (Component, bool) {
	switch fn := v.(type) {
	case Component:
		return fn, true
	case func(Props) (any, error):
		return ComponentFunc(fn), true
	case func(Props) any:
		return ComponentFunc(func(p Props) (any, error) { return fn(p), nil }), true
	case func(map[string]any) (any, error):
		return ComponentFunc(func(p Props) (any, error) { return fn(p) }), true
	case func(map[string]any) any:
		return ComponentFunc(func(p Props) (any, error) { return fn(p), nil }), true
	}
	return nil, false
}

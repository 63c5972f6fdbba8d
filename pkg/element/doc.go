// Package element defines the in-memory component tree that templates
// evaluate to and renderers consume.
//
// An Element pairs a type (an intrinsic tag name, a Component or Fragment)
// with its Props. CreateElement mirrors the createElement call of JSX
// runtimes: it validates the type, copies props, lifts the key and stores
// children under Props["children"].
//
// Components are plain Go values implementing Component. They are invoked
// lazily by the renderer, never by CreateElement:
//
//	greeting := element.NewComponent("Greeting", func(p element.Props) (any, error) {
//	    return element.CreateElement("p", nil, "Hello, ", p["name"])
//	})
//
// The package also carries the small value helpers shared by the evaluator
// and the renderer (Undefined, Stringify, ToString, ToMap) so both agree on
// how primitives turn into text.
package element

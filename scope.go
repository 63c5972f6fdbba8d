package mailjsx

import (
	"github.com/dmitrymomot/mailjsx/pkg/components"
	"github.com/dmitrymomot/mailjsx/pkg/element"
)

// Scope maps the names a template can reference to their values: data,
// components (element.Component or func(element.Props) any) and Go
// functions.
type Scope map[string]any

// RuntimeName is the scope name of the element runtime handle.
const RuntimeName = "React"

// BuildScope assembles the evaluation scope from three tiers in increasing
// priority: the runtime handle, every prebuilt component and the caller's
// names. A later tier shadows an earlier one. The result is a new map;
// custom is not modified.
func BuildScope(custom Scope) Scope {
	exports := components.Exports()
	scope := make(Scope, len(exports)+len(custom)+1)
	scope[RuntimeName] = element.Runtime()
	for k, v := range exports {
		scope[k] = v
	}
	for k, v := range custom {
		scope[k] = v
	}
	return scope
}

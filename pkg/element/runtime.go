package element

// Runtime returns the handle templates see under the name React.
// It exposes createElement and Fragment so that pre-compiled code and
// <React.Fragment> both resolve.
func Runtime() map[string]any {
	return map[string]any{
		"createElement": func(typ any, props Props, children ...any) (*Element, error) {
			return CreateElement(typ, props, children...)
		},
		"Fragment": Fragment,
	}
}

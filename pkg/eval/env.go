package eval

// env is a lexical environment. The caller's scope frame and the globals
// below it are never written to.
type env struct {
	vars   map[string]any
	parent *env
}

func (e *env) lookup(name string) (any, bool) {
	for f := e; f != nil; f = f.parent {
		if v, ok := f.vars[name]; ok {
			return v, true
		}
	}
	return nil, false
}

func (e *env) child(vars map[string]any) *env {
	return &env{vars: vars, parent: e}
}

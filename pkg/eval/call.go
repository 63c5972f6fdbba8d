package eval

import (
	"fmt"
	"math"
	"reflect"

	"github.com/dmitrymomot/mailjsx/pkg/element"
)

var errorType = reflect.TypeOf((*error)(nil)).Elem()

func callValue(fn any, args []any, offset int, name string) (any, error) {
	if c, ok := fn.(element.Callable); ok {
		return c.Call(args...)
	}
	rv := reflect.ValueOf(fn)
	if rv.Kind() != reflect.Func || rv.IsNil() {
		return nil, typeErrorf(offset, "%s is not a function", name)
	}
	return reflectCallable{fn: rv, name: name}.Call(args...)
}

// reflectCallable calls a Go function supplied through the scope. Arguments
// are converted to the parameter types; surplus arguments are dropped the way
// ECMAScript ignores them.
type reflectCallable struct {
	fn   reflect.Value
	name string
}

func (c reflectCallable) Call(args ...any) (_ any, retErr error) {
	defer func() {
		if r := recover(); r != nil {
			retErr = fmt.Errorf("%w: %s: %v", ErrPanic, c.name, r)
		}
	}()

	in, err := c.buildArgs(args)
	if err != nil {
		return nil, err
	}

	out := c.fn.Call(in)
	if n := len(out); n > 0 && out[n-1].Type() == errorType {
		if !out[n-1].IsNil() {
			return nil, out[n-1].Interface().(error) //nolint:forcetypeassert
		}
		out = out[:n-1]
	}
	switch len(out) {
	case 0:
		return element.Undefined, nil
	case 1:
		return out[0].Interface(), nil
	}
	return nil, typeErrorf(0, "%s returns %d values; expected a value and an optional error", c.name, len(out))
}

func (c reflectCallable) buildArgs(args []any) ([]reflect.Value, error) {
	ft := c.fn.Type()
	fixed := ft.NumIn()
	if ft.IsVariadic() {
		fixed--
	}
	if len(args) < fixed {
		return nil, typeErrorf(0, "too few arguments to %s: expected %d but got %d", c.name, fixed, len(args))
	}

	in := make([]reflect.Value, 0, len(args))
	for i := 0; i < fixed; i++ {
		v, err := convertArg(args[i], ft.In(i))
		if err != nil {
			return nil, typeErrorf(0, "argument %d to %s: %v", i, c.name, err)
		}
		in = append(in, v)
	}
	if ft.IsVariadic() {
		elem := ft.In(fixed).Elem()
		for i := fixed; i < len(args); i++ {
			v, err := convertArg(args[i], elem)
			if err != nil {
				return nil, typeErrorf(0, "argument %d to %s: %v", i, c.name, err)
			}
			in = append(in, v)
		}
	}
	return in, nil
}

func isNilable(t reflect.Type) bool {
	switch t.Kind() {
	case reflect.Chan, reflect.Func, reflect.Interface, reflect.Map, reflect.Pointer, reflect.Slice:
		return true
	}
	return false
}

func isNumberKind(k reflect.Kind) bool {
	switch k {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		return true
	}
	return false
}

// convertNumber converts f to a numeric type. Integer types accept only
// integral values within their range; float32 rejects values it cannot hold.
func convertNumber(f float64, t reflect.Type) (reflect.Value, error) {
	v := reflect.New(t).Elem()
	switch t.Kind() {
	case reflect.Float64:
		v.SetFloat(f)
		return v, nil
	case reflect.Float32:
		if !math.IsInf(f, 0) && v.OverflowFloat(f) {
			return reflect.Value{}, fmt.Errorf("cannot use %s as %s: out of range", element.FormatNumber(f), t)
		}
		v.SetFloat(f)
		return v, nil
	}

	if math.IsNaN(f) || math.IsInf(f, 0) || f != math.Trunc(f) {
		return reflect.Value{}, fmt.Errorf("cannot use %s as %s: not an integer", element.FormatNumber(f), t)
	}
	switch t.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		if f < -(1<<63) || f >= 1<<63 || v.OverflowInt(int64(f)) {
			return reflect.Value{}, fmt.Errorf("cannot use %s as %s: out of range", element.FormatNumber(f), t)
		}
		v.SetInt(int64(f))
	default:
		if f < 0 || f >= 1<<64 || v.OverflowUint(uint64(f)) {
			return reflect.Value{}, fmt.Errorf("cannot use %s as %s: out of range", element.FormatNumber(f), t)
		}
		v.SetUint(uint64(f))
	}
	return v, nil
}

// convertArg converts a template value to t.
func convertArg(v any, t reflect.Type) (reflect.Value, error) {
	if v == nil || v == element.Undefined {
		if isNilable(t) {
			return reflect.Zero(t), nil
		}
		return reflect.Value{}, fmt.Errorf("cannot use %s as %s", describe(v), t)
	}

	rv := reflect.ValueOf(v)
	if rv.Type().AssignableTo(t) {
		return rv, nil
	}

	switch p := element.Primitive(v).(type) {
	case float64:
		if isNumberKind(t.Kind()) {
			return convertNumber(p, t)
		}
	case string:
		if t.Kind() == reflect.String {
			return reflect.ValueOf(p).Convert(t), nil
		}
	case bool:
		if t.Kind() == reflect.Bool {
			return reflect.ValueOf(p).Convert(t), nil
		}
	}

	switch t.Kind() {
	case reflect.Slice:
		items, ok := toArray(v)
		if !ok {
			break
		}
		out := reflect.MakeSlice(t, len(items), len(items))
		for i, it := range items {
			ev, err := convertArg(it, t.Elem())
			if err != nil {
				return reflect.Value{}, err
			}
			out.Index(i).Set(ev)
		}
		return out, nil
	case reflect.Map:
		m, ok := element.ToMap(v)
		if !ok || t.Key().Kind() != reflect.String {
			break
		}
		out := reflect.MakeMapWithSize(t, len(m))
		for k, it := range m {
			ev, err := convertArg(it, t.Elem())
			if err != nil {
				return reflect.Value{}, err
			}
			out.SetMapIndex(reflect.ValueOf(k).Convert(t.Key()), ev)
		}
		return out, nil
	}

	return reflect.Value{}, fmt.Errorf("cannot use %s as %s", describe(v), t)
}

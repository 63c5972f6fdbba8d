package eval

import (
	"reflect"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf16"
	"unicode/utf8"

	"github.com/dmitrymomot/mailjsx/pkg/element"
)

// getMember reads obj[key]. Missing properties read as Undefined; reading
// from null or undefined is a TypeError.
func getMember(obj any, key string, offset int) (any, error) {
	if element.IsNullish(obj) && !isNilMapOrSlice(obj) {
		return nil, typeErrorf(offset, "Cannot read properties of %s (reading '%s')", describe(obj), key)
	}

	switch o := obj.(type) {
	case *element.Element:
		switch key {
		case "type":
			return o.Type, nil
		case "props":
			return o.Props, nil
		case "key":
			if o.Key == "" {
				return nil, nil
			}
			return o.Key, nil
		}
		return element.Undefined, nil
	case map[string]any:
		if v, ok := o[key]; ok {
			return v, nil
		}
		return objectMethod(obj, key), nil
	case element.Props:
		if v, ok := o[key]; ok {
			return v, nil
		}
		return objectMethod(obj, key), nil
	}

	switch p := element.Primitive(obj).(type) {
	case string:
		return stringMember(p, key), nil
	case float64:
		return numberMember(p, key), nil
	case bool:
		return objectMethod(obj, key), nil
	}

	rv := reflect.ValueOf(obj)
	switch rv.Kind() {
	case reflect.Map:
		if rv.Type().Key().Kind() != reflect.String {
			return element.Undefined, nil
		}
		mv := rv.MapIndex(reflect.ValueOf(key).Convert(rv.Type().Key()))
		if !mv.IsValid() {
			return objectMethod(obj, key), nil
		}
		return mv.Interface(), nil
	case reflect.Slice, reflect.Array:
		items, _ := toArray(obj)
		return arrayMember(items, key), nil
	}

	if v, ok := structMember(rv, key); ok {
		return v, nil
	}
	return objectMethod(obj, key), nil
}

func isNilMapOrSlice(v any) bool {
	rv := reflect.ValueOf(v)
	return rv.IsValid() && (rv.Kind() == reflect.Map || rv.Kind() == reflect.Slice)
}

// structMember resolves key against exported fields (by name, capitalized
// name or json tag) and exported methods of a struct or pointer to struct.
func structMember(rv reflect.Value, key string) (any, bool) {
	if !rv.IsValid() || key == "" {
		return nil, false
	}
	recv := rv
	for rv.Kind() == reflect.Pointer || rv.Kind() == reflect.Interface {
		if rv.IsNil() {
			return nil, false
		}
		rv = rv.Elem()
	}
	exported := capitalize(key)

	if rv.Kind() == reflect.Struct {
		t := rv.Type()
		for i := 0; i < t.NumField(); i++ {
			f := t.Field(i)
			if !f.IsExported() {
				continue
			}
			if f.Name == key || f.Name == exported || jsonName(f) == key {
				return rv.Field(i).Interface(), true
			}
		}
	}

	for _, name := range []string{key, exported} {
		if m := recv.MethodByName(name); m.IsValid() {
			return m.Interface(), true
		}
	}
	return nil, false
}

// structFields lists the exported fields of a struct under their json names.
func structFields(v any) (map[string]any, bool) {
	rv := reflect.ValueOf(v)
	for rv.Kind() == reflect.Pointer {
		if rv.IsNil() {
			return nil, false
		}
		rv = rv.Elem()
	}
	if rv.Kind() != reflect.Struct {
		return nil, false
	}
	t := rv.Type()
	out := make(map[string]any, t.NumField())
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		if !f.IsExported() {
			continue
		}
		name := jsonName(f)
		if name == "" {
			name = f.Name
		}
		out[name] = rv.Field(i).Interface()
	}
	return out, true
}

func jsonName(f reflect.StructField) string {
	tag := f.Tag.Get("json")
	if tag == "" || tag == "-" {
		return ""
	}
	name, _, _ := strings.Cut(tag, ",")
	return name
}

func capitalize(s string) string {
	r, n := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToUpper(r)) + s[n:]
}

// toArray converts slices and arrays to []any.
func toArray(v any) ([]any, bool) {
	if items, ok := v.([]any); ok {
		return items, true
	}
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array {
		return nil, false
	}
	out := make([]any, rv.Len())
	for i := range out {
		out[i] = rv.Index(i).Interface()
	}
	return out, true
}

// builtin is a method bound to its receiver.
type builtin struct {
	name string
	fn   func(args []any) (any, error)
}

func (b *builtin) Call(args ...any) (any, error) { return b.fn(args) }
func (b *builtin) String() string               { return "function " + b.name + "() { [native code] }" }

func method(name string, fn func(args []any) (any, error)) *builtin {
	return &builtin{name: name, fn: fn}
}

func objectMethod(recv any, key string) any {
	if key == "toString" {
		return method(key, func([]any) (any, error) { return element.ToString(recv), nil })
	}
	return element.Undefined
}

func arg(args []any, i int) any {
	if i < len(args) {
		return args[i]
	}
	return element.Undefined
}

func index(key string, n int) (int, bool) {
	i, err := strconv.Atoi(key)
	if err != nil || i < 0 || i >= n || strconv.Itoa(i) != key {
		return 0, false
	}
	return i, true
}

// relIndex resolves a possibly negative slice bound against n.
func relIndex(v any, n, def int) int {
	if v == element.Undefined {
		return def
	}
	i := int(toNumber(v))
	if i < 0 {
		i += n
	}
	return max(0, min(i, n))
}

func callable(v any, name string) (element.Callable, error) {
	if c, ok := v.(element.Callable); ok {
		return c, nil
	}
	if reflect.ValueOf(v).Kind() == reflect.Func {
		return reflectCallable{fn: reflect.ValueOf(v), name: name}, nil
	}
	return nil, typeErrorf(0, "%s is not a function", describe(v))
}

func arrayMember(items []any, key string) any {
	if i, ok := index(key, len(items)); ok {
		return items[i]
	}
	switch key {
	case "length":
		return float64(len(items))
	case "map", "filter", "find", "some", "every":
		return method(key, func(args []any) (any, error) {
			fn, err := callable(arg(args, 0), "callback")
			if err != nil {
				return nil, err
			}
			return iterate(key, items, fn)
		})
	case "join":
		return method(key, func(args []any) (any, error) {
			sep := ","
			if s := arg(args, 0); s != element.Undefined {
				sep = element.ToString(s)
			}
			return joinItems(items, sep), nil
		})
	case "includes":
		return method(key, func(args []any) (any, error) {
			x := arg(args, 0)
			for _, it := range items {
				if strictEquals(it, x) {
					return true, nil
				}
			}
			return false, nil
		})
	case "indexOf":
		return method(key, func(args []any) (any, error) {
			x := arg(args, 0)
			for i, it := range items {
				if strictEquals(it, x) {
					return float64(i), nil
				}
			}
			return float64(-1), nil
		})
	case "slice":
		return method(key, func(args []any) (any, error) {
			start := relIndex(arg(args, 0), len(items), 0)
			end := relIndex(arg(args, 1), len(items), len(items))
			if start >= end {
				return []any{}, nil
			}
			return append([]any(nil), items[start:end]...), nil
		})
	}
	return objectMethod(items, key)
}

func joinItems(items []any, sep string) string {
	parts := make([]string, len(items))
	for i, it := range items {
		if !element.IsNullish(it) {
			parts[i] = element.ToString(it)
		}
	}
	return strings.Join(parts, sep)
}

func iterate(kind string, items []any, fn element.Callable) (any, error) {
	var out []any
	if kind == "map" {
		out = make([]any, 0, len(items))
	}
	for i, it := range items {
		res, err := fn.Call(it, float64(i))
		if err != nil {
			return nil, err
		}
		switch kind {
		case "map":
			out = append(out, res)
		case "filter":
			if truthy(res) {
				out = append(out, it)
			}
		case "find":
			if truthy(res) {
				return it, nil
			}
		case "some":
			if truthy(res) {
				return true, nil
			}
		case "every":
			if !truthy(res) {
				return false, nil
			}
		}
	}
	switch kind {
	case "find":
		return element.Undefined, nil
	case "some":
		return false, nil
	case "every":
		return true, nil
	case "filter":
		if out == nil {
			out = []any{}
		}
	}
	return out, nil
}

func stringMember(s, key string) any {
	units := utf16.Encode([]rune(s))
	if i, ok := index(key, len(units)); ok {
		return string(utf16.Decode(units[i : i+1]))
	}
	str := func(fn func(args []any) string) any {
		return method(key, func(args []any) (any, error) { return fn(args), nil })
	}
	switch key {
	case "length":
		return float64(len(units))
	case "toUpperCase":
		return str(func([]any) string { return strings.ToUpper(s) })
	case "toLowerCase":
		return str(func([]any) string { return strings.ToLower(s) })
	case "trim":
		return str(func([]any) string { return strings.TrimSpace(s) })
	case "replace":
		return str(func(args []any) string {
			pattern := element.ToString(arg(args, 0))
			i := strings.Index(s, pattern)
			if i < 0 {
				return s
			}
			repl := expandReplacement(element.ToString(arg(args, 1)), s, pattern, i)
			return s[:i] + repl + s[i+len(pattern):]
		})
	case "includes", "startsWith", "endsWith":
		return method(key, func(args []any) (any, error) {
			sub := element.ToString(arg(args, 0))
			switch key {
			case "startsWith":
				return strings.HasPrefix(s, sub), nil
			case "endsWith":
				return strings.HasSuffix(s, sub), nil
			}
			return strings.Contains(s, sub), nil
		})
	case "split":
		return method(key, func(args []any) (any, error) {
			sep := arg(args, 0)
			if sep == element.Undefined {
				return []any{s}, nil
			}
			parts := strings.Split(s, element.ToString(sep))
			out := make([]any, len(parts))
			for i, p := range parts {
				out[i] = p
			}
			return out, nil
		})
	}
	return objectMethod(s, key)
}

// expandReplacement substitutes the $$, $&, $` and $' patterns of
// String.prototype.replace for a match of pattern at index i of s.
func expandReplacement(repl, s, pattern string, i int) string {
	if !strings.Contains(repl, "$") {
		return repl
	}
	var b strings.Builder
	for j := 0; j < len(repl); j++ {
		if repl[j] != '$' || j+1 == len(repl) {
			b.WriteByte(repl[j])
			continue
		}
		switch repl[j+1] {
		case '$':
			b.WriteByte('$')
		case '&':
			b.WriteString(pattern)
		case '`':
			b.WriteString(s[:i])
		case '\'':
			b.WriteString(s[i+len(pattern):])
		default:
			b.WriteByte('$')
			continue
		}
		j++
	}
	return b.String()
}

func numberMember(f float64, key string) any {
	if key == "toFixed" {
		return method(key, func(args []any) (any, error) {
			digits := 0
			if d := arg(args, 0); d != element.Undefined {
				digits = int(toNumber(d))
			}
			if digits < 0 || digits > 100 {
				return nil, typeErrorf(0, "toFixed() digits argument must be between 0 and 100")
			}
			return strconv.FormatFloat(f, 'f', digits, 64), nil
		})
	}
	return objectMethod(f, key)
}

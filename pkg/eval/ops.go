package eval

import (
	"math"
	"reflect"
	"strconv"
	"strings"

	"github.com/dmitrymomot/mailjsx/pkg/element"
)

// truthy follows ECMAScript ToBoolean.
func truthy(v any) bool {
	if element.IsNullish(v) {
		return false
	}
	switch x := element.Primitive(v).(type) {
	case bool:
		return x
	case float64:
		return x != 0 && !math.IsNaN(x)
	case string:
		return x != ""
	}
	return true
}

// toNumber follows ECMAScript ToNumber for the supported value kinds.
func toNumber(v any) float64 {
	switch x := element.Primitive(v).(type) {
	case nil:
		return 0
	case float64:
		return x
	case bool:
		if x {
			return 1
		}
		return 0
	case string:
		s := strings.TrimSpace(x)
		if s == "" {
			return 0
		}
		if strings.HasPrefix(s, "0x") || strings.HasPrefix(s, "0X") {
			n, err := strconv.ParseUint(s[2:], 16, 64)
			if err != nil {
				return math.NaN()
			}
			return float64(n)
		}
		switch s {
		case "Infinity", "+Infinity":
			return math.Inf(1)
		case "-Infinity":
			return math.Inf(-1)
		}
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return math.NaN()
		}
		return f
	}
	if items, ok := toArray(v); ok {
		switch len(items) {
		case 0:
			return 0
		case 1:
			return toNumber(items[0])
		}
	}
	return math.NaN()
}

func isPrimitive(v any) bool {
	switch element.Primitive(v).(type) {
	case nil, string, float64, bool:
		return true
	}
	return v == element.Undefined
}

func typeOf(v any) string {
	switch v.(type) {
	case nil:
		return "object"
	case element.Callable, element.Component:
		return "function"
	}
	if v == element.Undefined {
		return "undefined"
	}
	switch element.Primitive(v).(type) {
	case string:
		return "string"
	case float64:
		return "number"
	case bool:
		return "boolean"
	}
	if reflect.ValueOf(v).Kind() == reflect.Func {
		return "function"
	}
	return "object"
}

// strictEquals implements ===.
func strictEquals(a, b any) bool {
	pa, pb := element.Primitive(a), element.Primitive(b)
	switch x := pa.(type) {
	case nil:
		return pb == nil
	case float64:
		y, ok := pb.(float64)
		return ok && x == y
	case string:
		y, ok := pb.(string)
		return ok && x == y
	case bool:
		y, ok := pb.(bool)
		return ok && x == y
	}
	if a == element.Undefined || b == element.Undefined {
		return a == b
	}
	return sameReference(a, b)
}

func sameReference(a, b any) bool {
	ta, tb := reflect.TypeOf(a), reflect.TypeOf(b)
	if ta != tb {
		return false
	}
	if ta.Comparable() {
		return a == b
	}
	va, vb := reflect.ValueOf(a), reflect.ValueOf(b)
	switch va.Kind() {
	case reflect.Map, reflect.Slice, reflect.Func:
		return va.Pointer() == vb.Pointer() && (va.Kind() != reflect.Slice || va.Len() == vb.Len())
	}
	return false
}

// looseEquals implements ==.
func looseEquals(a, b any) bool {
	an, bn := a == nil || a == element.Undefined, b == nil || b == element.Undefined
	if an || bn {
		return an && bn
	}
	pa, pb := element.Primitive(a), element.Primitive(b)
	switch pa.(type) {
	case float64, string, bool:
		switch pb.(type) {
		case float64, string, bool:
			if reflect.TypeOf(pa) == reflect.TypeOf(pb) {
				return strictEquals(pa, pb)
			}
			return toNumber(pa) == toNumber(pb)
		}
		if !isPrimitive(b) {
			return strictEquals(pa, element.ToString(b))
		}
	}
	if !isPrimitive(a) && isPrimitive(b) {
		return looseEquals(element.ToString(a), b)
	}
	return strictEquals(a, b)
}

func binaryOp(op string, x, y any, offset int) (any, error) {
	switch op {
	case "+":
		if !isPrimitive(x) || !isPrimitive(y) {
			return element.ToString(x) + element.ToString(y), nil
		}
		_, xs := element.Primitive(x).(string)
		_, ys := element.Primitive(y).(string)
		if xs || ys {
			return element.ToString(x) + element.ToString(y), nil
		}
		return toNumber(x) + toNumber(y), nil
	case "-":
		return toNumber(x) - toNumber(y), nil
	case "*":
		return toNumber(x) * toNumber(y), nil
	case "/":
		return toNumber(x) / toNumber(y), nil
	case "%":
		return math.Mod(toNumber(x), toNumber(y)), nil
	case "===":
		return strictEquals(x, y), nil
	case "!==":
		return !strictEquals(x, y), nil
	case "==":
		return looseEquals(x, y), nil
	case "!=":
		return !looseEquals(x, y), nil
	case "<", ">", "<=", ">=":
		return compare(op, x, y), nil
	}
	return nil, typeErrorf(offset, "unsupported operator %s", op)
}

func compare(op string, x, y any) bool {
	xs, xok := element.Primitive(x).(string)
	ys, yok := element.Primitive(y).(string)
	if xok && yok {
		switch op {
		case "<":
			return xs < ys
		case ">":
			return xs > ys
		case "<=":
			return xs <= ys
		default:
			return xs >= ys
		}
	}
	a, b := toNumber(x), toNumber(y)
	if math.IsNaN(a) || math.IsNaN(b) {
		return false
	}
	switch op {
	case "<":
		return a < b
	case ">":
		return a > b
	case "<=":
		return a <= b
	default:
		return a >= b
	}
}

func describe(v any) string {
	switch {
	case v == nil:
		return "null"
	case v == element.Undefined:
		return "undefined"
	}
	if s, ok := element.Primitive(v).(string); ok {
		return strconv.Quote(s)
	}
	if isPrimitive(v) {
		return element.ToString(v)
	}
	return typeOf(v)
}

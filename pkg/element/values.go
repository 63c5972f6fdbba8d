package element

import (
	"math"
	"reflect"
	"strconv"
	"strings"
)

// IsNullish reports whether v is nil, a nil pointer or Undefined.
func IsNullish(v any) bool {
	switch v.(type) {
	case nil, undefinedType:
		return true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Interface, reflect.Map, reflect.Slice, reflect.Func:
		return rv.IsNil()
	}
	return false
}

// FormatNumber formats f the way ECMAScript's Number#toString does for the
// common cases: integers without a fraction, NaN, Infinity.
func FormatNumber(f float64) string {
	switch {
	case math.IsNaN(f):
		return "NaN"
	case math.IsInf(f, 1):
		return "Infinity"
	case math.IsInf(f, -1):
		return "-Infinity"
	case f == 0:
		return "0"
	}
	abs := math.Abs(f)
	if abs >= 1e-6 && abs < 1e21 {
		return strconv.FormatFloat(f, 'f', -1, 64)
	}
	s := strconv.FormatFloat(f, 'e', -1, 64)
	// Go pads the exponent ("1e+06"); ECMAScript does not.
	mant, exp, _ := strings.Cut(s, "e")
	sign := exp[:1]
	exp = strings.TrimLeft(exp[1:], "0")
	return mant + "e" + sign + exp
}

// Primitive converts Go numeric kinds to float64 and returns other values unchanged.
func Primitive(v any) any {
	switch x := v.(type) {
	case nil, string, bool, float64, undefinedType:
		return v
	case int:
		return float64(x)
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return float64(rv.Int())
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return float64(rv.Uint())
	case reflect.Float32, reflect.Float64:
		return rv.Float()
	case reflect.String:
		return rv.String()
	case reflect.Bool:
		return rv.Bool()
	}
	return v
}

// Stringify returns the text of a primitive value. The second result is
// false for values that have no textual form (objects, elements, nullish,
// booleans).
func Stringify(v any) (string, bool) {
	switch x := Primitive(v).(type) {
	case string:
		return x, true
	case float64:
		return FormatNumber(x), true
	}
	return "", false
}

// ToString converts any value to a string following ECMAScript's String().
func ToString(v any) string {
	switch x := Primitive(v).(type) {
	case nil:
		return "null"
	case undefinedType:
		return "undefined"
	case bool:
		return strconv.FormatBool(x)
	case string:
		return x
	case float64:
		return FormatNumber(x)
	case interface{ String() string }:
		return x.String()
	}
	rv := reflect.ValueOf(v)
	if rv.Kind() == reflect.Slice || rv.Kind() == reflect.Array {
		parts := make([]string, rv.Len())
		for i := range parts {
			it := rv.Index(i).Interface()
			if !IsNullish(it) {
				parts[i] = ToString(it)
			}
		}
		return strings.Join(parts, ",")
	}
	return "[object Object]"
}

// ToMap converts map-like values with string keys to map[string]any.
func ToMap(v any) (map[string]any, bool) {
	switch m := v.(type) {
	case map[string]any:
		return m, true
	case Props:
		return m, true
	}
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Map || rv.Type().Key().Kind() != reflect.String {
		return nil, false
	}
	out := make(map[string]any, rv.Len())
	iter := rv.MapRange()
	for iter.Next() {
		out[iter.Key().String()] = iter.Value().Interface()
	}
	return out, true
}

// Package eval interprets compiled templates.
//
// Evaluate walks the expression tree produced by package jsx against a
// scope, a plain name-to-value map, and returns the resulting value,
// normally an *element.Element ready for rendering. Evaluation has no access
// to anything outside the scope: the only globals are NaN and Infinity,
// there is no prototype chain and no way to reach the host process except
// through values the caller placed in the scope. Nesting and recursion are
// bounded; a template that recurses without end fails with ErrDepth.
//
// Values follow ECMAScript semantics for the kinds templates use: nil is
// null, element.Undefined is undefined, numbers are float64 (Go integer and
// float values are accepted and converted), strings, booleans, []any arrays
// and map[string]any objects. Go structs, maps and slices from the scope are
// read through reflection; struct fields resolve by name, capitalized name
// or json tag. Go functions are called with arguments converted to their
// parameter types (integer parameters accept only integral numbers in
// range), and a trailing error result is returned as the call's
// error.
//
// Arrays expose map, filter, find, some, every, join, includes, indexOf,
// slice and length; strings expose length, toUpperCase, toLowerCase, trim,
// replace, includes, startsWith, endsWith and split; numbers expose toFixed.
// replace takes a string pattern, replaces the first match and expands the
// $$, $&, $` and $' replacement patterns.
//
// Errors are *ReferenceError for unbound names and *TypeError for invalid
// operations; both match their sentinels (ErrReference, ErrType) with
// errors.Is. Panics in called Go functions surface as errors wrapping
// ErrPanic.
package eval

// Package jsx compiles JSX email templates.
//
// The accepted language is a safe subset of JSX: a single expression built
// from elements, fragments, attributes, literals, template literals, member
// access, calls, arrow functions with expression bodies and the usual
// arithmetic, comparison and logical operators. Statements, assignments,
// classes, `new`, `this` and `import` are rejected at compile time, so a
// template can only read what its scope hands to it.
//
// Transform parses the source and returns both the AST (Output.Program),
// which package eval interprets, and the equivalent createElement code
// (Output.Code), useful for inspection and for comparing configurations:
//
//	out, err := jsx.Transform(`<Text>Hello, {name}!</Text>`, nil)
//	// out.Code == "React.createElement(Text, null, \"Hello, \", name, \"!\");\n"
//
// Options mirror the usual compiler settings: the syntax dialect
// (ecmascript or typescript, the latter accepting `as` casts), whether JSX is
// enabled, the module format and strict mode. A nil *Options selects
// DefaultOptions; a non-nil one replaces it entirely.
//
// Failures are *SyntaxError values carrying line and column and matching
// ErrSyntax with errors.Is.
package jsx

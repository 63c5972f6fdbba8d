package jsx

import "fmt"

// Syntax selects the source dialect.
type Syntax string

const (
	// SyntaxECMAScript accepts plain JSX expressions.
	SyntaxECMAScript Syntax = "ecmascript"
	// SyntaxTypeScript also accepts "as" casts, which are discarded.
	SyntaxTypeScript Syntax = "typescript"
)

// ModuleType selects the module format of the emitted code.
type ModuleType string

// A template is a single expression with no imports or exports, so module
// types differ only in the strict directive: ES modules never emit it.
const (
	// ModuleCommonJS is the default module format.
	ModuleCommonJS ModuleType = "commonjs"
	// ModuleES6 selects ES module output, which is implicitly strict.
	ModuleES6 ModuleType = "es6"
	// ModuleAMD selects AMD output.
	ModuleAMD ModuleType = "amd"
	// ModuleUMD selects UMD output.
	ModuleUMD ModuleType = "umd"
)

// Options configures compilation. A non-nil Options replaces the defaults
// wholesale; zero fields keep their zero meaning (an empty Syntax is
// ECMAScript, an empty module type is CommonJS, JSX is off unless set).
type Options struct {
	Parser ParserOptions `json:"parser" yaml:"parser"`
	Module ModuleOptions `json:"module" yaml:"module"`
}

// ParserOptions configures the parser.
type ParserOptions struct {
	Syntax Syntax `json:"syntax" yaml:"syntax"`
	JSX    bool   `json:"jsx" yaml:"jsx"`
}

// ModuleOptions configures code emission.
type ModuleOptions struct {
	Type       ModuleType `json:"type" yaml:"type"`
	StrictMode bool       `json:"strictMode" yaml:"strictMode"`
}

// DefaultOptions returns ECMAScript syntax with JSX enabled, CommonJS module
// output and non-strict mode.
func DefaultOptions() Options {
	return Options{
		Parser: ParserOptions{Syntax: SyntaxECMAScript, JSX: true},
		Module: ModuleOptions{Type: ModuleCommonJS, StrictMode: false},
	}
}

// Validate checks the syntax and module type.
func (o Options) Validate() error {
	switch o.Parser.Syntax {
	case "", SyntaxECMAScript, SyntaxTypeScript:
	default:
		return fmt.Errorf("%w: unknown syntax %q", ErrInvalidOptions, o.Parser.Syntax)
	}
	switch o.Module.Type {
	case "", ModuleCommonJS, ModuleES6, ModuleAMD, ModuleUMD:
	default:
		return fmt.Errorf("%w: unknown module type %q", ErrInvalidOptions, o.Module.Type)
	}
	return nil
}

func (o Options) typescript() bool { return o.Parser.Syntax == SyntaxTypeScript }

// emitsStrictDirective reports whether the emitted code starts with
// "use strict". ES modules are strict implicitly and never carry it.
func (o Options) emitsStrictDirective() bool {
	return o.Module.StrictMode && o.Module.Type != ModuleES6
}

package jsx

import "fmt"

// Kind classifies tokens produced by the expression scanner.
type Kind int

const (
	EOF        Kind = iota
	IdentToken      // identifier or keyword
	Number
	String
	Template // opening backtick; the body is scanned on demand
	Punct
)

func (k Kind) String() string {
	switch k {
	case EOF:
		return "end of input"
	case IdentToken:
		return "identifier"
	case Number:
		return "number"
	case String:
		return "string"
	case Template:
		return "template literal"
	case Punct:
		return "punctuator"
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// Token is a lexical token. Pos and End are byte offsets into the source.
type Token struct {
	Kind  Kind
	Value string
	Num   float64
	Pos   int
	End   int
}

func (t Token) is(v string) bool {
	return t.Kind == Punct && t.Value == v
}

func (t Token) isWord(v string) bool {
	return t.Kind == IdentToken && t.Value == v
}

func (t Token) String() string {
	switch t.Kind {
	case EOF:
		return "end of input"
	case String:
		return fmt.Sprintf("%q", t.Value)
	case Template:
		return "`"
	}
	return "'" + t.Value + "'"
}

// punctuators ordered longest first so the scanner can match greedily.
var punctuators = []string{
	"===", "!==", "...",
	"=>", "==", "!=", "<=", ">=", "&&", "||", "??", "?.",
	"(", ")", "[", "]", "{", "}", ",", ".", ";", ":", "?",
	"<", ">", "+", "-", "*", "/", "%", "!", "=", "|", "&",
}

// binaryPrec maps binary operators to their precedence; higher binds tighter.
var binaryPrec = map[string]int{
	"??": 1,
	"||": 2,
	"&&": 3,
	"==": 6, "!=": 6, "===": 6, "!==": 6,
	"<": 7, ">": 7, "<=": 7, ">=": 7,
	"+": 9, "-": 9,
	"*": 10, "/": 10, "%": 10,
}

// unsupportedWords are reserved words whose constructs the grammar excludes.
var unsupportedWords = map[string]bool{
	"function": true, "class": true, "new": true, "this": true, "import": true,
	"export": true, "var": true, "let": true, "const": true, "return": true,
	"delete": true, "void": true, "await": true, "yield": true, "super": true,
	"with": true, "eval": true,
}

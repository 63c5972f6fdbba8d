package jsx

import (
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"
)

// scanner tokenizes template source. Expression tokens come from scan; the
// parser switches to the raw JSX and template methods when it enters those
// contexts. The scanner never reads past the token it returns, so the parser
// can resume raw scanning at the current offset.
//
// Errors are reported by panicking with *SyntaxError; Parse recovers them.
type scanner struct {
	src string
	pos int
}

func (s *scanner) fail(pos int, format string, args ...any) {
	panic(newSyntaxError(s.src, pos, format, args...))
}

func (s *scanner) eof() bool { return s.pos >= len(s.src) }

func (s *scanner) peek() rune {
	if s.eof() {
		return -1
	}
	r, _ := utf8.DecodeRuneInString(s.src[s.pos:])
	return r
}

func (s *scanner) peekAt(off int) rune {
	if s.pos+off >= len(s.src) {
		return -1
	}
	r, _ := utf8.DecodeRuneInString(s.src[s.pos+off:])
	return r
}

func (s *scanner) advance() rune {
	r, size := utf8.DecodeRuneInString(s.src[s.pos:])
	s.pos += size
	return r
}

// consume advances past r if it is the next rune.
func (s *scanner) consume(r rune) bool {
	if s.peek() == r {
		s.pos += utf8.RuneLen(r)
		return true
	}
	return false
}

// skipSpace skips whitespace and comments.
func (s *scanner) skipSpace() {
	for !s.eof() {
		r := s.peek()
		switch {
		case unicode.IsSpace(r) || r == '\uFEFF':
			s.advance()
		case r == '/' && s.peekAt(1) == '/':
			for !s.eof() && s.peek() != '\n' {
				s.advance()
			}
		case r == '/' && s.peekAt(1) == '*':
			start := s.pos
			end := strings.Index(s.src[s.pos+2:], "*/")
			if end < 0 {
				s.fail(start, "unterminated comment")
			}
			s.pos += end + 4
		default:
			return
		}
	}
}

func isIdentStart(r rune) bool {
	return r == '$' || r == '_' || unicode.IsLetter(r)
}

func isIdentPart(r rune) bool {
	return isIdentStart(r) || unicode.IsDigit(r) || r == '\u200C' || r == '\u200D'
}

// scan returns the next expression token.
func (s *scanner) scan() Token {
	s.skipSpace()
	start := s.pos
	if s.eof() {
		return Token{Kind: EOF, Pos: start, End: start}
	}

	r := s.peek()
	switch {
	case isIdentStart(r):
		for !s.eof() && isIdentPart(s.peek()) {
			s.advance()
		}
		return Token{Kind: IdentToken, Value: s.src[start:s.pos], Pos: start, End: s.pos}
	case r >= '0' && r <= '9', r == '.' && isDigit(s.peekAt(1)):
		return s.scanNumber()
	case r == '"' || r == '\'':
		s.advance()
		v := s.scanQuoted(r)
		return Token{Kind: String, Value: v, Pos: start, End: s.pos}
	case r == '`':
		s.advance()
		return Token{Kind: Template, Pos: start, End: s.pos}
	}

	for _, p := range punctuators {
		if strings.HasPrefix(s.src[s.pos:], p) {
			// "a?.5:1" is a conditional, not optional chaining.
			if p == "?." && isDigit(s.peekAt(2)) {
				continue
			}
			s.pos += len(p)
			return Token{Kind: Punct, Value: p, Pos: start, End: s.pos}
		}
	}
	s.fail(start, "unexpected character %q", r)
	return Token{}
}

func isDigit(r rune) bool { return r >= '0' && r <= '9' }

func isHex(r rune) bool {
	return isDigit(r) || (r >= 'a' && r <= 'f') || (r >= 'A' && r <= 'F')
}

func (s *scanner) scanNumber() Token {
	start := s.pos
	if s.peek() == '0' && (s.peekAt(1) == 'x' || s.peekAt(1) == 'X') {
		s.pos += 2
		for isHex(s.peek()) {
			s.advance()
		}
		n, err := strconv.ParseUint(s.src[start+2:s.pos], 16, 64)
		if err != nil {
			s.fail(start, "invalid number %q", s.src[start:s.pos])
		}
		return Token{Kind: Number, Value: s.src[start:s.pos], Num: float64(n), Pos: start, End: s.pos}
	}
	for isDigit(s.peek()) {
		s.advance()
	}
	if s.peek() == '.' {
		s.advance()
		for isDigit(s.peek()) {
			s.advance()
		}
	}
	if r := s.peek(); r == 'e' || r == 'E' {
		s.advance()
		if r := s.peek(); r == '+' || r == '-' {
			s.advance()
		}
		if !isDigit(s.peek()) {
			s.fail(start, "invalid number %q", s.src[start:s.pos])
		}
		for isDigit(s.peek()) {
			s.advance()
		}
	}
	if isIdentStart(s.peek()) {
		s.fail(s.pos, "identifier directly after number")
	}
	text := s.src[start:s.pos]
	n, err := strconv.ParseFloat(text, 64)
	if err != nil {
		s.fail(start, "invalid number %q", text)
	}
	return Token{Kind: Number, Value: text, Num: n, Pos: start, End: s.pos}
}

// scanQuoted reads a string literal body after the opening quote.
func (s *scanner) scanQuoted(quote rune) string {
	start := s.pos - 1
	var b strings.Builder
	for {
		if s.eof() {
			s.fail(start, "unterminated string literal")
		}
		r := s.advance()
		switch r {
		case quote:
			return b.String()
		case '\\':
			s.scanEscape(&b)
		case '\n', '\r':
			s.fail(start, "unterminated string literal")
		default:
			b.WriteRune(r)
		}
	}
}

// scanEscape decodes an escape sequence after the backslash.
func (s *scanner) scanEscape(b *strings.Builder) {
	if s.eof() {
		s.fail(s.pos, "unterminated escape sequence")
	}
	start := s.pos - 1
	r := s.advance()
	switch r {
	case 'n':
		b.WriteByte('\n')
	case 't':
		b.WriteByte('\t')
	case 'r':
		b.WriteByte('\r')
	case 'b':
		b.WriteByte('\b')
	case 'f':
		b.WriteByte('\f')
	case 'v':
		b.WriteByte('\v')
	case '0':
		b.WriteByte(0)
	case '\r':
		s.consume('\n')
	case '\n', '\u2028', '\u2029':
		// line continuation
	case 'x':
		b.WriteRune(s.scanHex(start, 2))
	case 'u':
		if s.consume('{') {
			end := strings.IndexByte(s.src[s.pos:], '}')
			if end < 0 {
				s.fail(start, "invalid unicode escape")
			}
			n, err := strconv.ParseUint(s.src[s.pos:s.pos+end], 16, 32)
			if err != nil || n > unicode.MaxRune {
				s.fail(start, "invalid unicode escape")
			}
			s.pos += end + 1
			b.WriteRune(rune(n))
			return
		}
		b.WriteRune(s.scanHex(start, 4))
	default:
		b.WriteRune(r)
	}
}

func (s *scanner) scanHex(start, n int) rune {
	if s.pos+n > len(s.src) {
		s.fail(start, "invalid escape sequence")
	}
	v, err := strconv.ParseUint(s.src[s.pos:s.pos+n], 16, 32)
	if err != nil {
		s.fail(start, "invalid escape sequence")
	}
	s.pos += n
	return rune(v)
}

// scanTemplateChunk reads template literal text up to "${" or the closing
// backtick. It reports whether the literal ended.
func (s *scanner) scanTemplateChunk() (text string, closed bool) {
	start := s.pos
	var b strings.Builder
	for {
		if s.eof() {
			s.fail(start, "unterminated template literal")
		}
		r := s.advance()
		switch {
		case r == '`':
			return b.String(), true
		case r == '$' && s.peek() == '{':
			s.advance()
			return b.String(), false
		case r == '\\':
			s.scanEscape(&b)
		default:
			b.WriteRune(r)
		}
	}
}

// scanJSXName reads a JSX identifier, which may contain dashes, and colons
// when namespaced is set.
func (s *scanner) scanJSXName(namespaced bool) string {
	start := s.pos
	if !isIdentStart(s.peek()) {
		if s.eof() {
			s.fail(start, "unexpected end of input in JSX tag")
		}
		s.fail(start, "unexpected character %q in JSX tag", s.peek())
	}
	for !s.eof() {
		r := s.peek()
		if !isIdentPart(r) && r != '-' && !(namespaced && r == ':') {
			break
		}
		s.advance()
	}
	return s.src[start:s.pos]
}

// scanJSXText reads raw text up to the next '{' or '<'.
func (s *scanner) scanJSXText() string {
	start := s.pos
	for !s.eof() {
		switch s.peek() {
		case '{', '<':
			return s.src[start:s.pos]
		case '}':
			s.fail(s.pos, "unexpected token, did you mean `{'}'}` or `&rbrace;`?")
		}
		s.advance()
	}
	s.fail(start, "unterminated JSX contents")
	return ""
}

// scanJSXString reads a quoted attribute value. JSX strings have no escapes.
func (s *scanner) scanJSXString(quote rune) string {
	start := s.pos - 1
	end := strings.IndexRune(s.src[s.pos:], quote)
	if end < 0 {
		s.fail(start, "unterminated string constant")
	}
	v := s.src[s.pos : s.pos+end]
	s.pos += end + utf8.RuneLen(quote)
	return v
}

package scanner

import (
	"fmt"
	"go/token"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/kiteco/jsparse/kite-golib/errors"
)

// Word represents a token together with its position and literal content
type Word struct {
	Token Token
	// Begin and End are zero based byte offsets, End is exclusive.
	Begin token.Pos
	End   token.Pos
	// Literal is the source text of the token; for identifiers it is the
	// name with unicode escapes decoded.
	Literal string
	// Line of the first character of the token.
	Line int
	// NewlineBefore is set when a line terminator separates this token from the previous one.
	NewlineBefore bool
	// AssignOp is the operator of a compound assignment (+= has Plus),
	// Illegal for a plain = and for every other token.
	AssignOp Token
}

// String gets a string representation of a lexical symbol
func (w Word) String() string {
	switch {
	case w.Token.IsLiteral():
		s := w.Token.String()
		if len(w.Literal) > 50 || strings.Contains(w.Literal, "\n") {
			return s + fmt.Sprintf("[%d chars]", len(w.Literal))
		}
		return s + "[" + w.Literal + "]"
	case w.Token == Assign && w.AssignOp != Illegal:
		return `"` + w.AssignOp.String() + `="`
	case w.Token.IsOperator(), w.Token.IsKeyword():
		return `"` + w.Token.String() + `"`
	case w.Token == Illegal:
		return w.Token.String() + "[" + w.Literal + "]"
	default:
		return w.Token.String()
	}
}

// ScanError represents an error encountered during scanning
type ScanError struct {
	Message  string
	Position token.Pos
	Line     int
}

// Error returns a string representation of the error
func (e ScanError) Error() string {
	return fmt.Sprintf("%d: %s", e.Line, e.Message)
}

// A Scanner holds the scanner's internal state while processing
// a given text.
type Scanner struct {
	// immutable state
	src []byte

	// scanning state
	ch       rune // current character
	offset   int  // character offset
	rdOffset int  // reading offset (position after current character)
	line     int  // line of the current character

	// public state - ok to modify
	Errs errors.List // errors encountered
}

const bom = 0xFeff // byte order mark, only permitted as very first character

// NewScanner creates a scanner positioned at the start of src; line is the
// number reported for the first line.
func NewScanner(src []byte, line int) *Scanner {
	s := &Scanner{
		src:  src,
		ch:   ' ',
		line: line,
	}
	s.next()
	if s.ch == bom {
		s.next() // ignore Bom at file beginning
	}
	return s
}

// Scan extracts every token from src, ending with EOF. Regular expressions are
// recognized wherever a value may start, judged by the preceding token.
func Scan(src []byte) ([]Word, error) {
	s := NewScanner(src, 1)
	var words []Word
	prev := Illegal
	for {
		w := s.Scan(startsOperand(prev))
		words = append(words, w)
		if w.Token == EOF {
			break
		}
		prev = w.Token
	}
	if s.Errs == nil {
		return words, nil
	}
	return words, s.Errs
}

// startsOperand is the usual regexp-versus-division heuristic for a token stream
// scanned without a parser driving it.
func startsOperand(prev Token) bool {
	switch prev {
	case Identifier, Number, String, RegExp, RightParen, RightBracket, RightCurly,
		This, Super, Null, True, False, Increment, Decrement:
		return false
	}
	return true
}

// Read the next Unicode char into s.ch.
// s.ch < 0 means end-of-file.
func (s *Scanner) next() {
	if s.rdOffset < len(s.src) {
		s.offset = s.rdOffset
		r, w := rune(s.src[s.rdOffset]), 1
		if r >= utf8.RuneSelf {
			r, w = utf8.DecodeRune(s.src[s.rdOffset:])
			if r == utf8.RuneError && w == 1 {
				s.error(s.offset, "illegal UTF-8 encoding")
			}
		}
		s.rdOffset += w
		s.ch = r
	} else {
		s.offset = len(s.src)
		s.ch = -1 // eof
	}
}

func (s *Scanner) peekByte() byte {
	if s.rdOffset < len(s.src) {
		return s.src[s.rdOffset]
	}
	return 0
}

func (s *Scanner) error(offs int, msg string) {
	s.Errs = errors.Append(s.Errs, ScanError{Message: msg, Position: token.Pos(offs), Line: s.line})
}

func isLineTerminator(ch rune) bool {
	return ch == '\n' || ch == '\r' || ch == 0x2028 || ch == 0x2029
}

// IsLetter checks if the given rune may start an identifier
func IsLetter(ch rune) bool {
	return 'a' <= ch && ch <= 'z' || 'A' <= ch && ch <= 'Z' || ch == '_' || ch == '$' || ch >= 0x80 && unicode.IsLetter(ch)
}

// IsDigit checks if the given rune is a decimal digit
func IsDigit(ch rune) bool {
	return '0' <= ch && ch <= '9'
}

func isIdentifierPart(ch rune) bool {
	return IsLetter(ch) || IsDigit(ch) ||
		ch >= 0x80 && (unicode.IsDigit(ch) || unicode.In(ch, unicode.Mn, unicode.Mc, unicode.Pc)) ||
		ch == 0x200c || ch == 0x200d
}

func digitVal(ch rune) int {
	switch {
	case '0' <= ch && ch <= '9':
		return int(ch - '0')
	case 'a' <= ch && ch <= 'f':
		return int(ch - 'a' + 10)
	case 'A' <= ch && ch <= 'F':
		return int(ch - 'A' + 10)
	}
	return 16 // larger than any legal digit val
}

// skipLineTerminator consumes a line terminator, treating \r\n as one.
func (s *Scanner) skipLineTerminator() {
	if s.ch == '\r' && s.peekByte() == '\n' {
		s.next()
	}
	s.next()
	s.line++
}

// skipWhitespace consumes whitespace and comments and reports whether a line
// terminator was among them.
func (s *Scanner) skipWhitespace() (newline bool) {
	for {
		switch {
		case isLineTerminator(s.ch):
			s.skipLineTerminator()
			newline = true
		case s.ch == ' ' || s.ch == '\t' || s.ch == '\v' || s.ch == '\f' || s.ch == 0xa0 || s.ch == bom:
			s.next()
		case s.ch >= 0x80 && unicode.Is(unicode.Zs, s.ch):
			s.next()
		case s.ch == '/' && s.peekByte() == '/':
			for s.ch >= 0 && !isLineTerminator(s.ch) {
				s.next()
			}
		case s.ch == '/' && s.peekByte() == '*':
			offs := s.offset
			s.next()
			s.next()
			for {
				if s.ch < 0 {
					s.error(offs, "unterminated comment")
					return
				}
				if s.ch == '*' && s.peekByte() == '/' {
					s.next()
					s.next()
					break
				}
				if isLineTerminator(s.ch) {
					s.skipLineTerminator()
					newline = true
					continue
				}
				s.next()
			}
		default:
			return
		}
	}
}

func (s *Scanner) scanHex(n int) (rune, bool) {
	var r rune
	for i := 0; i < n; i++ {
		d := digitVal(s.ch)
		if d >= 16 {
			return 0, false
		}
		r = r*16 + rune(d)
		s.next()
	}
	return r, true
}

func (s *Scanner) scanIdentifier() (string, bool) {
	var name strings.Builder
	for {
		switch {
		case s.ch == '\\':
			offs := s.offset
			s.next()
			if s.ch != 'u' {
				s.error(offs, "illegal escape in identifier")
				return name.String(), false
			}
			s.next()
			r, ok := s.scanHex(4)
			if !ok || !isIdentifierPart(r) {
				s.error(offs, "illegal unicode escape in identifier")
				return name.String(), false
			}
			name.WriteRune(r)
		case isIdentifierPart(s.ch):
			name.WriteRune(s.ch)
			s.next()
		default:
			return name.String(), true
		}
	}
}

func (s *Scanner) scanMantissa(base int) int {
	var n int
	for digitVal(s.ch) < base {
		s.next()
		n++
	}
	return n
}

func (s *Scanner) scanNumber(offs int, seenDecimalPoint bool) bool {
	ok := true
	if seenDecimalPoint {
		s.scanMantissa(10)
		goto exponent
	}

	if s.ch == '0' {
		s.next()
		switch {
		case s.ch == 'x' || s.ch == 'X':
			s.next()
			if s.scanMantissa(16) == 0 {
				s.error(offs, "illegal hexadecimal number")
				ok = false
			}
			goto exit
		case IsDigit(s.ch):
			// legacy octal, or decimal when an 8 or 9 shows up
			s.scanMantissa(10)
			goto exit
		}
	}

	s.scanMantissa(10)
	if s.ch == '.' {
		s.next()
		s.scanMantissa(10)
	}

exponent:
	if s.ch == 'e' || s.ch == 'E' {
		s.next()
		if s.ch == '-' || s.ch == '+' {
			s.next()
		}
		if s.scanMantissa(10) == 0 {
			s.error(offs, "missing exponent")
			ok = false
		}
	}

exit:
	if IsLetter(s.ch) || IsDigit(s.ch) {
		s.error(offs, "identifier starts immediately after numeric literal")
		ok = false
	}
	return ok
}

// scan a string; the opening quote is already consumed
func (s *Scanner) scanString(offs int, quote rune) bool {
	for {
		ch := s.ch
		if ch < 0 || ch == '\n' || ch == '\r' {
			s.error(offs, "unterminated string literal")
			return false
		}
		s.next()
		if ch == quote {
			return true
		}
		if ch == '\\' {
			if isLineTerminator(s.ch) {
				s.skipLineTerminator()
				continue
			}
			if s.ch < 0 {
				continue
			}
			s.next()
		}
	}
}

// scan a regular expression; the opening slash is already consumed
func (s *Scanner) scanRegExp(offs int) bool {
	var inClass bool
	for {
		ch := s.ch
		if ch < 0 || isLineTerminator(ch) {
			s.error(offs, "unterminated regular expression literal")
			return false
		}
		s.next()
		switch ch {
		case '\\':
			if s.ch < 0 || isLineTerminator(s.ch) {
				continue
			}
			s.next()
		case '[':
			inClass = true
		case ']':
			inClass = false
		case '/':
			if !inClass {
				for isIdentifierPart(s.ch) {
					s.next()
				}
				return true
			}
		}
	}
}

// switch2 scans tok0 or, when followed by '=', a compound assignment of tok0.
func (s *Scanner) switch2(tok0 Token, w *Word) {
	if s.ch == '=' {
		s.next()
		w.Token, w.AssignOp = Assign, tok0
		return
	}
	w.Token = tok0
}

// switch3 is switch2 with a doubled form: tok0 tok0 gives tok2, e.g. + and ++.
func (s *Scanner) switch3(tok0 Token, ch2 rune, tok2 Token, w *Word) {
	if s.ch == ch2 {
		s.next()
		w.Token = tok2
		return
	}
	s.switch2(tok0, w)
}

// Scan scans the next token. operand tells the scanner that a value may start
// here, so '/' begins a regular expression rather than a division. Lexical
// errors produce an Illegal token and are recorded in s.Errs at the token's
// begin offset.
func (s *Scanner) Scan(operand bool) Word {
	newline := s.skipWhitespace()

	w := Word{
		Begin:         token.Pos(s.offset),
		Line:          s.line,
		NewlineBefore: newline,
	}
	offs := s.offset
	ok := true

	switch ch := s.ch; {
	case IsLetter(ch) || ch == '\\':
		var name string
		name, ok = s.scanIdentifier()
		w.Token = Identifier
		if ok && !strings.ContainsRune(string(s.src[offs:s.offset]), '\\') {
			w.Token = Lookup(name)
		}
		w.Literal = name
	case IsDigit(ch):
		ok = s.scanNumber(offs, false)
		w.Token = Number
	default:
		s.next() // always make progress
		switch ch {
		case -1:
			w.Token = EOF
		case '"', '\'':
			ok = s.scanString(offs, ch)
			w.Token = String
		case '.':
			if IsDigit(s.ch) {
				ok = s.scanNumber(offs, true)
				w.Token = Number
			} else {
				w.Token = Dot
			}
		case '/':
			if operand {
				ok = s.scanRegExp(offs)
				w.Token = RegExp
			} else {
				s.switch2(Div, &w)
			}
		case ',':
			w.Token = Comma
		case ';':
			w.Token = Semicolon
		case '?':
			w.Token = Hook
		case ':':
			w.Token = Colon
		case '(':
			w.Token = LeftParen
		case ')':
			w.Token = RightParen
		case '[':
			w.Token = LeftBracket
		case ']':
			w.Token = RightBracket
		case '{':
			w.Token = LeftCurly
		case '}':
			w.Token = RightCurly
		case '~':
			w.Token = BitNot
		case '+':
			s.switch3(Plus, '+', Increment, &w)
		case '-':
			s.switch3(Minus, '-', Decrement, &w)
		case '*':
			s.switch2(Mul, &w)
		case '%':
			s.switch2(Mod, &w)
		case '^':
			s.switch2(BitXor, &w)
		case '&':
			s.switch3(BitAnd, '&', And, &w)
		case '|':
			s.switch3(BitOr, '|', Or, &w)
		case '=':
			w.Token = Assign
			if s.ch == '=' {
				s.next()
				w.Token = Eq
				if s.ch == '=' {
					s.next()
					w.Token = StrictEq
				}
			}
		case '!':
			w.Token = Not
			if s.ch == '=' {
				s.next()
				w.Token = Ne
				if s.ch == '=' {
					s.next()
					w.Token = StrictNe
				}
			}
		case '<':
			switch s.ch {
			case '|':
				s.next()
				w.Token = Proto
			case '<':
				s.next()
				s.switch2(Lsh, &w)
			case '=':
				s.next()
				w.Token = Le
			default:
				w.Token = Lt
			}
		case '>':
			switch s.ch {
			case '>':
				s.next()
				if s.ch == '>' {
					s.next()
					s.switch2(Ursh, &w)
				} else {
					s.switch2(Rsh, &w)
				}
			case '=':
				s.next()
				w.Token = Ge
			default:
				w.Token = Gt
			}
		default:
			s.error(offs, fmt.Sprintf("illegal character %#U", ch))
			ok = false
		}
	}

	w.End = token.Pos(s.offset)
	if w.Token != Identifier {
		w.Literal = string(s.src[offs:s.offset])
	}
	if !ok {
		w.Token = Illegal
		w.AssignOp = Illegal
	}
	return w
}

package scanner

import (
	"fmt"
	"go/token"
)

// ringSize bounds the tokens a Tokenizer remembers; it must be a power of two.
const ringSize = 4

// Tokenizer wraps a Scanner with the lookahead the parser needs: peeking at
// the next token, matching it conditionally, and pushing back up to
// ringSize-1 consumed tokens.
type Tokenizer struct {
	scanner  *Scanner
	src      []byte
	filename string

	words     [ringSize]Word
	index     int // slot of the current token
	lookahead int // number of pushed back tokens after the current one
}

// NewTokenizer returns a tokenizer over src. filename and line are used for
// error reporting; line is the number of the first line.
func NewTokenizer(src []byte, filename string, line int) *Tokenizer {
	t := &Tokenizer{
		scanner:  NewScanner(src, line),
		src:      src,
		filename: filename,
	}
	t.words[0] = Word{Token: Illegal, Line: line}
	return t
}

// Filename given to NewTokenizer.
func (t *Tokenizer) Filename() string {
	return t.filename
}

// Source being tokenized.
func (t *Tokenizer) Source() []byte {
	return t.src
}

// Token returns the current token, i.e. the last one returned by Get.
func (t *Tokenizer) Token() Word {
	return t.words[t.index]
}

// Lineno is the line of the current token.
func (t *Tokenizer) Lineno() int {
	return t.words[t.index].Line
}

// Get advances to the next token and returns its kind. operand is passed to
// the scanner when the token has not been scanned yet.
func (t *Tokenizer) Get(operand bool) Token {
	t.index = (t.index + 1) & (ringSize - 1)
	if t.lookahead > 0 {
		t.lookahead--
		return t.words[t.index].Token
	}
	t.words[t.index] = t.scanner.Scan(operand)
	return t.words[t.index].Token
}

// Unget pushes the current token back so the next Get returns it again.
func (t *Tokenizer) Unget() {
	t.lookahead++
	if t.lookahead == ringSize {
		panic("too much lookahead")
	}
	t.index = (t.index - 1) & (ringSize - 1)
}

// Peek returns the kind of the next token without consuming it.
func (t *Tokenizer) Peek(operand bool) Token {
	return t.next(operand).Token
}

// PeekOnSameLine is Peek, except that it returns Newline when the next token
// starts on a later line than the current one.
func (t *Tokenizer) PeekOnSameLine(operand bool) Token {
	w := t.next(operand)
	if w.NewlineBefore {
		return Newline
	}
	return w.Token
}

// PeekWord returns the next token without consuming it.
func (t *Tokenizer) PeekWord(operand bool) Word {
	return t.next(operand)
}

func (t *Tokenizer) next(operand bool) Word {
	if t.lookahead == 0 {
		t.Get(operand)
		t.Unget()
	}
	return t.words[(t.index+1)&(ringSize-1)]
}

// Match consumes the next token if it is tok.
func (t *Tokenizer) Match(tok Token, operand bool) bool {
	if t.Get(operand) == tok {
		return true
	}
	t.Unget()
	return false
}

// Done reports whether every token has been consumed.
func (t *Tokenizer) Done() bool {
	return t.Peek(true) == EOF
}

// ErrorFor returns the scan error recorded while scanning w, if any.
func (t *Tokenizer) ErrorFor(w Word) *ScanError {
	for _, err := range t.scanner.Errs {
		if se, ok := err.(ScanError); ok && se.Position >= w.Begin && se.Position <= w.End {
			return &se
		}
	}
	return nil
}

// Errors returns every lexical error found so far.
func (t *Tokenizer) Errors() error {
	if t.scanner.Errs == nil {
		return nil
	}
	return t.scanner.Errs
}

// String describes the tokenizer position for tracing.
func (t *Tokenizer) String() string {
	w := t.Token()
	return fmt.Sprintf("%s:%d %v", t.filename, w.Line, w)
}

// Slice returns the source between two offsets.
func (t *Tokenizer) Slice(begin, end token.Pos) string {
	return string(t.src[begin:end])
}

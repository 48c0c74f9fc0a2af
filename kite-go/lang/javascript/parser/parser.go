package parser

import (
	"fmt"
	"go/token"
	"io"
	"os"
	"time"

	"github.com/kiteco/jsparse/kite-go/lang/javascript/ast"
	"github.com/kiteco/jsparse/kite-go/lang/javascript/parser/errors"
	"github.com/kiteco/jsparse/kite-go/lang/javascript/scanner"
)

// DefaultMaxDepth bounds the nesting of statements and expressions.
const DefaultMaxDepth = 2048

// Options represents configuration for parsing
type Options struct {
	ECMA3Only   bool      // ECMA3Only rejects every extension and turns off ParenFree and Harmony
	ParenFree   bool      // ParenFree allows statement heads without parentheses
	Harmony     bool      // Harmony enables super, methods, computed names, .{} and <|
	Trace       bool      // Trace determines whether the descent is printed to TraceWriter
	TraceWriter io.Writer // TraceWriter receives tracing output, stdout by default
	MaxDepth    int       // MaxDepth is a threshold on nesting, DefaultMaxDepth when zero
}

// DefaultOptions parses the base dialect with the default depth limit.
var DefaultOptions = Options{
	MaxDepth: DefaultMaxDepth,
}

// A parser processes a token stream into a syntax tree. The static context
// of the body being parsed is passed explicitly to every production.
type parser struct {
	t    *scanner.Tokenizer
	opts Options

	// nesting of productions guarded against runaway recursion
	depth int

	// Tracing
	indent int
}

func newParser(src []byte, filename string, line int, opts Options) *parser {
	if opts.TraceWriter == nil {
		opts.TraceWriter = os.Stdout
	}
	if opts.MaxDepth <= 0 {
		opts.MaxDepth = DefaultMaxDepth
	}
	if opts.ECMA3Only {
		opts.ParenFree = false
		opts.Harmony = false
	}
	return &parser{
		t:    scanner.NewTokenizer(src, filename, line),
		opts: opts,
	}
}

// Parse parses src as a complete script. filename and line are used in error
// messages; line is the number of the first line of src. On failure the
// returned error is a *errors.SyntaxError and no tree is returned.
func Parse(src []byte, filename string, line int, opts Options) (*ast.Script, error) {
	defer parseDuration.DeferRecord(time.Now())
	bytesParsed.Add(int64(len(src)))

	p := newParser(src, filename, line, opts)
	script, err := p.parse()
	parseErrorRatio.Record(err != nil)
	if err != nil {
		if kind, ok := errors.KindOf(err); ok {
			parseErrorKinds.Hit(kind.String())
		}
		return nil, err
	}
	return script, nil
}

func (p *parser) parse() (script *ast.Script, err error) {
	defer p.recoverParse(&err)

	x := newStaticContext(false, p.opts)
	script = p.parseScript(x)
	if !p.t.Done() {
		p.fail(errors.Grammar, "Syntax error")
	}
	script.From = 0
	script.To = token.Pos(len(p.t.Source()))
	return script, nil
}

// recoverParse turns a syntax error raised by fail into the returned error,
// any other panic keeps unwinding.
func (p *parser) recoverParse(err *error) {
	if ex := recover(); ex != nil {
		se, ok := ex.(*errors.SyntaxError)
		if !ok {
			panic(ex)
		}
		*err = se
	}
}

// fail aborts the parse with a syntax error at the current token.
func (p *parser) fail(kind errors.Kind, msg string) {
	w := p.t.Token()
	p.failAt(w, kind, msg)
}

func (p *parser) failAt(w scanner.Word, kind errors.Kind, msg string) {
	if p.opts.Trace {
		p.printTraceSymbol("**", "ERROR:", msg)
	}
	panic(&errors.SyntaxError{
		Kind:     kind,
		Msg:      msg,
		Filename: p.t.Filename(),
		Line:     w.Line,
		Pos:      w.Begin,
	})
}

// checkLexical fails on a token the scanner rejected.
func (p *parser) checkLexical(w scanner.Word) {
	if w.Token != scanner.Illegal {
		return
	}
	msg := "illegal token"
	if se := p.t.ErrorFor(w); se != nil {
		msg = se.Message
	}
	p.failAt(w, errors.Lexical, msg)
}

// -- tracing

func (p *parser) printTrace(a ...interface{}) {
	p.printTraceSymbol("  ", a...)
}

func (p *parser) printTraceSymbol(symbol string, a ...interface{}) {
	const dots = ". . . . . . . . . . . . . . . . . . . . . . . . . . . . . . . . "
	fmt.Fprintf(p.opts.TraceWriter, "%s%9d: ", symbol, p.t.Token().Begin)
	i := 2 * p.indent
	for i > len(dots) {
		fmt.Fprint(p.opts.TraceWriter, dots)
		i -= len(dots)
	}
	fmt.Fprint(p.opts.TraceWriter, dots[:i])
	fmt.Fprintln(p.opts.TraceWriter, a...)
}

func trace(p *parser, msg string) *parser {
	p.printTrace(msg, "(")
	p.indent++
	return p
}

// Usage pattern: defer un(trace(p, "..."))
func un(p *parser) {
	p.indent--
	p.printTrace(")")
}

// enter guards against input nested deeper than MaxDepth.
// Usage pattern: defer p.leave(p.enter())
func (p *parser) enter() *parser {
	p.depth++
	if p.depth > p.opts.MaxDepth {
		p.fail(errors.Resource, "too much recursion")
	}
	return p
}

func (p *parser) leave(*parser) {
	p.depth--
}

// -- token stream

// word returns the current token.
func (p *parser) word() scanner.Word {
	return p.t.Token()
}

// get consumes the next token. operand is set where a value may start.
func (p *parser) get(operand bool) scanner.Token {
	tok := p.t.Get(operand)
	w := p.t.Token()
	p.checkLexical(w)
	if p.opts.Trace {
		p.printTraceSymbol(" -", w.String())
	}
	return tok
}

func (p *parser) unget() {
	p.t.Unget()
}

// peek returns the next token without consuming it.
func (p *parser) peek(operand bool) scanner.Token {
	w := p.t.PeekWord(operand)
	p.checkLexical(w)
	return w.Token
}

// peekOnSameLine is peek, returning scanner.Newline when a line break comes first.
func (p *parser) peekOnSameLine(operand bool) scanner.Token {
	p.peek(operand)
	return p.t.PeekOnSameLine(operand)
}

// match consumes the next token if it is tok.
func (p *parser) match(tok scanner.Token, operand bool) bool {
	if p.peek(operand) != tok {
		return false
	}
	p.get(operand)
	return true
}

// mustMatch consumes the next token, which must be tok.
func (p *parser) mustMatch(tok scanner.Token, operand bool) scanner.Word {
	if p.get(operand) != tok {
		p.fail(errors.Grammar, "missing "+tok.String())
	}
	return p.word()
}

// isWord reports whether the current token is the identifier name.
func (p *parser) isWord(name string) bool {
	w := p.word()
	return w.Token == scanner.Identifier && w.Literal == name
}

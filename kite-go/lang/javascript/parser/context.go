package parser

import (
	"github.com/kiteco/jsparse/kite-go/lang/javascript/ast"
	"github.com/kiteco/jsparse/kite-go/lang/javascript/parser/errors"
	"github.com/kiteco/jsparse/kite-go/lang/javascript/scanner"
)

// staticContext is the state of the function body or script being parsed.
// A fresh one is created for every function and its declaration lists are
// moved into the resulting Script when the body is done.
type staticContext struct {
	inFunction bool
	// hasEmptyReturn and hasReturnWithValue may both be set in an ordinary
	// function; together with isGenerator either one is an error.
	hasEmptyReturn     bool
	hasReturnWithValue bool
	isGenerator        bool
	usesSuper          bool
	possibleDirectEval bool
	inForLoopInit      bool

	ecma3OnlyMode bool
	parenFreeMode bool
	harmonyMode   bool

	// stmtStack holds the enclosing statements, innermost last. The body
	// itself is always at the bottom.
	stmtStack []ast.Node
	funDecls  []*ast.Function
	varDecls  []*ast.Identifier
}

func newStaticContext(inFunction bool, opts Options) *staticContext {
	x := &staticContext{
		inFunction:    inFunction,
		ecma3OnlyMode: opts.ECMA3Only,
		parenFreeMode: opts.ParenFree,
		harmonyMode:   opts.Harmony,
	}
	if x.ecma3OnlyMode {
		x.parenFreeMode = false
		x.harmonyMode = false
	}
	return x
}

func (x *staticContext) push(n ast.Node) {
	x.stmtStack = append(x.stmtStack, n)
}

func (x *staticContext) pop() {
	x.stmtStack = x.stmtStack[:len(x.stmtStack)-1]
}

// top returns the innermost enclosing statement, or nil.
func (x *staticContext) top() ast.Node {
	if len(x.stmtStack) == 0 {
		return nil
	}
	return x.stmtStack[len(x.stmtStack)-1]
}

// hasLabel reports whether a statement on the stack carries label.
func (x *staticContext) hasLabel(label string) bool {
	for i := len(x.stmtStack) - 1; i >= 0; i-- {
		if labelOf(x.stmtStack[i]) == label {
			return true
		}
	}
	return false
}

func labelOf(n ast.Node) string {
	if l, ok := n.(*ast.LabeledStmt); ok {
		return l.Label
	}
	return ""
}

// letScope returns the declaration list a let binding is recorded in: the
// innermost enclosing block, or the context itself when that block is the body.
func (x *staticContext) letScope() *[]*ast.Identifier {
	for i := len(x.stmtStack) - 1; i > 0; i-- {
		if b, ok := x.stmtStack[i].(*ast.Block); ok {
			return &b.VarDecls
		}
	}
	return &x.varDecls
}

// resolveJump finds the statement a break or continue refers to. With a label
// the labeled statement is found first and the jump goes to the loop it
// labels, if any. Without one, the innermost loop is used, or for break the
// innermost switch.
func (p *parser) resolveJump(x *staticContext, tok scanner.Token, label string) ast.Node {
	ss := x.stmtStack
	i := len(ss)
	if label != "" {
		for {
			i--
			if i < 0 {
				p.fail(errors.Scope, "Label not found")
			}
			if labelOf(ss[i]) == label {
				break
			}
		}
		// skip labels wrapping the same statement
		for i < len(ss)-1 && ss[i+1].Kind() == ast.KindLabel {
			i++
		}
		if i < len(ss)-1 && ss[i+1].Kind().IsLoop() {
			i++
		} else if tok == scanner.Continue {
			p.fail(errors.Scope, "Invalid continue")
		}
		return ss[i]
	}

	for {
		i--
		if i < 0 {
			if tok == scanner.Break {
				p.fail(errors.Scope, "Invalid break")
			}
			p.fail(errors.Scope, "Invalid continue")
		}
		k := ss[i].Kind()
		if k.IsLoop() || tok == scanner.Break && k == ast.KindSwitch {
			return ss[i]
		}
	}
}

// maybeMatchLeftParen matches the opening parenthesis of a statement head,
// which is optional in paren-free mode. It reports whether one was matched.
func (p *parser) maybeMatchLeftParen(x *staticContext) bool {
	if x.parenFreeMode {
		return p.match(scanner.LeftParen, true)
	}
	p.mustMatch(scanner.LeftParen, true)
	return true
}

// maybeMatchRightParen matches the parenthesis closing a head opened with
// maybeMatchLeftParen.
func (p *parser) maybeMatchRightParen(x *staticContext, matched bool) {
	if x.parenFreeMode && !matched {
		return
	}
	p.mustMatch(scanner.RightParen, false)
}

package parser

import (
	"github.com/kiteco/jsparse/kite-go/lang/javascript/ast"
	"github.com/kiteco/jsparse/kite-go/lang/javascript/parser/errors"
	"github.com/kiteco/jsparse/kite-go/lang/javascript/scanner"
)

// parseScript parses the statements of a script or function body. The body
// is pushed as the bottom of the statement stack and receives the hoisted
// declarations collected in x.
func (p *parser) parseScript(x *staticContext) *ast.Script {
	if p.opts.Trace {
		defer un(trace(p, "Script"))
	}

	n := &ast.Script{Base: ast.At(p.word())}
	x.push(n)
	n.Body = p.parseStatementList(x, &n.Base)
	x.pop()
	n.FunDecls = x.funDecls
	n.VarDecls = x.varDecls
	return n
}

// parseStatementList parses statements up to a closing brace or the end of input.
func (p *parser) parseStatementList(x *staticContext, parent *ast.Base) []ast.Node {
	var body []ast.Node
	for !p.t.Done() && p.peek(true) != scanner.RightCurly {
		s := p.parseStatement(x)
		parent.Widen(s)
		body = append(body, s)
	}
	return body
}

// parseBlockBody parses a braced statement list; the current token is the
// opening brace.
func (p *parser) parseBlockBody(x *staticContext) *ast.Block {
	n := &ast.Block{Base: ast.At(p.word())}
	x.push(n)
	n.Body = p.parseStatementList(x, &n.Base)
	x.pop()
	n.WidenTo(p.mustMatch(scanner.RightCurly, true))
	return n
}

func (p *parser) parseBlock(x *staticContext) *ast.Block {
	p.mustMatch(scanner.LeftCurly, true)
	return p.parseBlockBody(x)
}

// parseStatement parses a single statement. Statements ending in a closing
// brace return early; all others go through semicolon insertion.
func (p *parser) parseStatement(x *staticContext) ast.Node {
	if p.opts.Trace {
		defer un(trace(p, "Statement"))
	}
	defer p.leave(p.enter())

	tok := p.get(true)
	start := p.word()

	var n ast.Node
	operand := false
	switch tok {
	case scanner.Function:
		// declared functions are hoisted, nested ones are not
		form := ast.DeclaredForm
		if len(x.stmtStack) > 1 {
			form = ast.StatementForm
		}
		return p.parseFunction(x, true, form)

	case scanner.LeftCurly:
		return p.parseBlockBody(x)

	case scanner.If:
		return p.parseIf(x)

	case scanner.Switch:
		return p.parseSwitch(x)

	case scanner.For:
		return p.parseFor(x)

	case scanner.While:
		n := &ast.WhileStmt{Base: ast.At(start)}
		n.Condition = p.parseHead(x, &n.Base)
		n.Body = p.nest(x, n)
		n.Widen(n.Body)
		return n

	case scanner.Do:
		n := &ast.DoWhileStmt{Base: ast.At(start)}
		n.Body = p.nest(x, n)
		n.Widen(n.Body)
		p.mustMatch(scanner.While, true)
		n.Condition = p.parseHead(x, &n.Base)
		// a do-while needs no terminator, even on the same line
		p.match(scanner.Semicolon, true)
		return n

	case scanner.Break, scanner.Continue:
		n = p.parseJump(x, tok)
		operand = true

	case scanner.Try:
		return p.parseTry(x)

	case scanner.Catch, scanner.Finally:
		p.fail(errors.Grammar, tok.String()+" without preceding try")

	case scanner.Throw:
		s := &ast.ThrowStmt{Base: ast.At(start)}
		s.Exception = p.parseExpression(x)
		s.Widen(s.Exception)
		n = s

	case scanner.Return:
		n = p.parseReturnOrYield(x)

	case scanner.With:
		n := &ast.WithStmt{Base: ast.At(start)}
		n.Object = p.parseHead(x, &n.Base)
		n.Body = p.nest(x, n)
		n.Widen(n.Body)
		return n

	case scanner.Var, scanner.Const:
		n = p.parseVariables(x, nil)

	case scanner.Let:
		if p.peek(true) != scanner.LeftParen {
			n = p.parseVariables(x, nil)
			break
		}
		lb := p.parseLetBlock(x, true)
		if lb.Block != nil {
			return lb
		}
		// a let expression in statement position
		n = &ast.ExprStmt{Base: ast.Span(lb), Expression: lb}

	case scanner.Debugger:
		n = &ast.DebuggerStmt{Base: ast.At(start)}
		operand = true

	case scanner.Semicolon:
		return &ast.ExprStmt{Base: ast.At(start)}

	default:
		if tok == scanner.Identifier && p.peek(false) == scanner.Colon {
			return p.parseLabeled(x)
		}

		s := &ast.ExprStmt{Base: ast.At(start)}
		p.unget()
		s.Expression = p.parseExpression(x)
		s.Widen(s.Expression)
		n = s
	}

	p.magicalSemicolon(operand)
	return n
}

// nest parses the body of a compound statement with n on the statement stack.
func (p *parser) nest(x *staticContext, n ast.Node) ast.Node {
	x.push(n)
	body := p.parseStatement(x)
	x.pop()
	return body
}

// magicalSemicolon terminates a statement: the next token must be on a later
// line, a semicolon, a closing brace or the end of input. A semicolon is consumed.
func (p *parser) magicalSemicolon(operand bool) {
	switch p.peekOnSameLine(operand) {
	case scanner.EOF, scanner.Newline, scanner.Semicolon, scanner.RightCurly:
	default:
		p.failAt(p.t.PeekWord(operand), errors.Grammar, "missing ; before statement")
	}
	p.match(scanner.Semicolon, operand)
}

func (p *parser) parseIf(x *staticContext) *ast.IfStmt {
	n := &ast.IfStmt{Base: ast.At(p.word())}
	n.Condition = p.parseHead(x, &n.Base)
	x.push(n)
	n.Then = p.parseStatement(x)
	n.Widen(n.Then)
	if p.match(scanner.Else, true) {
		n.Else = p.parseStatement(x)
		n.Widen(n.Else)
	}
	x.pop()
	return n
}

// parseSwitch parses a switch statement. Cases may follow the default clause.
func (p *parser) parseSwitch(x *staticContext) *ast.SwitchStmt {
	if p.opts.Trace {
		defer un(trace(p, "Switch"))
	}

	n := &ast.SwitchStmt{Base: ast.At(p.word()), DefaultIndex: -1}
	n.Discriminant = p.parseHead(x, &n.Base)
	x.push(n)
	p.mustMatch(scanner.LeftCurly, true)
	for {
		tok := p.get(true)
		if tok == scanner.RightCurly {
			break
		}
		c := &ast.CaseClause{Base: ast.At(p.word())}
		switch tok {
		case scanner.Default:
			if n.DefaultIndex >= 0 {
				p.fail(errors.Grammar, "More than one switch default")
			}
			n.DefaultIndex = len(n.Cases)
		case scanner.Case:
			c.Label = p.parseExpression(x)
			c.Widen(c.Label)
		default:
			p.fail(errors.Grammar, "Invalid switch case")
		}

		colon := p.mustMatch(scanner.Colon, true)
		c.WidenTo(colon)
		c.Statements = &ast.Block{Base: ast.Base{From: colon.End, To: colon.End, Lineno: colon.Line}}
		for {
			tt := p.peek(true)
			if tt == scanner.Case || tt == scanner.Default || tt == scanner.RightCurly {
				break
			}
			s := p.parseStatement(x)
			if len(c.Statements.Body) == 0 {
				c.Statements.From = s.Begin()
			}
			c.Statements.Body = append(c.Statements.Body, s)
			c.Statements.Widen(s)
		}
		c.Widen(c.Statements)
		n.Cases = append(n.Cases, c)
	}
	n.WidenTo(p.word())
	x.pop()
	return n
}

// parseFor parses for (;;), for (in) and for each (in) loops. The head is
// parsed with the in operator suppressed; a single binding or assignable
// expression followed by in makes the loop a for-in.
func (p *parser) parseFor(x *staticContext) ast.Node {
	if p.opts.Trace {
		defer un(trace(p, "For"))
	}

	start := p.word()
	var each bool
	if p.match(scanner.Identifier, false) {
		if p.isWord("each") {
			each = true
		} else {
			p.unget()
		}
	}
	if !x.parenFreeMode {
		p.mustMatch(scanner.LeftParen, true)
	}

	var init ast.Node
	var letDecls []*ast.Identifier
	if tt := p.peek(true); tt != scanner.Semicolon {
		x.inForLoopInit = true
		switch tt {
		case scanner.Var, scanner.Const:
			p.get(true)
			init = p.parseVariables(x, nil)
		case scanner.Let:
			p.get(true)
			if p.peek(true) == scanner.LeftParen {
				init = p.parseLetBlock(x, false)
			} else {
				// let in the head scopes its bindings to the loop
				letDecls = []*ast.Identifier{}
				init = p.parseVariables(x, &letDecls)
			}
		default:
			init = p.parseExpression(x)
		}
		x.inForLoopInit = false
	}

	var loop ast.Node
	var base *ast.Base
	if init != nil && p.match(scanner.In, false) {
		n := &ast.ForInStmt{Base: ast.At(start), Each: each}
		n.Object = p.parseExpression(x)
		if vd, ok := init.(*ast.VarDecl); ok {
			// one declaration, or one destructuring
			if len(vd.Declarators) != 1 && len(vd.Destructurings) != 1 {
				p.failNode(vd, errors.Grammar, "Invalid for..in left-hand side")
			}
			if len(vd.Destructurings) > 0 {
				n.Iterator = vd.Destructurings[0].Pattern
			} else {
				n.Iterator = vd.Declarators[0]
			}
			n.VarDecl = vd
		} else {
			switch init.(type) {
			case *ast.ArrayLit, *ast.ObjectLit:
				p.checkDestructuring(init, false)
			default:
				if !isAssignable(init) {
					p.failNode(init, errors.Grammar, "Invalid for..in left-hand side")
				}
			}
			n.Iterator = init
		}
		n.Widen(init)
		n.Widen(n.Object)
		loop, base = n, &n.Base
	} else {
		n := &ast.ForStmt{Base: ast.At(start), Setup: init}
		n.Widen(init)
		p.mustMatch(scanner.Semicolon, true)
		if each {
			p.fail(errors.Grammar, "Invalid for each..in loop")
		}
		if p.peek(true) != scanner.Semicolon {
			n.Condition = p.parseExpression(x)
			n.Widen(n.Condition)
		}
		p.mustMatch(scanner.Semicolon, true)

		tt := p.peek(true)
		var noUpdate bool
		if x.parenFreeMode {
			noUpdate = tt == scanner.LeftCurly || tt.IsKeyword()
		} else {
			noUpdate = tt == scanner.RightParen
		}
		if !noUpdate {
			n.Update = p.parseExpression(x)
			n.Widen(n.Update)
		}
		loop, base = n, &n.Base
	}

	if !x.parenFreeMode {
		p.mustMatch(scanner.RightParen, false)
	}
	base.WidenTo(p.word())

	body := p.nest(x, loop)
	base.Widen(body)

	switch n := loop.(type) {
	case *ast.ForStmt:
		n.Body = body
		n.LetDecls = letDecls
	case *ast.ForInStmt:
		n.Body = body
		n.LetDecls = letDecls
	}
	return loop
}

// parseJump parses break and continue, resolving the statement they exit.
func (p *parser) parseJump(x *staticContext, tok scanner.Token) ast.Node {
	base := ast.At(p.word())
	var label string
	if p.peekOnSameLine(true) == scanner.Identifier {
		p.get(true)
		label = p.word().Literal
		base.WidenTo(p.word())
	}

	target := p.resolveJump(x, tok, label)
	if tok == scanner.Break {
		return &ast.BreakStmt{Base: base, Label: label, Target: target}
	}
	return &ast.ContinueStmt{Base: base, Label: label, Target: target}
}

// parseTry parses try with any number of, possibly guarded, catch clauses
// and an optional finally block.
func (p *parser) parseTry(x *staticContext) *ast.TryStmt {
	if p.opts.Trace {
		defer un(trace(p, "Try"))
	}

	n := &ast.TryStmt{Base: ast.At(p.word())}
	n.TryBlock = p.parseBlock(x)
	n.Widen(n.TryBlock)
	for p.match(scanner.Catch, true) {
		c := &ast.CatchClause{Base: ast.At(p.word())}
		matched := p.maybeMatchLeftParen(x)
		switch p.get(true) {
		case scanner.LeftBracket, scanner.LeftCurly:
			p.unget()
			c.VarName = p.parseDestructuringExpression(x, true, nil)
		case scanner.Identifier:
			c.VarName = p.identifier()
		default:
			p.fail(errors.Grammar, "missing identifier in catch")
		}

		if p.match(scanner.If, false) {
			if x.ecma3OnlyMode {
				p.fail(errors.Mode, "Illegal catch guard")
			}
			if k := len(n.CatchClauses); k > 0 && n.CatchClauses[k-1].Guard == nil {
				p.fail(errors.Grammar, "Guarded catch after unguarded")
			}
			c.Guard = p.parseExpression(x)
		}
		p.maybeMatchRightParen(x, matched)
		c.Block = p.parseBlock(x)
		c.Widen(c.Block)
		n.CatchClauses = append(n.CatchClauses, c)
		n.Widen(c)
	}
	if p.match(scanner.Finally, true) {
		n.FinallyBlock = p.parseBlock(x)
		n.Widen(n.FinallyBlock)
	}
	if len(n.CatchClauses) == 0 && n.FinallyBlock == nil {
		p.fail(errors.Grammar, "Invalid try statement")
	}
	return n
}

func (p *parser) parseLabeled(x *staticContext) *ast.LabeledStmt {
	w := p.word()
	if x.hasLabel(w.Literal) {
		p.fail(errors.Grammar, "Duplicate label")
	}
	p.get(false)

	n := &ast.LabeledStmt{Base: ast.At(w), Label: w.Literal}
	n.Statement = p.nest(x, n)
	n.Widen(n.Statement)
	return n
}

// parseReturnOrYield parses return and yield; the current token is the keyword.
// The operand is absent at the end of the line or statement, and for yield
// also before tokens that close an enclosing construct.
func (p *parser) parseReturnOrYield(x *staticContext) ast.Node {
	w := p.word()
	tok := w.Token
	if tok == scanner.Return {
		if !x.inFunction {
			p.fail(errors.Scope, "Return not in function")
		}
	} else {
		if !x.inFunction {
			p.fail(errors.Scope, "Yield not in function")
		}
		x.isGenerator = true
	}

	tt := p.peekOnSameLine(true)
	hasOperand := tt != scanner.EOF && tt != scanner.Newline &&
		tt != scanner.Semicolon && tt != scanner.RightCurly
	if tok == scanner.Yield {
		switch tt {
		case scanner.Yield, scanner.RightBracket, scanner.RightParen, scanner.Colon, scanner.Comma:
			hasOperand = false
		}
	}

	var value ast.Node
	if hasOperand {
		if tok == scanner.Return {
			value = p.parseExpression(x)
			x.hasReturnWithValue = true
		} else {
			value = p.parseAssign(x)
		}
	} else if tok == scanner.Return {
		x.hasEmptyReturn = true
	}

	if x.isGenerator && x.hasReturnWithValue {
		p.fail(errors.Grammar, "Generator returns a value")
	}
	if x.isGenerator && x.hasEmptyReturn {
		p.fail(errors.Grammar, "return in generator")
	}

	if tok == scanner.Return {
		n := &ast.ReturnStmt{Base: ast.At(w), Value: value}
		n.Widen(value)
		return n
	}
	n := &ast.YieldExpr{Base: ast.At(w), Value: value}
	n.Widen(value)
	return n
}

// parseFunction parses a function after the function keyword, or for
// accessors and methods, after the token preceding the name.
func (p *parser) parseFunction(x *staticContext, requireName bool, form ast.FunctionForm) *ast.Function {
	if p.opts.Trace {
		defer un(trace(p, "Function"))
	}

	start := p.word()
	f := &ast.Function{Form: form}
	if p.match(scanner.Identifier, false) {
		f.Name = p.word().Literal
	} else if requireName {
		p.fail(errors.Grammar, "missing function identifier")
	}
	// accessors and methods start at their name
	if start.Token != scanner.Function {
		start = p.word()
	}
	f.Base = ast.At(start)

	x2 := newStaticContext(true, p.opts)

	p.mustMatch(scanner.LeftParen, false)
	if !p.match(scanner.RightParen, true) {
		for {
			switch p.get(true) {
			case scanner.LeftBracket, scanner.LeftCurly:
				p.unget()
				f.Params = append(f.Params, p.parseDestructuringExpression(x2, true, nil))
			case scanner.Identifier:
				f.Params = append(f.Params, p.identifier())
			default:
				p.fail(errors.Grammar, "missing formal parameter")
			}
			if !p.match(scanner.Comma, false) {
				break
			}
		}
		p.mustMatch(scanner.RightParen, false)
	}

	if p.get(true) != scanner.LeftCurly {
		// expression closure
		p.unget()
		f.ExpressionClosure = true
		f.Body = p.parseAssign(x2)
		if x2.isGenerator {
			p.fail(errors.Grammar, "Generator returns a value")
		}
	} else {
		body := p.parseScript(x2)
		body.WidenTo(p.mustMatch(scanner.RightCurly, false))
		f.Body = body
	}
	f.Widen(f.Body)

	f.IsGenerator = x2.isGenerator
	f.UsesSuper = x2.usesSuper || x2.possibleDirectEval
	f.PossibleDirectEval = x2.possibleDirectEval
	if form == ast.DeclaredForm {
		x.funDecls = append(x.funDecls, f)
	}
	return f
}

// parseVariables parses a var, const or let declaration list; the current
// token is the keyword, or the parenthesis of a let block. Let bindings go to
// letScope when given, otherwise to the innermost block.
func (p *parser) parseVariables(x *staticContext, letScope *[]*ast.Identifier) *ast.VarDecl {
	if p.opts.Trace {
		defer un(trace(p, "Variables"))
	}

	w := p.word()
	n := &ast.VarDecl{Base: ast.At(w)}
	var scope *[]*ast.Identifier
	switch w.Token {
	case scanner.Var:
		n.DeclKind = ast.KindVar
		scope = &x.varDecls
	case scanner.Const:
		n.DeclKind = ast.KindConst
		scope = &x.varDecls
	default:
		n.DeclKind = ast.KindLet
		scope = letScope
		if scope == nil {
			scope = x.letScope()
		}
	}

	for {
		d := p.parseDeclarator(x, n, scope)
		n.Declarators = append(n.Declarators, d)
		n.Widen(d)
		if !p.match(scanner.Comma, false) {
			break
		}
	}
	return n
}

func (p *parser) parseDeclarator(x *staticContext, n *ast.VarDecl, scope *[]*ast.Identifier) *ast.Declarator {
	d := &ast.Declarator{ReadOnly: n.DeclKind == ast.KindConst}

	switch p.get(true) {
	case scanner.LeftBracket, scanner.LeftCurly:
		p.unget()
		pattern := p.parseDestructuringExpression(x, true, scope)
		d.Base = ast.Span(pattern)
		d.Pattern = pattern
		n.Destructurings = append(n.Destructurings, &ast.Destructuring{Pattern: pattern, Decl: d})

		// the object of a for-in supplies the value
		if x.inForLoopInit && p.peek(false) == scanner.In {
			return d
		}
		p.mustMatch(scanner.Assign, false)

	case scanner.Identifier:
		id := p.identifier()
		d.Base = id.Base
		d.Name = id
		*scope = append(*scope, id)
		if !p.match(scanner.Assign, false) {
			return d
		}

	default:
		p.fail(errors.Grammar, "missing variable name")
	}

	if p.word().AssignOp != scanner.Illegal {
		p.fail(errors.Grammar, "Invalid variable initialization")
	}
	d.Initializer = p.parseAssign(x)
	d.Widen(d.Initializer)
	return d
}

// parseLetBlock parses let (bindings) followed by a block when isStatement is
// set and a brace follows, or by a single expression otherwise.
func (p *parser) parseLetBlock(x *staticContext, isStatement bool) *ast.LetBlockExpr {
	if p.opts.Trace {
		defer un(trace(p, "LetBlock"))
	}

	n := &ast.LetBlockExpr{Base: ast.At(p.word())}
	p.mustMatch(scanner.LeftParen, true)
	n.Variables = p.parseVariables(x, &n.VarDecls)
	n.WidenTo(p.mustMatch(scanner.RightParen, false))

	if isStatement && p.peek(true) == scanner.LeftCurly {
		n.Block = p.parseBlock(x)
		n.Widen(n.Block)
	} else {
		n.Expression = p.parseAssign(x)
		n.Widen(n.Expression)
	}
	return n
}

package parser

import (
	"github.com/kiteco/jsparse/kite-go/lang/javascript/ast"
	"github.com/kiteco/jsparse/kite-go/lang/javascript/parser/errors"
	"github.com/kiteco/jsparse/kite-go/lang/javascript/scanner"
)

// parseExpression parses a comma separated list of assignment expressions.
func (p *parser) parseExpression(x *staticContext) ast.Node {
	if p.opts.Trace {
		defer un(trace(p, "Expression"))
	}

	n := p.parseAssign(x)
	if !p.match(scanner.Comma, false) {
		return n
	}

	c := &ast.CommaExpr{Base: ast.Span(n), List: []ast.Node{n}}
	for {
		p.checkYieldParens(c.List[len(c.List)-1])
		e := p.parseAssign(x)
		c.List = append(c.List, e)
		c.Widen(e)
		if !p.match(scanner.Comma, false) {
			break
		}
	}
	return c
}

// checkYieldParens fails on a bare yield followed by more list elements.
func (p *parser) checkYieldParens(n ast.Node) {
	if _, ok := n.(*ast.YieldExpr); ok && !ast.IsParenthesized(n) {
		p.fail(errors.Grammar, "Yield expression must be parenthesized")
	}
}

// parseAssign parses an assignment expression. Yield is handled here as it
// may be the leftmost operand of an expression.
func (p *parser) parseAssign(x *staticContext) ast.Node {
	defer p.leave(p.enter())

	if p.match(scanner.Yield, true) {
		return p.parseReturnOrYield(x)
	}

	lhs := p.parseConditional(x)
	if !p.match(scanner.Assign, false) {
		return lhs
	}

	w := p.word()
	switch lhs.(type) {
	case *ast.ObjectLit, *ast.ArrayLit:
		if w.AssignOp != scanner.Illegal {
			p.fail(errors.Grammar, "Invalid destructuring assignment")
		}
		p.checkDestructuring(lhs, false)
	case *ast.Identifier, *ast.DotExpr, *ast.IndexExpr, *ast.CallExpr:
	default:
		p.fail(errors.Grammar, "Bad left-hand side of assignment")
	}

	n := &ast.AssignExpr{Base: ast.At(w), Op: w.AssignOp, Target: lhs}
	n.Value = p.parseAssign(x)
	n.Widen(lhs)
	n.Widen(n.Value)
	return n
}

func (p *parser) parseConditional(x *staticContext) ast.Node {
	n := p.parseBinary(x, 0)
	if !p.match(scanner.Hook, false) {
		return n
	}

	c := &ast.ConditionalExpr{Base: ast.At(p.word()), Condition: n}
	c.Widen(n)

	// in is unambiguous between ? and :
	old := x.inForLoopInit
	x.inForLoopInit = false
	c.Then = p.parseAssign(x)
	x.inForLoopInit = old

	if !p.match(scanner.Colon, false) {
		p.fail(errors.Grammar, "missing : after ?")
	}
	c.Else = p.parseAssign(x)
	c.Widen(c.Else)
	return c
}

// binaryLevels lists the binary operators from the loosest binding to the
// tightest. All of them are left associative.
var binaryLevels = [][]scanner.Token{
	{scanner.Or},
	{scanner.And},
	{scanner.BitOr},
	{scanner.BitXor},
	{scanner.BitAnd},
	{scanner.Eq, scanner.Ne, scanner.StrictEq, scanner.StrictNe},
	{scanner.Lt, scanner.Le, scanner.Ge, scanner.Gt, scanner.In, scanner.Instanceof},
	{scanner.Lsh, scanner.Rsh, scanner.Ursh},
	{scanner.Plus, scanner.Minus},
	{scanner.Mul, scanner.Div, scanner.Mod},
}

// relationalLevel is the level of in, which is not an operator at the top
// of a for loop head.
const relationalLevel = 6

func (p *parser) parseBinary(x *staticContext, level int) ast.Node {
	if level == len(binaryLevels) {
		return p.parseUnary(x)
	}

	allowIn := true
	if level == relationalLevel {
		// operands of a relational operator may use in freely
		allowIn = !x.inForLoopInit
		x.inForLoopInit = false
	}

	n := p.parseBinary(x, level+1)
	for {
		tok := p.peek(false)
		if !isOperatorAt(level, tok) || tok == scanner.In && !allowIn {
			break
		}
		p.get(false)
		b := &ast.BinaryExpr{Base: ast.At(p.word()), Op: tok, Left: n}
		b.Right = p.parseBinary(x, level+1)
		b.Widen(b.Left)
		b.Widen(b.Right)
		n = b
	}

	if level == relationalLevel {
		x.inForLoopInit = !allowIn
	}
	return n
}

func isOperatorAt(level int, tok scanner.Token) bool {
	for _, op := range binaryLevels[level] {
		if op == tok {
			return true
		}
	}
	return false
}

func (p *parser) parseUnary(x *staticContext) ast.Node {
	if p.opts.Trace {
		defer un(trace(p, "Unary"))
	}
	defer p.leave(p.enter())

	tok := p.get(true)
	w := p.word()
	switch tok {
	case scanner.Delete, scanner.Void, scanner.Typeof,
		scanner.Not, scanner.BitNot, scanner.Plus, scanner.Minus:
		n := &ast.UnaryExpr{Base: ast.At(w), Op: tok}
		n.Operand = p.parseUnary(x)
		n.Widen(n.Operand)
		return n

	case scanner.Increment, scanner.Decrement:
		n := &ast.UpdateExpr{Base: ast.At(w), Op: tok}
		n.Operand = p.parseMember(x, true)
		n.Widen(n.Operand)
		return n
	}

	p.unget()
	n := p.parseMember(x, true)

	// postfix operators must be on the same line
	if tt := p.peekOnSameLine(false); tt == scanner.Increment || tt == scanner.Decrement {
		p.get(false)
		u := &ast.UpdateExpr{Base: ast.At(p.word()), Op: tt, Operand: n, Postfix: true}
		u.Widen(n)
		return u
	}
	return n
}

// parseMember parses new expressions and chains of property accesses,
// extensions, <| and, when allowCall is set, calls.
func (p *parser) parseMember(x *staticContext, allowCall bool) ast.Node {
	if p.opts.Trace {
		defer un(trace(p, "Member"))
	}

	var n ast.Node
	if p.match(scanner.New, true) {
		defer p.leave(p.enter())
		ne := &ast.NewExpr{Base: ast.At(p.word())}
		ne.Callee = p.parseMember(x, false)
		ne.Widen(ne.Callee)
		if p.match(scanner.LeftParen, false) {
			ne.Args = p.parseArgumentList(x)
			ne.Widen(ne.Args)
		}
		n = ne
	} else {
		n = p.parsePrimary(x, false)
	}

	for {
		tok := p.get(false)
		w := p.word()
		switch tok {
		case scanner.Dot:
			if !x.ecma3OnlyMode && p.peek(true) == scanner.LeftCurly {
				if !x.harmonyMode {
					p.fail(errors.Mode, "Missing identifier")
				}
				p.get(true)
				e := &ast.ExtendExpr{Base: ast.At(w), Object: n}
				e.Literal = p.parseObjectInitializer(x)
				e.Widen(n)
				e.Widen(e.Literal)
				n = e
				continue
			}

			_, isSuper := n.(*ast.SuperExpr)
			d := &ast.DotExpr{Base: ast.At(w), Object: n, Super: isSuper}
			if tt := p.get(false); tt != scanner.Identifier && !tt.IsKeyword() {
				msg := "Missing identifier"
				if x.harmonyMode {
					msg += " or object literal"
				}
				p.fail(errors.Grammar, msg)
			}
			d.Property = p.identifier()
			d.Widen(n)
			d.Widen(d.Property)
			n = d

		case scanner.Proto:
			if !x.harmonyMode {
				p.fail(errors.Mode, "Illegal operator")
			}
			pe := &ast.ProtoExpr{Base: ast.At(w), Proto: n}
			pe.Literal = p.parsePrimary(x, true)
			pe.Widen(n)
			pe.Widen(pe.Literal)
			n = pe

		case scanner.LeftBracket:
			_, isSuper := n.(*ast.SuperExpr)
			ix := &ast.IndexExpr{Base: ast.At(w), Object: n, Super: isSuper}
			ix.Index = p.parseExpression(x)
			ix.WidenTo(p.mustMatch(scanner.RightBracket, false))
			ix.Widen(n)
			n = ix

		case scanner.LeftParen:
			if !allowCall {
				p.unget()
				return n
			}
			c := &ast.CallExpr{Base: ast.At(w), Callee: n}
			c.Args = p.parseArgumentList(x)
			c.Widen(n)
			c.Widen(c.Args)
			if id, ok := n.(*ast.Identifier); ok && id.Name == "eval" {
				x.possibleDirectEval = true
			}
			n = c

		default:
			p.unget()
			return n
		}
	}
}

// parseArgumentList parses call arguments; the current token is the opening
// parenthesis. A generator expression must be the only argument.
func (p *parser) parseArgumentList(x *staticContext) *ast.ArgList {
	n := &ast.ArgList{Base: ast.At(p.word())}
	if p.match(scanner.RightParen, true) {
		n.WidenTo(p.word())
		return n
	}

	for {
		a := p.parseAssign(x)
		if p.peek(false) == scanner.Comma {
			p.checkYieldParens(a)
		}
		if p.match(scanner.For, false) {
			a = p.parseGeneratorExpression(x, a)
			if len(n.Args) > 0 || p.peek(true) == scanner.Comma {
				p.fail(errors.Grammar, "Generator expression must be parenthesized")
			}
		}
		n.Args = append(n.Args, a)
		n.Widen(a)
		if !p.match(scanner.Comma, false) {
			break
		}
	}
	n.WidenTo(p.mustMatch(scanner.RightParen, false))
	return n
}

// parsePrimary parses an operand. After <| only literals are allowed.
func (p *parser) parsePrimary(x *staticContext, mustBeLiteral bool) ast.Node {
	if p.opts.Trace {
		defer un(trace(p, "Primary"))
	}

	tok := p.get(true)
	w := p.word()
	switch tok {
	case scanner.Function:
		return p.parseFunction(x, false, ast.ExpressedForm)

	case scanner.LeftBracket:
		return p.parseArrayInitializer(x)

	case scanner.LeftCurly:
		return p.parseObjectInitializer(x)

	case scanner.LeftParen:
		if mustBeLiteral {
			p.fail(errors.Grammar, "literal expected")
		}
		n := p.parseParenExpression(x)
		ast.Parenthesize(n, w, p.mustMatch(scanner.RightParen, false))
		return n

	case scanner.Let:
		if mustBeLiteral {
			p.fail(errors.Grammar, "literal expected")
		}
		return p.parseLetBlock(x, false)

	case scanner.Super:
		if !x.harmonyMode {
			p.fail(errors.Mode, "super is reserved")
		}
		if mustBeLiteral {
			p.fail(errors.Grammar, "literal expected")
		}
		x.usesSuper = true
		return &ast.SuperExpr{Base: ast.At(w)}

	case scanner.This:
		if mustBeLiteral {
			p.fail(errors.Grammar, "literal expected")
		}
		return &ast.ThisExpr{Base: ast.At(w)}

	case scanner.Identifier:
		if mustBeLiteral {
			p.fail(errors.Grammar, "literal expected")
		}
		return p.identifier()

	case scanner.Null, scanner.True, scanner.False,
		scanner.Number, scanner.String, scanner.RegExp:
		return p.literal()
	}

	p.fail(errors.Grammar, "missing operand")
	return nil
}

// parseArrayInitializer parses an array literal or, when a single element is
// followed by for, an array comprehension.
func (p *parser) parseArrayInitializer(x *staticContext) ast.Node {
	w := p.word()
	n := &ast.ArrayLit{Base: ast.At(w)}
	for {
		tt := p.peek(true)
		if tt == scanner.RightBracket {
			break
		}
		if tt == scanner.Comma {
			p.get(true)
			n.Elements = append(n.Elements, nil)
			continue
		}
		e := p.parseAssign(x)
		n.Elements = append(n.Elements, e)
		n.Widen(e)
		if !p.match(scanner.Comma, false) {
			break
		}
	}

	if len(n.Elements) == 1 && n.Elements[0] != nil && p.match(scanner.For, false) {
		c := &ast.ArrayComp{Base: ast.At(w), Expression: n.Elements[0]}
		c.Tail = p.parseComprehensionTail(x)
		c.Widen(c.Expression)
		c.Widen(c.Tail)
		c.WidenTo(p.mustMatch(scanner.RightBracket, false))
		return c
	}
	n.WidenTo(p.mustMatch(scanner.RightBracket, false))
	return n
}

// parseParenExpression parses an expression in parentheses, which may turn
// out to be the body of a generator expression. in is always an operator
// inside parentheses.
func (p *parser) parseParenExpression(x *staticContext) ast.Node {
	old := x.inForLoopInit
	if p.word().Token == scanner.LeftParen {
		x.inForLoopInit = false
	}
	n := p.parseExpression(x)
	x.inForLoopInit = old

	if p.match(scanner.For, false) {
		switch n.(type) {
		case *ast.YieldExpr:
			if !ast.IsParenthesized(n) {
				p.fail(errors.Grammar, "Yield expression must be parenthesized")
			}
		case *ast.CommaExpr:
			if !ast.IsParenthesized(n) {
				p.fail(errors.Grammar, "Generator expression must be parenthesized")
			}
		}
		n = p.parseGeneratorExpression(x, n)
	}
	return n
}

// parseHead parses the condition of if, while, with and switch, and the
// guard of a comprehension. base is widened over the closing parenthesis.
func (p *parser) parseHead(x *staticContext, base *ast.Base) ast.Node {
	matched := p.maybeMatchLeftParen(x)
	n := p.parseParenExpression(x)
	p.maybeMatchRightParen(x, matched)
	base.Widen(n)
	if matched {
		base.WidenTo(p.word())
		return n
	}

	if !ast.IsParenthesized(n) {
		if tt := p.peek(true); tt != scanner.LeftCurly && !tt.IsKeyword() {
			p.fail(errors.Grammar, "Unparenthesized head followed by unbraced body")
		}
	}
	return n
}

// parseGeneratorExpression wraps e in a generator; the current token is for.
func (p *parser) parseGeneratorExpression(x *staticContext, e ast.Node) *ast.GeneratorExpr {
	g := &ast.GeneratorExpr{Base: ast.Span(e), Expression: e}
	g.Tail = p.parseComprehensionTail(x)
	g.Widen(g.Tail)
	return g
}

// parseComprehensionTail parses one or more for [each] (binding in object)
// clauses and an optional if guard; the current token is the first for.
// Bindings are local to the comprehension and are not hoisted.
func (p *parser) parseComprehensionTail(x *staticContext) *ast.CompTail {
	tail := &ast.CompTail{Base: ast.At(p.word())}
	for {
		f := &ast.ForInStmt{Base: ast.At(p.word())}
		if p.match(scanner.Identifier, false) {
			if p.isWord("each") {
				f.Each = true
			} else {
				p.unget()
			}
		}

		matched := p.maybeMatchLeftParen(x)
		switch p.get(true) {
		case scanner.LeftBracket, scanner.LeftCurly:
			p.unget()
			f.Iterator = p.parseDestructuringExpression(x, false, nil)
		case scanner.Identifier:
			id := p.identifier()
			f.Iterator = id
			f.VarDecl = &ast.VarDecl{
				Base:        id.Base,
				DeclKind:    ast.KindVar,
				Declarators: []*ast.Declarator{{Base: id.Base, Name: id}},
			}
		default:
			p.fail(errors.Grammar, "missing identifier")
		}

		p.mustMatch(scanner.In, false)
		f.Object = p.parseExpression(x)
		p.maybeMatchRightParen(x, matched)
		f.Widen(f.Iterator)
		f.Widen(f.Object)
		if matched {
			f.WidenTo(p.word())
		}
		tail.Clauses = append(tail.Clauses, f)
		tail.Widen(f)

		if !p.match(scanner.For, false) {
			break
		}
	}

	if p.match(scanner.If, false) {
		tail.Guard = p.parseHead(x, &tail.Base)
	}
	return tail
}

// parseObjectInitializer parses an object literal; the current token is the
// opening brace.
func (p *parser) parseObjectInitializer(x *staticContext) *ast.ObjectLit {
	if p.opts.Trace {
		defer un(trace(p, "ObjectInitializer"))
	}

	n := &ast.ObjectLit{Base: ast.At(p.word())}
	if p.match(scanner.RightCurly, false) {
		n.WidenTo(p.word())
		return n
	}

	for {
		// members ending in a function body need no comma in harmony
		commaOptional := false
		tok := p.get(false)
		w := p.word()
		next := p.peek(false)

		switch {
		case tok == scanner.Identifier && (w.Literal == "get" || w.Literal == "set") && isPropertyName(next):
			if x.ecma3OnlyMode {
				p.fail(errors.Mode, "Illegal property accessor")
			}
			a := &ast.AccessorDef{Base: ast.At(w), Getter: w.Literal == "get"}
			p.get(false)
			a.Name, a.Computed = p.parsePropertyName(x)
			if next == scanner.Identifier {
				p.unget()
				a.Func = p.parseFunction(x, true, ast.ExpressedForm)
			} else {
				a.Func = p.parseFunction(x, false, ast.ExpressedForm)
			}
			if a.Getter && len(a.Func.Params) != 0 {
				p.fail(errors.Grammar, "get accessor, too many arguments")
			} else if !a.Getter && len(a.Func.Params) != 1 {
				p.fail(errors.Grammar, "set accessor, must have one argument")
			}
			a.Widen(a.Func)
			n.Properties = append(n.Properties, a)
			commaOptional = x.harmonyMode

		case tok == scanner.RightCurly:
			if x.ecma3OnlyMode {
				p.fail(errors.Mode, "Illegal trailing ,")
			}
			n.WidenTo(w)
			return n

		default:
			name, computed := p.parsePropertyName(x)
			switch {
			case p.match(scanner.Colon, false):
				pi := &ast.PropertyInit{Base: ast.At(w), Name: name, Computed: computed}
				pi.Value = p.parseAssign(x)
				pi.Widen(name)
				pi.Widen(pi.Value)
				n.Properties = append(n.Properties, pi)

			case p.peek(false) == scanner.LeftParen:
				if !x.harmonyMode {
					p.fail(errors.Mode, "Illegal property definition")
				}
				m := &ast.MethodInit{Base: ast.At(w), Name: name, Computed: computed}
				if tok == scanner.Identifier {
					p.unget()
					m.Func = p.parseFunction(x, true, ast.MethodForm)
				} else {
					m.Func = p.parseFunction(x, false, ast.MethodForm)
				}
				m.Widen(m.Func)
				n.Properties = append(n.Properties, m)
				commaOptional = x.harmonyMode

			default:
				// {x, y} stands for {x: x, y: y}
				if tt := p.peek(false); tt != scanner.Comma && tt != scanner.RightCurly {
					p.fail(errors.Grammar, "missing : after property")
				}
				if tok != scanner.Identifier {
					p.fail(errors.Grammar, "Property name must be identifier")
				}
				pi := &ast.PropertyInit{Base: ast.At(w), Name: name, Value: name, Shorthand: true}
				n.Properties = append(n.Properties, pi)
			}
		}

		if !p.match(scanner.Comma, false) && !commaOptional {
			break
		}
	}
	n.WidenTo(p.mustMatch(scanner.RightCurly, false))
	return n
}

// isPropertyName reports whether tok may start a property name.
func isPropertyName(tok scanner.Token) bool {
	switch tok {
	case scanner.Identifier, scanner.String, scanner.Number, scanner.LeftBracket:
		return true
	}
	return tok.IsKeyword()
}

// parsePropertyName turns the current token into a property name. Computed
// names [expr] are a harmony extension, keywords are rejected in ecma3.
func (p *parser) parsePropertyName(x *staticContext) (ast.Node, bool) {
	w := p.word()
	switch {
	case w.Token == scanner.Identifier:
		return p.identifier(), false
	case w.Token == scanner.Number, w.Token == scanner.String:
		return p.literal(), false
	case w.Token == scanner.LeftBracket:
		if !x.harmonyMode {
			p.fail(errors.Mode, "Invalid property name")
		}
		n := p.parseExpression(x)
		p.mustMatch(scanner.RightBracket, false)
		return n, true
	case w.Token.IsKeyword():
		if x.ecma3OnlyMode {
			p.fail(errors.Mode, "Invalid property name")
		}
		return p.identifier(), false
	}
	p.fail(errors.Grammar, "Invalid property name")
	return nil, false
}

// identifier returns the current token, an identifier or a keyword used as
// a name, as an Identifier.
func (p *parser) identifier() *ast.Identifier {
	w := p.word()
	return &ast.Identifier{Base: ast.At(w), Name: w.Literal}
}

// literal returns the current token as a Literal. String values are decoded.
func (p *parser) literal() *ast.Literal {
	w := p.word()
	n := &ast.Literal{Base: ast.At(w), Raw: w.Literal, Value: w.Literal}
	switch w.Token {
	case scanner.Number:
		n.LitKind = ast.KindNumber
	case scanner.String:
		n.LitKind = ast.KindString
		v, err := scanner.Unquote(w.Literal)
		if err != nil {
			p.fail(errors.Lexical, err.Error())
		}
		n.Value = v
	case scanner.RegExp:
		n.LitKind = ast.KindRegExp
	case scanner.Null:
		n.LitKind = ast.KindNull
	case scanner.True:
		n.LitKind = ast.KindTrue
	case scanner.False:
		n.LitKind = ast.KindFalse
	}
	return n
}

package ast

import (
	"go/token"
	"reflect"

	"github.com/kiteco/jsparse/kite-go/lang/javascript/scanner"
)

// Node in a javascript AST
type Node interface {
	Kind() Kind
	// Begin is the byte offset of the first character of the node (inclusive, 0 based).
	Begin() token.Pos
	// End is the byte offset just past the node (exclusive, 0 based).
	End() token.Pos
	// Line of the token the node was created from.
	Line() int

	base() *Base
}

// Base holds the source span shared by every node. The span starts out as
// the leading token and only ever grows as children are attached.
type Base struct {
	From   token.Pos
	To     token.Pos
	Lineno int
	// Parens is set when the expression was wrapped in parentheses, in
	// which case the span includes them.
	Parens bool
}

// At returns a Base spanning the given word.
func At(w scanner.Word) Base {
	return Base{From: w.Begin, To: w.End, Lineno: w.Line}
}

// Begin implements Node
func (b *Base) Begin() token.Pos { return b.From }

// End implements Node
func (b *Base) End() token.Pos { return b.To }

// Line implements Node
func (b *Base) Line() int { return b.Lineno }

func (b *Base) base() *Base { return b }

// Widen grows the span to cover n; nil nodes are ignored.
func (b *Base) Widen(n Node) {
	if IsNil(n) {
		return
	}
	if n.Begin() < b.From {
		b.From = n.Begin()
	}
	if n.End() > b.To {
		b.To = n.End()
	}
}

// WidenTo grows the span to cover the given word, typically a closing token.
func (b *Base) WidenTo(w scanner.Word) {
	if w.Begin < b.From {
		b.From = w.Begin
	}
	if w.End > b.To {
		b.To = w.End
	}
}

// Parenthesize marks n as wrapped in parentheses spanning open..close.
func Parenthesize(n Node, open, close scanner.Word) {
	b := n.base()
	b.Parens = true
	b.WidenTo(open)
	b.WidenTo(close)
}

// Span returns a Base covering the span of n.
func Span(n Node) Base {
	return Base{From: n.Begin(), To: n.End(), Lineno: n.Line()}
}

// IsParenthesized reports whether n was wrapped in parentheses.
func IsParenthesized(n Node) bool {
	return !IsNil(n) && n.base().Parens
}

// IsNil returns true if the node is nil or an interface holding a nil pointer
func IsNil(n Node) bool {
	if n == nil {
		return true
	}
	v := reflect.ValueOf(n)
	return v.Kind() == reflect.Ptr && v.IsNil()
}

// -- statements

// Script is the root of a program or the body of a function. It owns the
// declarations hoisted out of its statements.
type Script struct {
	Base
	Body     []Node
	FunDecls []*Function
	VarDecls []*Identifier
}

// Block is a brace delimited statement list. VarDecls holds its block scoped let bindings.
type Block struct {
	Base
	Body     []Node
	VarDecls []*Identifier
}

// IfStmt is an if statement; Else may be nil.
type IfStmt struct {
	Base
	Condition Node
	Then      Node
	Else      Node
}

// ForStmt is a for (setup; condition; update) loop. Any of the clauses may be nil.
type ForStmt struct {
	Base
	Setup     Node
	Condition Node
	Update    Node
	Body      Node
	// LetDecls are the let bindings of the loop head, scoped to the loop.
	LetDecls []*Identifier
}

// ForInStmt is a for (iterator in object) loop, or for each when Each is set.
// Iterator is a Declarator when the head declares a single name, a destructuring
// pattern when it declares one, and an assignable expression otherwise.
type ForInStmt struct {
	Base
	Each     bool
	Iterator Node
	VarDecl  *VarDecl
	Object   Node
	Body     Node
	LetDecls []*Identifier
}

// WhileStmt is a while loop.
type WhileStmt struct {
	Base
	Condition Node
	Body      Node
}

// DoWhileStmt is a do ... while loop.
type DoWhileStmt struct {
	Base
	Body      Node
	Condition Node
}

// SwitchStmt is a switch statement. DefaultIndex is the index of the default
// clause in Cases, or -1.
type SwitchStmt struct {
	Base
	Discriminant Node
	Cases        []*CaseClause
	DefaultIndex int
}

// CaseClause is a case or default clause of a switch; Label is nil for default.
type CaseClause struct {
	Base
	Label      Node
	Statements *Block
}

// TryStmt is a try statement with at least one catch clause or a finally block.
type TryStmt struct {
	Base
	TryBlock     *Block
	CatchClauses []*CatchClause
	FinallyBlock *Block
}

// CatchClause binds VarName, an identifier or destructuring pattern, when Guard (if any) holds.
type CatchClause struct {
	Base
	VarName Node
	Guard   Node
	Block   *Block
}

// ThrowStmt is a throw statement.
type ThrowStmt struct {
	Base
	Exception Node
}

// BreakStmt is a break statement. Target is the statement it exits; it is not
// a child and is never walked.
type BreakStmt struct {
	Base
	Label  string
	Target Node
}

// ContinueStmt is a continue statement; Target is always a loop.
type ContinueStmt struct {
	Base
	Label  string
	Target Node
}

// ReturnStmt is a return statement; Value may be nil.
type ReturnStmt struct {
	Base
	Value Node
}

// WithStmt is a with statement.
type WithStmt struct {
	Base
	Object Node
	Body   Node
}

// LabeledStmt is a statement prefixed by a label.
type LabeledStmt struct {
	Base
	Label     string
	Statement Node
}

// VarDecl is a var, let or const declaration list.
type VarDecl struct {
	Base
	DeclKind       Kind
	Declarators    []*Declarator
	Destructurings []*Destructuring
}

// Declarator binds either Name or a destructuring Pattern, with an optional initializer.
type Declarator struct {
	Base
	Name        *Identifier
	Pattern     Node
	Initializer Node
	ReadOnly    bool
}

// Destructuring records a declarator whose target is a pattern. It is not a node.
type Destructuring struct {
	Pattern Node
	Decl    *Declarator
}

// LetBlockExpr is let (bindings) followed by either a block or, in expression
// position, a single expression.
type LetBlockExpr struct {
	Base
	Variables  *VarDecl
	Block      *Block
	Expression Node
	VarDecls   []*Identifier
}

// ExprStmt is an expression statement; a nil Expression is the empty statement.
type ExprStmt struct {
	Base
	Expression Node
}

// DebuggerStmt is a debugger statement.
type DebuggerStmt struct {
	Base
}

// -- functions

// FunctionForm tells how a function was introduced.
type FunctionForm int

const (
	// DeclaredForm is a function statement at the top of a script or function body; it is hoisted.
	DeclaredForm FunctionForm = iota
	// ExpressedForm is a function expression.
	ExpressedForm
	// StatementForm is a function statement nested in a block.
	StatementForm
	// MethodForm is an object literal method.
	MethodForm
)

func (f FunctionForm) String() string {
	switch f {
	case DeclaredForm:
		return "declared"
	case ExpressedForm:
		return "expressed"
	case StatementForm:
		return "statement"
	case MethodForm:
		return "method"
	}
	return "unknown"
}

// Function is a function definition. Body is a *Script, or an expression for
// expression closures.
type Function struct {
	Base
	Name              string
	Params            []Node
	Body              Node
	Form              FunctionForm
	ExpressionClosure bool
	IsGenerator       bool
	// UsesSuper is set when the body references super or may call eval directly.
	UsesSuper          bool
	PossibleDirectEval bool
}

// -- expressions

// YieldExpr is a yield expression; Value may be nil.
type YieldExpr struct {
	Base
	Value Node
}

// CommaExpr is a comma separated expression list.
type CommaExpr struct {
	Base
	List []Node
}

// AssignExpr is an assignment. Op is scanner.Illegal for plain =, and the
// binary operator for compound assignments.
type AssignExpr struct {
	Base
	Op     scanner.Token
	Target Node
	Value  Node
}

// ConditionalExpr is cond ? then : else.
type ConditionalExpr struct {
	Base
	Condition Node
	Then      Node
	Else      Node
}

// BinaryExpr is a binary operation, including the logical operators, in and instanceof.
type BinaryExpr struct {
	Base
	Op    scanner.Token
	Left  Node
	Right Node
}

// UnaryExpr is a prefix operator other than ++ and --. Op is Plus or Minus for unary + and -.
type UnaryExpr struct {
	Base
	Op      scanner.Token
	Operand Node
}

// UpdateExpr is ++ or --, prefix or postfix.
type UpdateExpr struct {
	Base
	Op      scanner.Token
	Operand Node
	Postfix bool
}

// CallExpr is a call.
type CallExpr struct {
	Base
	Callee Node
	Args   *ArgList
}

// NewExpr is new Callee or new Callee(Args); Args is nil in the first form.
type NewExpr struct {
	Base
	Callee Node
	Args   *ArgList
}

// DotExpr is Object.Property; Super marks super.Property.
type DotExpr struct {
	Base
	Object   Node
	Property *Identifier
	Super    bool
}

// IndexExpr is Object[Index]; Super marks super[Index].
type IndexExpr struct {
	Base
	Object Node
	Index  Node
	Super  bool
}

// ExtendExpr is Object.{...}.
type ExtendExpr struct {
	Base
	Object  Node
	Literal *ObjectLit
}

// ProtoExpr is Proto <| Literal.
type ProtoExpr struct {
	Base
	Proto   Node
	Literal Node
}

// ArrayLit is an array literal; holes are nil elements. Destructured is set
// when the literal is used as a destructuring target.
type ArrayLit struct {
	Base
	Elements     []Node
	Destructured *Pattern
}

// ObjectLit is an object literal. Properties are *PropertyInit, *AccessorDef and *MethodInit.
type ObjectLit struct {
	Base
	Properties   []Node
	Destructured *Pattern
}

// PropertyInit is name: value. For the shorthand {x} Value is the Name node itself.
type PropertyInit struct {
	Base
	Name      Node
	Value     Node
	Shorthand bool
	Computed  bool
}

// AccessorDef is a get or set accessor.
type AccessorDef struct {
	Base
	Name     Node
	Func     *Function
	Getter   bool
	Computed bool
}

// MethodInit is a method member name(params) {body}.
type MethodInit struct {
	Base
	Name     Node
	Func     *Function
	Computed bool
}

// ArrayComp is [expression for ... if ...].
type ArrayComp struct {
	Base
	Expression Node
	Tail       *CompTail
}

// GeneratorExpr is (expression for ... if ...).
type GeneratorExpr struct {
	Base
	Expression Node
	Tail       *CompTail
}

// CompTail holds the for clauses and optional guard of a comprehension.
type CompTail struct {
	Base
	Clauses []*ForInStmt
	Guard   Node
}

// ArgList is the argument list of a call.
type ArgList struct {
	Base
	Args []Node
}

// Identifier is a name.
type Identifier struct {
	Base
	Name string
}

// Literal is a number, string, regexp, null, true or false. Raw is the source
// text; Value is the decoded string for strings and Raw otherwise.
type Literal struct {
	Base
	LitKind Kind
	Raw     string
	Value   string
}

// ThisExpr is this.
type ThisExpr struct {
	Base
}

// SuperExpr is super.
type SuperExpr struct {
	Base
}

// Kind implements Node
func (*Script) Kind() Kind { return KindScript }

// Kind implements Node
func (*Block) Kind() Kind { return KindBlock }

// Kind implements Node
func (*IfStmt) Kind() Kind { return KindIf }

// Kind implements Node
func (*ForStmt) Kind() Kind { return KindFor }

// Kind implements Node
func (*ForInStmt) Kind() Kind { return KindForIn }

// Kind implements Node
func (*WhileStmt) Kind() Kind { return KindWhile }

// Kind implements Node
func (*DoWhileStmt) Kind() Kind { return KindDoWhile }

// Kind implements Node
func (*SwitchStmt) Kind() Kind { return KindSwitch }

// Kind implements Node
func (n *CaseClause) Kind() Kind {
	if n.Label == nil {
		return KindDefault
	}
	return KindCase
}

// Kind implements Node
func (*TryStmt) Kind() Kind { return KindTry }

// Kind implements Node
func (*CatchClause) Kind() Kind { return KindCatch }

// Kind implements Node
func (*ThrowStmt) Kind() Kind { return KindThrow }

// Kind implements Node
func (*BreakStmt) Kind() Kind { return KindBreak }

// Kind implements Node
func (*ContinueStmt) Kind() Kind { return KindContinue }

// Kind implements Node
func (*ReturnStmt) Kind() Kind { return KindReturn }

// Kind implements Node
func (*WithStmt) Kind() Kind { return KindWith }

// Kind implements Node
func (*LabeledStmt) Kind() Kind { return KindLabel }

// Kind implements Node
func (n *VarDecl) Kind() Kind { return n.DeclKind }

// Kind implements Node
func (*Declarator) Kind() Kind { return KindDeclarator }

// Kind implements Node
func (*LetBlockExpr) Kind() Kind { return KindLetBlock }

// Kind implements Node
func (*ExprStmt) Kind() Kind { return KindSemicolon }

// Kind implements Node
func (*DebuggerStmt) Kind() Kind { return KindDebugger }

// Kind implements Node
func (*Function) Kind() Kind { return KindFunction }

// Kind implements Node
func (*YieldExpr) Kind() Kind { return KindYield }

// Kind implements Node
func (*CommaExpr) Kind() Kind { return KindComma }

// Kind implements Node
func (*AssignExpr) Kind() Kind { return KindAssign }

// Kind implements Node
func (*ConditionalExpr) Kind() Kind { return KindHook }

// Kind implements Node
func (*BinaryExpr) Kind() Kind { return KindBinary }

// Kind implements Node
func (*UnaryExpr) Kind() Kind { return KindUnary }

// Kind implements Node
func (*UpdateExpr) Kind() Kind { return KindUpdate }

// Kind implements Node
func (*CallExpr) Kind() Kind { return KindCall }

// Kind implements Node
func (n *NewExpr) Kind() Kind {
	if n.Args == nil {
		return KindNew
	}
	return KindNewWithArgs
}

// Kind implements Node
func (n *DotExpr) Kind() Kind {
	if n.Super {
		return KindSuperDot
	}
	return KindDot
}

// Kind implements Node
func (n *IndexExpr) Kind() Kind {
	if n.Super {
		return KindSuperIndex
	}
	return KindIndex
}

// Kind implements Node
func (*ExtendExpr) Kind() Kind { return KindExtend }

// Kind implements Node
func (*ProtoExpr) Kind() Kind { return KindProto }

// Kind implements Node
func (*ArrayLit) Kind() Kind { return KindArrayInit }

// Kind implements Node
func (*ObjectLit) Kind() Kind { return KindObjectInit }

// Kind implements Node
func (*PropertyInit) Kind() Kind { return KindPropertyInit }

// Kind implements Node
func (n *AccessorDef) Kind() Kind {
	if n.Getter {
		return KindGetter
	}
	return KindSetter
}

// Kind implements Node
func (*MethodInit) Kind() Kind { return KindMethodInit }

// Kind implements Node
func (*ArrayComp) Kind() Kind { return KindArrayComp }

// Kind implements Node
func (*GeneratorExpr) Kind() Kind { return KindGenerator }

// Kind implements Node
func (*CompTail) Kind() Kind { return KindCompTail }

// Kind implements Node
func (*ArgList) Kind() Kind { return KindList }

// Kind implements Node
func (*Identifier) Kind() Kind { return KindIdentifier }

// Kind implements Node
func (n *Literal) Kind() Kind { return n.LitKind }

// Kind implements Node
func (*ThisExpr) Kind() Kind { return KindThis }

// Kind implements Node
func (*SuperExpr) Kind() Kind { return KindSuper }

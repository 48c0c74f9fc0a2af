package ast

// A Visitor's Visit method is invoked for each node encountered by Walk.
// If the result visitor w is not nil, Walk visits each of the children
// of node with the visitor w, followed by a call of w.Visit(nil).
type Visitor interface {
	Visit(n Node) (w Visitor)
}

// Walk traverses an AST in depth-first order: It starts by calling
// v.Visit(node); node must not be nil. If the visitor w returned by
// v.Visit(node) is not nil, Walk is invoked recursively with visitor
// w for each of the non-nil children of node, followed by a call of
// w.Visit(nil).
func Walk(v Visitor, n Node) {
	if v = v.Visit(n); v == nil {
		return
	}
	for _, c := range Children(n) {
		if !IsNil(c) {
			Walk(v, c)
		}
	}
	v.Visit(nil)
}

type inspector func(Node) bool

func (f inspector) Visit(n Node) Visitor {
	if f(n) {
		return f
	}
	return nil
}

// Inspect traverses an AST in depth-first order: It starts by calling
// f(node); node must not be nil. If f returns true, Inspect invokes f
// recursively for each of the non-nil children of node, followed by a
// call of f(nil).
func Inspect(n Node, f func(Node) bool) {
	Walk(inspector(f), n)
}

// CountNodes returns the number of nodes in the tree rooted at n.
func CountNodes(n Node) int {
	var count int
	Inspect(n, func(n Node) bool {
		if n != nil {
			count++
		}
		return true
	})
	return count
}

type childList []Node

func (c *childList) add(nodes ...Node) {
	for _, n := range nodes {
		if !IsNil(n) {
			*c = append(*c, n)
		}
	}
}

// Children returns the children of n in source order. Array literal holes
// are returned as nil; every other entry is non-nil. Break and continue
// targets are references, not children, and are never returned.
func Children(n Node) []Node {
	var c childList
	switch n := n.(type) {
	case *Script:
		c.add(n.Body...)
	case *Block:
		c.add(n.Body...)
	case *IfStmt:
		c.add(n.Condition, n.Then, n.Else)
	case *ForStmt:
		c.add(n.Setup, n.Condition, n.Update, n.Body)
	case *ForInStmt:
		if n.VarDecl != nil {
			c.add(n.VarDecl)
		} else {
			c.add(n.Iterator)
		}
		c.add(n.Object, n.Body)
	case *WhileStmt:
		c.add(n.Condition, n.Body)
	case *DoWhileStmt:
		c.add(n.Body, n.Condition)
	case *SwitchStmt:
		c.add(n.Discriminant)
		for _, cc := range n.Cases {
			c.add(cc)
		}
	case *CaseClause:
		c.add(n.Label)
		if n.Statements != nil {
			c.add(n.Statements)
		}
	case *TryStmt:
		if n.TryBlock != nil {
			c.add(n.TryBlock)
		}
		for _, cc := range n.CatchClauses {
			c.add(cc)
		}
		if n.FinallyBlock != nil {
			c.add(n.FinallyBlock)
		}
	case *CatchClause:
		c.add(n.VarName, n.Guard)
		if n.Block != nil {
			c.add(n.Block)
		}
	case *ThrowStmt:
		c.add(n.Exception)
	case *ReturnStmt:
		c.add(n.Value)
	case *WithStmt:
		c.add(n.Object, n.Body)
	case *LabeledStmt:
		c.add(n.Statement)
	case *VarDecl:
		for _, d := range n.Declarators {
			c.add(d)
		}
	case *Declarator:
		if n.Name != nil {
			c.add(n.Name)
		}
		c.add(n.Pattern, n.Initializer)
	case *LetBlockExpr:
		if n.Variables != nil {
			c.add(n.Variables)
		}
		if n.Block != nil {
			c.add(n.Block)
		}
		c.add(n.Expression)
	case *ExprStmt:
		c.add(n.Expression)
	case *Function:
		c.add(n.Params...)
		c.add(n.Body)
	case *YieldExpr:
		c.add(n.Value)
	case *CommaExpr:
		c.add(n.List...)
	case *AssignExpr:
		c.add(n.Target, n.Value)
	case *ConditionalExpr:
		c.add(n.Condition, n.Then, n.Else)
	case *BinaryExpr:
		c.add(n.Left, n.Right)
	case *UnaryExpr:
		c.add(n.Operand)
	case *UpdateExpr:
		c.add(n.Operand)
	case *CallExpr:
		c.add(n.Callee)
		if n.Args != nil {
			c.add(n.Args)
		}
	case *NewExpr:
		c.add(n.Callee)
		if n.Args != nil {
			c.add(n.Args)
		}
	case *DotExpr:
		c.add(n.Object)
		if n.Property != nil {
			c.add(n.Property)
		}
	case *IndexExpr:
		c.add(n.Object, n.Index)
	case *ExtendExpr:
		c.add(n.Object)
		if n.Literal != nil {
			c.add(n.Literal)
		}
	case *ProtoExpr:
		c.add(n.Proto, n.Literal)
	case *ArrayLit:
		// holes are kept
		c = append(c, n.Elements...)
	case *ObjectLit:
		c.add(n.Properties...)
	case *PropertyInit:
		c.add(n.Name)
		if !n.Shorthand {
			c.add(n.Value)
		}
	case *AccessorDef:
		c.add(n.Name)
		if n.Func != nil {
			c.add(n.Func)
		}
	case *MethodInit:
		c.add(n.Name)
		if n.Func != nil {
			c.add(n.Func)
		}
	case *ArrayComp:
		c.add(n.Expression)
		if n.Tail != nil {
			c.add(n.Tail)
		}
	case *GeneratorExpr:
		c.add(n.Expression)
		if n.Tail != nil {
			c.add(n.Tail)
		}
	case *CompTail:
		for _, cl := range n.Clauses {
			c.add(cl)
		}
		c.add(n.Guard)
	case *ArgList:
		c.add(n.Args...)
	}
	return c
}

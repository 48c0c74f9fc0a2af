package parser

import (
	"strconv"

	"github.com/kiteco/jsparse/kite-go/lang/javascript/ast"
	"github.com/kiteco/jsparse/kite-go/lang/javascript/parser/errors"
	"github.com/kiteco/jsparse/kite-go/lang/javascript/scanner"
)

// checkDestructuring validates an array or object literal used as a
// destructuring target and records its pattern on it. Declarations pass
// simpleNamesOnly, which requires every leaf to be an identifier; assignment
// targets accept any assignable expression.
func (p *parser) checkDestructuring(n ast.Node, simpleNamesOnly bool) *ast.Pattern {
	switch n := n.(type) {
	case *ast.ArrayComp:
		p.failNode(n, errors.Grammar, "Invalid array comprehension left-hand side")

	case *ast.ArrayLit:
		pat := &ast.Pattern{}
		for i, e := range n.Elements {
			if e == nil {
				continue
			}
			pat.Entries = append(pat.Entries, p.patternEntry(strconv.Itoa(i), e, simpleNamesOnly))
		}
		n.Destructured = pat
		return pat

	case *ast.ObjectLit:
		pat := &ast.Pattern{}
		for _, prop := range n.Properties {
			pi, ok := prop.(*ast.PropertyInit)
			if !ok {
				p.failNode(prop, errors.Grammar, leafError(simpleNamesOnly))
			}
			pat.Entries = append(pat.Entries, p.patternEntry(p.propertyKey(pi), pi.Value, simpleNamesOnly))
		}
		n.Destructured = pat
		return pat
	}
	return nil
}

func (p *parser) patternEntry(key string, target ast.Node, simpleNamesOnly bool) ast.PatternEntry {
	switch target.(type) {
	case *ast.ArrayLit, *ast.ObjectLit, *ast.ArrayComp:
		return ast.PatternEntry{Key: key, Nested: p.checkDestructuring(target, simpleNamesOnly)}
	}

	ok := isAssignable(target)
	if simpleNamesOnly {
		_, ok = target.(*ast.Identifier)
	}
	if !ok {
		p.failNode(target, errors.Grammar, leafError(simpleNamesOnly))
	}
	return ast.PatternEntry{Key: key, Target: target}
}

func leafError(simpleNamesOnly bool) string {
	if simpleNamesOnly {
		return "missing name in pattern"
	}
	return "Invalid destructuring target"
}

// propertyKey is the key an object pattern entry is recorded under: the
// name, the decoded literal, or the source of a computed name.
func (p *parser) propertyKey(pi *ast.PropertyInit) string {
	switch name := pi.Name.(type) {
	case *ast.Identifier:
		if !pi.Computed {
			return name.Name
		}
	case *ast.Literal:
		if !pi.Computed {
			return name.Value
		}
	}
	return ast.Source(pi.Name, p.t.Source())
}

// isAssignable reports whether n may be the target of an assignment.
func isAssignable(n ast.Node) bool {
	switch n.(type) {
	case *ast.Identifier, *ast.DotExpr, *ast.IndexExpr, *ast.CallExpr:
		return true
	}
	return false
}

// parseDestructuringExpression parses an array or object pattern. When scope
// is given the names it binds are appended to it.
func (p *parser) parseDestructuringExpression(x *staticContext, simpleNamesOnly bool, scope *[]*ast.Identifier) ast.Node {
	if p.opts.Trace {
		defer un(trace(p, "DestructuringExpression"))
	}

	n := p.parsePrimary(x, false)
	pat := p.checkDestructuring(n, simpleNamesOnly)
	if scope != nil {
		*scope = append(*scope, pat.Identifiers()...)
	}
	return n
}

// failNode fails with a syntax error located at the start of n.
func (p *parser) failNode(n ast.Node, kind errors.Kind, msg string) {
	p.failAt(scanner.Word{Begin: n.Begin(), End: n.End(), Line: n.Line()}, kind, msg)
}

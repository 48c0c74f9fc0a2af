package ast

import (
	"bytes"
	"go/token"
	"strings"
	"testing"

	"github.com/kiteco/jsparse/kite-go/lang/javascript/scanner"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func word(tok scanner.Token, lit string, begin int) scanner.Word {
	return scanner.Word{Token: tok, Literal: lit, Begin: token.Pos(begin), End: token.Pos(begin + len(lit)), Line: 1}
}

func ident(name string, begin int) *Identifier {
	return &Identifier{Base: At(word(scanner.Identifier, name, begin)), Name: name}
}

func TestWidenOnlyGrows(t *testing.T) {
	// a + b
	n := &BinaryExpr{Base: At(word(scanner.Plus, "+", 2)), Op: scanner.Plus}
	n.Left = ident("a", 0)
	n.Widen(n.Left)
	n.Right = ident("b", 4)
	n.Widen(n.Right)

	assert.EqualValues(t, 0, n.Begin())
	assert.EqualValues(t, 5, n.End())

	n.Widen(ident("x", 1))
	assert.EqualValues(t, 0, n.Begin())
	assert.EqualValues(t, 5, n.End())

	var nilIdent *Identifier
	n.Widen(nilIdent)
	n.Widen(nil)
	assert.EqualValues(t, 5, n.End())
}

func TestIsNil(t *testing.T) {
	var b *Block
	assert.True(t, IsNil(nil))
	assert.True(t, IsNil(b))
	assert.False(t, IsNil(&Block{}))
}

func TestParenthesize(t *testing.T) {
	// (a)
	a := ident("a", 1)
	Parenthesize(a, word(scanner.LeftParen, "(", 0), word(scanner.RightParen, ")", 2))
	assert.True(t, a.Parens)
	assert.EqualValues(t, 0, a.Begin())
	assert.EqualValues(t, 3, a.End())
	assert.Equal(t, "Identifier[a parens]", String(a))
}

func TestChildrenKeepsHoles(t *testing.T) {
	arr := &ArrayLit{Elements: []Node{ident("a", 1), nil, ident("b", 4)}}
	children := Children(arr)
	require.Len(t, children, 3)
	assert.Nil(t, children[1])
	assert.Equal(t, 3, CountNodes(arr))
}

func TestChildrenSkipsTargets(t *testing.T) {
	loop := &WhileStmt{}
	brk := &BreakStmt{Target: loop}
	assert.Empty(t, Children(brk))
}

func TestPrint(t *testing.T) {
	script := &Script{
		Body: []Node{
			&ExprStmt{Expression: &AssignExpr{
				Op:     scanner.Plus,
				Target: ident("x", 0),
				Value:  &Literal{LitKind: KindNumber, Raw: "1", Value: "1"},
			}},
			&ExprStmt{},
		},
	}
	var buf bytes.Buffer
	Print(script, &buf, "\t")
	expected := strings.Join([]string{
		"Script",
		"\tExprStmt",
		"\t\tAssignExpr[+=]",
		"\t\t\tIdentifier[x]",
		"\t\t\tLiteral[NUMBER 1]",
		"\tExprStmt[empty]",
		"",
	}, "\n")
	assert.Equal(t, expected, buf.String())
}

func TestPrintPositions(t *testing.T) {
	var buf bytes.Buffer
	PrintPositions(ident("abc", 3), &buf, "  ")
	assert.Equal(t, "[   3...   6]Identifier[abc]\n", buf.String())
}

func TestPatternNames(t *testing.T) {
	// [a, {b: c, d: [e]}]
	p := &Pattern{Entries: []PatternEntry{
		{Key: "0", Target: ident("a", 1)},
		{Key: "1", Nested: &Pattern{Entries: []PatternEntry{
			{Key: "b", Target: ident("c", 8)},
			{Key: "d", Nested: &Pattern{Entries: []PatternEntry{
				{Key: "0", Target: ident("e", 15)},
			}}},
		}}},
	}}
	assert.Equal(t, []string{"a", "c", "e"}, p.Names())
	assert.Equal(t, 2, p.Len())

	e, ok := p.Index(1)
	require.True(t, ok)
	require.NotNil(t, e.Nested)
	_, ok = e.Nested.Lookup("d")
	assert.True(t, ok)

	var empty *Pattern
	assert.Equal(t, 0, empty.Len())
	assert.Empty(t, empty.Names())
}

func TestSource(t *testing.T) {
	src := []byte("var abc = 1")
	assert.Equal(t, "abc", Source(ident("abc", 4), src))
	assert.Equal(t, "", Source(nil, src))
}

func TestKinds(t *testing.T) {
	assert.Equal(t, KindDefault, (&CaseClause{}).Kind())
	assert.Equal(t, KindNewWithArgs, (&NewExpr{Args: &ArgList{}}).Kind())
	assert.Equal(t, KindSuperIndex, (&IndexExpr{Super: true}).Kind())
	assert.Equal(t, KindLet, (&VarDecl{DeclKind: KindLet}).Kind())
	assert.Equal(t, "FOR_IN", KindForIn.String())
	assert.True(t, KindDoWhile.IsLoop())
	assert.False(t, KindSwitch.IsLoop())
}

func TestSpan(t *testing.T) {
	a := ident("abc", 4)
	s := Span(a)
	assert.EqualValues(t, 4, s.From)
	assert.EqualValues(t, 7, s.To)
	assert.False(t, IsParenthesized(a))
	assert.False(t, IsParenthesized(nil))
}

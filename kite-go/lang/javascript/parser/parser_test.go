package parser

import (
	"bytes"
	"fmt"
	"go/token"
	"strings"
	"testing"

	"github.com/kiteco/jsparse/kite-go/lang/javascript/ast"
	"github.com/kiteco/jsparse/kite-go/lang/javascript/parser/errors"
	"github.com/kr/pretty"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	harmony   = Options{Harmony: true}
	parenFree = Options{ParenFree: true}
	ecma3     = Options{ECMA3Only: true}
)

func requireParse(t *testing.T, src string, opts Options) *ast.Script {
	t.Log(src)
	script, err := Parse([]byte(src), "test.js", 1, opts)
	require.NoError(t, err)
	require.NotNil(t, script)
	assertNesting(t, script)
	return script
}

func assertParse(t *testing.T, expected string, src string) {
	assertParseOpts(t, expected, src, DefaultOptions)
}

func assertParseOpts(t *testing.T, expected string, src string, opts Options) {
	script := requireParse(t, src, opts)
	assertAST(t, expected, script)
}

// assertFails checks that src is rejected with the given kind and message.
func assertFails(t *testing.T, src string, opts Options, kind errors.Kind, msg string) {
	t.Log(src)
	script, err := Parse([]byte(src), "test.js", 1, opts)
	require.Error(t, err)
	assert.Nil(t, script)

	se, ok := errors.AsSyntaxError(err)
	require.True(t, ok, "expected a syntax error, got %T", err)
	assert.Equal(t, kind, se.Kind, "%s", se.Msg)
	if msg != "" {
		assert.Equal(t, msg, se.Msg)
	}
}

type nestingResult struct {
	violations []string
}

type nestingVerifier struct {
	result      *nestingResult
	parentBegin token.Pos
	parentEnd   token.Pos
}

func (p *nestingVerifier) Visit(n ast.Node) ast.Visitor {
	if n == nil {
		return nil
	}
	if n.Begin() < p.parentBegin || n.End() > p.parentEnd {
		msg := fmt.Sprintf("error at %s (%d...%d)", ast.String(n), n.Begin(), n.End())
		p.result.violations = append(p.result.violations, msg)
	}
	return &nestingVerifier{p.result, n.Begin(), n.End()}
}

// assertNesting checks that the span of each node encloses the spans of its children
func assertNesting(t *testing.T, node ast.Node) {
	var result nestingResult
	verifier := nestingVerifier{&result, node.Begin(), node.End()}
	ast.Walk(&verifier, node)
	if len(result.violations) > 0 {
		msg := strings.Join(result.violations, "\n")
		var buf bytes.Buffer
		ast.PrintPositions(node, &buf, "\t")
		t.Errorf("Nesting violations:\n%s\n%s", msg, buf.String())
	}
}

func assertAST(t *testing.T, expected string, node ast.Node) {
	var buf bytes.Buffer
	ast.Print(node, &buf, "\t")
	actual := buf.String()

	expected = strings.TrimSpace(expected)
	actual = strings.TrimSpace(actual)

	if actual != expected {
		expectedLines := strings.Split(expected, "\n")
		actualLines := strings.Split(actual, "\n")

		n := len(expectedLines)
		if len(actualLines) > n {
			n = len(actualLines)
		}

		errorLine := -1
		sidebyside := fmt.Sprintf("      | %-40s | %-40s |\n", "EXPECTED", "ACTUAL")
		var errorExpected, errorActual string
		for i := 0; i < n; i++ {
			var expectedLine, actualLine string
			if i < len(expectedLines) {
				expectedLine = strings.Replace(expectedLines[i], "\t", "    ", -1)
			}
			if i < len(actualLines) {
				actualLine = strings.Replace(actualLines[i], "\t", "    ", -1)
			}
			symbol := "   "
			if actualLine != expectedLine {
				symbol = "***"
				if errorLine == -1 {
					errorLine = i
					errorExpected = strings.TrimSpace(expectedLine)
					errorActual = strings.TrimSpace(actualLine)
				}
			}
			sidebyside += fmt.Sprintf("%-6s| %-40s | %-40s |\n", symbol, expectedLine, actualLine)
		}

		t.Errorf("expected %s but got %s (line %d):\n%s", errorExpected, errorActual, errorLine, sidebyside)
	}
}

// names returns the names of a declaration list.
func names(ids []*ast.Identifier) []string {
	var out []string
	for _, id := range ids {
		out = append(out, id.Name)
	}
	return out
}

func TestParseEmpty(t *testing.T) {
	script := requireParse(t, "", DefaultOptions)
	assert.Empty(t, script.Body)
	assert.EqualValues(t, 0, script.Begin())
	assert.EqualValues(t, 0, script.End())

	script = requireParse(t, "  // nothing\n", DefaultOptions)
	assert.Empty(t, script.Body)
	assert.EqualValues(t, 13, script.End())
}

func TestParseErrorPosition(t *testing.T) {
	_, err := Parse([]byte("a\nb c"), "x.js", 10, DefaultOptions)
	require.Error(t, err)

	se, ok := errors.AsSyntaxError(err)
	require.True(t, ok)
	assert.Equal(t, "x.js", se.Filename)
	assert.Equal(t, 11, se.Line)
	assert.EqualValues(t, 4, se.Pos)
	assert.Equal(t, "x.js:11: missing ; before statement", err.Error())
}

func TestParseErrors(t *testing.T) {
	cases := []struct {
		src  string
		kind errors.Kind
		msg  string
	}{
		{"a b", errors.Grammar, "missing ; before statement"},
		{"x = (1", errors.Grammar, "missing )"},
		{"x = 1 +", errors.Grammar, "missing operand"},
		{"var 1", errors.Grammar, "missing variable name"},
		{"var a += 1", errors.Grammar, "Invalid variable initialization"},
		{"1 = x", errors.Grammar, "Bad left-hand side of assignment"},
		{"a + b = c", errors.Grammar, "Bad left-hand side of assignment"},
		{"switch (x) { default: default: }", errors.Grammar, "More than one switch default"},
		{"switch (x) { foo }", errors.Grammar, "Invalid switch case"},
		{"a: a: ;", errors.Grammar, "Duplicate label"},
		{"try {}", errors.Grammar, "Invalid try statement"},
		{"catch (e) {}", errors.Grammar, "catch without preceding try"},
		{"try {} catch (e) {} catch (f if f) {}", errors.Grammar, "Guarded catch after unguarded"},
		{"try {} catch (1) {}", errors.Grammar, "missing identifier in catch"},
		{"function () {}", errors.Grammar, "missing function identifier"},
		{"function f(1) {}", errors.Grammar, "missing formal parameter"},
		{"x = a ? b", errors.Grammar, "missing : after ?"},
		{"x = a.+", errors.Grammar, "Missing identifier"},
		{"for each (var i = 0; ;) {}", errors.Grammar, "Invalid for each..in loop"},
		{"for (a + b in c) {}", errors.Grammar, "Invalid for..in left-hand side"},
		{"for (var a, b in c) {}", errors.Grammar, "Invalid for..in left-hand side"},
		{"x = {a b}", errors.Grammar, "missing : after property"},
		{"x = {1, 2}", errors.Grammar, "Property name must be identifier"},
		{"x = {get a(b) {}}", errors.Grammar, "get accessor, too many arguments"},
		{"x = {set a() {}}", errors.Grammar, "set accessor, must have one argument"},
		{"x = {;}", errors.Grammar, "Invalid property name"},

		{"break", errors.Scope, "Invalid break"},
		{"continue", errors.Scope, "Invalid continue"},
		{"break foo", errors.Scope, "Label not found"},
		{"foo: { continue foo }", errors.Scope, "Invalid continue"},
		{"while (a) { function f() { break } }", errors.Scope, "Invalid break"},
		{"return 1", errors.Scope, "Return not in function"},
		{"yield 1", errors.Scope, "Yield not in function"},

		{"x = @", errors.Lexical, ""},
	}

	for _, c := range cases {
		assertFails(t, c.src, DefaultOptions, c.kind, c.msg)
	}
}

func TestParseDepthLimit(t *testing.T) {
	src := strings.Repeat("(", 5000) + "1" + strings.Repeat(")", 5000)
	assertFails(t, src, DefaultOptions, errors.Resource, "too much recursion")

	src = strings.Repeat("{", 10) + strings.Repeat("}", 10)
	requireParse(t, src, DefaultOptions)
	assertFails(t, src, Options{MaxDepth: 5}, errors.Resource, "too much recursion")

	// new prefixes nest without passing through a statement or paren
	src = strings.Repeat("new ", 5000) + "X"
	assertFails(t, src, Options{MaxDepth: 50}, errors.Resource, "too much recursion")
	requireParse(t, "new new X()()", Options{MaxDepth: 50})
}

func TestParseErrorsAreCounted(t *testing.T) {
	hits, total := parseErrorRatio.Counts()
	grammar := parseErrorKinds.Count(errors.Grammar.String())
	parsed := bytesParsed.GetValue()
	SetDurationSampleRate(1)
	durations := parseDuration.Count()

	_, err := Parse([]byte("a b"), "test.js", 1, DefaultOptions)
	require.Error(t, err)
	_, err = Parse([]byte("a; b"), "test.js", 1, DefaultOptions)
	require.NoError(t, err)

	hits2, total2 := parseErrorRatio.Counts()
	assert.EqualValues(t, hits+1, hits2)
	assert.EqualValues(t, total+2, total2)
	assert.EqualValues(t, grammar+1, parseErrorKinds.Count(errors.Grammar.String()))
	assert.EqualValues(t, parsed+7, bytesParsed.GetValue())
	assert.EqualValues(t, durations+2, parseDuration.Count())
}

func TestTrace(t *testing.T) {
	var buf bytes.Buffer
	_, err := Parse([]byte("x = f(1)"), "test.js", 1, Options{Trace: true, TraceWriter: &buf})
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, "Script (")
	assert.Contains(t, out, "Statement (")
	assert.Contains(t, out, "Primary (")
	assert.Contains(t, out, `NUMBER[1]`)

	buf.Reset()
	_, err = Parse([]byte("x = ("), "test.js", 1, Options{Trace: true, TraceWriter: &buf})
	require.Error(t, err)
	assert.Contains(t, buf.String(), "ERROR: missing operand")
}

func TestECMA3DisablesDialects(t *testing.T) {
	p := newParser(nil, "test.js", 1, Options{ECMA3Only: true, ParenFree: true, Harmony: true})
	assert.False(t, p.opts.ParenFree)
	assert.False(t, p.opts.Harmony)
	assert.Equal(t, DefaultMaxDepth, p.opts.MaxDepth)

	x := newStaticContext(false, Options{ECMA3Only: true, Harmony: true})
	assert.True(t, x.ecma3OnlyMode)
	assert.False(t, x.harmonyMode)
}

func TestRecoverParseRepanics(t *testing.T) {
	p := newParser(nil, "test.js", 1, DefaultOptions)
	assert.Panics(t, func() {
		var err error
		defer p.recoverParse(&err)
		panic("boom")
	})
}

// describe is used in failure messages of the property tests.
func describe(n ast.Node) string {
	return pretty.Sprint(n)
}

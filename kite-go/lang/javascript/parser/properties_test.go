package parser

import (
	"bytes"
	"testing"

	"github.com/kiteco/jsparse/kite-go/lang/javascript/ast"
	"github.com/sergi/go-diff/diffmatchpatch"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type corpusEntry struct {
	src  string
	opts Options
}

var corpus = []corpusEntry{
	{"var a = 1, b = [1, , 3], c = {x: 1, 'y': 2, 3: [4]};", DefaultOptions},
	{"function f(a, b) { if (a) return b; else { return a + b } }", DefaultOptions},
	{"for (var i = 0, n = a.length; i < n; i++) { if (a[i] in o) continue; else break }", DefaultOptions},
	{"for (k in o) delete o[k]\nfor each (let [k, v] in o) f(k, v)", DefaultOptions},
	{"outer: while (a) { inner: do { if (b) continue outer; break inner } while (c) }", DefaultOptions},
	{"switch (x) { case 1: case 2: y(); break; default: z() }", DefaultOptions},
	{"try { a() } catch (e if e instanceof TypeError) { b() } catch (e) { throw e } finally { c() }", DefaultOptions},
	{"x = a ? b : c ? d : e\ny = !(a && b) || ~c >>> 2", DefaultOptions},
	{"var o = {get a() { return this._a }, set a(v) { this._a = v }}", DefaultOptions},
	{"function g() { var x = yield 1; yield (yield x) }", DefaultOptions},
	{"var [a, {b, c: [d]}] = x; [a, b] = [b, a]", DefaultOptions},
	{"let (a = 1, b = 2) { let c = a + b; print(c) }\nz = let (q = 1) q * 2", DefaultOptions},
	{"x = [i * i for (i in range(10)) if (i % 2)]; g = (i for each (i in o))", DefaultOptions},
	{"f = function (x) x * x; h = function named() {}", DefaultOptions},
	{"with (o) { p = q }\ndebugger\n;;", DefaultOptions},
	{"a = b\n++c\nd = e\n(f)", DefaultOptions},
	{"new Foo; new Foo.Bar(1)(2).baz[qux]", DefaultOptions},
	{"x = /ab+c/gi.exec(s) / 2", DefaultOptions},
	{"o = {m() { return super.m() }, [k]: 1, a} ; p = q.{r: 1}; s = t <| [u]", harmony},
	{"if x { y } else if z { w }\nwhile a { b-- }\nfor k in o { f(k) }\nfor i = 0; i < 3; i++ { g(i) }", parenFree},
	{"var a = {x: 1}; function f() { return a.x }", ecma3},
}

func parseCorpus(t *testing.T, fn func(src []byte, script *ast.Script)) {
	for _, c := range corpus {
		script := requireParse(t, c.src, c.opts)
		fn([]byte(c.src), script)
	}
}

func printed(n ast.Node) string {
	var buf bytes.Buffer
	ast.Print(n, &buf, "\t")
	return buf.String()
}

// every node lies within its parent; requireParse checks this for each parse
func TestPropertyNesting(t *testing.T) {
	parseCorpus(t, func(src []byte, script *ast.Script) {
		assert.EqualValues(t, 0, script.Begin())
		assert.EqualValues(t, len(src), script.End())
	})
}

func TestPropertyStatementStackBalanced(t *testing.T) {
	for _, c := range corpus {
		p := newParser([]byte(c.src), "test.js", 1, c.opts)
		x := newStaticContext(false, p.opts)
		x.push(&ast.Script{})

		var err error
		func() {
			defer p.recoverParse(&err)
			for !p.t.Done() {
				p.parseStatement(x)
				require.Len(t, x.stmtStack, 1, c.src)
			}
		}()
		require.NoError(t, err, c.src)
	}
}

func TestPropertySourceRoundTrip(t *testing.T) {
	parseCorpus(t, func(src []byte, script *ast.Script) {
		ast.Inspect(script, func(n ast.Node) bool {
			if ast.IsParenthesized(n) {
				// the span includes the parentheses
				assert.Equal(t, "(", ast.Source(n, src)[:1])
				return true
			}
			switch n := n.(type) {
			case *ast.Identifier:
				assert.Equal(t, n.Name, ast.Source(n, src))
			case *ast.Literal:
				if n.Raw != ast.Source(n, src) {
					t.Errorf("literal source differs from %s", describe(n))
				}
			case *ast.Script:
			case nil:
			default:
				assert.NotEmpty(t, ast.Source(n, src), ast.String(n))
			}
			return true
		})
	})
}

func TestPropertyStatementSource(t *testing.T) {
	stmts := []string{
		"var a = 1, b",
		"a = b + c",
		"x.y[z](1, 2)",
		"if (a) b(); else c()",
		"while (x) { y() }",
		"{ a; b }",
		"throw new Error(m)",
		"try { a } catch (e) { b } finally { c }",
		"with (o) p",
		"debugger",
	}
	for _, stmt := range stmts {
		src := []byte("  " + stmt + ";\n")
		script := requireParse(t, string(src), DefaultOptions)
		require.Len(t, script.Body, 1)
		assert.Equal(t, stmt, ast.Source(script.Body[0], src))
	}
}

func TestPropertyDeterministic(t *testing.T) {
	dmp := diffmatchpatch.New()
	parseCorpus(t, func(src []byte, script *ast.Script) {
		again, err := Parse(src, "test.js", 1, DefaultOptions)
		if err != nil {
			// parsed with other options
			return
		}
		want, got := printed(script), printed(again)
		if want != got {
			diffs := dmp.DiffMain(want, got, false)
			t.Errorf("reparse differs:\n%s", dmp.DiffPrettyText(diffs))
		}
	})
}

func TestPropertyForInShape(t *testing.T) {
	parseCorpus(t, func(src []byte, script *ast.Script) {
		ast.Inspect(script, func(n ast.Node) bool {
			loop, ok := n.(*ast.ForInStmt)
			if !ok {
				return true
			}
			require.NotNil(t, loop.Iterator)
			require.NotNil(t, loop.Object)
			if loop.VarDecl != nil {
				assert.Equal(t, 1, len(loop.VarDecl.Declarators))
			}
			return true
		})
	})
}

// returnsValue reports whether the body of f, not counting nested
// functions, returns a value.
func returnsValue(f *ast.Function) bool {
	var found bool
	ast.Inspect(f.Body, func(n ast.Node) bool {
		switch n := n.(type) {
		case *ast.Function:
			return false
		case *ast.ReturnStmt:
			if n.Value != nil {
				found = true
			}
		}
		return true
	})
	return found
}

func TestPropertyGeneratorsReturnNoValue(t *testing.T) {
	var generators int
	parseCorpus(t, func(src []byte, script *ast.Script) {
		ast.Inspect(script, func(n ast.Node) bool {
			if f, ok := n.(*ast.Function); ok && f.IsGenerator {
				generators++
				assert.False(t, returnsValue(f), ast.Source(f, src))
			}
			return true
		})
	})
	assert.NotZero(t, generators)
}

func TestPropertyPatternsRecorded(t *testing.T) {
	check := func(n ast.Node) {
		switch n := n.(type) {
		case *ast.ArrayLit:
			assert.NotNil(t, n.Destructured)
		case *ast.ObjectLit:
			assert.NotNil(t, n.Destructured)
		}
	}
	parseCorpus(t, func(src []byte, script *ast.Script) {
		ast.Inspect(script, func(n ast.Node) bool {
			switch n := n.(type) {
			case *ast.Declarator:
				check(n.Pattern)
			case *ast.AssignExpr:
				check(n.Target)
			case *ast.ArrayLit:
				if n.Destructured == nil {
					return true
				}
				// only the leaves bind
				for _, id := range n.Destructured.Identifiers() {
					assert.NotEmpty(t, id.Name)
				}
			}
			return true
		})
	})
}

func TestPropertySemicolonInsertion(t *testing.T) {
	equivalent := [][2]string{
		{"a\nb", "a; b"},
		{"if (a) b\nelse c", "if (a) b; else c"},
		{"return_\n++x", "return_; ++x"},
		{"do x\nwhile (y)", "do x; while (y)"},
		{"{ a }", "{ a; }"},
		{"var a = 1\nvar b", "var a = 1; var b"},
	}
	for _, e := range equivalent {
		a := requireParse(t, e[0], DefaultOptions)
		b := requireParse(t, e[1], DefaultOptions)
		assert.Equal(t, printed(b), printed(a), e[0])
	}
}

func TestPropertyJumpTargets(t *testing.T) {
	var jumps int
	parseCorpus(t, func(src []byte, script *ast.Script) {
		ast.Inspect(script, func(n ast.Node) bool {
			var target ast.Node
			switch n := n.(type) {
			case *ast.BreakStmt:
				target = n.Target
			case *ast.ContinueStmt:
				target = n.Target
				require.NotNil(t, target)
				assert.True(t, target.Kind().IsLoop(), ast.Source(n, src))
			default:
				return true
			}
			jumps++
			require.NotNil(t, target)
			assert.True(t, target.Begin() <= n.Begin() && n.End() <= target.End(), ast.Source(n, src))
			return true
		})
	})
	assert.NotZero(t, jumps)
}

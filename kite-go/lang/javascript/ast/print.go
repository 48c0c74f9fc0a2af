package ast

import (
	"fmt"
	"io"
	"reflect"
	"strings"

	"github.com/kiteco/jsparse/kite-go/lang/javascript/scanner"
)

func typename(obj interface{}) string {
	t := reflect.TypeOf(obj)
	for t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	return t.Name()
}

func quote(s string) string {
	if len(s) > 40 {
		s = s[:37] + "..."
	}
	return strings.Replace(s, "\n", "\\n", -1)
}

// String returns a short textual representation of a node
func String(n Node) string {
	if IsNil(n) {
		return "Nil"
	}
	var attrs []string
	switch n := n.(type) {
	case *Identifier:
		attrs = append(attrs, n.Name)
	case *Literal:
		attrs = append(attrs, n.LitKind.String(), quote(n.Raw))
	case *BinaryExpr:
		attrs = append(attrs, n.Op.String())
	case *UnaryExpr:
		attrs = append(attrs, n.Op.String())
	case *UpdateExpr:
		attrs = append(attrs, n.Op.String())
		if n.Postfix {
			attrs = append(attrs, "postfix")
		}
	case *AssignExpr:
		if n.Op != scanner.Illegal {
			attrs = append(attrs, n.Op.String()+"=")
		} else {
			attrs = append(attrs, "=")
		}
	case *VarDecl:
		attrs = append(attrs, n.DeclKind.String())
	case *Declarator:
		if n.ReadOnly {
			attrs = append(attrs, "readonly")
		}
	case *Function:
		if n.Name != "" {
			attrs = append(attrs, n.Name)
		}
		attrs = append(attrs, n.Form.String())
		if n.IsGenerator {
			attrs = append(attrs, "generator")
		}
		if n.ExpressionClosure {
			attrs = append(attrs, "closure")
		}
	case *ForInStmt:
		if n.Each {
			attrs = append(attrs, "each")
		}
	case *BreakStmt:
		if n.Label != "" {
			attrs = append(attrs, n.Label)
		}
	case *ContinueStmt:
		if n.Label != "" {
			attrs = append(attrs, n.Label)
		}
	case *LabeledStmt:
		attrs = append(attrs, n.Label)
	case *CaseClause:
		if n.Label == nil {
			attrs = append(attrs, "default")
		}
	case *NewExpr:
		if n.Args != nil {
			attrs = append(attrs, "args")
		}
	case *DotExpr:
		if n.Super {
			attrs = append(attrs, "super")
		}
	case *IndexExpr:
		if n.Super {
			attrs = append(attrs, "super")
		}
	case *AccessorDef:
		if n.Getter {
			attrs = append(attrs, "get")
		} else {
			attrs = append(attrs, "set")
		}
	case *PropertyInit:
		if n.Shorthand {
			attrs = append(attrs, "shorthand")
		}
		if n.Computed {
			attrs = append(attrs, "computed")
		}
	case *ExprStmt:
		if n.Expression == nil {
			attrs = append(attrs, "empty")
		}
	}

	out := typename(n)
	if n.base().Parens {
		attrs = append(attrs, "parens")
	}
	if len(attrs) > 0 {
		out += "[" + strings.Join(attrs, " ") + "]"
	}
	return out
}

type prettyPrinter struct {
	depth     int
	indent    string
	positions bool
	w         io.Writer
}

func (p *prettyPrinter) Visit(n Node) Visitor {
	if n == nil {
		p.depth--
	} else {
		prefix := strings.Repeat(p.indent, p.depth)
		if p.positions {
			prefix = fmt.Sprintf("[%4d...%4d]", n.Begin(), n.End()) + prefix
		}
		fmt.Fprintln(p.w, prefix+String(n))
		p.depth++
	}
	return p
}

// Print writes a textual representation of syntax tree to the given writer
func Print(root Node, w io.Writer, indent string) {
	printer := prettyPrinter{
		w:      w,
		indent: indent,
	}
	Walk(&printer, root)
}

// PrintPositions writes a textual representation of syntax tree to the given writer,
// including begin and end positions for each node.
func PrintPositions(root Node, w io.Writer, indent string) {
	printer := prettyPrinter{
		w:         w,
		indent:    indent,
		positions: true,
	}
	Walk(&printer, root)
}

// Source returns the text of src covered by the node's span.
func Source(n Node, src []byte) string {
	if IsNil(n) {
		return ""
	}
	begin, end := int(n.Begin()), int(n.End())
	if begin < 0 || end > len(src) || begin > end {
		return ""
	}
	return string(src[begin:end])
}

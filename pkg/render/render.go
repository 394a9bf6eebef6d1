// Package render turns a Config or Sweep tree back into Hyperion source
// text (4.5), the inverse of pkg/parser for the round-trip invariant (8).
//
// Expression rendering tracks a (text, precedence) pair for every
// subexpression and re-introduces parentheses exactly where the default
// precedence-climbing parse would otherwise group differently than the
// tree says it should. This is deliberately not built on ast.Fold: Fold's
// post-order rebuild step reconstructs the same Node family it was given
// (Expr from Expr, Stmt from Stmt, ...), but rendering produces a string
// and a precedence at every node, a different shape at every level, so it
// is its own small structural recursion instead.
package render

import (
	"strconv"
	"strings"

	"github.com/hyperion-lang/hyperion/pkg/ast"
	"github.com/hyperion-lang/hyperion/pkg/herrors"
)

const indentUnit = "    "

// Render renders a *ast.Config, *ast.Sweep or ast.Expr back to source text.
func Render(tree ast.Node) (string, error) {
	switch t := tree.(type) {
	case *ast.Config:
		return renderStmts(stmtsToSweepStmts(t.Statements)), nil
	case *ast.Sweep:
		return renderStmts(t.Statements), nil
	case ast.Expr:
		text, _ := renderExpr(t)
		return text, nil
	default:
		return "", &herrors.InternalError{Message: "render: Render called on an unsupported root type"}
	}
}

func stmtsToSweepStmts(stmts []ast.Stmt) []ast.SweepStmt {
	out := make([]ast.SweepStmt, len(stmts))
	for i, s := range stmts {
		out[i] = s.(ast.SweepStmt)
	}
	return out
}

func renderStmts(stmts []ast.SweepStmt) string {
	lines := make([]string, len(stmts))
	for i, s := range stmts {
		lines[i] = renderStmt(s)
	}
	return strings.Join(lines, "\n")
}

func indentBlock(body string) string {
	lines := strings.Split(body, "\n")
	for i, l := range lines {
		lines[i] = indentUnit + l
	}
	return strings.Join(lines, "\n")
}

func renderStmt(s ast.SweepStmt) string {
	switch t := s.(type) {
	case *ast.ImportStmt:
		return "import " + renderNamespace(t.Namespace)

	case *ast.IncludeStmt:
		return "include " + renderString(t.Path)

	case *ast.BindingStmt:
		exprText, _ := renderExpr(t.Expr)
		return renderIdentifier(t.Identifier) + " = " + exprText

	case *ast.WithStmt:
		return "with " + renderNamespace(t.Namespace) + ":\n" + indentBlock(renderStmts(t.Statements))

	case *ast.AllStmt:
		return renderIdentifier(t.Identifier) + ": [" + renderExprList(t.Exprs) + "]"

	case *ast.ProductStmt:
		return "product:\n" + indentBlock(renderStmts(t.Statements))

	case *ast.UnionStmt:
		return "union:\n" + indentBlock(renderStmts(t.Statements))

	case *ast.TableStmt:
		names := make([]string, len(t.Header.Identifiers))
		for i, id := range t.Header.Identifiers {
			names[i] = renderIdentifier(id)
		}
		rows := make([]string, len(t.Rows))
		for i, row := range t.Rows {
			rows[i] = renderExprList(row.Exprs)
		}
		return "table " + strings.Join(names, ", ") + ":\n" + indentBlock(strings.Join(rows, "\n"))

	default:
		panic("render: unhandled statement type")
	}
}

func renderNamespace(ns ast.Namespace) string {
	return strings.Join(ns.Path, ".")
}

// IdentifierString renders id to its canonical surface form
// (s1/s2/ns1.ns2.name), used wherever an Identifier needs to become a map
// key or a diagnostic string outside this package.
func IdentifierString(id ast.Identifier) string {
	return renderIdentifier(id)
}

func renderIdentifier(id ast.Identifier) string {
	var b strings.Builder
	for _, s := range id.Scope.Path {
		b.WriteString(s)
		b.WriteByte('/')
	}
	for _, n := range id.Namespace.Path {
		b.WriteString(n)
		b.WriteByte('.')
	}
	b.WriteString(id.Name)
	return b.String()
}

func renderExprList(exprs []ast.Expr) string {
	parts := make([]string, len(exprs))
	for i, e := range exprs {
		parts[i], _ = renderExpr(e)
	}
	return strings.Join(parts, ", ")
}

// renderExpr returns an expression's surface text together with its
// precedence (the precedence of its outermost operator, or
// ast.ParenPrecedence for anything atomic), which is what a containing
// operator needs to decide whether it must add parentheses around this
// subexpression.
func renderExpr(e ast.Expr) (string, int) {
	switch t := e.(type) {
	case *ast.NullLit:
		return "None", ast.ParenPrecedence
	case *ast.BoolLit:
		if t.Value {
			return "True", ast.ParenPrecedence
		}
		return "False", ast.ParenPrecedence
	case *ast.IntLit:
		return strconv.FormatInt(t.Value, 10), ast.ParenPrecedence
	case *ast.FloatLit:
		return renderFloat(t.Value), ast.ParenPrecedence
	case *ast.StringLit:
		return renderString(t.Value), ast.ParenPrecedence
	case *ast.MacroExpr:
		return "%" + t.Name, ast.ParenPrecedence
	case *ast.RefExpr:
		return "@" + renderIdentifier(t.Identifier), ast.ParenPrecedence
	case *ast.CallExpr:
		return renderCall(t), ast.ParenPrecedence
	case *ast.DictExpr:
		return renderDict(t), ast.ParenPrecedence
	case *ast.ListExpr:
		return "[" + renderExprList(t.Items) + "]", ast.ParenPrecedence
	case *ast.TupleExpr:
		return renderTuple(t), ast.ParenPrecedence
	case *ast.UnaryOpExpr:
		return renderUnary(t)
	case *ast.BinaryOpExpr:
		return renderBinary(t)
	case *ast.ParenExpr:
		// Renderer is only ever invoked on trees RemoveParentheses has
		// already stripped; this is defensive, not load-bearing.
		text, _ := renderExpr(t.Inner)
		return "(" + text + ")", ast.ParenPrecedence
	default:
		panic("render: unhandled expression type")
	}
}

func renderCall(c *ast.CallExpr) string {
	args := make([]string, len(c.Arguments))
	for i, a := range c.Arguments {
		valText, _ := renderExpr(a.Value)
		args[i] = a.Name + "=" + valText
	}
	return "@" + renderIdentifier(c.Identifier) + "(" + strings.Join(args, ", ") + ")"
}

func renderDict(d *ast.DictExpr) string {
	items := make([]string, len(d.Items))
	for i, it := range d.Items {
		k, _ := renderExpr(it.Key)
		v, _ := renderExpr(it.Value)
		items[i] = k + ": " + v
	}
	return "{" + strings.Join(items, ", ") + "}"
}

func renderTuple(t *ast.TupleExpr) string {
	if len(t.Items) == 1 {
		text, _ := renderExpr(t.Items[0])
		return "(" + text + ",)"
	}
	return "(" + renderExprList(t.Items) + ")"
}

func renderUnary(t *ast.UnaryOpExpr) (string, int) {
	operandText, operandPrec := renderExpr(t.Operand)
	precedence := t.Op.Precedence()
	if operandPrec > precedence {
		operandText = "(" + operandText + ")"
	}
	return t.Op.Chars() + operandText, precedence
}

// renderBinary applies the table's precedence to decide parenthesisation.
// Left-associative operators need strict '>' on the left and non-strict
// '>=' on the right (same-precedence chains group to the left by default,
// so only the right side needs protecting at equal precedence). pow is
// right-associative, so the roles invert: '>=' on the left, strict '>' on
// the right.
func renderBinary(t *ast.BinaryOpExpr) (string, int) {
	leftText, leftPrec := renderExpr(t.Left)
	rightText, rightPrec := renderExpr(t.Right)
	precedence := t.Op.Precedence()

	var needLeftParen, needRightParen bool
	if t.Op.RightAssociative() {
		needLeftParen = leftPrec >= precedence
		needRightParen = rightPrec > precedence
	} else {
		needLeftParen = leftPrec > precedence
		needRightParen = rightPrec >= precedence
	}
	if needLeftParen {
		leftText = "(" + leftText + ")"
	}
	if needRightParen {
		rightText = "(" + rightText + ")"
	}
	return leftText + " " + t.Op.Chars() + " " + rightText, precedence
}

// renderFloat keeps the Int/Float distinction visible in the rendered
// text: a float with no fractional digits and no exponent would otherwise
// round-trip back as an Int.
func renderFloat(v float64) string {
	s := strconv.FormatFloat(v, 'g', -1, 64)
	if !strings.ContainsAny(s, ".eE") {
		s += ".0"
	}
	return s
}

func renderString(s string) string {
	var b strings.Builder
	b.WriteByte('"')
	for i := 0; i < len(s); i++ {
		switch c := s[i]; c {
		case '"':
			b.WriteString(`\"`)
		case '\\':
			b.WriteString(`\\`)
		case '\n':
			b.WriteString(`\n`)
		case '\t':
			b.WriteString(`\t`)
		case '\r':
			b.WriteString(`\r`)
		default:
			b.WriteByte(c)
		}
	}
	b.WriteByte('"')
	return b.String()
}

package render

import (
	"strings"
	"testing"

	"github.com/gkampitakis/go-snaps/snaps"

	"github.com/hyperion-lang/hyperion/pkg/ast"
)

func ref(name string) ast.Expr { return &ast.RefExpr{Identifier: ast.Identifier{Name: name}} }

func TestRenderConfigRoundTripsBinding(t *testing.T) {
	cfg := &ast.Config{Statements: []ast.Stmt{
		&ast.BindingStmt{
			Identifier: ast.Identifier{Namespace: ast.Namespace{Path: []string{"model"}}, Name: "lr"},
			Expr:       &ast.IntLit{Value: 1},
		},
	}}
	got, err := Render(cfg)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "model.lr = 1" {
		t.Errorf("got %q", got)
	}
}

func TestRenderFloatKeepsIntVsFloatDistinction(t *testing.T) {
	got, _ := renderExpr(&ast.FloatLit{Value: 2})
	if got != "2.0" {
		t.Errorf("expected a whole-number float to render with a decimal point, got %q", got)
	}
	got, _ = renderExpr(&ast.IntLit{Value: 2})
	if got != "2" {
		t.Errorf("expected an int literal to render without a decimal point, got %q", got)
	}
}

func TestRenderBinaryAddsParensOnlyWhereNeeded(t *testing.T) {
	// (a + b) * c: left child is a lower-precedence add under a mul, so it
	// must be parenthesized even though it's on the left.
	e := &ast.BinaryOpExpr{
		Left:  &ast.BinaryOpExpr{Left: ref("a"), Op: ast.OpAdd, Right: ref("b")},
		Op:    ast.OpMul,
		Right: ref("c"),
	}
	got, _ := renderExpr(e)
	if got != "(@a + @b) * @c" {
		t.Errorf("got %q", got)
	}
}

func TestRenderBinaryLeftAssociativeOmitsRedundantParens(t *testing.T) {
	// (a - b) - c renders without parens since same-precedence chains
	// group left by default.
	e := &ast.BinaryOpExpr{
		Left:  &ast.BinaryOpExpr{Left: ref("a"), Op: ast.OpSub, Right: ref("b")},
		Op:    ast.OpSub,
		Right: ref("c"),
	}
	got, _ := renderExpr(e)
	if got != "@a - @b - @c" {
		t.Errorf("got %q", got)
	}
}

func TestRenderBinaryLeftAssociativeParenthesizesRightChild(t *testing.T) {
	// a - (b - c) must keep its parens: without them the rendered text
	// would re-parse as (a - b) - c, a different value.
	e := &ast.BinaryOpExpr{
		Left:  ref("a"),
		Op:    ast.OpSub,
		Right: &ast.BinaryOpExpr{Left: ref("b"), Op: ast.OpSub, Right: ref("c")},
	}
	got, _ := renderExpr(e)
	if got != "@a - (@b - @c)" {
		t.Errorf("got %q", got)
	}
}

func TestRenderPowRightAssociativeInvertsParenRule(t *testing.T) {
	// a ** (b ** c) needs no parens (pow is right-assoc, so this is the
	// default grouping); (a ** b) ** c needs them on the left.
	noParens := &ast.BinaryOpExpr{
		Left:  ref("a"),
		Op:    ast.OpPow,
		Right: &ast.BinaryOpExpr{Left: ref("b"), Op: ast.OpPow, Right: ref("c")},
	}
	got, _ := renderExpr(noParens)
	if got != "@a ** @b ** @c" {
		t.Errorf("got %q", got)
	}

	needsParens := &ast.BinaryOpExpr{
		Left:  &ast.BinaryOpExpr{Left: ref("a"), Op: ast.OpPow, Right: ref("b")},
		Op:    ast.OpPow,
		Right: ref("c"),
	}
	got, _ = renderExpr(needsParens)
	if got != "(@a ** @b) ** @c" {
		t.Errorf("got %q", got)
	}
}

func TestRenderSweepAllAndProduct(t *testing.T) {
	sw := &ast.Sweep{Statements: []ast.SweepStmt{
		&ast.ProductStmt{Statements: []ast.SweepStmt{
			&ast.AllStmt{Identifier: ast.Identifier{Name: "lr"}, Exprs: []ast.Expr{&ast.IntLit{Value: 1}, &ast.IntLit{Value: 2}}},
		}},
	}}
	got, err := Render(sw)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(got, "product:") || !strings.Contains(got, "lr: [1, 2]") {
		t.Errorf("got %q", got)
	}
}

func TestRenderStringEscapes(t *testing.T) {
	got := renderString("a\"b\\c\nd")
	if got != `"a\"b\\c\nd"` {
		t.Errorf("got %q", got)
	}
}

func TestRenderSweepGoldenText(t *testing.T) {
	sw := &ast.Sweep{Statements: []ast.SweepStmt{
		&ast.WithStmt{
			Namespace: ast.Namespace{Path: []string{"model"}},
			Statements: []ast.SweepStmt{
				&ast.ProductStmt{Statements: []ast.SweepStmt{
					&ast.AllStmt{Identifier: ast.Identifier{Name: "lr"}, Exprs: []ast.Expr{&ast.FloatLit{Value: 0.1}, &ast.FloatLit{Value: 0.01}}},
					&ast.AllStmt{Identifier: ast.Identifier{Name: "depth"}, Exprs: []ast.Expr{&ast.IntLit{Value: 2}, &ast.IntLit{Value: 4}}},
				}},
			},
		},
	}}
	got, err := Render(sw)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	snaps.MatchSnapshot(t, got)
}

func TestIdentifierStringAssemblesScopeNamespaceName(t *testing.T) {
	id := ast.Identifier{
		Scope:     ast.Scope{Path: []string{"s1", "s2"}},
		Namespace: ast.Namespace{Path: []string{"ns1", "ns2"}},
		Name:      "name",
	}
	got := IdentifierString(id)
	if got != "s1/s2/ns1.ns2.name" {
		t.Errorf("got %q", got)
	}
}

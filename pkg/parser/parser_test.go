package parser

import (
	"errors"
	"testing"

	"github.com/hyperion-lang/hyperion/pkg/ast"
	"github.com/hyperion-lang/hyperion/pkg/herrors"
)

func TestParseConfigBinding(t *testing.T) {
	cfg, err := ParseConfig("", "model.lr = 2 * 3 + 1\n")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(cfg.Statements) != 1 {
		t.Fatalf("expected 1 statement, got %d", len(cfg.Statements))
	}
	b, ok := cfg.Statements[0].(*ast.BindingStmt)
	if !ok {
		t.Fatalf("expected *ast.BindingStmt, got %T", cfg.Statements[0])
	}
	if b.Identifier.Name != "lr" || len(b.Identifier.Namespace.Path) != 1 || b.Identifier.Namespace.Path[0] != "model" {
		t.Errorf("unexpected identifier: %+v", b.Identifier)
	}
	bin, ok := b.Expr.(*ast.BinaryOpExpr)
	if !ok {
		t.Fatalf("expected top-level BinaryOpExpr (add), got %T", b.Expr)
	}
	if bin.Op != ast.OpAdd {
		t.Errorf("expected add at the root (loosest precedence wins), got %q", bin.Op)
	}
}

func TestParseSameDepthLeftAssociative(t *testing.T) {
	// @a - @b - @c must parse as (@a - @b) - @c: left on the left is a
	// BinaryOp of equal precedence, so the left-associative rule applies.
	expr, err := ParseValue("", "@a - @b - @c")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	root, ok := expr.(*ast.BinaryOpExpr)
	if !ok {
		t.Fatalf("expected BinaryOpExpr, got %T", expr)
	}
	if root.Op != ast.OpSub {
		t.Fatalf("expected sub, got %q", root.Op)
	}
	left, ok := root.Left.(*ast.BinaryOpExpr)
	if !ok || left.Op != ast.OpSub {
		t.Fatalf("expected left child to be a sub BinaryOpExpr, got %#v", root.Left)
	}
	if _, ok := root.Right.(*ast.RefExpr); !ok {
		t.Fatalf("expected right child to be the reference @c, got %#v", root.Right)
	}
}

func TestParsePowRightAssociative(t *testing.T) {
	expr, err := ParseValue("", "@a ** @b ** @c")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	root, ok := expr.(*ast.BinaryOpExpr)
	if !ok || root.Op != ast.OpPow {
		t.Fatalf("expected pow BinaryOpExpr, got %#v", expr)
	}
	if _, ok := root.Left.(*ast.RefExpr); !ok {
		t.Fatalf("expected left child to be the reference @a, got %#v", root.Left)
	}
	right, ok := root.Right.(*ast.BinaryOpExpr)
	if !ok || right.Op != ast.OpPow {
		t.Fatalf("expected right child to be a pow BinaryOpExpr, got %#v", root.Right)
	}
}

func TestParseNotInVsNotPrefix(t *testing.T) {
	expr, err := ParseValue("", "not @a in @b")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	not, ok := expr.(*ast.UnaryOpExpr)
	if !ok || not.Op != ast.OpNot {
		t.Fatalf("expected a prefix not_ at the root, got %#v", expr)
	}
	in, ok := not.Operand.(*ast.BinaryOpExpr)
	if !ok || in.Op != ast.OpIn {
		t.Fatalf("expected not_'s operand to be an in_ BinaryOpExpr, got %#v", not.Operand)
	}

	expr, err = ParseValue("", "@a not in @b")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	notIn, ok := expr.(*ast.BinaryOpExpr)
	if !ok || notIn.Op != ast.OpNotIn {
		t.Fatalf("expected a single not_in BinaryOpExpr, got %#v", expr)
	}
}

func TestParseIdentifierAssembly(t *testing.T) {
	cfg, err := ParseConfig("", "s1/s2/ns1.ns2.name = 1\n")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	b := cfg.Statements[0].(*ast.BindingStmt)
	id := b.Identifier
	if len(id.Scope.Path) != 2 || id.Scope.Path[0] != "s1" || id.Scope.Path[1] != "s2" {
		t.Errorf("unexpected scope: %+v", id.Scope)
	}
	if len(id.Namespace.Path) != 2 || id.Namespace.Path[0] != "ns1" || id.Namespace.Path[1] != "ns2" {
		t.Errorf("unexpected namespace: %+v", id.Namespace)
	}
	if id.Name != "name" {
		t.Errorf("unexpected name: %q", id.Name)
	}
}

func TestParseSweepAllStatement(t *testing.T) {
	sw, err := ParseSweep("", "lr: [0.1, 0.01, 0.001]\n")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(sw.Statements) != 1 {
		t.Fatalf("expected 1 statement, got %d", len(sw.Statements))
	}
	all, ok := sw.Statements[0].(*ast.AllStmt)
	if !ok {
		t.Fatalf("expected *ast.AllStmt, got %T", sw.Statements[0])
	}
	if len(all.Exprs) != 3 {
		t.Fatalf("expected 3 candidate values, got %d", len(all.Exprs))
	}
}

func TestParseProductBlock(t *testing.T) {
	src := "product:\n    a.x: [1, 2]\n    b.y: [10, 20]\n"
	sw, err := ParseSweep("", src)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(sw.Statements) != 1 {
		t.Fatalf("expected 1 top-level statement, got %d", len(sw.Statements))
	}
	prod, ok := sw.Statements[0].(*ast.ProductStmt)
	if !ok {
		t.Fatalf("expected *ast.ProductStmt, got %T", sw.Statements[0])
	}
	if len(prod.Statements) != 2 {
		t.Fatalf("expected 2 child statements, got %d", len(prod.Statements))
	}
}

func TestParseTable(t *testing.T) {
	src := "table a, b:\n    1, 10\n    2, 20\n"
	sw, err := ParseSweep("", src)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	tbl, ok := sw.Statements[0].(*ast.TableStmt)
	if !ok {
		t.Fatalf("expected *ast.TableStmt, got %T", sw.Statements[0])
	}
	if len(tbl.Header.Identifiers) != 2 {
		t.Fatalf("expected 2 header identifiers, got %d", len(tbl.Header.Identifiers))
	}
	if len(tbl.Rows) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(tbl.Rows))
	}
}

func TestParseWithBlock(t *testing.T) {
	src := "with m:\n    a = 1\n    b = 2\n"
	sw, err := ParseSweep("", src)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	with, ok := sw.Statements[0].(*ast.WithStmt)
	if !ok {
		t.Fatalf("expected *ast.WithStmt, got %T", sw.Statements[0])
	}
	if len(with.Namespace.Path) != 1 || with.Namespace.Path[0] != "m" {
		t.Errorf("unexpected with namespace: %+v", with.Namespace)
	}
	if len(with.Statements) != 2 {
		t.Fatalf("expected 2 bindings inside the with block, got %d", len(with.Statements))
	}
}

func TestParseErrorCarriesPosition(t *testing.T) {
	_, err := ParseConfig("bad.hyp", "a = \n")
	if err == nil {
		t.Fatal("expected a parse error")
	}
	var perr *herrors.ParseError
	if !errors.As(err, &perr) {
		t.Fatalf("expected *herrors.ParseError, got %T", err)
	}
	if perr.Pos.Filename != "bad.hyp" || perr.Pos.Line != 1 {
		t.Errorf("expected the error positioned in bad.hyp on line 1, got %+v", perr.Pos)
	}
}

func TestParseRemovesParentheses(t *testing.T) {
	expr, err := ParseValue("", "(1 + 2)")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, ok := expr.(*ast.ParenExpr); ok {
		t.Fatal("expected ParenExpr to have been stripped by the parser's entry point")
	}
}

func TestParseContainers(t *testing.T) {
	expr, err := ParseValue("", `[1, 2, {"a": 1}, (1, 2,)]`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	list, ok := expr.(*ast.ListExpr)
	if !ok || len(list.Items) != 4 {
		t.Fatalf("expected a 4-item list, got %#v", expr)
	}
	if _, ok := list.Items[2].(*ast.DictExpr); !ok {
		t.Errorf("expected third item to be a dict, got %#v", list.Items[2])
	}
	if _, ok := list.Items[3].(*ast.TupleExpr); !ok {
		t.Errorf("expected fourth item to be a tuple, got %#v", list.Items[3])
	}
}

package shim

import (
	"testing"

	"github.com/hyperion-lang/hyperion/pkg/ast"
)

func TestResolveEvaluatesBindings(t *testing.T) {
	cfg := &ast.Config{Statements: []ast.Stmt{
		&ast.BindingStmt{
			Identifier: ast.Identifier{Namespace: ast.Namespace{Path: []string{"model"}}, Name: "lr"},
			Expr:       &ast.IntLit{Value: 7},
		},
	}}
	got, err := Resolve(cfg)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got["model.lr"] != int64(7) {
		t.Errorf("got %+v", got)
	}
}

func TestResolveReferenceBetweenBindings(t *testing.T) {
	cfg := &ast.Config{Statements: []ast.Stmt{
		&ast.BindingStmt{Identifier: ast.Identifier{Name: "a"}, Expr: &ast.IntLit{Value: 3}},
		&ast.BindingStmt{
			Identifier: ast.Identifier{Name: "b"},
			Expr:       &ast.RefExpr{Identifier: ast.Identifier{Name: "a"}},
		},
	}}
	got, err := Resolve(cfg)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got["b"] != int64(3) {
		t.Errorf("expected b to resolve through the reference to a, got %+v", got)
	}
}

func TestResolveUnknownReferenceIsUnresolved(t *testing.T) {
	cfg := &ast.Config{Statements: []ast.Stmt{
		&ast.BindingStmt{
			Identifier: ast.Identifier{Name: "b"},
			Expr:       &ast.RefExpr{Identifier: ast.Identifier{Name: "missing"}},
		},
	}}
	got, err := Resolve(cfg)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	u, ok := got["b"].(Unresolved)
	if !ok {
		t.Fatalf("expected Unresolved, got %#v", got["b"])
	}
	if u.Identifier.Name != "missing" {
		t.Errorf("got %+v", u.Identifier)
	}
}

func TestEvalExprShimBinaryCall(t *testing.T) {
	// _h/_b(l=2, o="add", r=3)
	e := &ast.CallExpr{
		Identifier: ast.Identifier{Scope: ast.Scope{Path: []string{"_h"}}, Name: "_b"},
		Arguments: []ast.Argument{
			{Name: "l", Value: &ast.IntLit{Value: 2}},
			{Name: "o", Value: &ast.StringLit{Value: "add"}},
			{Name: "r", Value: &ast.IntLit{Value: 3}},
		},
	}
	got, err := EvalExpr(e)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != int64(5) {
		t.Errorf("got %v", got)
	}
}

func TestEvalExprShimUnaryCall(t *testing.T) {
	e := &ast.CallExpr{
		Identifier: ast.Identifier{Scope: ast.Scope{Path: []string{"_h"}}, Name: "_u"},
		Arguments: []ast.Argument{
			{Name: "o", Value: &ast.StringLit{Value: "neg"}},
			{Name: "v", Value: &ast.IntLit{Value: 4}},
		},
	}
	got, err := EvalExpr(e)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != int64(-4) {
		t.Errorf("got %v", got)
	}
}

func TestEvalExprUnknownCallIsUnresolvedWithArgs(t *testing.T) {
	e := &ast.CallExpr{
		Identifier: ast.Identifier{Name: "configurable"},
		Arguments:  []ast.Argument{{Name: "x", Value: &ast.IntLit{Value: 1}}},
	}
	got, err := EvalExpr(e)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	u, ok := got.(Unresolved)
	if !ok {
		t.Fatalf("expected Unresolved, got %#v", got)
	}
	if u.Identifier.Name != "configurable" || u.Arguments["x"] != int64(1) {
		t.Errorf("got %+v", u)
	}
}

func TestEvalExprDictRequiresStringKeys(t *testing.T) {
	e := &ast.DictExpr{Items: []ast.DictItem{
		{Key: &ast.IntLit{Value: 1}, Value: &ast.IntLit{Value: 2}},
	}}
	_, err := EvalExpr(e)
	if err == nil {
		t.Fatal("expected an error for a non-string dict key")
	}
}

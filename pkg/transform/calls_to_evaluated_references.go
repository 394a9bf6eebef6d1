package transform

import (
	"fmt"

	"github.com/hyperion-lang/hyperion/pkg/ast"
)

// CallsToEvaluatedReferences lowers every Call with a non-empty argument
// list (4.3.3), wherever it occurs in the tree — including one that is a
// binding's entire right-hand side. The call is replaced in place by an
// argumentless Call whose identifier has a fresh scope segment "_0", "_1",
// ... appended (monotonically, in the order lowerExpr's bottom-up walk
// finishes calls — innermost first), and each of its original arguments is lifted
// out into its own synthetic Binding, appended to the Config after the
// rewritten statements: identifier formed by appending the call's own name
// onto its namespace (Identifier.WithName), keeping the argument's keyword
// as the new name. This is the base-config format's own "set parameter X
// of configurable Y" mechanism; no Hyperion Reference is introduced by
// this pass.
//
// This pass runs after flatten_withs and remove_prelude in the standard
// pipeline (see PreprocessConfig and FinalizeEnumeratedConfig), so every
// input statement is already a plain
// BindingStmt; Import/Include/With are forwarded unchanged if seen, rather
// than rejected, so the pass stays safe to call in isolation.
func CallsToEvaluatedReferences(c *ast.Config) *ast.Config {
	cl := &callLowerer{}
	stmts := make([]ast.Stmt, len(c.Statements))
	for i, stmt := range c.Statements {
		stmts[i] = cl.lowerStmt(stmt)
	}
	return &ast.Config{Statements: append(stmts, cl.companions...)}
}

type callLowerer struct {
	counter    int
	companions []ast.Stmt
}

func (cl *callLowerer) lowerStmt(stmt ast.Stmt) ast.Stmt {
	b, ok := stmt.(*ast.BindingStmt)
	if !ok {
		return stmt
	}
	return &ast.BindingStmt{Identifier: b.Identifier, Expr: cl.lowerExpr(b.Expr)}
}

// lowerExpr walks e bottom-up: a call nested in another call's arguments
// (or in a container literal) is lowered before the call containing it, so
// that by the time a call's own argument list is inspected, every call
// already nested inside it has already been stripped to argumentless form.
func (cl *callLowerer) lowerExpr(e ast.Expr) ast.Expr {
	switch t := e.(type) {
	case *ast.CallExpr:
		args := make([]ast.Argument, len(t.Arguments))
		for i, a := range t.Arguments {
			args[i] = ast.Argument{Name: a.Name, Value: cl.lowerExpr(a.Value)}
		}
		call := &ast.CallExpr{Identifier: t.Identifier, Arguments: args}
		if len(args) == 0 {
			return call
		}
		return cl.hoist(call)

	case *ast.DictExpr:
		items := make([]ast.DictItem, len(t.Items))
		for i, it := range t.Items {
			items[i] = ast.DictItem{Key: cl.lowerExpr(it.Key), Value: cl.lowerExpr(it.Value)}
		}
		return &ast.DictExpr{Items: items}

	case *ast.ListExpr:
		items := make([]ast.Expr, len(t.Items))
		for i, it := range t.Items {
			items[i] = cl.lowerExpr(it)
		}
		return &ast.ListExpr{Items: items}

	case *ast.TupleExpr:
		items := make([]ast.Expr, len(t.Items))
		for i, it := range t.Items {
			items[i] = cl.lowerExpr(it)
		}
		return &ast.TupleExpr{Items: items}

	default:
		// Literal, Reference or Macro: nothing to hoist.
		return e
	}
}

// hoist appends a fresh scope segment to call's identifier, strips its
// arguments, and queues one companion Binding per original argument.
func (cl *callLowerer) hoist(call *ast.CallExpr) *ast.CallExpr {
	scoped := call.Identifier.WithScope(fmt.Sprintf("_%d", cl.counter))
	cl.counter++

	for _, a := range call.Arguments {
		cl.companions = append(cl.companions, &ast.BindingStmt{
			Identifier: scoped.WithName(a.Name),
			Expr:       a.Value,
		})
	}

	return &ast.CallExpr{Identifier: scoped, Arguments: nil}
}

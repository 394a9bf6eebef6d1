package transform

import "github.com/hyperion-lang/hyperion/pkg/ast"

// BindingsToSingletons rewrites every plain BindingStmt in a Sweep into an
// equivalent AllStmt carrying its one value (4.3.7). This is what makes
// the configs-as-sweeps invariant (8) hold structurally: once every
// binding looks like an All of length one, the enumerator only ever has to
// implement four cases — All, Product, Union and Table.
//
// Inside a Union, bindings are additionally factored per 4.3.7: a binding
// sitting directly alongside other Union branches applies to every branch,
// not just to a standalone branch of its own, so a Union with any direct
// Binding child is rewritten to Product(singletons, Union(the remaining
// non-binding branches)) before its children are themselves singletonized.
func BindingsToSingletons(s *ast.Sweep) *ast.Sweep {
	return &ast.Sweep{Statements: singletonizeAll(s.Statements)}
}

func singletonize(stmt ast.SweepStmt) ast.SweepStmt {
	switch t := stmt.(type) {
	case *ast.BindingStmt:
		return &ast.AllStmt{Identifier: t.Identifier, Exprs: []ast.Expr{t.Expr}}

	case *ast.WithStmt:
		return &ast.WithStmt{Namespace: t.Namespace, Statements: singletonizeAll(t.Statements)}

	case *ast.ProductStmt:
		return &ast.ProductStmt{Statements: singletonizeAll(t.Statements)}

	case *ast.UnionStmt:
		return singletonizeUnion(t)

	default:
		// AllStmt, TableStmt, ImportStmt, IncludeStmt: nothing to rewrite.
		return stmt
	}
}

func singletonizeAll(stmts []ast.SweepStmt) []ast.SweepStmt {
	out := make([]ast.SweepStmt, len(stmts))
	for i, s := range stmts {
		out[i] = singletonize(s)
	}
	return out
}

// singletonizeUnion pulls every direct Binding child out of u, turns each
// into its own All, and wraps them in a Product alongside a Union of
// whatever branches remain. A bare Union of nothing but bindings collapses
// to Product(singletons) directly: an empty trailing Union would otherwise
// enumerate to zero configs (Union's cardinality identity), silently
// zeroing out the singletons it was meant to carry.
func singletonizeUnion(u *ast.UnionStmt) ast.SweepStmt {
	var singletons []ast.SweepStmt
	var rest []ast.SweepStmt
	for _, stmt := range u.Statements {
		if b, ok := stmt.(*ast.BindingStmt); ok {
			singletons = append(singletons, &ast.AllStmt{Identifier: b.Identifier, Exprs: []ast.Expr{b.Expr}})
			continue
		}
		rest = append(rest, singletonize(stmt))
	}
	if len(singletons) == 0 {
		return &ast.UnionStmt{Statements: rest}
	}
	if len(rest) == 0 {
		return &ast.ProductStmt{Statements: singletons}
	}
	return &ast.ProductStmt{Statements: append(singletons, &ast.UnionStmt{Statements: rest})}
}

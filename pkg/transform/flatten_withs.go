package transform

import "github.com/hyperion-lang/hyperion/pkg/ast"

// FlattenWithsConfig eliminates every WithStmt by prefixing its Namespace
// onto every Binding it transitively contains and splicing the result into
// the parent block (4.3.4). Like call lowering, this cannot be a plain
// Fold: the accumulated namespace prefix has to flow down through nested
// With/Product/Union blocks, and a single WithStmt expands into a variable
// number of sibling statements rather than one replacement node.
func FlattenWithsConfig(c *ast.Config) *ast.Config {
	var out []ast.Stmt
	for _, s := range c.Statements {
		for _, flattened := range flattenStmt(s.(ast.SweepStmt), nil) {
			out = append(out, flattened.(ast.Stmt))
		}
	}
	return &ast.Config{Statements: out}
}

// FlattenWithsSweep is FlattenWithsConfig for a Sweep tree.
func FlattenWithsSweep(s *ast.Sweep) *ast.Sweep {
	var out []ast.SweepStmt
	for _, st := range s.Statements {
		out = append(out, flattenStmt(st, nil)...)
	}
	return &ast.Sweep{Statements: out}
}

func flattenStmt(stmt ast.SweepStmt, prefix []string) []ast.SweepStmt {
	switch s := stmt.(type) {
	case *ast.ImportStmt, *ast.IncludeStmt:
		return []ast.SweepStmt{s}

	case *ast.BindingStmt:
		return []ast.SweepStmt{&ast.BindingStmt{
			Identifier: s.Identifier.WithNamespacePrefix(prefix),
			Expr:       s.Expr,
		}}

	case *ast.WithStmt:
		childPrefix := append(append([]string{}, prefix...), s.Namespace.Path...)
		var out []ast.SweepStmt
		for _, inner := range s.Statements {
			out = append(out, flattenStmt(inner, childPrefix)...)
		}
		return out

	case *ast.AllStmt:
		return []ast.SweepStmt{&ast.AllStmt{
			Identifier: s.Identifier.WithNamespacePrefix(prefix),
			Exprs:      s.Exprs,
		}}

	case *ast.ProductStmt:
		var out []ast.SweepStmt
		for _, inner := range s.Statements {
			out = append(out, flattenStmt(inner, prefix)...)
		}
		return []ast.SweepStmt{&ast.ProductStmt{Statements: out}}

	case *ast.UnionStmt:
		var out []ast.SweepStmt
		for _, inner := range s.Statements {
			out = append(out, flattenStmt(inner, prefix)...)
		}
		return []ast.SweepStmt{&ast.UnionStmt{Statements: out}}

	case *ast.TableStmt:
		ids := make([]ast.Identifier, len(s.Header.Identifiers))
		for i, id := range s.Header.Identifiers {
			ids[i] = id.WithNamespacePrefix(prefix)
		}
		return []ast.SweepStmt{&ast.TableStmt{Header: ast.Header{Identifiers: ids}, Rows: s.Rows}}

	default:
		return []ast.SweepStmt{stmt}
	}
}

// Package enumerate turns a prepared Sweep into the stream of concrete
// Configs it describes (4.4). A Sweep tree is a nesting of four
// combinators — All (one binding, several candidate values), Product
// (cartesian combination of its children), Union (concatenation) and Table
// (one row per combination, columns bound in lockstep) — and the Sweep
// itself behaves as a Product of its top-level statements.
package enumerate

import (
	"fmt"

	"github.com/hyperion-lang/hyperion/pkg/ast"
	"github.com/hyperion-lang/hyperion/pkg/herrors"
)

// binding is one resolved (identifier, value expression) pair of a
// generated config.
type binding struct {
	id   ast.Identifier
	expr ast.Expr
}

// configDict is one point of the sweep's enumeration, built up as
// Product/Union/Table combine their children; GenerateConfigs serialises
// each one to an *ast.Config at the end.
type configDict []binding

func (d configDict) indexOf(id ast.Identifier) (int, bool) {
	for i, b := range d {
		if identifierEqual(b.id, id) {
			return i, true
		}
	}
	return 0, false
}

func identifierEqual(a, b ast.Identifier) bool {
	return a.Name == b.Name &&
		stringsEqual(a.Scope.Path, b.Scope.Path) &&
		stringsEqual(a.Namespace.Path, b.Namespace.Path)
}

func stringsEqual(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// merge overlays second onto a copy of first: an identifier present in
// both keeps second's binding, which is the "later statement wins" rule
// product's dict merge relies on (see genProduct).
func merge(first, second configDict) configDict {
	out := make(configDict, len(first), len(first)+len(second))
	copy(out, first)
	for _, b := range second {
		if i, ok := out.indexOf(b.id); ok {
			out[i] = b
		} else {
			out = append(out, b)
		}
	}
	return out
}

// GenerateConfigs enumerates every Config a (preprocessed) Sweep describes.
// The Sweep's own statement list is treated as an implicit Product, so an
// empty Sweep yields exactly one empty Config — the identity of Product,
// matching the "sweep cardinality" invariant (8).
func GenerateConfigs(s *ast.Sweep) ([]*ast.Config, error) {
	dicts, err := genProduct(s.Statements)
	if err != nil {
		return nil, err
	}
	configs := make([]*ast.Config, len(dicts))
	for i, d := range dicts {
		configs[i] = dictToConfig(d)
	}
	return configs, nil
}

func dictToConfig(d configDict) *ast.Config {
	stmts := make([]ast.Stmt, len(d))
	for i, b := range d {
		stmts[i] = &ast.BindingStmt{Identifier: b.id, Expr: b.expr}
	}
	return &ast.Config{Statements: stmts}
}

func gen(stmt ast.SweepStmt) ([]configDict, error) {
	switch s := stmt.(type) {
	case *ast.AllStmt:
		out := make([]configDict, len(s.Exprs))
		for i, e := range s.Exprs {
			out[i] = configDict{{id: s.Identifier, expr: e}}
		}
		return out, nil

	case *ast.BindingStmt:
		// BindingsToSingletons normally eliminates this before enumeration
		// runs; handled directly here so GenerateConfigs stays safe to call
		// on a tree that skipped that pass.
		return []configDict{{{id: s.Identifier, expr: s.Expr}}}, nil

	case *ast.ProductStmt:
		return genProduct(s.Statements)

	case *ast.UnionStmt:
		return genUnion(s.Statements)

	case *ast.TableStmt:
		out := make([]configDict, len(s.Rows))
		for i, row := range s.Rows {
			d := make(configDict, len(s.Header.Identifiers))
			for j, id := range s.Header.Identifiers {
				d[j] = binding{id: id, expr: row.Exprs[j]}
			}
			out[i] = d
		}
		return out, nil

	case *ast.WithStmt:
		// FlattenWiths normally eliminates this before enumeration runs;
		// a With left in place behaves transparently as a Product of its
		// (already-flattened-or-not) children.
		return genProduct(s.Statements)

	case *ast.ImportStmt, *ast.IncludeStmt:
		return []configDict{{}}, nil

	default:
		return nil, &herrors.InternalError{Message: fmt.Sprintf("enumerate: unhandled sweep statement %T", stmt)}
	}
}

// genProduct folds left to right, each step merging the next statement's
// candidates over the accumulator so that later statements win identifier
// conflicts — equivalent to, but iterative over, the reference
// implementation's right-recursive product(first, *rest).
func genProduct(stmts []ast.SweepStmt) ([]configDict, error) {
	acc := []configDict{{}}
	for _, stmt := range stmts {
		next, err := gen(stmt)
		if err != nil {
			return nil, err
		}
		combined := make([]configDict, 0, len(acc)*len(next))
		for _, a := range acc {
			for _, b := range next {
				combined = append(combined, merge(a, b))
			}
		}
		acc = combined
	}
	return acc, nil
}

// genUnion concatenates each statement's candidates in source order.
func genUnion(stmts []ast.SweepStmt) ([]configDict, error) {
	var out []configDict
	for _, stmt := range stmts {
		next, err := gen(stmt)
		if err != nil {
			return nil, err
		}
		out = append(out, next...)
	}
	return out, nil
}

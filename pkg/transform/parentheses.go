// Package transform implements the tree-to-tree passes between parsing and
// rendering/enumeration (4.3): stripping transient parenthesis nodes,
// partial evaluation, lowering operators to calls and calls to evaluated
// references, flattening with-blocks, sweep validation, prelude handling
// and the binding/singleton normalisation the enumerator relies on. Every
// pass is either a direct use of ast.Fold or, where Fold's local
// node-for-node replacement isn't expressive enough (call lowering needs to
// splice new sibling statements; flattening needs an accumulated
// namespace prefix), a small hand-written recursion in the same spirit.
package transform

import "github.com/hyperion-lang/hyperion/pkg/ast"

func stripParens(n ast.Node) ast.Node {
	if pe, ok := n.(*ast.ParenExpr); ok {
		return pe.Inner
	}
	return n
}

// RemoveParentheses strips every ParenExpr from a Config, recursively.
// ParenExpr only exists to resolve the parse-time ambiguity of 4.1.2; once
// the tree is built it carries no further meaning.
func RemoveParentheses(c *ast.Config) *ast.Config {
	return ast.FoldConfig(stripParens, c)
}

// RemoveParenthesesSweep is RemoveParentheses for a Sweep tree.
func RemoveParenthesesSweep(s *ast.Sweep) *ast.Sweep {
	return ast.FoldSweep(stripParens, s)
}

// RemoveParenthesesExpr is RemoveParentheses for a standalone expression.
func RemoveParenthesesExpr(e ast.Expr) ast.Expr {
	return ast.FoldExpr(stripParens, e)
}

package transform

import "github.com/hyperion-lang/hyperion/pkg/ast"

// unaryCallIdentifier and binaryCallIdentifier are the _h/_u and _h/_b
// scope-qualified names the wire format reserves for lowered operators.
// This is a deliberate divergence from the reference implementation, which
// registers the same two evaluators under the dotted names _h.u/_h.b (a
// namespace, not a scope); the wire format fixes the scope form, and that
// is what every consumer of a rendered config must match, so it is what
// this lowering produces. See DESIGN.md.
var (
	unaryCallIdentifier  = ast.Identifier{Scope: ast.Scope{Path: []string{"_h"}}, Name: "_u"}
	binaryCallIdentifier = ast.Identifier{Scope: ast.Scope{Path: []string{"_h"}}, Name: "_b"}
)

func toCall(n ast.Node) ast.Node {
	switch t := n.(type) {
	case *ast.UnaryOpExpr:
		return &ast.CallExpr{
			Identifier: unaryCallIdentifier,
			Arguments: []ast.Argument{
				{Name: "o", Value: &ast.StringLit{Value: string(t.Op)}},
				{Name: "v", Value: t.Operand},
			},
		}
	case *ast.BinaryOpExpr:
		return &ast.CallExpr{
			Identifier: binaryCallIdentifier,
			Arguments: []ast.Argument{
				{Name: "l", Value: t.Left},
				{Name: "o", Value: &ast.StringLit{Value: string(t.Op)}},
				{Name: "r", Value: t.Right},
			},
		}
	default:
		return n
	}
}

// ExpressionsToCalls rewrites every remaining UnaryOpExpr/BinaryOpExpr (the
// ones PartialEval could not fold, because an operand is a Reference, Call
// or Macro) into a call to the runtime shim's _h/_u or _h/_b evaluator
// (4.3.2), so the external base-config format — which has no operator
// syntax of its own — can still represent the expression.
func ExpressionsToCalls(tree ast.Node) ast.Node {
	return ast.Fold(toCall, tree)
}

// ExpressionsToCallsConfig runs ExpressionsToCalls over a whole Config.
func ExpressionsToCallsConfig(c *ast.Config) *ast.Config {
	return ExpressionsToCalls(c).(*ast.Config)
}

// ExpressionsToCallsSweep runs ExpressionsToCalls over a whole Sweep.
func ExpressionsToCallsSweep(s *ast.Sweep) *ast.Sweep {
	return ExpressionsToCalls(s).(*ast.Sweep)
}

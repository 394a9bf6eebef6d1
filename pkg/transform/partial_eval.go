package transform

import (
	"github.com/hyperion-lang/hyperion/pkg/ast"
	"github.com/hyperion-lang/hyperion/pkg/evalop"
)

// PartialEval constant-folds every UnaryOpExpr/BinaryOpExpr whose operands
// are, recursively, Int/Float/Bool literals (4.3.1). It is partially
// idempotent: anything it cannot fold — an operand that is a Reference,
// Call, Macro, container, or a string — is left exactly as it was, so a
// second pass over an already-folded tree is a no-op.
//
// Fold alone cannot report a failure, so the first evaluation error is
// captured by the closure and returned after the traversal completes; Fold
// still runs to completion (cheaply, since later folds of already-erroring
// subtrees see no literal operands and skip straight through) but the
// returned tree is discarded on error.
func PartialEval(tree ast.Node) (ast.Node, error) {
	var firstErr error
	f := func(n ast.Node) ast.Node {
		if firstErr != nil {
			return n
		}
		switch t := n.(type) {
		case *ast.UnaryOpExpr:
			v, ok := literalValue(t.Operand)
			if !ok {
				return n
			}
			result, err := evalop.EvalUnary(t.Op, v)
			if err != nil {
				firstErr = err
				return n
			}
			return literalNode(result)

		case *ast.BinaryOpExpr:
			lv, lok := literalValue(t.Left)
			rv, rok := literalValue(t.Right)
			if !lok || !rok {
				return n
			}
			result, err := evalop.EvalBinary(lv, t.Op, rv)
			if err != nil {
				firstErr = err
				return n
			}
			return literalNode(result)

		default:
			return n
		}
	}

	result := ast.Fold(f, tree)
	if firstErr != nil {
		return nil, firstErr
	}
	return result, nil
}

// PartialEvalConfig runs PartialEval over a whole Config.
func PartialEvalConfig(c *ast.Config) (*ast.Config, error) {
	n, err := PartialEval(c)
	if err != nil {
		return nil, err
	}
	return n.(*ast.Config), nil
}

// PartialEvalSweep runs PartialEval over a whole Sweep.
func PartialEvalSweep(s *ast.Sweep) (*ast.Sweep, error) {
	n, err := PartialEval(s)
	if err != nil {
		return nil, err
	}
	return n.(*ast.Sweep), nil
}

func literalValue(e ast.Expr) (any, bool) {
	switch t := e.(type) {
	case *ast.IntLit:
		return t.Value, true
	case *ast.FloatLit:
		return t.Value, true
	case *ast.BoolLit:
		return t.Value, true
	default:
		return nil, false
	}
}

func literalNode(v any) ast.Expr {
	switch x := v.(type) {
	case int64:
		return &ast.IntLit{Value: x}
	case float64:
		return &ast.FloatLit{Value: x}
	case bool:
		return &ast.BoolLit{Value: x}
	default:
		panic("transform: partial_eval produced a non-literal value")
	}
}

// Package shim implements the runtime half of the operator lowering that
// pkg/transform performs at rendering time (4.6): evaluating the _h/_u and
// _h/_b calls expressions_to_calls introduces, reusing pkg/evalop so the
// two phases agree by construction rather than by two independent
// implementations staying in sync.
//
// A Hyperion document resolves its own References and the operator shim's
// calls; a call to any other identifier names a configurable the document
// does not define a value for itself (it is owned by whatever base-config
// host embeds Hyperion), so it resolves to an Unresolved value carrying
// the call's identifier and already-evaluated keyword arguments rather
// than failing the whole document.
package shim

import (
	"fmt"

	"github.com/hyperion-lang/hyperion/pkg/ast"
	"github.com/hyperion-lang/hyperion/pkg/evalop"
	"github.com/hyperion-lang/hyperion/pkg/herrors"
	"github.com/hyperion-lang/hyperion/pkg/render"
)

// Unresolved is the value of a reference/call this package cannot evaluate
// on its own: a call to a configurable registered elsewhere.
type Unresolved struct {
	Identifier ast.Identifier
	Arguments  map[string]any
}

func (u Unresolved) String() string {
	return "<unresolved " + render.IdentifierString(u.Identifier) + ">"
}

const (
	unaryShimName  = "_u"
	binaryShimName = "_b"
	shimScope      = "_h"
)

// Resolve evaluates every binding in cfg to a concrete Go value: int64,
// float64, bool, string, nil, []any, map[string]any, or Unresolved. cfg
// must already have run through transform.PreprocessConfig (or
// FinalizeEnumeratedConfig): Resolve does not itself strip parentheses,
// fold constants or lower with-blocks.
func Resolve(cfg *ast.Config) (map[string]any, error) {
	r := &resolver{values: map[string]any{}}
	for _, stmt := range cfg.Statements {
		b, ok := stmt.(*ast.BindingStmt)
		if !ok {
			continue
		}
		v, err := r.eval(b.Expr)
		if err != nil {
			return nil, err
		}
		r.values[render.IdentifierString(b.Identifier)] = v
	}
	return r.values, nil
}

type resolver struct {
	values map[string]any
}

// EvalExpr evaluates a standalone expression with no enclosing document:
// References and unrecognised calls resolve to Unresolved rather than an
// error, exactly as they would inside Resolve. Used by the top-level
// ParseValue entry point (4.7).
func EvalExpr(e ast.Expr) (any, error) {
	r := &resolver{values: map[string]any{}}
	return r.eval(e)
}

func (r *resolver) eval(e ast.Expr) (any, error) {
	switch t := e.(type) {
	case *ast.NullLit:
		return nil, nil
	case *ast.BoolLit:
		return t.Value, nil
	case *ast.IntLit:
		return t.Value, nil
	case *ast.FloatLit:
		return t.Value, nil
	case *ast.StringLit:
		return t.Value, nil
	case *ast.MacroExpr:
		return nil, &herrors.EvalError{Kind: herrors.EvalTypeMismatch, Message: "macro %" + t.Name + " has no runtime value outside of its own expansion site"}

	case *ast.RefExpr:
		key := render.IdentifierString(t.Identifier)
		if v, ok := r.values[key]; ok {
			return v, nil
		}
		return Unresolved{Identifier: t.Identifier}, nil

	case *ast.CallExpr:
		return r.evalCall(t)

	case *ast.DictExpr:
		out := make(map[string]any, len(t.Items))
		for _, it := range t.Items {
			k, err := r.eval(it.Key)
			if err != nil {
				return nil, err
			}
			ks, ok := k.(string)
			if !ok {
				return nil, &herrors.EvalError{Kind: herrors.EvalTypeMismatch, Message: fmt.Sprintf("dict key must evaluate to a string, got %T", k)}
			}
			v, err := r.eval(it.Value)
			if err != nil {
				return nil, err
			}
			out[ks] = v
		}
		return out, nil

	case *ast.ListExpr:
		out := make([]any, len(t.Items))
		for i, it := range t.Items {
			v, err := r.eval(it)
			if err != nil {
				return nil, err
			}
			out[i] = v
		}
		return out, nil

	case *ast.TupleExpr:
		out := make([]any, len(t.Items))
		for i, it := range t.Items {
			v, err := r.eval(it)
			if err != nil {
				return nil, err
			}
			out[i] = v
		}
		return out, nil

	case *ast.UnaryOpExpr:
		v, err := r.eval(t.Operand)
		if err != nil {
			return nil, err
		}
		return evalop.EvalUnary(t.Op, v)

	case *ast.BinaryOpExpr:
		l, err := r.eval(t.Left)
		if err != nil {
			return nil, err
		}
		rv, err := r.eval(t.Right)
		if err != nil {
			return nil, err
		}
		return evalop.EvalBinary(l, t.Op, rv)

	case *ast.ParenExpr:
		return r.eval(t.Inner)

	default:
		return nil, &herrors.InternalError{Message: fmt.Sprintf("shim: unhandled expression type %T", e)}
	}
}

func (r *resolver) evalCall(c *ast.CallExpr) (any, error) {
	args := make(map[string]any, len(c.Arguments))
	for _, a := range c.Arguments {
		v, err := r.eval(a.Value)
		if err != nil {
			return nil, err
		}
		args[a.Name] = v
	}

	if isShimCall(c.Identifier, unaryShimName) {
		op, operand, err := unaryArgs(args)
		if err != nil {
			return nil, err
		}
		return evalop.EvalUnary(op, operand)
	}
	if isShimCall(c.Identifier, binaryShimName) {
		op, left, right, err := binaryArgs(args)
		if err != nil {
			return nil, err
		}
		return evalop.EvalBinary(left, op, right)
	}

	return Unresolved{Identifier: c.Identifier, Arguments: args}, nil
}

func isShimCall(id ast.Identifier, name string) bool {
	return id.Name == name && len(id.Scope.Path) == 1 && id.Scope.Path[0] == shimScope && len(id.Namespace.Path) == 0
}

func unaryArgs(args map[string]any) (ast.Operator, any, error) {
	opText, ok := args["o"].(string)
	if !ok {
		return "", nil, &herrors.InternalError{Message: "_h/_u call missing string 'o' argument"}
	}
	operand, ok := args["v"]
	if !ok {
		return "", nil, &herrors.InternalError{Message: "_h/_u call missing 'v' argument"}
	}
	return ast.Operator(opText), operand, nil
}

func binaryArgs(args map[string]any) (ast.Operator, any, any, error) {
	opText, ok := args["o"].(string)
	if !ok {
		return "", nil, nil, &herrors.InternalError{Message: "_h/_b call missing string 'o' argument"}
	}
	l, lok := args["l"]
	r, rok := args["r"]
	if !lok || !rok {
		return "", nil, nil, &herrors.InternalError{Message: "_h/_b call missing 'l' or 'r' argument"}
	}
	return ast.Operator(opText), l, r, nil
}

package evalop

import (
	"testing"

	"github.com/hyperion-lang/hyperion/pkg/ast"
	"github.com/hyperion-lang/hyperion/pkg/herrors"
)

func TestEvalBinaryArithmetic(t *testing.T) {
	cases := []struct {
		name  string
		left  any
		op    ast.Operator
		right any
		want  any
	}{
		{"add ints", int64(2), ast.OpAdd, int64(3), int64(5)},
		{"sub ints", int64(2), ast.OpSub, int64(3), int64(-1)},
		{"mul float", 2.5, ast.OpMul, 2.0, 5.0},
		{"floordiv rounds toward -inf", int64(-7), ast.OpFloorDiv, int64(2), int64(-4)},
		{"mod takes divisor sign", int64(-7), ast.OpMod, int64(2), int64(1)},
		{"pow int exact", int64(2), ast.OpPow, int64(10), int64(1024)},
		{"shift", int64(1), ast.OpLShift, int64(4), int64(16)},
		{"bitand", int64(6), ast.OpAnd, int64(3), int64(2)},
		{"eq", int64(1), ast.OpEq, int64(1), true},
		{"land returns operand", int64(0), ast.OpLAnd, int64(5), int64(0)},
		{"lor returns operand", false, ast.OpLOr, int64(7), int64(7)},
		{"in list", int64(2), ast.OpIn, []any{int64(1), int64(2)}, true},
		{"not_in list", int64(9), ast.OpNotIn, []any{int64(1), int64(2)}, true},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got, err := EvalBinary(c.left, c.op, c.right)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != c.want {
				t.Errorf("got %v, want %v", got, c.want)
			}
		})
	}
}

func TestEvalBinaryDivisionByZero(t *testing.T) {
	_, err := EvalBinary(int64(1), ast.OpFloorDiv, int64(0))
	var evalErr *herrors.EvalError
	if err == nil {
		t.Fatal("expected an error")
	}
	if !assertAs(err, &evalErr) || evalErr.Kind != herrors.EvalDivisionByZero {
		t.Errorf("expected EvalDivisionByZero, got %v", err)
	}
}

func TestEvalBinaryNegativeFractionalPowerIsValueDomain(t *testing.T) {
	_, err := EvalBinary(-4.0, ast.OpPow, 0.5)
	var evalErr *herrors.EvalError
	if err == nil {
		t.Fatal("expected an error")
	}
	if !assertAs(err, &evalErr) || evalErr.Kind != herrors.EvalValueDomain {
		t.Errorf("expected EvalValueDomain, got %v", err)
	}
}

func TestEvalUnary(t *testing.T) {
	got, err := EvalUnary(ast.OpNeg, int64(5))
	if err != nil {
		t.Fatal(err)
	}
	if got != int64(-5) {
		t.Errorf("got %v", got)
	}

	got, err = EvalUnary(ast.OpNot, false)
	if err != nil {
		t.Fatal(err)
	}
	if got != true {
		t.Errorf("got %v", got)
	}

	got, err = EvalUnary(ast.OpInv, int64(0))
	if err != nil {
		t.Fatal(err)
	}
	if got != int64(-1) {
		t.Errorf("got %v", got)
	}
}

func TestEvalBinaryTypeMismatch(t *testing.T) {
	_, err := EvalBinary("a", ast.OpAdd, int64(1))
	var evalErr *herrors.EvalError
	if err == nil {
		t.Fatal("expected an error")
	}
	if !assertAs(err, &evalErr) || evalErr.Kind != herrors.EvalTypeMismatch {
		t.Errorf("expected EvalTypeMismatch, got %v", err)
	}
}

func assertAs(err error, target **herrors.EvalError) bool {
	e, ok := err.(*herrors.EvalError)
	if !ok {
		return false
	}
	*target = e
	return true
}

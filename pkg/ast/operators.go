// Package ast defines the Hyperion abstract syntax tree: the Config and
// Sweep node families shared by the parser, transforms, the enumerator and
// the renderer.
package ast

// Operator is the closed set of unary and binary operator tags a Hyperion
// expression may use. The tag is the stable name used by the grammar,
// partial evaluation, the lowering transforms and the runtime shim; Chars
// is the surface syntax rendered back to source.
type Operator string

const (
	OpPow Operator = "pow"

	OpPos Operator = "pos"
	OpNeg Operator = "neg"
	OpInv Operator = "inv"

	OpMul      Operator = "mul"
	OpTrueDiv  Operator = "truediv"
	OpFloorDiv Operator = "floordiv"
	OpMod      Operator = "mod"

	OpAdd Operator = "add"
	OpSub Operator = "sub"

	OpLShift Operator = "lshift"
	OpRShift Operator = "rshift"

	OpAnd Operator = "and_"
	OpXor Operator = "xor"
	OpOr  Operator = "or_"

	OpEq    Operator = "eq"
	OpNe    Operator = "ne"
	OpLt    Operator = "lt"
	OpGt    Operator = "gt"
	OpLe    Operator = "le"
	OpGe    Operator = "ge"
	OpIn    Operator = "in_"
	OpNotIn Operator = "not_in"

	OpNot Operator = "not_"

	OpLAnd Operator = "land"
	OpLOr  Operator = "lor"
)

type operatorInfo struct {
	chars      string
	precedence int
	unary      bool
	rightAssoc bool
}

var operatorTable = map[Operator]operatorInfo{
	OpPow: {"**", 2, false, true},

	OpPos: {"+", 3, true, false},
	OpNeg: {"-", 3, true, false},
	OpInv: {"~", 3, true, false},

	OpMul:      {"*", 4, false, false},
	OpTrueDiv:  {"/", 4, false, false},
	OpFloorDiv: {"//", 4, false, false},
	OpMod:      {"%", 4, false, false},

	OpAdd: {"+", 5, false, false},
	OpSub: {"-", 5, false, false},

	OpLShift: {"<<", 6, false, false},
	OpRShift: {">>", 6, false, false},

	OpAnd: {"&", 7, false, false},
	OpXor: {"^", 8, false, false},
	OpOr:  {"|", 9, false, false},

	OpEq:    {"==", 10, false, false},
	OpNe:    {"!=", 10, false, false},
	OpLt:    {"<", 10, false, false},
	OpGt:    {">", 10, false, false},
	OpLe:    {"<=", 10, false, false},
	OpGe:    {">=", 10, false, false},
	OpIn:    {"in", 10, false, false},
	OpNotIn: {"not in", 10, false, false},

	OpNot: {"not ", 11, true, false},

	OpLAnd: {"and", 12, false, false},
	OpLOr:  {"or", 13, false, false},
}

// Precedence returns the operator's binding strength; lower binds tighter.
func (o Operator) Precedence() int {
	info, ok := operatorTable[o]
	if !ok {
		panic("ast: unknown operator " + string(o))
	}
	return info.precedence
}

// Chars returns the surface syntax for the operator.
func (o Operator) Chars() string {
	info, ok := operatorTable[o]
	if !ok {
		panic("ast: unknown operator " + string(o))
	}
	return info.chars
}

// IsUnary reports whether the operator is a prefix unary operator.
func (o Operator) IsUnary() bool {
	return operatorTable[o].unary
}

// RightAssociative reports whether same-precedence chains of this operator
// fold to the right instead of to the left. Only pow does.
func (o Operator) RightAssociative() bool {
	return operatorTable[o].rightAssoc
}

// ParenPrecedence is the precedence assigned to a parenthesised operand: it
// always short-circuits the equal-precedence chaining predicate used both
// to disambiguate the parse (4.1.2) and to decide when the renderer must
// re-introduce parentheses (4.5).
const ParenPrecedence = 0

// UnaryOperators lists every unary operator tag, in table order.
var UnaryOperators = []Operator{OpPos, OpNeg, OpInv, OpNot}

// BinaryOperators lists every binary operator tag, in table order.
var BinaryOperators = []Operator{
	OpPow,
	OpMul, OpTrueDiv, OpFloorDiv, OpMod,
	OpAdd, OpSub,
	OpLShift, OpRShift,
	OpAnd, OpXor, OpOr,
	OpEq, OpNe, OpLt, OpGt, OpLe, OpGe, OpIn, OpNotIn,
	OpLAnd, OpLOr,
}

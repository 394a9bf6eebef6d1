package ast

// Node is implemented by every AST type so that Fold (fold.go) can recurse
// through an arbitrarily nested tree without knowing in advance whether it
// holds a Config, a Sweep, a statement or an expression.
type Node interface {
	isNode()
}

// Scope is the ordered, possibly-empty slash-separated path that
// disambiguates repeated uses of the same configurable.
type Scope struct {
	Path []string
}

// Namespace is the ordered, possibly-empty dot-separated path preceding a
// binding's final name component.
type Namespace struct {
	Path []string
}

// Identifier is (Scope, Namespace, Name). Its surface form is
// s1/s2/ns1.ns2.name, with the scope prefix and trailing slash present only
// when Scope is non-empty, and the dotted namespace present only when
// Namespace is non-empty.
type Identifier struct {
	Scope     Scope
	Namespace Namespace
	Name      string
}

// WithScope returns a copy of id with scope segment appended at the end of
// the scope path, used by calls_to_evaluated_references to mint _0, _1, ...
func (id Identifier) WithScope(segment string) Identifier {
	path := make([]string, len(id.Scope.Path)+1)
	copy(path, id.Scope.Path)
	path[len(path)-1] = segment
	return Identifier{Scope: Scope{Path: path}, Namespace: id.Namespace, Name: id.Name}
}

// WithName returns a copy of id with the namespace extended by the current
// name and a new trailing name, used to lower a call argument to a binding
// target.
func (id Identifier) WithName(name string) Identifier {
	path := make([]string, len(id.Namespace.Path)+1)
	copy(path, id.Namespace.Path)
	path[len(path)-1] = id.Name
	return Identifier{Scope: id.Scope, Namespace: Namespace{Path: path}, Name: name}
}

// WithNamespacePrefix returns a copy of id with prefix prepended ahead of
// its existing namespace path, used by flatten_withs.
func (id Identifier) WithNamespacePrefix(prefix []string) Identifier {
	path := make([]string, 0, len(prefix)+len(id.Namespace.Path))
	path = append(path, prefix...)
	path = append(path, id.Namespace.Path...)
	return Identifier{Scope: id.Scope, Namespace: Namespace{Path: path}, Name: id.Name}
}

// ---- Expressions ----------------------------------------------------------

// Expr is implemented by every expression node.
type Expr interface {
	Node
	exprNode()
}

type NullLit struct{}

type BoolLit struct{ Value bool }

type IntLit struct{ Value int64 }

type FloatLit struct{ Value float64 }

// StringLit holds the unescaped contents of a string literal.
type StringLit struct{ Value string }

// MacroExpr is %name.
type MacroExpr struct{ Name string }

// RefExpr is @identifier.
type RefExpr struct{ Identifier Identifier }

// Argument is one (name, value) pair of a Call's keyword arguments, in
// source order.
type Argument struct {
	Name  string
	Value Expr
}

// CallExpr is @identifier(k1=v1, k2=v2, ...).
type CallExpr struct {
	Identifier Identifier
	Arguments  []Argument
}

// DictItem is one (key, value) pair of a Dict literal, in source order.
type DictItem struct {
	Key   Expr
	Value Expr
}

type DictExpr struct{ Items []DictItem }

type ListExpr struct{ Items []Expr }

// TupleExpr renders with a trailing comma when it holds exactly one item.
type TupleExpr struct{ Items []Expr }

type UnaryOpExpr struct {
	Op      Operator
	Operand Expr
}

type BinaryOpExpr struct {
	Left  Expr
	Op    Operator
	Right Expr
}

// ParenExpr exists only transiently during parsing, to resolve the
// expression ambiguity described in 4.1.2; every public transform strips it
// (see transform.RemoveParentheses).
type ParenExpr struct{ Inner Expr }

func (NullLit) isNode()      {}
func (BoolLit) isNode()      {}
func (IntLit) isNode()       {}
func (FloatLit) isNode()     {}
func (StringLit) isNode()    {}
func (MacroExpr) isNode()    {}
func (RefExpr) isNode()      {}
func (CallExpr) isNode()     {}
func (DictExpr) isNode()     {}
func (ListExpr) isNode()     {}
func (TupleExpr) isNode()    {}
func (UnaryOpExpr) isNode()  {}
func (BinaryOpExpr) isNode() {}
func (ParenExpr) isNode()    {}

func (*NullLit) exprNode()      {}
func (*BoolLit) exprNode()      {}
func (*IntLit) exprNode()       {}
func (*FloatLit) exprNode()     {}
func (*StringLit) exprNode()    {}
func (*MacroExpr) exprNode()    {}
func (*RefExpr) exprNode()      {}
func (*CallExpr) exprNode()     {}
func (*DictExpr) exprNode()     {}
func (*ListExpr) exprNode()     {}
func (*TupleExpr) exprNode()    {}
func (*UnaryOpExpr) exprNode()  {}
func (*BinaryOpExpr) exprNode() {}
func (*ParenExpr) exprNode()    {}

// isNode is defined on value receivers above but Node instances that flow
// through the tree are always pointers (*NullLit, *BoolLit, ...); pointer
// types automatically get isNode() from the value method set, so only
// exprNode() needs the explicit pointer-receiver declarations to keep Expr
// satisfied exclusively by pointers. This mirrors go/ast's convention of
// representing nodes with pointers to concrete structs.

// ---- Statements (Config shape) ---------------------------------------------

// Stmt is implemented by every statement node that is valid in a plain
// Config: Import, Include, Binding and With.
type Stmt interface {
	Node
	stmtNode()
}

// ImportStmt is `import a.b.c`.
type ImportStmt struct{ Namespace Namespace }

// IncludeStmt is `include "path"`.
type IncludeStmt struct{ Path string }

// BindingStmt assigns Expr to Identifier.
type BindingStmt struct {
	Identifier Identifier
	Expr       Expr
}

// WithStmt only appears in pre-flatten configs/sweeps; flatten_withs
// eliminates it by prefixing Namespace onto every enclosed binding target
// and splicing Statements into the parent block.
type WithStmt struct {
	Namespace  Namespace
	Statements []SweepStmt
}

func (ImportStmt) isNode()  {}
func (IncludeStmt) isNode() {}
func (BindingStmt) isNode() {}
func (WithStmt) isNode()    {}

func (*ImportStmt) stmtNode()  {}
func (*IncludeStmt) stmtNode() {}
func (*BindingStmt) stmtNode() {}
func (*WithStmt) stmtNode()    {}

// ---- Statements (Sweep shape) ----------------------------------------------

// SweepStmt is implemented by every statement valid inside a Sweep: the
// four Stmt kinds, plus All, Product, Union and Table.
type SweepStmt interface {
	Node
	sweepStmtNode()
}

func (*ImportStmt) sweepStmtNode()  {}
func (*IncludeStmt) sweepStmtNode() {}
func (*BindingStmt) sweepStmtNode() {}
func (*WithStmt) sweepStmtNode()    {}

// AllStmt is `ns.name: [e1, e2, ...]`; Exprs is never empty in a valid tree.
type AllStmt struct {
	Identifier Identifier
	Exprs      []Expr
}

// ProductStmt is a `product:` block; its children enumerate as a Cartesian
// product.
type ProductStmt struct{ Statements []SweepStmt }

// UnionStmt is a `union:` block; its children enumerate as a concatenation.
type UnionStmt struct{ Statements []SweepStmt }

// Header is the `table a, b, ...:` identifier list.
type Header struct{ Identifiers []Identifier }

// Row is one `table` body line; len(Row.Exprs) must equal
// len(Header.Identifiers) for the table to be valid (see ValidateSweep).
type Row struct{ Exprs []Expr }

// TableStmt must have at least one row in a valid tree.
type TableStmt struct {
	Header Header
	Rows   []Row
}

func (AllStmt) isNode()     {}
func (ProductStmt) isNode() {}
func (UnionStmt) isNode()   {}
func (TableStmt) isNode()   {}

func (*AllStmt) sweepStmtNode()     {}
func (*ProductStmt) sweepStmtNode() {}
func (*UnionStmt) sweepStmtNode()   {}
func (*TableStmt) sweepStmtNode()   {}

// ---- Roots ------------------------------------------------------------------

// Config is a flat sequence of Import/Include/Binding/With statements.
type Config struct{ Statements []Stmt }

// Sweep is a tree whose leaves are parameter assignments (All, or a Table
// row) and whose internal nodes are Product, Union or With; Sweep itself
// behaves as a top-level Product during enumeration.
type Sweep struct{ Statements []SweepStmt }

func (Config) isNode() {}
func (Sweep) isNode()  {}

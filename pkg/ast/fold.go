package ast

import "fmt"

// Fold is the structural recursion primitive (4.2) behind
// remove_parentheses, partial_eval, expressions_to_calls and validate_sweep;
// the renderer and the passes that splice, partition or prefix statements
// use their own recursions. It descends through every child of tree,
// replacing each with Fold(f, child), rebuilds tree from the folded
// children, and finally applies f to the rebuilt node. Traversal is
// post-order: f never sees a node before its children have already been
// folded, and Fold never re-descends into whatever f returns.
//
// f may return any Node, including a different concrete type than it was
// given (e.g. replacing a BinaryOpExpr with a CallExpr), which is how
// expressions_to_calls is implemented.
func Fold(f func(Node) Node, tree Node) Node {
	switch t := tree.(type) {

	// Leaves: nothing to descend into, f applies directly.
	case *NullLit, *BoolLit, *IntLit, *FloatLit, *StringLit, *MacroExpr:
		return f(tree)

	case *RefExpr:
		return f(&RefExpr{Identifier: t.Identifier})

	case *CallExpr:
		args := make([]Argument, len(t.Arguments))
		for i, a := range t.Arguments {
			args[i] = Argument{Name: a.Name, Value: Fold(f, a.Value).(Expr)}
		}
		return f(&CallExpr{Identifier: t.Identifier, Arguments: args})

	case *DictExpr:
		items := make([]DictItem, len(t.Items))
		for i, it := range t.Items {
			items[i] = DictItem{Key: Fold(f, it.Key).(Expr), Value: Fold(f, it.Value).(Expr)}
		}
		return f(&DictExpr{Items: items})

	case *ListExpr:
		items := make([]Expr, len(t.Items))
		for i, it := range t.Items {
			items[i] = Fold(f, it).(Expr)
		}
		return f(&ListExpr{Items: items})

	case *TupleExpr:
		items := make([]Expr, len(t.Items))
		for i, it := range t.Items {
			items[i] = Fold(f, it).(Expr)
		}
		return f(&TupleExpr{Items: items})

	case *UnaryOpExpr:
		return f(&UnaryOpExpr{Op: t.Op, Operand: Fold(f, t.Operand).(Expr)})

	case *BinaryOpExpr:
		return f(&BinaryOpExpr{
			Left:  Fold(f, t.Left).(Expr),
			Op:    t.Op,
			Right: Fold(f, t.Right).(Expr),
		})

	case *ParenExpr:
		return f(&ParenExpr{Inner: Fold(f, t.Inner).(Expr)})

	case *ImportStmt:
		return f(&ImportStmt{Namespace: t.Namespace})

	case *IncludeStmt:
		return f(&IncludeStmt{Path: t.Path})

	case *BindingStmt:
		return f(&BindingStmt{Identifier: t.Identifier, Expr: Fold(f, t.Expr).(Expr)})

	case *WithStmt:
		stmts := make([]SweepStmt, len(t.Statements))
		for i, s := range t.Statements {
			stmts[i] = Fold(f, s).(SweepStmt)
		}
		return f(&WithStmt{Namespace: t.Namespace, Statements: stmts})

	case *AllStmt:
		exprs := make([]Expr, len(t.Exprs))
		for i, e := range t.Exprs {
			exprs[i] = Fold(f, e).(Expr)
		}
		return f(&AllStmt{Identifier: t.Identifier, Exprs: exprs})

	case *ProductStmt:
		stmts := make([]SweepStmt, len(t.Statements))
		for i, s := range t.Statements {
			stmts[i] = Fold(f, s).(SweepStmt)
		}
		return f(&ProductStmt{Statements: stmts})

	case *UnionStmt:
		stmts := make([]SweepStmt, len(t.Statements))
		for i, s := range t.Statements {
			stmts[i] = Fold(f, s).(SweepStmt)
		}
		return f(&UnionStmt{Statements: stmts})

	case *TableStmt:
		rows := make([]Row, len(t.Rows))
		for i, r := range t.Rows {
			exprs := make([]Expr, len(r.Exprs))
			for j, e := range r.Exprs {
				exprs[j] = Fold(f, e).(Expr)
			}
			rows[i] = Row{Exprs: exprs}
		}
		return f(&TableStmt{Header: t.Header, Rows: rows})

	case *Config:
		stmts := make([]Stmt, len(t.Statements))
		for i, s := range t.Statements {
			stmts[i] = Fold(f, s).(Stmt)
		}
		return f(&Config{Statements: stmts})

	case *Sweep:
		stmts := make([]SweepStmt, len(t.Statements))
		for i, s := range t.Statements {
			stmts[i] = Fold(f, s).(SweepStmt)
		}
		return f(&Sweep{Statements: stmts})

	default:
		panic(fmt.Sprintf("ast: Fold: unhandled node type %T", tree))
	}
}

// FoldExpr is a convenience wrapper for the common case of folding a single
// expression and asserting the result back to Expr.
func FoldExpr(f func(Node) Node, e Expr) Expr {
	return Fold(f, e).(Expr)
}

// FoldConfig folds every statement of a Config and returns a rebuilt Config.
func FoldConfig(f func(Node) Node, c *Config) *Config {
	return Fold(f, c).(*Config)
}

// FoldSweep folds every statement of a Sweep and returns a rebuilt Sweep.
func FoldSweep(f func(Node) Node, s *Sweep) *Sweep {
	return Fold(f, s).(*Sweep)
}

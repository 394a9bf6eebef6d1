package transform

import "github.com/hyperion-lang/hyperion/pkg/ast"

// RemovePrelude splits c's top-level statements into the import/include
// prelude (wherever those statements appear) and everything else,
// preserving each group's relative order
// (4.3.6). The prelude is re-attached verbatim by PrependPrelude once the
// rest of the pipeline — and, for a Sweep, enumeration — has produced the
// final Config(s).
func RemovePrelude(c *ast.Config) ([]ast.Stmt, *ast.Config) {
	var prelude, body []ast.Stmt
	for _, s := range c.Statements {
		switch s.(type) {
		case *ast.ImportStmt, *ast.IncludeStmt:
			prelude = append(prelude, s)
		default:
			body = append(body, s)
		}
	}
	return prelude, &ast.Config{Statements: body}
}

// RemovePreludeSweep is RemovePrelude for a Sweep tree.
func RemovePreludeSweep(s *ast.Sweep) ([]ast.Stmt, *ast.Sweep) {
	var prelude []ast.Stmt
	var body []ast.SweepStmt
	for _, st := range s.Statements {
		switch v := st.(type) {
		case *ast.ImportStmt:
			prelude = append(prelude, v)
		case *ast.IncludeStmt:
			prelude = append(prelude, v)
		default:
			body = append(body, st)
		}
	}
	return prelude, &ast.Sweep{Statements: body}
}

// PrependPrelude re-attaches prelude, unchanged, ahead of c's statements.
func PrependPrelude(prelude []ast.Stmt, c *ast.Config) *ast.Config {
	if len(prelude) == 0 {
		return c
	}
	out := make([]ast.Stmt, 0, len(prelude)+len(c.Statements))
	out = append(out, prelude...)
	out = append(out, c.Statements...)
	return &ast.Config{Statements: out}
}

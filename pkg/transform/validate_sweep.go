package transform

import (
	"fmt"

	"github.com/hyperion-lang/hyperion/pkg/ast"
	"github.com/hyperion-lang/hyperion/pkg/herrors"
)

// ValidateSweep checks structural invariants the grammar alone does not
// enforce: every Table row must carry exactly as many values as its header
// declares, and every All must carry at least one value (4.3.5). The
// parser already rejects both at parse time, but a Sweep tree built or
// rewritten programmatically (by another transform, or by a caller
// assembling one directly) still needs to pass through this check before
// enumeration.
func ValidateSweep(s *ast.Sweep) error {
	var firstErr error
	f := func(n ast.Node) ast.Node {
		if firstErr != nil {
			return n
		}
		switch t := n.(type) {
		case *ast.TableStmt:
			for i, row := range t.Rows {
				if len(row.Exprs) != len(t.Header.Identifiers) {
					firstErr = &herrors.ValidationError{
						Message: fmt.Sprintf("table row %d has %d values, header declares %d", i, len(row.Exprs), len(t.Header.Identifiers)),
					}
					return n
				}
			}
		case *ast.AllStmt:
			if len(t.Exprs) == 0 {
				firstErr = &herrors.ValidationError{
					Message: fmt.Sprintf("all statement for %s has no values", t.Identifier.Name),
				}
			}
		}
		return n
	}
	ast.Fold(f, s)
	return firstErr
}

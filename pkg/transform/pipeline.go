package transform

import "github.com/hyperion-lang/hyperion/pkg/ast"

// PreprocessConfig runs the full config-side pipeline (4.3.8) on a
// standalone Config (one that was parsed directly, not produced by
// enumerating a Sweep): remove the prelude, flatten with-blocks, fold
// constants, lower operators to calls, and hoist the arguments of every
// call that has any into companion bindings. The prelude is re-attached to the
// result before it is returned, so the caller gets one ready-to-render
// Config back.
func PreprocessConfig(c *ast.Config) (*ast.Config, error) {
	prelude, body := RemovePrelude(c)
	body = FlattenWithsConfig(body)

	evaluated, err := PartialEvalConfig(body)
	if err != nil {
		return nil, err
	}

	calls := ExpressionsToCallsConfig(evaluated)
	lowered := CallsToEvaluatedReferences(calls)
	return PrependPrelude(prelude, lowered), nil
}

// PreprocessSweep prepares a Sweep for enumeration: remove the prelude,
// flatten with-blocks, validate table/all shape, normalise plain bindings
// to singleton Alls, and fold constants. The prelude is returned
// separately so the caller can re-attach it to every Config the enumerator
// produces via FinalizeEnumeratedConfig.
func PreprocessSweep(s *ast.Sweep) (prelude []ast.Stmt, out *ast.Sweep, err error) {
	prelude, body := RemovePreludeSweep(s)
	body = FlattenWithsSweep(body)

	if err := ValidateSweep(body); err != nil {
		return nil, nil, err
	}

	body = BindingsToSingletons(body)

	evaluated, err := PartialEvalSweep(body)
	if err != nil {
		return nil, nil, err
	}
	return prelude, evaluated, nil
}

// FinalizeEnumeratedConfig runs the call-lowering half of the config
// pipeline over one Config produced by the enumerator and re-attaches
// prelude ahead of it. PartialEval runs again first; on a Config produced
// from a PreprocessSweep result it changes nothing, since the enumerator
// only copies the already-folded All/Table values into bindings and the
// pass is partially idempotent.
func FinalizeEnumeratedConfig(prelude []ast.Stmt, c *ast.Config) (*ast.Config, error) {
	evaluated, err := PartialEvalConfig(c)
	if err != nil {
		return nil, err
	}
	calls := ExpressionsToCallsConfig(evaluated)
	lowered := CallsToEvaluatedReferences(calls)
	return PrependPrelude(prelude, lowered), nil
}

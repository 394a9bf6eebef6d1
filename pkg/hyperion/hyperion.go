// Package hyperion is the thin outer surface described in 4.7: five
// entry points gluing the parser, transforms, enumerator, renderer and
// runtime shim into the operations a caller actually wants — parse this
// text (or file) and hand me back rendered config text, a batch of
// rendered sweep points, or one evaluated value.
package hyperion

import (
	"fmt"
	"os"

	"github.com/hyperion-lang/hyperion/pkg/ast"
	"github.com/hyperion-lang/hyperion/pkg/enumerate"
	"github.com/hyperion-lang/hyperion/pkg/parser"
	"github.com/hyperion-lang/hyperion/pkg/render"
	"github.com/hyperion-lang/hyperion/pkg/shim"
	"github.com/hyperion-lang/hyperion/pkg/transform"
)

// ParseConfig parses and preprocesses a config document and renders the
// result back to source text.
func ParseConfig(text string) (string, error) {
	cfg, err := parser.ParseConfig("", text)
	if err != nil {
		return "", err
	}
	prepared, err := transform.PreprocessConfig(cfg)
	if err != nil {
		return "", err
	}
	return render.Render(prepared)
}

// ParseConfigFile reads path and calls ParseConfig on its contents.
func ParseConfigFile(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	cfg, err := parser.ParseConfig(path, string(data))
	if err != nil {
		return "", err
	}
	prepared, err := transform.PreprocessConfig(cfg)
	if err != nil {
		return "", err
	}
	return render.Render(prepared)
}

// ParseSweep parses, preprocesses and enumerates a sweep document,
// returning the rendered text of every config point it describes, in
// enumeration order.
func ParseSweep(text string) ([]string, error) {
	sw, err := parser.ParseSweep("", text)
	if err != nil {
		return nil, err
	}
	return renderSweep(sw)
}

// ParseSweepFile reads path and calls ParseSweep on its contents.
func ParseSweepFile(path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	sw, err := parser.ParseSweep(path, string(data))
	if err != nil {
		return nil, err
	}
	return renderSweep(sw)
}

func renderSweep(sw *ast.Sweep) ([]string, error) {
	prelude, prepared, err := transform.PreprocessSweep(sw)
	if err != nil {
		return nil, err
	}
	configs, err := enumerate.GenerateConfigs(prepared)
	if err != nil {
		return nil, err
	}
	out := make([]string, len(configs))
	for i, cfg := range configs {
		finalized, err := transform.FinalizeEnumeratedConfig(prelude, cfg)
		if err != nil {
			return nil, fmt.Errorf("config %d of sweep: %w", i, err)
		}
		text, err := render.Render(finalized)
		if err != nil {
			return nil, err
		}
		out[i] = text
	}
	return out, nil
}

// ParseValue parses and evaluates a single standalone expression, used for
// one-off values outside of any config or sweep document (e.g. a CLI
// --set flag). References and calls to configurables owned elsewhere
// resolve to a shim.Unresolved rather than failing.
func ParseValue(text string) (any, error) {
	expr, err := parser.ParseValue("", text)
	if err != nil {
		return nil, err
	}
	folded, err := transform.PartialEval(expr)
	if err != nil {
		return nil, err
	}
	return shim.EvalExpr(folded.(ast.Expr))
}

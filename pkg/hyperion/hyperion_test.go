package hyperion

import (
	"os"
	"strings"
	"testing"
)

// S1 — a binding whose expression has only literal operands is folded to a
// single literal by partial evaluation, so no operator-shim call remains.
func TestParseConfigLowersArithmetic(t *testing.T) {
	got, err := ParseConfig("model.lr = 2 * 3 + 1\n")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "model.lr = 7" {
		t.Errorf("got %q", got)
	}
}

func TestParseConfigReferencesBetweenBindings(t *testing.T) {
	got, err := ParseConfig("a = 3\nb = @a + 1\n")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(got, "a = 3") {
		t.Errorf("expected a = 3 to survive, got %q", got)
	}
	if !strings.Contains(got, "b =") {
		t.Errorf("expected a b binding, got %q", got)
	}
}

// S2 — one-param sweep enumerates one config per candidate value.
func TestParseSweepOneParam(t *testing.T) {
	got, err := ParseSweep("lr: [1, 2, 3]\n")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("expected 3 configs, got %d: %v", len(got), got)
	}
	want := []string{"lr = 1", "lr = 2", "lr = 3"}
	for i, w := range want {
		if got[i] != w {
			t.Errorf("config %d: got %q, want %q", i, got[i], w)
		}
	}
}

// S3 — product of two alls enumerates the full cross product.
func TestParseSweepProductOfTwoAlls(t *testing.T) {
	src := "product:\n    x: [1, 2]\n    y: [10, 20]\n"
	got, err := ParseSweep(src)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 4 {
		t.Fatalf("expected 4 configs, got %d: %v", len(got), got)
	}
}

// S4 — union of products concatenates instead of multiplying.
func TestParseSweepUnionOfProducts(t *testing.T) {
	src := "union:\n" +
		"    product:\n        a: [1]\n        b: [2]\n" +
		"    product:\n        a: [3]\n        b: [4]\n"
	got, err := ParseSweep(src)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 configs, got %d: %v", len(got), got)
	}
}

// A binding directly inside a union applies to every branch of that union
// (4.3.7's factoring rule), not just to a standalone branch of its own.
func TestParseSweepUnionFactorsSharedBinding(t *testing.T) {
	src := "union:\n    a = 1\n    product:\n        b: [2, 3]\n"
	got, err := ParseSweep(src)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []string{"a = 1\nb = 2", "a = 1\nb = 3"}
	if len(got) != len(want) {
		t.Fatalf("expected 2 configs, got %d: %v", len(got), got)
	}
	for i, w := range want {
		if got[i] != w {
			t.Errorf("config %d: got %q, want %q", i, got[i], w)
		}
	}
}

// S5 — a table sweep with uneven rows is rejected.
func TestParseSweepTableRejectsUnevenRows(t *testing.T) {
	src := "table a, b:\n    1, 2\n    3\n"
	_, err := ParseSweep(src)
	if err == nil {
		t.Fatal("expected an error for the uneven table row")
	}
}

func TestParseSweepTableEvenRows(t *testing.T) {
	src := "table a, b:\n    1, 10\n    2, 20\n"
	got, err := ParseSweep(src)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 configs, got %d: %v", len(got), got)
	}
}

// S6 — with blocks flatten their namespace prefix into every contained
// binding before enumeration runs.
func TestParseSweepWithFlattensNamespace(t *testing.T) {
	src := "with model:\n    lr = 1\n    depth = 2\n"
	got, err := ParseSweep(src)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("expected 1 config, got %d: %v", len(got), got)
	}
	if !strings.Contains(got[0], "model.lr = 1") || !strings.Contains(got[0], "model.depth = 2") {
		t.Errorf("expected namespaced bindings, got %q", got[0])
	}
}

func TestParseValueFoldsArithmetic(t *testing.T) {
	got, err := ParseValue("2 * 3 + 1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != int64(7) {
		t.Errorf("got %v", got)
	}
}

func TestParseValueUnresolvedReference(t *testing.T) {
	got, err := ParseValue("@unbound")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, ok := got.(interface{ String() string }); !ok {
		t.Fatalf("expected an Unresolved value with a String method, got %#v", got)
	}
}

func TestParseConfigFileAndParseSweepFileReadFromDisk(t *testing.T) {
	dir := t.TempDir()
	path := dir + "/cfg.hyp"
	if err := os.WriteFile(path, []byte("a = 1\n"), 0o644); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	got, err := ParseConfigFile(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "a = 1" {
		t.Errorf("got %q", got)
	}

	sweepPath := dir + "/sweep.hyp"
	if err := os.WriteFile(sweepPath, []byte("a: [1, 2]\n"), 0o644); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	points, err := ParseSweepFile(sweepPath)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(points) != 2 {
		t.Fatalf("expected 2 configs, got %d", len(points))
	}
}

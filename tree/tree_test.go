package tree_test

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/creachadair/jreader"
	"github.com/creachadair/jreader/tree"
	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
)

const testInput = `{
  "name": "widget",
  "count": 3,
  "price": -12.50e1,
  "tags": ["a", "bé", ""],
  "dims": {"w": 1, "h": 2, "d": [true, false, null]},
  "empty": {},
  "none": [],
  "dup": 1,
  "dup": 2
}`

func decodeStd(t *testing.T, input string) any {
	t.Helper()
	dec := json.NewDecoder(strings.NewReader(input))
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		t.Fatalf("Decode: %v", err)
	}
	return v
}

func TestParse(t *testing.T) {
	tests := []string{
		testInput,
		`"just a string"`,
		`0`,
		`true`,
		`null`,
		`[[[]], {"x": [{}]}]`,
		`{"": {"": ""}}`,
	}
	for _, input := range tests {
		got, err := tree.Parse(strings.NewReader(input))
		if err != nil {
			t.Errorf("Parse %q: unexpected error: %v", input, err)
			continue
		}
		if diff := cmp.Diff(decodeStd(t, input), got); diff != "" {
			t.Errorf("Parse %q: wrong value (-want, +got):\n%s", input, diff)
		}
	}
}

func TestParseEmpty(t *testing.T) {
	for _, input := range []string{"", "  \n\t "} {
		v, err := tree.Parse(strings.NewReader(input))
		if !errors.Is(err, tree.ErrEmpty) {
			t.Errorf("Parse %q: got (%v, %v), want %v", input, v, err, tree.ErrEmpty)
		}
	}
}

func TestParseError(t *testing.T) {
	tests := []struct {
		input string
		opts  []tree.Option
		kind  jreader.ErrorKind
	}{
		{`[1, 2,]`, nil, jreader.BadChar},
		{`{"a": 1,}`, []tree.Option{tree.Strict(true)}, jreader.BadChar},
		{`[1,]`, []tree.Option{tree.AllowTrailingCommas(true), tree.Strict(true)}, jreader.BadChar},
		{`{"a": [1}`, nil, jreader.Mismatch},
		{`[[[0]]]`, []tree.Option{tree.MaxDepth(2)}, jreader.TooDeep},
		{`{"a": tru}`, nil, jreader.BadLiteral},
		{`1 2`, nil, jreader.ExtraInput},
	}
	for _, test := range tests {
		v, err := tree.Parse(strings.NewReader(test.input), test.opts...)
		var serr *jreader.SyntaxError
		if !errors.As(err, &serr) {
			t.Errorf("Parse %q: got (%v, %v), want syntax error", test.input, v, err)
		} else if serr.Kind != test.kind {
			t.Errorf("Parse %q: got kind %v, want %v", test.input, serr.Kind, test.kind)
		}
		if v != nil {
			t.Errorf("Parse %q: got value %v, want nil", test.input, v)
		}
	}
}

func TestOptions(t *testing.T) {
	got, err := tree.Parse(strings.NewReader(`{"a": [1, 2,], "b": "\ud83d\ude00",}`),
		tree.AllowTrailingCommas(true),
		tree.CombineSurrogates(true),
	)
	if err != nil {
		t.Fatalf("Parse: unexpected error: %v", err)
	}
	want := map[string]any{
		"a": []any{json.Number("1"), json.Number("2")},
		"b": "\U0001f600",
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Wrong value (-want, +got):\n%s", diff)
	}
}

func TestBuilderReuse(t *testing.T) {
	var b tree.Builder
	if _, ok := b.Result(); ok {
		t.Error("Result: zero Builder reports a value")
	}
	if err := jreader.Parse(strings.NewReader(`[1, {"x": `), &b); err == nil {
		t.Fatal("Parse: got nil, want error")
	}
	if v, ok := b.Result(); ok {
		t.Errorf("Result after error: got %v, want none", v)
	}
	if err := jreader.Parse(strings.NewReader(`{"x": "y"}`), &b); err != nil {
		t.Fatalf("Parse: unexpected error: %v", err)
	}
	v, ok := b.Result()
	if !ok {
		t.Fatal("Result: no value after successful parse")
	}
	if diff := cmp.Diff(map[string]any{"x": "y"}, v); diff != "" {
		t.Errorf("Wrong value (-want, +got):\n%s", diff)
	}

	// After a reset, an empty document leaves no value.
	b.Reset()
	if err := jreader.Parse(strings.NewReader("  "), &b); err != nil {
		t.Fatalf("Parse: unexpected error: %v", err)
	}
	if v, ok := b.Result(); ok {
		t.Errorf("Result after reset: got %v, want none", v)
	}

	// A new root value replaces the old one.
	if err := jreader.Parse(strings.NewReader(`["z"]`), &b); err != nil {
		t.Fatalf("Parse: unexpected error: %v", err)
	}
	if err := jreader.Parse(strings.NewReader(`{}`), &b); err != nil {
		t.Fatalf("Parse: unexpected error: %v", err)
	}
	if v, _ := b.Result(); !cmp.Equal(v, map[string]any{}) {
		t.Errorf("Result: got %v, want empty object", v)
	}
}

func TestSelect(t *testing.T) {
	root, err := tree.Parse(strings.NewReader(testInput))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	tests := []struct {
		expr string
		want []any
	}{
		{`$.name`, []any{"widget"}},
		{`$.tags[1]`, []any{"bé"}},
		{`$.tags[-1]`, []any{""}},
		{`$.dims.d[0]`, []any{true}},
		{`$.dims.d[2]`, []any{nil}},
		{`$.dup`, []any{json.Number("2")}},
		{`$.nonesuch`, nil},
		{`$.tags[*]`, []any{"a", "bé", ""}},
	}
	for _, test := range tests {
		got, err := tree.Select(root, test.expr)
		if err != nil {
			t.Errorf("Select %q: unexpected error: %v", test.expr, err)
			continue
		}
		if diff := cmp.Diff(test.want, got, cmpopts.EquateEmpty()); diff != "" {
			t.Errorf("Select %q: wrong result (-want, +got):\n%s", test.expr, diff)
		}
	}

	if got, err := tree.Select(root, `$[`); err == nil {
		t.Errorf("Select bad path: got %v, want error", got)
	}
}

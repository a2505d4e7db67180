// Package tree builds generic Go values from JSON text using a jreader
// handler, and evaluates JSONPath queries over the results.
//
// Objects are represented as map[string]any, arrays as []any, strings as
// string, numbers as json.Number, true and false as bool, and null as nil.
package tree

import (
	"encoding/json"
	"io"

	"github.com/creachadair/jreader"
	"github.com/pkg/errors"
	"github.com/theory/jsonpath"
)

// ErrEmpty is reported by Parse when the input contains no value.
var ErrEmpty = errors.New("empty input")

// An Option configures the parser used by Parse.
type Option func(*jreader.Parser)

// AllowTrailingCommas permits a comma after the last element of an array.
func AllowTrailingCommas(ok bool) Option {
	return func(p *jreader.Parser) { p.AllowTrailingCommas(ok) }
}

// Strict rejects trailing commas in objects and arrays.
func Strict(ok bool) Option {
	return func(p *jreader.Parser) { p.Strict(ok) }
}

// MaxDepth limits the nesting depth of objects and arrays to n.
func MaxDepth(n int) Option {
	return func(p *jreader.Parser) { p.SetMaxDepth(n) }
}

// CombineSurrogates decodes escaped surrogate pairs as single code points.
func CombineSurrogates(ok bool) Option {
	return func(p *jreader.Parser) { p.CombineSurrogates(ok) }
}

// Parse parses a single JSON value from r and returns it. If r contains only
// whitespace, Parse returns nil, ErrEmpty.
func Parse(r io.Reader, opts ...Option) (any, error) {
	p := jreader.NewParser(r)
	for _, opt := range opts {
		opt(p)
	}
	var b Builder
	if err := p.Parse(&b); err != nil {
		return nil, err
	}
	v, ok := b.Result()
	if !ok {
		return nil, ErrEmpty
	}
	return v, nil
}

// Select evaluates the JSONPath expression expr against v and returns the
// matching values in document order.
func Select(v any, expr string) ([]any, error) {
	path, err := jsonpath.Parse(expr)
	if err != nil {
		return nil, errors.Wrapf(err, "invalid path %q", expr)
	}
	return path.Select(v), nil
}

// A Builder is a jreader.Handler that constructs a generic value from the
// events it receives. The zero value is ready for use. To build another
// value with the same Builder, call Reset first.
type Builder struct {
	stk  []frame
	root any
	done bool
}

// A frame is an open object or array, along with the name under which it
// was opened inside its parent.
type frame struct {
	name string
	obj  map[string]any
	arr  []any
}

func (f *frame) value() any {
	if f.obj != nil {
		return f.obj
	}
	return f.arr
}

// Result returns the completed value and true, or nil and false if no value
// has been completed.
func (b *Builder) Result() (any, bool) { return b.root, b.done }

// Reset discards the value under construction or completed, if any.
func (b *Builder) Reset() {
	b.stk = b.stk[:0]
	b.root, b.done = nil, false
}

// Fail implements the jreader.ErrorHandler interface. It discards any
// partial value.
func (b *Builder) Fail(error) { b.Reset() }

// begin clears a previous result when a new root value starts.
func (b *Builder) begin() {
	if len(b.stk) == 0 {
		b.root, b.done = nil, false
	}
}

// add stores v in the innermost open container, under key if that is an
// object, or as the root value if no container is open.
func (b *Builder) add(key string, v any) error {
	if len(b.stk) == 0 {
		b.root, b.done = v, true
		return nil
	}
	top := &b.stk[len(b.stk)-1]
	if top.obj != nil {
		top.obj[key] = v
	} else {
		top.arr = append(top.arr, v)
	}
	return nil
}

func (b *Builder) BeginObject(name jreader.Name) error {
	b.begin()
	b.stk = append(b.stk, frame{name: name.String(), obj: make(map[string]any)})
	return nil
}

func (b *Builder) BeginArray(name jreader.Name) error {
	b.begin()
	b.stk = append(b.stk, frame{name: name.String(), arr: []any{}})
	return nil
}

func (b *Builder) EndObject() error { return b.end() }

func (b *Builder) EndArray() error { return b.end() }

func (b *Builder) end() error {
	if len(b.stk) == 0 {
		return errors.New("unbalanced end of container")
	}
	top := b.stk[len(b.stk)-1]
	b.stk = b.stk[:len(b.stk)-1]
	return b.add(top.name, top.value())
}

func (b *Builder) Value(name jreader.Name, kind jreader.Kind, text []byte) error {
	switch kind {
	case jreader.String:
		return b.add(name.String(), string(text))
	case jreader.Number:
		return b.add(name.String(), json.Number(text))
	case jreader.True, jreader.False:
		return b.add(name.String(), kind == jreader.True)
	case jreader.Null:
		return b.add(name.String(), nil)
	default:
		return errors.Errorf("unknown value kind %v", kind)
	}
}

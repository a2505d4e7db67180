// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package jreader

import (
	"fmt"
	"strings"

	"github.com/creachadair/jreader/internal/escape"
	"go4.org/mem"
)

// Quote encodes src as a JSON string value. The contents are escaped and
// double quotation marks are added.
func Quote(src string) string { return string(escape.Quote(mem.S(src))) }

// Unquote decodes a JSON string value, given with its enclosing double
// quotation marks. Escape sequences are replaced with their unescaped
// equivalents, and escaped surrogate pairs are combined.
//
// Unquote reports an error of concrete type [*SyntaxError] if src is not a
// well-formed JSON string.
func Unquote(src string) ([]byte, error) {
	if src == "" {
		return nil, &SyntaxError{
			Kind:     EarlyEOF,
			Location: LineCol{Line: 1},
			Message:  "unexpected end of data, string expected",
		}
	} else if src[0] != '"' {
		return nil, &SyntaxError{
			Kind:     BadChar,
			Location: LineCol{Line: 1},
			Message:  fmt.Sprintf("unexpected %s, string expected", charLabel(int(src[0]))),
		}
	}
	var out []byte
	p := NewParser(strings.NewReader(src))
	p.CombineSurrogates(true)
	if err := p.Parse(unquoteHandler{&out}); err != nil {
		return nil, err
	}
	return out, nil
}

// unquoteHandler captures the text of a single root string value.
type unquoteHandler struct{ out *[]byte }

func (unquoteHandler) BeginObject(Name) error { panic("unreachable") }
func (unquoteHandler) EndObject() error       { panic("unreachable") }
func (unquoteHandler) BeginArray(Name) error  { panic("unreachable") }
func (unquoteHandler) EndArray() error        { panic("unreachable") }

func (u unquoteHandler) Value(_ Name, _ Kind, text []byte) error {
	*u.out = append([]byte{}, text...)
	return nil
}

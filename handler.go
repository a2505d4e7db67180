// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package jreader

import "go4.org/mem"

// Kind is the type of a scalar JSON value reported to Handler.Value.
type Kind byte

// Constants defining the valid Kind values.
const (
	String Kind = iota + 1 // quoted string; text is the decoded contents
	Number                 // number; text is the literal as written
	True                   // constant: true
	False                  // constant: false
	Null                   // constant: null
)

var kindStr = [...]string{
	0:      "invalid kind",
	String: "string",
	Number: "number",
	True:   "true",
	False:  "false",
	Null:   "null",
}

func (k Kind) String() string {
	if int(k) >= len(kindStr) {
		return kindStr[0]
	}
	return kindStr[k]
}

// A Name is the key of the object member a Handler event belongs to.
//
// Events for values that are not object members (the root value and array
// elements) carry a Name that is not present. The empty key "" is present.
//
// The text of a Name is a view of storage owned by the parser, and is only
// valid for the duration of the Handler call that receives it.
type Name struct {
	text []byte
	ok   bool
}

// Present reports whether n names an object member.
func (n Name) Present() bool { return n.ok }

// Text returns a view of the decoded key text. It returns nil if n is not
// present. The caller must copy the contents of the slice to retain them
// beyond the current Handler call.
func (n Name) Text() []byte {
	if !n.ok {
		return nil
	}
	return n.text
}

// String returns a copy of the decoded key text, or "" if n is not present.
func (n Name) String() string { return string(n.Text()) }

// Is reports whether n is present and equal to key.
func (n Name) Is(key string) bool { return n.ok && mem.B(n.text).Equal(mem.S(key)) }

// A Handler handles events from parsing an input stream. If a method reports
// an error, parsing stops and that error is returned to the caller.
// The parser ensures objects and arrays are correctly balanced.
//
// The name and text arguments passed to Handler methods are only valid for
// the duration of that method call. The parser reuses their storage for
// later tokens, so a method that needs the data after it returns must copy
// it.
type Handler interface {
	// Begin a new object. The name is present if the object is the value of
	// an object member.
	BeginObject(name Name) error

	// End the most-recently-opened object.
	EndObject() error

	// Begin a new array. The name is present if the array is the value of an
	// object member.
	BeginArray(name Name) error

	// End the most-recently-opened array.
	EndArray() error

	// Report a scalar value of the given kind. The name is present if the
	// value belongs to an object member. For String the text holds the
	// decoded contents without quotes; for Number the text is the number
	// exactly as written. For True, False, and Null the text is nil.
	Value(name Name, kind Kind, text []byte) error
}

// ErrorHandler is an optional interface that a Handler may implement to
// receive the error that terminated a parse. If a handler implements this
// interface, Fail is called exactly once when parsing stops because of an
// error, before Parse returns that same error. Fail is not called when
// parsing succeeds.
type ErrorHandler interface {
	Fail(err error)
}

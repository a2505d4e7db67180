// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package jreader

import "fmt"

// ErrorKind classifies the conditions that terminate a parse.
type ErrorKind byte

// Constants defining the valid ErrorKind values.
const (
	BadChar    ErrorKind = iota + 1 // unexpected character
	EarlyEOF                        // unexpected end of data
	BadLiteral                      // misspelled true, false, or null
	BadNumber                       // malformed number
	BadString                       // unescaped control character in a string
	BadEscape                       // invalid escape sequence in a string
	Mismatch                        // close bracket without a matching open
	ExtraInput                      // data after the end of the root value
	ReadFailed                      // error reading the input
	TooDeep                         // nesting exceeds the configured limit
)

var errorKindStr = [...]string{
	0:          "unknown error",
	BadChar:    "unexpected character",
	EarlyEOF:   "unexpected end of data",
	BadLiteral: "invalid literal",
	BadNumber:  "invalid number",
	BadString:  "invalid string",
	BadEscape:  "invalid escape",
	Mismatch:   "mismatched bracket",
	ExtraInput: "extra input",
	ReadFailed: "read failed",
	TooDeep:    "nesting too deep",
}

func (k ErrorKind) String() string {
	if int(k) >= len(errorKindStr) {
		return errorKindStr[0]
	}
	return errorKindStr[k]
}

// SyntaxError is the concrete type of errors reported by the parser for
// malformed input and for failures reading the input.
type SyntaxError struct {
	Kind     ErrorKind
	Offset   int     // byte offset of the offending input, 0-based
	Location LineCol // line and column of the offending input
	Message  string

	err error
}

// Error satisfies the error interface.
func (s *SyntaxError) Error() string {
	return fmt.Sprintf("at %s: %s", s.Location, s.Message)
}

// Unwrap supports error wrapping.
func (s *SyntaxError) Unwrap() error { return s.err }

// handlerError marks an error reported by a Handler method, so that it can
// be distinguished from a syntax error during recovery.
type handlerError struct{ error }

func (h handlerError) Unwrap() error { return h.error }

// charLabel renders the input character c for an error message.
func charLabel(c int) string {
	if c == eof {
		return "end of data"
	} else if c >= 0x80 {
		return fmt.Sprintf("byte 0x%02x", c)
	}
	return fmt.Sprintf("%q", rune(c))
}

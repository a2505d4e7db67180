// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package jreader

import (
	"fmt"
	"io"

	"github.com/creachadair/mds/stack"
)

// container records the type of an open object or array.
type container byte

const (
	object container = '{'
	array  container = '['
)

// endDoc is returned by afterValue when the root value is complete.
const endDoc = -2

// Parser is a stream parser that consumes a single JSON document and
// delivers events to a Handler corresponding with the structure of the
// input.
//
// A Parser is not safe for concurrent use, and must not be used from within
// the callbacks of its own Handler.
type Parser struct {
	in  *reader
	stk stack.Stack[container]
	h   Handler

	name    []byte // key of the current object member
	hasName bool   // whether name is valid for the next event
	buf     []byte // text of the current string or number

	tcomma   bool // allow trailing commas in arrays
	strict   bool // reject all trailing commas
	maxDepth int  // if positive, the maximum nesting depth
	pairs    bool // combine escaped surrogate pairs

	busy bool  // a call to Parse is in progress
	done bool  // a call to Parse has completed
	err  error // the result of the completed call to Parse
}

// NewParser constructs a new Parser that consumes input from r.
// The parser does not close r.
func NewParser(r io.Reader) *Parser {
	return &Parser{
		in:   newReader(r),
		name: make([]byte, 0, 64),
		buf:  make([]byte, 0, 64),
	}
}

// Parse parses the JSON document from r and delivers events to h.
// It is shorthand for NewParser(r).Parse(h).
func Parse(r io.Reader, h Handler) error { return NewParser(r).Parse(h) }

// AllowTrailingCommas configures the parser to allow (true) or reject (false)
// a trailing comma after the last element of an array. A trailing comma after
// the last member of an object is always allowed unless the parser is strict.
func (p *Parser) AllowTrailingCommas(ok bool) { p.tcomma = ok }

// Strict configures the parser to reject (true) trailing commas in both
// objects and arrays, as RFC 8259 requires. Strict takes precedence over
// AllowTrailingCommas.
func (p *Parser) Strict(ok bool) { p.strict = ok }

// SetMaxDepth configures the parser to reject input whose objects and arrays
// nest more than n deep. If n ≤ 0, nesting is not limited.
func (p *Parser) SetMaxDepth(n int) { p.maxDepth = n }

// CombineSurrogates configures the parser to decode an escaped UTF-16
// surrogate pair, such as "\ud83d\ude00", as a single code point (true), or
// to decode each escape as its own code unit (false).
func (p *Parser) CombineSurrogates(ok bool) { p.pairs = ok }

func (p *Parser) recoverParseError(errp *error) {
	if perr := recover(); perr != nil {
		switch err := perr.(type) {
		case *SyntaxError:
			*errp = err
		case handlerError:
			*errp = err.error
		default:
			panic(perr)
		}
	}
}

// Parse parses the input and delivers events to h until either an error
// occurs or the document is complete. An input consisting only of
// whitespace is an empty document, for which no events are delivered.
//
// Parse returns nil if the input held exactly one well-formed value. In case
// of a syntax error or a failure reading the input, the returned error has
// type [*SyntaxError]. If a Handler method reports an error, parsing stops
// and that error is returned. Either way, if h implements [ErrorHandler] its
// Fail method receives the error before Parse returns.
//
// A Parser parses only one document: once Parse has returned, later calls
// report the same result without delivering any events.
func (p *Parser) Parse(h Handler) (err error) {
	if p.busy {
		panic("jreader: reentrant call to Parse")
	} else if p.done {
		return p.err
	}
	p.busy = true
	defer func() {
		p.busy, p.done, p.err = false, true, err
		p.h = nil
		if err != nil {
			if eh, ok := h.(ErrorHandler); ok {
				eh.Fail(err)
			}
		}
	}()
	defer p.recoverParseError(&err)

	p.h = h
	p.parseDocument()
	return nil
}

// parseDocument consumes a single root value, followed only by whitespace.
func (p *Parser) parseDocument() {
	c := p.skipSpace(p.read())
	if c == eof {
		return // empty input
	}
	for c != endDoc {
		c = p.parseValue(c)
	}
}

// parseValue consumes the value starting with c, and any closing brackets
// and separators that follow it. It returns the first character of the next
// value to parse, or endDoc when the document is complete.
func (p *Parser) parseValue(c int) int {
	switch {
	case c == '{':
		p.open(object)
		p.checkError(p.h.BeginObject(p.takeName()))
		next := p.skipSpace(p.read())
		if next == '}' {
			p.close(object)
			return p.afterValue(p.read())
		}
		p.readField(next)
		return p.skipSpace(p.read())

	case c == '[':
		p.open(array)
		p.checkError(p.h.BeginArray(p.takeName()))
		next := p.skipSpace(p.read())
		if next == ']' {
			p.close(array)
			return p.afterValue(p.read())
		}
		return next

	case c == '"':
		p.buf = p.readString(p.buf)
		p.checkError(p.h.Value(p.takeName(), String, p.buf))
		return p.afterValue(p.read())

	case c == 't':
		p.literal("true")
		p.checkError(p.h.Value(p.takeName(), True, nil))
		return p.afterValue(p.read())

	case c == 'f':
		p.literal("false")
		p.checkError(p.h.Value(p.takeName(), False, nil))
		return p.afterValue(p.read())

	case c == 'n':
		p.literal("null")
		p.checkError(p.h.Value(p.takeName(), Null, nil))
		return p.afterValue(p.read())

	case c == '-' || isDigit(c):
		next := p.number(c)
		p.checkError(p.h.Value(p.takeName(), Number, p.buf))
		return p.afterValue(next)

	case c == eof:
		p.fail(EarlyEOF, "unexpected end of data, value expected")
	}
	p.fail(BadChar, "unexpected %s, value expected", charLabel(c))
	panic("unreachable")
}

// afterValue consumes the input following a complete value, beginning with
// c. It closes any objects and arrays that end there, and consumes the comma
// (and for objects, the member key) that introduces the next value. It
// returns the first character of the next value, or endDoc if the document
// is complete.
func (p *Parser) afterValue(c int) int {
	for {
		c = p.skipSpace(c)
		top, ok := p.stk.Peek(0)
		if !ok {
			// At the end of the root value, only whitespace may follow.
			switch c {
			case eof:
				return endDoc
			case '}', ']':
				p.fail(Mismatch, "unexpected %s after end of document", charLabel(c))
			}
			p.fail(ExtraInput, "unexpected %s after end of document", charLabel(c))
		}

		switch c {
		case ',':
			next := p.skipSpace(p.read())
			if top == object {
				if next == '}' && !p.strict {
					c = next
					continue // trailing comma, handled by '}' below
				}
				p.readField(next)
				return p.skipSpace(p.read())
			}
			if next == ']' && p.tcomma && !p.strict {
				c = next
				continue // trailing comma, handled by ']' below
			}
			return next

		case '}':
			if top != object {
				p.fail(Mismatch, `expected "," or "]", got "}"`)
			}
			p.close(object)

		case ']':
			if top != array {
				p.fail(Mismatch, `expected "," or "}", got "]"`)
			}
			p.close(array)

		case eof:
			p.fail(EarlyEOF, "unexpected end of data, %d unclosed %s", p.stk.Len(), plural(p.stk.Len(), "container"))

		default:
			if top == object {
				p.fail(BadChar, `expected "," or "}", got %s`, charLabel(c))
			}
			p.fail(BadChar, `expected "," or "]", got %s`, charLabel(c))
		}
		c = p.read()
	}
}

// readField consumes an object member key beginning with c, and the colon
// that follows it. The key is reported with the next event.
func (p *Parser) readField(c int) {
	if c == eof {
		p.fail(EarlyEOF, "unexpected end of data, object key expected")
	} else if c != '"' {
		p.fail(BadChar, `expected string, got %s`, charLabel(c))
	}
	p.name = p.readString(p.name)
	p.hasName = true

	if c := p.skipSpace(p.read()); c == eof {
		p.fail(EarlyEOF, `unexpected end of data, ":" expected`)
	} else if c != ':' {
		p.fail(BadChar, `expected ":", got %s`, charLabel(c))
	}
}

// literal verifies that the input continues with the remainder of want,
// whose first character has already been consumed.
func (p *Parser) literal(want string) {
	for i := 1; i < len(want); i++ {
		c := p.read()
		if c == eof {
			p.fail(EarlyEOF, "unexpected end of data in literal, expected %q", want)
		} else if c != int(want[i]) {
			p.fail(BadLiteral, "unknown literal, expected %q", want)
		}
	}
}

// takeName returns the name for the next event, and clears it.
func (p *Parser) takeName() Name {
	n := Name{text: p.name, ok: p.hasName}
	p.hasName = false
	return n
}

func (p *Parser) open(c container) {
	if p.maxDepth > 0 && p.stk.Len() >= p.maxDepth {
		p.fail(TooDeep, "nesting depth exceeds %d", p.maxDepth)
	}
	p.stk.Push(c)
}

// close pops the innermost container, which must be c, and reports its end.
func (p *Parser) close(c container) {
	p.stk.Pop()
	if c == object {
		p.checkError(p.h.EndObject())
	} else {
		p.checkError(p.h.EndArray())
	}
}

// read returns the next character of input, or eof.
func (p *Parser) read() int {
	c, err := p.in.next()
	if err != nil {
		panic(&SyntaxError{
			Kind:     ReadFailed,
			Offset:   p.in.offset(),
			Location: p.in.lineCol(),
			Message:  fmt.Sprintf("read failed: %v", err),
			err:      err,
		})
	}
	return c
}

// skipSpace discards whitespace starting at c, and returns the first
// non-whitespace character (or eof).
func (p *Parser) skipSpace(c int) int {
	for isSpace(c) {
		c = p.read()
	}
	return c
}

func (p *Parser) fail(kind ErrorKind, msg string, args ...any) {
	panic(&SyntaxError{
		Kind:     kind,
		Offset:   p.in.offset(),
		Location: p.in.lineCol(),
		Message:  fmt.Sprintf(msg, args...),
	})
}

func (p *Parser) checkError(err error) {
	if err != nil {
		panic(handlerError{err})
	}
}

func isSpace(c int) bool {
	return c == ' ' || c == '\r' || c == '\n' || c == '\t'
}

func plural(n int, word string) string {
	if n == 1 {
		return word
	}
	return word + "s"
}

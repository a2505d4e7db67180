// Copyright (C) 2023 Michael J. Fromberger. All Rights Reserved.

package jreader

import (
	"errors"
	"iter"

	"github.com/creachadair/jreader/internal/escape"
	"go4.org/mem"
)

// EventType identifies the Handler method an Event corresponds to.
type EventType byte

// Constants defining the valid EventType values.
const (
	BeginObjectEvent EventType = iota + 1
	EndObjectEvent
	BeginArrayEvent
	EndArrayEvent
	ValueEvent
)

var eventTypeStr = [...]string{
	0:                "Invalid",
	BeginObjectEvent: "BeginObject",
	EndObjectEvent:   "EndObject",
	BeginArrayEvent:  "BeginArray",
	EndArrayEvent:    "EndArray",
	ValueEvent:       "Value",
}

func (t EventType) String() string {
	if int(t) >= len(eventTypeStr) {
		return eventTypeStr[0]
	}
	return eventTypeStr[t]
}

// An Event is a single parser event, as delivered by [Parser.Events].
//
// As with the arguments to Handler methods, the Name and Text of an Event
// are views of parser storage, valid only until the iterator advances.
type Event struct {
	Type EventType
	Name Name   // for BeginObject, BeginArray, and Value
	Kind Kind   // for Value
	Text []byte // for Value with Kind String or Number
}

// String renders e as a single line of text. Names and string values are
// quoted as JSON strings; numbers are shown as written:
//
//	BeginObject
//	BeginArray "items"
//	Value "id" number 95
//	Value string "hello"
//	Value true
func (e Event) String() string {
	buf := []byte(e.Type.String())
	if e.Type == BeginObjectEvent || e.Type == BeginArrayEvent || e.Type == ValueEvent {
		if e.Name.Present() {
			buf = append(buf, ' ')
			buf = escape.AppendQuote(buf, mem.B(e.Name.Text()))
		}
	}
	if e.Type == ValueEvent {
		buf = append(buf, ' ')
		buf = append(buf, e.Kind.String()...)
		switch e.Kind {
		case String:
			buf = append(buf, ' ')
			buf = escape.AppendQuote(buf, mem.B(e.Text))
		case Number:
			buf = append(buf, ' ')
			buf = append(buf, e.Text...)
		}
	}
	return string(buf)
}

// errStopped is reported by an eventHandler when its consumer stops early.
var errStopped = errors.New("iteration stopped")

// eventHandler implements the Handler interface by yielding events.
type eventHandler struct {
	yield func(Event, error) bool
}

func (h eventHandler) emit(e Event) error {
	if !h.yield(e, nil) {
		return errStopped
	}
	return nil
}

func (h eventHandler) BeginObject(name Name) error {
	return h.emit(Event{Type: BeginObjectEvent, Name: name})
}

func (h eventHandler) EndObject() error { return h.emit(Event{Type: EndObjectEvent}) }

func (h eventHandler) BeginArray(name Name) error {
	return h.emit(Event{Type: BeginArrayEvent, Name: name})
}

func (h eventHandler) EndArray() error { return h.emit(Event{Type: EndArrayEvent}) }

func (h eventHandler) Value(name Name, kind Kind, text []byte) error {
	return h.emit(Event{Type: ValueEvent, Name: name, Kind: kind, Text: text})
}

// Events returns an iterator over the events of the document, in the order
// a Handler passed to Parse would receive them. If parsing fails, the
// iterator yields a final zero Event with the error and stops. Stopping the
// iteration early stops the parse.
//
// Events consumes the parser: the sequence can be iterated only once, and
// Parse and Events may not both be used on the same parser.
func (p *Parser) Events() iter.Seq2[Event, error] {
	return func(yield func(Event, error) bool) {
		err := p.Parse(eventHandler{yield: yield})
		if err != nil && err != errStopped {
			yield(Event{}, err)
		}
	}
}

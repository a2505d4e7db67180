// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

// Package jreader implements an event-driven streaming parser for JSON.
//
// # Parsing
//
// The Parser type reads a single JSON document from an io.Reader one byte at
// a time, and reports the structure of the document by calling methods on a
// Handler value. No syntax tree is constructed: memory use is proportional
// to the nesting depth of the document and the length of its longest token.
//
// Construct a Parser from an io.Reader, and call its Parse method. Parse
// returns nil if the input was fully processed without error:
//
//	p := jreader.NewParser(input)
//	if err := p.Parse(handler); err != nil {
//	   log.Fatalf("Parse failed: %v", err)
//	}
//
// The input must hold exactly one JSON value, optionally surrounded by
// whitespace. An input that is empty or all whitespace is accepted and
// produces no events. The parser never closes its input.
//
// # Handlers
//
// The Handler interface accepts parser events. The methods of a handler
// correspond to the syntax of JSON values:
//
//	JSON type  | Methods                   | Description
//	---------- | ------------------------- | ---------------------------------
//	object     | BeginObject, EndObject    | { ... }
//	array      | BeginArray, EndArray      | [ ... ]
//	value      | Value                     | true, false, null, number, string
//
// BeginObject, BeginArray, and Value receive a Name, which is present when
// the event belongs to an object member and carries the decoded member key.
// For the root value and for array elements the Name is not present. String
// values are delivered decoded; numbers are delivered exactly as written, so
// no precision is lost.
//
// The name and text passed to a handler method are only valid for the
// duration of that method call; the handler must copy any data it needs to
// retain beyond the lifetime of the call.
//
// The parser ensures that corresponding Begin and End methods are correctly
// paired, or that an error is reported.
//
// # Errors
//
// Parsing stops at the first error. Syntax errors and failures reading the
// input are reported as a *jreader.SyntaxError, whose Kind classifies the
// problem. An error returned by a Handler method is reported unchanged. If
// the handler also implements ErrorHandler, its Fail method receives the
// error before Parse returns it.
//
// # Iteration
//
// As an alternative to a Handler, the Events method returns an iterator over
// the same events:
//
//	for evt, err := range jreader.NewParser(input).Events() {
//	   if err != nil {
//	      log.Fatalf("Parse failed: %v", err)
//	   }
//	   log.Print(evt)
//	}
package jreader

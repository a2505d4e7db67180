// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package jreader_test

import (
	"bufio"
	"errors"
	"io"
	"strings"
	"testing"
	"testing/iotest"

	"github.com/creachadair/jreader"
)

// closeTracker is an io.ReadCloser that records whether it was closed.
type closeTracker struct {
	io.Reader
	closed bool
}

func (c *closeTracker) Close() error { c.closed = true; return nil }

func TestInputNotClosed(t *testing.T) {
	in := &closeTracker{Reader: strings.NewReader(`{"ok": true}`)}
	if err := jreader.Parse(in, new(testHandler)); err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if in.closed {
		t.Error("Parse closed its input")
	}
}

func TestInputReaders(t *testing.T) {
	// Long enough to span several input blocks.
	long := strings.Repeat("abcdefghij", 1000)
	input := `{"k": ["` + long + `", 12345678901234567890.5e-7]}`
	const want = "BeginObject\nBeginArray \"k\"\nValue string \"%s\"\nValue number 12345678901234567890.5e-7\nEndArray\nEndObject"

	tests := []struct {
		name string
		r    io.Reader
	}{
		{"Plain", strings.NewReader(input)},
		{"OneByte", iotest.OneByteReader(strings.NewReader(input))},
		{"Half", iotest.HalfReader(strings.NewReader(input))},
		{"DataErr", iotest.DataErrReader(strings.NewReader(input))},
		{"Bufio", bufio.NewReaderSize(strings.NewReader(input), 16)},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			th := new(testHandler)
			if err := jreader.Parse(test.r, th); err != nil {
				t.Fatalf("Parse failed: %v", err)
			}
			if diff := diffStrings(strings.Replace(want, "%s", long, 1), th.output()); diff != "" {
				t.Errorf("Output: (-want, +got)\n%s", diff)
			}
		})
	}
}

func TestInputError(t *testing.T) {
	errBad := errors.New("disk on fire")
	r := io.MultiReader(strings.NewReader(`[1, 2`), iotest.ErrReader(errBad))
	th := new(testHandler)
	err := jreader.Parse(r, th)

	var serr *jreader.SyntaxError
	if !errors.As(err, &serr) {
		t.Fatalf("Parse: got %v, want *SyntaxError", err)
	}
	if serr.Kind != jreader.ReadFailed {
		t.Errorf("Kind: got %v, want %v", serr.Kind, jreader.ReadFailed)
	}
	if !errors.Is(err, errBad) {
		t.Errorf("Error %v does not wrap %v", err, errBad)
	}
	if diff := diffStrings("BeginArray\nValue number 1", th.output()); diff != "" {
		t.Errorf("Output: (-want, +got)\n%s", diff)
	}
	if th.fails != 1 {
		t.Errorf("Fail called %d times, want 1", th.fails)
	}
}

// stallReader delivers its data, and then reports empty reads with no error.
type stallReader struct {
	data  string
	reads int
}

func (s *stallReader) Read(buf []byte) (int, error) {
	s.reads++
	n := copy(buf, s.data)
	s.data = s.data[n:]
	return n, nil
}

func TestInputStall(t *testing.T) {
	// A source that stops making progress is a read failure, not the end of
	// the input.
	r := &stallReader{data: `[1`}
	th := new(testHandler)
	err := jreader.Parse(r, th)

	var serr *jreader.SyntaxError
	if !errors.As(err, &serr) {
		t.Fatalf("Parse: got %v, want *SyntaxError", err)
	}
	if serr.Kind != jreader.ReadFailed {
		t.Errorf("Kind: got %v, want %v", serr.Kind, jreader.ReadFailed)
	}
	if !errors.Is(err, io.ErrNoProgress) {
		t.Errorf("Error %v does not wrap %v", err, io.ErrNoProgress)
	}
	if diff := diffStrings("BeginArray", th.output()); diff != "" {
		t.Errorf("Output: (-want, +got)\n%s", diff)
	}
	if r.reads > 1000 {
		t.Errorf("Source read %d times after stalling", r.reads)
	}
}

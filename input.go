// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package jreader

import (
	"bufio"
	"io"
)

// blockSize is the size of the blocks requested from the underlying source.
const blockSize = 2048

// eof is the sentinel returned by reader.next at the end of the input.
const eof = -1

// A reader serves single bytes from an underlying io.Reader, which it never
// closes. Once the end of input is reached, every subsequent read reports
// eof without consulting the source again.
type reader struct {
	r    *bufio.Reader
	done bool

	off       int // offset of the next byte to read
	line, col int // position of the next byte to read (0-based)
	pline     int // line of the most recently read byte (0-based)
	pcol      int // column of the most recently read byte
}

func newReader(r io.Reader) *reader {
	br, ok := r.(*bufio.Reader)
	if !ok {
		br = bufio.NewReaderSize(r, blockSize)
	}
	return &reader{r: br}
}

// next returns the next byte of input, or eof at the end of the input.
// Any error other than io.EOF is reported as-is.
func (r *reader) next() (int, error) {
	if r.done {
		return eof, nil
	}
	b, err := r.r.ReadByte()
	if err == io.EOF {
		r.done = true
		r.pline, r.pcol = r.line, r.col
		return eof, nil
	} else if err != nil {
		return eof, err
	}
	r.pline, r.pcol = r.line, r.col
	r.off++
	if b == '\n' {
		r.line++
		r.col = 0
	} else {
		r.col++
	}
	return int(b), nil
}

// offset reports the offset of the most recently read byte, or of the end of
// input once it has been reached.
func (r *reader) offset() int {
	if r.done || r.off == 0 {
		return r.off
	}
	return r.off - 1
}

// lineCol reports the location of the most recently read byte.
func (r *reader) lineCol() LineCol {
	return LineCol{Line: r.pline + 1, Column: r.pcol}
}

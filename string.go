// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package jreader

import (
	"unicode/utf8"

	"github.com/creachadair/jreader/internal/escape"
)

// readString decodes the remainder of a string whose opening quotation mark
// has already been consumed, and appends the decoded text to dst[:0].
// It consumes the closing quotation mark.
func (p *Parser) readString(dst []byte) []byte {
	dst = dst[:0]

	// If the most recent escape was a high surrogate, hi is its value and
	// hiEnd is the length of dst just after it was written.
	var hi rune
	hiEnd := -1

	for {
		c := p.read()
		switch {
		case c == '"':
			return dst
		case c == eof:
			p.fail(EarlyEOF, "unexpected end of data in string")
		case c < ' ':
			p.fail(BadString, "unescaped control %s in string", charLabel(c))
		case c != '\\':
			dst = append(dst, byte(c))
			continue
		}

		// We are awaiting the completion of a \-escape.
		e := p.read()
		if e == eof {
			p.fail(EarlyEOF, "unexpected end of data in escape")
		} else if b, ok := escape.Short(byte(e)); ok {
			dst = append(dst, b)
			continue
		} else if e != 'u' {
			p.fail(BadEscape, "invalid %s after escape", charLabel(e))
		}

		u := p.readHex4()
		if p.pairs && escape.IsLow(u) && hiEnd == len(dst) {
			dst = utf8.AppendRune(dst[:hiEnd-escape.UnitLen], escape.Combine(hi, u))
			hiEnd = -1
			continue
		}
		dst = escape.AppendUnit(dst, u)
		if escape.IsHigh(u) {
			hi, hiEnd = u, len(dst)
		}
	}
}

// readHex4 reads exactly 4 hexadecimal digits from the input and returns the
// code unit they denote.
func (p *Parser) readHex4() rune {
	var u rune
	for range 4 {
		c := p.read()
		if c == eof {
			p.fail(EarlyEOF, "unexpected end of data in Unicode escape")
		}
		v, ok := escape.HexVal(byte(c))
		if !ok {
			p.fail(BadEscape, "invalid hex digit %s in Unicode escape", charLabel(c))
		}
		u = u<<4 | v
	}
	return u
}

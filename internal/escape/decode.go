// Copyright (C) 2023 Michael J. Fromberger. All Rights Reserved.

// Package escape handles the escape sequences of JSON strings.
package escape

import "unicode/utf8"

var shortEsc = [...]byte{
	'"':  '"',
	'\\': '\\',
	'/':  '/',
	'b':  '\b',
	'f':  '\f',
	'n':  '\n',
	'r':  '\r',
	't':  '\t',
}

// Short reports the byte denoted by the two-character escape "\c", and
// whether c is one of the short escapes.
func Short(c byte) (byte, bool) {
	if int(c) >= len(shortEsc) || shortEsc[c] == 0 {
		return 0, false
	}
	return shortEsc[c], true
}

// HexVal reports the value of the hexadecimal digit c, in either case.
func HexVal(c byte) (rune, bool) {
	switch {
	case '0' <= c && c <= '9':
		return rune(c - '0'), true
	case 'a' <= c && c <= 'f':
		return rune(c-'a') + 10, true
	case 'A' <= c && c <= 'F':
		return rune(c-'A') + 10, true
	}
	return 0, false
}

// Surrogate bounds for UTF-16 code units.
const (
	surrHigh = 0xd800 // first high surrogate
	surrLow  = 0xdc00 // first low surrogate
	surrEnd  = 0xe000 // one past the last low surrogate
)

// IsHigh reports whether u is a UTF-16 high (leading) surrogate.
func IsHigh(u rune) bool { return surrHigh <= u && u < surrLow }

// IsLow reports whether u is a UTF-16 low (trailing) surrogate.
func IsLow(u rune) bool { return surrLow <= u && u < surrEnd }

// Combine returns the code point encoded by the surrogate pair hi, lo.
// The caller must ensure IsHigh(hi) and IsLow(lo).
func Combine(hi, lo rune) rune {
	return ((hi-surrHigh)<<10 | (lo - surrLow)) + 0x10000
}

// UnitLen is the number of bytes AppendUnit writes for a surrogate.
const UnitLen = 3

// AppendUnit appends the 16-bit code unit u to dst.
//
// Scalar values are encoded as UTF-8. Surrogates, which have no UTF-8
// encoding, are written in the same 3-byte form UTF-8 would use for them
// were they scalars, so a single escaped code unit always yields a single
// decodable unit of output.
func AppendUnit(dst []byte, u rune) []byte {
	if !IsHigh(u) && !IsLow(u) {
		return utf8.AppendRune(dst, u)
	}
	return append(dst,
		0xe0|byte(u>>12),
		0x80|byte(u>>6)&0x3f,
		0x80|byte(u)&0x3f,
	)
}

// decodeUnit reports the surrogate code unit encoded by AppendUnit at the
// front of src, if there is one.
func decodeUnit(src []byte) (rune, bool) {
	if len(src) < UnitLen || src[0] != 0xed || src[1] < 0xa0 || src[1] > 0xbf {
		return 0, false
	}
	u := rune(src[0]&0x0f)<<12 | rune(src[1]&0x3f)<<6 | rune(src[2]&0x3f)
	return u, true
}

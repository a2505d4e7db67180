// Copyright (C) 2023 Michael J. Fromberger. All Rights Reserved.

package escape

import (
	"unicode/utf8"

	"go4.org/mem"
)

var controlEsc = [...]byte{
	'\b': 'b',
	'\f': 'f',
	'\n': 'n',
	'\r': 'r',
	'\t': 't',
	' ':  ' ', // sentinel
}

var hexDigit = []byte("0123456789abcdef")

func appendHex4(dst []byte, u rune) []byte {
	return append(dst, '\\', 'u',
		hexDigit[u>>12&15], hexDigit[u>>8&15], hexDigit[u>>4&15], hexDigit[u&15])
}

// AppendQuote appends the JSON string encoding of src to dst, including the
// enclosing double quotation marks.
//
// Lone surrogates written by AppendUnit are escaped back to \uXXXX form, so
// text decoded from an escaped string quotes to an equivalent escape.
func AppendQuote(dst []byte, src mem.RO) []byte {
	dst = append(dst, '"')
	for src.Len() != 0 {
		if b := src.At(0); b < utf8.RuneSelf {
			if b < ' ' {
				if c := controlEsc[b]; c != 0 {
					dst = append(dst, '\\', c)
				} else {
					dst = appendHex4(dst, rune(b))
				}
			} else if b == '\\' || b == '"' {
				dst = append(dst, '\\', b)
			} else {
				dst = append(dst, b)
			}
			src = src.SliceFrom(1)
			continue
		}

		if src.Len() >= UnitLen {
			var head [UnitLen]byte
			src.SliceTo(UnitLen).Copy(head[:])
			if u, ok := decodeUnit(head[:]); ok {
				dst = appendHex4(dst, u)
				src = src.SliceFrom(UnitLen)
				continue
			}
		}

		r, n := mem.DecodeRune(src)
		switch r {
		case '\u2028', '\u2029': // line and paragraph separators
			dst = appendHex4(dst, r)
		default:
			// Invalid bytes are copied through unchanged.
			dst = mem.Append(dst, src.SliceTo(n))
		}
		src = src.SliceFrom(n)
	}
	return append(dst, '"')
}

// Quote returns the JSON string encoding of src.
func Quote(src mem.RO) []byte { return AppendQuote(make([]byte, 0, src.Len()+2), src) }

// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package jreader

// numState is a state of the number automaton.
type numState byte

const (
	numZero     numState = iota + 1 // saw a leading "0"
	numMinus                        // saw a leading "-"
	numDigits                       // saw a leading digit 1-9, and maybe more digits
	numDot                          // saw a decimal point
	numFraction                     // saw one or more fraction digits
	numE                            // saw an exponent marker "e" or "E"
	numExpSign                      // saw the sign of an exponent
	numExponent                     // saw one or more exponent digits
)

// final reports whether a number may end in state s.
func (s numState) final() bool {
	return s == numZero || s == numDigits || s == numFraction || s == numExponent
}

// number consumes the remainder of a number whose first character is first,
// leaving the complete text in p.buf. Numbers have no closing delimiter, so
// number returns the character that terminated it for the caller to process.
//
// Precondition: first is '-' or a digit.
func (p *Parser) number(first int) int {
	p.buf = append(p.buf[:0], byte(first))

	var st numState
	switch {
	case first == '-':
		st = numMinus
	case first == '0':
		st = numZero
	default:
		st = numDigits
	}

	for {
		c := p.read()
		if isTerminator(c) {
			if st.final() {
				return c
			} else if c == eof {
				p.fail(EarlyEOF, "unexpected end of data in number %q", p.buf)
			}
			p.fail(BadNumber, "unexpected %s in number %q", charLabel(c), p.buf)
		}

		switch st {
		case numMinus:
			if c == '0' {
				st = numZero
			} else if isNonZero(c) {
				st = numDigits
			} else {
				p.fail(BadNumber, "want digit after %q, got %s", p.buf, charLabel(c))
			}

		case numZero, numDigits:
			if c == '.' {
				st = numDot
			} else if c == 'e' || c == 'E' {
				st = numE
			} else if st == numZero && isDigit(c) {
				p.fail(BadNumber, "extra leading zeroes in number %q", p.buf)
			} else if !isDigit(c) {
				p.fail(BadNumber, "unexpected %s in number %q", charLabel(c), p.buf)
			}

		case numDot:
			if !isDigit(c) {
				p.fail(BadNumber, "no digits after decimal point in %q", p.buf)
			}
			st = numFraction

		case numFraction:
			if c == 'e' || c == 'E' {
				st = numE
			} else if !isDigit(c) {
				p.fail(BadNumber, "unexpected %s in number %q", charLabel(c), p.buf)
			}

		case numE:
			if c == '+' || c == '-' {
				st = numExpSign
			} else if isDigit(c) {
				st = numExponent
			} else {
				p.fail(BadNumber, "want sign or digit in exponent of %q, got %s", p.buf, charLabel(c))
			}

		case numExpSign, numExponent:
			if !isDigit(c) {
				p.fail(BadNumber, "unexpected %s in exponent of %q", charLabel(c), p.buf)
			}
			st = numExponent

		default:
			panic("invalid number state")
		}
		p.buf = append(p.buf, byte(c))
	}
}

// isTerminator reports whether c ends a number without being part of it.
func isTerminator(c int) bool {
	return c == eof || c == ',' || c == '}' || c == ']' || isSpace(c)
}

func isDigit(c int) bool   { return '0' <= c && c <= '9' }
func isNonZero(c int) bool { return '1' <= c && c <= '9' }

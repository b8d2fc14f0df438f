// Package lexer implements the character-level scanner that is embedded
// directly into the Rill parser. Rill's grammar is scannerless: there is no
// separate token stream. Instead the parser repeatedly asks the Scanner
// "does the text right here match this literal string", consumes trailing
// whitespace on success, and moves on. Scanner owns the single piece of
// mutable state a recursive-descent parse needs: the byte cursor and the
// current line/column.
package lexer

import (
	"math"

	"golang.org/x/text/unicode/norm"

	"github.com/rill-lang/rill/internal/errors"
)

// Position identifies a single point in a module's source text.
type Position struct {
	Line int
	Col  int
}

// Scanner is a byte cursor over a module's UTF-8 source text.
type Scanner struct {
	Module string // module name, used only for error messages
	src    []byte
	cur    int
	line   int
	col    int
}

// New creates a Scanner positioned at the start of src, having already
// consumed any leading whitespace/comments.
func New(moduleName, src string) *Scanner {
	s := &Scanner{Module: moduleName, src: []byte(src), cur: 0, line: 1, col: 1}
	s.MatchWS()
	return s
}

// Pos returns the scanner's current position.
func (s *Scanner) Pos() Position { return Position{Line: s.line, Col: s.col} }

// AtEOF reports whether the cursor has reached the end of the source.
func (s *Scanner) AtEOF() bool { return s.cur >= len(s.src) }

func (s *Scanner) byteAt(i int) byte {
	if s.cur+i >= len(s.src) {
		return 0
	}
	return s.src[s.cur+i]
}

// Fail raises a fatal lexical/syntactic error at the scanner's current position.
func (s *Scanner) Fail(format string, args ...any) {
	errors.Fatal(s.Module, s.line, s.col, format, args...)
}

// --- identifier classification ---

func IsIDHead(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func IsDigit(c byte) bool { return c >= '0' && c <= '9' }

func IsIDBody(c byte) bool { return IsIDHead(c) || IsDigit(c) }

// IsIDHeadNow reports whether the byte under the cursor can start an identifier.
func (s *Scanner) IsIDHeadNow() bool { return IsIDHead(s.byteAt(0)) }

// --- raw matchers ---

// MatchLength returns len(str) if the upcoming bytes equal str, 0 otherwise.
func (s *Scanner) MatchLength(str string) int {
	for i := 0; i < len(str); i++ {
		if s.byteAt(i) != str[i] {
			return 0
		}
	}
	return len(str)
}

// MatchNS ("no space") matches str without consuming trailing whitespace.
// If str ends in an identifier-body byte and the byte right after the match
// is also identifier-body, the match is rejected (so "class" doesn't match
// inside "classy").
func (s *Scanner) MatchNS(str string) bool {
	n := s.MatchLength(str)
	if n == 0 {
		return false
	}
	if IsIDBody(str[n-1]) && IsIDBody(s.byteAt(n)) {
		return false
	}
	s.advance(n)
	return true
}

// Match matches str and, on success, consumes any trailing whitespace/comments.
func (s *Scanner) Match(str string) bool {
	if s.MatchNS(str) {
		s.MatchWS()
		return true
	}
	return false
}

// MatchAndNot matches str only when the byte right after it is not after.
// Used to tell "&" apart from "&&", "|" from "||".
func (s *Scanner) MatchAndNot(str string, after byte) bool {
	n := s.MatchLength(str)
	if n == 0 || s.byteAt(n) == after {
		return false
	}
	s.advance(n)
	s.MatchWS()
	return true
}

// Expect matches str or raises a fatal error.
func (s *Scanner) Expect(str string) {
	if !s.Match(str) {
		s.Fail("expected '%s'", str)
	}
}

func (s *Scanner) advance(n int) {
	for i := 0; i < n; i++ {
		s.cur++
		s.col++
	}
}

// MatchWS consumes whitespace, line comments, and line terminators.
// Hard tabs are a fatal error. Returns whether anything was consumed.
func (s *Scanner) MatchWS() bool {
	start := s.cur
	for {
		for s.byteAt(0) == ' ' {
			s.cur++
			s.col++
		}
		if s.byteAt(0) == '\t' {
			s.Fail("tabs aren't allowed as white space")
		}
		if s.byteAt(0) == '/' && s.byteAt(1) == '/' {
			for s.byteAt(0) != 0 && s.byteAt(0) != '\n' && s.byteAt(0) != '\r' {
				s.cur++
			}
		}
		switch s.byteAt(0) {
		case '\n':
			s.cur++
			if s.byteAt(0) == '\r' {
				s.cur++
			}
			s.line++
			s.col = 1
			continue
		case '\r':
			s.cur++
			if s.byteAt(0) == '\n' {
				s.cur++
			}
			s.line++
			s.col = 1
			continue
		default:
			if s.byteAt(0) == 0 || s.byteAt(0) > ' ' {
				return s.cur != start
			}
			// any other control byte: treat as plain whitespace-ish and keep going
			s.cur++
			s.col++
		}
	}
}

// MatchID consumes an identifier ([A-Za-z][A-Za-z0-9]*) and returns it.
// Underscore is never part of an identifier: it separates a module prefix
// from a name and is handled by the parser's long-name resolution.
func (s *Scanner) MatchID() (string, bool) {
	if !s.IsIDHeadNow() {
		return "", false
	}
	start := s.cur
	for IsIDBody(s.byteAt(0)) {
		s.cur++
		s.col++
	}
	id := string(s.src[start:s.cur])
	s.MatchWS()
	return id, true
}

// ExpectID matches an identifier or raises a fatal error naming what was expected.
func (s *Scanner) ExpectID(what string) string {
	if id, ok := s.MatchID(); ok {
		return id
	}
	s.Fail("expected %s", what)
	return ""
}

func getDigit(c byte) int {
	switch {
	case c >= '0' && c <= '9':
		return int(c - '0')
	case c >= 'a' && c <= 'f':
		return int(c-'a') + 10
	case c >= 'A' && c <= 'F':
		return int(c-'A') + 10
	default:
		return 255
	}
}

// NumberLiteral is the result of scanning a numeric literal: exactly one of
// IsFloat's two corresponding fields is meaningful.
type NumberLiteral struct {
	IsFloat bool
	Int     uint64
	Float   float64
}

// MatchNumber scans a numeric literal, or returns ok=false
// if the cursor isn't on a digit.
func (s *Scanner) MatchNumber() (NumberLiteral, bool) {
	if !IsDigit(s.byteAt(0)) {
		return NumberLiteral{}, false
	}
	radix := 10
	if s.byteAt(0) == '0' {
		switch s.byteAt(1) {
		case 'x':
			radix = 16
			s.advance(2)
		case 'o':
			radix = 8
			s.advance(2)
		case 'b':
			radix = 2
			s.advance(2)
		}
	}
	var result uint64
	for {
		c := s.byteAt(0)
		if c == '_' {
			s.advance(1)
			continue
		}
		if radix == 10 && (c == 'e' || c == 'E') {
			break
		}
		digit := getDigit(c)
		if digit == 255 {
			break
		}
		if digit >= radix {
			s.Fail("digit with value %d is not allowed in %d-base number", digit, radix)
		}
		next := result*uint64(radix) + uint64(digit)
		if next/uint64(radix) != result {
			s.Fail("overflow")
		}
		result = next
		s.advance(1)
	}
	if s.byteAt(0) != '.' && s.byteAt(0) != 'e' && s.byteAt(0) != 'E' {
		s.MatchWS()
		return NumberLiteral{Int: result}, true
	}
	d := float64(result)
	if s.MatchNS(".") {
		weight := 0.1
		for IsDigit(s.byteAt(0)) {
			d += weight * float64(s.byteAt(0)-'0')
			weight *= 0.1
			s.advance(1)
		}
	}
	if c := s.byteAt(0); c == 'E' || c == 'e' {
		s.advance(1)
		sign := 1.0
		if s.MatchNS("-") {
			sign = -1.0
		} else {
			s.MatchNS("+")
		}
		exp := 0
		// NOTE: exponent digits are read with `c < '9'`, which excludes the
		// digit 9. Preserved deliberately -- DESIGN.md records this as an
		// intentional quirk, not a typo.
		for s.byteAt(0) >= '0' && s.byteAt(0) < '9' {
			exp = exp*10 + int(s.byteAt(0)-'0')
			s.advance(1)
		}
		d *= pow10(exp * int(sign))
	}
	if isInfOrNaN(d) {
		s.Fail("numeric overflow")
	}
	s.MatchWS()
	return NumberLiteral{IsFloat: true, Float: d}, true
}

func pow10(exp int) float64 { return math.Pow(10, float64(exp)) }

func isInfOrNaN(f float64) bool { return math.IsInf(f, 0) || math.IsNaN(f) }

// MatchCharLiteral scans a 'c' character literal, returning its Unicode code point.
// An empty literal ('') or one that runs into EOF before a code point is
// decoded is "incomplete character constant".
func (s *Scanner) MatchCharLiteral() (rune, bool) {
	if !s.MatchNS("'") {
		return 0, false
	}
	if s.byteAt(0) == '\'' || s.AtEOF() {
		s.Fail("incomplete character constant")
	}
	c := s.getUTF8()
	if c == 0 {
		s.Fail("incomplete character constant")
	}
	s.Expect("'")
	return c, true
}

// getUTF8 decodes one rune from the cursor, advancing past it, or returns 0 at EOF.
func (s *Scanner) getUTF8() rune {
	if s.AtEOF() {
		return 0
	}
	b0 := s.src[s.cur]
	var n int
	switch {
	case b0 < 0x80:
		n = 1
	case b0&0xE0 == 0xC0:
		n = 2
	case b0&0xF0 == 0xE0:
		n = 3
	case b0&0xF8 == 0xF0:
		n = 4
	default:
		s.Fail("invalid UTF-8 encoding")
	}
	if s.cur+n > len(s.src) {
		s.Fail("invalid UTF-8 encoding")
	}
	r := decodeUTF8(s.src[s.cur : s.cur+n])
	s.cur += n
	s.col++
	return r
}

func decodeUTF8(b []byte) rune {
	switch len(b) {
	case 1:
		return rune(b[0])
	case 2:
		return rune(b[0]&0x1F)<<6 | rune(b[1]&0x3F)
	case 3:
		return rune(b[0]&0x0F)<<12 | rune(b[1]&0x3F)<<6 | rune(b[2]&0x3F)
	default:
		return rune(b[0]&0x07)<<18 | rune(b[1]&0x3F)<<12 | rune(b[2]&0x3F)<<6 | rune(b[3]&0x3F)
	}
}

// MatchStringLiteral scans a "..." string literal, applying Unicode NFC
// normalization to the decoded contents -- the same concern a runtime
// would apply to string handling, pulled forward to the lexical layer
// since this parser has no runtime of its own.
func (s *Scanner) MatchStringLiteral() (string, bool) {
	if !s.MatchNS("\"") {
		return "", false
	}
	var runes []rune
	for {
		c := s.getUTF8()
		if c == 0 {
			s.Fail("incomplete string constant")
		}
		if c < ' ' {
			s.Fail("control characters in the string constant")
		}
		if c == '"' {
			break
		}
		if c == '\\' {
			switch s.byteAt(0) {
			case '\\':
				c = '\\'
			case '"':
				c = '"'
			case 'n':
				c = '\n'
			case 'r':
				c = '\r'
			case 't':
				c = '\t'
			default:
				c = 0
				d := getDigit(s.byteAt(0))
				for d < 16 {
					c = c*16 + rune(d)
					s.advance(1)
					d = getDigit(s.byteAt(0))
				}
				if c == 0 || c > 0x10FFFF {
					s.Fail("character code is outside the range 1..10ffff")
				}
				if s.byteAt(0) != '\\' {
					s.Fail("expected closing '\\'")
				}
			}
			s.advance(1)
		}
		runes = append(runes, c)
	}
	s.MatchWS()
	return norm.NFC.String(string(runes)), true
}


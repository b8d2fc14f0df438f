package lexer

import (
	"testing"

	"github.com/rill-lang/rill/internal/errors"
)

// recoverParseError converts a value returned by recover() into the
// *errors.ParseError it carries. recover() itself must be called directly
// by the deferred function, so callers pass its result in.
func recoverParseError(t *testing.T, r any) (pe *errors.ParseError) {
	t.Helper()
	if r != nil {
		var ok bool
		pe, ok = r.(*errors.ParseError)
		if !ok {
			panic(r)
		}
	}
	return pe
}

func TestMatchBasic(t *testing.T) {
	s := New("m", "class Foo {")
	if !s.Match("class") {
		t.Fatal("expected to match 'class'")
	}
	if !s.IsIDHeadNow() {
		t.Fatal("expected identifier ahead")
	}
	id, ok := s.MatchID()
	if !ok || id != "Foo" {
		t.Fatalf("got %q, %v", id, ok)
	}
	if !s.Match("{") {
		t.Fatal("expected to match '{'")
	}
	if !s.AtEOF() {
		t.Fatal("expected EOF")
	}
}

func TestMatchNSRejectsIdentifierPrefix(t *testing.T) {
	s := New("m", "classy")
	if s.MatchNS("class") {
		t.Fatal("'class' must not match inside 'classy'")
	}
}

func TestMatchAndNotDistinguishesAndFromLAnd(t *testing.T) {
	s := New("m", "&&")
	if s.MatchAndNot("&", '&') {
		t.Fatal("'&' followed by '&' should not match as bitwise and")
	}
	if !s.Match("&&") {
		t.Fatal("expected '&&' to match")
	}
}

func TestMatchNumberInt(t *testing.T) {
	s := New("m", "0xFF 0o17 0b101 42 1_000")
	n, ok := s.MatchNumber()
	if !ok || n.IsFloat || n.Int != 0xFF {
		t.Fatalf("got %+v", n)
	}
	n, ok = s.MatchNumber()
	if !ok || n.Int != 0o17 {
		t.Fatalf("got %+v", n)
	}
	n, ok = s.MatchNumber()
	if !ok || n.Int != 0b101 {
		t.Fatalf("got %+v", n)
	}
	n, ok = s.MatchNumber()
	if !ok || n.Int != 42 {
		t.Fatalf("got %+v", n)
	}
	n, ok = s.MatchNumber()
	if !ok || n.Int != 1000 {
		t.Fatalf("underscore separators should be skipped, got %+v", n)
	}
}

func TestMatchNumberFloat(t *testing.T) {
	s := New("m", "3.5 1e2")
	n, ok := s.MatchNumber()
	if !ok || !n.IsFloat || n.Float != 3.5 {
		t.Fatalf("got %+v", n)
	}
	n, ok = s.MatchNumber()
	if !ok || !n.IsFloat || n.Float != 100 {
		t.Fatalf("got %+v", n)
	}
}

func TestMatchNumberOverflowFails(t *testing.T) {
	pe := func() (pe *errors.ParseError) {
		defer func() { pe = recoverParseError(t, recover()) }()
		s := New("m", "0xFFFFFFFFFFFFFFFF0")
		s.MatchNumber()
		return nil
	}()
	if pe == nil {
		t.Fatal("expected overflow to be fatal")
	}
}

func TestMatchNumberMaxUint64DoesNotOverflow(t *testing.T) {
	s := New("m", "0xFFFFFFFFFFFFFFFF")
	n, ok := s.MatchNumber()
	if !ok || n.IsFloat || n.Int != 0xFFFFFFFFFFFFFFFF {
		t.Fatalf("got %+v", n)
	}
}

func TestMatchCharLiteralEmptyFails(t *testing.T) {
	pe := func() (pe *errors.ParseError) {
		defer func() { pe = recoverParseError(t, recover()) }()
		s := New("m", "''")
		s.MatchCharLiteral()
		return nil
	}()
	if pe == nil {
		t.Fatal("expected '' to be an incomplete character constant")
	}
}

func TestMatchCharLiteralASCII(t *testing.T) {
	s := New("m", "'A'")
	c, ok := s.MatchCharLiteral()
	if !ok || c != 'A' {
		t.Fatalf("got %q, %v", c, ok)
	}
}

func TestMatchStringLiteralEscapes(t *testing.T) {
	s := New("m", `"a\nb\41\"c"`)
	str, ok := s.MatchStringLiteral()
	if !ok {
		t.Fatal("expected string literal to match")
	}
	if str != "a\nbA" {
		t.Fatalf("got %q", str)
	}
}

func TestMatchStringLiteralControlCharFails(t *testing.T) {
	pe := func() (pe *errors.ParseError) {
		defer func() { pe = recoverParseError(t, recover()) }()
		s := New("m", "\"a\tb\"")
		s.MatchStringLiteral()
		return nil
	}()
	if pe == nil {
		t.Fatal("expected embedded control character to be fatal")
	}
}

func TestMatchWSRejectsTabs(t *testing.T) {
	pe := func() (pe *errors.ParseError) {
		defer func() { pe = recoverParseError(t, recover()) }()
		New("m", "\tclass")
		return nil
	}()
	if pe == nil {
		t.Fatal("expected leading tab to be fatal")
	}
}

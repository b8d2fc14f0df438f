package parser

import (
	"github.com/rill-lang/rill/internal/ast"
	"github.com/rill-lang/rill/internal/lexer"
)

// newTestParser builds a Parser over src, already positioned in module m,
// for unit tests that exercise one grammar production at a time without
// going through the full module driver.
func newTestParser(src string) *Parser {
	p := newParser(ast.NewRegistry(), map[string]bool{}, nil)
	p.module = ast.NewModule("m")
	p.Scanner = lexer.New("m", src)
	return p
}

// mustFatal runs fn and reports whether it panicked (errors.Fatal's
// bailout mechanism).
func mustFatal(fn func()) (fatal bool) {
	defer func() {
		if r := recover(); r != nil {
			fatal = true
		}
	}()
	fn()
	return false
}

// Package rill is the public entry point for parsing Rill source into an
// AST: it seeds a fresh registry with the builtin "sys" module and drives
// the recursive module parser, whose entry point translates the parser's
// bailout panics into the ordinary errors returned here.
package rill

import (
	"github.com/rill-lang/rill/internal/ast"
	"github.com/rill-lang/rill/internal/builtins"
	"github.com/rill-lang/rill/internal/parser"
)

// TextProvider supplies the source text for a module by name, e.g. reading
// "<name>.rill" off disk or a virtual filesystem.
type TextProvider = parser.TextProvider

// Parse parses startModule and everything it transitively imports,
// returning the fully populated registry. Errors are always *ParseError
// (see internal/errors), reported as "error <message> <module>:<line>:<col>".
func Parse(startModule string, provide TextProvider) (*ast.Registry, error) {
	reg := ast.NewRegistry()
	builtins.Register(reg)
	_, err := parser.Parse(reg, startModule, provide)
	if err != nil {
		return nil, err
	}
	return reg, nil
}

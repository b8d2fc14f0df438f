// Package parser implements Rill's recursive-descent parser: module
// resolution, declarations, types, and expressions, built directly on top
// of the embedded internal/lexer.Scanner.
package parser

import (
	"github.com/rill-lang/rill/internal/ast"
	"github.com/rill-lang/rill/internal/lexer"
)

// TextProvider supplies the source text for a module by name.
type TextProvider func(moduleName string) (string, error)

// Parser drives one module's parse. It embeds *lexer.Scanner so that
// p.Match(...), p.Expect(...), etc. are promoted methods -- the scanner is
// structurally part of the parser, not a separate token-stream stage.
type Parser struct {
	*lexer.Scanner

	reg     *ast.Registry
	module  *ast.Module
	depPath map[string]bool // shared by reference across the whole recursive `using` tree
	provide TextProvider

	currentClass *ast.Class
	delegates    map[string]*ast.Func
}

// LongName is a possibly-qualified identifier: a name, optionally prefixed
// by a module alias ("module_name"). Module is nil when resolution is
// deferred to the caller (e.g. "look in the current module, or an alias, or ...").
type LongName struct {
	Name   string
	Module *ast.Module
}

func newParser(reg *ast.Registry, depPath map[string]bool, provide TextProvider) *Parser {
	return &Parser{
		reg:       reg,
		depPath:   depPath,
		provide:   provide,
		delegates: map[string]*ast.Func{},
	}
}

// pos returns the scanner's position converted to ast's (line, col) pair.
func (p *Parser) pos() (int, int) {
	pp := p.Pos()
	return pp.Line, pp.Col
}

// mk creates a Node of the given kind at the parser's current position,
// owned by the module currently being parsed, following a
// `make<T>()`-style constructor template.
func (p *Parser) mk(kind ast.Kind) *ast.Node {
	line, col := p.pos()
	return &ast.Node{Kind: kind, Module: p.module, Line: line, Col: col}
}

func (p *Parser) mkConstInt(v int64) *ast.Node {
	n := p.mk(ast.KindConstInt64)
	n.Int = v
	return n
}

func (p *Parser) mkConstDouble(v float64) *ast.Node {
	n := p.mk(ast.KindConstDouble)
	n.Float = v
	return n
}

// fill1/fill2 stamp an already-created unary/binary op node's operands,
// keeping the op's own module/line/col (set when it was `mk`'d).
func fill1(op *ast.Node, operand *ast.Node) *ast.Node     { return ast.Fill1(op, operand) }
func fill2(op *ast.Node, left, right *ast.Node) *ast.Node { return ast.Fill2(op, left, right) }

// expectLongName reads id1 and, if followed by "_", id2 too.
// defModule is the module to report when no prefix was present and the name
// isn't resolved any further by the caller.
func (p *Parser) expectLongName(what string, defModule *ast.Module) LongName {
	id := p.ExpectID(what)
	if !p.Match("_") {
		return LongName{Name: id, Module: defModule}
	}
	if m, ok := p.module.DirectImports[id]; ok {
		return LongName{Name: p.ExpectID(what), Module: m}
	}
	if id == p.module.Name {
		p.Fail("names of the current module should not be prefixed with a module name")
	} else {
		p.Fail("module %s is not visible from module %s", id, p.module.Name)
	}
	panic("unreachable")
}

// getClassByName resolves a class/interface name: long-name module prefix
// first, then the module's own aliases, then the module's own class table
// (creating a forward-reference placeholder if this is the first mention).
func (p *Parser) getClassByName(what string) *ast.Class {
	ln := p.expectLongName(what, nil)
	m := ln.Module
	if m == nil {
		if aliased, ok := p.module.Aliases[ln.Name]; ok {
			if cls, ok := aliased.(*ast.Class); ok {
				return cls
			}
		}
		m = p.module
	}
	return m.GetClass(ln.Name)
}

// mkGet resolves a bare or long name to either a reference to one of the
// enclosing class's own type parameters or a plain Get node to be bound to
// a local/function/constant later.
func (p *Parser) mkGet(what string) *ast.Node {
	ln := p.expectLongName(what, nil)
	if ln.Module == nil && p.currentClass != nil {
		if param := p.currentClass.FindParam(ln.Name); param != nil {
			n := p.mk(ast.KindMkInstance)
			n.Param = param
			return n
		}
	}
	n := p.mk(ast.KindGet)
	n.Str = ln.Name
	n.VarModule = ln.Module
	return n
}

// addThisParam synthesizes parameter index 0 for a method or delegate: a
// Var named "this" whose initializer is an MkInstance bound to cls (nil for
// delegates, patched by the semantic pass once the receiver type is known).
func (p *Parser) addThisParam(fn *ast.Func, cls *ast.Class) {
	fn.Names = append(fn.Names, &ast.Var{
		Name:        "this",
		Initializer: &ast.Node{Kind: ast.KindMkInstance, Module: p.module, Class: cls},
	})
}

package parser

import "github.com/rill-lang/rill/internal/ast"

// parseType reads a type expression and returns it encoded in the node
// algebra: types are first-class expressions whose shape a later semantic
// pass recognizes.
func (p *Parser) parseType() *ast.Node {
	if p.Match("~") {
		return p.parseExpression()
	}
	if p.Match("int") {
		return p.mkConstInt(0)
	}
	if p.Match("double") {
		return p.mkConstDouble(0)
	}
	if p.Match("bool") {
		return p.mk(ast.KindConstBool)
	}
	if p.Match("void") {
		return p.mk(ast.KindConstVoid)
	}
	if p.Match("?") {
		r := p.mk(ast.KindIf)
		r.A = p.mk(ast.KindConstBool)
		r.B = p.parseType()
		return r
	}
	if p.Match("&") {
		if p.Match("*") {
			return fill1(p.mk(ast.KindMkWeakOp), fill1(p.mk(ast.KindConformOp), p.mkGet("class or interface name")))
		}
		if p.Match("+") {
			return fill1(p.mk(ast.KindMkWeakOp), fill1(p.mk(ast.KindFreezeOp), p.mkGet("class or interface name")))
		}
		if p.Match("(") {
			n := p.mk(ast.KindFuncType)
			line, col := p.pos()
			fn := &ast.Func{Kind: ast.FuncKindDelegate, Line: line, Col: col}
			p.addThisParam(fn, nil)
			p.parseTypeParamList(fn)
			fn.TypeExpression = p.parseType()
			n.Func = fn
			return n
		}
		return fill1(p.mk(ast.KindMkWeakOp), p.mkGet("class or interface name"))
	}
	if p.Match("+") {
		return fill1(p.mk(ast.KindConformOp), p.mkGet("class or interface name"))
	}
	if p.Match("*") {
		return fill1(p.mk(ast.KindFreezeOp), p.mkGet("class or interface name"))
	}
	if p.Match("@") {
		return p.mkGet("class or interface name")
	}
	if p.Match("fn") {
		p.Expect("(")
		n := p.mk(ast.KindFuncType)
		line, col := p.pos()
		fn := &ast.Func{Kind: ast.FuncKindFunction, Line: line, Col: col}
		p.parseTypeParamList(fn)
		fn.TypeExpression = p.parseType()
		n.Func = fn
		return n
	}
	if p.Match("(") {
		n := p.mk(ast.KindMkLambda)
		line, col := p.pos()
		fn := &ast.Func{Kind: ast.FuncKindFunction, Line: line, Col: col}
		p.parseTypeParamList(fn)
		fn.Body = []*ast.Node{p.parseType()}
		n.Func = fn
		return n
	}
	if p.IsIDHeadNow() {
		return fill1(p.mk(ast.KindRefOp), p.mkGet("class or interface name"))
	}
	p.Fail("Expected type name")
	return nil
}

// parseTypeParamList reads the "(type, type, ...)" parameter-type list
// shared by `fn(...)`, `&(...)`, and bare `(...)` type productions -- note
// that in a type expression, unlike a <fn-def>, each parameter slot is a
// bare type with no parameter name. The opening "(" has already been
// matched by the caller.
func (p *Parser) parseTypeParamList(fn *ast.Func) {
	if p.Match(")") {
		return
	}
	for {
		fn.Names = append(fn.Names, &ast.Var{Initializer: p.parseType()})
		if p.Match(")") {
			return
		}
		p.Expect(",")
	}
}

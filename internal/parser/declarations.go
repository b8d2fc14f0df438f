package parser

import "github.com/rill-lang/rill/internal/ast"

// parseFnDef parses the shared "(params) [this|type] {body}|;" tail of the
// <fn-def> grammar production used by free functions, methods, and
// immediate delegates. fn.Kind and fn.Name/fn.Names[0] must
// already be set by the caller.
func (p *Parser) parseFnDef(fn *ast.Func) {
	p.Expect("(")
	for !p.Match(")") {
		param := &ast.Var{Initializer: p.parseType()}
		fn.Names = append(fn.Names, param)
		param.Name = p.ExpectID("parameter name")
		if p.Match(")") {
			break
		}
		p.Expect(",")
	}
	if p.Match("this") {
		if fn.Kind != ast.FuncKindMethod {
			p.Fail("only methods return this type.")
		}
		fn.IsFactory = true
		getThis := p.mk(ast.KindGet)
		getThis.Var = fn.Names[0]
		fn.TypeExpression = getThis
		p.Expect("{")
	} else if p.Match(";") {
		fn.TypeExpression = p.mk(ast.KindConstVoid)
		fn.IsPlatform = true
		return
	} else if p.Match("{") {
		fn.TypeExpression = p.mk(ast.KindConstVoid)
	} else {
		fn.TypeExpression = p.parseType()
		if p.Match(";") {
			fn.IsPlatform = true
			return
		}
		p.Expect("{")
	}
	p.parseStatementSequence(&fn.Body)
	if fn.Kind == ast.FuncKindMethod && fn.IsFactory {
		fn.Body = append(fn.Body, fn.TypeExpression) // this
	}
	p.Expect("}")
}

// makeMethod builds a method whose receiver is cls, parses its <fn-def>,
// and checks the interface/implementation-body agreement
// requires: interface methods must have an empty body, concrete ones must not.
func (p *Parser) makeMethod(name LongName, cls *ast.Class, isInterface bool) *ast.Func {
	line, col := p.pos()
	method := &ast.Func{Kind: ast.FuncKindMethod, Name: name.Name, BaseModule: name.Module, Line: line, Col: col}
	p.addThisParam(method, cls)
	p.parseFnDef(method)
	if isInterface != (len(method.Body) == 0) {
		if isInterface {
			p.Fail("empty body expected")
		} else {
			p.Fail("not empty body expected")
		}
	}
	return method
}

// parseTopLevelDeclarations parses the module body's `const`/`class`/
// `interface`/`fn`/bare-`test` sequence, stopping at the first token that
// starts none of them.
func (p *Parser) parseTopLevelDeclarations() {
	for {
		if p.Match("const") {
			id := p.ExpectID("const name")
			p.Expect("=")
			v := &ast.Var{Name: id, IsConst: true, Initializer: p.parseExpression()}
			p.module.Constants[id] = v
			p.Expect(";")
			continue
		}

		isTest := p.Match("test")
		isInterface := p.Match("interface")
		switch {
		case isInterface || p.Match("class"):
			p.parseClassDecl(isInterface, isTest)
		case p.Match("fn"):
			line, col := p.pos()
			fn := &ast.Func{Kind: ast.FuncKindFunction, IsTest: isTest, Line: line, Col: col}
			fn.Name = p.ExpectID("function name")
			if _, dup := p.module.Functions[fn.Name]; dup {
				p.Fail("duplicated function name, %s", fn.Name)
			}
			p.module.Functions[fn.Name] = fn
			p.parseFnDef(fn)
		case isTest:
			line, col := p.pos()
			fn := &ast.Func{Kind: ast.FuncKindFunction, IsTest: true, Line: line, Col: col}
			fn.Name = p.ExpectID("test name")
			if _, dup := p.module.Tests[fn.Name]; dup {
				p.Fail("duplicated test name, %s", fn.Name)
			}
			p.module.Tests[fn.Name] = fn
			p.parseFnDef(fn)
		default:
			return
		}
	}
}

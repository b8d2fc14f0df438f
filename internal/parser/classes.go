package parser

import "github.com/rill-lang/rill/internal/ast"

// parseClassDecl parses one `class`/`interface` declaration, including a
// "reopening" of a class already mentioned as a forward reference or
// defined earlier in the module.
func (p *Parser) parseClassDecl(isInterface, isTest bool) {
	cls := p.getClassByName("class or interface")
	p.currentClass = cls
	defer func() { p.currentClass = nil }()

	isFirstTimeSeen := cls.Line == 0
	line, col := p.pos()
	cls.Line, cls.Col = line, col
	cls.IsInterface = isInterface
	cls.IsTest = isTest

	if p.Match("(") {
		if !isFirstTimeSeen {
			p.Fail("Reopened class must reuse existing type parameters")
		}
		for {
			param := &ast.ClassParam{IsIn: true, IsOut: true}
			param.Name = p.ExpectID("type parameter name")
			if p.Match(">") {
				param.IsOut = false
			} else if p.Match("<") {
				param.IsIn = false
			}
			param.Base = p.getClassByName("base class for type parameter")
			cls.Params = append(cls.Params, param)
			if !p.Match(",") {
				break
			}
		}
		p.Expect(")")
	}

	p.Expect("{")
	for !p.Match("}") {
		p.parseClassMember(cls, isInterface)
	}
}

// parseClassMember parses one member of a class/interface body: either a
// "+BaseClass" conformance declaration (optionally with an override block)
// or a field/method member.
func (p *Parser) parseClassMember(cls *ast.Class, isInterface bool) {
	if p.Match("+") {
		baseClass := p.getClassByName("base class or interface")
		if cls.Overloads == nil {
			cls.Overloads = map[*ast.Class][]*ast.Func{}
		}
		if p.Match("{") {
			if isInterface {
				p.Fail("interface can't have overrides")
			}
			for !p.Match("}") {
				name := p.expectLongName("override method name", nil)
				cls.Overloads[baseClass] = append(cls.Overloads[baseClass], p.makeMethod(name, cls, isInterface))
			}
		} else {
			p.Expect(";")
			if _, ok := cls.Overloads[baseClass]; !ok {
				cls.Overloads[baseClass] = nil
			}
		}
		return
	}

	mut := ast.MutImmutable
	switch {
	case p.Match("*"):
		mut = ast.MutMutating
	case p.Match("-"):
		mut = ast.MutAny
	}
	memberName := p.ExpectID("method or field name")
	if p.Match("=") {
		if mut != ast.MutImmutable {
			p.Fail("field can't have '-' or '*' markers")
		}
		field := &ast.Field{Name: memberName, Initializer: p.parseExpression()}
		cls.Fields = append(cls.Fields, field)
		p.Expect(";")
		return
	}
	method := p.makeMethod(LongName{Name: memberName, Module: p.module}, cls, isInterface)
	method.Mut = mut
	cls.NewMethods = append(cls.NewMethods, method)
}

package parser

import "github.com/rill-lang/rill/internal/ast"

// parseStatementSequence parses statements separated by ";" into body,
// stopping at "}" or EOF. An empty trailing statement
// (nothing before "}"/EOF) becomes an explicit ConstVoid so every sequence
// has at least one element.
func (p *Parser) parseStatementSequence(body *[]*ast.Node) {
	for {
		if p.AtEOF() || p.peekIsCloseBrace() {
			*body = append(*body, p.mk(ast.KindConstVoid))
			return
		}
		*body = append(*body, p.parseStatement())
		if !p.Match(";") {
			return
		}
	}
}

func (p *Parser) peekIsCloseBrace() bool { return p.MatchLength("}") != 0 }

// parseStatement parses one expression and, if it turns out to be a bare
// Get immediately followed by "=", reinterprets it as a local-binding
// declaration scoping over the rest of the sequence.
func (p *Parser) parseStatement() *ast.Node {
	r := p.parseExpression()
	if r.Kind == ast.KindGet && r.Var == nil && p.Match("=") {
		if r.VarModule != nil {
			p.Fail("local var names should not contain '_'")
		}
		block := p.mkAt(ast.KindBlock, r)
		v := &ast.Var{Name: r.Str, Initializer: p.parseExpression()}
		block.Vars = []*ast.Var{v}
		p.Expect(";")
		var body []*ast.Node
		p.parseStatementSequence(&body)
		block.List = body
		return block
	}
	return r
}

func (p *Parser) parseExpression() *ast.Node { return p.parseElses() }

// mkAt creates a node of kind at the location of ref.
func (p *Parser) mkAt(kind ast.Kind, ref *ast.Node) *ast.Node {
	return &ast.Node{Kind: kind, Module: p.module, Line: ref.Line, Col: ref.Col}
}

// --- precedence cascade: elses -> ifs -> ors -> comparisons -> adds -> muls -> unar -> unar-head ---

func (p *Parser) parseElses() *ast.Node {
	r := p.parseIfs()
	for p.Match(":") {
		r = fill2(p.mk(ast.KindElse), r, p.parseIfs())
	}
	return r
}

func (p *Parser) parseIfs() *ast.Node {
	r := p.parseOrs()
	isAnd := p.Match("&&")
	if isAnd || p.Match("?") {
		rhs := p.mk(ast.KindBlock)
		name := "_"
		if p.Match("=") {
			name = p.ExpectID("local")
		}
		rhs.Vars = []*ast.Var{{Name: name}}
		rhs.List = []*ast.Node{p.parseIfs()}
		if isAnd {
			return fill2(p.mk(ast.KindLAnd), r, rhs)
		}
		return fill2(p.mk(ast.KindIf), r, rhs)
	}
	return r
}

func (p *Parser) parseOrs() *ast.Node {
	r := p.parseComparisons()
	for p.Match("||") {
		r = fill2(p.mk(ast.KindLOr), r, p.parseComparisons())
	}
	return r
}

func (p *Parser) parseComparisons() *ast.Node {
	r := p.parseAdds()
	switch {
	case p.Match("=="):
		return fill2(p.mk(ast.KindEqOp), r, p.parseAdds())
	case p.Match(">="):
		return fill1(p.mk(ast.KindNotOp), fill2(p.mk(ast.KindLtOp), r, p.parseAdds()))
	case p.Match("<="):
		return fill1(p.mk(ast.KindNotOp), fill2(p.mk(ast.KindLtOp), p.parseAdds(), r))
	case p.Match("<"):
		return fill2(p.mk(ast.KindLtOp), r, p.parseAdds())
	case p.Match(">"):
		return fill2(p.mk(ast.KindLtOp), p.parseAdds(), r)
	case p.Match("!="):
		return fill1(p.mk(ast.KindNotOp), fill2(p.mk(ast.KindEqOp), r, p.parseAdds()))
	}
	return r
}

func (p *Parser) parseAdds() *ast.Node {
	r := p.parseMuls()
	for {
		switch {
		case p.Match("+"):
			r = fill2(p.mk(ast.KindAddOp), r, p.parseMuls())
		case p.Match("-"):
			r = fill2(p.mk(ast.KindSubOp), r, p.parseMuls())
		default:
			return r
		}
	}
}

func (p *Parser) parseMuls() *ast.Node {
	r := p.parseUnar()
	for {
		switch {
		case p.Match("*"):
			r = fill2(p.mk(ast.KindMulOp), r, p.parseUnar())
		case p.Match("/"):
			r = fill2(p.mk(ast.KindDivOp), r, p.parseUnar())
		case p.Match("%"):
			r = fill2(p.mk(ast.KindModOp), r, p.parseUnar())
		case p.Match("<<"):
			r = fill2(p.mk(ast.KindShlOp), r, p.parseUnar())
		case p.Match(">>"):
			r = fill2(p.mk(ast.KindShrOp), r, p.parseUnar())
		case p.MatchAndNot("&", '&'):
			r = fill2(p.mk(ast.KindAndOp), r, p.parseUnar())
		case p.MatchAndNot("|", '|'):
			r = fill2(p.mk(ast.KindOrOp), r, p.parseUnar())
		case p.Match("^"):
			r = fill2(p.mk(ast.KindXorOp), r, p.parseUnar())
		default:
			return r
		}
	}
}

func (p *Parser) parseExpressionInParens() *ast.Node {
	p.Expect("(")
	r := p.parseExpression()
	p.Expect(")")
	return r
}

// matchSetOp matches one of the compound-assignment operators and returns
// a freshly-made (unfilled) binary op node for it, or nil.
func (p *Parser) matchSetOp() *ast.Node {
	switch {
	case p.Match("+="):
		return p.mk(ast.KindAddOp)
	case p.Match("-="):
		return p.mk(ast.KindSubOp)
	case p.Match("*="):
		return p.mk(ast.KindMulOp)
	case p.Match("/="):
		return p.mk(ast.KindDivOp)
	case p.Match("%="):
		return p.mk(ast.KindModOp)
	case p.Match("<<="):
		return p.mk(ast.KindShlOp)
	case p.Match(">>="):
		return p.mk(ast.KindShrOp)
	case p.Match("&="):
		return p.mk(ast.KindAndOp)
	case p.Match("|="):
		return p.mk(ast.KindOrOp)
	case p.Match("^="):
		return p.mk(ast.KindXorOp)
	}
	return nil
}

// makeSetOp builds a Set node assigning to the variable named by a bare
// Get, evaluating val for the right-hand side. assignee must be a Get, or
// this is a fatal error.
func (p *Parser) makeSetOp(assignee *ast.Node, val func() *ast.Node) *ast.Node {
	if assignee.Kind != ast.KindGet {
		p.Fail("expected variable name in front of <set>= operator")
	}
	set := p.mk(ast.KindSet)
	set.Str = assignee.Str
	set.Var = assignee.Var
	set.B = val()
	return set
}

// parseUnar implements the postfix loop: call, index, field access,
// immediate-delegate declaration, plain ":=" / compound assignment, and
// the "~" cast operator.
func (p *Parser) parseUnar() *ast.Node {
	r := p.parseUnarHead()
	for {
		switch {
		case p.Match("("):
			call := p.mkAt(ast.KindCall, r)
			call.A = r
			for !p.Match(")") {
				call.List = append(call.List, p.parseExpression())
				if p.Match(")") {
					break
				}
				p.Expect(",")
			}
			r = call
		case p.Match("["):
			r = p.parseIndexPostfix(r)
		case p.Match("."):
			r = p.parseFieldPostfix(r)
		case p.Match(":="):
			cur := r
			r = p.makeSetOp(cur, func() *ast.Node { return p.parseExpression() })
		default:
			if op := p.matchSetOp(); op != nil {
				cur := r
				r = p.makeSetOp(cur, func() *ast.Node {
					op.A = cur
					op.B = p.parseExpression()
					return op
				})
			} else if p.Match("~") {
				r = fill2(p.mk(ast.KindCastOp), r, p.parseUnarHead())
			} else {
				return r
			}
		}
	}
}

// parseIndexPostfix handles "[" already matched: a GetAtIndex, optionally
// turned into a compound-assignment Block (hoisting base+indices into fresh
// locals so each is evaluated exactly once) or a plain SetAtIndex.
func (p *Parser) parseIndexPostfix(base *ast.Node) *ast.Node {
	gi := p.mkAt(ast.KindGetAtIndex, base)
	for {
		gi.List = append(gi.List, p.parseExpression())
		if !p.Match(",") {
			break
		}
	}
	p.Expect("]")

	if op := p.matchSetOp(); op != nil {
		block := p.mkAt(ast.KindBlock, gi)
		baseVar := &ast.Var{Initializer: base}
		indexedGet := p.mkAt(ast.KindGet, gi)
		indexedGet.Var = baseVar
		vars := []*ast.Var{baseVar}
		var indexGets []*ast.Node
		for _, idx := range gi.List {
			v := &ast.Var{Initializer: idx}
			vars = append(vars, v)
			ig := p.mkAt(ast.KindGet, idx)
			ig.Var = v
			indexGets = append(indexGets, ig)
		}
		si := p.mkAt(ast.KindSetAtIndex, gi)
		si.A = indexedGet
		si.List = indexGets
		gi.A = indexedGet
		gi.List = indexGets
		op.A = gi
		op.B = p.parseExpression()
		si.B = op
		block.Vars = vars
		block.List = []*ast.Node{si}
		return block
	}
	if p.Match(":=") {
		si := p.mkAt(ast.KindSetAtIndex, gi)
		si.List = gi.List
		si.A = base
		si.B = p.parseExpression()
		return si
	}
	gi.A = base
	return gi
}

// parseFieldPostfix handles "." already matched: immediate delegate
// (".&name"), field read/compound-assign/set/splice.
func (p *Parser) parseFieldPostfix(base *ast.Node) *ast.Node {
	if p.Match("&") {
		return p.parseImmediateDelegate(base)
	}
	fieldName := p.expectLongName("field name", nil)
	gf := p.mkAt(ast.KindGetField, base)
	gf.Str = fieldName.Name
	gf.VarModule = fieldName.Module

	if op := p.matchSetOp(); op != nil {
		block := p.mkAt(ast.KindBlock, gf)
		baseVar := &ast.Var{Initializer: base}
		fieldBase := p.mkAt(ast.KindGet, gf)
		fieldBase.Var = baseVar
		sf := p.mkAt(ast.KindSetField, gf)
		sf.Str = gf.Str
		sf.A = fieldBase
		gf.A = fieldBase
		op.A = gf
		op.B = p.parseExpression()
		sf.B = op
		block.Vars = []*ast.Var{baseVar}
		block.List = []*ast.Node{sf}
		return block
	}
	if p.Match(":=") {
		sf := p.mkAt(ast.KindSetField, gf)
		sf.Str = gf.Str
		sf.B = p.parseExpression()
		sf.A = base
		return sf
	}
	if p.Match("@=") {
		sf := p.mkAt(ast.KindSpliceField, gf)
		sf.Str = gf.Str
		sf.B = p.parseExpression()
		sf.A = base
		return sf
	}
	gf.A = base
	return gf
}

// parseImmediateDelegate handles ".&name<fn-def>" -- an inline function
// value bound to a receiver expression, registered under a parser-local,
// per-module-parse-unique name.
func (p *Parser) parseImmediateDelegate(base *ast.Node) *ast.Node {
	line, col := p.pos()
	d := &ast.Func{Kind: ast.FuncKindDelegate, Base: base, Line: line, Col: col}
	d.Name = p.ExpectID("delegate name")
	if _, dup := p.delegates[d.Name]; dup {
		p.Fail("duplicated delegate name, %s", d.Name)
	}
	p.delegates[d.Name] = d
	p.addThisParam(d, nil)
	p.parseFnDef(d)
	n := p.mkAt(ast.KindMkLambda, base)
	n.Func = d
	return n
}

// parseUnarHead parses the atoms of the expression grammar: parenthesized
// expressions/lambdas, prefix operators, literals, braced blocks, the
// `+`/`?` optional-value markers, `true`/`false`/`void`, `int(...)` /
// `double(...)` numeric conversions, `loop`, `_`, char/string literals, and
// bare identifiers -- the base case beneath parse_unar.
func (p *Parser) parseUnarHead() *ast.Node {
	if p.Match("(") {
		return p.parseParenOrLambda()
	}
	if p.Match("*") {
		return fill1(p.mk(ast.KindFreezeOp), p.parseUnar())
	}
	if p.Match("@") {
		return fill1(p.mk(ast.KindCopyOp), p.parseUnar())
	}
	if p.Match("&") {
		return fill1(p.mk(ast.KindMkWeakOp), p.parseUnar())
	}
	if p.Match("!") {
		return fill1(p.mk(ast.KindNotOp), p.parseUnar())
	}
	if p.Match("-") {
		return fill1(p.mk(ast.KindNegOp), p.parseUnar())
	}
	if p.Match("~") {
		op := p.mk(ast.KindXorOp)
		return fill2(op, p.parseUnar(), p.mkConstInt(-1))
	}
	if n, ok := p.MatchNumber(); ok {
		if n.IsFloat {
			return p.mkConstDouble(n.Float)
		}
		return p.mkConstInt(int64(n.Int))
	}
	if p.Match("{") {
		r := p.mk(ast.KindBlock)
		p.parseStatementSequence(&r.List)
		p.Expect("}")
		return r
	}
	matchedTrue := p.Match("+")
	if matchedTrue || p.Match("?") {
		r := p.mk(ast.KindIf)
		cond := p.mk(ast.KindConstBool)
		cond.Bool = matchedTrue
		r.A = cond
		r.B = p.parseUnar()
		return r
	}
	matchedTrue = p.Match("true")
	if matchedTrue || p.Match("false") {
		r := p.mk(ast.KindConstBool)
		r.Bool = matchedTrue
		return r
	}
	if p.Match("void") {
		return p.mk(ast.KindConstVoid)
	}
	if p.Match("int") {
		return fill1(p.mk(ast.KindToIntOp), p.parseExpressionInParens())
	}
	if p.Match("double") {
		return fill1(p.mk(ast.KindToFloatOp), p.parseExpressionInParens())
	}
	if p.Match("loop") {
		return fill1(p.mk(ast.KindLoop), p.parseUnar())
	}
	if p.Match("_") {
		r := p.mk(ast.KindGet)
		r.Str = "_"
		return r
	}
	if c, ok := p.MatchCharLiteral(); ok {
		r := p.mk(ast.KindConstInt64)
		r.Int = int64(c)
		return r
	}
	if s, ok := p.MatchStringLiteral(); ok {
		r := p.mk(ast.KindConstString)
		r.Str = s
		return r
	}
	if p.IsIDHeadNow() {
		return p.mkGet("name")
	}
	p.Fail("syntax error")
	return nil
}

// parseParenOrLambda handles "(" already matched: either a parenthesized
// expression, or a zero/multi-parameter lambda body in "{...}" -- this
// merges grouping and lambda syntax into one production.
func (p *Parser) parseParenOrLambda() *ast.Node {
	n := p.mk(ast.KindMkLambda)
	line, col := p.pos()
	lambda := &ast.Func{Kind: ast.FuncKindFunction, Line: line, Col: col}
	var startExpr *ast.Node
	if !p.Match(")") {
		startExpr = p.parseExpression()
		for !p.Match(")") {
			p.Expect(",")
			lambda.Names = append(lambda.Names, &ast.Var{Name: p.ExpectID("parameter")})
		}
	}
	if p.Match("{") {
		if startExpr != nil {
			if startExpr.Kind != ast.KindGet {
				p.Fail("lambda definition requires parameter name")
			}
			lambda.Names = append([]*ast.Var{{Name: startExpr.Str}}, lambda.Names...)
		}
		p.parseStatementSequence(&lambda.Body)
		p.Expect("}")
		n.Func = lambda
		return n
	}
	if len(lambda.Names) == 0 && startExpr != nil {
		return startExpr
	}
	p.Fail("expected single expression in parentesis or lambda {body}")
	return nil
}

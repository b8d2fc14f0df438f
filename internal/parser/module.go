package parser

import (
	"strings"

	"github.com/rill-lang/rill/internal/ast"
	"github.com/rill-lang/rill/internal/errors"
	"github.com/rill-lang/rill/internal/lexer"
)

// Parse parses startModule and every module it (transitively) imports via
// `using`, registering each in reg, and returns the starting module.
// Reachable from pkg/rill with builtins already seeded
// into reg so `using sys` resolves without touching the TextProvider.
func Parse(reg *ast.Registry, startModuleName string, provide TextProvider) (*ast.Module, error) {
	var result *ast.Module
	err := func() (err error) {
		defer errors.Recover(&err)
		depPath := map[string]bool{}
		result = parseModule(reg, startModuleName, depPath, provide)
		if result.EntryPoint == nil || len(result.EntryPoint.Body) == 0 {
			errors.Fatal(startModuleName, 0, 0, "starting module has no entry point")
		}
		return nil
	}()
	return result, err
}

// parseModule parses one module, recursing into parseModule for each
// `using` clause before returning. depPath is shared by reference across
// the whole recursive tree so cycle detection sees the live call stack.
func parseModule(reg *ast.Registry, moduleName string, depPath map[string]bool, provide TextProvider) *ast.Module {
	if depPath[moduleName] {
		var names []string
		for m := range depPath {
			names = append(names, m)
		}
		errors.Fatal(moduleName, 0, 0, "circular dependency in modules: %s", strings.Join(names, " "))
	}
	if m, ok := reg.Modules[moduleName]; ok {
		return m
	}

	p := newParser(reg, depPath, provide)
	p.module = ast.NewModule(moduleName)
	if moduleName != "sys" {
		p.module.DirectImports["sys"] = reg.Modules["sys"]
	}
	reg.Modules[moduleName] = p.module
	if reg.StartingModule == nil {
		reg.StartingModule = p.module
	}
	depPath[moduleName] = true
	defer delete(depPath, moduleName)

	text, err := provide(moduleName)
	if err != nil {
		errors.Fatal(moduleName, 0, 0, "%s", err.Error())
	}
	p.Scanner = lexer.New(moduleName, text)

	p.parseUsingClauses(reg, depPath, provide)

	reg.ModulesInOrder = append(reg.ModulesInOrder, p.module)

	p.parseTopLevelDeclarations()

	line, col := p.pos()
	p.module.EntryPoint = &ast.Func{Kind: ast.FuncKindFunction, Line: line, Col: col}
	if !p.AtEOF() {
		p.parseStatementSequence(&p.module.EntryPoint.Body)
	}
	if !p.AtEOF() {
		p.Fail("unexpected statements")
	}

	return p.module
}

// parseUsingClauses parses the leading run of `using M;` and
// `using M { alias [= name]; ... }` clauses, recursively resolving each imported module before continuing.
func (p *Parser) parseUsingClauses(reg *ast.Registry, depPath map[string]bool, provide TextProvider) {
	for p.Match("using") {
		usingName := p.ExpectID("imported module")
		var used *ast.Module
		if usingName == "sys" {
			used = reg.Modules["sys"]
		} else {
			used = parseModule(reg, usingName, depPath, provide)
		}
		p.module.DirectImports[usingName] = used
		if p.Match("{") {
			for {
				myID := p.ExpectID("alias name")
				theirID := myID
				if p.Match("=") {
					theirID = p.ExpectID("name in package")
				}
				if fn, ok := used.Functions[theirID]; ok {
					p.module.Aliases[myID] = fn
				} else if cls, ok := used.Classes[theirID]; ok {
					p.module.Aliases[myID] = cls
				} else {
					p.Fail("unknown name %s in module %s", theirID, usingName)
				}
				p.Expect(";")
				if p.Match("}") {
					break
				}
			}
		} else {
			p.Expect(";")
		}
	}
}

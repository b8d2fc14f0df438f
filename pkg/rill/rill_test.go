package rill

import (
	"strings"
	"testing"

	"github.com/rill-lang/rill/internal/ast"
)

func TestParseEndToEndProgram(t *testing.T) {
	sources := map[string]string{
		"geometry": `
interface Shape {
  area() double;
}
class Circle {
  radius = 0;
  +Shape {
    area() double { 3.14 * radius * radius }
  }
}
fn makeCircle(double r) @Circle {
  Circle
}
`,
		"main": `
using geometry { mkCircle = makeCircle; }
c = mkCircle(2.0);
c.area()
`,
	}
	provide := func(name string) (string, error) {
		src, ok := sources[name]
		if !ok {
			return "", &notFoundError{name}
		}
		return src, nil
	}

	reg, err := Parse("main", provide)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	main := reg.Modules["main"]
	if main.EntryPoint == nil || len(main.EntryPoint.Body) == 0 {
		t.Fatal("expected a populated entry point")
	}
	if _, ok := main.Aliases["mkCircle"]; !ok {
		t.Fatal("expected mkCircle alias to resolve")
	}

	geometry := reg.Modules["geometry"]
	shape := geometry.Classes["Shape"]
	circle := geometry.Classes["Circle"]
	if shape == nil || circle == nil {
		t.Fatal("expected both Shape and Circle to be registered")
	}
	if _, ok := circle.Overloads[shape]; !ok {
		t.Fatal("expected Circle to conform to Shape")
	}

	sys := reg.Modules["sys"]
	if sys == nil {
		t.Fatal("expected sys to be implicitly registered")
	}
	if geometry.DirectImports["sys"] != sys {
		t.Fatal("expected geometry to implicitly import sys")
	}
}

func TestParseEndToEndDetectsFirstSyntaxError(t *testing.T) {
	sources := map[string]string{
		"main": `fn f( int) void { } 1`,
	}
	provide := func(name string) (string, error) { return sources[name], nil }

	_, err := Parse("main", provide)
	if err == nil {
		t.Fatal("expected a syntax error for a malformed parameter list")
	}
	if !strings.HasPrefix(err.Error(), "error ") {
		t.Fatalf("expected the mandated 'error <message> <module>:<line>:<col>' format, got %q", err.Error())
	}
}

func TestParseEndToEndWeakAndFrozenReferenceKinds(t *testing.T) {
	sources := map[string]string{
		"main": `
class Node {
  next = 0;
}
fn link(&Node a, *Node b) void { }
link(a, b)
`,
	}
	provide := func(name string) (string, error) { return sources[name], nil }

	reg, err := Parse("main", provide)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	fn := reg.Modules["main"].Functions["link"]
	if fn == nil || len(fn.Names) != 2 {
		t.Fatalf("got %+v", fn)
	}
	if fn.Names[0].Initializer.Kind != ast.KindMkWeakOp {
		t.Fatalf("expected a weak parameter type, got %+v", fn.Names[0].Initializer)
	}
	if fn.Names[1].Initializer.Kind != ast.KindFreezeOp {
		t.Fatalf("expected a frozen parameter type, got %+v", fn.Names[1].Initializer)
	}
}

type notFoundError struct{ name string }

func (e *notFoundError) Error() string { return "module not found: " + e.name }

package rill

import (
	"fmt"
	"sort"
	"strings"
	"testing"

	"github.com/gkampitakis/go-snaps/snaps"

	"github.com/rill-lang/rill/internal/ast"
)

// TestMain lets go-snaps prune obsolete snapshot entries after the full
// package test run, same wiring as the fixture suite this is grounded on.
func TestMain(m *testing.M) {
	v := m.Run()
	snaps.Clean(m)
	_ = v
}

func TestParseModuleShapeSnapshots(t *testing.T) {
	sources := map[string]string{
		"shapes": `
interface Shape {
  area() double;
}
class Rectangle {
  width = 0;
  height = 0;
  +Shape {
    area() double { width * height }
  }
}
class Square {
  side = 0;
  +Shape {
    area() double { side * side }
  }
}
fn perimeter(double w, double h) double { 2.0 * (w + h) }
test fn areaIsNonNegative() void { }
perimeter(1.0, 2.0)
`,
	}
	provide := func(name string) (string, error) { return sources[name], nil }

	reg, err := Parse("shapes", provide)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	snaps.MatchSnapshot(t, dumpModuleShape(reg.Modules["shapes"]))
}

// dumpModuleShape renders a module's declaration shape deterministically
// (sorted by name) so the output is stable across the map-ordering
// nondeterminism Go gives every run.
func dumpModuleShape(m *ast.Module) string {
	var b strings.Builder
	fmt.Fprintf(&b, "module %s\n", m.Name)

	classNames := make([]string, 0, len(m.Classes))
	for name := range m.Classes {
		classNames = append(classNames, name)
	}
	sort.Strings(classNames)
	for _, name := range classNames {
		cls := m.Classes[name]
		kind := "class"
		if cls.IsInterface {
			kind = "interface"
		}
		methodNames := make([]string, 0, len(cls.NewMethods))
		for _, meth := range cls.NewMethods {
			methodNames = append(methodNames, meth.Name)
		}
		sort.Strings(methodNames)
		fmt.Fprintf(&b, "  %s %s fields=%d methods=%v\n", kind, name, len(cls.Fields), methodNames)
	}

	fnNames := make([]string, 0, len(m.Functions))
	for name := range m.Functions {
		fnNames = append(fnNames, name)
	}
	sort.Strings(fnNames)
	for _, name := range fnNames {
		fmt.Fprintf(&b, "  fn %s\n", name)
	}

	testNames := make([]string, 0, len(m.Tests))
	for name := range m.Tests {
		testNames = append(testNames, name)
	}
	sort.Strings(testNames)
	for _, name := range testNames {
		fmt.Fprintf(&b, "  test %s\n", name)
	}

	return b.String()
}

package builtins

import (
	"testing"

	"github.com/rill-lang/rill/internal/ast"
)

func TestRegisterIsIdempotent(t *testing.T) {
	reg := ast.NewRegistry()
	first := Register(reg)
	second := Register(reg)
	if first != second {
		t.Fatal("Register must return the same *Module on a second call")
	}
	if len(reg.Modules) != 1 {
		t.Fatalf("expected exactly one module registered, got %d", len(reg.Modules))
	}
}

func TestRegisterBuiltinClassShapes(t *testing.T) {
	reg := ast.NewRegistry()
	sys := Register(reg)

	for _, name := range []string{"Object", "Container", "Blob", "StrBuilder", "Array", "WeakArray", "String", "Thread"} {
		cls, ok := sys.Classes[name]
		if !ok {
			t.Fatalf("expected builtin class %s to be registered", name)
		}
		if cls.Line == 0 {
			t.Fatalf("builtin class %s must be marked as defined (Line != 0)", name)
		}
	}

	array := sys.Classes["Array"]
	if len(array.Params) != 1 || array.Params[0].Name != "T" {
		t.Fatalf("Array should carry one type parameter named T, got %+v", array.Params)
	}
	if _, ok := array.Overloads[sys.Classes["Container"]]; !ok {
		t.Fatal("Array should conform to Container")
	}

	blob := sys.Classes["Blob"]
	if _, ok := blob.Overloads[sys.Classes["Container"]]; !ok {
		t.Fatal("Blob should conform to Container")
	}
}

func TestRegisterFreeFunctions(t *testing.T) {
	sys := Register(ast.NewRegistry())
	for _, name := range []string{"getParent", "log", "terminate", "setMainObject", "postTimer"} {
		if _, ok := sys.Functions[name]; !ok {
			t.Fatalf("expected free function %s to be registered", name)
		}
	}
}

func TestThreadStartIsFactory(t *testing.T) {
	sys := Register(ast.NewRegistry())
	thread := sys.Classes["Thread"]
	var start *ast.Func
	for _, m := range thread.NewMethods {
		if m.Name == "start" {
			start = m
		}
	}
	if start == nil {
		t.Fatal("expected Thread.start to be registered")
	}
	if !start.IsFactory {
		t.Fatal("Thread.start should be a factory method")
	}
	if start.TypeExpression == nil || start.TypeExpression.Kind != ast.KindGet {
		t.Fatalf("a factory method's type expression should be a Get(this) marker, got %+v", start.TypeExpression)
	}
}

func TestPlatformExportsCoverClassLifecycleHooks(t *testing.T) {
	Register(ast.NewRegistry())
	for _, suffix := range []string{"copy_sys_Array", "dtor_sys_Array", "visit_sys_Array"} {
		if _, ok := PlatformExports["ag_"+suffix]; !ok {
			t.Fatalf("expected platform export ag_%s", suffix)
		}
	}
}

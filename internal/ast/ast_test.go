package ast

import (
	"testing"

	"github.com/rill-lang/rill/internal/lexer"
)

func TestKindStringKnownAndUnknown(t *testing.T) {
	if got := KindAddOp.String(); got != "AddOp" {
		t.Fatalf("got %q", got)
	}
	if got := Kind(255).String(); got != "Unknown" {
		t.Fatalf("got %q", got)
	}
}

func TestFill1SetsOperand(t *testing.T) {
	op := &Node{Kind: KindNotOp}
	operand := &Node{Kind: KindConstBool}
	got := Fill1(op, operand)
	if got != op || got.A != operand {
		t.Fatalf("Fill1 did not wire the operand correctly")
	}
}

func TestFill2SetsBothOperands(t *testing.T) {
	op := &Node{Kind: KindAddOp}
	left := &Node{Kind: KindConstInt64, Int: 1}
	right := &Node{Kind: KindConstInt64, Int: 2}
	got := Fill2(op, left, right)
	if got.A != left || got.B != right {
		t.Fatalf("Fill2 did not wire both operands correctly")
	}
}

func TestNewStampsPositionAndModule(t *testing.T) {
	m := NewModule("main")
	pos := lexer.Position{Line: 3, Col: 7}
	n := New(m, pos, KindConstVoid)
	if n.Module != m || n.Line != 3 || n.Col != 7 || n.Kind != KindConstVoid {
		t.Fatalf("got %+v", n)
	}
	got := n.Pos()
	if got != pos {
		t.Fatalf("Pos() round-trip mismatch: got %+v want %+v", got, pos)
	}
}

func TestModuleGetClassArenaReuseAndForwardReference(t *testing.T) {
	m := NewModule("main")
	first := m.GetClass("Foo")
	if first.Line != 0 {
		t.Fatalf("a freshly created class placeholder must have Line == 0, got %d", first.Line)
	}
	second := m.GetClass("Foo")
	if first != second {
		t.Fatal("GetClass must return the same *Class on repeated lookups (reopening)")
	}
}

func TestClassFindParam(t *testing.T) {
	c := &Class{Name: "Array", Params: []*ClassParam{{Name: "T"}}}
	if c.FindParam("T") == nil {
		t.Fatal("expected to find type parameter T")
	}
	if c.FindParam("U") != nil {
		t.Fatal("expected no match for an undeclared type parameter")
	}
}

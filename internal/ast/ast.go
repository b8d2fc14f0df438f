// Package ast defines the Abstract Syntax Tree produced by the Rill parser.
//
// A class-hierarchy-based AST would normally downcast through interfaces
// of action nodes. Here the node family is closed: a single Kind enum and
// a single Node struct carry every variant, so code that consumes the tree
// can switch over Kind exhaustively instead of type-asserting through an
// open interface hierarchy.
package ast

import "github.com/rill-lang/rill/internal/lexer"

// Kind discriminates the payload carried by a Node.
type Kind uint8

const (
	KindInvalid Kind = iota

	// literals and references
	KindConstInt64
	KindConstDouble
	KindConstBool
	KindConstVoid
	KindConstString
	KindGet
	KindSet
	KindGetField
	KindSetField
	KindSpliceField
	KindGetAtIndex
	KindSetAtIndex
	KindCall
	KindBlock

	// control flow
	KindIf
	KindElse
	KindLAnd
	KindLOr
	KindLoop

	// construction and reference-kind conversions
	KindMkLambda
	KindMkInstance
	KindMkWeakOp
	KindFreezeOp
	KindConformOp
	KindRefOp
	KindCopyOp
	KindCastOp
	KindToIntOp
	KindToFloatOp
	KindNotOp
	KindNegOp

	// binary arithmetic / bitwise / comparison
	KindAddOp
	KindSubOp
	KindMulOp
	KindDivOp
	KindModOp
	KindShlOp
	KindShrOp
	KindAndOp
	KindOrOp
	KindXorOp
	KindEqOp
	KindLtOp

	// function-type / immediate-delegate payload marker (used only inside parse_type)
	KindFuncType
)

var kindNames = map[Kind]string{
	KindInvalid:     "Invalid",
	KindConstInt64:  "ConstInt64",
	KindConstDouble: "ConstDouble",
	KindConstBool:   "ConstBool",
	KindConstVoid:   "ConstVoid",
	KindConstString: "ConstString",
	KindGet:         "Get",
	KindSet:         "Set",
	KindGetField:    "GetField",
	KindSetField:    "SetField",
	KindSpliceField: "SpliceField",
	KindGetAtIndex:  "GetAtIndex",
	KindSetAtIndex:  "SetAtIndex",
	KindCall:        "Call",
	KindBlock:       "Block",
	KindIf:          "If",
	KindElse:        "Else",
	KindLAnd:        "LAnd",
	KindLOr:         "LOr",
	KindLoop:        "Loop",
	KindMkLambda:    "MkLambda",
	KindMkInstance:  "MkInstance",
	KindMkWeakOp:    "MkWeakOp",
	KindFreezeOp:    "FreezeOp",
	KindConformOp:   "ConformOp",
	KindRefOp:       "RefOp",
	KindCopyOp:      "CopyOp",
	KindCastOp:      "CastOp",
	KindToIntOp:     "ToIntOp",
	KindToFloatOp:   "ToFloatOp",
	KindNotOp:       "NotOp",
	KindNegOp:       "NegOp",
	KindAddOp:       "AddOp",
	KindSubOp:       "SubOp",
	KindMulOp:       "MulOp",
	KindDivOp:       "DivOp",
	KindModOp:       "ModOp",
	KindShlOp:       "ShlOp",
	KindShrOp:       "ShrOp",
	KindAndOp:       "AndOp",
	KindOrOp:        "OrOp",
	KindXorOp:       "XorOp",
	KindEqOp:        "EqOp",
	KindLtOp:        "LtOp",
	KindFuncType:    "FuncType",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return "Unknown"
}

// Node is the single, closed tagged-sum tree node for every expression and
// statement production in the Action-node family.
type Node struct {
	Kind   Kind
	Module *Module
	Line   int
	Col    int

	Str   string  // identifier / field name / var name / decoded string-literal text
	Int   int64   // integer constant
	Float float64 // double constant
	Bool  bool    // ConstBool value

	A, B *Node // operand slots: unary ops use A; binary ops / If / Else use A,B
	List []*Node

	Class     *Class
	Param     *ClassParam // set instead of Class when an MkInstance binds to a class type parameter
	Func      *Func
	Var       *Var   // Get/Set: the resolved binding (set by the parser for synthesized locals and `this`, otherwise nil until a later pass fills it in)
	Vars      []*Var // Block: locals declared by this block, in scope for its List
	VarModule *Module // cross-module qualifier, set when a LongName carried a module prefix
}

// Pos reports the (line, column) at which this node's first token began,
// satisfying the "location is first-token-of-node" invariant.
func (n *Node) Pos() lexer.Position { return lexer.Position{Line: n.Line, Col: n.Col} }

// at stamps a freshly-created node with module + position, mirroring the
// "make<T>()" constructor-and-fill factory style.
func at(module *Module, pos lexer.Position, kind Kind) *Node {
	return &Node{Kind: kind, Module: module, Line: pos.Line, Col: pos.Col}
}

// New creates a Node of the given kind positioned at pos within module.
func New(module *Module, pos lexer.Position, kind Kind) *Node { return at(module, pos, kind) }

// Fill1 sets the single operand slot of a unary node and returns it.
func Fill1(op *Node, operand *Node) *Node {
	op.A = operand
	return op
}

// Fill2 sets both operand slots of a binary node and returns it.
func Fill2(op *Node, left, right *Node) *Node {
	op.A = left
	op.B = right
	return op
}

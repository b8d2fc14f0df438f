package ast

// Var is a named binding: a function/method/delegate parameter, a local
// introduced by an assignment-as-declaration statement, or a module-level
// constant (IsConst true).
type Var struct {
	Name        string
	Initializer *Node
	IsConst     bool
}

// Mutability levels for methods. The marker-to-sign
// mapping is fixed by the language and must not be renumbered: "*" => -1,
// "-" => 0, no marker => 1.
type Mut int

const (
	MutMutating Mut = -1
	MutAny      Mut = 0
	MutImmutable Mut = 1
)

// FuncKind distinguishes the three declaration shapes that share one
// <fn-def> grammar production: free functions, methods
// (including factories), and expression-site immediate delegates.
type FuncKind uint8

const (
	FuncKindFunction FuncKind = iota
	FuncKindMethod
	FuncKindDelegate
)

// Func is the unified declaration node for Function, Method, and
// ImmediateDelegate into one struct. Fields not meaningful to a given
// FuncKind are left zero.
type Func struct {
	Kind FuncKind

	Name       string
	BaseModule *Module // LongName module qualifier on an override's name, if any

	Names          []*Var // parameters in source order; index 0 is synthetic `this` for methods/delegates
	TypeExpression *Node  // return type, or a Get("this") marker for factories
	Body           []*Node

	IsFactory  bool
	IsPlatform bool
	IsTest     bool

	Mut Mut // method-only

	Base *Node // delegate-only: the receiver expression .&name was applied to

	Line, Col int
}

// ClassParam is one entry in a class's type-parameter list.
// Both variance flags true means invariant; exactly one false means
// covariant (IsIn false) or contravariant (IsOut false).
type ClassParam struct {
	Name  string
	Base  *Class
	IsIn  bool
	IsOut bool
}

// Field is a plain data member introduced with `name = expr;`.
type Field struct {
	Name        string
	Initializer *Node
}

// Class represents both classes and interfaces; IsInterface discriminates.
// Classes may be "reopened": the same entity, looked up by name, gains more
// members on each subsequent declaration. Line stays 0 until the first
// defining occurrence fills it in.
type Class struct {
	Name   string
	Params []*ClassParam

	Fields     []*Field
	NewMethods []*Func
	Overloads  map[*Class][]*Func // base class -> override methods

	IsInterface bool
	IsTest      bool

	Line, Col int
}

// FindParam returns the class's own type parameter named name, or nil.
func (c *Class) FindParam(name string) *ClassParam {
	for _, p := range c.Params {
		if p.Name == name {
			return p
		}
	}
	return nil
}

// Module is one compiled unit: a name, the modules it imports, the aliases
// it pulls in from them, and its own declarations.
type Module struct {
	Name string

	DirectImports map[string]*Module
	Aliases       map[string]any // *Class or *Func, bound by a `using M { alias = name; }` clause

	Classes   map[string]*Class
	Functions map[string]*Func
	Tests     map[string]*Func
	Constants map[string]*Var

	EntryPoint *Func
}

// NewModule creates an empty module ready for the parser to fill in.
func NewModule(name string) *Module {
	return &Module{
		Name:          name,
		DirectImports: map[string]*Module{},
		Aliases:       map[string]any{},
		Classes:       map[string]*Class{},
		Functions:     map[string]*Func{},
		Tests:         map[string]*Func{},
		Constants:     map[string]*Var{},
	}
}

// GetClass returns the module's class entity named name, creating an empty
// (line==0, "not yet defined") placeholder if this is the first mention --
// the arena-by-name behavior needed to support both forward
// references and reopening.
func (m *Module) GetClass(name string) *Class {
	if c, ok := m.Classes[name]; ok {
		return c
	}
	c := &Class{Name: name, Overloads: map[*Class][]*Func{}}
	m.Classes[name] = c
	return c
}

// Registry is the process-global AST: every module that has been parsed,
// in completion (post-order) order, plus the module the top-level parse
// started from.
type Registry struct {
	Modules        map[string]*Module
	ModulesInOrder []*Module
	StartingModule *Module
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{Modules: map[string]*Module{}}
}

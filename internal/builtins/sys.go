// Package builtins populates the "sys" module with the runtime-symbol set:
// the built-in classes every Rill program implicitly imports, their
// intrinsic methods, a handful of free functions, and the platform export
// table the code generator consults later. The parser itself never reads
// any of this; it only needs the "sys" module to already exist in the
// registry before the first `using sys` is processed.
//
// Native function-pointer registration is represented here as a Go
// opaque-placeholder table instead.
package builtins

import "github.com/rill-lang/rill/internal/ast"

// PlatformFunc stands in for a native function pointer. The parser and the
// rest of this package treat it as opaque; only a future code generator /
// FFI layer would give it a real signature.
type PlatformFunc func()

// Register builds the "sys" module inside reg, if it isn't already there,
// and returns it. Calling Register twice on the same registry is a no-op
// the second time: the module is checked for prior existence before any
// class or function gets added.
func Register(reg *ast.Registry) *ast.Module {
	if m, ok := reg.Modules["sys"]; ok {
		return m
	}

	sys := ast.NewModule("sys")
	reg.Modules["sys"] = sys
	reg.ModulesInOrder = append(reg.ModulesInOrder, sys)

	object := mkClass(sys, "Object")

	container := mkClass(sys, "Container",
		field("_size"), field("_data"))
	method(container, ast.MutAny, "capacity", retInt())
	method(container, ast.MutMutating, "insertItems", retVoid(), paramInt(), paramInt())
	method(container, ast.MutMutating, "moveItems", retBool(), paramInt(), paramInt(), paramInt())

	blob := mkClass(sys, "Blob")
	conformTo(blob, container)
	method(blob, ast.MutAny, "get8At", retInt(), paramInt())
	method(blob, ast.MutMutating, "set8At", retVoid(), paramInt(), paramInt())
	method(blob, ast.MutAny, "get16At", retInt(), paramInt())
	method(blob, ast.MutMutating, "set16At", retVoid(), paramInt(), paramInt())
	method(blob, ast.MutAny, "get32At", retInt(), paramInt())
	method(blob, ast.MutMutating, "set32At", retVoid(), paramInt(), paramInt())
	method(blob, ast.MutAny, "get64At", retInt(), paramInt())
	method(blob, ast.MutMutating, "set64At", retVoid(), paramInt(), paramInt())
	method(blob, ast.MutMutating, "deleteBytes", retVoid(), paramInt(), paramInt())
	method(blob, ast.MutMutating, "copyBytesTo", retBool(), paramInt(), paramConform(blob), paramInt(), paramInt())
	method(blob, ast.MutMutating, "putChAt", retInt(), paramInt(), paramInt())

	strBuilder := mkClass(sys, "StrBuilder")
	conformTo(strBuilder, blob)

	ownArray := mkClass(sys, "Array")
	conformTo(ownArray, container)
	arrayParam := addClassParam(ownArray, "T", object)
	method(ownArray, ast.MutAny, "getAt", retRefTo(arrayParam), paramInt())
	method(ownArray, ast.MutMutating, "setAt", retRefTo(arrayParam), paramInt(), paramOwn(arrayParam))
	method(ownArray, ast.MutMutating, "setOptAt", retVoid(), paramInt(), paramOwn(arrayParam))
	method(ownArray, ast.MutMutating, "delete", retVoid(), paramInt(), paramInt())
	method(ownArray, ast.MutMutating, "spliceAt", retBool(), paramInt(), paramRefTo(arrayParam))

	weakArray := mkClass(sys, "WeakArray")
	conformTo(weakArray, container)
	weakParam := addClassParam(weakArray, "T", object)
	method(weakArray, ast.MutAny, "getAt", retWeakToParam(weakParam), paramInt())
	method(weakArray, ast.MutMutating, "setAt", retVoid(), paramInt(), paramWeak(weakParam))
	method(weakArray, ast.MutMutating, "delete", retVoid(), paramInt(), paramInt())

	str := mkClass(sys, "String", field("_cursor"), field("_buffer"))
	method(str, ast.MutMutating, "fromBlob", retBool(), paramConform(blob), paramInt(), paramInt())
	method(str, ast.MutMutating, "getCh", retInt())

	freeFn(sys, "getParent", retOptRefTo(object), paramConform(object))
	freeFn(sys, "log", retVoid(), paramConform(str))
	freeFn(sys, "terminate", retVoid(), paramInt())
	freeFn(sys, "setMainObject", retVoid(), paramOptRefTo(object))
	freeFn(sys, "postTimer", retVoid(), paramInt(), paramVoid())

	thread := mkClass(sys, "Thread", field("_internal"))
	start := method(thread, ast.MutMutating, "start", nil,
		&ast.Var{Initializer: &ast.Node{Kind: ast.KindRefOp, A: &ast.Node{Kind: ast.KindMkInstance, Class: object}}})
	start.IsFactory = true
	getThis := &ast.Node{Kind: ast.KindGet, Var: start.Names[0]}
	start.TypeExpression = getThis
	method(thread, ast.MutMutating, "root", retWeakTo(object))

	registerPlatformExports(sys)

	return sys
}

// PlatformExports is the string-indexed map of platform-exported symbol
// names to native function pointers. Keyed by the "ag_" prefixed export
// name a code generator would emit a call to, with every runtime entry
// point replaced by an opaque placeholder.
var PlatformExports = map[string]PlatformFunc{}

func registerPlatformExports(*ast.Module) {
	names := []string{
		"ag_init", "ag_copy", "ag_copy_object_field", "ag_copy_weak_field",
		"ag_allocate_obj", "ag_mk_weak", "ag_deref_weak", "ag_reg_copy_fixer",
		"ag_retain_own", "ag_retain_shared", "ag_retain_weak",
		"ag_release_own", "ag_release_shared", "ag_release_pin", "ag_release_weak",
		"ag_dispose_obj", "ag_set_parent", "ag_splice", "ag_freeze",
		"ag_unlock_thread_queue", "ag_get_thread_param", "ag_prepare_post_message",
		"ag_put_thread_param", "ag_put_thread_param_weak_ptr", "ag_put_thread_param_own_ptr",
		"ag_finalize_post_message", "ag_handle_main_thread",
	}
	for _, cls := range []string{"Container", "Blob", "Array", "WeakArray", "String", "Thread"} {
		names = append(names,
			"ag_copy_sys_"+cls, "ag_dtor_sys_"+cls, "ag_visit_sys_"+cls)
	}
	for _, name := range names {
		if _, ok := PlatformExports[name]; !ok {
			PlatformExports[name] = func() {}
		}
	}
}

// --- small builders kept local to this file; they exist only to keep the
// registration table above readable. ---

func mkClass(m *ast.Module, name string, fields ...*ast.Field) *ast.Class {
	c := m.GetClass(name)
	c.Line = 1
	c.Fields = append(c.Fields, fields...)
	return c
}

func field(name string) *ast.Field {
	return &ast.Field{Name: name, Initializer: &ast.Node{Kind: ast.KindConstInt64}}
}

func conformTo(c, base *ast.Class) {
	if c.Overloads == nil {
		c.Overloads = map[*ast.Class][]*ast.Func{}
	}
	if _, ok := c.Overloads[base]; !ok {
		c.Overloads[base] = nil
	}
}

func addClassParam(c *ast.Class, name string, base *ast.Class) *ast.ClassParam {
	p := &ast.ClassParam{Name: name, Base: base, IsIn: true, IsOut: true}
	c.Params = append(c.Params, p)
	return p
}

func method(c *ast.Class, mut ast.Mut, name string, ret *ast.Node, params ...*ast.Var) *ast.Func {
	this := &ast.Var{Name: "this", Initializer: &ast.Node{Kind: ast.KindMkInstance, Class: c}}
	f := &ast.Func{
		Kind:           ast.FuncKindMethod,
		Name:           name,
		Mut:            mut,
		Names:          append([]*ast.Var{this}, params...),
		TypeExpression: ret,
		Line:           1,
	}
	c.NewMethods = append(c.NewMethods, f)
	return f
}

func freeFn(m *ast.Module, name string, ret *ast.Node, params ...*ast.Var) *ast.Func {
	f := &ast.Func{Kind: ast.FuncKindFunction, Name: name, Names: params, TypeExpression: ret, Line: 1}
	m.Functions[name] = f
	return f
}

func retInt() *ast.Node  { return &ast.Node{Kind: ast.KindConstInt64} }
func retVoid() *ast.Node { return &ast.Node{Kind: ast.KindConstVoid} }
func retBool() *ast.Node { return &ast.Node{Kind: ast.KindConstBool} }

func paramVoid() *ast.Var { return &ast.Var{Initializer: &ast.Node{Kind: ast.KindConstVoid}} }
func paramInt() *ast.Var  { return &ast.Var{Initializer: &ast.Node{Kind: ast.KindConstInt64}} }

func paramConform(c *ast.Class) *ast.Var {
	return &ast.Var{Initializer: &ast.Node{Kind: ast.KindConformOp, A: &ast.Node{Kind: ast.KindMkInstance, Class: c}}}
}

func instOf(p *ast.ClassParam) *ast.Node {
	return &ast.Node{Kind: ast.KindMkInstance, Param: p}
}

func paramOwn(p *ast.ClassParam) *ast.Var {
	return &ast.Var{Initializer: instOf(p)}
}

func paramWeak(p *ast.ClassParam) *ast.Var {
	return &ast.Var{Initializer: &ast.Node{Kind: ast.KindMkWeakOp, A: instOf(p)}}
}

func paramRefTo(p *ast.ClassParam) *ast.Var {
	return &ast.Var{Initializer: &ast.Node{Kind: ast.KindRefOp, A: instOf(p)}}
}

func paramOptRefTo(c *ast.Class) *ast.Var {
	ref := &ast.Node{Kind: ast.KindRefOp, A: &ast.Node{Kind: ast.KindMkInstance, Class: c}}
	return &ast.Var{Initializer: &ast.Node{Kind: ast.KindIf, A: &ast.Node{Kind: ast.KindConstBool}, B: ref}}
}

func retRefTo(p *ast.ClassParam) *ast.Node {
	return &ast.Node{Kind: ast.KindRefOp, A: instOf(p)}
}

func retWeakTo(c *ast.Class) *ast.Node {
	return &ast.Node{Kind: ast.KindMkWeakOp, A: &ast.Node{Kind: ast.KindMkInstance, Class: c}}
}

func retWeakToParam(p *ast.ClassParam) *ast.Node {
	return &ast.Node{Kind: ast.KindMkWeakOp, A: instOf(p)}
}

func retOptRefTo(c *ast.Class) *ast.Node {
	ref := &ast.Node{Kind: ast.KindRefOp, A: &ast.Node{Kind: ast.KindMkInstance, Class: c}}
	return &ast.Node{Kind: ast.KindIf, A: &ast.Node{Kind: ast.KindConstBool}, B: ref}
}

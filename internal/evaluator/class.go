package evaluator

import (
	"sync"

	"github.com/funvibe/slovo/internal/ast"
	"github.com/funvibe/slovo/internal/interner"
	"github.com/funvibe/slovo/internal/span"
)

// Visibility mirrors ast.Visibility at the value layer so class.go does not
// need to import ast everywhere a member is looked up.
type Visibility = ast.Visibility

const (
	Public  = ast.Public
	Private = ast.Private
)

// FieldSlot describes one declared field of a class (spec §3 FieldData):
// either an already-shared default Value, or a deferred initializer
// expression evaluated once per instance at creation time.
type FieldSlot struct {
	Name       interner.Symbol
	Visibility Visibility
	IsStatic   bool
	Default    ast.ExprID
	HasDefault bool
}

// MethodSlot describes one method (spec §3 MethodType). Exactly one of
// Body/Native is set: Body for a user method (evaluated against the
// defining module's AST), Native for a host-provided built-in method.
type MethodSlot struct {
	Name          interner.Symbol
	Params        []ast.Parameter
	ReturnType    ast.TypeID
	Body          ast.StmtID
	Native        NativeMethod
	Visibility    Visibility
	IsStatic      bool
	IsConstructor bool
}

// NativeMethod is the host-callable shape for built-in class methods (spec
// §4.I): this (if any) arrives as args[0], script-visible arguments follow.
type NativeMethod func(i *Interpreter, args []Value, callSpan span.Span) (Value, *Flow)

// ClassDefinition is shared (spec §3 Value::Class wraps a shared
// ClassDefinition); instances keep a pointer back to it.
type ClassDefinition struct {
	Name      interner.Symbol
	NameText  string
	Fields    []FieldSlot
	Methods   map[interner.Symbol]*MethodSlot
	ModuleID  interner.Symbol // module that owns this class's AST/arena
	Arena     *ast.Arena      // the arena Fields[i].Default / methods' Body live in
	IsBuiltin bool
}

func (*ClassDefinition) valueKind() {}

func NewClassDefinition(name interner.Symbol, nameText string, moduleID interner.Symbol, arena *ast.Arena) *ClassDefinition {
	return &ClassDefinition{
		Name:     name,
		NameText: nameText,
		Methods:  make(map[interner.Symbol]*MethodSlot),
		ModuleID: moduleID,
		Arena:    arena,
	}
}

func (c *ClassDefinition) Method(name interner.Symbol) (*MethodSlot, bool) {
	m, ok := c.Methods[name]
	return m, ok
}

func (c *ClassDefinition) Constructor() (*MethodSlot, bool) {
	for _, m := range c.Methods {
		if m.IsConstructor {
			return m, true
		}
	}
	return nil, false
}

// ClassInstance is the shared-mutable object a script manipulates through
// Value::Object (spec §3 ClassInstance).
type ClassInstance struct {
	mu          sync.Mutex
	ClassRef    *ClassDefinition
	FieldValues map[interner.Symbol]Value
}

func (*ClassInstance) valueKind() {}

func NewInstance(class *ClassDefinition) *ClassInstance {
	return &ClassInstance{ClassRef: class, FieldValues: make(map[interner.Symbol]Value)}
}

func (o *ClassInstance) GetField(name interner.Symbol) (Value, bool) {
	o.mu.Lock()
	defer o.mu.Unlock()
	v, ok := o.FieldValues[name]
	return v, ok
}

func (o *ClassInstance) SetField(name interner.Symbol, v Value) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.FieldValues[name] = v
}

// fieldSlot finds the declared field (for visibility checks), searching
// only this class — there is no field inheritance in the language.
func (c *ClassDefinition) fieldSlot(name interner.Symbol) (FieldSlot, bool) {
	for _, f := range c.Fields {
		if f.Name == name {
			return f, true
		}
	}
	return FieldSlot{}, false
}

// FunctionValue is a user-defined free function or a bare FunctionDefinition
// captured as Value::Function (spec §3/§4.F FunctionDefinition handling).
// Its closure is always the defining module's globals frame — lexical
// closure at module scope, not at the call site (spec §4.H).
type FunctionValue struct {
	Name       interner.Symbol
	Params     []ast.Parameter
	ReturnType ast.TypeID
	Body       ast.StmtID
	ModuleID   interner.Symbol
	Arena      *ast.Arena
}

func (*FunctionValue) valueKind() {}

// Builtin is a free host-provided callable (spec §4.I "free built-in
// function").
type Builtin struct {
	Name interner.Symbol
	Fn   func(i *Interpreter, args []Value, callSpan span.Span) (Value, *Flow)
}

func (*Builtin) valueKind() {}

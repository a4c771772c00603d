package evaluator

import (
	"github.com/funvibe/slovo/internal/ast"
	"github.com/funvibe/slovo/internal/diagnostics"
	"github.com/funvibe/slovo/internal/interner"
	"github.com/funvibe/slovo/internal/span"
)

// evalExpr evaluates one expression against env/mod, the currently active
// frame and the module owning the arena the expression's ID indexes into
// (spec §4.G).
func (i *Interpreter) evalExpr(id ast.ExprID, env *Environment, mod *ModuleRecord) (Value, *Flow) {
	node := mod.Program.Arena.Expression(id)
	switch e := node.Kind.(type) {
	case ast.LiteralExpr:
		return literalValue(e.Value), nil

	case ast.IdentifierExpr:
		if v, ok := env.Get(e.Name); ok {
			return v, nil
		}
		if b, ok := i.builtins[e.Name]; ok {
			return b, nil
		}
		return Empty{}, ErrorFlow(diagnostics.UndefinedVariable, node.Span, "undefined variable %q", mod.Program.Arena.Resolve(e.Name))

	case ast.BinaryExpr:
		return i.evalBinary(e, node.Span, env, mod)

	case ast.UnaryExpr:
		operand, flow := i.evalExpr(e.Operand, env, mod)
		if flow != nil {
			return nil, flow
		}
		switch e.Op {
		case ast.OpNeg:
			switch n := operand.(type) {
			case Number:
				return -n, nil
			case Float:
				return -n, nil
			}
			return nil, ErrorFlow(diagnostics.TypeError, node.Span, "unary '-' needs число/дробь, got %s", TypeName(operand))
		case ast.OpNot:
			return Boolean(!Truthy(operand)), nil
		}
		return nil, internalError(node.Span, "unknown unary operator")

	case ast.CallExpr:
		callee, flow := i.evalExpr(e.Function, env, mod)
		if flow != nil {
			return nil, flow
		}
		args, flow := i.evalArgs(e.Args, env, mod)
		if flow != nil {
			return nil, flow
		}
		return i.invoke(callee, args, node.Span)

	case ast.MethodCallExpr:
		return i.evalMethodCall(e, node.Span, env, mod)

	case ast.PropertyAccessExpr:
		return i.evalPropertyAccess(e, node.Span, env, mod)

	case ast.ObjectCreationExpr:
		return i.evalObjectCreation(e, node.Span, env, mod)

	case ast.IndexExpr:
		return i.evalIndex(e, node.Span, env, mod)

	case ast.InputExpr:
		return i.readLine(e.Prompt, env, mod)

	case ast.ThisExpr:
		this, ok := i.ctx.currentThis()
		if !ok {
			return nil, ErrorFlow(diagnostics.InvalidOperation, node.Span, "'это' used outside a method body")
		}
		return this, nil

	default:
		return nil, internalError(node.Span, "unhandled expression kind %T", e)
	}
}

func literalValue(lv ast.LiteralValue) Value {
	switch lv.Kind {
	case ast.LitInt:
		return Number(lv.Int)
	case ast.LitFloat:
		return Float(lv.Flt)
	case ast.LitText:
		return Text(lv.Str)
	case ast.LitBool:
		return Boolean(lv.Bool)
	}
	return Empty{}
}

func (i *Interpreter) evalArgs(ids []ast.ExprID, env *Environment, mod *ModuleRecord) ([]Value, *Flow) {
	out := make([]Value, 0, len(ids))
	for _, id := range ids {
		v, flow := i.evalExpr(id, env, mod)
		if flow != nil {
			return nil, flow
		}
		out = append(out, v)
	}
	return out, nil
}

// invoke calls a resolved callable value (spec §4.G Call, §4.H protocol).
func (i *Interpreter) invoke(callee Value, args []Value, callSpan span.Span) (Value, *Flow) {
	switch fn := callee.(type) {
	case *FunctionValue:
		return i.callFunction(fn, args, callSpan)
	case *Builtin:
		return fn.Fn(i, args, callSpan)
	default:
		return nil, ErrorFlow(diagnostics.InvalidOperation, callSpan, "value of type %s is not callable", TypeName(callee))
	}
}

func (i *Interpreter) evalMethodCall(e ast.MethodCallExpr, callSpan span.Span, env *Environment, mod *ModuleRecord) (Value, *Flow) {
	objVal, flow := i.evalExpr(e.Object, env, mod)
	if flow != nil {
		return nil, flow
	}
	args, flow := i.evalArgs(e.Args, env, mod)
	if flow != nil {
		return nil, flow
	}
	methodName := mod.Program.Arena.Resolve(e.Method)

	switch obj := objVal.(type) {
	case ModuleRef:
		target, ok := i.lookupModuleByName(obj.Name)
		if !ok {
			return nil, internalError(callSpan, "module no longer loaded")
		}
		fn, ok := target.Functions[e.Method]
		if !ok {
			return nil, ErrorFlow(diagnostics.UndefinedFunction, callSpan, "undefined function %q in module %q",
				target.Program.Arena.Resolve(e.Method), target.Program.Arena.Resolve(target.Name))
		}
		return i.callFunction(fn, args, callSpan)
	case *ClassInstance:
		slot, ok := obj.ClassRef.Method(e.Method)
		if !ok {
			return nil, ErrorFlow(diagnostics.UndefinedMethod, callSpan, "undefined method %q on class %s",
				methodName, obj.ClassRef.NameText)
		}
		if flow := i.checkMethodVisibility(obj.ClassRef, slot, callSpan); flow != nil {
			return nil, flow
		}
		return i.callMethod(obj.ClassRef, slot, obj, args, callSpan)
	case *List:
		return listMethod(obj, methodName, args, callSpan)
	case *Dict:
		return dictMethod(obj, methodName, args, callSpan)
	case *Array:
		return arrayMethod(obj, methodName, args, callSpan)
	case Text:
		return textMethod(obj, methodName, args, callSpan)
	default:
		return nil, ErrorFlow(diagnostics.TypeError, callSpan, "cannot call a method on a %s value", TypeName(objVal))
	}
}

func (i *Interpreter) evalPropertyAccess(e ast.PropertyAccessExpr, sp span.Span, env *Environment, mod *ModuleRecord) (Value, *Flow) {
	objVal, flow := i.evalExpr(e.Object, env, mod)
	if flow != nil {
		return nil, flow
	}
	switch obj := objVal.(type) {
	case *ClassInstance:
		if flow := i.checkFieldVisibility(obj, e.Property, sp); flow != nil {
			return nil, flow
		}
		if v, ok := obj.GetField(e.Property); ok {
			return v, nil
		}
		return Empty{}, nil
	case ModuleRef:
		target, ok := i.lookupModuleByName(obj.Name)
		if !ok {
			return nil, internalError(sp, "module no longer loaded")
		}
		if fn, ok := target.Functions[e.Property]; ok {
			return fn, nil
		}
		if v, ok := target.Globals.Get(e.Property); ok {
			return v, nil
		}
		return nil, ErrorFlow(diagnostics.UndefinedVariable, sp, "undefined name %q in module %q",
			target.Program.Arena.Resolve(e.Property), target.Program.Arena.Resolve(target.Name))
	default:
		return nil, ErrorFlow(diagnostics.TypeError, sp, "cannot access a property on a %s value", TypeName(objVal))
	}
}

func (i *Interpreter) evalIndex(e ast.IndexExpr, sp span.Span, env *Environment, mod *ModuleRecord) (Value, *Flow) {
	objVal, flow := i.evalExpr(e.Object, env, mod)
	if flow != nil {
		return nil, flow
	}
	idxVal, flow := i.evalExpr(e.Index, env, mod)
	if flow != nil {
		return nil, flow
	}
	switch obj := objVal.(type) {
	case *List:
		n, ok := idxVal.(Number)
		if !ok || n < 0 {
			return nil, ErrorFlow(diagnostics.InvalidOperation, sp, "list index must be a non-negative число")
		}
		v, ok := obj.Get(int(n))
		if !ok {
			return nil, ErrorFlow(diagnostics.InvalidOperation, sp, "list index %d out of bounds", n)
		}
		return v, nil
	case *Array:
		n, ok := idxVal.(Number)
		if !ok || n < 0 || int(n) >= len(obj.Items) {
			return nil, ErrorFlow(diagnostics.InvalidOperation, sp, "array index out of bounds")
		}
		return obj.Items[n], nil
	case *Dict:
		v, ok := obj.Get(DisplayText(idxVal))
		if !ok {
			return Empty{}, nil
		}
		return v, nil
	case Text:
		n, ok := idxVal.(Number)
		runes := []rune(string(obj))
		if !ok || n < 0 || int(n) >= len(runes) {
			return nil, ErrorFlow(diagnostics.InvalidOperation, sp, "text index out of bounds")
		}
		return Text(string(runes[n])), nil
	default:
		return nil, ErrorFlow(diagnostics.TypeError, sp, "cannot index a %s value", TypeName(objVal))
	}
}

func (i *Interpreter) evalObjectCreation(e ast.ObjectCreationExpr, sp span.Span, env *Environment, mod *ModuleRecord) (Value, *Flow) {
	// Список/Словарь/Массив are structural value kinds (spec §3 List/Dict/
	// Array), not ClassInstance-backed objects — list/dict literal desugaring
	// (parser.parseListLiteral/parseDictLiteral) constructs them directly
	// rather than through the generic class-instantiation path below.
	if !e.HasQualifier {
		name := mod.Program.Arena.Resolve(e.ClassName)
		switch name {
		case "Список":
			args, flow := i.evalArgs(e.Args, env, mod)
			if flow != nil {
				return nil, flow
			}
			return NewList(args), nil
		case "Массив":
			args, flow := i.evalArgs(e.Args, env, mod)
			if flow != nil {
				return nil, flow
			}
			return NewArray(args), nil
		case "Словарь":
			args, flow := i.evalArgs(e.Args, env, mod)
			if flow != nil {
				return nil, flow
			}
			if len(args)%2 != 0 {
				return nil, ErrorFlow(diagnostics.InvalidOperation, sp, "Словарь requires key/value pairs")
			}
			d := NewDict()
			for idx := 0; idx < len(args); idx += 2 {
				d.Set(DisplayText(args[idx]), args[idx+1])
			}
			return d, nil
		}
	}

	class, flow := i.resolveClass(e, sp, mod)
	if flow != nil {
		return nil, flow
	}
	args, flow := i.evalArgs(e.Args, env, mod)
	if flow != nil {
		return nil, flow
	}
	return i.instantiate(class, args, sp)
}

func (i *Interpreter) resolveClass(e ast.ObjectCreationExpr, sp span.Span, mod *ModuleRecord) (*ClassDefinition, *Flow) {
	if e.HasQualifier {
		target, ok := i.lookupModuleByName(e.ModuleQualifier)
		if !ok {
			return nil, ErrorFlow(diagnostics.UndefinedVariable, sp, "undefined module %q", mod.Program.Arena.Resolve(e.ModuleQualifier))
		}
		class, ok := target.Classes[e.ClassName]
		if !ok {
			return nil, ErrorFlow(diagnostics.UndefinedVariable, sp, "undefined class %q in module %q",
				target.Program.Arena.Resolve(e.ClassName), target.Program.Arena.Resolve(target.Name))
		}
		return class, nil
	}
	if class, ok := mod.Classes[e.ClassName]; ok {
		return class, nil
	}
	if class, ok := i.builtinClasses[e.ClassName]; ok {
		return class, nil
	}
	return nil, ErrorFlow(diagnostics.UndefinedVariable, sp, "undefined class %q", mod.Program.Arena.Resolve(e.ClassName))
}

// instantiate allocates a new instance with declared fields at their
// defaults and, if present, runs the constructor (spec §3 ClassInstance,
// §4.G ObjectCreation).
func (i *Interpreter) instantiate(class *ClassDefinition, args []Value, sp span.Span) (Value, *Flow) {
	inst := NewInstance(class)
	defModRec := i.byName[class.ModuleID]
	for _, f := range class.Fields {
		if f.IsStatic {
			continue
		}
		val := Value(Empty{})
		if f.HasDefault {
			env := NewEnvironment()
			if defModRec != nil {
				env = NewEnclosedEnvironment(defModRec.Globals)
			}
			v, flow := i.evalExpr(f.Default, env, homeOrSelf(defModRec, class))
			if flow != nil {
				return nil, flow
			}
			val = v
		}
		inst.SetField(f.Name, val)
	}
	if ctor, ok := class.Constructor(); ok {
		if _, flow := i.callMethod(class, ctor, inst, args, sp); flow != nil {
			return nil, flow
		}
	}
	return inst, nil
}

// homeOrSelf returns the ModuleRecord a class's field-default expressions
// should evaluate against; built-in classes have no record, so their
// defaults (if any) are evaluated with a throwaway record pointing at the
// class's own arena (built-ins never actually set HasDefault, but this
// keeps the path total rather than special-cased).
func homeOrSelf(rec *ModuleRecord, class *ClassDefinition) *ModuleRecord {
	if rec != nil {
		return rec
	}
	return &ModuleRecord{Name: class.ModuleID, Program: &ast.Program{Arena: class.Arena}}
}

func (i *Interpreter) checkFieldVisibility(obj *ClassInstance, field interner.Symbol, sp span.Span) *Flow {
	slot, ok := obj.ClassRef.fieldSlot(field)
	if !ok || slot.Visibility == Public {
		return nil
	}
	if i.ctx.internalTo(obj.ClassRef) {
		return nil
	}
	return ErrorFlow(diagnostics.InvalidOperation, sp, "field %q of class %s is private",
		obj.ClassRef.Arena.Resolve(field), obj.ClassRef.NameText)
}

func (i *Interpreter) checkMethodVisibility(class *ClassDefinition, slot *MethodSlot, sp span.Span) *Flow {
	if slot.Visibility == Public {
		return nil
	}
	if i.ctx.internalTo(class) {
		return nil
	}
	return ErrorFlow(diagnostics.InvalidOperation, sp, "method %q of class %s is private",
		class.Arena.Resolve(slot.Name), class.NameText)
}

// readLine implements the Input expression/statement: write the prompt,
// read one stdin line, return it as Text (spec §6, §9 open question 2).
func (i *Interpreter) readLine(promptID ast.ExprID, env *Environment, mod *ModuleRecord) (Value, *Flow) {
	prompt, flow := i.evalExpr(promptID, env, mod)
	if flow != nil {
		return nil, flow
	}
	_, _ = i.Out.Write([]byte(DisplayText(prompt)))
	line, err := i.In.ReadString('\n')
	if err != nil && line == "" {
		return Text(""), nil
	}
	for len(line) > 0 && (line[len(line)-1] == '\n' || line[len(line)-1] == '\r') {
		line = line[:len(line)-1]
	}
	return Text(line), nil
}

package evaluator

import (
	"github.com/funvibe/slovo/internal/ast"
	"github.com/funvibe/slovo/internal/diagnostics"
)

// execStatement runs one statement against env, the currently active
// lexical frame, resolving identifiers/classes/functions against mod, the
// module owning the arena the statement's IDs index into (spec §4.F).
func (i *Interpreter) execStatement(id ast.StmtID, env *Environment, mod *ModuleRecord) *Flow {
	node := mod.Program.Arena.Statement(id)
	switch s := node.Kind.(type) {
	case ast.ExpressionStmt:
		_, flow := i.evalExpr(s.Expr, env, mod)
		return flow

	case ast.LetStmt:
		val := Value(Empty{})
		if s.HasValue {
			v, flow := i.evalExpr(s.Value, env, mod)
			if flow != nil {
				return flow
			}
			val = v
		}
		env.Define(s.Name, val)
		return nil

	case ast.AssignStmt:
		val, flow := i.evalExpr(s.Value, env, mod)
		if flow != nil {
			return flow
		}
		if !env.Update(s.Name, val) {
			env.Define(s.Name, val)
		}
		return nil

	case ast.PropertyAssignStmt:
		objVal, flow := i.evalExpr(s.Object, env, mod)
		if flow != nil {
			return flow
		}
		obj, ok := objVal.(*ClassInstance)
		if !ok {
			return ErrorFlow(diagnostics.TypeError, node.Span, "cannot assign property on a %s value", TypeName(objVal))
		}
		val, flow := i.evalExpr(s.Value, env, mod)
		if flow != nil {
			return flow
		}
		if flow := i.checkFieldVisibility(obj, s.Property, node.Span); flow != nil {
			return flow
		}
		obj.SetField(s.Property, val)
		return nil

	case ast.IndexAssignStmt:
		objVal, flow := i.evalExpr(s.Object, env, mod)
		if flow != nil {
			return flow
		}
		idxVal, flow := i.evalExpr(s.Index, env, mod)
		if flow != nil {
			return flow
		}
		val, flow := i.evalExpr(s.Value, env, mod)
		if flow != nil {
			return flow
		}
		switch container := objVal.(type) {
		case *List:
			n, ok := idxVal.(Number)
			if !ok || n < 0 {
				return ErrorFlow(diagnostics.InvalidOperation, node.Span, "list index must be a non-negative number")
			}
			if !container.Set(int(n), val) {
				return ErrorFlow(diagnostics.InvalidOperation, node.Span, "list index %d out of bounds", n)
			}
		case *Dict:
			container.Set(DisplayText(idxVal), val)
		default:
			return ErrorFlow(diagnostics.TypeError, node.Span, "cannot index-assign a %s value", TypeName(objVal))
		}
		return nil

	case ast.IfStmt:
		cond, flow := i.evalExpr(s.Cond, env, mod)
		if flow != nil {
			return flow
		}
		if Truthy(cond) {
			return i.execStatement(s.Then, env, mod)
		}
		if s.HasElse {
			return i.execStatement(s.Else, env, mod)
		}
		return nil

	case ast.WhileStmt:
		for {
			cond, flow := i.evalExpr(s.Cond, env, mod)
			if flow != nil {
				return flow
			}
			if !Truthy(cond) {
				return nil
			}
			if flow := i.execStatement(s.Body, env, mod); flow != nil {
				return flow
			}
		}

	case ast.ForStmt:
		startVal, flow := i.evalExpr(s.Start, env, mod)
		if flow != nil {
			return flow
		}
		endVal, flow := i.evalExpr(s.End, env, mod)
		if flow != nil {
			return flow
		}
		start, ok1 := startVal.(Number)
		end, ok2 := endVal.(Number)
		if !ok1 || !ok2 {
			return ErrorFlow(diagnostics.TypeError, node.Span, "for-loop bounds must be число")
		}
		frame := NewEnclosedEnvironment(env)
		for n := start; n <= end; n++ {
			frame.Define(s.Var, n)
			if flow := i.execStatement(s.Body, frame, mod); flow != nil {
				return flow
			}
		}
		return nil

	case ast.BlockStmt:
		frame := NewEnclosedEnvironment(env)
		for _, stmtID := range s.Statements {
			if flow := i.execStatement(stmtID, frame, mod); flow != nil {
				return flow
			}
		}
		return nil

	case ast.ReturnStmt:
		val := Value(Empty{})
		if s.HasValue {
			v, flow := i.evalExpr(s.Value, env, mod)
			if flow != nil {
				return flow
			}
			val = v
		}
		return ReturnFlow(val)

	case ast.PrintStmt:
		val, flow := i.evalExpr(s.Value, env, mod)
		if flow != nil {
			return flow
		}
		_, _ = i.Out.Write([]byte(DisplayText(val) + "\n"))
		return nil

	case ast.InputStmt:
		_, flow := i.readLine(s.Prompt, env, mod)
		return flow

	case ast.FunctionDefinitionStmt:
		fn := &FunctionValue{
			Name: s.Name, Params: s.Params, ReturnType: s.ReturnType, Body: s.Body,
			ModuleID: mod.Name, Arena: mod.Program.Arena,
		}
		env.Define(s.Name, fn)
		return nil

	case ast.ClassDefinitionStmt:
		class := i.buildClass(s, mod)
		mod.Classes[s.Name] = class
		env.Define(s.Name, class)
		return nil

	default:
		return internalError(node.Span, "unhandled statement kind %T", s)
	}
}

// buildClass installs a parsed ClassDefinitionStmt into a runtime
// ClassDefinition (spec §4.F ClassDefinition handling, §4.J step 2).
func (i *Interpreter) buildClass(s ast.ClassDefinitionStmt, mod *ModuleRecord) *ClassDefinition {
	class := NewClassDefinition(s.Name, mod.Program.Arena.Resolve(s.Name), mod.Name, mod.Program.Arena)
	for _, f := range s.Fields {
		class.Fields = append(class.Fields, FieldSlot{
			Name: f.Name, Visibility: f.Visibility, IsStatic: f.IsStatic,
			Default: f.Default, HasDefault: f.HasDefault,
		})
	}
	for _, m := range s.Methods {
		class.Methods[m.Name] = &MethodSlot{
			Name: m.Name, Params: m.Params, ReturnType: m.ReturnType, Body: m.Body,
			Visibility: m.Visibility, IsStatic: m.IsStatic, IsConstructor: m.IsConstructor,
		}
	}
	return class
}

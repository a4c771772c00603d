package evaluator

import (
	"github.com/funvibe/slovo/internal/diagnostics"
	"github.com/funvibe/slovo/internal/span"
)

// callFunction runs a user function: a fresh frame parented at the
// function's own module's globals (lexical closure at module scope, not
// at the call site), arity-checked parameter binding, then the body with
// Return trapped (spec §4.H).
func (i *Interpreter) callFunction(fn *FunctionValue, args []Value, callSpan span.Span) (Value, *Flow) {
	if len(args) != len(fn.Params) {
		return nil, ErrorFlow(diagnostics.InvalidOperation, callSpan,
			"function %q expects %d argument(s), got %d", fn.Arena.Resolve(fn.Name), len(fn.Params), len(args))
	}
	homeMod, ok := i.byName[fn.ModuleID]
	if !ok {
		return nil, internalError(callSpan, "function %q has no loaded home module", fn.Arena.Resolve(fn.Name))
	}
	frame := NewEnclosedEnvironment(homeMod.Globals)
	for idx, p := range fn.Params {
		frame.Define(p.Name, args[idx])
	}

	i.ctx.push(callContext{moduleID: fn.ModuleID})
	defer i.ctx.pop()

	flow := i.execStatement(fn.Body, frame, homeMod)
	return unwindCall(flow)
}

// callMethod runs a method (user or native) with `this` bound, additionally
// pushing the owning class onto the context stack so visibility checks
// inside the body see "I am inside a method of this class" (spec §4.H,
// §9 design note).
func (i *Interpreter) callMethod(class *ClassDefinition, slot *MethodSlot, this *ClassInstance, args []Value, callSpan span.Span) (Value, *Flow) {
	if slot.Native != nil {
		i.ctx.push(callContext{moduleID: class.ModuleID, inClass: class, thisInstance: this})
		defer i.ctx.pop()
		nativeArgs := make([]Value, 0, len(args)+1)
		nativeArgs = append(nativeArgs, Value(this))
		nativeArgs = append(nativeArgs, args...)
		return slot.Native(i, nativeArgs, callSpan)
	}

	if len(args) != len(slot.Params) {
		return nil, ErrorFlow(diagnostics.InvalidOperation, callSpan,
			"method %q expects %d argument(s), got %d", class.Arena.Resolve(slot.Name), len(slot.Params), len(args))
	}
	homeMod, ok := i.byName[class.ModuleID]
	if !ok {
		return nil, internalError(callSpan, "class %s has no loaded home module", class.NameText)
	}
	frame := NewEnclosedEnvironment(homeMod.Globals)
	for idx, p := range slot.Params {
		frame.Define(p.Name, args[idx])
	}

	i.ctx.push(callContext{moduleID: class.ModuleID, inClass: class, thisInstance: this})
	defer i.ctx.pop()

	flow := i.execStatement(slot.Body, frame, homeMod)
	return unwindCall(flow)
}

// unwindCall implements the Return-trapping half of spec §4.H: a Return
// flow becomes its value; any other flow propagates; no flow means Empty.
func unwindCall(flow *Flow) (Value, *Flow) {
	if flow == nil {
		return Empty{}, nil
	}
	if flow.IsReturn {
		return flow.ReturnValue, nil
	}
	return nil, flow
}

package evaluator

import "github.com/funvibe/slovo/internal/interner"

// callContext is one frame of the dispatcher's context stack (spec §9
// design note: "maintain a small context stack {current_module,
// current_class_if_method}"). Pushed on every function/method call,
// popped on return — deliberately NOT derived from the call-site AST
// shape (`this.x` textually), since a method can pass `this` to a helper
// and the access must still be recognized as internal.
type callContext struct {
	moduleID    interner.Symbol
	inClass     *ClassDefinition // nil unless currently inside a method body
	thisInstance *ClassInstance  // nil unless currently inside a method body
}

// contextStack tracks the chain of calls currently in progress.
type contextStack struct {
	frames []callContext
}

func (s *contextStack) push(c callContext) { s.frames = append(s.frames, c) }

func (s *contextStack) pop() {
	if len(s.frames) > 0 {
		s.frames = s.frames[:len(s.frames)-1]
	}
}

func (s *contextStack) top() (callContext, bool) {
	if len(s.frames) == 0 {
		return callContext{}, false
	}
	return s.frames[len(s.frames)-1], true
}

// currentModule reports the module whose globals/functions are in scope,
// or fallback if no call is in progress.
func (s *contextStack) currentModule(fallback interner.Symbol) interner.Symbol {
	if top, ok := s.top(); ok {
		return top.moduleID
	}
	return fallback
}

// currentThis returns the instance `this` is bound to, if any.
func (s *contextStack) currentThis() (*ClassInstance, bool) {
	top, ok := s.top()
	if !ok || top.thisInstance == nil {
		return nil, false
	}
	return top.thisInstance, true
}

// internalTo reports whether the current call context is inside a method
// of the given class — the only thing that makes a private-member access
// "internal" (spec §4.G visibility rule, §9 design note, §8 property 7).
func (s *contextStack) internalTo(class *ClassDefinition) bool {
	top, ok := s.top()
	return ok && top.inClass == class
}

package evaluator

import (
	"github.com/funvibe/slovo/internal/diagnostics"
	"github.com/funvibe/slovo/internal/span"
)

// Flow is the evaluator's single result channel (spec §4.K): either a
// runtime error, or the Return sentinel that unwinds to the nearest
// function/method call boundary. Every statement/expression evaluation
// method returns (*Flow) rather than a plain Go error so the two cases
// stay textually close to where the spec puts them, instead of requiring
// a parallel sentinel-error type satisfying the error interface.
type Flow struct {
	// IsReturn, when true, carries a Return(Value) unwind; Diagnostic is
	// unset in that case.
	IsReturn    bool
	ReturnValue Value

	Diagnostic *diagnostics.Diagnostic
}

func ReturnFlow(v Value) *Flow { return &Flow{IsReturn: true, ReturnValue: v} }

func ErrorFlow(kind diagnostics.Kind, sp span.Span, format string, args ...interface{}) *Flow {
	return &Flow{Diagnostic: diagnostics.New(kind, sp, format, args...)}
}

func (f *Flow) Error() string {
	if f.IsReturn {
		return "unhandled return"
	}
	return f.Diagnostic.Error()
}

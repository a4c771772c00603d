// Package diagnostics defines the error-kind taxonomy shared by the parser
// and the evaluator (spec §7), and formats diagnostics for the CLI.
package diagnostics

import (
	"fmt"

	"github.com/funvibe/slovo/internal/span"
)

// Kind is one error family. Parser and runtime kinds share one taxonomy so
// the CLI can format both the same way.
type Kind string

const (
	UndefinedVariable Kind = "UndefinedVariable"
	UndefinedFunction  Kind = "UndefinedFunction"
	UndefinedMethod    Kind = "UndefinedMethod"
	TypeError          Kind = "TypeError"
	DivisionByZero     Kind = "DivisionByZero"
	InvalidOperation   Kind = "InvalidOperation"
	IOError            Kind = "IOError"
	Panic              Kind = "Panic"
	UnexpectedToken    Kind = "UnexpectedToken"
	InternalError      Kind = "InternalError"
)

// Diagnostic is one reported error, carrying enough to print
// "<Kind>: <message> at <file>:<line>:<col>".
type Diagnostic struct {
	Kind    Kind
	Span    span.Span
	Message string
}

func New(kind Kind, sp span.Span, format string, args ...interface{}) *Diagnostic {
	return &Diagnostic{Kind: kind, Span: sp, Message: fmt.Sprintf(format, args...)}
}

func (d *Diagnostic) Error() string {
	return string(d.Kind) + ": " + d.Message
}

// Format renders the diagnostic the way the CLI prints it to stderr:
// "<Kind>: <message> at <file>:<line>:<col>".
func (d *Diagnostic) Format(sm *span.SourceMap) string {
	if sm == nil {
		return d.Error()
	}
	pos := sm.Resolve(d.Span.Start)
	return fmt.Sprintf("%s at %s:%d:%d", d.Error(), sm.File(), pos.Line, pos.Column)
}

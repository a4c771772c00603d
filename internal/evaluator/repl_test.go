package evaluator_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/funvibe/slovo/internal/evaluator"
	"github.com/funvibe/slovo/internal/interner"
)

// TestEvalLineKeepsEarlierDefinitionsCallable exercises the exact
// scenario EvalLine exists for: a function defined on one REPL line must
// still be callable on a later line, which only holds if both lines
// parse into the same retained arena (repl.go).
func TestEvalLineKeepsEarlierDefinitionsCallable(t *testing.T) {
	var out bytes.Buffer
	interp := evaluator.NewInterpreter(interner.New(), &out, strings.NewReader(""))

	if flow := interp.EvalLine(`функция удвоить(n: число): число { вернуть n + n; }`); flow != nil {
		t.Fatalf("defining function: %v", flow)
	}
	if flow := interp.EvalLine(`печать(удвоить(21));`); flow != nil {
		t.Fatalf("calling function from a later line: %v", flow)
	}
	if out.String() != "42\n" {
		t.Fatalf("got %q, want %q", out.String(), "42\n")
	}
}

func TestEvalLineKeepsBindingsAcrossLines(t *testing.T) {
	var out bytes.Buffer
	interp := evaluator.NewInterpreter(interner.New(), &out, strings.NewReader(""))

	if flow := interp.EvalLine(`пусть x = 10;`); flow != nil {
		t.Fatalf("binding x: %v", flow)
	}
	if flow := interp.EvalLine(`x = x + 5;`); flow != nil {
		t.Fatalf("rebinding x: %v", flow)
	}
	if flow := interp.EvalLine(`печать(x);`); flow != nil {
		t.Fatalf("printing x: %v", flow)
	}
	if out.String() != "15\n" {
		t.Fatalf("got %q, want %q", out.String(), "15\n")
	}
}

func TestEvalLineReportsRuntimeErrorsWithoutKillingTheSession(t *testing.T) {
	var out bytes.Buffer
	interp := evaluator.NewInterpreter(interner.New(), &out, strings.NewReader(""))

	if flow := interp.EvalLine(`печать(1 / 0);`); flow == nil {
		t.Fatalf("expected a DivisionByZero error")
	}
	if flow := interp.EvalLine(`печать(9);`); flow != nil {
		t.Fatalf("session should survive a prior line's error: %v", flow)
	}
	if out.String() != "9\n" {
		t.Fatalf("got %q, want %q", out.String(), "9\n")
	}
}

package evaluator

import (
	"os"
	"runtime"
	"time"

	"github.com/funvibe/slovo/internal/diagnostics"
	"github.com/funvibe/slovo/internal/span"
	"github.com/google/uuid"
)

// registerSystemClass installs Система (spec §6 "System"), grounded on
// original_source/src/builtins/system.rs (выход/паника/платформа/
// аргументы/время/сон). идентификатор is this lineage's own addition,
// giving github.com/google/uuid a script-visible caller (SPEC_FULL.md §3
// domain stack table), the same rationale as original_source's
// нано_время for exposing host timing precision.
func registerSystemClass(i *Interpreter) {
	class := NewClassDefinition(i.Interner.Intern("Система"), "Система", 0, nil)
	class.IsBuiltin = true

	class.Methods[i.Interner.Intern("__конструктор")] = &MethodSlot{
		IsConstructor: true,
		Native: func(i *Interpreter, args []Value, sp span.Span) (Value, *Flow) {
			return Empty{}, nil
		},
	}

	class.Methods[i.Interner.Intern("выход")] = &MethodSlot{Native: func(i *Interpreter, args []Value, sp span.Span) (Value, *Flow) {
		code := 0
		if n, ok := numArg(args, 1); ok {
			code = int(n)
		}
		os.Exit(code)
		return Empty{}, nil
	}}

	class.Methods[i.Interner.Intern("паника")] = &MethodSlot{Native: func(i *Interpreter, args []Value, sp span.Span) (Value, *Flow) {
		msg := "паника"
		if len(args) == 2 {
			msg = DisplayText(args[1])
		}
		return nil, ErrorFlow(diagnostics.Panic, sp, "%s", msg)
	}}

	class.Methods[i.Interner.Intern("платформа")] = &MethodSlot{Native: func(i *Interpreter, args []Value, sp span.Span) (Value, *Flow) {
		return Text(runtime.GOOS), nil
	}}

	class.Methods[i.Interner.Intern("аргументы")] = &MethodSlot{Native: func(i *Interpreter, args []Value, sp span.Span) (Value, *Flow) {
		var items []Value
		if len(os.Args) > 1 {
			for _, a := range os.Args[1:] {
				items = append(items, Text(a))
			}
		}
		return NewList(items), nil
	}}

	class.Methods[i.Interner.Intern("время")] = &MethodSlot{Native: func(i *Interpreter, args []Value, sp span.Span) (Value, *Flow) {
		return Number(time.Now().Unix()), nil
	}}

	class.Methods[i.Interner.Intern("сон")] = &MethodSlot{Native: func(i *Interpreter, args []Value, sp span.Span) (Value, *Flow) {
		ms, ok := numArg(args, 1)
		if !ok || len(args) != 2 {
			return nil, ErrorFlow(diagnostics.InvalidOperation, sp, "использование: система.сон(миллисекунды)")
		}
		time.Sleep(time.Duration(ms) * time.Millisecond)
		return Empty{}, nil
	}}

	class.Methods[i.Interner.Intern("идентификатор")] = &MethodSlot{Native: func(i *Interpreter, args []Value, sp span.Span) (Value, *Flow) {
		return Text(uuid.New().String()), nil
	}}

	i.builtinClasses[class.Name] = class
}

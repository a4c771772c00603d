package evaluator

import (
	"github.com/funvibe/funbit/pkg/builder"
	"github.com/funvibe/funbit/pkg/matcher"
	"github.com/funvibe/slovo/internal/diagnostics"
	"github.com/funvibe/slovo/internal/span"
)

// registerBinaryPackerClass installs Пакет — supplemented, not part of
// spec.md's canonical built-in list (SPEC_FULL.md §3): github.com/
// funvibe/funbit is the teacher's own Erlang-style bit-pattern-matching
// library. упаковать packs a Список of числа into a fixed-width
// big-endian byte buffer via funbit's builder; распаковать reverses it
// via funbit's matcher, giving both halves of the library's API a
// concrete caller.
func registerBinaryPackerClass(i *Interpreter) {
	class := NewClassDefinition(i.Interner.Intern("Пакет"), "Пакет", 0, nil)
	class.IsBuiltin = true

	class.Methods[i.Interner.Intern("__конструктор")] = &MethodSlot{
		IsConstructor: true,
		Native: func(i *Interpreter, args []Value, sp span.Span) (Value, *Flow) {
			return Empty{}, nil
		},
	}

	class.Methods[i.Interner.Intern("упаковать")] = &MethodSlot{Native: func(i *Interpreter, args []Value, sp span.Span) (Value, *Flow) {
		list, ok := args[1].(*List)
		width, widthOK := numArg(args, 2)
		if len(args) != 3 || !ok || !widthOK {
			return nil, ErrorFlow(diagnostics.InvalidOperation, sp, "использование: пакет.упаковать(список, битШирина)")
		}
		b := builder.NewBuilder()
		for _, item := range list.Snapshot() {
			n, ok := item.(Number)
			if !ok {
				return nil, ErrorFlow(diagnostics.TypeError, sp, "упаковать требует список из число")
			}
			if _, err := b.AddInteger(int64(n), builder.WithSize(uint(width)), builder.WithEndianness(builder.EndiannessBig)); err != nil {
				return nil, ErrorFlow(diagnostics.InvalidOperation, sp, "ошибка упаковки: %v", err)
			}
		}
		data, err := b.Build()
		if err != nil {
			return nil, ErrorFlow(diagnostics.InvalidOperation, sp, "ошибка упаковки: %v", err)
		}
		return Text(data), nil
	}}

	class.Methods[i.Interner.Intern("распаковать")] = &MethodSlot{Native: func(i *Interpreter, args []Value, sp span.Span) (Value, *Flow) {
		packed, ok := args[1].(Text)
		width, widthOK := numArg(args, 2)
		count, countOK := numArg(args, 3)
		if len(args) != 4 || !ok || !widthOK || !countOK {
			return nil, ErrorFlow(diagnostics.InvalidOperation, sp, "использование: пакет.распаковать(текст, битШирина, количество)")
		}
		data := []byte(packed)
		m := matcher.NewMatcher()
		values := make([]int64, count)
		for idx := range values {
			m.Integer(&values[idx], matcher.WithSize(uint(width)), matcher.WithEndianness(matcher.EndiannessBig))
		}
		if _, err := matcher.Match(m, data); err != nil {
			return nil, ErrorFlow(diagnostics.InvalidOperation, sp, "ошибка распаковки: %v", err)
		}
		out := make([]Value, count)
		for idx, v := range values {
			out[idx] = Number(v)
		}
		return NewList(out), nil
	}}

	i.builtinClasses[class.Name] = class
}

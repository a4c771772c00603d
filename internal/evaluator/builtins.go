package evaluator

import (
	"strconv"

	"github.com/funvibe/slovo/internal/diagnostics"
	"github.com/funvibe/slovo/internal/span"
)

// RegisterBuiltins installs every free built-in function and built-in
// class into a freshly constructed Interpreter (spec §4.I). Split one
// concern per file, matching how the teacher splits its own builtin
// registration (builtins_std.go, builtins_term.go, ...): this file holds
// the primitive coercion builtins; one file per native class follows.
func RegisterBuiltins(i *Interpreter) {
	registerCoercions(i)
	registerFileClass(i)
	registerDateTimeClass(i)
	registerTerminalClass(i)
	registerSystemClass(i)
	registerRequestResponseClasses(i)
	registerDatabaseClass(i)
	registerBinaryPackerClass(i)
	registerRpcClass(i)
}

func (i *Interpreter) addBuiltin(name string, fn func(i *Interpreter, args []Value, callSpan span.Span) (Value, *Flow)) {
	sym := i.Interner.Intern(name)
	i.builtins[sym] = &Builtin{Name: sym, Fn: fn}
}

// registerCoercions installs число/дробь/текст/логический as free
// builtins (spec §9 open question 2): `input()` always returns Text, so
// scripts that need a number coerce explicitly with `число(ввод("..."))`.
// The parser lets these primitive-type keywords double as ordinary
// identifiers in call position (see parser.parsePrimary).
func registerCoercions(i *Interpreter) {
	i.addBuiltin("число", func(i *Interpreter, args []Value, sp span.Span) (Value, *Flow) {
		if len(args) != 1 {
			return nil, ErrorFlow(diagnostics.InvalidOperation, sp, "использование: число(значение)")
		}
		switch v := args[0].(type) {
		case Number:
			return v, nil
		case Float:
			return Number(int64(v)), nil
		case Boolean:
			if v {
				return Number(1), nil
			}
			return Number(0), nil
		case Text:
			n, err := strconv.ParseInt(string(v), 10, 64)
			if err != nil {
				return nil, ErrorFlow(diagnostics.TypeError, sp, "не удалось преобразовать %q в число", string(v))
			}
			return Number(n), nil
		default:
			return nil, ErrorFlow(diagnostics.TypeError, sp, "не удалось преобразовать %s в число", TypeName(args[0]))
		}
	})

	i.addBuiltin("дробь", func(i *Interpreter, args []Value, sp span.Span) (Value, *Flow) {
		if len(args) != 1 {
			return nil, ErrorFlow(diagnostics.InvalidOperation, sp, "использование: дробь(значение)")
		}
		switch v := args[0].(type) {
		case Float:
			return v, nil
		case Number:
			return Float(v), nil
		case Text:
			f, err := strconv.ParseFloat(string(v), 64)
			if err != nil {
				return nil, ErrorFlow(diagnostics.TypeError, sp, "не удалось преобразовать %q в дробь", string(v))
			}
			return Float(f), nil
		default:
			return nil, ErrorFlow(diagnostics.TypeError, sp, "не удалось преобразовать %s в дробь", TypeName(args[0]))
		}
	})

	i.addBuiltin("текст", func(i *Interpreter, args []Value, sp span.Span) (Value, *Flow) {
		if len(args) != 1 {
			return nil, ErrorFlow(diagnostics.InvalidOperation, sp, "использование: текст(значение)")
		}
		return Text(DisplayText(args[0])), nil
	})

	i.addBuiltin("логический", func(i *Interpreter, args []Value, sp span.Span) (Value, *Flow) {
		if len(args) != 1 {
			return nil, ErrorFlow(diagnostics.InvalidOperation, sp, "использование: логический(значение)")
		}
		if v, ok := args[0].(Text); ok {
			switch string(v) {
			case "истина":
				return Boolean(true), nil
			case "ложь":
				return Boolean(false), nil
			}
		}
		return Boolean(Truthy(args[0])), nil
	})
}

package evaluator

import (
	"strings"

	"github.com/funvibe/slovo/internal/diagnostics"
	"github.com/funvibe/slovo/internal/span"
)

// listMethod, dictMethod, arrayMethod and textMethod implement the native
// methods List/Dict/Array/Text expose as script-visible class members
// (spec §6 "documented methods as native class members"), grounded
// method-for-method on original_source/src/builtins/{list,dict,array}.rs.
// List/Dict/Array are plain Go types rather than ClassInstance (spec §3
// treats them as their own Value variants, not objects of a user-visible
// ClassDefinition), so their methods are dispatched here directly instead
// of through the ClassDefinition.Method lookup evalMethodCall uses for
// *ClassInstance.
func listMethod(l *List, name string, args []Value, sp span.Span) (Value, *Flow) {
	switch name {
	case "добавить":
		if len(args) != 1 {
			return nil, ErrorFlow(diagnostics.InvalidOperation, sp, "использование: список.добавить(значение)")
		}
		l.Append(args[0])
		return Empty{}, nil

	case "задать":
		idx, ok := numArg(args, 0)
		if !ok || len(args) != 2 {
			return nil, ErrorFlow(diagnostics.InvalidOperation, sp, "использование: список.задать(число, значение)")
		}
		if !l.Set(int(idx), args[1]) {
			return nil, ErrorFlow(diagnostics.InvalidOperation, sp, "индекс %d вне границ списка", idx)
		}
		return Empty{}, nil

	case "получить":
		idx, ok := numArg(args, 0)
		if !ok || len(args) != 1 {
			return nil, ErrorFlow(diagnostics.InvalidOperation, sp, "использование: список.получить(число)")
		}
		v, ok := l.Get(int(idx))
		if !ok {
			return nil, ErrorFlow(diagnostics.InvalidOperation, sp, "индекс %d вне границ списка", idx)
		}
		return v, nil

	case "длина":
		return Number(l.Len()), nil

	case "удалить":
		l.mu.Lock()
		defer l.mu.Unlock()
		if len(l.Items) == 0 {
			return nil, ErrorFlow(diagnostics.InvalidOperation, sp, "удалить из пустого списка")
		}
		idx := len(l.Items) - 1
		if n, ok := numArg(args, 0); ok {
			idx = int(n)
			if idx < 0 || idx >= len(l.Items) {
				return nil, ErrorFlow(diagnostics.InvalidOperation, sp, "индекс вне границ")
			}
		}
		v := l.Items[idx]
		l.Items = append(l.Items[:idx], l.Items[idx+1:]...)
		return v, nil

	case "отчистить":
		l.mu.Lock()
		l.Items = nil
		l.mu.Unlock()
		return Empty{}, nil

	case "объединить":
		sep, ok := args[0].(Text)
		if len(args) != 1 || !ok {
			return nil, ErrorFlow(diagnostics.InvalidOperation, sp, "использование: список.объединить(текст)")
		}
		items := l.Snapshot()
		parts := make([]string, len(items))
		for idx, v := range items {
			parts[idx] = DisplayText(v)
		}
		return Text(strings.Join(parts, string(sep))), nil

	case "содержит":
		target := args[0]
		for _, v := range l.Snapshot() {
			if Equals(v, target) {
				return Boolean(true), nil
			}
		}
		return Boolean(false), nil

	default:
		return nil, ErrorFlow(diagnostics.UndefinedMethod, sp, "Список не имеет метода %q", name)
	}
}

func dictMethod(d *Dict, name string, args []Value, sp span.Span) (Value, *Flow) {
	switch name {
	case "задать":
		key, ok := args[0].(Text)
		if len(args) != 2 || !ok {
			return nil, ErrorFlow(diagnostics.InvalidOperation, sp, "использование: словарь.задать(текст, значение)")
		}
		d.Set(string(key), args[1])
		return Empty{}, nil

	case "получить":
		if len(args) < 1 {
			return nil, ErrorFlow(diagnostics.InvalidOperation, sp, "использование: словарь.получить(текст, значение-по-умолчанию?)")
		}
		v, ok := d.Get(DisplayText(args[0]))
		if ok {
			return v, nil
		}
		if len(args) > 1 {
			return args[1], nil
		}
		return Empty{}, nil

	case "имеет", "содержит":
		if len(args) != 1 {
			return nil, ErrorFlow(diagnostics.InvalidOperation, sp, "использование: словарь.имеет(текст)")
		}
		_, ok := d.Get(DisplayText(args[0]))
		return Boolean(ok), nil

	case "ключи":
		d.mu.Lock()
		out := make([]Value, len(d.Keys))
		for idx, k := range d.Keys {
			out[idx] = Text(k)
		}
		d.mu.Unlock()
		return NewList(out), nil

	case "значения":
		d.mu.Lock()
		out := make([]Value, len(d.Keys))
		for idx, k := range d.Keys {
			out[idx] = d.Map[k]
		}
		d.mu.Unlock()
		return NewList(out), nil

	case "удалить":
		if len(args) != 1 {
			return nil, ErrorFlow(diagnostics.InvalidOperation, sp, "использование: словарь.удалить(текст)")
		}
		key := DisplayText(args[0])
		d.mu.Lock()
		v, existed := d.Map[key]
		if existed {
			delete(d.Map, key)
			for idx, k := range d.Keys {
				if k == key {
					d.Keys = append(d.Keys[:idx], d.Keys[idx+1:]...)
					break
				}
			}
		}
		d.mu.Unlock()
		if !existed {
			return Empty{}, nil
		}
		return v, nil

	case "размер", "длина":
		return Number(d.Len()), nil

	default:
		return nil, ErrorFlow(diagnostics.UndefinedMethod, sp, "Словарь не имеет метода %q", name)
	}
}

// arrayMethod is deliberately narrower than listMethod: Array is
// shared-immutable (spec §3 Value::Array), so only the non-mutating
// subset original_source/src/builtins/array.rs exposes is present.
func arrayMethod(a *Array, name string, args []Value, sp span.Span) (Value, *Flow) {
	switch name {
	case "длина", "размер":
		return Number(len(a.Items)), nil

	case "получить":
		idx, ok := numArg(args, 0)
		if !ok || len(args) != 1 || idx < 0 || int(idx) >= len(a.Items) {
			return nil, ErrorFlow(diagnostics.InvalidOperation, sp, "индекс вне границ массива")
		}
		return a.Items[idx], nil

	case "кусок":
		from, ok1 := numArg(args, 0)
		to, ok2 := numArg(args, 1)
		if len(args) != 2 || !ok1 || !ok2 || from < 0 || to > Number(len(a.Items)) || from > to {
			return nil, ErrorFlow(diagnostics.InvalidOperation, sp, "использование: массив.кусок(от, до)")
		}
		out := make([]Value, to-from)
		copy(out, a.Items[from:to])
		return NewArray(out), nil

	case "объединить":
		sep, ok := args[0].(Text)
		if len(args) != 1 || !ok {
			return nil, ErrorFlow(diagnostics.InvalidOperation, sp, "использование: массив.объединить(текст)")
		}
		parts := make([]string, len(a.Items))
		for idx, v := range a.Items {
			parts[idx] = DisplayText(v)
		}
		return Text(strings.Join(parts, string(sep))), nil

	default:
		return nil, ErrorFlow(diagnostics.UndefinedMethod, sp, "Массив не имеет метода %q", name)
	}
}

// textMethod covers the handful of string operations scripts reach for
// most (spec §6's Text built-in); no inventory of these survives in
// original_source beyond ad-hoc interpreter intrinsics, so the method
// set here mirrors the shape of the List/Dict surface above for register
// consistency rather than a specific ported file.
func textMethod(t Text, name string, args []Value, sp span.Span) (Value, *Flow) {
	s := string(t)
	switch name {
	case "длина":
		return Number(len([]rune(s))), nil
	case "верхний":
		return Text(strings.ToUpper(s)), nil
	case "нижний":
		return Text(strings.ToLower(s)), nil
	case "содержит":
		sub, ok := args[0].(Text)
		if len(args) != 1 || !ok {
			return nil, ErrorFlow(diagnostics.InvalidOperation, sp, "использование: текст.содержит(текст)")
		}
		return Boolean(strings.Contains(s, string(sub))), nil
	case "разделить":
		sep, ok := args[0].(Text)
		if len(args) != 1 || !ok {
			return nil, ErrorFlow(diagnostics.InvalidOperation, sp, "использование: текст.разделить(текст)")
		}
		parts := strings.Split(s, string(sep))
		out := make([]Value, len(parts))
		for idx, p := range parts {
			out[idx] = Text(p)
		}
		return NewList(out), nil
	case "обрезать":
		return Text(strings.TrimSpace(s)), nil
	default:
		return nil, ErrorFlow(diagnostics.UndefinedMethod, sp, "текст не имеет метода %q", name)
	}
}

func numArg(args []Value, idx int) (Number, bool) {
	if idx >= len(args) {
		return 0, false
	}
	n, ok := args[idx].(Number)
	return n, ok
}

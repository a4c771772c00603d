package evaluator

import (
	"os"

	"github.com/dustin/go-humanize"
	"github.com/funvibe/slovo/internal/diagnostics"
	"github.com/funvibe/slovo/internal/span"
)

// registerFileClass installs Файл (spec §6 "File"), grounded on
// original_source/src/builtins/file.rs: a constructor storing the path
// field, plus существует/читать/записать/дописать/удалить. человекоразмер
// is this lineage's own addition, giving go-humanize a script-visible
// caller (SPEC_FULL.md §3 domain stack table).
func registerFileClass(i *Interpreter) {
	class := NewClassDefinition(i.Interner.Intern("Файл"), "Файл", 0, nil)
	class.IsBuiltin = true
	pathSym := i.Interner.Intern("путь")

	class.Methods[i.Interner.Intern("__конструктор")] = &MethodSlot{
		IsConstructor: true,
		Native: func(i *Interpreter, args []Value, sp span.Span) (Value, *Flow) {
			this := args[0].(*ClassInstance)
			if len(args) != 2 {
				return nil, ErrorFlow(diagnostics.InvalidOperation, sp, "использование: новый Файл(путь)")
			}
			path, ok := args[1].(Text)
			if !ok {
				return nil, ErrorFlow(diagnostics.TypeError, sp, "путь файла должен быть текстом")
			}
			this.SetField(pathSym, path)
			return Empty{}, nil
		},
	}

	filePath := func(this *ClassInstance) string {
		v, _ := this.GetField(pathSym)
		return string(v.(Text))
	}

	class.Methods[i.Interner.Intern("существует")] = &MethodSlot{Native: func(i *Interpreter, args []Value, sp span.Span) (Value, *Flow) {
		this := args[0].(*ClassInstance)
		_, err := os.Stat(filePath(this))
		return Boolean(err == nil), nil
	}}

	class.Methods[i.Interner.Intern("читать")] = &MethodSlot{Native: func(i *Interpreter, args []Value, sp span.Span) (Value, *Flow) {
		this := args[0].(*ClassInstance)
		data, err := os.ReadFile(filePath(this))
		if err != nil {
			return nil, ErrorFlow(diagnostics.IOError, sp, "не удалось прочитать %q: %v", filePath(this), err)
		}
		return Text(data), nil
	}}

	class.Methods[i.Interner.Intern("записать")] = &MethodSlot{Native: func(i *Interpreter, args []Value, sp span.Span) (Value, *Flow) {
		this := args[0].(*ClassInstance)
		if len(args) != 2 {
			return nil, ErrorFlow(diagnostics.InvalidOperation, sp, "использование: файл.записать(текст)")
		}
		content, _ := args[1].(Text)
		if err := os.WriteFile(filePath(this), []byte(content), 0o644); err != nil {
			return nil, ErrorFlow(diagnostics.IOError, sp, "не удалось записать %q: %v", filePath(this), err)
		}
		return Empty{}, nil
	}}

	class.Methods[i.Interner.Intern("дописать")] = &MethodSlot{Native: func(i *Interpreter, args []Value, sp span.Span) (Value, *Flow) {
		this := args[0].(*ClassInstance)
		if len(args) != 2 {
			return nil, ErrorFlow(diagnostics.InvalidOperation, sp, "использование: файл.дописать(текст)")
		}
		content, _ := args[1].(Text)
		f, err := os.OpenFile(filePath(this), os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
		if err != nil {
			return nil, ErrorFlow(diagnostics.IOError, sp, "не удалось открыть %q: %v", filePath(this), err)
		}
		defer f.Close()
		if _, err := f.WriteString(string(content)); err != nil {
			return nil, ErrorFlow(diagnostics.IOError, sp, "не удалось дописать %q: %v", filePath(this), err)
		}
		return Empty{}, nil
	}}

	class.Methods[i.Interner.Intern("удалить")] = &MethodSlot{Native: func(i *Interpreter, args []Value, sp span.Span) (Value, *Flow) {
		this := args[0].(*ClassInstance)
		if err := os.Remove(filePath(this)); err != nil {
			return nil, ErrorFlow(diagnostics.IOError, sp, "не удалось удалить %q: %v", filePath(this), err)
		}
		return Empty{}, nil
	}}

	class.Methods[i.Interner.Intern("человекоразмер")] = &MethodSlot{Native: func(i *Interpreter, args []Value, sp span.Span) (Value, *Flow) {
		this := args[0].(*ClassInstance)
		info, err := os.Stat(filePath(this))
		if err != nil {
			return nil, ErrorFlow(diagnostics.IOError, sp, "не удалось получить размер %q: %v", filePath(this), err)
		}
		return Text(humanize.Bytes(uint64(info.Size()))), nil
	}}

	i.builtinClasses[class.Name] = class
}

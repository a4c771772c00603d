package evaluator

import (
	"database/sql"

	"github.com/funvibe/slovo/internal/diagnostics"
	"github.com/funvibe/slovo/internal/span"
	_ "modernc.org/sqlite"
)

// registerDatabaseClass installs БазаДанных — supplemented, not part of
// spec.md's canonical built-in list (SPEC_FULL.md §3): the teacher's
// go.mod carries a real pure-Go SQL driver, modernc.org/sqlite, with
// nothing in spec.md's feature set to exercise it, so a minimal
// embedded-database built-in class gives it a script-visible home in the
// same native-class shape as Файл.
func registerDatabaseClass(i *Interpreter) {
	class := NewClassDefinition(i.Interner.Intern("БазаДанных"), "БазаДанных", 0, nil)
	class.IsBuiltin = true
	dbSym := i.Interner.Intern("__дескриптор")

	class.Methods[i.Interner.Intern("__конструктор")] = &MethodSlot{
		IsConstructor: true,
		Native: func(i *Interpreter, args []Value, sp span.Span) (Value, *Flow) {
			this := args[0].(*ClassInstance)
			path, ok := args[1].(Text)
			if len(args) != 2 || !ok {
				return nil, ErrorFlow(diagnostics.InvalidOperation, sp, "использование: новый БазаДанных(путь)")
			}
			db, err := sql.Open("sqlite", string(path))
			if err != nil {
				return nil, ErrorFlow(diagnostics.IOError, sp, "не удалось открыть базу данных %q: %v", string(path), err)
			}
			this.SetField(dbSym, &NativeResource{Kind: "sqlite", Data: db})
			return Empty{}, nil
		},
	}

	handle := func(this *ClassInstance) (*sql.DB, *Flow) {
		v, ok := this.GetField(dbSym)
		if !ok {
			return nil, ErrorFlow(diagnostics.InvalidOperation, span.Span{}, "база данных закрыта или не открыта")
		}
		return v.(*NativeResource).Data.(*sql.DB), nil
	}

	class.Methods[i.Interner.Intern("выполнить")] = &MethodSlot{Native: func(i *Interpreter, args []Value, sp span.Span) (Value, *Flow) {
		this := args[0].(*ClassInstance)
		stmt, ok := args[1].(Text)
		if len(args) != 2 || !ok {
			return nil, ErrorFlow(diagnostics.InvalidOperation, sp, "использование: бд.выполнить(sql)")
		}
		db, flow := handle(this)
		if flow != nil {
			return nil, flow
		}
		res, err := db.Exec(string(stmt))
		if err != nil {
			return nil, ErrorFlow(diagnostics.IOError, sp, "ошибка выполнения: %v", err)
		}
		n, _ := res.RowsAffected()
		return Number(n), nil
	}}

	class.Methods[i.Interner.Intern("запрос")] = &MethodSlot{Native: func(i *Interpreter, args []Value, sp span.Span) (Value, *Flow) {
		this := args[0].(*ClassInstance)
		stmt, ok := args[1].(Text)
		if len(args) != 2 || !ok {
			return nil, ErrorFlow(diagnostics.InvalidOperation, sp, "использование: бд.запрос(sql)")
		}
		db, flow := handle(this)
		if flow != nil {
			return nil, flow
		}
		rows, err := db.Query(string(stmt))
		if err != nil {
			return nil, ErrorFlow(diagnostics.IOError, sp, "ошибка запроса: %v", err)
		}
		defer rows.Close()
		cols, err := rows.Columns()
		if err != nil {
			return nil, ErrorFlow(diagnostics.IOError, sp, "не удалось получить столбцы: %v", err)
		}
		var out []Value
		for rows.Next() {
			raw := make([]interface{}, len(cols))
			ptrs := make([]interface{}, len(cols))
			for idx := range raw {
				ptrs[idx] = &raw[idx]
			}
			if err := rows.Scan(ptrs...); err != nil {
				return nil, ErrorFlow(diagnostics.IOError, sp, "не удалось прочитать строку: %v", err)
			}
			row := NewDict()
			for idx, col := range cols {
				row.Set(col, sqlValueToScript(raw[idx]))
			}
			out = append(out, row)
		}
		return NewList(out), nil
	}}

	class.Methods[i.Interner.Intern("закрыть")] = &MethodSlot{Native: func(i *Interpreter, args []Value, sp span.Span) (Value, *Flow) {
		this := args[0].(*ClassInstance)
		db, flow := handle(this)
		if flow != nil {
			return Empty{}, nil
		}
		_ = db.Close()
		this.SetField(dbSym, Empty{})
		return Empty{}, nil
	}}

	i.builtinClasses[class.Name] = class
}

func sqlValueToScript(raw interface{}) Value {
	switch v := raw.(type) {
	case nil:
		return Empty{}
	case int64:
		return Number(v)
	case float64:
		return Float(v)
	case string:
		return Text(v)
	case []byte:
		return Text(v)
	case bool:
		return Boolean(v)
	default:
		return Text("")
	}
}

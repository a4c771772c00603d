package evaluator

import (
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/funvibe/slovo/internal/diagnostics"
	"github.com/funvibe/slovo/internal/span"
)

// registerDateTimeClass installs ДатаВремя (spec §6 "DateTime"), grounded
// on original_source/src/builtins/datetime.rs's internal "milliseconds
// since epoch" field: constructor with no arguments captures the current
// instant, an explicit число argument reconstructs one from epoch
// milliseconds. формат renders with a small strftime-ish substitution
// table; назад is this lineage's own addition, wiring go-humanize's
// relative-time formatting (SPEC_FULL.md §3).
func registerDateTimeClass(i *Interpreter) {
	class := NewClassDefinition(i.Interner.Intern("ДатаВремя"), "ДатаВремя", 0, nil)
	class.IsBuiltin = true
	msSym := i.Interner.Intern("_мс")

	class.Methods[i.Interner.Intern("__конструктор")] = &MethodSlot{
		IsConstructor: true,
		Native: func(i *Interpreter, args []Value, sp span.Span) (Value, *Flow) {
			this := args[0].(*ClassInstance)
			ms := time.Now().UnixMilli()
			if len(args) == 2 {
				n, ok := args[1].(Number)
				if !ok {
					return nil, ErrorFlow(diagnostics.TypeError, sp, "использование: новый ДатаВремя(миллисекунды?)")
				}
				ms = int64(n)
			}
			this.SetField(msSym, Number(ms))
			return Empty{}, nil
		},
	}

	instant := func(this *ClassInstance) time.Time {
		v, _ := this.GetField(msSym)
		return time.UnixMilli(int64(v.(Number))).UTC()
	}

	class.Methods[i.Interner.Intern("формат")] = &MethodSlot{Native: func(i *Interpreter, args []Value, sp span.Span) (Value, *Flow) {
		this := args[0].(*ClassInstance)
		layout := "ГГГГ-ММ-ДД ЧЧ:мм:сс"
		if len(args) == 2 {
			l, ok := args[1].(Text)
			if !ok {
				return nil, ErrorFlow(diagnostics.TypeError, sp, "использование: датавремя.формат(шаблон?)")
			}
			layout = string(l)
		}
		return Text(formatTime(instant(this), layout)), nil
	}}

	class.Methods[i.Interner.Intern("назад")] = &MethodSlot{Native: func(i *Interpreter, args []Value, sp span.Span) (Value, *Flow) {
		this := args[0].(*ClassInstance)
		return Text(humanize.Time(instant(this))), nil
	}}

	class.Methods[i.Interner.Intern("метка")] = &MethodSlot{Native: func(i *Interpreter, args []Value, sp span.Span) (Value, *Flow) {
		this := args[0].(*ClassInstance)
		v, _ := this.GetField(msSym)
		return v, nil
	}}

	i.builtinClasses[class.Name] = class
}

// formatTime substitutes a small, fixed token vocabulary rather than
// adopting Go's reference-date layout string verbatim — scripts writing
// the format string see Cyrillic date field names matching the rest of
// the language's keyword register.
func formatTime(t time.Time, layout string) string {
	r := strings.NewReplacer(
		"ГГГГ", t.Format("2006"),
		"ММ", t.Format("01"),
		"ДД", t.Format("02"),
		"ЧЧ", t.Format("15"),
		"мм", t.Format("04"),
		"сс", t.Format("05"),
	)
	return r.Replace(layout)
}

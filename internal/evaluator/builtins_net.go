package evaluator

import (
	"bytes"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/funvibe/slovo/internal/diagnostics"
	"github.com/funvibe/slovo/internal/span"
)

// registerRequestResponseClasses installs Запрос/Ответ (spec §6
// "Request"/"Response"), grounded on original_source/src/builtins/
// request.rs and response.rs's field layout; отправить performs the
// actual round trip over stdlib net/http, the library SPEC_FULL.md's
// domain stack table assigns this pair.
func registerRequestResponseClasses(i *Interpreter) {
	urlSym := i.Interner.Intern("урл")
	methodSym := i.Interner.Intern("метод")
	headersSym := i.Interner.Intern("заголовки")
	bodySym := i.Interner.Intern("тело")
	statusSym := i.Interner.Intern("статус")

	request := NewClassDefinition(i.Interner.Intern("Запрос"), "Запрос", 0, nil)
	request.IsBuiltin = true

	request.Methods[i.Interner.Intern("__конструктор")] = &MethodSlot{
		IsConstructor: true,
		Native: func(i *Interpreter, args []Value, sp span.Span) (Value, *Flow) {
			this := args[0].(*ClassInstance)
			if len(args) < 2 {
				return nil, ErrorFlow(diagnostics.InvalidOperation, sp, "использование: новый Запрос(урл, метод?)")
			}
			url, ok := args[1].(Text)
			if !ok {
				return nil, ErrorFlow(diagnostics.TypeError, sp, "урл должен быть текстом")
			}
			method := Text("GET")
			if len(args) == 3 {
				m, ok := args[2].(Text)
				if !ok {
					return nil, ErrorFlow(diagnostics.TypeError, sp, "метод должен быть текстом")
				}
				method = m
			}
			this.SetField(urlSym, url)
			this.SetField(methodSym, method)
			this.SetField(headersSym, NewDict())
			this.SetField(bodySym, Text(""))
			return Empty{}, nil
		},
	}

	request.Methods[i.Interner.Intern("заголовок")] = &MethodSlot{Native: func(i *Interpreter, args []Value, sp span.Span) (Value, *Flow) {
		this := args[0].(*ClassInstance)
		if len(args) != 3 {
			return nil, ErrorFlow(diagnostics.InvalidOperation, sp, "использование: запрос.заголовок(имя, значение)")
		}
		headers, _ := this.GetField(headersSym)
		headers.(*Dict).Set(DisplayText(args[1]), args[2])
		return this, nil
	}}

	request.Methods[i.Interner.Intern("тело_текст")] = &MethodSlot{Native: func(i *Interpreter, args []Value, sp span.Span) (Value, *Flow) {
		this := args[0].(*ClassInstance)
		if len(args) != 2 {
			return nil, ErrorFlow(diagnostics.InvalidOperation, sp, "использование: запрос.тело_текст(текст)")
		}
		this.SetField(bodySym, Text(DisplayText(args[1])))
		return this, nil
	}}

	httpClient := &http.Client{Timeout: 30 * time.Second}
	response := NewClassDefinition(i.Interner.Intern("Ответ"), "Ответ", 0, nil)
	response.IsBuiltin = true

	request.Methods[i.Interner.Intern("отправить")] = &MethodSlot{Native: func(i *Interpreter, args []Value, sp span.Span) (Value, *Flow) {
		this := args[0].(*ClassInstance)
		urlV, _ := this.GetField(urlSym)
		methodV, _ := this.GetField(methodSym)
		bodyV, _ := this.GetField(bodySym)
		headersV, _ := this.GetField(headersSym)

		req, err := http.NewRequest(strings.ToUpper(string(methodV.(Text))), string(urlV.(Text)), bytes.NewBufferString(string(bodyV.(Text))))
		if err != nil {
			return nil, ErrorFlow(diagnostics.IOError, sp, "не удалось создать запрос: %v", err)
		}
		if dict, ok := headersV.(*Dict); ok {
			dict.mu.Lock()
			for _, k := range dict.Keys {
				req.Header.Set(k, DisplayText(dict.Map[k]))
			}
			dict.mu.Unlock()
		}

		resp, err := httpClient.Do(req)
		if err != nil {
			return nil, ErrorFlow(diagnostics.IOError, sp, "запрос не выполнен: %v", err)
		}
		defer resp.Body.Close()
		data, err := io.ReadAll(resp.Body)
		if err != nil {
			return nil, ErrorFlow(diagnostics.IOError, sp, "не удалось прочитать ответ: %v", err)
		}

		respHeaders := NewDict()
		for k := range resp.Header {
			respHeaders.Set(k, Text(resp.Header.Get(k)))
		}
		respInst := NewInstance(response)
		respInst.SetField(statusSym, Number(resp.StatusCode))
		respInst.SetField(headersSym, respHeaders)
		respInst.SetField(bodySym, Text(data))
		return respInst, nil
	}}

	response.Methods[i.Interner.Intern("строка")] = &MethodSlot{Native: func(i *Interpreter, args []Value, sp span.Span) (Value, *Flow) {
		this := args[0].(*ClassInstance)
		v, _ := this.GetField(bodySym)
		return v, nil
	}}
	response.Methods[i.Interner.Intern("код")] = &MethodSlot{Native: func(i *Interpreter, args []Value, sp span.Span) (Value, *Flow) {
		this := args[0].(*ClassInstance)
		v, _ := this.GetField(statusSym)
		return v, nil
	}}

	i.builtinClasses[request.Name] = request
	i.builtinClasses[response.Name] = response
}

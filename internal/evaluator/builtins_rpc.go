package evaluator

import (
	"context"
	"time"

	"github.com/funvibe/slovo/internal/diagnostics"
	"github.com/funvibe/slovo/internal/span"
	"github.com/jhump/protoreflect/desc"
	"github.com/jhump/protoreflect/dynamic"
	"github.com/jhump/protoreflect/dynamic/grpcdynamic"
	"github.com/jhump/protoreflect/grpcreflect"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	reflectpb "google.golang.org/grpc/reflection/grpc_reflection_v1alpha"
)

// registerRpcClass installs Rpc — supplemented, not part of spec.md's
// canonical built-in list (SPEC_FULL.md §3): a second network built-in
// alongside Запрос/Ответ giving the teacher's heaviest dependency
// cluster — google.golang.org/grpc, google.golang.org/protobuf, and
// github.com/jhump/protoreflect's grpcreflect/dynamic packages — a
// script-visible home. вызвать resolves the target service/method via
// server reflection and invokes one unary call, marshaling a Словарь
// into a dynamic.Message request and the reply back into a Словарь.
func registerRpcClass(i *Interpreter) {
	class := NewClassDefinition(i.Interner.Intern("Rpc"), "Rpc", 0, nil)
	class.IsBuiltin = true
	connSym := i.Interner.Intern("__соединение")

	class.Methods[i.Interner.Intern("__конструктор")] = &MethodSlot{
		IsConstructor: true,
		Native: func(i *Interpreter, args []Value, sp span.Span) (Value, *Flow) {
			this := args[0].(*ClassInstance)
			addr, ok := args[1].(Text)
			if len(args) != 2 || !ok {
				return nil, ErrorFlow(diagnostics.InvalidOperation, sp, "использование: новый Rpc(адрес)")
			}
			conn, err := grpc.NewClient(string(addr), grpc.WithTransportCredentials(insecure.NewCredentials()))
			if err != nil {
				return nil, ErrorFlow(diagnostics.IOError, sp, "не удалось подключиться к %q: %v", string(addr), err)
			}
			this.SetField(connSym, &NativeResource{Kind: "grpc-conn", Data: conn})
			return Empty{}, nil
		},
	}

	class.Methods[i.Interner.Intern("вызвать")] = &MethodSlot{Native: func(i *Interpreter, args []Value, sp span.Span) (Value, *Flow) {
		this := args[0].(*ClassInstance)
		serviceArg, ok1 := args[1].(Text)
		methodArg, ok2 := args[2].(Text)
		payload, ok3 := args[3].(*Dict)
		if len(args) != 4 || !ok1 || !ok2 || !ok3 {
			return nil, ErrorFlow(diagnostics.InvalidOperation, sp, "использование: rpc.вызвать(сервис, метод, поляЗапроса)")
		}
		connV, _ := this.GetField(connSym)
		conn := connV.(*NativeResource).Data.(*grpc.ClientConn)

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		refClient := grpcreflect.NewClientV1Alpha(ctx, reflectpb.NewServerReflectionClient(conn))
		defer refClient.Reset()

		svcDesc, err := refClient.ResolveService(string(serviceArg))
		if err != nil {
			return nil, ErrorFlow(diagnostics.IOError, sp, "не удалось получить описание сервиса %q: %v", string(serviceArg), err)
		}
		methodDesc := svcDesc.FindMethodByName(string(methodArg))
		if methodDesc == nil {
			return nil, ErrorFlow(diagnostics.UndefinedMethod, sp, "сервис %q не имеет метода %q", string(serviceArg), string(methodArg))
		}

		reqMsg := dynamic.NewMessage(methodDesc.GetInputType())
		if err := fillDynamicMessage(reqMsg, payload); err != nil {
			return nil, ErrorFlow(diagnostics.InvalidOperation, sp, "ошибка построения запроса: %v", err)
		}

		stub := grpcdynamic.NewStub(conn)
		respMsg, err := stub.InvokeRpc(ctx, methodDesc, reqMsg)
		if err != nil {
			return nil, ErrorFlow(diagnostics.IOError, sp, "вызов %q.%q не выполнен: %v", string(serviceArg), string(methodArg), err)
		}

		dynResp, ok := respMsg.(*dynamic.Message)
		if !ok {
			return nil, internalError(sp, "неожиданный тип ответа gRPC")
		}
		return dynamicMessageToDict(dynResp), nil
	}}

	i.builtinClasses[class.Name] = class
}

func fillDynamicMessage(msg *dynamic.Message, d *Dict) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	for _, k := range d.Keys {
		field := msg.GetMessageDescriptor().FindFieldByName(k)
		if field == nil {
			continue
		}
		if err := msg.TrySetFieldByName(k, scriptValueToProto(d.Map[k], field)); err != nil {
			return err
		}
	}
	return nil
}

func scriptValueToProto(v Value, field *desc.FieldDescriptor) interface{} {
	switch x := v.(type) {
	case Number:
		return int64(x)
	case Float:
		return float64(x)
	case Boolean:
		return bool(x)
	case Text:
		return string(x)
	default:
		return DisplayText(v)
	}
}

func dynamicMessageToDict(msg *dynamic.Message) *Dict {
	out := NewDict()
	for _, field := range msg.GetKnownFields() {
		out.Set(field.GetName(), protoValueToScript(msg.GetField(field)))
	}
	return out
}

func protoValueToScript(v interface{}) Value {
	switch x := v.(type) {
	case int32:
		return Number(x)
	case int64:
		return Number(x)
	case uint32:
		return Number(x)
	case uint64:
		return Number(x)
	case float32:
		return Float(x)
	case float64:
		return Float(x)
	case bool:
		return Boolean(x)
	case string:
		return Text(x)
	case []byte:
		return Text(x)
	case *dynamic.Message:
		return dynamicMessageToDict(x)
	default:
		return Text("")
	}
}

package evaluator

import (
	"testing"

	"github.com/funvibe/slovo/internal/span"
)

func TestListMethodAddGetRemove(t *testing.T) {
	l := NewList([]Value{Number(1), Number(2), Number(3)})

	if _, flow := listMethod(l, "добавить", []Value{Number(4)}, span.Span{}); flow != nil {
		t.Fatalf("добавить: %v", flow)
	}
	if got, _ := listMethod(l, "длина", nil, span.Span{}); got != Number(4) {
		t.Fatalf("длина = %v, want 4", got)
	}
	got, flow := listMethod(l, "получить", []Value{Number(3)}, span.Span{})
	if flow != nil || got != Number(4) {
		t.Fatalf("получить(3) = %v, %v, want 4, nil", got, flow)
	}

	removed, flow := listMethod(l, "удалить", nil, span.Span{})
	if flow != nil || removed != Number(4) {
		t.Fatalf("удалить = %v, %v, want 4, nil", removed, flow)
	}
	if got, _ := listMethod(l, "длина", nil, span.Span{}); got != Number(3) {
		t.Fatalf("длина after удалить = %v, want 3", got)
	}
}

func TestListMethodOutOfBounds(t *testing.T) {
	l := NewList([]Value{Number(1)})
	if _, flow := listMethod(l, "получить", []Value{Number(5)}, span.Span{}); flow == nil {
		t.Fatalf("expected out-of-bounds error")
	}
}

func TestListMethodUnknownMethod(t *testing.T) {
	l := NewList(nil)
	if _, flow := listMethod(l, "несуществующий", nil, span.Span{}); flow == nil {
		t.Fatalf("expected UndefinedMethod error")
	}
}

func TestDictMethodSetGetHasDeleteKeys(t *testing.T) {
	d := NewDict()
	if _, flow := dictMethod(d, "задать", []Value{Text("a"), Number(1)}, span.Span{}); flow != nil {
		t.Fatalf("задать: %v", flow)
	}
	got, flow := dictMethod(d, "получить", []Value{Text("a")}, span.Span{})
	if flow != nil || got != Number(1) {
		t.Fatalf("получить(a) = %v, %v, want 1, nil", got, flow)
	}
	def, flow := dictMethod(d, "получить", []Value{Text("missing"), Text("по-умолчанию")}, span.Span{})
	if flow != nil || def != Text("по-умолчанию") {
		t.Fatalf("получить with default = %v, %v, want по-умолчанию, nil", def, flow)
	}
	has, _ := dictMethod(d, "имеет", []Value{Text("a")}, span.Span{})
	if has != Boolean(true) {
		t.Fatalf("имеет(a) = %v, want true", has)
	}
	removed, flow := dictMethod(d, "удалить", []Value{Text("a")}, span.Span{})
	if flow != nil || removed != Number(1) {
		t.Fatalf("удалить(a) = %v, %v, want 1, nil", removed, flow)
	}
	if n, _ := dictMethod(d, "длина", nil, span.Span{}); n != Number(0) {
		t.Fatalf("длина after удалить = %v, want 0", n)
	}
}

func TestDictMethodKeysPreserveInsertionOrder(t *testing.T) {
	d := NewDict()
	dictMethod(d, "задать", []Value{Text("z"), Number(1)}, span.Span{})
	dictMethod(d, "задать", []Value{Text("a"), Number(2)}, span.Span{})

	keysV, flow := dictMethod(d, "ключи", nil, span.Span{})
	if flow != nil {
		t.Fatalf("ключи: %v", flow)
	}
	keys := keysV.(*List).Snapshot()
	if len(keys) != 2 || keys[0] != Text("z") || keys[1] != Text("a") {
		t.Fatalf("ключи = %v, want [z a] in insertion order", keys)
	}
}

func TestArrayMethodIsImmutable(t *testing.T) {
	a := NewArray([]Value{Number(1), Number(2), Number(3)})
	sliced, flow := arrayMethod(a, "кусок", []Value{Number(1), Number(3)}, span.Span{})
	if flow != nil {
		t.Fatalf("кусок: %v", flow)
	}
	out := sliced.(*Array)
	if len(out.Items) != 2 || out.Items[0] != Number(2) || out.Items[1] != Number(3) {
		t.Fatalf("кусок(1,3) = %v, want [2 3]", out.Items)
	}
	if len(a.Items) != 3 {
		t.Fatalf("original array mutated by кусок: %v", a.Items)
	}
}

func TestTextMethodCaseAndSplit(t *testing.T) {
	if got, _ := textMethod(Text("Привет"), "верхний", nil, span.Span{}); got != Text("ПРИВЕТ") {
		t.Fatalf("верхний = %v, want ПРИВЕТ", got)
	}
	partsV, flow := textMethod(Text("a,b,c"), "разделить", []Value{Text(",")}, span.Span{})
	if flow != nil {
		t.Fatalf("разделить: %v", flow)
	}
	parts := partsV.(*List).Snapshot()
	if len(parts) != 3 || parts[1] != Text("b") {
		t.Fatalf("разделить(a,b,c) = %v, want [a b c]", parts)
	}
}

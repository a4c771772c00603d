// Package evaluator implements the tree-walking evaluator: the value
// model, environments, class/instance dispatch, and statement/expression
// execution (spec §4.E-§4.K).
package evaluator

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"sync"

	"github.com/funvibe/slovo/internal/interner"
)

// Value is the runtime tagged union (spec §3 Value). Primitives (Number,
// Float, Text, Boolean, Empty) are Go value types compared by content;
// every container/object/callable variant is a pointer type compared by
// identity, matching the spec's equality rule directly.
type Value interface{ valueKind() }

type Number int64

func (Number) valueKind() {}

type Float float64

func (Float) valueKind() {}

type Text string

func (Text) valueKind() {}

type Boolean bool

func (Boolean) valueKind() {}

// Empty is the sole absent-value marker; Empty{} == Empty{} always.
type Empty struct{}

func (Empty) valueKind() {}

// List is a shared-mutable vector (spec §3 Value::List). Compared and
// passed around by its pointer identity.
type List struct {
	mu    sync.Mutex
	Items []Value
}

func NewList(items []Value) *List { return &List{Items: items} }

func (*List) valueKind() {}

func (l *List) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.Items)
}

func (l *List) Get(i int) (Value, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if i < 0 || i >= len(l.Items) {
		return nil, false
	}
	return l.Items[i], true
}

func (l *List) Set(i int, v Value) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	if i < 0 || i >= len(l.Items) {
		return false
	}
	l.Items[i] = v
	return true
}

func (l *List) Append(v Value) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.Items = append(l.Items, v)
}

func (l *List) Snapshot() []Value {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]Value, len(l.Items))
	copy(out, l.Items)
	return out
}

// Dict is a shared-mutable Text→Value map (spec §3 Value::Dict). Keys are
// plain strings: the index expression's text form becomes the key, so no
// interning is needed on this hot path.
type Dict struct {
	mu   sync.Mutex
	Map  map[string]Value
	Keys []string // insertion order, for stable iteration/printing
}

func NewDict() *Dict { return &Dict{Map: make(map[string]Value)} }

func (*Dict) valueKind() {}

func (d *Dict) Get(key string) (Value, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	v, ok := d.Map[key]
	return v, ok
}

func (d *Dict) Set(key string, v Value) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if _, exists := d.Map[key]; !exists {
		d.Keys = append(d.Keys, key)
	}
	d.Map[key] = v
}

func (d *Dict) Len() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.Map)
}

// Array is a shared-immutable vector, built once at creation and never
// mutated thereafter (spec §3 Value::Array); still identity-compared like
// every other container.
type Array struct{ Items []Value }

func NewArray(items []Value) *Array { return &Array{Items: items} }

func (*Array) valueKind() {}

// ModuleRef names a loaded module by its symbol (spec §3 Value::Module);
// the module registry itself lives on Interpreter (see module.go).
type ModuleRef struct{ Name interner.Symbol }

func (ModuleRef) valueKind() {}

// NativeResource wraps an opaque host handle (open file, socket, db
// connection) that built-in methods know how to interpret; the evaluator
// itself never looks inside it.
type NativeResource struct {
	Kind string
	Data interface{}
}

func (*NativeResource) valueKind() {}

// Equals implements spec §3's equality rule: numeric by value, text by
// content, containers/objects/callables by identity, Empty==Empty.
func Equals(a, b Value) bool {
	switch x := a.(type) {
	case Number:
		switch y := b.(type) {
		case Number:
			return x == y
		case Float:
			return Float(x) == y
		}
		return false
	case Float:
		switch y := b.(type) {
		case Float:
			return x == y
		case Number:
			return x == Float(y)
		}
		return false
	case Text:
		y, ok := b.(Text)
		return ok && x == y
	case Boolean:
		y, ok := b.(Boolean)
		return ok && x == y
	case Empty:
		_, ok := b.(Empty)
		return ok
	case *List:
		y, ok := b.(*List)
		return ok && x == y
	case *Dict:
		y, ok := b.(*Dict)
		return ok && x == y
	case *Array:
		y, ok := b.(*Array)
		return ok && x == y
	case *ClassInstance:
		y, ok := b.(*ClassInstance)
		return ok && x == y
	case *ClassDefinition:
		y, ok := b.(*ClassDefinition)
		return ok && x == y
	case *FunctionValue:
		y, ok := b.(*FunctionValue)
		return ok && x == y
	case *Builtin:
		y, ok := b.(*Builtin)
		return ok && x == y
	case ModuleRef:
		y, ok := b.(ModuleRef)
		return ok && x.Name == y.Name
	case *NativeResource:
		y, ok := b.(*NativeResource)
		return ok && x == y
	default:
		return false
	}
}

// Truthy implements spec §3's truthiness table.
func Truthy(v Value) bool {
	switch x := v.(type) {
	case Empty:
		return false
	case Boolean:
		return bool(x)
	case Number:
		return x != 0
	case Float:
		return x != 0 && !math.IsNaN(float64(x))
	case Text:
		return len(x) > 0
	case *List:
		return x.Len() > 0
	case *Dict:
		return x.Len() > 0
	case *Array:
		return len(x.Items) > 0
	default:
		return true
	}
}

// TypeName names a value's runtime type for diagnostics.
func TypeName(v Value) string {
	switch v.(type) {
	case Number:
		return "число"
	case Float:
		return "дробь"
	case Text:
		return "текст"
	case Boolean:
		return "логический"
	case Empty:
		return "пусто"
	case *List:
		return "Список"
	case *Dict:
		return "Словарь"
	case *Array:
		return "Массив"
	case *ClassInstance:
		return "объект"
	case *ClassDefinition:
		return "класс"
	case *FunctionValue, *Builtin:
		return "функция"
	case ModuleRef:
		return "модуль"
	case *NativeResource:
		return "ресурс"
	default:
		return "?"
	}
}

// DisplayText renders a value's text form for print() and for Text
// concatenation (spec §4.G Add rule, §6 print semantics).
func DisplayText(v Value) string {
	switch x := v.(type) {
	case Number:
		return strconv.FormatInt(int64(x), 10)
	case Float:
		return strconv.FormatFloat(float64(x), 'g', -1, 64)
	case Text:
		return string(x)
	case Boolean:
		if x {
			return "истина"
		}
		return "ложь"
	case Empty:
		return "пусто"
	case *List:
		items := x.Snapshot()
		parts := make([]string, len(items))
		for i, it := range items {
			parts[i] = DisplayText(it)
		}
		return "[" + strings.Join(parts, ", ") + "]"
	case *Dict:
		x.mu.Lock()
		parts := make([]string, 0, len(x.Keys))
		for _, k := range x.Keys {
			parts = append(parts, fmt.Sprintf("%s: %s", k, DisplayText(x.Map[k])))
		}
		x.mu.Unlock()
		return "{" + strings.Join(parts, ", ") + "}"
	case *Array:
		parts := make([]string, len(x.Items))
		for i, it := range x.Items {
			parts[i] = DisplayText(it)
		}
		return "[" + strings.Join(parts, ", ") + "]"
	case *ClassInstance:
		return "<объект " + x.ClassRef.NameText + ">"
	case *ClassDefinition:
		return "<класс>"
	case *FunctionValue, *Builtin:
		return "<функция>"
	case ModuleRef:
		return "<модуль>"
	case *NativeResource:
		return "<ресурс " + x.Kind + ">"
	default:
		return "?"
	}
}

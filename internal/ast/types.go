package ast

import "github.com/funvibe/slovo/internal/interner"

// DataType is the advisory (non-enforced) static type annotation grammar
// (spec §3 DataType). Type annotations are parsed but never checked.
type DataType interface{ dataTypeNode() }

type PrimitiveKind int

const (
	PrimNumber PrimitiveKind = iota
	PrimFloat
	PrimText
	PrimBoolean
)

type PrimitiveType struct{ Kind PrimitiveKind }

func (PrimitiveType) dataTypeNode() {}

type ListType struct{ Elem TypeID }

func (ListType) dataTypeNode() {}

type DictType struct{ Key, Value TypeID }

func (DictType) dataTypeNode() {}

type FunctionType struct {
	Params []TypeID
	Ret    TypeID
}

func (FunctionType) dataTypeNode() {}

type ObjectType struct{ ClassName interner.Symbol }

func (ObjectType) dataTypeNode() {}

type GenericType struct{ Name interner.Symbol }

func (GenericType) dataTypeNode() {}

type UnitType struct{}

func (UnitType) dataTypeNode() {}

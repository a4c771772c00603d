package ast

import "github.com/funvibe/slovo/internal/interner"

// ExpressionKind is the marker interface implemented by every expression
// variant (spec §3 ExpressionKind).
type ExpressionKind interface{ expressionKind() }

// BinaryOperator enumerates the binary operators, in precedence order
// (spec §3: higher binds tighter). All are left-associative except Assign,
// which is reserved here and never produced by the parser (spec §9 open
// question 5: Assign is removed from the expression grammar).
type BinaryOperator int

const (
	OpAssign BinaryOperator = iota // precedence 1, reserved, unused by parser
	OpOr                           // 2
	OpAnd                          // 3
	OpEq                           // 4
	OpNe                           // 4
	OpLt                           // 5
	OpLe                           // 5
	OpGt                           // 5
	OpGe                           // 5
	OpAdd                          // 6
	OpSub                          // 6
	OpMul                          // 7
	OpDiv                          // 7
	OpMod                          // 7
)

// UnaryOperator enumerates the unary operators.
type UnaryOperator int

const (
	OpNeg UnaryOperator = iota // -
	OpNot                     // not
)

// LiteralValue is the parsed value carried by a Literal expression.
type LiteralValue struct {
	Kind LiteralKind
	Int  int64
	Flt  float64
	Str  string
	Bool bool
}

type LiteralKind int

const (
	LitInt LiteralKind = iota
	LitFloat
	LitText
	LitBool
)

type LiteralExpr struct{ Value LiteralValue }

func (LiteralExpr) expressionKind() {}

type IdentifierExpr struct {
	Name interner.Symbol
	// Qualifier is set for legacy dotted names (module.Name): the part
	// before the first dot, also interned (spec §4.G).
	Qualifier    interner.Symbol
	HasQualifier bool
}

func (IdentifierExpr) expressionKind() {}

type BinaryExpr struct {
	Op    BinaryOperator
	Left  ExprID
	Right ExprID
}

func (BinaryExpr) expressionKind() {}

type UnaryExpr struct {
	Op      UnaryOperator
	Operand ExprID
}

func (UnaryExpr) expressionKind() {}

type CallExpr struct {
	Function ExprID
	Args     []ExprID
}

func (CallExpr) expressionKind() {}

type MethodCallExpr struct {
	Object ExprID
	Method interner.Symbol
	Args   []ExprID
}

func (MethodCallExpr) expressionKind() {}

type PropertyAccessExpr struct {
	Object   ExprID
	Property interner.Symbol
}

func (PropertyAccessExpr) expressionKind() {}

type ObjectCreationExpr struct {
	// ClassName is the bare class name; if ModuleQualifier is set the class
	// is looked up as ModuleQualifier.ClassName in that module's table.
	ClassName       interner.Symbol
	ModuleQualifier interner.Symbol
	HasQualifier    bool
	Args            []ExprID
}

func (ObjectCreationExpr) expressionKind() {}

type IndexExpr struct {
	Object ExprID
	Index  ExprID
}

func (IndexExpr) expressionKind() {}

type InputExpr struct {
	Prompt ExprID
}

func (InputExpr) expressionKind() {}

type ThisExpr struct{}

func (ThisExpr) expressionKind() {}

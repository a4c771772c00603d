package evaluator

import (
	"github.com/funvibe/slovo/internal/ast"
	"github.com/funvibe/slovo/internal/diagnostics"
	"github.com/funvibe/slovo/internal/span"
)

// evalBinary implements spec §4.G's binary operator rules. And/Or
// short-circuit (§9 open question 1, resolved in favor of short-circuit);
// every other operator evaluates both operands left-to-right first.
func (i *Interpreter) evalBinary(e ast.BinaryExpr, sp span.Span, env *Environment, mod *ModuleRecord) (Value, *Flow) {
	if e.Op == ast.OpOr {
		left, flow := i.evalExpr(e.Left, env, mod)
		if flow != nil {
			return nil, flow
		}
		if Truthy(left) {
			return Boolean(true), nil
		}
		right, flow := i.evalExpr(e.Right, env, mod)
		if flow != nil {
			return nil, flow
		}
		return Boolean(Truthy(right)), nil
	}
	if e.Op == ast.OpAnd {
		left, flow := i.evalExpr(e.Left, env, mod)
		if flow != nil {
			return nil, flow
		}
		if !Truthy(left) {
			return Boolean(false), nil
		}
		right, flow := i.evalExpr(e.Right, env, mod)
		if flow != nil {
			return nil, flow
		}
		return Boolean(Truthy(right)), nil
	}

	left, flow := i.evalExpr(e.Left, env, mod)
	if flow != nil {
		return nil, flow
	}
	right, flow := i.evalExpr(e.Right, env, mod)
	if flow != nil {
		return nil, flow
	}

	switch e.Op {
	case ast.OpAdd:
		return addValues(left, right, sp)
	case ast.OpSub, ast.OpMul, ast.OpDiv, ast.OpMod:
		return arithValues(e.Op, left, right, sp)
	case ast.OpLt, ast.OpLe, ast.OpGt, ast.OpGe:
		return compareValues(e.Op, left, right, sp)
	case ast.OpEq:
		return Boolean(Equals(left, right)), nil
	case ast.OpNe:
		return Boolean(!Equals(left, right)), nil
	}
	return nil, internalError(sp, "unknown binary operator")
}

// addValues implements Add (spec §4.G): Number+Number, Text+Text,
// Text<->Number, and Text<->Boolean (rendered with the Cyrillic literal
// spelling) all concatenate; anything else is a TypeError. Float also
// freely mixes with Number here and in arithValues/compareValues — the
// source this spec was distilled from never exercises Float arithmetic at
// all (see original_source/src/interpreter/operations.rs), so this is a
// supplement rather than a literal port: a Float literal that can never
// be added to anything would be a dead value kind.
func addValues(left, right Value, sp span.Span) (Value, *Flow) {
	if a, ok := left.(Number); ok {
		if b, ok := right.(Number); ok {
			return a + b, nil
		}
	}
	if a, ok := left.(Float); ok {
		if b, ok := right.(Float); ok {
			return a + b, nil
		}
	}
	if a, ok := left.(Number); ok {
		if b, ok := right.(Float); ok {
			return Float(a) + b, nil
		}
	}
	if a, ok := left.(Float); ok {
		if b, ok := right.(Number); ok {
			return a + Float(b), nil
		}
	}
	_, leftText := left.(Text)
	_, rightText := right.(Text)
	_, leftNum := left.(Number)
	_, rightNum := right.(Number)
	_, leftBool := left.(Boolean)
	_, rightBool := right.(Boolean)
	if leftText && rightText {
		return left.(Text) + right.(Text), nil
	}
	if leftText && (rightNum || rightBool) {
		return left.(Text) + Text(DisplayText(right)), nil
	}
	if (leftNum || leftBool) && rightText {
		return Text(DisplayText(left)) + right.(Text), nil
	}
	return nil, ErrorFlow(diagnostics.TypeError, sp, "'+' not supported between %s and %s", TypeName(left), TypeName(right))
}

func arithValues(op ast.BinaryOperator, left, right Value, sp span.Span) (Value, *Flow) {
	lf, lok := asNumeric(left)
	rf, rok := asNumeric(right)
	if !lok || !rok {
		return nil, ErrorFlow(diagnostics.TypeError, sp, "arithmetic requires число/дробь operands, got %s and %s", TypeName(left), TypeName(right))
	}
	_, leftIsFloat := left.(Float)
	_, rightIsFloat := right.(Float)
	useFloat := leftIsFloat || rightIsFloat

	switch op {
	case ast.OpSub:
		if useFloat {
			return Float(lf - rf), nil
		}
		return Number(int64(lf) - int64(rf)), nil
	case ast.OpMul:
		if useFloat {
			return Float(lf * rf), nil
		}
		return Number(int64(lf) * int64(rf)), nil
	case ast.OpDiv:
		if rf == 0 {
			return nil, ErrorFlow(diagnostics.DivisionByZero, sp, "division by zero")
		}
		if useFloat {
			return Float(lf / rf), nil
		}
		return Number(int64(lf) / int64(rf)), nil
	case ast.OpMod:
		if rf == 0 {
			return nil, ErrorFlow(diagnostics.DivisionByZero, sp, "modulo by zero")
		}
		if useFloat {
			return nil, ErrorFlow(diagnostics.TypeError, sp, "'%%' is defined only for число operands")
		}
		return Number(int64(lf) % int64(rf)), nil
	}
	return nil, internalError(sp, "unknown arithmetic operator")
}

func compareValues(op ast.BinaryOperator, left, right Value, sp span.Span) (Value, *Flow) {
	lf, lok := asNumeric(left)
	rf, rok := asNumeric(right)
	if !lok || !rok {
		return nil, ErrorFlow(diagnostics.TypeError, sp, "comparison requires число/дробь operands, got %s and %s", TypeName(left), TypeName(right))
	}
	switch op {
	case ast.OpLt:
		return Boolean(lf < rf), nil
	case ast.OpLe:
		return Boolean(lf <= rf), nil
	case ast.OpGt:
		return Boolean(lf > rf), nil
	case ast.OpGe:
		return Boolean(lf >= rf), nil
	}
	return nil, internalError(sp, "unknown comparison operator")
}

func asNumeric(v Value) (float64, bool) {
	switch x := v.(type) {
	case Number:
		return float64(x), true
	case Float:
		return float64(x), true
	}
	return 0, false
}

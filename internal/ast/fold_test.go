package ast_test

import (
	"testing"

	"github.com/funvibe/slovo/internal/ast"
	"github.com/funvibe/slovo/internal/interner"
)

func TestFoldArithmetic(t *testing.T) {
	in := interner.New()
	a := ast.NewArena(in)

	left := a.AddExpression(ast.ExpressionNode{Kind: ast.LiteralExpr{Value: ast.LiteralValue{Kind: ast.LitInt, Int: 2}}})
	right := a.AddExpression(ast.ExpressionNode{Kind: ast.LiteralExpr{Value: ast.LiteralValue{Kind: ast.LitInt, Int: 3}}})
	sum := a.AddExpression(ast.ExpressionNode{Kind: ast.BinaryExpr{Op: ast.OpAdd, Left: left, Right: right}})

	ast.Fold(a)

	got, ok := a.Expression(sum).Kind.(ast.LiteralExpr)
	if !ok {
		t.Fatalf("expected sum to fold to a literal, got %T", a.Expression(sum).Kind)
	}
	if got.Value.Int != 5 {
		t.Fatalf("2+3 folded to %d, want 5", got.Value.Int)
	}
}

func TestFoldIsIdempotent(t *testing.T) {
	in := interner.New()
	a := ast.NewArena(in)

	left := a.AddExpression(ast.ExpressionNode{Kind: ast.LiteralExpr{Value: ast.LiteralValue{Kind: ast.LitInt, Int: 4}}})
	right := a.AddExpression(ast.ExpressionNode{Kind: ast.LiteralExpr{Value: ast.LiteralValue{Kind: ast.LitInt, Int: 0}}})
	quot := a.AddExpression(ast.ExpressionNode{Kind: ast.BinaryExpr{Op: ast.OpDiv, Left: left, Right: right}})

	ast.Fold(a)
	firstPass := a.Expression(quot).Kind
	ast.Fold(a)
	secondPass := a.Expression(quot).Kind

	// Division by zero is never folded (left as Binary so it surfaces as a
	// runtime DivisionByZero), and running Fold again must not change it.
	if _, ok := firstPass.(ast.BinaryExpr); !ok {
		t.Fatalf("division by zero should not fold, got %T", firstPass)
	}
	if firstPass != secondPass {
		t.Fatalf("fold is not idempotent: %+v != %+v", firstPass, secondPass)
	}
}

func TestArenaIDsAreStable(t *testing.T) {
	in := interner.New()
	a := ast.NewArena(in)
	id1 := a.AddExpression(ast.ExpressionNode{Kind: ast.LiteralExpr{Value: ast.LiteralValue{Kind: ast.LitInt, Int: 1}}})
	id2 := a.AddExpression(ast.ExpressionNode{Kind: ast.LiteralExpr{Value: ast.LiteralValue{Kind: ast.LitInt, Int: 2}}})
	if id1 == id2 {
		t.Fatalf("expected distinct IDs")
	}
	if a.Expression(id1).Kind.(ast.LiteralExpr).Value.Int != 1 {
		t.Fatalf("arena node %d mutated unexpectedly", id1)
	}
}

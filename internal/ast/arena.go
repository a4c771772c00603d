// Package ast defines the arena-backed abstract syntax tree (spec §3, §4.B):
// monotonic, index-addressed storage for expressions, statements and
// types, owned one-per-Module together with the string interner.
package ast

import (
	"github.com/funvibe/slovo/internal/interner"
	"github.com/funvibe/slovo/internal/span"
)

// ExprID, StmtID and TypeID are u32 indices into an Arena's node slices.
// IDs are never exchanged between arenas: each Module owns exactly one
// Arena, and every ID referenced by a node in that arena refers to a node
// previously added to the same arena (spec §3 invariant).
type ExprID uint32
type StmtID uint32
type TypeID uint32

// NoType marks the absence of an optional TypeID (e.g. Let with no
// annotation, Function with no declared return type).
const NoType TypeID = ^TypeID(0)

// ExpressionNode is stored by value in the arena; Kind holds the specific
// expression variant.
type ExpressionNode struct {
	Kind     ExpressionKind
	Span     span.Span
	TypeHint TypeID // NoType if absent
}

// StatementNode is stored by value in the arena.
type StatementNode struct {
	Kind StatementKind
	Span span.Span
}

// Arena owns one module's AST nodes plus the interner symbols referenced
// from them. Cheap to pass around: indices are stable once assigned.
type Arena struct {
	Interner *interner.Interner

	expressions []ExpressionNode
	statements  []StatementNode
	types       []DataType
}

// NewArena creates an arena backed by the given (shared) interner.
func NewArena(in *interner.Interner) *Arena {
	return &Arena{Interner: in}
}

// AddExpression appends a node and returns its ID.
func (a *Arena) AddExpression(n ExpressionNode) ExprID {
	id := ExprID(len(a.expressions))
	a.expressions = append(a.expressions, n)
	return id
}

// Expression returns an immutable-by-convention pointer to node id.
// Mutation is only ever done by the constant-folding pass (Fold), which
// rewrites Kind in place.
func (a *Arena) Expression(id ExprID) *ExpressionNode {
	return &a.expressions[id]
}

// NumExpressions reports how many expression nodes the arena holds.
func (a *Arena) NumExpressions() int { return len(a.expressions) }

// AddStatement appends a node and returns its ID.
func (a *Arena) AddStatement(n StatementNode) StmtID {
	id := StmtID(len(a.statements))
	a.statements = append(a.statements, n)
	return id
}

// Statement returns a pointer to statement node id.
func (a *Arena) Statement(id StmtID) *StatementNode {
	return &a.statements[id]
}

// NumStatements reports how many statement nodes the arena holds.
func (a *Arena) NumStatements() int { return len(a.statements) }

// AddType appends a type node and returns its ID.
func (a *Arena) AddType(t DataType) TypeID {
	id := TypeID(len(a.types))
	a.types = append(a.types, t)
	return id
}

// Type returns the type node at id.
func (a *Arena) Type(id TypeID) DataType {
	return a.types[id]
}

// NumTypes reports how many type nodes the arena holds.
func (a *Arena) NumTypes() int { return len(a.types) }

// Intern is a convenience forwarding to the arena's interner.
func (a *Arena) Intern(s string) interner.Symbol { return a.Interner.Intern(s) }

// Resolve is a convenience forwarding to the arena's interner.
func (a *Arena) Resolve(sym interner.Symbol) string { return a.Interner.MustResolve(sym) }

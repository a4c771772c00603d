package ast

import "github.com/funvibe/slovo/internal/interner"

// ImportDecl is one `подключить "path1", "path2";` declaration (spec §4.D:
// imports appear only at the top of a file, but the parser does not
// strictly enforce this — the evaluator processes them first, spec §4.J).
type ImportDecl struct {
	Paths []string
}

// Program is the parser's output for one source file: a Module's arena
// plus its top-level forms, split by kind the way the evaluator needs them
// (spec §4.D: "A Module starts with optional import declarations and then
// top-level forms"). The runtime Module (internal/modules) wraps a Program
// with resolved functions/classes/globals.
type Program struct {
	File    string
	Arena   *Arena
	Imports []ImportDecl
	// Functions and Classes are recorded in both declaration order (for
	// deterministic re-registration) and by name (for lookup).
	FunctionOrder []interner.Symbol
	Functions     map[interner.Symbol]StmtID // FunctionDefinitionStmt
	ClassOrder    []interner.Symbol
	Classes       map[interner.Symbol]StmtID // ClassDefinitionStmt
	// Body holds every remaining top-level statement, in source order.
	Body []StmtID
}

func NewProgram(file string, arena *Arena) *Program {
	return &Program{
		File:      file,
		Arena:     arena,
		Functions: make(map[interner.Symbol]StmtID),
		Classes:   make(map[interner.Symbol]StmtID),
	}
}

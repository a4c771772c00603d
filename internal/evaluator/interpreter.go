package evaluator

import (
	"bufio"
	"io"
	"path/filepath"

	"github.com/funvibe/slovo/internal/diagnostics"
	"github.com/funvibe/slovo/internal/interner"
	"github.com/funvibe/slovo/internal/span"
)

// Interpreter is the evaluator's top-level handle: the module registry,
// built-in tables, and I/O streams built-ins write to / read from (spec
// §4.F-§4.K combined — see DESIGN.md for why these live in one package).
type Interpreter struct {
	Interner *interner.Interner

	Out io.Writer
	In  *bufio.Reader

	byPath     map[string]*ModuleRecord
	byName     map[interner.Symbol]*ModuleRecord
	processing map[string]bool
	sourceMaps map[interner.Symbol]*span.SourceMap

	builtins       map[interner.Symbol]*Builtin
	builtinClasses map[interner.Symbol]*ClassDefinition

	ctx contextStack

	// repl is the persistent ModuleRecord `EvalLine` (repl.go) reuses
	// across lines; nil until the first EvalLine call.
	repl *ModuleRecord
}

// NewInterpreter builds an interpreter sharing the given interner (the
// same one the lexer/parser used, spec §4.A: one interner per run).
func NewInterpreter(in *interner.Interner, out io.Writer, stdin io.Reader) *Interpreter {
	i := &Interpreter{
		Interner:       in,
		Out:            out,
		In:             bufio.NewReader(stdin),
		byPath:         make(map[string]*ModuleRecord),
		byName:         make(map[interner.Symbol]*ModuleRecord),
		processing:     make(map[string]bool),
		sourceMaps:     make(map[interner.Symbol]*span.SourceMap),
		builtins:       make(map[interner.Symbol]*Builtin),
		builtinClasses: make(map[interner.Symbol]*ClassDefinition),
	}
	RegisterBuiltins(i)
	return i
}

// SourceMap returns the source map recorded for fileID, if the owning file
// has been loaded (used by the CLI to format diagnostics).
func (i *Interpreter) SourceMap(fileID interner.Symbol) *span.SourceMap {
	return i.sourceMaps[fileID]
}

// RunFile parses and executes the given file as the program's entry
// module (spec §6 "<tool> run <file>").
func (i *Interpreter) RunFile(path string) *Flow {
	abs, _ := filepath.Abs(path)
	rec, flow := i.loadModule(abs)
	if flow != nil {
		return flow
	}
	return i.execModuleBody(rec)
}

// lookupModuleByName resolves a dotted-name qualifier to a loaded module
// (spec §4.G/§4.J "Cross-module name resolution uses Module.Name dotted
// syntax"). Only already-imported modules are visible this way.
func (i *Interpreter) lookupModuleByName(name interner.Symbol) (*ModuleRecord, bool) {
	rec, ok := i.byName[name]
	return rec, ok
}

func internalError(sp span.Span, format string, args ...interface{}) *Flow {
	return ErrorFlow(diagnostics.InternalError, sp, format, args...)
}

package evaluator

import (
	"os"
	"path/filepath"

	"github.com/funvibe/slovo/internal/ast"
	"github.com/funvibe/slovo/internal/diagnostics"
	"github.com/funvibe/slovo/internal/interner"
	"github.com/funvibe/slovo/internal/lexer"
	"github.com/funvibe/slovo/internal/modules"
	"github.com/funvibe/slovo/internal/parser"
	"github.com/funvibe/slovo/internal/span"
)

// ModuleRecord is the runtime counterpart of a parsed ast.Program (spec §3
// Module): the program plus its resolved function/class tables and the
// globals frame top-level statements run against.
type ModuleRecord struct {
	Name      interner.Symbol
	Dir       string
	Program   *ast.Program
	Globals   *Environment
	Functions map[interner.Symbol]*FunctionValue
	Classes   map[interner.Symbol]*ClassDefinition
}

// loadModule resolves, parses (if not already cached) and registers the
// module at path, following spec §4.J steps 1-2-3 but stopping short of
// step 4 (body execution), which the caller controls — a fresh import
// runs the body once at import time, but RunFile's own module also needs
// the record before running its body.
func (i *Interpreter) loadModule(path string) (*ModuleRecord, *Flow) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, ErrorFlow(diagnostics.IOError, span.Span{}, "cannot resolve path %q: %v", path, err)
	}
	if i.processing[abs] {
		return nil, ErrorFlow(diagnostics.InvalidOperation, span.Span{}, "cyclic import: %q", path)
	}
	if rec, ok := i.byPath[abs]; ok {
		return rec, nil
	}
	i.processing[abs] = true
	defer delete(i.processing, abs)

	src, err := os.ReadFile(abs)
	if err != nil {
		return nil, ErrorFlow(diagnostics.IOError, span.Span{}, "cannot read %q: %v", path, err)
	}

	arena := ast.NewArena(i.Interner)
	toks := lexer.Tokenize(string(src))
	prog, perr := parser.New(abs, toks, arena).Parse()
	if perr != nil {
		return nil, &Flow{Diagnostic: perr}
	}
	ast.Fold(arena)

	i.sourceMaps[i.Interner.Intern(abs)] = span.NewSourceMap(abs, string(src))

	name := i.Interner.Intern(modules.NameOf(abs))
	rec := &ModuleRecord{
		Name:      name,
		Dir:       filepath.Dir(abs),
		Program:   prog,
		Globals:   NewEnvironment(),
		Functions: make(map[interner.Symbol]*FunctionValue),
		Classes:   make(map[interner.Symbol]*ClassDefinition),
	}
	i.byPath[abs] = rec
	i.byName[name] = rec

	// Register classes first (spec §4.J step 2): bind defaults lazily via
	// the stored ExprID, install methods as MethodSlots.
	for _, sym := range prog.ClassOrder {
		stmtID := prog.Classes[sym]
		def := arena.Statement(stmtID).Kind.(ast.ClassDefinitionStmt)
		class := NewClassDefinition(sym, arena.Resolve(sym), name, arena)
		for _, f := range def.Fields {
			class.Fields = append(class.Fields, FieldSlot{
				Name: f.Name, Visibility: f.Visibility, IsStatic: f.IsStatic,
				Default: f.Default, HasDefault: f.HasDefault,
			})
		}
		for _, m := range def.Methods {
			class.Methods[m.Name] = &MethodSlot{
				Name: m.Name, Params: m.Params, ReturnType: m.ReturnType, Body: m.Body,
				Visibility: m.Visibility, IsStatic: m.IsStatic, IsConstructor: m.IsConstructor,
			}
		}
		rec.Classes[sym] = class
	}

	// Register top-level functions as Value::Function (spec §4.J step 3).
	for _, sym := range prog.FunctionOrder {
		stmtID := prog.Functions[sym]
		def := arena.Statement(stmtID).Kind.(ast.FunctionDefinitionStmt)
		fn := &FunctionValue{Name: sym, Params: def.Params, ReturnType: def.ReturnType, Body: def.Body, ModuleID: name, Arena: arena}
		rec.Functions[sym] = fn
		rec.Globals.Define(sym, fn)
	}

	// Process this module's own imports (spec §4.J: "evaluator processes
	// them first"); each imported module's name becomes a ModuleRef binding
	// so `lib.dbl(21)` resolves via ordinary property/method-call evaluation
	// instead of a special case in the expression evaluator.
	for _, decl := range prog.Imports {
		for _, p := range decl.Paths {
			if flow := i.importModule(rec.Dir, p, span.Span{FileID: i.Interner.Intern(abs)}); flow != nil {
				return nil, flow
			}
			importedName := i.Interner.Intern(modules.NameOf(p))
			rec.Globals.Define(importedName, ModuleRef{Name: importedName})
		}
	}

	return rec, nil
}

// importModule performs the full spec §4.J sequence for one path named in
// an `import` declaration: load-or-reuse, then (only the first time) run
// its body.
func (i *Interpreter) importModule(fromDir, importPath string, callSpan span.Span) *Flow {
	file, ok := modules.Resolve(fromDir, importPath)
	if !ok {
		return ErrorFlow(diagnostics.IOError, callSpan, "cannot locate import %q from %q", importPath, fromDir)
	}
	abs, _ := filepath.Abs(file)
	alreadyLoaded := i.byPath[abs] != nil

	rec, flow := i.loadModule(file)
	if flow != nil {
		return flow
	}
	if !alreadyLoaded {
		if flow := i.execModuleBody(rec); flow != nil {
			return flow
		}
	}
	return nil
}

// execModuleBody runs a module's top-level statements top-to-bottom in its
// own globals frame (spec §4.J step 4).
func (i *Interpreter) execModuleBody(rec *ModuleRecord) *Flow {
	i.ctx.push(callContext{moduleID: rec.Name})
	defer i.ctx.pop()
	for _, sid := range rec.Program.Body {
		if flow := i.execStatement(sid, rec.Globals, rec); flow != nil {
			if flow.IsReturn {
				return ErrorFlow(diagnostics.InvalidOperation, span.Span{}, "stray return")
			}
			return flow
		}
	}
	return nil
}

package evaluator

import (
	"github.com/funvibe/slovo/internal/ast"
	"github.com/funvibe/slovo/internal/diagnostics"
	"github.com/funvibe/slovo/internal/interner"
	"github.com/funvibe/slovo/internal/lexer"
	"github.com/funvibe/slovo/internal/modules"
	"github.com/funvibe/slovo/internal/parser"
	"github.com/funvibe/slovo/internal/span"
)

const replModuleName = "<репл>"

// EvalLine feeds one line of `slovo repl` input through the same
// load/register/run sequence loadModule+execModuleBody use for a file
// (spec §4.J), but keeps one ModuleRecord alive across calls instead of
// building a fresh one per line. This matters because callFunction and
// callMethod resolve a body's statements against the *current*
// Program.Arena of the function/class's home module (dispatch.go) rather
// than a copy carried on the value itself — a function defined on one
// line would become unresolvable on the next if each line got its own
// arena. Parsing every line into the same retained arena keeps every
// earlier StmtID/ExprID permanently valid (arena IDs are append-only
// slice indices, ast.Arena's doc comment).
func (i *Interpreter) EvalLine(line string) *Flow {
	rec := i.replRecord()

	toks := lexer.Tokenize(line)
	prog, perr := parser.New(replModuleName, toks, rec.Program.Arena).Parse()
	if perr != nil {
		return &Flow{Diagnostic: perr}
	}
	ast.Fold(rec.Program.Arena)
	rec.Program = prog

	for _, sym := range prog.ClassOrder {
		def := rec.Program.Arena.Statement(prog.Classes[sym]).Kind.(ast.ClassDefinitionStmt)
		class := NewClassDefinition(sym, rec.Program.Arena.Resolve(sym), rec.Name, rec.Program.Arena)
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

	for _, sym := range prog.FunctionOrder {
		def := rec.Program.Arena.Statement(prog.Functions[sym]).Kind.(ast.FunctionDefinitionStmt)
		fn := &FunctionValue{
			Name: sym, Params: def.Params, ReturnType: def.ReturnType, Body: def.Body,
			ModuleID: rec.Name, Arena: rec.Program.Arena,
		}
		rec.Functions[sym] = fn
		rec.Globals.Define(sym, fn)
	}

	for _, decl := range prog.Imports {
		for _, p := range decl.Paths {
			if flow := i.importModule(rec.Dir, p, span.Span{}); flow != nil {
				return flow
			}
			importedName := i.Interner.Intern(modules.NameOf(p))
			rec.Globals.Define(importedName, ModuleRef{Name: importedName})
		}
	}

	i.ctx.push(callContext{moduleID: rec.Name})
	defer i.ctx.pop()
	for _, sid := range prog.Body {
		if flow := i.execStatement(sid, rec.Globals, rec); flow != nil {
			if flow.IsReturn {
				return ErrorFlow(diagnostics.InvalidOperation, span.Span{}, "stray return outside function")
			}
			return flow
		}
	}
	return nil
}

// replRecord returns the REPL session's single persistent ModuleRecord,
// creating it (and its one arena) on first use.
func (i *Interpreter) replRecord() *ModuleRecord {
	if i.repl != nil {
		return i.repl
	}
	name := i.Interner.Intern(replModuleName)
	arena := ast.NewArena(i.Interner)
	rec := &ModuleRecord{
		Name:      name,
		Dir:       ".",
		Program:   ast.NewProgram(replModuleName, arena),
		Globals:   NewEnvironment(),
		Functions: make(map[interner.Symbol]*FunctionValue),
		Classes:   make(map[interner.Symbol]*ClassDefinition),
	}
	i.byName[name] = rec
	i.repl = rec
	return rec
}

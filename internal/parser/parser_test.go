package parser

import (
	"testing"

	"github.com/funvibe/slovo/internal/ast"
	"github.com/funvibe/slovo/internal/interner"
	"github.com/funvibe/slovo/internal/lexer"
)

func parse(t *testing.T, src string) *ast.Program {
	t.Helper()
	toks := lexer.Tokenize(src)
	arena := ast.NewArena(interner.New())
	prog, err := New("test.слово", toks, arena).Parse()
	if err != nil {
		t.Fatalf("unexpected parse error: %v", err)
	}
	return prog
}

func parseErr(t *testing.T, src string) {
	t.Helper()
	toks := lexer.Tokenize(src)
	arena := ast.NewArena(interner.New())
	_, err := New("test.слово", toks, arena).Parse()
	if err == nil {
		t.Fatalf("expected parse error, got none")
	}
}

func TestPrecedenceAndAssociativity(t *testing.T) {
	// 1 + 2 * 3 - 4 should parse as (1 + (2 * 3)) - 4: Sub at the root.
	prog := parse(t, "печать(1 + 2 * 3 - 4);")
	stmt := prog.Arena.Statement(prog.Body[0])
	print, ok := stmt.Kind.(ast.PrintStmt)
	if !ok {
		t.Fatalf("expected PrintStmt, got %T", stmt.Kind)
	}
	root := prog.Arena.Expression(print.Value).Kind.(ast.BinaryExpr)
	if root.Op != ast.OpSub {
		t.Fatalf("expected root op Sub, got %v", root.Op)
	}
	left := prog.Arena.Expression(root.Left).Kind.(ast.BinaryExpr)
	if left.Op != ast.OpAdd {
		t.Fatalf("expected left op Add, got %v", left.Op)
	}
	right := prog.Arena.Expression(left.Right).Kind.(ast.BinaryExpr)
	if right.Op != ast.OpMul {
		t.Fatalf("expected nested right op Mul, got %v", right.Op)
	}
}

func TestAssignmentUnification(t *testing.T) {
	prog := parse(t, "x = 5;")
	stmt := prog.Arena.Statement(prog.Body[0]).Kind
	if _, ok := stmt.(ast.AssignStmt); !ok {
		t.Fatalf("expected AssignStmt, got %T", stmt)
	}

	prog = parse(t, "a[0] = 5;")
	stmt = prog.Arena.Statement(prog.Body[0]).Kind
	if _, ok := stmt.(ast.IndexAssignStmt); !ok {
		t.Fatalf("expected IndexAssignStmt, got %T", stmt)
	}

	prog = parse(t, "это.x = 5;")
	stmt = prog.Arena.Statement(prog.Body[0]).Kind
	if _, ok := stmt.(ast.PropertyAssignStmt); !ok {
		t.Fatalf("expected PropertyAssignStmt, got %T", stmt)
	}
}

func TestInvalidAssignmentTarget(t *testing.T) {
	parseErr(t, "1 + 1 = 5;")
}

func TestForLoopBounds(t *testing.T) {
	prog := parse(t, "для (i = 1; 10) { печать(i); }")
	stmt := prog.Arena.Statement(prog.Body[0]).Kind.(ast.ForStmt)
	start := prog.Arena.Expression(stmt.Start).Kind.(ast.LiteralExpr)
	end := prog.Arena.Expression(stmt.End).Kind.(ast.LiteralExpr)
	if start.Value.Int != 1 || end.Value.Int != 10 {
		t.Fatalf("expected bounds 1..10, got %d..%d", start.Value.Int, end.Value.Int)
	}
}

func TestImportParsing(t *testing.T) {
	prog := parse(t, `подключить "std/text", "std/io"; печать(1);`)
	if len(prog.Imports) != 1 {
		t.Fatalf("expected one import decl, got %d", len(prog.Imports))
	}
	if len(prog.Imports[0].Paths) != 2 {
		t.Fatalf("expected two paths, got %d", len(prog.Imports[0].Paths))
	}
}

func TestClassDefinitionParsing(t *testing.T) {
	src := `
класс Точка {
  приватный x: число = 0;
  публичный конструктор(v: число) {
    это.x = v;
  }
  публичный функция получить(): число {
    вернуть это.x;
  }
}
`
	prog := parse(t, src)
	if len(prog.ClassOrder) != 1 {
		t.Fatalf("expected one class, got %d", len(prog.ClassOrder))
	}
	id := prog.Classes[prog.ClassOrder[0]]
	def := prog.Arena.Statement(id).Kind.(ast.ClassDefinitionStmt)
	if len(def.Fields) != 1 {
		t.Fatalf("expected one field, got %d", len(def.Fields))
	}
	if def.Fields[0].Visibility != ast.Private {
		t.Fatalf("expected private field")
	}
	if len(def.Methods) != 2 {
		t.Fatalf("expected constructor + one method, got %d", len(def.Methods))
	}
	var sawCtor bool
	for _, m := range def.Methods {
		if m.IsConstructor {
			sawCtor = true
		}
	}
	if !sawCtor {
		t.Fatalf("expected a constructor method")
	}
}

func TestListAndDictLiteralsDesugarToObjectCreation(t *testing.T) {
	prog := parse(t, "пусть a = [1, 2, 3];")
	let := prog.Arena.Statement(prog.Body[0]).Kind.(ast.LetStmt)
	oc := prog.Arena.Expression(let.Value).Kind.(ast.ObjectCreationExpr)
	if prog.Arena.Resolve(oc.ClassName) != "Список" {
		t.Fatalf("expected Список constructor, got %q", prog.Arena.Resolve(oc.ClassName))
	}
	if len(oc.Args) != 3 {
		t.Fatalf("expected 3 args, got %d", len(oc.Args))
	}

	prog = parse(t, "пусть d = {\"a\": 1};")
	let = prog.Arena.Statement(prog.Body[0]).Kind.(ast.LetStmt)
	oc = prog.Arena.Expression(let.Value).Kind.(ast.ObjectCreationExpr)
	if prog.Arena.Resolve(oc.ClassName) != "Словарь" {
		t.Fatalf("expected Словарь constructor, got %q", prog.Arena.Resolve(oc.ClassName))
	}
	if len(oc.Args) != 2 {
		t.Fatalf("expected 2 args (key, value), got %d", len(oc.Args))
	}
}

func TestTypeAnnotationsWithGenerics(t *testing.T) {
	prog := parse(t, "пусть a: список<число> = [1];")
	let := prog.Arena.Statement(prog.Body[0]).Kind.(ast.LetStmt)
	lt := prog.Arena.Type(let.TypeHint).(ast.ListType)
	elem := prog.Arena.Type(lt.Elem).(ast.PrimitiveType)
	if elem.Kind != ast.PrimNumber {
		t.Fatalf("expected число element type, got %v", elem.Kind)
	}
}

package evaluator_test

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/funvibe/slovo/internal/evaluator"
	"github.com/funvibe/slovo/internal/interner"
)

// runSource writes src to a temp file and runs it as an entry module,
// returning stdout and the resulting Flow (nil on success) — RunFile is
// the evaluator's entry point for whole programs (spec §4.J modules are
// the unit of execution), so every scenario test goes through a real file.
func runSource(t *testing.T, src string) (string, *evaluator.Flow) {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "main.слово")
	if err := os.WriteFile(path, []byte(src), 0o644); err != nil {
		t.Fatalf("writing temp source: %v", err)
	}
	var out bytes.Buffer
	interp := evaluator.NewInterpreter(interner.New(), &out, strings.NewReader(""))
	flow := interp.RunFile(path)
	return out.String(), flow
}

func TestArithmeticAndPrint(t *testing.T) {
	out, flow := runSource(t, `пусть x = 2 + 3 * 4;
печать(x);
`)
	if flow != nil {
		t.Fatalf("unexpected error: %v", flow)
	}
	if out != "14\n" {
		t.Fatalf("got %q, want %q", out, "14\n")
	}
}

func TestFunctionsAndRecursion(t *testing.T) {
	out, flow := runSource(t, `функция f(n: число): число {
  если (n <= 1) { вернуть n; }
  вернуть f(n - 1) + f(n - 2);
}
печать(f(10));
`)
	if flow != nil {
		t.Fatalf("unexpected error: %v", flow)
	}
	if out != "55\n" {
		t.Fatalf("got %q, want %q", out, "55\n")
	}
}

func TestClassWithPrivateField(t *testing.T) {
	out, flow := runSource(t, `класс Точка {
  приватный x: число = 0;
  публичный функция получить(): число { вернуть это.x; }
  публичный функция задать(v: число) { это.x = v; }
}
пусть p = новый Точка();
p.задать(7);
печать(p.получить());
`)
	if flow != nil {
		t.Fatalf("unexpected error: %v", flow)
	}
	if out != "7\n" {
		t.Fatalf("got %q, want %q", out, "7\n")
	}
}

func TestPrivateFieldAccessOutsideClassIsRejected(t *testing.T) {
	_, flow := runSource(t, `класс Точка {
  приватный x: число = 0;
}
пусть p = новый Точка();
печать(p.x);
`)
	if flow == nil {
		t.Fatalf("expected a visibility error, got none")
	}
}

func TestDictAndLoop(t *testing.T) {
	out, flow := runSource(t, `пусть d = {"a": 1, "b": 2};
d["c"] = 3;
пусть sum = 0;
для (i = 1; 3) { sum = sum + d["b"]; }
печать(sum);
`)
	if flow != nil {
		t.Fatalf("unexpected error: %v", flow)
	}
	if out != "6\n" {
		t.Fatalf("got %q, want %q", out, "6\n")
	}
}

func TestDivisionByZeroIsReported(t *testing.T) {
	_, flow := runSource(t, `печать(10 / 0);
`)
	if flow == nil {
		t.Fatalf("expected DivisionByZero, got none")
	}
	if flow.Diagnostic == nil || !strings.Contains(string(flow.Diagnostic.Kind), "Division") {
		t.Fatalf("expected DivisionByZero diagnostic, got %+v", flow.Diagnostic)
	}
}

func TestModuleImport(t *testing.T) {
	dir := t.TempDir()
	libPath := filepath.Join(dir, "lib.слово")
	mainPath := filepath.Join(dir, "main.слово")
	if err := os.WriteFile(libPath, []byte(`функция dbl(n: число): число { вернуть n + n; }
`), 0o644); err != nil {
		t.Fatalf("writing lib: %v", err)
	}
	if err := os.WriteFile(mainPath, []byte(`подключить "lib";
печать(lib.dbl(21));
`), 0o644); err != nil {
		t.Fatalf("writing main: %v", err)
	}

	var out bytes.Buffer
	interp := evaluator.NewInterpreter(interner.New(), &out, strings.NewReader(""))
	if flow := interp.RunFile(mainPath); flow != nil {
		t.Fatalf("unexpected error: %v", flow)
	}
	if out.String() != "42\n" {
		t.Fatalf("got %q, want %q", out.String(), "42\n")
	}
}

func TestCyclicImportIsRejected(t *testing.T) {
	dir := t.TempDir()
	aPath := filepath.Join(dir, "a.слово")
	bPath := filepath.Join(dir, "b.слово")
	if err := os.WriteFile(aPath, []byte(`подключить "b";
`), 0o644); err != nil {
		t.Fatalf("writing a: %v", err)
	}
	if err := os.WriteFile(bPath, []byte(`подключить "a";
`), 0o644); err != nil {
		t.Fatalf("writing b: %v", err)
	}

	var out bytes.Buffer
	interp := evaluator.NewInterpreter(interner.New(), &out, strings.NewReader(""))
	flow := interp.RunFile(aPath)
	if flow == nil {
		t.Fatalf("expected a cyclic import error, got none")
	}
	if !strings.Contains(flow.Diagnostic.Message, "cyclic import") {
		t.Fatalf("expected a cyclic import message, got %q", flow.Diagnostic.Message)
	}
}

func TestListLiteralAndNativeMethods(t *testing.T) {
	out, flow := runSource(t, `пусть l = [1, 2, 3];
l.добавить(4);
печать(l.длина());
печать(l.получить(3));
`)
	if flow != nil {
		t.Fatalf("unexpected error: %v", flow)
	}
	if out != "4\n4\n" {
		t.Fatalf("got %q, want %q", out, "4\n4\n")
	}
}

func TestNumberCoercionBuiltin(t *testing.T) {
	out, flow := runSource(t, `печать(число("42"));
`)
	if flow != nil {
		t.Fatalf("unexpected error: %v", flow)
	}
	if out != "42\n" {
		t.Fatalf("got %q, want %q", out, "42\n")
	}
}

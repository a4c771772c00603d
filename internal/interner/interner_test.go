package interner_test

import (
	"testing"

	"github.com/funvibe/slovo/internal/interner"
)

func TestInternIdentity(t *testing.T) {
	in := interner.New()

	a := in.Intern("привет")
	b := in.Intern("привет")
	c := in.Intern("мир")

	if a != b {
		t.Fatalf("expected equal symbols for equal strings, got %v != %v", a, b)
	}
	if a == c {
		t.Fatalf("expected distinct symbols for distinct strings")
	}

	got, ok := in.Resolve(a)
	if !ok || got != "привет" {
		t.Fatalf("Resolve(Intern(s)) = %q, %v; want %q, true", got, ok, "привет")
	}
}

func TestResolveUnknown(t *testing.T) {
	in := interner.New()
	if _, ok := in.Resolve(interner.Symbol(999)); ok {
		t.Fatalf("expected Resolve of unknown symbol to fail")
	}
}

func TestInternManyStable(t *testing.T) {
	in := interner.New()
	words := []string{"пусть", "если", "иначе", "пока", "для", "пусть", "если"}
	seen := make(map[string]interner.Symbol)
	for _, w := range words {
		sym := in.Intern(w)
		if prev, ok := seen[w]; ok {
			if prev != sym {
				t.Fatalf("symbol for %q changed across calls", w)
			}
		} else {
			seen[w] = sym
		}
	}
}

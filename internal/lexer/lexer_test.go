package lexer

import (
	"testing"

	"github.com/funvibe/slovo/internal/token"
)

// TestUnknownCharacterIsSilentlySkipped covers spec §4.C: a stray
// unrecognized character must never surface as a token (ILLEGAL or
// otherwise) — the lexer consumes it and keeps scanning for the next
// real token.
func TestUnknownCharacterIsSilentlySkipped(t *testing.T) {
	toks := Tokenize("пусть x #emoji 🤖 = 1;\n")

	for _, tok := range toks {
		if tok.Type == token.ILLEGAL {
			t.Fatalf("got ILLEGAL token %+v, want unknown characters silently skipped", tok)
		}
	}

	var types []token.Type
	for _, tok := range toks {
		types = append(types, tok.Type)
	}
	// '#' and '🤖' are skipped; "emoji" itself is an ordinary identifier.
	want := []token.Type{token.LET, token.IDENT, token.IDENT, token.ASSIGN, token.INT, token.SEMI, token.END_FILE}
	if len(types) != len(want) {
		t.Fatalf("got %d tokens %v, want %d tokens %v", len(types), types, len(want), want)
	}
	for i := range want {
		if types[i] != want[i] {
			t.Fatalf("token %d = %v, want %v (full: %v)", i, types[i], want[i], types)
		}
	}
}

// TestUnknownCharacterAtEndOfFileStillTerminates guards against the
// goto-based rescan looping forever when the bad character is the last
// thing before EOF.
func TestUnknownCharacterAtEndOfFileStillTerminates(t *testing.T) {
	toks := Tokenize("1 #")
	if len(toks) != 2 {
		t.Fatalf("got %d tokens %v, want [INT END_FILE]", len(toks), toks)
	}
	if toks[0].Type != token.INT || toks[1].Type != token.END_FILE {
		t.Fatalf("got %v, want [INT END_FILE]", toks)
	}
}

// Package parser implements the recursive-descent, Pratt-style parser that
// turns a token stream into an arena-backed Module (spec §4.D).
package parser

import (
	"github.com/funvibe/slovo/internal/ast"
	"github.com/funvibe/slovo/internal/diagnostics"
	"github.com/funvibe/slovo/internal/interner"
	"github.com/funvibe/slovo/internal/span"
	"github.com/funvibe/slovo/internal/token"
)

// Parser is not recovery-oriented: it aborts at the first error (spec §4.D).
type Parser struct {
	file   string
	fileID interner.Symbol
	tokens []token.Token
	pos    int

	program *ast.Program
	arena   *ast.Arena

	err *diagnostics.Diagnostic
}

// New creates a Parser over an already-tokenized stream (spec: lexer
// output is `[TokenInfo]` terminated by EndFile).
func New(file string, tokens []token.Token, arena *ast.Arena) *Parser {
	p := &Parser{
		file:    file,
		fileID:  arena.Intern(file),
		tokens:  tokens,
		program: ast.NewProgram(file, arena),
		arena:   arena,
	}
	return p
}

// Parse runs the parser to completion, returning the Program or the first
// error encountered.
func (p *Parser) Parse() (*ast.Program, *diagnostics.Diagnostic) {
	p.parseImports()
	for !p.atEnd() && p.err == nil {
		p.parseTopLevelForm()
	}
	if p.err != nil {
		return nil, p.err
	}
	return p.program, nil
}

func (p *Parser) parseTopLevelForm() {
	switch p.cur().Type {
	case token.FUNCTION:
		p.parseFunctionDefinition(true)
	case token.CLASS:
		p.parseClassDefinition()
	case token.IMPORT:
		p.parseImports()
	default:
		id := p.parseStatement()
		if p.err == nil {
			p.program.Body = append(p.program.Body, id)
		}
	}
}

// --- token stream helpers -------------------------------------------------

func (p *Parser) cur() token.Token {
	if p.pos >= len(p.tokens) {
		return token.Token{Type: token.END_FILE}
	}
	return p.tokens[p.pos]
}

func (p *Parser) peekAt(n int) token.Token {
	i := p.pos + n
	if i >= len(p.tokens) {
		return token.Token{Type: token.END_FILE}
	}
	return p.tokens[i]
}

func (p *Parser) advance() token.Token {
	t := p.cur()
	if p.pos < len(p.tokens) {
		p.pos++
	}
	return t
}

func (p *Parser) atEnd() bool {
	return p.err != nil || p.cur().Type == token.END_FILE
}

func (p *Parser) check(t token.Type) bool { return p.cur().Type == t }

func (p *Parser) match(t token.Type) bool {
	if p.check(t) {
		p.advance()
		return true
	}
	return false
}

// expect consumes a token of type t or records a fatal UnexpectedToken
// error at the offending token's span (spec §4.D).
func (p *Parser) expect(t token.Type) token.Token {
	if p.err != nil {
		return token.Token{}
	}
	if !p.check(t) {
		p.fail("expected %s, got %s %q", t, p.cur().Type, p.cur().Lexeme)
		return token.Token{}
	}
	return p.advance()
}

func (p *Parser) fail(format string, args ...interface{}) {
	if p.err != nil {
		return
	}
	tok := p.cur()
	sp := span.Span{Start: tok.Start, End: tok.End, FileID: p.fileID}
	p.err = diagnostics.New(diagnostics.UnexpectedToken, sp, format, args...)
}

func (p *Parser) spanFrom(tok token.Token) span.Span {
	return span.Span{Start: tok.Start, End: p.tokens[max(p.pos-1, 0)].End, FileID: p.fileID}
}

func (p *Parser) spanOf(tok token.Token) span.Span {
	return span.Span{Start: tok.Start, End: tok.End, FileID: p.fileID}
}

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}

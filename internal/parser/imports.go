package parser

import (
	"github.com/funvibe/slovo/internal/ast"
	"github.com/funvibe/slovo/internal/token"
)

// parseImports consumes the optional run of `подключить "path1", "path2";`
// declarations at the top of the file (spec §4.D: imports appear only at
// the top but the parser does not strictly enforce this — a later
// top-level import is collected the same way by parseTopLevelForm).
func (p *Parser) parseImports() {
	for p.check(token.IMPORT) && p.err == nil {
		p.advance() // 'подключить'
		var paths []string
		for {
			tok := p.expect(token.STRING)
			if p.err != nil {
				return
			}
			paths = append(paths, tok.Lexeme)
			if !p.match(token.COMMA) {
				break
			}
		}
		p.expect(token.SEMI)
		if p.err != nil {
			return
		}
		p.program.Imports = append(p.program.Imports, ast.ImportDecl{Paths: paths})
	}
}

package parser

import (
	"github.com/funvibe/slovo/internal/ast"
	"github.com/funvibe/slovo/internal/token"
)

// parseFunctionDefinition parses `функция name(params): retType { body }`.
// When topLevel is true the result is registered in the program's function
// table and order; when false (a `функция` statement inside a block) the
// definition is only a statement, bound when that statement executes.
func (p *Parser) parseFunctionDefinition(topLevel bool) ast.StmtID {
	tok := p.advance() // 'функция'
	nameTok := p.expect(token.IDENT)
	if p.err != nil {
		return 0
	}
	name := p.arena.Intern(nameTok.Lexeme)

	params := p.parseParamList()
	retType := ast.NoType
	if p.match(token.COLON) {
		retType = p.parseTypeAnnotation()
	}
	body := p.parseBlock()

	stmt := ast.FunctionDefinitionStmt{Name: name, Params: params, ReturnType: retType, Body: body}
	id := p.arena.AddStatement(ast.StatementNode{Kind: stmt, Span: p.spanFrom(tok)})

	if topLevel {
		p.program.FunctionOrder = append(p.program.FunctionOrder, name)
		p.program.Functions[name] = id
	}
	return id
}

// parseParamList parses `(name: type, name: type, ...)`, type annotations
// optional and advisory (spec §2).
func (p *Parser) parseParamList() []ast.Parameter {
	p.expect(token.LPAREN)
	var params []ast.Parameter
	if !p.check(token.RPAREN) {
		for {
			nameTok := p.expect(token.IDENT)
			if p.err != nil {
				break
			}
			param := ast.Parameter{Name: p.arena.Intern(nameTok.Lexeme), TypeHint: ast.NoType}
			if p.match(token.COLON) {
				param.TypeHint = p.parseTypeAnnotation()
			}
			params = append(params, param)
			if !p.match(token.COMMA) {
				break
			}
		}
	}
	p.expect(token.RPAREN)
	return params
}

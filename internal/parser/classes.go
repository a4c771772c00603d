package parser

import (
	"github.com/funvibe/slovo/internal/ast"
	"github.com/funvibe/slovo/internal/token"
)

// parseClassDefinition parses:
//
//	class Point {
//	  private x: number = 0;
//	  public function get(): number { return this.x; }
//	  public constructor(v: number) { this.x = v; }
//	}
//
// (spec §3 ClassDefinition / §4.D). Every member starts with an explicit
// 'публичный'/'приватный' visibility keyword. A constructor is optional;
// when present it is recorded in Methods with IsConstructor=true rather
// than in a separate slot, the same shape spec §3's
// "constructor: Option<MethodType>" projects onto a flat method table.
func (p *Parser) parseClassDefinition() ast.StmtID {
	tok := p.advance() // 'класс'
	nameTok := p.expect(token.IDENT)
	if p.err != nil {
		return 0
	}
	name := p.arena.Intern(nameTok.Lexeme)
	p.expect(token.LBRACE)

	def := ast.ClassDefinitionStmt{Name: name}

	for !p.check(token.RBRACE) && p.err == nil {
		vis, isStatic := p.parseMemberModifiers()
		if p.err != nil {
			break
		}

		switch p.cur().Type {
		case token.CONSTRUCTOR:
			ctorTok := p.advance()
			params := p.parseParamList()
			body := p.parseBlock()
			def.Methods = append(def.Methods, ast.ClassMethod{
				Name: p.arena.Intern("конструктор"), Params: params, ReturnType: ast.NoType,
				Body: body, Visibility: vis, IsStatic: isStatic, IsConstructor: true,
			})
			_ = ctorTok
		case token.FUNCTION:
			p.advance()
			methodNameTok := p.expect(token.IDENT)
			if p.err != nil {
				return 0
			}
			methodName := p.arena.Intern(methodNameTok.Lexeme)
			params := p.parseParamList()
			retType := ast.NoType
			if p.match(token.COLON) {
				retType = p.parseTypeAnnotation()
			}
			body := p.parseBlock()
			def.Methods = append(def.Methods, ast.ClassMethod{
				Name: methodName, Params: params, ReturnType: retType,
				Body: body, Visibility: vis, IsStatic: isStatic,
			})
		case token.IDENT:
			fieldNameTok := p.advance()
			fieldName := p.arena.Intern(fieldNameTok.Lexeme)
			field := ast.ClassField{Name: fieldName, TypeHint: ast.NoType, Visibility: vis, IsStatic: isStatic}
			if p.match(token.COLON) {
				field.TypeHint = p.parseTypeAnnotation()
			}
			if p.match(token.ASSIGN) {
				field.Default = p.parseExpression()
				field.HasDefault = true
			}
			p.expect(token.SEMI)
			def.Fields = append(def.Fields, field)
		default:
			p.fail("unexpected token %s %q in class body", p.cur().Type, p.cur().Lexeme)
			return 0
		}
	}
	p.expect(token.RBRACE)
	if p.err != nil {
		return 0
	}

	id := p.arena.AddStatement(ast.StatementNode{Kind: def, Span: p.spanFrom(tok)})
	p.program.ClassOrder = append(p.program.ClassOrder, name)
	p.program.Classes[name] = id
	return id
}

// parseMemberModifiers consumes the mandatory visibility keyword. The
// returned is-static flag is always false: spec §3's is_static field
// exists on both ClassField and ClassMethod, but no keyword introduces it
// in the grammar given in §4.D, so no 'static' keyword is consumed here.
func (p *Parser) parseMemberModifiers() (ast.Visibility, bool) {
	switch p.cur().Type {
	case token.PUBLIC:
		p.advance()
		return ast.Public, false
	case token.PRIVATE:
		p.advance()
		return ast.Private, false
	default:
		p.fail("expected 'публичный' or 'приватный' before class member, got %q", p.cur().Lexeme)
		return ast.Public, false
	}
}

package parser

import (
	"github.com/funvibe/slovo/internal/ast"
	"github.com/funvibe/slovo/internal/token"
)

func (p *Parser) parseStatement() ast.StmtID {
	switch p.cur().Type {
	case token.LET:
		return p.parseLet()
	case token.IF:
		return p.parseIf()
	case token.WHILE:
		return p.parseWhile()
	case token.FOR:
		return p.parseFor()
	case token.LBRACE:
		return p.parseBlock()
	case token.RETURN:
		return p.parseReturn()
	case token.PRINT:
		return p.parsePrint()
	case token.INPUT:
		return p.parseInputStatement()
	case token.FUNCTION:
		return p.parseFunctionDefinition(false)
	case token.CLASS:
		return p.parseClassDefinition()
	default:
		return p.parseExpressionOrAssignment()
	}
}

func (p *Parser) parseLet() ast.StmtID {
	tok := p.advance() // 'пусть'
	nameTok := p.expect(token.IDENT)
	if p.err != nil {
		return 0
	}
	name := p.arena.Intern(nameTok.Lexeme)

	stmt := ast.LetStmt{Name: name, TypeHint: ast.NoType}
	if p.match(token.COLON) {
		t := p.parseTypeAnnotation()
		stmt.TypeHint = t
	}
	if p.match(token.ASSIGN) {
		stmt.Value = p.parseExpression()
		stmt.HasValue = true
	}
	p.expect(token.SEMI)
	return p.arena.AddStatement(ast.StatementNode{Kind: stmt, Span: p.spanFrom(tok)})
}

// parseExpressionOrAssignment implements the assignment-unification
// described in spec §4.D: parse the LHS as a general postfix expression,
// then if '=' follows, rewrite into Assign/IndexAssign/PropertyAssign.
// Any other LHS form with a following '=' is a syntax error.
func (p *Parser) parseExpressionOrAssignment() ast.StmtID {
	tok := p.cur()
	expr := p.parseExpression()
	if p.err != nil {
		return 0
	}

	if p.match(token.ASSIGN) {
		value := p.parseExpression()
		if p.err != nil {
			return 0
		}
		var kind ast.StatementKind
		switch lhs := p.arena.Expression(expr).Kind.(type) {
		case ast.IdentifierExpr:
			kind = ast.AssignStmt{Name: lhs.Name, Value: value}
		case ast.IndexExpr:
			kind = ast.IndexAssignStmt{Object: lhs.Object, Index: lhs.Index, Value: value}
		case ast.PropertyAccessExpr:
			kind = ast.PropertyAssignStmt{Object: lhs.Object, Property: lhs.Property, Value: value}
		default:
			p.fail("invalid assignment target")
			return 0
		}
		p.expect(token.SEMI)
		return p.arena.AddStatement(ast.StatementNode{Kind: kind, Span: p.spanFrom(tok)})
	}

	p.expect(token.SEMI)
	return p.arena.AddStatement(ast.StatementNode{Kind: ast.ExpressionStmt{Expr: expr}, Span: p.spanFrom(tok)})
}

func (p *Parser) parseIf() ast.StmtID {
	tok := p.advance() // 'если'
	p.expect(token.LPAREN)
	cond := p.parseExpression()
	p.expect(token.RPAREN)
	then := p.parseBlock()
	stmt := ast.IfStmt{Cond: cond, Then: then}
	if p.match(token.ELSE) {
		if p.check(token.IF) {
			stmt.Else = p.parseIf()
		} else {
			stmt.Else = p.parseBlock()
		}
		stmt.HasElse = true
	}
	return p.arena.AddStatement(ast.StatementNode{Kind: stmt, Span: p.spanFrom(tok)})
}

func (p *Parser) parseWhile() ast.StmtID {
	tok := p.advance() // 'пока'
	p.expect(token.LPAREN)
	cond := p.parseExpression()
	p.expect(token.RPAREN)
	body := p.parseBlock()
	return p.arena.AddStatement(ast.StatementNode{Kind: ast.WhileStmt{Cond: cond, Body: body}, Span: p.spanFrom(tok)})
}

// parseFor parses `для (i = start; end) { ... }`, the inclusive counting
// loop of spec §3/§4.F.
func (p *Parser) parseFor() ast.StmtID {
	tok := p.advance() // 'для'
	p.expect(token.LPAREN)
	varTok := p.expect(token.IDENT)
	if p.err != nil {
		return 0
	}
	varSym := p.arena.Intern(varTok.Lexeme)
	p.expect(token.ASSIGN)
	start := p.parseExpression()
	p.expect(token.SEMI)
	end := p.parseExpression()
	p.expect(token.RPAREN)
	body := p.parseBlock()
	return p.arena.AddStatement(ast.StatementNode{
		Kind: ast.ForStmt{Var: varSym, Start: start, End: end, Body: body},
		Span: p.spanFrom(tok),
	})
}

func (p *Parser) parseBlock() ast.StmtID {
	tok := p.expect(token.LBRACE)
	if p.err != nil {
		return 0
	}
	var stmts []ast.StmtID
	for !p.check(token.RBRACE) && p.err == nil {
		stmts = append(stmts, p.parseStatement())
	}
	p.expect(token.RBRACE)
	return p.arena.AddStatement(ast.StatementNode{Kind: ast.BlockStmt{Statements: stmts}, Span: p.spanFrom(tok)})
}

func (p *Parser) parseReturn() ast.StmtID {
	tok := p.advance() // 'вернуть'
	stmt := ast.ReturnStmt{}
	if !p.check(token.SEMI) {
		stmt.Value = p.parseExpression()
		stmt.HasValue = true
	}
	p.expect(token.SEMI)
	return p.arena.AddStatement(ast.StatementNode{Kind: stmt, Span: p.spanFrom(tok)})
}

func (p *Parser) parsePrint() ast.StmtID {
	tok := p.advance() // 'печать'
	p.expect(token.LPAREN)
	val := p.parseExpression()
	p.expect(token.RPAREN)
	p.expect(token.SEMI)
	return p.arena.AddStatement(ast.StatementNode{Kind: ast.PrintStmt{Value: val}, Span: p.spanFrom(tok)})
}

// parseInputStatement parses the legacy bare-statement form `ввод(prompt);`,
// evaluated for effect and discarded (SPEC_FULL.md §1 open question 2).
// The usual form is the Input *expression* reached via parsePrimary, bound
// with `пусть x = ввод(...);`.
func (p *Parser) parseInputStatement() ast.StmtID {
	tok := p.advance() // 'ввод'
	p.expect(token.LPAREN)
	prompt := p.parseExpression()
	p.expect(token.RPAREN)
	p.expect(token.SEMI)
	return p.arena.AddStatement(ast.StatementNode{Kind: ast.InputStmt{Prompt: prompt}, Span: p.spanFrom(tok)})
}

package parser

import (
	"strconv"

	"github.com/funvibe/slovo/internal/ast"
	"github.com/funvibe/slovo/internal/token"
)

// parseExpression parses a full expression at the lowest precedence
// (spec §4.D: `expr := or`).
func (p *Parser) parseExpression() ast.ExprID {
	return p.parseOr()
}

func (p *Parser) parseOr() ast.ExprID {
	left := p.parseAnd()
	for p.check(token.OR) && p.err == nil {
		tok := p.advance()
		right := p.parseAnd()
		left = p.addBinary(ast.OpOr, left, right, tok)
	}
	return left
}

func (p *Parser) parseAnd() ast.ExprID {
	left := p.parseEquality()
	for p.check(token.AND) && p.err == nil {
		tok := p.advance()
		right := p.parseEquality()
		left = p.addBinary(ast.OpAnd, left, right, tok)
	}
	return left
}

func (p *Parser) parseEquality() ast.ExprID {
	left := p.parseComparison()
	for (p.check(token.EQ) || p.check(token.NOT_EQ)) && p.err == nil {
		op := ast.OpEq
		if p.cur().Type == token.NOT_EQ {
			op = ast.OpNe
		}
		tok := p.advance()
		right := p.parseComparison()
		left = p.addBinary(op, left, right, tok)
	}
	return left
}

func (p *Parser) parseComparison() ast.ExprID {
	left := p.parseTerm()
	for p.err == nil {
		var op ast.BinaryOperator
		switch p.cur().Type {
		case token.LT:
			op = ast.OpLt
		case token.LTE:
			op = ast.OpLe
		case token.GT:
			op = ast.OpGt
		case token.GTE:
			op = ast.OpGe
		default:
			return left
		}
		tok := p.advance()
		right := p.parseTerm()
		left = p.addBinary(op, left, right, tok)
	}
	return left
}

func (p *Parser) parseTerm() ast.ExprID {
	left := p.parseFactor()
	for p.err == nil {
		var op ast.BinaryOperator
		switch p.cur().Type {
		case token.PLUS:
			op = ast.OpAdd
		case token.MINUS:
			op = ast.OpSub
		default:
			return left
		}
		tok := p.advance()
		right := p.parseFactor()
		left = p.addBinary(op, left, right, tok)
	}
	return left
}

func (p *Parser) parseFactor() ast.ExprID {
	left := p.parseUnary()
	for p.err == nil {
		var op ast.BinaryOperator
		switch p.cur().Type {
		case token.ASTERISK:
			op = ast.OpMul
		case token.SLASH:
			op = ast.OpDiv
		case token.PERCENT:
			op = ast.OpMod
		default:
			return left
		}
		tok := p.advance()
		right := p.parseUnary()
		left = p.addBinary(op, left, right, tok)
	}
	return left
}

func (p *Parser) parseUnary() ast.ExprID {
	switch p.cur().Type {
	case token.MINUS:
		tok := p.advance()
		operand := p.parseUnary()
		return p.arena.AddExpression(ast.ExpressionNode{
			Kind: ast.UnaryExpr{Op: ast.OpNeg, Operand: operand},
			Span: p.spanFrom(tok),
		})
	case token.NOT:
		tok := p.advance()
		operand := p.parseUnary()
		return p.arena.AddExpression(ast.ExpressionNode{
			Kind: ast.UnaryExpr{Op: ast.OpNot, Operand: operand},
			Span: p.spanFrom(tok),
		})
	default:
		return p.parsePostfix()
	}
}

func (p *Parser) parsePostfix() ast.ExprID {
	expr := p.parsePrimary()
	start := p.cur()
	for p.err == nil {
		switch p.cur().Type {
		case token.DOT:
			p.advance()
			nameTok := p.expect(token.IDENT)
			if p.err != nil {
				return expr
			}
			name := p.arena.Intern(nameTok.Lexeme)
			if p.match(token.LPAREN) {
				args := p.parseArgs()
				expr = p.arena.AddExpression(ast.ExpressionNode{
					Kind: ast.MethodCallExpr{Object: expr, Method: name, Args: args},
					Span: p.spanFrom(start),
				})
			} else {
				expr = p.arena.AddExpression(ast.ExpressionNode{
					Kind: ast.PropertyAccessExpr{Object: expr, Property: name},
					Span: p.spanFrom(start),
				})
			}
		case token.LBRACKET:
			p.advance()
			index := p.parseExpression()
			p.expect(token.RBRACKET)
			if p.err != nil {
				return expr
			}
			expr = p.arena.AddExpression(ast.ExpressionNode{
				Kind: ast.IndexExpr{Object: expr, Index: index},
				Span: p.spanFrom(start),
			})
		case token.LPAREN:
			p.advance()
			args := p.parseArgs()
			expr = p.arena.AddExpression(ast.ExpressionNode{
				Kind: ast.CallExpr{Function: expr, Args: args},
				Span: p.spanFrom(start),
			})
		default:
			return expr
		}
	}
	return expr
}

// parseArgs parses a comma-separated argument list up to and including the
// closing ')'. The opening '(' has already been consumed.
func (p *Parser) parseArgs() []ast.ExprID {
	var args []ast.ExprID
	if !p.check(token.RPAREN) {
		for {
			args = append(args, p.parseExpression())
			if p.err != nil {
				return args
			}
			if !p.match(token.COMMA) {
				break
			}
		}
	}
	p.expect(token.RPAREN)
	return args
}

func (p *Parser) parsePrimary() ast.ExprID {
	tok := p.cur()
	sp := p.spanOf(tok)

	switch tok.Type {
	case token.INT:
		p.advance()
		v, err := strconv.ParseInt(tok.Lexeme, 10, 64)
		if err != nil {
			p.fail("invalid integer literal %q", tok.Lexeme)
			return 0
		}
		return p.arena.AddExpression(ast.ExpressionNode{
			Kind: ast.LiteralExpr{Value: ast.LiteralValue{Kind: ast.LitInt, Int: v}}, Span: sp,
		})
	case token.FLOAT:
		p.advance()
		v, err := strconv.ParseFloat(tok.Lexeme, 64)
		if err != nil {
			p.fail("invalid float literal %q", tok.Lexeme)
			return 0
		}
		return p.arena.AddExpression(ast.ExpressionNode{
			Kind: ast.LiteralExpr{Value: ast.LiteralValue{Kind: ast.LitFloat, Flt: v}}, Span: sp,
		})
	case token.STRING:
		p.advance()
		return p.arena.AddExpression(ast.ExpressionNode{
			Kind: ast.LiteralExpr{Value: ast.LiteralValue{Kind: ast.LitText, Str: tok.Lexeme}}, Span: sp,
		})
	case token.TRUE:
		p.advance()
		return p.arena.AddExpression(ast.ExpressionNode{
			Kind: ast.LiteralExpr{Value: ast.LiteralValue{Kind: ast.LitBool, Bool: true}}, Span: sp,
		})
	case token.FALSE:
		p.advance()
		return p.arena.AddExpression(ast.ExpressionNode{
			Kind: ast.LiteralExpr{Value: ast.LiteralValue{Kind: ast.LitBool, Bool: false}}, Span: sp,
		})
	case token.THIS:
		p.advance()
		return p.arena.AddExpression(ast.ExpressionNode{Kind: ast.ThisExpr{}, Span: sp})
	case token.IDENT:
		p.advance()
		name := p.arena.Intern(tok.Lexeme)
		return p.arena.AddExpression(ast.ExpressionNode{Kind: ast.IdentifierExpr{Name: name}, Span: sp})
	case token.NUMBER, token.FLOAT_KW, token.TEXT, token.BOOLEAN:
		// The primitive type keywords double as coercion-function names in
		// call position (`число(x)`, `текст(x)`, ...) — the dedicated
		// coercion builtins spec §9 open question 2 calls for, without
		// inventing vocabulary that collides with the type-annotation
		// keywords themselves.
		p.advance()
		name := p.arena.Intern(tok.Lexeme)
		return p.arena.AddExpression(ast.ExpressionNode{Kind: ast.IdentifierExpr{Name: name}, Span: sp})
	case token.NEW:
		p.advance()
		return p.parseObjectCreation(tok)
	case token.INPUT:
		p.advance()
		p.expect(token.LPAREN)
		prompt := p.parseExpression()
		p.expect(token.RPAREN)
		return p.arena.AddExpression(ast.ExpressionNode{Kind: ast.InputExpr{Prompt: prompt}, Span: p.spanFrom(tok)})
	case token.LPAREN:
		p.advance()
		inner := p.parseExpression()
		p.expect(token.RPAREN)
		return inner
	case token.LBRACKET:
		p.advance()
		return p.parseListLiteral(tok)
	case token.LBRACE:
		p.advance()
		return p.parseDictLiteral(tok)
	default:
		p.fail("unexpected token %s %q in expression", tok.Type, tok.Lexeme)
		return 0
	}
}

// parseObjectCreation parses `новый QualName(args)`, the 'новый' token
// already consumed (spec §4.D: `'new' QualName '(' args ')'`).
func (p *Parser) parseObjectCreation(newTok token.Token) ast.ExprID {
	first := p.expect(token.IDENT)
	if p.err != nil {
		return 0
	}
	firstSym := p.arena.Intern(first.Lexeme)

	node := ast.ObjectCreationExpr{ClassName: firstSym}
	if p.match(token.DOT) {
		second := p.expect(token.IDENT)
		if p.err != nil {
			return 0
		}
		node.ModuleQualifier = firstSym
		node.HasQualifier = true
		node.ClassName = p.arena.Intern(second.Lexeme)
	}

	p.expect(token.LPAREN)
	if p.err != nil {
		return 0
	}
	node.Args = p.parseArgs()
	return p.arena.AddExpression(ast.ExpressionNode{Kind: node, Span: p.spanFrom(newTok)})
}

func (p *Parser) parseListLiteral(openTok token.Token) ast.ExprID {
	// Desugar list literals into a sequence of Call expressions to the
	// host-provided List constructor-and-append protocol would overreach
	// the grammar in spec §4.D, which gives list/dict literals no AST
	// node of their own beyond what primary already allows; represent
	// them as an ObjectCreation of the built-in Список class whose
	// constructor takes the elements, matching how every other literal
	// primary form maps onto the arena's expression kinds.
	var args []ast.ExprID
	if !p.check(token.RBRACKET) {
		for {
			args = append(args, p.parseExpression())
			if p.err != nil {
				break
			}
			if !p.match(token.COMMA) {
				break
			}
		}
	}
	p.expect(token.RBRACKET)
	return p.arena.AddExpression(ast.ExpressionNode{
		Kind: ast.ObjectCreationExpr{ClassName: p.arena.Intern("Список"), Args: args},
		Span: p.spanFrom(openTok),
	})
}

func (p *Parser) parseDictLiteral(openTok token.Token) ast.ExprID {
	// Dict literal pairs become alternating key/value arguments to the
	// built-in Словарь constructor, same rationale as parseListLiteral.
	var args []ast.ExprID
	if !p.check(token.RBRACE) {
		for {
			key := p.parseExpression()
			p.expect(token.COLON)
			if p.err != nil {
				break
			}
			val := p.parseExpression()
			args = append(args, key, val)
			if p.err != nil {
				break
			}
			if !p.match(token.COMMA) {
				break
			}
		}
	}
	p.expect(token.RBRACE)
	return p.arena.AddExpression(ast.ExpressionNode{
		Kind: ast.ObjectCreationExpr{ClassName: p.arena.Intern("Словарь"), Args: args},
		Span: p.spanFrom(openTok),
	})
}

func (p *Parser) addBinary(op ast.BinaryOperator, left, right ast.ExprID, opTok token.Token) ast.ExprID {
	return p.arena.AddExpression(ast.ExpressionNode{
		Kind: ast.BinaryExpr{Op: op, Left: left, Right: right},
		Span: p.spanFrom(opTok),
	})
}

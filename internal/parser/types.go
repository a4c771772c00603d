package parser

import (
	"github.com/funvibe/slovo/internal/ast"
	"github.com/funvibe/slovo/internal/token"
)

// parseTypeAnnotation parses the advisory type grammar referenced after a
// ':' in let/param/return position (spec §2: type annotations are parsed
// but never enforced). Primitive keywords map directly onto PrimitiveType;
// 'список'/'словарь' take an optional '<...>' element-type suffix; any
// other identifier is an object/generic type named by the identifier
// itself. None of this is exercised by original_source, whose Rust
// annotations are a fixed enum with no generic parameters — the '<...>'
// suffix is this lineage's own addition to let list/dict annotations say
// something about their contents instead of only "список"/"словарь".
func (p *Parser) parseTypeAnnotation() ast.TypeID {
	tok := p.cur()
	switch tok.Type {
	case token.NUMBER:
		p.advance()
		return p.arena.AddType(ast.PrimitiveType{Kind: ast.PrimNumber})
	case token.FLOAT_KW:
		p.advance()
		return p.arena.AddType(ast.PrimitiveType{Kind: ast.PrimFloat})
	case token.TEXT:
		p.advance()
		return p.arena.AddType(ast.PrimitiveType{Kind: ast.PrimText})
	case token.BOOLEAN:
		p.advance()
		return p.arena.AddType(ast.PrimitiveType{Kind: ast.PrimBoolean})
	case token.LIST:
		p.advance()
		elem := ast.NoType
		if p.match(token.LT) {
			elem = p.parseTypeAnnotation()
			p.expect(token.GT)
		}
		return p.arena.AddType(ast.ListType{Elem: elem})
	case token.DICT:
		p.advance()
		key, val := ast.NoType, ast.NoType
		if p.match(token.LT) {
			key = p.parseTypeAnnotation()
			p.expect(token.COMMA)
			val = p.parseTypeAnnotation()
			p.expect(token.GT)
		}
		return p.arena.AddType(ast.DictType{Key: key, Value: val})
	case token.IDENT:
		p.advance()
		return p.arena.AddType(ast.ObjectType{ClassName: p.arena.Intern(tok.Lexeme)})
	default:
		p.fail("expected type annotation, got %s %q", tok.Type, tok.Lexeme)
		return ast.NoType
	}
}

// Package parser builds an unresolved ast.Module from schema text.
//
// The parser is recursive descent over the complete token slice. It
// validates shape only (named fields, bracket arity, generate hints) so
// that the resolver can assume structurally well-formed input.
package parser

import (
	"github.com/roach88/asdlc/internal/ast"
	"github.com/roach88/asdlc/internal/lexer"
)

// Parse tokenizes and parses src. Errors are either *lexer.LexError or
// *ast.SyntaxError; parsing stops at the first one.
func Parse(src string) (*ast.Module, error) {
	tokens, err := lexer.Tokenize(src)
	if err != nil {
		return nil, err
	}
	p := &Parser{tokens: tokens}
	return p.parseModule()
}

// Parser holds the parser state
type Parser struct {
	tokens []lexer.Token
	pos    int
}

func (p *Parser) current() lexer.Token {
	if p.pos >= len(p.tokens) {
		return p.tokens[len(p.tokens)-1]
	}
	return p.tokens[p.pos]
}

func (p *Parser) check(kind lexer.Kind) bool {
	return p.current().Kind == kind
}

func (p *Parser) advance() lexer.Token {
	tok := p.current()
	if p.pos < len(p.tokens) {
		p.pos++
	}
	return tok
}

// expect consumes the current token if it has the given kind.
func (p *Parser) expect(kind lexer.Kind, context string) (lexer.Token, error) {
	tok := p.current()
	if tok.Kind != kind {
		return tok, ast.Errorf(ast.ErrUnexpectedToken, tok.Pos,
			"expected '%s' %s, got %s", kind, context, tok)
	}
	return p.advance(), nil
}

// module := 'module' NAME '{' (use | typedecl)* '}'
func (p *Parser) parseModule() (*ast.Module, error) {
	start, err := p.expect(lexer.MODULE, "at start of schema")
	if err != nil {
		return nil, err
	}
	name, err := p.expect(lexer.IDENT, "after 'module'")
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(lexer.LBRACE, "after module name"); err != nil {
		return nil, err
	}

	mod := &ast.Module{Name: name.Text, Pos: start.Pos}
	for !p.check(lexer.RBRACE) {
		switch tok := p.current(); tok.Kind {
		case lexer.USE:
			use, err := p.parseUse()
			if err != nil {
				return nil, err
			}
			mod.Uses = append(mod.Uses, use)
		case lexer.IDENT:
			decl, err := p.parseTypeDecl()
			if err != nil {
				return nil, err
			}
			mod.Decls = append(mod.Decls, decl)
		default:
			return nil, ast.Errorf(ast.ErrUnexpectedToken, tok.Pos,
				"expected type declaration or 'use', got %s", tok)
		}
	}
	p.advance()

	if tok := p.current(); tok.Kind != lexer.EOF {
		return nil, ast.Errorf(ast.ErrUnexpectedToken, tok.Pos,
			"unexpected %s after end of module %s", tok, mod.Name)
	}
	return mod, nil
}

// use := 'use' NAME+ '{' NAME (','? NAME)* '}'
func (p *Parser) parseUse() (ast.Use, error) {
	start := p.advance()
	use := ast.Use{Pos: start.Pos}

	for p.check(lexer.IDENT) {
		use.ModuleParts = append(use.ModuleParts, p.advance().Text)
	}
	if len(use.ModuleParts) == 0 {
		tok := p.current()
		return use, ast.Errorf(ast.ErrUnexpectedToken, tok.Pos, "expected module path after 'use', got %s", tok)
	}
	if _, err := p.expect(lexer.LBRACE, "after use path"); err != nil {
		return use, err
	}

	for {
		name, err := p.expect(lexer.IDENT, "in use list")
		if err != nil {
			return use, err
		}
		use.TypeNames = append(use.TypeNames, name.Text)

		if p.check(lexer.COMMA) {
			p.advance()
			continue
		}
		if p.check(lexer.RBRACE) {
			p.advance()
			return use, nil
		}
	}
}

// typedecl := NAME '=' (sum | product) attr? ';'?
func (p *Parser) parseTypeDecl() (ast.TypeDecl, error) {
	name := p.advance()
	if _, err := p.expect(lexer.EQUALS, "after type name "+name.Text); err != nil {
		return nil, err
	}

	var decl ast.TypeDecl
	switch tok := p.current(); tok.Kind {
	case lexer.LPAREN:
		fields, err := p.parseFields()
		if err != nil {
			return nil, err
		}
		decl = &ast.Product{Name: name.Text, Fields: fields, Pos: name.Pos}
	case lexer.IDENT:
		ctors, err := p.parseSum()
		if err != nil {
			return nil, err
		}
		decl = &ast.Sum{Name: name.Text, Constructors: ctors, Pos: name.Pos}
	default:
		return nil, ast.Errorf(ast.ErrUnexpectedToken, tok.Pos,
			"expected '(' or constructor name after '%s =', got %s", name.Text, tok)
	}

	if p.check(lexer.GENERATE) {
		hints, err := p.parseGenerate()
		if err != nil {
			return nil, err
		}
		switch d := decl.(type) {
		case *ast.Sum:
			d.Generate = hints
		case *ast.Product:
			d.Generate = hints
		}
	}

	if p.check(lexer.SEMICOLON) {
		p.advance()
	}
	return decl, nil
}

// sum := constructor ('|' constructor)*
func (p *Parser) parseSum() ([]*ast.Constructor, error) {
	var ctors []*ast.Constructor
	for {
		c, err := p.parseConstructor()
		if err != nil {
			return nil, err
		}
		ctors = append(ctors, c)

		if !p.check(lexer.PIPE) {
			return ctors, nil
		}
		p.advance()
	}
}

// constructor := NAME ('(' fields ')' | '%' NAME)?
func (p *Parser) parseConstructor() (*ast.Constructor, error) {
	name, err := p.expect(lexer.IDENT, "for constructor name")
	if err != nil {
		return nil, err
	}
	c := &ast.Constructor{Name: name.Text, Pos: name.Pos}

	switch p.current().Kind {
	case lexer.LPAREN:
		c.Fields, err = p.parseFields()
		if err != nil {
			return nil, err
		}
	case lexer.PERCENT:
		p.advance()
		shared, err := p.expect(lexer.IDENT, "after '%' in shared variant "+name.Text)
		if err != nil {
			return nil, err
		}
		c.SharedType = shared.Text
	}
	return c, nil
}

// fields := '(' field (',' field)* ')'
func (p *Parser) parseFields() ([]*ast.Field, error) {
	p.advance()

	var fields []*ast.Field
	for {
		f, err := p.parseField()
		if err != nil {
			return nil, err
		}
		fields = append(fields, f)

		if p.check(lexer.COMMA) {
			p.advance()
			continue
		}
		if _, err := p.expect(lexer.RPAREN, "to close field list"); err != nil {
			return nil, err
		}
		return fields, nil
	}
}

// field := typeref ('?' | '*')? NAME
//
// Reserved words are accepted as field names; only type names and
// declaration names are restricted to plain identifiers.
func (p *Parser) parseField() (*ast.Field, error) {
	start := p.current()
	if start.Kind != lexer.IDENT {
		return nil, ast.Errorf(ast.ErrUnexpectedToken, start.Pos, "expected field type, got %s", start)
	}

	typ, err := p.parseTypeRef()
	if err != nil {
		return nil, err
	}
	f := &ast.Field{Type: typ, Pos: start.Pos}

	switch p.current().Kind {
	case lexer.QUESTION:
		p.advance()
		f.Quantifier = ast.Optional
	case lexer.STAR:
		p.advance()
		f.Quantifier = ast.Repeated
	}

	name := p.current()
	switch name.Kind {
	case lexer.IDENT, lexer.MODULE, lexer.USE, lexer.GENERATE:
		p.advance()
		f.Name = name.Text
		return f, nil
	case lexer.COMMA, lexer.RPAREN:
		return nil, ast.Errorf(ast.ErrFieldNeedsName, name.Pos,
			"field of type %s%s needs a name", ast.FormatTypeRef(typ), f.Quantifier)
	default:
		return nil, ast.Errorf(ast.ErrUnexpectedToken, name.Pos, "expected field name, got %s", name)
	}
}

// typeref := NAME | NAME '[' typeref (',' typeref)* ']'
func (p *Parser) parseTypeRef() (ast.TypeRef, error) {
	name, err := p.expect(lexer.IDENT, "for type name")
	if err != nil {
		return nil, err
	}

	kind, parametric := ast.ParamKinds[name.Text]
	if !parametric {
		if tok := p.current(); tok.Kind == lexer.LBRACKET {
			return nil, ast.Errorf(ast.ErrBadTypeBrackets, tok.Pos,
				"type %s does not take parameters", name.Text)
		}
		return &ast.NamedType{Name: name.Text, Pos: name.Pos}, nil
	}

	if tok := p.current(); tok.Kind != lexer.LBRACKET {
		return nil, ast.Errorf(ast.ErrBadTypeBrackets, tok.Pos,
			"%s requires type arguments in [...]", name.Text)
	}
	p.advance()

	var args []ast.TypeRef
	for {
		if tok := p.current(); tok.Kind != lexer.IDENT {
			return nil, ast.Errorf(ast.ErrBadArity, tok.Pos,
				"%s expects %d type argument(s), got %s", kind, kind.Arity(), tok)
		}
		arg, err := p.parseTypeRef()
		if err != nil {
			return nil, err
		}
		args = append(args, arg)

		if !p.check(lexer.COMMA) {
			break
		}
		p.advance()
	}
	if _, err := p.expect(lexer.RBRACKET, "to close "+string(kind)+" arguments"); err != nil {
		return nil, err
	}

	if len(args) != kind.Arity() {
		return nil, ast.Errorf(ast.ErrBadArity, name.Pos,
			"%s expects %d type argument(s), got %d", kind, kind.Arity(), len(args))
	}
	return &ast.ParameterizedType{Kind: kind, Args: args, Pos: name.Pos}, nil
}

// attr := 'generate' '[' NAME (',' NAME)* ']'
func (p *Parser) parseGenerate() ([]string, error) {
	p.advance()
	if tok := p.current(); tok.Kind != lexer.LBRACKET {
		return nil, ast.Errorf(ast.ErrBadGenerate, tok.Pos, "expected '[' after 'generate', got %s", tok)
	}
	p.advance()

	var hints []string
	for {
		tok := p.current()
		if tok.Kind != lexer.IDENT {
			return nil, ast.Errorf(ast.ErrBadGenerate, tok.Pos, "expected generate hint, got %s", tok)
		}
		if !ast.GenerateHints[tok.Text] {
			return nil, ast.Errorf(ast.ErrBadGenerate, tok.Pos, "unknown generate hint %q", tok.Text)
		}
		hints = append(hints, p.advance().Text)

		if p.check(lexer.COMMA) {
			p.advance()
			continue
		}
		if tok := p.current(); tok.Kind != lexer.RBRACKET {
			return nil, ast.Errorf(ast.ErrBadGenerate, tok.Pos, "expected ']' after generate hints, got %s", tok)
		}
		p.advance()
		return hints, nil
	}
}

// Package ast defines the unresolved syntax tree produced by the parser.
//
// The tree is discarded after resolution; backends never see it. Names in
// the tree are plain strings, resolution into typed references happens in
// package compiler.
package ast

import "github.com/roach88/asdlc/internal/lexer"

// Module is a parsed schema file.
type Module struct {
	Name  string
	Decls []TypeDecl
	Uses  []Use
	Pos   lexer.Pos
}

// Use imports type names from another schema module without compiling it.
type Use struct {
	ModuleParts []string // e.g. ["frontend", "syntax"]
	TypeNames   []string
	Pos         lexer.Pos
}

// TypeDecl is either a *Sum or a *Product.
type TypeDecl interface {
	DeclName() string
	DeclPos() lexer.Pos
	typeDecl()
}

// Sum is a sum type: NAME = A | B(fields) | C %product.
type Sum struct {
	Name         string
	Constructors []*Constructor
	Generate     []string
	Pos          lexer.Pos
}

// Product is a product type: NAME = (fields).
type Product struct {
	Name     string
	Fields   []*Field
	Generate []string // only legal on simple sums; kept so the resolver can report it
	Pos      lexer.Pos
}

func (s *Sum) DeclName() string       { return s.Name }
func (s *Sum) DeclPos() lexer.Pos     { return s.Pos }
func (*Sum) typeDecl()                {}
func (p *Product) DeclName() string   { return p.Name }
func (p *Product) DeclPos() lexer.Pos { return p.Pos }
func (*Product) typeDecl()            {}

// Constructor is one variant of a sum type. SharedType is set for
// "Name %product" variants, whose payload is a product declared elsewhere
// in the module; such constructors have no Fields of their own.
type Constructor struct {
	Name       string
	Fields     []*Field
	SharedType string
	Pos        lexer.Pos
}

// Quantifier is the suffix written after a field's type.
type Quantifier int

const (
	Required Quantifier = iota
	Optional            // T?
	Repeated            // T*
)

func (q Quantifier) String() string {
	switch q {
	case Optional:
		return "?"
	case Repeated:
		return "*"
	default:
		return ""
	}
}

// Field is a named, typed member of a product or constructor.
type Field struct {
	Name       string
	Type       TypeRef
	Quantifier Quantifier
	Pos        lexer.Pos
}

// TypeRef is either a *NamedType or a *ParameterizedType.
type TypeRef interface {
	RefPos() lexer.Pos
	typeRef()
}

// NamedType refers to a primitive or declared type by name.
type NamedType struct {
	Name string
	Pos  lexer.Pos
}

// ParamKind names one of the three built-in parametric shapes.
type ParamKind string

const (
	KindOptional ParamKind = "Optional"
	KindList     ParamKind = "List"
	KindDict     ParamKind = "Dict"
)

// Arity returns the number of type arguments the kind takes.
func (k ParamKind) Arity() int {
	if k == KindDict {
		return 2
	}
	return 1
}

// ParamKinds maps the spelled name to its kind.
var ParamKinds = map[string]ParamKind{
	"Optional": KindOptional,
	"List":     KindList,
	"Dict":     KindDict,
}

// ParameterizedType is Optional[T], List[T] or Dict[K, V].
type ParameterizedType struct {
	Kind ParamKind
	Args []TypeRef
	Pos  lexer.Pos
}

func (n *NamedType) RefPos() lexer.Pos         { return n.Pos }
func (*NamedType) typeRef()                    {}
func (p *ParameterizedType) RefPos() lexer.Pos { return p.Pos }
func (*ParameterizedType) typeRef()            {}

// GenerateHints lists the recognized tokens inside "generate [...]".
var GenerateHints = map[string]bool{
	"integers": true,
	"uint16":   true,
}

// IsSimple reports whether every constructor of the sum carries no fields.
// Shared variants always carry their product's fields.
func (s *Sum) IsSimple() bool {
	for _, c := range s.Constructors {
		if len(c.Fields) > 0 || c.SharedType != "" {
			return false
		}
	}
	return true
}

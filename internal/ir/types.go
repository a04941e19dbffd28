package ir

import (
	"fmt"
	"strings"
	"unicode"
)

// Module is a resolved schema file.
type Module struct {
	Name  string
	Decls []Decl
	Uses  []*Use
	// Externals are the application types available to this schema,
	// sorted by name, whether or not a field refers to them.
	Externals []*External
}

// Decl looks up a local declaration by name.
func (m *Module) Decl(name string) (Decl, bool) {
	for _, d := range m.Decls {
		if d.DeclName() == name {
			return d, true
		}
	}
	return nil, false
}

// UseOf returns the use entry that imports name, or nil.
func (m *Module) UseOf(name string) *Use {
	for _, u := range m.Uses {
		for _, n := range u.TypeNames {
			if n == name {
				return u
			}
		}
	}
	return nil
}

// SimpleSums returns the simple sums in declaration order.
func (m *Module) SimpleSums() []*SimpleSum {
	var out []*SimpleSum
	for _, d := range m.Decls {
		if s, ok := d.(*SimpleSum); ok {
			out = append(out, s)
		}
	}
	return out
}

// Use is a cross-module import. Referenced lists, in first-use order, the
// imported names that some field of this module actually refers to.
type Use struct {
	ModuleParts []string
	TypeNames   []string
	Referenced  []string
}

// Namespace is the generated namespace of the imported module, e.g.
// "syntax_asdl" for "use frontend syntax".
func (u *Use) Namespace() string {
	return u.ModuleParts[len(u.ModuleParts)-1] + "_asdl"
}

// Path is the module path joined with slashes, e.g. "frontend/syntax".
func (u *Use) Path() string {
	return strings.Join(u.ModuleParts, "/")
}

// ImportedTypeName maps a name listed in a use block to the name of the
// generated type in the other module. Lower-case names refer to a sum's
// base type and gain a "_t" suffix; capitalized names are taken as is.
func ImportedTypeName(name string) string {
	if name != "" && unicode.IsUpper(rune(name[0])) {
		return name
	}
	return name + "_t"
}

// DeclKind identifies a declaration shape.
type DeclKind int

const (
	DeclProduct DeclKind = iota
	DeclSimpleSum
	DeclCompoundSum
)

func (k DeclKind) String() string {
	switch k {
	case DeclProduct:
		return "product"
	case DeclSimpleSum:
		return "simple_sum"
	case DeclCompoundSum:
		return "compound_sum"
	default:
		return fmt.Sprintf("DeclKind(%d)", int(k))
	}
}

// Decl is a resolved declaration: *Product, *SimpleSum or *CompoundSum.
type Decl interface {
	DeclName() string
	Kind() DeclKind
	decl()
}

// Product is a single-shape record type.
type Product struct {
	Name   string
	Fields []*Field
	// SharedIn lists every compound sum variant whose payload is this
	// product, in declaration order.
	SharedIn []*Variant
}

// SimpleSum is a sum whose variants all carry zero fields. It is emitted
// as a plain enumeration.
type SimpleSum struct {
	Name     string
	Variants []*Variant
	Integers bool // generate [integers]
	Uint16   bool // generate [uint16]
}

// CompoundSum is a sum with at least one field-bearing variant. It is
// emitted as a tagged union.
type CompoundSum struct {
	Name     string
	Variants []*Variant
}

func (p *Product) DeclName() string     { return p.Name }
func (*Product) Kind() DeclKind         { return DeclProduct }
func (*Product) decl()                  {}
func (s *SimpleSum) DeclName() string   { return s.Name }
func (*SimpleSum) Kind() DeclKind       { return DeclSimpleSum }
func (*SimpleSum) decl()                {}
func (c *CompoundSum) DeclName() string { return c.Name }
func (*CompoundSum) Kind() DeclKind     { return DeclCompoundSum }
func (*CompoundSum) decl()              {}

// Variant is one constructor of a sum.
type Variant struct {
	Name   string
	Tag    int
	Sum    string // owning sum name
	Fields []*Field
	// Shared is the payload product of a "Name %product" variant. Fields
	// is then the product's field list.
	Shared *Product
}

// IsShared reports whether the variant aliases a product.
func (v *Variant) IsShared() bool { return v.Shared != nil }

// HasFields reports whether the variant carries a payload.
func (v *Variant) HasFields() bool { return len(v.Fields) > 0 }

// Field is a named member of a product or variant.
type Field struct {
	Name string
	Type Type
}

// TypeKind identifies a type shape.
type TypeKind int

const (
	TypePrimitive TypeKind = iota
	TypeExternal
	TypeImported
	TypeDeclRef
	TypeOptional
	TypeList
	TypeDict
)

// Type is a resolved field type.
type Type interface {
	Kind() TypeKind
	String() string
	typ()
}

// Builtin primitive names.
const (
	PrimString = "string"
	PrimInt    = "int"
	PrimUint16 = "uint16"
	PrimFloat  = "float"
	PrimBool   = "bool"
)

// Primitives is the set of builtin primitive names.
var Primitives = map[string]bool{
	PrimString: true,
	PrimInt:    true,
	PrimUint16: true,
	PrimFloat:  true,
	PrimBool:   true,
}

// Primitive is a builtin scalar.
type Primitive struct {
	Name string
}

// External is an application type injected by filename convention, e.g.
// "id" in syntax.asdl. It is never declared by the schema itself.
type External struct {
	Name      string
	CppType   string // e.g. "id_kind_asdl::Id_t"
	CppHeader string // e.g. "_gen/frontend/id_kind.asdl.h"
	CppStr    string // tag-name function, e.g. "id_kind_asdl::Id_str"
	PyModule  string // e.g. "id_kind_asdl"
	PyType    string // e.g. "Id_t"
	PyStr     string // e.g. "Id_str"
	Integer   bool   // an integer enum; Optional over it is illegal
}

// Imported is a name brought in by a use block.
type Imported struct {
	Name string
	Use  *Use
}

// DeclRef refers to a local declaration.
type DeclRef struct {
	Decl Decl
}

// Optional is T? or Optional[T].
type Optional struct {
	Elem Type
}

// List is T* or List[T].
type List struct {
	Elem Type
}

// Dict is Dict[K, V].
type Dict struct {
	Key   Type
	Value Type
}

func (*Primitive) Kind() TypeKind { return TypePrimitive }
func (*External) Kind() TypeKind  { return TypeExternal }
func (*Imported) Kind() TypeKind  { return TypeImported }
func (*DeclRef) Kind() TypeKind   { return TypeDeclRef }
func (*Optional) Kind() TypeKind  { return TypeOptional }
func (*List) Kind() TypeKind      { return TypeList }
func (*Dict) Kind() TypeKind      { return TypeDict }

func (*Primitive) typ() {}
func (*External) typ()  {}
func (*Imported) typ()  {}
func (*DeclRef) typ()   {}
func (*Optional) typ()  {}
func (*List) typ()      {}
func (*Dict) typ()      {}

func (t *Primitive) String() string { return t.Name }
func (t *External) String() string  { return t.Name }
func (t *Imported) String() string  { return t.Name }
func (t *DeclRef) String() string   { return t.Decl.DeclName() }
func (t *Optional) String() string  { return "Optional[" + t.Elem.String() + "]" }
func (t *List) String() string      { return "List[" + t.Elem.String() + "]" }
func (t *Dict) String() string {
	return "Dict[" + t.Key.String() + ", " + t.Value.String() + "]"
}

// IsInteger reports whether t is an integer primitive or an integer
// application type. Such fields use -1 as their absent value and may not
// be optional.
func IsInteger(t Type) bool {
	switch t := t.(type) {
	case *Primitive:
		return t.Name == PrimInt || t.Name == PrimUint16
	case *External:
		return t.Integer
	default:
		return false
	}
}

// IsSimpleSum reports whether t refers to a local simple sum.
func IsSimpleSum(t Type) bool {
	ref, ok := t.(*DeclRef)
	if !ok {
		return false
	}
	_, ok = ref.Decl.(*SimpleSum)
	return ok
}

// IsValueType reports whether t is stored by value in generated code and
// so needs an extra level of indirection to express absence.
func IsValueType(t Type) bool {
	p, ok := t.(*Primitive)
	return ok && (p.Name == PrimBool || p.Name == PrimFloat)
}

// Walk calls fn for t and every type nested inside it, outermost first.
func Walk(t Type, fn func(Type)) {
	fn(t)
	switch t := t.(type) {
	case *Optional:
		Walk(t.Elem, fn)
	case *List:
		Walk(t.Elem, fn)
	case *Dict:
		Walk(t.Key, fn)
		Walk(t.Value, fn)
	}
}

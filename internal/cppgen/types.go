package cppgen

import (
	"strings"

	"github.com/cockroachdb/errors"

	"github.com/roach88/asdlc/internal/ir"
)

var primitiveTypes = map[string]string{
	ir.PrimString: "BigStr*",
	ir.PrimInt:    "int",
	ir.PrimUint16: "uint16_t",
	ir.PrimFloat:  "double",
	ir.PrimBool:   "bool",
}

// cppKeywords are the C++ reserved words, alternative operator spellings
// included.
var cppKeywords = map[string]bool{
	"alignas": true, "alignof": true, "and": true, "and_eq": true, "asm": true,
	"auto": true, "bitand": true, "bitor": true, "bool": true, "break": true,
	"case": true, "catch": true, "char": true, "char8_t": true, "char16_t": true,
	"char32_t": true, "class": true, "compl": true, "concept": true, "const": true,
	"consteval": true, "constexpr": true, "constinit": true, "const_cast": true,
	"continue": true, "co_await": true, "co_return": true, "co_yield": true,
	"decltype": true, "default": true, "delete": true, "do": true, "double": true,
	"dynamic_cast": true, "else": true, "enum": true, "explicit": true, "export": true,
	"extern": true, "false": true, "float": true, "for": true, "friend": true,
	"goto": true, "if": true, "inline": true, "int": true, "long": true,
	"mutable": true, "namespace": true, "new": true, "noexcept": true, "not": true,
	"not_eq": true, "nullptr": true, "operator": true, "or": true, "or_eq": true,
	"private": true, "protected": true, "public": true, "register": true,
	"reinterpret_cast": true, "requires": true, "return": true, "short": true,
	"signed": true, "sizeof": true, "static": true, "static_assert": true,
	"static_cast": true, "struct": true, "switch": true, "template": true,
	"this": true, "thread_local": true, "throw": true, "true": true, "try": true,
	"typedef": true, "typeid": true, "typename": true, "union": true,
	"unsigned": true, "using": true, "virtual": true, "void": true,
	"volatile": true, "wchar_t": true, "while": true, "xor": true, "xor_eq": true,
}

// cppIdent adds an underscore suffix to C++ reserved words.
func cppIdent(s string) string {
	if cppKeywords[s] {
		return s + "_"
	}
	return s
}

// cppType maps a field type to its C++ spelling. Optional over a value
// type adds a pointer; Optional over anything already held by pointer
// collapses to the same type.
func (g *generator) cppType(t ir.Type) string {
	switch t := t.(type) {
	case *ir.Primitive:
		if s, ok := primitiveTypes[t.Name]; ok {
			return s
		}
	case *ir.External:
		return t.CppType
	case *ir.Imported:
		g.checkUse(t)
		return t.Use.Namespace() + "::" + ir.ImportedTypeName(t.Name) + "*"
	case *ir.DeclRef:
		switch d := t.Decl.(type) {
		case *ir.Product:
			return d.Name + "*"
		case *ir.SimpleSum:
			return d.Name + "_t"
		case *ir.CompoundSum:
			return d.Name + "_t*"
		}
	case *ir.Optional:
		if ir.IsValueType(t.Elem) {
			return g.cppType(t.Elem) + "*"
		}
		return g.cppType(t.Elem)
	case *ir.List:
		return "List<" + g.cppType(t.Elem) + ">*"
	case *ir.Dict:
		return "Dict<" + g.cppType(t.Key) + ", " + g.cppType(t.Value) + ">*"
	}
	panic(errors.AssertionFailedf("cppgen: cannot map type %v (%T)", t, t))
}

// zeroValue is the value a zero-argument constructor stores. Integers use
// the -1 sentinel for absent.
func (g *generator) zeroValue(t ir.Type) string {
	switch t := t.(type) {
	case *ir.Primitive:
		switch t.Name {
		case ir.PrimInt, ir.PrimUint16:
			return "-1"
		case ir.PrimFloat:
			return "0.0"
		case ir.PrimBool:
			return "false"
		}
	case *ir.External:
		if t.Integer {
			return "-1"
		}
	case *ir.DeclRef:
		if s, ok := t.Decl.(*ir.SimpleSum); ok {
			return "static_cast<" + s.Name + "_t>(0)"
		}
	}
	return "nullptr"
}

func (g *generator) isPointer(t ir.Type) bool {
	return strings.HasSuffix(g.cppType(t), "*")
}

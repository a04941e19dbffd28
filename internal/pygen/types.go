package pygen

import (
	"github.com/cockroachdb/errors"

	"github.com/roach88/asdlc/internal/ir"
)

// pythonKeywords are the hard keywords; soft keywords such as match and
// type are legal attribute names.
var pythonKeywords = map[string]bool{
	"False": true, "None": true, "True": true, "and": true, "as": true,
	"assert": true, "async": true, "await": true, "break": true, "class": true,
	"continue": true, "def": true, "del": true, "elif": true, "else": true,
	"except": true, "finally": true, "for": true, "from": true, "global": true,
	"if": true, "import": true, "in": true, "is": true, "lambda": true,
	"nonlocal": true, "not": true, "or": true, "pass": true, "raise": true,
	"return": true, "try": true, "while": true, "with": true, "yield": true,
}

// pyIdent adds an underscore suffix to Python keywords.
func pyIdent(s string) string {
	if pythonKeywords[s] {
		return s + "_"
	}
	return s
}

func (g *generator) pyType(t ir.Type) string {
	switch t := t.(type) {
	case *ir.Primitive:
		switch t.Name {
		case ir.PrimString:
			return "str"
		case ir.PrimInt, ir.PrimUint16:
			return "int"
		case ir.PrimFloat:
			return "float"
		case ir.PrimBool:
			return "bool"
		}
	case *ir.External:
		return t.PyType
	case *ir.Imported:
		g.checkUse(t)
		return ir.ImportedTypeName(t.Name)
	case *ir.DeclRef:
		switch d := t.Decl.(type) {
		case *ir.Product:
			return d.Name
		case *ir.SimpleSum, *ir.CompoundSum:
			return d.DeclName() + "_t"
		}
	case *ir.Optional:
		return "Optional[" + g.pyType(t.Elem) + "]"
	case *ir.List:
		return "List[" + g.pyType(t.Elem) + "]"
	case *ir.Dict:
		return "Dict[" + g.pyType(t.Key) + ", " + g.pyType(t.Value) + "]"
	}
	panic(errors.AssertionFailedf("pygen: cannot map type %v (%T)", t, t))
}

// zeroValue is the value CreateNull or a zero-argument __init__ stores.
// Inside CreateNull, containers honor the alloc_lists parameter.
func (g *generator) zeroValue(t ir.Type, inCreateNull bool) string {
	switch t := t.(type) {
	case *ir.Primitive:
		switch t.Name {
		case ir.PrimString:
			return "''"
		case ir.PrimInt, ir.PrimUint16:
			return "-1"
		case ir.PrimFloat:
			return "0.0"
		case ir.PrimBool:
			return "False"
		}
	case *ir.External:
		if t.Integer {
			return "-1"
		}
	case *ir.DeclRef:
		if s, ok := t.Decl.(*ir.SimpleSum); ok {
			if s.Integers {
				return s.Name + "_i." + pyIdent(s.Variants[0].Name)
			}
			return s.Name + "_e." + pyIdent(s.Variants[0].Name)
		}
	case *ir.Optional:
		return "None"
	case *ir.List:
		if !inCreateNull {
			return "[]"
		}
		return "[] if alloc_lists else cast('" + g.pyType(t) + "', None)"
	case *ir.Dict:
		if !inCreateNull {
			return "{}"
		}
		return "{} if alloc_lists else cast('" + g.pyType(t) + "', None)"
	}
	return "cast('" + g.pyType(t) + "', None)"
}

// nullable reports whether a field may hold None at runtime.
func nullable(t ir.Type) bool {
	switch t := t.(type) {
	case *ir.Primitive:
		return t.Name == ir.PrimString
	case *ir.External:
		return !t.Integer
	case *ir.DeclRef:
		return !ir.IsSimpleSum(t)
	}
	return true
}

package cppgen

import (
	"github.com/cockroachdb/errors"

	"github.com/roach88/asdlc/internal/ir"
)

// Definitions renders the .cc unit holding X_str functions and PrettyTree
// bodies. It is only meaningful when pretty printing is on.
func Definitions(mod *ir.Module, ns, prefix string, opts Options) string {
	g := newGenerator(mod, ns, opts)

	g.emitLinef("// %s.cc is generated by asdlc", prefix)
	g.emitLine("")
	g.emitLinef(`#include "%s.h"`, prefix)
	g.emitLine("#include <assert.h>")
	g.emitLine(`#include "prebuilt/asdl/runtime.mycpp.h"  // generated code uses wrappers here`)
	for _, u := range mod.Uses {
		g.emitLinef(`#include "_gen/%s.asdl.h"  // "use" in ASDL`, u.Path())
	}
	g.emitLine("")
	g.emitLine("// Generated code uses these types")
	g.emitLine("using hnode_asdl::hnode__Record;")
	g.emitLine("using hnode_asdl::hnode__Array;")
	g.emitLine("using hnode_asdl::hnode__External;")
	g.emitLine("using hnode_asdl::hnode__Leaf;")
	g.emitLine("using hnode_asdl::Field;")
	g.emitLine("")
	g.emitLinef("namespace %s {", ns)
	g.emitLine("")

	for _, d := range mod.Decls {
		switch d := d.(type) {
		case *ir.SimpleSum:
			g.strFunc(d.Name, d.Variants, strParam(d), caseLabel(d))
		case *ir.Product:
			g.prettyTree(d.Name, d.Name, d.Fields)
		case *ir.CompoundSum:
			g.strFunc(d.Name, d.Variants, "int", d.Name+"_e::")
			for _, v := range d.Variants {
				if needsClass(v) {
					g.prettyTree(variantClass(d.Name, v), d.Name+"."+v.Name, v.Fields)
				}
			}
			g.wrapperPrettyTree(d)
		}
	}

	g.emitLinef("}  // namespace %s", ns)
	return g.String()
}

func strParam(s *ir.SimpleSum) string {
	if s.Integers {
		return "int"
	}
	return s.Name + "_e"
}

func caseLabel(s *ir.SimpleSum) string {
	if s.Integers {
		return s.Name + "_i::"
	}
	return s.Name + "_e::"
}

// strFunc emits X_str, which names a tag as "Variant" or, with dot set,
// "sum.Variant".
func (g *generator) strFunc(sum string, variants []*ir.Variant, param, label string) {
	longest := 0
	for _, v := range variants {
		longest = max(longest, len(v.Name))
	}
	bufSize := len(sum) + 1 + longest + 1

	g.emitLinef("BigStr* %s_str(%s tag, bool dot) {", sum, param)
	g.incIndent()
	g.emitLine("const char* v = nullptr;")
	g.emitLine("switch (tag) {")
	for _, v := range variants {
		g.emitLinef("case %s%s:", label, cppIdent(v.Name))
		g.emitLinef("  v = %q;", v.Name)
		g.emitLine("  break;")
	}
	g.emitLine("default:")
	g.emitLine("  assert(0);")
	g.emitLine("}")
	g.emitLine("if (dot) {")
	g.emitLinef("  char buf[%d];", bufSize)
	g.emitLinef("  snprintf(buf, %d, \"%s.%%s\", v);", bufSize, sum)
	g.emitLine("  return StrFromC(buf);")
	g.emitLine("}")
	g.emitLine("return StrFromC(v);")
	g.decIndent()
	g.emitLine("}")
	g.emitLine("")
}

// prettyTree emits the PrettyTree body of a product or variant class as a
// record named label with one field per member. Members held by pointer
// are skipped while unset.
func (g *generator) prettyTree(class, label string, fields []*ir.Field) {
	g.tmp = 0
	g.emitLinef("hnode_t* %s::PrettyTree() {", class)
	g.incIndent()
	g.emitLinef("hnode__Record* out_node = runtime::NewRecord(StrFromC(%q));", label)
	g.emitLine("List<Field*>* L = out_node->fields;")
	g.emitLine("")

	for _, f := range fields {
		expr := "this->" + cppIdent(f.Name)
		guarded := g.isPointer(f.Type)
		if guarded {
			g.emitLinef("if (%s != nullptr) {", expr)
			g.incIndent()
		}
		var h string
		if opt, ok := f.Type.(*ir.Optional); ok {
			h = g.prettyPresent(expr, opt)
		} else {
			h = g.prettyExpr(expr, f.Type)
		}
		g.emitLinef("L->append(Alloc<Field>(StrFromC(%q), %s));", f.Name, h)
		if guarded {
			g.decIndent()
			g.emitLine("}")
		}
		g.emitLine("")
	}

	g.emitLine("return out_node;")
	g.decIndent()
	g.emitLine("}")
	g.emitLine("")
}

// prettyExpr emits the statements building the hnode for expr and returns
// the variable that holds it.
func (g *generator) prettyExpr(expr string, t ir.Type) string {
	switch t := t.(type) {
	case *ir.Primitive:
		switch t.Name {
		case ir.PrimString:
			return g.leaf(expr, "StringConst")
		case ir.PrimInt, ir.PrimFloat:
			return g.leaf("str("+expr+")", "OtherConst")
		case ir.PrimUint16:
			return g.leaf("str(static_cast<int>("+expr+"))", "OtherConst")
		case ir.PrimBool:
			return g.leaf(expr+" ? runtime::TRUE_STR : runtime::FALSE_STR", "OtherConst")
		}
	case *ir.External:
		if t.CppStr != "" {
			return g.leaf(t.CppStr+"("+expr+")", "UserType")
		}
		h := g.newVar("x")
		g.emitLinef("hnode_t* %s = Alloc<hnode__External>(%s);", h, expr)
		return h
	case *ir.Imported:
		g.checkUse(t)
		return g.call(expr)
	case *ir.DeclRef:
		if s, ok := t.Decl.(*ir.SimpleSum); ok {
			return g.leaf(s.Name+"_str("+expr+")", "TypeName")
		}
		return g.call(expr)
	case *ir.Optional:
		// Unset elements of a container print as a "_" leaf.
		h := g.newVar("x")
		g.emitLinef("hnode_t* %s;", h)
		g.emitLinef("if (%s == nullptr) {", expr)
		g.emitLinef("  %s = runtime::NewLeaf(StrFromC(\"_\"), hnode_asdl::color_e::OtherConst);", h)
		g.emitLine("} else {")
		g.incIndent()
		g.emitLinef("%s = %s;", h, g.prettyPresent(expr, t))
		g.decIndent()
		g.emitLine("}")
		return h
	case *ir.List:
		h := g.newVar("x")
		it := g.newVar("it")
		elem := g.cppType(t.Elem)
		g.emitLinef("hnode__Array* %s = Alloc<hnode__Array>(Alloc<List<hnode_t*>>());", h)
		g.emitLinef("for (ListIter<%s> %s(%s); !%s.Done(); %s.Next()) {", elem, it, expr, it, it)
		g.incIndent()
		v := g.newVar("v")
		g.emitLinef("%s %s = %s.Value();", elem, v, it)
		child := g.prettyExpr(v, t.Elem)
		g.emitLinef("%s->children->append(%s);", h, child)
		g.decIndent()
		g.emitLine("}")
		return h
	case *ir.Dict:
		h := g.newVar("x")
		it := g.newVar("it")
		key, val := g.cppType(t.Key), g.cppType(t.Value)
		g.emitLinef("hnode__Array* %s = Alloc<hnode__Array>(Alloc<List<hnode_t*>>());", h)
		g.emitLinef("for (DictIter<%s, %s> %s(%s); !%s.Done(); %s.Next()) {", key, val, it, expr, it, it)
		g.incIndent()
		k, v := g.newVar("k"), g.newVar("v")
		g.emitLinef("%s %s = %s.Key();", key, k, it)
		g.emitLinef("%s %s = %s.Value();", val, v, it)
		kh := g.prettyExpr(k, t.Key)
		vh := g.prettyExpr(v, t.Value)
		g.emitLinef("%s->children->append(%s);", h, kh)
		g.emitLinef("%s->children->append(%s);", h, vh)
		g.decIndent()
		g.emitLine("}")
		return h
	}
	panic(errors.AssertionFailedf("cppgen: cannot pretty print type %v (%T)", t, t))
}

// prettyPresent prints an optional value already known to be set.
func (g *generator) prettyPresent(expr string, t *ir.Optional) string {
	if ir.IsValueType(t.Elem) {
		return g.prettyExpr("*"+expr, t.Elem)
	}
	return g.prettyExpr(expr, t.Elem)
}

func (g *generator) leaf(s, color string) string {
	h := g.newVar("x")
	g.emitLinef("hnode_t* %s = runtime::NewLeaf(%s, hnode_asdl::color_e::%s);", h, s, color)
	return h
}

func (g *generator) call(expr string) string {
	h := g.newVar("x")
	g.emitLinef("hnode_t* %s = %s->PrettyTree();", h, expr)
	return h
}

// wrapperPrettyTree dispatches on the tag to the active variant.
// Variants without fields print as an empty record named by the tag.
func (g *generator) wrapperPrettyTree(s *ir.CompoundSum) {
	g.emitLinef("hnode_t* %s_t::PrettyTree() {", s.Name)
	g.incIndent()
	g.emitLine("switch (tag_) {")
	for _, v := range s.Variants {
		if _, ok := g.tags.Lookup(s.Name, v.Tag); !ok {
			panic(errors.AssertionFailedf("cppgen: tag %d of %s has no registered name", v.Tag, s.Name))
		}
		g.emitLinef("case %s_e::%s:", s.Name, cppIdent(v.Name))
		if v.HasFields() {
			g.emitLinef("  return static_cast<%s*>(ptr_)->PrettyTree();", variantClass(s.Name, v))
		} else {
			g.emitLinef("  return runtime::NewRecord(%s_str(tag_));", s.Name)
		}
	}
	g.emitLine("default:")
	g.emitLine("  assert(0);")
	g.emitLine("  return nullptr;")
	g.emitLine("}")
	g.decIndent()
	g.emitLine("}")
	g.emitLine("")
}

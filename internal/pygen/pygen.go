// Package pygen emits a single Python module with mypy type comments for a
// resolved schema.
//
// Output is written in three phases so the module imports without name
// errors: first every sum's tag constants and base class, then products
// and variant classes in source order, then the namespace classes that
// alias variants. Types from use blocks are imported under TYPE_CHECKING
// only, so schemas that use each other do not form an import cycle.
package pygen

import (
	"fmt"
	"slices"
	"strings"

	"github.com/cockroachdb/errors"

	"github.com/roach88/asdlc/internal/ir"
)

// Options selects optional output.
type Options struct {
	PrettyPrint bool
	InitZero    bool
	InitN       bool
	Abbrev      *Companion // nil means no abbreviation hooks and no splice
}

type generator struct {
	sb     strings.Builder
	indent int
	tmp    int
	mod    *ir.Module
	opts   Options
}

func (g *generator) emitLine(s string) {
	if s == "" {
		g.sb.WriteString("\n")
		return
	}
	g.sb.WriteString(strings.Repeat("  ", g.indent))
	g.sb.WriteString(s)
	g.sb.WriteString("\n")
}

func (g *generator) emitLinef(format string, args ...any) {
	g.emitLine(fmt.Sprintf(format, args...))
}

func (g *generator) incIndent() { g.indent++ }
func (g *generator) decIndent() { g.indent-- }

func (g *generator) newVar(prefix string) string {
	name := fmt.Sprintf("%s%d", prefix, g.tmp)
	g.tmp++
	return name
}

func (g *generator) checkUse(t *ir.Imported) {
	if t.Use == nil || !slices.Contains(g.mod.Uses, t.Use) {
		panic(errors.AssertionFailedf("pygen: imported type %s has no use block in module %s", t.Name, g.mod.Name))
	}
}

// Generate renders the Python module, followed by the companion text when
// opts.Abbrev is set.
func Generate(mod *ir.Module, opts Options) string {
	g := &generator{mod: mod, opts: opts}

	g.imports()

	for _, d := range mod.Decls {
		switch d := d.(type) {
		case *ir.SimpleSum:
			g.simpleSum(d)
		case *ir.CompoundSum:
			g.sumBase(d)
		}
	}
	for _, d := range mod.Decls {
		switch d := d.(type) {
		case *ir.Product:
			g.product(d)
		case *ir.CompoundSum:
			for _, v := range d.Variants {
				if !v.IsShared() {
					g.variantClass(d, v)
				}
			}
		}
	}
	for _, d := range mod.Decls {
		if s, ok := d.(*ir.CompoundSum); ok {
			g.namespaceClass(s)
		}
	}

	if opts.Abbrev != nil {
		g.emitLine("#")
		g.emitLine("# CONCATENATED FILE")
		g.emitLine("#")
		g.emitLine("")
		g.sb.WriteString(opts.Abbrev.Text)
	}
	return g.sb.String()
}

func (g *generator) imports() {
	g.emitLine("from asdl import pybase")
	g.emitLine("from pylib.collections_ import OrderedDict")
	g.emitLine("from typing import Optional, List, Tuple, Dict, Any, cast, TYPE_CHECKING")
	g.emitLine("")

	var deferred []string
	for _, u := range g.mod.Uses {
		if len(u.Referenced) == 0 {
			continue
		}
		names := make([]string, len(u.Referenced))
		for i, n := range u.Referenced {
			names[i] = ir.ImportedTypeName(n)
		}
		deferred = append(deferred, fmt.Sprintf("from _devbuild.gen.%s import %s", u.Namespace(), strings.Join(names, ", ")))
	}
	if len(deferred) > 0 {
		g.emitLine("if TYPE_CHECKING:")
		g.incIndent()
		for _, line := range deferred {
			g.emitLine(line)
		}
		g.decIndent()
		g.emitLine("")
	}

	if len(g.mod.Externals) > 0 {
		for _, ext := range g.mod.Externals {
			g.emitLinef("from _devbuild.gen.%s import %s", ext.PyModule, ext.PyType)
			if g.opts.PrettyPrint && ext.PyStr != "" {
				g.emitLinef("from _devbuild.gen.%s import %s", ext.PyModule, ext.PyStr)
			}
		}
		g.emitLine("")
	}

	if g.opts.PrettyPrint {
		g.emitLine("from asdl import runtime  # For runtime.NO_SPID")
		g.emitLine("from asdl.runtime import NewRecord, NewLeaf")
		g.emitLine("from _devbuild.gen import hnode_asdl")
		g.emitLine("from _devbuild.gen.hnode_asdl import hnode, hnode_e, hnode_t, Field")
		g.emitLine("")
	}
}

// tagNames emits the _X_str table and X_str function shared by both sum
// kinds.
func (g *generator) tagNames(sum string, variants []*ir.Variant, valType string) {
	g.emitLinef("_%s_str = {", sum)
	for _, v := range variants {
		g.emitLinef("  %d: '%s',", v.Tag, v.Name)
	}
	g.emitLine("}")
	g.emitLine("")
	g.emitLinef("def %s_str(val, dot=True):", sum)
	g.emitLinef("  # type: (%s, bool) -> str", valType)
	g.emitLinef("  v = _%s_str[val]", sum)
	g.emitLine("  if dot:")
	g.emitLinef("    return \"%s.%%s\" %% v", sum)
	g.emitLine("  else:")
	g.emitLine("    return v")
	g.emitLine("")
}

func (g *generator) simpleSum(s *ir.SimpleSum) {
	if s.Integers {
		g.emitLinef("%s_t = int  # type alias for integer", s.Name)
		g.emitLine("")
		g.emitLinef("class %s_i(object):", s.Name)
		for _, v := range s.Variants {
			g.emitLinef("  %s = %d", pyIdent(v.Name), v.Tag)
		}
		g.emitLinef("  ARRAY_SIZE = %d", len(s.Variants))
		g.emitLine("")
	} else {
		g.emitLinef("class %s_t(pybase.SimpleObj):", s.Name)
		g.emitLine("  pass")
		g.emitLine("")
		g.emitLinef("class %s_e(object):", s.Name)
		for _, v := range s.Variants {
			g.emitLinef("  %s = %s_t(%d)", pyIdent(v.Name), s.Name, v.Tag)
		}
		g.emitLine("")
	}
	g.tagNames(s.Name, s.Variants, s.Name+"_t")
}

func (g *generator) sumBase(s *ir.CompoundSum) {
	g.emitLinef("class %s_e(object):", s.Name)
	for _, v := range s.Variants {
		g.emitLinef("  %s = %d", pyIdent(v.Name), v.Tag)
	}
	g.emitLine("")
	g.tagNames(s.Name, s.Variants, "int")
	g.emitLinef("class %s_t(pybase.CompoundObj):", s.Name)
	g.emitLine("  def tag(self):")
	g.emitLine("    # type: () -> int")
	g.emitLine("    return self._type_tag")
	g.emitLine("")
}

func (g *generator) product(p *ir.Product) {
	if len(p.SharedIn) == 0 {
		g.classDef(p.Name, "pybase.CompoundObj", -1, p.Name, p.Fields)
		return
	}
	bases := make([]string, len(p.SharedIn))
	for i, v := range p.SharedIn {
		bases[i] = v.Sum + "_t"
	}
	g.classDef(p.Name, strings.Join(bases, ", "), p.SharedIn[0].Tag, p.Name, p.Fields)
}

func (g *generator) variantClass(s *ir.CompoundSum, v *ir.Variant) {
	g.classDef(s.Name+"__"+v.Name, s.Name+"_t", v.Tag, s.Name+"."+v.Name, v.Fields)
}

// classDef emits one class. tag is -1 for products that are not variants.
func (g *generator) classDef(name, bases string, tag int, label string, fields []*ir.Field) {
	g.emitLinef("class %s(%s):", name, bases)
	g.incIndent()
	if tag >= 0 {
		g.emitLinef("_type_tag = %d", tag)
	}
	slots := make([]string, len(fields))
	for i, f := range fields {
		slots[i] = "'" + pyIdent(f.Name) + "'"
	}
	switch len(slots) {
	case 0:
		g.emitLine("__slots__ = ()")
	case 1:
		g.emitLinef("__slots__ = (%s,)", slots[0])
	default:
		g.emitLinef("__slots__ = (%s)", strings.Join(slots, ", "))
	}
	g.emitLine("")

	if len(fields) > 0 {
		g.constructors(name, fields)
	}
	if g.opts.PrettyPrint {
		if len(fields) == 0 {
			g.emitLine("def PrettyTree(self):")
			g.emitLine("  # type: () -> hnode_t")
			g.emitLinef("  return NewRecord(%s_str(self._type_tag))", strings.SplitN(label, ".", 2)[0])
			g.emitLine("")
		} else {
			g.prettyTree(label, fields)
		}
		if g.opts.Abbrev.Abbreviates(name) {
			g.emitLine("def AbbreviatedTree(self):")
			g.emitLine("  # type: () -> hnode_t")
			g.emitLinef("  p = _%s(self)", name)
			g.emitLine("  if p:")
			g.emitLine("    return p")
			g.emitLine("  return self.PrettyTree()")
			g.emitLine("")
		}
	}
	g.decIndent()
}

func (g *generator) constructors(name string, fields []*ir.Field) {
	types := make([]string, len(fields))
	for i, f := range fields {
		types[i] = g.pyType(f.Type)
	}

	if g.opts.InitN {
		params := make([]string, len(fields))
		for i, f := range fields {
			params[i] = pyIdent(f.Name)
		}
		g.emitLinef("def __init__(self, %s):", strings.Join(params, ", "))
		g.emitLinef("  # type: (%s) -> None", strings.Join(types, ", "))
		for _, p := range params {
			g.emitLinef("  self.%s = %s", p, p)
		}
		g.emitLine("")

		if g.opts.InitZero {
			zeros := make([]string, len(fields))
			for i, f := range fields {
				zeros[i] = g.zeroValue(f.Type, true)
			}
			g.emitLine("@staticmethod")
			g.emitLine("def CreateNull(alloc_lists=False):")
			g.emitLinef("  # type: (bool) -> %s", name)
			g.emitLinef("  return %s(%s)", name, strings.Join(zeros, ", "))
			g.emitLine("")
		}
		return
	}

	if g.opts.InitZero {
		g.emitLine("def __init__(self):")
		g.emitLine("  # type: () -> None")
		for i, f := range fields {
			g.emitLinef("  self.%s = %s  # type: %s", pyIdent(f.Name), g.zeroValue(f.Type, false), types[i])
		}
		g.emitLine("")
	}
}

func (g *generator) prettyTree(label string, fields []*ir.Field) {
	g.tmp = 0
	g.emitLine("def PrettyTree(self):")
	g.emitLine("  # type: () -> hnode_t")
	g.incIndent()
	g.emitLinef("out_node = NewRecord('%s')", label)
	g.emitLine("L = out_node.fields")
	g.emitLine("")
	for _, f := range fields {
		expr := "self." + pyIdent(f.Name)
		guarded := nullable(f.Type)
		if guarded {
			g.emitLinef("if %s is not None:", expr)
			g.incIndent()
		}
		h := g.prettyExpr(expr, f.Type)
		g.emitLinef("L.append(Field('%s', %s))", f.Name, h)
		if guarded {
			g.decIndent()
		}
		g.emitLine("")
	}
	g.emitLine("return out_node")
	g.decIndent()
	g.emitLine("")
}

func (g *generator) prettyExpr(expr string, t ir.Type) string {
	switch t := t.(type) {
	case *ir.Primitive:
		switch t.Name {
		case ir.PrimString:
			return g.leaf(expr, "StringConst")
		case ir.PrimInt, ir.PrimUint16, ir.PrimFloat:
			return g.leaf("str("+expr+")", "OtherConst")
		case ir.PrimBool:
			return g.leaf("'T' if "+expr+" else 'F'", "OtherConst")
		}
	case *ir.External:
		if t.PyStr != "" {
			return g.leaf(t.PyStr+"("+expr+")", "UserType")
		}
		h := g.newVar("x")
		g.emitLinef("%s = hnode.External(%s)", h, expr)
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
		return g.prettyExpr(expr, t.Elem)
	case *ir.List:
		h := g.newVar("x")
		g.emitLinef("%s = hnode.Array([])", h)
		v := g.newVar("i")
		g.emitLinef("for %s in %s:", v, expr)
		g.incIndent()
		child := g.prettyExpr(v, t.Elem)
		g.emitLinef("%s.children.append(%s)", h, child)
		g.decIndent()
		return h
	case *ir.Dict:
		h := g.newVar("x")
		g.emitLinef("%s = hnode.Array([])", h)
		k, v := g.newVar("k"), g.newVar("v")
		g.emitLinef("for %s, %s in %s.items():", k, v, expr)
		g.incIndent()
		kh := g.prettyExpr(k, t.Key)
		vh := g.prettyExpr(v, t.Value)
		g.emitLinef("%s.children.append(%s)", h, kh)
		g.emitLinef("%s.children.append(%s)", h, vh)
		g.decIndent()
		return h
	}
	panic(errors.AssertionFailedf("pygen: cannot pretty print type %v (%T)", t, t))
}

func (g *generator) leaf(s, color string) string {
	h := g.newVar("x")
	g.emitLinef("%s = NewLeaf(%s, hnode_asdl.color_e.%s)", h, s, color)
	return h
}

func (g *generator) call(expr string) string {
	h := g.newVar("x")
	g.emitLinef("%s = %s.PrettyTree()", h, expr)
	return h
}

// namespaceClass lets callers write expr.Const(...) and expr.Nil. Variants
// without fields are singletons.
func (g *generator) namespaceClass(s *ir.CompoundSum) {
	g.emitLinef("class %s(object):", s.Name)
	for _, v := range s.Variants {
		switch {
		case v.IsShared():
			g.emitLinef("  %s = %s", pyIdent(v.Name), v.Shared.Name)
		case v.HasFields():
			g.emitLinef("  %s = %s__%s", pyIdent(v.Name), s.Name, v.Name)
		default:
			g.emitLinef("  %s = %s__%s()", pyIdent(v.Name), s.Name, v.Name)
		}
	}
	g.emitLine("")
}

package cppgen

import (
	"strings"

	"github.com/roach88/asdlc/internal/ir"
)

// Header renders the .h file. prefix is the output path without extension
// and only appears in the banner comment.
func Header(mod *ir.Module, ns, prefix string, opts Options) string {
	g := newGenerator(mod, ns, opts)
	guard := strings.ToUpper(ns)

	g.emitLinef("// %s.h is generated by asdlc", prefix)
	g.emitLine("")
	g.emitLinef("#ifndef %s", guard)
	g.emitLinef("#define %s", guard)
	g.emitLine("")
	g.emitLine("#include <assert.h>")
	g.emitLine("#include <cstdint>")
	g.emitLine("")
	g.emitLine(`#include "mycpp/runtime.h"`)
	if opts.PrettyPrint {
		g.emitLine(`#include "_gen/asdl/hnode.asdl.h"`)
		g.emitLine("using hnode_asdl::hnode_t;")
	}
	seen := make(map[string]bool)
	for _, ext := range mod.Externals {
		if ext.CppHeader == "" || seen[ext.CppHeader] {
			continue
		}
		seen[ext.CppHeader] = true
		g.emitLinef(`#include "%s"`, ext.CppHeader)
	}
	g.emitLine("")

	for _, u := range mod.Uses {
		if len(u.Referenced) == 0 {
			continue
		}
		decls := make([]string, len(u.Referenced))
		for i, name := range u.Referenced {
			decls[i] = "class " + ir.ImportedTypeName(name) + ";"
		}
		g.emitLinef("namespace %s { %s }", u.Namespace(), strings.Join(decls, " "))
		g.emitLine("")
	}

	g.emitLinef("namespace %s {", ns)
	g.emitLine("")
	g.emitLine("// use struct instead of namespace so 'using' works consistently")
	g.emitLine("#define ASDL_NAMES struct")
	g.emitLine("")

	g.forwardDeclarations()
	for _, d := range mod.Decls {
		switch d := d.(type) {
		case *ir.SimpleSum:
			g.simpleSumDef(d)
		case *ir.Product:
			g.classDef(d.Name, d.Fields)
		case *ir.CompoundSum:
			g.compoundSumDef(d)
		}
	}

	g.emitLinef("}  // namespace %s", ns)
	g.emitLine("")
	g.emitLinef("#endif  // %s", guard)
	return g.String()
}

func (g *generator) forwardDeclarations() {
	for _, d := range g.mod.Decls {
		switch d := d.(type) {
		case *ir.SimpleSum:
			if d.Integers {
				g.emitLinef("typedef %s %s_t;", backing(d), d.Name)
			} else {
				g.emitLinef("enum class %s_e : %s;", d.Name, backing(d))
				g.emitLinef("typedef %s_e %s_t;", d.Name, d.Name)
			}
		case *ir.Product:
			g.emitLinef("class %s;", d.Name)
		case *ir.CompoundSum:
			g.emitLinef("class %s_t;", d.Name)
			for _, v := range d.Variants {
				if needsClass(v) {
					g.emitLinef("class %s;", variantClass(d.Name, v))
				}
			}
		}
	}
	g.emitLine("")
}

func (g *generator) simpleSumDef(s *ir.SimpleSum) {
	if s.Integers {
		g.emitLinef("ASDL_NAMES %s_i {", s.Name)
		g.incIndent()
		for _, v := range s.Variants {
			g.emitLinef("static const %s %s = %d;", backing(s), cppIdent(v.Name), v.Tag)
		}
		g.emitLinef("static const int ARRAY_SIZE = %d;", len(s.Variants))
		g.decIndent()
		g.emitLine("};")
		g.emitLine("")
		if g.opts.PrettyPrint {
			g.emitLinef("BigStr* %s_str(int tag, bool dot = true);", s.Name)
			g.emitLine("")
		}
		return
	}

	g.emitLinef("enum class %s_e : %s {", s.Name, backing(s))
	g.incIndent()
	for _, v := range s.Variants {
		g.emitLinef("%s = %d,", cppIdent(v.Name), v.Tag)
	}
	g.decIndent()
	g.emitLine("};")
	g.emitLine("")
	if g.opts.PrettyPrint {
		g.emitLinef("BigStr* %s_str(%s_e tag, bool dot = true);", s.Name, s.Name)
		g.emitLine("")
	}
}

func (g *generator) compoundSumDef(s *ir.CompoundSum) {
	g.emitLinef("ASDL_NAMES %s_e {", s.Name)
	g.incIndent()
	g.emitLine("enum no_name {")
	g.incIndent()
	for _, v := range s.Variants {
		g.emitLinef("%s = %d,", cppIdent(v.Name), v.Tag)
	}
	g.decIndent()
	g.emitLine("};")
	g.decIndent()
	g.emitLine("};")
	g.emitLine("")
	if g.opts.PrettyPrint {
		g.emitLinef("BigStr* %s_str(int tag, bool dot = true);", s.Name)
		g.emitLine("")
	}

	for _, v := range s.Variants {
		if needsClass(v) {
			g.classDef(variantClass(s.Name, v), v.Fields)
		}
	}
	g.wrapperDef(s)
}

// classDef emits a product or a variant class.
func (g *generator) classDef(name string, fields []*ir.Field) {
	g.emitLinef("class %s {", name)
	g.emitLine(" public:")
	g.incIndent()

	if g.opts.InitN {
		params := make([]string, len(fields))
		inits := make([]string, len(fields))
		for i, f := range fields {
			params[i] = g.cppType(f.Type) + " " + cppIdent(f.Name)
			inits[i] = cppIdent(f.Name) + "(" + cppIdent(f.Name) + ")"
		}
		g.emitLinef("%s(%s)", name, strings.Join(params, ", "))
		g.initList(inits)
	}
	if g.opts.InitZero {
		inits := make([]string, len(fields))
		for i, f := range fields {
			inits[i] = cppIdent(f.Name) + "(" + g.zeroValue(f.Type) + ")"
		}
		g.emitLinef("%s()", name)
		g.initList(inits)
	}
	if g.opts.InitN || g.opts.InitZero {
		g.emitLine("")
	}

	if g.opts.PrettyPrint {
		g.emitLine("hnode_t* PrettyTree();")
		g.emitLine("")
	}

	for _, f := range fields {
		g.emitLinef("%s %s;", g.cppType(f.Type), cppIdent(f.Name))
	}
	g.emitLine("")
	g.emitLinef("DISALLOW_COPY_AND_ASSIGN(%s)", name)
	g.decIndent()
	g.emitLine("};")
	g.emitLine("")
}

// initList emits a member initializer list followed by an empty body.
func (g *generator) initList(inits []string) {
	g.incIndent()
	g.incIndent()
	for i, init := range inits {
		switch {
		case i == 0 && len(inits) == 1:
			g.emitLinef(": %s {", init)
		case i == 0:
			g.emitLinef(": %s,", init)
		case i == len(inits)-1:
			g.emitLinef("  %s {", init)
		default:
			g.emitLinef("  %s,", init)
		}
	}
	g.decIndent()
	g.decIndent()
	g.emitLine("}")
}

// wrapperDef emits the tagged union for a compound sum: a 16-bit tag and a
// pointer to the active variant, with a checked accessor per variant that
// carries fields.
func (g *generator) wrapperDef(s *ir.CompoundSum) {
	name := s.Name + "_t"
	g.emitLinef("class %s {", name)
	g.emitLine(" public:")
	g.incIndent()

	g.emitLinef("explicit %s(int tag)", name)
	g.initList([]string{"tag_(tag)", "ptr_(nullptr)"})
	for _, v := range s.Variants {
		if !v.HasFields() {
			continue
		}
		class := variantClass(s.Name, v)
		g.emitLinef("explicit %s(%s* v)", name, class)
		g.initList([]string{"tag_(" + s.Name + "_e::" + cppIdent(v.Name) + ")", "ptr_(v)"})
	}
	g.emitLine("")

	g.emitLine("int tag() const {")
	g.emitLine("  return tag_;")
	g.emitLine("}")
	for _, v := range s.Variants {
		if !v.HasFields() {
			continue
		}
		class := variantClass(s.Name, v)
		g.emitLinef("%s* As%s() const {", class, v.Name)
		g.emitLinef("  assert(tag_ == %s_e::%s);", s.Name, cppIdent(v.Name))
		g.emitLinef("  return static_cast<%s*>(ptr_);", class)
		g.emitLine("}")
	}
	g.emitLine("")

	if g.opts.PrettyPrint {
		g.emitLine("hnode_t* PrettyTree();")
		g.emitLine("")
	}

	g.decIndent()
	g.emitLine(" private:")
	g.incIndent()
	g.emitLine("uint16_t tag_;")
	g.emitLine("void* ptr_;")
	g.emitLine("")
	g.emitLinef("DISALLOW_COPY_AND_ASSIGN(%s)", name)
	g.decIndent()
	g.emitLine("};")
	g.emitLine("")
}

// Package cppgen emits C++ declarations and definitions for a resolved
// schema, targeting the mycpp garbage-collected runtime.
//
// The header is written in two passes inside the module namespace: first
// forward declarations of every local type, then full definitions in
// source order. Types from use blocks are forward declared before the
// namespace opens. Simple sums become integer-backed enums; compound sums
// become one class per field-bearing variant plus a tagged-union wrapper
// holding the tag and a pointer to the active variant.
//
// Every function here is a pure function of the IR. A type the resolver
// should have rejected is a defect and panics with an assertion failure.
package cppgen

import (
	"fmt"
	"slices"
	"strings"

	"github.com/cockroachdb/errors"

	"github.com/roach88/asdlc/internal/ir"
)

// Options selects optional output.
type Options struct {
	PrettyPrint bool // PrettyTree methods, X_str functions and the .cc unit
	InitZero    bool // zero-argument constructors
	InitN       bool // constructors taking every field
}

type generator struct {
	sb     strings.Builder
	indent int
	tmp    int
	mod    *ir.Module
	ns     string
	opts   Options
	tags   ir.TagTable
}

func newGenerator(mod *ir.Module, ns string, opts Options) *generator {
	return &generator{mod: mod, ns: ns, opts: opts, tags: DebugTable(mod, ns)}
}

func (g *generator) String() string {
	return g.sb.String()
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

// checkUse asserts that an imported type came from one of the module's
// own use blocks.
func (g *generator) checkUse(t *ir.Imported) {
	if t.Use == nil || !slices.Contains(g.mod.Uses, t.Use) {
		panic(errors.AssertionFailedf("cppgen: imported type %s has no use block in module %s", t.Name, g.mod.Name))
	}
}

// variantClass is the class name of a field-bearing variant. Shared
// variants use their payload product directly.
func variantClass(sum string, v *ir.Variant) string {
	if v.Shared != nil {
		return v.Shared.Name
	}
	return sum + "__" + v.Name
}

// needsClass reports whether a compound sum variant gets its own class.
func needsClass(v *ir.Variant) bool {
	return v.HasFields() && !v.IsShared()
}

func backing(s *ir.SimpleSum) string {
	if s.Uint16 {
		return "uint16_t"
	}
	return "int"
}

// qualified prefixes a local name with the module namespace.
func (g *generator) qualified(name string) string {
	return g.ns + "::" + name
}

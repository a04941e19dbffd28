package cppgen

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/cockroachdb/errors"

	"github.com/roach88/asdlc/internal/ir"
)

// DebugTable maps every emitted tag of every sum to the fully qualified
// C++ type that carries it:
//
//	simple sum variant        ns::color_t
//	variant with fields       ns::expr__Binary
//	shared variant            ns::double_quoted
//	variant without fields    ns::expr_t
func DebugTable(mod *ir.Module, ns string) ir.TagTable {
	table := make(ir.TagTable)
	set := func(sum string, tag int, name string) {
		if prev, dup := table.Lookup(sum, tag); dup {
			panic(errors.AssertionFailedf("cppgen: tag %d of %s is carried by both %s and %s", tag, sum, prev, name))
		}
		table.Set(sum, tag, name)
	}
	for _, d := range mod.Decls {
		switch d := d.(type) {
		case *ir.SimpleSum:
			for _, v := range d.Variants {
				set(d.Name, v.Tag, ns+"::"+d.Name+"_t")
			}
		case *ir.CompoundSum:
			for _, v := range d.Variants {
				if v.HasFields() {
					set(d.Name, v.Tag, ns+"::"+variantClass(d.Name, v))
				} else {
					set(d.Name, v.Tag, ns+"::"+d.Name+"_t")
				}
			}
		}
	}
	return table
}

// WriteDebugInfo writes the debug table either as a Python literal
// assigning cpp_namespace and tags_to_types, or as canonical JSON.
func WriteDebugInfo(w io.Writer, ns string, table ir.TagTable, asJSON bool) error {
	if asJSON {
		data, err := ir.MarshalCanonical(ir.Object{
			"cpp_namespace": ir.Str(ns),
			"tags_to_types": table.Value(),
		})
		if err != nil {
			return errors.Wrap(err, "encode debug info")
		}
		data = append(data, '\n')
		_, err = w.Write(data)
		return errors.Wrap(err, "write debug info")
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "cpp_namespace = %s\n", pyString(ns))
	sb.WriteString("tags_to_types = \\\n{\n")
	for _, sum := range table.Sums() {
		fmt.Fprintf(&sb, "  %s: {\n", pyString(sum))
		for _, tag := range table.Tags(sum) {
			name, _ := table.Lookup(sum, tag)
			fmt.Fprintf(&sb, "    %d: %s,\n", tag, pyString(name))
		}
		sb.WriteString("  },\n")
	}
	sb.WriteString("}\n")
	_, err := io.WriteString(w, sb.String())
	return errors.Wrap(err, "write debug info")
}

// pyString quotes s as a single-quoted Python literal. Names here are
// identifiers and "::", so only the quote and backslash need escaping.
func pyString(s string) string {
	q := strconv.Quote(s)
	q = strings.ReplaceAll(q[1:len(q)-1], `\"`, `"`)
	return "'" + strings.ReplaceAll(q, "'", `\'`) + "'"
}

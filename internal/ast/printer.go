package ast

import (
	"fmt"
	"strings"
)

// Print renders the module in canonical schema syntax. Parsing the output
// yields a structurally equivalent tree, so Print(Parse(Print(m))) is a
// fixed point.
func Print(m *Module) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "module %s {\n", m.Name)

	for _, u := range m.Uses {
		fmt.Fprintf(&sb, "  use %s { %s }\n", strings.Join(u.ModuleParts, " "), strings.Join(u.TypeNames, ", "))
	}
	if len(m.Uses) > 0 && len(m.Decls) > 0 {
		sb.WriteString("\n")
	}

	for _, d := range m.Decls {
		sb.WriteString("  ")
		sb.WriteString(FormatDecl(d))
		sb.WriteString("\n")
	}

	sb.WriteString("}\n")
	return sb.String()
}

// FormatDecl renders one declaration on a single line.
func FormatDecl(d TypeDecl) string {
	var sb strings.Builder
	var hints []string

	switch d := d.(type) {
	case *Product:
		fmt.Fprintf(&sb, "%s = %s", d.Name, formatFields(d.Fields))
		hints = d.Generate
	case *Sum:
		fmt.Fprintf(&sb, "%s = ", d.Name)
		for i, c := range d.Constructors {
			if i > 0 {
				sb.WriteString(" | ")
			}
			sb.WriteString(formatConstructor(c))
		}
		hints = d.Generate
	}

	if len(hints) > 0 {
		fmt.Fprintf(&sb, " generate [%s]", strings.Join(hints, ", "))
	}
	return sb.String()
}

func formatConstructor(c *Constructor) string {
	switch {
	case c.SharedType != "":
		return fmt.Sprintf("%s %%%s", c.Name, c.SharedType)
	case len(c.Fields) > 0:
		return c.Name + formatFields(c.Fields)
	default:
		return c.Name
	}
}

func formatFields(fields []*Field) string {
	parts := make([]string, len(fields))
	for i, f := range fields {
		parts[i] = FormatTypeRef(f.Type) + f.Quantifier.String() + " " + f.Name
	}
	return "(" + strings.Join(parts, ", ") + ")"
}

// FormatTypeRef renders a type reference as written in a schema.
func FormatTypeRef(t TypeRef) string {
	switch t := t.(type) {
	case *NamedType:
		return t.Name
	case *ParameterizedType:
		args := make([]string, len(t.Args))
		for i, a := range t.Args {
			args[i] = FormatTypeRef(a)
		}
		return fmt.Sprintf("%s[%s]", t.Kind, strings.Join(args, ", "))
	default:
		return fmt.Sprintf("<%T>", t)
	}
}

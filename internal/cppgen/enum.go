package cppgen

import (
	"fmt"
	"strings"

	"github.com/roach88/asdlc/internal/ir"
)

// EnumExport renders one preprocessor define per simple sum variant, for
// C code that needs the tag values without the C++ header.
func EnumExport(mod *ir.Module) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "// %s enums are generated by asdlc\n", mod.Name)
	for _, s := range mod.SimpleSums() {
		sb.WriteString("\n")
		for _, v := range s.Variants {
			fmt.Fprintf(&sb, "#define %s__%s %d\n", s.Name, v.Name, v.Tag)
		}
	}
	return sb.String()
}
